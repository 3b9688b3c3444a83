package keeper

import (
	"context"
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	positiontypes "github.com/openalpha/venture-fund/x/position/types"
	"github.com/openalpha/venture-fund/x/stakeboost/types"
)

var (
	testStaker    = sdk.AccAddress([]byte("staker______________")).String()
	testOtherAcct = sdk.AccAddress([]byte("other_account_______")).String()
	testAuthority = sdk.AccAddress([]byte("authority___________")).String()
)

// mockPositionKeeper serves a fixed holdings table per fund
type mockPositionKeeper struct {
	holdings map[string][]positiontypes.Holding
}

func (m *mockPositionKeeper) FundHoldings(ctx sdk.Context, fundID string) []positiontypes.Holding {
	return m.holdings[fundID]
}

// mockBankKeeper accepts every transfer
type mockBankKeeper struct {
	sends int
}

func (m *mockBankKeeper) SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error {
	m.sends++
	return nil
}

func (m *mockBankKeeper) SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error {
	m.sends++
	return nil
}

// setupKeeper creates a stakeboost keeper backed by an in-memory store
func setupKeeper(tb testing.TB) (*Keeper, sdk.Context, *mockPositionKeeper) {
	tb.Helper()

	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	if err := stateStore.LoadLatestVersion(); err != nil {
		tb.Fatalf("failed to load store: %v", err)
	}

	ctx := sdk.NewContext(stateStore, cmtproto.Header{}, false, log.NewNopLogger())

	interfaceRegistry := codectypes.NewInterfaceRegistry()
	cdc := codec.NewProtoCodec(interfaceRegistry)

	positionKeeper := &mockPositionKeeper{holdings: make(map[string][]positiontypes.Holding)}
	keeper := NewKeeper(cdc, storeKey, positionKeeper, &mockBankKeeper{}, testAuthority, log.NewNopLogger())

	return keeper, ctx, positionKeeper
}

// rampConfig is a 50% max discount reached after 100 blocks
func rampConfig() types.DiscountConfig {
	return types.DiscountConfig{
		Denom:       types.DefaultBoostDenom,
		MaxDiscount: math.LegacyNewDecWithPrec(50, 2),
		RampBlocks:  100,
	}
}

func TestStakeAndTopUp(t *testing.T) {
	k, ctx, _ := setupKeeper(t)
	ctx = ctx.WithBlockHeight(10)

	total, err := k.Stake(ctx, testStaker, "fund-1", math.NewInt(100))
	if err != nil {
		t.Fatalf("Stake: %v", err)
	}
	if !total.Equal(math.NewInt(100)) {
		t.Errorf("expected total 100, got %s", total)
	}

	// A top-up at a later height keeps the original StakedAt, so the ramp
	// already earned is not forfeited.
	ctx = ctx.WithBlockHeight(50)
	total, err = k.Stake(ctx, testStaker, "fund-1", math.NewInt(200))
	if err != nil {
		t.Fatalf("Stake top-up: %v", err)
	}
	if !total.Equal(math.NewInt(300)) {
		t.Errorf("expected total 300, got %s", total)
	}

	stake := k.GetStake(ctx, "fund-1", testStaker)
	if stake == nil {
		t.Fatal("expected stake record")
	}
	if stake.StakedAt != 10 {
		t.Errorf("expected StakedAt 10 after top-up, got %d", stake.StakedAt)
	}
}

func TestStakeRejections(t *testing.T) {
	k, ctx, _ := setupKeeper(t)

	if _, err := k.Stake(ctx, testStaker, "fund-1", math.ZeroInt()); err != types.ErrInvalidAmount {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}
	if _, err := k.Stake(ctx, "not-bech32", "fund-1", math.NewInt(10)); err != types.ErrInvalidAddress {
		t.Errorf("expected ErrInvalidAddress, got %v", err)
	}
}

func TestUnstake(t *testing.T) {
	k, ctx, _ := setupKeeper(t)
	ctx = ctx.WithBlockHeight(10)

	if _, err := k.Stake(ctx, testStaker, "fund-1", math.NewInt(300)); err != nil {
		t.Fatalf("Stake: %v", err)
	}

	if _, err := k.Unstake(ctx, testStaker, "fund-1", math.NewInt(301)); err != types.ErrInsufficientStake {
		t.Errorf("expected ErrInsufficientStake, got %v", err)
	}
	if _, err := k.Unstake(ctx, testOtherAcct, "fund-1", math.NewInt(10)); err != types.ErrStakeNotFound {
		t.Errorf("expected ErrStakeNotFound, got %v", err)
	}

	// Partial unstake keeps the record and its StakedAt.
	ctx = ctx.WithBlockHeight(60)
	remaining, err := k.Unstake(ctx, testStaker, "fund-1", math.NewInt(100))
	if err != nil {
		t.Fatalf("Unstake: %v", err)
	}
	if !remaining.Equal(math.NewInt(200)) {
		t.Errorf("expected 200 remaining, got %s", remaining)
	}
	stake := k.GetStake(ctx, "fund-1", testStaker)
	if stake == nil || stake.StakedAt != 10 {
		t.Fatalf("expected StakedAt 10 after partial unstake, got %+v", stake)
	}

	// Full unstake deletes the record; a later stake starts a fresh ramp.
	if _, err := k.Unstake(ctx, testStaker, "fund-1", math.NewInt(200)); err != nil {
		t.Fatalf("full Unstake: %v", err)
	}
	if k.GetStake(ctx, "fund-1", testStaker) != nil {
		t.Fatal("expected stake deleted after full unstake")
	}

	ctx = ctx.WithBlockHeight(70)
	if _, err := k.Stake(ctx, testStaker, "fund-1", math.NewInt(50)); err != nil {
		t.Fatalf("re-stake: %v", err)
	}
	stake = k.GetStake(ctx, "fund-1", testStaker)
	if stake.StakedAt != 70 {
		t.Errorf("expected fresh ramp at 70, got %d", stake.StakedAt)
	}
}

func TestDiscountRamp(t *testing.T) {
	k, ctx, _ := setupKeeper(t)
	if err := k.SetDiscountConfig(ctx, rampConfig()); err != nil {
		t.Fatalf("SetDiscountConfig: %v", err)
	}

	ctx = ctx.WithBlockHeight(100)
	if _, err := k.Stake(ctx, testStaker, "fund-1", math.NewInt(1000)); err != nil {
		t.Fatalf("Stake: %v", err)
	}

	cases := []struct {
		name   string
		height int64
		want   math.LegacyDec
	}{
		{"no discount at stake height", 100, math.LegacyZeroDec()},
		{"quarter through ramp", 125, math.LegacyNewDecWithPrec(125, 3)},
		{"half through ramp", 150, math.LegacyNewDecWithPrec(25, 2)},
		{"ramp complete", 200, math.LegacyNewDecWithPrec(50, 2)},
		{"beyond ramp stays at max", 1000, math.LegacyNewDecWithPrec(50, 2)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := k.DiscountOf(ctx.WithBlockHeight(tc.height), testStaker, "fund-1")
			if !got.Equal(tc.want) {
				t.Errorf("expected discount %s, got %s", tc.want, got)
			}
		})
	}

	// No stake, no discount.
	if got := k.DiscountOf(ctx, testOtherAcct, "fund-1"); !got.IsZero() {
		t.Errorf("expected zero discount without stake, got %s", got)
	}
}

func TestCurrentDiscountWeightsByParticipation(t *testing.T) {
	k, ctx, positions := setupKeeper(t)
	if err := k.SetDiscountConfig(ctx, rampConfig()); err != nil {
		t.Fatalf("SetDiscountConfig: %v", err)
	}

	// One holder fully ramped, the other unstaked.
	ctx = ctx.WithBlockHeight(0)
	if _, err := k.Stake(ctx, testStaker, "fund-1", math.NewInt(1000)); err != nil {
		t.Fatalf("Stake: %v", err)
	}
	positions.holdings["fund-1"] = []positiontypes.Holding{
		{Account: testStaker, Value: math.NewInt(100)},
		{Account: testOtherAcct, Value: math.NewInt(300)},
	}

	ctx = ctx.WithBlockHeight(200)
	discount := k.CurrentDiscount(ctx, "fund-1")
	// (0.5 * 100 + 0 * 300) / 400
	want := math.LegacyNewDecWithPrec(125, 3)
	if !discount.Equal(want) {
		t.Errorf("expected weighted discount %s, got %s", want, discount)
	}

	// A fund with no live positions gets zero.
	if got := k.CurrentDiscount(ctx, "fund-2"); !got.IsZero() {
		t.Errorf("expected zero discount for empty fund, got %s", got)
	}
}

func TestDiscountConfig(t *testing.T) {
	k, ctx, _ := setupKeeper(t)

	// Defaults apply until a config is stored.
	config := k.GetDiscountConfig(ctx)
	if config.Denom != types.DefaultBoostDenom {
		t.Errorf("expected default denom, got %s", config.Denom)
	}

	bad := rampConfig()
	bad.RampBlocks = 0
	if err := k.SetDiscountConfig(ctx, bad); err != types.ErrInvalidConfig {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}

	bad = rampConfig()
	bad.MaxDiscount = math.LegacyNewDec(2)
	if err := k.SetDiscountConfig(ctx, bad); err != types.ErrInvalidConfig {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}

	if err := k.SetDiscountConfig(ctx, rampConfig()); err != nil {
		t.Fatalf("SetDiscountConfig: %v", err)
	}
	config = k.GetDiscountConfig(ctx)
	if config.RampBlocks != 100 {
		t.Errorf("expected ramp 100, got %d", config.RampBlocks)
	}
}

func TestGetFundStakes(t *testing.T) {
	k, ctx, _ := setupKeeper(t)

	k.Stake(ctx, testStaker, "fund-1", math.NewInt(100))
	k.Stake(ctx, testOtherAcct, "fund-1", math.NewInt(200))
	k.Stake(ctx, testStaker, "fund-2", math.NewInt(300))

	stakes := k.GetFundStakes(ctx, "fund-1")
	if len(stakes) != 2 {
		t.Fatalf("expected 2 stakes for fund-1, got %d", len(stakes))
	}
	for _, stake := range stakes {
		if stake.FundID != "fund-1" {
			t.Errorf("stake from wrong fund: %+v", stake)
		}
	}
}
