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

	"github.com/openalpha/venture-fund/x/fund/types"
)

// Test accounts. Derived from fixed bytes so every run sees the same bech32
// strings.
var (
	testOperator    = sdk.AccAddress([]byte("operator____________")).String()
	testTreasury    = sdk.AccAddress([]byte("treasury____________")).String()
	testContributor = sdk.AccAddress([]byte("contributor_________")).String()
	testSecond      = sdk.AccAddress([]byte("second_contributor__")).String()
	testDestination = sdk.AccAddress([]byte("portfolio_project___")).String()
)

type mintRecord struct {
	fundID string
	owner  string
	value  math.Int
}

// mockPositionKeeper records mints and serves configurable participation
// snapshots keyed by account.
type mockPositionKeeper struct {
	nextID        uint64
	minted        []mintRecord
	participation map[string]math.Int
	total         math.Int
}

func newMockPositionKeeper() *mockPositionKeeper {
	return &mockPositionKeeper{
		participation: make(map[string]math.Int),
		total:         math.ZeroInt(),
	}
}

func (m *mockPositionKeeper) Mint(ctx sdk.Context, fundID, owner string, value math.Int) (uint64, error) {
	m.nextID++
	m.minted = append(m.minted, mintRecord{fundID: fundID, owner: owner, value: value})
	return m.nextID, nil
}

func (m *mockPositionKeeper) ValueOf(ctx sdk.Context, positionID uint64) (math.Int, error) {
	if positionID == 0 || positionID > m.nextID {
		return math.ZeroInt(), nil
	}
	return m.minted[positionID-1].value, nil
}

func (m *mockPositionKeeper) ParticipationAt(ctx sdk.Context, fundID, account string, height int64) (math.Int, math.Int) {
	value, ok := m.participation[account]
	if !ok {
		value = math.ZeroInt()
	}
	return value, m.total
}

// mockDiscountKeeper serves fixed discounts
type mockDiscountKeeper struct {
	current   math.LegacyDec
	byAccount map[string]math.LegacyDec
}

func newMockDiscountKeeper() *mockDiscountKeeper {
	return &mockDiscountKeeper{
		current:   math.LegacyZeroDec(),
		byAccount: make(map[string]math.LegacyDec),
	}
}

func (m *mockDiscountKeeper) CurrentDiscount(ctx sdk.Context, fundID string) math.LegacyDec {
	return m.current
}

func (m *mockDiscountKeeper) DiscountOf(ctx sdk.Context, account, fundID string) math.LegacyDec {
	if d, ok := m.byAccount[account]; ok {
		return d
	}
	return math.LegacyZeroDec()
}

type bankTransfer struct {
	from   string
	to     string
	amount sdk.Coins
}

// mockBankKeeper records module transfers instead of moving real coins
type mockBankKeeper struct {
	toModule  []bankTransfer
	toAccount []bankTransfer
}

func (m *mockBankKeeper) SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error {
	m.toModule = append(m.toModule, bankTransfer{from: senderAddr.String(), to: recipientModule, amount: amt})
	return nil
}

func (m *mockBankKeeper) SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error {
	m.toAccount = append(m.toAccount, bankTransfer{from: senderModule, to: recipientAddr.String(), amount: amt})
	return nil
}

// setupKeeper creates a fund keeper backed by an in-memory store
func setupKeeper(tb testing.TB) (*Keeper, sdk.Context, *mockPositionKeeper, *mockDiscountKeeper, *mockBankKeeper) {
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

	positionKeeper := newMockPositionKeeper()
	discountKeeper := newMockDiscountKeeper()
	bankKeeper := &mockBankKeeper{}

	keeper := NewKeeper(cdc, storeKey, positionKeeper, discountKeeper, bankKeeper, testOperator, log.NewNopLogger())

	return keeper, ctx, positionKeeper, discountKeeper, bankKeeper
}

// defaultFeeConfig is 2% entry, 20% carry, uncapped
func defaultFeeConfig() types.FeeConfig {
	return types.FeeConfig{
		EntryFeeRate:  math.LegacyNewDecWithPrec(2, 2),
		CarryFeeRate:  math.LegacyNewDecWithPrec(20, 2),
		InvestmentCap: math.ZeroInt(),
	}
}

// mustCreateFund creates a fund in the funding phase
func mustCreateFund(tb testing.TB, k *Keeper, ctx sdk.Context, fundID string, cfg types.FeeConfig) *types.Fund {
	tb.Helper()
	fund, err := k.CreateFund(ctx, testOperator, fundID, "uusdc", testTreasury, cfg)
	if err != nil {
		tb.Fatalf("CreateFund: %v", err)
	}
	return fund
}

// mustDeploy advances a fund into the deployed phase
func mustDeploy(tb testing.TB, k *Keeper, ctx sdk.Context, fundID string) {
	tb.Helper()
	if _, err := k.CloseFunding(ctx, testOperator, fundID); err != nil {
		tb.Fatalf("CloseFunding: %v", err)
	}
}

func TestSetGetFund(t *testing.T) {
	k, ctx, _, _, _ := setupKeeper(t)

	if k.GetFund(ctx, "missing") != nil {
		t.Fatal("expected nil for unknown fund")
	}

	mustCreateFund(t, k, ctx, "fund-1", defaultFeeConfig())

	fund := k.GetFund(ctx, "fund-1")
	if fund == nil {
		t.Fatal("expected fund to be stored")
	}
	if fund.Phase != types.PhaseFunding {
		t.Errorf("expected funding phase, got %s", fund.Phase)
	}
	if !fund.TotalContributed.IsZero() || !fund.CumulativeProfit.IsZero() || !fund.Balance.IsZero() {
		t.Errorf("expected zeroed ledgers, got contributed=%s profit=%s balance=%s",
			fund.TotalContributed, fund.CumulativeProfit, fund.Balance)
	}
}

func TestCreateFundDuplicate(t *testing.T) {
	k, ctx, _, _, _ := setupKeeper(t)

	mustCreateFund(t, k, ctx, "fund-1", defaultFeeConfig())

	if _, err := k.CreateFund(ctx, testOperator, "fund-1", "uusdc", testTreasury, defaultFeeConfig()); err != types.ErrFundExists {
		t.Errorf("expected ErrFundExists, got %v", err)
	}
}

func TestCreateFundInvalidConfig(t *testing.T) {
	k, ctx, _, _, _ := setupKeeper(t)

	cases := []struct {
		name string
		cfg  types.FeeConfig
	}{
		{"negative entry rate", types.FeeConfig{
			EntryFeeRate:  math.LegacyNewDec(-1),
			CarryFeeRate:  math.LegacyZeroDec(),
			InvestmentCap: math.ZeroInt(),
		}},
		{"carry rate above one", types.FeeConfig{
			EntryFeeRate:  math.LegacyZeroDec(),
			CarryFeeRate:  math.LegacyNewDec(2),
			InvestmentCap: math.ZeroInt(),
		}},
		{"negative cap", types.FeeConfig{
			EntryFeeRate:  math.LegacyZeroDec(),
			CarryFeeRate:  math.LegacyZeroDec(),
			InvestmentCap: math.NewInt(-1),
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := k.CreateFund(ctx, testOperator, "fund-x", "uusdc", testTreasury, tc.cfg); err != types.ErrInvalidFeeConfig {
				t.Errorf("expected ErrInvalidFeeConfig, got %v", err)
			}
		})
	}
}

func TestGetAllFunds(t *testing.T) {
	k, ctx, _, _, _ := setupKeeper(t)

	mustCreateFund(t, k, ctx, "fund-a", defaultFeeConfig())
	mustCreateFund(t, k, ctx, "fund-b", defaultFeeConfig())

	funds := k.GetAllFunds(ctx)
	if len(funds) != 2 {
		t.Fatalf("expected 2 funds, got %d", len(funds))
	}
}

func TestWithdrawalStateDefaultsToZero(t *testing.T) {
	k, ctx, _, _, _ := setupKeeper(t)

	state := k.GetWithdrawalState(ctx, "fund-1", testContributor)
	if state == nil {
		t.Fatal("expected zeroed state, got nil")
	}
	if !state.TotalWithdrawn.IsZero() {
		t.Errorf("expected zero withdrawn, got %s", state.TotalWithdrawn)
	}

	state.TotalWithdrawn = math.NewInt(40)
	k.SetWithdrawalState(ctx, state)

	stored := k.GetWithdrawalState(ctx, "fund-1", testContributor)
	if !stored.TotalWithdrawn.Equal(math.NewInt(40)) {
		t.Errorf("expected withdrawn 40, got %s", stored.TotalWithdrawn)
	}
}

func TestPayoutOrdering(t *testing.T) {
	k, ctx, _, _, _ := setupKeeper(t)

	// Indices past a single byte verify that big-endian keys keep store
	// iteration in numeric order.
	for i := uint64(0); i < 300; i++ {
		k.AppendPayout(ctx, "fund-1", &types.Payout{
			Index:           i,
			Height:          int64(i),
			GrossAmount:     math.NewInt(int64(i)),
			FeeAmount:       math.ZeroInt(),
			NetAmount:       math.NewInt(int64(i)),
			DiscountApplied: math.LegacyZeroDec(),
		})
	}

	if count := k.PayoutsCount(ctx, "fund-1"); count != 300 {
		t.Fatalf("expected count 300, got %d", count)
	}

	payouts := k.GetPayouts(ctx, "fund-1")
	if len(payouts) != 300 {
		t.Fatalf("expected 300 payouts, got %d", len(payouts))
	}
	for i, payout := range payouts {
		if payout.Index != uint64(i) {
			t.Fatalf("payout %d out of order: index %d", i, payout.Index)
		}
	}

	if p := k.GetPayout(ctx, "fund-1", 299); p == nil || !p.GrossAmount.Equal(math.NewInt(299)) {
		t.Errorf("expected payout 299 retrievable by index")
	}
	if p := k.GetPayout(ctx, "fund-1", 300); p != nil {
		t.Errorf("expected nil for out-of-range index")
	}
}

func TestFundIDDelimiterRejected(t *testing.T) {
	k, ctx, _, _, _ := setupKeeper(t)

	// Payout, withdrawal state, checkpoint, and stake keys all use the fund
	// ID as the first ':' delimited segment. An ID carrying the delimiter
	// would make "alpha:2" payouts prefix-match an "alpha" scan and inflate
	// every alpha participant's entitlement, so creation must refuse it.
	for _, fundID := range []string{"alpha:2", ":alpha", "alpha:", ":"} {
		if _, err := k.CreateFund(ctx, testOperator, fundID, "uusdc", testTreasury, defaultFeeConfig()); err != types.ErrInvalidFundID {
			t.Errorf("CreateFund(%q): expected ErrInvalidFundID, got %v", fundID, err)
		}
	}

	msg := &types.MsgCreateFund{
		Operator:      testOperator,
		FundID:        "alpha:2",
		Denom:         "uusdc",
		Treasury:      testTreasury,
		EntryFeeRate:  "0.02",
		CarryFeeRate:  "0.20",
		InvestmentCap: "0",
	}
	if err := msg.ValidateBasic(); err != types.ErrInvalidFundID {
		t.Errorf("ValidateBasic: expected ErrInvalidFundID, got %v", err)
	}
}

func TestPayoutScansIsolatedBetweenFunds(t *testing.T) {
	k, ctx, _, _, _ := setupKeeper(t)

	// "alpha" is a prefix of "alphax", but the ':' terminator in the payout
	// key keeps their scans disjoint. With the delimiter banned from fund
	// IDs no creatable fund can shadow another's payout range.
	for i, fundID := range []string{"alpha", "alphax"} {
		k.AppendPayout(ctx, fundID, &types.Payout{
			Index:           0,
			Height:          int64(i + 1),
			GrossAmount:     math.NewInt(int64(100 * (i + 1))),
			FeeAmount:       math.ZeroInt(),
			NetAmount:       math.NewInt(int64(100 * (i + 1))),
			DiscountApplied: math.LegacyZeroDec(),
		})
	}

	alpha := k.GetPayouts(ctx, "alpha")
	if len(alpha) != 1 {
		t.Fatalf("expected 1 payout for alpha, got %d", len(alpha))
	}
	if !alpha[0].NetAmount.Equal(math.NewInt(100)) {
		t.Errorf("alpha scan picked up a foreign payout: net %s", alpha[0].NetAmount)
	}
	if count := k.PayoutsCount(ctx, "alpha"); count != 1 {
		t.Errorf("expected alpha count 1, got %d", count)
	}
}
