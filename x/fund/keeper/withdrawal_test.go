package keeper

import (
	"testing"

	"cosmossdk.io/math"

	"github.com/openalpha/venture-fund/x/fund/types"
)

func TestAvailableFundsProRata(t *testing.T) {
	k, ctx, positions, _, _ := setupKeeper(t)
	cfg := defaultFeeConfig()
	cfg.EntryFeeRate = math.LegacyZeroDec()
	mustCreateFund(t, k, ctx, "fund-1", cfg)

	if _, err := k.Contribute(ctx, testContributor, "fund-1", math.NewInt(1000), ""); err != nil {
		t.Fatalf("Contribute: %v", err)
	}
	mustDeploy(t, k, ctx, "fund-1")

	positions.participation[testContributor] = math.NewInt(250)
	positions.participation[testSecond] = math.NewInt(750)
	positions.total = math.NewInt(1000)

	if _, err := k.InjectProfit(ctx, testOperator, "fund-1", math.NewInt(400)); err != nil {
		t.Fatalf("InjectProfit: %v", err)
	}

	// 250/1000 of a 400 net payout.
	available := k.AvailableFunds(ctx, "fund-1", testContributor)
	if !available.Equal(math.NewInt(100)) {
		t.Errorf("expected 100 available, got %s", available)
	}
	available = k.AvailableFunds(ctx, "fund-1", testSecond)
	if !available.Equal(math.NewInt(300)) {
		t.Errorf("expected 300 available, got %s", available)
	}

	// An account with no participation at the payout height gets nothing.
	available = k.AvailableFunds(ctx, "fund-1", testDestination)
	if !available.IsZero() {
		t.Errorf("expected zero available, got %s", available)
	}
}

func TestAvailableFundsShareTruncation(t *testing.T) {
	k, ctx, positions, _, _ := setupKeeper(t)
	cfg := defaultFeeConfig()
	cfg.EntryFeeRate = math.LegacyZeroDec()
	mustCreateFund(t, k, ctx, "fund-1", cfg)

	if _, err := k.Contribute(ctx, testContributor, "fund-1", math.NewInt(1000), ""); err != nil {
		t.Fatalf("Contribute: %v", err)
	}
	mustDeploy(t, k, ctx, "fund-1")

	// 1/1000 of a net payout of 999 is 0.999, truncated to 0, permanently.
	positions.participation[testContributor] = math.NewInt(1)
	positions.total = math.NewInt(1000)

	if _, err := k.InjectProfit(ctx, testOperator, "fund-1", math.NewInt(999)); err != nil {
		t.Fatalf("InjectProfit: %v", err)
	}

	available := k.AvailableFunds(ctx, "fund-1", testContributor)
	if !available.IsZero() {
		t.Errorf("expected truncated share of zero, got %s", available)
	}
}

func TestAvailableFundsNoParticipationYet(t *testing.T) {
	k, ctx, positions, _, _ := setupKeeper(t)
	cfg := defaultFeeConfig()
	cfg.EntryFeeRate = math.LegacyZeroDec()
	mustCreateFund(t, k, ctx, "fund-1", cfg)

	if _, err := k.Contribute(ctx, testContributor, "fund-1", math.NewInt(1000), ""); err != nil {
		t.Fatalf("Contribute: %v", err)
	}
	mustDeploy(t, k, ctx, "fund-1")

	// Total participation of zero at the payout height contributes nothing
	// rather than dividing by zero.
	positions.total = math.ZeroInt()

	if _, err := k.InjectProfit(ctx, testOperator, "fund-1", math.NewInt(400)); err != nil {
		t.Fatalf("InjectProfit: %v", err)
	}

	available := k.AvailableFunds(ctx, "fund-1", testContributor)
	if !available.IsZero() {
		t.Errorf("expected zero available, got %s", available)
	}
}

func TestWithdraw(t *testing.T) {
	k, ctx, positions, _, bank := setupKeeper(t)
	cfg := defaultFeeConfig()
	cfg.EntryFeeRate = math.LegacyZeroDec()
	mustCreateFund(t, k, ctx, "fund-1", cfg)

	if _, err := k.Contribute(ctx, testContributor, "fund-1", math.NewInt(1000), ""); err != nil {
		t.Fatalf("Contribute: %v", err)
	}
	mustDeploy(t, k, ctx, "fund-1")

	positions.participation[testContributor] = math.NewInt(1000)
	positions.total = math.NewInt(1000)

	if _, err := k.InjectProfit(ctx, testOperator, "fund-1", math.NewInt(400)); err != nil {
		t.Fatalf("InjectProfit: %v", err)
	}

	// Entitled to the full 400 net.
	remaining, err := k.Withdraw(ctx, testContributor, "fund-1", math.NewInt(150))
	if err != nil {
		t.Fatalf("Withdraw: %v", err)
	}
	if !remaining.Equal(math.NewInt(250)) {
		t.Errorf("expected 250 remaining, got %s", remaining)
	}

	fund := k.GetFund(ctx, "fund-1")
	if !fund.Balance.Equal(math.NewInt(1250)) {
		t.Errorf("expected balance 1250, got %s", fund.Balance)
	}

	state := k.GetWithdrawalState(ctx, "fund-1", testContributor)
	if !state.TotalWithdrawn.Equal(math.NewInt(150)) {
		t.Errorf("expected withdrawn 150, got %s", state.TotalWithdrawn)
	}

	last := bank.toAccount[len(bank.toAccount)-1]
	if last.to != testContributor || !last.amount.AmountOf("uusdc").Equal(math.NewInt(150)) {
		t.Errorf("expected 150 paid to contributor, got %+v", last)
	}

	// A second withdrawal drains the rest; a third has nothing left.
	if _, err := k.Withdraw(ctx, testContributor, "fund-1", math.NewInt(250)); err != nil {
		t.Fatalf("second Withdraw: %v", err)
	}
	if _, err := k.Withdraw(ctx, testContributor, "fund-1", math.NewInt(1)); err != types.ErrWithdrawalExceedsAvailableFunds {
		t.Errorf("expected ErrWithdrawalExceedsAvailableFunds, got %v", err)
	}
}

func TestWithdrawRejections(t *testing.T) {
	k, ctx, positions, _, _ := setupKeeper(t)
	cfg := defaultFeeConfig()
	cfg.EntryFeeRate = math.LegacyZeroDec()
	mustCreateFund(t, k, ctx, "fund-1", cfg)

	if _, err := k.Contribute(ctx, testContributor, "fund-1", math.NewInt(1000), ""); err != nil {
		t.Fatalf("Contribute: %v", err)
	}
	mustDeploy(t, k, ctx, "fund-1")

	positions.participation[testContributor] = math.NewInt(1000)
	positions.total = math.NewInt(1000)

	if _, err := k.InjectProfit(ctx, testOperator, "fund-1", math.NewInt(400)); err != nil {
		t.Fatalf("InjectProfit: %v", err)
	}

	cases := []struct {
		name    string
		account string
		fundID  string
		amount  math.Int
		wantErr error
	}{
		{"unknown fund", testContributor, "missing", math.NewInt(10), types.ErrFundNotFound},
		{"zero amount", testContributor, "fund-1", math.ZeroInt(), types.ErrInvalidAmount},
		{"over entitlement", testContributor, "fund-1", math.NewInt(401), types.ErrWithdrawalExceedsAvailableFunds},
		{"no entitlement", testSecond, "fund-1", math.NewInt(10), types.ErrWithdrawalExceedsAvailableFunds},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := k.Withdraw(ctx, tc.account, tc.fundID, tc.amount); err != tc.wantErr {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestWithdrawAfterTransferUsesPayoutHeightOwnership(t *testing.T) {
	k, ctx, positions, _, _ := setupKeeper(t)
	cfg := defaultFeeConfig()
	cfg.EntryFeeRate = math.LegacyZeroDec()
	mustCreateFund(t, k, ctx, "fund-1", cfg)

	if _, err := k.Contribute(ctx, testContributor, "fund-1", math.NewInt(1000), ""); err != nil {
		t.Fatalf("Contribute: %v", err)
	}
	mustDeploy(t, k, ctx, "fund-1")

	// The position ledger answers for the payout's height, so a transfer
	// after the payout leaves entitlement with the holder of record.
	positions.participation[testContributor] = math.NewInt(1000)
	positions.total = math.NewInt(1000)

	if _, err := k.InjectProfit(ctx, testOperator, "fund-1", math.NewInt(400)); err != nil {
		t.Fatalf("InjectProfit: %v", err)
	}

	available := k.AvailableFunds(ctx, "fund-1", testContributor)
	if !available.Equal(math.NewInt(400)) {
		t.Errorf("expected 400 available to holder of record, got %s", available)
	}
	if got := k.AvailableFunds(ctx, "fund-1", testSecond); !got.IsZero() {
		t.Errorf("expected zero for later transferee, got %s", got)
	}
}
