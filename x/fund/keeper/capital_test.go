package keeper

import (
	"testing"

	"cosmossdk.io/math"

	"github.com/openalpha/venture-fund/x/fund/types"
)

func TestContributeEntryFeeSplit(t *testing.T) {
	k, ctx, positions, _, bank := setupKeeper(t)
	mustCreateFund(t, k, ctx, "fund-1", defaultFeeConfig())

	positionID, err := k.Contribute(ctx, testContributor, "fund-1", math.NewInt(1000), "")
	if err != nil {
		t.Fatalf("Contribute: %v", err)
	}
	if positionID != 1 {
		t.Errorf("expected position id 1, got %d", positionID)
	}

	// 2% entry fee on 1000: fee 20, net 980. The position records the gross.
	fund := k.GetFund(ctx, "fund-1")
	if !fund.TotalContributed.Equal(math.NewInt(1000)) {
		t.Errorf("expected total contributed 1000, got %s", fund.TotalContributed)
	}
	if !fund.Balance.Equal(math.NewInt(980)) {
		t.Errorf("expected balance 980, got %s", fund.Balance)
	}

	if len(positions.minted) != 1 {
		t.Fatalf("expected 1 mint, got %d", len(positions.minted))
	}
	if !positions.minted[0].value.Equal(math.NewInt(1000)) {
		t.Errorf("position should carry gross 1000, got %s", positions.minted[0].value)
	}

	// Gross pulled into the module account, fee paid out to the treasury.
	if len(bank.toModule) != 1 || !bank.toModule[0].amount.AmountOf("uusdc").Equal(math.NewInt(1000)) {
		t.Errorf("expected 1000 pulled into module account, got %+v", bank.toModule)
	}
	if len(bank.toAccount) != 1 {
		t.Fatalf("expected 1 treasury transfer, got %d", len(bank.toAccount))
	}
	if bank.toAccount[0].to != testTreasury || !bank.toAccount[0].amount.AmountOf("uusdc").Equal(math.NewInt(20)) {
		t.Errorf("expected fee 20 to treasury, got %+v", bank.toAccount[0])
	}
}

func TestContributeZeroEntryFee(t *testing.T) {
	k, ctx, _, _, bank := setupKeeper(t)
	cfg := defaultFeeConfig()
	cfg.EntryFeeRate = math.LegacyZeroDec()
	mustCreateFund(t, k, ctx, "fund-1", cfg)

	if _, err := k.Contribute(ctx, testContributor, "fund-1", math.NewInt(500), ""); err != nil {
		t.Fatalf("Contribute: %v", err)
	}

	fund := k.GetFund(ctx, "fund-1")
	if !fund.Balance.Equal(math.NewInt(500)) {
		t.Errorf("expected balance 500, got %s", fund.Balance)
	}
	// No treasury transfer when the fee truncates to zero.
	if len(bank.toAccount) != 0 {
		t.Errorf("expected no treasury transfer, got %d", len(bank.toAccount))
	}
}

func TestContributeFeeTruncation(t *testing.T) {
	k, ctx, _, _, _ := setupKeeper(t)
	mustCreateFund(t, k, ctx, "fund-1", defaultFeeConfig())

	// 2% of 49 is 0.98, which truncates to 0.
	if _, err := k.Contribute(ctx, testContributor, "fund-1", math.NewInt(49), ""); err != nil {
		t.Fatalf("Contribute: %v", err)
	}

	fund := k.GetFund(ctx, "fund-1")
	if !fund.Balance.Equal(math.NewInt(49)) {
		t.Errorf("expected truncated fee to leave balance 49, got %s", fund.Balance)
	}
}

func TestContributeInvestmentCap(t *testing.T) {
	k, ctx, _, _, _ := setupKeeper(t)
	cfg := defaultFeeConfig()
	cfg.InvestmentCap = math.NewInt(1000)
	mustCreateFund(t, k, ctx, "fund-1", cfg)

	if _, err := k.Contribute(ctx, testContributor, "fund-1", math.NewInt(800), ""); err != nil {
		t.Fatalf("first contribution: %v", err)
	}

	// The cap binds gross contributions: 800 + 300 > 1000.
	if _, err := k.Contribute(ctx, testSecond, "fund-1", math.NewInt(300), ""); err != types.ErrCapExceeded {
		t.Errorf("expected ErrCapExceeded, got %v", err)
	}

	// Filling exactly to the cap is allowed.
	if _, err := k.Contribute(ctx, testSecond, "fund-1", math.NewInt(200), ""); err != nil {
		t.Errorf("contribution up to cap: %v", err)
	}
}

func TestContributeUncapped(t *testing.T) {
	k, ctx, _, _, _ := setupKeeper(t)
	mustCreateFund(t, k, ctx, "fund-1", defaultFeeConfig())

	// Zero cap means no cap.
	if _, err := k.Contribute(ctx, testContributor, "fund-1", math.NewInt(1_000_000_000), ""); err != nil {
		t.Errorf("uncapped contribution: %v", err)
	}
}

func TestContributeRejections(t *testing.T) {
	k, ctx, _, _, _ := setupKeeper(t)
	mustCreateFund(t, k, ctx, "fund-1", defaultFeeConfig())

	cases := []struct {
		name        string
		contributor string
		fundID      string
		amount      math.Int
		wantErr     error
	}{
		{"unknown fund", testContributor, "missing", math.NewInt(100), types.ErrFundNotFound},
		{"zero amount", testContributor, "fund-1", math.ZeroInt(), types.ErrInvalidAmount},
		{"negative amount", testContributor, "fund-1", math.NewInt(-5), types.ErrInvalidAmount},
		{"bad address", "not-bech32", "fund-1", math.NewInt(100), types.ErrInvalidAddress},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := k.Contribute(ctx, tc.contributor, tc.fundID, tc.amount, ""); err != tc.wantErr {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestContributeClosedToDeployedFund(t *testing.T) {
	k, ctx, _, _, _ := setupKeeper(t)
	mustCreateFund(t, k, ctx, "fund-1", defaultFeeConfig())
	mustDeploy(t, k, ctx, "fund-1")

	if _, err := k.Contribute(ctx, testContributor, "fund-1", math.NewInt(100), ""); err != types.ErrWrongPhase {
		t.Errorf("expected ErrWrongPhase, got %v", err)
	}
}

func TestPhaseLifecycle(t *testing.T) {
	k, ctx, _, _, _ := setupKeeper(t)
	mustCreateFund(t, k, ctx, "fund-1", defaultFeeConfig())

	// Only the operator advances phases.
	if _, err := k.CloseFunding(ctx, testContributor, "fund-1"); err != types.ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}

	// Closing a fund still in the funding phase skips a step.
	if _, err := k.CloseFund(ctx, testOperator, "fund-1"); err != types.ErrWrongPhase {
		t.Errorf("expected ErrWrongPhase, got %v", err)
	}

	fund, err := k.CloseFunding(ctx, testOperator, "fund-1")
	if err != nil {
		t.Fatalf("CloseFunding: %v", err)
	}
	if fund.Phase != types.PhaseDeployed {
		t.Errorf("expected deployed phase, got %s", fund.Phase)
	}

	// Closing funding twice is rejected.
	if _, err := k.CloseFunding(ctx, testOperator, "fund-1"); err != types.ErrWrongPhase {
		t.Errorf("expected ErrWrongPhase, got %v", err)
	}

	fund, err = k.CloseFund(ctx, testOperator, "fund-1")
	if err != nil {
		t.Fatalf("CloseFund: %v", err)
	}
	if fund.Phase != types.PhaseClosed {
		t.Errorf("expected closed phase, got %s", fund.Phase)
	}
}

func TestDeployCapital(t *testing.T) {
	k, ctx, _, _, bank := setupKeeper(t)
	cfg := defaultFeeConfig()
	cfg.EntryFeeRate = math.LegacyZeroDec()
	mustCreateFund(t, k, ctx, "fund-1", cfg)

	if _, err := k.Contribute(ctx, testContributor, "fund-1", math.NewInt(1000), ""); err != nil {
		t.Fatalf("Contribute: %v", err)
	}

	// Deployment is gated on the deployed phase.
	if _, err := k.DeployCapital(ctx, testOperator, "fund-1", testDestination, math.NewInt(400)); err != types.ErrWrongPhase {
		t.Errorf("expected ErrWrongPhase, got %v", err)
	}
	mustDeploy(t, k, ctx, "fund-1")

	if _, err := k.DeployCapital(ctx, testContributor, "fund-1", testDestination, math.NewInt(400)); err != types.ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := k.DeployCapital(ctx, testOperator, "fund-1", testDestination, math.NewInt(1001)); err != types.ErrInsufficientBalance {
		t.Errorf("expected ErrInsufficientBalance, got %v", err)
	}

	fund, err := k.DeployCapital(ctx, testOperator, "fund-1", testDestination, math.NewInt(400))
	if err != nil {
		t.Fatalf("DeployCapital: %v", err)
	}
	if !fund.Balance.Equal(math.NewInt(600)) {
		t.Errorf("expected balance 600, got %s", fund.Balance)
	}
	// TotalContributed is monotonic; deployment does not shrink it.
	if !fund.TotalContributed.Equal(math.NewInt(1000)) {
		t.Errorf("expected total contributed 1000, got %s", fund.TotalContributed)
	}

	last := bank.toAccount[len(bank.toAccount)-1]
	if last.to != testDestination || !last.amount.AmountOf("uusdc").Equal(math.NewInt(400)) {
		t.Errorf("expected 400 sent to destination, got %+v", last)
	}
}

func TestReturnCapitalIsNotProfit(t *testing.T) {
	k, ctx, _, _, _ := setupKeeper(t)
	cfg := defaultFeeConfig()
	cfg.EntryFeeRate = math.LegacyZeroDec()
	mustCreateFund(t, k, ctx, "fund-1", cfg)

	if _, err := k.Contribute(ctx, testContributor, "fund-1", math.NewInt(1000), ""); err != nil {
		t.Fatalf("Contribute: %v", err)
	}
	mustDeploy(t, k, ctx, "fund-1")

	if _, err := k.DeployCapital(ctx, testOperator, "fund-1", testDestination, math.NewInt(1000)); err != nil {
		t.Fatalf("DeployCapital: %v", err)
	}

	fund, err := k.ReturnCapital(ctx, testDestination, "fund-1", math.NewInt(600))
	if err != nil {
		t.Fatalf("ReturnCapital: %v", err)
	}
	if !fund.Balance.Equal(math.NewInt(600)) {
		t.Errorf("expected balance 600, got %s", fund.Balance)
	}
	// Principal coming back is not profit: the breakeven threshold must be
	// untouched so a later injection is still fee-free up to 1000.
	if !fund.CumulativeProfit.IsZero() {
		t.Errorf("expected zero cumulative profit, got %s", fund.CumulativeProfit)
	}
	if !fund.BreakevenRemaining().Equal(math.NewInt(1000)) {
		t.Errorf("expected breakeven remaining 1000, got %s", fund.BreakevenRemaining())
	}
}

func TestSetFeeConfig(t *testing.T) {
	k, ctx, _, _, _ := setupKeeper(t)
	mustCreateFund(t, k, ctx, "fund-1", defaultFeeConfig())

	updated := types.FeeConfig{
		EntryFeeRate:  math.LegacyNewDecWithPrec(1, 2),
		CarryFeeRate:  math.LegacyNewDecWithPrec(25, 2),
		InvestmentCap: math.NewInt(5000),
	}

	if err := k.SetFeeConfig(ctx, testContributor, "fund-1", updated); err != types.ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}

	bad := updated
	bad.CarryFeeRate = math.LegacyNewDec(2)
	if err := k.SetFeeConfig(ctx, testOperator, "fund-1", bad); err != types.ErrInvalidFeeConfig {
		t.Errorf("expected ErrInvalidFeeConfig, got %v", err)
	}

	if err := k.SetFeeConfig(ctx, testOperator, "fund-1", updated); err != nil {
		t.Fatalf("SetFeeConfig: %v", err)
	}
	fund := k.GetFund(ctx, "fund-1")
	if !fund.FeeConfig.CarryFeeRate.Equal(math.LegacyNewDecWithPrec(25, 2)) {
		t.Errorf("expected carry rate 0.25, got %s", fund.FeeConfig.CarryFeeRate)
	}
	if !fund.FeeConfig.InvestmentCap.Equal(math.NewInt(5000)) {
		t.Errorf("expected cap 5000, got %s", fund.FeeConfig.InvestmentCap)
	}
}
