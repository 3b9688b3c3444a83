package keeper

import (
	"testing"

	"cosmossdk.io/math"

	"github.com/openalpha/venture-fund/x/fund/types"
)

func TestInjectProfitBelowBreakeven(t *testing.T) {
	k, ctx, _, _, _ := setupKeeper(t)
	cfg := defaultFeeConfig()
	cfg.EntryFeeRate = math.LegacyZeroDec()
	cfg.CarryFeeRate = math.LegacyNewDecWithPrec(50, 2)
	mustCreateFund(t, k, ctx, "fund-1", cfg)

	if _, err := k.Contribute(ctx, testContributor, "fund-1", math.NewInt(1000), ""); err != nil {
		t.Fatalf("Contribute: %v", err)
	}
	mustDeploy(t, k, ctx, "fund-1")

	// 400 of 1000 breakeven consumed: entirely fee-free.
	payout, err := k.InjectProfit(ctx, testOperator, "fund-1", math.NewInt(400))
	if err != nil {
		t.Fatalf("InjectProfit: %v", err)
	}
	if !payout.FeeAmount.IsZero() {
		t.Errorf("expected zero fee below breakeven, got %s", payout.FeeAmount)
	}
	if !payout.NetAmount.Equal(math.NewInt(400)) {
		t.Errorf("expected net 400, got %s", payout.NetAmount)
	}

	fund := k.GetFund(ctx, "fund-1")
	if !fund.CumulativeProfit.Equal(math.NewInt(400)) {
		t.Errorf("expected cumulative profit 400, got %s", fund.CumulativeProfit)
	}
	if !fund.BreakevenRemaining().Equal(math.NewInt(600)) {
		t.Errorf("expected breakeven remaining 600, got %s", fund.BreakevenRemaining())
	}
	if !fund.Balance.Equal(math.NewInt(1400)) {
		t.Errorf("expected balance 1400, got %s", fund.Balance)
	}
}

func TestInjectProfitCrossingBreakeven(t *testing.T) {
	k, ctx, _, _, bank := setupKeeper(t)
	cfg := defaultFeeConfig()
	cfg.EntryFeeRate = math.LegacyZeroDec()
	cfg.CarryFeeRate = math.LegacyNewDecWithPrec(50, 2)
	mustCreateFund(t, k, ctx, "fund-1", cfg)

	if _, err := k.Contribute(ctx, testContributor, "fund-1", math.NewInt(100), ""); err != nil {
		t.Fatalf("Contribute: %v", err)
	}
	mustDeploy(t, k, ctx, "fund-1")

	// Inject 190 against a 100 breakeven: 100 fee-free, 90 above at 50%
	// carry, fee 45.
	payout, err := k.InjectProfit(ctx, testOperator, "fund-1", math.NewInt(190))
	if err != nil {
		t.Fatalf("InjectProfit: %v", err)
	}
	if !payout.FeeAmount.Equal(math.NewInt(45)) {
		t.Errorf("expected fee 45, got %s", payout.FeeAmount)
	}
	if !payout.NetAmount.Equal(math.NewInt(145)) {
		t.Errorf("expected net 145, got %s", payout.NetAmount)
	}

	// The carry fee went straight to the treasury.
	last := bank.toAccount[len(bank.toAccount)-1]
	if last.to != testTreasury || !last.amount.AmountOf("uusdc").Equal(math.NewInt(45)) {
		t.Errorf("expected fee 45 to treasury, got %+v", last)
	}

	// A second injection is now entirely above breakeven: 100 at 50% is 50.
	payout, err = k.InjectProfit(ctx, testOperator, "fund-1", math.NewInt(100))
	if err != nil {
		t.Fatalf("second InjectProfit: %v", err)
	}
	if !payout.FeeAmount.Equal(math.NewInt(50)) {
		t.Errorf("expected fee 50, got %s", payout.FeeAmount)
	}
}

func TestInjectProfitStakingDiscount(t *testing.T) {
	k, ctx, _, discounts, _ := setupKeeper(t)
	cfg := defaultFeeConfig()
	cfg.EntryFeeRate = math.LegacyZeroDec()
	cfg.CarryFeeRate = math.LegacyNewDecWithPrec(50, 2)
	mustCreateFund(t, k, ctx, "fund-1", cfg)

	if _, err := k.Contribute(ctx, testContributor, "fund-1", math.NewInt(100), ""); err != nil {
		t.Fatalf("Contribute: %v", err)
	}
	mustDeploy(t, k, ctx, "fund-1")

	// Burn through the breakeven first.
	if _, err := k.InjectProfit(ctx, testOperator, "fund-1", math.NewInt(100)); err != nil {
		t.Fatalf("InjectProfit: %v", err)
	}

	// A 50% fund-wide discount halves the effective carry: 100 * 0.5 * 0.5.
	discounts.current = math.LegacyNewDecWithPrec(50, 2)
	payout, err := k.InjectProfit(ctx, testOperator, "fund-1", math.NewInt(100))
	if err != nil {
		t.Fatalf("InjectProfit: %v", err)
	}
	if !payout.FeeAmount.Equal(math.NewInt(25)) {
		t.Errorf("expected fee 25, got %s", payout.FeeAmount)
	}
	if !payout.DiscountApplied.Equal(math.LegacyNewDecWithPrec(50, 2)) {
		t.Errorf("expected recorded discount 0.5, got %s", payout.DiscountApplied)
	}

	// A full discount zeroes the fee.
	discounts.current = math.LegacyOneDec()
	payout, err = k.InjectProfit(ctx, testOperator, "fund-1", math.NewInt(100))
	if err != nil {
		t.Fatalf("InjectProfit: %v", err)
	}
	if !payout.FeeAmount.IsZero() {
		t.Errorf("expected zero fee at full discount, got %s", payout.FeeAmount)
	}
}

func TestInjectProfitFeeTruncation(t *testing.T) {
	k, ctx, _, _, _ := setupKeeper(t)
	cfg := defaultFeeConfig()
	cfg.EntryFeeRate = math.LegacyZeroDec()
	cfg.CarryFeeRate = math.LegacyNewDecWithPrec(50, 2)
	mustCreateFund(t, k, ctx, "fund-1", cfg)

	if _, err := k.Contribute(ctx, testContributor, "fund-1", math.NewInt(10), ""); err != nil {
		t.Fatalf("Contribute: %v", err)
	}
	mustDeploy(t, k, ctx, "fund-1")

	// 13 against a 10 breakeven: 3 above at 50% is 1.5, truncated to 1.
	payout, err := k.InjectProfit(ctx, testOperator, "fund-1", math.NewInt(13))
	if err != nil {
		t.Fatalf("InjectProfit: %v", err)
	}
	if !payout.FeeAmount.Equal(math.NewInt(1)) {
		t.Errorf("expected truncated fee 1, got %s", payout.FeeAmount)
	}
	if !payout.NetAmount.Equal(math.NewInt(12)) {
		t.Errorf("expected net 12, got %s", payout.NetAmount)
	}
}

func TestInjectProfitRejections(t *testing.T) {
	k, ctx, _, _, _ := setupKeeper(t)
	mustCreateFund(t, k, ctx, "fund-1", defaultFeeConfig())

	// Injection is gated on the deployed phase.
	if _, err := k.InjectProfit(ctx, testOperator, "fund-1", math.NewInt(100)); err != types.ErrWrongPhase {
		t.Errorf("expected ErrWrongPhase, got %v", err)
	}
	mustDeploy(t, k, ctx, "fund-1")

	if _, err := k.InjectProfit(ctx, testContributor, "fund-1", math.NewInt(100)); err != types.ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := k.InjectProfit(ctx, testOperator, "fund-1", math.ZeroInt()); err != types.ErrInvalidAmount {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}
	if _, err := k.InjectProfit(ctx, testOperator, "missing", math.NewInt(100)); err != types.ErrFundNotFound {
		t.Errorf("expected ErrFundNotFound, got %v", err)
	}

	// A closed fund accepts no further injections.
	if _, err := k.CloseFund(ctx, testOperator, "fund-1"); err != nil {
		t.Fatalf("CloseFund: %v", err)
	}
	if _, err := k.InjectProfit(ctx, testOperator, "fund-1", math.NewInt(100)); err != types.ErrWrongPhase {
		t.Errorf("expected ErrWrongPhase on closed fund, got %v", err)
	}
}

func TestInjectProfitAppendsPayouts(t *testing.T) {
	k, ctx, _, _, _ := setupKeeper(t)
	cfg := defaultFeeConfig()
	cfg.EntryFeeRate = math.LegacyZeroDec()
	mustCreateFund(t, k, ctx, "fund-1", cfg)

	if _, err := k.Contribute(ctx, testContributor, "fund-1", math.NewInt(1000), ""); err != nil {
		t.Fatalf("Contribute: %v", err)
	}
	mustDeploy(t, k, ctx, "fund-1")

	for i := 0; i < 3; i++ {
		ctx = ctx.WithBlockHeight(int64(10 + i))
		if _, err := k.InjectProfit(ctx, testOperator, "fund-1", math.NewInt(100)); err != nil {
			t.Fatalf("InjectProfit %d: %v", i, err)
		}
	}

	if count := k.PayoutsCount(ctx, "fund-1"); count != 3 {
		t.Fatalf("expected 3 payouts, got %d", count)
	}
	payouts := k.GetPayouts(ctx, "fund-1")
	for i, payout := range payouts {
		if payout.Index != uint64(i) {
			t.Errorf("payout %d has index %d", i, payout.Index)
		}
		if payout.Height != int64(10+i) {
			t.Errorf("payout %d recorded height %d, expected %d", i, payout.Height, 10+i)
		}
	}
}

func TestWithdrawalCarryFeePreview(t *testing.T) {
	k, ctx, _, discounts, bank := setupKeeper(t)
	cfg := defaultFeeConfig()
	cfg.EntryFeeRate = math.LegacyZeroDec()
	cfg.CarryFeeRate = math.LegacyNewDecWithPrec(50, 2)
	mustCreateFund(t, k, ctx, "fund-1", cfg)

	if _, err := k.Contribute(ctx, testContributor, "fund-1", math.NewInt(100), ""); err != nil {
		t.Fatalf("Contribute: %v", err)
	}

	// The preview prices with the querying account's own discount, not the
	// fund-wide average.
	discounts.byAccount[testContributor] = math.LegacyNewDecWithPrec(50, 2)
	discounts.current = math.LegacyZeroDec()

	fee, err := k.WithdrawalCarryFee(ctx, "fund-1", testContributor, math.NewInt(300))
	if err != nil {
		t.Fatalf("WithdrawalCarryFee: %v", err)
	}
	// 100 fee-free, 200 above breakeven at 50% carry halved by the discount.
	if !fee.Equal(math.NewInt(50)) {
		t.Errorf("expected fee 50, got %s", fee)
	}

	// An account with no stake pays the full carry on the same amount.
	fee, err = k.WithdrawalCarryFee(ctx, "fund-1", testSecond, math.NewInt(300))
	if err != nil {
		t.Fatalf("WithdrawalCarryFee: %v", err)
	}
	if !fee.Equal(math.NewInt(100)) {
		t.Errorf("expected fee 100, got %s", fee)
	}

	// The preview mutates nothing.
	fund := k.GetFund(ctx, "fund-1")
	if !fund.CumulativeProfit.IsZero() {
		t.Errorf("preview must not move cumulative profit, got %s", fund.CumulativeProfit)
	}
	if transfers := len(bank.toModule) + len(bank.toAccount); transfers != 1 {
		t.Errorf("preview must not move coins, saw %d transfers", transfers)
	}

	if _, err := k.WithdrawalCarryFee(ctx, "missing", testContributor, math.NewInt(10)); err != types.ErrFundNotFound {
		t.Errorf("expected ErrFundNotFound, got %v", err)
	}
	if _, err := k.WithdrawalCarryFee(ctx, "fund-1", testContributor, math.ZeroInt()); err != types.ErrInvalidAmount {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}
}
