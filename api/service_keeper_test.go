package api

import (
	"context"
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	fundtypes "github.com/openalpha/venture-fund/x/fund/types"
)

var (
	ksOperator    = sdk.AccAddress([]byte("ks-operator_________")).String()
	ksTreasury    = sdk.AccAddress([]byte("ks-treasury_________")).String()
	ksContributor = sdk.AccAddress([]byte("ks-contributor______")).String()
)

func keeperServiceFixture(tb testing.TB) *KeeperService {
	tb.Helper()

	ks := NewKeeperService()
	cfg := fundtypes.FeeConfig{
		EntryFeeRate:  math.LegacyNewDecWithPrec(2, 2),
		CarryFeeRate:  math.LegacyNewDecWithPrec(20, 2),
		InvestmentCap: math.ZeroInt(),
	}
	if _, err := ks.FundKeeper().CreateFund(ks.GetContext(), ksOperator, "fund-a", "uusdc", ksTreasury, cfg); err != nil {
		tb.Fatalf("CreateFund: %v", err)
	}
	return ks
}

func TestKeeperServiceFunds(t *testing.T) {
	ks := keeperServiceFixture(t)
	ctx := context.Background()

	fund, err := ks.GetFund(ctx, "fund-a")
	if err != nil {
		t.Fatalf("GetFund: %v", err)
	}
	if fund.Phase != "funding" || fund.Denom != "uusdc" {
		t.Errorf("unexpected fund: phase %s denom %s", fund.Phase, fund.Denom)
	}
	if fund.TotalContributed != "0" || fund.Balance != "0" {
		t.Errorf("expected zeroed ledgers, got contributed %s balance %s", fund.TotalContributed, fund.Balance)
	}
	if fund.EntryFeeRate != "0.020000000000000000" {
		t.Errorf("unexpected entry fee rate %s", fund.EntryFeeRate)
	}

	funds, err := ks.GetFunds(ctx)
	if err != nil {
		t.Fatalf("GetFunds: %v", err)
	}
	if len(funds) != 1 || funds[0].FundID != "fund-a" {
		t.Fatalf("expected the created fund, got %+v", funds)
	}

	if _, err := ks.GetFund(ctx, "missing"); err == nil {
		t.Error("expected error for unknown fund")
	}
}

func TestKeeperServicePayoutsAndEntitlement(t *testing.T) {
	ks := keeperServiceFixture(t)
	ctx := context.Background()
	sdkCtx := ks.GetContext()
	fk := ks.FundKeeper()

	if _, err := fk.Contribute(sdkCtx, ksContributor, "fund-a", math.NewInt(1000), ""); err != nil {
		t.Fatalf("Contribute: %v", err)
	}
	if _, err := fk.CloseFunding(sdkCtx, ksOperator, "fund-a"); err != nil {
		t.Fatalf("CloseFunding: %v", err)
	}
	// 400 of injected profit is below the 1000 breakeven, so no carry fee
	// is taken and the full amount becomes distributable.
	if _, err := fk.InjectProfit(sdkCtx, ksOperator, "fund-a", math.NewInt(400)); err != nil {
		t.Fatalf("InjectProfit: %v", err)
	}

	resp, err := ks.GetPayouts(ctx, "fund-a", 0, 10)
	if err != nil {
		t.Fatalf("GetPayouts: %v", err)
	}
	if resp.Total != 1 || len(resp.Payouts) != 1 {
		t.Fatalf("expected 1 payout, got total %d len %d", resp.Total, len(resp.Payouts))
	}
	if resp.Payouts[0].NetAmount != "400" || resp.Payouts[0].FeeAmount != "0" {
		t.Errorf("unexpected payout amounts: net %s fee %s", resp.Payouts[0].NetAmount, resp.Payouts[0].FeeAmount)
	}

	fund, _ := ks.GetFund(ctx, "fund-a")
	if fund.PayoutsCount != 1 {
		t.Errorf("expected payouts count 1, got %d", fund.PayoutsCount)
	}

	// Sole participant, so the whole net payout is withdrawable.
	ent, err := ks.GetEntitlement(ctx, "fund-a", ksContributor)
	if err != nil {
		t.Fatalf("GetEntitlement: %v", err)
	}
	if ent.Available != "400" || ent.TotalWithdrawn != "0" {
		t.Errorf("unexpected entitlement: available %s withdrawn %s", ent.Available, ent.TotalWithdrawn)
	}

	if _, err := ks.GetPayouts(ctx, "missing", 0, 10); err == nil {
		t.Error("expected error for unknown fund")
	}
}

func TestKeeperServiceHoldersAndPositions(t *testing.T) {
	ks := keeperServiceFixture(t)
	ctx := context.Background()

	positionID, err := ks.FundKeeper().Contribute(ks.GetContext(), ksContributor, "fund-a", math.NewInt(1000), "")
	if err != nil {
		t.Fatalf("Contribute: %v", err)
	}

	holders, err := ks.GetHolders(ctx, "fund-a")
	if err != nil {
		t.Fatalf("GetHolders: %v", err)
	}
	if len(holders.Holders) != 1 {
		t.Fatalf("expected 1 holder, got %d", len(holders.Holders))
	}
	// Positions carry the gross contribution, not the post-fee amount.
	if holders.Holders[0].Account != ksContributor || holders.Holders[0].Value != "1000" {
		t.Errorf("unexpected holder: %+v", holders.Holders[0])
	}

	position, err := ks.GetPosition(ctx, positionID)
	if err != nil {
		t.Fatalf("GetPosition: %v", err)
	}
	if position.Owner != ksContributor || position.Value != "1000" {
		t.Errorf("unexpected position: %+v", position)
	}
	if _, err := ks.GetPosition(ctx, 999); err == nil {
		t.Error("expected error for unknown position")
	}

	positions, err := ks.GetAccountPositions(ctx, ksContributor)
	if err != nil {
		t.Fatalf("GetAccountPositions: %v", err)
	}
	if len(positions) != 1 || positions[0].PositionID != positionID {
		t.Fatalf("expected the minted position, got %+v", positions)
	}

	checkpoints, err := ks.GetCheckpoints(ctx, "fund-a", ksContributor)
	if err != nil {
		t.Fatalf("GetCheckpoints: %v", err)
	}
	if len(checkpoints) != 1 || checkpoints[0].Value != "1000" {
		t.Fatalf("expected one checkpoint of 1000, got %+v", checkpoints)
	}
}

func TestKeeperServiceStakeAndDiscount(t *testing.T) {
	ks := keeperServiceFixture(t)
	ctx := context.Background()

	if _, err := ks.GetStake(ctx, "fund-a", ksContributor); err == nil {
		t.Error("expected error for missing stake")
	}

	// No stake resolves to a zero discount, not an error.
	discount, err := ks.GetDiscount(ctx, "fund-a", ksContributor)
	if err != nil {
		t.Fatalf("GetDiscount: %v", err)
	}
	if discount.Discount != "0.000000000000000000" {
		t.Errorf("expected zero discount, got %s", discount.Discount)
	}

	if _, err := ks.StakeKeeper().Stake(ks.GetContext(), ksContributor, "fund-a", math.NewInt(500)); err != nil {
		t.Fatalf("Stake: %v", err)
	}

	stake, err := ks.GetStake(ctx, "fund-a", ksContributor)
	if err != nil {
		t.Fatalf("GetStake: %v", err)
	}
	if stake.Amount != "500" || stake.StakedAt != 1 {
		t.Errorf("unexpected stake: %+v", stake)
	}
}
