package api

import (
	"context"
	"testing"

	"github.com/openalpha/venture-fund/api/types"
)

func testFund(fundID string) *types.Fund {
	return &types.Fund{
		FundID:           fundID,
		Phase:            "funding",
		Denom:            "uusdc",
		TotalContributed: "0",
		CumulativeProfit: "0",
		Balance:          "0",
		EntryFeeRate:     "0.020000000000000000",
		CarryFeeRate:     "0.200000000000000000",
		InvestmentCap:    "0",
	}
}

func TestMockServiceFunds(t *testing.T) {
	ms := NewMockService()
	ctx := context.Background()

	funds, err := ms.GetFunds(ctx)
	if err != nil {
		t.Fatalf("GetFunds: %v", err)
	}
	if len(funds) != 0 {
		t.Errorf("expected empty service, got %d funds", len(funds))
	}

	ms.RecordFund(testFund("fund-b"))
	ms.RecordFund(testFund("fund-a"))

	funds, _ = ms.GetFunds(ctx)
	if len(funds) != 2 {
		t.Fatalf("expected 2 funds, got %d", len(funds))
	}
	// Listed in fund ID order.
	if funds[0].FundID != "fund-a" || funds[1].FundID != "fund-b" {
		t.Errorf("unexpected order: %s, %s", funds[0].FundID, funds[1].FundID)
	}

	if _, err := ms.GetFund(ctx, "missing"); err == nil {
		t.Error("expected error for unknown fund")
	}
}

func TestMockServicePayouts(t *testing.T) {
	ms := NewMockService()
	ctx := context.Background()

	ms.RecordFund(testFund("fund-a"))
	for i := uint64(0); i < 5; i++ {
		ms.RecordPayout(&types.Payout{
			FundID:      "fund-a",
			Index:       i,
			Height:      int64(100 + i),
			GrossAmount: "100",
			FeeAmount:   "0",
			NetAmount:   "100",
		})
	}

	resp, err := ms.GetPayouts(ctx, "fund-a", 0, 3)
	if err != nil {
		t.Fatalf("GetPayouts: %v", err)
	}
	if resp.Total != 5 || len(resp.Payouts) != 3 {
		t.Errorf("expected total 5 page 3, got total %d page %d", resp.Total, len(resp.Payouts))
	}

	// Recording a payout keeps the fund's payout counter in sync.
	fund, _ := ms.GetFund(ctx, "fund-a")
	if fund.PayoutsCount != 5 {
		t.Errorf("expected payouts count 5, got %d", fund.PayoutsCount)
	}

	if _, err := ms.GetPayouts(ctx, "missing", 0, 10); err == nil {
		t.Error("expected error for unknown fund")
	}
}

func TestMockServiceHolders(t *testing.T) {
	ms := NewMockService()
	ctx := context.Background()

	ms.RecordFund(testFund("fund-a"))
	ms.RecordPosition(&types.Position{PositionID: 1, FundID: "fund-a", Owner: "acct-b", Value: "100"})
	ms.RecordPosition(&types.Position{PositionID: 2, FundID: "fund-a", Owner: "acct-a", Value: "200"})
	ms.RecordPosition(&types.Position{PositionID: 3, FundID: "fund-a", Owner: "acct-a", Value: "50"})
	ms.RecordPosition(&types.Position{PositionID: 4, FundID: "fund-a", Owner: "acct-c", Value: "999", Retired: true})
	ms.RecordPosition(&types.Position{PositionID: 5, FundID: "fund-other", Owner: "acct-a", Value: "999"})

	resp, err := ms.GetHolders(ctx, "fund-a")
	if err != nil {
		t.Fatalf("GetHolders: %v", err)
	}
	// Retired and foreign positions are excluded; live ones aggregate by
	// owner and sort by account.
	if len(resp.Holders) != 2 {
		t.Fatalf("expected 2 holders, got %d", len(resp.Holders))
	}
	if resp.Holders[0].Account != "acct-a" || resp.Holders[0].Value != "250" {
		t.Errorf("expected acct-a with 250, got %+v", resp.Holders[0])
	}
	if resp.Holders[1].Account != "acct-b" || resp.Holders[1].Value != "100" {
		t.Errorf("expected acct-b with 100, got %+v", resp.Holders[1])
	}
}

func TestMockServicePositions(t *testing.T) {
	ms := NewMockService()
	ctx := context.Background()

	ms.RecordPosition(&types.Position{PositionID: 2, FundID: "fund-a", Owner: "acct-a", Value: "200"})
	ms.RecordPosition(&types.Position{PositionID: 1, FundID: "fund-a", Owner: "acct-a", Value: "100"})
	ms.RecordPosition(&types.Position{PositionID: 3, FundID: "fund-a", Owner: "acct-b", Value: "300"})

	pos, err := ms.GetPosition(ctx, 2)
	if err != nil || pos.Value != "200" {
		t.Errorf("expected position 2 with value 200, got %+v (%v)", pos, err)
	}
	if _, err := ms.GetPosition(ctx, 99); err == nil {
		t.Error("expected error for unknown position")
	}

	positions, _ := ms.GetAccountPositions(ctx, "acct-a")
	if len(positions) != 2 {
		t.Fatalf("expected 2 positions, got %d", len(positions))
	}
	if positions[0].PositionID != 1 || positions[1].PositionID != 2 {
		t.Errorf("positions not in id order: %+v", positions)
	}
}

func TestMockServiceCheckpoints(t *testing.T) {
	ms := NewMockService()
	ctx := context.Background()

	ms.RecordCheckpoint("fund-a", "acct-a", &types.Checkpoint{Height: 10, Value: "100"})
	ms.RecordCheckpoint("fund-a", "acct-a", &types.Checkpoint{Height: 10, Value: "150"})
	ms.RecordCheckpoint("fund-a", "acct-a", &types.Checkpoint{Height: 20, Value: "300"})

	checkpoints, err := ms.GetCheckpoints(ctx, "fund-a", "acct-a")
	if err != nil {
		t.Fatalf("GetCheckpoints: %v", err)
	}
	// Same-height entries coalesce into the later value.
	if len(checkpoints) != 2 {
		t.Fatalf("expected 2 checkpoints, got %d", len(checkpoints))
	}
	if checkpoints[0].Value != "150" || checkpoints[1].Value != "300" {
		t.Errorf("unexpected checkpoint values: %+v", checkpoints)
	}
}

func TestMockServiceStakeAndDiscount(t *testing.T) {
	ms := NewMockService()
	ctx := context.Background()

	if _, err := ms.GetStake(ctx, "fund-a", "acct-a"); err == nil {
		t.Error("expected error for unknown stake")
	}

	ms.RecordStake(&types.Stake{Staker: "acct-a", FundID: "fund-a", Amount: "1000", StakedAt: 10})
	stake, err := ms.GetStake(ctx, "fund-a", "acct-a")
	if err != nil || stake.Amount != "1000" {
		t.Errorf("expected stake 1000, got %+v (%v)", stake, err)
	}

	// No discount record reads as zero, not as an error.
	discount, err := ms.GetDiscount(ctx, "fund-a", "acct-a")
	if err != nil {
		t.Fatalf("GetDiscount: %v", err)
	}
	if discount.Discount != "0.000000000000000000" {
		t.Errorf("expected zero discount, got %s", discount.Discount)
	}

	ms.RecordDiscount(&types.Discount{FundID: "fund-a", Account: "acct-a", Discount: "0.250000000000000000"})
	discount, _ = ms.GetDiscount(ctx, "fund-a", "acct-a")
	if discount.Discount != "0.250000000000000000" {
		t.Errorf("expected discount 0.25, got %s", discount.Discount)
	}
}

func TestMockServiceEntitlements(t *testing.T) {
	ms := NewMockService()
	ctx := context.Background()

	if _, err := ms.GetEntitlement(ctx, "fund-a", "acct-a"); err == nil {
		t.Error("expected error before any entitlement recorded")
	}

	ms.RecordEntitlement(&types.Entitlement{FundID: "fund-a", Account: "acct-a", Available: "100", TotalWithdrawn: "0"})
	ms.RecordEntitlement(&types.Entitlement{FundID: "fund-a", Account: "acct-b", Available: "400", TotalWithdrawn: "0"})

	ent, err := ms.GetEntitlement(ctx, "fund-a", "acct-a")
	if err != nil || ent.Available != "100" {
		t.Errorf("expected available 100, got %+v (%v)", ent, err)
	}

	top := ms.TopEntitlements("fund-a", 1)
	if len(top) != 1 || top[0].Account != "acct-b" {
		t.Errorf("expected acct-b on top, got %+v", top)
	}
}
