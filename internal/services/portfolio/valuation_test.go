package portfolio

import (
	"reflect"
	"testing"

	"github.com/brfintools/fiitrack/internal/models"
)

func TestBuildAssetsWithSnapshot(t *testing.T) {
	positions := map[string]models.Position{
		"HGLG11": {Quantity: 100, TotalCost: 1500},
	}
	market := map[string]*models.MarketSnapshot{
		"HGLG11": {
			Ticker:       "HGLG11",
			CurrentPrice: 16.5,
			DY:           9.6,
			PVP:          0.98,
			Segment:      "Logística",
		},
	}

	assets := BuildAssets(positions, market)
	if len(assets) != 1 {
		t.Fatalf("expected 1 asset, got %d", len(assets))
	}

	a := assets[0]
	if !almostEqual(a.AvgPrice, 15) {
		t.Errorf("avg price = %v, want 15", a.AvgPrice)
	}
	if !almostEqual(a.MarketValue, 1650) {
		t.Errorf("market value = %v, want 1650", a.MarketValue)
	}
	if !almostEqual(a.UnrealizedGain, 150) {
		t.Errorf("unrealized gain = %v, want 150", a.UnrealizedGain)
	}
	if !almostEqual(a.UnrealizedGainPct, 10) {
		t.Errorf("unrealized gain pct = %v, want 10", a.UnrealizedGainPct)
	}
	if !almostEqual(a.ProjectedAnnualIncome, 1650*9.6/100) {
		t.Errorf("projected income = %v", a.ProjectedAnnualIncome)
	}
	if !almostEqual(a.YieldOnCost, 1650*9.6/100/1500*100) {
		t.Errorf("yield on cost = %v", a.YieldOnCost)
	}
	if a.Segment != "Logística" {
		t.Errorf("segment = %q", a.Segment)
	}
	if a.PriceIsEstimate {
		t.Error("price should not be flagged as estimate")
	}
}

func TestBuildAssetsNoSnapshotFallsBackToCost(t *testing.T) {
	positions := map[string]models.Position{
		"MXRF11": {Quantity: 200, TotalCost: 1900},
	}

	assets := BuildAssets(positions, nil)
	a := assets[0]
	if !almostEqual(a.CurrentPrice, 9.5) {
		t.Errorf("current price = %v, want avg price 9.5", a.CurrentPrice)
	}
	if !almostEqual(a.MarketValue, 1900) {
		t.Errorf("market value = %v, want invested 1900", a.MarketValue)
	}
	if !almostEqual(a.UnrealizedGain, 0) {
		t.Errorf("unrealized gain = %v, want 0", a.UnrealizedGain)
	}
	if !a.PriceIsEstimate {
		t.Error("cost-valued asset should be flagged as estimate")
	}
	if a.Segment != models.DefaultSegment {
		t.Errorf("segment = %q, want %q", a.Segment, models.DefaultSegment)
	}
}

func TestBuildAssetsSortedByTicker(t *testing.T) {
	positions := map[string]models.Position{
		"XPML11": {Quantity: 1, TotalCost: 100},
		"HGLG11": {Quantity: 1, TotalCost: 100},
		"MXRF11": {Quantity: 1, TotalCost: 10},
	}

	assets := BuildAssets(positions, nil)
	want := []string{"HGLG11", "MXRF11", "XPML11"}
	for i, w := range want {
		if assets[i].Ticker != w {
			t.Fatalf("assets[%d] = %s, want %s", i, assets[i].Ticker, w)
		}
	}
}

func TestBuildAssetsIdempotent(t *testing.T) {
	positions := map[string]models.Position{
		"HGLG11": {Quantity: 100, TotalCost: 1500},
		"MXRF11": {Quantity: 200, TotalCost: 1900},
	}
	market := map[string]*models.MarketSnapshot{
		"HGLG11": {Ticker: "HGLG11", CurrentPrice: 16.5, DY: 9.6, Segment: "Logística"},
	}

	first := BuildAssets(positions, market)
	second := BuildAssets(positions, market)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated valuation differs:\n%+v\n%+v", first, second)
	}
}

func TestSummarize(t *testing.T) {
	assets := []models.Asset{
		{Invested: 1000, MarketValue: 1100, DY: 10, ProjectedAnnualIncome: 110},
		{Invested: 2000, MarketValue: 1900, DY: 8, ProjectedAnnualIncome: 152},
	}

	s := Summarize(assets)
	if !almostEqual(s.TotalInvested, 3000) {
		t.Errorf("total invested = %v", s.TotalInvested)
	}
	if !almostEqual(s.MarketValue, 3000) {
		t.Errorf("market value = %v", s.MarketValue)
	}
	if !almostEqual(s.UnrealizedGain, 0) {
		t.Errorf("unrealized gain = %v", s.UnrealizedGain)
	}
	if !almostEqual(s.MonthlyIncomeEst, (110+152)/12.0) {
		t.Errorf("monthly income = %v", s.MonthlyIncomeEst)
	}
	wantYield := (10*1100 + 8*1900) / 3000.0
	if !almostEqual(s.AvgYield, wantYield) {
		t.Errorf("avg yield = %v, want %v", s.AvgYield, wantYield)
	}
	if s.AssetCount != 2 {
		t.Errorf("asset count = %d", s.AssetCount)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.TotalInvested != 0 || s.MarketValue != 0 || s.AvgYield != 0 {
		t.Errorf("empty summary should be all zero: %+v", s)
	}
}
