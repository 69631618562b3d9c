package analyst

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brfintools/fiitrack/internal/common"
	"github.com/brfintools/fiitrack/internal/models"
)

type fakePortfolio struct {
	assets []models.Asset
	err    error
}

func (f *fakePortfolio) GetAssets(_ context.Context) ([]models.Asset, error) {
	return f.assets, f.err
}
func (f *fakePortfolio) GetSummary(context.Context) (*models.PortfolioSummary, error) {
	return nil, nil
}
func (f *fakePortfolio) GetDividends(context.Context) ([]models.Dividend, error)       { return nil, nil }
func (f *fakePortfolio) GetMonthlyIncome(context.Context) ([]models.MonthlyIncome, error) {
	return nil, nil
}
func (f *fakePortfolio) GetEvolution(context.Context) (models.PortfolioEvolution, error) {
	return nil, nil
}
func (f *fakePortfolio) RenderEvolutionChart(context.Context) ([]byte, error) { return nil, nil }

type fakeAI struct {
	answer     string
	err        error
	lastPrompt string
}

func (f *fakeAI) GenerateText(_ context.Context, prompt string) (string, *models.AnalystStats, error) {
	f.lastPrompt = prompt
	if f.err != nil {
		return "", nil, f.err
	}
	return f.answer, &models.AnalystStats{PromptTokens: 100, OutputTokens: 50}, nil
}
func (f *fakeAI) ModelName() string { return "test-model" }
func (f *fakeAI) Close() error      { return nil }

func testAsset() models.Asset {
	return models.Asset{
		Ticker:       "HGLG11",
		Name:         "CSHG Logística",
		Segment:      "Logística",
		Quantity:     100,
		AvgPrice:     150,
		Invested:     15000,
		CurrentPrice: 162.5,
		MarketValue:  16250,
		DY:           9.6,
		PVP:          0.98,
	}
}

func TestAsk(t *testing.T) {
	ai := &fakeAI{answer: "O fundo está com P/VP abaixo de 1."}
	svc := NewService(&fakePortfolio{assets: []models.Asset{testAsset()}}, ai, common.NewSilentLogger())

	answer, err := svc.Ask(context.Background(), "hglg11", "O fundo está caro?")
	require.NoError(t, err)

	assert.Equal(t, "HGLG11", answer.Ticker)
	assert.Equal(t, "O fundo está com P/VP abaixo de 1.", answer.Answer)
	assert.Equal(t, "test-model", answer.Model)
	require.NotNil(t, answer.Stats)
	assert.Equal(t, int32(100), answer.Stats.PromptTokens)
	assert.False(t, answer.GeneratedAt.IsZero())

	// Prompt carries the asset's numbers and the question.
	assert.Contains(t, ai.lastPrompt, "HGLG11")
	assert.Contains(t, ai.lastPrompt, "Logística")
	assert.Contains(t, ai.lastPrompt, "O fundo está caro?")
	assert.Contains(t, ai.lastPrompt, common.FormatBRL(162.5))
}

func TestAskUnknownTicker(t *testing.T) {
	svc := NewService(&fakePortfolio{assets: []models.Asset{testAsset()}}, &fakeAI{}, common.NewSilentLogger())

	_, err := svc.Ask(context.Background(), "XPML11", "Vale a pena?")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not in the portfolio")
}

func TestAskValidation(t *testing.T) {
	svc := NewService(&fakePortfolio{}, &fakeAI{}, common.NewSilentLogger())

	_, err := svc.Ask(context.Background(), "", "question")
	assert.Error(t, err)

	_, err = svc.Ask(context.Background(), "HGLG11", "   ")
	assert.Error(t, err)
}

func TestAskAIFailure(t *testing.T) {
	ai := &fakeAI{err: fmt.Errorf("quota exceeded")}
	svc := NewService(&fakePortfolio{assets: []models.Asset{testAsset()}}, ai, common.NewSilentLogger())

	_, err := svc.Ask(context.Background(), "HGLG11", "Vale a pena?")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "quota exceeded"))
}

func TestBuildAssetPromptDividendTail(t *testing.T) {
	asset := testAsset()
	for i := 0; i < 10; i++ {
		asset.DividendsHistory = append(asset.DividendsHistory, models.DividendEvent{
			AmountPerShare: float64(i + 1),
		})
	}

	prompt := buildAssetPrompt(&asset, "q")
	// Only the last 6 events are included.
	assert.NotContains(t, prompt, common.FormatBRL(4))
	assert.Contains(t, prompt, common.FormatBRL(5))
	assert.Contains(t, prompt, common.FormatBRL(10))
}
