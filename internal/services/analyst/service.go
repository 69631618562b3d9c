// Package analyst answers free-form questions about portfolio assets using
// an AI backend.
package analyst

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brfintools/fiitrack/internal/common"
	"github.com/brfintools/fiitrack/internal/interfaces"
	"github.com/brfintools/fiitrack/internal/models"
)

// Service builds a context prompt from the asset's current numbers and
// delegates to the AI client. Answers are advisory and never written back
// to storage.
type Service struct {
	portfolio interfaces.PortfolioService
	ai        interfaces.AIClient
	logger    *common.Logger
}

var _ interfaces.AnalystService = (*Service)(nil)

// NewService creates a new analyst service.
func NewService(portfolio interfaces.PortfolioService, ai interfaces.AIClient, logger *common.Logger) *Service {
	return &Service{portfolio: portfolio, ai: ai, logger: logger}
}

// Ask answers a question about one portfolio asset.
func (s *Service) Ask(ctx context.Context, ticker, question string) (*models.AnalystAnswer, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	question = strings.TrimSpace(question)
	if ticker == "" {
		return nil, fmt.Errorf("ticker is required")
	}
	if question == "" {
		return nil, fmt.Errorf("question is required")
	}

	assets, err := s.portfolio.GetAssets(ctx)
	if err != nil {
		return nil, err
	}

	var asset *models.Asset
	for i := range assets {
		if assets[i].Ticker == ticker {
			asset = &assets[i]
			break
		}
	}
	if asset == nil {
		return nil, fmt.Errorf("'%s' is not in the portfolio", ticker)
	}

	prompt := buildAssetPrompt(asset, question)

	answer, stats, err := s.ai.GenerateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("analyst request failed: %w", err)
	}

	s.logger.Debug().Str("ticker", ticker).Msg("Analyst answer generated")

	return &models.AnalystAnswer{
		Ticker:      ticker,
		Question:    question,
		Answer:      answer,
		Model:       s.ai.ModelName(),
		Stats:       stats,
		GeneratedAt: time.Now(),
	}, nil
}

// buildAssetPrompt creates the analyst prompt from the asset's metrics.
func buildAssetPrompt(asset *models.Asset, question string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Você é um analista de fundos imobiliários brasileiros (FIIs).\n")
	fmt.Fprintf(&sb, "Dados atuais de %s", asset.Ticker)
	if asset.Name != "" {
		fmt.Fprintf(&sb, " (%s)", asset.Name)
	}
	sb.WriteString(" na carteira do usuário:\n\n")

	fmt.Fprintf(&sb, "- Segmento: %s\n", asset.Segment)
	fmt.Fprintf(&sb, "- Cotas: %.0f\n", asset.Quantity)
	fmt.Fprintf(&sb, "- Preço médio: %s\n", common.FormatBRL(asset.AvgPrice))
	fmt.Fprintf(&sb, "- Cotação atual: %s\n", common.FormatBRL(asset.CurrentPrice))
	fmt.Fprintf(&sb, "- Valor investido: %s\n", common.FormatBRL(asset.Invested))
	fmt.Fprintf(&sb, "- Valor de mercado: %s\n", common.FormatBRL(asset.MarketValue))
	fmt.Fprintf(&sb, "- Resultado: %s (%.2f%%)\n", common.FormatBRL(asset.UnrealizedGain), asset.UnrealizedGainPct)
	if asset.DY > 0 {
		fmt.Fprintf(&sb, "- Dividend Yield (12m): %.2f%%\n", asset.DY)
	}
	if asset.PVP > 0 {
		fmt.Fprintf(&sb, "- P/VP: %.2f\n", asset.PVP)
	}
	if asset.YieldOnCost > 0 {
		fmt.Fprintf(&sb, "- Yield on cost: %.2f%%\n", asset.YieldOnCost)
	}

	if n := len(asset.DividendsHistory); n > 0 {
		sb.WriteString("\nÚltimos rendimentos por cota:\n")
		start := n - 6
		if start < 0 {
			start = 0
		}
		for _, event := range asset.DividendsHistory[start:] {
			fmt.Fprintf(&sb, "- %s: %s\n", event.ExDate.Format("02/01/2006"), common.FormatBRL(event.AmountPerShare))
		}
	}

	fmt.Fprintf(&sb, "\nPergunta do usuário: %s\n", question)
	sb.WriteString("\nResponda em português, de forma objetiva. ")
	sb.WriteString("Deixe claro que não é recomendação de investimento.")

	return sb.String()
}
