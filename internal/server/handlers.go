package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/brfintools/fiitrack/internal/common"
	"github.com/brfintools/fiitrack/internal/models"
)

// --- System handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"version": common.GetVersion(),
		"uptime":  time.Since(s.app.StartupTime).Round(time.Second).String(),
	})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

// handleConfig returns the sanitized runtime configuration. Secrets are
// reported as presence flags only.
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	config := s.app.Config
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"environment":      config.Environment,
		"storage_path":     config.Storage.Path,
		"refresh_enabled":  config.Refresh.Enabled,
		"refresh_cron":     config.Refresh.Cron,
		"brapi_configured": config.Clients.Brapi.Token != "",
		"ai_configured":    s.app.AnalystService != nil,
		"ai_model":         config.Clients.Gemini.Model,
	})
}

// --- Transaction handlers ---

// transactionRequest is the wire format for creating/updating ledger entries.
type transactionRequest struct {
	Ticker   string  `json:"ticker"`
	Type     string  `json:"type"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
	Date     string  `json:"date"` // YYYY-MM-DD
	Costs    float64 `json:"costs"`
	Notes    string  `json:"notes"`
}

func (req *transactionRequest) toModel(w http.ResponseWriter) (*models.Transaction, bool) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return nil, false
	}
	return &models.Transaction{
		Ticker:   req.Ticker,
		Type:     models.ParseTransactionType(req.Type),
		Quantity: req.Quantity,
		Price:    req.Price,
		Date:     date,
		Costs:    req.Costs,
		Notes:    req.Notes,
	}, true
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		txs, err := s.app.LedgerService.ListTransactions(r.Context())
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, txs)

	case http.MethodPost:
		var req transactionRequest
		if !DecodeJSON(w, r, &req) {
			return
		}
		tx, ok := req.toModel(w)
		if !ok {
			return
		}
		created, err := s.app.LedgerService.AddTransaction(r.Context(), tx)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		WriteJSON(w, http.StatusCreated, created)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	id := PathParam(r, "/api/transactions/", "")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "transaction ID is required in path")
		return
	}

	switch r.Method {
	case http.MethodPut:
		var req transactionRequest
		if !DecodeJSON(w, r, &req) {
			return
		}
		tx, ok := req.toModel(w)
		if !ok {
			return
		}
		tx.ID = id
		updated, err := s.app.LedgerService.UpdateTransaction(r.Context(), tx)
		if err != nil {
			if strings.Contains(err.Error(), "not found") {
				WriteError(w, http.StatusNotFound, err.Error())
			} else {
				WriteError(w, http.StatusBadRequest, err.Error())
			}
			return
		}
		WriteJSON(w, http.StatusOK, updated)

	case http.MethodDelete:
		if err := s.app.LedgerService.DeleteTransaction(r.Context(), id); err != nil {
			if strings.Contains(err.Error(), "not found") {
				WriteError(w, http.StatusNotFound, err.Error())
			} else {
				WriteError(w, http.StatusInternalServerError, err.Error())
			}
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"deleted": id})

	default:
		RequireMethod(w, r, http.MethodPut, http.MethodDelete)
	}
}

// --- Portfolio handlers ---

func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	assets, err := s.app.PortfolioService.GetAssets(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	summary, err := s.app.PortfolioService.GetSummary(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"summary": summary,
		"assets":  assets,
	})
}

func (s *Server) handleDividends(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	dividends, err := s.app.PortfolioService.GetDividends(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, dividends)
}

func (s *Server) handleMonthlyIncome(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	income, err := s.app.PortfolioService.GetMonthlyIncome(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, income)
}

func (s *Server) handleEvolution(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	evolution, err := s.app.PortfolioService.GetEvolution(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, evolution)
}

func (s *Server) handleEvolutionChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	png, err := s.app.PortfolioService.RenderEvolutionChart(r.Context())
	if err != nil {
		WriteError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// --- Market handlers ---

func (s *Server) handleMarketRefresh(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	force := r.URL.Query().Get("force") == "true"
	if err := s.app.MarketService.RefreshMarketData(r.Context(), force); err != nil {
		WriteError(w, http.StatusBadGateway, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"refreshed": true, "force": force})
}

func (s *Server) handleMarketQuote(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	ticker := strings.ToUpper(PathParam(r, "/api/market/quote/", ""))
	if ticker == "" {
		WriteError(w, http.StatusBadRequest, "ticker is required in path")
		return
	}
	snapshot, err := s.app.MarketService.GetQuote(r.Context(), ticker)
	if err != nil {
		WriteError(w, http.StatusNotFound, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, snapshot)
}

// --- News handler ---

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	items, err := s.app.MarketService.GetNews(r.Context())
	if err != nil {
		WriteError(w, http.StatusBadGateway, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, items)
}

// --- Analyst handler ---

type analystRequest struct {
	Question string `json:"question"`
}

func (s *Server) handleAnalyst(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	if s.app.AnalystService == nil {
		WriteError(w, http.StatusServiceUnavailable, "AI analyst is not configured")
		return
	}
	ticker := PathParam(r, "/api/analyst/", "")
	if ticker == "" {
		WriteError(w, http.StatusBadRequest, "ticker is required in path")
		return
	}
	var req analystRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	answer, err := s.app.AnalystService.Ask(r.Context(), ticker, req.Question)
	if err != nil {
		if strings.Contains(err.Error(), "not in the portfolio") {
			WriteError(w, http.StatusNotFound, err.Error())
		} else {
			WriteError(w, http.StatusBadGateway, err.Error())
		}
		return
	}
	WriteJSON(w, http.StatusOK, answer)
}

// --- Preferences handlers ---

func (s *Server) handlePreferences(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		prefs, err := s.app.PreferencesService.GetPreferences(r.Context())
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, prefs)

	case http.MethodPut:
		var prefs models.Preferences
		if !DecodeJSON(w, r, &prefs) {
			return
		}
		if err := s.app.PreferencesService.SavePreferences(r.Context(), &prefs); err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, &prefs)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut)
	}
}
