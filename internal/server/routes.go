package server

import "net/http"

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/config", s.handleConfig)

	// Transaction ledger
	mux.HandleFunc("/api/transactions/", s.handleTransactionByID)
	mux.HandleFunc("/api/transactions", s.handleTransactions)

	// Portfolio views
	mux.HandleFunc("/api/portfolio", s.handlePortfolio)
	mux.HandleFunc("/api/portfolio/dividends", s.handleDividends)
	mux.HandleFunc("/api/portfolio/income", s.handleMonthlyIncome)
	mux.HandleFunc("/api/portfolio/evolution", s.handleEvolution)
	mux.HandleFunc("/api/portfolio/evolution/chart", s.handleEvolutionChart)

	// Market data
	mux.HandleFunc("/api/market/refresh", s.handleMarketRefresh)
	mux.HandleFunc("/api/market/quote/", s.handleMarketQuote)

	// News
	mux.HandleFunc("/api/news", s.handleNews)

	// AI analyst
	mux.HandleFunc("/api/analyst/", s.handleAnalyst)

	// Preferences
	mux.HandleFunc("/api/preferences", s.handlePreferences)
}
