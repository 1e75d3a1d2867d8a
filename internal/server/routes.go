package server

import "net/http"

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)

	// Analytics
	mux.HandleFunc("/api/portfolio/analyze", s.handleAnalyze)
	mux.HandleFunc("/api/portfolio/optimize-tax", s.handleOptimizeTax)

	// Stored reports
	mux.HandleFunc("/api/reports", s.handleListReports)
	mux.HandleFunc("/api/reports/", s.routeReport)

	// Transaction journals
	mux.HandleFunc("/api/journals", s.handleJournals)
	mux.HandleFunc("/api/journals/", s.routeJournal)
}
