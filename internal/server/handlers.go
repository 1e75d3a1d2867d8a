package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/jcleland/cryptofolio/internal/common"
	"github.com/jcleland/cryptofolio/internal/interfaces"
	"github.com/jcleland/cryptofolio/internal/models"
	"github.com/jcleland/cryptofolio/internal/services/ledger"
)

// AnalyzeRequest is the request body for POST /api/portfolio/analyze.
type AnalyzeRequest struct {
	// Portfolio optionally names the analysis; when set the report is
	// persisted, and an empty Transactions falls back to the stored journal.
	Portfolio        string                  `json:"portfolio,omitempty"`
	Holdings         []models.AssetHolding   `json:"holdings"`
	Transactions     []models.Transaction    `json:"transactions"`
	CurrentPrices    map[string]float64      `json:"current_prices"`
	BenchmarkReturns []float64               `json:"benchmark_returns,omitempty"`
	SkipAdvisory     bool                    `json:"skip_advisory,omitempty"`
}

// OptimizeTaxRequest is the request body for POST /api/portfolio/optimize-tax.
type OptimizeTaxRequest struct {
	Portfolio    string               `json:"portfolio,omitempty"`
	Transactions []models.Transaction `json:"transactions"`
	Asset        string               `json:"asset"`
	SellQuantity float64              `json:"sell_quantity"`
	CurrentPrice float64              `json:"current_price"`
}

// JournalRequest is the request body for PUT /api/journals.
type JournalRequest struct {
	Portfolio    string               `json:"portfolio"`
	Transactions []models.Transaction `json:"transactions"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"uptime":  time.Since(s.app.StartupTime).String(),
		"version": common.GetVersion(),
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

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req AnalyzeRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	// A named analysis with no inline transactions uses the stored journal.
	if len(req.Transactions) == 0 && req.Portfolio != "" {
		journal, err := s.app.Storage.TransactionStorage().GetJournal(r.Context(), req.Portfolio)
		if err != nil {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		req.Transactions = journal.Transactions
	}

	metrics, err := s.app.AnalyticsService.AnalyzePortfolio(
		r.Context(), req.Holdings, req.Transactions, req.CurrentPrices,
		interfaces.AnalyzeOptions{
			BenchmarkReturns: req.BenchmarkReturns,
			SkipAdvisory:     req.SkipAdvisory,
		})
	if err != nil {
		var invalid *ledger.InvalidMethodError
		if errors.As(err, &invalid) {
			WriteErrorWithCode(w, http.StatusBadRequest, err.Error(), "invalid_cost_basis_method")
			return
		}
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if req.Portfolio != "" {
		report := &models.PortfolioReport{
			Portfolio:   req.Portfolio,
			GeneratedAt: metrics.GeneratedAt,
			Metrics:     metrics,
		}
		if err := s.app.Storage.ReportStorage().SaveReport(r.Context(), report); err != nil {
			s.logger.Warn().Err(err).Str("portfolio", req.Portfolio).Msg("Failed to persist report")
		}
	}

	WriteJSON(w, http.StatusOK, metrics)
}

func (s *Server) handleOptimizeTax(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req OptimizeTaxRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Asset == "" {
		WriteError(w, http.StatusBadRequest, "asset is required")
		return
	}

	if len(req.Transactions) == 0 && req.Portfolio != "" {
		journal, err := s.app.Storage.TransactionStorage().GetJournal(r.Context(), req.Portfolio)
		if err != nil {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		req.Transactions = journal.Transactions
	}

	result, err := s.app.AnalyticsService.OptimizeTax(
		r.Context(), req.Transactions, req.Asset, req.SellQuantity, req.CurrentPrice)
	if err != nil {
		var insufficient *ledger.InsufficientCostBasisError
		if errors.As(err, &insufficient) {
			WriteErrorWithCode(w, http.StatusUnprocessableEntity, err.Error(), "insufficient_cost_basis")
			return
		}
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	names, err := s.app.Storage.ReportStorage().ListReports(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"reports": names})
}

// routeReport dispatches /api/reports/{name}.
func (s *Server) routeReport(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/api/reports/")
	if name == "" {
		WriteError(w, http.StatusBadRequest, "report name is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		report, err := s.app.Storage.ReportStorage().GetReport(r.Context(), name)
		if err != nil {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, report)
	case http.MethodDelete:
		if err := s.app.Storage.ReportStorage().DeleteReport(r.Context(), name); err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"deleted": name})
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodDelete)
	}
}

func (s *Server) handleJournals(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		names, err := s.app.Storage.TransactionStorage().ListJournals(r.Context())
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{"journals": names})
	case http.MethodPut, http.MethodPost:
		var req JournalRequest
		if !DecodeJSON(w, r, &req) {
			return
		}
		if req.Portfolio == "" {
			WriteError(w, http.StatusBadRequest, "portfolio is required")
			return
		}
		journal := &models.TransactionJournal{
			Portfolio:    req.Portfolio,
			Transactions: req.Transactions,
		}
		if err := s.app.Storage.TransactionStorage().SaveJournal(r.Context(), journal); err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"portfolio":    req.Portfolio,
			"transactions": len(req.Transactions),
		})
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut, http.MethodPost)
	}
}

// routeJournal dispatches /api/journals/{name}.
func (s *Server) routeJournal(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/api/journals/")
	if name == "" {
		WriteError(w, http.StatusBadRequest, "journal name is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		journal, err := s.app.Storage.TransactionStorage().GetJournal(r.Context(), name)
		if err != nil {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, journal)
	case http.MethodDelete:
		if err := s.app.Storage.TransactionStorage().DeleteJournal(r.Context(), name); err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"deleted": name})
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodDelete)
	}
}
