package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/sukrithpvs/Insight/internal/engine"
	"github.com/sukrithpvs/Insight/types"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// --- orders ---

type createOrderRequest struct {
	Ticker   string          `json:"ticker"`
	Type     string          `json:"type"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}
	orderType, err := types.ParseOrderType(req.Type)
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}

	order, err := s.engine.ExecuteOrder(r.Context(), engine.OrderRequest{
		Ticker:   req.Ticker,
		Type:     orderType,
		Quantity: req.Quantity,
		Price:    req.Price,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, order)
}

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.engine.ListOrders(r.Context(), "")
	if err != nil {
		s.writeError(w, err)
		return
	}
	if orders == nil {
		orders = []types.Order{}
	}
	s.writeJSON(w, http.StatusOK, orders)
}

func (s *Server) handleListOrdersByTicker(w http.ResponseWriter, r *http.Request) {
	orders, err := s.engine.ListOrders(r.Context(), chi.URLParam(r, "ticker"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if orders == nil {
		orders = []types.Order{}
	}
	s.writeJSON(w, http.StatusOK, orders)
}

func (s *Server) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.badRequest(w, "invalid order id")
		return
	}

	if err := s.engine.CancelOrder(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

// --- portfolio ---

func (s *Server) handlePortfolioSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.summary.Summary(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleHoldings(w http.ResponseWriter, r *http.Request) {
	holdings, err := s.summary.HoldingViews(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, holdings)
}

// --- market data ---

func (s *Server) handlePrice(w http.ResponseWriter, r *http.Request) {
	quote, err := s.market.Quote(r.Context(), chi.URLParam(r, "ticker"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, quote)
}

func (s *Server) handleStockDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := s.market.Detail(r.Context(), chi.URLParam(r, "ticker"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleGainers(w http.ResponseWriter, r *http.Request) {
	s.writeMovers(w, r, s.market.TopGainers)
}

func (s *Server) handleLosers(w http.ResponseWriter, r *http.Request) {
	s.writeMovers(w, r, s.market.TopLosers)
}

func (s *Server) handleMostActive(w http.ResponseWriter, r *http.Request) {
	s.writeMovers(w, r, s.market.MostActive)
}

func (s *Server) writeMovers(w http.ResponseWriter, r *http.Request, fetch func(ctx context.Context) ([]types.Mover, error)) {
	movers, err := fetch(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if movers == nil {
		movers = []types.Mover{}
	}
	s.writeJSON(w, http.StatusOK, movers)
}

// --- mutual funds ---

func (s *Server) handleFunds(w http.ResponseWriter, r *http.Request) {
	out, err := s.funds.Popular(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleFundSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		s.badRequest(w, "query parameter q is required")
		return
	}

	out, err := s.funds.Search(r.Context(), query)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if out == nil {
		out = []types.MutualFund{}
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleFund(w http.ResponseWriter, r *http.Request) {
	fund, err := s.funds.Fund(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, fund)
}

// --- watchlist ---

type addWatchlistRequest struct {
	Ticker string `json:"ticker"`
	Notes  string `json:"notes"`
}

func (s *Server) handleWatchlist(w http.ResponseWriter, r *http.Request) {
	entries, err := s.watchlist.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleWatchlistAdd(w http.ResponseWriter, r *http.Request) {
	var req addWatchlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}

	item, err := s.watchlist.Add(r.Context(), req.Ticker, req.Notes)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handleWatchlistRemove(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.badRequest(w, "invalid watchlist id")
		return
	}

	if err := s.watchlist.RemoveByID(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

func (s *Server) handleWatchlistRemoveTicker(w http.ResponseWriter, r *http.Request) {
	if err := s.watchlist.RemoveByTicker(r.Context(), chi.URLParam(r, "ticker")); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}
