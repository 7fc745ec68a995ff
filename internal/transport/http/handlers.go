package http

import (
	"encoding/json"
	nethttp "net/http"
	"time"

	"github.com/google/uuid"

	"lob/internal/engine"
)

func (s *Server) writeJSON(w nethttp.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (s *Server) writeError(w nethttp.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) handleHealth(w nethttp.ResponseWriter, r *nethttp.Request) {
	s.writeJSON(w, nethttp.StatusOK, map[string]string{"status": "healthy"})
}

// handleOrderBook serves GET /api/orderbook: the current bid and ask
// ladders, most-aggressive level first on each side (spec §6).
func (s *Server) handleOrderBook(w nethttp.ResponseWriter, r *nethttp.Request) {
	bids := s.book.SnapshotBids()
	asks := s.book.SnapshotAsks()
	s.writeJSON(w, nethttp.StatusOK, orderBookResponse{
		BuyOrders:  toLevelDTOs(bids),
		SellOrders: toLevelDTOs(asks),
	})
}

// handleTrades serves GET /api/trades: the full trade log in the order
// trades were generated (spec §6).
func (s *Server) handleTrades(w nethttp.ResponseWriter, r *nethttp.Request) {
	trades := s.book.SnapshotTrades()
	s.writeJSON(w, nethttp.StatusOK, toTradeDTOs(trades))
}

// handleMarketSummary serves GET /api/market-summary.
func (s *Server) handleMarketSummary(w nethttp.ResponseWriter, r *nethttp.Request) {
	s.writeJSON(w, nethttp.StatusOK, toMarketSummaryResponse(s.book.MarketSummary()))
}

// handlePlaceOrder serves POST /api/orders: decodes an order, assigns
// it an ID from the adapter's monotonic clock, rests it on the book,
// then immediately runs the matcher (spec §6 treats the two as one
// client-visible step, even though add_order and match_orders remain
// separate engine operations per spec §4.1/§4.3). Trades produced are
// handed to onTrade once the book's lock is released, for WS fan-out.
func (s *Server) handlePlaceOrder(w nethttp.ResponseWriter, r *nethttp.Request) {
	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, nethttp.StatusBadRequest, "malformed request body")
		return
	}

	side, err := engine.ParseSide(req.Type)
	if err != nil {
		s.writeError(w, nethttp.StatusBadRequest, err.Error())
		return
	}

	clientID := req.ClientID
	if clientID == "" {
		// The teacher's original API required callers to supply their
		// own UUID; this adapter is more forgiving and mints one so an
		// anonymous order still gets a stable, unique client reference.
		clientID = uuid.NewString()
	}

	id := s.ids.next()
	order := &engine.Order{
		OrderID:   id,
		Side:      side,
		Quantity:  req.Quantity.Round(0).IntPart(),
		Price:     req.Price,
		ClientID:  clientID,
		Timestamp: time.Now().UnixNano(),
	}

	if err := s.book.AddOrder(order); err != nil {
		s.writeError(w, nethttp.StatusBadRequest, err.Error())
		return
	}

	trades := s.book.MatchOrders()
	if len(trades) > 0 && s.onTrade != nil {
		s.onTrade(trades)
	}

	s.writeJSON(w, nethttp.StatusOK, placeOrderResponse{Status: "success", OrderID: id})
}
