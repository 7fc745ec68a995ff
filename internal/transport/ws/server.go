package ws

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"lob/internal/engine"
)

// Hub is the WebSocket adapter described in spec §6: it streams the
// trade log and book-depth changes to any connected client, fed by
// Broadcast calls made after engine.Book.MatchOrders returns.
type Hub struct {
	trades   *hub[tradeMessage]
	depth    *hub[depthMessage]
	upgrader websocket.Upgrader
	log      *zap.Logger
}

type tradeMessage struct {
	Type string      `json:"type"`
	Data []tradeView `json:"data"`
}

type tradeView struct {
	TradeID     uint64 `json:"trade_id"`
	BuyOrderID  uint64 `json:"buy_order_id"`
	SellOrderID uint64 `json:"sell_order_id"`
	Quantity    int64  `json:"quantity"`
	Price       string `json:"price"`
	Timestamp   int64  `json:"timestamp"`
}

type depthMessage struct {
	Type string      `json:"type"`
	Data []levelView `json:"data"`
}

type levelView struct {
	Side     string `json:"side"`
	Price    string `json:"price"`
	Quantity int64  `json:"quantity"`
}

// NewHub constructs the broadcaster. The upgrader accepts any origin,
// matching realmfikri's hub — this adapter has no session/auth layer,
// same as the REST one.
func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		trades:   newHub[tradeMessage](),
		depth:    newHub[depthMessage](),
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		log:      log,
	}
}

// BroadcastTrades pushes newly produced trades to every trade-stream
// subscriber. Call with the slice MatchOrders returns, never while
// holding the book's lock.
func (h *Hub) BroadcastTrades(trades []engine.Trade) {
	if len(trades) == 0 {
		return
	}
	views := make([]tradeView, len(trades))
	for i, t := range trades {
		views[i] = tradeView{
			TradeID:     t.TradeID,
			BuyOrderID:  t.BuyOrderID,
			SellOrderID: t.SellOrderID,
			Quantity:    t.Quantity,
			Price:       t.Price.String(),
			Timestamp:   t.Timestamp,
		}
	}
	h.trades.Broadcast(tradeMessage{Type: "trade", Data: views})
}

// BroadcastDepth pushes a fresh bid/ask snapshot to every book-stream
// subscriber.
func (h *Hub) BroadcastDepth(bids, asks []engine.LevelView) {
	views := make([]levelView, 0, len(bids)+len(asks))
	for _, l := range bids {
		views = append(views, levelView{Side: "buy", Price: l.Price.String(), Quantity: l.Quantity})
	}
	for _, l := range asks {
		views = append(views, levelView{Side: "sell", Price: l.Price.String(), Quantity: l.Quantity})
	}
	h.depth.Broadcast(depthMessage{Type: "book", Data: views})
}

// Routes mounts /ws/trades and /ws/book on the returned handler. The
// caller mounts this at the configured WS listen address, separate
// from the REST API per spec §6's two-adapter split.
func (h *Hub) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws/trades", h.handleTradeStream)
	mux.HandleFunc("/ws/book", h.handleBookStream)
	return mux
}

func (h *Hub) handleTradeStream(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws_upgrade_failed", zap.Error(err), zap.String("stream", "trades"))
		return
	}
	defer conn.Close()

	sub := h.trades.Subscribe(32)
	defer func() {
		h.trades.Unsubscribe(sub)
		h.log.Debug("ws_disconnected", zap.String("stream", "trades"), zap.Int("subscribers", h.trades.Len()))
	}()
	h.log.Debug("ws_connected", zap.String("stream", "trades"), zap.Int("subscribers", h.trades.Len()))

	for msg := range sub.ch {
		if err := conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

func (h *Hub) handleBookStream(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws_upgrade_failed", zap.Error(err), zap.String("stream", "book"))
		return
	}
	defer conn.Close()

	sub := h.depth.Subscribe(32)
	defer func() {
		h.depth.Unsubscribe(sub)
		h.log.Debug("ws_disconnected", zap.String("stream", "book"), zap.Int("subscribers", h.depth.Len()))
	}()
	h.log.Debug("ws_connected", zap.String("stream", "book"), zap.Int("subscribers", h.depth.Len()))

	for msg := range sub.ch {
		if err := conn.WriteJSON(msg); err != nil {
			return
		}
	}
}
