package http

import (
	"github.com/shopspring/decimal"

	"lob/internal/engine"
)

// placeOrderRequest is the POST /api/orders body (spec §6).
type placeOrderRequest struct {
	Type     string          `json:"type"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	ClientID string          `json:"client_id"`
}

type placeOrderResponse struct {
	Status  string `json:"status"`
	OrderID uint64 `json:"order_id"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// levelDTO is one aggregated price level in the orderbook response.
type levelDTO struct {
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
}

type orderBookResponse struct {
	BuyOrders  []levelDTO `json:"buy_orders"`
	SellOrders []levelDTO `json:"sell_orders"`
}

func toLevelDTOs(levels []engine.LevelView) []levelDTO {
	out := make([]levelDTO, len(levels))
	for i, l := range levels {
		out[i] = levelDTO{Price: l.Price, Quantity: l.Quantity}
	}
	return out
}

// tradeDTO mirrors GET /api/trades' array elements (spec §6).
type tradeDTO struct {
	TradeID     uint64          `json:"trade_id"`
	BuyOrderID  uint64          `json:"buy_order_id"`
	SellOrderID uint64          `json:"sell_order_id"`
	Quantity    int64           `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Timestamp   int64           `json:"timestamp"`
}

func toTradeDTO(t engine.Trade) tradeDTO {
	return tradeDTO{
		TradeID:     t.TradeID,
		BuyOrderID:  t.BuyOrderID,
		SellOrderID: t.SellOrderID,
		Quantity:    t.Quantity,
		Price:       t.Price,
		Timestamp:   t.Timestamp,
	}
}

func toTradeDTOs(trades []engine.Trade) []tradeDTO {
	out := make([]tradeDTO, len(trades))
	for i, t := range trades {
		out[i] = toTradeDTO(t)
	}
	return out
}

// marketSummaryResponse is GET /api/market-summary's body (spec §6).
// avg_trade_size and avg_price are derived here rather than stored on
// the core, since both are trivially recomputable from counters the
// core already maintains (spec §4.1: "All derivable from the above but
// exposed for efficiency" applies to the five base counters, not to
// every ratio a client might want).
type marketSummaryResponse struct {
	TotalTrades  int64           `json:"total_trades"`
	TotalVolume  int64           `json:"total_volume"`
	AvgTradeSize decimal.Decimal `json:"avg_trade_size"`
	AvgPrice     decimal.Decimal `json:"avg_price"`
	BuyDepth     int64           `json:"buy_depth"`
	SellDepth    int64           `json:"sell_depth"`
}

func toMarketSummaryResponse(s engine.MarketSummary) marketSummaryResponse {
	avgTradeSize := decimal.Zero
	avgPrice := decimal.Zero
	if s.TotalTrades > 0 {
		avgTradeSize = decimal.NewFromInt(s.TotalVolume).Div(decimal.NewFromInt(s.TotalTrades))
	}
	if s.TotalVolume > 0 {
		avgPrice = s.TotalNotional.Div(decimal.NewFromInt(s.TotalVolume))
	}
	return marketSummaryResponse{
		TotalTrades:  s.TotalTrades,
		TotalVolume:  s.TotalVolume,
		AvgTradeSize: avgTradeSize,
		AvgPrice:     avgPrice,
		BuyDepth:     s.TotalBidDepth,
		SellDepth:    s.TotalAskDepth,
	}
}
