package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arifshehab/Capstone-Project/internal/middleware"
	"github.com/arifshehab/Capstone-Project/internal/repository"
	"github.com/arifshehab/Capstone-Project/internal/service"
)

type StockHandler struct {
	Trades    *service.TradeService
	Views     *service.ViewService
	Shortlist *service.ShortlistService
	Logger    *zap.Logger
}

func (h *StockHandler) Register(r *gin.Engine) {
	group := r.Group("/api")
	group.GET("/stocks", h.listStocks)
	group.GET("/stocks/trades", h.listTrades)
	group.POST("/trades", h.createTrade)
	group.DELETE("/stocks/trades", h.deleteTrades)
	group.DELETE("/stocks/shortlist/:symbol", h.deleteShortlist)
	group.POST("/stocks/shortlist/refresh", h.refreshShortlist)
}

// @Summary List stock views
// @Description Shortlist rows merged with weighted CAGR and per-platform totals
// @Tags stocks
// @Success 200 {object} apiResponse
// @Router /api/stocks [get]
func (h *StockHandler) listStocks(c *gin.Context) {
	views, err := h.Views.StockViews(c.Request.Context())
	if err != nil {
		h.fail(c, err, "list stock views failed")
		return
	}
	Ok(c, views, nil)
}

// @Summary List stock trades
// @Tags stocks
// @Param symbol query string false "symbol"
// @Param platform query string false "platform"
// @Param limit query int false "limit (0 = all)"
// @Param offset query int false "offset"
// @Param order_by query string false "date|symbol|platform|quantity|total_price|created_at"
// @Param ascending query bool false "ascending"
// @Success 200 {object} apiResponse
// @Router /api/stocks/trades [get]
func (h *StockHandler) listTrades(c *gin.Context) {
	params := repository.ListTradesParams{
		Limit:    intQuery(c, "limit", 100),
		Offset:   intQuery(c, "offset", 0),
		Symbol:   strQueryPtr(c, "symbol"),
		Platform: strQueryPtr(c, "platform"),
		OrderBy:  strings.TrimSpace(c.Query("order_by")),
		Asc:      boolQueryPtr(c, "ascending"),
	}
	items, total, err := h.Views.StockTrades(c.Request.Context(), params)
	if err != nil {
		h.fail(c, err, "list stock trades failed")
		return
	}
	Ok(c, items, paginationMeta(params.Limit, params.Offset, total))
}

// @Summary Record a trade
// @Description Stocks are priced at the requested minute; bonds are stored as entered
// @Tags trades
// @Accept json
// @Param body body service.TradeInput true "trade"
// @Success 200 {object} apiResponse
// @Failure 400 {object} apiResponse
// @Failure 422 {object} apiResponse
// @Failure 502 {object} apiResponse
// @Router /api/trades [post]
func (h *StockHandler) createTrade(c *gin.Context) {
	var in service.TradeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	res, err := h.Trades.RecordTrade(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err, "record trade failed", zap.String("symbol", in.Symbol), zap.String("platform", in.Platform))
		return
	}
	Ok(c, res, nil)
}

// @Summary Delete stock trades for a symbol on a platform
// @Tags stocks
// @Param symbol query string true "symbol"
// @Param platform query string true "platform"
// @Success 200 {object} apiResponse
// @Router /api/stocks/trades [delete]
func (h *StockHandler) deleteTrades(c *gin.Context) {
	n, err := h.Trades.DeleteStockTrades(c.Request.Context(), c.Query("symbol"), c.Query("platform"))
	if err != nil {
		h.fail(c, err, "delete stock trades failed")
		return
	}
	Ok(c, gin.H{"deleted": n}, nil)
}

// @Summary Remove a symbol from the shortlist
// @Tags stocks
// @Param symbol path string true "symbol"
// @Success 200 {object} apiResponse
// @Router /api/stocks/shortlist/{symbol} [delete]
func (h *StockHandler) deleteShortlist(c *gin.Context) {
	n, err := h.Trades.DeleteShortlistEntry(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		h.fail(c, err, "delete shortlist entry failed")
		return
	}
	Ok(c, gin.H{"deleted": n}, nil)
}

// @Summary Refresh every shortlisted quote
// @Tags stocks
// @Success 200 {object} apiResponse
// @Router /api/stocks/shortlist/refresh [post]
func (h *StockHandler) refreshShortlist(c *gin.Context) {
	res, err := h.Shortlist.RefreshAll(c.Request.Context())
	if err != nil {
		h.fail(c, err, "shortlist refresh failed")
		return
	}
	Ok(c, res, nil)
}

func (h *StockHandler) fail(c *gin.Context, err error, msg string, fields ...zap.Field) {
	if status, _ := statusFor(err); status >= http.StatusInternalServerError {
		middleware.LoggerFromGin(c, h.Logger).Error(msg, append(fields, zap.Error(err))...)
	}
	Fail(c, err)
}
