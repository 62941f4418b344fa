package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arifshehab/Capstone-Project/internal/middleware"
	"github.com/arifshehab/Capstone-Project/internal/service"
)

type BondHandler struct {
	Trades  *service.TradeService
	Views   *service.ViewService
	Catalog *service.BondCatalogService
	Logger  *zap.Logger
}

func (h *BondHandler) Register(r *gin.Engine) {
	group := r.Group("/api/bonds")
	group.GET("", h.listBonds)
	group.DELETE("/trades", h.deleteTrades)
	group.POST("/catalog/sync", h.syncCatalog)
}

// @Summary List bond issues with holdings
// @Tags bonds
// @Success 200 {object} apiResponse
// @Router /api/bonds [get]
func (h *BondHandler) listBonds(c *gin.Context) {
	views, err := h.Views.BondViews(c.Request.Context())
	if err != nil {
		h.fail(c, err, "list bond views failed")
		return
	}
	Ok(c, views, nil)
}

// @Summary Delete bond trades
// @Description With platform, deletes that platform's rows; without, every row for the issue
// @Tags bonds
// @Param symbol query string true "issue code"
// @Param platform query string false "platform"
// @Success 200 {object} apiResponse
// @Router /api/bonds/trades [delete]
func (h *BondHandler) deleteTrades(c *gin.Context) {
	ctx := c.Request.Context()
	symbol := c.Query("symbol")
	var (
		n   int64
		err error
	)
	if strings.TrimSpace(c.Query("platform")) == "" {
		n, err = h.Trades.DeleteBondHoldings(ctx, symbol)
	} else {
		n, err = h.Trades.DeleteBondTrades(ctx, symbol, c.Query("platform"))
	}
	if err != nil {
		h.fail(c, err, "delete bond trades failed")
		return
	}
	Ok(c, gin.H{"deleted": n}, nil)
}

// @Summary Import the bond catalog
// @Tags bonds
// @Success 200 {object} apiResponse
// @Failure 502 {object} apiResponse
// @Router /api/bonds/catalog/sync [post]
func (h *BondHandler) syncCatalog(c *gin.Context) {
	if h.Catalog == nil || h.Catalog.Source == nil {
		Error(c, http.StatusServiceUnavailable, "bond catalog not configured", nil)
		return
	}
	n, err := h.Catalog.Sync(c.Request.Context())
	if err != nil {
		h.fail(c, err, "bond catalog sync failed")
		return
	}
	Ok(c, gin.H{"issues": n}, nil)
}

func (h *BondHandler) fail(c *gin.Context, err error, msg string, fields ...zap.Field) {
	if status, _ := statusFor(err); status >= http.StatusInternalServerError {
		middleware.LoggerFromGin(c, h.Logger).Error(msg, append(fields, zap.Error(err))...)
	}
	Fail(c, err)
}
