package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arifshehab/Capstone-Project/internal/client/quiver"
	"github.com/arifshehab/Capstone-Project/internal/middleware"
	"github.com/arifshehab/Capstone-Project/internal/models"
	"github.com/arifshehab/Capstone-Project/internal/service"
)

// PageHandler serves the server-rendered pages and their form posts.
type PageHandler struct {
	Trades    *service.TradeService
	Views     *service.ViewService
	Analytics *service.AnalyticsService
	Logger    *zap.Logger
}

func (h *PageHandler) Register(r *gin.Engine) {
	r.GET("/", h.index)
	r.GET("/stocks", h.stocks)
	r.GET("/bonds", h.bonds)
	r.POST("/asset", h.addAsset)
	r.POST("/deletestock", h.deleteStock)
	r.POST("/deletebond", h.deleteBond)
	r.POST("/analytics", h.analytics)
}

func (h *PageHandler) index(c *gin.Context) {
	h.renderIndex(c, http.StatusOK, "")
}

func (h *PageHandler) renderIndex(c *gin.Context, status int, message string) {
	c.HTML(status, "index.html", gin.H{
		"Title":      "Add trade",
		"TradeTypes": models.TradeTypes(),
		"Categories": []string{service.CategoryStocks, service.CategoryBonds},
		"Error":      message,
	})
}

func (h *PageHandler) stocks(c *gin.Context) {
	views, err := h.Views.StockViews(c.Request.Context())
	if err != nil {
		h.failPage(c, err, "load stocks failed")
		return
	}
	c.HTML(http.StatusOK, "stocks.html", gin.H{"Title": "Stocks & ETFs", "Stocks": views})
}

func (h *PageHandler) bonds(c *gin.Context) {
	views, err := h.Views.BondViews(c.Request.Context())
	if err != nil {
		h.failPage(c, err, "load bonds failed")
		return
	}
	c.HTML(http.StatusOK, "bonds.html", gin.H{"Title": "Bonds", "Bonds": views})
}

func (h *PageHandler) addAsset(c *gin.Context) {
	var in service.TradeInput
	if err := c.ShouldBind(&in); err != nil {
		h.renderIndex(c, http.StatusBadRequest, err.Error())
		return
	}
	res, err := h.Trades.RecordTrade(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			h.renderIndex(c, http.StatusBadRequest, err.Error())
			return
		}
		h.failPage(c, err, "record trade failed", zap.String("symbol", in.Symbol), zap.String("platform", in.Platform))
		return
	}
	c.HTML(http.StatusOK, "addasset.html", gin.H{
		"Title":   "Trade",
		"Message": res.Message,
		"Content": res.Content,
	})
}

func (h *PageHandler) deleteStock(c *gin.Context) {
	symbol := strings.TrimSpace(c.PostForm("symbol"))
	platform := strings.TrimSpace(c.PostForm("platform"))
	shortlist := strings.TrimSpace(c.PostForm("shortlistsymbol"))
	ctx := c.Request.Context()

	if symbol == "" && platform == "" && shortlist == "" {
		h.renderIndex(c, http.StatusBadRequest, "nothing to delete")
		return
	}
	if symbol != "" || platform != "" {
		if _, err := h.Trades.DeleteStockTrades(ctx, symbol, platform); err != nil {
			h.failPage(c, err, "delete stock trades failed", zap.String("symbol", symbol), zap.String("platform", platform))
			return
		}
	}
	if shortlist != "" {
		if _, err := h.Trades.DeleteShortlistEntry(ctx, shortlist); err != nil {
			h.failPage(c, err, "delete shortlist entry failed", zap.String("symbol", shortlist))
			return
		}
	}
	c.Redirect(http.StatusSeeOther, "/stocks")
}

func (h *PageHandler) deleteBond(c *gin.Context) {
	code := strings.TrimSpace(c.PostForm("issue_code"))
	platform := strings.TrimSpace(c.PostForm("platform"))
	all := strings.TrimSpace(c.PostForm("shortlistissue_code"))
	ctx := c.Request.Context()

	if code == "" && platform == "" && all == "" {
		h.renderIndex(c, http.StatusBadRequest, "nothing to delete")
		return
	}
	if code != "" || platform != "" {
		if _, err := h.Trades.DeleteBondTrades(ctx, code, platform); err != nil {
			h.failPage(c, err, "delete bond trades failed", zap.String("issue_code", code), zap.String("platform", platform))
			return
		}
	}
	if all != "" {
		if _, err := h.Trades.DeleteBondHoldings(ctx, all); err != nil {
			h.failPage(c, err, "delete bond holdings failed", zap.String("issue_code", all))
			return
		}
	}
	c.Redirect(http.StatusSeeOther, "/bonds")
}

func (h *PageHandler) analytics(c *gin.Context) {
	ticker := strings.TrimSpace(c.PostForm("chosenticker"))
	items, err := h.Analytics.SenateTrades(c.Request.Context(), ticker)
	if err != nil {
		status, message := statusFor(err)
		if status >= http.StatusInternalServerError {
			middleware.LoggerFromGin(c, h.Logger).Warn("senate trades lookup failed", zap.String("ticker", ticker), zap.Error(err))
		}
		if errors.Is(err, quiver.ErrNoToken) {
			message = "Analytics is not configured"
		}
		c.HTML(status, "analytics.html", gin.H{"Title": "Analytics", "Ticker": ticker, "Error": message})
		return
	}
	c.HTML(http.StatusOK, "analytics.html", gin.H{
		"Title":       "Analytics",
		"Ticker":      strings.ToUpper(ticker),
		"Disclosures": items,
	})
}

func (h *PageHandler) failPage(c *gin.Context, err error, msg string, fields ...zap.Field) {
	status, message := statusFor(err)
	if status >= http.StatusInternalServerError {
		middleware.LoggerFromGin(c, h.Logger).Error(msg, append(fields, zap.Error(err))...)
	}
	c.HTML(status, "error.html", gin.H{"Title": "Error", "Message": message})
}
