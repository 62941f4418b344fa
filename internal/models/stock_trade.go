package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockTrade is one append-only history row for a stock or ETF.
type StockTrade struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	Symbol   string          `gorm:"type:varchar(20);not null;index:idx_stocks_history_symbol_platform" json:"symbol"`
	Type     TradeType       `gorm:"type:varchar(20);not null" json:"type"`
	Quantity decimal.Decimal `gorm:"type:numeric(20,6);not null" json:"quantity"`
	Date     time.Time       `gorm:"type:date;not null;index" json:"date"`
	Time     string          `gorm:"type:varchar(5);not null" json:"time"`

	PurchasePrice decimal.Decimal `gorm:"type:numeric(20,6);not null" json:"purchase_price"`
	TotalPrice    decimal.Decimal `gorm:"type:numeric(30,6);not null" json:"total_price"`

	Platform string `gorm:"type:varchar(100);not null;index:idx_stocks_history_symbol_platform" json:"platform"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
}

func (StockTrade) TableName() string {
	return "stocks_history"
}
