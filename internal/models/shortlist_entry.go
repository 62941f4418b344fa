package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ShortlistEntry is one tracked symbol with the latest quote snapshot.
type ShortlistEntry struct {
	Symbol string `gorm:"type:varchar(20);primaryKey" json:"symbol"`

	Name              string          `gorm:"type:varchar(200)" json:"name"`
	Price             decimal.Decimal `gorm:"type:numeric(20,6);not null;default:0" json:"price"`
	ChangesPercentage decimal.Decimal `gorm:"type:numeric(20,6);not null;default:0" json:"changesPercentage"`
	Change            decimal.Decimal `gorm:"type:numeric(20,6);not null;default:0" json:"change"`
	DayLow            decimal.Decimal `gorm:"type:numeric(20,6);not null;default:0" json:"dayLow"`
	DayHigh           decimal.Decimal `gorm:"type:numeric(20,6);not null;default:0" json:"dayHigh"`
	YearLow           decimal.Decimal `gorm:"type:numeric(20,6);not null;default:0" json:"yearLow"`
	YearHigh          decimal.Decimal `gorm:"type:numeric(20,6);not null;default:0" json:"yearHigh"`
	MarketCap         decimal.Decimal `gorm:"type:numeric(30,2);not null;default:0" json:"marketCap"`
	PriceAvg50        decimal.Decimal `gorm:"column:price_avg50;type:numeric(20,6);not null;default:0" json:"priceAvg50"`
	PriceAvg200       decimal.Decimal `gorm:"column:price_avg200;type:numeric(20,6);not null;default:0" json:"priceAvg200"`
	Exchange          string          `gorm:"type:varchar(40)" json:"exchange"`
	Volume            int64           `gorm:"not null;default:0" json:"volume"`
	AvgVolume         int64           `gorm:"not null;default:0" json:"avgVolume"`
	Open              decimal.Decimal `gorm:"type:numeric(20,6);not null;default:0" json:"open"`
	PreviousClose     decimal.Decimal `gorm:"type:numeric(20,6);not null;default:0" json:"previousClose"`
	EPS               decimal.Decimal `gorm:"column:eps;type:numeric(20,6);not null;default:0" json:"eps"`
	PE                decimal.Decimal `gorm:"column:pe;type:numeric(20,6);not null;default:0" json:"pe"`
	SharesOutstanding int64           `gorm:"not null;default:0" json:"sharesOutstanding"`

	EarningsAnnouncement string `gorm:"type:varchar(40)" json:"earningsAnnouncement"`
	QuoteTimestamp       int64  `gorm:"not null;default:0" json:"timestamp"`

	// Raw quote as returned by the market data provider.
	Snapshot datatypes.JSON `gorm:"type:jsonb" json:"-"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime;index" json:"updatedAt"`
}

func (ShortlistEntry) TableName() string {
	return "stocks_interested"
}

// ShortlistQuoteColumns maps quote keys (as the provider names them) to the
// columns they may write. Nothing outside this map ever reaches SQL.
var ShortlistQuoteColumns = map[string]string{
	"name":                 "name",
	"price":                "price",
	"changesPercentage":    "changes_percentage",
	"change":               "change",
	"dayLow":               "day_low",
	"dayHigh":              "day_high",
	"yearLow":              "year_low",
	"yearHigh":             "year_high",
	"marketCap":            "market_cap",
	"priceAvg50":           "price_avg50",
	"priceAvg200":          "price_avg200",
	"exchange":             "exchange",
	"volume":               "volume",
	"avgVolume":            "avg_volume",
	"open":                 "open",
	"previousClose":        "previous_close",
	"eps":                  "eps",
	"pe":                   "pe",
	"sharesOutstanding":    "shares_outstanding",
	"earningsAnnouncement": "earnings_announcement",
	"timestamp":            "quote_timestamp",
}

// ApplyColumns copies the named columns from src onto e. Unknown names are
// ignored.
func (e *ShortlistEntry) ApplyColumns(src ShortlistEntry, columns []string) {
	for _, col := range columns {
		switch col {
		case "name":
			e.Name = src.Name
		case "price":
			e.Price = src.Price
		case "changes_percentage":
			e.ChangesPercentage = src.ChangesPercentage
		case "change":
			e.Change = src.Change
		case "day_low":
			e.DayLow = src.DayLow
		case "day_high":
			e.DayHigh = src.DayHigh
		case "year_low":
			e.YearLow = src.YearLow
		case "year_high":
			e.YearHigh = src.YearHigh
		case "market_cap":
			e.MarketCap = src.MarketCap
		case "price_avg50":
			e.PriceAvg50 = src.PriceAvg50
		case "price_avg200":
			e.PriceAvg200 = src.PriceAvg200
		case "exchange":
			e.Exchange = src.Exchange
		case "volume":
			e.Volume = src.Volume
		case "avg_volume":
			e.AvgVolume = src.AvgVolume
		case "open":
			e.Open = src.Open
		case "previous_close":
			e.PreviousClose = src.PreviousClose
		case "eps":
			e.EPS = src.EPS
		case "pe":
			e.PE = src.PE
		case "shares_outstanding":
			e.SharesOutstanding = src.SharesOutstanding
		case "earnings_announcement":
			e.EarningsAnnouncement = src.EarningsAnnouncement
		case "quote_timestamp":
			e.QuoteTimestamp = src.QuoteTimestamp
		case "snapshot":
			e.Snapshot = src.Snapshot
		}
	}
}
