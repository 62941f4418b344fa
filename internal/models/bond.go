package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// BondIssue is a Singapore Government Securities issue as listed in the
// public catalog.
type BondIssue struct {
	IssueCode string `gorm:"type:varchar(20);primaryKey" json:"issue_code"`

	ISIN         string          `gorm:"column:isin;type:varchar(20)" json:"isin"`
	Description  string          `gorm:"type:varchar(200)" json:"description"`
	CouponRate   decimal.Decimal `gorm:"type:numeric(10,4);not null;default:0" json:"coupon_rate"`
	IssueDate    *time.Time      `gorm:"type:date" json:"issue_date,omitempty"`
	MaturityDate *time.Time      `gorm:"type:date" json:"maturity_date,omitempty"`
	Yield        decimal.Decimal `gorm:"type:numeric(10,4);not null;default:0" json:"yield"`

	Snapshot datatypes.JSON `gorm:"type:jsonb" json:"-"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (BondIssue) TableName() string {
	return "sg_bonds_data"
}

// BondTrade is one history row for a bond holding. Bonds carry no price;
// Symbol holds the issue code.
type BondTrade struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	Symbol   string          `gorm:"type:varchar(20);not null;index:idx_bonds_history_symbol_platform" json:"symbol"`
	Type     TradeType       `gorm:"type:varchar(20);not null" json:"type"`
	Quantity decimal.Decimal `gorm:"type:numeric(20,6);not null" json:"quantity"`
	Date     time.Time       `gorm:"type:date;not null" json:"date"`
	Time     string          `gorm:"type:varchar(5);not null" json:"time"`
	Platform string          `gorm:"type:varchar(100);not null;index:idx_bonds_history_symbol_platform" json:"platform"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
}

func (BondTrade) TableName() string {
	return "bonds_history"
}
