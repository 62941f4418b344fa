package gormrepository

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/arifshehab/Capstone-Project/internal/models"
	"github.com/arifshehab/Capstone-Project/internal/repository"
)

// dryRunDB builds statements against the postgres dialect without a server.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=127.0.0.1 user=portfolio dbname=portfolio sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true, Logger: gormlogger.Discard})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return db
}

func TestUpsertShortlistQuery_SetsOnlyGivenColumns(t *testing.T) {
	db := dryRunDB(t)
	item := &models.ShortlistEntry{Symbol: "ABC", Name: "ABC Corp", Price: decimal.NewFromInt(120)}

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return upsertShortlistQuery(tx, item, []string{"price", "price", "name; DROP TABLE x"})
	})

	if !strings.Contains(sql, `INSERT INTO "stocks_interested"`) {
		t.Fatalf("sql=%s", sql)
	}
	want := `ON CONFLICT ("symbol") DO UPDATE SET "price"="excluded"."price","snapshot"="excluded"."snapshot","updated_at"="excluded"."updated_at"`
	if !strings.Contains(sql, want) {
		t.Fatalf("sql=%s\nwant fragment %s", sql, want)
	}
	for _, col := range []string{`"name"="excluded"`, `"created_at"="excluded"`, "DROP TABLE"} {
		if strings.Contains(sql, col) {
			t.Fatalf("unexpected %s in sql=%s", col, sql)
		}
	}
}

func TestUpsertShortlistQuery_SnapshotOnlyWithoutColumns(t *testing.T) {
	db := dryRunDB(t)
	item := &models.ShortlistEntry{Symbol: "ABC", Price: decimal.NewFromInt(1)}

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return upsertShortlistQuery(tx, item, nil)
	})
	want := `DO UPDATE SET "snapshot"="excluded"."snapshot","updated_at"="excluded"."updated_at"`
	if !strings.Contains(sql, want) {
		t.Fatalf("sql=%s", sql)
	}
}

func TestPlatformTotalsQuery_StockShape(t *testing.T) {
	db := dryRunDB(t)
	var rows []models.PlatformTotal

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return platformTotalsQuery(tx.Model(&models.StockTrade{}), "COALESCE(SUM(total_price), 0)", &rows)
	})

	for _, frag := range []string{
		"COALESCE(SUM(total_price), 0) AS total_trades",
		"COALESCE(SUM(quantity), 0) AS total_quantity",
		`FROM "stocks_history"`,
		"GROUP BY symbol, platform",
		"ORDER BY symbol asc, MIN(id) asc",
	} {
		if !strings.Contains(sql, frag) {
			t.Fatalf("missing %q in sql=%s", frag, sql)
		}
	}
}

func TestPlatformTotalsQuery_BondsHaveNoTradeTotal(t *testing.T) {
	db := dryRunDB(t)
	var rows []models.PlatformTotal

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return platformTotalsQuery(tx.Model(&models.BondTrade{}), "0", &rows)
	})
	if !strings.Contains(sql, "0 AS total_trades") || !strings.Contains(sql, `FROM "bonds_history"`) {
		t.Fatalf("sql=%s", sql)
	}
}

func TestListTradesQuery_FilterOrderAndPaging(t *testing.T) {
	db := dryRunDB(t)
	symbol, platform := " abc ", "Broker1"
	var items []models.StockTrade

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return listTradesQuery(tx.Model(&models.StockTrade{}), repository.ListTradesParams{
			Symbol:   &symbol,
			Platform: &platform,
			OrderBy:  "date",
			Limit:    900,
			Offset:   5,
		}).Find(&items)
	})

	for _, frag := range []string{
		"symbol = 'ABC'",
		"platform = 'Broker1'",
		"ORDER BY date desc,id asc",
		"LIMIT 500",
		"OFFSET 5",
	} {
		if !strings.Contains(sql, frag) {
			t.Fatalf("missing %q in sql=%s", frag, sql)
		}
	}
}

func TestListTradesQuery_DefaultsToInsertionOrderUnbounded(t *testing.T) {
	db := dryRunDB(t)
	var items []models.BondTrade

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return listTradesQuery(tx.Model(&models.BondTrade{}), repository.ListTradesParams{OrderBy: "bogus"}).Find(&items)
	})
	if !strings.Contains(sql, "ORDER BY id asc") || strings.Contains(sql, "LIMIT") {
		t.Fatalf("sql=%s", sql)
	}
}
