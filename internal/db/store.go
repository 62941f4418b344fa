package db

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/arifshehab/Capstone-Project/internal/config"
	"github.com/arifshehab/Capstone-Project/internal/repository"
	gormrepository "github.com/arifshehab/Capstone-Project/internal/repository/gorm"
	"github.com/arifshehab/Capstone-Project/internal/repository/memory"
)

// OpenStore opens the repository selected by cfg.Driver. For postgres the
// schema is migrated before the store is returned.
func OpenStore(cfg config.DBConfig, log *zap.Logger) (repository.Repository, error) {
	switch cfg.Driver {
	case "memory":
		if log != nil {
			log.Warn("using in-memory store; data is lost on exit")
		}
		return memory.New(), nil
	case "postgres", "":
		sqlDB, err := Open(cfg, log)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := SetTimezone(sqlDB, cfg.Timezone); err != nil {
			_ = Close(sqlDB)
			return nil, err
		}
		if err := AutoMigrate(sqlDB); err != nil {
			_ = Close(sqlDB)
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
		return gormrepository.New(sqlDB.Gorm), nil
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.Driver)
	}
}
