package config

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the shared connection opened by InitDB.
var DB *gorm.DB

// OpenDB opens a gorm connection for the given driver ("mysql" or "sqlite").
func OpenDB(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "mysql":
		dialector = mysql.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	return gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
}

// InitDB connects to the configured database and stores it in DB.
func InitDB(s *Settings) error {
	db, err := OpenDB(s.DBDriver, s.DBDSN)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	DB = db
	Logger.Info("✅ Database connected", zap.String("driver", s.DBDriver))
	return nil
}
