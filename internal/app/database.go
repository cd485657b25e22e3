package app

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bjo163/orderdesk/config"
)

// getDatabase opens the configured relational store. Foreign keys are never
// created: references between tables are plain integer columns.
func getDatabase(cfg config.DBConfig, dataDir string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Type {
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			cfg.Host, cfg.Port, cfg.User, cfg.Passwd, cfg.Name)
		dialector = postgres.Open(dsn)
	case "mysql":
		dialector = mysql.Open(mysqlDSN(cfg))
	case "sqlite":
		dialector = sqlite.Open(filepath.Join(dataDir, cfg.Name+".db"))
	default:
		return nil, errors.Errorf("unsupported database type %q", cfg.Type)
	}

	logLevel := logger.Warn
	if cfg.Debug {
		logLevel = logger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                                   logger.Default.LogMode(logLevel),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open %s database", cfg.Type)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get database handle")
	}
	if cfg.MaxConn > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxConn)
	}
	if cfg.IdleConn > 0 {
		sqlDB.SetMaxIdleConns(cfg.IdleConn)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)
	return db, nil
}

func mysqlDSN(cfg config.DBConfig) string {
	mc := mysqldrv.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Passwd
	mc.Net = "tcp"
	mc.Addr = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	mc.DBName = cfg.Name
	mc.ParseTime = true
	mc.Loc = time.UTC
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc.FormatDSN()
}
