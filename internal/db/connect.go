// Package db handles storage connection and schema migration.
package db

import (
	"fmt"

	"github.com/contentflowhq/contentflow/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DSN builds a MySQL DSN from database config.
func DSN(host string, port int, database string) string {
	return fmt.Sprintf("root@tcp(%s:%d)/%s?parseTime=true", host, port, database)
}

// Connect opens a GORM connection per the configured driver. The sqlite
// driver with path ":memory:" keeps the whole store in process memory, which
// is the default deployment shape.
func Connect(dbc config.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	switch dbc.Driver {
	case "sqlite", "":
		db, err := gorm.Open(sqlite.Open(dbc.Path), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("db: open sqlite %s: %w", dbc.Path, err)
		}
		return db, nil
	case "mysql":
		dsn := DSN(dbc.Host, dbc.Port, dbc.Database)
		db, err := gorm.Open(mysql.Open(dsn), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("db: connect to %s:%d/%s: %w", dbc.Host, dbc.Port, dbc.Database, err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("db: unsupported driver %q", dbc.Driver)
	}
}
