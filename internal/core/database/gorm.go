package database

import (
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
)

type Opts struct {
	Driver             string
	DSN                string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	LogLevel           string
}

var ErrUnsupportedDriver = gorm.ErrInvalidDB

func NewGorm(o Opts) (*gorm.DB, error) {
	var dial gorm.Dialector
	switch o.Driver {
	case "postgres":
		dial = postgres.Open(o.DSN)
	case "mysql":
		dial = mysql.Open(normalizeMySQLDSN(o.DSN))
	case "sqlite":
		dial = sqlite.Open(o.DSN)
	default:
		return nil, ErrUnsupportedDriver
	}

	lvl := logger.Warn
	switch o.LogLevel {
	case "silent":
		lvl = logger.Silent
	case "error":
		lvl = logger.Error
	case "info":
		lvl = logger.Info
	}

	db, err := gorm.Open(dial, &gorm.Config{
		Logger: logger.Default.LogMode(lvl),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(o.MaxOpenConns)
	sqlDB.SetMaxIdleConns(o.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(o.ConnMaxLifetimeMin) * time.Minute)

	db = db.Session(&gorm.Session{
		PrepareStmt:            true, // 预编译缓存，提高 QPS
		SkipDefaultTransaction: true, // 仓储层自己开事务
	})
	return db, nil
}

// normalizeMySQLDSN 兼容 mysql:// URL 写法，统一转成 go-sql-driver 语法
func normalizeMySQLDSN(in string) string {
	in = strings.TrimSpace(in)
	if !strings.HasPrefix(in, "mysql://") {
		if !strings.Contains(in, "parseTime") && strings.Contains(in, "?") {
			return in + "&parseTime=true"
		}
		if !strings.Contains(in, "parseTime") {
			return in + "?parseTime=true"
		}
		return in
	}
	rest := strings.TrimPrefix(in, "mysql://")
	// user:pass@host:port/db → user:pass@tcp(host:port)/db
	at := strings.LastIndex(rest, "@")
	if at < 0 {
		return rest
	}
	cred, hostdb := rest[:at], rest[at+1:]
	slash := strings.Index(hostdb, "/")
	if slash < 0 {
		return rest
	}
	return cred + "@tcp(" + hostdb[:slash] + ")" + hostdb[slash:] + "?parseTime=true&charset=utf8mb4"
}
