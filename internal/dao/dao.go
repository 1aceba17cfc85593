// Package dao implements the domain repository contracts on gorm.
package dao

import (
	"fmt"
	"time"

	"github.com/micbed86/FancyNote-sub000/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DatabaseConfig mirrors the database section of the config file.
type DatabaseConfig struct {
	Type         string        `yaml:"type" default:"sqlite"`
	Path         string        `yaml:"path" default:"storage/database/fancynote.db"`
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	Name         string        `yaml:"name"`
	UserName     string        `yaml:"user-name"`
	Password     string        `yaml:"password"`
	Charset      string        `yaml:"charset" default:"utf8mb4"`
	MaxIdleConns int           `yaml:"max-idle-conns" default:"10"`
	MaxOpenConns int           `yaml:"max-open-conns" default:"30"`
	AutoMigrate  bool          `yaml:"auto-migrate" default:"true"`
	SlowLogTime  time.Duration `yaml:"slow-log-time" default:"200ms"`
}

// NewDBEngine opens the configured database and optionally migrates.
func NewDBEngine(cfg *DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.Type {
	case "sqlite", "sqlite3", "":
		dialector = sqlite.Open(cfg.Path)
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
			cfg.UserName, cfg.Password, cfg.Host, cfg.Port, cfg.Name, cfg.Charset)
		dialector = mysql.Open(dsn)
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
			cfg.Host, cfg.UserName, cfg.Password, cfg.Name, cfg.Port)
		dialector = postgres.Open(dsn)
	default:
		return nil, errors.Errorf("dao: unsupported database type %q", cfg.Type)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, errors.Wrap(err, "dao: open")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "dao: pool")
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if cfg.AutoMigrate {
		if err := model.MigrateDB(db); err != nil {
			return nil, errors.Wrap(err, "dao: migrate")
		}
	}
	return db, nil
}
