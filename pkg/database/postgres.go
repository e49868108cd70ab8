package database

import (
	"time"

	"go-shop-backoffice/pkg/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// Options configure ConnectDB.
type Options struct {
	DSN         string
	TablePrefix string
	Log         *logger.Logger
}

// ConnectDB opens the pool. Shop-owned tables get TablePrefix through the naming strategy.
func ConnectDB(opts Options) (*gorm.DB, error) {
	log := opts.Log
	if log == nil {
		log = logger.Default()
	}

	sqlLogger := gormlogger.New(
		log.WithComponent("gorm").StdLog(),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  opts.DSN,
		PreferSimpleProtocol: true, // Disables implicit prepared statements for poolers in transaction mode
	}), &gorm.Config{
		Logger:         sqlLogger,
		PrepareStmt:    false,
		NamingStrategy: schema.NamingStrategy{TablePrefix: opts.TablePrefix},
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Infow("database connection established", "table_prefix", opts.TablePrefix)
	return db, nil
}
