package infra

import (
	"errors"
	"strings"

	"github.com/amirasaad/digitalbank/pkg/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const sqliteScheme = "sqlite://"

// ErrDatabaseURLMissing is returned when no DATABASE_URL is configured.
var ErrDatabaseURLMissing = errors.New("DATABASE_URL is not set")

// NewDBConnection opens a gorm connection for cnf.Url. URLs starting with
// sqlite:// open a sqlite database at the remaining path; anything else is
// handed to the postgres driver. appEnv selects the gorm log level.
func NewDBConnection(
	cnf *config.DB,
	appEnv string,
) (*gorm.DB, error) {
	if cnf == nil || cnf.Url == "" {
		return nil, ErrDatabaseURLMissing
	}

	var logMode logger.LogLevel
	if appEnv == "development" {
		logMode = logger.Info
	} else {
		logMode = logger.Silent
	}

	dialector, inMemory := dialectorFor(cnf.Url)
	connection, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(logMode),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := connection.DB()
	if err != nil {
		return nil, err
	}
	if inMemory {
		// every new connection to :memory: would see an empty database
		sqlDB.SetMaxOpenConns(1)
		return connection, nil
	}
	sqlDB.SetMaxOpenConns(cnf.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cnf.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cnf.ConnMaxLifetime)

	return connection, nil
}

func dialectorFor(url string) (gorm.Dialector, bool) {
	if path, ok := strings.CutPrefix(url, sqliteScheme); ok {
		return sqlite.Open(path), path == ":memory:"
	}
	return postgres.Open(url), false
}
