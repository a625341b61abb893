package database

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"time"

	"server/config"
	logg "server/internal/logger"

	"github.com/valkey-io/valkey-go"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// cacheDialTimeout bounds the initial cache connect; a dead cache service
// must degrade the process quickly instead of hanging the first request.
const cacheDialTimeout = 2 * time.Second

type CacheClient = valkey.Client

type DB struct {
	SQL *gorm.DB
	log logg.Logger
}

func New(config config.Config) (DB, error) {
	log := logg.New("database").Function("New")

	log.Info("Initializing database")
	db := &DB{log: log}

	if err := db.initializeDB(config); err != nil {
		return DB{}, log.Err("failed to initialize database", err)
	}

	return *db, nil
}

func (s *DB) initializeDB(config config.Config) error {
	gormLogger := logger.New(
		slog.NewLogLogger(slog.Default().Handler(), slog.LevelInfo),
		logger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      false,
			Colorful:                  false,
		},
	)

	gormConfig := &gorm.Config{
		Logger:         gormLogger,
		PrepareStmt:    true,
		TranslateError: true,
	}

	return s.initializeSQLiteDB(gormConfig, config)
}

func (s *DB) initializeSQLiteDB(gormConfig *gorm.Config, config config.Config) error {
	log := s.log.Function("initializeSQLiteDB")

	dbPath := config.DatabaseDbPath
	if dbPath == "" {
		return log.Error("database path is empty", "dbPath", dbPath)
	}

	if dir := filepath.Dir(dbPath); dir != "." && dbPath != ":memory:" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return log.Err("failed to create database directory", err, "dir", dir)
		}
	}

	log.Info("Connecting with GORM", "dbPath", dbPath)
	db, err := gorm.Open(sqlite.Open(dbPath), gormConfig)
	if err != nil {
		return log.Err("failed to open database with GORM", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return log.Err("failed to get database from GORM", err)
	}

	if err := sqlDB.Ping(); err != nil {
		return log.Err("failed to ping database through GORM", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	s.SQL = db

	return nil
}

func (s *DB) Close() error {
	if s.SQL == nil {
		return nil
	}

	sqlDB, err := s.SQL.DB()
	if err != nil {
		return s.log.Err("failed to get database handle for close", err)
	}
	if err := sqlDB.Close(); err != nil {
		return s.log.Err("failed to close database", err)
	}

	return nil
}

func (s *DB) SQLWithContext(ctx context.Context) *gorm.DB {
	return s.SQL.WithContext(ctx)
}

// NewCacheClient dials the cache service. Callers create the client lazily
// and keep it for the process lifetime; a connect failure here is their cue
// to fail open to the legacy store.
func NewCacheClient(config config.Config) (CacheClient, error) {
	log := logg.New("database").Function("NewCacheClient")

	if config.DatabaseCacheAddress == "" {
		return nil, log.ErrMsg("cache address is empty")
	}

	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress:  []string{fmt.Sprintf("%s:%d", config.DatabaseCacheAddress, config.DatabaseCachePort)},
		Dialer:       net.Dialer{Timeout: cacheDialTimeout},
		DisableCache: true,
	})
	if err != nil {
		return nil, log.Err("failed to connect to cache", err,
			"address", config.DatabaseCacheAddress, "port", config.DatabaseCachePort)
	}

	return client, nil
}
