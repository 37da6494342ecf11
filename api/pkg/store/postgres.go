package store

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/config"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/types"
)

// GormStore implements Store on top of gorm. Postgres is the production
// driver (with pgvector for semantic skill search), SQLite is used for local
// runs and tests.
type GormStore struct {
	cfg config.Store
	gdb *gorm.DB
}

var _ Store = &GormStore{}

func NewStore(cfg config.Store) (*GormStore, error) {
	gdb, err := connect(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	s := &GormStore{
		cfg: cfg,
		gdb: gdb,
	}

	if cfg.AutoMigrate {
		if err := s.autoMigrate(); err != nil {
			return nil, fmt.Errorf("there was an error doing the migration: %w", err)
		}
	}

	return s, nil
}

func (s *GormStore) Close() error {
	sqlDB, err := s.gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *GormStore) vectorSearchSupported() bool {
	return s.cfg.Driver != config.StoreDriverSQLite
}

func (s *GormStore) autoMigrate() error {
	if s.vectorSearchSupported() {
		err := s.gdb.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error
		if err != nil {
			return fmt.Errorf("failed to create vector extension: %w", err)
		}
	}

	err := s.gdb.WithContext(context.Background()).AutoMigrate(
		&types.Skill{},
		&types.SkillAssociation{},
		&types.SkillExecution{},
		&types.Integration{},
		&types.ChatbotIntegration{},
	)
	if err != nil {
		return fmt.Errorf("failed to auto migrate: %w", err)
	}

	if s.vectorSearchSupported() {
		err = s.gdb.Exec("CREATE INDEX IF NOT EXISTS skills_embedding_index ON skills USING hnsw (embedding vector_cosine_ops)").Error
		if err != nil {
			return fmt.Errorf("failed to create hnsw index: %w", err)
		}
	}

	return nil
}

func connect(ctx context.Context, cfg config.Store) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: NewGormLogger(cfg.SlowQuery, true),
	}

	if cfg.Driver == config.StoreDriverSQLite {
		gdb, err := gorm.Open(sqlite.Open(cfg.SQLitePath), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, err
		}
		// a single connection keeps ":memory:" databases shared
		sqlDB.SetMaxOpenConns(1)
		return gdb, nil
	}

	var gdb *gorm.DB

	// Waiting for connection
	err := retry.Do(func() error {
		var err error
		gdb, err = gorm.Open(postgres.Open(cfg.DSN()), gormCfg)
		if err != nil {
			return err
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	},
		retry.Attempts(10),
		retry.Delay(time.Second),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			log.Warn().Err(err).Uint("attempt", n+1).Str("host", cfg.Host).Msg("waiting for postgres")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.IdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxConns)
	sqlDB.SetConnMaxIdleTime(cfg.MaxConnIdleTime)
	sqlDB.SetConnMaxLifetime(cfg.MaxConnLifetime)

	return gdb, nil
}
