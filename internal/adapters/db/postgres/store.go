package postgres

import (
	"context"
	"errors"
	"time"

	customErrors "github.com/Miraines/MoonyAndStarry/task-service/internal/domain/task/errors"
	"github.com/Miraines/MoonyAndStarry/task-service/internal/domain/task/repo"
	"github.com/Miraines/MoonyAndStarry/task-service/internal/infra/clock"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const uniqueViolation = "23505"

// Store implements repo.Store on top of GORM.
type Store struct {
	db *gorm.DB
}

var _ repo.Store = (*Store)(nil)

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Open connects to PostgreSQL. Autogenerated timestamps come from clk.
func Open(dsn string, clk clock.Clock, debug bool) (*gorm.DB, error) {
	level := logger.Warn
	if debug {
		level = logger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		NowFunc: clk.Now,
		Logger:  logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, customErrors.WrapInternal(err, "open database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, customErrors.WrapInternal(err, "open database")
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

// WithTx commits when fn returns nil and rolls back otherwise. Errors
// returned by fn reach the caller unchanged.
func (s *Store) WithTx(ctx context.Context, fn func(tx repo.Store) error) error {
	var fnErr error
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fnErr = fn(&Store{db: tx})
		return fnErr
	})
	if err == nil || (fnErr != nil && errors.Is(err, fnErr)) {
		return err
	}
	return customErrors.WrapInternal(err, "transaction")
}

// Ping reports whether the database answers.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// mapError translates GORM and driver errors into domain errors.
func mapError(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return customErrors.ErrNotFound
	case isUniqueViolation(err):
		return customErrors.ErrAlreadyExists
	}
	return customErrors.WrapInternal(err, op)
}
