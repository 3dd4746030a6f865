package infrastructure

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// PostgresConfig paramètres de connexion PostgreSQL
type PostgresConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DSN construit la chaîne de connexion lib/pq
func (c PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// OpenPostgres ouvre et vérifie un pool de connexions
func OpenPostgres(ctx context.Context, cfg PostgresConfig) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("connect postgres %s:%s/%s: %w", cfg.Host, cfg.Port, cfg.DBName, err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	return db, nil
}

// UnitOfWork exécute une fonction dans une transaction
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(tx *sqlx.Tx) error) error
}

// DBUnitOfWork implémentation de UnitOfWork avec sqlx.DB
type DBUnitOfWork struct {
	db *sqlx.DB
}

// NewUnitOfWork crée une nouvelle instance de UnitOfWork
func NewUnitOfWork(db *sqlx.DB) UnitOfWork {
	return &DBUnitOfWork{db: db}
}

// Execute exécute fn dans une transaction, rollback sur erreur ou panic
func (uow *DBUnitOfWork) Execute(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := uow.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}

	return tx.Commit()
}

// BaseRepository structure de base pour les repositories en lecture
type BaseRepository struct {
	db *sqlx.DB
}

// NewBaseRepository crée un nouveau repository de base
func NewBaseRepository(db *sqlx.DB) BaseRepository {
	return BaseRepository{db: db}
}

// Query exécute une requête de lecture
func (r *BaseRepository) Query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return r.db.QueryContext(ctx, query, args...)
}

// DB retourne le pool sous-jacent
func (r *BaseRepository) DB() *sqlx.DB {
	return r.db
}
