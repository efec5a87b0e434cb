package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	_ "github.com/lib/pq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"soundwave/internal/config"
	"soundwave/internal/store"
	"soundwave/internal/store/memory"
	"soundwave/internal/store/mongostore"
	"soundwave/internal/store/postgres"
)

const (
	connMaxIdleTime = 5 * time.Minute
	connMaxLifetime = 30 * time.Minute
)

// OpenPostgres opens and pings a lib/pq connection pool.
func OpenPostgres(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.PostgresURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxIdleTime(connMaxIdleTime)
	db.SetConnMaxLifetime(connMaxLifetime)

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout())
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// ConnectMongo connects to the deployment at cfg.MongoURI and returns the
// configured database.
func ConnectMongo(ctx context.Context, cfg config.DatabaseConfig) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout())
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetMaxPoolSize(uint64(cfg.MaxOpenConns))
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client.Database(cfg.MongoDB), nil
}

// OpenStore connects the backend selected by cfg.Driver and makes sure its
// schema or indexes exist.
func OpenStore(ctx context.Context, cfg config.DatabaseConfig, logger *log.Logger) (store.Store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		logger.Warn("using in-memory store, data is lost on restart")
		return memory.New(), nil

	case config.DriverPostgres:
		db, err := OpenPostgres(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := CreateTables(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		logger.Info("connected to database", "driver", cfg.Driver)
		return postgres.New(db, cfg.Timeout()), nil

	case config.DriverMongo:
		db, err := ConnectMongo(ctx, cfg)
		if err != nil {
			return nil, err
		}
		st := mongostore.New(db, cfg.Timeout())
		if err := st.EnsureIndexes(ctx); err != nil {
			_ = st.Close(context.Background())
			return nil, err
		}
		logger.Info("connected to database", "driver", cfg.Driver, "database", cfg.MongoDB)
		return st, nil

	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}
