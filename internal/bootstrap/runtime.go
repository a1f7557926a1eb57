// Package bootstrap wires the configured store, repositories and cache for the server and the
// operator commands.
package bootstrap

import (
	"context"
	"fmt"

	"campushub/internal/cache"
	"campushub/internal/config"
	"campushub/internal/database"
	"campushub/internal/repository"
	"campushub/internal/repository/mongorepo"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"gorm.io/gorm"
)

// Store is the backing database as seen by health probes and shutdown.
type Store interface {
	Driver() string
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Options control runtime initialization behavior.
type Options struct {
	// SkipRedis leaves the cache disabled. Operator commands do not need it.
	SkipRedis bool
}

// Runtime bundles the initialized dependencies of a process.
type Runtime struct {
	Store Store
	Users repository.UserRepository
	Posts repository.PostRepository
	Redis *redis.Client
	// DB is set for SQL drivers only.
	DB *gorm.DB
}

// InitRuntime connects the configured store (retrying until ctx is cancelled) and Redis.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*Runtime, error) {
	var rt *Runtime
	switch cfg.DBDriver {
	case config.DriverMongo:
		client, err := database.ConnectMongo(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("database connection failed: %w", err)
		}
		db := client.Database(cfg.DBName)
		if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		rt = NewMongoRuntime(client, db, nil)
	default:
		db, err := database.Connect(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("database connection failed: %w", err)
		}
		rt = NewSQLRuntime(db, nil)
	}

	if !opts.SkipRedis {
		// A nil client means the service runs without a cache.
		rt.Redis = cache.InitRedis(cfg.RedisURL)
	}
	return rt, nil
}

// NewSQLRuntime builds a Runtime over an open GORM connection.
func NewSQLRuntime(db *gorm.DB, redisClient *redis.Client) *Runtime {
	return &Runtime{
		Store: sqlStore{db: db},
		Users: repository.NewUserRepository(db),
		Posts: repository.NewPostRepository(db),
		Redis: redisClient,
		DB:    db,
	}
}

// NewMongoRuntime builds a Runtime over a connected MongoDB database.
func NewMongoRuntime(client *mongo.Client, db *mongo.Database, redisClient *redis.Client) *Runtime {
	return &Runtime{
		Store: mongoStore{client: client},
		Users: mongorepo.NewUserRepository(db),
		Posts: mongorepo.NewPostRepository(db),
		Redis: redisClient,
	}
}

// Close releases the store and the Redis client.
func (rt *Runtime) Close(ctx context.Context) error {
	if rt.Redis != nil {
		_ = rt.Redis.Close()
	}
	return rt.Store.Close(ctx)
}

type sqlStore struct {
	db *gorm.DB
}

func (s sqlStore) Driver() string { return s.db.Dialector.Name() }

func (s sqlStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s sqlStore) Close(_ context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type mongoStore struct {
	client *mongo.Client
}

func (s mongoStore) Driver() string { return config.DriverMongo }

func (s mongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s mongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
