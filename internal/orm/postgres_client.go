package orm

import (
	"context"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/inkwell-org/backend/internal/like"
)

type PostgresClient struct {
	database *gorm.DB
}

// NewPostgresClient opens a connection pool against dsn. TranslateError is on
// so unique-constraint violations surface as gorm.ErrDuplicatedKey, which the
// like engine uses as its serialization point.
func NewPostgresClient(dsn string) (*PostgresClient, error) {
	database, err := gorm.Open(
		postgres.Open(dsn),
		&gorm.Config{TranslateError: true},
	)
	if err != nil {
		return nil, err
	}

	rawDatabase, err := database.DB()
	if err != nil {
		return nil, err
	}

	rawDatabase.SetMaxOpenConns(16)
	rawDatabase.SetMaxIdleConns(4)
	rawDatabase.SetConnMaxIdleTime(5 * time.Minute)

	return &PostgresClient{
		database: database,
	}, nil
}

// Migrate creates or updates the schema for all models, including the
// composite unique indexes on the like-edge tables.
func (c *PostgresClient) Migrate() error {
	return c.database.AutoMigrate(
		&User{},
		&Article{},
		&Category{},
		&Comment{},
		&ArticleLike{},
		&CommentLike{},
	)
}

// InTransaction runs fn inside a single database transaction. The store
// passed to fn shares the transaction handle, so every statement fn issues
// commits or rolls back as one unit.
func (c *PostgresClient) InTransaction(ctx context.Context, fn func(store like.Store) error) error {
	return c.database.WithContext(ctx).Transaction(func(transaction *gorm.DB) error {
		return fn(&PostgresClient{database: transaction})
	})
}

func (c *PostgresClient) Close() error {
	rawDatabase, err := c.database.DB()
	if err != nil {
		return err
	}
	return rawDatabase.Close()
}
