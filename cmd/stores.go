package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"inkpost/config"
	"inkpost/database"
	"inkpost/repository"
)

// stores is the opened content store for the configured driver. Exactly one
// of sql and doc is set.
type stores struct {
	blogs repository.BlogRepository
	users repository.UserRepository

	sql   *gorm.DB
	doc   *mongo.Database
	close func(context.Context) error
}

func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	if cfg.StoreDriver == config.StoreMongo {
		cli, err := database.ConnectMongo(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		db := cli.Database(cfg.MongoDB)
		return &stores{
			blogs: repository.NewMongoBlogRepository(db),
			users: repository.NewMongoUserRepository(db),
			doc:   db,
			close: cli.Disconnect,
		}, nil
	}

	db, err := database.Connect(cfg, log)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sql handle: %w", err)
	}
	return &stores{
		blogs: repository.NewGormBlogRepository(db),
		users: repository.NewGormUserRepository(db),
		sql:   db,
		close: func(context.Context) error { return sqlDB.Close() },
	}, nil
}

func (s *stores) migrate(ctx context.Context) error {
	if s.doc != nil {
		return database.MigrateMongo(ctx, s.doc)
	}
	return database.Migrate(s.sql)
}
