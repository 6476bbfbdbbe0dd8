package database

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"gorm.io/gorm/logger"

	"inkpost/config"
	"inkpost/models"
)

func TestOpenSQLiteAndMigrate(t *testing.T) {
	db, err := OpenSQLite(":memory:", zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	for _, table := range []interface{}{&models.User{}, &models.Blog{}, &models.BlogHashtag{}, &models.BlogLike{}} {
		assert.True(t, db.Migrator().HasTable(table))
	}
	assert.True(t, db.Migrator().HasColumn(&models.User{}, "profile_is_active"))
	assert.True(t, db.Migrator().HasColumn(&models.Blog{}, "search_terms"))
}

func TestConnect_RejectsDocumentDriver(t *testing.T) {
	_, err := Connect(&config.Config{StoreDriver: config.StoreMongo}, zerolog.Nop())
	assert.Error(t, err)
}

func TestGormLogLevel(t *testing.T) {
	assert.Equal(t, logger.Info, gormLogLevel(zerolog.DebugLevel))
	assert.Equal(t, logger.Warn, gormLogLevel(zerolog.InfoLevel))
	assert.Equal(t, logger.Error, gormLogLevel(zerolog.ErrorLevel))
	assert.Equal(t, logger.Silent, gormLogLevel(zerolog.Disabled))
}

func TestMongoIndexes(t *testing.T) {
	indexes := MongoIndexes()
	require.Contains(t, indexes, BlogsCollection)
	require.Contains(t, indexes, UsersCollection)
	assert.Len(t, indexes[BlogsCollection], 6)

	var slugUnique, textIndex bool
	for _, idx := range indexes[BlogsCollection] {
		keys := idx.Keys.(bson.D)
		if keys[0].Key == "slug" {
			slugUnique = idx.Options != nil && idx.Options.Unique != nil && *idx.Options.Unique
		}
		if keys[0].Value == "text" {
			textIndex = true
		}
	}
	assert.True(t, slugUnique)
	assert.True(t, textIndex)

	unique := map[string]bool{}
	for _, idx := range indexes[UsersCollection] {
		if idx.Options != nil && idx.Options.Unique != nil {
			unique[idx.Keys.(bson.D)[0].Key] = *idx.Options.Unique
		}
	}
	assert.Equal(t, map[string]bool{"username": true, "email": true}, unique)
}
