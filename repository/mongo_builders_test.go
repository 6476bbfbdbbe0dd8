package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"inkpost/models"
)

func TestBlogFilterDocument(t *testing.T) {
	doc := blogFilterDocument(BlogFilter{
		Visibility: models.VisibilityPublic,
		AuthorIDs:  []string{"a", "b"},
		Search:     "Go, Gin!",
		Tag:        " golang ",
	})

	assert.Equal(t, models.VisibilityPublic, doc["visibility"])
	assert.Equal(t, bson.M{"$in": []string{"a", "b"}}, doc["author_id"])
	assert.Equal(t, bson.M{"$search": "go gin"}, doc["$text"])
	assert.Equal(t, "golang", doc["hashtags"])
}

func TestBlogFilterDocument_Empty(t *testing.T) {
	assert.Empty(t, blogFilterDocument(BlogFilter{Search: "  ...  "}))
}

func TestBlogSort(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "created_at", Value: -1}}, blogSort(SortLatest))
	assert.Equal(t, bson.D{{Key: "likes", Value: -1}, {Key: "created_at", Value: -1}}, blogSort(SortTrending))
}

func TestLikePipelines(t *testing.T) {
	for op, pipeline := range map[string]bson.D{
		"$setUnion":      likePipeline("u1")[0],
		"$setDifference": unlikePipeline("u1")[0],
	} {
		set, ok := pipeline[0].Value.(bson.D)
		require.True(t, ok)
		require.Equal(t, "liked_by", set[0].Key)

		expr, ok := set[0].Value.(bson.D)
		require.True(t, ok)
		assert.Equal(t, op, expr[0].Key)

		args, ok := expr[0].Value.(bson.A)
		require.True(t, ok)
		require.Len(t, args, 2)
		assert.Equal(t, bson.A{bson.D{{Key: "$literal", Value: "u1"}}}, args[1])
	}

	count := likePipeline("u1")[1]
	assert.Equal(t, bson.D{{Key: "$set", Value: bson.D{
		{Key: "likes", Value: bson.D{{Key: "$size", Value: "$liked_by"}}},
	}}}, count)
}
