package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"inkpost/database"
	"inkpost/models"
)

// maxToggleAttempts bounds the retries of a like toggle whose membership
// flipped between the unlike and the like attempt.
const maxToggleAttempts = 3

type MongoBlogRepository struct {
	col *mongo.Collection
}

func NewMongoBlogRepository(db *mongo.Database) *MongoBlogRepository {
	return &MongoBlogRepository{col: db.Collection(database.BlogsCollection)}
}

func (r *MongoBlogRepository) FindBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

func (r *MongoBlogRepository) FindByID(ctx context.Context, id string) (*models.Blog, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoBlogRepository) findOne(ctx context.Context, filter bson.M) (*models.Blog, error) {
	blog := new(models.Blog)
	if err := r.col.FindOne(ctx, filter).Decode(blog); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find blog: %w", err)
	}
	normalizeBlog(blog)
	return blog, nil
}

func (r *MongoBlogRepository) Find(ctx context.Context, filter BlogFilter, order SortOrder, limit int) ([]models.Blog, error) {
	blogs := []models.Blog{}
	if filter.AuthorIDs != nil && len(filter.AuthorIDs) == 0 {
		return blogs, nil
	}
	if unmatchableSearch(filter.Search) {
		return blogs, nil
	}

	opts := options.Find().SetSort(blogSort(order))
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.col.Find(ctx, blogFilterDocument(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("find blogs: %w", err)
	}
	if err := cursor.All(ctx, &blogs); err != nil {
		return nil, fmt.Errorf("decode blogs: %w", err)
	}
	for i := range blogs {
		normalizeBlog(&blogs[i])
	}
	return blogs, nil
}

func (r *MongoBlogRepository) Create(ctx context.Context, blog *models.Blog) error {
	normalizeBlog(blog)
	blog.LikedBy = uniqueIDs(blog.LikedBy)
	blog.Likes = len(blog.LikedBy)

	if _, err := r.col.InsertOne(ctx, blog); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("create blog: %w", err)
	}
	return nil
}

func (r *MongoBlogRepository) Save(ctx context.Context, blog *models.Blog) error {
	normalizeBlog(blog)
	update := bson.M{"$set": bson.M{
		"title":       blog.Title,
		"content":     blog.Content,
		"cover_image": blog.CoverImage,
		"hashtags":    blog.Hashtags,
		"visibility":  blog.Visibility,
		"updated_at":  blog.UpdatedAt,
	}}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": blog.ID}, update)
	if err != nil {
		return fmt.Errorf("save blog: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoBlogRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleLike first tries to remove userID from a document that contains it,
// then to add it to a document that does not. Each attempt is a single
// conditional pipeline update that rewrites liked_by and likes together.
func (r *MongoBlogRepository) ToggleLike(ctx context.Context, blogID, userID string) (models.LikeState, error) {
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"likes": 1})

	for attempt := 0; attempt < maxToggleAttempts; attempt++ {
		var doc struct {
			Likes int `bson:"likes"`
		}

		err := r.col.FindOneAndUpdate(ctx,
			bson.M{"_id": blogID, "liked_by": userID},
			unlikePipeline(userID),
			opts,
		).Decode(&doc)
		if err == nil {
			return models.LikeState{Likes: doc.Likes, Liked: false}, nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return models.LikeState{}, fmt.Errorf("unlike blog: %w", err)
		}

		err = r.col.FindOneAndUpdate(ctx,
			bson.M{"_id": blogID, "liked_by": bson.M{"$ne": userID}},
			likePipeline(userID),
			opts,
		).Decode(&doc)
		if err == nil {
			return models.LikeState{Likes: doc.Likes, Liked: true}, nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return models.LikeState{}, fmt.Errorf("like blog: %w", err)
		}

		n, err := r.col.CountDocuments(ctx, bson.M{"_id": blogID})
		if err != nil {
			return models.LikeState{}, fmt.Errorf("count blog: %w", err)
		}
		if n == 0 {
			return models.LikeState{}, ErrNotFound
		}
	}

	return models.LikeState{}, fmt.Errorf("toggle like on %s: membership changed during %d attempts", blogID, maxToggleAttempts)
}

func blogFilterDocument(filter BlogFilter) bson.M {
	doc := bson.M{}
	if filter.Visibility != "" {
		doc["visibility"] = filter.Visibility
	}
	if filter.AuthorIDs != nil {
		doc["author_id"] = bson.M{"$in": filter.AuthorIDs}
	}
	if tokens := SearchTokens(filter.Search); len(tokens) > 0 {
		doc["$text"] = bson.M{"$search": strings.Join(tokens, " ")}
	}
	if tag := strings.TrimSpace(filter.Tag); tag != "" {
		doc["hashtags"] = tag
	}
	return doc
}

func blogSort(order SortOrder) bson.D {
	if order == SortTrending {
		return bson.D{{Key: "likes", Value: -1}, {Key: "created_at", Value: -1}}
	}
	return bson.D{{Key: "created_at", Value: -1}}
}

func likePipeline(userID string) mongo.Pipeline {
	return likedByPipeline("$setUnion", userID)
}

func unlikePipeline(userID string) mongo.Pipeline {
	return likedByPipeline("$setDifference", userID)
}

// likedByPipeline applies a set operator between liked_by and {userID}, then
// derives likes from the resulting set size.
func likedByPipeline(setOp, userID string) mongo.Pipeline {
	current := bson.D{{Key: "$ifNull", Value: bson.A{"$liked_by", bson.A{}}}}
	member := bson.A{bson.D{{Key: "$literal", Value: userID}}}

	return mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "liked_by", Value: bson.D{{Key: setOp, Value: bson.A{current, member}}}},
		}}},
		{{Key: "$set", Value: bson.D{
			{Key: "likes", Value: bson.D{{Key: "$size", Value: "$liked_by"}}},
		}}},
	}
}

func normalizeBlog(blog *models.Blog) {
	if blog.Hashtags == nil {
		blog.Hashtags = []string{}
	}
	if blog.LikedBy == nil {
		blog.LikedBy = []string{}
	}
}
