package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"inkpost/models"
)

type GormBlogRepository struct {
	db *gorm.DB
}

func NewGormBlogRepository(db *gorm.DB) *GormBlogRepository {
	return &GormBlogRepository{db: db}
}

func (r *GormBlogRepository) FindBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	return r.findOne(ctx, "slug = ?", slug)
}

func (r *GormBlogRepository) FindByID(ctx context.Context, id string) (*models.Blog, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *GormBlogRepository) findOne(ctx context.Context, query string, arg string) (*models.Blog, error) {
	db := r.db.WithContext(ctx)

	var blog models.Blog
	if err := db.Where(query, arg).First(&blog).Error; err != nil {
		return nil, translateGormError(err, "find blog")
	}

	blogs := []models.Blog{blog}
	if err := loadRelations(db, blogs); err != nil {
		return nil, err
	}
	return &blogs[0], nil
}

func (r *GormBlogRepository) Find(ctx context.Context, filter BlogFilter, order SortOrder, limit int) ([]models.Blog, error) {
	blogs := []models.Blog{}
	if filter.AuthorIDs != nil && len(filter.AuthorIDs) == 0 {
		return blogs, nil
	}
	if unmatchableSearch(filter.Search) {
		return blogs, nil
	}

	db := r.db.WithContext(ctx)
	q := db.Model(&models.Blog{})

	if filter.Visibility != "" {
		q = q.Where("visibility = ?", filter.Visibility)
	}
	if filter.AuthorIDs != nil {
		q = q.Where("author_id IN ?", filter.AuthorIDs)
	}
	if tokens := SearchTokens(filter.Search); len(tokens) > 0 {
		words := r.db.Where("search_terms LIKE ?", likeWord(tokens[0]))
		for _, token := range tokens[1:] {
			words = words.Or("search_terms LIKE ?", likeWord(token))
		}
		q = q.Where(words)
	}
	if tag := strings.TrimSpace(filter.Tag); tag != "" {
		q = q.Where("EXISTS (SELECT 1 FROM blog_hashtags WHERE blog_hashtags.blog_id = blogs.id AND blog_hashtags.tag = ?)", tag)
	}

	switch order {
	case SortTrending:
		q = q.Order("likes DESC").Order("created_at DESC")
	default:
		q = q.Order("created_at DESC")
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	if err := q.Find(&blogs).Error; err != nil {
		return nil, fmt.Errorf("find blogs: %w", err)
	}
	if err := loadRelations(db, blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}

func (r *GormBlogRepository) Create(ctx context.Context, blog *models.Blog) error {
	if blog.Hashtags == nil {
		blog.Hashtags = []string{}
	}
	blog.LikedBy = uniqueIDs(blog.LikedBy)
	blog.Likes = len(blog.LikedBy)
	blog.SearchTerms = SearchTerms(blog.Title, blog.Content)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(blog).Error; err != nil {
			return err
		}
		if err := insertHashtags(tx, blog.ID, blog.Hashtags); err != nil {
			return err
		}
		if len(blog.LikedBy) == 0 {
			return nil
		}
		likes := make([]models.BlogLike, 0, len(blog.LikedBy))
		for _, userID := range blog.LikedBy {
			likes = append(likes, models.BlogLike{BlogID: blog.ID, UserID: userID, CreatedAt: blog.CreatedAt})
		}
		return tx.Create(&likes).Error
	})
	return translateGormError(err, "create blog")
}

func (r *GormBlogRepository) Save(ctx context.Context, blog *models.Blog) error {
	if blog.Hashtags == nil {
		blog.Hashtags = []string{}
	}
	blog.SearchTerms = SearchTerms(blog.Title, blog.Content)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Blog{}).Where("id = ?", blog.ID).Updates(map[string]interface{}{
			"title":        blog.Title,
			"content":      blog.Content,
			"cover_image":  blog.CoverImage,
			"visibility":   blog.Visibility,
			"search_terms": blog.SearchTerms,
			"updated_at":   blog.UpdatedAt,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		if err := tx.Where("blog_id = ?", blog.ID).Delete(&models.BlogHashtag{}).Error; err != nil {
			return err
		}
		return insertHashtags(tx, blog.ID, blog.Hashtags)
	})
	return translateGormError(err, "save blog")
}

func (r *GormBlogRepository) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&models.Blog{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Where("blog_id = ?", id).Delete(&models.BlogLike{}).Error; err != nil {
			return err
		}
		return tx.Where("blog_id = ?", id).Delete(&models.BlogHashtag{}).Error
	})
	return translateGormError(err, "delete blog")
}

// ToggleLike removes the (blog, user) row if present and inserts it
// otherwise, then rewrites the cached count from the join table. All of it
// runs in one transaction so the count always equals the number of rows.
func (r *GormBlogRepository) ToggleLike(ctx context.Context, blogID, userID string) (models.LikeState, error) {
	var state models.LikeState

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Blog{}).Where("id = ?", blogID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}

		res := tx.Where("blog_id = ? AND user_id = ?", blogID, userID).Delete(&models.BlogLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			like := models.BlogLike{BlogID: blogID, UserID: userID, CreatedAt: time.Now().UTC()}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
				return err
			}
			state.Liked = true
		}

		err := tx.Exec(
			"UPDATE blogs SET likes = (SELECT COUNT(*) FROM blog_likes WHERE blog_likes.blog_id = ?) WHERE id = ?",
			blogID, blogID,
		).Error
		if err != nil {
			return err
		}

		return tx.Model(&models.Blog{}).Select("likes").Where("id = ?", blogID).Row().Scan(&state.Likes)
	})
	if err != nil {
		return models.LikeState{}, translateGormError(err, "toggle like")
	}
	return state, nil
}

func insertHashtags(tx *gorm.DB, blogID string, tags []string) error {
	if len(tags) == 0 {
		return nil
	}
	rows := make([]models.BlogHashtag, 0, len(tags))
	for i, tag := range tags {
		rows = append(rows, models.BlogHashtag{BlogID: blogID, Position: i, Tag: tag})
	}
	return tx.Create(&rows).Error
}

// loadRelations fills Hashtags and LikedBy of every blog in place.
func loadRelations(db *gorm.DB, blogs []models.Blog) error {
	if len(blogs) == 0 {
		return nil
	}

	ids := make([]string, len(blogs))
	byID := make(map[string]*models.Blog, len(blogs))
	for i := range blogs {
		blogs[i].Hashtags = []string{}
		blogs[i].LikedBy = []string{}
		ids[i] = blogs[i].ID
		byID[blogs[i].ID] = &blogs[i]
	}

	var tags []models.BlogHashtag
	if err := db.Where("blog_id IN ?", ids).Order("blog_id").Order("position").Find(&tags).Error; err != nil {
		return fmt.Errorf("load hashtags: %w", err)
	}
	for _, t := range tags {
		if b, ok := byID[t.BlogID]; ok {
			b.Hashtags = append(b.Hashtags, t.Tag)
		}
	}

	var likes []models.BlogLike
	if err := db.Where("blog_id IN ?", ids).Order("created_at").Order("user_id").Find(&likes).Error; err != nil {
		return fmt.Errorf("load likes: %w", err)
	}
	for _, l := range likes {
		if b, ok := byID[l.BlogID]; ok {
			b.LikedBy = append(b.LikedBy, l.UserID)
		}
	}
	return nil
}

func uniqueIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func translateGormError(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
