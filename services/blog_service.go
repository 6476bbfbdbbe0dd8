package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"inkpost/errs"
	"inkpost/models"
	"inkpost/repository"
	"inkpost/utils"
)

const (
	latestLimit   = 20
	trendingLimit = 10
)

// LikeNotifier is told about every successful like toggle.
type LikeNotifier interface {
	NotifyLike(blogID string, likes int)
}

type BlogService struct {
	blogs    repository.BlogRepository
	users    repository.UserRepository
	notifier LikeNotifier
	log      zerolog.Logger

	now  func() time.Time
	slug func(title string) string
}

// NewBlogService builds the content service. notifier may be nil.
func NewBlogService(blogs repository.BlogRepository, users repository.UserRepository, notifier LikeNotifier, log zerolog.Logger) *BlogService {
	return &BlogService{
		blogs:    blogs,
		users:    users,
		notifier: notifier,
		log:      log.With().Str("component", "blog_service").Logger(),
		now:      func() time.Time { return time.Now().UTC() },
		slug:     utils.GenerateSlug,
	}
}

// ListBlogs returns the latest and trending public posts of active authors.
// Both lists share one filter and are queried concurrently.
func (s *BlogService) ListBlogs(ctx context.Context, query models.BlogQuery) (*models.BlogListing, error) {
	activeIDs, err := s.users.ActiveIDs(ctx)
	if err != nil {
		return nil, errs.Internal("failed to list blogs", err)
	}
	if activeIDs == nil {
		activeIDs = []string{}
	}

	filter := repository.BlogFilter{
		Visibility: models.VisibilityPublic,
		AuthorIDs:  activeIDs,
		Search:     query.Search,
		Tag:        query.Tag,
	}

	var latest, trending []models.Blog
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		latest, err = s.blogs.Find(gctx, filter, repository.SortLatest, latestLimit)
		return err
	})
	g.Go(func() error {
		var err error
		trending, err = s.blogs.Find(gctx, filter, repository.SortTrending, trendingLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, errs.Internal("failed to list blogs", err)
	}

	if latest == nil {
		latest = []models.Blog{}
	}
	if trending == nil {
		trending = []models.Blog{}
	}
	return &models.BlogListing{Latest: latest, Trending: trending}, nil
}

func (s *BlogService) GetBySlug(ctx context.Context, slug string, requester *models.Identity) (*models.Blog, error) {
	blog, err := s.blogs.FindBySlug(ctx, slug)
	if err != nil {
		return nil, storeError(err, "blog not found")
	}
	return s.visibleDetail(ctx, blog, requester)
}

// GetByID is the editor's lookup; it applies the same visibility rule as GetBySlug.
func (s *BlogService) GetByID(ctx context.Context, id string, requester *models.Identity) (*models.Blog, error) {
	blog, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "blog not found")
	}
	return s.visibleDetail(ctx, blog, requester)
}

func (s *BlogService) visibleDetail(ctx context.Context, blog *models.Blog, requester *models.Identity) (*models.Blog, error) {
	if blog.Visibility == models.VisibilityPrivate && !requester.Is(blog.AuthorID) {
		return nil, errs.Forbidden("this blog is private")
	}

	author, err := s.users.FindByID(ctx, blog.AuthorID)
	switch {
	case err == nil:
		blog.Author = &models.AuthorSummary{ID: author.ID, Username: author.Username, Profile: author.Profile}
	case errors.Is(err, repository.ErrNotFound):
		blog.Author = &models.AuthorSummary{ID: blog.AuthorID, Username: blog.AuthorName}
	default:
		return nil, errs.Internal("failed to load author", err)
	}

	blog.ContentHTML = utils.RenderMarkdown(blog.Content)
	return blog, nil
}

func (s *BlogService) Create(ctx context.Context, req models.CreateBlogRequest, requester models.Identity) (*models.Blog, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" || strings.TrimSpace(req.Content) == "" {
		return nil, errs.BadRequest("title and content are required")
	}

	visibility := req.Visibility
	if visibility == "" {
		visibility = models.VisibilityPublic
	}
	if !visibility.Valid() {
		return nil, errs.BadRequest("visibility must be public or private")
	}

	now := s.now()
	blog := &models.Blog{
		ID:         newID(),
		Title:      title,
		Slug:       s.slug(title),
		Content:    req.Content,
		CoverImage: strings.TrimSpace(req.CoverImage),
		Hashtags:   cleanHashtags(req.Hashtags),
		AuthorID:   requester.ID,
		AuthorName: requester.Username,
		Visibility: visibility,
		LikedBy:    []string{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.blogs.Create(ctx, blog); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errs.Conflict("a blog with this slug already exists")
		}
		return nil, errs.Internal("failed to create blog", err)
	}

	s.log.Info().Str("blog_id", blog.ID).Str("author_id", blog.AuthorID).Msg("blog created")
	return blog, nil
}

// Update applies the present fields of patch. The slug never changes.
func (s *BlogService) Update(ctx context.Context, id string, patch models.BlogPatch, requester models.Identity) (*models.Blog, error) {
	blog, err := s.ownedBlog(ctx, id, requester)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, errs.BadRequest("title cannot be empty")
		}
		blog.Title = title
	}
	if patch.Content != nil {
		if strings.TrimSpace(*patch.Content) == "" {
			return nil, errs.BadRequest("content cannot be empty")
		}
		blog.Content = *patch.Content
	}
	if patch.CoverImage != nil {
		blog.CoverImage = strings.TrimSpace(*patch.CoverImage)
	}
	if patch.Hashtags != nil {
		blog.Hashtags = cleanHashtags(*patch.Hashtags)
	}
	if patch.Visibility != nil {
		if !patch.Visibility.Valid() {
			return nil, errs.BadRequest("visibility must be public or private")
		}
		blog.Visibility = *patch.Visibility
	}

	previous := blog.UpdatedAt
	blog.UpdatedAt = s.now()
	if !blog.UpdatedAt.After(previous) {
		blog.UpdatedAt = previous.Add(time.Millisecond)
	}

	if err := s.blogs.Save(ctx, blog); err != nil {
		return nil, storeError(err, "blog not found")
	}
	return blog, nil
}

func (s *BlogService) Delete(ctx context.Context, id string, requester models.Identity) error {
	if _, err := s.ownedBlog(ctx, id, requester); err != nil {
		return err
	}
	if err := s.blogs.Delete(ctx, id); err != nil {
		return storeError(err, "blog not found")
	}

	s.log.Info().Str("blog_id", id).Str("author_id", requester.ID).Msg("blog deleted")
	return nil
}

// ToggleLike flips the caller's like on a blog and reports the new state.
func (s *BlogService) ToggleLike(ctx context.Context, blogID string, requester models.Identity) (*models.LikeState, error) {
	state, err := s.blogs.ToggleLike(ctx, blogID, requester.ID)
	if err != nil {
		return nil, storeError(err, "blog not found")
	}

	if s.notifier != nil {
		s.notifier.NotifyLike(blogID, state.Likes)
	}
	return &state, nil
}

func (s *BlogService) ownedBlog(ctx context.Context, id string, requester models.Identity) (*models.Blog, error) {
	blog, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "blog not found")
	}
	if !requester.Is(blog.AuthorID) {
		return nil, errs.Forbidden("only the author can modify this blog")
	}
	return blog, nil
}

func cleanHashtags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}
