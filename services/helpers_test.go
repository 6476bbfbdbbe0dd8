package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"inkpost/database"
	"inkpost/models"
	"inkpost/repository"
)

type testEnv struct {
	blogs    *repository.GormBlogRepository
	users    *repository.GormUserRepository
	notifier *recordingNotifier
	blog     *BlogService
	user     *UserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.OpenSQLite(":memory:", zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	env := &testEnv{
		blogs:    repository.NewGormBlogRepository(db),
		users:    repository.NewGormUserRepository(db),
		notifier: &recordingNotifier{},
	}
	env.blog = NewBlogService(env.blogs, env.users, env.notifier, zerolog.Nop())
	env.user = NewUserService(env.users, zerolog.Nop())

	// Deterministic, strictly increasing clock.
	var mu sync.Mutex
	clock := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	env.blog.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		clock = clock.Add(time.Minute)
		return clock
	}
	return env
}

func (e *testEnv) addUser(t *testing.T, username string) models.Identity {
	t.Helper()
	user := models.NewUser(username, username+"@example.com", "secret")
	require.NoError(t, e.users.Create(context.Background(), user))
	return user.Identity()
}

func (e *testEnv) addBlog(t *testing.T, author models.Identity, title string, visibility models.Visibility, tags ...string) *models.Blog {
	t.Helper()
	blog, err := e.blog.Create(context.Background(), models.CreateBlogRequest{
		Title:      title,
		Content:    "Body of " + title,
		Hashtags:   tags,
		Visibility: visibility,
	}, author)
	require.NoError(t, err)
	return blog
}

type likeEvent struct {
	blogID string
	likes  int
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []likeEvent
}

func (n *recordingNotifier) NotifyLike(blogID string, likes int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, likeEvent{blogID: blogID, likes: likes})
}

func (n *recordingNotifier) Events() []likeEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]likeEvent(nil), n.events...)
}

func blogIDs(blogs []models.Blog) []string {
	out := make([]string, 0, len(blogs))
	for _, b := range blogs {
		out = append(out, b.ID)
	}
	return out
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }
