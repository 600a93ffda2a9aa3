package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/rahulsm/goblog/middleware"
	"github.com/rahulsm/goblog/models"
	"github.com/rahulsm/goblog/repository"
	"github.com/rahulsm/goblog/services"
	"github.com/rahulsm/goblog/token"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[bson.ObjectID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[bson.ObjectID]*models.User)}
}

func (f *fakeUserRepo) Insert(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) FindByID(_ context.Context, id bson.ObjectID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) FindByRefreshToken(_ context.Context, tok string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.RefreshToken != nil && *u.RefreshToken == tok {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) SetRefreshToken(_ context.Context, id bson.ObjectID, tok *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.RefreshToken = tok
	return nil
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

type fakePostRepo struct {
	mu    sync.Mutex
	posts map[bson.ObjectID]*models.Post
	users *fakeUserRepo
}

func newFakePostRepo(users *fakeUserRepo) *fakePostRepo {
	return &fakePostRepo{posts: make(map[bson.ObjectID]*models.Post), users: users}
}

func (f *fakePostRepo) Insert(_ context.Context, post *models.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if post.ID.IsZero() {
		post.ID = bson.NewObjectID()
	}
	cp := *post
	f.posts[post.ID] = &cp
	return nil
}

func (f *fakePostRepo) FindAll(ctx context.Context, page, limit int) ([]models.PostWithAuthor, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := make([]models.PostWithAuthor, 0, len(f.posts))
	for _, p := range f.posts {
		item := models.PostWithAuthor{
			ID:        p.ID,
			Title:     p.Title,
			Content:   p.Content,
			Slug:      p.Slug,
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		}
		if u, ok := f.users.users[p.Author]; ok {
			item.Author = models.AuthorInfo{ID: u.ID, Name: u.Name, Email: u.Email}
		}
		items = append(items, item)
	}
	return items, int64(len(items)), nil
}

func (f *fakePostRepo) FindByAuthor(_ context.Context, author bson.ObjectID) ([]models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	posts := make([]models.Post, 0)
	for _, p := range f.posts {
		if p.Author == author {
			posts = append(posts, *p)
		}
	}
	return posts, nil
}

func (f *fakePostRepo) FindByID(_ context.Context, id bson.ObjectID) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.posts[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakePostRepo) Update(_ context.Context, post *models.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.posts[post.ID]; !ok {
		return repository.ErrNotFound
	}
	post.UpdatedAt = time.Now().UTC()
	cp := *post
	f.posts[post.ID] = &cp
	return nil
}

func (f *fakePostRepo) Delete(_ context.Context, id bson.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.posts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.posts, id)
	return nil
}

var _ repository.PostRepository = (*fakePostRepo)(nil)

type testRouter struct {
	engine *gin.Engine
	tokens *token.Service
}

// newRouter wires the full router against in-memory repositories,
// mirroring the route table in main.go.
func newRouter() testRouter {
	gin.SetMode(gin.TestMode)

	users := newFakeUserRepo()
	posts := newFakePostRepo(users)
	tokens := token.NewService("access-secret", "refresh-secret", 30*time.Second, 7*24*time.Hour)
	authService := services.NewAuthService(users, tokens)

	authController := NewAuthController(authService)
	postController := NewPostController(posts)
	guard := middleware.AuthMiddleware(tokens)

	r := gin.New()
	auth := r.Group("/auth")
	{
		auth.POST("/register", authController.Register())
		auth.POST("/login", authController.Login())
		auth.POST("/refresh", authController.Refresh())
		auth.POST("/logout", authController.Logout())
		auth.GET("/profile", guard, authController.Profile())
	}
	postRoutes := r.Group("/posts")
	{
		postRoutes.GET("", postController.GetPosts())
		postRoutes.POST("", guard, postController.CreatePost())
		postRoutes.GET("/my-posts", guard, postController.GetMyPosts())
		postRoutes.PUT("/:id", guard, postController.UpdatePost())
		postRoutes.DELETE("/:id", guard, postController.DeletePost())
	}
	return testRouter{engine: r, tokens: tokens}
}

func doJSON(t *testing.T, r *gin.Engine, method, path, bearer string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
