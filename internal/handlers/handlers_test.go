package handlers_test

import (
	"context"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/enricocostatorres-cloud/AnglerAtlasFishing/internal/handlers"
	"github.com/enricocostatorres-cloud/AnglerAtlasFishing/internal/middleware"
	"github.com/enricocostatorres-cloud/AnglerAtlasFishing/internal/models"
	"github.com/enricocostatorres-cloud/AnglerAtlasFishing/internal/repositories"
	"github.com/enricocostatorres-cloud/AnglerAtlasFishing/internal/router"
	"github.com/enricocostatorres-cloud/AnglerAtlasFishing/internal/services"
	"github.com/enricocostatorres-cloud/AnglerAtlasFishing/pkg/config"
	"github.com/enricocostatorres-cloud/AnglerAtlasFishing/validators"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- in-memory fakes ---

type memUserRepo struct {
	users map[primitive.ObjectID]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[primitive.ObjectID]*models.User)}
}

func (r *memUserRepo) add(username string, points int) *models.User {
	u := &models.User{
		ID:        primitive.NewObjectID(),
		Username:  username,
		Email:     username + "@example.com",
		Rank:      "Novice Angler",
		Points:    points,
		Followers: []primitive.ObjectID{},
		Following: []primitive.ObjectID{},
	}
	r.users[u.ID] = u
	return u
}

func (r *memUserRepo) CreateUser(_ context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	if user.Rank == "" {
		user.Rank = "Novice Angler"
	}
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) GetUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *memUserRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *memUserRepo) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *memUserRepo) GetUserByFirebaseUID(_ context.Context, uid string) (*models.User, error) {
	for _, u := range r.users {
		if u.FirebaseUID == uid {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *memUserRepo) SaveUser(_ context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memUserRepo) PatchProfile(_ context.Context, id primitive.ObjectID, req *models.UpdateProfileRequest) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.Bio != nil {
		u.Bio = *req.Bio
	}
	if req.Location != nil {
		u.Location = *req.Location
	}
	if req.ProfilePicture != nil {
		u.ProfilePicture = *req.ProfilePicture
	}
	copied := *u
	return &copied, nil
}

func (r *memUserRepo) TopByPoints(_ context.Context, limit int64) ([]models.User, error) {
	users := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Points > users[j].Points })
	if int64(len(users)) > limit {
		users = users[:limit]
	}
	return users, nil
}

func (r *memUserRepo) CountPointsGreaterThan(_ context.Context, points int) (int64, error) {
	var count int64
	for _, u := range r.users {
		if u.Points > points {
			count++
		}
	}
	return count, nil
}

type memCatchRepo struct {
	catches []models.Catch
}

func (r *memCatchRepo) CreateCatch(_ context.Context, c *models.Catch) error {
	c.ID = primitive.NewObjectID()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	if c.CatchTime.IsZero() {
		c.CatchTime = c.CreatedAt
	}
	if c.Visibility == "" {
		c.Visibility = models.VisibilityPublic
	}
	if c.Likes == nil {
		c.Likes = []primitive.ObjectID{}
	}
	r.catches = append(r.catches, *c)
	return nil
}

func (r *memCatchRepo) GetCatchByID(_ context.Context, id string) (*models.Catch, error) {
	for i := range r.catches {
		if r.catches[i].ID.Hex() == id {
			copied := r.catches[i]
			return &copied, nil
		}
	}
	return nil, repositories.ErrCatchNotFound
}

func (r *memCatchRepo) public() []models.Catch {
	var out []models.Catch
	for _, c := range r.catches {
		if c.Visibility == models.VisibilityPublic {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *memCatchRepo) GetPublicFeed(_ context.Context, skip, limit int64) ([]models.Catch, error) {
	pub := r.public()
	if skip >= int64(len(pub)) {
		return nil, nil
	}
	pub = pub[skip:]
	if int64(len(pub)) > limit {
		pub = pub[:limit]
	}
	return pub, nil
}

func (r *memCatchRepo) CountPublic(_ context.Context) (int64, error) {
	return int64(len(r.public())), nil
}

func (r *memCatchRepo) GetNearby(_ context.Context, _, _ float64, _, limit int64) ([]models.Catch, error) {
	pub := r.public()
	if int64(len(pub)) > limit {
		pub = pub[:limit]
	}
	return pub, nil
}

func (r *memCatchRepo) GetCatchesByUser(_ context.Context, userID primitive.ObjectID) ([]models.Catch, error) {
	var out []models.Catch
	for _, c := range r.catches {
		if c.UserID == userID && c.Visibility != models.VisibilityPrivate {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memCatchRepo) GetCatchesSince(_ context.Context, since time.Time) ([]models.Catch, error) {
	if since.IsZero() {
		return append([]models.Catch(nil), r.catches...), nil
	}
	var out []models.Catch
	for _, c := range r.catches {
		if !c.CreatedAt.Before(since) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memCatchRepo) SaveLikes(_ context.Context, id primitive.ObjectID, likes []primitive.ObjectID) error {
	for i := range r.catches {
		if r.catches[i].ID == id {
			r.catches[i].Likes = likes
			return nil
		}
	}
	return repositories.ErrCatchNotFound
}

func (r *memCatchRepo) PushComment(_ context.Context, id primitive.ObjectID, comment models.CatchComment) (*models.Catch, error) {
	for i := range r.catches {
		if r.catches[i].ID == id {
			r.catches[i].Comments = append(r.catches[i].Comments, comment)
			copied := r.catches[i]
			return &copied, nil
		}
	}
	return nil, repositories.ErrCatchNotFound
}

type memProductRepo struct {
	products []models.Product
}

func (r *memProductRepo) GetProducts() ([]models.Product, error) {
	return r.products, nil
}

func (r *memProductRepo) GetProductsByCategory(category string) ([]models.Product, error) {
	var out []models.Product
	for _, p := range r.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProductRepo) Seed() error {
	if len(r.products) > 0 {
		return nil
	}
	r.products = []models.Product{
		{ID: 1, Name: "Deep Diver Lure", Price: 12.99, Category: "lures"},
		{ID: 2, Name: "Fishing Rod", Price: 89.99, Category: "rods"},
		{ID: 3, Name: "Net", Price: 34.99, Category: "nets"},
	}
	return nil
}

// --- test server wiring ---

type testServer struct {
	echo    *echo.Echo
	cfg     *config.Config
	users   *memUserRepo
	catches *memCatchRepo
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	cfg := config.Load()
	users := newMemUserRepo()
	catches := &memCatchRepo{}
	products := &memProductRepo{}
	if err := products.Seed(); err != nil {
		t.Fatalf("seed products: %v", err)
	}

	e := echo.New()
	e.Validator = validators.NewValidator()
	router.SetupMiddleware(e)

	social := services.NewSocialService(users)
	lb := services.NewLeaderboardService(users, catches)

	api := e.Group("/api")
	handlers.NewAuthHandler(users, nil, cfg.JWTSecret).RegisterAuthRoutes(api.Group("/auth"))
	userHandler := handlers.NewUserHandler(users, social)
	userHandler.RegisterPublicRoutes(api)
	catchHandler := handlers.NewCatchHandler(catches, users)
	catchHandler.RegisterPublicRoutes(api)
	handlers.NewLeaderboardHandler(lb).RegisterLeaderboardRoutes(api)
	handlers.NewStoreHandler(products).RegisterStoreRoutes(api)

	protected := e.Group("/api")
	protected.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	userHandler.RegisterProtectedRoutes(protected)
	catchHandler.RegisterProtectedRoutes(protected)

	return &testServer{echo: e, cfg: cfg, users: users, catches: catches}
}

func (s *testServer) tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	claims := &models.JwtCustomClaims{
		UserID: user.ID.Hex(),
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func (s *testServer) request(method, path, body, token string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.echo.ServeHTTP(w, req)
	return w
}
