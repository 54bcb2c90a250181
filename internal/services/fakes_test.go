package services

import (
	"context"
	"sort"
	"time"

	"github.com/enricocostatorres-cloud/AnglerAtlasFishing/internal/models"
	"github.com/enricocostatorres-cloud/AnglerAtlasFishing/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeUserRepo is an in-memory UserRepository for service tests.
type fakeUserRepo struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[primitive.ObjectID]*models.User)}
	for _, u := range users {
		if u.ID.IsZero() {
			u.ID = primitive.NewObjectID()
		}
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) GetUserByFirebaseUID(_ context.Context, uid string) (*models.User, error) {
	for _, u := range r.users {
		if u.FirebaseUID == uid {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) SaveUser(_ context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) PatchProfile(_ context.Context, id primitive.ObjectID, req *models.UpdateProfileRequest) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Location != nil {
		user.Location = *req.Location
	}
	if req.ProfilePicture != nil {
		user.ProfilePicture = *req.ProfilePicture
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) TopByPoints(_ context.Context, limit int64) ([]models.User, error) {
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

func (r *fakeUserRepo) CountPointsGreaterThan(_ context.Context, points int) (int64, error) {
	var count int64
	for _, u := range r.users {
		if u.Points > points {
			count++
		}
	}
	return count, nil
}

// fakeCatchRepo is an in-memory CatchRepository; service tests only read
// time-windowed catches from it.
type fakeCatchRepo struct {
	catches []models.Catch
}

func (r *fakeCatchRepo) CreateCatch(_ context.Context, c *models.Catch) error {
	c.ID = primitive.NewObjectID()
	r.catches = append(r.catches, *c)
	return nil
}

func (r *fakeCatchRepo) GetCatchByID(_ context.Context, id string) (*models.Catch, error) {
	for i := range r.catches {
		if r.catches[i].ID.Hex() == id {
			copied := r.catches[i]
			return &copied, nil
		}
	}
	return nil, repositories.ErrCatchNotFound
}

func (r *fakeCatchRepo) GetPublicFeed(_ context.Context, skip, limit int64) ([]models.Catch, error) {
	return nil, nil
}

func (r *fakeCatchRepo) CountPublic(_ context.Context) (int64, error) { return 0, nil }

func (r *fakeCatchRepo) GetNearby(_ context.Context, _, _ float64, _, _ int64) ([]models.Catch, error) {
	return nil, nil
}

func (r *fakeCatchRepo) GetCatchesByUser(_ context.Context, _ primitive.ObjectID) ([]models.Catch, error) {
	return nil, nil
}

func (r *fakeCatchRepo) GetCatchesSince(_ context.Context, since time.Time) ([]models.Catch, error) {
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

func (r *fakeCatchRepo) SaveLikes(_ context.Context, id primitive.ObjectID, likes []primitive.ObjectID) error {
	for i := range r.catches {
		if r.catches[i].ID == id {
			r.catches[i].Likes = likes
			return nil
		}
	}
	return repositories.ErrCatchNotFound
}

func (r *fakeCatchRepo) PushComment(_ context.Context, id primitive.ObjectID, comment models.CatchComment) (*models.Catch, error) {
	for i := range r.catches {
		if r.catches[i].ID == id {
			r.catches[i].Comments = append(r.catches[i].Comments, comment)
			copied := r.catches[i]
			return &copied, nil
		}
	}
	return nil, repositories.ErrCatchNotFound
}
