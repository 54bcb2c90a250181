package services

import (
	"context"
	"time"

	"github.com/enricocostatorres-cloud/AnglerAtlasFishing/internal/models"
	"github.com/enricocostatorres-cloud/AnglerAtlasFishing/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultLeaderboardSize caps how many users appear on the board.
const DefaultLeaderboardSize = 100

// LeaderboardEntry is one ranked row of the leaderboard.
type LeaderboardEntry struct {
	Position         int                `json:"position"` // 1-based, by stored points order
	ID               primitive.ObjectID `json:"id"`
	Username         string             `json:"username"`
	Rank             string             `json:"rank"` // display label on the user record
	Points           int                `json:"points"`
	ProfilePicture   string             `json:"profilePicture,omitempty"`
	CalculatedPoints float64            `json:"calculatedPoints"`
}

// LeaderboardService joins stored user ranking fields with points computed
// live from the catch store.
type LeaderboardService struct {
	users   repositories.UserRepository
	catches repositories.CatchRepository
	now     func() time.Time
}

// NewLeaderboardService creates a new LeaderboardService
func NewLeaderboardService(users repositories.UserRepository, catches repositories.CatchRepository) *LeaderboardService {
	return &LeaderboardService{users: users, catches: catches, now: time.Now}
}

// BuildLeaderboard merges users already ordered by stored points with the
// computed mapping. Ordering comes from the input order; the displayed
// calculatedPoints comes from the mapping (0 when absent). The two are not
// reconciled: the stored cache and the live computation may disagree.
func BuildLeaderboard(storedUsers []models.User, computed map[primitive.ObjectID]float64) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, len(storedUsers))
	for i, u := range storedUsers {
		entries[i] = LeaderboardEntry{
			Position:         i + 1,
			ID:               u.ID,
			Username:         u.Username,
			Rank:             u.Rank,
			Points:           u.Points,
			ProfilePicture:   u.ProfilePicture,
			CalculatedPoints: computed[u.ID],
		}
	}
	return entries
}

// Leaderboard computes the ranked view for a timeframe: scan catches in the
// window, score them, and decorate the stored-points top list.
func (s *LeaderboardService) Leaderboard(ctx context.Context, tf Timeframe, limit int64) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardSize
	}

	catches, err := s.catches.GetCatchesSince(ctx, tf.WindowStart(s.now()))
	if err != nil {
		return nil, err
	}
	computed := ComputePoints(catches)

	users, err := s.users.TopByPoints(ctx, limit)
	if err != nil {
		return nil, err
	}
	return BuildLeaderboard(users, computed), nil
}

// UserRank returns a user together with their dense rank: 1 plus the number
// of users whose stored points strictly exceed theirs. Tied users share a
// rank. The count does not exclude the queried user, which only matters for
// users tied at the top and yields the same rank either way.
func (s *LeaderboardService) UserRank(ctx context.Context, userID primitive.ObjectID) (*models.User, int64, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	above, err := s.users.CountPointsGreaterThan(ctx, user.Points)
	if err != nil {
		return nil, 0, err
	}
	return user, above + 1, nil
}
