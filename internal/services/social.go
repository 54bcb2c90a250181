package services

import (
	"context"
	"errors"

	"github.com/enricocostatorres-cloud/AnglerAtlasFishing/internal/models"
	"github.com/enricocostatorres-cloud/AnglerAtlasFishing/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrSelfFollow is returned when a user tries to follow themselves.
var ErrSelfFollow = errors.New("you cannot follow yourself")

// SocialService mutates the follow graph embedded in user documents.
type SocialService struct {
	users repositories.UserRepository
}

// NewSocialService creates a new SocialService
func NewSocialService(users repositories.UserRepository) *SocialService {
	return &SocialService{users: users}
}

// ToggleFollow inverts the follow edge between actor and target: follow if
// absent, unfollow if present. It mutates actor.following and
// target.followers as a pair and persists each document with its own write.
// The two writes are not wrapped in a transaction, so a failure between them
// can leave the edge asymmetric.
func (s *SocialService) ToggleFollow(ctx context.Context, actorID, targetID primitive.ObjectID) (bool, string, error) {
	if actorID == targetID {
		return false, "", ErrSelfFollow
	}

	actor, err := s.users.GetUserByID(ctx, actorID)
	if err != nil {
		return false, "", err
	}
	target, err := s.users.GetUserByID(ctx, targetID)
	if err != nil {
		return false, "", err
	}

	nowFollowing := !actor.IsFollowing(targetID)
	if nowFollowing {
		actor.Following = append(actor.Following, targetID)
		target.Followers = append(target.Followers, actorID)
	} else {
		actor.Following = removeID(actor.Following, targetID)
		target.Followers = removeID(target.Followers, actorID)
	}

	if err := s.users.SaveUser(ctx, actor); err != nil {
		return false, "", err
	}
	if err := s.users.SaveUser(ctx, target); err != nil {
		return false, "", err
	}

	message := "User unfollowed"
	if nowFollowing {
		message = "User followed"
	}
	return nowFollowing, message, nil
}

func removeID(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// ResolveCompacts maps user IDs to their public profiles, skipping IDs that
// no longer resolve.
func (s *SocialService) ResolveCompacts(ctx context.Context, ids []primitive.ObjectID) []models.UserCompact {
	compacts := make([]models.UserCompact, 0, len(ids))
	for _, id := range ids {
		user, err := s.users.GetUserByID(ctx, id)
		if err != nil {
			continue
		}
		compacts = append(compacts, user.ToCompact())
	}
	return compacts
}
