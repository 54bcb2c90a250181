package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an angler profile stored in MongoDB. The social graph is
// embedded: Followers and Following hold user ObjectIDs and are mutated as a
// pair on every follow toggle.
type User struct {
	ID             primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Username       string               `json:"username" bson:"username"`
	Email          string               `json:"email" bson:"email"`
	Password       string               `json:"-" bson:"password"` // bcrypt hash, never serialized
	FirstName      string               `json:"firstName,omitempty" bson:"first_name,omitempty"`
	LastName       string               `json:"lastName,omitempty" bson:"last_name,omitempty"`
	Bio            string               `json:"bio,omitempty" bson:"bio,omitempty"`
	Location       string               `json:"location,omitempty" bson:"location,omitempty"`
	ProfilePicture string               `json:"profilePicture,omitempty" bson:"profile_picture,omitempty"`
	Rank           string               `json:"rank" bson:"rank"`     // display label, e.g. "Novice Angler"
	Points         int                  `json:"points" bson:"points"` // server-cached score, drives leaderboard order
	Followers      []primitive.ObjectID `json:"followers" bson:"followers"`
	Following      []primitive.ObjectID `json:"following" bson:"following"`
	FirebaseUID    string               `json:"firebase_uid,omitempty" bson:"firebase_uid,omitempty"`
	CreatedAt      time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at" bson:"updated_at"`
}

// UserCompact is the public subset of a user embedded in feed entries and
// follower listings.
type UserCompact struct {
	ID             primitive.ObjectID `json:"id"`
	Username       string             `json:"username"`
	ProfilePicture string             `json:"profilePicture,omitempty"`
	Rank           string             `json:"rank"`
}

// ToCompact returns the public subset of the user.
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:             u.ID,
		Username:       u.Username,
		ProfilePicture: u.ProfilePicture,
		Rank:           u.Rank,
	}
}

// IsFollowing reports whether id is in the user's following set.
func (u *User) IsFollowing(id primitive.ObjectID) bool {
	for _, f := range u.Following {
		if f == id {
			return true
		}
	}
	return false
}

// RegisterRequest defines the request body for local registration
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest defines the request body for local sign-in
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// FirebaseLoginRequest defines the request body for Firebase login
type FirebaseLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// UpdateProfileRequest is a partial profile update. Pointer fields
// distinguish "not sent" from "set to empty": only non-nil fields are
// written to the stored document.
type UpdateProfileRequest struct {
	FirstName      *string `json:"firstName,omitempty"`
	LastName       *string `json:"lastName,omitempty"`
	Bio            *string `json:"bio,omitempty" validate:"omitempty,max=500"`
	Location       *string `json:"location,omitempty" validate:"omitempty,max=100"`
	ProfilePicture *string `json:"profilePicture,omitempty" validate:"omitempty,url"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID string `json:"user_id"` // user ObjectID hex
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
