package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Visibility values for a catch.
const (
	VisibilityPublic  = "public"
	VisibilityFriends = "friends"
	VisibilityPrivate = "private"
)

// GeoPoint is a GeoJSON point as indexed by MongoDB's 2dsphere index.
// Coordinates are [longitude, latitude].
type GeoPoint struct {
	Type        string    `json:"type" bson:"type"`
	Coordinates []float64 `json:"coordinates" bson:"coordinates"`
	Address     string    `json:"address,omitempty" bson:"address,omitempty"`
}

// ReleaseInfo describes whether and how a fish was released.
type ReleaseInfo struct {
	Released  bool   `json:"released" bson:"released"`
	Condition string `json:"condition,omitempty" bson:"condition,omitempty"`
	Notes     string `json:"notes,omitempty" bson:"notes,omitempty"`
}

// CatchComment is a comment embedded in a catch document.
type CatchComment struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"userId" bson:"user_id"`
	Text      string             `json:"text" bson:"text"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// Catch represents a logged fishing event stored in MongoDB. Likes is a set
// of user ObjectIDs; Comments is append-only. Species and Location are
// always present.
type Catch struct {
	ID              primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	UserID          primitive.ObjectID   `json:"userId" bson:"user_id"`
	Species         string               `json:"species" bson:"species"`
	Weight          float64              `json:"weight,omitempty" bson:"weight,omitempty"` // lbs
	Length          float64              `json:"length,omitempty" bson:"length,omitempty"` // inches
	Depth           float64              `json:"depth,omitempty" bson:"depth,omitempty"`   // feet
	Location        GeoPoint             `json:"location" bson:"location"`
	LureUsed        string               `json:"lureUsed,omitempty" bson:"lure_used,omitempty"`
	WaterConditions string               `json:"waterConditions,omitempty" bson:"water_conditions,omitempty"`
	Weather         string               `json:"weather,omitempty" bson:"weather,omitempty"`
	TimeOfDay       string               `json:"timeOfDay,omitempty" bson:"time_of_day,omitempty"`
	CatchTime       time.Time            `json:"catchTime" bson:"catch_time"`
	ReleaseInfo     *ReleaseInfo         `json:"releaseInfo,omitempty" bson:"release_info,omitempty"`
	Notes           string               `json:"notes,omitempty" bson:"notes,omitempty"`
	Images          []string             `json:"images,omitempty" bson:"images,omitempty"`
	Visibility      string               `json:"visibility" bson:"visibility"`
	Likes           []primitive.ObjectID `json:"likes" bson:"likes"`
	Comments        []CatchComment       `json:"comments" bson:"comments"`
	CreatedAt       time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at" bson:"updated_at"`
}

// HasLike reports whether userID is in the catch's like set.
func (c *Catch) HasLike(userID primitive.ObjectID) bool {
	for _, id := range c.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// LogCatchRequest defines the request body for logging a new catch
type LogCatchRequest struct {
	Species         string       `json:"species" validate:"required"`
	Weight          float64      `json:"weight,omitempty" validate:"omitempty,gt=0"`
	Length          float64      `json:"length,omitempty" validate:"omitempty,gt=0"`
	Depth           float64      `json:"depth,omitempty" validate:"omitempty,gt=0"`
	Latitude        *float64     `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude       *float64     `json:"longitude" validate:"required,min=-180,max=180"`
	Address         string       `json:"address,omitempty"`
	LureUsed        string       `json:"lureUsed,omitempty"`
	WaterConditions string       `json:"waterConditions,omitempty"`
	Weather         string       `json:"weather,omitempty"`
	TimeOfDay       string       `json:"timeOfDay,omitempty"`
	CatchTime       *time.Time   `json:"catchTime,omitempty"`
	ReleaseInfo     *ReleaseInfo `json:"releaseInfo,omitempty"`
	Notes           string       `json:"notes,omitempty"`
	Images          []string     `json:"images,omitempty" validate:"omitempty,dive,url"`
	Visibility      string       `json:"visibility,omitempty" validate:"omitempty,oneof=public friends private"`
}

// AddCommentRequest defines the request body for commenting on a catch
type AddCommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=500"`
}

// Pagination describes a page of feed results.
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int64 `json:"pages"`
}
