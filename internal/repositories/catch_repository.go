package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/enricocostatorres-cloud/AnglerAtlasFishing/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrCatchNotFound is returned when a referenced catch does not exist.
var ErrCatchNotFound = errors.New("catch not found")

// CatchRepository defines the interface for catch data operations
type CatchRepository interface {
	CreateCatch(ctx context.Context, c *models.Catch) error
	GetCatchByID(ctx context.Context, id string) (*models.Catch, error)
	GetPublicFeed(ctx context.Context, skip, limit int64) ([]models.Catch, error)
	CountPublic(ctx context.Context) (int64, error)
	GetNearby(ctx context.Context, longitude, latitude float64, maxDistance, limit int64) ([]models.Catch, error)
	GetCatchesByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Catch, error)
	GetCatchesSince(ctx context.Context, since time.Time) ([]models.Catch, error)
	SaveLikes(ctx context.Context, id primitive.ObjectID, likes []primitive.ObjectID) error
	PushComment(ctx context.Context, id primitive.ObjectID, comment models.CatchComment) (*models.Catch, error)
}

// MongoCatchRepository implements CatchRepository for MongoDB. The catches
// collection carries a 2dsphere index on location for the nearby query.
type MongoCatchRepository struct {
	collection *mongo.Collection
}

// NewMongoCatchRepository creates a new MongoCatchRepository
func NewMongoCatchRepository(db *mongo.Database) *MongoCatchRepository {
	return &MongoCatchRepository{collection: db.Collection("catches")}
}

// EnsureIndexes creates the geospatial index used by GetNearby.
func (r *MongoCatchRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "location", Value: "2dsphere"}},
	})
	return err
}

// CreateCatch inserts a new catch document
func (r *MongoCatchRepository) CreateCatch(ctx context.Context, c *models.Catch) error {
	c.ID = primitive.NewObjectID()
	c.CreatedAt = time.Now()
	c.UpdatedAt = time.Now()
	if c.Visibility == "" {
		c.Visibility = models.VisibilityPublic
	}
	if c.CatchTime.IsZero() {
		c.CatchTime = c.CreatedAt
	}
	if c.Likes == nil {
		c.Likes = []primitive.ObjectID{}
	}
	if c.Comments == nil {
		c.Comments = []models.CatchComment{}
	}
	_, err := r.collection.InsertOne(ctx, c)
	return err
}

// GetCatchByID retrieves a catch by its hex ID
func (r *MongoCatchRepository) GetCatchByID(ctx context.Context, id string) (*models.Catch, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid catch ID format: %w", err)
	}

	var c models.Catch
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&c)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrCatchNotFound
		}
		return nil, err
	}
	return &c, nil
}

// GetPublicFeed retrieves public catches, newest first
func (r *MongoCatchRepository) GetPublicFeed(ctx context.Context, skip, limit int64) ([]models.Catch, error) {
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"visibility": models.VisibilityPublic}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var catches []models.Catch
	if err = cursor.All(ctx, &catches); err != nil {
		return nil, err
	}
	return catches, nil
}

// CountPublic counts public catches
func (r *MongoCatchRepository) CountPublic(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"visibility": models.VisibilityPublic})
}

// GetNearby returns public catches within maxDistance meters of the given
// point. Ordering is whatever the $near operator yields (nearest first).
func (r *MongoCatchRepository) GetNearby(ctx context.Context, longitude, latitude float64, maxDistance, limit int64) ([]models.Catch, error) {
	filter := bson.M{
		"location": bson.M{
			"$near": bson.M{
				"$geometry": bson.M{
					"type":        "Point",
					"coordinates": []float64{longitude, latitude},
				},
				"$maxDistance": maxDistance,
			},
		},
		"visibility": models.VisibilityPublic,
	}
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var catches []models.Catch
	if err = cursor.All(ctx, &catches); err != nil {
		return nil, err
	}
	return catches, nil
}

// GetCatchesByUser retrieves a user's public and friends-visible catches,
// newest first
func (r *MongoCatchRepository) GetCatchesByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Catch, error) {
	filter := bson.M{
		"user_id":    userID,
		"visibility": bson.M{"$in": []string{models.VisibilityPublic, models.VisibilityFriends}},
	}
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var catches []models.Catch
	if err = cursor.All(ctx, &catches); err != nil {
		return nil, err
	}
	return catches, nil
}

// GetCatchesSince retrieves catches created at or after since, across all
// visibilities. A zero since means all time.
func (r *MongoCatchRepository) GetCatchesSince(ctx context.Context, since time.Time) ([]models.Catch, error) {
	filter := bson.M{}
	if !since.IsZero() {
		filter["created_at"] = bson.M{"$gte": since}
	}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var catches []models.Catch
	if err = cursor.All(ctx, &catches); err != nil {
		return nil, err
	}
	return catches, nil
}

// SaveLikes overwrites the like set of a catch. Per-document atomicity is
// delegated to MongoDB; there is no optimistic-concurrency check.
func (r *MongoCatchRepository) SaveLikes(ctx context.Context, id primitive.ObjectID, likes []primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{"likes": likes, "updated_at": time.Now()}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrCatchNotFound
	}
	return nil
}

// PushComment appends a comment to a catch and returns the updated document
func (r *MongoCatchRepository) PushComment(ctx context.Context, id primitive.ObjectID, comment models.CatchComment) (*models.Catch, error) {
	update := bson.M{
		"$push": bson.M{"comments": comment},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	after := options.After
	opts := options.FindOneAndUpdate().SetReturnDocument(after)

	var c models.Catch
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&c)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrCatchNotFound
		}
		return nil, err
	}
	return &c, nil
}
