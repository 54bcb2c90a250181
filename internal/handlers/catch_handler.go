package handlers

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/enricocostatorres-cloud/AnglerAtlasFishing/internal/models"
	"github.com/enricocostatorres-cloud/AnglerAtlasFishing/internal/repositories"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	feedPageSize        = 10
	nearbyDefaultMeters = 5000
	nearbyResultCap     = 50
)

// CatchHandler handles HTTP requests related to catches: logging, the
// public feed, the nearby map query, likes and comments.
type CatchHandler struct {
	catchRepository repositories.CatchRepository
	userRepository  repositories.UserRepository
}

// NewCatchHandler creates a new CatchHandler
func NewCatchHandler(catchRepo repositories.CatchRepository, userRepo repositories.UserRepository) *CatchHandler {
	return &CatchHandler{
		catchRepository: catchRepo,
		userRepository:  userRepo,
	}
}

// RegisterPublicRoutes registers routes that need no authentication
func (h *CatchHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/catches/feed", h.GetFeed)
	g.GET("/catches/nearby", h.GetNearby)
	g.GET("/catches/user/:userId", h.GetUserCatches)
}

// RegisterProtectedRoutes registers routes behind the JWT middleware
func (h *CatchHandler) RegisterProtectedRoutes(g *echo.Group) {
	g.POST("/catches/log", h.LogCatch)
	g.POST("/catches/:catchId/like", h.LikeCatch)
	g.POST("/catches/:catchId/comment", h.CommentCatch)
}

// LogCatch records a new catch for the authenticated user
func (h *CatchHandler) LogCatch(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req models.LogCatchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if req.Species == "" || req.Latitude == nil || req.Longitude == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Species and location are required")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	newCatch := &models.Catch{
		UserID:  userID,
		Species: req.Species,
		Weight:  req.Weight,
		Length:  req.Length,
		Depth:   req.Depth,
		Location: models.GeoPoint{
			Type:        "Point",
			Coordinates: []float64{*req.Longitude, *req.Latitude},
			Address:     req.Address,
		},
		LureUsed:        req.LureUsed,
		WaterConditions: req.WaterConditions,
		Weather:         req.Weather,
		TimeOfDay:       req.TimeOfDay,
		ReleaseInfo:     req.ReleaseInfo,
		Notes:           req.Notes,
		Images:          req.Images,
		Visibility:      req.Visibility,
	}
	if req.CatchTime != nil {
		newCatch.CatchTime = *req.CatchTime
	}

	if err := h.catchRepository.CreateCatch(c.Request().Context(), newCatch); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Catch logged successfully",
		"catch":   newCatch,
	})
}

// EnrichedCatch is a catch with its author's public profile attached
type EnrichedCatch struct {
	models.Catch
	Author models.UserCompact `json:"author"`
}

// GetFeed returns public catches newest first, ten per page, with a
// pagination block
func (h *CatchHandler) GetFeed(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	skip := int64((page - 1) * feedPageSize)

	ctx := c.Request().Context()
	catches, err := h.catchRepository.GetPublicFeed(ctx, skip, feedPageSize)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	total, err := h.catchRepository.CountPublic(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"catches": h.enrich(c, catches),
		"pagination": models.Pagination{
			Total: total,
			Page:  page,
			Pages: int64(math.Ceil(float64(total) / float64(feedPageSize))),
		},
	})
}

// GetNearby returns public catches within a radius of the given point,
// capped at fifty results. The spatial index decides the ordering.
func (h *CatchHandler) GetNearby(c echo.Context) error {
	longitude, lngErr := strconv.ParseFloat(c.QueryParam("longitude"), 64)
	latitude, latErr := strconv.ParseFloat(c.QueryParam("latitude"), 64)
	if lngErr != nil || latErr != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Longitude and latitude are required")
	}

	maxDistance := int64(nearbyDefaultMeters)
	if raw := c.QueryParam("maxDistance"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid maxDistance")
		}
		maxDistance = parsed
	}

	catches, err := h.catchRepository.GetNearby(c.Request().Context(), longitude, latitude, maxDistance, nearbyResultCap)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, h.enrich(c, catches))
}

// GetUserCatches returns a user's public and friends-visible catches,
// newest first
func (h *CatchHandler) GetUserCatches(c echo.Context) error {
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	catches, err := h.catchRepository.GetCatchesByUser(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, h.enrich(c, catches))
}

// LikeCatch toggles the authenticated user's like on a catch
func (h *CatchHandler) LikeCatch(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	catchDoc, err := h.catchRepository.GetCatchByID(ctx, c.Param("catchId"))
	if err != nil {
		if errors.Is(err, repositories.ErrCatchNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Catch not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	liked := !catchDoc.HasLike(userID)
	if liked {
		catchDoc.Likes = append(catchDoc.Likes, userID)
	} else {
		kept := catchDoc.Likes[:0]
		for _, id := range catchDoc.Likes {
			if id != userID {
				kept = append(kept, id)
			}
		}
		catchDoc.Likes = kept
	}

	if err := h.catchRepository.SaveLikes(ctx, catchDoc.ID, catchDoc.Likes); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"likes": len(catchDoc.Likes), "liked": liked})
}

// CommentCatch appends a comment to a catch and returns the updated
// comment sequence
func (h *CatchHandler) CommentCatch(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req models.AddCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if req.Text == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Comment text is required")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	catchID, err := primitive.ObjectIDFromHex(c.Param("catchId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid catch ID")
	}

	comment := models.CatchComment{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Text:      req.Text,
		CreatedAt: time.Now(),
	}

	updated, err := h.catchRepository.PushComment(c.Request().Context(), catchID, comment)
	if err != nil {
		if errors.Is(err, repositories.ErrCatchNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Catch not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, updated.Comments)
}

// enrich attaches author profiles to catches, resolving each distinct
// owner once
func (h *CatchHandler) enrich(c echo.Context, catches []models.Catch) []EnrichedCatch {
	userMap := make(map[primitive.ObjectID]models.UserCompact)
	for _, cat := range catches {
		if _, ok := userMap[cat.UserID]; ok {
			continue
		}
		user, err := h.userRepository.GetUserByID(c.Request().Context(), cat.UserID)
		if err != nil {
			userMap[cat.UserID] = models.UserCompact{ID: cat.UserID}
			continue
		}
		userMap[cat.UserID] = user.ToCompact()
	}

	enriched := make([]EnrichedCatch, len(catches))
	for i, cat := range catches {
		enriched[i] = EnrichedCatch{Catch: cat, Author: userMap[cat.UserID]}
	}
	return enriched
}
