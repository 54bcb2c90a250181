package handlers

import (
	"errors"
	"net/http"

	"github.com/enricocostatorres-cloud/AnglerAtlasFishing/internal/models"
	"github.com/enricocostatorres-cloud/AnglerAtlasFishing/internal/repositories"
	"github.com/enricocostatorres-cloud/AnglerAtlasFishing/internal/services"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserHandler handles HTTP requests related to user profiles and the
// follow graph
type UserHandler struct {
	userRepository repositories.UserRepository
	socialService  *services.SocialService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, social *services.SocialService) *UserHandler {
	return &UserHandler{userRepository: userRepo, socialService: social}
}

// RegisterPublicRoutes registers routes that need no authentication
func (h *UserHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/users/:userId", h.GetUser)
}

// RegisterProtectedRoutes registers routes behind the JWT middleware
func (h *UserHandler) RegisterProtectedRoutes(g *echo.Group) {
	g.GET("/users/me", h.GetMe)
	g.PUT("/users/:userId", h.UpdateProfile)
	g.POST("/users/:userId/follow", h.FollowUser)
}

// userProfileResponse is a public profile with resolved follower lists
type userProfileResponse struct {
	*models.User
	FollowerProfiles  []models.UserCompact `json:"followerProfiles"`
	FollowingProfiles []models.UserCompact `json:"followingProfiles"`
}

// GetUser retrieves a user's public profile by ID
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	user, err := h.userRepository.GetUserByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, userProfileResponse{
		User:              user,
		FollowerProfiles:  h.socialService.ResolveCompacts(c.Request().Context(), user.Followers),
		FollowingProfiles: h.socialService.ResolveCompacts(c.Request().Context(), user.Following),
	})
}

// GetMe retrieves the authenticated user's profile
func (h *UserHandler) GetMe(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile applies a partial update to the authenticated user's own
// profile. Only fields present in the request body are written.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	targetID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	if targetID != userID {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to update this profile")
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.PatchProfile(c.Request().Context(), userID, &req)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, user)
}

// FollowUser toggles the follow edge between the authenticated user and the
// target: follow if absent, unfollow if present.
func (h *UserHandler) FollowUser(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	targetID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	following, message, err := h.socialService.ToggleFollow(c.Request().Context(), userID, targetID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSelfFollow):
			return echo.NewHTTPError(http.StatusBadRequest, "You cannot follow yourself")
		case errors.Is(err, repositories.ErrUserNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"message": message, "following": following})
}
