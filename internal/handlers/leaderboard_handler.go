package handlers

import (
	"errors"
	"net/http"

	"github.com/enricocostatorres-cloud/AnglerAtlasFishing/internal/repositories"
	"github.com/enricocostatorres-cloud/AnglerAtlasFishing/internal/services"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LeaderboardHandler handles leaderboard HTTP requests
type LeaderboardHandler struct {
	leaderboardService *services.LeaderboardService
}

// NewLeaderboardHandler creates a new LeaderboardHandler
func NewLeaderboardHandler(lb *services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: lb}
}

// RegisterLeaderboardRoutes registers leaderboard-related routes
func (h *LeaderboardHandler) RegisterLeaderboardRoutes(g *echo.Group) {
	g.GET("/leaderboard", h.GetLeaderboard)
	g.GET("/leaderboard/user/:userId", h.GetUserRank)
}

// GetLeaderboard returns the ranked board for a timeframe (all, week or
// month; anything else falls back to all-time).
func (h *LeaderboardHandler) GetLeaderboard(c echo.Context) error {
	tf := services.ParseTimeframe(c.QueryParam("timeframe"))

	entries, err := h.leaderboardService.Leaderboard(c.Request().Context(), tf, services.DefaultLeaderboardSize)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, entries)
}

// GetUserRank returns a user's profile with their dense rank by stored
// points
func (h *LeaderboardHandler) GetUserRank(c echo.Context) error {
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	user, rank, err := h.leaderboardService.UserRank(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"user": user, "rank": rank})
}
