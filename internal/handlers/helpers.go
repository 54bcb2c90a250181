package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// currentUserID returns the authenticated user's ObjectID from the context
// set by the JWT middleware.
func currentUserID(c echo.Context) (primitive.ObjectID, error) {
	raw, ok := c.Get("userID").(string)
	if !ok || raw == "" {
		return primitive.NilObjectID, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, echo.NewHTTPError(http.StatusUnauthorized, "Invalid user identity in token")
	}
	return id, nil
}
