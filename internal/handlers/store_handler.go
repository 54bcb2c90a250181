package handlers

import (
	"net/http"

	"github.com/enricocostatorres-cloud/AnglerAtlasFishing/internal/models"
	"github.com/enricocostatorres-cloud/AnglerAtlasFishing/internal/repositories"
	"github.com/labstack/echo/v4"
)

// StoreHandler handles tackle-store catalog requests
type StoreHandler struct {
	productRepository repositories.ProductRepository
}

// NewStoreHandler creates a new StoreHandler
func NewStoreHandler(productRepo repositories.ProductRepository) *StoreHandler {
	return &StoreHandler{productRepository: productRepo}
}

// RegisterStoreRoutes registers store-related routes
func (h *StoreHandler) RegisterStoreRoutes(g *echo.Group) {
	g.GET("/store/products", h.GetProducts)
}

// GetProducts lists catalog products, optionally filtered by category
func (h *StoreHandler) GetProducts(c echo.Context) error {
	var products []models.Product
	var err error

	if category := c.QueryParam("category"); category != "" {
		products, err = h.productRepository.GetProductsByCategory(category)
	} else {
		products, err = h.productRepository.GetProducts()
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"products": products})
}
