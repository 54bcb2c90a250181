package repositories

import (
	"github.com/enricocostatorres-cloud/AnglerAtlasFishing/internal/models"
	"gorm.io/gorm"
)

// ProductRepository defines the interface for tackle-store catalog operations
type ProductRepository interface {
	GetProducts() ([]models.Product, error)
	GetProductsByCategory(category string) ([]models.Product, error)
	Seed() error
}

// PostgresProductRepository implements ProductRepository for PostgreSQL
type PostgresProductRepository struct {
	db *gorm.DB
}

// NewPostgresProductRepository creates a new PostgresProductRepository
func NewPostgresProductRepository(db *gorm.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

// GetProducts retrieves all catalog products
func (r *PostgresProductRepository) GetProducts() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Order("id").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// GetProductsByCategory retrieves products in a category
func (r *PostgresProductRepository) GetProductsByCategory(category string) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Where("category = ?", category).Order("id").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Seed inserts the starter catalog if the table is empty
func (r *PostgresProductRepository) Seed() error {
	var count int64
	if err := r.db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	starter := []models.Product{
		{Name: "Deep Diver Lure", Price: 12.99, Category: "lures"},
		{Name: "Fishing Rod", Price: 89.99, Category: "rods"},
		{Name: "Net", Price: 34.99, Category: "nets"},
	}
	return r.db.Create(&starter).Error
}
