package models

// Product is a tackle-store catalog item stored in PostgreSQL.
type Product struct {
	ID       uint    `json:"id" gorm:"primaryKey"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category" gorm:"index"`
}
