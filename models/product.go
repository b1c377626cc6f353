package models

import (
	"time"

	"gorm.io/gorm"
)

// ProductCategories is the fixed catalog category list.
var ProductCategories = []string{
	"Laptops",
	"Accessories",
	"Components",
	"Networking",
	"Storage",
	"Other",
}

// Product represents a sellable catalog item. The listing is informational
// only: there is no checkout flow and stock is never decremented.
type Product struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `json:"description"`
	Price       float64        `gorm:"not null;check:price >= 0" json:"price"`
	Stock       int            `gorm:"not null;check:stock >= 0" json:"stock"`
	Category    string         `gorm:"not null" json:"category"`
	ImageS3Key  *string        `json:"image_s3_key"`                 // nullable, S3 key for the product photo
	ImageURL    *string        `gorm:"-" json:"image_url,omitempty"` // computed field, presigned URL for the photo
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// IsValidProductCategory reports whether category is one of the fixed list.
func IsValidProductCategory(category string) bool {
	for _, c := range ProductCategories {
		if c == category {
			return true
		}
	}
	return false
}
