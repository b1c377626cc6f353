package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/teknocare/teknocare-api/config"
	"github.com/teknocare/teknocare-api/models"
	"github.com/teknocare/teknocare-api/services"
	"github.com/teknocare/teknocare-api/utils"
)

// ProductRequest represents the request body for creating or updating a product
type ProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category"`
}

// attachImageURL fills the computed image_url field with a presigned URL.
// Listing never fails because of a broken image reference.
func attachImageURL(product *models.Product) {
	if product.ImageS3Key == nil || *product.ImageS3Key == "" {
		return
	}
	imageService := services.GetImageService()
	if imageService == nil {
		return
	}
	url, err := imageService.GetImageURL(*product.ImageS3Key)
	if err != nil {
		log.Printf("failed to generate image URL for product %d: %v", product.ID, err)
		return
	}
	if url != "" {
		product.ImageURL = &url
	}
}

// ListProducts handles GET /api/v1/products - public catalog, optionally
// filtered by category
func ListProducts(c *gin.Context) {
	db := config.GetDB()
	query := db.Order("id ASC")
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load products",
			},
		})
		return
	}

	for i := range products {
		attachImageURL(&products[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    products,
	})
}

// CreateProduct handles POST /api/v1/admin/products
func CreateProduct(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	errs := utils.ValidateProduct(utils.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
	})
	if req.Category != "" && !models.IsValidProductCategory(req.Category) {
		errs = append(errs, utils.FieldError{
			Field:   "category",
			Message: "Category must be one of the catalog categories",
		})
	}
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": errs,
			},
		})
		return
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
	}

	db := config.GetDB()
	if err := db.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create product",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    product,
	})
}

// UpdateProduct handles PUT /api/v1/admin/products/:id
func UpdateProduct(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	errs := utils.ValidateProduct(utils.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
	})
	if req.Category != "" && !models.IsValidProductCategory(req.Category) {
		errs = append(errs, utils.FieldError{
			Field:   "category",
			Message: "Category must be one of the catalog categories",
		})
	}
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": errs,
			},
		})
		return
	}

	db := config.GetDB()
	var product models.Product
	if err := db.First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRODUCT_NOT_FOUND",
				"message": "Product not found",
			},
		})
		return
	}

	// Map-based update so zero values (price 0, stock 0) are written
	if err := db.Model(&product).Updates(map[string]interface{}{
		"name":        req.Name,
		"description": req.Description,
		"price":       req.Price,
		"stock":       req.Stock,
		"category":    req.Category,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update product",
			},
		})
		return
	}

	if err := db.First(&product, product.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch updated product",
			},
		})
		return
	}

	attachImageURL(&product)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    product,
	})
}

// DeleteProduct handles DELETE /api/v1/admin/products/:id - removes the
// product and its stored photo
func DeleteProduct(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	db := config.GetDB()
	var product models.Product
	if err := db.First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRODUCT_NOT_FOUND",
				"message": "Product not found",
			},
		})
		return
	}

	// Best effort: a failed S3 delete must not block removing the row
	if product.ImageS3Key != nil && *product.ImageS3Key != "" {
		if imageService := services.GetImageService(); imageService != nil {
			if err := imageService.DeleteImage(*product.ImageS3Key); err != nil {
				log.Printf("failed to delete image for product %d: %v", product.ID, err)
			}
		}
	}

	if err := db.Delete(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete product",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"id": product.ID,
		},
	})
}

// UploadProductImage handles POST /api/v1/admin/products/:id/image - uploads
// a product photo and replaces any previous one
func UploadProductImage(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	db := config.GetDB()
	var product models.Product
	if err := db.First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRODUCT_NOT_FOUND",
				"message": "Product not found",
			},
		})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "An image file is required in the 'image' field",
			},
		})
		return
	}

	imageService := services.GetImageService()
	if imageService == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_ERROR",
				"message": "Image storage is not configured",
			},
		})
		return
	}

	newKey, err := imageService.UploadImage(fileHeader)
	if err != nil {
		var uploadErr *utils.FileUploadError
		if errors.As(err, &uploadErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    uploadErr.Code,
					"message": uploadErr.Message,
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_ERROR",
				"message": "Failed to upload image",
			},
		})
		return
	}

	// The old photo is orphaned once the key changes, so remove it
	oldKey := product.ImageS3Key
	if err := db.Model(&product).Update("image_s3_key", newKey).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to save image reference",
			},
		})
		return
	}
	if oldKey != nil && *oldKey != "" && *oldKey != newKey {
		if err := imageService.DeleteImage(*oldKey); err != nil {
			log.Printf("failed to delete replaced image for product %d: %v", product.ID, err)
		}
	}

	product.ImageS3Key = &newKey
	attachImageURL(&product)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    product,
	})
}
