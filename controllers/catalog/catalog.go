package catalogControllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vikaskambale6631/medishop-api/models"
	"gorm.io/gorm"
)

// SearchMedicines applies the public catalog search: case-insensitive
// substring match against name, brand and description.
func SearchMedicines(db *gorm.DB, q string) *gorm.DB {
	like := "%" + strings.ToLower(q) + "%"
	return db.Where(
		"LOWER(name) LIKE ? OR LOWER(brand) LIKE ? OR LOWER(description) LIKE ?",
		like, like, like,
	)
}

// Home returns all categories plus either the eight newest medicines or
// the search results when ?q= is present.
func Home(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Category
		if err := db.Order("name").Find(&categories).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}

		var medicines []models.Medicine
		query := db.Model(&models.Medicine{})
		if q := c.Query("q"); q != "" {
			query = SearchMedicines(query, q)
		} else {
			query = query.Order("created_at DESC").Limit(8)
		}
		if err := query.Find(&medicines).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch medicines"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"categories": categories, "medicines": medicines})
	}
}

// ListMedicines lists the catalog, optionally filtered by ?q=.
func ListMedicines(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Medicine{})
		if q := c.Query("q"); q != "" {
			query = SearchMedicines(query, q)
		}

		var medicines []models.Medicine
		if err := query.Find(&medicines).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch medicines"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"medicines": medicines})
	}
}

// ListByCategory lists one category's medicines. 404 on an unknown slug.
func ListByCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		if err := db.Where("slug = ?", c.Param("slug")).First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch category"})
			return
		}

		query := db.Where("category_id = ?", category.ID)
		if q := c.Query("q"); q != "" {
			query = SearchMedicines(query, q)
		}

		var medicines []models.Medicine
		if err := query.Find(&medicines).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch medicines"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"category": category, "medicines": medicines})
	}
}

// GetMedicineBySlug returns the product detail. 404 on an unknown slug.
func GetMedicineBySlug(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var medicine models.Medicine
		if err := db.Preload("Category").Where("slug = ?", c.Param("slug")).First(&medicine).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Medicine not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch medicine"})
			return
		}
		c.JSON(http.StatusOK, medicine)
	}
}
