package adminController

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vikaskambale6631/medishop-api/models"
	"gorm.io/gorm"
)

// GET /dashboard/medicines
func ListMedicines(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Order("created_at DESC")
		if q := c.Query("q"); q != "" {
			like := "%" + strings.ToLower(q) + "%"
			query = query.Where("LOWER(name) LIKE ? OR LOWER(brand) LIKE ?", like, like)
		}

		var medicines []models.Medicine
		if err := query.Find(&medicines).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch medicines"})
			return
		}
		c.JSON(http.StatusOK, medicines)
	}
}

// POST /dashboard/medicines
func CreateMedicine(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.PostForm("name")
		priceStr := c.PostForm("price")
		if name == "" || priceStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and price are required"})
			return
		}

		price, err := decimal.NewFromString(priceStr)
		if err != nil || price.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
			return
		}

		stock := 0
		if stockStr := c.PostForm("stock"); stockStr != "" {
			stock, err = strconv.Atoi(stockStr)
			if err != nil || stock < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock"})
				return
			}
		}

		rxRequired := c.PostForm("rx_required") == "true"

		var categoryID *uint
		if catStr := c.PostForm("category_id"); catStr != "" {
			id64, parseErr := strconv.ParseUint(catStr, 10, 64)
			if parseErr != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
				return
			}
			var category models.Category
			if err := db.First(&category, id64).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
				return
			}
			categoryID = &category.ID
		}

		imageURL := ""
		if file, err := c.FormFile("image"); err == nil {
			imageURL, err = saveProductImage(c, file.Filename)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to save image: %v", err)})
				return
			}
		}

		medicine := models.Medicine{
			Name:        name,
			Slug:        c.PostForm("slug"), // derived from name when empty
			Brand:       c.PostForm("brand"),
			Description: c.PostForm("description"),
			CategoryID:  categoryID,
			Price:       price,
			Stock:       stock,
			RxRequired:  rxRequired,
			Image:       imageURL,
		}
		if err := db.Create(&medicine).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusConflict, gin.H{"error": "A medicine with this slug already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create medicine"})
			return
		}
		c.JSON(http.StatusCreated, medicine)
	}
}

// PUT /dashboard/medicines/:id
func UpdateMedicine(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var medicine models.Medicine
		if err := db.First(&medicine, c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Medicine not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch medicine"})
			return
		}

		updates := make(map[string]interface{})
		if name := c.PostForm("name"); name != "" {
			updates["name"] = name
		}
		if brand, ok := c.GetPostForm("brand"); ok {
			updates["brand"] = brand
		}
		if description, ok := c.GetPostForm("description"); ok {
			updates["description"] = description
		}
		if priceStr := c.PostForm("price"); priceStr != "" {
			price, err := decimal.NewFromString(priceStr)
			if err != nil || price.IsNegative() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
				return
			}
			updates["price"] = price
		}
		if stockStr := c.PostForm("stock"); stockStr != "" {
			stock, err := strconv.Atoi(stockStr)
			if err != nil || stock < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock"})
				return
			}
			updates["stock"] = stock
		}
		if rxStr, ok := c.GetPostForm("rx_required"); ok {
			updates["rx_required"] = rxStr == "true"
		}
		if catStr, ok := c.GetPostForm("category_id"); ok {
			if catStr == "" {
				updates["category_id"] = nil
			} else {
				id64, err := strconv.ParseUint(catStr, 10, 64)
				if err != nil {
					c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
					return
				}
				updates["category_id"] = uint(id64)
			}
		}
		if file, err := c.FormFile("image"); err == nil {
			imageURL, err := saveProductImage(c, file.Filename)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to save image: %v", err)})
				return
			}
			updates["image"] = imageURL
		}

		if err := db.Model(&medicine).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update medicine"})
			return
		}
		c.JSON(http.StatusOK, medicine)
	}
}

// DELETE /dashboard/medicines/:id
// Hard delete; order lines keep their snapshots via SET NULL.
func DeleteMedicine(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := db.Delete(&models.Medicine{}, c.Param("id"))
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete medicine"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Medicine not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Medicine deleted"})
	}
}

func saveProductImage(c *gin.Context, original string) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", err
	}

	saveDir := filepath.Join(uploadDir(), "products")
	if err := os.MkdirAll(saveDir, 0o755); err != nil {
		return "", err
	}

	filename := uuid.NewString() + filepath.Ext(original)
	savePath := filepath.Join(saveDir, filename)
	if err := c.SaveUploadedFile(file, savePath); err != nil {
		return "", err
	}
	return fmt.Sprintf("/uploads/products/%s", filename), nil
}

func uploadDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "./uploads"
}
