package addressControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/vikaskambale6631/medishop-api/middleware"
	"github.com/vikaskambale6631/medishop-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AddAddressRequest struct {
	Line1     string `form:"line1" json:"line1" binding:"required"`
	Line2     string `form:"line2" json:"line2"`
	City      string `form:"city" json:"city"`
	State     string `form:"state" json:"state"`
	Pincode   string `form:"pincode" json:"pincode"`
	Country   string `form:"country" json:"country"`
	IsDefault bool   `form:"is_default" json:"is_default"`
}

// AddAddress creates an address; when it is marked default, every other
// address of the user is cleared in the same transaction so at most one
// default exists at any time.
func AddAddress(db *gorm.DB, userID uint, req AddAddressRequest) (models.Address, error) {
	address := models.Address{
		UserID:    userID,
		Line1:     req.Line1,
		Line2:     req.Line2,
		City:      req.City,
		State:     req.State,
		Pincode:   req.Pincode,
		Country:   req.Country,
		IsDefault: req.IsDefault,
	}
	if address.Country == "" {
		address.Country = "India"
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if req.IsDefault {
			if err := lockUser(tx, userID); err != nil {
				return err
			}
			if err := clearDefault(tx, userID); err != nil {
				return err
			}
		}
		return tx.Create(&address).Error
	})
	return address, err
}

// MakeDefaultAddress flags one of the user's addresses as default,
// clearing the rest atomically.
func MakeDefaultAddress(db *gorm.DB, userID, addressID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		// Serialize concurrent make-default calls for the same user
		if err := lockUser(tx, userID); err != nil {
			return err
		}

		var address models.Address
		if err := tx.Where("id = ? AND user_id = ?", addressID, userID).
			First(&address).Error; err != nil {
			return err
		}

		if err := clearDefault(tx, userID); err != nil {
			return err
		}
		return tx.Model(&address).Update("is_default", true).Error
	})
}

func lockUser(tx *gorm.DB, userID uint) error {
	var user models.User
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&user, userID).Error
}

func clearDefault(tx *gorm.DB, userID uint) error {
	return tx.Model(&models.Address{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Update("is_default", false).Error
}

// -------- Handlers --------

// POST /address/add
func AddAddressHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		var req AddAddressRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		address, err := AddAddress(db, userID, req)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add address"})
			return
		}
		c.JSON(http.StatusCreated, address)
	}
}

// POST /address/:address_id/make-default
func MakeDefaultAddressHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		addressID, err := strconv.ParseUint(c.Param("address_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address id"})
			return
		}

		if err := MakeDefaultAddress(db, userID, uint(addressID)); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update address"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Default address updated"})
	}
}
