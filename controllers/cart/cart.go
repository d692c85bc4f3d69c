package cartControllers

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

// GetOrCreateCart resolves the user's single cart, creating it lazily on
// first use (signup also creates one; the unique index on user_id keeps
// this race-safe).
func GetOrCreateCart(db *gorm.DB, userID uint) (models.Cart, error) {
	var cart models.Cart
	err := db.Where(models.Cart{UserID: userID}).FirstOrCreate(&cart).Error
	return cart, err
}

// lockCart takes the cart's row lock for the rest of the transaction.
// Checkout holds the same lock, so cart mutations and an in-flight
// checkout for the same cart never interleave.
func lockCart(tx *gorm.DB, userID uint) (models.Cart, error) {
	var cart models.Cart
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).First(&cart).Error
	return cart, err
}

// AddToCart adds one unit of a medicine to the user's cart. An existing
// (cart, medicine) line is incremented rather than duplicated. No stock
// check happens here; stock is validated and consumed at checkout.
//
// When the cart row itself does not exist yet there is no lock to
// serialize on, so two first-adds can still collide on the composite
// unique index; the loser retries in a fresh transaction and folds into
// the winner's line.
func AddToCart(db *gorm.DB, userID, medicineID uint) (models.CartItem, error) {
	item, err := addToCart(db, userID, medicineID)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		item, err = addToCart(db, userID, medicineID)
	}
	return item, err
}

func addToCart(db *gorm.DB, userID, medicineID uint) (models.CartItem, error) {
	var item models.CartItem

	var medicine models.Medicine
	if err := db.First(&medicine, medicineID).Error; err != nil {
		return item, err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		cart, err := lockCart(tx, userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			cart = models.Cart{UserID: userID}
			if err := tx.Create(&cart).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		err = tx.Where("cart_id = ? AND medicine_id = ?", cart.ID, medicine.ID).First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			item = models.CartItem{CartID: cart.ID, MedicineID: medicine.ID, Quantity: 1}
			return tx.Create(&item).Error
		}
		if err != nil {
			return err
		}

		if err := tx.Model(&item).Update("quantity", gorm.Expr("quantity + ?", 1)).Error; err != nil {
			return err
		}
		return tx.First(&item, item.ID).Error
	})
	return item, err
}

// UpdateCartItem overwrites a line's quantity; zero or below deletes the
// line. The line is scoped to the caller's own cart: a line in another
// user's cart is indistinguishable from a missing one.
func UpdateCartItem(db *gorm.DB, userID, itemID uint, quantity int) error {
	return db.Transaction(func(tx *gorm.DB) error {
		cart, err := lockCart(tx, userID)
		if err != nil {
			return err
		}

		var item models.CartItem
		if err := tx.Where("id = ? AND cart_id = ?", itemID, cart.ID).First(&item).Error; err != nil {
			return err
		}

		if quantity <= 0 {
			return tx.Delete(&item).Error
		}
		return tx.Model(&item).Update("quantity", quantity).Error
	})
}

// RemoveCartItem deletes a line from the user's cart.
func RemoveCartItem(db *gorm.DB, userID, itemID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		cart, err := lockCart(tx, userID)
		if err != nil {
			return err
		}

		var item models.CartItem
		if err := tx.Where("id = ? AND cart_id = ?", itemID, cart.ID).First(&item).Error; err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
}

// -------- Handlers --------

// GET /cart
func GetCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		cart, err := GetOrCreateCart(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		if err := db.Preload("Items.Medicine").First(&cart, cart.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"cart":         cart,
			"total_items":  cart.TotalItems(),
			"total_amount": cart.TotalAmount(),
			"needs_rx":     cart.NeedsPrescription(),
		})
	}
}

// POST /cart/add/:medicine_id
func AddToCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		medicineID, err := strconv.ParseUint(c.Param("medicine_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid medicine id"})
			return
		}

		item, err := AddToCart(db, userID, uint(medicineID))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Medicine not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

type updateCartItemInput struct {
	Quantity *int `form:"quantity" json:"quantity"`
}

// POST /cart/update/:item_id
func UpdateCartItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		itemID, err := strconv.ParseUint(c.Param("item_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
			return
		}

		var input updateCartItemInput
		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quantity"})
			return
		}

		// An absent quantity means 1; only an explicit zero (or less)
		// deletes the line
		quantity := 1
		if input.Quantity != nil {
			quantity = *input.Quantity
		}

		if err := UpdateCartItem(db, userID, uint(itemID), quantity); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart updated"})
	}
}

// POST /cart/remove/:item_id
func RemoveCartItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		itemID, err := strconv.ParseUint(c.Param("item_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
			return
		}

		if err := RemoveCartItem(db, userID, uint(itemID)); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove cart item"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart item removed"})
	}
}
