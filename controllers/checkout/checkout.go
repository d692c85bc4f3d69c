package checkoutControllers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vikaskambale6631/medishop-api/middleware"
	"github.com/vikaskambale6631/medishop-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrEmptyCart means checkout was attempted with no cart lines; no
	// order is created.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrPrescriptionRequired means the cart holds an rx-required line
	// and no prescription file was supplied.
	ErrPrescriptionRequired = errors.New("prescription required")

	// ErrCartChanged means the cart lines read at the start of the
	// transaction were gone by the time the clear ran; the whole
	// checkout rolls back.
	ErrCartChanged = errors.New("cart changed during checkout")
)

// InsufficientStockError reports a line whose quantity exceeds the
// medicine's remaining stock. Over-quantity orders are rejected outright;
// stock never goes below zero.
type InsufficientStockError struct {
	MedicineName string
}

func (e *InsufficientStockError) Error() string {
	return "insufficient stock for " + e.MedicineName
}

type PlaceOrderInput struct {
	UserID    uint
	AddressID uint
	// PrescriptionFile is the stored path of an already-persisted upload,
	// empty when none was supplied.
	PrescriptionFile string
}

// PlaceOrder converts the user's cart into an order: per-line price
// snapshots, stock decrements, optional prescription, cart clear. All of
// it happens in one transaction; any failure leaves the cart intact and
// creates nothing.
//
// Concurrent checkouts against the same cart serialize on the cart row
// lock, and the final delete is guarded by the exact line ids read under
// that lock, so the same lines can never be spent twice.
func PlaceOrder(db *gorm.DB, in PlaceOrderInput) (models.Order, error) {
	var order models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", in.UserID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEmptyCart
			}
			return err
		}

		var items []models.CartItem
		if err := tx.Preload("Medicine").Where("cart_id = ?", cart.ID).Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		var address models.Address
		if err := tx.Where("id = ? AND user_id = ?", in.AddressID, in.UserID).
			First(&address).Error; err != nil {
			return err
		}

		needsRx := false
		for _, item := range items {
			if item.Medicine.RxRequired {
				needsRx = true
				break
			}
		}
		if needsRx && in.PrescriptionFile == "" {
			return ErrPrescriptionRequired
		}

		order = models.Order{
			UserID:        in.UserID,
			AddressID:     &address.ID,
			PaymentStatus: models.PaymentStatusCOD,
			OrderStatus:   models.OrderStatusPlaced,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		total := decimal.Zero
		itemIDs := make([]uint, 0, len(items))
		for _, item := range items {
			itemIDs = append(itemIDs, item.ID)

			// Guarded decrement: no row is touched when stock would go
			// negative, so concurrent checkouts cannot oversell.
			res := tx.Model(&models.Medicine{}).
				Where("id = ? AND stock >= ?", item.MedicineID, item.Quantity).
				Update("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return &InsufficientStockError{MedicineName: item.Medicine.Name}
			}

			medicineID := item.MedicineID
			line := models.OrderItem{
				OrderID:    order.ID,
				MedicineID: &medicineID,
				Quantity:   item.Quantity,
				Price:      item.Medicine.Price, // unit price frozen here
			}
			if err := tx.Create(&line).Error; err != nil {
				return err
			}
			order.Items = append(order.Items, line)

			total = total.Add(item.Medicine.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}

		if err := tx.Model(&order).Update("total_amount", total).Error; err != nil {
			return err
		}
		order.TotalAmount = total

		if needsRx {
			pres := models.Prescription{
				UserID:  in.UserID,
				OrderID: &order.ID,
				File:    in.PrescriptionFile,
			}
			if err := tx.Create(&pres).Error; err != nil {
				return err
			}
		}

		res := tx.Where("id IN ?", itemIDs).Delete(&models.CartItem{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != int64(len(itemIDs)) {
			return ErrCartChanged
		}

		return nil
	})

	return order, err
}

// -------- Handlers --------

// GET /checkout
func GetCheckoutHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		var cart models.Cart
		if err := db.Preload("Items.Medicine").Where("user_id = ?", userID).First(&cart).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		if len(cart.Items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty"})
			return
		}

		var addresses []models.Address
		if err := db.Where("user_id = ?", userID).
			Order("is_default DESC, created_at DESC").Find(&addresses).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch addresses"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"items":        cart.Items,
			"total_amount": cart.TotalAmount(),
			"needs_rx":     cart.NeedsPrescription(),
			"addresses":    addresses,
		})
	}
}

// POST /checkout
// Multipart body: address_id plus, when the cart needs one, a
// prescription file.
func PostCheckoutHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		addressID, err := strconv.ParseUint(c.PostForm("address_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "address_id is required"})
			return
		}

		// Persist the upload before the transaction; remove it again if
		// the checkout rolls back.
		prescriptionPath := ""
		if file, err := c.FormFile("file"); err == nil {
			saveDir := filepath.Join(uploadDir(), "prescriptions")
			if err := os.MkdirAll(saveDir, 0o755); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store prescription"})
				return
			}
			filename := uuid.NewString() + filepath.Ext(file.Filename)
			savePath := filepath.Join(saveDir, filename)
			if err := c.SaveUploadedFile(file, savePath); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store prescription"})
				return
			}
			prescriptionPath = fmt.Sprintf("/uploads/prescriptions/%s", filename)
		}

		order, err := PlaceOrder(db, PlaceOrderInput{
			UserID:           userID,
			AddressID:        uint(addressID),
			PrescriptionFile: prescriptionPath,
		})
		if err != nil {
			if prescriptionPath != "" {
				os.Remove(filepath.Join(uploadDir(), "prescriptions", filepath.Base(prescriptionPath)))
			}

			var stockErr *InsufficientStockError
			switch {
			case errors.Is(err, ErrEmptyCart):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty"})
			case errors.Is(err, ErrPrescriptionRequired):
				c.JSON(http.StatusBadRequest, gin.H{"error": "A prescription upload is required for items in your cart"})
			case errors.As(err, &stockErr):
				c.JSON(http.StatusConflict, gin.H{"error": stockErr.Error()})
			case errors.Is(err, ErrCartChanged):
				c.JSON(http.StatusConflict, gin.H{"error": "Your cart changed, please try again"})
			case errors.Is(err, gorm.ErrRecordNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
			}
			return
		}

		// An upload the order never linked (no rx-required line) would
		// otherwise sit on disk forever
		if prescriptionPath != "" {
			var linked int64
			if err := db.Model(&models.Prescription{}).
				Where("order_id = ?", order.ID).Count(&linked).Error; err == nil && linked == 0 {
				os.Remove(filepath.Join(uploadDir(), "prescriptions", filepath.Base(prescriptionPath)))
			}
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Order placed successfully", "order_id": order.ID})
	}
}

func uploadDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "./uploads"
}
