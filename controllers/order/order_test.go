package orderControllers

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vikaskambale6631/medishop-api/models"
	"github.com/vikaskambale6631/medishop-api/testutil"
	"gorm.io/gorm"
)

func TestMapOrderStatus(t *testing.T) {
	valid := []string{"placed", "confirmed", "packed", "shipped", "delivered", "cancelled"}
	for _, s := range valid {
		status, err := mapOrderStatus(s)
		require.NoError(t, err, s)
		require.EqualValues(t, s, status)
	}

	// Case-insensitive
	status, err := mapOrderStatus("SHIPPED")
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusShipped, status)

	for _, s := range []string{"", "refunded", "returned", "pending", "shipped "} {
		_, err := mapOrderStatus(s)
		require.Error(t, err, "%q must be rejected", s)
	}
}

func TestSetOrderStatus(t *testing.T) {
	db := testutil.OpenTestDB(t)
	user := testutil.CreateUser(t, db)

	order := models.Order{UserID: user.ID, OrderStatus: models.OrderStatusPlaced, PaymentStatus: models.PaymentStatusCOD}
	require.NoError(t, db.Create(&order).Error)

	// Unknown values leave the row unchanged and report failure
	require.Error(t, SetOrderStatus(db, order.ID, "bogus"))
	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	require.Equal(t, models.OrderStatusPlaced, reloaded.OrderStatus)

	// Any of the six values is accepted, in any order
	require.NoError(t, SetOrderStatus(db, order.ID, "shipped"))
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	require.Equal(t, models.OrderStatusShipped, reloaded.OrderStatus)
	require.Equal(t, models.PaymentStatusCOD, reloaded.PaymentStatus, "status changes never touch payment")

	require.NoError(t, SetOrderStatus(db, order.ID, "placed"))
}

func TestSetOrderStatusUnknownOrder(t *testing.T) {
	db := testutil.OpenTestDB(t)

	err := SetOrderStatus(db, 999999999, "confirmed")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
