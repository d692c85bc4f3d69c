package cartControllers

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/vikaskambale6631/medishop-api/models"
	"github.com/vikaskambale6631/medishop-api/testutil"
	"gorm.io/gorm"
)

func TestAddToCartMergesLines(t *testing.T) {
	db := testutil.OpenTestDB(t)
	user := testutil.CreateUser(t, db)
	medicine := testutil.CreateMedicine(t, db, "Paracetamol 500mg", "10.00", 5, false)

	first, err := AddToCart(db, user.ID, medicine.ID)
	require.NoError(t, err)
	require.Equal(t, 1, first.Quantity)

	second, err := AddToCart(db, user.ID, medicine.ID)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID, "adding the same medicine twice must not create a second line")
	require.Equal(t, 2, second.Quantity)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("cart_id = ?", first.CartID).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestAddToCartUnknownMedicine(t *testing.T) {
	db := testutil.OpenTestDB(t)
	user := testutil.CreateUser(t, db)

	_, err := AddToCart(db, user.ID, 999999999)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdateCartItemOverwritesQuantity(t *testing.T) {
	db := testutil.OpenTestDB(t)
	user := testutil.CreateUser(t, db)
	medicine := testutil.CreateMedicine(t, db, "Cetirizine 10mg", "3.25", 50, false)

	item, err := AddToCart(db, user.ID, medicine.ID)
	require.NoError(t, err)

	require.NoError(t, UpdateCartItem(db, user.ID, item.ID, 7))

	var updated models.CartItem
	require.NoError(t, db.First(&updated, item.ID).Error)
	require.Equal(t, 7, updated.Quantity)
}

func TestUpdateCartItemZeroDeletesLine(t *testing.T) {
	db := testutil.OpenTestDB(t)
	user := testutil.CreateUser(t, db)
	medicine := testutil.CreateMedicine(t, db, "Ibuprofen 400mg", "5.00", 20, false)

	item, err := AddToCart(db, user.ID, medicine.ID)
	require.NoError(t, err)

	require.NoError(t, UpdateCartItem(db, user.ID, item.ID, 0))

	err = db.First(&models.CartItem{}, item.ID).Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdateCartItemOtherUsersLine(t *testing.T) {
	db := testutil.OpenTestDB(t)
	owner := testutil.CreateUser(t, db)
	intruder := testutil.CreateUser(t, db)
	medicine := testutil.CreateMedicine(t, db, "Amoxicillin 250mg", "12.00", 10, true)

	item, err := AddToCart(db, owner.ID, medicine.ID)
	require.NoError(t, err)

	// Must look like a missing line, not leak another user's data
	err = UpdateCartItem(db, intruder.ID, item.ID, 5)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = RemoveCartItem(db, intruder.ID, item.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var untouched models.CartItem
	require.NoError(t, db.First(&untouched, item.ID).Error)
	require.Equal(t, 1, untouched.Quantity)
}

func TestConcurrentAddsMergeToOneLine(t *testing.T) {
	db := testutil.OpenTestDB(t)
	user := testutil.CreateUser(t, db)
	medicine := testutil.CreateMedicine(t, db, "Azithromycin 500mg", "18.00", 50, false)

	const adds = 4
	errs := make([]error, adds)
	var wg sync.WaitGroup
	wg.Add(adds)
	for i := 0; i < adds; i++ {
		go func(i int) {
			defer wg.Done()
			_, errs[i] = AddToCart(db, user.ID, medicine.ID)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "add %d", i)
	}

	var cart models.Cart
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&cart).Error)

	// Racing first-adds must fold into a single line, never surface a
	// unique-index violation
	var items []models.CartItem
	require.NoError(t, db.Where("cart_id = ?", cart.ID).Find(&items).Error)
	require.Len(t, items, 1)
	require.Equal(t, adds, items[0].Quantity)
}

func TestUpdateCartItemHandlerMissingQuantity(t *testing.T) {
	db := testutil.OpenTestDB(t)
	user := testutil.CreateUser(t, db)
	medicine := testutil.CreateMedicine(t, db, "Loratadine 10mg", "4.00", 10, false)

	item, err := AddToCart(db, user.ID, medicine.ID)
	require.NoError(t, err)
	require.NoError(t, UpdateCartItem(db, user.ID, item.ID, 3))

	// No quantity field at all: the line falls back to 1 instead of
	// being treated as quantity 0 and deleted
	w := postUpdate(db, user.ID, item.ID, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var reloaded models.CartItem
	require.NoError(t, db.First(&reloaded, item.ID).Error)
	require.Equal(t, 1, reloaded.Quantity)

	// An explicit zero still deletes
	w = postUpdate(db, user.ID, item.ID, "quantity=0")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	err = db.First(&models.CartItem{}, item.ID).Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func postUpdate(db *gorm.DB, userID, itemID uint, form string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	id := strconv.FormatUint(uint64(itemID), 10)
	req := httptest.NewRequest(http.MethodPost, "/cart/update/"+id, strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.Request = req
	c.Params = gin.Params{{Key: "item_id", Value: id}}
	c.Set("user_id", userID)

	UpdateCartItemHandler(db)(c)
	return w
}

func TestCartComputedTotals(t *testing.T) {
	db := testutil.OpenTestDB(t)
	user := testutil.CreateUser(t, db)
	a := testutil.CreateMedicine(t, db, "Medicine A", "10.00", 5, false)
	b := testutil.CreateMedicine(t, db, "Medicine B", "5.50", 5, true)

	_, err := AddToCart(db, user.ID, a.ID)
	require.NoError(t, err)
	_, err = AddToCart(db, user.ID, a.ID)
	require.NoError(t, err)
	_, err = AddToCart(db, user.ID, b.ID)
	require.NoError(t, err)

	var cart models.Cart
	require.NoError(t, db.Preload("Items.Medicine").Where("user_id = ?", user.ID).First(&cart).Error)

	require.Equal(t, 3, cart.TotalItems())
	require.True(t, cart.TotalAmount().Equal(decimal.RequireFromString("25.50")),
		"got total %s", cart.TotalAmount())
	require.True(t, cart.NeedsPrescription())
}
