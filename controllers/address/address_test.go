package addressControllers

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vikaskambale6631/medishop-api/models"
	"github.com/vikaskambale6631/medishop-api/testutil"
	"gorm.io/gorm"
)

func defaultCount(t *testing.T, db *gorm.DB, userID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.Address{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Count(&count).Error)
	return count
}

func TestAddAddressDefaultClearsOthers(t *testing.T) {
	db := testutil.OpenTestDB(t)
	user := testutil.CreateUser(t, db)

	first, err := AddAddress(db, user.ID, AddAddressRequest{Line1: "1 First St", IsDefault: true})
	require.NoError(t, err)
	require.Equal(t, "India", first.Country)
	require.EqualValues(t, 1, defaultCount(t, db, user.ID))

	second, err := AddAddress(db, user.ID, AddAddressRequest{Line1: "2 Second St", IsDefault: true})
	require.NoError(t, err)
	require.EqualValues(t, 1, defaultCount(t, db, user.ID))

	var reloaded models.Address
	require.NoError(t, db.First(&reloaded, first.ID).Error)
	require.False(t, reloaded.IsDefault)
	require.NoError(t, db.First(&reloaded, second.ID).Error)
	require.True(t, reloaded.IsDefault)
}

func TestMakeDefaultAddress(t *testing.T) {
	db := testutil.OpenTestDB(t)
	user := testutil.CreateUser(t, db)

	a := testutil.CreateAddress(t, db, user.ID, true)
	b := testutil.CreateAddress(t, db, user.ID, false)

	require.NoError(t, MakeDefaultAddress(db, user.ID, b.ID))

	var reloaded models.Address
	require.NoError(t, db.First(&reloaded, a.ID).Error)
	require.False(t, reloaded.IsDefault)
	require.NoError(t, db.First(&reloaded, b.ID).Error)
	require.True(t, reloaded.IsDefault)
	require.EqualValues(t, 1, defaultCount(t, db, user.ID))
}

func TestMakeDefaultAddressCrossUser(t *testing.T) {
	db := testutil.OpenTestDB(t)
	owner := testutil.CreateUser(t, db)
	intruder := testutil.CreateUser(t, db)
	address := testutil.CreateAddress(t, db, owner.ID, true)

	err := MakeDefaultAddress(db, intruder.ID, address.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var reloaded models.Address
	require.NoError(t, db.First(&reloaded, address.ID).Error)
	require.True(t, reloaded.IsDefault)
}

func TestConcurrentMakeDefaultKeepsSingleDefault(t *testing.T) {
	db := testutil.OpenTestDB(t)
	user := testutil.CreateUser(t, db)

	addresses := make([]models.Address, 4)
	for i := range addresses {
		addresses[i] = testutil.CreateAddress(t, db, user.ID, false)
	}

	errs := make([]error, len(addresses))
	var wg sync.WaitGroup
	for i, address := range addresses {
		wg.Add(1)
		go func(i int, id uint) {
			defer wg.Done()
			errs[i] = MakeDefaultAddress(db, user.ID, id)
		}(i, address.ID)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	require.EqualValues(t, 1, defaultCount(t, db, user.ID))
}
