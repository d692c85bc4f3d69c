package catalogControllers

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/vikaskambale6631/medishop-api/models"
	"github.com/vikaskambale6631/medishop-api/testutil"
)

func TestSearchMedicinesMatchesNameBrandDescription(t *testing.T) {
	db := testutil.OpenTestDB(t)

	marker := uuid.NewString()
	byName := testutil.CreateMedicine(t, db, "Name-"+marker, "1.00", 1, false)
	byBrand := testutil.CreateMedicine(t, db, "Brand carrier", "1.00", 1, false)
	require.NoError(t, db.Model(&byBrand).Update("brand", "Brand-"+marker).Error)
	byDescription := testutil.CreateMedicine(t, db, "Description carrier", "1.00", 1, false)
	require.NoError(t, db.Model(&byDescription).Update("description", "Contains "+marker).Error)
	testutil.CreateMedicine(t, db, "Unrelated medicine", "1.00", 1, false)

	// Substring match, case-insensitive
	var results []models.Medicine
	require.NoError(t, SearchMedicines(db.Model(&models.Medicine{}), strings.ToUpper(marker)).
		Find(&results).Error)

	found := map[uint]bool{}
	for _, m := range results {
		found[m.ID] = true
	}
	require.Len(t, results, 3)
	require.True(t, found[byName.ID])
	require.True(t, found[byBrand.ID])
	require.True(t, found[byDescription.ID])
}

func TestMedicineSlugDerivedFromName(t *testing.T) {
	db := testutil.OpenTestDB(t)

	suffix := uuid.NewString()
	medicine := models.Medicine{
		Name:  "Dolo 650 " + suffix,
		Price: decimal.RequireFromString("2.00"),
	}
	require.NoError(t, db.Create(&medicine).Error)
	require.Equal(t, "dolo-650-"+suffix, medicine.Slug)
}

func TestCategorySlugDerivedFromName(t *testing.T) {
	db := testutil.OpenTestDB(t)

	suffix := uuid.NewString()
	category := models.Category{Name: "Pain Relief " + suffix}
	require.NoError(t, db.Create(&category).Error)
	require.Equal(t, "pain-relief-"+suffix, category.Slug)
}
