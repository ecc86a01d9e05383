package services

import (
	"testing"

	"github.com/AaronDDavis/project-storage/database"
	"github.com/AaronDDavis/project-storage/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidSpaceTransition(t *testing.T) {
	tests := []struct {
		name      string
		oldStatus string
		newStatus string
		want      bool
	}{
		{"pending to approved", models.SpacePending, models.SpaceApproved, true},
		{"pending to rejected", models.SpacePending, models.SpaceRejected, true},
		{"pending to on hold", models.SpacePending, models.SpaceOnHold, true},
		{"rejected to on hold", models.SpaceRejected, models.SpaceOnHold, true},
		{"rejected to approved", models.SpaceRejected, models.SpaceApproved, true},
		{"on hold to approved", models.SpaceOnHold, models.SpaceApproved, true},
		{"approved to on hold", models.SpaceApproved, models.SpaceOnHold, true},
		{"no way back to pending", models.SpaceApproved, models.SpacePending, false},
		{"approved cannot be rejected", models.SpaceApproved, models.SpaceRejected, false},
		{"on hold cannot be rejected", models.SpaceOnHold, models.SpaceRejected, false},
		{"no self transition", models.SpaceApproved, models.SpaceApproved, false},
		{"no pending self transition", models.SpacePending, models.SpacePending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidSpaceTransition(tt.oldStatus, tt.newStatus))
		})
	}
}

func TestTransitionSpace(t *testing.T) {
	setupTestDB(t)
	space := seedSpace(t, 1, 6.99, models.ShelfHeight)
	require.NoError(t, database.DB.Model(space).Update("status", models.SpacePending).Error)
	space.Status = models.SpacePending

	// 合法轉換會寫回資料庫
	require.NoError(t, TransitionSpace(space, models.SpaceApproved))
	reloaded, err := GetSpaceByID(space.SpaceID)
	require.NoError(t, err)
	require.NotNil(t, reloaded)
	assert.Equal(t, models.SpaceApproved, reloaded.Status)

	// 已核准的空間不可再駁回
	err = TransitionSpace(reloaded, models.SpaceRejected)
	assert.ErrorIs(t, err, ErrSpaceTransition)

	// 原地轉換也不允許
	err = TransitionSpace(reloaded, models.SpaceApproved)
	assert.ErrorIs(t, err, ErrSpaceTransition)

	// 未定義的狀態碼
	err = TransitionSpace(reloaded, "SOMETHING")
	assert.ErrorIs(t, err, ErrInvalidSpaceState)

	// 失敗的轉換不可變更資料庫
	unchanged, err := GetSpaceByID(space.SpaceID)
	require.NoError(t, err)
	assert.Equal(t, models.SpaceApproved, unchanged.Status)
}

func TestGetAvailableSpacesFootprint(t *testing.T) {
	setupTestDB(t)
	space := seedSpace(t, 1, 6.99, models.ShelfHeight)
	seedRack(t, space.SpaceID, 3, 3)

	// 高度超過貨架層高，無論其他條件都放不進去
	spaces, err := GetAvailableSpaces("", 10, 10, 50)
	require.NoError(t, err)
	assert.Empty(t, spaces)

	// 長寬可旋轉：50x10 視為長 50、寬 10，放得進單一貨架層
	spaces, err = GetAvailableSpaces("", 10, 50, 10)
	require.NoError(t, err)
	require.Len(t, spaces, 1)
	assert.Equal(t, space.SpaceID, spaces[0].SpaceID)
	assert.Equal(t, 1, spaces[0].NumShelves)
	assert.Equal(t, 3, spaces[0].AvailableShelves)

	// 寬度超過貨架層寬
	spaces, err = GetAvailableSpaces("", 50, 50, 10)
	require.NoError(t, err)
	assert.Empty(t, spaces)
}

func TestGetAvailableSpacesShelfCount(t *testing.T) {
	setupTestDB(t)
	space := seedSpace(t, 1, 6.99, models.ShelfHeight)
	seedRack(t, space.SpaceID, 3, 1)

	// 120 公分需要 3 層，但層架只剩 1 層可用
	spaces, err := GetAvailableSpaces("", 120, 10, 10)
	require.NoError(t, err)
	assert.Empty(t, spaces)

	// 40 公分只需要 1 層
	spaces, err = GetAvailableSpaces("", 40, 10, 10)
	require.NoError(t, err)
	require.Len(t, spaces, 1)
	assert.Equal(t, 1, spaces[0].NumShelves)
}

func TestGetAvailableSpacesLocationFilter(t *testing.T) {
	setupTestDB(t)
	space := seedSpace(t, 1, 6.99, models.ShelfHeight)
	seedRack(t, space.SpaceID, 2, 2)

	// 地區過濾不分大小寫
	spaces, err := GetAvailableSpaces("amk", 10, 10, 10)
	require.NoError(t, err)
	assert.Len(t, spaces, 1)

	spaces, err = GetAvailableSpaces("BDK", 10, 10, 10)
	require.NoError(t, err)
	assert.Empty(t, spaces)
}

func TestGetAvailableSpacesSkipsUnapproved(t *testing.T) {
	setupTestDB(t)
	space := seedSpace(t, 1, 6.99, models.ShelfHeight)
	seedRack(t, space.SpaceID, 2, 2)
	require.NoError(t, database.DB.Model(space).Update("status", models.SpacePending).Error)

	spaces, err := GetAvailableSpaces("", 10, 10, 10)
	require.NoError(t, err)
	assert.Empty(t, spaces)
}

func TestGetShelfLayout(t *testing.T) {
	setupTestDB(t)
	space := seedSpace(t, 1, 6.99, 2*models.ShelfHeight)
	seedRack(t, space.SpaceID, 3, 2)
	seedRack(t, space.SpaceID, 3, 0)

	loaded, err := GetSpaceByID(space.SpaceID)
	require.NoError(t, err)

	layout := GetShelfLayout(loaded)
	require.Len(t, layout, 2)
	assert.Equal(t, []bool{true, true, false}, layout[0])
	assert.Equal(t, []bool{false, false, false}, layout[1])
}

func TestCreateShelves(t *testing.T) {
	setupTestDB(t)
	space := seedSpace(t, 1, 6.99, 2*models.ShelfHeight)

	require.NoError(t, CreateShelves(database.DB, space, 2, 3))

	var racks []models.Rack
	require.NoError(t, database.DB.Preload("Shelves").Where("space_id = ?", space.SpaceID).Order("rack_id").Find(&racks).Error)
	require.Len(t, racks, 2)

	for _, rack := range racks {
		assert.Equal(t, 3*models.ShelfLength, rack.Length)
		require.Len(t, rack.Shelves, 3)

		labels := make([]string, 0, len(rack.Shelves))
		for _, shelf := range rack.Shelves {
			assert.True(t, shelf.IsAvailable)
			labels = append(labels, shelf.ShelfLabel)
		}
		assert.ElementsMatch(t, []string{"000", "001", "002"}, labels)
	}
}

func TestApproveSpaces(t *testing.T) {
	setupTestDB(t)
	first := seedSpace(t, 1, 6.99, models.ShelfHeight)
	second := seedSpace(t, 1, 6.99, models.ShelfHeight)
	require.NoError(t, database.DB.Model(&models.Space{}).
		Where("space_id IN ?", []int{first.SpaceID, second.SpaceID}).
		Update("status", models.SpacePending).Error)

	approved, err := ApproveSpaces([]int{first.SpaceID, second.SpaceID})
	require.NoError(t, err)
	assert.EqualValues(t, 2, approved)

	spaces, err := GetSpaces(0, models.SpaceApproved)
	require.NoError(t, err)
	assert.Len(t, spaces, 2)

	// 空清單不做任何事
	approved, err = ApproveSpaces(nil)
	require.NoError(t, err)
	assert.Zero(t, approved)
}

func TestGetSpaceByIDNotFound(t *testing.T) {
	setupTestDB(t)

	space, err := GetSpaceByID(999)
	require.NoError(t, err)
	assert.Nil(t, space)
}
