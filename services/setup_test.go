package services

import (
	"fmt"
	"testing"

	"github.com/AaronDDavis/project-storage/database"
	"github.com/AaronDDavis/project-storage/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB 以記憶體 SQLite 建立獨立測試資料庫並完成遷移
func setupTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Location{},
		&models.Space{},
		&models.Rack{},
		&models.Shelf{},
		&models.InstallationRequest{},
		&models.Booking{},
	))

	database.DB = db
}

// seedLocation 建立測試地點並載入地區費率
func seedLocation(t *testing.T, area string) *models.Location {
	t.Helper()

	location := &models.Location{Area: area, Address: "1 Test Street"}
	location.LoadPrice()
	require.NoError(t, database.DB.Create(location).Error)
	return location
}

// seedSpace 建立已核准的測試空間
func seedSpace(t *testing.T, renterID int, pricePerDay float64, height int) *models.Space {
	t.Helper()

	location := seedLocation(t, "AMK")
	space := &models.Space{
		RenterID:              renterID,
		LocationID:            location.LocationID,
		EnvironmentConditions: models.EnvIndoor,
		Height:                height,
		Status:                models.SpaceApproved,
		PricePerDay:           pricePerDay,
	}
	require.NoError(t, database.DB.Create(space).Error)
	return space
}

// seedRack 建立層架與指定數量的貨架，前 available 個可用，其餘標記為不可用
func seedRack(t *testing.T, spaceID, total, available int) *models.Rack {
	t.Helper()

	rack := &models.Rack{
		SpaceID: spaceID,
		Length:  total * models.ShelfLength,
	}
	require.NoError(t, database.DB.Create(rack).Error)

	for i := 0; i < total; i++ {
		shelf := models.Shelf{
			RackID:      rack.RackID,
			ShelfLabel:  fmt.Sprintf("%03d", i),
			IsAvailable: true,
		}
		require.NoError(t, database.DB.Create(&shelf).Error)
	}

	// gorm 對 false 零值會套用欄位預設值，改用 update 標記不可用的貨架
	if available < total {
		require.NoError(t, database.DB.Model(&models.Shelf{}).
			Where("rack_id = ? AND shelf_label >= ?", rack.RackID, fmt.Sprintf("%03d", available)).
			Update("is_available", false).Error)
	}
	return rack
}

// availableShelfCount 查詢層架目前可用的貨架數
func availableShelfCount(t *testing.T, rackID int) int {
	t.Helper()

	var count int64
	require.NoError(t, database.DB.Model(&models.Shelf{}).
		Where("rack_id = ? AND is_available = ?", rackID, true).
		Count(&count).Error)
	return int(count)
}
