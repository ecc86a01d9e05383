package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/AaronDDavis/project-storage/database"
	"github.com/AaronDDavis/project-storage/models"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// IsValidSpaceStatus 檢查狀態碼是否為已定義的空間狀態
func IsValidSpaceStatus(status string) bool {
	switch status {
	case models.SpacePending, models.SpaceApproved, models.SpaceRejected, models.SpaceOnHold:
		return true
	}
	return false
}

// IsValidSpaceTransition 空間狀態轉換規則：
// 不允許轉回 PENDING；已接受（APPROVED/ON_HOLD）的空間不可再 REJECTED；不允許原地轉換
func IsValidSpaceTransition(oldStatus, newStatus string) bool {
	if newStatus == models.SpacePending {
		return false
	}
	if (oldStatus == models.SpaceApproved || oldStatus == models.SpaceOnHold) && newStatus == models.SpaceRejected {
		return false
	}
	if newStatus == oldStatus {
		return false
	}
	return true
}

// TransitionSpace 更新空間狀態，只寫入狀態欄位，不影響貨架佔用
func TransitionSpace(space *models.Space, newStatus string) error {
	if !IsValidSpaceStatus(newStatus) {
		return fmt.Errorf("%w: %s", ErrInvalidSpaceState, newStatus)
	}

	if !IsValidSpaceTransition(space.Status, newStatus) {
		return fmt.Errorf("%w: %s -> %s", ErrSpaceTransition, space.Status, newStatus)
	}

	if err := database.DB.Model(space).Update("status", newStatus).Error; err != nil {
		log.Printf("Failed to update status for space %d: %v", space.SpaceID, err)
		return fmt.Errorf("failed to update status for space %d: %w", space.SpaceID, err)
	}

	log.Printf("Successfully transitioned space %d to %s", space.SpaceID, newStatus)
	return nil
}

// GetSpaces 查詢空間，可依擁有者與狀態過濾
func GetSpaces(renterID int, status string) ([]models.Space, error) {
	query := database.DB.
		Preload("Location").
		Preload("Racks", func(db *gorm.DB) *gorm.DB { return db.Order("rack_id") }).
		Preload("Racks.Shelves")

	if renterID > 0 {
		query = query.Where("renter_id = ?", renterID)
	}
	if IsValidSpaceStatus(status) {
		query = query.Where("status = ?", status)
	}

	var spaces []models.Space
	if err := query.Find(&spaces).Error; err != nil {
		log.Printf("Failed to query spaces: %v", err)
		return nil, fmt.Errorf("failed to query spaces: %w", err)
	}
	return spaces, nil
}

// GetSpaceByID 查詢特定空間，查無資料時回傳 nil
func GetSpaceByID(id int) (*models.Space, error) {
	var space models.Space
	if err := database.DB.
		Preload("Location").
		Preload("Renter").
		Preload("Racks", func(db *gorm.DB) *gorm.DB { return db.Order("rack_id") }).
		Preload("Racks.Shelves").
		First(&space, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Space with ID %d not found", id)
			return nil, nil
		}
		log.Printf("Failed to get space by ID %d: %v", id, err)
		return nil, fmt.Errorf("failed to get space by ID %d: %w", id, err)
	}
	return &space, nil
}

// GetAvailableSpaces 依物品尺寸與地區查詢可預約的空間
// 物品可旋轉，長度取長寬較大者；物品必須放得進單一貨架層的底面積與高度，
// 系統只以「層數」合併容量，不做空間拼接
func GetAvailableSpaces(searchLocation string, searchLength, searchWidth, searchHeight int) ([]models.Space, error) {
	if searchWidth > searchLength {
		searchLength, searchWidth = searchWidth, searchLength
	}

	if searchWidth > models.ShelfWidth || searchHeight > models.ShelfHeight {
		log.Printf("Item %dx%dx%d does not fit a single shelf, returning no spaces", searchLength, searchWidth, searchHeight)
		return []models.Space{}, nil
	}

	spaces, err := GetSpaces(0, models.SpaceApproved)
	if err != nil {
		return nil, err
	}

	// 需要的貨架層數：物品長度除以固定貨架長度，無條件進位
	minShelvesRequired := (searchLength + models.ShelfLength - 1) / models.ShelfLength

	var available []models.Space
	for i := range spaces {
		space := &spaces[i]

		if searchLocation != "" && !strings.Contains(strings.ToLower(space.Location.Area), strings.ToLower(searchLocation)) {
			continue
		}

		longEnough := false
		qualified := false
		maxAvailable := 0
		for j := range space.Racks {
			rack := &space.Racks[j]
			if rack.Length >= searchLength {
				longEnough = true
			}
			count := rack.CountAvailableShelves()
			if count > maxAvailable {
				maxAvailable = count
			}
			if count >= minShelvesRequired {
				qualified = true
			}
		}
		if !longEnough || !qualified {
			continue
		}

		space.AvailableShelves = maxAvailable
		space.NumShelves = minShelvesRequired
		available = append(available, *space)
	}

	log.Printf("Found %d available spaces for item %dx%dx%d (location filter: %q)",
		len(available), searchLength, searchWidth, searchHeight, searchLocation)
	return available, nil
}

// GetShelfLayout 產生每座層架的貨架可用性矩陣（true 為可用），供前端顯示
func GetShelfLayout(space *models.Space) [][]bool {
	layout := make([][]bool, 0, len(space.Racks))
	if len(space.Racks) == 0 {
		return layout
	}

	totalShelvesPerRack := space.Racks[0].Length / models.ShelfLength

	for i := range space.Racks {
		available := space.Racks[i].CountAvailableShelves()
		rackLayout := make([]bool, 0, totalShelvesPerRack)
		for j := 0; j < totalShelvesPerRack; j++ {
			rackLayout = append(rackLayout, j < available)
		}
		layout = append(layout, rackLayout)
	}
	return layout
}

// CreateShelves 為新空間批次產生層架與貨架記錄
// 每座層架長度 = 每架層數 x 固定貨架長度，貨架編號為三碼流水號且全部可用
func CreateShelves(tx *gorm.DB, space *models.Space, numRack, numShelfPerRack int) error {
	for i := 0; i < numRack; i++ {
		rack := models.Rack{
			SpaceID: space.SpaceID,
			Length:  numShelfPerRack * models.ShelfLength,
		}
		if err := tx.Create(&rack).Error; err != nil {
			log.Printf("Failed to create rack for space %d: %v", space.SpaceID, err)
			return fmt.Errorf("failed to create rack for space %d: %w", space.SpaceID, err)
		}

		for j := 0; j < numShelfPerRack; j++ {
			shelf := models.Shelf{
				RackID:      rack.RackID,
				ShelfLabel:  fmt.Sprintf("%03d", j),
				IsAvailable: true,
			}
			if err := tx.Create(&shelf).Error; err != nil {
				if mysqlErr, ok := err.(*mysql.MySQLError); ok && mysqlErr.Number == 1062 {
					return fmt.Errorf("duplicate shelf label %s for rack %d", shelf.ShelfLabel, rack.RackID)
				}
				log.Printf("Failed to create shelf %s for rack %d: %v", shelf.ShelfLabel, rack.RackID, err)
				return fmt.Errorf("failed to create shelf %s for rack %d: %w", shelf.ShelfLabel, rack.RackID, err)
			}
		}
	}
	return nil
}

// ApproveSpaces 管理員批次核准空間，單一 bulk update 完成
func ApproveSpaces(spaceIDs []int) (int64, error) {
	if len(spaceIDs) == 0 {
		return 0, nil
	}

	result := database.DB.Model(&models.Space{}).
		Where("space_id IN ?", spaceIDs).
		Update("status", models.SpaceApproved)
	if result.Error != nil {
		log.Printf("Failed to bulk approve spaces %v: %v", spaceIDs, result.Error)
		return 0, fmt.Errorf("failed to bulk approve spaces: %w", result.Error)
	}

	log.Printf("Successfully approved %d spaces", result.RowsAffected)
	return result.RowsAffected, nil
}
