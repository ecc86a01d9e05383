package services

import (
	"fmt"
	"log"
	"time"

	"github.com/AaronDDavis/project-storage/database"
	"github.com/AaronDDavis/project-storage/models"
	"gorm.io/gorm"
)

// IsValidBookingStatus 檢查狀態碼是否為已定義的預約狀態
func IsValidBookingStatus(status string) bool {
	switch status {
	case models.BookingBooked, models.BookingActive, models.BookingPast, models.BookingCancelled:
		return true
	}
	return false
}

// GetRack 在空間中挑選可用層數足夠且剩餘最少的層架（best-fit，減少浪費）
// 找不到合格層架時回傳 nil，屬正常業務結果
func GetRack(space *models.Space, minShelves int) (*models.Rack, error) {
	var racks []models.Rack
	if err := database.DB.
		Preload("Shelves").
		Where("space_id = ?", space.SpaceID).
		Order("rack_id").
		Find(&racks).Error; err != nil {
		log.Printf("Failed to query racks for space %d: %v", space.SpaceID, err)
		return nil, fmt.Errorf("failed to query racks for space %d: %w", space.SpaceID, err)
	}

	var best *models.Rack
	bestCount := 0
	for i := range racks {
		count := racks[i].CountAvailableShelves()
		if count < minShelves {
			continue
		}
		if best == nil || count < bestCount {
			best = &racks[i]
			bestCount = count
		}
	}
	return best, nil
}

// CreateBooking 建立預約：自動分配層架並計算總價（天數 x 每日價格 x 層數）
// 建立時不佔用貨架，佔用延後到生效日由狀態更新處理
func CreateBooking(space *models.Space, lesseeID, numShelves int, startDate, endDate time.Time) (*models.Booking, error) {
	numDays := GetTotalDays(startDate, endDate)
	if numDays <= 0 {
		log.Printf("end_date %s is before start_date %s", endDate.Format("2006-01-02"), startDate.Format("2006-01-02"))
		return nil, fmt.Errorf("end_date %s cannot be earlier than start_date %s",
			endDate.Format("2006-01-02"), startDate.Format("2006-01-02"))
	}

	rack, err := GetRack(space, numShelves)
	if err != nil {
		return nil, err
	}
	if rack == nil {
		return nil, fmt.Errorf("%w: space %d, %d shelves requested", ErrNoRackAvailable, space.SpaceID, numShelves)
	}

	booking := models.Booking{
		LesseeID:           lesseeID,
		RackID:             rack.RackID,
		NumShelvesOccupied: numShelves,
		StartDate:          startDate,
		EndDate:            endDate,
		TotalPrice:         float64(numDays) * space.PricePerDay * float64(numShelves),
		Status:             models.BookingBooked,
	}

	if err := database.DB.Create(&booking).Error; err != nil {
		log.Printf("Failed to create booking for space %d: %v", space.SpaceID, err)
		return nil, fmt.Errorf("failed to create booking for space %d: %w", space.SpaceID, err)
	}

	log.Printf("Successfully created booking %d: rack %d, %d shelves, %d days, total %.2f",
		booking.BookingID, rack.RackID, numShelves, numDays, booking.TotalPrice)
	return &booking, nil
}

// GetTotalDays 計算租期天數，頭尾皆計（start == end 時為 1）
func GetTotalDays(startDate, endDate time.Time) int {
	start := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(endDate.Year(), endDate.Month(), endDate.Day(), 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours()/24) + 1
}

// GetBookingTotalDays 此預約的租期天數
func GetBookingTotalDays(booking *models.Booking) int {
	return GetTotalDays(booking.StartDate, booking.EndDate)
}

// GetPricePerDay 由總價反推單一貨架每日價格
func GetPricePerDay(booking *models.Booking) float64 {
	return booking.TotalPrice / (float64(booking.NumShelvesOccupied) * float64(GetBookingTotalDays(booking)))
}

// bookingShelves 依層架目前的可用狀態推算此預約對應的貨架集合
// 貨架歸屬不是固定關聯：佔用中的預約對應「不可用」的貨架，
// 尚未佔用的預約對應「可用」的貨架，依編號排序取前 N 個
func bookingShelves(db *gorm.DB, booking *models.Booking) ([]models.Shelf, error) {
	var shelves []models.Shelf
	if err := db.
		Where("rack_id = ? AND is_available = ?", booking.RackID, !booking.OccupyingSpace).
		Order("shelf_id").
		Limit(booking.NumShelvesOccupied).
		Find(&shelves).Error; err != nil {
		log.Printf("Failed to query shelves for booking %d: %v", booking.BookingID, err)
		return nil, fmt.Errorf("failed to query shelves for booking %d: %w", booking.BookingID, err)
	}
	return shelves, nil
}

// GetBookingShelves 取得此預約目前對應的貨架集合
func GetBookingShelves(booking *models.Booking) ([]models.Shelf, error) {
	return bookingShelves(database.DB, booking)
}

// CancelBooking 取消預約，僅限預約本人；非本人時回傳 false 且不變更任何狀態
func CancelBooking(booking *models.Booking, userID int) (bool, error) {
	if booking.LesseeID != userID {
		log.Printf("Unauthorized cancellation attempt: booking %d belongs to lessee %d, requested by user %d",
			booking.BookingID, booking.LesseeID, userID)
		return false, nil
	}

	if err := UpdateBookingStatus(booking, models.BookingCancelled, time.Now()); err != nil {
		return false, err
	}

	log.Printf("Successfully cancelled booking %d", booking.BookingID)
	return true, nil
}

// UpdateBookingStatus 更新預約狀態
// newStatus 不為空且為已知狀態碼時直接設定（不檢查轉換合法性）；
// 否則依 today 相對租期自動判定，已取消的預約不做自動判定。
// 無論結果都會同步貨架佔用並寫回
func UpdateBookingStatus(booking *models.Booking, newStatus string, today time.Time) error {
	if newStatus != "" {
		if IsValidBookingStatus(newStatus) {
			booking.Status = newStatus
		}
	} else if booking.Status != models.BookingCancelled {
		day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
		start := time.Date(booking.StartDate.Year(), booking.StartDate.Month(), booking.StartDate.Day(), 0, 0, 0, 0, time.UTC)
		end := time.Date(booking.EndDate.Year(), booking.EndDate.Month(), booking.EndDate.Day(), 0, 0, 0, 0, time.UTC)

		switch {
		case end.Before(day):
			booking.Status = models.BookingPast
		case !start.After(day):
			booking.Status = models.BookingActive
		default:
			booking.Status = models.BookingBooked
		}
	}

	return updateBookingSpace(booking)
}

// updateBookingSpace 讓貨架佔用與預約狀態保持一致（occupying_space ⇔ ACTIVE）
// 佔用與釋放各為一次 bulk update，和預約寫回包在同一交易內
func updateBookingSpace(booking *models.Booking) error {
	tx := database.DB.Begin()

	if booking.Status != models.BookingActive && booking.OccupyingSpace {
		if err := markBookingShelves(tx, booking, true); err != nil {
			tx.Rollback()
			return err
		}
	} else if booking.Status == models.BookingActive && !booking.OccupyingSpace {
		if err := markBookingShelves(tx, booking, false); err != nil {
			tx.Rollback()
			return err
		}
	}

	if err := tx.Save(booking).Error; err != nil {
		tx.Rollback()
		log.Printf("Failed to save booking %d: %v", booking.BookingID, err)
		return fmt.Errorf("failed to save booking %d: %w", booking.BookingID, err)
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit status update for booking %d: %w", booking.BookingID, err)
	}
	return nil
}

// markBookingShelves 將此預約對應的貨架集合批次標記為可用/不可用，並翻轉佔用旗標
func markBookingShelves(tx *gorm.DB, booking *models.Booking, available bool) error {
	shelves, err := bookingShelves(tx, booking)
	if err != nil {
		return err
	}

	if len(shelves) > 0 {
		shelfIDs := make([]int, len(shelves))
		for i, shelf := range shelves {
			shelfIDs[i] = shelf.ShelfID
		}
		if err := tx.Model(&models.Shelf{}).
			Where("shelf_id IN ?", shelfIDs).
			Update("is_available", available).Error; err != nil {
			log.Printf("Failed to update shelves for booking %d: %v", booking.BookingID, err)
			return fmt.Errorf("failed to update shelves for booking %d: %w", booking.BookingID, err)
		}
	}

	booking.OccupyingSpace = !available
	return nil
}

// GetBookings 查詢預約，可依空間與狀態過濾
func GetBookings(spaceID int, status string) ([]models.Booking, error) {
	query := database.DB.Model(&models.Booking{}).Order("booking_id")
	if spaceID > 0 {
		query = query.
			Joins("JOIN rack ON rack.rack_id = booking.rack_id").
			Where("rack.space_id = ?", spaceID)
	}
	if status != "" {
		query = query.Where("booking.status = ?", status)
	}

	var bookings []models.Booking
	if err := query.Find(&bookings).Error; err != nil {
		log.Printf("Failed to query bookings: %v", err)
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	return bookings, nil
}

// GetBookingByID 查詢特定預約，查無資料時回傳 nil
func GetBookingByID(id int) (*models.Booking, error) {
	var booking models.Booking
	if err := database.DB.Preload("Rack").First(&booking, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			log.Printf("Booking with ID %d not found", id)
			return nil, nil
		}
		log.Printf("Failed to get booking by ID %d: %v", id, err)
		return nil, fmt.Errorf("failed to get booking by ID %d: %w", id, err)
	}
	return &booking, nil
}

// GetLesseeBookings 查詢承租人的所有預約
func GetLesseeBookings(lesseeID int) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := database.DB.Where("lessee_id = ?", lesseeID).Order("booking_id").Find(&bookings).Error; err != nil {
		log.Printf("Failed to query bookings for lessee %d: %v", lesseeID, err)
		return nil, fmt.Errorf("failed to query bookings for lessee %d: %w", lesseeID, err)
	}
	return bookings, nil
}

// RefreshAllBookingStatuses 批次重新計算所有預約狀態（每日排程呼叫）
// 逐筆處理，單筆失敗不影響其餘；重複執行結果相同，可安全重跑
func RefreshAllBookingStatuses(today time.Time) error {
	var bookings []models.Booking
	if err := database.DB.Find(&bookings).Error; err != nil {
		log.Printf("Failed to fetch bookings for status refresh: %v", err)
		return fmt.Errorf("failed to fetch bookings: %w", err)
	}

	for i := range bookings {
		if err := UpdateBookingStatus(&bookings[i], "", today); err != nil {
			log.Printf("Failed to refresh status for booking %d: %v", bookings[i].BookingID, err)
			continue
		}
	}

	log.Printf("Successfully refreshed statuses for %d bookings", len(bookings))
	return nil
}

// RefreshLesseeBookingStatuses 重新計算單一承租人的預約狀態（查看自己的預約時延遲觸發）
func RefreshLesseeBookingStatuses(lesseeID int, today time.Time) error {
	bookings, err := GetLesseeBookings(lesseeID)
	if err != nil {
		return err
	}

	for i := range bookings {
		if err := UpdateBookingStatus(&bookings[i], "", today); err != nil {
			log.Printf("Failed to refresh status for booking %d: %v", bookings[i].BookingID, err)
			continue
		}
	}
	return nil
}
