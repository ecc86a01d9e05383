package models

import "time"

// 預約狀態
const (
	BookingBooked    = "BOOKED"    // 已預約，尚未生效
	BookingActive    = "ACTIVE"    // 租期內，佔用貨架中
	BookingPast      = "PAST"      // 租期已結束
	BookingCancelled = "CANCELLED" // 已取消
)

// Booking 承租人對某座層架上若干貨架層的預約
// 不變量：occupying_space 為 true 若且唯若 status == ACTIVE
type Booking struct {
	BookingID          int       `json:"booking_id" gorm:"primaryKey;autoIncrement"`
	LesseeID           int       `json:"lessee_id" gorm:"index;not null"`
	RackID             int       `json:"rack_id" gorm:"index;not null"`
	NumShelvesOccupied int       `json:"num_shelves_occupied" gorm:"not null;default:1" binding:"omitempty,gt=0"`
	StartDate          time.Time `json:"start_date" gorm:"type:date;not null"` // 含當日
	EndDate            time.Time `json:"end_date" gorm:"type:date;not null"`   // 含當日
	TotalPrice         float64   `json:"total_price" gorm:"type:decimal(6,2);default:0.0"` // 建立時計算：天數 x 每日價格 x 層數
	Status             string    `json:"status" gorm:"type:varchar(10);not null;default:BOOKED" binding:"omitempty,oneof=BOOKED ACTIVE PAST CANCELLED"`
	OccupyingSpace     bool      `json:"occupying_space" gorm:"default:false"` // 此預約目前是否持有（標記為不可用）貨架

	Lessee User `json:"-" gorm:"foreignKey:LesseeID;references:UserID"`
	Rack   Rack `json:"-" gorm:"foreignKey:RackID;references:RackID"`
}

func (Booking) TableName() string {
	return "booking"
}

type BookingResponse struct {
	BookingID          int     `json:"booking_id"`
	LesseeID           int     `json:"lessee_id"`
	RackID             int     `json:"rack_id"`
	NumShelvesOccupied int     `json:"num_shelves_occupied"`
	StartDate          string  `json:"start_date"`
	EndDate            string  `json:"end_date"`
	TotalPrice         float64 `json:"total_price"`
	Status             string  `json:"status"`
	OccupyingSpace     bool    `json:"occupying_space"`
}

func (b *Booking) ToResponse() BookingResponse {
	return BookingResponse{
		BookingID:          b.BookingID,
		LesseeID:           b.LesseeID,
		RackID:             b.RackID,
		NumShelvesOccupied: b.NumShelvesOccupied,
		StartDate:          b.StartDate.Format("2006-01-02"),
		EndDate:            b.EndDate.Format("2006-01-02"),
		TotalPrice:         b.TotalPrice,
		Status:             b.Status,
		OccupyingSpace:     b.OccupyingSpace,
	}
}
