package models

// Rack 空間內的一座層架，由多個貨架層（Shelf）組成
type Rack struct {
	RackID  int `json:"rack_id" gorm:"primaryKey;autoIncrement"`
	SpaceID int `json:"space_id" gorm:"index;not null"`
	Length  int `json:"length" gorm:"not null;default:50"` // 公分，為固定貨架長度的倍數

	Shelves []Shelf `json:"-" gorm:"foreignKey:RackID;references:RackID"`
}

func (Rack) TableName() string {
	return "rack"
}

// Width 貨架寬度為固定常數
func (r *Rack) Width() int {
	return ShelfWidth
}

// Height 貨架高度為固定常數
func (r *Rack) Height() int {
	return ShelfHeight
}

// CountAvailableShelves 計算目前可用的貨架層數（須先 Preload Shelves）
func (r *Rack) CountAvailableShelves() int {
	count := 0
	for _, shelf := range r.Shelves {
		if shelf.IsAvailable {
			count++
		}
	}
	return count
}

type RackResponse struct {
	RackID           int `json:"rack_id"`
	SpaceID          int `json:"space_id"`
	Length           int `json:"length"`
	Width            int `json:"width"`
	Height           int `json:"height"`
	AvailableShelves int `json:"available_shelves"`
}

func (r *Rack) ToResponse() RackResponse {
	return RackResponse{
		RackID:           r.RackID,
		SpaceID:          r.SpaceID,
		Length:           r.Length,
		Width:            r.Width(),
		Height:           r.Height(),
		AvailableShelves: r.CountAvailableShelves(),
	}
}
