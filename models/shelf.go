package models

// Shelf 最小承租單位，尺寸固定（ShelfLength x ShelfWidth x ShelfHeight）
// is_available 是整個系統唯一會變動的容量位元，只由預約生命週期切換
type Shelf struct {
	ShelfID     int    `json:"shelf_id" gorm:"primaryKey;autoIncrement"`
	RackID      int    `json:"rack_id" gorm:"not null;uniqueIndex:idx_rack_label"`
	ShelfLabel  string `json:"shelf_label" gorm:"type:varchar(3);not null;uniqueIndex:idx_rack_label"` // 三碼流水編號，如 000、001
	IsAvailable bool   `json:"is_available" gorm:"default:true"`
}

func (Shelf) TableName() string {
	return "shelf"
}

// Length 固定貨架長度
func (s *Shelf) Length() int {
	return ShelfLength
}

// Width 固定貨架寬度
func (s *Shelf) Width() int {
	return ShelfWidth
}

// Height 固定貨架高度
func (s *Shelf) Height() int {
	return ShelfHeight
}
