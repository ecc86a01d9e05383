package models

// 空間審核狀態
const (
	SpacePending  = "PENDING"
	SpaceApproved = "APPROVED"
	SpaceRejected = "REJECTED"
	SpaceOnHold   = "ON_HOLD"
)

// 環境條件
const (
	EnvAC      = "AC"      // 室內冷氣
	EnvIndoor  = "INDOOR"  // 室內無冷氣
	EnvOutdoor = "OUTDOOR" // 戶外有遮蔽
)

// Space 可出租的儲物空間，由多個貨架（Rack）組成
type Space struct {
	SpaceID               int     `json:"space_id" gorm:"primaryKey;autoIncrement"`
	RenterID              int     `json:"renter_id" gorm:"index;not null" binding:"omitempty,gt=0"`
	LocationID            int     `json:"location_id" gorm:"index;not null"`
	EnvironmentConditions string  `json:"environment_conditions" gorm:"type:varchar(8);not null" binding:"required,oneof=AC INDOOR OUTDOOR"`
	Height                int     `json:"height" gorm:"not null;default:42"` // 公分
	Status                string  `json:"status" gorm:"type:varchar(8);not null;default:PENDING" binding:"omitempty,oneof=PENDING APPROVED REJECTED ON_HOLD"`
	PricePerDay           float64 `json:"price_per_day" gorm:"type:decimal(4,2);default:1.00"` // 建立時自 Location 複製
	Description           string  `json:"description" gorm:"type:text"`

	Renter   User     `json:"-" gorm:"foreignKey:RenterID;references:UserID"`
	Location Location `json:"-" gorm:"foreignKey:LocationID;references:LocationID"`
	Racks    []Rack   `json:"-" gorm:"foreignKey:SpaceID;references:SpaceID"`

	// transient，不存DB，搜尋時計算
	AvailableShelves int `json:"-" gorm:"-"` // 單一貨架最多的可用層數
	NumShelves       int `json:"-" gorm:"-"` // 本次搜尋需要的層數
}

func (Space) TableName() string {
	return "space"
}

// Length 空間長度，以第一個貨架的長度為準（須先 Preload Racks）
func (s *Space) Length() int {
	if len(s.Racks) == 0 {
		return 0
	}
	return s.Racks[0].Length
}

// Width 空間寬度，即固定的貨架寬度
func (s *Space) Width() int {
	if len(s.Racks) == 0 {
		return 0
	}
	return ShelfWidth
}

// TotalShelves 此空間可容納的標準貨架層數上限
func (s *Space) TotalShelves() int {
	return s.Length() * s.Height / (ShelfLength * ShelfHeight)
}

type SpaceResponse struct {
	SpaceID               int                `json:"space_id"`
	RenterID              int                `json:"renter_id"`
	EnvironmentConditions string             `json:"environment_conditions"`
	Height                int                `json:"height"`
	Status                string             `json:"status"`
	PricePerDay           float64            `json:"price_per_day"`
	Description           string             `json:"description"`
	Location              LocationResponse   `json:"location"`
	AvailableShelves      int                `json:"available_shelves,omitempty"`
	NumShelves            int                `json:"num_shelves,omitempty"`
}

func (s *Space) ToResponse() SpaceResponse {
	return SpaceResponse{
		SpaceID:               s.SpaceID,
		RenterID:              s.RenterID,
		EnvironmentConditions: s.EnvironmentConditions,
		Height:                s.Height,
		Status:                s.Status,
		PricePerDay:           s.PricePerDay,
		Description:           s.Description,
		Location:              s.Location.ToResponse(),
		AvailableShelves:      s.AvailableShelves,
		NumShelves:            s.NumShelves,
	}
}
