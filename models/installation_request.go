package models

// 安裝申請狀態
const (
	InstallationPending   = "PENDING"
	InstallationApproved  = "APPROVED"
	InstallationRejected  = "REJECTED"
	InstallationCompleted = "COMPLETED"
)

// InstallationRequest 空間上架前的安裝申請
// 轉換成 Space 後原申請記錄即刪除，是系統新增容量的唯一入口
type InstallationRequest struct {
	RequestID             int     `json:"request_id" gorm:"primaryKey;autoIncrement"`
	RenterID              int     `json:"renter_id" gorm:"index;not null"`
	LocationID            int     `json:"location_id" gorm:"index;not null"`
	EnvironmentConditions string  `json:"environment_conditions" gorm:"type:varchar(8);not null" binding:"required,oneof=AC INDOOR OUTDOOR"`
	Status                string  `json:"status" gorm:"type:varchar(10);not null;default:PENDING" binding:"omitempty,oneof=PENDING APPROVED REJECTED COMPLETED"`
	PricePerDay           float64 `json:"price_per_day" gorm:"type:decimal(4,2);default:1.00"` // 建立時自 Location 複製
	Description           string  `json:"description" gorm:"type:text"`
	NumRack               int     `json:"num_rack" gorm:"not null;default:0" binding:"omitempty,gte=0"`              // 由管理員在完成前設定
	NumShelvesPerRack     int     `json:"num_shelves_per_rack" gorm:"not null;default:0" binding:"omitempty,gte=0"` // 由管理員在完成前設定

	Renter   User     `json:"-" gorm:"foreignKey:RenterID;references:UserID"`
	Location Location `json:"-" gorm:"foreignKey:LocationID;references:LocationID"`
}

func (InstallationRequest) TableName() string {
	return "installation_request"
}

type InstallationRequestResponse struct {
	RequestID             int              `json:"request_id"`
	RenterID              int              `json:"renter_id"`
	EnvironmentConditions string           `json:"environment_conditions"`
	Status                string           `json:"status"`
	PricePerDay           float64          `json:"price_per_day"`
	Description           string           `json:"description"`
	NumRack               int              `json:"num_rack"`
	NumShelvesPerRack     int              `json:"num_shelves_per_rack"`
	TotalShelves          int              `json:"total_shelves"`
	Location              LocationResponse `json:"location"`
}

func (r *InstallationRequest) ToResponse() InstallationRequestResponse {
	return InstallationRequestResponse{
		RequestID:             r.RequestID,
		RenterID:              r.RenterID,
		EnvironmentConditions: r.EnvironmentConditions,
		Status:                r.Status,
		PricePerDay:           r.PricePerDay,
		Description:           r.Description,
		NumRack:               r.NumRack,
		NumShelvesPerRack:     r.NumShelvesPerRack,
		TotalShelves:          r.NumRack * r.NumShelvesPerRack,
		Location:              r.Location.ToResponse(),
	}
}
