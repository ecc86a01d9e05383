package models

type User struct {
	UserID   int    `json:"user_id" gorm:"primaryKey;autoIncrement"`
	Name     string `json:"name" gorm:"type:varchar(50);not null" binding:"required,max=50"`
	Phone    string `json:"phone" gorm:"type:varchar(20)" binding:"omitempty,max=20"`
	Password string `json:"password" gorm:"type:varchar(100);not null" binding:"required,min=8"`
	Email    string `json:"email" gorm:"type:varchar(100);not null" binding:"required,email"`
	Role     string `json:"role" gorm:"type:varchar(10);not null" binding:"required,oneof=renter lessee"` // renter 提供空間 / lessee 承租貨架
	NricFin  string `json:"nric_fin" gorm:"type:varchar(100)"`                                            // AES 加密後儲存

	Spaces               []Space               `json:"-" gorm:"foreignKey:RenterID;references:UserID"`
	InstallationRequests []InstallationRequest `json:"-" gorm:"foreignKey:RenterID;references:UserID"`
	Bookings             []Booking             `json:"-" gorm:"foreignKey:LesseeID;references:UserID"`
}

func (User) TableName() string {
	return "user"
}

// IsRenter 是否為空間擁有者
func (u *User) IsRenter() bool {
	return u.Role == "renter"
}

// IsLessee 是否為承租人
func (u *User) IsLessee() bool {
	return u.Role == "lessee"
}

type SimpleUserResponse struct {
	UserID int    `json:"user_id"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

func (u *User) ToSimpleResponse() SimpleUserResponse {
	return SimpleUserResponse{
		UserID: u.UserID,
		Name:   u.Name,
		Phone:  u.Phone,
		Email:  u.Email,
		Role:   u.Role,
	}
}
