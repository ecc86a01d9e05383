package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/AaronDDavis/project-storage/database"
	"github.com/AaronDDavis/project-storage/models"
	"github.com/AaronDDavis/project-storage/utils"
	"gorm.io/gorm"
)

// RegisterUser 註冊使用者
func RegisterUser(user *models.User) error {
	// 檢查是否有重複的 email
	var existingUser models.User
	if err := database.DB.Where("email = ?", user.Email).First(&existingUser).Error; err == nil {
		return fmt.Errorf("email %s is already in use", user.Email)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Failed to check for duplicate email: %v", err)
		return fmt.Errorf("failed to check for duplicate email: %w", err)
	}

	// 驗證角色
	if user.Role != "renter" && user.Role != "lessee" {
		return fmt.Errorf("invalid role: must be 'renter' or 'lessee'")
	}

	// 哈希密碼
	hashedPassword, err := utils.HashPassword(user.Password)
	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = hashedPassword

	// 加密 nric_fin
	if user.NricFin != "" {
		encryptedNric, err := utils.EncryptNRIC(user.NricFin)
		if err != nil {
			log.Printf("Failed to encrypt nric_fin: %v", err)
			return fmt.Errorf("failed to encrypt nric_fin: %w", err)
		}
		user.NricFin = encryptedNric
	}

	if err := database.DB.Create(user).Error; err != nil {
		log.Printf("Failed to register user: %v", err)
		return fmt.Errorf("failed to register user: %w", err)
	}

	log.Printf("Successfully registered user with ID %d", user.UserID)
	return nil
}

// LoginUser 登入使用者
func LoginUser(email, password string) (*models.User, error) {
	var user models.User
	if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("User with email %s not found", email)
			return nil, fmt.Errorf("無效的電子郵件或密碼")
		}
		log.Printf("Failed to login user: %v", err)
		return nil, fmt.Errorf("failed to login user: %w", err)
	}

	// 驗證密碼
	if !utils.CheckPasswordHash(password, user.Password) {
		log.Printf("Invalid password for email %s", email)
		return nil, fmt.Errorf("無效的電子郵件或密碼")
	}

	log.Printf("User with ID %d logged in successfully", user.UserID)
	return &user, nil
}

// GetUserByID 根據ID查詢使用者，查無資料時回傳 nil
func GetUserByID(id int) (*models.User, error) {
	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("User with ID %d not found", id)
			return nil, nil
		}
		log.Printf("Failed to get user by ID %d: %v", id, err)
		return nil, fmt.Errorf("failed to get user by ID %d: %w", id, err)
	}

	// 解密 nric_fin
	if user.NricFin != "" {
		decryptedNric, err := utils.DecryptNRIC(user.NricFin)
		if err != nil {
			log.Printf("Failed to decrypt nric_fin for user %d: %v", id, err)
			user.NricFin = ""
		} else {
			user.NricFin = decryptedNric
		}
	}

	return &user, nil
}
