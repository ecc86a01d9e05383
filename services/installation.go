package services

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/AaronDDavis/project-storage/database"
	"github.com/AaronDDavis/project-storage/models"
	"gorm.io/gorm"
)

// IsValidInstallationStatus 檢查狀態碼是否為已定義的安裝申請狀態
func IsValidInstallationStatus(status string) bool {
	switch status {
	case models.InstallationPending, models.InstallationApproved, models.InstallationRejected, models.InstallationCompleted:
		return true
	}
	return false
}

// IsValidInstallationTransition 安裝申請狀態轉換規則
// 注意：未明列的組合一律視為允許，沿用既有行為；設定
// INSTALLATION_STRICT_TRANSITIONS=true 時改為嚴格模式，只允許明列的組合
func IsValidInstallationTransition(oldStatus, newStatus string) bool {
	if oldStatus == models.InstallationPending &&
		(newStatus == models.InstallationApproved || newStatus == models.InstallationRejected) {
		return true
	}
	if oldStatus == models.InstallationApproved && newStatus == models.InstallationCompleted {
		return true
	}
	return !strictInstallationTransitions()
}

func strictInstallationTransitions() bool {
	return strings.EqualFold(os.Getenv("INSTALLATION_STRICT_TRANSITIONS"), "true")
}

// GetTotalShelves 此申請設定的貨架總層數
func GetTotalShelves(request *models.InstallationRequest) int {
	return request.NumRack * request.NumShelvesPerRack
}

// TransitionInstallationRequest 更新安裝申請狀態
// 目標為 COMPLETED 時，層架與每架層數必須皆已設定（乘積不為零）
func TransitionInstallationRequest(request *models.InstallationRequest, newStatus string) error {
	if !IsValidInstallationStatus(newStatus) {
		return fmt.Errorf("%w: %s", ErrInvalidInstallationState, newStatus)
	}

	if !IsValidInstallationTransition(request.Status, newStatus) {
		return fmt.Errorf("%w: %s -> %s", ErrInstallationTransition, request.Status, newStatus)
	}

	if newStatus == models.InstallationCompleted && GetTotalShelves(request) == 0 {
		return fmt.Errorf("%w: request %d", ErrIncompleteInstallationRequest, request.RequestID)
	}

	if err := database.DB.Model(request).Update("status", newStatus).Error; err != nil {
		log.Printf("Failed to update status for installation request %d: %v", request.RequestID, err)
		return fmt.Errorf("failed to update status for installation request %d: %w", request.RequestID, err)
	}

	log.Printf("Successfully transitioned installation request %d to %s", request.RequestID, newStatus)
	return nil
}

// GetInstallationRequests 查詢安裝申請，可依申請人過濾
func GetInstallationRequests(renterID int) ([]models.InstallationRequest, error) {
	query := database.DB.Preload("Location").Order("request_id")
	if renterID > 0 {
		query = query.Where("renter_id = ?", renterID)
	}

	var requests []models.InstallationRequest
	if err := query.Find(&requests).Error; err != nil {
		log.Printf("Failed to query installation requests: %v", err)
		return nil, fmt.Errorf("failed to query installation requests: %w", err)
	}
	return requests, nil
}

// GetInstallationRequestByID 查詢特定安裝申請，查無資料時回傳 nil
func GetInstallationRequestByID(id int) (*models.InstallationRequest, error) {
	var request models.InstallationRequest
	if err := database.DB.Preload("Location").First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Installation request with ID %d not found", id)
			return nil, nil
		}
		log.Printf("Failed to get installation request by ID %d: %v", id, err)
		return nil, fmt.Errorf("failed to get installation request by ID %d: %w", id, err)
	}
	return &request, nil
}

// UpdateInstallationRequestCounts 管理員在完成申請前設定層架數與每架層數
func UpdateInstallationRequestCounts(request *models.InstallationRequest, numRack, numShelvesPerRack int) error {
	if numRack < 0 || numShelvesPerRack < 0 {
		return fmt.Errorf("num_rack and num_shelves_per_rack must not be negative")
	}

	if err := database.DB.Model(request).Updates(map[string]interface{}{
		"num_rack":             numRack,
		"num_shelves_per_rack": numShelvesPerRack,
	}).Error; err != nil {
		log.Printf("Failed to update counts for installation request %d: %v", request.RequestID, err)
		return fmt.Errorf("failed to update counts for installation request %d: %w", request.RequestID, err)
	}

	request.NumRack = numRack
	request.NumShelvesPerRack = numShelvesPerRack
	log.Printf("Successfully updated installation request %d: num_rack=%d, num_shelves_per_rack=%d",
		request.RequestID, numRack, numShelvesPerRack)
	return nil
}

// ConvertToSpace 將已完成（COMPLETED）的安裝申請轉換成正式空間
// 交易內完成：建立空間（直接核准，高度 = 固定貨架高度 x 層架數）、
// 批次產生層架與貨架，最後刪除原申請記錄
func ConvertToSpace(request *models.InstallationRequest) (*models.Space, error) {
	if request.Status != models.InstallationCompleted {
		return nil, fmt.Errorf("%w: current status %s", ErrInstallationConversion, request.Status)
	}

	space := models.Space{
		RenterID:              request.RenterID,
		LocationID:            request.LocationID,
		EnvironmentConditions: request.EnvironmentConditions,
		Height:                models.ShelfHeight * request.NumRack,
		Status:                models.SpaceApproved,
		PricePerDay:           request.PricePerDay,
		Description:           request.Description,
	}

	tx := database.DB.Begin()

	if err := tx.Create(&space).Error; err != nil {
		tx.Rollback()
		log.Printf("Failed to create space from installation request %d: %v", request.RequestID, err)
		return nil, fmt.Errorf("failed to create space from installation request %d: %w", request.RequestID, err)
	}

	if err := CreateShelves(tx, &space, request.NumRack, request.NumShelvesPerRack); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Delete(request).Error; err != nil {
		tx.Rollback()
		log.Printf("Failed to delete installation request %d after conversion: %v", request.RequestID, err)
		return nil, fmt.Errorf("failed to delete installation request %d: %w", request.RequestID, err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit conversion of installation request %d: %w", request.RequestID, err)
	}

	log.Printf("Successfully converted installation request %d into space %d", request.RequestID, space.SpaceID)
	return &space, nil
}
