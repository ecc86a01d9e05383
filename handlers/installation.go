package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/AaronDDavis/project-storage/database"
	"github.com/AaronDDavis/project-storage/models"
	"github.com/AaronDDavis/project-storage/services"
	"github.com/gin-gonic/gin"
)

// InstallationRequestInput 定義用於綁定申請的輸入結構體
type InstallationRequestInput struct {
	Area                  string `json:"area" binding:"required,len=3"`
	Address               string `json:"address" binding:"required,max=200"`
	EnvironmentConditions string `json:"environment_conditions" binding:"required,oneof=AC INDOOR OUTDOOR"`
	Description           string `json:"description"`
}

// CreateInstallationRequest 提交安裝申請，同時建立地點並載入該地區的每日費率
func CreateInstallationRequest(c *gin.Context) {
	var input InstallationRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Printf("Invalid input data: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "無效的輸入資料", err.Error(), "ERR_INVALID_INPUT")
		return
	}

	userID, _, ok := currentUser(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "未授權", "user_id not found in token", "ERR_NO_USER_ID")
		return
	}

	if models.AreaName(input.Area) == "" {
		ErrorResponse(c, http.StatusBadRequest, "無效的地區代碼", "unknown area code: "+input.Area, "ERR_INVALID_AREA")
		return
	}

	// 先建立地點，價格只在此時載入一次
	location := models.Location{
		Area:    input.Area,
		Address: input.Address,
	}
	location.LoadPrice()
	if err := database.DB.Create(&location).Error; err != nil {
		log.Printf("Failed to create location: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "建立地點失敗", err.Error(), "ERR_CREATE_FAILED")
		return
	}

	request := models.InstallationRequest{
		RenterID:              userID,
		LocationID:            location.LocationID,
		EnvironmentConditions: input.EnvironmentConditions,
		Status:                models.InstallationPending,
		PricePerDay:           location.PricePerDay,
		Description:           input.Description,
	}
	if err := database.DB.Create(&request).Error; err != nil {
		log.Printf("Failed to create installation request: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "建立安裝申請失敗", err.Error(), "ERR_CREATE_FAILED")
		return
	}

	request.Location = location
	SuccessResponse(c, http.StatusCreated, "安裝申請建立成功", request.ToResponse())
}

// ListInstallationRequests 查詢安裝申請：renter 只看自己的，admin 看全部
func ListInstallationRequests(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "未授權", "user_id not found in token", "ERR_NO_USER_ID")
		return
	}

	renterID := userID
	if role == "admin" {
		renterID = 0
	}

	requests, err := services.GetInstallationRequests(renterID)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, "查詢安裝申請失敗", err.Error(), "ERR_QUERY_FAILED")
		return
	}

	responses := make([]models.InstallationRequestResponse, 0, len(requests))
	for i := range requests {
		responses = append(responses, requests[i].ToResponse())
	}

	SuccessResponse(c, http.StatusOK, "查詢成功", responses)
}

// GetInstallationRequest 查詢特定安裝申請
func GetInstallationRequest(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "無效的申請 ID", err.Error(), "ERR_INVALID_ID")
		return
	}

	userID, role, ok := currentUser(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "未授權", "user_id not found in token", "ERR_NO_USER_ID")
		return
	}

	request, err := services.GetInstallationRequestByID(id)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, "查詢安裝申請失敗", err.Error(), "ERR_QUERY_FAILED")
		return
	}
	if request == nil {
		ErrorResponse(c, http.StatusNotFound, "安裝申請不存在", "installation request not found", "ERR_REQUEST_NOT_FOUND")
		return
	}

	if role != "admin" && request.RenterID != userID {
		ErrorResponse(c, http.StatusForbidden, "無權限", "you can only view your own installation request", "ERR_INSUFFICIENT_PERMISSIONS")
		return
	}

	SuccessResponse(c, http.StatusOK, "查詢成功", request.ToResponse())
}

// UpdateInstallationRequest 管理員設定層架數與每架層數（完成申請前必須設定）
func UpdateInstallationRequest(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "無效的申請 ID", err.Error(), "ERR_INVALID_ID")
		return
	}

	var input struct {
		NumRack           int `json:"num_rack" binding:"gte=0"`
		NumShelvesPerRack int `json:"num_shelves_per_rack" binding:"gte=0"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "無效的輸入資料", err.Error(), "ERR_INVALID_INPUT")
		return
	}

	request, err := services.GetInstallationRequestByID(id)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, "查詢安裝申請失敗", err.Error(), "ERR_QUERY_FAILED")
		return
	}
	if request == nil {
		ErrorResponse(c, http.StatusNotFound, "安裝申請不存在", "installation request not found", "ERR_REQUEST_NOT_FOUND")
		return
	}

	if err := services.UpdateInstallationRequestCounts(request, input.NumRack, input.NumShelvesPerRack); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "更新安裝申請失敗", err.Error(), "ERR_UPDATE_FAILED")
		return
	}

	SuccessResponse(c, http.StatusOK, "安裝申請更新成功", request.ToResponse())
}

// TransitionInstallationRequestStatus 管理員變更安裝申請狀態
func TransitionInstallationRequestStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "無效的申請 ID", err.Error(), "ERR_INVALID_ID")
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "無效的輸入資料", "請提供目標狀態", "ERR_INVALID_INPUT")
		return
	}

	request, err := services.GetInstallationRequestByID(id)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, "查詢安裝申請失敗", err.Error(), "ERR_QUERY_FAILED")
		return
	}
	if request == nil {
		ErrorResponse(c, http.StatusNotFound, "安裝申請不存在", "installation request not found", "ERR_REQUEST_NOT_FOUND")
		return
	}

	if err := services.TransitionInstallationRequest(request, input.Status); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInstallationState):
			ErrorResponse(c, http.StatusBadRequest, "無效的狀態碼", err.Error(), "ERR_INVALID_STATE")
		case errors.Is(err, services.ErrInstallationTransition):
			ErrorResponse(c, http.StatusConflict, "不允許的狀態轉換", err.Error(), "ERR_INVALID_TRANSITION")
		case errors.Is(err, services.ErrIncompleteInstallationRequest):
			ErrorResponse(c, http.StatusConflict, "層架數與每架層數必須先設定", err.Error(), "ERR_INCOMPLETE_REQUEST")
		default:
			ErrorResponse(c, http.StatusInternalServerError, "更新申請狀態失敗", err.Error(), "ERR_UPDATE_FAILED")
		}
		return
	}

	SuccessResponse(c, http.StatusOK, "申請狀態更新成功", request.ToResponse())
}

// ConvertInstallationRequest 管理員將已完成的安裝申請轉換成正式空間
func ConvertInstallationRequest(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "無效的申請 ID", err.Error(), "ERR_INVALID_ID")
		return
	}

	request, err := services.GetInstallationRequestByID(id)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, "查詢安裝申請失敗", err.Error(), "ERR_QUERY_FAILED")
		return
	}
	if request == nil {
		ErrorResponse(c, http.StatusNotFound, "安裝申請不存在", "installation request not found", "ERR_REQUEST_NOT_FOUND")
		return
	}

	space, err := services.ConvertToSpace(request)
	if err != nil {
		if errors.Is(err, services.ErrInstallationConversion) {
			ErrorResponse(c, http.StatusConflict, "申請尚未完成，無法轉換", err.Error(), "ERR_NOT_COMPLETED")
			return
		}
		ErrorResponse(c, http.StatusInternalServerError, "轉換安裝申請失敗", err.Error(), "ERR_CONVERT_FAILED")
		return
	}

	SuccessResponse(c, http.StatusCreated, "安裝申請轉換成功", space.ToResponse())
}
