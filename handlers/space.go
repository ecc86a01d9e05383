package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/AaronDDavis/project-storage/models"
	"github.com/AaronDDavis/project-storage/services"
	"github.com/gin-gonic/gin"
)

// GetAvailableSpaces 依物品尺寸與地區搜尋可預約的空間
func GetAvailableSpaces(c *gin.Context) {
	searchLocation := c.Query("location")

	searchLength, err := strconv.Atoi(c.DefaultQuery("length", "1"))
	if err != nil || searchLength <= 0 {
		ErrorResponse(c, http.StatusBadRequest, "無效的物品長度", "length must be a positive integer", "ERR_INVALID_DIMENSION")
		return
	}
	searchWidth, err := strconv.Atoi(c.DefaultQuery("width", "1"))
	if err != nil || searchWidth <= 0 {
		ErrorResponse(c, http.StatusBadRequest, "無效的物品寬度", "width must be a positive integer", "ERR_INVALID_DIMENSION")
		return
	}
	searchHeight, err := strconv.Atoi(c.DefaultQuery("height", "1"))
	if err != nil || searchHeight <= 0 {
		ErrorResponse(c, http.StatusBadRequest, "無效的物品高度", "height must be a positive integer", "ERR_INVALID_DIMENSION")
		return
	}

	spaces, err := services.GetAvailableSpaces(searchLocation, searchLength, searchWidth, searchHeight)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, "查詢可用空間失敗", err.Error(), "ERR_QUERY_FAILED")
		return
	}

	responses := make([]models.SpaceResponse, 0, len(spaces))
	for i := range spaces {
		responses = append(responses, spaces[i].ToResponse())
	}

	SuccessResponse(c, http.StatusOK, "查詢成功", responses)
}

// GetSpace 查詢特定空間，含貨架配置圖與預約清單（擁有者或管理員）
func GetSpace(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "無效的空間 ID", err.Error(), "ERR_INVALID_ID")
		return
	}

	userID, role, ok := currentUser(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "未授權", "user_id not found in token", "ERR_NO_USER_ID")
		return
	}

	space, err := services.GetSpaceByID(id)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, "查詢空間失敗", err.Error(), "ERR_QUERY_FAILED")
		return
	}
	if space == nil {
		ErrorResponse(c, http.StatusNotFound, "空間不存在", "space not found", "ERR_SPACE_NOT_FOUND")
		return
	}

	// 權限檢查：admin 可以查看任何空間，renter 只能查看自己的空間
	if role != "admin" && space.RenterID != userID {
		log.Printf("Permission denied: user %d (role: %s) is not the owner of space %d", userID, role, space.SpaceID)
		ErrorResponse(c, http.StatusForbidden, "無權限", "you can only view your own space", "ERR_INSUFFICIENT_PERMISSIONS")
		return
	}

	activeBookings, err := services.GetBookings(space.SpaceID, models.BookingActive)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, "查詢預約失敗", err.Error(), "ERR_QUERY_FAILED")
		return
	}
	upcomingBookings, err := services.GetBookings(space.SpaceID, models.BookingBooked)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, "查詢預約失敗", err.Error(), "ERR_QUERY_FAILED")
		return
	}
	pastBookings, err := services.GetBookings(space.SpaceID, models.BookingPast)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, "查詢預約失敗", err.Error(), "ERR_QUERY_FAILED")
		return
	}

	racks := make([]models.RackResponse, 0, len(space.Racks))
	for i := range space.Racks {
		racks = append(racks, space.Racks[i].ToResponse())
	}

	SuccessResponse(c, http.StatusOK, "查詢成功", gin.H{
		"space":             space.ToResponse(),
		"racks":             racks,
		"shelf_layout":      services.GetShelfLayout(space),
		"total_shelves":     space.TotalShelves(),
		"shelf_length":      models.ShelfLength,
		"shelf_width":       models.ShelfWidth,
		"shelf_height":      models.ShelfHeight,
		"active_bookings":   toBookingResponses(activeBookings),
		"upcoming_bookings": toBookingResponses(upcomingBookings),
		"past_bookings":     toBookingResponses(pastBookings),
	})
}

// ListSpaces 管理員查詢所有空間，可依狀態過濾
func ListSpaces(c *gin.Context) {
	status := c.Query("status")

	spaces, err := services.GetSpaces(0, status)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, "查詢空間失敗", err.Error(), "ERR_QUERY_FAILED")
		return
	}

	responses := make([]models.SpaceResponse, 0, len(spaces))
	for i := range spaces {
		responses = append(responses, spaces[i].ToResponse())
	}

	SuccessResponse(c, http.StatusOK, "查詢成功", responses)
}

// TransitionSpaceStatus 管理員變更空間審核狀態
func TransitionSpaceStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "無效的空間 ID", err.Error(), "ERR_INVALID_ID")
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "無效的輸入資料", "請提供目標狀態", "ERR_INVALID_INPUT")
		return
	}

	space, err := services.GetSpaceByID(id)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, "查詢空間失敗", err.Error(), "ERR_QUERY_FAILED")
		return
	}
	if space == nil {
		ErrorResponse(c, http.StatusNotFound, "空間不存在", "space not found", "ERR_SPACE_NOT_FOUND")
		return
	}

	if err := services.TransitionSpace(space, input.Status); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidSpaceState):
			ErrorResponse(c, http.StatusBadRequest, "無效的狀態碼", err.Error(), "ERR_INVALID_STATE")
		case errors.Is(err, services.ErrSpaceTransition):
			ErrorResponse(c, http.StatusConflict, "不允許的狀態轉換", err.Error(), "ERR_INVALID_TRANSITION")
		default:
			ErrorResponse(c, http.StatusInternalServerError, "更新空間狀態失敗", err.Error(), "ERR_UPDATE_FAILED")
		}
		return
	}

	SuccessResponse(c, http.StatusOK, "空間狀態更新成功", space.ToResponse())
}

// ApproveSpaces 管理員批次核准空間
func ApproveSpaces(c *gin.Context) {
	var input struct {
		SpaceIDs []int `json:"space_ids" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "無效的輸入資料", "請提供空間 ID 清單", "ERR_INVALID_INPUT")
		return
	}

	approved, err := services.ApproveSpaces(input.SpaceIDs)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, "批次核准失敗", err.Error(), "ERR_UPDATE_FAILED")
		return
	}

	SuccessResponse(c, http.StatusOK, "批次核准成功", gin.H{"approved": approved})
}

func toBookingResponses(bookings []models.Booking) []models.BookingResponse {
	responses := make([]models.BookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, bookings[i].ToResponse())
	}
	return responses
}
