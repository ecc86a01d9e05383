package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/AaronDDavis/project-storage/models"
	"github.com/AaronDDavis/project-storage/services"
	"github.com/gin-gonic/gin"
)

// BookingInput 定義用於綁定預約的輸入結構體
type BookingInput struct {
	SpaceID    int    `json:"space_id" binding:"required"`
	NumShelves int    `json:"num_shelves" binding:"required,gte=1"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
}

// CreateBooking 承租人建立預約：自動挑選層架並計算總價
func CreateBooking(c *gin.Context) {
	var input BookingInput
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

	startDate, err := time.Parse("2006-01-02", input.StartDate)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "無效的開始日期", "start_date must be in YYYY-MM-DD format", "ERR_INVALID_DATE")
		return
	}
	endDate, err := time.Parse("2006-01-02", input.EndDate)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "無效的結束日期", "end_date must be in YYYY-MM-DD format", "ERR_INVALID_DATE")
		return
	}
	if endDate.Before(startDate) {
		ErrorResponse(c, http.StatusBadRequest, "結束日期不可早於開始日期", "end_date is before start_date", "ERR_INVALID_DATE_RANGE")
		return
	}

	space, err := services.GetSpaceByID(input.SpaceID)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, "查詢空間失敗", err.Error(), "ERR_QUERY_FAILED")
		return
	}
	if space == nil {
		ErrorResponse(c, http.StatusNotFound, "空間不存在", "space not found", "ERR_SPACE_NOT_FOUND")
		return
	}
	if space.Status != models.SpaceApproved {
		ErrorResponse(c, http.StatusConflict, "空間尚未開放預約", "space is not approved", "ERR_SPACE_NOT_APPROVED")
		return
	}

	booking, err := services.CreateBooking(space, userID, input.NumShelves, startDate, endDate)
	if err != nil {
		if errors.Is(err, services.ErrNoRackAvailable) {
			ErrorResponse(c, http.StatusConflict, "沒有足夠的可用層架", err.Error(), "ERR_NO_RACK_AVAILABLE")
			return
		}
		ErrorResponse(c, http.StatusInternalServerError, "建立預約失敗", err.Error(), "ERR_CREATE_FAILED")
		return
	}

	SuccessResponse(c, http.StatusCreated, "預約建立成功", booking.ToResponse())
}

// GetMyBookings 承租人查看自己的預約；查詢前先重算狀態，確保回傳為最新
func GetMyBookings(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "未授權", "user_id not found in token", "ERR_NO_USER_ID")
		return
	}

	if err := services.RefreshLesseeBookingStatuses(userID, time.Now()); err != nil {
		ErrorResponse(c, http.StatusInternalServerError, "更新預約狀態失敗", err.Error(), "ERR_UPDATE_FAILED")
		return
	}

	bookings, err := services.GetLesseeBookings(userID)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, "查詢預約失敗", err.Error(), "ERR_QUERY_FAILED")
		return
	}

	SuccessResponse(c, http.StatusOK, "查詢成功", toBookingResponses(bookings))
}

// GetBooking 查詢特定預約的詳細資訊（本人或管理員）
func GetBooking(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "無效的預約 ID", err.Error(), "ERR_INVALID_ID")
		return
	}

	userID, role, ok := currentUser(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "未授權", "user_id not found in token", "ERR_NO_USER_ID")
		return
	}

	booking, err := services.GetBookingByID(id)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, "查詢預約失敗", err.Error(), "ERR_QUERY_FAILED")
		return
	}
	if booking == nil {
		ErrorResponse(c, http.StatusNotFound, "預約不存在", "booking not found", "ERR_BOOKING_NOT_FOUND")
		return
	}

	if role != "admin" && booking.LesseeID != userID {
		log.Printf("Permission denied: user %d (role: %s) is not the owner of booking %d", userID, role, booking.BookingID)
		ErrorResponse(c, http.StatusForbidden, "無權限", "you can only view your own booking", "ERR_INSUFFICIENT_PERMISSIONS")
		return
	}

	shelves, err := services.GetBookingShelves(booking)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, "查詢貨架失敗", err.Error(), "ERR_QUERY_FAILED")
		return
	}

	shelfLabels := make([]string, 0, len(shelves))
	for i := range shelves {
		shelfLabels = append(shelfLabels, shelves[i].ShelfLabel)
	}

	SuccessResponse(c, http.StatusOK, "查詢成功", gin.H{
		"booking":       booking.ToResponse(),
		"total_days":    services.GetBookingTotalDays(booking),
		"price_per_day": services.GetPricePerDay(booking),
		"shelf_labels":  shelfLabels,
	})
}

// CancelBooking 承租人取消自己的預約
func CancelBooking(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "無效的預約 ID", err.Error(), "ERR_INVALID_ID")
		return
	}

	userID, _, ok := currentUser(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "未授權", "user_id not found in token", "ERR_NO_USER_ID")
		return
	}

	booking, err := services.GetBookingByID(id)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, "查詢預約失敗", err.Error(), "ERR_QUERY_FAILED")
		return
	}
	if booking == nil {
		ErrorResponse(c, http.StatusNotFound, "預約不存在", "booking not found", "ERR_BOOKING_NOT_FOUND")
		return
	}

	cancelled, err := services.CancelBooking(booking, userID)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, "取消預約失敗", err.Error(), "ERR_CANCEL_FAILED")
		return
	}
	if !cancelled {
		ErrorResponse(c, http.StatusForbidden, "無權限", "you can only cancel your own booking", "ERR_INSUFFICIENT_PERMISSIONS")
		return
	}

	SuccessResponse(c, http.StatusOK, "預約取消成功", booking.ToResponse())
}
