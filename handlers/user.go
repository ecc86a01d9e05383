package handlers

import (
	"log"
	"net/http"
	"regexp"

	"github.com/AaronDDavis/project-storage/models"
	"github.com/AaronDDavis/project-storage/services"
	"github.com/AaronDDavis/project-storage/utils"
	"github.com/gin-gonic/gin"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// RegisterUser 註冊使用者
func RegisterUser(c *gin.Context) {
	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		log.Printf("Invalid input data: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "無效的輸入資料", err.Error(), "ERR_INVALID_INPUT")
		return
	}

	if !emailRegex.MatchString(user.Email) {
		ErrorResponse(c, http.StatusBadRequest, "請提供有效的電子郵件地址", "invalid email format", "ERR_INVALID_EMAIL")
		return
	}

	if err := services.RegisterUser(&user); err != nil {
		log.Printf("Failed to register user: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "註冊失敗", err.Error(), "ERR_REGISTER_FAILED")
		return
	}

	SuccessResponse(c, http.StatusCreated, "註冊成功", user.ToSimpleResponse())
}

// LoginUser 登入使用者並簽發 token
func LoginUser(c *gin.Context) {
	var loginData struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&loginData); err != nil {
		log.Printf("Invalid input data: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "無效的輸入資料", "請提供電子郵件和密碼", "ERR_INVALID_INPUT")
		return
	}

	// 驗證密碼長度
	if len(loginData.Password) < 8 {
		ErrorResponse(c, http.StatusBadRequest, "密碼格式錯誤", "password must be at least 8 characters", "ERR_INVALID_PASSWORD")
		return
	}

	user, err := services.LoginUser(loginData.Email, loginData.Password)
	if err != nil {
		log.Printf("Login failed for email %s: %v", loginData.Email, err)
		ErrorResponse(c, http.StatusUnauthorized, "登入失敗，檢查電子郵件或密碼", err.Error(), "ERR_LOGIN_FAILED")
		return
	}

	token, err := utils.GenerateToken(user.UserID, user.Role)
	if err != nil {
		log.Printf("Failed to generate token for user %d: %v", user.UserID, err)
		ErrorResponse(c, http.StatusInternalServerError, "無法簽發 token", err.Error(), "ERR_TOKEN_GENERATION")
		return
	}

	SuccessResponse(c, http.StatusOK, "登入成功", gin.H{
		"token": token,
		"user":  user.ToSimpleResponse(),
	})
}

// GetUserProfile 查看個人資料
func GetUserProfile(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "未授權", "user_id not found in token", "ERR_NO_USER_ID")
		return
	}

	user, err := services.GetUserByID(userID)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, "查詢使用者失敗", err.Error(), "ERR_QUERY_FAILED")
		return
	}
	if user == nil {
		ErrorResponse(c, http.StatusNotFound, "使用者不存在", "user not found", "ERR_USER_NOT_FOUND")
		return
	}

	SuccessResponse(c, http.StatusOK, "查詢成功", user.ToSimpleResponse())
}
