package handlers

import (
	"github.com/gin-gonic/gin"
)

// APIResponse 定義統一的 API 回應結構
type APIResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"` // omitempty 表示如果為空則不顯示
	Error   string      `json:"error,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// SuccessResponse 返回成功的回應
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, APIResponse{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 返回失敗的回應
func ErrorResponse(c *gin.Context, statusCode int, message string, err string, code string) {
	c.JSON(statusCode, APIResponse{
		Status:  false,
		Message: message,
		Error:   err,
		Code:    code,
	})
}

// currentUser 從上下文取出 user_id 與 role，缺少時回傳 false（中介層應已寫入）
func currentUser(c *gin.Context) (int, string, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return 0, "", false
	}
	userIDInt, ok := userID.(int)
	if !ok {
		return 0, "", false
	}

	role, exists := c.Get("role")
	if !exists {
		return 0, "", false
	}
	roleStr, ok := role.(string)
	if !ok {
		return 0, "", false
	}

	return userIDInt, roleStr, true
}
