package routes

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/AaronDDavis/project-storage/handlers"
	"github.com/AaronDDavis/project-storage/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware 驗證 JWT token，並提取 user_id 和 role
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  false,
				"message": "缺少 Authorization 標頭",
				"error":   "Authorization header is required",
				"code":    "ERR_NO_AUTH_HEADER",
			})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  false,
				"message": "無效的 Authorization 格式",
				"error":   "Authorization header must be in the format 'Bearer <token>'",
				"code":    "ERR_INVALID_AUTH_FORMAT",
			})
			c.Abort()
			return
		}

		tokenString := parts[1]

		// 明確要求檢查 exp 字段
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return utils.JWTSecret, nil
		}, jwt.WithExpirationRequired())

		if err != nil {
			log.Printf("Token parsing error: %v", err)
			if errors.Is(err, jwt.ErrTokenExpired) {
				c.JSON(http.StatusUnauthorized, gin.H{
					"status":  false,
					"message": "token 已過期",
					"error":   "Token has expired",
					"code":    "ERR_TOKEN_EXPIRED",
				})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{
					"status":  false,
					"message": "無效的 token",
					"error":   err.Error(),
					"code":    "ERR_INVALID_TOKEN",
				})
			}
			c.Abort()
			return
		}

		// 檢查 Claims 是否有效
		if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
			// 確認 user_id 字段
			userID, ok := claims["user_id"].(float64)
			if !ok {
				log.Printf("Missing or invalid user_id in token")
				c.JSON(http.StatusUnauthorized, gin.H{
					"status":  false,
					"message": "無效的使用者 ID",
					"error":   "Invalid user_id in token",
					"code":    "ERR_INVALID_USER_ID",
				})
				c.Abort()
				return
			}

			// 確認 role 字段
			role, ok := claims["role"].(string)
			if !ok || (role != "renter" && role != "lessee" && role != "admin") {
				log.Printf("Missing or invalid role in token: %v", role)
				c.JSON(http.StatusUnauthorized, gin.H{
					"status":  false,
					"message": "無效的角色",
					"error":   "Invalid role in token",
					"code":    "ERR_INVALID_ROLE",
				})
				c.Abort()
				return
			}

			log.Printf("Token verified for user_id: %d, role: %s, exp: %v, current_time: %v",
				int(userID), role, claims["exp"], time.Now().Unix())
			c.Set("user_id", int(userID))
			c.Set("role", role) // 將 role 存入上下文
		} else {
			log.Printf("Invalid token claims or token is not valid")
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  false,
				"message": "無效的 token 內容",
				"error":   "Invalid token claims or token is not valid",
				"code":    "ERR_INVALID_CLAIMS",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RoleMiddleware 檢查使用者角色是否符合要求
func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  false,
				"message": "無法獲取角色資訊",
				"error":   "Role not found in context",
				"code":    "ERR_ROLE_NOT_FOUND",
			})
			c.Abort()
			return
		}

		roleStr, ok := role.(string)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  false,
				"message": "無效的角色類型",
				"error":   "Invalid role type",
				"code":    "ERR_INVALID_ROLE_TYPE",
			})
			c.Abort()
			return
		}

		// 允許 admin 角色訪問所有端點
		if roleStr == "admin" {
			c.Next()
			return
		}

		allowed := false
		for _, allowedRole := range allowedRoles {
			if roleStr == allowedRole {
				allowed = true
				break
			}
		}

		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{
				"status":  false,
				"message": "權限不足",
				"error":   "Insufficient role permissions",
				"code":    "ERR_INSUFFICIENT_PERMISSIONS",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func Path(router *gin.RouterGroup) {
	// 版本控制
	v1 := router.Group("/v1")
	{
		// 測試路由
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(200, gin.H{"message": "pong"})
		})

		// 使用者路由
		users := v1.Group("/users")
		{
			// 公開路由：不需要 token 驗證
			users.POST("/register", handlers.RegisterUser) // 註冊使用者
			users.POST("/login", handlers.LoginUser)       // 登入使用者並獲取 token

			// 受保護路由：需要 token 驗證
			usersWithAuth := users.Group("")
			usersWithAuth.Use(AuthMiddleware())
			{
				// 查看個人資料：任何已認證的用戶都可以訪問
				usersWithAuth.GET("/profile", handlers.GetUserProfile)
			}
		}

		// 空間路由
		spaces := v1.Group("/spaces")
		{
			spacesWithAuth := spaces.Group("")
			spacesWithAuth.Use(AuthMiddleware())
			{
				// 搜尋可預約空間：lessee 可以訪問
				spacesWithAuth.GET("/available", RoleMiddleware("lessee"), handlers.GetAvailableSpaces)
				// 查詢所有空間：僅 admin 可以訪問
				spacesWithAuth.GET("", RoleMiddleware("admin"), handlers.ListSpaces)
				// 批次核准空間：僅 admin 可以操作
				spacesWithAuth.PUT("/approve", RoleMiddleware("admin"), handlers.ApproveSpaces)
				// 查詢特定空間（含貨架配置與預約清單）：renter 查自己的，admin 查全部
				spacesWithAuth.GET("/:id", RoleMiddleware("renter"), handlers.GetSpace)
				// 變更空間狀態：僅 admin 可以操作
				spacesWithAuth.PUT("/:id/status", RoleMiddleware("admin"), handlers.TransitionSpaceStatus)
			}
		}

		// 安裝申請路由
		installation := v1.Group("/installation-requests")
		{
			installationWithAuth := installation.Group("")
			installationWithAuth.Use(AuthMiddleware())
			{
				// 提交安裝申請：僅 renter 可以操作
				installationWithAuth.POST("", RoleMiddleware("renter"), handlers.CreateInstallationRequest)
				// 查詢安裝申請：renter 查自己的，admin 查全部
				installationWithAuth.GET("", RoleMiddleware("renter"), handlers.ListInstallationRequests)
				// 查詢特定安裝申請：renter 查自己的，admin 查全部
				installationWithAuth.GET("/:id", RoleMiddleware("renter"), handlers.GetInstallationRequest)
				// 設定層架數與每架層數：僅 admin 可以操作
				installationWithAuth.PUT("/:id", RoleMiddleware("admin"), handlers.UpdateInstallationRequest)
				// 變更申請狀態：僅 admin 可以操作
				installationWithAuth.PUT("/:id/status", RoleMiddleware("admin"), handlers.TransitionInstallationRequestStatus)
				// 轉換為正式空間：僅 admin 可以操作
				installationWithAuth.POST("/:id/convert", RoleMiddleware("admin"), handlers.ConvertInstallationRequest)
			}
		}

		// 預約路由
		bookings := v1.Group("/bookings")
		{
			bookingsWithAuth := bookings.Group("")
			bookingsWithAuth.Use(AuthMiddleware())
			{
				// 建立預約：僅 lessee 可以操作
				bookingsWithAuth.POST("", RoleMiddleware("lessee"), handlers.CreateBooking)
				// 查看自己的預約：僅 lessee 可以訪問
				bookingsWithAuth.GET("/my", RoleMiddleware("lessee"), handlers.GetMyBookings)
				// 查詢特定預約：lessee 查自己的，admin 查全部
				bookingsWithAuth.GET("/:id", RoleMiddleware("lessee"), handlers.GetBooking)
				// 取消預約：僅 lessee 可以操作
				bookingsWithAuth.PUT("/:id/cancel", RoleMiddleware("lessee"), handlers.CancelBooking)
			}
		}
	}
}
