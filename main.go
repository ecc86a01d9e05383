package main

import (
	"log"
	"os"
	"time"

	"github.com/AaronDDavis/project-storage/database"
	"github.com/AaronDDavis/project-storage/models"
	"github.com/AaronDDavis/project-storage/routes"
	"github.com/AaronDDavis/project-storage/services"
	"github.com/AaronDDavis/project-storage/utils"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

func main() {
	// 載入 .env 檔案
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using default environment variables: %v", err)
	}

	// 調用 AES_KEY 是否加載成功
	if err := utils.InitCrypto(); err != nil {
		log.Fatalf("Failed to initialize crypto: %v", err)
	}
	log.Println("Crypto initialized successfully")

	// 初始化 JWTSecret
	utils.InitJWTSecret()

	// 初始化資料庫
	database.InitDB()

	// 執行資料庫遷移
	database.DB.AutoMigrate(
		&models.User{},
		&models.Location{},
		&models.Space{},
		&models.Rack{},
		&models.Shelf{},
		&models.InstallationRequest{},
		&models.Booking{},
	)
	log.Println("Database migration completed")

	// 確保預設管理員存在
	ensureAdminExists()

	// 設置 Gin 模式
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "" {
		ginMode = gin.ReleaseMode
	}
	gin.SetMode(ginMode)
	log.Printf("Gin mode set to %s", ginMode)

	// 初始化 Gin 路由器
	r := gin.Default()

	// 創建一個 API 路由組
	api := r.Group("/api")
	{
		routes.Path(api)
	}

	// 啟動定時任務
	c := cron.New()

	// 每日凌晨重新計算所有預約狀態並同步貨架佔用
	_, err := c.AddFunc("0 0 * * *", func() {
		log.Println("Refreshing booking statuses...")
		if err := services.RefreshAllBookingStatuses(time.Now()); err != nil {
			log.Printf("Failed to refresh booking statuses: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Failed to schedule booking status refresh cron job: %v", err)
	}

	c.Start()
	log.Println("Cron jobs started")

	// 啟動伺服器
	log.Println("Starting server on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// ensureAdminExists 檢查並創建預設管理員
func ensureAdminExists() {
	var admin models.User
	// 檢查是否已經有 admin 角色
	if err := database.DB.Where("role = ?", "admin").First(&admin).Error; err == nil {
		log.Printf("Admin already exists: email=%s", admin.Email)
		return
	}

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping default admin creation")
		return
	}

	// 哈希密碼
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	admin = models.User{
		Name:     "admin",
		Email:    email,
		Password: hashedPassword,
		Role:     "admin",
	}

	// 插入資料庫
	if err := database.DB.Create(&admin).Error; err != nil {
		log.Fatalf("Failed to create default admin: %v", err)
	}

	log.Printf("Default admin created: email=%s", admin.Email)
}
