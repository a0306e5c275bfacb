package main

import (
	"context"

	"souk_commerce/config"
	authmodels "souk_commerce/internal/api/auth/models"
	catalogmodels "souk_commerce/internal/api/catalog/models"
	ordermodels "souk_commerce/internal/api/order/models"
	paymentmodels "souk_commerce/internal/api/payment/models"
	sitemodels "souk_commerce/internal/api/site/models"
	"souk_commerce/internal/database"
	"souk_commerce/internal/global"
	"souk_commerce/internal/storage"
	"souk_commerce/internal/utility"

	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v81"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
	initFirebase()         // Khởi tạo Firebase
	initStripe()           // Khởi tạo Stripe API key
	initStorage()          // Khởi tạo object storage
}

// Hàm khởi tạo validator (global.InitValidator đăng ký custom validators: no_xss, exists, order_status)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator") // Ghi log thông báo đã khởi tạo validator
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.ServerConfig = config.NewConfig()
	if global.ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil") // Ghi log lỗi nếu khởi tạo cấu hình thất bại
	}
	logrus.Info("Initialized server config") // Ghi log thông báo đã khởi tạo cấu hình server
}

// Hàm khởi tạo kết nối database
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err) // Ghi log lỗi nếu kết nối database thất bại
	}
	logrus.Info("Connected to MongoDB")

	// Khởi tạo db và collections nếu chưa có
	if err := database.EnsureDatabaseAndCollections(global.MongoDB_Session); err != nil {
		logrus.Fatalf("Failed to ensure database and collections: %v", err)
	}
	logrus.Info("Ensured database and collections")

	// Khởi tạo index cho các collection theo tag `index` trên model
	dbName := global.ServerConfig.MongoDB_DBName
	db := global.MongoDB_Session.Database(dbName)
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Users), authmodels.User{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Products), catalogmodels.Product{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Categories), catalogmodels.Category{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Orders), ordermodels.Order{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Sections), sitemodels.Section{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Configs), sitemodels.SiteConfig{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.PaymentEvents), paymentmodels.PaymentEvent{})
}

// initFirebase khởi tạo Firebase Admin SDK
func initFirebase() {
	cfg := global.ServerConfig

	// Firebase chỉ cần cho admin gate, thiếu config thì các route admin sẽ trả 401
	if cfg.FirebaseProjectID == "" || cfg.FirebaseCredentialsPath == "" {
		logrus.Warn("Firebase config không đầy đủ, bỏ qua khởi tạo Firebase")
		return
	}

	if err := utility.InitFirebase(cfg.FirebaseProjectID, cfg.FirebaseCredentialsPath); err != nil {
		logrus.Errorf("Failed to initialize Firebase: %v", err)
		// Không fatal, storefront công khai vẫn chạy được
		return
	}

	logrus.Info("Firebase initialized successfully")
}

// initStripe gán API key cho Stripe SDK
func initStripe() {
	cfg := global.ServerConfig
	if cfg.StripeSecretKey == "" {
		logrus.Warn("Stripe secret key chưa cấu hình, thanh toán thẻ sẽ không hoạt động")
		return
	}
	stripe.Key = cfg.StripeSecretKey
	logrus.Info("Stripe initialized successfully")
}

// initStorage khởi tạo object storage client cho ảnh sản phẩm/danh mục/section
func initStorage() {
	cfg := global.ServerConfig
	if cfg.StorageEndpoint == "" {
		logrus.Warn("Storage endpoint chưa cấu hình, upload ảnh sẽ không hoạt động")
		return
	}
	if err := storage.Init(cfg); err != nil {
		logrus.Errorf("Failed to initialize storage: %v", err)
		return
	}
	logrus.Info("Storage initialized successfully")
}
