package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration chứa thông tin tĩnh cần thiết để chạy ứng dụng.
// Bao gồm kết nối cơ sở dữ liệu, object storage, Stripe, Firebase và revalidation.
type Configuration struct {
	InitMode bool   `env:"INITMODE" envDefault:"false"` // Chế độ khởi tạo dữ liệu mặc định
	Address  string `env:"ADDRESS" envDefault:"8080"`   // Cổng server

	// MongoDB
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required"` // URL kết nối cơ sở dữ liệu
	MongoDB_DBName        string `env:"MONGODB_DBNAME,required"`         // Tên cơ sở dữ liệu chính

	// CORS
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`               // Các origins được phép (phân cách bởi dấu phẩy, * = tất cả)
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"` // Cho phép gửi credentials

	// Rate limit
	RateLimit_Max     int  `env:"RATE_LIMIT_MAX" envDefault:"100"`      // Số request tối đa trong window (0 = disable)
	RateLimit_Window  int  `env:"RATE_LIMIT_WINDOW" envDefault:"60"`    // Thời gian window (giây)
	RateLimit_Enabled bool `env:"RATE_LIMIT_ENABLED" envDefault:"true"` // Bật/tắt rate limiting

	// Firebase (xác thực admin + user)
	FirebaseProjectID       string `env:"FIREBASE_PROJECT_ID"`       // Firebase Project ID
	FirebaseCredentialsPath string `env:"FIREBASE_CREDENTIALS_PATH"` // Đường dẫn đến service account JSON
	FirebaseAdminUID        string `env:"FIREBASE_ADMIN_UID"`        // Firebase UID của admin đầu tiên (tự gán isAdmin trong init)

	// Stripe (thanh toán thẻ)
	StripeSecretKey     string `env:"STRIPE_SECRET_KEY"`               // Secret key gọi API Stripe
	StripeWebhookSecret string `env:"STRIPE_WEBHOOK_SECRET"`           // Signing secret để verify webhook
	StoreCurrency       string `env:"STORE_CURRENCY" envDefault:"mad"` // Mã tiền tệ của cửa hàng (ISO, chữ thường)

	// Object storage (ảnh sản phẩm/danh mục/section)
	StorageEndpoint  string `env:"STORAGE_ENDPOINT"`                  // Endpoint S3-compatible
	StorageAccessKey string `env:"STORAGE_ACCESS_KEY"`                // Access key
	StorageSecretKey string `env:"STORAGE_SECRET_KEY"`                // Secret key
	StorageBucket    string `env:"STORAGE_BUCKET" envDefault:"souk"`  // Tên bucket
	StoragePublicURL string `env:"STORAGE_PUBLIC_URL"`                // Base URL công khai của bucket
	StorageUseSSL    bool   `env:"STORAGE_USE_SSL" envDefault:"true"` // Dùng HTTPS khi gọi storage

	// Revalidation (frontend static regeneration)
	RevalidateSecret string `env:"REVALIDATE_SECRET"`                               // Shared secret cho các endpoint revalidate
	FrontendURL      string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"` // URL frontend nhận lệnh revalidate

	// TLS/HTTPS
	EnableTLS   bool   `env:"ENABLE_TLS" envDefault:"false"` // Bật HTTPS
	TLSCertFile string `env:"TLS_CERT_FILE"`                 // Đường dẫn đến file certificate
	TLSKeyFile  string `env:"TLS_KEY_FILE"`                  // Đường dẫn đến file private key
}

// getEnvPath trả về đường dẫn đến file env dựa trên môi trường
func getEnvPath() string {
	// Mặc định sử dụng môi trường development
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	currentDir, err := os.Getwd()
	if err != nil {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể lấy được thư mục hiện tại: %v\n", err)
		return ""
	}

	// Tìm thư mục config/env bằng cách đi lên từ thư mục hiện tại
	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(envDir, fmt.Sprintf("%s.env", env))
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig sẽ đọc dữ liệu cấu hình từ file env của môi trường hiện tại
func NewConfig() *Configuration {
	envPath := getEnvPath()
	if envPath == "" {
		fmt.Printf("Không tìm thấy thư mục config/env\n")
		return nil
	}

	if err := godotenv.Load(envPath); err != nil {
		fmt.Printf("Không thể load file env tại %s: %v\n", envPath, err)
		return nil
	}

	cfg := Configuration{}
	if err := env.Parse(&cfg); err != nil {
		fmt.Printf("Lỗi khi parse config: %+v\n", err)
		return nil
	}

	return &cfg
}
