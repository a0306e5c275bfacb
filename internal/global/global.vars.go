package global

import (
	"souk_commerce/config"
	"souk_commerce/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_Store_CollectionName chứa tên các collection trong MongoDB
type MongoDB_Store_CollectionName struct {
	Users         string // Tên collection cho hồ sơ người dùng (Firebase)
	Products      string // Tên collection cho sản phẩm
	Categories    string // Tên collection cho danh mục sản phẩm
	Orders        string // Tên collection cho đơn hàng
	Sections      string // Tên collection cho section trang chủ
	Configs       string // Tên collection cho cấu hình cửa hàng (singleton document)
	PaymentEvents string // Tên collection cho webhook events đã xử lý (dedup)
}

// Các biến toàn cục
var Validate *validator.Validate                                                       // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client                                                      // Phiên kết nối tới MongoDB
var ServerConfig *config.Configuration                                                 // Cấu hình của server
var MongoDB_ColNames MongoDB_Store_CollectionName = *new(MongoDB_Store_CollectionName) // Tên các collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
var RegistryDatabase = registry.NewRegistry[*mongo.Database]()      // Registry chứa các databases

func init() {
	// Gán tên collection mặc định ngay khi package được load
	MongoDB_ColNames.Users = "users"
	MongoDB_ColNames.Products = "products"
	MongoDB_ColNames.Categories = "categories"
	MongoDB_ColNames.Orders = "orders"
	MongoDB_ColNames.Sections = "sections"
	MongoDB_ColNames.Configs = "configs"
	MongoDB_ColNames.PaymentEvents = "payment_events"
}
