package models

import (
	catalogmodels "souk_commerce/internal/api/catalog/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Loại section trên landing page
const (
	SectionTypeHero         = "hero"         // Banner đầu trang
	SectionTypeProductGrid  = "productGrid"  // Lưới sản phẩm chọn tay
	SectionTypeCategoryList = "categoryList" // Danh sách danh mục
	SectionTypeBanner       = "banner"       // Banner quảng bá giữa trang
	SectionTypeTestimonial  = "testimonial"  // Đánh giá của khách
)

// SectionCTA nút kêu gọi hành động trong section
type SectionCTA struct {
	Label catalogmodels.LocalizedText `json:"label" bson:"label"`
	URL   string                      `json:"url" bson:"url"`
}

// SectionData nội dung hiển thị của một section
type SectionData struct {
	Title      catalogmodels.LocalizedText `json:"title" bson:"title"`
	Subtitle   catalogmodels.LocalizedText `json:"subtitle,omitempty" bson:"subtitle,omitempty"`
	ProductIDs []primitive.ObjectID        `json:"productIds,omitempty" bson:"productIds,omitempty"` // Cho section kiểu productGrid
	CTA        *SectionCTA                 `json:"cta,omitempty" bson:"cta,omitempty"`
	Image      string                      `json:"image,omitempty" bson:"image,omitempty"`
}

// Section là một khối nội dung trên landing page, admin sắp xếp qua trường order
type Section struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Type      string             `json:"type" bson:"type" index:"single:1"`
	Data      SectionData        `json:"data" bson:"data"`
	IsActive  bool               `json:"isActive" bson:"isActive" default:"true"`
	Order     int                `json:"order" bson:"order" index:"single:1"` // Thứ tự hiển thị tăng dần
	CreatedAt int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`
}
