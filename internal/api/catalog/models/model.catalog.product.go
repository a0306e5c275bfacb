package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductVariant đại diện cho một biến thể của sản phẩm (kích cỡ, màu sắc).
// Mỗi biến thể có giá riêng, ghi đè giá gốc của sản phẩm khi được chọn.
type ProductVariant struct {
	ID      string            `json:"id" bson:"id"`                               // ID biến thể (do client sinh, duy nhất trong sản phẩm)
	Name    LocalizedText     `json:"name" bson:"name"`                           // Tên biến thể (ar/fr)
	Price   float64           `json:"price" bson:"price"`                         // Giá của biến thể (đơn vị tiền tệ chính)
	Options map[string]string `json:"options,omitempty" bson:"options,omitempty"` // Thuộc tính (size, color, ...)
}

// Product đại diện cho một sản phẩm trong catalog
type Product struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của sản phẩm
	Name        LocalizedText      `json:"name" bson:"name" index:"text"`     // Tên sản phẩm (ar/fr)
	Description LocalizedText      `json:"description,omitempty" bson:"description,omitempty"`
	Slug        string             `json:"slug" bson:"slug" index:"unique"` // Slug sinh từ tên tiếng Ả Rập

	// ===== GIÁ =====
	Price         float64  `json:"price" bson:"price"`                                     // Giá bán hiện tại
	OriginalPrice *float64 `json:"originalPrice,omitempty" bson:"originalPrice,omitempty"` // Giá gốc trước giảm (nếu có)

	// ===== HÌNH ẢNH =====
	Image     string   `json:"image,omitempty" bson:"image,omitempty"`         // Ảnh đại diện
	SubImages []string `json:"subImages,omitempty" bson:"subImages,omitempty"` // Ảnh phụ

	// ===== PHÂN LOẠI =====
	CategoryID primitive.ObjectID `json:"categoryId,omitempty" bson:"categoryId,omitempty" index:"single:1"` // Danh mục chứa sản phẩm
	Keywords   []string           `json:"keywords,omitempty" bson:"keywords,omitempty"`                      // Từ khóa tìm kiếm

	// ===== BIẾN THỂ VÀ HÀNH VI MUA =====
	Variants            []ProductVariant `json:"variants,omitempty" bson:"variants,omitempty"` // Biến thể của sản phẩm
	IsNew               bool             `json:"isNew" bson:"isNew"`                           // Gắn nhãn sản phẩm mới
	AllowDirectPurchase bool             `json:"allowDirectPurchase" bson:"allowDirectPurchase" default:"true"`
	AllowAddToCart      bool             `json:"allowAddToCart" bson:"allowAddToCart" default:"true"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}

// FindVariant tìm biến thể theo id, trả về nil nếu không có
func (p *Product) FindVariant(variantID string) *ProductVariant {
	for i := range p.Variants {
		if p.Variants[i].ID == variantID {
			return &p.Variants[i]
		}
	}
	return nil
}
