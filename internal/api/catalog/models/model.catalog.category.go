package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category đại diện cho một danh mục sản phẩm.
// Slug được sinh lại từ tên tiếng Ả Rập mỗi lần tạo/cập nhật,
// nên URL công khai của danh mục có thể thay đổi khi đổi tên.
type Category struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của danh mục
	Name           LocalizedText      `json:"name" bson:"name" index:"text"`     // Tên danh mục (ar/fr)
	Description    LocalizedText      `json:"description,omitempty" bson:"description,omitempty"`
	Slug           string             `json:"slug" bson:"slug" index:"unique"` // Slug sinh từ tên tiếng Ả Rập
	Image          string             `json:"image,omitempty" bson:"image,omitempty"`
	CreatedAt      int64              `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt      int64              `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
	_Relationships struct{}           `relationship:"collection:products,field:categoryId,message:Không thể xóa danh mục vì có %d sản phẩm trực thuộc. Vui lòng xóa hoặc di chuyển các sản phẩm trước."`
}
