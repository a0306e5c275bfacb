// Package catalogdto chứa các cấu trúc input cho domain catalog.
package catalogdto

import (
	models "souk_commerce/internal/api/catalog/models"
)

// ProductCreateInput dữ liệu đầu vào khi tạo sản phẩm
type ProductCreateInput struct {
	Name                models.LocalizedText    `json:"name" validate:"required"`
	Description         models.LocalizedText    `json:"description,omitempty"`
	Price               *float64                `json:"price" validate:"required,gte=0"`
	OriginalPrice       *float64                `json:"originalPrice,omitempty" validate:"omitempty,gt=0"`
	Image               string                  `json:"image,omitempty" validate:"omitempty,url"`
	SubImages           []string                `json:"subImages,omitempty" validate:"omitempty,dive,url"`
	CategoryID          string                  `json:"categoryId,omitempty" transform:"str_objectid,optional" validate:"omitempty,exists=categories"`
	Keywords            []string                `json:"keywords,omitempty"`
	Variants            []models.ProductVariant `json:"variants,omitempty"`
	IsNew               bool                    `json:"isNew,omitempty"`
	AllowDirectPurchase *bool                   `json:"allowDirectPurchase,omitempty"`
	AllowAddToCart      *bool                   `json:"allowAddToCart,omitempty"`
}

// ProductUpdateInput dữ liệu đầu vào khi cập nhật sản phẩm
type ProductUpdateInput struct {
	Name                models.LocalizedText    `json:"name,omitempty"`
	Description         models.LocalizedText    `json:"description,omitempty"`
	Price               *float64                `json:"price,omitempty" validate:"omitempty,gte=0"`
	OriginalPrice       *float64                `json:"originalPrice,omitempty" validate:"omitempty,gte=0"` // 0 nghĩa là bỏ giảm giá
	Image               string                  `json:"image,omitempty" validate:"omitempty,url"`
	SubImages           []string                `json:"subImages,omitempty" validate:"omitempty,dive,url"`
	CategoryID          string                  `json:"categoryId,omitempty" transform:"str_objectid,optional" validate:"omitempty,exists=categories"`
	Keywords            []string                `json:"keywords,omitempty"`
	Variants            []models.ProductVariant `json:"variants,omitempty"`
	IsNew               *bool                   `json:"isNew,omitempty"`
	AllowDirectPurchase *bool                   `json:"allowDirectPurchase,omitempty"`
	AllowAddToCart      *bool                   `json:"allowAddToCart,omitempty"`
}
