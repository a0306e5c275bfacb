// Package sitedto - input cho các API domain site
package sitedto

import (
	models "souk_commerce/internal/api/site/models"
)

// SectionCreateInput dữ liệu tạo section landing page
type SectionCreateInput struct {
	Type     string             `json:"type" validate:"required,oneof=hero productGrid categoryList banner testimonial"`
	Data     models.SectionData `json:"data" validate:"required"`
	IsActive *bool              `json:"isActive" validate:"omitempty"`
	Order    int                `json:"order" validate:"omitempty,gte=0"`
}

// SectionUpdateInput dữ liệu cập nhật section, mọi trường đều optional
type SectionUpdateInput struct {
	Type     string              `json:"type" validate:"omitempty,oneof=hero productGrid categoryList banner testimonial"`
	Data     *models.SectionData `json:"data" validate:"omitempty"`
	IsActive *bool               `json:"isActive" validate:"omitempty"`
	Order    *int                `json:"order" validate:"omitempty,gte=0"`
}
