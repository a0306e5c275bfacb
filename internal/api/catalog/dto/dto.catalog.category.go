package catalogdto

import (
	models "souk_commerce/internal/api/catalog/models"
)

// CategoryCreateInput dữ liệu đầu vào khi tạo danh mục
type CategoryCreateInput struct {
	Name        models.LocalizedText `json:"name" validate:"required"`
	Description models.LocalizedText `json:"description,omitempty"`
	Image       string               `json:"image,omitempty" validate:"omitempty,url"`
}

// CategoryUpdateInput dữ liệu đầu vào khi cập nhật danh mục
type CategoryUpdateInput struct {
	Name        models.LocalizedText `json:"name,omitempty"`
	Description models.LocalizedText `json:"description,omitempty"`
	Image       string               `json:"image,omitempty" validate:"omitempty,url"`
}
