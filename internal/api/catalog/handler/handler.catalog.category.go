package cataloghdl

import (
	"fmt"

	basehdl "souk_commerce/internal/api/base/handler"
	catalogdto "souk_commerce/internal/api/catalog/dto"
	catalogmodels "souk_commerce/internal/api/catalog/models"
	catalogsvc "souk_commerce/internal/api/catalog/service"
	"souk_commerce/internal/common"
	"souk_commerce/internal/utility"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CategoryHandler xử lý các request liên quan đến danh mục sản phẩm
type CategoryHandler struct {
	*basehdl.BaseHandler[catalogmodels.Category, catalogdto.CategoryCreateInput, catalogdto.CategoryUpdateInput]
	CategoryService *catalogsvc.CategoryService
}

// NewCategoryHandler tạo mới CategoryHandler
func NewCategoryHandler() (*CategoryHandler, error) {
	categoryService, err := catalogsvc.NewCategoryService()
	if err != nil {
		return nil, fmt.Errorf("failed to create category service: %v", err)
	}
	hdl := &CategoryHandler{
		CategoryService: categoryService,
	}
	hdl.BaseHandler = basehdl.NewBaseHandler[catalogmodels.Category, catalogdto.CategoryCreateInput, catalogdto.CategoryUpdateInput](categoryService.BaseServiceMongoImpl)
	return hdl, nil
}

// InsertOne tạo danh mục mới (override base: sinh slug từ tên tiếng Ả Rập)
func (h *CategoryHandler) InsertOne(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input catalogdto.CategoryCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, err.Error(), common.StatusBadRequest, nil))
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		result, err := h.CategoryService.Create(c.Context(), &input)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// UpdateById cập nhật danh mục theo id (override base: sinh lại slug, dọn ảnh cũ)
func (h *CategoryHandler) UpdateById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id := h.GetIDFromContext(c)
		if id == "" || !primitive.IsValidObjectID(id) {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, "ID không hợp lệ", common.StatusBadRequest, nil))
			return nil
		}
		var input catalogdto.CategoryUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, err.Error(), common.StatusBadRequest, nil))
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		result, err := h.CategoryService.Update(c.Context(), utility.String2ObjectID(id), &input)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// DeleteById xóa danh mục theo id (override base: dọn ảnh, giữ relationship check)
func (h *CategoryHandler) DeleteById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id := h.GetIDFromContext(c)
		if id == "" || !primitive.IsValidObjectID(id) {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, "ID không hợp lệ", common.StatusBadRequest, nil))
			return nil
		}
		err := h.CategoryService.Delete(c.Context(), utility.String2ObjectID(id))
		h.HandleResponse(c, nil, err)
		return nil
	})
}

// FindBySlug lấy danh mục theo slug công khai (route storefront)
func (h *CategoryHandler) FindBySlug(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		slug := c.Params("slug")
		if slug == "" {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, "Slug không được để trống", common.StatusBadRequest, nil))
			return nil
		}
		result, err := h.CategoryService.FindBySlug(c.Context(), slug)
		h.HandleResponse(c, result, err)
		return nil
	})
}
