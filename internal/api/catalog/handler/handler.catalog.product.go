// Package cataloghdl - handler domain catalog (sản phẩm, danh mục).
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

// ProductHandler xử lý các request liên quan đến sản phẩm.
// Insert/Update/Delete được override để sinh slug và dọn ảnh,
// các thao tác đọc dùng base handler.
type ProductHandler struct {
	*basehdl.BaseHandler[catalogmodels.Product, catalogdto.ProductCreateInput, catalogdto.ProductUpdateInput]
	ProductService *catalogsvc.ProductService
}

// NewProductHandler tạo mới ProductHandler
func NewProductHandler() (*ProductHandler, error) {
	productService, err := catalogsvc.NewProductService()
	if err != nil {
		return nil, fmt.Errorf("failed to create product service: %v", err)
	}
	hdl := &ProductHandler{
		ProductService: productService,
	}
	hdl.BaseHandler = basehdl.NewBaseHandler[catalogmodels.Product, catalogdto.ProductCreateInput, catalogdto.ProductUpdateInput](productService.BaseServiceMongoImpl)
	return hdl, nil
}

// InsertOne tạo sản phẩm mới (override base: sinh slug, default mua hàng)
func (h *ProductHandler) InsertOne(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input catalogdto.ProductCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, err.Error(), common.StatusBadRequest, nil))
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		result, err := h.ProductService.Create(c.Context(), &input)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// UpdateById cập nhật sản phẩm theo id (override base: sinh lại slug, dọn ảnh cũ)
func (h *ProductHandler) UpdateById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id := h.GetIDFromContext(c)
		if id == "" || !primitive.IsValidObjectID(id) {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, "ID không hợp lệ", common.StatusBadRequest, nil))
			return nil
		}
		var input catalogdto.ProductUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, err.Error(), common.StatusBadRequest, nil))
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		result, err := h.ProductService.Update(c.Context(), utility.String2ObjectID(id), &input)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// DeleteById xóa sản phẩm theo id (override base: dọn toàn bộ ảnh)
func (h *ProductHandler) DeleteById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id := h.GetIDFromContext(c)
		if id == "" || !primitive.IsValidObjectID(id) {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, "ID không hợp lệ", common.StatusBadRequest, nil))
			return nil
		}
		err := h.ProductService.Delete(c.Context(), utility.String2ObjectID(id))
		h.HandleResponse(c, nil, err)
		return nil
	})
}

// FindBySlug lấy sản phẩm theo slug công khai (route storefront)
func (h *ProductHandler) FindBySlug(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		slug := c.Params("slug")
		if slug == "" {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, "Slug không được để trống", common.StatusBadRequest, nil))
			return nil
		}
		result, err := h.ProductService.FindBySlug(c.Context(), slug)
		h.HandleResponse(c, result, err)
		return nil
	})
}
