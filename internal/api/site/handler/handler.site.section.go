// Package sitehdl - handler domain site (section landing page, cấu hình cửa hàng).
package sitehdl

import (
	"fmt"

	basehdl "souk_commerce/internal/api/base/handler"
	sitedto "souk_commerce/internal/api/site/dto"
	sitemodels "souk_commerce/internal/api/site/models"
	sitesvc "souk_commerce/internal/api/site/service"
	"souk_commerce/internal/common"
	"souk_commerce/internal/utility"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SectionHandler xử lý các request liên quan đến section landing page
type SectionHandler struct {
	*basehdl.BaseHandler[sitemodels.Section, sitedto.SectionCreateInput, sitedto.SectionUpdateInput]
	SectionService *sitesvc.SectionService
}

// NewSectionHandler tạo mới SectionHandler
func NewSectionHandler() (*SectionHandler, error) {
	sectionService, err := sitesvc.NewSectionService()
	if err != nil {
		return nil, fmt.Errorf("failed to create section service: %v", err)
	}
	hdl := &SectionHandler{
		SectionService: sectionService,
	}
	hdl.BaseHandler = basehdl.NewBaseHandler[sitemodels.Section, sitedto.SectionCreateInput, sitedto.SectionUpdateInput](sectionService.BaseServiceMongoImpl)
	return hdl, nil
}

// InsertOne tạo section mới (override base: xử lý mặc định isActive)
func (h *SectionHandler) InsertOne(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input sitedto.SectionCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, err.Error(), common.StatusBadRequest, nil))
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		result, err := h.SectionService.Create(c.Context(), &input)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// UpdateById cập nhật section theo id (override base: chỉ set trường có mặt, dọn ảnh cũ)
func (h *SectionHandler) UpdateById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id := h.GetIDFromContext(c)
		if id == "" || !primitive.IsValidObjectID(id) {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, "ID không hợp lệ", common.StatusBadRequest, nil))
			return nil
		}
		var input sitedto.SectionUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, err.Error(), common.StatusBadRequest, nil))
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		result, err := h.SectionService.Update(c.Context(), utility.String2ObjectID(id), &input)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// DeleteById xóa section theo id (override base: dọn ảnh best effort)
func (h *SectionHandler) DeleteById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id := h.GetIDFromContext(c)
		if id == "" || !primitive.IsValidObjectID(id) {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, "ID không hợp lệ", common.StatusBadRequest, nil))
			return nil
		}
		err := h.SectionService.Delete(c.Context(), utility.String2ObjectID(id))
		h.HandleResponse(c, nil, err)
		return nil
	})
}

// FindActive trả về các section đang bật theo thứ tự hiển thị (route storefront)
func (h *SectionHandler) FindActive(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		result, err := h.SectionService.FindActiveOrdered(c.Context())
		h.HandleResponse(c, result, err)
		return nil
	})
}
