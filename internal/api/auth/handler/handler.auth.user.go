// Package authhdl - handler người dùng (session, profile, block/unblock).
package authhdl

import (
	"fmt"

	authdto "souk_commerce/internal/api/auth/dto"
	authmodels "souk_commerce/internal/api/auth/models"
	authsvc "souk_commerce/internal/api/auth/service"
	basehdl "souk_commerce/internal/api/base/handler"
	basesvc "souk_commerce/internal/api/base/service"
	"souk_commerce/internal/common"

	"github.com/gofiber/fiber/v3"
)

// UserHandler xử lý các route liên quan đến người dùng
type UserHandler struct {
	*basehdl.BaseHandler[authmodels.User, authdto.UserCreateInput, authdto.UserUpdateInput]
	UserCRUD *authsvc.UserService
}

// NewUserHandler tạo một instance mới của UserHandler
func NewUserHandler() (*UserHandler, error) {
	userService, err := authsvc.NewUserService()
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %v", err)
	}
	h := &UserHandler{UserCRUD: userService}
	h.BaseHandler = basehdl.NewBaseHandler[authmodels.User, authdto.UserCreateInput, authdto.UserUpdateInput](userService.BaseServiceMongoImpl)
	return h, nil
}

// HandleSession xử lý xác thực phiên bằng Firebase ID token.
// Client gửi ID token lấy từ Firebase Auth, server verify và đồng bộ hồ sơ.
func (h *UserHandler) HandleSession(c fiber.Ctx) error {
	var input authdto.SessionInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, err.Error(), common.StatusBadRequest, nil))
		return nil
	}
	if err := h.ValidateInput(&input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	result, err := h.UserCRUD.SessionWithFirebase(c.Context(), &input)
	h.HandleResponse(c, result, err)
	return nil
}

// HandleGetProfile trả về hồ sơ của người dùng đang đăng nhập (theo firebase_uid trong Locals)
func (h *UserHandler) HandleGetProfile(c fiber.Ctx) error {
	firebaseUID, ok := c.Locals("firebase_uid").(string)
	if !ok || firebaseUID == "" {
		h.HandleResponse(c, nil, common.ErrTokenMissing)
		return nil
	}
	result, err := h.UserCRUD.FindByFirebaseUID(c.Context(), firebaseUID)
	h.HandleResponse(c, result, err)
	return nil
}

// HandleUpdateProfile cập nhật hồ sơ của người dùng đang đăng nhập
func (h *UserHandler) HandleUpdateProfile(c fiber.Ctx) error {
	firebaseUID, ok := c.Locals("firebase_uid").(string)
	if !ok || firebaseUID == "" {
		h.HandleResponse(c, nil, common.ErrTokenMissing)
		return nil
	}

	var input authdto.UserUpdateInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, err.Error(), common.StatusBadRequest, nil))
		return nil
	}
	if err := h.ValidateInput(&input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	user, err := h.UserCRUD.FindByFirebaseUID(c.Context(), firebaseUID)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	updateData := &basesvc.UpdateData{Set: make(map[string]interface{})}
	if input.Name != "" {
		updateData.Set["name"] = input.Name
	}
	if input.AvatarURL != "" {
		updateData.Set["avatarUrl"] = input.AvatarURL
	}
	result, err := h.UserCRUD.UpdateById(c.Context(), user.ID, updateData)
	h.HandleResponse(c, result, err)
	return nil
}

// HandleBlockUser xử lý khóa người dùng theo email
func (h *UserHandler) HandleBlockUser(c fiber.Ctx) error {
	var input authdto.BlockUserInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, err.Error(), common.StatusBadRequest, nil))
		return nil
	}
	if err := h.ValidateInput(&input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	result, err := h.UserCRUD.BlockUser(c.Context(), &input)
	h.HandleResponse(c, result, err)
	return nil
}

// HandleUnBlockUser xử lý mở khóa người dùng theo email
func (h *UserHandler) HandleUnBlockUser(c fiber.Ctx) error {
	var input authdto.UnBlockUserInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, err.Error(), common.StatusBadRequest, nil))
		return nil
	}
	if err := h.ValidateInput(&input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	result, err := h.UserCRUD.UnBlockUser(c.Context(), &input)
	h.HandleResponse(c, result, err)
	return nil
}
