// Package orderhdl - handler đơn hàng (guest checkout + back-office).
package orderhdl

import (
	"fmt"
	"strconv"

	basehdl "souk_commerce/internal/api/base/handler"
	orderdto "souk_commerce/internal/api/order/dto"
	ordermodels "souk_commerce/internal/api/order/models"
	ordersvc "souk_commerce/internal/api/order/service"
	"souk_commerce/internal/common"
	"souk_commerce/internal/utility"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderHandler xử lý các request liên quan đến đơn hàng
type OrderHandler struct {
	*basehdl.BaseHandler[ordermodels.Order, orderdto.GuestOrderCreateInput, orderdto.OrderStatusUpdateInput]
	OrderService *ordersvc.OrderService
}

// NewOrderHandler tạo mới OrderHandler
func NewOrderHandler() (*OrderHandler, error) {
	orderService, err := ordersvc.NewOrderService()
	if err != nil {
		return nil, fmt.Errorf("failed to create order service: %v", err)
	}
	hdl := &OrderHandler{
		OrderService: orderService,
	}
	hdl.BaseHandler = basehdl.NewBaseHandler[ordermodels.Order, orderdto.GuestOrderCreateInput, orderdto.OrderStatusUpdateInput](orderService.BaseServiceMongoImpl)
	return hdl, nil
}

// HandleCreateGuestOrder khách vãng lai đặt hàng COD (route công khai)
func (h *OrderHandler) HandleCreateGuestOrder(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input orderdto.GuestOrderCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, err.Error(), common.StatusBadRequest, nil))
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		result, err := h.OrderService.CreateGuestOrder(c.Context(), &input)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// HandleFindOrders admin duyệt danh sách đơn hàng có lọc và phân trang
func (h *OrderHandler) HandleFindOrders(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		from, _ := strconv.ParseInt(c.Query("from"), 10, 64)
		to, _ := strconv.ParseInt(c.Query("to"), 10, 64)
		query := orderdto.OrderListQuery{
			Status: c.Query("status"),
			Search: c.Query("search"),
			From:   from,
			To:     to,
		}
		page, limit := h.ParsePagination(c)
		result, err := h.OrderService.FindOrdersWithPagination(c.Context(), &query, page, limit)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// HandleUpdateStatus admin chuyển trạng thái đơn hàng theo bảng trạng thái
func (h *OrderHandler) HandleUpdateStatus(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id := h.GetIDFromContext(c)
		if id == "" || !primitive.IsValidObjectID(id) {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, "ID không hợp lệ", common.StatusBadRequest, nil))
			return nil
		}
		var input orderdto.OrderStatusUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, err.Error(), common.StatusBadRequest, nil))
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		result, err := h.OrderService.UpdateOrderStatus(c.Context(), utility.String2ObjectID(id), input.Status)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// DeleteById admin xóa đơn hàng (override base: trả ErrOrderNotFound)
func (h *OrderHandler) DeleteById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id := h.GetIDFromContext(c)
		if id == "" || !primitive.IsValidObjectID(id) {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, "ID không hợp lệ", common.StatusBadRequest, nil))
			return nil
		}
		err := h.OrderService.DeleteOrder(c.Context(), utility.String2ObjectID(id))
		h.HandleResponse(c, nil, err)
		return nil
	})
}

// HandleFindByCode khách tra cứu đơn hàng theo mã (route công khai)
func (h *OrderHandler) HandleFindByCode(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		code := c.Params("code")
		if code == "" {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, "Mã đơn hàng không được để trống", common.StatusBadRequest, nil))
			return nil
		}
		result, err := h.OrderService.FindByCode(c.Context(), code)
		h.HandleResponse(c, result, err)
		return nil
	})
}
