// Package router đăng ký các route thuộc domain order.
// Guest checkout công khai, quản lý đơn qua admin gate.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authrouter "souk_commerce/internal/api/auth/router"
	orderhdl "souk_commerce/internal/api/order/handler"
	apirouter "souk_commerce/internal/api/router"
)

// orderConfig: đơn hàng không insert qua route generic (đi qua guest checkout
// hoặc payment intent), không update generic (chỉ đổi trạng thái qua FSM).
var orderConfig = apirouter.CRUDConfig{
	InsOne: false, InsMany: false,
	Find: true, FindOne: true, FindById: true,
	FindIds: true, Paginate: false,
	UpdOne: false, UpdMany: false, UpdById: false,
	FindUpd: false,
	DelOne:  false, DelMany: false, DelById: true,
	FindDel: false,
	Count:   true, Distinct: true,
	Upsert: false, Exists: true,
}

// Register đăng ký route order lên v1
func Register(v1 fiber.Router, r *apirouter.Router) error {
	adminGate, err := authrouter.NewAdminGate()
	if err != nil {
		return err
	}
	gate := []fiber.Handler{adminGate}

	orderHandler, err := orderhdl.NewOrderHandler()
	if err != nil {
		return fmt.Errorf("failed to create order handler: %w", err)
	}

	// Route công khai cho storefront
	v1.Post("/orders/guest", orderHandler.HandleCreateGuestOrder)
	v1.Get("/orders/track/:code", orderHandler.HandleFindByCode)

	// Back-office: toàn bộ qua admin gate
	r.RegisterCRUDRoutes(v1, "/orders", orderHandler, orderConfig, gate, gate)
	apirouter.RegisterRouteWithMiddleware(v1, "/orders", "GET", "/find-with-pagination", gate, orderHandler.HandleFindOrders)
	apirouter.RegisterRouteWithMiddleware(v1, "/orders", "PUT", "/status/:id", gate, orderHandler.HandleUpdateStatus)

	return nil
}
