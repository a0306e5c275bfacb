// Package router đăng ký các route thuộc domain auth: System, Session, User, Admin.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authhdl "souk_commerce/internal/api/auth/handler"
	authsvc "souk_commerce/internal/api/auth/service"
	basehdl "souk_commerce/internal/api/base/handler"
	"souk_commerce/internal/api/middleware"
	apirouter "souk_commerce/internal/api/router"
)

// NewAdminGate tạo middleware kiểm tra quyền quản trị từ Firebase token.
// Các domain router khác (catalog, order, site) dùng chung gate này cho các route ghi dữ liệu.
func NewAdminGate() (fiber.Handler, error) {
	userService, err := authsvc.NewUserService()
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}
	return middleware.AdminGate(&middleware.FirebaseTokenVerifier{}, userService), nil
}

// Register đăng ký tất cả route auth (system, session, user, admin) lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	if err := registerSystemRoutes(v1); err != nil {
		return err
	}
	adminGate, err := NewAdminGate()
	if err != nil {
		return err
	}
	if err := registerSessionRoutes(v1, adminGate); err != nil {
		return err
	}
	if err := registerUserRoutes(v1, r, adminGate); err != nil {
		return err
	}
	return nil
}

func registerSystemRoutes(router fiber.Router) error {
	systemHandler, err := basehdl.NewSystemHandler()
	if err != nil {
		return fmt.Errorf("failed to create system handler: %w", err)
	}
	router.Get("/system/health", systemHandler.HandleHealth)
	return nil
}

func registerSessionRoutes(router fiber.Router, adminGate fiber.Handler) error {
	userHandler, err := authhdl.NewUserHandler()
	if err != nil {
		return fmt.Errorf("failed to create user handler: %w", err)
	}
	// Đăng nhập bằng Firebase ID token, không cần middleware
	router.Post("/auth/session", userHandler.HandleSession)
	router.Post("/auth/verify-token", userHandler.HandleSession)
	apirouter.RegisterRouteWithMiddleware(router, "/auth", "GET", "/session", []fiber.Handler{adminGate}, userHandler.HandleGetProfile)
	apirouter.RegisterRouteWithMiddleware(router, "/auth", "GET", "/profile", []fiber.Handler{adminGate}, userHandler.HandleGetProfile)
	apirouter.RegisterRouteWithMiddleware(router, "/auth", "PUT", "/profile", []fiber.Handler{adminGate}, userHandler.HandleUpdateProfile)
	return nil
}

func registerUserRoutes(router fiber.Router, r *apirouter.Router, adminGate fiber.Handler) error {
	userHandler, err := authhdl.NewUserHandler()
	if err != nil {
		return fmt.Errorf("failed to create user handler: %w", err)
	}
	gate := []fiber.Handler{adminGate}
	r.RegisterCRUDRoutes(router, "/user", userHandler, apirouter.ReadOnlyConfig, gate, gate)
	apirouter.RegisterRouteWithMiddleware(router, "/admin/user", "POST", "/block", gate, userHandler.HandleBlockUser)
	apirouter.RegisterRouteWithMiddleware(router, "/admin/user", "POST", "/unblock", gate, userHandler.HandleUnBlockUser)
	return nil
}
