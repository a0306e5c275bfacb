// Package router đăng ký các route thuộc domain site: Section, SiteConfig.
// Storefront đọc công khai, admin chỉnh sửa qua admin gate.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authrouter "souk_commerce/internal/api/auth/router"
	apirouter "souk_commerce/internal/api/router"
	sitehdl "souk_commerce/internal/api/site/handler"
)

// sectionConfig giới hạn CRUD generic cho section: ghi chỉ qua insert-one,
// update-by-id, delete-by-id để validate và dọn ảnh đi qua handler override.
var sectionConfig = apirouter.CRUDConfig{
	InsOne: true, InsMany: false,
	Find: true, FindOne: true, FindById: true,
	FindIds: true, Paginate: true,
	UpdOne: false, UpdMany: false, UpdById: true,
	FindUpd: false,
	DelOne:  false, DelMany: false, DelById: true,
	FindDel: false,
	Count:   true, Distinct: true,
	Upsert: false, Exists: true,
}

// Register đăng ký route site lên v1
func Register(v1 fiber.Router, r *apirouter.Router) error {
	adminGate, err := authrouter.NewAdminGate()
	if err != nil {
		return err
	}
	gate := []fiber.Handler{adminGate}

	sectionHandler, err := sitehdl.NewSectionHandler()
	if err != nil {
		return fmt.Errorf("failed to create section handler: %w", err)
	}
	// Đọc công khai (readMW nil), ghi qua admin gate
	r.RegisterCRUDRoutes(v1, "/sections", sectionHandler, sectionConfig, nil, gate)
	v1.Get("/sections/active", sectionHandler.FindActive)

	configHandler, err := sitehdl.NewConfigHandler()
	if err != nil {
		return fmt.Errorf("failed to create config handler: %w", err)
	}
	v1.Get("/site-config", configHandler.HandleGetConfig)
	v1.Get("/site-config/:section", configHandler.HandleGetSection)
	apirouter.RegisterRouteWithMiddleware(v1, "/site-config", "PUT", "/:section", gate, configHandler.HandleUpdateSection)

	return nil
}
