// Package router đăng ký các route thuộc domain catalog: Product, Category.
// Đọc công khai cho storefront, ghi qua admin gate.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authrouter "souk_commerce/internal/api/auth/router"
	cataloghdl "souk_commerce/internal/api/catalog/handler"
	apirouter "souk_commerce/internal/api/router"
)

// catalogConfig giới hạn các route CRUD generic: ghi chỉ qua insert-one,
// update-by-id, delete-by-id để slug và dọn ảnh luôn đi qua handler override.
var catalogConfig = apirouter.CRUDConfig{
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

// Register đăng ký route catalog lên v1
func Register(v1 fiber.Router, r *apirouter.Router) error {
	adminGate, err := authrouter.NewAdminGate()
	if err != nil {
		return err
	}
	gate := []fiber.Handler{adminGate}

	productHandler, err := cataloghdl.NewProductHandler()
	if err != nil {
		return fmt.Errorf("failed to create product handler: %w", err)
	}
	// Đọc công khai (readMW nil), ghi qua admin gate
	r.RegisterCRUDRoutes(v1, "/products", productHandler, catalogConfig, nil, gate)
	v1.Get("/products/find-by-slug/:slug", productHandler.FindBySlug)

	categoryHandler, err := cataloghdl.NewCategoryHandler()
	if err != nil {
		return fmt.Errorf("failed to create category handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/categories", categoryHandler, catalogConfig, nil, gate)
	v1.Get("/categories/find-by-slug/:slug", categoryHandler.FindBySlug)

	return nil
}
