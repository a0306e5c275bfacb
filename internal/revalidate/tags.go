// Package revalidate đẩy lệnh làm mới cache-tag sang frontend Next.js.
// Nguồn sự kiện là event bus thay đổi dữ liệu, không cần wiring từng handler.
package revalidate

import (
	"souk_commerce/internal/api/events"
	"souk_commerce/internal/global"
)

// Entity tag theo collection
const (
	TagProducts   = "products"
	TagCategories = "categories"
	TagSections   = "sections"
	TagConfig     = "config"
)

// Master tag gom nhiều trang
const (
	TagLandingPage = "landing-page"
	TagAllContent  = "all-content"
	TagSEOMeta     = "seo-meta"
)

// collectionTags ánh xạ collection sang danh sách tag cần invalidate khi ghi.
// Bảng khai báo duy nhất, thay đổi cache policy chỉ sửa ở đây.
var collectionTags map[string][]string

func init() {
	collectionTags = map[string][]string{
		global.MongoDB_ColNames.Products:   {TagProducts, TagLandingPage, TagAllContent},
		global.MongoDB_ColNames.Categories: {TagCategories, TagLandingPage, TagAllContent},
		global.MongoDB_ColNames.Sections:   {TagSections, TagLandingPage, TagAllContent},
		global.MongoDB_ColNames.Configs:    {TagConfig, TagSEOMeta, TagAllContent},
	}
}

// manualTags là whitelist tag cho endpoint revalidate thủ công (exact match).
var manualTags = map[string]bool{
	TagProducts:    true,
	TagCategories:  true,
	TagSections:    true,
	TagConfig:      true,
	TagLandingPage: true,
	TagAllContent:  true,
	TagSEOMeta:     true,
}

// IsValidManualTag kiểm tra tag có được phép revalidate thủ công không
func IsValidManualTag(tag string) bool {
	return manualTags[tag]
}

// TagsForEvent trả về danh sách tag cần invalidate cho một sự kiện thay đổi dữ liệu.
// Ghi vào products kèm thêm tag product-<slug> cho trang chi tiết sản phẩm.
func TagsForEvent(e events.DataChangeEvent) []string {
	base, ok := collectionTags[e.CollectionName]
	if !ok {
		return nil
	}

	tags := make([]string, len(base))
	copy(tags, base)

	if e.CollectionName == global.MongoDB_ColNames.Products {
		if slug := events.GetStringField(e.Document, "Slug"); slug != "" {
			tags = append(tags, "product-"+slug)
		}
	}
	return tags
}
