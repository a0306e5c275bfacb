// Package catalogsvc - Test sinh slug từ tên song ngữ và map input cập nhật sản phẩm.
package catalogsvc

import (
	"testing"

	catalogdto "souk_commerce/internal/api/catalog/dto"
	models "souk_commerce/internal/api/catalog/models"
)

func TestSlugFromName_PrefersArabic(t *testing.T) {
	name := models.LocalizedText{Ar: "زيت أركان", Fr: "Huile d'argan"}
	if got := slugFromName(name); got != "زيت-أركان" {
		t.Errorf("slug phải sinh từ tên tiếng Ả Rập, nhận được %q", got)
	}
}

func TestSlugFromName_FallsBackToFrench(t *testing.T) {
	name := models.LocalizedText{Fr: "Huile d'argan"}
	if got := slugFromName(name); got != "huile-d-argan" {
		t.Errorf("thiếu tên Ả Rập phải fallback sang tiếng Pháp, nhận được %q", got)
	}
}

func TestSlugFromName_Empty(t *testing.T) {
	if got := slugFromName(models.LocalizedText{}); got != "" {
		t.Errorf("tên rỗng phải cho slug rỗng, nhận được %q", got)
	}
}

func floatPtr(v float64) *float64 { return &v }

func TestProductUpdateData_ZeroPriceIsSettable(t *testing.T) {
	updateData := productUpdateData(&catalogdto.ProductUpdateInput{Price: floatPtr(0)})
	price, ok := updateData.Set["price"]
	if !ok {
		t.Fatal("giá 0 phải được set, sản phẩm miễn phí là hợp lệ")
	}
	if price != float64(0) {
		t.Errorf("price = %v, muốn 0", price)
	}
}

func TestProductUpdateData_NilPriceUntouched(t *testing.T) {
	updateData := productUpdateData(&catalogdto.ProductUpdateInput{
		Name: models.LocalizedText{Ar: "صابون", Fr: "Savon"},
	})
	if _, ok := updateData.Set["price"]; ok {
		t.Error("không gửi price thì không được đụng tới giá hiện tại")
	}
}

func TestProductUpdateData_ZeroOriginalPriceClearsDiscount(t *testing.T) {
	updateData := productUpdateData(&catalogdto.ProductUpdateInput{OriginalPrice: floatPtr(0)})
	if _, ok := updateData.Set["originalPrice"]; ok {
		t.Error("originalPrice = 0 không được set giá trị mới")
	}
	if _, ok := updateData.Unset["originalPrice"]; !ok {
		t.Error("originalPrice = 0 phải unset giảm giá khỏi document")
	}

	updateData = productUpdateData(&catalogdto.ProductUpdateInput{OriginalPrice: floatPtr(149.9)})
	if updateData.Set["originalPrice"] != 149.9 {
		t.Errorf("originalPrice dương phải được set, nhận được %v", updateData.Set["originalPrice"])
	}
	if len(updateData.Unset) != 0 {
		t.Error("originalPrice dương không được unset gì cả")
	}
}

func TestProductUpdateData_NameRegeneratesSlug(t *testing.T) {
	updateData := productUpdateData(&catalogdto.ProductUpdateInput{
		Name: models.LocalizedText{Ar: "صابون أسود", Fr: "Savon noir"},
	})
	if updateData.Set["slug"] != "صابون-أسود" {
		t.Errorf("đổi tên phải sinh lại slug, nhận được %v", updateData.Set["slug"])
	}
}
