// Package sitesvc - Test whitelist sub-object cấu hình và decode payload.
package sitesvc

import (
	"testing"

	models "souk_commerce/internal/api/site/models"
)

func TestIsValidSectionName(t *testing.T) {
	valid := []string{"basicInfo", "brandAssets", "contactInfo", "locationVerification", "socialMedia", "storeSettings", "translatedContent"}
	for _, name := range valid {
		if !IsValidSectionName(name) {
			t.Errorf("%q phải nằm trong whitelist sub-object", name)
		}
	}
	for _, name := range []string{"", "isSystem", "_id", "BasicInfo", "createdAt", "storesettings"} {
		if IsValidSectionName(name) {
			t.Errorf("%q không được nằm trong whitelist sub-object", name)
		}
	}
}

func TestDecodeSection_StoreSettings(t *testing.T) {
	raw := []byte(`{"currency":"mad","locales":["ar","fr"],"defaultLocale":"ar","codEnabled":true,"cardEnabled":false}`)
	decoded, err := decodeSection("storeSettings", raw)
	if err != nil {
		t.Fatalf("decode storeSettings hợp lệ không được lỗi: %v", err)
	}
	settings, ok := decoded.(*models.StoreSettings)
	if !ok {
		t.Fatalf("decodeSection phải trả *models.StoreSettings, nhận được %T", decoded)
	}
	if settings.Currency != "mad" {
		t.Errorf("currency = %q, muốn mad", settings.Currency)
	}
	if !settings.CODEnabled || settings.CardEnabled {
		t.Error("codEnabled/cardEnabled không được parse đúng")
	}
}

func TestDecodeSection_UnknownFieldRejected(t *testing.T) {
	raw := []byte(`{"currency":"mad","isSystem":true}`)
	if _, err := decodeSection("storeSettings", raw); err == nil {
		t.Error("payload chứa field lạ phải bị từ chối")
	}
}

func TestDecodeSection_InvalidName(t *testing.T) {
	if _, err := decodeSection("isSystem", []byte(`{}`)); err == nil {
		t.Error("tên sub-object ngoài whitelist phải bị từ chối")
	}
}

func TestDecodeSection_MalformedJSON(t *testing.T) {
	if _, err := decodeSection("basicInfo", []byte(`{not json`)); err == nil {
		t.Error("JSON hỏng phải bị từ chối")
	}
}
