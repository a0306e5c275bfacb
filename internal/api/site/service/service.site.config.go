package sitesvc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	basesvc "souk_commerce/internal/api/base/service"
	models "souk_commerce/internal/api/site/models"
	"souk_commerce/internal/common"
	"souk_commerce/internal/global"
	"souk_commerce/internal/utility"

	"github.com/sirupsen/logrus"

	"go.mongodb.org/mongo-driver/bson"
)

const configCacheKey = "site-config"

// ConfigService quản lý document cấu hình cửa hàng duy nhất.
// GET công khai được cache in-memory ngắn hạn, mọi write xóa cache.
type ConfigService struct {
	*basesvc.BaseServiceMongoImpl[models.SiteConfig]
	cache *utility.Cache
}

// NewConfigService tạo mới ConfigService
func NewConfigService() (*ConfigService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Configs)
	if !exist {
		return nil, fmt.Errorf("failed to get configs collection: %v", common.ErrNotFound)
	}
	return &ConfigService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.SiteConfig](collection),
		cache:                utility.NewCache(time.Minute, 5*time.Minute),
	}, nil
}

// sectionNames là whitelist các sub-object cập nhật được qua API.
// Mỗi PUT chỉ $set đúng một sub-object, phần còn lại của document giữ nguyên.
var sectionNames = map[string]bool{
	"basicInfo":            true,
	"brandAssets":          true,
	"contactInfo":          true,
	"locationVerification": true,
	"socialMedia":          true,
	"storeSettings":        true,
	"translatedContent":    true,
}

// IsValidSectionName kiểm tra tên sub-object có trong whitelist
func IsValidSectionName(name string) bool {
	return sectionNames[name]
}

// GetConfig trả về document cấu hình, ưu tiên cache
func (s *ConfigService) GetConfig(ctx context.Context) (models.SiteConfig, error) {
	if cached, ok := s.cache.Get(configCacheKey); ok {
		if cfg, ok := cached.(models.SiteConfig); ok {
			return cfg, nil
		}
	}
	cfg, err := s.FindOne(ctx, bson.M{"_id": models.SiteConfigID}, nil)
	if err != nil {
		return cfg, err
	}
	s.cache.Set(configCacheKey, cfg)
	return cfg, nil
}

// GetSection trả về một sub-object của cấu hình theo tên
func (s *ConfigService) GetSection(ctx context.Context, name string) (interface{}, error) {
	if !IsValidSectionName(name) {
		return nil, common.NewError(common.ErrCodeValidationInput, "Tên sub-object cấu hình không hợp lệ: "+name, common.StatusBadRequest, nil)
	}
	cfg, err := s.GetConfig(ctx)
	if err != nil {
		return nil, err
	}
	switch name {
	case "basicInfo":
		return cfg.BasicInfo, nil
	case "brandAssets":
		return cfg.BrandAssets, nil
	case "contactInfo":
		return cfg.ContactInfo, nil
	case "locationVerification":
		return cfg.LocationVerification, nil
	case "socialMedia":
		return cfg.SocialMedia, nil
	case "storeSettings":
		return cfg.StoreSettings, nil
	case "translatedContent":
		return cfg.TranslatedContent, nil
	}
	return nil, common.ErrNotFound
}

// decodeSection parse payload JSON vào đúng kiểu của sub-object để chặn field lạ
func decodeSection(name string, raw []byte) (interface{}, error) {
	var target interface{}
	switch name {
	case "basicInfo":
		target = &models.BasicInfo{}
	case "brandAssets":
		target = &models.BrandAssets{}
	case "contactInfo":
		target = &models.ContactInfo{}
	case "locationVerification":
		target = &models.LocationVerification{}
	case "socialMedia":
		target = &models.SocialMedia{}
	case "storeSettings":
		target = &models.StoreSettings{}
	case "translatedContent":
		target = &models.TranslatedContent{}
	default:
		return nil, common.NewError(common.ErrCodeValidationInput, "Tên sub-object cấu hình không hợp lệ: "+name, common.StatusBadRequest, nil)
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return nil, common.NewError(common.ErrCodeValidationFormat, common.MsgInvalidFormat, common.StatusBadRequest, err)
	}
	return target, nil
}

// UpdateSection cập nhật đúng một sub-object của cấu hình ($set trên sub-object).
// Các sub-object khác và metadata của document không bị đụng tới.
func (s *ConfigService) UpdateSection(ctx context.Context, name string, raw []byte) (models.SiteConfig, error) {
	var zero models.SiteConfig

	payload, err := decodeSection(name, raw)
	if err != nil {
		return zero, err
	}

	updateData := &basesvc.UpdateData{Set: map[string]interface{}{name: payload}}
	cfg, err := s.UpdateOne(ctx, bson.M{"_id": models.SiteConfigID}, updateData, nil)
	if err != nil {
		return zero, err
	}
	s.cache.Delete(configCacheKey)
	return cfg, nil
}

// EnsureDefault seed document cấu hình mặc định khi chưa tồn tại.
// Gọi một lần lúc khởi động server, dùng context cho phép insert system data.
func (s *ConfigService) EnsureDefault(ctx context.Context) error {
	_, err := s.FindOne(ctx, bson.M{"_id": models.SiteConfigID}, nil)
	if err == nil {
		return nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return err
	}

	currency := "mad"
	if global.ServerConfig != nil && global.ServerConfig.StoreCurrency != "" {
		currency = global.ServerConfig.StoreCurrency
	}

	defaultConfig := models.SiteConfig{
		ID: models.SiteConfigID,
		StoreSettings: models.StoreSettings{
			Currency:      currency,
			Locales:       []string{"ar", "fr"},
			DefaultLocale: "ar",
			CODEnabled:    true,
			CardEnabled:   true,
		},
		IsSystem: true,
	}

	seedCtx := basesvc.WithSystemDataInsertAllowed(ctx)
	if _, err := s.InsertOne(seedCtx, defaultConfig); err != nil {
		if errors.Is(err, common.ErrDuplicate) {
			return nil
		}
		return err
	}
	logrus.Info("Đã seed cấu hình cửa hàng mặc định")
	return nil
}
