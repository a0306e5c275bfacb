package models

import (
	catalogmodels "souk_commerce/internal/api/catalog/models"
)

// SiteConfigID là _id cố định của document cấu hình cửa hàng.
// Collection configs chỉ chứa đúng một document này.
const SiteConfigID = "site-config"

// BasicInfo thông tin cơ bản của cửa hàng
type BasicInfo struct {
	StoreName   catalogmodels.LocalizedText `json:"storeName" bson:"storeName"`
	Tagline     catalogmodels.LocalizedText `json:"tagline,omitempty" bson:"tagline,omitempty"`
	Description catalogmodels.LocalizedText `json:"description,omitempty" bson:"description,omitempty"`
}

// BrandAssets logo và màu nhận diện
type BrandAssets struct {
	Logo      string `json:"logo,omitempty" bson:"logo,omitempty"`
	Favicon   string `json:"favicon,omitempty" bson:"favicon,omitempty"`
	OGImage   string `json:"ogImage,omitempty" bson:"ogImage,omitempty"`
	ThemeHex  string `json:"themeHex,omitempty" bson:"themeHex,omitempty"`
	AccentHex string `json:"accentHex,omitempty" bson:"accentHex,omitempty"`
}

// ContactInfo kênh liên hệ của cửa hàng
type ContactInfo struct {
	Phone    string `json:"phone,omitempty" bson:"phone,omitempty"`
	WhatsApp string `json:"whatsapp,omitempty" bson:"whatsapp,omitempty"`
	Email    string `json:"email,omitempty" bson:"email,omitempty"`
	Address  string `json:"address,omitempty" bson:"address,omitempty"`
}

// LocationVerification thông tin xác minh địa điểm kinh doanh
type LocationVerification struct {
	GoogleMapsURL string  `json:"googleMapsUrl,omitempty" bson:"googleMapsUrl,omitempty"`
	Latitude      float64 `json:"latitude,omitempty" bson:"latitude,omitempty"`
	Longitude     float64 `json:"longitude,omitempty" bson:"longitude,omitempty"`
	Verified      bool    `json:"verified" bson:"verified"`
}

// SocialMedia liên kết mạng xã hội
type SocialMedia struct {
	Facebook  string `json:"facebook,omitempty" bson:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty" bson:"instagram,omitempty"`
	TikTok    string `json:"tiktok,omitempty" bson:"tiktok,omitempty"`
	YouTube   string `json:"youtube,omitempty" bson:"youtube,omitempty"`
}

// StoreSettings cấu hình vận hành: tiền tệ, ngôn ngữ
type StoreSettings struct {
	Currency      string   `json:"currency" bson:"currency"`           // Mã tiền tệ (mad)
	Locales       []string `json:"locales" bson:"locales"`             // Ngôn ngữ hỗ trợ (ar, fr)
	DefaultLocale string   `json:"defaultLocale" bson:"defaultLocale"` // Ngôn ngữ mặc định
	CODEnabled    bool     `json:"codEnabled" bson:"codEnabled"`       // Cho phép thanh toán khi nhận hàng
	CardEnabled   bool     `json:"cardEnabled" bson:"cardEnabled"`     // Cho phép thanh toán thẻ
	FreeShipping  bool     `json:"freeShipping" bson:"freeShipping"`   // Miễn phí giao hàng
	ShippingFee   float64  `json:"shippingFee" bson:"shippingFee"`     // Phí giao hàng mặc định
}

// TranslatedContent nội dung SEO song ngữ
type TranslatedContent struct {
	MetaTitle       catalogmodels.LocalizedText `json:"metaTitle,omitempty" bson:"metaTitle,omitempty"`
	MetaDescription catalogmodels.LocalizedText `json:"metaDescription,omitempty" bson:"metaDescription,omitempty"`
	Keywords        []string                    `json:"keywords,omitempty" bson:"keywords,omitempty"`
}

// SiteConfig là document cấu hình duy nhất của cửa hàng.
// IsSystem=true: không thể xóa qua API, chỉ cập nhật từng sub-object.
type SiteConfig struct {
	ID                   string               `json:"id" bson:"_id"`
	BasicInfo            BasicInfo            `json:"basicInfo" bson:"basicInfo"`
	BrandAssets          BrandAssets          `json:"brandAssets" bson:"brandAssets"`
	ContactInfo          ContactInfo          `json:"contactInfo" bson:"contactInfo"`
	LocationVerification LocationVerification `json:"locationVerification" bson:"locationVerification"`
	SocialMedia          SocialMedia          `json:"socialMedia" bson:"socialMedia"`
	StoreSettings        StoreSettings        `json:"storeSettings" bson:"storeSettings"`
	TranslatedContent    TranslatedContent    `json:"translatedContent" bson:"translatedContent"`
	IsSystem             bool                 `json:"isSystem" bson:"isSystem"`
	CreatedAt            int64                `json:"createdAt" bson:"createdAt"`
	UpdatedAt            int64                `json:"updatedAt" bson:"updatedAt"`
}
