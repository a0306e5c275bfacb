// Package sitesvc - service domain site (section landing page, cấu hình cửa hàng).
package sitesvc

import (
	"context"
	"fmt"

	basesvc "souk_commerce/internal/api/base/service"
	sitedto "souk_commerce/internal/api/site/dto"
	models "souk_commerce/internal/api/site/models"
	"souk_commerce/internal/common"
	"souk_commerce/internal/global"
	"souk_commerce/internal/storage"

	"github.com/sirupsen/logrus"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SectionService là service quản lý section trên landing page
type SectionService struct {
	*basesvc.BaseServiceMongoImpl[models.Section]
}

// NewSectionService tạo mới SectionService
func NewSectionService() (*SectionService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Sections)
	if !exist {
		return nil, fmt.Errorf("failed to get sections collection: %v", common.ErrNotFound)
	}
	return &SectionService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Section](collection),
	}, nil
}

// FindActiveOrdered trả về các section đang bật, sắp theo thứ tự hiển thị.
// Storefront dùng để render landing page.
func (s *SectionService) FindActiveOrdered(ctx context.Context) ([]models.Section, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	return s.Find(ctx, bson.M{"isActive": true}, opts)
}

// Create tạo section mới, section mặc định đang bật trừ khi admin tắt rõ ràng
func (s *SectionService) Create(ctx context.Context, input *sitedto.SectionCreateInput) (models.Section, error) {
	section := models.Section{
		Type:     input.Type,
		Data:     input.Data,
		IsActive: input.IsActive == nil || *input.IsActive,
		Order:    input.Order,
	}
	return s.InsertOne(ctx, section)
}

// Update cập nhật section theo id, chỉ $set các trường có trong input
func (s *SectionService) Update(ctx context.Context, id primitive.ObjectID, input *sitedto.SectionUpdateInput) (models.Section, error) {
	var zero models.Section

	existing, err := s.FindOne(ctx, bson.M{"_id": id}, nil)
	if err != nil {
		return zero, err
	}

	updateData := &basesvc.UpdateData{Set: map[string]interface{}{}}
	if input.Type != "" {
		updateData.Set["type"] = input.Type
	}
	if input.Data != nil {
		if existing.Data.Image != "" && existing.Data.Image != input.Data.Image {
			deleteBlobBestEffort(ctx, existing.Data.Image, "section")
		}
		updateData.Set["data"] = *input.Data
	}
	if input.IsActive != nil {
		updateData.Set["isActive"] = *input.IsActive
	}
	if input.Order != nil {
		updateData.Set["order"] = *input.Order
	}

	return s.UpdateById(ctx, id, updateData)
}

// Delete xóa section theo id, dọn ảnh kèm theo best effort
func (s *SectionService) Delete(ctx context.Context, id primitive.ObjectID) error {
	existing, err := s.FindOne(ctx, bson.M{"_id": id}, nil)
	if err != nil {
		return err
	}
	if err := s.DeleteById(ctx, id); err != nil {
		return err
	}
	deleteBlobBestEffort(ctx, existing.Data.Image, "section")
	return nil
}

// deleteBlobBestEffort xóa blob trên object storage, chỉ log warn khi thất bại
func deleteBlobBestEffort(ctx context.Context, imageURL string, kind string) {
	if imageURL == "" {
		return
	}
	client, err := storage.GetClient()
	if err != nil {
		logrus.WithField("kind", kind).Warn("Storage chưa sẵn sàng, bỏ qua xóa blob")
		return
	}
	if err := client.DeleteByURL(ctx, imageURL); err != nil {
		logrus.WithFields(logrus.Fields{
			"kind":  kind,
			"url":   imageURL,
			"error": err.Error(),
		}).Warn("Xóa blob thất bại, blob có thể bị orphan")
	}
}
