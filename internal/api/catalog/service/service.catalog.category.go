// Package catalogsvc - service domain catalog (sản phẩm, danh mục).
package catalogsvc

import (
	"context"
	"fmt"

	basesvc "souk_commerce/internal/api/base/service"
	catalogdto "souk_commerce/internal/api/catalog/dto"
	models "souk_commerce/internal/api/catalog/models"
	"souk_commerce/internal/common"
	"souk_commerce/internal/global"
	"souk_commerce/internal/storage"
	"souk_commerce/internal/utility"

	"github.com/sirupsen/logrus"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CategoryService là service quản lý danh mục sản phẩm
type CategoryService struct {
	*basesvc.BaseServiceMongoImpl[models.Category]
}

// NewCategoryService tạo mới CategoryService
func NewCategoryService() (*CategoryService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Categories)
	if !exist {
		return nil, fmt.Errorf("failed to get categories collection: %v", common.ErrNotFound)
	}
	return &CategoryService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Category](collection),
	}, nil
}

// slugFromName sinh slug từ tên song ngữ, ưu tiên tiếng Ả Rập
func slugFromName(name models.LocalizedText) string {
	if name.Ar != "" {
		return utility.Slugify(name.Ar)
	}
	return utility.Slugify(name.Fr)
}

// Create tạo danh mục mới, slug được sinh từ tên tiếng Ả Rập
func (s *CategoryService) Create(ctx context.Context, input *catalogdto.CategoryCreateInput) (models.Category, error) {
	category := models.Category{
		Name:        input.Name,
		Description: input.Description,
		Slug:        slugFromName(input.Name),
		Image:       input.Image,
	}
	return s.InsertOne(ctx, category)
}

// Update cập nhật danh mục theo id. Khi đổi tên, slug được sinh lại
// nên URL công khai của danh mục có thể thay đổi.
// Ảnh cũ được xóa khỏi storage best-effort khi ảnh mới thay thế.
func (s *CategoryService) Update(ctx context.Context, id primitive.ObjectID, input *catalogdto.CategoryUpdateInput) (models.Category, error) {
	existing, err := s.FindOneById(ctx, id)
	if err != nil {
		return existing, err
	}

	updateData := &basesvc.UpdateData{Set: make(map[string]interface{})}
	if !input.Name.IsEmpty() {
		updateData.Set["name"] = input.Name
		updateData.Set["slug"] = slugFromName(input.Name)
	}
	if !input.Description.IsEmpty() {
		updateData.Set["description"] = input.Description
	}
	if input.Image != "" {
		updateData.Set["image"] = input.Image
		if existing.Image != "" && existing.Image != input.Image {
			deleteBlobBestEffort(ctx, existing.Image, "category")
		}
	}

	return s.UpdateById(ctx, id, updateData)
}

// Delete xóa danh mục theo id. Danh mục còn sản phẩm trực thuộc bị chặn xóa
// bởi relationship check ở tầng base. Ảnh được xóa khỏi storage best-effort.
func (s *CategoryService) Delete(ctx context.Context, id primitive.ObjectID) error {
	existing, err := s.FindOneById(ctx, id)
	if err != nil {
		return err
	}
	if err := s.DeleteById(ctx, id); err != nil {
		return err
	}
	deleteBlobBestEffort(ctx, existing.Image, "category")
	return nil
}

// FindBySlug tìm danh mục theo slug công khai
func (s *CategoryService) FindBySlug(ctx context.Context, slug string) (models.Category, error) {
	return s.FindOne(ctx, map[string]interface{}{"slug": slug}, nil)
}

// deleteBlobBestEffort xóa một blob khỏi storage theo URL.
// Lỗi chỉ được log, không bao giờ làm hỏng thao tác dữ liệu đã thành công.
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
