package catalogsvc

import (
	"context"
	"fmt"

	basesvc "souk_commerce/internal/api/base/service"
	catalogdto "souk_commerce/internal/api/catalog/dto"
	models "souk_commerce/internal/api/catalog/models"
	"souk_commerce/internal/common"
	"souk_commerce/internal/global"
	"souk_commerce/internal/utility"

	"github.com/shopspring/decimal"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductService là service quản lý sản phẩm
type ProductService struct {
	*basesvc.BaseServiceMongoImpl[models.Product]
}

// NewProductService tạo mới ProductService
func NewProductService() (*ProductService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Products)
	if !exist {
		return nil, fmt.Errorf("failed to get products collection: %v", common.ErrNotFound)
	}
	return &ProductService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Product](collection),
	}, nil
}

// Create tạo sản phẩm mới, slug sinh từ tên tiếng Ả Rập.
// allowDirectPurchase và allowAddToCart mặc định true khi không gửi lên.
func (s *ProductService) Create(ctx context.Context, input *catalogdto.ProductCreateInput) (models.Product, error) {
	product := models.Product{
		Name:        input.Name,
		Description: input.Description,
		Slug:        slugFromName(input.Name),
		Price:       *input.Price,
		Image:       input.Image,
		SubImages:   input.SubImages,
		Keywords:    input.Keywords,
		Variants:    input.Variants,
		IsNew:       input.IsNew,
	}
	if input.OriginalPrice != nil {
		product.OriginalPrice = input.OriginalPrice
	}
	if input.CategoryID != "" {
		product.CategoryID = utility.String2ObjectID(input.CategoryID)
	}
	product.AllowDirectPurchase = input.AllowDirectPurchase == nil || *input.AllowDirectPurchase
	product.AllowAddToCart = input.AllowAddToCart == nil || *input.AllowAddToCart

	return s.InsertOne(ctx, product)
}

// Update cập nhật sản phẩm theo id, sinh lại slug khi đổi tên.
// Ảnh đại diện cũ bị thay thế sẽ được xóa khỏi storage best-effort.
func (s *ProductService) Update(ctx context.Context, id primitive.ObjectID, input *catalogdto.ProductUpdateInput) (models.Product, error) {
	existing, err := s.FindOneById(ctx, id)
	if err != nil {
		if err == common.ErrNotFound {
			return existing, common.ErrProductNotFound
		}
		return existing, err
	}

	if input.Image != "" && existing.Image != "" && existing.Image != input.Image {
		deleteBlobBestEffort(ctx, existing.Image, "product")
	}

	return s.UpdateById(ctx, id, productUpdateData(input))
}

// productUpdateData gom các field có gửi lên thành UpdateData.
// Giá 0 hợp lệ, originalPrice = 0 gỡ giảm giá khỏi sản phẩm.
func productUpdateData(input *catalogdto.ProductUpdateInput) *basesvc.UpdateData {
	updateData := &basesvc.UpdateData{Set: make(map[string]interface{})}
	if !input.Name.IsEmpty() {
		updateData.Set["name"] = input.Name
		updateData.Set["slug"] = slugFromName(input.Name)
	}
	if !input.Description.IsEmpty() {
		updateData.Set["description"] = input.Description
	}
	if input.Price != nil {
		updateData.Set["price"] = *input.Price
	}
	if input.OriginalPrice != nil {
		if *input.OriginalPrice > 0 {
			updateData.Set["originalPrice"] = *input.OriginalPrice
		} else {
			updateData.Unset = map[string]interface{}{"originalPrice": ""}
		}
	}
	if input.Image != "" {
		updateData.Set["image"] = input.Image
	}
	if input.SubImages != nil {
		updateData.Set["subImages"] = input.SubImages
	}
	if input.CategoryID != "" {
		updateData.Set["categoryId"] = utility.String2ObjectID(input.CategoryID)
	}
	if input.Keywords != nil {
		updateData.Set["keywords"] = input.Keywords
	}
	if input.Variants != nil {
		updateData.Set["variants"] = input.Variants
	}
	if input.IsNew != nil {
		updateData.Set["isNew"] = *input.IsNew
	}
	if input.AllowDirectPurchase != nil {
		updateData.Set["allowDirectPurchase"] = *input.AllowDirectPurchase
	}
	if input.AllowAddToCart != nil {
		updateData.Set["allowAddToCart"] = *input.AllowAddToCart
	}
	return updateData
}

// Delete xóa sản phẩm theo id. Toàn bộ ảnh của sản phẩm được xóa khỏi
// storage best-effort sau khi document đã xóa thành công.
func (s *ProductService) Delete(ctx context.Context, id primitive.ObjectID) error {
	existing, err := s.FindOneById(ctx, id)
	if err != nil {
		if err == common.ErrNotFound {
			return common.ErrProductNotFound
		}
		return err
	}
	if err := s.DeleteById(ctx, id); err != nil {
		return err
	}
	deleteBlobBestEffort(ctx, existing.Image, "product")
	for _, img := range existing.SubImages {
		deleteBlobBestEffort(ctx, img, "product")
	}
	return nil
}

// FindBySlug tìm sản phẩm theo slug công khai
func (s *ProductService) FindBySlug(ctx context.Context, slug string) (models.Product, error) {
	product, err := s.FindOne(ctx, map[string]interface{}{"slug": slug}, nil)
	if err != nil {
		if err == common.ErrNotFound {
			return product, common.ErrProductNotFound
		}
		return product, err
	}
	return product, nil
}

// ResolveUnitPrice xác định đơn giá của một sản phẩm (hoặc biến thể của nó)
// từ dữ liệu server, không tin giá do client gửi lên.
// Parameters:
//   - ctx: Context cho việc hủy bỏ hoặc timeout
//   - productID: ID sản phẩm dạng hex string
//   - variantID: ID biến thể, chuỗi rỗng nếu mua sản phẩm gốc
//
// Returns:
//   - decimal.Decimal: Đơn giá
//   - *models.Product: Sản phẩm đã resolve (dùng cho snapshot)
//   - error: ErrProductNotFound khi id hoặc biến thể không tồn tại
func (s *ProductService) ResolveUnitPrice(ctx context.Context, productID string, variantID string) (decimal.Decimal, *models.Product, error) {
	oid := utility.String2ObjectID(productID)
	if oid.IsZero() {
		return decimal.Zero, nil, common.ErrProductNotFound
	}

	product, err := s.FindOneById(ctx, oid)
	if err != nil {
		if err == common.ErrNotFound {
			return decimal.Zero, nil, common.ErrProductNotFound
		}
		return decimal.Zero, nil, err
	}

	price := product.Price
	if variantID != "" {
		variant := product.FindVariant(variantID)
		if variant == nil {
			return decimal.Zero, nil, common.ErrProductNotFound
		}
		price = variant.Price
	}

	return decimal.NewFromFloat(price), &product, nil
}
