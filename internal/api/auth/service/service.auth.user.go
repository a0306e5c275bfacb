// Package authsvc - service người dùng (User).
package authsvc

import (
	"context"
	"errors"
	"fmt"

	authdto "souk_commerce/internal/api/auth/dto"
	models "souk_commerce/internal/api/auth/models"
	basesvc "souk_commerce/internal/api/base/service"
	"souk_commerce/internal/api/middleware"
	"souk_commerce/internal/common"
	"souk_commerce/internal/global"
	"souk_commerce/internal/utility"

	"github.com/sirupsen/logrus"

	"go.mongodb.org/mongo-driver/bson"
)

// UserService là cấu trúc chứa các phương thức liên quan đến người dùng
type UserService struct {
	*basesvc.BaseServiceMongoImpl[models.User]
}

// NewUserService tạo mới UserService
func NewUserService() (*UserService, error) {
	userCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Users)
	if !exist {
		return nil, fmt.Errorf("failed to get users collection: %v", common.ErrNotFound)
	}

	return &UserService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.User](userCollection),
	}, nil
}

// SessionWithFirebase xác thực phiên làm việc bằng Firebase ID token.
// Verify token với Firebase, đồng bộ hồ sơ vào MongoDB (upsert theo firebaseUid)
// và trả về hồ sơ người dùng. Nếu UID trùng với FIREBASE_ADMIN_UID thì tự gán isAdmin.
func (s *UserService) SessionWithFirebase(ctx context.Context, input *authdto.SessionInput) (*models.User, error) {
	token, err := utility.VerifyIDToken(ctx, input.IDToken)
	if err != nil {
		logrus.WithError(err).Error("SessionWithFirebase: Lỗi verify Firebase ID token")
		return nil, common.NewError(common.ErrCodeAuthCredentials, "Token không hợp lệ", common.StatusUnauthorized, err)
	}

	firebaseUser, err := utility.GetUserByUID(ctx, token.UID)
	if err != nil {
		logrus.WithFields(logrus.Fields{"firebase_uid": token.UID, "error": err.Error()}).Error("SessionWithFirebase: Lỗi lấy thông tin user từ Firebase")
		return nil, err
	}

	// Đồng bộ hồ sơ từ Firebase vào MongoDB
	updateData := &basesvc.UpdateData{Set: make(map[string]interface{})}
	updateData.Set["firebaseUid"] = token.UID
	updateData.Set["emailVerified"] = firebaseUser.EmailVerified

	if firebaseUser.DisplayName != "" {
		updateData.Set["name"] = firebaseUser.DisplayName
	}
	if firebaseUser.PhotoURL != "" {
		updateData.Set["avatarUrl"] = firebaseUser.PhotoURL
	}
	if firebaseUser.Email != "" {
		updateData.Set["email"] = firebaseUser.Email
	}

	// Bootstrap admin: UID khớp với cấu hình FIREBASE_ADMIN_UID thì luôn là admin
	if global.ServerConfig != nil && global.ServerConfig.FirebaseAdminUID != "" && token.UID == global.ServerConfig.FirebaseAdminUID {
		updateData.Set["isAdmin"] = true
	}

	filter := bson.M{"firebaseUid": token.UID}
	user, err := s.BaseServiceMongoImpl.Upsert(ctx, filter, updateData)
	if err != nil {
		if errors.Is(err, common.ErrDuplicate) {
			// Email đã thuộc về hồ sơ khác (unique sparse trên email)
			logrus.WithFields(logrus.Fields{"firebase_uid": token.UID, "email": firebaseUser.Email}).Warn("SessionWithFirebase: Email đã được sử dụng bởi tài khoản khác")
			return nil, common.NewError(common.ErrCodeAuthCredentials, "Email đã được sử dụng bởi tài khoản khác", common.StatusConflict, nil)
		}
		logrus.WithFields(logrus.Fields{"filter": filter, "error": err.Error()}).Error("SessionWithFirebase: Lỗi khi upsert hồ sơ")
		return nil, err
	}

	if user.IsBlock {
		return nil, common.NewError(common.ErrCodeAuthCredentials, "Tài khoản đã bị khóa: "+user.BlockNote, common.StatusForbidden, nil)
	}

	logrus.WithFields(logrus.Fields{"user_id": user.ID.Hex(), "email": user.Email}).Info("SessionWithFirebase: Xác thực phiên thành công")
	return &user, nil
}

// FindByFirebaseUID tìm hồ sơ người dùng theo Firebase UID
func (s *UserService) FindByFirebaseUID(ctx context.Context, firebaseUID string) (models.User, error) {
	return s.BaseServiceMongoImpl.FindOne(ctx, bson.M{"firebaseUid": firebaseUID}, nil)
}

// FindAdminProfile tra cứu hồ sơ phục vụ AdminGate (implement middleware.ProfileFinder)
func (s *UserService) FindAdminProfile(ctx context.Context, firebaseUID string) (middleware.AdminProfile, error) {
	user, err := s.FindByFirebaseUID(ctx, firebaseUID)
	if err != nil {
		return middleware.AdminProfile{}, err
	}
	return middleware.AdminProfile{
		UserID:    user.ID.Hex(),
		Email:     user.Email,
		IsAdmin:   user.IsAdmin,
		IsBlock:   user.IsBlock,
		BlockNote: user.BlockNote,
	}, nil
}

// BlockUser khóa người dùng theo email
func (s *UserService) BlockUser(ctx context.Context, input *authdto.BlockUserInput) (models.User, error) {
	user, err := s.BaseServiceMongoImpl.FindOne(ctx, bson.M{"email": input.Email}, nil)
	if err != nil {
		return user, err
	}
	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"isBlock":   true,
			"blockNote": input.Note,
		},
	}
	return s.BaseServiceMongoImpl.UpdateById(ctx, user.ID, updateData)
}

// UnBlockUser mở khóa người dùng theo email
func (s *UserService) UnBlockUser(ctx context.Context, input *authdto.UnBlockUserInput) (models.User, error) {
	user, err := s.BaseServiceMongoImpl.FindOne(ctx, bson.M{"email": input.Email}, nil)
	if err != nil {
		return user, err
	}
	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"isBlock":   false,
			"blockNote": "",
		},
	}
	return s.BaseServiceMongoImpl.UpdateById(ctx, user.ID, updateData)
}
