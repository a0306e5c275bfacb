package middleware

import (
	"context"
	"strings"

	"souk_commerce/internal/common"
	"souk_commerce/internal/logger"
	"souk_commerce/internal/utility"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// TokenVerifier xác minh Firebase ID token và trả về UID của người dùng.
// Interface để có thể thay thế bằng stub trong test.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (string, error)
}

// AdminProfile là thông tin tối thiểu của người dùng cần cho việc kiểm tra quyền quản trị
type AdminProfile struct {
	UserID    string // ID của user trong MongoDB (hex)
	Email     string
	IsAdmin   bool
	IsBlock   bool
	BlockNote string
}

// ProfileFinder tra cứu hồ sơ người dùng theo Firebase UID
type ProfileFinder interface {
	FindAdminProfile(ctx context.Context, firebaseUID string) (AdminProfile, error)
}

// FirebaseTokenVerifier là TokenVerifier mặc định, dùng Firebase Admin SDK
type FirebaseTokenVerifier struct{}

// VerifyIDToken xác minh ID token với Firebase và trả về UID
func (v *FirebaseTokenVerifier) VerifyIDToken(ctx context.Context, idToken string) (string, error) {
	token, err := utility.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", err
	}
	return token.UID, nil
}

// AdminGate middleware bảo vệ các route back-office.
// Thứ tự kiểm tra:
//  1. Header Authorization phải có dạng "Bearer <token>" (kiểm tra TRƯỚC khi gọi Firebase)
//  2. Token phải được Firebase xác minh hợp lệ → 401 nếu không
//  3. User phải tồn tại trong DB, không bị khóa và có isAdmin = true → 403 nếu không
//
// Khi qua được gate, user_id / firebase_uid / user_email được lưu vào Locals.
func AdminGate(verifier TokenVerifier, profiles ProfileFinder) fiber.Handler {
	return func(c fiber.Ctx) error {
		// Lấy token từ header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":   c.Path(),
				"method": c.Method(),
			}).Warn("❌ [AUTH] Missing Authorization header")
			HandleErrorResponse(c, common.ErrTokenMissing)
			return nil
		}

		// Kiểm tra định dạng token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		idToken := parts[1]

		// Xác minh token với Firebase
		uid, err := verifier.VerifyIDToken(c.Context(), idToken)
		if err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":  c.Path(),
				"error": err.Error(),
			}).Warn("❌ [AUTH] Firebase token verification failed")
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		// Tra cứu hồ sơ người dùng trong DB. Token hợp lệ nhưng không có
		// hồ sơ thì trả cùng response 403 với user thường, không lộ việc
		// tài khoản có tồn tại hay không
		profile, err := profiles.FindAdminProfile(c.Context(), uid)
		if err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"firebase_uid": uid,
				"path":         c.Path(),
			}).Warn("❌ [AUTH] User profile not found")
			HandleErrorResponse(c, common.ErrNotAdmin)
			return nil
		}

		// Kiểm tra user có bị khóa không
		if profile.IsBlock {
			HandleErrorResponse(c, common.NewError(
				common.ErrCodeAuthCredentials,
				"Tài khoản đã bị khóa: "+profile.BlockNote,
				common.StatusForbidden,
				nil,
			))
			return nil
		}

		// Kiểm tra quyền quản trị
		if !profile.IsAdmin {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"firebase_uid": uid,
				"user_email":   profile.Email,
				"path":         c.Path(),
			}).Warn("❌ [AUTH] User is not an admin")
			HandleErrorResponse(c, common.ErrNotAdmin)
			return nil
		}

		// Lưu thông tin user vào context để handler sử dụng
		c.Locals("user_id", profile.UserID)
		c.Locals("firebase_uid", uid)
		c.Locals("user_email", profile.Email)
		return c.Next()
	}
}
