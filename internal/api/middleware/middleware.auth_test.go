// Package middleware - Test AdminGate: thứ tự kiểm tra header → token → hồ sơ admin.
package middleware

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
)

// stubVerifier giả lập Firebase token verifier
type stubVerifier struct {
	uid    string
	err    error
	called bool
}

func (s *stubVerifier) VerifyIDToken(ctx context.Context, idToken string) (string, error) {
	s.called = true
	if s.err != nil {
		return "", s.err
	}
	return s.uid, nil
}

// stubProfiles giả lập tra cứu hồ sơ người dùng
type stubProfiles struct {
	profile AdminProfile
	err     error
}

func (s *stubProfiles) FindAdminProfile(ctx context.Context, firebaseUID string) (AdminProfile, error) {
	if s.err != nil {
		return AdminProfile{}, s.err
	}
	return s.profile, nil
}

func newGateApp(verifier TokenVerifier, profiles ProfileFinder) *fiber.App {
	app := fiber.New()
	app.Use(AdminGate(verifier, profiles))
	app.Get("/admin/ping", func(c fiber.Ctx) error {
		uid, _ := c.Locals("user_id").(string)
		return c.SendString(uid)
	})
	return app
}

func TestAdminGate_MissingAuthorizationHeader(t *testing.T) {
	verifier := &stubVerifier{uid: "uid-1"}
	app := newGateApp(verifier, &stubProfiles{})

	req := httptest.NewRequest("GET", "/admin/ping", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test lỗi: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Errorf("thiếu header Authorization phải trả về 401, nhận được %d", resp.StatusCode)
	}
	if verifier.called {
		t.Error("không được gọi verifier khi thiếu header Authorization")
	}
}

func TestAdminGate_MalformedAuthorizationHeader(t *testing.T) {
	verifier := &stubVerifier{uid: "uid-1"}
	app := newGateApp(verifier, &stubProfiles{})

	for _, header := range []string{"abc123", "Basic abc123", "Bearer"} {
		req := httptest.NewRequest("GET", "/admin/ping", nil)
		req.Header.Set("Authorization", header)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test lỗi: %v", err)
		}
		if resp.StatusCode != 401 {
			t.Errorf("header %q phải trả về 401, nhận được %d", header, resp.StatusCode)
		}
	}
	if verifier.called {
		t.Error("không được gọi verifier khi header sai định dạng")
	}
}

func TestAdminGate_InvalidToken(t *testing.T) {
	verifier := &stubVerifier{err: errors.New("token expired")}
	app := newGateApp(verifier, &stubProfiles{})

	req := httptest.NewRequest("GET", "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test lỗi: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Errorf("token không hợp lệ phải trả về 401, nhận được %d", resp.StatusCode)
	}
	if !verifier.called {
		t.Error("verifier phải được gọi khi header đúng định dạng")
	}
}

func TestAdminGate_UserNotFound(t *testing.T) {
	verifier := &stubVerifier{uid: "uid-1"}
	profiles := &stubProfiles{err: errors.New("not found")}
	app := newGateApp(verifier, profiles)

	req := httptest.NewRequest("GET", "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test lỗi: %v", err)
	}
	// Cùng 403 với user thường để không lộ việc tài khoản có tồn tại hay không
	if resp.StatusCode != 403 {
		t.Errorf("token hợp lệ nhưng không có hồ sơ phải trả về 403, nhận được %d", resp.StatusCode)
	}
}

func TestAdminGate_NonAdminRejected(t *testing.T) {
	verifier := &stubVerifier{uid: "uid-1"}
	profiles := &stubProfiles{profile: AdminProfile{UserID: "u1", IsAdmin: false}}
	app := newGateApp(verifier, profiles)

	req := httptest.NewRequest("GET", "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test lỗi: %v", err)
	}
	if resp.StatusCode != 403 {
		t.Errorf("user không phải admin phải trả về 403, nhận được %d", resp.StatusCode)
	}
}

func TestAdminGate_BlockedAdminRejected(t *testing.T) {
	verifier := &stubVerifier{uid: "uid-1"}
	profiles := &stubProfiles{profile: AdminProfile{UserID: "u1", IsAdmin: true, IsBlock: true, BlockNote: "vi phạm"}}
	app := newGateApp(verifier, profiles)

	req := httptest.NewRequest("GET", "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test lỗi: %v", err)
	}
	if resp.StatusCode != 403 {
		t.Errorf("admin bị khóa phải trả về 403, nhận được %d", resp.StatusCode)
	}
}

func TestAdminGate_AdminAllowed(t *testing.T) {
	verifier := &stubVerifier{uid: "uid-1"}
	profiles := &stubProfiles{profile: AdminProfile{UserID: "u1", Email: "admin@example.com", IsAdmin: true}}
	app := newGateApp(verifier, profiles)

	req := httptest.NewRequest("GET", "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test lỗi: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("admin hợp lệ phải được đi qua gate, nhận được %d", resp.StatusCode)
	}
}
