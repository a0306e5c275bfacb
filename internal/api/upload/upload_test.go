// Package upload - Test sinh object key và whitelist phần mở rộng.
package upload

import (
	"strings"
	"testing"
)

func TestNewObjectKey_KeepsExtension(t *testing.T) {
	key := NewObjectKey("Savon Noir.JPG")
	if !strings.HasSuffix(key, ".jpg") {
		t.Errorf("object key phải giữ phần mở rộng viết thường, nhận được %q", key)
	}
	if strings.Contains(key, " ") {
		t.Errorf("object key không được chứa khoảng trắng, nhận được %q", key)
	}
}

func TestNewObjectKey_Unique(t *testing.T) {
	if NewObjectKey("a.png") == NewObjectKey("a.png") {
		t.Error("hai lần sinh key cho cùng tên file phải khác nhau")
	}
}

func TestIsAllowedExtension(t *testing.T) {
	for _, name := range []string{"a.jpg", "b.JPEG", "c.png", "d.webp", "e.gif", "f.svg"} {
		if !IsAllowedExtension(name) {
			t.Errorf("%q phải được phép upload", name)
		}
	}
	for _, name := range []string{"a.exe", "b.pdf", "c", "d.php", ".env"} {
		if IsAllowedExtension(name) {
			t.Errorf("%q không được phép upload", name)
		}
	}
}
