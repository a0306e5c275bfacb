// Package ordersvc - Test sinh mã đơn hàng.
package ordersvc

import (
	"strings"
	"testing"
)

func TestNewOrderCode_Format(t *testing.T) {
	code := NewOrderCode()
	if !strings.HasPrefix(code, "SK-") {
		t.Errorf("mã đơn phải bắt đầu bằng SK-, nhận được %q", code)
	}
	if len(code) != len("SK-")+8 {
		t.Errorf("mã đơn phải có 8 ký tự sau tiền tố, nhận được %q", code)
	}
	if code != strings.ToUpper(code) {
		t.Errorf("mã đơn phải viết hoa toàn bộ, nhận được %q", code)
	}
}

func TestNewOrderCode_Unique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		code := NewOrderCode()
		if seen[code] {
			t.Fatalf("mã đơn %q bị trùng sau %d lần sinh", code, i)
		}
		seen[code] = true
	}
}
