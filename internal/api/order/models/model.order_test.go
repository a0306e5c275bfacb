// Package models - Test bảng chuyển trạng thái đơn hàng.
package models

import "testing"

// allowedTransitions liệt kê toàn bộ cặp chuyển trạng thái hợp lệ.
// Mọi cặp khác phải bị từ chối.
var allowedTransitions = map[[2]string]bool{
	{OrderStatusPending, OrderStatusPaid}:      true,
	{OrderStatusPending, OrderStatusShipped}:   true,
	{OrderStatusPending, OrderStatusCancelled}: true,
	{OrderStatusPaid, OrderStatusShipped}:      true,
	{OrderStatusPaid, OrderStatusCancelled}:    true,
	{OrderStatusShipped, OrderStatusDelivered}: true,
}

var allStatuses = []string{
	OrderStatusPending,
	OrderStatusPaid,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

func TestCanTransition_ExactTable(t *testing.T) {
	for _, from := range allStatuses {
		for _, to := range allStatuses {
			want := allowedTransitions[[2]string{from, to}]
			got := CanTransition(from, to)
			if got != want {
				t.Errorf("CanTransition(%q, %q) = %v, muốn %v", from, to, got, want)
			}
		}
	}
}

func TestCanTransition_TerminalStates(t *testing.T) {
	for _, from := range []string{OrderStatusDelivered, OrderStatusCancelled} {
		for _, to := range allStatuses {
			if CanTransition(from, to) {
				t.Errorf("trạng thái cuối %q không được chuyển sang %q", from, to)
			}
		}
	}
}

func TestCanTransition_SelfTransitionRejected(t *testing.T) {
	for _, status := range allStatuses {
		if CanTransition(status, status) {
			t.Errorf("chuyển %q sang chính nó phải bị từ chối", status)
		}
	}
}

func TestCanTransition_UnknownStatus(t *testing.T) {
	if CanTransition("refunded", OrderStatusPaid) {
		t.Error("trạng thái không tồn tại không được phép chuyển đi đâu")
	}
	if CanTransition(OrderStatusPending, "refunded") {
		t.Error("không được phép chuyển sang trạng thái không tồn tại")
	}
}

func TestIsValidOrderStatus(t *testing.T) {
	for _, status := range allStatuses {
		if !IsValidOrderStatus(status) {
			t.Errorf("%q phải là trạng thái hợp lệ", status)
		}
	}
	for _, status := range []string{"", "refunded", "PENDING", "done"} {
		if IsValidOrderStatus(status) {
			t.Errorf("%q không được là trạng thái hợp lệ", status)
		}
	}
}
