package entities

import "testing"

func TestNormalizeStatus(t *testing.T) {
	cases := map[string]PaymentStatus{
		"pending":      StatusPending,
		"in_process":   StatusInProcess,
		"approved":     StatusApproved,
		"rejected":     StatusRejected,
		"cancelled":    StatusCancelled,
		"refunded":     StatusUnknown,
		"charged_back": StatusUnknown,
		"":             StatusUnknown,
		"garbage":      StatusUnknown,
	}
	for in, want := range cases {
		if got := NormalizeStatus(in); got != want {
			t.Errorf("NormalizeStatus(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCanTransition_Forward(t *testing.T) {
	allowed := []struct{ from, to PaymentStatus }{
		{StatusPending, StatusInProcess},
		{StatusPending, StatusApproved},
		{StatusPending, StatusRejected},
		{StatusPending, StatusCancelled},
		{StatusPending, StatusUnknown},
		{StatusUnknown, StatusPending},
		{StatusUnknown, StatusApproved},
		{StatusInProcess, StatusApproved},
		{StatusInProcess, StatusRejected},
		{StatusInProcess, StatusCancelled},
	}
	for _, tc := range allowed {
		if !CanTransition(tc.from, tc.to) {
			t.Errorf("expected %s -> %s to be allowed", tc.from, tc.to)
		}
	}
}

func TestCanTransition_Idempotent(t *testing.T) {
	for _, s := range []PaymentStatus{StatusPending, StatusInProcess, StatusApproved, StatusRejected, StatusCancelled, StatusUnknown} {
		if !CanTransition(s, s) {
			t.Errorf("expected %s -> %s (same status) to be allowed", s, s)
		}
	}
}

func TestCanTransition_NeverLeavesTerminal(t *testing.T) {
	terminals := []PaymentStatus{StatusApproved, StatusRejected, StatusCancelled}
	all := []PaymentStatus{StatusPending, StatusInProcess, StatusApproved, StatusRejected, StatusCancelled, StatusUnknown}
	for _, from := range terminals {
		for _, to := range all {
			if from == to {
				continue
			}
			if CanTransition(from, to) {
				t.Errorf("expected terminal %s -> %s to be rejected", from, to)
			}
		}
	}
}

func TestCanTransition_NeverMovesBackwards(t *testing.T) {
	backwards := []struct{ from, to PaymentStatus }{
		{StatusInProcess, StatusPending},
		{StatusInProcess, StatusUnknown},
		{StatusApproved, StatusPending},
		{StatusRejected, StatusInProcess},
	}
	for _, tc := range backwards {
		if CanTransition(tc.from, tc.to) {
			t.Errorf("expected %s -> %s to be rejected", tc.from, tc.to)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	for s, want := range map[PaymentStatus]bool{
		StatusPending:   false,
		StatusInProcess: false,
		StatusUnknown:   false,
		StatusApproved:  true,
		StatusRejected:  true,
		StatusCancelled: true,
	} {
		if got := s.IsTerminal(); got != want {
			t.Errorf("IsTerminal(%s) = %v, want %v", s, got, want)
		}
	}
}
