package domain

import "testing"

func TestIsWorkerTrade(t *testing.T) {
	for _, trade := range WorkerTrades {
		if !IsWorkerTrade(trade) {
			t.Fatalf("expected %q to be a worker trade", trade)
		}
	}
	for _, role := range []string{RoleUser, RoleAdmin, "astronaut", ""} {
		if IsWorkerTrade(role) {
			t.Fatalf("expected %q not to be a worker trade", role)
		}
	}
}

func TestIsValidRole(t *testing.T) {
	valid := append([]string{RoleUser, RoleAdmin}, WorkerTrades...)
	for _, role := range valid {
		if !IsValidRole(role) {
			t.Fatalf("expected %q to be valid", role)
		}
	}
	if IsValidRole("superadmin") || IsValidRole("") {
		t.Fatalf("unexpected roles accepted")
	}
}

func TestApplicationStatus_Terminal(t *testing.T) {
	if ApplicationPending.Terminal() {
		t.Fatalf("pending must not be terminal")
	}
	if !ApplicationApproved.Terminal() || !ApplicationRejected.Terminal() {
		t.Fatalf("approved and rejected must be terminal")
	}
}

func TestValidDecision(t *testing.T) {
	if !ValidDecision(ApplicationApproved) || !ValidDecision(ApplicationRejected) {
		t.Fatalf("approved and rejected are valid decisions")
	}
	if ValidDecision(ApplicationPending) || ValidDecision("maybe") {
		t.Fatalf("invalid decisions accepted")
	}
}

func TestPaymentStatus_Terminal(t *testing.T) {
	if PaymentPending.Terminal() {
		t.Fatalf("pending must not be terminal")
	}
	if !PaymentSuccess.Terminal() || !PaymentFailed.Terminal() {
		t.Fatalf("success and failed must be terminal")
	}
}
