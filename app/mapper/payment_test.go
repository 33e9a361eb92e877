package mapper

import (
	"testing"
	"time"

	"github.com/upistack/upi-gateway/app/entity"
)

func samplePayment() *entity.Payment {
	return &entity.Payment{
		OrderID:       "PAY_1_1",
		Amount:        500,
		CustomerName:  "Asha",
		CustomerEmail: "a@b.example",
		UPILink:       "upi://pay?pa=merchant%40upi",
		Status:        entity.StatusPending,
		CreatedAt:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		ExpiresAt:     time.Date(2025, 6, 1, 12, 10, 0, 0, time.UTC),
	}
}

func TestPaymentToStatusViewHidesInternalFields(t *testing.T) {
	view := PaymentToStatusView(samplePayment(), time.Date(2025, 6, 1, 12, 5, 0, 0, time.UTC))

	if view.Status != entity.StatusPending {
		t.Fatalf("unexpected status: %s", view.Status)
	}
	if view.UPILink != "" || view.CustomerName != "" || view.CustomerEmail != "" {
		t.Fatal("status view must not carry internal fields")
	}
	if view.CreatedAt != "2025-06-01T12:00:00Z" || view.ExpiresAt != "2025-06-01T12:10:00Z" {
		t.Fatalf("unexpected timestamps: %s %s", view.CreatedAt, view.ExpiresAt)
	}
}

func TestViewsDeriveExpiredStatus(t *testing.T) {
	afterExpiry := time.Date(2025, 6, 1, 12, 10, 1, 0, time.UTC)

	if view := PaymentToStatusView(samplePayment(), afterExpiry); view.Status != entity.StatusExpired {
		t.Fatalf("expected expired, got %s", view.Status)
	}
	if view := PaymentToAdminView(samplePayment(), afterExpiry); view.Status != entity.StatusExpired {
		t.Fatalf("expected expired, got %s", view.Status)
	}
}

func TestPaymentToAdminViewCarriesFullRecord(t *testing.T) {
	payment := samplePayment()
	utr := "ABC123"
	verifiedAt := time.Date(2025, 6, 1, 12, 5, 0, 0, time.UTC)
	payment.Status = entity.StatusPaid
	payment.UTR = &utr
	payment.VerifiedAt = &verifiedAt
	payment.VerificationMethod = entity.VerificationMethodCustomer

	view := PaymentToAdminView(payment, time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC))
	if view.Status != entity.StatusPaid {
		t.Fatalf("paid records never expire, got %s", view.Status)
	}
	if view.UPILink == "" || view.CustomerEmail != "a@b.example" {
		t.Fatal("admin view must carry the full record")
	}
	if view.UTR == nil || *view.UTR != "ABC123" {
		t.Fatalf("unexpected UTR: %v", view.UTR)
	}
	if view.VerifiedAt == nil || *view.VerifiedAt != "2025-06-01T12:05:00Z" {
		t.Fatalf("unexpected verifiedAt: %v", view.VerifiedAt)
	}
}
