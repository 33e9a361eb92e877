package mapper

import (
	"time"

	"github.com/upistack/upi-gateway/app/entity"
	"github.com/upistack/upi-gateway/app/types"
)

// PaymentToStatusView maps a payment to the public status payload: the
// subset of fields the customer-facing status endpoint exposes, with the
// expired display state derived against now.
func PaymentToStatusView(item *entity.Payment, now time.Time) *types.PaymentView {
	if item == nil {
		return nil
	}

	return &types.PaymentView{
		OrderID:    item.OrderID,
		Amount:     item.Amount,
		Status:     item.DisplayStatus(now),
		CreatedAt:  formatTime(item.CreatedAt),
		ExpiresAt:  formatTime(item.ExpiresAt),
		VerifiedAt: formatTimePtr(item.VerifiedAt),
	}
}

// PaymentToAdminView maps a payment to the full admin-listing payload.
func PaymentToAdminView(item *entity.Payment, now time.Time) *types.PaymentView {
	if item == nil {
		return nil
	}

	return &types.PaymentView{
		OrderID:            item.OrderID,
		Amount:             item.Amount,
		CustomerName:       item.CustomerName,
		CustomerEmail:      item.CustomerEmail,
		UPILink:            item.UPILink,
		Status:             item.DisplayStatus(now),
		CreatedAt:          formatTime(item.CreatedAt),
		ExpiresAt:          formatTime(item.ExpiresAt),
		UTR:                item.UTR,
		VerifiedAt:         formatTimePtr(item.VerifiedAt),
		VerificationMethod: item.VerificationMethod,
	}
}

func PaymentsToAdminViews(items []*entity.Payment, now time.Time) []*types.PaymentView {
	result := make([]*types.PaymentView, 0, len(items))
	for _, item := range items {
		result = append(result, PaymentToAdminView(item, now))
	}
	return result
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := formatTime(*t)
	return &formatted
}
