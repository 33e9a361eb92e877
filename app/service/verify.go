package service

import (
	"context"
	"fmt"

	"github.com/upistack/upi-gateway/app/entity"
	"github.com/upistack/upi-gateway/app/types"
)

// VerifyResult reports the record after a verification attempt.
// AlreadyVerified is set when the record was paid before the call; replays
// succeed without mutating anything.
type VerifyResult struct {
	Payment         *entity.Payment
	AlreadyVerified bool
}

// VerifyByCustomer marks a pending order paid against a customer-submitted
// UTR. The UTR must not be bound to any other record.
func (s *PaymentService) VerifyByCustomer(ctx context.Context, orderID, utr string) (*VerifyResult, error) {
	if orderID == "" || utr == "" {
		return nil, ErrInvalidRequest
	}

	payments := s.store.Load(ctx)
	idx := findByOrderID(payments, orderID)
	if idx < 0 {
		return nil, ErrOrderNotFound
	}

	payment := payments[idx]
	if payment.Status == entity.StatusPaid {
		return &VerifyResult{Payment: payment, AlreadyVerified: true}, nil
	}

	for _, other := range payments {
		if other.UTR != nil && *other.UTR == utr && other.OrderID != orderID {
			return nil, ErrDuplicateUTR
		}
	}

	markPaid(payment, utr, entity.VerificationMethodCustomer, s.now())

	// Only the freshly loaded copy was mutated; if the save fails the
	// store still holds the pending record.
	if err := s.store.Save(ctx, payments); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	return &VerifyResult{Payment: payment}, nil
}

// VerifyByAdmin is the trusted override: no customer UTR, no uniqueness
// check against customer submissions. A system UTR is synthesized so the
// record still carries a verification reference.
func (s *PaymentService) VerifyByAdmin(ctx context.Context, orderID string) (*VerifyResult, error) {
	if orderID == "" {
		return nil, ErrInvalidRequest
	}

	payments := s.store.Load(ctx)
	idx := findByOrderID(payments, orderID)
	if idx < 0 {
		return nil, ErrOrderNotFound
	}

	payment := payments[idx]
	if payment.Status == entity.StatusPaid {
		return &VerifyResult{Payment: payment, AlreadyVerified: true}, nil
	}

	now := s.now()
	utr := fmt.Sprintf("ADMIN_%d_%s", now.UnixMilli(), randomToken())
	markPaid(payment, utr, entity.VerificationMethodAdmin, now)

	if err := s.store.Save(ctx, payments); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	return &VerifyResult{Payment: payment}, nil
}

// GetStatus returns the stored record without mutating it. The expired
// display state is derived by the mapper at render time.
func (s *PaymentService) GetStatus(ctx context.Context, orderID string) (*entity.Payment, error) {
	if orderID == "" {
		return nil, ErrInvalidRequest
	}

	payments := s.store.Load(ctx)
	idx := findByOrderID(payments, orderID)
	if idx < 0 {
		return nil, ErrOrderNotFound
	}
	return payments[idx], nil
}

// ListPayments returns the most recent records capped at the configured
// limit, plus stats computed over the entire collection.
func (s *PaymentService) ListPayments(ctx context.Context) ([]*entity.Payment, *types.PaymentStats) {
	payments := s.store.Load(ctx)

	stats := &types.PaymentStats{Total: len(payments)}
	for _, payment := range payments {
		switch payment.Status {
		case entity.StatusPending:
			stats.Pending++
		case entity.StatusPaid:
			stats.Paid++
			stats.TotalRevenue += payment.Amount
		}
	}

	limit := s.paymentsCfg.ListLimit
	if len(payments) > limit {
		payments = payments[:limit]
	}
	return payments, stats
}
