package service

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
	"github.com/upistack/upi-gateway/app/entity"
	"github.com/upistack/upi-gateway/app/types"
)

const defaultCustomerName = "Anonymous"

// CreateOrderResult carries the persisted record plus the QR payload. The
// QR code is nil when rendering failed; that never fails the order itself.
type CreateOrderResult struct {
	Payment *entity.Payment
	QRCode  *string
}

func (s *PaymentService) CreateOrder(ctx context.Context, req *types.CreateOrderRequest) (*CreateOrderResult, error) {
	amount := req.Amount
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be greater than 0", ErrInvalidAmount)
	}
	if amount.GreaterThan(decimal.NewFromFloat(s.paymentsCfg.MaxAmount)) {
		return nil, fmt.Errorf("%w: amount cannot exceed %s", ErrInvalidAmount, decimal.NewFromFloat(s.paymentsCfg.MaxAmount).StringFixed(0))
	}

	now := s.now()
	orderID := s.generateOrderID(now)
	upiLink := s.buildUPILink(amount, orderID)

	customerName := req.CustomerName
	if customerName == "" {
		customerName = defaultCustomerName
	}

	payment := &entity.Payment{
		OrderID:       orderID,
		Amount:        amount.InexactFloat64(),
		CustomerName:  customerName,
		CustomerEmail: req.CustomerEmail,
		UPILink:       upiLink,
		Status:        entity.StatusPending,
		CreatedAt:     now,
		ExpiresAt:     now.Add(s.paymentsCfg.ExpiryWindow),
	}

	payments := s.store.Load(ctx)
	payments = append([]*entity.Payment{payment}, payments...)
	if err := s.store.Save(ctx, payments); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	result := &CreateOrderResult{Payment: payment}
	dataURL, err := s.qr.DataURL(upiLink)
	if err != nil {
		s.logger.WithError(err).WithField("order_id", orderID).Warn("QR code generation failed")
		return result, nil
	}
	result.QRCode = &dataURL

	return result, nil
}

// generateOrderID keeps the historical millisecond-timestamp plus 4-digit
// random suffix scheme. Collisions under concurrent creation are
// theoretically possible and deliberately not guarded against.
func (s *PaymentService) generateOrderID(now time.Time) string {
	return fmt.Sprintf("%s_%d_%d", s.upiCfg.OrderPrefix, now.UnixMilli(), s.randomSuffix())
}

func (s *PaymentService) buildUPILink(amount decimal.Decimal, orderID string) string {
	params := url.Values{}
	params.Set("pa", s.upiCfg.PayeeAddress)
	params.Set("pn", s.upiCfg.MerchantName)
	params.Set("am", amount.StringFixed(2))
	params.Set("tr", orderID)
	params.Set("cu", "INR")
	params.Set("tn", "Payment to "+s.upiCfg.BusinessName)
	return "upi://pay?" + params.Encode()
}
