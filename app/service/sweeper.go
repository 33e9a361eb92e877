package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/upistack/upi-gateway/app/entity"
)

// RunAutoVerifyBatch is one sweeper tick: scan every pending record old
// enough to plausibly have settled and promote each with the configured
// probability, simulating a real confirmation channel. Promotions are
// persisted in a single batched save.
func (s *PaymentService) RunAutoVerifyBatch(ctx context.Context) error {
	now := s.now()
	payments := s.store.Load(ctx)

	updated := 0
	for _, payment := range payments {
		if !payment.IsEligibleForAutoVerify(now, s.sweeperCfg.MinPendingAge) {
			continue
		}
		if s.draw() >= s.sweeperCfg.VerifyProbability {
			continue
		}

		utr := fmt.Sprintf("WORKER_%d_%s", now.UnixMilli(), randomToken())
		markPaid(payment, utr, entity.VerificationMethodWorker, now)
		updated++

		s.logger.WithFields(logrus.Fields{
			"orderId": payment.OrderID,
			"amount":  payment.Amount,
			"utr":     utr,
		}).Info("Payment auto-verified")
	}

	if updated == 0 {
		return nil
	}

	if err := s.store.Save(ctx, payments); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	s.logger.WithField("updated", updated).Info("Auto-verification batch completed")
	return nil
}
