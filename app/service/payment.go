package service

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/upistack/upi-gateway/app/entity"
	"github.com/upistack/upi-gateway/app/factory"
	"github.com/upistack/upi-gateway/config"
)

const (
	defaultListLimit = 100
	defaultMaxAmount = float64(100000)
)

type paymentStore interface {
	Load(ctx context.Context) []*entity.Payment
	Save(ctx context.Context, payments []*entity.Payment) error
	Exists() bool
}

type qrGenerator interface {
	DataURL(link string) (string, error)
}

type PaymentService struct {
	store       paymentStore
	qr          qrGenerator
	upiCfg      config.UPIConfig
	paymentsCfg config.PaymentsConfig
	sweeperCfg  config.SweeperConfig
	logger      logrus.FieldLogger

	// Injected time and randomness so tests can pin the clock and force
	// sweep decisions.
	now          func() time.Time
	draw         func() float64
	randomSuffix func() int
}

func NewPaymentService(
	store paymentStore,
	qr qrGenerator,
	upiCfg config.UPIConfig,
	paymentsCfg config.PaymentsConfig,
	sweeperCfg config.SweeperConfig,
	logger logrus.FieldLogger,
) *PaymentService {
	if logger == nil {
		logger = factory.NewModuleLogger("payments-service")
	}
	if paymentsCfg.ListLimit <= 0 {
		paymentsCfg.ListLimit = defaultListLimit
	}
	if paymentsCfg.MaxAmount <= 0 {
		paymentsCfg.MaxAmount = defaultMaxAmount
	}

	return &PaymentService{
		store:        store,
		qr:           qr,
		upiCfg:       upiCfg,
		paymentsCfg:  paymentsCfg,
		sweeperCfg:   sweeperCfg,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
		draw:         rand.Float64,
		randomSuffix: func() int { return rand.Intn(10000) },
	}
}

// StoreExists reports whether the payment collection has been persisted
// yet. Surfaced by the health endpoint.
func (s *PaymentService) StoreExists() bool {
	return s.store.Exists()
}

func findByOrderID(payments []*entity.Payment, orderID string) int {
	for i, payment := range payments {
		if payment.OrderID == orderID {
			return i
		}
	}
	return -1
}

func markPaid(payment *entity.Payment, utr, method string, now time.Time) {
	verifiedAt := now
	payment.UTR = &utr
	payment.Status = entity.StatusPaid
	payment.VerifiedAt = &verifiedAt
	payment.VerificationMethod = method
}

func randomToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
}
