package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/upistack/upi-gateway/app/entity"
	"github.com/upistack/upi-gateway/app/factory"
)

const paymentsFileName = "payments.json"

// PaymentFileStore persists the full payment collection as one JSON
// document, newest record first. Every save rewrites the whole file via a
// temp file and rename so a crash mid-write never leaves a truncated
// document behind.
//
// The mutex serializes all access within this process. The serve and sweep
// processes share the same file with no cross-process locking; that race is
// an accepted limitation of the flat-document store.
type PaymentFileStore struct {
	mu     sync.Mutex
	path   string
	logger logrus.FieldLogger
}

func NewPaymentFileStore(dataDir string) (*PaymentFileStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	return &PaymentFileStore{
		path:   filepath.Join(dataDir, paymentsFileName),
		logger: factory.NewModuleLogger("payment-store"),
	}, nil
}

// Load returns the stored collection. A missing or unreadable file yields
// an empty collection, never an error.
func (s *PaymentFileStore) Load(_ context.Context) []*entity.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.WithError(err).Warn("Failed to read payments file")
		}
		return []*entity.Payment{}
	}

	var payments []*entity.Payment
	if err := json.Unmarshal(data, &payments); err != nil {
		s.logger.WithError(err).Warn("Failed to parse payments file")
		return []*entity.Payment{}
	}
	if payments == nil {
		payments = []*entity.Payment{}
	}
	return payments
}

func (s *PaymentFileStore) Save(_ context.Context, payments []*entity.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if payments == nil {
		payments = []*entity.Payment{}
	}
	data, err := json.MarshalIndent(payments, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), paymentsFileName+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

// Exists reports whether the payments file has been created yet. Surfaced
// by the health endpoint.
func (s *PaymentFileStore) Exists() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := os.Stat(s.path)
	return err == nil
}
