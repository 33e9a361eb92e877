package entity

import "time"

const (
	StatusPending = "pending"
	StatusPaid    = "paid"

	// StatusExpired is a display-only state derived at read time. It is
	// never written to the store; the persisted status stays "pending".
	StatusExpired = "expired"
)

const (
	VerificationMethodCustomer = "customer"
	VerificationMethodAdmin    = "admin"
	VerificationMethodWorker   = "auto-worker"
)

// Payment is both the persisted document row and the API payload shape,
// hence the camelCase JSON tags.
type Payment struct {
	OrderID       string  `json:"orderId"`
	Amount        float64 `json:"amount"`
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	UPILink       string  `json:"upiLink"`
	Status        string  `json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`

	UTR                *string    `json:"utr"`
	VerifiedAt         *time.Time `json:"verifiedAt"`
	VerificationMethod string     `json:"verificationMethod,omitempty"`
}

// DisplayStatus derives the read-time status: a pending record past its
// expiry window is shown as expired without mutating the stored status.
func (p *Payment) DisplayStatus(now time.Time) string {
	if p.Status == StatusPending && now.After(p.ExpiresAt) {
		return StatusExpired
	}
	return p.Status
}

func (p *Payment) IsEligibleForAutoVerify(now time.Time, minAge time.Duration) bool {
	return p.Status == StatusPending && now.Sub(p.CreatedAt) >= minAge
}
