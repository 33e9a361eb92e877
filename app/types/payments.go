package types

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type CreateOrderRequest struct {
	// Amount accepts a JSON number or a numeric string.
	Amount        decimal.Decimal `json:"amount"`
	CustomerName  string          `json:"customerName"`
	CustomerEmail string          `json:"customerEmail"`
}

func NewCreateOrderRequestFromContext(ctx echo.Context) (*CreateOrderRequest, error) {
	var body CreateOrderRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	body.CustomerName = strings.TrimSpace(body.CustomerName)
	body.CustomerEmail = strings.TrimSpace(body.CustomerEmail)

	return &body, nil
}

func (r *CreateOrderRequest) Validate() error {
	if !r.Amount.IsPositive() {
		return errors.New("amount must be greater than 0")
	}
	return nil
}

type VerifyPaymentRequest struct {
	OrderID string `json:"orderId"`
	UTR     string `json:"utr"`
}

func NewVerifyPaymentRequestFromContext(ctx echo.Context) (*VerifyPaymentRequest, error) {
	var body VerifyPaymentRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	body.OrderID = strings.TrimSpace(body.OrderID)
	body.UTR = strings.TrimSpace(body.UTR)

	return &body, nil
}

func (r *VerifyPaymentRequest) Validate() error {
	if r.OrderID == "" || r.UTR == "" {
		return errors.New("orderId and utr are required")
	}
	return nil
}

type PaymentStatusRequest struct {
	OrderID string
}

func NewPaymentStatusRequestFromContext(ctx echo.Context) (*PaymentStatusRequest, error) {
	return &PaymentStatusRequest{OrderID: strings.TrimSpace(ctx.Param("orderId"))}, nil
}

func (r *PaymentStatusRequest) Validate() error {
	if r.OrderID == "" {
		return errors.New("orderId is required")
	}
	return nil
}

type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func NewAdminLoginRequestFromContext(ctx echo.Context) (*AdminLoginRequest, error) {
	var body AdminLoginRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	return &body, nil
}

type AdminVerifyPaymentRequest struct {
	OrderID string `json:"orderId"`
}

func NewAdminVerifyPaymentRequestFromContext(ctx echo.Context) (*AdminVerifyPaymentRequest, error) {
	var body AdminVerifyPaymentRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.OrderID = strings.TrimSpace(body.OrderID)
	return &body, nil
}

func (r *AdminVerifyPaymentRequest) Validate() error {
	if r.OrderID == "" {
		return errors.New("orderId is required")
	}
	return nil
}

type HealthResponse struct {
	Status    string        `json:"status"`
	Timestamp string        `json:"timestamp"`
	Service   string        `json:"service"`
	Version   string        `json:"version"`
	Config    *HealthConfig `json:"config"`
}

type HealthConfig struct {
	UPIID              string `json:"upiId"`
	MerchantName       string `json:"merchantName"`
	PaymentsFileExists bool   `json:"paymentsFileExists"`
}

type CreateOrderResponse struct {
	Success   bool    `json:"success"`
	OrderID   string  `json:"orderId"`
	Amount    float64 `json:"amount"`
	UPILink   string  `json:"upiLink"`
	QRCode    *string `json:"qrCode"`
	ExpiresAt string  `json:"expiresAt"`
	Message   string  `json:"message"`
}

type VerifyPaymentResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Status  string  `json:"status"`
	OrderID string  `json:"orderId"`
	Amount  float64 `json:"amount"`
}

type PaymentStatusResponse struct {
	Success bool         `json:"success"`
	Payment *PaymentView `json:"payment"`
}

type PaymentView struct {
	OrderID            string  `json:"orderId"`
	Amount             float64 `json:"amount"`
	CustomerName       string  `json:"customerName,omitempty"`
	CustomerEmail      string  `json:"customerEmail,omitempty"`
	UPILink            string  `json:"upiLink,omitempty"`
	Status             string  `json:"status"`
	CreatedAt          string  `json:"createdAt"`
	ExpiresAt          string  `json:"expiresAt"`
	UTR                *string `json:"utr,omitempty"`
	VerifiedAt         *string `json:"verifiedAt"`
	VerificationMethod string  `json:"verificationMethod,omitempty"`
}

type AdminLoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
}

type AdminPaymentsResponse struct {
	Success  bool           `json:"success"`
	Payments []*PaymentView `json:"payments"`
	Stats    *PaymentStats  `json:"stats"`
}

type PaymentStats struct {
	Total        int     `json:"total"`
	Pending      int     `json:"pending"`
	Paid         int     `json:"paid"`
	TotalRevenue float64 `json:"totalRevenue"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
