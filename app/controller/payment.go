package controller

import (
	"errors"
	"fmt"
	"html"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/upistack/upi-gateway/app/factory"
	"github.com/upistack/upi-gateway/app/mapper"
	"github.com/upistack/upi-gateway/app/service"
	"github.com/upistack/upi-gateway/app/types"
	"github.com/upistack/upi-gateway/config"
)

type PaymentController struct {
	paymentService *service.PaymentService
	appCfg         config.AppConfig
	upiCfg         config.UPIConfig
	logger         logrus.FieldLogger
}

func NewPaymentController(paymentService *service.PaymentService, appCfg config.AppConfig, upiCfg config.UPIConfig) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
		appCfg:         appCfg,
		upiCfg:         upiCfg,
		logger:         factory.NewModuleLogger("payments-controller"),
	}
}

func (c *PaymentController) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, &types.HealthResponse{
		Status:    "OK",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Service:   c.appCfg.ServiceName,
		Version:   c.appCfg.Version,
		Config: &types.HealthConfig{
			UPIID:              c.upiCfg.PayeeAddress,
			MerchantName:       c.upiCfg.MerchantName,
			PaymentsFileExists: c.paymentService.StoreExists(),
		},
	})
}

func (c *PaymentController) CreateOrder(ctx echo.Context) error {
	req, err := types.NewCreateOrderRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "please enter a valid amount greater than 0")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	result, err := c.paymentService.CreateOrder(ctx.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAmount):
			return c.writeError(ctx, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrStorage):
			factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Create order save failed")
			return c.writeError(ctx, http.StatusInternalServerError, "failed to save payment data")
		default:
			factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Create order failed")
			return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
		}
	}

	message := "Payment link and QR code generated successfully"
	if result.QRCode == nil {
		message = "Payment link generated (QR code failed to generate)"
	}

	return ctx.JSON(http.StatusOK, &types.CreateOrderResponse{
		Success:   true,
		OrderID:   result.Payment.OrderID,
		Amount:    result.Payment.Amount,
		UPILink:   result.Payment.UPILink,
		QRCode:    result.QRCode,
		ExpiresAt: result.Payment.ExpiresAt.UTC().Format(time.RFC3339),
		Message:   message,
	})
}

func (c *PaymentController) VerifyPayment(ctx echo.Context) error {
	req, err := types.NewVerifyPaymentRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	result, err := c.paymentService.VerifyByCustomer(ctx.Request().Context(), req.OrderID, req.UTR)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			return c.writeError(ctx, http.StatusNotFound, "order not found")
		case errors.Is(err, service.ErrDuplicateUTR):
			return c.writeError(ctx, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrInvalidRequest):
			return c.writeError(ctx, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrStorage):
			factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Verify payment save failed")
			return c.writeError(ctx, http.StatusInternalServerError, "failed to update payment status")
		default:
			factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Verify payment failed")
			return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
		}
	}

	message := "Payment verified successfully"
	if result.AlreadyVerified {
		message = "Payment already verified"
	}

	return ctx.JSON(http.StatusOK, &types.VerifyPaymentResponse{
		Success: true,
		Message: message,
		Status:  result.Payment.Status,
		OrderID: result.Payment.OrderID,
		Amount:  result.Payment.Amount,
	})
}

func (c *PaymentController) PaymentStatus(ctx echo.Context) error {
	req, err := types.NewPaymentStatusRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	payment, err := c.paymentService.GetStatus(ctx.Request().Context(), req.OrderID)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			return c.writeError(ctx, http.StatusNotFound, "order not found")
		}
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Payment status failed")
		return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, &types.PaymentStatusResponse{
		Success: true,
		Payment: mapper.PaymentToStatusView(payment, time.Now().UTC()),
	})
}

// SuccessPage renders the post-payment confirmation page.
func (c *PaymentController) SuccessPage(ctx echo.Context) error {
	orderInfo := ""
	if orderID := ctx.QueryParam("order"); orderID != "" {
		orderInfo = fmt.Sprintf(`<div class="order-info">Order ID: %s</div>`, html.EscapeString(orderID))
	}

	page := fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Payment Successful</title>
<style>
body { font-family: sans-serif; display: flex; align-items: center; justify-content: center; min-height: 100vh; margin: 0; background: #f3faf5; }
.success-container { background: white; padding: 50px; border-radius: 16px; box-shadow: 0 10px 30px rgba(0,0,0,0.1); text-align: center; max-width: 600px; }
h1 { color: #28a745; }
.order-info { background: #f8f9fa; padding: 20px; border-radius: 10px; margin: 20px 0; font-family: monospace; }
a { color: #007bff; text-decoration: none; }
</style>
</head>
<body>
<div class="success-container">
<h1>Payment Successful</h1>
<p>Your payment has been processed and verified.</p>
%s
<p>Thank you for choosing <strong>%s</strong>.</p>
<a href="/">Back to payment page</a>
</div>
</body>
</html>`, orderInfo, html.EscapeString(c.upiCfg.BusinessName))

	return ctx.HTML(http.StatusOK, page)
}

func (c *PaymentController) writeError(ctx echo.Context, statusCode int, message string) error {
	return ctx.JSON(statusCode, &types.ErrorResponse{Error: message})
}
