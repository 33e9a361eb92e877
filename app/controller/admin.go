package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/upistack/upi-gateway/app/auth"
	"github.com/upistack/upi-gateway/app/factory"
	"github.com/upistack/upi-gateway/app/mapper"
	"github.com/upistack/upi-gateway/app/service"
	"github.com/upistack/upi-gateway/app/types"
	"github.com/upistack/upi-gateway/config"
)

type AdminController struct {
	paymentService *service.PaymentService
	tokens         *auth.TokenIssuer
	adminCfg       config.AdminConfig
	logger         logrus.FieldLogger
}

func NewAdminController(paymentService *service.PaymentService, tokens *auth.TokenIssuer, adminCfg config.AdminConfig) *AdminController {
	return &AdminController{
		paymentService: paymentService,
		tokens:         tokens,
		adminCfg:       adminCfg,
		logger:         factory.NewModuleLogger("admin-controller"),
	}
}

// Login checks the configured credential pair by exact string comparison
// and hands out the bearer token the other admin endpoints require.
func (c *AdminController) Login(ctx echo.Context) error {
	req, err := types.NewAdminLoginRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request body")
	}

	if req.Username != c.adminCfg.Username || req.Password != c.adminCfg.Password {
		factory.LoggerWithContext(c.logger, ctx).WithField("username", req.Username).Warn("Admin login failed")
		return c.writeError(ctx, http.StatusUnauthorized, "invalid username or password")
	}

	token, err := c.tokens.Issue(req.Username)
	if err != nil {
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Admin token issue failed")
		return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, &types.AdminLoginResponse{
		Success: true,
		Message: "Login successful",
		Token:   token,
	})
}

func (c *AdminController) ListPayments(ctx echo.Context) error {
	payments, stats := c.paymentService.ListPayments(ctx.Request().Context())

	return ctx.JSON(http.StatusOK, &types.AdminPaymentsResponse{
		Success:  true,
		Payments: mapper.PaymentsToAdminViews(payments, time.Now().UTC()),
		Stats:    stats,
	})
}

func (c *AdminController) VerifyPayment(ctx echo.Context) error {
	req, err := types.NewAdminVerifyPaymentRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	result, err := c.paymentService.VerifyByAdmin(ctx.Request().Context(), req.OrderID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			return c.writeError(ctx, http.StatusNotFound, "order not found")
		case errors.Is(err, service.ErrStorage):
			factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Admin verify save failed")
			return c.writeError(ctx, http.StatusInternalServerError, "failed to update payment")
		default:
			factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Admin verify failed")
			return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
		}
	}

	message := "Payment marked as verified"
	if result.AlreadyVerified {
		message = "Payment already verified"
	}
	return ctx.JSON(http.StatusOK, &types.MessageResponse{Success: true, Message: message})
}

func (c *AdminController) writeError(ctx echo.Context, statusCode int, message string) error {
	return ctx.JSON(statusCode, &types.ErrorResponse{Error: message})
}
