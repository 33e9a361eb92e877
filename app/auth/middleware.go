package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/upistack/upi-gateway/app/types"
)

const adminUserContextKey = "adminUser"

// RequireAdmin gates a route group behind a valid admin session token.
func RequireAdmin(issuer *TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			tokenString := bearerToken(ctx)
			if tokenString == "" {
				return ctx.JSON(http.StatusUnauthorized, &types.ErrorResponse{Error: "admin authorization required"})
			}

			username, err := issuer.Verify(tokenString)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, &types.ErrorResponse{Error: "invalid or expired admin token"})
			}

			ctx.Set(adminUserContextKey, username)
			return next(ctx)
		}
	}
}

func bearerToken(ctx echo.Context) string {
	header := ctx.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
