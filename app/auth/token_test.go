package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Minute)

	token, err := issuer.Issue("admin")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	subject, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if subject != "admin" {
		t.Fatalf("expected subject admin, got %q", subject)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenIssuer("secret-a", time.Minute).Issue("admin")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := NewTokenIssuer("secret-b", time.Minute).Verify(token); err == nil {
		t.Fatal("expected verification to fail with a different secret")
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Minute)
	issuer.ttl = -time.Minute

	token, err := issuer.Issue("admin")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, err := issuer.Verify(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Minute)
	if _, err := issuer.Verify("not-a-token"); err == nil {
		t.Fatal("expected garbage token to be rejected")
	}
}

func newMiddlewareContext(t *testing.T, authorization string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/payments", nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRequireAdminAllowsValidToken(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Minute)
	token, err := issuer.Issue("admin")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	ctx, rec := newMiddlewareContext(t, "Bearer "+token)
	called := false
	handler := RequireAdmin(issuer)(func(ctx echo.Context) error {
		called = true
		return ctx.NoContent(http.StatusOK)
	})

	if err := handler(ctx); err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if !called {
		t.Fatal("expected next handler to run")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ctx.Get("adminUser") != "admin" {
		t.Fatalf("expected admin user in context, got %v", ctx.Get("adminUser"))
	}
}

func TestRequireAdminRejectsMissingAndBadTokens(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Minute)
	handler := RequireAdmin(issuer)(func(ctx echo.Context) error {
		t.Fatal("next handler must not run")
		return nil
	})

	for _, header := range []string{"", "Bearer garbage", "Basic abc"} {
		ctx, rec := newMiddlewareContext(t, header)
		if err := handler(ctx); err != nil {
			t.Fatalf("header %q: handler failed: %v", header, err)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, rec.Code)
		}
	}
}
