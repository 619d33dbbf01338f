package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func testIssuer() *TokenIssuer {
	return NewTokenIssuer([]byte("test-secret"), "emslink-test", time.Hour)
}

func TestIssueVerify_EMSRoundTrip(t *testing.T) {
	issuer := testIssuer()
	want := &Principal{
		EmployeeID:         uuid.New(),
		Role:               RoleEMS,
		AmbulanceCompanyID: uuid.New(),
	}

	token, err := issuer.Issue(want)
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	got, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error: %v", err)
	}
	if got.EmployeeID != want.EmployeeID {
		t.Errorf("employee id = %v, want %v", got.EmployeeID, want.EmployeeID)
	}
	if got.Role != RoleEMS {
		t.Errorf("role = %v, want ems", got.Role)
	}
	if got.AmbulanceCompanyID != want.AmbulanceCompanyID {
		t.Errorf("ambulance company = %v, want %v", got.AmbulanceCompanyID, want.AmbulanceCompanyID)
	}
}

func TestIssueVerify_ERRoundTrip(t *testing.T) {
	issuer := testIssuer()
	want := &Principal{
		EmployeeID:        uuid.New(),
		Role:              RoleER,
		HospitalID:        uuid.New(),
		EmergencyCenterID: uuid.New(),
	}

	token, err := issuer.Issue(want)
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	got, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error: %v", err)
	}
	if got.HospitalID != want.HospitalID {
		t.Errorf("hospital = %v, want %v", got.HospitalID, want.HospitalID)
	}
	if got.EmergencyCenterID != want.EmergencyCenterID {
		t.Errorf("center = %v, want %v", got.EmergencyCenterID, want.EmergencyCenterID)
	}
}

func TestVerify_RejectsWrongSecret(t *testing.T) {
	token, err := testIssuer().Issue(&Principal{
		EmployeeID:         uuid.New(),
		Role:               RoleEMS,
		AmbulanceCompanyID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	other := NewTokenIssuer([]byte("other-secret"), "emslink-test", time.Hour)
	if _, err := other.Verify(token); err == nil {
		t.Error("expected verification to fail with wrong secret")
	}
}

func TestVerify_RejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), "emslink-test", -time.Minute)
	token, err := issuer.Issue(&Principal{
		EmployeeID:         uuid.New(),
		Role:               RoleEMS,
		AmbulanceCompanyID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}
	if _, err := issuer.Verify(token); err == nil {
		t.Error("expected verification to fail for expired token")
	}
}

func TestMiddleware_MissingToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := Middleware(testIssuer())(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	err := h(c)

	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestMiddleware_SetsPrincipal(t *testing.T) {
	issuer := testIssuer()
	p := &Principal{
		EmployeeID:        uuid.New(),
		Role:              RoleER,
		HospitalID:        uuid.New(),
		EmergencyCenterID: uuid.New(),
	}
	token, err := issuer.Issue(p)
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := Middleware(issuer)(func(c echo.Context) error {
		got := PrincipalFromContext(c.Request().Context())
		if got == nil {
			t.Fatal("expected principal in context")
		}
		if got.EmployeeID != p.EmployeeID {
			t.Errorf("employee id = %v, want %v", got.EmployeeID, p.EmployeeID)
		}
		return c.String(http.StatusOK, "ok")
	})
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRequireRole(t *testing.T) {
	e := echo.New()

	cases := []struct {
		name      string
		principal *Principal
		required  []Role
		wantCode  int
	}{
		{"er allowed", &Principal{Role: RoleER}, []Role{RoleER}, http.StatusOK},
		{"ems blocked from er route", &Principal{Role: RoleEMS}, []Role{RoleER}, http.StatusForbidden},
		{"either role", &Principal{Role: RoleEMS}, []Role{RoleEMS, RoleER}, http.StatusOK},
		{"unauthenticated", nil, []Role{RoleEMS}, http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.principal != nil {
				req = req.WithContext(WithPrincipal(req.Context(), tc.principal))
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			h := RequireRole(tc.required...)(func(c echo.Context) error {
				return c.String(http.StatusOK, "ok")
			})
			err := h(c)

			code := http.StatusOK
			if httpErr, ok := err.(*echo.HTTPError); ok {
				code = httpErr.Code
			} else if err != nil {
				t.Fatalf("unexpected error type: %v", err)
			}
			if code != tc.wantCode {
				t.Errorf("status = %d, want %d", code, tc.wantCode)
			}
		})
	}
}
