package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tasktracker/internal/models"
	"tasktracker/internal/service"

	"github.com/gin-gonic/gin"
)

// minimal router wiring only the middleware + a protected endpoint
func newMiddlewareOnlyRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(s, nil)
	r.GET("/secure", h.authMiddleware, func(c *gin.Context) {
		u, _ := currentUser(c)
		c.JSON(http.StatusOK, gin.H{"ok": true, "name": u.Name})
	})
	return r
}

func TestAuthMiddleware_Errors(t *testing.T) {
	type want struct {
		code   int
		errMsg string
	}
	cases := []struct {
		name    string
		header  string
		authErr error
		want    want
	}{
		{
			name:   "missing header",
			header: "",
			want:   want{code: http.StatusUnauthorized, errMsg: "missing Authorization header"},
		},
		{
			name:   "invalid scheme",
			header: "Token abc",
			want:   want{code: http.StatusUnauthorized, errMsg: "invalid Authorization header format"},
		},
		{
			name:   "bearer without token",
			header: "Bearer",
			want:   want{code: http.StatusUnauthorized, errMsg: "invalid Authorization header format"},
		},
		{
			name:    "expired token",
			header:  "Bearer expired",
			authErr: service.ErrTokenExpired,
			want:    want{code: http.StatusUnauthorized, errMsg: "invalid or expired token"},
		},
		{
			name:    "unknown user",
			header:  "Bearer orphaned",
			authErr: service.ErrUnknownUser,
			want:    want{code: http.StatusUnauthorized, errMsg: "invalid or expired token"},
		},
		{
			name:    "wrong token type",
			header:  "Bearer refresh-not-access",
			authErr: service.ErrWrongTokenType,
			want:    want{code: http.StatusUnauthorized, errMsg: "invalid or expired token"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			auth := &mockAuth{authErr: tc.authErr}
			s := &service.Service{Authorization: auth}
			r := newMiddlewareOnlyRouter(s)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/secure", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			r.ServeHTTP(w, req)

			if w.Code != tc.want.code {
				t.Fatalf("status: got %d, want %d (body=%s)", w.Code, tc.want.code, w.Body.String())
			}
			// Every 401 carries the bearer challenge header.
			if got := w.Header().Get("WWW-Authenticate"); got != "Bearer" {
				t.Fatalf("WWW-Authenticate: got %q, want %q", got, "Bearer")
			}

			var out struct {
				Error string `json:"error"`
			}
			_ = json.Unmarshal(w.Body.Bytes(), &out)
			if out.Error != tc.want.errMsg {
				t.Fatalf("error message: got %q, want %q", out.Error, tc.want.errMsg)
			}
		})
	}
}

func TestAuthMiddleware_SuccessResolvesUserAndProceeds(t *testing.T) {
	auth := &mockAuth{authUser: models.User{ID: 123, Name: "alice"}}
	s := &service.Service{Authorization: auth}
	r := newMiddlewareOnlyRouter(s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d; body=%s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp struct {
		OK   bool   `json:"ok"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.OK || resp.Name != "alice" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if auth.lastAuthToken != "good-token" {
		t.Fatalf("Authenticate got %q, want %q", auth.lastAuthToken, "good-token")
	}
}
