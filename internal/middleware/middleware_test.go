package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pucknotes/server/internal/app/models"
	"github.com/pucknotes/server/internal/app/models/dto"
	"github.com/pucknotes/server/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

func init() {
	gin.SetMode(gin.TestMode)
	RegisterValidation()
}

func decode(t *testing.T, w *httptest.ResponseRecorder) dto.APIResponse {
	t.Helper()
	var resp dto.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response %q: %v", w.Body.String(), err)
	}
	return resp
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    dto.ErrorCode
		message string
		field   string
	}{
		{"not found", apperrors.NewResourceNotFoundError("note not found"), http.StatusNotFound, dto.ErrorCodeResourceNotFound, "note not found", ""},
		{"wrapped not found", fmt.Errorf("loading: %w", apperrors.NewResourceNotFoundError("comment not found")), http.StatusNotFound, dto.ErrorCodeResourceNotFound, "comment not found", ""},
		{"invalid field", apperrors.NewInvalidFieldError("schoolName", "school \"X\" does not exist"), http.StatusBadRequest, dto.ErrorCodeValidationFailed, "school \"X\" does not exist", "schoolName"},
		{"conflict", apperrors.NewConflictError("already exists"), http.StatusConflict, dto.ErrorCodeConflict, "already exists", ""},
		{"forbidden", apperrors.NewForbiddenError("nope"), http.StatusForbidden, dto.ErrorCodeUnauthorized, "nope", ""},
		{"unexpected", errors.New("pq: connection refused"), http.StatusInternalServerError, dto.ErrorCodeInternalServer, apperrors.UnexpectedMessage, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/", func(c *gin.Context) { HandleAPIError(c, tt.err) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d", w.Code, tt.status)
			}
			resp := decode(t, w)
			if resp.Success || resp.Data != nil || resp.Error == nil {
				t.Fatalf("expected a pure error envelope, got %+v", resp)
			}
			if resp.Error.Code != tt.code || resp.Error.Message != tt.message || resp.Error.Field != tt.field {
				t.Errorf("got %+v, want code=%s message=%q field=%q", resp.Error, tt.code, tt.message, tt.field)
			}
		})
	}
}

type stubSessions struct {
	tokens map[string]*models.Account
	seen   []string
}

func (s *stubSessions) Login(context.Context, *dto.LoginRequest) (*dto.TokenResponse, error) {
	return nil, errors.New("not implemented")
}

func (s *stubSessions) Logout(context.Context, string) error { return nil }

func (s *stubSessions) CurrentAccount(_ context.Context, token string) *models.Account {
	s.seen = append(s.seen, token)
	return s.tokens[token]
}

func TestLoadAccount(t *testing.T) {
	alice := &models.Account{ID: 3, Role: models.RoleStandard}
	sessions := &stubSessions{tokens: map[string]*models.Account{"good": alice}}
	m := NewAuthMiddleware(sessions)

	tests := []struct {
		name   string
		header string
		want   int64
	}{
		{"bearer token", "Bearer good", 3},
		{"raw token", "good", 3},
		{"unknown token", "Bearer bad", 0},
		{"no header", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(m.LoadAccount())
			r.GET("/", func(c *gin.Context) {
				var id int64
				if acct := CurrentAccount(c); acct != nil {
					id = acct.ID
				}
				c.JSON(http.StatusOK, dto.NewSuccessResponse(id))
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			// Anonymous requests are never rejected here
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", w.Code)
			}
			got, _ := decode(t, w).Data.(float64)
			if int64(got) != tt.want {
				t.Errorf("account = %v, want %d", got, tt.want)
			}
		})
	}

	for _, tok := range sessions.seen {
		if tok == "" {
			t.Error("CurrentAccount should not be asked about an empty token")
		}
	}
}

func TestBindingError(t *testing.T) {
	type login struct {
		Email string `json:"email" binding:"required,email"`
	}

	r := gin.New()
	r.POST("/", func(c *gin.Context) {
		var req login
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleAPIError(c, BindingError(err))
			return
		}
		c.Status(http.StatusNoContent)
	})

	tests := []struct {
		name   string
		body   string
		status int
		field  string
	}{
		{"missing", `{}`, http.StatusBadRequest, "email"},
		{"malformed email", `{"email":"nope"}`, http.StatusBadRequest, "email"},
		{"broken json", `{`, http.StatusBadRequest, ""},
		{"valid", `{"email":"a@b.co"}`, http.StatusNoContent, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d", w.Code, tt.status)
			}
			if tt.status == http.StatusBadRequest {
				if field := decode(t, w).Error.Field; field != tt.field {
					t.Errorf("field = %q, want %q", field, tt.field)
				}
			}
		})
	}
}

func TestRequestLoggerPassesThrough(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger(zerolog.Nop()))
	r.GET("/teapot", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/teapot", nil))
	if w.Code != http.StatusTeapot {
		t.Errorf("status = %d, want %d", w.Code, http.StatusTeapot)
	}
}
