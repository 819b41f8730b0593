package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-item-custody/internal/app"
	"github.com/MKhiriev/go-item-custody/internal/service"
	"github.com/MKhiriev/go-item-custody/internal/utils"
	"github.com/MKhiriev/go-item-custody/models"
)

// ---- Helpers ----

// capturingNext records the user the auth middleware put into the context.
func capturingNext(got **models.User) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := utils.GetUserFromContext(r.Context())
		if ok {
			*got = user
		}
		w.WriteHeader(http.StatusOK)
	})
}

// ---- token sources ----

func TestTokenFromHeader(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantToken string
		wantErr   error
	}{
		{name: "valid bearer token", header: "Bearer abc123", wantToken: "abc123"},
		{name: "case-insensitive scheme", header: "bearer abc123", wantToken: "abc123"},
		{name: "no header", header: ""},
		{name: "missing token", header: "Bearer", wantErr: ErrInvalidAuthorizationHeader},
		{name: "wrong scheme", header: "Basic abc123", wantErr: ErrInvalidAuthorizationHeader},
		{name: "extra parts", header: "Bearer a b", wantErr: ErrInvalidAuthorizationHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/items", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			token, err := tokenFromHeader(req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

func TestTokenFromQuery(t *testing.T) {
	token, err := tokenFromQuery(httptest.NewRequest(http.MethodGet, "/items?token=q-token", nil))
	require.NoError(t, err)
	assert.Equal(t, "q-token", token)

	token, err = tokenFromQuery(httptest.NewRequest(http.MethodGet, "/items", nil))
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestTokenFromBody(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantToken string
	}{
		{name: "token field", body: `{"name":"lamp","token":"b-token"}`, wantToken: "b-token"},
		{name: "no token field", body: `{"name":"lamp"}`},
		{name: "malformed json", body: `{"name":`},
		{name: "empty body", body: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/items/new", strings.NewReader(tt.body))

			token, err := tokenFromBody(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)

			// the handler must still see the full body
			rest, err := io.ReadAll(req.Body)
			require.NoError(t, err)
			assert.Equal(t, tt.body, string(rest))
		})
	}
}

func TestTokenFromPath(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{value: "p-token", want: "p-token"},
		{value: "{recipient_token}", want: ""},
		{value: "%7Brecipient_token%7D", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/get/item/recipient", nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("recipient_token", tt.value)
			req = req.WithContext(contextWithRoute(req, rctx))

			token, err := tokenFromPath("recipient_token")(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, token)
		})
	}
}

func TestFindToken_FirstNonEmptyWins(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/items/new?token=q-token", strings.NewReader(`{"token":"b-token"}`))
	req.Header.Set("Authorization", "Bearer h-token")

	token, err := findToken(req, []tokenSource{tokenFromHeader, tokenFromQuery, tokenFromBody})
	require.NoError(t, err)
	assert.Equal(t, "h-token", token)

	req.Header.Del("Authorization")
	token, err = findToken(req, []tokenSource{tokenFromHeader, tokenFromQuery, tokenFromBody})
	require.NoError(t, err)
	assert.Equal(t, "q-token", token)

	_, err = findToken(httptest.NewRequest(http.MethodGet, "/items", nil), []tokenSource{tokenFromHeader, tokenFromQuery})
	assert.ErrorIs(t, err, ErrEmptyToken)
}

// ---- auth middleware ----

func TestAuth_TableTest(t *testing.T) {
	user := models.User{ID: 7, Login: "bob"}

	tests := []struct {
		name           string
		header         string
		authErr        error
		expectAuth     bool
		wantStatus     int
		wantDetail     string
		wantNextCalled bool
	}{
		{
			name:       "no token → 401",
			wantStatus: http.StatusUnauthorized,
			wantDetail: app.MsgTokenNotAuthorized,
		},
		{
			name:       "malformed header → 401",
			header:     "Token abc",
			wantStatus: http.StatusUnauthorized,
			wantDetail: app.MsgTokenNotAuthorized,
		},
		{
			name:           "valid token → next called",
			header:         "Bearer good",
			expectAuth:     true,
			wantStatus:     http.StatusOK,
			wantNextCalled: true,
		},
		{
			name:       "unknown or expired token → 401",
			header:     "Bearer stale",
			expectAuth: true,
			authErr:    service.ErrUnauthenticated,
			wantStatus: http.StatusUnauthorized,
			wantDetail: app.MsgTokenNotAuthorized,
		},
		{
			name:       "store failure → 500",
			header:     "Bearer good",
			expectAuth: true,
			authErr:    fmt.Errorf("find user by token: %w", errors.New("db down")),
			wantStatus: http.StatusInternalServerError,
			wantDetail: app.MsgInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newMockedHandler(t)
			if tt.expectAuth {
				token, _ := utils.ParseBearerToken(tt.header)
				m.auth.EXPECT().Authenticate(gomock.Any(), token).Return(user, tt.authErr)
			}

			var got *models.User
			req := httptest.NewRequest(http.MethodGet, "/items", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.auth(tokenFromHeader, tokenFromQuery)(capturingNext(&got)).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantNextCalled {
				require.NotNil(t, got)
				assert.Equal(t, user, *got)
				return
			}
			assert.Nil(t, got)
			assert.Equal(t, tt.wantDetail, decodeDetail(t, rec))
		})
	}
}

func TestAuth_BodyTokenLeavesBodyForHandler(t *testing.T) {
	h, m := newMockedHandler(t)
	m.auth.EXPECT().Authenticate(gomock.Any(), "b-token").Return(alice, nil)

	const body = `{"name":"lamp","token":"b-token"}`
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		seen = string(b)
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	h.auth(tokenFromHeader, tokenFromQuery, tokenFromBody)(next).
		ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/items/new", strings.NewReader(body)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, body, seen)
}
