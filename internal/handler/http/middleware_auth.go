package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-item-custody/internal/app"
	"github.com/MKhiriev/go-item-custody/internal/logger"
	"github.com/MKhiriev/go-item-custody/internal/service"
	"github.com/MKhiriev/go-item-custody/internal/utils"
)

// maxTokenBodySize bounds how much of a request body tokenFromBody reads.
const maxTokenBodySize = 1 << 20

// tokenSource extracts the caller's token from one place of the request.
// An empty token with a nil error means the source holds no token.
type tokenSource func(r *http.Request) (string, error)

// auth is an HTTP middleware that resolves the caller's bearer token into a
// user.
//
// The sources are tried in order and the first non-empty token wins. The
// token is checked via [service.AuthService.Authenticate]; on success the
// user is stored in the request context with [utils.WithUser].
//
// Requests without a token, with a malformed Authorization header, or with
// an unknown or expired token are rejected with 401. Store failures yield
// 500.
func (h *Handler) auth(sources ...tokenSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger.FromRequest(r)

			token, err := findToken(r, sources)
			if err != nil {
				log.Err(err).Str("func", "*Handler.auth").Send()
				utils.WriteError(w, app.MsgTokenNotAuthorized, http.StatusUnauthorized)
				return
			}

			ctx := r.Context()
			user, err := h.services.AuthService.Authenticate(ctx, token)
			if err != nil {
				if !errors.Is(err, service.ErrUnauthenticated) {
					log.Err(err).Str("func", "*Handler.auth").Msg("error occurred during token check")
					utils.WriteError(w, app.MsgInternalServerError, http.StatusInternalServerError)
					return
				}
				log.Debug().Str("func", "*Handler.auth").Msg("token rejected")
				utils.WriteError(w, app.MsgTokenNotAuthorized, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(utils.WithUser(ctx, &user)))
		})
	}
}

func findToken(r *http.Request, sources []tokenSource) (string, error) {
	for _, source := range sources {
		token, err := source(r)
		if err != nil {
			return "", err
		}
		if token != "" {
			return token, nil
		}
	}
	return "", ErrEmptyToken
}

// tokenFromHeader reads "Authorization: Bearer <token>".
func tokenFromHeader(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", nil
	}

	token, err := utils.ParseBearerToken(authHeader)
	if err != nil {
		return "", ErrInvalidAuthorizationHeader
	}
	return token, nil
}

// tokenFromQuery reads the "token" query parameter.
func tokenFromQuery(r *http.Request) (string, error) {
	return r.URL.Query().Get("token"), nil
}

// tokenFromBody reads the "token" field of a JSON body and restores the
// body for the handler. Undecodable bodies yield no token; the handler
// reports them.
func tokenFromBody(r *http.Request) (string, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return "", nil
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxTokenBodySize))
	if err != nil {
		return "", err
	}
	r.Body = io.NopCloser(bytes.NewReader(body))

	var req struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return "", nil
	}
	return req.Token, nil
}

// tokenFromPath reads the named chi URL parameter. An unfilled "{param}"
// placeholder counts as no token.
func tokenFromPath(param string) tokenSource {
	placeholder := "{" + param + "}"
	return func(r *http.Request) (string, error) {
		value := chi.URLParam(r, param)
		if unescaped, err := url.PathUnescape(value); err == nil && unescaped == placeholder {
			return "", nil
		}
		return value, nil
	}
}
