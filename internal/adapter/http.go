package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-item-custody/internal/config"
	"github.com/MKhiriev/go-item-custody/internal/logger"
	"github.com/MKhiriev/go-item-custody/internal/utils"
	"github.com/MKhiriev/go-item-custody/models"
)

// recipientTokenPlaceholder is the last path segment of a confirmation URL
// issued for a recipient who was not logged in.
const recipientTokenPlaceholder = "{recipient_token}"

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the REST implementation of [ServerAdapter].
// It normalises the base URL from cfg.ServerAddress and stores cfg.Token.
//
// Returns an error if cfg.ServerAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(cfg config.ClientConfig, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.ServerAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid server address: %w", err)
	}

	a := &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}
	a.SetToken(cfg.Token)

	return a, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter].
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Banner implements [ServerAdapter].
func (h *httpServerAdapter) Banner(ctx context.Context) (models.BannerResponse, error) {
	var banner models.BannerResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&banner).
		Get("/")
	if err != nil {
		return banner, fmt.Errorf("banner request: %w", err)
	}

	return banner, mapHTTPError(resp)
}

// Register implements [ServerAdapter]. It POSTs the credentials to
// POST /registration.
func (h *httpServerAdapter) Register(ctx context.Context, login, password string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(models.RegisterRequest{Login: login, Password: password}).
		Post("/registration")
	if err != nil {
		return fmt.Errorf("register request: %w", err)
	}

	return mapHTTPError(resp)
}

// Login implements [ServerAdapter]. On success the token from the response
// body is stored via SetToken.
func (h *httpServerAdapter) Login(ctx context.Context, login, password string) (string, error) {
	var session models.LoginResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(models.LoginRequest{Login: login, Password: password}).
		SetResult(&session).
		Post("/login")
	if err != nil {
		return "", fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	h.SetToken(session.Token)
	return session.Token, nil
}

// CreateItem implements [ServerAdapter].
func (h *httpServerAdapter) CreateItem(ctx context.Context, name string) (models.Item, error) {
	var created models.CreateItemResponse

	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.Item{}, err
	}
	resp, err := req.
		SetBody(models.CreateItemRequest{Name: name}).
		SetResult(&created).
		Post("/items/new")
	if err != nil {
		return models.Item{}, fmt.Errorf("create item request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Item{}, err
	}

	return models.Item{ID: created.ID, Name: created.Name}, nil
}

// ListItems implements [ServerAdapter].
func (h *httpServerAdapter) ListItems(ctx context.Context) ([]models.Item, error) {
	items := make([]models.Item, 0)

	req, err := h.authedRequest(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := req.
		SetResult(&items).
		Get("/items")
	if err != nil {
		return nil, fmt.Errorf("list items request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return items, nil
}

// DeleteItem implements [ServerAdapter]. The server answers 204 when there
// was nothing to remove.
func (h *httpServerAdapter) DeleteItem(ctx context.Context, id int64) (bool, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return false, err
	}
	resp, err := req.
		SetPathParam("id", strconv.FormatInt(id, 10)).
		Delete("/items/{id}")
	if err != nil {
		return false, fmt.Errorf("delete item request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return false, err
	}

	return resp.StatusCode() != http.StatusNoContent, nil
}

// SendItem implements [ServerAdapter].
func (h *httpServerAdapter) SendItem(ctx context.Context, id int64, recipient string) (string, error) {
	var offer models.SendItemResponse

	req, err := h.authedRequest(ctx)
	if err != nil {
		return "", err
	}
	resp, err := req.
		SetBody(models.SendItemRequest{ID: id, Recipient: recipient}).
		SetResult(&offer).
		Post("/send")
	if err != nil {
		return "", fmt.Errorf("send item request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return offer.ConfirmationURL, nil
}

// Claim implements [ServerAdapter]. Only the path of confirmationURL is
// used; the request goes to the configured server.
func (h *httpServerAdapter) Claim(ctx context.Context, confirmationURL string) error {
	itemToken, recipientToken, err := parseConfirmationURL(confirmationURL)
	if err != nil {
		return err
	}
	if recipientToken == recipientTokenPlaceholder || recipientToken == "" {
		recipientToken = h.Token()
	}
	if recipientToken == "" {
		return ErrNoToken
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParams(map[string]string{
			"item_token":      itemToken,
			"recipient_token": recipientToken,
		}).
		Get("/get/{item_token}/{recipient_token}")
	if err != nil {
		return fmt.Errorf("claim request: %w", err)
	}

	return mapHTTPError(resp)
}

// parseConfirmationURL splits ".../get/{item_token}/{recipient_token}".
func parseConfirmationURL(raw string) (string, string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrInvalidConfirmationURL, err)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) != 3 || parts[0] != "get" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidConfirmationURL, raw)
	}

	return parts[1], parts[2], nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) (*resty.Request, error) {
	token := h.Token()
	if token == "" {
		return nil, ErrNoToken
	}

	return h.client.R().
		SetContext(ctx).
		SetAuthToken(token), nil
}
