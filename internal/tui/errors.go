package tui

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/MKhiriev/go-item-custody/internal/adapter"
)

const (
	msgServerDown   = "Network is down or the server is unavailable"
	msgUnauthorized = "Not authorized, log in again"
)

// transport failures that reach us only as text, e.g. from a proxy
var networkFailureMarkers = []string{"connection refused", "no such host", "network is unreachable", "i/o timeout"}

// humanizeError turns adapter and network errors into one-line messages.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) || errors.Is(err, context.DeadlineExceeded) {
		return msgServerDown
	}
	if errors.Is(err, adapter.ErrUnauthorized) || errors.Is(err, adapter.ErrNoToken) {
		return msgUnauthorized
	}

	text := strings.ToLower(err.Error())
	for _, marker := range networkFailureMarkers {
		if strings.Contains(text, marker) {
			return msgServerDown
		}
	}

	return err.Error()
}
