package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-item-custody/internal/app"
	"github.com/MKhiriev/go-item-custody/internal/logger"
	"github.com/MKhiriev/go-item-custody/internal/service"
	"github.com/MKhiriev/go-item-custody/internal/store"
	"github.com/MKhiriev/go-item-custody/internal/utils"
	"github.com/MKhiriev/go-item-custody/internal/validators"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided: http.StatusUnprocessableEntity,
	service.ErrInvalidCredentials:  http.StatusUnauthorized,
	service.ErrUnauthenticated:     http.StatusUnauthorized,
	service.ErrSelfSending:         http.StatusBadRequest,
	service.ErrRecipientNotFound:   http.StatusNotFound,
	service.ErrTokenCreationFailed: http.StatusInternalServerError,

	validators.ErrValidationFailed: http.StatusUnprocessableEntity,
	validators.ErrUnsupportedType:  http.StatusInternalServerError,

	store.ErrLoginAlreadyExists: http.StatusConflict,
	store.ErrItemNotFound:       http.StatusNotFound,
	store.ErrSendingNotFound:    http.StatusNotFound,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

// errorDetailMap holds the fixed client-facing messages. Errors missing here
// expose their own text unless they map to 500.
var errorDetailMap = map[error]string{
	service.ErrInvalidCredentials: app.MsgUserNotFound,
	service.ErrUnauthenticated:    app.MsgTokenNotAuthorized,
	service.ErrSelfSending:        app.MsgSelfSending,
	service.ErrRecipientNotFound:  app.MsgRecipientNotFound,

	store.ErrLoginAlreadyExists: app.MsgUserAlreadyExists,
	store.ErrItemNotFound:       app.MsgItemNotFound,
	store.ErrSendingNotFound:    app.MsgSendingNotFound,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

func detailFromError(err error) string {
	for target, detail := range errorDetailMap {
		if errors.Is(err, target) {
			return detail
		}
	}
	if statusFromError(err) == http.StatusInternalServerError {
		return app.MsgInternalServerError
	}
	return err.Error()
}

// writeError answers with the status and detail mapped from err.
func writeError(w http.ResponseWriter, r *http.Request, funcName string, err error) {
	status := statusFromError(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Str("func", funcName).Msg("request failed")
	} else {
		log.Debug().Err(err).Str("func", funcName).Int("status", status).Msg("request rejected")
	}

	utils.WriteError(w, detailFromError(err), status)
}
