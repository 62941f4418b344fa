package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/arifshehab/Capstone-Project/internal/client/marketdata"
	"github.com/arifshehab/Capstone-Project/internal/client/quiver"
	"github.com/arifshehab/Capstone-Project/internal/service"
)

const msgSymbolNotFound = "Symbol does not exist"

func statusFor(err error) (int, string) {
	switch {
	case err == nil:
		return http.StatusOK, "ok"
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, marketdata.ErrSymbolNotFound):
		return http.StatusUnprocessableEntity, msgSymbolNotFound
	case errors.Is(err, quiver.ErrNoToken):
		return http.StatusServiceUnavailable, err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "upstream timed out"
	case errors.Is(err, service.ErrUpstream):
		return http.StatusBadGateway, err.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
