package http

import (
	"errors"
	"net/http"

	"appointment-calendar/internal/schedule"
	pkgErrors "appointment-calendar/pkg/errors"
)

// mapError translates domain errors into HTTP errors from pkg/errors.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, schedule.ErrWidgetNotFound):
		return pkgErrors.NewHTTPError(http.StatusNotFound, "widget not found")
	case errors.Is(err, schedule.ErrWidgetExists):
		return pkgErrors.NewHTTPError(http.StatusConflict, "widget id already registered")
	case errors.Is(err, schedule.ErrWidgetClosed):
		return pkgErrors.NewHTTPError(http.StatusGone, "widget is closed")
	case errors.Is(err, schedule.ErrInvalidDate),
		errors.Is(err, schedule.ErrInvalidStep),
		errors.Is(err, schedule.ErrInvalidAction):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return pkgErrors.ErrInternalServerError
	}
}
