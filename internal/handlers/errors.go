package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rifat-hasan/socialine/backend/internal/pagination"
	"github.com/rifat-hasan/socialine/backend/internal/repositories"
)

// httpError maps the core error kinds onto status codes: InvalidArgument is
// the caller's fault, StoreUnavailable is a downstream outage the caller may
// retry, everything else is a plain 500.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, pagination.ErrInvalidArgument):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, repositories.ErrStoreUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
