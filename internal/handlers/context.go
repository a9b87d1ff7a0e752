package handlers

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rifat-hasan/socialine/backend/internal/models"
	"github.com/rifat-hasan/socialine/backend/internal/pagination"
)

// getUserIDFromContext extracts the authenticated user id set by the JWT
// middleware. Returns 0 when unauthenticated.
func getUserIDFromContext(c echo.Context) uint {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		return 0
	}
	return claims.UserID
}

// subjectIDFromContext is the string form the document store keys on.
func subjectIDFromContext(c echo.Context) string {
	id := getUserIDFromContext(c)
	if id == 0 {
		return ""
	}
	return strconv.FormatUint(uint64(id), 10)
}

// pagingParams reads offset/limit query params. Absent params default to
// offset 0, limit 20. A value that does not parse is InvalidArgument, like
// the negatives the repositories reject; present values otherwise pass
// through untouched.
func pagingParams(c echo.Context) (offset, limit int64, err error) {
	offset, limit = 0, 20
	if raw := c.QueryParam("offset"); raw != "" {
		offset, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("offset %q: %w", raw, pagination.ErrInvalidArgument)
		}
	}
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("limit %q: %w", raw, pagination.ErrInvalidArgument)
		}
	}
	return offset, limit, nil
}
