package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rifat-hasan/socialine/backend/internal/models"
	"github.com/rifat-hasan/socialine/backend/internal/pagination"
	"github.com/rifat-hasan/socialine/backend/internal/repositories"
)

// NotificationHandler handles notification-feed HTTP requests
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifRepo repositories.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notificationRepository: notifRepo}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications/daily", h.GetDailyNotifications)
	g.GET("/notifications/weekly", h.GetWeeklyNotifications)
	g.GET("/notifications/monthly", h.GetMonthlyNotifications)
	g.GET("/notifications/earlier", h.GetEarlierNotifications)
	g.GET("/notifications/unseen", h.GetHasUnseen)
	g.PUT("/notifications/seen", h.MarkSeen)
}

type notificationFinder func(c echo.Context, subjectID string, offset, limit int64) (pagination.Paginated[models.NotificationGroup], error)

func (h *NotificationHandler) getGroups(c echo.Context, find notificationFinder) error {
	subjectID := subjectIDFromContext(c)
	if subjectID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	offset, limit, err := pagingParams(c)
	if err != nil {
		return httpError(err)
	}

	result, err := find(c, subjectID, offset, limit)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": result})
}

// GetDailyNotifications returns today's grouped notifications, bucketed by hour
func (h *NotificationHandler) GetDailyNotifications(c echo.Context) error {
	return h.getGroups(c, func(c echo.Context, subjectID string, offset, limit int64) (pagination.Paginated[models.NotificationGroup], error) {
		return h.notificationRepository.FindDailyNotifications(c.Request().Context(), subjectID, offset, limit)
	})
}

// GetWeeklyNotifications returns this week's grouped notifications, bucketed by day
func (h *NotificationHandler) GetWeeklyNotifications(c echo.Context) error {
	return h.getGroups(c, func(c echo.Context, subjectID string, offset, limit int64) (pagination.Paginated[models.NotificationGroup], error) {
		return h.notificationRepository.FindWeeklyNotifications(c.Request().Context(), subjectID, offset, limit)
	})
}

// GetMonthlyNotifications returns this month's grouped notifications, bucketed by day
func (h *NotificationHandler) GetMonthlyNotifications(c echo.Context) error {
	return h.getGroups(c, func(c echo.Context, subjectID string, offset, limit int64) (pagination.Paginated[models.NotificationGroup], error) {
		return h.notificationRepository.FindMonthlyNotifications(c.Request().Context(), subjectID, offset, limit)
	})
}

// GetEarlierNotifications returns the trailing four months, bucketed by week
func (h *NotificationHandler) GetEarlierNotifications(c echo.Context) error {
	return h.getGroups(c, func(c echo.Context, subjectID string, offset, limit int64) (pagination.Paginated[models.NotificationGroup], error) {
		return h.notificationRepository.FindEarlierNotifications(c.Request().Context(), subjectID, offset, limit)
	})
}

// GetHasUnseen reports whether anything arrived since the user's watermark
func (h *NotificationHandler) GetHasUnseen(c echo.Context) error {
	subjectID := subjectIDFromContext(c)
	if subjectID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	unseen, err := h.notificationRepository.HasUnseenNotifications(c.Request().Context(), subjectID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"has_unseen": unseen}})
}

// MarkSeen moves the user's watermark to now
func (h *NotificationHandler) MarkSeen(c echo.Context) error {
	subjectID := subjectIDFromContext(c)
	if subjectID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	if err := h.notificationRepository.MarkSeen(c.Request().Context(), subjectID, time.Now()); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"seen": true}})
}
