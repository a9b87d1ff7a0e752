package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rifat-hasan/socialine/backend/internal/models"
	"github.com/rifat-hasan/socialine/backend/internal/repositories"
)

// UserHandler handles user profile HTTP requests
type UserHandler struct {
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, notifRepo repositories.NotificationRepository) *UserHandler {
	return &UserHandler{
		userRepository:         userRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterProfileRoutes registers user profile routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/users/me", h.GetMe)
	g.PUT("/users/me", h.UpdateMe)
}

// GetMe returns the current user's profile
func (h *UserHandler) GetMe(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	user, err := h.userRepository.GetUserByID(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": user})
}

// UpdateMe updates the profile and fans the new display fields out to the
// embedded actor summaries on recent notification events. The fan-out has no
// transactional guarantee; readers may briefly see a mix of old and new
// summaries.
func (h *UserHandler) UpdateMe(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userRepository.GetUserByID(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	if req.Username != "" {
		user.Username = req.Username
	}
	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.PhotoURL != "" {
		user.PhotoURL = req.PhotoURL
	}

	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	summary := user.Summary()
	update := models.ActorUpdate{Username: summary.Username, PhotoURL: summary.PhotoURL}
	if err := h.notificationRepository.UpdateActorAcrossNotifications(c.Request().Context(), summary.ID, update); err != nil {
		// Profile write already landed; stale summaries heal on the next
		// successful update within the staleness bound.
		c.Logger().Warnf("actor summary fan-out failed for user %s: %v", summary.ID, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": user})
}
