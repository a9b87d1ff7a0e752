package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/rifat-hasan/socialine/backend/internal/models"
	"github.com/rifat-hasan/socialine/backend/internal/pagination"
	"github.com/rifat-hasan/socialine/backend/internal/repositories"
)

// fakeNotificationRepo validates arguments the way the real repository does
// and serves a canned group list.
type fakeNotificationRepo struct {
	groups   []models.NotificationGroup
	unseen   bool
	seenAt   time.Time
	failWith error
}

func (f *fakeNotificationRepo) find(subjectID string, offset, limit int64) (pagination.Paginated[models.NotificationGroup], error) {
	var empty pagination.Paginated[models.NotificationGroup]
	if f.failWith != nil {
		return empty, f.failWith
	}
	if err := pagination.ValidateRange(offset, limit); err != nil {
		return empty, err
	}
	return pagination.NewPaginated(int64(len(f.groups)), pagination.SliceOffset(f.groups, offset, limit)), nil
}

func (f *fakeNotificationRepo) CreateNotification(ctx context.Context, event *models.NotificationEvent) error {
	return nil
}

func (f *fakeNotificationRepo) FindDailyNotifications(ctx context.Context, subjectID string, offset, limit int64) (pagination.Paginated[models.NotificationGroup], error) {
	return f.find(subjectID, offset, limit)
}

func (f *fakeNotificationRepo) FindWeeklyNotifications(ctx context.Context, subjectID string, offset, limit int64) (pagination.Paginated[models.NotificationGroup], error) {
	return f.find(subjectID, offset, limit)
}

func (f *fakeNotificationRepo) FindMonthlyNotifications(ctx context.Context, subjectID string, offset, limit int64) (pagination.Paginated[models.NotificationGroup], error) {
	return f.find(subjectID, offset, limit)
}

func (f *fakeNotificationRepo) FindEarlierNotifications(ctx context.Context, subjectID string, offset, limit int64) (pagination.Paginated[models.NotificationGroup], error) {
	return f.find(subjectID, offset, limit)
}

func (f *fakeNotificationRepo) UpdateActorAcrossNotifications(ctx context.Context, actorID string, update models.ActorUpdate) error {
	return nil
}

func (f *fakeNotificationRepo) HasUnseenNotifications(ctx context.Context, subjectID string) (bool, error) {
	return f.unseen, nil
}

func (f *fakeNotificationRepo) MarkSeen(ctx context.Context, subjectID string, at time.Time) error {
	f.seenAt = at
	return nil
}

func notificationRequest(t *testing.T, repo repositories.NotificationRepository, method, target string, authed bool) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if authed {
		c.Set("user", &models.JwtCustomClaims{UserID: 7, Username: "alice"})
	}

	h := NewNotificationHandler(repo)
	var err error
	switch {
	case target == "/notifications/unseen":
		err = h.GetHasUnseen(c)
	case method == http.MethodPut:
		err = h.MarkSeen(c)
	default:
		err = h.GetDailyNotifications(c)
	}
	if err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestGetDailyNotifications(t *testing.T) {
	repo := &fakeNotificationRepo{
		groups: []models.NotificationGroup{
			{ID: "a", Kind: models.NotificationLike, ActorsCount: 3},
			{ID: "b", Kind: models.NotificationFollow, ActorsCount: 1},
		},
	}

	rec := notificationRequest(t, repo, http.MethodGet, "/notifications/daily?offset=0&limit=10", true)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			TotalCount int64                      `json:"totalCount"`
			Page       []models.NotificationGroup `json:"page"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.True(t, body.Success)
	require.Equal(t, int64(2), body.Data.TotalCount)
	require.Len(t, body.Data.Page, 2)
}

func TestGetDailyNotificationsNegativeLimit(t *testing.T) {
	repo := &fakeNotificationRepo{}

	rec := notificationRequest(t, repo, http.MethodGet, "/notifications/daily?limit=-1", true)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetDailyNotificationsMalformedLimit(t *testing.T) {
	repo := &fakeNotificationRepo{}

	rec := notificationRequest(t, repo, http.MethodGet, "/notifications/daily?limit=abc", true)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetDailyNotificationsMalformedOffset(t *testing.T) {
	repo := &fakeNotificationRepo{}

	rec := notificationRequest(t, repo, http.MethodGet, "/notifications/daily?offset=first", true)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetDailyNotificationsStoreFailure(t *testing.T) {
	repo := &fakeNotificationRepo{failWith: repositories.ErrStoreUnavailable}

	rec := notificationRequest(t, repo, http.MethodGet, "/notifications/daily", true)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGetDailyNotificationsUnauthenticated(t *testing.T) {
	rec := notificationRequest(t, &fakeNotificationRepo{}, http.MethodGet, "/notifications/daily", false)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetHasUnseen(t *testing.T) {
	rec := notificationRequest(t, &fakeNotificationRepo{unseen: true}, http.MethodGet, "/notifications/unseen", true)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"has_unseen":true`)
}

func TestMarkSeen(t *testing.T) {
	repo := &fakeNotificationRepo{}

	rec := notificationRequest(t, repo, http.MethodPut, "/notifications/seen", true)
	require.Equal(t, http.StatusOK, rec.Code)
	require.False(t, repo.seenAt.IsZero())
}
