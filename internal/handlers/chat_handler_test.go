package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rifat-hasan/socialine/backend/internal/models"
	"github.com/rifat-hasan/socialine/backend/internal/pagination"
	"github.com/rifat-hasan/socialine/backend/validators"
)

type fakeChatRepo struct {
	chat *models.Chat
}

func (f *fakeChatRepo) CreateChat(ctx context.Context, chat *models.Chat) error {
	return nil
}

func (f *fakeChatRepo) GetChatByID(ctx context.Context, id string) (*models.Chat, error) {
	return f.chat, nil
}

func (f *fakeChatRepo) FindChatsWithLatestMessage(ctx context.Context, userID string, offset, limit int64) (pagination.Paginated[models.ChatWithLatestMessage], error) {
	var empty pagination.Paginated[models.ChatWithLatestMessage]
	if err := pagination.ValidateRange(offset, limit); err != nil {
		return empty, err
	}
	return pagination.NewPaginated[models.ChatWithLatestMessage](0, nil), nil
}

type fakeMessageRepo struct {
	created *models.Message
}

func (f *fakeMessageRepo) CreateMessage(ctx context.Context, message *models.Message) error {
	f.created = message
	return nil
}

func (f *fakeMessageRepo) ListMessages(ctx context.Context, chatID string, cursor *pagination.Cursor, limit int64) (pagination.CursorPage[models.Message], error) {
	var empty pagination.CursorPage[models.Message]
	if err := pagination.ValidateLimit(limit); err != nil {
		return empty, err
	}
	return pagination.NewCursorPage[models.Message](false, nil), nil
}

func (f *fakeMessageRepo) AddReaction(ctx context.Context, messageID string, reaction models.Reaction) error {
	return nil
}

type fakeUserRepo struct{}

func (f *fakeUserRepo) CreateUser(user *models.User) error { return nil }

func (f *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	return &models.User{ID: id, Username: "alice"}, nil
}

func (f *fakeUserRepo) GetUserByEmail(email string) (*models.User, error) {
	return nil, echo.ErrNotFound
}

func (f *fakeUserRepo) GetUsersByIDs(ids []uint) ([]models.User, error) { return nil, nil }

func (f *fakeUserRepo) UpdateUser(user *models.User) error { return nil }

func testChat(memberIDs ...string) *models.Chat {
	chat := &models.Chat{ID: primitive.NewObjectID()}
	for _, id := range memberIDs {
		chat.Members = append(chat.Members, models.UserSummary{ID: id, Username: "u" + id})
	}
	return chat
}

func chatRequest(t *testing.T, h *ChatHandler, method, target, body string, userID uint, invoke func(echo.Context) error) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	e.Validator = validators.NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("64f000000000000000000000")
	if userID != 0 {
		c.Set("user", &models.JwtCustomClaims{UserID: userID, Username: "alice"})
	}

	if err := invoke(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

// A user who is not in the member list may neither read nor post.
func TestGetMessagesRequiresMembership(t *testing.T) {
	h := NewChatHandler(&fakeChatRepo{chat: testChat("8", "9")}, &fakeMessageRepo{}, &fakeUserRepo{})

	rec := chatRequest(t, h, http.MethodGet, "/chats/x/messages", "", 7, h.GetMessages)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetMessagesAsMember(t *testing.T) {
	h := NewChatHandler(&fakeChatRepo{chat: testChat("7", "9")}, &fakeMessageRepo{}, &fakeUserRepo{})

	rec := chatRequest(t, h, http.MethodGet, "/chats/x/messages", "", 7, h.GetMessages)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"hasNext":false`)
}

func TestSendMessageRequiresMembership(t *testing.T) {
	msgRepo := &fakeMessageRepo{}
	h := NewChatHandler(&fakeChatRepo{chat: testChat("8", "9")}, msgRepo, &fakeUserRepo{})

	rec := chatRequest(t, h, http.MethodPost, "/chats/x/messages", `{"text":"hi"}`, 7, h.SendMessage)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Nil(t, msgRepo.created)
}

func TestSendMessageAsMember(t *testing.T) {
	msgRepo := &fakeMessageRepo{}
	h := NewChatHandler(&fakeChatRepo{chat: testChat("7", "9")}, msgRepo, &fakeUserRepo{})

	rec := chatRequest(t, h, http.MethodPost, "/chats/x/messages", `{"text":"hi"}`, 7, h.SendMessage)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, msgRepo.created)
	require.Equal(t, "hi", msgRepo.created.Text)
}

func TestGetMessagesMissingChat(t *testing.T) {
	h := NewChatHandler(&fakeChatRepo{}, &fakeMessageRepo{}, &fakeUserRepo{})

	rec := chatRequest(t, h, http.MethodGet, "/chats/x/messages", "", 7, h.GetMessages)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetChatsMalformedLimit(t *testing.T) {
	h := NewChatHandler(&fakeChatRepo{}, &fakeMessageRepo{}, &fakeUserRepo{})

	rec := chatRequest(t, h, http.MethodGet, "/chats?limit=abc", "", 7, h.GetChats)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
