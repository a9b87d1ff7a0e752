package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rifat-hasan/socialine/backend/internal/models"
	"github.com/rifat-hasan/socialine/backend/internal/pagination"
	"github.com/rifat-hasan/socialine/backend/internal/repositories"
)

// ChatHandler handles chat and message HTTP requests
type ChatHandler struct {
	chatRepository    repositories.ChatRepository
	messageRepository repositories.MessageRepository
	userRepository    repositories.UserRepository
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(chatRepo repositories.ChatRepository, messageRepo repositories.MessageRepository, userRepo repositories.UserRepository) *ChatHandler {
	return &ChatHandler{
		chatRepository:    chatRepo,
		messageRepository: messageRepo,
		userRepository:    userRepo,
	}
}

// RegisterChatRoutes registers chat-related routes
func (h *ChatHandler) RegisterChatRoutes(g *echo.Group) {
	g.GET("/chats", h.GetChats)
	g.POST("/chats", h.CreateChat)
	g.GET("/chats/:id/messages", h.GetMessages)
	g.POST("/chats/:id/messages", h.SendMessage)
	g.POST("/chats/:id/messages/:messageId/reactions", h.AddReaction)
}

// GetChats returns the paginated chat feed, each chat joined to its latest
// message and ordered by that message's timestamp.
func (h *ChatHandler) GetChats(c echo.Context) error {
	currentUserID := subjectIDFromContext(c)
	if currentUserID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	offset, limit, err := pagingParams(c)
	if err != nil {
		return httpError(err)
	}

	result, err := h.chatRepository.FindChatsWithLatestMessage(c.Request().Context(), currentUserID, offset, limit)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": result})
}

// CreateChat creates a chat with the current user as creator. Member ids are
// resolved to user summaries at creation time; those copies go stale when a
// profile changes.
func (h *ChatHandler) CreateChat(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateChatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	creator, err := h.userRepository.GetUserByID(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	members, err := h.userRepository.GetUsersByIDs(append(req.MemberIDs, currentUserID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	chat := &models.Chat{Creator: creator.Summary()}
	seen := make(map[uint]bool)
	for _, m := range members {
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		chat.Members = append(chat.Members, m.Summary())
	}

	if err := h.chatRepository.CreateChat(c.Request().Context(), chat); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": chat})
}

// chatHasMember reports whether the user appears in the chat's member list.
func chatHasMember(chat *models.Chat, userID string) bool {
	for _, m := range chat.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}

// GetMessages pages a chat's history with a keyset cursor
// (cursor_id + cursor_created_at, RFC3339). Only members may read.
func (h *ChatHandler) GetMessages(c echo.Context) error {
	currentUserID := subjectIDFromContext(c)
	if currentUserID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	_, limit, err := pagingParams(c)
	if err != nil {
		return httpError(err)
	}

	chat, err := h.chatRepository.GetChatByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	if chat == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Chat not found")
	}
	if !chatHasMember(chat, currentUserID) {
		return echo.NewHTTPError(http.StatusForbidden, "Not a member of this chat")
	}

	var cursor *pagination.Cursor
	if id := c.QueryParam("cursor_id"); id != "" {
		at, err := time.Parse(time.RFC3339Nano, c.QueryParam("cursor_created_at"))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid cursor_created_at")
		}
		cursor = &pagination.Cursor{ID: id, CreatedAt: at}
	}

	result, err := h.messageRepository.ListMessages(c.Request().Context(), chat.ID.Hex(), cursor, limit)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": result})
}

// SendMessage posts a message into a chat
func (h *ChatHandler) SendMessage(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	chat, err := h.chatRepository.GetChatByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	if chat == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Chat not found")
	}
	if !chatHasMember(chat, subjectIDFromContext(c)) {
		return echo.NewHTTPError(http.StatusForbidden, "Not a member of this chat")
	}

	sender, err := h.userRepository.GetUserByID(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	message := &models.Message{
		ChatID:   chat.ID.Hex(),
		Creator:  sender.Compact(),
		Text:     req.Text,
		PhotoURL: req.PhotoURL,
		VideoURL: req.VideoURL,
		ReplyTo:  req.ReplyTo,
	}
	if err := h.messageRepository.CreateMessage(c.Request().Context(), message); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": message})
}

// AddReaction adds a reaction to a message
func (h *ChatHandler) AddReaction(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.AddReactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userRepository.GetUserByID(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	reaction := models.Reaction{Reaction: req.Reaction, User: user.Compact()}
	if err := h.messageRepository.AddReaction(c.Request().Context(), c.Param("messageId"), reaction); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": reaction})
}
