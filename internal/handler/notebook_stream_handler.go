package handler

import (
	"strconv"

	"note-to-self/internal/pkg/logger"
	"note-to-self/internal/pkg/serverutils"
	internalWS "note-to-self/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// NotebookStreamHandler upgrades gated requests to a websocket that receives
// change events for one notebook.
type NotebookStreamHandler struct {
	hub      *internalWS.Hub
	resolver serverutils.GrantResolver
	logger   logger.ILogger
}

func NewNotebookStreamHandler(hub *internalWS.Hub, resolver serverutils.GrantResolver, log logger.ILogger) *NotebookStreamHandler {
	return &NotebookStreamHandler{
		hub:      hub,
		resolver: resolver,
		logger:   log,
	}
}

func (h *NotebookStreamHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/notebook/v1/:id/ws", serverutils.NotebookAccessMiddleware(h.resolver), h.ServeWs)
}

// ServeWs handles websocket requests from the peer. Browsers pass the token
// as ?token= since they cannot set headers on the upgrade request.
func (h *NotebookStreamHandler) ServeWs(c *fiber.Ctx) error {
	grant, err := serverutils.GrantFromCtx(c)
	if err != nil {
		return err
	}

	notebookId, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	if !grant.Allows(notebookId) {
		return serverutils.ErrForbidden
	}

	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	sessionId := grant.SessionId
	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("NotebookStreamHandler", "websocket session started", map[string]interface{}{
			"notebook_id": notebookId,
			"session_id":  sessionId,
		})
		internalWS.ServeWs(h.hub, conn, notebookId, sessionId)
		h.logger.Info("NotebookStreamHandler", "websocket session ended", map[string]interface{}{
			"notebook_id": notebookId,
			"session_id":  sessionId,
		})
	})(c)
}
