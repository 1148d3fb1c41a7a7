package controller

import (
	"kiosk-assistant-be/internal/dto"
	"kiosk-assistant-be/internal/pkg/logger"
	"kiosk-assistant-be/internal/pkg/serverutils"
	"kiosk-assistant-be/internal/service"
	internalWS "kiosk-assistant-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type IChatbotController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	Stream(ctx *fiber.Ctx) error
}

type chatbotController struct {
	service service.IChatbotService
	logger  logger.ILogger
}

func NewChatbotController(service service.IChatbotService, log logger.ILogger) IChatbotController {
	return &chatbotController{service: service, logger: log}
}

func (c *chatbotController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat")
	h.Post("", c.Chat)
	h.Get("/ws", c.Stream)
	h.Get("/:conversationId/history", c.History)
}

// Chat answers with the bare ChatResponse; failures use the error envelope.
func (c *chatbotController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Chat(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *chatbotController) History(ctx *fiber.Ctx) error {
	res, err := c.service.History(ctx.UserContext(), ctx.Params("conversationId"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chat history", res))
}

// Stream upgrades to a WebSocket carrying one turn per frame
func (c *chatbotController) Stream(ctx *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(ctx) {
		return fiber.ErrUpgradeRequired
	}

	conversationId := ctx.Query("conversationId")
	return websocket.New(func(conn *websocket.Conn) {
		c.logger.Info("WEBSOCKET", "Chat connection opened", map[string]interface{}{"conversation_id": conversationId})
		internalWS.ServeChat(conn, conversationId, c.service.Chat, c.logger)
		c.logger.Info("WEBSOCKET", "Chat connection closed", nil)
	})(ctx)
}
