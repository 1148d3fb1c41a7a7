package controller

import (
	"context"

	"kiosk-assistant-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
)

// KnowledgeCounter reports how many chunks are indexed
type KnowledgeCounter interface {
	Count(ctx context.Context) (int, error)
}

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
}

type healthController struct {
	knowledge KnowledgeCounter
}

func NewHealthController(knowledge KnowledgeCounter) IHealthController {
	return &healthController{knowledge: knowledge}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Health)
}

// Health always answers 200; an empty knowledge base only degrades general answers.
func (c *healthController) Health(ctx *fiber.Ctx) error {
	chunks, err := c.knowledge.Count(ctx.UserContext())
	status := "ok"
	if err != nil || chunks == 0 {
		status = "degraded"
	}
	return ctx.JSON(serverutils.SuccessResponse(status, fiber.Map{
		"knowledgeChunks": chunks,
	}))
}
