// FILE: internal/controller/location_controller.go
package controller

import (
	"kiosk-assistant-be/internal/dto"
	"kiosk-assistant-be/internal/pkg/serverutils"
	"kiosk-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ILocationController interface {
	RegisterRoutes(r fiber.Router)
	FindByZip(ctx *fiber.Ctx) error
}

type locationController struct {
	service service.ILocationService
}

func NewLocationController(service service.ILocationService) ILocationController {
	return &locationController{service: service}
}

func (c *locationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/locations")
	h.Get("", c.FindByZip)
}

func (c *locationController) FindByZip(ctx *fiber.Ctx) error {
	var query dto.LocationQuery
	if err := ctx.QueryParser(&query); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid query")
	}

	if err := serverutils.ValidateRequest(query); err != nil {
		return err
	}

	locations, err := c.service.FindByZip(ctx.UserContext(), query.Zip)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success find kiosks", dto.LocationResponse{
		ZipCode:   query.Zip,
		Locations: locations,
	}))
}
