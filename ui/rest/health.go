package rest

import (
	"github.com/gofiber/fiber/v2"

	"github.com/creatorlens/backend/domains/health"
	"github.com/creatorlens/backend/pkg/utils"
)

type Health struct {
	Service health.IHealthUsecase
}

func InitRestHealth(app fiber.Router, service health.IHealthUsecase) Health {
	handler := Health{Service: service}
	app.Get("/health", handler.GetStatus)
	return handler
}

func (h *Health) GetStatus(c *fiber.Ctx) error {
	records := h.Service.Check(c.UserContext())

	status := 200
	for _, r := range records {
		if r.Status == health.StatusError {
			status = 503
			break
		}
	}

	return c.Status(status).JSON(utils.ResponseData{
		Status:  status,
		Code:    "SUCCESS",
		Message: "Health status retrieved",
		Results: records,
	})
}
