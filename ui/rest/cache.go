package rest

import (
	"github.com/gofiber/fiber/v2"

	"github.com/creatorlens/backend/pkg/utils"
	"github.com/creatorlens/backend/usecase"
)

type Cache struct {
	Service usecase.ICacheAdminUsecase
}

func InitRestCache(app fiber.Router, service usecase.ICacheAdminUsecase) Cache {
	rest := Cache{Service: service}
	app.Get("/cache/stats", rest.GetStats)
	app.Delete("/cache/search", rest.ClearSearchCache)
	return rest
}

func (handler *Cache) GetStats(c *fiber.Ctx) error {
	stats := handler.Service.Stats(c.UserContext())

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Cache stats retrieved",
		Results: stats,
	})
}

func (handler *Cache) ClearSearchCache(c *fiber.Ctx) error {
	handler.Service.ClearSearchCache(c.UserContext())

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Search cache cleared successfully",
	})
}
