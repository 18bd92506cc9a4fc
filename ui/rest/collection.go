package rest

import (
	"github.com/gofiber/fiber/v2"

	domainCollection "github.com/creatorlens/backend/domains/collection"
	"github.com/creatorlens/backend/pkg/utils"
	"github.com/creatorlens/backend/ui/rest/middleware"
	"github.com/creatorlens/backend/validations"
)

type Collection struct {
	Service domainCollection.ICollectionUsecase
}

func InitRestCollection(app fiber.Router, service domainCollection.ICollectionUsecase) Collection {
	rest := Collection{Service: service}
	app.Get("/collections", rest.List)
	app.Post("/collections", rest.Save)
	app.Get("/collections/:id", rest.GetByID)
	app.Patch("/collections/:id", rest.Update)
	app.Patch("/collections/:id/toggle-like", rest.ToggleLike)
	app.Delete("/collections/:id", rest.Delete)
	return rest
}

func (controller *Collection) List(c *fiber.Ctx) error {
	items, err := controller.Service.List(c.UserContext(), middleware.UserID(c), c.Query("type"))
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success fetch collections",
		Results: items,
	})
}

func (controller *Collection) Save(c *fiber.Ctx) error {
	var request domainCollection.CreateRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	err = validations.ValidateSaveCollection(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	item, err := controller.Service.Save(c.UserContext(), middleware.UserID(c), request)
	utils.PanicIfNeeded(err)

	return c.Status(201).JSON(utils.ResponseData{
		Status:  201,
		Code:    "SUCCESS",
		Message: "Success save collection item",
		Results: item,
	})
}

func (controller *Collection) GetByID(c *fiber.Ctx) error {
	item, err := controller.Service.GetByID(c.UserContext(), middleware.UserID(c), c.Params("id"))
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success fetch collection item",
		Results: item,
	})
}

func (controller *Collection) Update(c *fiber.Ctx) error {
	var request domainCollection.UpdateRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	item, err := controller.Service.Update(c.UserContext(), middleware.UserID(c), c.Params("id"), request)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success update collection item",
		Results: item,
	})
}

func (controller *Collection) ToggleLike(c *fiber.Ctx) error {
	item, err := controller.Service.ToggleLike(c.UserContext(), middleware.UserID(c), c.Params("id"))
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success toggle like",
		Results: item,
	})
}

func (controller *Collection) Delete(c *fiber.Ctx) error {
	err := controller.Service.Delete(c.UserContext(), middleware.UserID(c), c.Params("id"))
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success delete collection item",
	})
}
