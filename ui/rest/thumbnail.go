package rest

import (
	"github.com/gofiber/fiber/v2"

	"github.com/creatorlens/backend/domains/media"
	"github.com/creatorlens/backend/pkg/utils"
	"github.com/creatorlens/backend/ui/rest/middleware"
	"github.com/creatorlens/backend/validations"
)

type Thumbnail struct {
	Service media.IThumbnailUsecase
}

func InitRestThumbnail(app fiber.Router, service media.IThumbnailUsecase) Thumbnail {
	rest := Thumbnail{Service: service}
	app.Post("/thumbnails/generate", rest.Generate)
	app.Post("/thumbnails/generate-multiple", rest.GenerateMultiple)
	app.Get("/thumbnails", rest.List)
	app.Get("/thumbnails/:id", rest.GetByID)
	app.Delete("/thumbnails/:id", rest.Delete)
	app.Patch("/thumbnails/:id/toggle-public", rest.TogglePublic)
	app.Delete("/thumbnails/cache/prompt", rest.ClearPromptCache)
	return rest
}

type generateRequest struct {
	Prompt           string `json:"prompt"`
	SaveToCollection bool   `json:"saveToCollection"`
	MakePublic       bool   `json:"makePublic"`
	Count            int    `json:"count"`
}

func (controller *Thumbnail) buildRequest(c *fiber.Ctx) (media.GenerateRequest, int) {
	var body generateRequest
	err := c.BodyParser(&body)
	utils.PanicIfNeeded(err)

	req := media.GenerateRequest{
		UserID:           middleware.UserID(c),
		UserEmail:        middleware.UserEmail(c),
		Prompt:           body.Prompt,
		SaveToCollection: body.SaveToCollection,
		MakePublic:       body.MakePublic,
	}
	err = validations.ValidateGenerate(c.UserContext(), req)
	utils.PanicIfNeeded(err)
	return req, body.Count
}

func (controller *Thumbnail) Generate(c *fiber.Ctx) error {
	req, _ := controller.buildRequest(c)

	result, err := controller.Service.Generate(c.UserContext(), req)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success generate thumbnail",
		Results: result,
	})
}

func (controller *Thumbnail) GenerateMultiple(c *fiber.Ctx) error {
	req, count := controller.buildRequest(c)

	results, err := controller.Service.GenerateMultiple(c.UserContext(), req, count)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success generate thumbnail variations",
		Results: results,
	})
}

func (controller *Thumbnail) List(c *fiber.Ctx) error {
	thumbnails, err := controller.Service.ListForUser(c.UserContext(), middleware.UserID(c))
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success fetch thumbnails",
		Results: thumbnails,
	})
}

func (controller *Thumbnail) GetByID(c *fiber.Ctx) error {
	thumbnail, err := controller.Service.GetByID(c.UserContext(), middleware.UserID(c), c.Params("id"))
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success fetch thumbnail",
		Results: thumbnail,
	})
}

func (controller *Thumbnail) Delete(c *fiber.Ctx) error {
	err := controller.Service.Delete(c.UserContext(), middleware.UserID(c), c.Params("id"))
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success delete thumbnail",
	})
}

func (controller *Thumbnail) TogglePublic(c *fiber.Ctx) error {
	thumbnail, err := controller.Service.TogglePublic(c.UserContext(), middleware.UserID(c), c.Params("id"))
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success toggle thumbnail visibility",
		Results: thumbnail,
	})
}

func (controller *Thumbnail) ClearPromptCache(c *fiber.Ctx) error {
	prompt := c.Query("prompt")
	err := validations.ValidateSearch(c.UserContext(), validations.SearchRequest{Query: prompt})
	utils.PanicIfNeeded(err)

	controller.Service.ClearPromptCache(c.UserContext(), prompt)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success clear prompt cache",
	})
}
