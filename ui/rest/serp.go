package rest

import (
	"github.com/gofiber/fiber/v2"

	"github.com/creatorlens/backend/domains/media"
	"github.com/creatorlens/backend/pkg/utils"
	"github.com/creatorlens/backend/validations"
)

type Serp struct {
	Service media.ISearchUsecase
}

func InitRestSerp(app fiber.Router, service media.ISearchUsecase) Serp {
	rest := Serp{Service: service}
	app.Get("/serp/trending-videos", rest.TrendingVideos)
	app.Get("/serp/search-videos", rest.SearchVideos)
	app.Get("/serp/trending-images", rest.TrendingImages)
	app.Get("/serp/search-images", rest.SearchImages)
	app.Get("/serp/chat-suggestions", rest.ChatSuggestions)
	return rest
}

func (controller *Serp) TrendingVideos(c *fiber.Ctx) error {
	query := c.Query("q", "trending")

	results, err := controller.Service.GetTrendingVideos(c.UserContext(), query)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success fetch trending videos",
		Results: results,
	})
}

func (controller *Serp) SearchVideos(c *fiber.Ctx) error {
	query := c.Query("q")
	err := validations.ValidateSearch(c.UserContext(), validations.SearchRequest{Query: query})
	utils.PanicIfNeeded(err)

	results, err := controller.Service.SearchVideos(c.UserContext(), query)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success search videos",
		Results: results,
	})
}

func (controller *Serp) TrendingImages(c *fiber.Ctx) error {
	query := c.Query("q", "youtube thumbnail ideas")

	results, err := controller.Service.GetTrendingImages(c.UserContext(), query)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success fetch trending images",
		Results: results,
	})
}

func (controller *Serp) SearchImages(c *fiber.Ctx) error {
	query := c.Query("q")
	err := validations.ValidateSearch(c.UserContext(), validations.SearchRequest{Query: query})
	utils.PanicIfNeeded(err)

	results, err := controller.Service.SearchImages(c.UserContext(), query)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success search images",
		Results: results,
	})
}

func (controller *Serp) ChatSuggestions(c *fiber.Ctx) error {
	query := c.Query("q")
	err := validations.ValidateSearch(c.UserContext(), validations.SearchRequest{Query: query})
	utils.PanicIfNeeded(err)

	suggestions, err := controller.Service.ChatSuggestions(c.UserContext(), query)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success fetch chat suggestions",
		Results: suggestions,
	})
}
