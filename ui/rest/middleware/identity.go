package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/creatorlens/backend/pkg/utils"
)

// RequireUser resolves the caller's identity from the X-User-ID header.
// Authentication itself lives in an external service; by the time requests
// reach this backend the gateway has already verified the user.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Get("X-User-ID")
		if userID == "" {
			return c.Status(401).JSON(utils.ResponseData{
				Status:  401,
				Code:    "UNAUTHORIZED",
				Message: "X-User-ID header is required",
			})
		}
		c.Locals("userID", userID)
		c.Locals("userEmail", c.Get("X-User-Email"))
		return c.Next()
	}
}

func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals("userID").(string)
	return id
}

func UserEmail(c *fiber.Ctx) string {
	email, _ := c.Locals("userEmail").(string)
	return email
}
