package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// APIVersion is the version of the /api surface this build serves
const APIVersion = "1.0.0"

// VersionMiddleware parses the X-Api-Version header, stores it in context and
// answers with the version actually served
func VersionMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		version := strings.TrimPrefix(c.Get("X-Api-Version", APIVersion), "v")

		// Support version aliases
		if version == "1" || version == "1.0" {
			version = "1.0.0"
		}
		if !strings.HasPrefix(version, "1.") {
			return &fiber.Error{Code: fiber.StatusBadRequest, Message: "Unsupported API version " + version}
		}

		c.Locals("apiVersion", version)
		c.Set("X-Api-Version", APIVersion)

		return c.Next()
	}
}
