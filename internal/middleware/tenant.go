package middleware

import (
	"strings"

	"github.com/docshare/filesystem/pkg/logger"
	"github.com/docshare/filesystem/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/google/uuid"
)

const currentCustomerKey = "currentCustomer"

func CORS() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, If-Match",
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
	})
}

// RequireCustomer parses the :customerId route parameter and stores it for
// the handlers and the request loggers.
func RequireCustomer(c *fiber.Ctx) error {
	raw := strings.TrimSpace(c.Params("customerId"))
	customerID, err := uuid.Parse(raw)
	if err != nil || customerID == uuid.Nil {
		logger.Warn("customer_id_invalid", map[string]interface{}{
			"ip":          c.IP(),
			"path":        c.Path(),
			"customer_id": raw,
		})
		return utils.Error(c, fiber.StatusBadRequest, "invalid customer id")
	}

	c.Locals(currentCustomerKey, customerID)
	c.Locals("customerID", customerID.String())
	return c.Next()
}

func GetCurrentCustomer(c *fiber.Ctx) uuid.UUID {
	value := c.Locals(currentCustomerKey)
	if value == nil {
		return uuid.Nil
	}
	customerID, ok := value.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return customerID
}
