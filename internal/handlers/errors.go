package handlers

import (
	"github.com/docshare/filesystem/internal/services"
	"github.com/docshare/filesystem/pkg/logger"
	"github.com/docshare/filesystem/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

// respondError maps a service failure to its HTTP status. Unexpected failures
// are logged and answered with a generic message.
func respondError(c *fiber.Ctx, err error) error {
	kind := services.KindOf(err)

	var status int
	switch kind {
	case services.KindNotFound:
		status = fiber.StatusNotFound
	case services.KindRootExists, services.KindInvalid:
		status = fiber.StatusBadRequest
	case services.KindPathExists, services.KindConflict:
		status = fiber.StatusConflict
	default:
		details := map[string]interface{}{
			"method": c.Method(),
			"path":   c.Path(),
		}
		if customerID := logger.GetCustomerIDFromContext(c); customerID != nil {
			logger.ErrorWithCustomer(*customerID, "content_request_failed", err, details)
		} else {
			logger.Error("content_request_failed", err, details)
		}
		return utils.ErrorWithCode(c, fiber.StatusInternalServerError, kind.String(), "something went wrong")
	}

	return utils.ErrorWithCode(c, status, kind.String(), err.Error())
}
