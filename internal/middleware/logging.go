package middleware

import (
	"time"

	"github.com/docshare/filesystem/pkg/logger"
	"github.com/gofiber/fiber/v2"
)

func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		requestID := logger.GenerateRequestID()
		c.Locals("requestID", requestID)

		err := c.Next()

		latency := time.Since(start)
		statusCode := c.Response().StatusCode()

		customerID := logger.GetCustomerIDFromContext(c)

		details := map[string]interface{}{
			"method":        c.Method(),
			"path":          c.Path(),
			"status_code":   statusCode,
			"latency_ms":    latency.Milliseconds(),
			"user_agent":    c.Get("User-Agent"),
			"ip":            c.IP(),
			"request_body":  logger.RequestBodySummary(c.Body()),
			"response_body": logger.ResponseBodySummary(c.Response().Body()),
			"request_id":    requestID,
		}

		if customerID != nil {
			if statusCode >= 500 {
				logger.ErrorWithCustomer(*customerID, "http_request", err, details)
			} else if statusCode >= 400 {
				logger.WarnWithCustomer(*customerID, "http_request", details)
			} else {
				logger.InfoWithCustomer(*customerID, "http_request", details)
			}
		} else {
			if statusCode >= 500 {
				logger.Error("http_request", err, details)
			} else if statusCode >= 400 {
				logger.Warn("http_request", details)
			} else {
				logger.Info("http_request", details)
			}
		}

		return err
	}
}

// SecurityLogger records lookups of missing content and optimistic
// concurrency rejections, which are the signals of clients probing paths or
// racing each other.
func SecurityLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		statusCode := c.Response().StatusCode()
		customerID := logger.GetCustomerIDFromContext(c)

		var reason string
		switch statusCode {
		case fiber.StatusNotFound:
			reason = "not_found"
		case fiber.StatusConflict:
			reason = "conflict"
		default:
			return err
		}

		details := map[string]interface{}{
			"method": c.Method(),
			"path":   c.Path(),
			"ip":     c.IP(),
			"reason": reason,
		}

		if customerID != nil {
			logger.WarnWithCustomer(*customerID, reason, details)
		} else {
			logger.Warn(reason+"_without_customer", details)
		}

		return err
	}
}

func GetRequestID(c *fiber.Ctx) string {
	if value, ok := c.Locals("requestID").(string); ok {
		return value
	}
	return ""
}
