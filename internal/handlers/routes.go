package handlers

import (
	"github.com/docshare/filesystem/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

// Register mounts the customer-scoped routes under api. Fixed routes are
// registered before the wildcard and parameter routes they would otherwise
// shadow.
func Register(api fiber.Router, contentHandler *ContentHandler, filesHandler *FilesHandler) {
	customer := api.Group("/:customerId", middleware.RequireCustomer)

	customer.Post("/content", contentHandler.Create)
	customer.Post("/content/lookup", contentHandler.Lookup)
	customer.Patch("/content/:id", contentHandler.Update)
	customer.Delete("/content/:id", contentHandler.Delete)
	customer.Get("/content/:id/children", contentHandler.ListChildren)
	customer.Get("/content", contentHandler.GetByPath)
	customer.Get("/content/*", contentHandler.GetByPath)

	customer.Get("/files", filesHandler.GetByName)
	customer.Get("/files/search", filesHandler.Search)
	customer.Get("/:directoryId/files", filesHandler.GetByDirectory)
}
