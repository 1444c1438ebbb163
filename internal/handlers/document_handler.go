package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/hearthstack/household-backend/internal/household"
	"github.com/hearthstack/household-backend/internal/services"
)

// 25 MiB, matching the Fiber body limit configured in main.
const maxDocumentSize = 25 << 20

type DocumentHandler struct {
	documentService *services.DocumentService
}

func NewDocumentHandler(documentService *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

func (h *DocumentHandler) List(c *fiber.Ctx) error {
	householdID, err := household.GetHouseholdID(c)
	if err != nil {
		return unauthorized(c)
	}
	docs, err := h.documentService.List(householdID)
	if err != nil {
		return internalError(c, "Failed to list documents")
	}
	return c.JSON(fiber.Map{"documents": docs})
}

func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	householdID, err := household.GetHouseholdID(c)
	if err != nil {
		return unauthorized(c)
	}
	userID, err := household.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "Missing file")
	}
	if fileHeader.Size > maxDocumentSize {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
			"error": true, "message": "File too large",
		})
	}

	title := c.FormValue("title", fileHeader.Filename)
	category := c.FormValue("category", "general")

	file, err := fileHeader.Open()
	if err != nil {
		return internalError(c, "Failed to read file")
	}
	defer file.Close()

	doc, err := h.documentService.Upload(
		c.Context(), householdID, userID,
		title, category,
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), fileHeader.Size,
		file,
	)
	if err != nil {
		if errors.Is(err, services.ErrStorageUnavailable) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": true, "message": "Document storage is not configured",
			})
		}
		return internalError(c, "Failed to upload document")
	}
	return c.Status(fiber.StatusCreated).JSON(doc)
}

func (h *DocumentHandler) Download(c *fiber.Ctx) error {
	householdID, err := household.GetHouseholdID(c)
	if err != nil {
		return unauthorized(c)
	}
	docID, ok := paramUUID(c, "id")
	if !ok {
		return badRequest(c, "Invalid document ID")
	}

	url, err := h.documentService.DownloadURL(c.Context(), householdID, docID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDocumentNotFound):
			return notFound(c, "Document not found")
		case errors.Is(err, services.ErrStorageUnavailable):
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": true, "message": "Document storage is not configured",
			})
		default:
			return internalError(c, "Failed to generate download URL")
		}
	}
	return c.JSON(fiber.Map{"url": url})
}

func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	householdID, err := household.GetHouseholdID(c)
	if err != nil {
		return unauthorized(c)
	}
	docID, ok := paramUUID(c, "id")
	if !ok {
		return badRequest(c, "Invalid document ID")
	}

	if err := h.documentService.Delete(c.Context(), householdID, docID); err != nil {
		if errors.Is(err, services.ErrDocumentNotFound) {
			return notFound(c, "Document not found")
		}
		return internalError(c, "Failed to delete document")
	}
	return c.JSON(fiber.Map{"message": "document deleted"})
}
