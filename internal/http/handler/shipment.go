package handler

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"shipdesk/internal/service"
)

type lookupRequest struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

type noteRequest struct {
	Note      string `json:"note"`
	StatusKey string `json:"statusKey"`
}

type attachRequest struct {
	Filename string `json:"filename"`
	FileURL  string `json:"fileUrl"`
	FileType string `json:"fileType"`
}

// LookupShipment handles POST /shipment.
//
// @Summary Look up a shipment by internal id or BOL number
// @Accept json
// @Produce json
// @Param request body lookupRequest true "identifier and type (shipmentID|bolNumber)"
// @Success 200 {object} model.ShipmentSummary
// @Router /shipment [post]
func LookupShipment(svc service.ShipmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req lookupRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be JSON")
		}
		// Validation happens before any upstream call.
		if req.ID == "" || req.Type == "" {
			return writeError(c, fiber.StatusBadRequest, "MISSING_FIELDS", "id and type are required")
		}

		sum, err := svc.Lookup(c.UserContext(), req.ID, req.Type)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(sum)
	}
}

// ListShipmentDocuments handles GET /shipment/:id/documents.
//
// @Summary List a shipment's documents (opaque upstream pass-through)
// @Produce json
// @Param id path string true "shipment internal id"
// @Success 200 {object} map[string]any
// @Router /shipment/{id}/documents [get]
func ListShipmentDocuments(svc service.ShipmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		docs, err := svc.Documents(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"documents": docs})
	}
}

// PostShipmentNote handles POST /shipment/:id/note.
//
// @Summary Append a status note to a shipment
// @Accept json
// @Produce json
// @Param id path string true "shipment internal id"
// @Param request body noteRequest true "note text and the shipment's current status key"
// @Success 200 {object} map[string]any
// @Router /shipment/{id}/note [post]
func PostShipmentNote(svc service.ShipmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req noteRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be JSON")
		}
		if req.Note == "" || req.StatusKey == "" {
			return writeError(c, fiber.StatusBadRequest, "MISSING_FIELDS", "note and statusKey are required")
		}

		history, err := svc.PostNote(c.UserContext(), c.Params("id"), req.Note, req.StatusKey)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"statusHistory": history})
	}
}

// AttachShipmentDocument handles POST /shipment/:id/documents/attach.
//
// @Summary Attach a document to a shipment from a URL
// @Accept json
// @Produce json
// @Param id path string true "shipment internal id"
// @Param request body attachRequest true "filename, source URL and MIME type"
// @Success 200 {object} map[string]any
// @Router /shipment/{id}/documents/attach [post]
func AttachShipmentDocument(svc service.ShipmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req attachRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be JSON")
		}
		if req.Filename == "" || req.FileURL == "" {
			return writeError(c, fiber.StatusBadRequest, "MISSING_FIELDS", "filename and fileUrl are required")
		}

		details, err := svc.AttachDocument(c.UserContext(), c.Params("id"), service.AttachRequest{
			Filename: req.Filename,
			FileURL:  req.FileURL,
			FileType: req.FileType,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		if details == nil {
			details = json.RawMessage(`{}`)
		}
		return c.JSON(fiber.Map{"success": true, "details": details})
	}
}
