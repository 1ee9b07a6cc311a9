package handlers

import (
	"errors"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/foxxcyber/breakfast-club/internal/models"
	"github.com/foxxcyber/breakfast-club/internal/services"
)

// maxSheetBytes caps uploaded stock-take photos at 10MB
const maxSheetBytes = 10 * 1024 * 1024

// ListLeftovers returns one entry per ingredient; unset leftovers have a
// null reported_qty
func (h *Handler) ListLeftovers(c *fiber.Ctx) error {
	return Success(c, h.planning.Leftovers())
}

// SetLeftover records the leftover quantity for one ingredient and returns
// the recomputed plan
func (h *Handler) SetLeftover(c *fiber.Ctx) error {
	var req models.UpdateLeftoverRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	qty, ok := parseQuantity(req.Quantity)
	if !ok {
		return Error(c, fiber.StatusBadRequest, "quantity must be a number")
	}

	plan, err := h.planning.SetLeftover(c.Context(), c.Params("key"), qty)
	if err != nil {
		return leftoverError(c, err)
	}

	return Success(c, plan)
}

// ClearLeftover returns one ingredient's leftover to unset
func (h *Handler) ClearLeftover(c *fiber.Ctx) error {
	plan, err := h.planning.ClearLeftover(c.Context(), c.Params("key"))
	if err != nil {
		return leftoverError(c, err)
	}

	return Success(c, plan)
}

// ClearLeftovers unsets every leftover
func (h *Handler) ClearLeftovers(c *fiber.Ctx) error {
	return Success(c, h.planning.ClearLeftovers(c.Context()))
}

// ScanLeftovers reads a photographed stock-take sheet and applies every
// recognised line as a leftover
func (h *Handler) ScanLeftovers(c *fiber.Ctx) error {
	if h.ocr == nil {
		return Error(c, fiber.StatusServiceUnavailable, "stock-take scanning is not enabled")
	}

	file, err := c.FormFile("image")
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "image file is required")
	}

	if !isValidImageType(file.Header.Get("Content-Type")) {
		return Error(c, fiber.StatusBadRequest, "invalid image type. Supported: JPEG, PNG, WebP")
	}

	if file.Size > maxSheetBytes {
		return Error(c, fiber.StatusBadRequest, "file too large. Maximum size is 10MB")
	}

	src, err := file.Open()
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to read file")
	}
	defer src.Close()

	imageBytes, err := io.ReadAll(src)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to read file")
	}

	result, err := h.ocr.ProcessImage(imageBytes)
	if err != nil {
		log.Printf("Stock-take OCR failed: %v", err)
		return Error(c, fiber.StatusUnprocessableEntity, "could not read the stock-take sheet")
	}

	lines, unmatched := h.parser.Parse(result.Text)
	log.Printf("Stock-take scan read %d line(s): %d recognised, %d unmatched", result.Lines, len(lines), len(unmatched))

	plan, err := h.planning.ApplyScannedLeftovers(c.Context(), lines)
	if err != nil {
		return leftoverError(c, err)
	}

	return Success(c, fiber.Map{
		"scan": models.LeftoverScanResult{
			Applied:   lines,
			Unmatched: unmatched,
		},
		"plan": plan,
	})
}

func leftoverError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrUnknownIngredient):
		return Error(c, fiber.StatusBadRequest, "unknown ingredient")
	case errors.Is(err, services.ErrInvalidQuantity):
		return Error(c, fiber.StatusBadRequest, "quantity must be a finite number")
	default:
		return Error(c, fiber.StatusInternalServerError, "failed to update leftovers")
	}
}

// parseQuantity accepts JSON numbers and numeric strings
func parseQuantity(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// isValidImageType checks if the content type is a valid image
func isValidImageType(contentType string) bool {
	validTypes := []string{
		"image/jpeg",
		"image/jpg",
		"image/png",
		"image/webp",
	}

	for _, t := range validTypes {
		if strings.EqualFold(contentType, t) {
			return true
		}
	}
	return false
}
