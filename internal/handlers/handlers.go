package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/foxxcyber/breakfast-club/internal/config"
	"github.com/foxxcyber/breakfast-club/internal/models"
	"github.com/foxxcyber/breakfast-club/internal/services"
)

// TextRecognizer extracts text from a photographed stock-take sheet
type TextRecognizer interface {
	ProcessImage(imageBytes []byte) (*services.OCRResult, error)
}

// PlanPublisher uploads the current plan for the kitchen display
type PlanPublisher interface {
	Publish(ctx context.Context, plan *models.Plan, expiry time.Duration) (*services.UploadResult, error)
}

// Handler holds all handler dependencies
type Handler struct {
	cfg       *config.Config
	planning  *services.PlanningService
	publisher PlanPublisher
	ocr       TextRecognizer
	parser    *services.LeftoverSheetParser
}

// New creates a new Handler instance. publisher and ocr may be nil, in
// which case their endpoints answer 503.
func New(cfg *config.Config, planning *services.PlanningService, publisher PlanPublisher, ocr TextRecognizer) *Handler {
	return &Handler{
		cfg:       cfg,
		planning:  planning,
		publisher: publisher,
		ocr:       ocr,
		parser:    services.NewLeftoverSheetParser(),
	}
}

// ErrorHandler is a custom error handler for Fiber
func ErrorHandler(c *fiber.Ctx, err error) error {
	// Default to 500
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(APIResponse{
		Success: false,
		Error:   message,
	})
}

// APIResponse is a standard API response structure
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success returns a successful response
func Success(c *fiber.Ctx, data interface{}) error {
	return c.JSON(APIResponse{
		Success: true,
		Data:    data,
	})
}

// Error returns an error response
func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(APIResponse{
		Success: false,
		Error:   message,
	})
}

// Health reports liveness and the source of the current vendor data
func (h *Handler) Health(c *fiber.Ctx) error {
	plan := h.planning.CurrentPlan()
	return c.JSON(fiber.Map{
		"status":   "ok",
		"mode":     plan.Mode,
		"auth":     h.cfg.AuthEnabled(),
		"scanning": h.ocr != nil,
		"publish":  h.publisher != nil,
	})
}
