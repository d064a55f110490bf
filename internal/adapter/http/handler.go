package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"onepager-generator/internal/domain"
	"onepager-generator/internal/logger"
	"onepager-generator/internal/usecase"
)

// DefaultTemplate is used when a request names no template.
const DefaultTemplate = "classic"

type Handler struct {
	processor *usecase.Processor
	log       *zap.Logger
}

func NewHandler(p *usecase.Processor, log *zap.Logger) *Handler {
	return &Handler{processor: p, log: logger.OrNop(log)}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/templates", h.Templates)
	app.Get("/templates/:key", h.Template)
	app.Post("/render", h.Render)
	app.Post("/preview", h.Preview)
	app.Post("/export", h.Export)
	app.Get("/exports/:id", h.Download)
	app.Post("/enhance", h.Enhance)
	app.Get("/hosted/:id", h.HostedPreview)
	app.Get("/hosted/:id/pdf", h.HostedExport)
}

func (h *Handler) parse(c *fiber.Ctx) (usecase.RenderRequest, error) {
	var req usecase.RenderRequest
	if err := c.BodyParser(&req); err != nil {
		return req, fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if req.Template == "" {
		req.Template = DefaultTemplate
	}
	return req, nil
}

func (h *Handler) Templates(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"templates": h.processor.Templates()})
}

func (h *Handler) Template(c *fiber.Ctx) error {
	d, err := h.processor.Template(c.Params("key"))
	if err != nil {
		return err
	}
	return c.JSON(d)
}

// Render returns the HTML fragment and warnings as JSON.
func (h *Handler) Render(c *fiber.Ctx) error {
	req, err := h.parse(c)
	if err != nil {
		return err
	}
	res := h.processor.Render(c.UserContext(), req)
	return c.JSON(fiber.Map{
		"template": req.Template,
		"html":     res.HTML,
		"warnings": res.Warnings,
	})
}

// Preview returns a standalone watermarked page.
func (h *Handler) Preview(c *fiber.Ctx) error {
	req, err := h.parse(c)
	if err != nil {
		return err
	}
	res, err := h.processor.Preview(c.UserContext(), req)
	if err != nil {
		return err
	}
	return h.sendPreview(c, res)
}

// Export returns the PDF as an attachment.
func (h *Handler) Export(c *fiber.Ctx) error {
	req, err := h.parse(c)
	if err != nil {
		return err
	}
	res, err := h.processor.Export(c.UserContext(), req)
	if err != nil {
		return err
	}
	return h.sendPDF(c, res)
}

// Download returns a previously exported PDF. The owner is passed as the
// user_id query parameter, matching the user_id of the export request.
func (h *Handler) Download(c *fiber.Ctx) error {
	id := c.Params("id")
	pdf, err := h.processor.Download(c.UserContext(), c.Query("user_id"), id)
	if err != nil {
		return err
	}
	c.Attachment(id + ".pdf")
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(pdf)
}

// Enhance returns AI suggestions for one editor field.
func (h *Handler) Enhance(c *fiber.Ctx) error {
	var req usecase.EnhanceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	res, err := h.processor.Enhance(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

func (h *Handler) HostedPreview(c *fiber.Ctx) error {
	res, err := h.processor.HostedPreview(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return h.sendPreview(c, res)
}

func (h *Handler) HostedExport(c *fiber.Ctx) error {
	res, err := h.processor.HostedExport(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return h.sendPDF(c, res)
}

func (h *Handler) sendPreview(c *fiber.Ctx, res *usecase.PreviewResult) error {
	c.Set("X-Onepager-Layout", string(res.Layout))
	c.Set("X-Onepager-Warnings", strconv.Itoa(len(res.Warnings)))
	c.Type("html", "utf-8")
	return c.SendString(res.HTML)
}

func (h *Handler) sendPDF(c *fiber.Ctx, res *usecase.ExportResult) error {
	c.Attachment(res.Filename)
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set("X-Job-ID", res.JobID.String())
	c.Set("X-Onepager-Pages", strconv.Itoa(res.Pages))
	c.Set("X-Onepager-Warnings", strconv.Itoa(len(res.Warnings)))
	return c.Send(res.PDF)
}

// ErrorStatus maps domain errors to HTTP status codes.
func ErrorStatus(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, domain.ErrTemplateNotFound), errors.Is(err, domain.ErrHostedNotFound),
		errors.Is(err, domain.ErrArtifactNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrUnsupportedField):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrDownloadDisabled):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrSuggestUnavailable):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, domain.ErrRenderFailed), errors.Is(err, domain.ErrSuggestFailed):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler writes every error as {"error": "..."}.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := ErrorStatus(err)
		msg := err.Error()
		if status == fiber.StatusInternalServerError {
			log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
			msg = "internal server error"
		} else if status == fiber.StatusBadGateway {
			log.Warn("upstream failed", zap.String("path", c.Path()), zap.Error(err))
		}
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}
}
