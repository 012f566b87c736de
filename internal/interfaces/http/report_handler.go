package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/reports"
)

// ReportHandler resumen de ventas.
type ReportHandler struct {
	summary *reports.SummaryUseCase
	pdf     *reports.PDFUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(summary *reports.SummaryUseCase, pdf *reports.PDFUseCase) *ReportHandler {
	return &ReportHandler{summary: summary, pdf: pdf}
}

// Summary godoc
// @Summary      Resumen de ventas
// @Description  Totales, top 5 de productos por cantidad y serie mensual del periodo.
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Param        periodo  query  string  false  "1m | 3m | 6m | 12m"  default(1m)
// @Success      200  {object}  dto.SalesSummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/ventas/reportes/resumen [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	out, err := h.summary.Summarize(c.UserContext(), c.Query("periodo"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SummaryPDF godoc
// @Summary      Resumen de ventas en PDF
// @Tags         reportes
// @Security     Bearer
// @Produce      application/pdf
// @Param        periodo  query  string  false  "1m | 3m | 6m | 12m"  default(1m)
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/ventas/reportes/resumen.pdf [get]
func (h *ReportHandler) SummaryPDF(c *fiber.Ctx) error {
	period := c.Query("periodo", reports.DefaultPeriod)
	pdf, err := h.pdf.GenerateSummaryPDF(c.UserContext(), period)
	if err != nil {
		return respondError(c, err)
	}
	return sendPDF(c, "resumen-ventas-"+period+".pdf", pdf)
}
