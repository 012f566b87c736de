package reports

import (
	"context"
	"fmt"
)

// SummaryPDFGenerator dibuja el resumen de ventas en PDF.
type SummaryPDFGenerator interface {
	GenerateSummaryPDF(ctx context.Context, summary *Summary) ([]byte, error)
}

// PDFUseCase resumen de ventas en PDF.
type PDFUseCase struct {
	summary   *SummaryUseCase
	generator SummaryPDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(summary *SummaryUseCase, generator SummaryPDFGenerator) *PDFUseCase {
	return &PDFUseCase{summary: summary, generator: generator}
}

// GenerateSummaryPDF calcula el resumen del periodo y lo entrega en PDF.
func (uc *PDFUseCase) GenerateSummaryPDF(ctx context.Context, period string) ([]byte, error) {
	s, err := uc.summary.Summarize(ctx, period)
	if err != nil {
		return nil, err
	}
	pdf, err := uc.generator.GenerateSummaryPDF(ctx, s)
	if err != nil {
		return nil, fmt.Errorf("resumen PDF: %w", err)
	}
	return pdf, nil
}
