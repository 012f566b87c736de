package sales

import (
	"context"
	"fmt"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/repository"
)

// ReceiptUseCase genera el comprobante PDF de una venta.
type ReceiptUseCase struct {
	saleRepo  repository.SaleRepository
	generator ReceiptGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(saleRepo repository.SaleRepository, generator ReceiptGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{saleRepo: saleRepo, generator: generator}
}

// GenerateReceipt devuelve el PDF, o (nil, nil) si la venta no existe.
func (uc *ReceiptUseCase) GenerateReceipt(ctx context.Context, saleID string) ([]byte, error) {
	sale, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil || sale == nil {
		return nil, err
	}
	pdf, err := uc.generator.GenerateReceiptPDF(ctx, sale)
	if err != nil {
		return nil, fmt.Errorf("comprobante de venta %s: %w", saleID, err)
	}
	return pdf, nil
}
