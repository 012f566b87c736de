// Package pdf genera los documentos PDF de la tienda con Maroto v2: el comprobante de una
// venta y el resumen de ventas por periodo.
//
// Layout del comprobante (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tienda              │  N° Venta + Fecha + Canal     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ATENDIDO POR: empleado / notas                             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | P.Unit | Subtotal                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Descuento / TOTAL                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/reports"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/sales"
)

var (
	_ sales.ReceiptGenerator      = (*MarotoPDFGenerator)(nil)
	_ reports.SummaryPDFGenerator = (*MarotoPDFGenerator)(nil)
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa los generadores de comprobante y de resumen.
type MarotoPDFGenerator struct {
	storeName string
	loc       *time.Location
	printer   *message.Printer
}

// NewMarotoPDFGenerator construye el generador. loc es la zona en la que se imprimen las fechas.
func NewMarotoPDFGenerator(storeName string, loc *time.Location) *MarotoPDFGenerator {
	if loc == nil {
		loc = time.UTC
	}
	return &MarotoPDFGenerator{
		storeName: storeName,
		loc:       loc,
		printer:   message.NewPrinter(language.Spanish),
	}
}

func (g *MarotoPDFGenerator) newDocument(title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(g.storeName, true).
		Build()
	return maroto.New(cfg)
}

func generate(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatMoney pesos con separador de miles local. Ej: 89900 → "$89.900".
func (g *MarotoPDFGenerator) formatMoney(d decimal.Decimal) string {
	if d.IsInteger() {
		return g.printer.Sprintf("$%d", d.IntPart())
	}
	f, _ := d.Round(2).Float64()
	return g.printer.Sprintf("$%.2f", f)
}

func (g *MarotoPDFGenerator) formatDate(t time.Time) string {
	return t.In(g.loc).Format("02/01/2006 15:04")
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// tableHeaderRow cabecera de tabla; size de cada columna en la grilla de 12.
func tableHeaderRow(labels []string, sizes []int, aligns []align.Type) core.Row {
	cols := make([]core.Col, 0, len(labels))
	for i, label := range labels {
		cols = append(cols, col.New(sizes[i]).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: aligns[i],
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// sectionTitle rótulo de sección en color primario.
func sectionTitle(title string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
	))
}
