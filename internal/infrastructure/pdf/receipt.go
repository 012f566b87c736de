package pdf

import (
	"context"
	"fmt"
	"strconv"

	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/entity"
)

// GenerateReceiptPDF genera el comprobante de la venta (con sus líneas cargadas).
func (g *MarotoPDFGenerator) GenerateReceiptPDF(_ context.Context, sale *entity.Sale) ([]byte, error) {
	if sale == nil {
		return nil, fmt.Errorf("pdf: venta nil")
	}
	m := g.newDocument("Comprobante de venta")

	m.AddRows(g.receiptHeaderRow(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(attendedByRow(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow(
		[]string{"Cant.", "Producto", "Precio Unit.", "Subtotal"},
		[]int{1, 6, 2, 3},
		[]align.Type{align.Center, align.Left, align.Right, align.Right},
	))
	for _, l := range sale.Lines {
		m.AddRows(g.receiptLineRow(l))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.receiptTotalsRow(sale))

	m.AddRows(line.NewRow(3))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New("Gracias por su compra. Este comprobante no es una factura electrónica.", props.Text{
			Size: 7, Align: align.Center, Color: colorGray, Top: 2,
		}),
	)))

	return generate(m)
}

func (g *MarotoPDFGenerator) receiptHeaderRow(sale *entity.Sale) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.storeName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Comprobante de venta", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("VENTA N°", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(shortID(sale.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
			}),
			text.New("Fecha: "+g.formatDate(sale.Date)+"   Canal: "+sale.Channel, props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func attendedByRow(sale *entity.Sale) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("ATENDIDO POR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   Notas: %s",
				nonEmpty(sale.EmployeeName, "—"),
				nonEmpty(sale.Notes, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func (g *MarotoPDFGenerator) receiptLineRow(l entity.SaleLine) core.Row {
	return row.New(7).Add(
		col.New(1).Add(text.New(strconv.Itoa(l.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(6).Add(text.New(nonEmpty(l.ProductName, l.ProductID), props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(2).Add(text.New(g.formatMoney(l.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(3).Add(text.New(g.formatMoney(l.Subtotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
}

func (g *MarotoPDFGenerator) receiptTotalsRow(sale *entity.Sale) core.Row {
	cell := func(s string, top float64, bold, grand bool) core.Component {
		p := props.Text{Size: 9, Align: align.Right, Right: 1, Top: top}
		if bold {
			p.Style = fontstyle.Bold
		}
		if grand {
			p.Style, p.Size, p.Color = fontstyle.Bold, 10, colorPrimary
		}
		return text.New(s, p)
	}

	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			cell("Subtotal:", 0, true, false),
			cell("Descuento:", 6, true, false),
			cell("TOTAL:", 12, true, true),
		),
		col.New(3).Add(
			cell(g.formatMoney(sale.Subtotal), 0, false, false),
			cell("-"+g.formatMoney(sale.Discount), 6, false, false),
			cell(g.formatMoney(sale.Total), 12, false, true),
		),
	)
}

// shortID primeros 8 caracteres del UUID, suficientes para identificar la venta en mostrador.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
