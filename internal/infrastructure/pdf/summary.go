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

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/reports"
)

// GenerateSummaryPDF dibuja totales, top de productos y serie mensual del resumen.
func (g *MarotoPDFGenerator) GenerateSummaryPDF(_ context.Context, s *reports.Summary) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("pdf: resumen nil")
	}
	m := g.newDocument("Resumen de ventas")

	m.AddRows(row.New(18).Add(
		col.New(7).Add(
			text.New(g.storeName, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("Resumen de ventas", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("Periodo: "+s.Period, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
			}),
			text.New(g.formatDate(s.From)+" a "+g.formatDate(s.To), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionTitle("TOTALES"))
	m.AddRows(row.New(12).Add(
		col.New(6).Add(
			text.New("Ingresos", props.Text{Size: 8, Color: colorGray, Top: 1}),
			text.New(g.formatMoney(s.Totals.Revenue), props.Text{Style: fontstyle.Bold, Size: 11, Top: 5}),
		),
		col.New(6).Add(
			text.New("Descuentos", props.Text{Size: 8, Color: colorGray, Top: 1}),
			text.New(g.formatMoney(s.Totals.Discounts), props.Text{Style: fontstyle.Bold, Size: 11, Top: 5}),
		),
	))

	m.AddRows(line.NewRow(2))
	m.AddRows(sectionTitle("PRODUCTOS MÁS VENDIDOS"))
	m.AddRows(tableHeaderRow(
		[]string{"#", "Producto", "Cantidad", "Ingresos"},
		[]int{1, 6, 2, 3},
		[]align.Type{align.Center, align.Left, align.Right, align.Right},
	))
	if len(s.TopProducts) == 0 {
		m.AddRows(emptyRow("Sin ventas en el periodo"))
	}
	for i, p := range s.TopProducts {
		m.AddRows(row.New(7).Add(
			col.New(1).Add(text.New(strconv.Itoa(i+1), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(p.ProductName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(g.printer.Sprintf("%d", p.Quantity), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(g.formatMoney(p.Revenue), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}

	m.AddRows(line.NewRow(2))
	m.AddRows(sectionTitle("VENTAS POR MES"))
	m.AddRows(tableHeaderRow(
		[]string{"Mes", "Total"},
		[]int{6, 6},
		[]align.Type{align.Left, align.Right},
	))
	if len(s.Series) == 0 {
		m.AddRows(emptyRow("Sin datos"))
	}
	for _, p := range s.Series {
		m.AddRows(row.New(7).Add(
			col.New(6).Add(text.New(p.Month, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(6).Add(text.New(g.formatMoney(p.Total), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}

	return generate(m)
}

func emptyRow(msg string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 1}),
	))
}
