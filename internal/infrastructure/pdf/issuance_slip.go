// Package pdf genera el comprobante de entrega de un artículo (issuance slip).
//
// Layout de la página A5:
//
//	┌───────────────────────────────────────────────┐
//	│  HEADER: Organización │ Ledger N° + Fecha       │
//	│  ───────────────────────────────────────────  │
//	│  TABLA: Artículo | Categoría | Cantidad         │
//	│  ───────────────────────────────────────────  │
//	│  APROBACIONES: departamento / MMG / receptor    │
//	│  ───────────────────────────────────────────  │
//	│  FOOTER: QR + estado de devolución              │
//	└───────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/inventario-mmg/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

const dateLayout = "02/01/2006 15:04"

// SlipGenerator arma el comprobante con Maroto v2.
type SlipGenerator struct {
	organization string
}

// NewSlipGenerator organization aparece en la cabecera.
func NewSlipGenerator(organization string) *SlipGenerator {
	if organization == "" {
		organization = "Inventario MMG"
	}
	return &SlipGenerator{organization: organization}
}

// GenerateIssuanceSlip devuelve los bytes del PDF.
func (g *SlipGenerator) GenerateIssuanceSlip(_ context.Context, item *entity.IssuedItem) ([]byte, error) {
	if item == nil {
		return nil, fmt.Errorf("pdf: artículo nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de entrega "+item.LedgerNumber, true).
		WithAuthor(g.organization, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(g.headerRow(item))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow(), itemRow(item))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(approvalRows(item)...)
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(item))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *SlipGenerator) headerRow(item *entity.IssuedItem) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(g.organization, props.Text{Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1}),
			text.New("Departamento: "+item.Department, props.Text{Size: 8, Top: 8, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("COMPROBANTE DE ENTREGA", props.Text{Style: fontstyle.Bold, Size: 7, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New("Ledger "+item.LedgerNumber, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 6}),
			text.New("Fecha: "+item.ApprovedDate.Format(dateLayout), props.Text{Size: 7, Align: align.Right, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Artículo", 6, align.Left),
		h("Categoría", 4, align.Left),
		h("Cant.", 2, align.Center),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func itemRow(item *entity.IssuedItem) core.Row {
	return row.New(7).Add(
		col.New(6).Add(text.New(item.ItemName, props.Text{Size: 9, Top: 1, Left: 1})),
		col.New(4).Add(text.New(item.Category, props.Text{Size: 9, Top: 1, Left: 1})),
		col.New(2).Add(text.New(fmt.Sprintf("%d", item.Quantity), props.Text{Size: 9, Align: align.Center, Top: 1})),
	)
}

func approvalRows(item *entity.IssuedItem) []core.Row {
	field := func(label, value string) core.Row {
		return row.New(5).Add(
			col.New(4).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Top: 1})),
			col.New(8).Add(text.New(nonEmpty(value, "—"), props.Text{Size: 8, Top: 1, Color: colorGray})),
		)
	}
	return []core.Row{
		field("Entregado a:", item.IssuedTo),
		field("Aprobó departamento:", item.DepartmentApprovedBy),
		field("Aprobó MMG:", item.ApprovedBy),
		field("Solicitud:", item.RelatedRequestID),
	}
}

// footerRow QR con el ledger y el id del artículo, más el estado de devolución.
func footerRow(item *entity.IssuedItem) core.Row {
	status := "Artículo en poder del usuario."
	if item.Returned && item.ReturnDate != nil {
		status = "Devuelto el " + item.ReturnDate.Format(dateLayout) + "."
	}
	return row.New(34).Add(
		col.New(4).Add(code.NewQr(QRPayload(item), props.Rect{Percent: 95, Center: true})),
		col.New(8).Add(
			text.New("Presente este comprobante al solicitar la devolución.", props.Text{Size: 8, Top: 4, Left: 3, Color: colorGray}),
			text.New(status, props.Text{Style: fontstyle.Bold, Size: 9, Top: 16, Left: 3, Color: colorPrimary}),
		),
	)
}

// QRPayload contenido del código QR.
func QRPayload(item *entity.IssuedItem) string {
	return fmt.Sprintf("ledger=%s;item=%s;qty=%d", item.LedgerNumber, item.ID, item.Quantity)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
