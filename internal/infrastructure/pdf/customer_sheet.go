// Package pdf genera la ficha imprimible de un cliente con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre + código de cliente    │  QR (client_code)  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOTO │ CURP / Nacimiento / Inscripción / Género / Contacto │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SALUD: enfermedad / alergia / pie plano / cardiopatía      │
//	│  SUSCRIPCIONES + MEDIO DE DESCUBRIMIENTO                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA CONTACTOS: Nombre | Relación | Tel | Principal | Em. │
//	│  TABLA HISTORIAL: Fecha | Estado | Motivo                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
	"github.com/jhoicas/Gimnasio-api/internal/application/ports"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
)

var _ ports.CustomerSheetGenerator = (*CustomerSheetGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorHeader  = &props.Color{Red: 0, Green: 70, Blue: 127}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// CustomerSheetGenerator implementa ports.CustomerSheetGenerator usando Maroto v2.
type CustomerSheetGenerator struct {
	gymName string
}

// NewCustomerSheetGenerator construye el generador. gymName aparece como autor y pie.
func NewCustomerSheetGenerator(gymName string) *CustomerSheetGenerator {
	return &CustomerSheetGenerator{gymName: gymName}
}

// GenerateCustomerSheet genera el PDF y devuelve sus bytes. photo puede ser nil.
func (g *CustomerSheetGenerator) GenerateCustomerSheet(_ context.Context, c *dto.CustomerDetailResponse, photo []byte) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("pdf: cliente nulo")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Ficha de cliente "+c.ClientCode, true).
		WithAuthor(nonEmpty(g.gymName, "Gimnasio"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(c))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(identityRow(c, photo))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(healthRow(c))
	m.AddRows(membershipRow(c))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("CONTACTOS"))
	m.AddRows(contactsHeaderRow())
	m.AddRows(contactRows(c.Contacts)...)

	m.AddRows(row.New(3))
	m.AddRows(sectionTitle("HISTORIAL DE ESTADOS"))
	m.AddRows(statusesHeaderRow())
	m.AddRows(statusRows(c.Statuses)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre + código (izq) y QR con el código de cliente (der).
func headerRow(c *dto.CustomerDetailResponse) core.Row {
	current := "Sin estado"
	if c.CurrentStatus != nil {
		current = c.CurrentStatus.StatusName
	}
	return row.New(24).Add(
		col.New(9).Add(
			text.New(c.Name, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2,
			}),
			text.New("Código de cliente: "+c.ClientCode, props.Text{
				Size: 9, Top: 11, Color: colorGray,
			}),
			text.New("Estado actual: "+current, props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 17,
			}),
		),
		col.New(3).Add(code.NewQr(c.ClientCode, props.Rect{Percent: 95, Center: true})),
	)
}

// identityRow: foto (si es jpeg/png) y datos personales.
func identityRow(c *dto.CustomerDetailResponse, photo []byte) core.Row {
	data := col.New(8).Add(
		text.New("CURP: "+c.CURP, props.Text{Size: 9, Top: 2}),
		text.New("Fecha de nacimiento: "+c.BirthDate, props.Text{Size: 9, Top: 8}),
		text.New("Fecha de inscripción: "+c.EnrollmentDate, props.Text{Size: 9, Top: 14}),
		text.New("Género: "+entity.GenderLabel(c.Gender), props.Text{Size: 9, Top: 20}),
		text.New(fmt.Sprintf("Tel: %s   |   Email: %s", c.PhoneNumber, c.Email), props.Text{
			Size: 9, Top: 26, Color: colorGray,
		}),
	)
	photoCol := col.New(4)
	if ext, ok := imageExtension(photo); ok {
		photoCol.Add(image.NewFromBytes(photo, ext, props.Rect{Percent: 90, Center: true}))
	} else {
		photoCol.Add(text.New("Sin foto", props.Text{Size: 8, Align: align.Center, Top: 14, Color: colorGray}))
	}
	return row.New(36).Add(photoCol, data)
}

// healthRow: indicadores de salud.
func healthRow(c *dto.CustomerDetailResponse) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("SALUD", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("Enfermedad: %s   |   Alergia: %s   |   Pie plano: %s   |   Cardiopatía: %s",
				yesNo(c.HasIllness), yesNo(c.HasAllergy), yesNo(c.HasFlatFeet), yesNo(c.HasHeartConditions),
			), props.Text{Size: 8, Top: 7}),
		),
	)
}

// membershipRow: suscripciones y medio por el que conoció el gimnasio.
func membershipRow(c *dto.CustomerDetailResponse) core.Row {
	subs := make([]string, 0, len(c.Subscriptions))
	for _, s := range c.Subscriptions {
		subs = append(subs, fmt.Sprintf("%s (%s)", s.Name, s.Code))
	}
	source := "-"
	if c.DiscoverySource != nil {
		source = c.DiscoverySource.Name
	}
	if c.DiscoveryDetails != nil && *c.DiscoveryDetails != "" {
		source += ": " + *c.DiscoveryDetails
	}
	return row.New(18).Add(
		col.New(12).Add(
			text.New("SUSCRIPCIONES", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(nonEmpty(strings.Join(subs, ", "), "-"), props.Text{Size: 8, Top: 6}),
			text.New("Nos conoció por: "+source, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func sectionTitle(s string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1}),
	))
}

func headerCell(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a,
		Color: colorWhite, Top: 2, Left: 1, Right: 1,
	}))
}

func contactsHeaderRow() core.Row {
	return row.New(8).Add(
		headerCell("Nombre", 4, align.Left),
		headerCell("Relación", 2, align.Left),
		headerCell("Teléfono", 2, align.Left),
		headerCell("Principal", 2, align.Center),
		headerCell("Emergencia", 2, align.Center),
	).WithStyle(&props.Cell{BackgroundColor: colorHeader})
}

func contactRows(contacts []dto.ContactResponse) []core.Row {
	if len(contacts) == 0 {
		return []core.Row{emptyRow("Sin contactos registrados")}
	}
	result := make([]core.Row, 0, len(contacts))
	for _, ct := range contacts {
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(ct.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(ct.Relation, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(ct.PhoneNumber, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(yesNo(ct.IsPrimary), props.Text{Size: 8, Top: 1, Align: align.Center})),
			col.New(2).Add(text.New(yesNo(ct.IsEmergency), props.Text{Size: 8, Top: 1, Align: align.Center})),
		))
	}
	return result
}

func statusesHeaderRow() core.Row {
	return row.New(8).Add(
		headerCell("Fecha", 3, align.Left),
		headerCell("Estado", 3, align.Left),
		headerCell("Motivo", 6, align.Left),
	).WithStyle(&props.Cell{BackgroundColor: colorHeader})
}

func statusRows(statuses []dto.CustomerStatusResponse) []core.Row {
	if len(statuses) == 0 {
		return []core.Row{emptyRow("Sin cambios de estado")}
	}
	result := make([]core.Row, 0, len(statuses))
	for _, s := range statuses {
		result = append(result, row.New(7).Add(
			col.New(3).Add(text.New(s.DateChanged.Format("02/01/2006 15:04"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(s.StatusName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(6).Add(text.New(s.Reason, props.Text{Size: 8, Top: 1, Left: 1})),
		))
	}
	return result
}

func emptyRow(msg string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 8, Top: 1, Color: colorGray, Align: align.Center}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// imageExtension detecta jpeg/png; otros formatos (webp) no se incrustan.
func imageExtension(b []byte) (extension.Type, bool) {
	if len(b) == 0 {
		return "", false
	}
	switch http.DetectContentType(b) {
	case "image/jpeg":
		return extension.Jpg, true
	case "image/png":
		return extension.Png, true
	}
	return "", false
}

func yesNo(b bool) string {
	if b {
		return "Sí"
	}
	return "No"
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
