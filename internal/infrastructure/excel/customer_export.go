// Package excel exporta el listado de clientes a un libro .xlsx con excelize.
package excel

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
	"github.com/jhoicas/Gimnasio-api/internal/application/ports"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
)

var _ ports.CustomerExporter = (*CustomerExporter)(nil)

// SheetName nombre de la hoja exportada.
const SheetName = "Clientes"

// CustomerHeader encabezados de la exportación, en orden de columna.
var CustomerHeader = []string{
	"Código",
	"Nombre",
	"CURP",
	"Inscripción",
	"Nacimiento",
	"Género",
	"Teléfono",
	"Email",
	"Medio",
	"Suscripciones",
	"Enfermedad",
	"Alergia",
	"Pie plano",
	"Cardiopatía",
}

var columnWidths = []float64{12, 30, 22, 12, 12, 10, 14, 30, 20, 30, 11, 10, 10, 12}

// CustomerExporter implementa ports.CustomerExporter.
type CustomerExporter struct{}

// NewCustomerExporter construye el exportador.
func NewCustomerExporter() *CustomerExporter { return &CustomerExporter{} }

// ExportCustomers genera el libro con una fila por cliente y devuelve sus bytes.
func (e *CustomerExporter) ExportCustomers(_ context.Context, customers []dto.CustomerResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return nil, fmt.Errorf("crear hoja: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("eliminar hoja por defecto: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#00467F"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("estilo de encabezado: %w", err)
	}

	for i, h := range CustomerHeader {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return nil, fmt.Errorf("encabezado %s: %w", cell, err)
		}
		colName, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(SheetName, colName, colName, columnWidths[i]); err != nil {
			return nil, err
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(CustomerHeader), 1)
	if err := f.SetCellStyle(SheetName, "A1", last, headerStyle); err != nil {
		return nil, fmt.Errorf("aplicar estilo: %w", err)
	}

	for r, c := range customers {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return nil, err
		}
		values := customerRow(c)
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("fila %d: %w", r+2, err)
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("escribir xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func customerRow(c dto.CustomerResponse) []any {
	source := ""
	if c.DiscoverySource != nil {
		source = c.DiscoverySource.Name
	}
	subs := make([]string, 0, len(c.Subscriptions))
	for _, s := range c.Subscriptions {
		subs = append(subs, s.Code)
	}
	return []any{
		c.ClientCode,
		c.Name,
		c.CURP,
		c.EnrollmentDate,
		c.BirthDate,
		entity.GenderLabel(c.Gender),
		c.PhoneNumber,
		c.Email,
		source,
		strings.Join(subs, ", "),
		yesNo(c.HasIllness),
		yesNo(c.HasAllergy),
		yesNo(c.HasFlatFeet),
		yesNo(c.HasHeartConditions),
	}
}

func yesNo(b bool) string {
	if b {
		return "Sí"
	}
	return "No"
}
