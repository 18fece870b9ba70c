package excel_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
	"github.com/jhoicas/Gimnasio-api/internal/infrastructure/excel"
)

func TestExportCustomers(t *testing.T) {
	customers := []dto.CustomerResponse{
		{
			ClientCode:      "C001",
			Name:            "Jane Doe",
			CURP:            "ABCD010101HDFRRN09",
			EnrollmentDate:  "2024-01-01",
			BirthDate:       "2000-01-01",
			Gender:          "F",
			Email:           "jane@example.com",
			DiscoverySource: &dto.CatalogRef{Name: "Redes sociales"},
			Subscriptions:   []dto.SubscriptionRef{{Code: "MENS"}, {Code: "YOGA"}},
			HasAllergy:      true,
		},
		{ClientCode: "C002", Name: "John Roe", Gender: "M"},
	}

	out, err := excel.NewCustomerExporter().ExportCustomers(context.Background(), customers)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(excel.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, excel.CustomerHeader, rows[0])
	assert.Equal(t, "C001", rows[1][0])
	assert.Equal(t, "Female", rows[1][5])
	assert.Equal(t, "Redes sociales", rows[1][8])
	assert.Equal(t, "MENS, YOGA", rows[1][9])
	assert.Equal(t, "Sí", rows[1][11])
	assert.Equal(t, "John Roe", rows[2][1])
}

func TestExportCustomers_Vacio(t *testing.T) {
	out, err := excel.NewCustomerExporter().ExportCustomers(context.Background(), nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(excel.SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, []string{"Clientes"}, f.GetSheetList())
}
