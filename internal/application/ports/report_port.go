package ports

import (
	"context"

	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
)

// CustomerSheetGenerator genera la ficha PDF de un cliente.
type CustomerSheetGenerator interface {
	GenerateCustomerSheet(ctx context.Context, customer *dto.CustomerDetailResponse, photo []byte) ([]byte, error)
}

// CustomerExporter exporta un listado de clientes a hoja de cálculo.
type CustomerExporter interface {
	ExportCustomers(ctx context.Context, customers []dto.CustomerResponse) ([]byte, error)
}
