package usecase

import (
	"context"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
	"github.com/jhoicas/Gimnasio-api/internal/application/ports"
	"github.com/jhoicas/Gimnasio-api/internal/domain"
)

// ReportUseCase genera la ficha PDF de un cliente y la exportación a Excel del listado.
type ReportUseCase struct {
	customers *CustomerUseCase
	sheet     ports.CustomerSheetGenerator
	exporter  ports.CustomerExporter
}

// NewReportUseCase construye el caso de uso de reportes.
func NewReportUseCase(customers *CustomerUseCase, sheet ports.CustomerSheetGenerator, exporter ports.CustomerExporter) *ReportUseCase {
	return &ReportUseCase{customers: customers, sheet: sheet, exporter: exporter}
}

// CustomerSheet devuelve la ficha PDF del cliente. Si la foto no puede leerse, la ficha sale sin ella.
func (uc *ReportUseCase) CustomerSheet(ctx context.Context, customerID string) ([]byte, error) {
	detail, err := uc.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, domain.ErrNotFound
	}
	var photo []byte
	if detail.Photo != "" {
		rc, err := uc.customers.OpenPhoto(ctx, detail.Photo)
		if err != nil {
			log.Warn().Err(err).Str("customer_id", customerID).Msg("ficha sin foto")
		} else {
			photo, err = io.ReadAll(rc)
			rc.Close()
			if err != nil {
				log.Warn().Err(err).Str("customer_id", customerID).Msg("ficha sin foto")
				photo = nil
			}
		}
	}
	return uc.sheet.GenerateCustomerSheet(ctx, detail, photo)
}

// ExportCustomers exporta todos los clientes que cumplen el filtro (se ignora la paginación).
func (uc *ReportUseCase) ExportCustomers(ctx context.Context, filter dto.CustomerListRequest) ([]byte, error) {
	filter.Limit = 100
	filter.Offset = 0
	var all []dto.CustomerResponse
	for {
		page, err := uc.customers.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Items...)
		if len(page.Items) < filter.Limit || len(all) >= page.Page.Total {
			break
		}
		filter.Offset += filter.Limit
	}
	return uc.exporter.ExportCustomers(ctx, all)
}
