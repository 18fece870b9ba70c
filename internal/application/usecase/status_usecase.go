package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
	"github.com/jhoicas/Gimnasio-api/internal/domain"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
	"github.com/jhoicas/Gimnasio-api/internal/domain/membership"
	"github.com/jhoicas/Gimnasio-api/internal/domain/repository"
)

// StatusUseCase historial de estados de un cliente (solo altas).
type StatusUseCase struct {
	customerRepo     repository.CustomerRepository
	statusRepo       repository.CustomerStatusRepository
	clientStatusRepo repository.ClientStatusRepository
}

// NewStatusUseCase construye el caso de uso.
func NewStatusUseCase(
	customerRepo repository.CustomerRepository,
	statusRepo repository.CustomerStatusRepository,
	clientStatusRepo repository.ClientStatusRepository,
) *StatusUseCase {
	return &StatusUseCase{customerRepo: customerRepo, statusRepo: statusRepo, clientStatusRepo: clientStatusRepo}
}

// List devuelve el historial ordenado por fecha de cambio ascendente.
func (uc *StatusUseCase) List(ctx context.Context, customerID string) ([]dto.CustomerStatusResponse, error) {
	c, err := uc.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	history, err := uc.statusRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if err := fillStatusNames(ctx, uc.clientStatusRepo, history); err != nil {
		return nil, err
	}
	return toStatusResponses(history), nil
}

// Append agrega una entrada al historial. changedBy es el usuario autenticado ("" si no hay).
func (uc *StatusUseCase) Append(ctx context.Context, customerID, changedBy string, in dto.CustomerStatusRequest) (*dto.CustomerStatusResponse, error) {
	in.StatusID = strings.TrimSpace(in.StatusID)
	in.Reason = strings.TrimSpace(in.Reason)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	c, err := uc.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	st, err := uc.clientStatusRepo.GetByID(ctx, in.StatusID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, fmt.Errorf("%w: status_id no existe", domain.ErrInvalidInput)
	}
	entry := &entity.CustomerStatus{
		CustomerID: customerID,
		StatusID:   st.ID,
		StatusName: st.Name,
		Reason:     in.Reason,
	}
	if changedBy != "" {
		entry.ChangedBy = &changedBy
	}
	if err := uc.Save(ctx, entry); err != nil {
		return nil, err
	}
	r := toStatusResponse(entry)
	return &r, nil
}

// Save persiste una entrada nueva. Una entrada ya persistida nunca se vuelve a guardar:
// devuelve domain.ErrStatusImmutable.
func (uc *StatusUseCase) Save(ctx context.Context, s *entity.CustomerStatus) error {
	if err := membership.ValidateStatusSave(s); err != nil {
		return err
	}
	return uc.statusRepo.Create(ctx, s)
}

// Modify intenta reescribir una entrada existente del historial. Siempre falla:
// ErrNotFound si no existe, ErrStatusImmutable si existe.
func (uc *StatusUseCase) Modify(ctx context.Context, customerID, statusEntryID string, in dto.CustomerStatusRequest) error {
	existing, err := uc.statusRepo.GetByID(ctx, statusEntryID)
	if err != nil {
		return err
	}
	if existing == nil || existing.CustomerID != customerID {
		return domain.ErrNotFound
	}
	existing.StatusID = strings.TrimSpace(in.StatusID)
	existing.Reason = strings.TrimSpace(in.Reason)
	return uc.Save(ctx, existing)
}

// Search lista los cambios de estado de todos los clientes, del más reciente al más antiguo,
// filtrados por estado y por rango de fechas (días completos, UTC).
func (uc *StatusUseCase) Search(ctx context.Context, in dto.StatusChangeListRequest) (*dto.StatusChangeListResponse, error) {
	in.DefaultPage()
	f := entity.StatusChangeFilter{
		StatusID: strings.TrimSpace(in.StatusID),
		Limit:    in.Limit,
		Offset:   in.Offset,
	}
	if f.StatusID != "" {
		st, err := uc.clientStatusRepo.GetByID(ctx, f.StatusID)
		if err != nil {
			return nil, err
		}
		if st == nil {
			return nil, fmt.Errorf("%w: status_id no existe", domain.ErrInvalidInput)
		}
	}
	if v := strings.TrimSpace(in.From); v != "" {
		from, err := time.Parse(dto.DateLayout, v)
		if err != nil {
			return nil, fmt.Errorf("%w: from debe tener formato YYYY-MM-DD", domain.ErrInvalidInput)
		}
		f.From = &from
	}
	if v := strings.TrimSpace(in.To); v != "" {
		to, err := time.Parse(dto.DateLayout, v)
		if err != nil {
			return nil, fmt.Errorf("%w: to debe tener formato YYYY-MM-DD", domain.ErrInvalidInput)
		}
		to = to.AddDate(0, 0, 1)
		f.To = &to
	}
	if f.From != nil && f.To != nil && !f.From.Before(*f.To) {
		return nil, fmt.Errorf("%w: from no puede ser posterior a to", domain.ErrInvalidInput)
	}

	list, total, err := uc.statusRepo.Search(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StatusChangeResponse, 0, len(list))
	for _, ch := range list {
		items = append(items, dto.StatusChangeResponse{
			CustomerStatusResponse: toStatusResponse(&ch.CustomerStatus),
			ClientCode:             ch.ClientCode,
			CustomerName:           ch.CustomerName,
			ChangedByEmail:         ch.ChangedByEmail,
		})
	}
	return &dto.StatusChangeListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}
