package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
	"github.com/jhoicas/Gimnasio-api/internal/application/ports"
	"github.com/jhoicas/Gimnasio-api/internal/domain"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
	"github.com/jhoicas/Gimnasio-api/internal/domain/repository"
)

// CatalogUseCase casos de uso CRUD de los catálogos de referencia
// (estados de cliente, suscripciones, medios de descubrimiento).
// Los listados se sirven a través de la caché; toda escritura la invalida.
type CatalogUseCase struct {
	statusRepo       repository.ClientStatusRepository
	subscriptionRepo repository.SubscriptionRepository
	sourceRepo       repository.DiscoverySourceRepository
	cache            ports.CatalogCache
	cacheTTL         time.Duration
}

// NewCatalogUseCase construye el caso de uso. cache no puede ser nil (usar cache.NewNoop()).
func NewCatalogUseCase(
	statusRepo repository.ClientStatusRepository,
	subscriptionRepo repository.SubscriptionRepository,
	sourceRepo repository.DiscoverySourceRepository,
	cache ports.CatalogCache,
	cacheTTL time.Duration,
) *CatalogUseCase {
	return &CatalogUseCase{
		statusRepo:       statusRepo,
		subscriptionRepo: subscriptionRepo,
		sourceRepo:       sourceRepo,
		cache:            cache,
		cacheTTL:         cacheTTL,
	}
}

// ── Estados de cliente ────────────────────────────────────────────────────────

// CreateClientStatus crea un estado. Devuelve domain.ErrDuplicate si el nombre ya existe.
func (uc *CatalogUseCase) CreateClientStatus(ctx context.Context, in dto.ClientStatusRequest) (*dto.ClientStatusResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	existing, err := uc.statusRepo.GetByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: ya existe un estado con ese nombre", domain.ErrDuplicate)
	}
	now := time.Now()
	s := &entity.ClientStatus{ID: uuid.New().String(), Name: in.Name, CreatedAt: now, UpdatedAt: now}
	if err := uc.statusRepo.Create(ctx, s); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, ports.CacheKeyClientStatuses)
	return toClientStatusResponse(s), nil
}

// GetClientStatus obtiene un estado por ID (nil si no existe).
func (uc *CatalogUseCase) GetClientStatus(ctx context.Context, id string) (*dto.ClientStatusResponse, error) {
	s, err := uc.statusRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toClientStatusResponse(s), nil
}

// ListClientStatuses lista los estados ordenados por nombre.
func (uc *CatalogUseCase) ListClientStatuses(ctx context.Context) ([]dto.ClientStatusResponse, error) {
	var out []dto.ClientStatusResponse
	if uc.fromCache(ctx, ports.CacheKeyClientStatuses, &out) {
		return out, nil
	}
	list, err := uc.statusRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out = make([]dto.ClientStatusResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toClientStatusResponse(s))
	}
	uc.toCache(ctx, ports.CacheKeyClientStatuses, out)
	return out, nil
}

// UpdateClientStatus renombra un estado.
func (uc *CatalogUseCase) UpdateClientStatus(ctx context.Context, id string, in dto.ClientStatusRequest) (*dto.ClientStatusResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	s, err := uc.statusRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	other, err := uc.statusRepo.GetByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if other != nil && other.ID != id {
		return nil, fmt.Errorf("%w: ya existe un estado con ese nombre", domain.ErrDuplicate)
	}
	s.Name = in.Name
	s.UpdatedAt = time.Now()
	if err := uc.statusRepo.Update(ctx, s); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, ports.CacheKeyClientStatuses)
	return toClientStatusResponse(s), nil
}

// DeleteClientStatus elimina un estado que no aparezca en ningún historial.
func (uc *CatalogUseCase) DeleteClientStatus(ctx context.Context, id string) error {
	s, err := uc.statusRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrNotFound
	}
	if err := uc.statusRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.NewValidationError(domain.CodeCatalogInUse,
				"el estado está registrado en el historial de algún cliente y no puede eliminarse")
		}
		return err
	}
	uc.invalidate(ctx, ports.CacheKeyClientStatuses)
	return nil
}

// ── Suscripciones ─────────────────────────────────────────────────────────────

// CreateSubscription crea un plan. Devuelve domain.ErrDuplicate si el código ya existe.
func (uc *CatalogUseCase) CreateSubscription(ctx context.Context, in dto.SubscriptionRequest) (*dto.SubscriptionResponse, error) {
	if err := normalizeSubscription(&in); err != nil {
		return nil, err
	}
	existing, err := uc.subscriptionRepo.GetByCode(ctx, in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: ya existe una suscripción con ese código", domain.ErrDuplicate)
	}
	now := time.Now()
	s := &entity.Subscription{
		ID:         uuid.New().String(),
		Code:       in.Code,
		Name:       in.Name,
		MonthlyFee: in.MonthlyFee,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.subscriptionRepo.Create(ctx, s); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, ports.CacheKeySubscriptions)
	return toSubscriptionResponse(s), nil
}

// GetSubscription obtiene un plan por ID (nil si no existe).
func (uc *CatalogUseCase) GetSubscription(ctx context.Context, id string) (*dto.SubscriptionResponse, error) {
	s, err := uc.subscriptionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSubscriptionResponse(s), nil
}

// ListSubscriptions lista los planes ordenados por código.
func (uc *CatalogUseCase) ListSubscriptions(ctx context.Context) ([]dto.SubscriptionResponse, error) {
	var out []dto.SubscriptionResponse
	if uc.fromCache(ctx, ports.CacheKeySubscriptions, &out) {
		return out, nil
	}
	list, err := uc.subscriptionRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out = make([]dto.SubscriptionResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSubscriptionResponse(s))
	}
	uc.toCache(ctx, ports.CacheKeySubscriptions, out)
	return out, nil
}

// UpdateSubscription actualiza código, nombre y cuota mensual.
func (uc *CatalogUseCase) UpdateSubscription(ctx context.Context, id string, in dto.SubscriptionRequest) (*dto.SubscriptionResponse, error) {
	if err := normalizeSubscription(&in); err != nil {
		return nil, err
	}
	s, err := uc.subscriptionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	other, err := uc.subscriptionRepo.GetByCode(ctx, in.Code)
	if err != nil {
		return nil, err
	}
	if other != nil && other.ID != id {
		return nil, fmt.Errorf("%w: ya existe una suscripción con ese código", domain.ErrDuplicate)
	}
	s.Code = in.Code
	s.Name = in.Name
	s.MonthlyFee = in.MonthlyFee
	s.UpdatedAt = time.Now()
	if err := uc.subscriptionRepo.Update(ctx, s); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, ports.CacheKeySubscriptions)
	return toSubscriptionResponse(s), nil
}

// DeleteSubscription elimina el plan y sus vínculos con clientes.
func (uc *CatalogUseCase) DeleteSubscription(ctx context.Context, id string) error {
	s, err := uc.subscriptionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrNotFound
	}
	if err := uc.subscriptionRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx, ports.CacheKeySubscriptions)
	return nil
}

func normalizeSubscription(in *dto.SubscriptionRequest) error {
	in.Code = strings.TrimSpace(in.Code)
	in.Name = strings.TrimSpace(in.Name)
	if err := dto.Validate(*in); err != nil {
		return err
	}
	if in.MonthlyFee.IsNegative() {
		return fmt.Errorf("%w: monthly_fee no puede ser negativo", domain.ErrInvalidInput)
	}
	in.MonthlyFee = in.MonthlyFee.Round(2)
	if in.MonthlyFee.Equal(decimal.Zero) {
		in.MonthlyFee = decimal.Zero
	}
	return nil
}

// ── Medios de descubrimiento ──────────────────────────────────────────────────

// CreateDiscoverySource crea un medio. Devuelve domain.ErrDuplicate si el nombre ya existe.
func (uc *CatalogUseCase) CreateDiscoverySource(ctx context.Context, in dto.DiscoverySourceRequest) (*dto.DiscoverySourceResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	existing, err := uc.sourceRepo.GetByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: ya existe un medio con ese nombre", domain.ErrDuplicate)
	}
	now := time.Now()
	s := &entity.DiscoverySource{ID: uuid.New().String(), Name: in.Name, CreatedAt: now, UpdatedAt: now}
	if err := uc.sourceRepo.Create(ctx, s); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, ports.CacheKeyDiscoverySources)
	return toDiscoverySourceResponse(s), nil
}

// GetDiscoverySource obtiene un medio por ID (nil si no existe).
func (uc *CatalogUseCase) GetDiscoverySource(ctx context.Context, id string) (*dto.DiscoverySourceResponse, error) {
	s, err := uc.sourceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDiscoverySourceResponse(s), nil
}

// ListDiscoverySources lista los medios ordenados por nombre.
func (uc *CatalogUseCase) ListDiscoverySources(ctx context.Context) ([]dto.DiscoverySourceResponse, error) {
	var out []dto.DiscoverySourceResponse
	if uc.fromCache(ctx, ports.CacheKeyDiscoverySources, &out) {
		return out, nil
	}
	list, err := uc.sourceRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out = make([]dto.DiscoverySourceResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toDiscoverySourceResponse(s))
	}
	uc.toCache(ctx, ports.CacheKeyDiscoverySources, out)
	return out, nil
}

// UpdateDiscoverySource renombra un medio.
func (uc *CatalogUseCase) UpdateDiscoverySource(ctx context.Context, id string, in dto.DiscoverySourceRequest) (*dto.DiscoverySourceResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	s, err := uc.sourceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	other, err := uc.sourceRepo.GetByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if other != nil && other.ID != id {
		return nil, fmt.Errorf("%w: ya existe un medio con ese nombre", domain.ErrDuplicate)
	}
	s.Name = in.Name
	s.UpdatedAt = time.Now()
	if err := uc.sourceRepo.Update(ctx, s); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, ports.CacheKeyDiscoverySources)
	return toDiscoverySourceResponse(s), nil
}

// DeleteDiscoverySource elimina el medio; los clientes que lo usaban quedan sin medio.
func (uc *CatalogUseCase) DeleteDiscoverySource(ctx context.Context, id string) error {
	s, err := uc.sourceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrNotFound
	}
	if err := uc.sourceRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx, ports.CacheKeyDiscoverySources)
	return nil
}

// ── Caché ─────────────────────────────────────────────────────────────────────

// fromCache intenta leer de la caché; un fallo de la caché se registra y se ignora.
func (uc *CatalogUseCase) fromCache(ctx context.Context, key string, dest any) bool {
	found, err := uc.cache.Get(ctx, key, dest)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("caché de catálogos: lectura fallida")
		return false
	}
	return found
}

func (uc *CatalogUseCase) toCache(ctx context.Context, key string, value any) {
	if err := uc.cache.Set(ctx, key, value, uc.cacheTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("caché de catálogos: escritura fallida")
	}
}

func (uc *CatalogUseCase) invalidate(ctx context.Context, keys ...string) {
	if err := uc.cache.Invalidate(ctx, keys...); err != nil {
		log.Warn().Err(err).Strs("keys", keys).Msg("caché de catálogos: invalidación fallida")
	}
}
