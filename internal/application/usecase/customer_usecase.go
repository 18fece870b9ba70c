package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
	"github.com/jhoicas/Gimnasio-api/internal/application/ports"
	"github.com/jhoicas/Gimnasio-api/internal/domain"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
	"github.com/jhoicas/Gimnasio-api/internal/domain/membership"
	"github.com/jhoicas/Gimnasio-api/internal/domain/repository"
	"github.com/jhoicas/Gimnasio-api/pkg/curp"
	"github.com/jhoicas/Gimnasio-api/pkg/textnorm"
)

// PhotoDir subdirectorio del almacenamiento donde se guardan las fotos de clientes.
const PhotoDir = "customers_photos"

// Tipos de imagen admitidos para la foto y su extensión.
var photoExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// CustomerDeps dependencias de CustomerUseCase.
type CustomerDeps struct {
	Customers        repository.CustomerRepository
	Contacts         repository.CustomerContactRepository
	Statuses         repository.CustomerStatusRepository
	ClientStatuses   repository.ClientStatusRepository
	Subscriptions    repository.SubscriptionRepository
	DiscoverySources repository.DiscoverySourceRepository
	Tx               MembershipTxRunner
	Photos           ports.PhotoStorage
	MaxPhotoSize     int64
	CURPStrict       bool
}

// CustomerUseCase alta, consulta, edición y baja de clientes.
type CustomerUseCase struct {
	d CustomerDeps
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(d CustomerDeps) *CustomerUseCase {
	if d.MaxPhotoSize <= 0 {
		d.MaxPhotoSize = 5 << 20
	}
	return &CustomerUseCase{d: d}
}

// Create registra un cliente. Devuelve domain.ErrDuplicate si client_code, curp o la foto
// ya pertenecen a otro cliente.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CustomerRequest) (*dto.CustomerDetailResponse, error) {
	c, err := uc.buildCustomer(ctx, in, "")
	if err != nil {
		return nil, err
	}
	now := time.Now()
	c.ID = uuid.New().String()
	c.CreatedAt = now
	c.UpdatedAt = now
	if err := uc.d.Customers.Create(ctx, c); err != nil {
		return nil, err
	}
	return uc.detail(ctx, c)
}

// GetByID devuelve el cliente con contactos e historial (nil si no existe).
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerDetailResponse, error) {
	c, err := uc.d.Customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	return uc.detail(ctx, c)
}

// List busca clientes con filtros y paginación, ordenados por client_code.
func (uc *CustomerUseCase) List(ctx context.Context, in dto.CustomerListRequest) (*dto.CustomerListResponse, error) {
	in.DefaultPage()
	in.Gender = strings.ToUpper(strings.TrimSpace(in.Gender))
	if in.Gender != "" && in.Gender != entity.GenderMale && in.Gender != entity.GenderFemale && in.Gender != entity.GenderOther {
		return nil, fmt.Errorf("%w: gender debe ser uno de: M F O", domain.ErrInvalidInput)
	}
	list, total, err := uc.d.Customers.List(ctx, entity.CustomerFilter{
		Query:      strings.TrimSpace(in.Query),
		Gender:     in.Gender,
		HasIllness: in.HasIllness,
		HasAllergy: in.HasAllergy,
		Limit:      in.Limit,
		Offset:     in.Offset,
	})
	if err != nil {
		return nil, err
	}
	idx, err := uc.loadCatalogIndex(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, idx.customerResponse(c))
	}
	return &dto.CustomerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// Update reemplaza los datos del cliente (PUT). Si cambia la foto, la anterior se elimina.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.CustomerRequest) (*dto.CustomerDetailResponse, error) {
	current, err := uc.d.Customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}
	c, err := uc.buildCustomer(ctx, in, id)
	if err != nil {
		return nil, err
	}
	c.ID = current.ID
	c.CreatedAt = current.CreatedAt
	c.UpdatedAt = time.Now()
	if err := uc.d.Customers.Update(ctx, c); err != nil {
		return nil, err
	}
	if current.PhotoPath != "" && current.PhotoPath != c.PhotoPath {
		uc.removePhoto(ctx, current.PhotoPath)
	}
	return uc.detail(ctx, c)
}

// Delete elimina el cliente junto con su historial, contactos y suscripciones.
// La foto se borra después del commit; un fallo ahí solo se registra.
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) error {
	var photo string
	err := uc.d.Tx.RunMembership(ctx, func(
		customers repository.CustomerRepository,
		contacts repository.CustomerContactRepository,
		statuses repository.CustomerStatusRepository,
	) error {
		c, err := customers.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}
		if err := customers.LockForUpdate(ctx, id); err != nil {
			return err
		}
		photo = c.PhotoPath
		if err := statuses.DeleteByCustomer(ctx, id); err != nil {
			return err
		}
		if err := contacts.DeleteByCustomer(ctx, id); err != nil {
			return err
		}
		return customers.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	if photo != "" {
		uc.removePhoto(ctx, photo)
	}
	return nil
}

// UploadPhoto guarda la imagen y devuelve su ruta para usarla en CustomerRequest.Photo.
func (uc *CustomerUseCase) UploadPhoto(ctx context.Context, contentType string, size int64, r io.Reader) (*dto.PhotoUploadResponse, error) {
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	ext, ok := photoExtensions[ct]
	if !ok {
		return nil, fmt.Errorf("%w: la foto debe ser jpeg, png o webp", domain.ErrInvalidInput)
	}
	if size <= 0 {
		return nil, fmt.Errorf("%w: la foto está vacía", domain.ErrInvalidInput)
	}
	if size > uc.d.MaxPhotoSize {
		return nil, fmt.Errorf("%w: la foto supera %d bytes", domain.ErrInvalidInput, uc.d.MaxPhotoSize)
	}
	path, err := uc.d.Photos.Save(ctx, PhotoDir+"/"+uuid.New().String()+ext, io.LimitReader(r, uc.d.MaxPhotoSize))
	if err != nil {
		return nil, fmt.Errorf("guardar foto: %w", err)
	}
	return &dto.PhotoUploadResponse{Path: path}, nil
}

// OpenPhoto abre la foto almacenada de un cliente.
func (uc *CustomerUseCase) OpenPhoto(ctx context.Context, path string) (io.ReadCloser, error) {
	return uc.d.Photos.Open(ctx, path)
}

// buildCustomer normaliza y valida la entrada. selfID excluye al propio cliente
// en las comprobaciones de unicidad ("" en altas).
func (uc *CustomerUseCase) buildCustomer(ctx context.Context, in dto.CustomerRequest, selfID string) (*entity.Customer, error) {
	in.ClientCode = strings.TrimSpace(in.ClientCode)
	in.Name = textnorm.CollapseSpaces(in.Name)
	in.CURP = curp.Normalize(in.CURP)
	in.Gender = strings.ToUpper(strings.TrimSpace(in.Gender))
	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Photo = strings.TrimSpace(in.Photo)
	in.EnrollmentDate = strings.TrimSpace(in.EnrollmentDate)
	in.BirthDate = strings.TrimSpace(in.BirthDate)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}

	validateCURP := curp.Validate
	if uc.d.CURPStrict {
		validateCURP = curp.ValidateStrict
	}
	if err := validateCURP(in.CURP); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	enrollment, err := time.Parse(dto.DateLayout, in.EnrollmentDate)
	if err != nil {
		return nil, fmt.Errorf("%w: enrollment_date inválida", domain.ErrInvalidInput)
	}
	birth, err := time.Parse(dto.DateLayout, in.BirthDate)
	if err != nil {
		return nil, fmt.Errorf("%w: birth_date inválida", domain.ErrInvalidInput)
	}
	if err := membership.ValidateEnrollmentDates(birth, enrollment); err != nil {
		return nil, err
	}

	var sourceID *string
	if in.DiscoverySourceID != nil && strings.TrimSpace(*in.DiscoverySourceID) != "" {
		id := strings.TrimSpace(*in.DiscoverySourceID)
		src, err := uc.d.DiscoverySources.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if src == nil {
			return nil, fmt.Errorf("%w: discovery_source_id no existe", domain.ErrInvalidInput)
		}
		sourceID = &id
	}
	var details *string
	if in.DiscoveryDetails != nil && strings.TrimSpace(*in.DiscoveryDetails) != "" {
		d := strings.TrimSpace(*in.DiscoveryDetails)
		details = &d
	}

	subIDs := make([]string, 0, len(in.SubscriptionIDs))
	seen := make(map[string]bool, len(in.SubscriptionIDs))
	for _, id := range in.SubscriptionIDs {
		id = strings.TrimSpace(id)
		if seen[id] {
			continue
		}
		seen[id] = true
		sub, err := uc.d.Subscriptions.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if sub == nil {
			return nil, fmt.Errorf("%w: la suscripción %s no existe", domain.ErrInvalidInput, id)
		}
		subIDs = append(subIDs, id)
	}

	ok, err := uc.d.Photos.Exists(ctx, in.Photo)
	if err != nil {
		return nil, fmt.Errorf("consultar foto: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: photo no corresponde a ningún archivo subido", domain.ErrInvalidInput)
	}

	if other, err := uc.d.Customers.GetByClientCode(ctx, in.ClientCode); err != nil {
		return nil, err
	} else if other != nil && other.ID != selfID {
		return nil, fmt.Errorf("%w: client_code ya existe", domain.ErrDuplicate)
	}
	if other, err := uc.d.Customers.GetByCURP(ctx, in.CURP); err != nil {
		return nil, err
	} else if other != nil && other.ID != selfID {
		return nil, fmt.Errorf("%w: curp ya existe", domain.ErrDuplicate)
	}
	if other, err := uc.d.Customers.GetByPhoto(ctx, in.Photo); err != nil {
		return nil, err
	} else if other != nil && other.ID != selfID {
		return nil, fmt.Errorf("%w: la foto ya pertenece a otro cliente", domain.ErrDuplicate)
	}

	return &entity.Customer{
		ClientCode:        in.ClientCode,
		Name:              in.Name,
		NameSearch:        textnorm.Fold(in.Name),
		CURP:              in.CURP,
		EnrollmentDate:    enrollment,
		BirthDate:         birth,
		Gender:            in.Gender,
		PhoneNumber:       in.PhoneNumber,
		Email:             in.Email,
		PhotoPath:         in.Photo,
		DiscoverySourceID: sourceID,
		DiscoveryDetails:  details,
		SubscriptionIDs:   subIDs,
		HasIllness:        in.HasIllness,
		HasAllergy:        in.HasAllergy,
		HasFlatFeet:       in.HasFlatFeet,
		HasHeartCondition: in.HasHeartConditions,
	}, nil
}

func (uc *CustomerUseCase) detail(ctx context.Context, c *entity.Customer) (*dto.CustomerDetailResponse, error) {
	idx, err := uc.loadCatalogIndex(ctx)
	if err != nil {
		return nil, err
	}
	contacts, err := uc.d.Contacts.ListByCustomer(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	history, err := uc.d.Statuses.ListByCustomer(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	if err := fillStatusNames(ctx, uc.d.ClientStatuses, history); err != nil {
		return nil, err
	}
	out := &dto.CustomerDetailResponse{
		CustomerResponse: idx.customerResponse(c),
		Contacts:         toContactResponses(contacts),
		Statuses:         toStatusResponses(history),
	}
	if cur := membership.CurrentStatus(history); cur != nil {
		r := toStatusResponse(cur)
		out.CurrentStatus = &r
	}
	return out, nil
}

func (uc *CustomerUseCase) removePhoto(ctx context.Context, path string) {
	if err := uc.d.Photos.Delete(ctx, path); err != nil {
		log.Warn().Err(err).Str("photo", path).Msg("no se pudo eliminar la foto del cliente")
	}
}

// catalogIndex catálogos cargados en memoria para resolver referencias de clientes.
type catalogIndex struct {
	sources       map[string]*entity.DiscoverySource
	subscriptions map[string]*entity.Subscription
}

func (uc *CustomerUseCase) loadCatalogIndex(ctx context.Context) (*catalogIndex, error) {
	srcs, err := uc.d.DiscoverySources.List(ctx)
	if err != nil {
		return nil, err
	}
	subs, err := uc.d.Subscriptions.List(ctx)
	if err != nil {
		return nil, err
	}
	idx := &catalogIndex{
		sources:       make(map[string]*entity.DiscoverySource, len(srcs)),
		subscriptions: make(map[string]*entity.Subscription, len(subs)),
	}
	for _, s := range srcs {
		idx.sources[s.ID] = s
	}
	for _, s := range subs {
		idx.subscriptions[s.ID] = s
	}
	return idx, nil
}

func (idx *catalogIndex) customerResponse(c *entity.Customer) dto.CustomerResponse {
	r := dto.CustomerResponse{
		ID:                 c.ID,
		ClientCode:         c.ClientCode,
		Name:               c.Name,
		CURP:               c.CURP,
		EnrollmentDate:     c.EnrollmentDate.Format(dto.DateLayout),
		BirthDate:          c.BirthDate.Format(dto.DateLayout),
		Gender:             c.Gender,
		PhoneNumber:        c.PhoneNumber,
		Email:              c.Email,
		Photo:              c.PhotoPath,
		DiscoveryDetails:   c.DiscoveryDetails,
		Subscriptions:      make([]dto.SubscriptionRef, 0, len(c.SubscriptionIDs)),
		HasIllness:         c.HasIllness,
		HasAllergy:         c.HasAllergy,
		HasFlatFeet:        c.HasFlatFeet,
		HasHeartConditions: c.HasHeartCondition,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
	if c.DiscoverySourceID != nil {
		if s, ok := idx.sources[*c.DiscoverySourceID]; ok {
			r.DiscoverySource = &dto.CatalogRef{ID: s.ID, Name: s.Name}
		}
	}
	for _, id := range c.SubscriptionIDs {
		if s, ok := idx.subscriptions[id]; ok {
			r.Subscriptions = append(r.Subscriptions, dto.SubscriptionRef{ID: s.ID, Code: s.Code, Name: s.Name})
		}
	}
	return r
}

// fillStatusNames completa StatusName en las entradas que no lo traen del almacenamiento.
func fillStatusNames(ctx context.Context, repo repository.ClientStatusRepository, history []*entity.CustomerStatus) error {
	names := make(map[string]string)
	for _, h := range history {
		if h.StatusName != "" {
			continue
		}
		name, ok := names[h.StatusID]
		if !ok {
			s, err := repo.GetByID(ctx, h.StatusID)
			if err != nil {
				return err
			}
			if s != nil {
				name = s.Name
			}
			names[h.StatusID] = name
		}
		h.StatusName = name
	}
	return nil
}
