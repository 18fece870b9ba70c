package usecase_test

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
	"github.com/jhoicas/Gimnasio-api/internal/application/usecase"
	"github.com/jhoicas/Gimnasio-api/internal/infrastructure/memory"
	"github.com/jhoicas/Gimnasio-api/internal/infrastructure/storage"
)

// fixture casos de uso sobre repositorios en memoria y un sistema de archivos en memoria.
type fixture struct {
	repos     *memory.Repositories
	fs        afero.Fs
	cache     *spyCache
	catalogs  *usecase.CatalogUseCase
	customers *usecase.CustomerUseCase
	contacts  *usecase.ContactUseCase
	statuses  *usecase.StatusUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repos := memory.NewRepositories(memory.NewStore())
	fs := afero.NewMemMapFs()
	spy := newSpyCache()
	return &fixture{
		repos: repos,
		fs:    fs,
		cache: spy,
		catalogs: usecase.NewCatalogUseCase(repos.ClientStatuses, repos.Subscriptions, repos.DiscoverySources,
			spy, time.Minute),
		customers: usecase.NewCustomerUseCase(usecase.CustomerDeps{
			Customers:        repos.Customers,
			Contacts:         repos.Contacts,
			Statuses:         repos.Statuses,
			ClientStatuses:   repos.ClientStatuses,
			Subscriptions:    repos.Subscriptions,
			DiscoverySources: repos.DiscoverySources,
			Tx:               repos.Tx,
			Photos:           storage.New(fs),
			MaxPhotoSize:     1 << 10,
		}),
		contacts: usecase.NewContactUseCase(repos.Contacts, repos.Tx),
		statuses: usecase.NewStatusUseCase(repos.Customers, repos.Statuses, repos.ClientStatuses),
	}
}

// photo sube una imagen mínima y devuelve su ruta.
func (f *fixture) photo(t *testing.T) string {
	t.Helper()
	data := []byte("\x89PNG\r\n\x1a\nfake")
	out, err := f.customers.UploadPhoto(context.Background(), "image/png", int64(len(data)), bytes.NewReader(data))
	require.NoError(t, err)
	return out.Path
}

func (f *fixture) customerRequest(t *testing.T, code, name, curp string) dto.CustomerRequest {
	t.Helper()
	return dto.CustomerRequest{
		ClientCode:     code,
		Name:           name,
		CURP:           curp,
		EnrollmentDate: "2024-01-15",
		BirthDate:      "1990-05-20",
		Gender:         "F",
		PhoneNumber:    "5551234567",
		Email:          "cliente@example.com",
		Photo:          f.photo(t),
	}
}

func (f *fixture) janeDoe(t *testing.T) *dto.CustomerDetailResponse {
	t.Helper()
	out, err := f.customers.Create(context.Background(), f.customerRequest(t, "C001", "Jane Doe", "ABCD010101HDFRRN09"))
	require.NoError(t, err)
	return out
}

// spyCache caché en memoria que cuenta aciertos para verificar read-through e invalidación.
type spyCache struct {
	mu          sync.Mutex
	data        map[string]any
	hits        int
	invalidated []string
}

func newSpyCache() *spyCache { return &spyCache{data: map[string]any{}} }

func (s *spyCache) Get(_ context.Context, key string, dest any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	if !ok {
		return false, nil
	}
	s.hits++
	switch d := dest.(type) {
	case *[]dto.ClientStatusResponse:
		*d = v.([]dto.ClientStatusResponse)
	case *[]dto.SubscriptionResponse:
		*d = v.([]dto.SubscriptionResponse)
	case *[]dto.DiscoverySourceResponse:
		*d = v.([]dto.DiscoverySourceResponse)
	default:
		return false, nil
	}
	return true, nil
}

func (s *spyCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *spyCache) Invalidate(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.data, k)
		s.invalidated = append(s.invalidated, k)
	}
	return nil
}
