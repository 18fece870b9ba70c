package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gimnasio-api/internal/application/auth"
	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
	"github.com/jhoicas/Gimnasio-api/internal/application/usecase"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
	"github.com/jhoicas/Gimnasio-api/internal/infrastructure/cache"
	"github.com/jhoicas/Gimnasio-api/internal/infrastructure/excel"
	"github.com/jhoicas/Gimnasio-api/internal/infrastructure/memory"
	"github.com/jhoicas/Gimnasio-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Gimnasio-api/internal/infrastructure/storage"
	apphttp "github.com/jhoicas/Gimnasio-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Entorno de test: API completa sobre repositorios en memoria
// ──────────────────────────────────────────────────────────────────────────────

type testEnv struct {
	app        *fiber.App
	adminToken string
	staffToken string
	adminID    string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	repos := memory.NewRepositories(memory.NewStore())

	authUC := auth.NewAuthUseCase(repos.Users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer})
	userUC := usecase.NewUserUseCase(repos.Users)
	catalogUC := usecase.NewCatalogUseCase(repos.ClientStatuses, repos.Subscriptions, repos.DiscoverySources, cache.NewNoop(), time.Minute)
	customerUC := usecase.NewCustomerUseCase(usecase.CustomerDeps{
		Customers:        repos.Customers,
		Contacts:         repos.Contacts,
		Statuses:         repos.Statuses,
		ClientStatuses:   repos.ClientStatuses,
		Subscriptions:    repos.Subscriptions,
		DiscoverySources: repos.DiscoverySources,
		Tx:               repos.Tx,
		Photos:           storage.New(afero.NewMemMapFs()),
	})

	app := fiber.New(fiber.Config{BodyLimit: 6 << 20})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:     authUC,
		UserUC:     userUC,
		CatalogUC:  catalogUC,
		CustomerUC: customerUC,
		ContactUC:  usecase.NewContactUseCase(repos.Contacts, repos.Tx),
		StatusUC:   usecase.NewStatusUseCase(repos.Customers, repos.Statuses, repos.ClientStatuses),
		ReportUC:   usecase.NewReportUseCase(customerUC, pdf.NewCustomerSheetGenerator("Gimnasio Test"), excel.NewCustomerExporter()),
		JWTSecret:  testJWTSecret,
	})

	admin, err := authUC.RegisterUser(ctx, dto.CreateUserRequest{Email: "admin@gym.test", Password: "admin-pass-123", Role: entity.RoleAdmin})
	require.NoError(t, err)
	_, err = authUC.RegisterUser(ctx, dto.CreateUserRequest{Email: "staff@gym.test", Password: "staff-pass-123", Role: entity.RoleStaff})
	require.NoError(t, err)

	env := &testEnv{app: app, adminID: admin.ID}
	env.adminToken = env.login(t, "admin@gym.test", "admin-pass-123")
	env.staffToken = env.login(t, "staff@gym.test", "staff-pass-123")
	return env
}

func (e *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()
	status, body := e.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: password})
	require.Equal(t, http.StatusOK, status, string(body))
	var out dto.LoginResponse
	require.NoError(t, json.Unmarshal(body, &out))
	return out.Token
}

// do envía una petición JSON y devuelve estado y cuerpo.
func (e *testEnv) do(t *testing.T, method, path, token string, payload any) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func (e *testEnv) uploadPhoto(t *testing.T, filename string, content []byte) (int, []byte) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("photo", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/customers/photos", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+e.staffToken)
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, body
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return out
}

// createJaneDoe sube la foto y da de alta a la clienta del escenario base.
func (e *testEnv) createJaneDoe(t *testing.T) dto.CustomerDetailResponse {
	t.Helper()
	status, body := e.uploadPhoto(t, "jane.png", pngBytes(t))
	require.Equal(t, http.StatusCreated, status, string(body))
	photo := decode[dto.PhotoUploadResponse](t, body)

	status, body = e.do(t, http.MethodPost, "/api/customers", e.staffToken, dto.CustomerRequest{
		ClientCode:     "C001",
		Name:           "Jane Doe",
		CURP:           "ABCD010101HDFRRN09",
		EnrollmentDate: "2024-01-15",
		BirthDate:      "1990-05-20",
		Gender:         "F",
		PhoneNumber:    "5551234567",
		Email:          "jane@example.com",
		Photo:          photo.Path,
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	return decode[dto.CustomerDetailResponse](t, body)
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	return decode[dto.ErrorResponse](t, body).Code
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_PasswordIncorrecto_Retorna401(t *testing.T) {
	env := newTestEnv(t)
	status, body := env.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "admin@gym.test", Password: "otra-cosa"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, body))
}

func TestMe_DevuelveUsuarioDelToken(t *testing.T) {
	env := newTestEnv(t)
	status, body := env.do(t, http.MethodGet, "/api/auth/me", env.adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	me := decode[dto.UserResponse](t, body)
	assert.Equal(t, env.adminID, me.ID)
	assert.Equal(t, entity.RoleAdmin, me.Role)
}

func TestUsers_SoloAdmin(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.do(t, http.MethodGet, "/api/users", env.staffToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, body := env.do(t, http.MethodPost, "/api/users", env.adminToken, dto.CreateUserRequest{Email: "nuevo@gym.test", Password: "password-123"})
	require.Equal(t, http.StatusCreated, status, string(body))
	assert.Equal(t, entity.RoleStaff, decode[dto.UserResponse](t, body).Role)

	status, body = env.do(t, http.MethodPost, "/api/users", env.adminToken, dto.CreateUserRequest{Email: "nuevo@gym.test", Password: "password-123"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "EMAIL_EXISTS", errorCode(t, body))

	status, _ = env.do(t, http.MethodDelete, "/api/users/"+env.adminID, env.adminToken, nil)
	assert.Equal(t, http.StatusForbidden, status, "un admin no puede eliminarse a sí mismo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogos
// ──────────────────────────────────────────────────────────────────────────────

func TestCatalogs_EscrituraSoloAdmin(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.do(t, http.MethodPost, "/api/catalogs/client-statuses", env.staffToken, dto.ClientStatusRequest{Name: "Activo"})
	assert.Equal(t, http.StatusForbidden, status)

	status, body := env.do(t, http.MethodPost, "/api/catalogs/client-statuses", env.adminToken, dto.ClientStatusRequest{Name: "Activo"})
	require.Equal(t, http.StatusCreated, status, string(body))

	status, body = env.do(t, http.MethodPost, "/api/catalogs/client-statuses", env.adminToken, dto.ClientStatusRequest{Name: "  activo "})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DUPLICATE", errorCode(t, body))

	status, body = env.do(t, http.MethodGet, "/api/catalogs/client-statuses", env.staffToken, nil)
	require.Equal(t, http.StatusOK, status)
	list := decode[[]dto.ClientStatusResponse](t, body)
	require.Len(t, list, 1)
	assert.Equal(t, "Activo", list[0].Name)
}

func TestCatalogs_SuscripcionDisplay(t *testing.T) {
	env := newTestEnv(t)
	status, body := env.do(t, http.MethodPost, "/api/catalogs/subscriptions", env.adminToken,
		map[string]any{"code": "MENS", "name": "Mensual", "monthly_fee": "450.5"})
	require.Equal(t, http.StatusCreated, status, string(body))
	sub := decode[dto.SubscriptionResponse](t, body)
	assert.Equal(t, "Mensual (MENS)", sub.Display)
	assert.Equal(t, "450.5", sub.MonthlyFee.String())

	status, _ = env.do(t, http.MethodGet, "/api/catalogs/subscriptions/"+sub.ID, env.staffToken, nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = env.do(t, http.MethodGet, "/api/catalogs/subscriptions/no-existe", env.staffToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Clientes y contactos
// ──────────────────────────────────────────────────────────────────────────────

func TestJaneDoe_PrimerContactoYSegundoPrincipalRechazado(t *testing.T) {
	env := newTestEnv(t)
	jane := env.createJaneDoe(t)
	base := "/api/customers/" + jane.ID + "/contacts"

	status, body := env.do(t, http.MethodPost, base, env.staffToken, dto.ContactRequest{
		Name: "John Doe", PhoneNumber: "5550000001", Relation: "Esposo", IsPrimary: true, IsEmergency: true,
	})
	require.Equal(t, http.StatusCreated, status, string(body))

	status, body = env.do(t, http.MethodPost, base, env.staffToken, dto.ContactRequest{
		Name: "Mary Doe", PhoneNumber: "5550000002", Relation: "Hermana", IsPrimary: true,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "CONTACT_PRIMARY_TAKEN", errorCode(t, body))

	status, body = env.do(t, http.MethodGet, base, env.staffToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]dto.ContactResponse](t, body), 1)
}

func TestContactos_PrimerContactoSinMarcas_Rechazado(t *testing.T) {
	env := newTestEnv(t)
	jane := env.createJaneDoe(t)

	status, body := env.do(t, http.MethodPost, "/api/customers/"+jane.ID+"/contacts", env.staffToken, dto.ContactRequest{
		Name: "John Doe", PhoneNumber: "5550000001", Relation: "Esposo", IsPrimary: true,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "CONTACT_EMERGENCY_REQUIRED", errorCode(t, body))
}

func TestContactos_DesignarTrasladaMarca(t *testing.T) {
	env := newTestEnv(t)
	jane := env.createJaneDoe(t)
	base := "/api/customers/" + jane.ID + "/contacts"

	_, body := env.do(t, http.MethodPost, base, env.staffToken, dto.ContactRequest{
		Name: "John Doe", PhoneNumber: "5550000001", Relation: "Esposo", IsPrimary: true, IsEmergency: true,
	})
	john := decode[dto.ContactResponse](t, body)
	status, body := env.do(t, http.MethodPost, base, env.staffToken, dto.ContactRequest{
		Name: "Mary Doe", PhoneNumber: "5550000002", Relation: "Hermana",
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	mary := decode[dto.ContactResponse](t, body)

	status, body = env.do(t, http.MethodPut, base+"/"+mary.ID+"/designate", env.staffToken, dto.DesignateContactRequest{Emergency: true})
	require.Equal(t, http.StatusOK, status, string(body))
	byID := map[string]dto.ContactResponse{}
	for _, c := range decode[[]dto.ContactResponse](t, body) {
		byID[c.ID] = c
	}
	assert.True(t, byID[john.ID].IsPrimary)
	assert.False(t, byID[john.ID].IsEmergency)
	assert.True(t, byID[mary.ID].IsEmergency)

	// John sigue siendo el único principal: borrarlo dejaría el conjunto sin principal.
	status, body = env.do(t, http.MethodDelete, base+"/"+john.ID, env.staffToken, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "CONTACT_PRIMARY_REQUIRED", errorCode(t, body))
}

func TestClientes_DuplicadoYBusqueda(t *testing.T) {
	env := newTestEnv(t)
	jane := env.createJaneDoe(t)

	status, body := env.do(t, http.MethodPost, "/api/customers", env.staffToken, dto.CustomerRequest{
		ClientCode: "C001", Name: "Otra", CURP: "WXYZ010101HDFRRN09", EnrollmentDate: "2024-01-15", BirthDate: "1990-05-20",
		Gender: "F", PhoneNumber: "5551234567", Email: "otra@example.com", Photo: jane.Photo,
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DUPLICATE", errorCode(t, body))

	status, body = env.do(t, http.MethodGet, "/api/customers?q=jane&gender=F", env.staffToken, nil)
	require.Equal(t, http.StatusOK, status)
	list := decode[dto.CustomerListResponse](t, body)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "C001", list.Items[0].ClientCode)
	assert.Equal(t, 1, list.Page.Total)

	status, _ = env.do(t, http.MethodGet, "/api/customers?has_illness=quizas", env.staffToken, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestClientes_NacimientoPosteriorAlIngreso_Retorna422(t *testing.T) {
	env := newTestEnv(t)
	jane := env.createJaneDoe(t)

	status, body := env.do(t, http.MethodPut, "/api/customers/"+jane.ID, env.staffToken, dto.CustomerRequest{
		ClientCode: "C001", Name: "Jane Doe", CURP: "ABCD010101HDFRRN09", EnrollmentDate: "2024-01-15", BirthDate: "2024-02-01",
		Gender: "F", PhoneNumber: "5551234567", Email: "jane@example.com", Photo: jane.Photo,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "BIRTH_AFTER_ENROLLMENT", errorCode(t, body))
}

func TestClientes_BorrarSoloAdmin(t *testing.T) {
	env := newTestEnv(t)
	jane := env.createJaneDoe(t)

	status, _ := env.do(t, http.MethodDelete, "/api/customers/"+jane.ID, env.staffToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = env.do(t, http.MethodDelete, "/api/customers/"+jane.ID, env.adminToken, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = env.do(t, http.MethodGet, "/api/customers/"+jane.ID, env.staffToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestFoto_TipoNoPermitido_Retorna400(t *testing.T) {
	env := newTestEnv(t)
	status, body := env.uploadPhoto(t, "notas.txt", []byte("esto no es una imagen"))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", errorCode(t, body))
}

func TestFoto_SeSirveConTipoDeImagen(t *testing.T) {
	env := newTestEnv(t)
	jane := env.createJaneDoe(t)

	req := httptest.NewRequest(http.MethodGet, "/api/customers/"+jane.ID+"/photo", nil)
	req.Header.Set("Authorization", "Bearer "+env.staffToken)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Historial de estados
// ──────────────────────────────────────────────────────────────────────────────

func TestEstados_AltaEInmutabilidad(t *testing.T) {
	env := newTestEnv(t)
	jane := env.createJaneDoe(t)

	_, body := env.do(t, http.MethodPost, "/api/catalogs/client-statuses", env.adminToken, dto.ClientStatusRequest{Name: "Activo"})
	activo := decode[dto.ClientStatusResponse](t, body)

	base := "/api/customers/" + jane.ID + "/statuses"
	status, body := env.do(t, http.MethodPost, base, env.adminToken, dto.CustomerStatusRequest{StatusID: activo.ID, Reason: "Inscripción"})
	require.Equal(t, http.StatusCreated, status, string(body))
	entry := decode[dto.CustomerStatusResponse](t, body)
	require.NotNil(t, entry.ChangedBy)
	assert.Equal(t, env.adminID, *entry.ChangedBy)
	assert.Equal(t, "Activo", entry.StatusName)

	status, body = env.do(t, http.MethodPut, base+"/"+entry.ID, env.adminToken, dto.CustomerStatusRequest{StatusID: activo.ID, Reason: "otra"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "STATUS_IMMUTABLE", errorCode(t, body))

	status, _ = env.do(t, http.MethodDelete, base+"/"+entry.ID, env.adminToken, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, status)

	status, body = env.do(t, http.MethodPost, base, env.adminToken, dto.CustomerStatusRequest{StatusID: activo.ID})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", errorCode(t, body))

	// El estado en uso no puede borrarse del catálogo.
	status, body = env.do(t, http.MethodDelete, "/api/catalogs/client-statuses/"+activo.ID, env.adminToken, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "CATALOG_IN_USE", errorCode(t, body))

	status, body = env.do(t, http.MethodGet, "/api/customers/"+jane.ID, env.staffToken, nil)
	require.Equal(t, http.StatusOK, status)
	detail := decode[dto.CustomerDetailResponse](t, body)
	require.NotNil(t, detail.CurrentStatus)
	assert.Equal(t, entry.ID, detail.CurrentStatus.ID)
}

func TestEstados_ModificarConCuerpoInvalido_Retorna400(t *testing.T) {
	env := newTestEnv(t)
	jane := env.createJaneDoe(t)

	req := httptest.NewRequest(http.MethodPut, "/api/customers/"+jane.ID+"/statuses/cualquiera", bytes.NewReader([]byte(`{"status_id":`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+env.adminToken)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", errorCode(t, body))
}

func TestEstados_RegistroGlobal(t *testing.T) {
	env := newTestEnv(t)
	jane := env.createJaneDoe(t)

	_, body := env.do(t, http.MethodPost, "/api/catalogs/client-statuses", env.adminToken, dto.ClientStatusRequest{Name: "Activo"})
	activo := decode[dto.ClientStatusResponse](t, body)
	_, body = env.do(t, http.MethodPost, "/api/catalogs/client-statuses", env.adminToken, dto.ClientStatusRequest{Name: "Baja"})
	baja := decode[dto.ClientStatusResponse](t, body)

	base := "/api/customers/" + jane.ID + "/statuses"
	status, body := env.do(t, http.MethodPost, base, env.adminToken, dto.CustomerStatusRequest{StatusID: activo.ID, Reason: "Inscripción"})
	require.Equal(t, http.StatusCreated, status, string(body))
	status, body = env.do(t, http.MethodPost, base, env.staffToken, dto.CustomerStatusRequest{StatusID: baja.ID, Reason: "Mudanza"})
	require.Equal(t, http.StatusCreated, status, string(body))

	status, body = env.do(t, http.MethodGet, "/api/customer-statuses?status_id="+activo.ID, env.staffToken, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	list := decode[dto.StatusChangeListResponse](t, body)
	require.Len(t, list.Items, 1)
	assert.Equal(t, 1, list.Page.Total)
	item := list.Items[0]
	assert.Equal(t, "C001", item.ClientCode)
	assert.Equal(t, "Jane Doe", item.CustomerName)
	assert.Equal(t, "Activo", item.StatusName)
	assert.Equal(t, "Inscripción", item.Reason)
	assert.Equal(t, "admin@gym.test", item.ChangedByEmail)

	status, body = env.do(t, http.MethodGet, "/api/customer-statuses", env.staffToken, nil)
	require.Equal(t, http.StatusOK, status)
	all := decode[dto.StatusChangeListResponse](t, body)
	require.Len(t, all.Items, 2)
	assert.Equal(t, "Baja", all.Items[0].StatusName, "el cambio más reciente va primero")
	assert.Equal(t, "staff@gym.test", all.Items[0].ChangedByEmail)

	status, body = env.do(t, http.MethodGet, "/api/customer-statuses?from=2024-13-01", env.staffToken, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", errorCode(t, body))

	status, _ = env.do(t, http.MethodGet, "/api/customer-statuses", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reportes
// ──────────────────────────────────────────────────────────────────────────────

func TestReportes_FichaPDFYExportacion(t *testing.T) {
	env := newTestEnv(t)
	jane := env.createJaneDoe(t)

	req := httptest.NewRequest(http.MethodGet, "/api/customers/"+jane.ID+"/sheet.pdf", nil)
	req.Header.Set("Authorization", "Bearer "+env.staffToken)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	pdfBody, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, string(pdfBody))
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(pdfBody, []byte("%PDF")))

	req = httptest.NewRequest(http.MethodGet, "/api/customers/export.xlsx?q=jane", nil)
	req.Header.Set("Authorization", "Bearer "+env.staffToken)
	resp, err = env.app.Test(req, -1)
	require.NoError(t, err)
	xlsx, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "spreadsheetml")
	assert.True(t, bytes.HasPrefix(xlsx, []byte("PK")), "un xlsx es un zip")

	status, _ := env.do(t, http.MethodGet, "/api/customers/no-existe/sheet.pdf", env.staffToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
}
