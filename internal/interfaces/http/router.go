package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Gimnasio-api/internal/application/auth"
	"github.com/jhoicas/Gimnasio-api/internal/application/usecase"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	UserUC     *usecase.UserUseCase
	CatalogUC  *usecase.CatalogUseCase
	CustomerUC *usecase.CustomerUseCase
	ContactUC  *usecase.ContactUseCase
	StatusUC   *usecase.StatusUseCase
	ReportUC   *usecase.ReportUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	protected.Get("/auth/me", authHandler.Me)

	// Users (solo admin)
	users := protected.Group("/users", adminOnly)
	userHandler := NewUserHandler(deps.AuthUC, deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.Get)
	users.Delete("/:id", userHandler.Delete)

	// Catálogos: lectura para cualquier usuario, escritura solo admin
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	catalogs := protected.Group("/catalogs")

	statuses := catalogs.Group("/client-statuses")
	statuses.Get("/", catalogHandler.ListClientStatuses)
	statuses.Get("/:id", catalogHandler.GetClientStatus)
	statuses.Post("/", adminOnly, catalogHandler.CreateClientStatus)
	statuses.Put("/:id", adminOnly, catalogHandler.UpdateClientStatus)
	statuses.Delete("/:id", adminOnly, catalogHandler.DeleteClientStatus)

	subscriptions := catalogs.Group("/subscriptions")
	subscriptions.Get("/", catalogHandler.ListSubscriptions)
	subscriptions.Get("/:id", catalogHandler.GetSubscription)
	subscriptions.Post("/", adminOnly, catalogHandler.CreateSubscription)
	subscriptions.Put("/:id", adminOnly, catalogHandler.UpdateSubscription)
	subscriptions.Delete("/:id", adminOnly, catalogHandler.DeleteSubscription)

	sources := catalogs.Group("/discovery-sources")
	sources.Get("/", catalogHandler.ListDiscoverySources)
	sources.Get("/:id", catalogHandler.GetDiscoverySource)
	sources.Post("/", adminOnly, catalogHandler.CreateDiscoverySource)
	sources.Put("/:id", adminOnly, catalogHandler.UpdateDiscoverySource)
	sources.Delete("/:id", adminOnly, catalogHandler.DeleteDiscoverySource)

	// Customers. Las rutas fijas van antes de /:id.
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.ReportUC)
	customers.Get("/export.xlsx", customerHandler.Export)
	customers.Post("/photos", customerHandler.UploadPhoto)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.Get)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", adminOnly, customerHandler.Delete)
	customers.Get("/:id/photo", customerHandler.Photo)
	customers.Get("/:id/sheet.pdf", customerHandler.Sheet)

	contactHandler := NewContactHandler(deps.ContactUC)
	customers.Get("/:id/contacts", contactHandler.List)
	customers.Post("/:id/contacts", contactHandler.Add)
	customers.Put("/:id/contacts/:contactId", contactHandler.Update)
	customers.Delete("/:id/contacts/:contactId", contactHandler.Delete)
	customers.Put("/:id/contacts/:contactId/designate", contactHandler.Designate)

	statusHandler := NewStatusHandler(deps.StatusUC)
	customers.Get("/:id/statuses", statusHandler.List)
	customers.Post("/:id/statuses", statusHandler.Append)
	customers.Put("/:id/statuses/:statusId", statusHandler.Modify)
	customers.Delete("/:id/statuses/:statusId", statusHandler.Delete)
	protected.Get("/customer-statuses", statusHandler.Search)
}
