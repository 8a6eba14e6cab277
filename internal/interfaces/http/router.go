package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/inventario-mmg/internal/application/notification"
	"github.com/jhoicas/inventario-mmg/internal/application/receipt"
	"github.com/jhoicas/inventario-mmg/internal/application/stock"
	"github.com/jhoicas/inventario-mmg/internal/application/workflow"
	"github.com/jhoicas/inventario-mmg/internal/domain/catalog"
	"github.com/jhoicas/inventario-mmg/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	WorkflowUC     *workflow.UseCase
	StockUC        *stock.UseCase
	NotificationUC *notification.UseCase
	ReceiptUC      *receipt.UseCase // opcional
	Catalog        *catalog.Catalog
	Metrics        nethttp.Handler // opcional: se expone en /metrics
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	holder := RequireRole(entity.RoleInventoryHolder)
	mmg := RequireRole(entity.RoleMMGInventoryHolder)
	approvers := RequireRole(entity.RoleInventoryHolder, entity.RoleMMGInventoryHolder)
	stockAdmins := RequireRole(entity.RoleMMGInventoryHolder, entity.RoleSuperAdmin)

	// Catálogo
	api.Get("/catalog", NewCatalogHandler(deps.Catalog).Get)

	// Solicitudes: rutas fijas antes de /:id
	requests := api.Group("/requests")
	requestHandler := NewRequestHandler(deps.WorkflowUC)
	requests.Post("/", requestHandler.Create)
	requests.Get("/mine", requestHandler.Mine)
	requests.Get("/department", holder, requestHandler.DepartmentQueue)
	requests.Get("/mmg-pending", mmg, requestHandler.MMGQueue)
	requests.Get("/:id", requestHandler.GetByID)
	requests.Delete("/:id", requestHandler.Cancel)
	requests.Post("/:id/department-approve", holder, requestHandler.DepartmentApprove)
	requests.Post("/:id/mmg-approve", mmg, requestHandler.MMGApprove)
	requests.Post("/:id/reject", approvers, requestHandler.Reject)
	requests.Post("/:id/return-approve", mmg, requestHandler.ReturnApprove)

	// Artículos entregados
	items := api.Group("/issued-items")
	itemHandler := NewIssuedItemHandler(deps.WorkflowUC, deps.ReceiptUC)
	items.Get("/mine", itemHandler.Mine)
	items.Get("/user/:userId", holder, itemHandler.ByUser)
	items.Post("/:id/return", itemHandler.Return)
	items.Get("/:id/receipt", itemHandler.Receipt)

	// Stock (MMG / Super_Admin)
	stockGroup := api.Group("/stock", stockAdmins)
	stockHandler := NewStockHandler(deps.StockUC)
	stockGroup.Get("/", stockHandler.List)
	stockGroup.Post("/", stockHandler.Intake)
	stockGroup.Post("/debit", stockHandler.Debit)
	stockGroup.Get("/:ledger", stockHandler.Get)
	stockGroup.Delete("/:ledger", stockHandler.Remove)

	// Notificaciones
	notifications := api.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notifications.Get("/", notificationHandler.List)
	notifications.Get("/unread-count", notificationHandler.UnreadCount)
	notifications.Post("/mark-read", notificationHandler.MarkRead)
	notifications.Post("/:id/archive", notificationHandler.Archive)
	notifications.Post("/", stockAdmins, notificationHandler.Send)
}
