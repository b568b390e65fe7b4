package route

import (
	"github.com/bwmarrin/snowflake"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kreditku_backend/internals/configs"
	"kreditku_backend/internals/constants"
	orderController "kreditku_backend/internals/features/orders/controller"
	"kreditku_backend/internals/features/orders/repository"
	"kreditku_backend/internals/features/orders/service"
	"kreditku_backend/internals/features/orders/workflow"
	helper "kreditku_backend/internals/helpers"
	authMiddleware "kreditku_backend/internals/middlewares/auth"
)

// NewOrderService merakit service order: gorm, snowflake, dan FileStore dari env.
func NewOrderService(db *gorm.DB, notifier service.Notifier) (*service.Service, error) {
	node, err := snowflake.NewNode(int64(configs.GetEnvInt("ORDER_NUMBER_NODE", 1)))
	if err != nil {
		return nil, err
	}
	store, err := helper.NewFileStoreFromEnv()
	if err != nil {
		return nil, err
	}
	return service.New(service.Deps{
		Repo:     repository.NewGormRepository(db),
		Engine:   workflow.NewEngine(),
		Notifier: notifier,
		Catalog:  service.NewGormCatalog(db),
		Numbers:  node,
		Store:    store,
	})
}

// OrderRoutes: semua role login; hak per aksi diputuskan service/workflow.
func OrderRoutes(r fiber.Router, svc *service.Service) {
	ctl := orderController.NewOrderController(svc)

	g := r.Group("/orders")
	g.Post("/", authMiddleware.OnlyRoles(constants.RoleErrorIntake("membuat order"), constants.IntakeRoles...), ctl.Create)
	g.Get("/", ctl.List)
	g.Get("/stats", ctl.Stats)
	g.Get("/:id", ctl.Get)
	g.Patch("/:id", ctl.Patch)
	g.Post("/:id/transitions", ctl.Transition)
	g.Post("/:id/notes", ctl.AddNote)
	g.Post("/:id/photos", ctl.UploadPhoto)
	g.Delete("/:id", authMiddleware.OnlyRoles(constants.RoleErrorAdmin("hapus order"), constants.AdminOnly...), ctl.Delete)
}
