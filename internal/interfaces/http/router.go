package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/marketplace-bot/internal/application/access"
	"github.com/jhoicas/marketplace-bot/internal/application/auth"
	"github.com/jhoicas/marketplace-bot/internal/application/seller"
	"github.com/jhoicas/marketplace-bot/internal/application/usecase"
	"github.com/jhoicas/marketplace-bot/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	UserUC     *usecase.UserUseCase
	ProductUC  *usecase.ProductUseCase
	CartUC     *usecase.CartUseCase
	FavoriteUC *usecase.FavoriteUseCase
	ApprovalUC *seller.ApprovalUseCase
	Authorizer *access.Authorizer
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Público
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	api.Post("/auth/telegram", authHandler.Login)

	productHandler := NewProductHandler(deps.ProductUC)
	api.Get("/catalog", productHandler.Catalog)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/me", authHandler.Me)

	favorites := protected.Group("/favorites")
	favoriteHandler := NewFavoriteHandler(deps.FavoriteUC)
	favorites.Get("/", favoriteHandler.List)
	favorites.Post("/", favoriteHandler.Add)
	favorites.Delete("/:productId", favoriteHandler.Remove)

	cart := protected.Group("/cart")
	cartHandler := NewCartHandler(deps.CartUC)
	cart.Get("/", cartHandler.Get)
	cart.Post("/", cartHandler.Add)
	cart.Delete("/", cartHandler.Clear)
	cart.Delete("/:productId", cartHandler.Remove)

	// Vendedor aprobado
	sellerProducts := protected.Group("/seller/products", RequireRole(deps.Authorizer, entity.RoleSeller))
	sellerProducts.Get("/", productHandler.List)
	sellerProducts.Post("/", productHandler.Create)
	sellerProducts.Put("/:id", productHandler.Update)

	// Admin
	admin := protected.Group("/admin", RequireRole(deps.Authorizer, entity.RoleAdmin))
	appHandler := NewSellerApplicationHandler(deps.ApprovalUC)
	admin.Get("/seller-applications", appHandler.ListPending)
	admin.Post("/seller-applications/:id/approve", appHandler.Approve)
	admin.Post("/seller-applications/:id/reject", appHandler.Reject)
}
