package routers

import (
	"log"

	"Backend/config"
	"Backend/handlers"
	"Backend/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func SetupRouters(db *gorm.DB, rdb *redis.Client, cfg config.Config) *gin.Engine {
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Authorization"},
		AllowCredentials: true,
	}))
	if err := router.SetTrustedProxies(nil); err != nil {
		log.Printf("could not set trusted proxies: %v", err)
	}

	// item pictures and profile pictures are plain files on disk
	router.Static("/items/image", cfg.Storage.ImagesDir)
	router.Static("/profile/picture", cfg.Storage.UploadsDir)

	// resolve bearer tokens on every request; unauthenticated requests pass
	// through and are stopped by the login gate where one applies
	router.Use(middleware.AuthMiddleware(db))
	{
		auth := router.Group("/auth")
		{
			auth.POST("/signup", func(context *gin.Context) {
				handlers.SignupHandler(context, db, cfg.Storage.UploadsDir)
			})
			auth.POST("/login", func(context *gin.Context) {
				handlers.LoginHandler(context, db)
			})
			auth.POST("/logout", middleware.CheckLoginMiddleware(), func(context *gin.Context) {
				handlers.LogOutHandler(context, db)
			})
		}

		items := router.Group("/items")
		{
			items.GET("", func(context *gin.Context) {
				handlers.GetItemListHandler(context, db, rdb)
			})
			items.GET("/best-sellers", func(context *gin.Context) {
				handlers.GetBestSellersHandler(context, db)
			})
			items.GET("/new-arrivals", func(context *gin.Context) {
				handlers.GetNewArrivalsHandler(context, db)
			})
			items.GET("/recommendations", func(context *gin.Context) {
				handlers.GetRecommendationsHandler(context, db)
			})
			items.GET("/search", func(context *gin.Context) {
				handlers.SearchItemsHandler(context, db)
			})
			items.GET("/:itemID", func(context *gin.Context) {
				handlers.GetItemDataHandler(context, db)
			})
		}

		recipes := router.Group("/recipes")
		{
			recipes.GET("", func(context *gin.Context) {
				handlers.GetRecipeListHandler(context, db)
			})
			recipes.GET("/search", func(context *gin.Context) {
				handlers.SearchRecipesHandler(context, db)
			})
			recipes.GET("/:id", func(context *gin.Context) {
				handlers.GetRecipeDataHandler(context, db)
			})
			recipes.GET("/:id/ingredients", func(context *gin.Context) {
				handlers.GetRecipeIngredientsHandler(context, db)
			})
		}

		profile := router.Group("/profile")
		profile.Use(middleware.CheckLoginMiddleware())
		{
			profile.GET("", func(context *gin.Context) {
				handlers.GetProfileHandler(context, db)
			})
			profile.PUT("", func(context *gin.Context) {
				handlers.UpdateProfileHandler(context, db)
			})
		}

		cart := router.Group("/cart")
		cart.Use(middleware.CheckLoginMiddleware())
		{
			cart.GET("/items", func(context *gin.Context) {
				handlers.GetCartHandler(context, db)
			})
			cart.POST("/add", func(context *gin.Context) {
				handlers.AddToCartHandler(context, db)
			})
			cart.PUT("/update", func(context *gin.Context) {
				handlers.UpdateCartItemHandler(context, db)
			})
			cart.DELETE("/remove/:itemID", func(context *gin.Context) {
				handlers.RemoveFromCartHandler(context, db)
			})
		}

		checkout := router.Group("/checkout")
		checkout.Use(middleware.CheckLoginMiddleware())
		{
			checkout.POST("/payment", func(context *gin.Context) {
				handlers.ProcessPaymentHandler(context, db, rdb)
			})
			checkout.GET("/items", func(context *gin.Context) {
				handlers.GetCheckoutItemsHandler(context, db)
			})
		}

		orders := router.Group("/orders")
		orders.Use(middleware.CheckLoginMiddleware())
		{
			orders.GET("", func(context *gin.Context) {
				handlers.GetPendingOrdersHandler(context, db)
			})
			orders.GET("/history", func(context *gin.Context) {
				handlers.GetOrderHistoryHandler(context, db)
			})
			orders.POST("/buy_again", func(context *gin.Context) {
				handlers.BuyAgainHandler(context, db)
			})
			orders.POST("/cancel", func(context *gin.Context) {
				handlers.CancelOrderHandler(context, db)
			})

			employee := orders.Group("/employee")
			employee.Use(middleware.CheckEmployeePermissionMiddleware())
			{
				employee.GET("/orders", func(context *gin.Context) {
					handlers.GetEmployeeOrdersHandler(context, db)
				})
				employee.POST("/orders/accept", func(context *gin.Context) {
					handlers.AcceptOrderHandler(context, db)
				})
				employee.POST("/orders/cancel", func(context *gin.Context) {
					handlers.EmployeeCancelOrderHandler(context, db)
				})
				employee.GET("/orders/history", func(context *gin.Context) {
					handlers.GetEmployeeOrderHistoryHandler(context, db)
				})
			}
		}
	}

	return router
}
