package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/hemahemapathi/Grocery-Shop-App-sub000/controllers"
	"github.com/hemahemapathi/Grocery-Shop-App-sub000/middleware"
)

func RegisterRoutes(r *gin.Engine) {

	api := r.Group("/api")
	{
		api.POST("/register", controllers.Register)
		api.POST("/login", controllers.Login)
		api.POST("/logout", controllers.Logout)

		api.GET("/products", controllers.GetProducts)
		api.GET("/products/:id", controllers.GetProductByID)

		// Authenticated by the Stripe signature, not a bearer token.
		api.POST("/orders/webhook", controllers.StripeWebhook)

		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.POST("/products/:id/reviews", controllers.CreateProductReview)

			protected.GET("/user/profile", controllers.GetProfile)
			protected.GET("/user/favorites", controllers.GetFavorites)
			protected.POST("/user/favorites/:productId", controllers.AddFavorite)
			protected.DELETE("/user/favorites/:productId", controllers.RemoveFavorite)

			protected.GET("/cart", controllers.GetCart)
			protected.POST("/cart", controllers.AddToCart)
			protected.PUT("/cart/:lineItemId", controllers.UpdateCartItem)
			protected.DELETE("/cart/:lineItemId", controllers.RemoveFromCart)
			protected.DELETE("/cart", controllers.ClearCart)

			protected.POST("/orders", controllers.CreateOrder)
			protected.GET("/orders/myorders", controllers.GetMyOrders)
			protected.GET("/orders/:id", controllers.GetOrderByID)
			protected.PUT("/orders/:id/pay", controllers.PayOrder)
			protected.PUT("/orders/:id/cancel", controllers.CancelOrder)
			protected.POST("/orders/create-payment-intent", controllers.CreatePaymentIntent)

			admin := protected.Group("/")
			admin.Use(middleware.AdminMiddleware())
			{
				admin.POST("/admin/products", controllers.CreateProduct)
				admin.PUT("/admin/products/:id", controllers.UpdateProduct)
				admin.DELETE("/admin/products/:id", controllers.DeleteProduct)
				admin.GET("/admin/products", controllers.GetProductsAdmin)

				admin.GET("/orders", controllers.GetOrdersAdmin)
				admin.PUT("/orders/:id/deliver", controllers.DeliverOrder)
				admin.PUT("/orders/:id/status", controllers.UpdateOrderStatus)
			}
		}
	}
}
