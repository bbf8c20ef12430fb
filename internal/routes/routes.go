package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"product-catalog/internal/handlers"
	"product-catalog/internal/upload"
)

func RegisterRoutes(router *gin.Engine, h *handlers.ProductHandler, corsOrigin, uploadDir string) {
	router.Use(cors(corsOrigin))

	// Las imágenes subidas se sirven estáticas bajo /uploads
	router.Static(upload.PathPrefix, uploadDir)

	api := router.Group("/api")
	{
		api.POST("/products", h.CreateProduct)
		api.GET("/products", h.GetProducts)
		api.PUT("/products/:id", h.UpdateProduct)
		api.DELETE("/products/:id", h.DeleteProduct)
	}
}

// cors permite al frontend consumir la API desde otro origen
func cors(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		c.Header("Access-Control-Allow-Credentials", "true")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
