package route

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ristorante/controller"
	"ristorante/storage"
	"ristorante/utils"
)

// Register wires every route onto the engine. The database handle and
// object store are passed in explicitly so tests can run against a
// throwaway database and a temp-dir store.
func Register(router *gin.Engine, db *gorm.DB, store storage.Store, adminToken string) {
	health := controller.NewHealthController(db)
	menu := controller.NewMenuController(db)
	reservations := controller.NewReservationController(db)
	pages := controller.NewPageController(db)
	gallery := controller.NewGalleryController(store)

	api := router.Group("/api", utils.RequireDB(db))
	{
		api.GET("/health", health.Check)
		api.GET("/menu", menu.List)
		api.POST("/reservations", reservations.Create)
		api.GET("/page/:slug", pages.Read)
	}

	admin := router.Group("/api/admin", utils.AdminRequired(adminToken))
	adminDB := admin.Group("", utils.RequireDB(db))
	{
		adminDB.POST("/menu", menu.Create)
		adminDB.POST("/menu/import", menu.Import)
		adminDB.PUT("/menu/:id", menu.Update)
		adminDB.DELETE("/menu/:id", menu.Delete)
		adminDB.GET("/reservations", reservations.List)
		adminDB.PUT("/reservations/:id", reservations.UpdateStatus)
		adminDB.GET("/page/:slug", pages.Read)
		adminDB.PUT("/page/:slug", pages.Upsert)
	}
	admin.POST("/gallery/upload", utils.RequireStorage(store), gallery.Upload)

	router.GET("/img/*key", utils.RequireStorage(store), gallery.Serve)

	// Any OPTIONS request is answered before routing semantics apply;
	// everything else unmatched is a plain 404.
	router.NoRoute(func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
}
