package http

import (
	"github.com/gin-gonic/gin"

	"appointment-calendar/internal/middleware"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods. Every route
// runs behind the shared rate limiter.
func RegisterRoutes(rg *gin.RouterGroup, h Handler, mw middleware.Middleware) {
	widgets := rg.Group("/widgets", mw.RateLimit())
	{
		widgets.POST("", h.Create)
		widgets.GET("/:id", h.Detail)
		widgets.DELETE("/:id", h.Delete)

		widgets.POST("/:id/navigate", h.Navigate)
		widgets.PUT("/:id/view", h.SetView)
		widgets.PUT("/:id/date", h.SetDate)
		widgets.POST("/:id/refresh", h.Refresh)

		widgets.POST("/:id/search", h.Search)
		widgets.DELETE("/:id/search", h.ExitSearch)

		widgets.POST("/:id/slot-proposals", h.ProposeSlot)
		widgets.POST("/:id/actions", h.ReportAction)
	}
}
