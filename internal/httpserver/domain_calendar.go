package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	"appointment-calendar/internal/middleware"
	scheduleHTTP "appointment-calendar/internal/schedule/delivery/http"
)

// setupCalendarDomain registers the calendar widget routes.
//
// Pattern to follow when adding a new domain:
//  1. Create HTTP Handler: h := mydomainHTTP.New(srv.l, uc)
//  2. Register Routes:     mydomainHTTP.RegisterRoutes(api.Group("/myresource"), h, mw)
func (srv HTTPServer) setupCalendarDomain(ctx context.Context, api *gin.RouterGroup) error {
	mw := middleware.New(srv.l, srv.rateLimitPerMin)

	h := scheduleHTTP.New(srv.l, srv.scheduleUC)
	scheduleHTTP.RegisterRoutes(api.Group("/calendar"), h, mw)

	srv.l.Infof(ctx, "Calendar domain registered")
	return nil
}
