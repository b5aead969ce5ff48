package http

import (
	"github.com/gin-gonic/gin"

	"appointment-calendar/internal/schedule"
	pkgLog "appointment-calendar/pkg/log"
)

// Handler is the public interface for the schedule HTTP delivery layer.
type Handler interface {
	Create(c *gin.Context)
	Detail(c *gin.Context)
	Navigate(c *gin.Context)
	SetView(c *gin.Context)
	SetDate(c *gin.Context)
	Search(c *gin.Context)
	ExitSearch(c *gin.Context)
	Refresh(c *gin.Context)
	ProposeSlot(c *gin.Context)
	ReportAction(c *gin.Context)
	Delete(c *gin.Context)
}

type handler struct {
	l  pkgLog.Logger
	uc schedule.UseCase
}

// New creates a new HTTP handler for the schedule domain.
func New(l pkgLog.Logger, uc schedule.UseCase) *handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
