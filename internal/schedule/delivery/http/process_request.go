package http

import (
	"github.com/gin-gonic/gin"

	"appointment-calendar/internal/schedule"
)

// processCreateReq binds and validates the create widget request body. An
// empty body is fine: everything has a default.
func (h *handler) processCreateReq(c *gin.Context) (createReq, error) {
	var req createReq
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			return req, err
		}
	}
	return req, nil
}

func (h *handler) processNavigateReq(c *gin.Context) (navigateReq, error) {
	var req navigateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}

func (h *handler) processSetViewReq(c *gin.Context) (setViewReq, error) {
	var req setViewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}

func (h *handler) processSetDateReq(c *gin.Context) (setDateReq, error) {
	var req setDateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}

func (h *handler) processSearchReq(c *gin.Context) (searchReq, error) {
	var req searchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}

func (h *handler) processActionReq(c *gin.Context) (actionReq, error) {
	var req actionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}

// widgetID extracts the widget id path parameter.
func (h *handler) widgetID(c *gin.Context) (string, error) {
	id := c.Param("id")
	if id == "" {
		return "", schedule.ErrWidgetNotFound
	}
	return id, nil
}
