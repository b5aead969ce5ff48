package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"appointment-calendar/internal/model"
	"appointment-calendar/internal/schedule"
	"appointment-calendar/pkg/response"
)

// Create godoc
// @Summary     Create a calendar widget
// @Description Registers a new widget instance and performs its initial fetch.
// @Tags        Calendar
// @Accept      json
// @Produce     json
// @Param       body body createReq false "Widget options"
// @Success     200 {object} snapshotResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     409 {object} response.Resp "Conflict - widget id already registered"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/calendar/widgets [POST]
func (h *handler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processCreateReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	input, err := req.toInput()
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}

	snapshot, err := h.uc.CreateWidget(ctx, input)
	if err != nil {
		h.l.Errorf(ctx, "uc.CreateWidget: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newSnapshotResp(snapshot))
}

// Detail godoc
// @Summary     Get a widget snapshot
// @Description Returns the widget's current state without refetching.
// @Tags        Calendar
// @Produce     json
// @Param       id path string true "Widget ID"
// @Success     200 {object} snapshotResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/calendar/widgets/{id} [GET]
func (h *handler) Detail(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := h.widgetID(c)
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}

	snapshot, err := h.uc.Snapshot(ctx, id)
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newSnapshotResp(snapshot))
}

// Navigate godoc
// @Summary     Navigate a widget
// @Description Advances or retreats the anchor date by one unit of the current view.
// @Tags        Calendar
// @Accept      json
// @Produce     json
// @Param       id   path string      true "Widget ID"
// @Param       body body navigateReq true "Step: -1 or 1"
// @Success     200 {object} snapshotResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/calendar/widgets/{id}/navigate [POST]
func (h *handler) Navigate(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := h.widgetID(c)
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}

	req, err := h.processNavigateReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	snapshot, err := h.uc.Navigate(ctx, id, req.Step)
	if err != nil {
		h.l.Errorf(ctx, "uc.Navigate: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newSnapshotResp(snapshot))
}

// SetView godoc
// @Summary     Switch the widget view
// @Description Switches to day, week, month or year. Unknown names fall back to month.
// @Tags        Calendar
// @Accept      json
// @Produce     json
// @Param       id   path string     true "Widget ID"
// @Param       body body setViewReq true "View name"
// @Success     200 {object} snapshotResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/calendar/widgets/{id}/view [PUT]
func (h *handler) SetView(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := h.widgetID(c)
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}

	req, err := h.processSetViewReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	snapshot, err := h.uc.SetView(ctx, id, req.View)
	if err != nil {
		h.l.Errorf(ctx, "uc.SetView: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newSnapshotResp(snapshot))
}

// SetDate godoc
// @Summary     Jump to a date
// @Description Replaces the anchor date and refetches the displayed period.
// @Tags        Calendar
// @Accept      json
// @Produce     json
// @Param       id   path string     true "Widget ID"
// @Param       body body setDateReq true "Date (YYYY-MM-DD)"
// @Success     200 {object} snapshotResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/calendar/widgets/{id}/date [PUT]
func (h *handler) SetDate(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := h.widgetID(c)
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}

	req, err := h.processSetDateReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	date, err := time.Parse(dateFormat, req.Date)
	if err != nil {
		response.Error(c, h.mapError(schedule.ErrInvalidDate))
		return
	}

	snapshot, err := h.uc.SetDate(ctx, id, date)
	if err != nil {
		h.l.Errorf(ctx, "uc.SetDate: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newSnapshotResp(snapshot))
}

// Search godoc
// @Summary     Search appointments
// @Description Runs a paginated text search. An empty query exits search mode.
// @Tags        Calendar
// @Accept      json
// @Produce     json
// @Param       id   path string    true "Widget ID"
// @Param       body body searchReq true "Search query and pagination"
// @Success     200 {object} snapshotResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/calendar/widgets/{id}/search [POST]
func (h *handler) Search(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := h.widgetID(c)
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}

	req, err := h.processSearchReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	snapshot, err := h.uc.Search(ctx, id, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Search: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newSnapshotResp(snapshot))
}

// ExitSearch godoc
// @Summary     Exit search mode
// @Description Restores the prior date view and resets pagination.
// @Tags        Calendar
// @Produce     json
// @Param       id path string true "Widget ID"
// @Success     200 {object} snapshotResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/calendar/widgets/{id}/search [DELETE]
func (h *handler) ExitSearch(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := h.widgetID(c)
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}

	snapshot, err := h.uc.ExitSearch(ctx, id)
	if err != nil {
		h.l.Errorf(ctx, "uc.ExitSearch: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newSnapshotResp(snapshot))
}

// Refresh godoc
// @Summary     Refresh a widget
// @Description Refetches and re-renders the current period.
// @Tags        Calendar
// @Produce     json
// @Param       id path string true "Widget ID"
// @Success     200 {object} snapshotResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/calendar/widgets/{id}/refresh [POST]
func (h *handler) Refresh(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := h.widgetID(c)
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}

	snapshot, err := h.uc.Refresh(ctx, id)
	if err != nil {
		h.l.Errorf(ctx, "uc.Refresh: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newSnapshotResp(snapshot))
}

// ProposeSlot godoc
// @Summary     Propose an appointment slot
// @Description Returns a start/end skeleton for creating an appointment in the displayed period.
// @Tags        Calendar
// @Produce     json
// @Param       id path string true "Widget ID"
// @Success     200 {object} slotProposalResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/calendar/widgets/{id}/slot-proposals [POST]
func (h *handler) ProposeSlot(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := h.widgetID(c)
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}

	proposal, err := h.uc.ProposeSlot(ctx, id)
	if err != nil {
		h.l.Errorf(ctx, "uc.ProposeSlot: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newSlotProposalResp(proposal))
}

// ReportAction godoc
// @Summary     Report an appointment action
// @Description Forwards an edit or delete action on an appointment to the widget's listeners.
// @Tags        Calendar
// @Accept      json
// @Produce     json
// @Param       id   path string    true "Widget ID"
// @Param       body body actionReq true "Action payload"
// @Success     200 {object} response.Resp "OK"
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/calendar/widgets/{id}/actions [POST]
func (h *handler) ReportAction(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := h.widgetID(c)
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}

	req, err := h.processActionReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	appointment := &model.Appointment{Title: req.Title, Description: req.Description}
	if err := h.uc.ReportAction(ctx, id, schedule.EventKind(req.Action), appointment); err != nil {
		h.l.Errorf(ctx, "uc.ReportAction: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, nil)
}

// Delete godoc
// @Summary     Close a widget
// @Description Tears the widget down, cancelling any in-flight fetch.
// @Tags        Calendar
// @Produce     json
// @Param       id path string true "Widget ID"
// @Success     200 {object} response.Resp "OK"
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/calendar/widgets/{id} [DELETE]
func (h *handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := h.widgetID(c)
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}

	if err := h.uc.CloseWidget(ctx, id); err != nil {
		h.l.Errorf(ctx, "uc.CloseWidget: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, nil)
}
