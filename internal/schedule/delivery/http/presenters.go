package http

import (
	"encoding/json"
	"time"

	"appointment-calendar/internal/model"
	"appointment-calendar/internal/schedule"
)

const dateFormat = "2006-01-02"

// --- Request DTOs ---

type createReq struct {
	ID         string `json:"id"          binding:"omitempty,max=128"`
	View       string `json:"view"        binding:"omitempty,max=32"`
	AnchorDate string `json:"anchor_date" binding:"omitempty"`
}

func (r createReq) toInput() (schedule.CreateWidgetInput, error) {
	input := schedule.CreateWidgetInput{
		ID:   r.ID,
		View: r.View,
	}
	if r.AnchorDate != "" {
		anchor, err := time.Parse(dateFormat, r.AnchorDate)
		if err != nil {
			return input, schedule.ErrInvalidDate
		}
		input.AnchorDate = anchor
	}
	return input, nil
}

type navigateReq struct {
	Step int `json:"step" binding:"required"`
}

type setViewReq struct {
	View string `json:"view" binding:"required,max=32"`
}

type setDateReq struct {
	Date string `json:"date" binding:"required"`
}

type searchReq struct {
	Query  string `json:"query"`
	Limit  int    `json:"limit"  binding:"omitempty,min=1,max=100"`
	Offset int    `json:"offset" binding:"omitempty,min=0"`
}

func (r searchReq) toInput() schedule.SearchInput {
	return schedule.SearchInput{
		Query:  r.Query,
		Limit:  r.Limit,
		Offset: r.Offset,
	}
}

type actionReq struct {
	Action      string `json:"action" binding:"required,oneof=edit delete"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// --- Response DTOs ---

type snapshotResp struct {
	WidgetID   string `json:"widget_id"`
	View       string `json:"view"`
	LastView   string `json:"last_view"`
	AnchorDate string `json:"anchor_date"`
	RangeStart string `json:"range_start"`
	RangeEnd   string `json:"range_end"`
	WeekNumber int    `json:"week_number"`

	SearchMode  bool            `json:"search_mode"`
	SearchQuery string          `json:"search_query,omitempty"`
	Pagination  *paginationResp `json:"pagination,omitempty"`
	SearchTotal int             `json:"search_total,omitempty"`

	Appointments []appointmentResp        `json:"appointments"`
	YearCounts   []yearCountResp          `json:"year_counts,omitempty"`
	Layout       map[string]dayLayoutResp `json:"layout,omitempty"`
	Holidays     []holidayResp            `json:"holidays,omitempty"`
}

type paginationResp struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

type appointmentResp struct {
	Start       string          `json:"start"`
	End         string          `json:"end"`
	AllDay      bool            `json:"all_day"`
	Title       string          `json:"title"`
	Color       string          `json:"color,omitempty"`
	Link        json.RawMessage `json:"link,omitempty"`
	Location    []string        `json:"location,omitempty"`
	Description string          `json:"description,omitempty"`
	Icon        string          `json:"icon,omitempty"`
	Editable    bool            `json:"editable"`
	Deleteable  bool            `json:"deleteable"`
	Extras      *extrasResp     `json:"extras,omitempty"`
}

type extrasResp struct {
	Color        string            `json:"color,omitempty"`
	Icon         string            `json:"icon,omitempty"`
	StartDate    string            `json:"start_date"`
	StartTime    string            `json:"start_time"`
	EndDate      string            `json:"end_date"`
	EndTime      string            `json:"end_time"`
	Duration     durationResp      `json:"duration"`
	DisplayDates []displayDateResp `json:"display_dates"`
	InADay       bool              `json:"in_a_day"`
	IsToday      bool              `json:"is_today"`
	IsNow        bool              `json:"is_now"`
}

type durationResp struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

type displayDateResp struct {
	Date           string `json:"date"`
	Weekday        string `json:"weekday"`
	TimesStart     string `json:"times_start,omitempty"`
	TimesEnd       string `json:"times_end,omitempty"`
	VisibleInWeek  bool   `json:"visible_in_week"`
	VisibleInMonth bool   `json:"visible_in_month"`
}

type yearCountResp struct {
	Date    string `json:"date"`
	Total   int    `json:"total"`
	Color   string `json:"color,omitempty"`
	IsToday bool   `json:"is_today"`
	IsNow   bool   `json:"is_now"`
}

type dayLayoutResp struct {
	Columns   [][]columnSlotResp `json:"columns,omitempty"`
	FullWidth []slotResp         `json:"full_width,omitempty"`
}

type slotResp struct {
	Title string `json:"title"`
	Start string `json:"start"`
	End   string `json:"end"`
}

type columnSlotResp struct {
	slotResp
	Column       int     `json:"column"`
	TotalColumns int     `json:"total_columns"`
	LeftPercent  float64 `json:"left_percent"`
	WidthPercent float64 `json:"width_percent"`
}

type holidayResp struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Title     string `json:"title"`
}

type slotProposalResp struct {
	Start string `json:"start"`
	End   string `json:"end"`
	View  string `json:"view"`
}

// --- Mapping ---

func (h *handler) newSnapshotResp(s schedule.Snapshot) snapshotResp {
	resp := snapshotResp{
		WidgetID:     s.WidgetID,
		View:         string(s.View),
		LastView:     string(s.LastView),
		AnchorDate:   s.AnchorDate.Format(dateFormat),
		RangeStart:   s.RangeStart.Format(dateFormat),
		RangeEnd:     s.RangeEnd.Format(dateFormat),
		WeekNumber:   s.WeekNumber,
		SearchMode:   s.SearchMode,
		SearchQuery:  s.SearchQuery,
		SearchTotal:  s.SearchTotal,
		Appointments: make([]appointmentResp, 0, len(s.Appointments)),
	}
	if s.Pagination != nil {
		resp.Pagination = &paginationResp{Limit: s.Pagination.Limit, Offset: s.Pagination.Offset}
	}

	for _, a := range s.Appointments {
		resp.Appointments = append(resp.Appointments, newAppointmentResp(a))
	}
	for _, yc := range s.YearCounts {
		resp.YearCounts = append(resp.YearCounts, yearCountResp{
			Date:    yc.Date.Format(dateFormat),
			Total:   yc.Total,
			Color:   yc.Color,
			IsToday: yc.IsToday,
			IsNow:   yc.IsNow,
		})
	}
	if len(s.Layout) > 0 {
		resp.Layout = make(map[string]dayLayoutResp, len(s.Layout))
		for weekday, day := range s.Layout {
			resp.Layout[weekday.String()] = newDayLayoutResp(day)
		}
	}
	for _, holiday := range s.Holidays {
		resp.Holidays = append(resp.Holidays, holidayResp{
			StartDate: holiday.StartDate.Format(dateFormat),
			EndDate:   holiday.EndDate.Format(dateFormat),
			Title:     holiday.Title,
		})
	}
	return resp
}

func newAppointmentResp(a *model.Appointment) appointmentResp {
	resp := appointmentResp{
		Start:       a.Start.Format(time.RFC3339),
		End:         a.End.Format(time.RFC3339),
		AllDay:      a.AllDay,
		Title:       a.Title,
		Color:       a.Color,
		Link:        a.Link,
		Location:    a.Location,
		Description: a.Description,
		Icon:        a.Icon,
		Editable:    a.Editable,
		Deleteable:  a.Deleteable,
	}
	if a.Extras != nil {
		resp.Extras = newExtrasResp(a.Extras)
	}
	return resp
}

func newExtrasResp(e *model.Extras) *extrasResp {
	resp := &extrasResp{
		Color:     e.Color,
		Icon:      e.Icon,
		StartDate: e.StartDate,
		StartTime: e.StartTime,
		EndDate:   e.EndDate,
		EndTime:   e.EndTime,
		Duration: durationResp{
			Days:    e.Duration.Days,
			Hours:   e.Duration.Hours,
			Minutes: e.Duration.Minutes,
			Seconds: e.Duration.Seconds,
		},
		DisplayDates: make([]displayDateResp, 0, len(e.DisplayDates)),
		InADay:       e.InADay,
		IsToday:      e.IsToday,
		IsNow:        e.IsNow,
	}
	for _, dd := range e.DisplayDates {
		resp.DisplayDates = append(resp.DisplayDates, displayDateResp{
			Date:           dd.Date.Format(dateFormat),
			Weekday:        dd.Weekday.String(),
			TimesStart:     dd.TimesStart,
			TimesEnd:       dd.TimesEnd,
			VisibleInWeek:  dd.VisibleInWeek,
			VisibleInMonth: dd.VisibleInMonth,
		})
	}
	return resp
}

func newDayLayoutResp(day *model.DayLayout) dayLayoutResp {
	resp := dayLayoutResp{}
	for _, column := range day.Columns {
		slots := make([]columnSlotResp, 0, len(column))
		for _, cs := range column {
			slots = append(slots, columnSlotResp{
				slotResp:     newSlotResp(cs.Slot),
				Column:       cs.Column,
				TotalColumns: cs.TotalColumns,
				LeftPercent:  cs.LeftPercent,
				WidthPercent: cs.WidthPercent,
			})
		}
		resp.Columns = append(resp.Columns, slots)
	}
	for _, slot := range day.FullWidth {
		resp.FullWidth = append(resp.FullWidth, newSlotResp(slot))
	}
	return resp
}

func newSlotResp(s model.Slot) slotResp {
	return slotResp{
		Title: s.Appointment.Title,
		Start: s.Start.Format(time.RFC3339),
		End:   s.End.Format(time.RFC3339),
	}
}

func (h *handler) newSlotProposalResp(p schedule.SlotProposal) slotProposalResp {
	return slotProposalResp{
		Start: p.Start.Format(time.RFC3339),
		End:   p.End.Format(time.RFC3339),
		View:  string(p.View),
	}
}
