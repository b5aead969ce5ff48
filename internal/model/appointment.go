package model

import (
	"encoding/json"
	"time"
)

// RawAppointment is an appointment record exactly as a data source delivers
// it. Start and end are datetime strings ("2024-05-01 14:00" or ISO form);
// normalization parses them.
type RawAppointment struct {
	Start       string          `json:"start"`
	End         string          `json:"end"`
	AllDay      bool            `json:"allDay"`
	Title       string          `json:"title"`
	Color       string          `json:"color,omitempty"`
	Link        json.RawMessage `json:"link,omitempty"`
	Location    StringList      `json:"location,omitempty"`
	Description string          `json:"description,omitempty"`
	Icon        string          `json:"icon,omitempty"`
	Editable    bool            `json:"editable,omitempty"`
	Deleteable  bool            `json:"deleteable,omitempty"`
}

// StringList accepts either a single JSON string or an array of strings.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler for StringList.
func (s *StringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = StringList{single}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*s = StringList(list)
	return nil
}

// Appointment is a normalized record. Invariant: Start <= End; for all-day
// appointments Start is local midnight and End is 23:59:59 of the end day.
type Appointment struct {
	Start       time.Time
	End         time.Time
	AllDay      bool
	Title       string
	Color       string
	Link        json.RawMessage
	Location    []string
	Description string
	Icon        string
	Editable    bool
	Deleteable  bool

	// Extras is recomputed wholesale on every fetch cycle, never mutated
	// incrementally.
	Extras *Extras
}

// Extras carries derived presentation metadata for one appointment.
type Extras struct {
	Color        string
	Icon         string
	StartDate    string // "2006-01-02"
	StartTime    string // "15:04:05", "00:00:00" for all-day
	EndDate      string
	EndTime      string
	Duration     Duration
	DisplayDates []DisplayDate
	InADay       bool
	IsToday      bool
	IsNow        bool
}

// Duration is an appointment's length split into calendar units. For all-day
// appointments only Days is set (calendar days, inclusive).
type Duration struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// DisplayDate is the projection of an appointment onto a single calendar day.
// An appointment spanning N days produces exactly N entries, date ascending.
type DisplayDate struct {
	Date    time.Time // local midnight of the projected day
	Weekday time.Weekday

	// Concrete slot bounds on this day, used by the layout engine.
	SlotStart time.Time
	SlotEnd   time.Time

	// Time-of-day labels; empty for all-day appointments.
	TimesStart string
	TimesEnd   string

	VisibleInWeek  bool
	VisibleInMonth bool
}

// RawYearCount is a year-view aggregate record as delivered by a data source.
type RawYearCount struct {
	Date  string      `json:"date"`
	Total json.Number `json:"total"`
}

// YearCount is a validated per-day appointment count for the year view.
type YearCount struct {
	Date    time.Time
	Total   int
	Color   string
	IsToday bool
	IsNow   bool // same calendar year as now
}

// Holiday is a public or school holiday drawn alongside appointments.
type Holiday struct {
	StartDate time.Time
	EndDate   time.Time
	Title     string
}
