package model

import "time"

// Slot is one time-bounded piece of an appointment on a concrete day.
type Slot struct {
	Appointment *Appointment
	Start       time.Time
	End         time.Time
}

// ColumnSlot is a slot placed into a column with its derived geometry.
// Widths and offsets are fractions of the day column; pixel conversion is the
// renderer's job.
type ColumnSlot struct {
	Slot
	Column       int
	TotalColumns int
	LeftPercent  float64
	WidthPercent float64
}

// DayLayout is the overlap-free arrangement for a single weekday.
type DayLayout struct {
	Columns   [][]ColumnSlot
	FullWidth []Slot
}

// Layout maps each weekday in the displayed range to its arrangement.
// Ephemeral: recomputed on every render pass, never persisted.
type Layout map[time.Weekday]*DayLayout
