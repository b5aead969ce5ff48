package daterange

// View identifies the calendar period a widget is displaying.
type View string

const (
	ViewDay    View = "day"
	ViewWeek   View = "week"
	ViewMonth  View = "month"
	ViewYear   View = "year"
	ViewSearch View = "search"
)

// ParseView maps a view name to a View. Unknown names fall back to month;
// the second return value tells the caller whether a fallback happened so it
// can log it (an unknown view is a policy fallback, not an error).
func ParseView(name string) (View, bool) {
	switch View(name) {
	case ViewDay, ViewWeek, ViewMonth, ViewYear, ViewSearch:
		return View(name), true
	default:
		return ViewMonth, false
	}
}

// DateViews returns the navigable date views, in display order.
func DateViews() []View {
	return []View{ViewDay, ViewWeek, ViewMonth, ViewYear}
}
