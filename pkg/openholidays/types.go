package openholidays

// apiHoliday is one entry of an Open Holidays API response.
type apiHoliday struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Name      []struct {
		Language string `json:"language"`
		Text     string `json:"text"`
	} `json:"name"`
}

// Holiday is a single holiday with its inclusive date range.
type Holiday struct {
	StartDate string // "2006-01-02"
	EndDate   string
	Title     string
}
