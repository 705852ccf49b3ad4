package traffic

import "time"

// PageView is one row of the traffic table: a single page view inside a session.
type PageView struct {
	Timestamp  time.Time `json:"timestamp"`
	Date       time.Time `json:"date"`
	Hour       int       `json:"hour"`
	UserID     string    `json:"user_id"`
	SessionID  string    `json:"session_id"`
	Page       string    `json:"page"`
	TimeOnPage int       `json:"time_on_page"` // seconds, 0 on the session's last page
	Source     string    `json:"source"`
	Device     string    `json:"device"`
	Country    string    `json:"country"`
	IsBounce   bool      `json:"is_bounce"`
	Converted  bool      `json:"converted"`
	DayOfWeek  string    `json:"day_of_week,omitempty"` // derived, filled by AddDayOfWeek
}

// Resolve exposes row fields by column name for filter expressions.
func (p *PageView) Resolve(path []string) (interface{}, bool) {
	if len(path) != 1 {
		return nil, false
	}
	switch path[0] {
	case "timestamp":
		return p.Timestamp.Format(TimestampLayout), true
	case "date":
		return p.Date.Format(DateLayout), true
	case "hour":
		return p.Hour, true
	case "user_id":
		return p.UserID, true
	case "session_id":
		return p.SessionID, true
	case "page":
		return p.Page, true
	case "time_on_page":
		return p.TimeOnPage, true
	case "source":
		return p.Source, true
	case "device":
		return p.Device, true
	case "country":
		return p.Country, true
	case "is_bounce":
		return p.IsBounce, true
	case "converted":
		return p.Converted, true
	case "day_of_week":
		return p.Timestamp.Weekday().String(), true
	}
	return nil, false
}

// Session is the roll-up of all page views sharing a session id.
type Session struct {
	ID             string
	UserID         string
	Source         string
	Device         string
	Country        string
	Start          time.Time
	IsBounce       bool
	Converted      bool   // true if any row of the session converted
	EntryConverted bool   // converted flag of the first row
	Pages          int
	Duration       int    // sum of time_on_page
	ExitPage       string // page of the chronologically last row

	exitAt time.Time
}
