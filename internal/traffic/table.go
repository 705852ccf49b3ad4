package traffic

// Table owns the page-view rows produced by a generator run or a CSV load.
// It is not safe for concurrent use.
type Table struct {
	rows []PageView
}

// NewTable wraps rows in a Table. The slice is retained, not copied.
func NewTable(rows []PageView) *Table {
	return &Table{rows: rows}
}

// Len returns the number of page views. A nil table has none.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Rows returns the underlying rows.
func (t *Table) Rows() []PageView {
	if t == nil {
		return nil
	}
	return t.rows
}

// Empty reports whether the table is unset or has no rows.
func (t *Table) Empty() bool {
	return t.Len() == 0
}

// Sessions rolls the rows up per session id, in order of first appearance.
// Session attributes come from the first row; Converted is OR-ed over all rows.
func (t *Table) Sessions() []Session {
	if t.Empty() {
		return nil
	}
	index := make(map[string]int)
	var sessions []Session
	for _, row := range t.rows {
		i, ok := index[row.SessionID]
		if !ok {
			i = len(sessions)
			index[row.SessionID] = i
			sessions = append(sessions, Session{
				ID:             row.SessionID,
				UserID:         row.UserID,
				Source:         row.Source,
				Device:         row.Device,
				Country:        row.Country,
				Start:          row.Timestamp,
				IsBounce:       row.IsBounce,
				EntryConverted: row.Converted,
				ExitPage:       row.Page,
				exitAt:         row.Timestamp,
			})
		}
		s := &sessions[i]
		s.Pages++
		s.Duration += row.TimeOnPage
		if row.Converted {
			s.Converted = true
		}
		if row.Timestamp.Before(s.Start) {
			s.Start = row.Timestamp
		}
		// Later rows win ties so equal timestamps resolve to table order.
		if !row.Timestamp.Before(s.exitAt) {
			s.exitAt = row.Timestamp
			s.ExitPage = row.Page
		}
	}
	return sessions
}

// AddDayOfWeek fills the derived day_of_week column in place.
func (t *Table) AddDayOfWeek() {
	if t == nil {
		return
	}
	for i := range t.rows {
		t.rows[i].DayOfWeek = t.rows[i].Timestamp.Weekday().String()
	}
}

// HasDayOfWeek reports whether the derived column has been filled.
func (t *Table) HasDayOfWeek() bool {
	return !t.Empty() && t.rows[0].DayOfWeek != ""
}
