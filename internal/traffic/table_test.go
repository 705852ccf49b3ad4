package traffic

import (
	"bytes"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func view(session, page string, at time.Time, seconds int, bounce, converted bool) PageView {
	return PageView{
		Timestamp:  at,
		Date:       time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC),
		Hour:       at.Hour(),
		UserID:     "user_1",
		SessionID:  session,
		Page:       page,
		TimeOnPage: seconds,
		Source:     "Google",
		Device:     "Desktop",
		Country:    "United States",
		IsBounce:   bounce,
		Converted:  converted,
	}
}

func sampleTable() *Table {
	base := time.Date(2025, 3, 3, 10, 15, 0, 0, time.UTC)
	return NewTable([]PageView{
		view("s1", "/home", base, 0, true, false),
		view("s2", "/products", base, 40, false, false),
		view("s2", "/signup", base.Add(2*time.Minute), 25, false, true),
		view("s2", "/faq", base.Add(4*time.Minute), 0, false, true),
	})
}

func TestSessionsRollUp(t *testing.T) {
	sessions := sampleTable().Sessions()
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	s1, s2 := sessions[0], sessions[1]
	if s1.ID != "s1" || s1.Pages != 1 || !s1.IsBounce || s1.Converted {
		t.Errorf("unexpected s1: %+v", s1)
	}
	if s2.Pages != 3 || s2.Duration != 65 || !s2.Converted || s2.EntryConverted {
		t.Errorf("unexpected s2: %+v", s2)
	}
	if s2.ExitPage != "/faq" {
		t.Errorf("expected exit page /faq, got %s", s2.ExitPage)
	}
}

func TestSessionsExitPageUsesTimestampNotRowOrder(t *testing.T) {
	base := time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)
	table := NewTable([]PageView{
		view("s1", "/pricing", base.Add(2*time.Minute), 0, false, false),
		view("s1", "/home", base, 30, false, false),
	})
	sessions := table.Sessions()
	if sessions[0].ExitPage != "/pricing" {
		t.Errorf("expected /pricing, got %s", sessions[0].ExitPage)
	}
	if !sessions[0].Start.Equal(base) {
		t.Errorf("expected start %v, got %v", base, sessions[0].Start)
	}
}

func TestNilTable(t *testing.T) {
	var table *Table
	if !table.Empty() || table.Len() != 0 || table.Sessions() != nil {
		t.Fatal("nil table should behave as empty")
	}
	table.AddDayOfWeek()
}

func TestAddDayOfWeek(t *testing.T) {
	table := sampleTable()
	if table.HasDayOfWeek() {
		t.Fatal("day_of_week should start empty")
	}
	table.AddDayOfWeek()
	for _, row := range table.Rows() {
		if row.DayOfWeek != "Monday" {
			t.Errorf("expected Monday, got %q", row.DayOfWeek)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traffic.csv")
	table := sampleTable()
	table.AddDayOfWeek()
	if err := Save(path, table); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Len() != table.Len() {
		t.Fatalf("expected %d rows, got %d", table.Len(), loaded.Len())
	}
	for i, row := range loaded.Rows() {
		want := table.Rows()[i]
		if !row.Timestamp.Equal(want.Timestamp) || row.SessionID != want.SessionID ||
			row.Page != want.Page || row.Converted != want.Converted || row.DayOfWeek != want.DayOfWeek {
			t.Errorf("row %d: got %+v, want %+v", i, row, want)
		}
	}
}

func TestSaveEmptyTable(t *testing.T) {
	if err := Save(filepath.Join(t.TempDir(), "x.csv"), nil); err == nil {
		t.Fatal("expected error saving nil table")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.csv"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestReadErrors(t *testing.T) {
	header := strings.Join(Columns, ",")
	cases := []struct {
		name string
		body string
	}{
		{"header only", header + "\n"},
		{"missing column", "timestamp,date\n2025-03-03 10:00:00,2025-03-03\n"},
		{"bad hour", header + "\n2025-03-03 10:00:00,2025-03-03,x,u,s,/home,0,Google,Desktop,US,true,false\n"},
		{"bad bool", header + "\n2025-03-03 10:00:00,2025-03-03,10,u,s,/home,0,Google,Desktop,US,maybe,false\n"},
		{"bad timestamp", header + "\nyesterday,2025-03-03,10,u,s,/home,0,Google,Desktop,US,true,false\n"},
		{"negative time", header + "\n2025-03-03 10:00:00,2025-03-03,10,u,s,/home,-1,Google,Desktop,US,true,false\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Read(strings.NewReader(tc.body)); err == nil {
				t.Errorf("expected error")
			}
		})
	}
}

func TestReadAcceptsCapitalisedBooleans(t *testing.T) {
	body := strings.Join(Columns, ",") + "\n" +
		"2025-03-03 10:00:00,2025-03-03,10,user_1,s1,/home,0,Google,Desktop,United States,True,False\n"
	table, err := Read(strings.NewReader(body))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if row := table.Rows()[0]; !row.IsBounce || row.Converted {
		t.Errorf("unexpected booleans: %+v", row)
	}
}

func TestWriteOmitsEmptyDayOfWeek(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleTable()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if strings.Contains(buf.String(), "day_of_week") {
		t.Error("day_of_week column written before it was derived")
	}
}

func TestResolve(t *testing.T) {
	row := sampleTable().Rows()[1]
	cases := map[string]interface{}{
		"page":         "/products",
		"hour":         10,
		"time_on_page": 40,
		"is_bounce":    false,
		"day_of_week":  "Monday",
	}
	for field, want := range cases {
		got, ok := row.Resolve([]string{field})
		if !ok || got != want {
			t.Errorf("%s: got %v (%v), want %v", field, got, ok, want)
		}
	}
	if _, ok := row.Resolve([]string{"nope"}); ok {
		t.Error("unknown field resolved")
	}
}
