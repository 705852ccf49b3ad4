package traffic

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	TimestampLayout = "2006-01-02 15:04:05"
	DateLayout      = "2006-01-02"
)

// Columns is the persisted column order. day_of_week is written only when filled.
var Columns = []string{
	"timestamp", "date", "hour", "user_id", "session_id", "page", "time_on_page",
	"source", "device", "country", "is_bounce", "converted",
}

const dayOfWeekColumn = "day_of_week"

// Save writes the table to path as CSV with a header row.
func Save(path string, t *Table) error {
	if t.Empty() {
		return errors.New("no data to save")
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	if err := Write(file, t); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return file.Close()
}

// Write encodes the table as CSV to w.
func Write(w io.Writer, t *Table) error {
	writer := csv.NewWriter(w)
	withDay := t.HasDayOfWeek()

	header := append([]string(nil), Columns...)
	if withDay {
		header = append(header, dayOfWeekColumn)
	}
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, row := range t.Rows() {
		record := []string{
			row.Timestamp.Format(TimestampLayout),
			row.Date.Format(DateLayout),
			strconv.Itoa(row.Hour),
			row.UserID,
			row.SessionID,
			row.Page,
			strconv.Itoa(row.TimeOnPage),
			row.Source,
			row.Device,
			row.Country,
			strconv.FormatBool(row.IsBounce),
			strconv.FormatBool(row.Converted),
		}
		if withDay {
			record = append(record, row.DayOfWeek)
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// Load reads a table previously written by Save.
func Load(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	t, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return t, nil
}

// Read decodes CSV rows from r. Every column except day_of_week is required.
func Read(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, errors.New("CSV must include header and at least one row")
	}

	idx := map[string]int{}
	for i, name := range records[0] {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, key := range Columns {
		if _, ok := idx[key]; !ok {
			return nil, fmt.Errorf("missing required column: %s", key)
		}
	}

	rows := make([]PageView, 0, len(records)-1)
	for rowIndex, record := range records[1:] {
		if len(record) == 0 {
			continue
		}
		row, err := parseRow(record, idx)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowIndex+2, err)
		}
		rows = append(rows, row)
	}
	return NewTable(rows), nil
}

func parseRow(record []string, idx map[string]int) (PageView, error) {
	get := func(key string) string {
		i, ok := idx[key]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var (
		row PageView
		err error
	)
	if row.Timestamp, err = parseTimestamp(get("timestamp")); err != nil {
		return row, fmt.Errorf("timestamp: %w", err)
	}
	if row.Date, err = parseDate(get("date")); err != nil {
		return row, fmt.Errorf("date: %w", err)
	}
	if row.Hour, err = strconv.Atoi(get("hour")); err != nil {
		return row, fmt.Errorf("hour: %w", err)
	}
	if row.Hour < 0 || row.Hour > 23 {
		return row, fmt.Errorf("hour %d out of range", row.Hour)
	}
	if row.TimeOnPage, err = strconv.Atoi(get("time_on_page")); err != nil {
		return row, fmt.Errorf("time_on_page: %w", err)
	}
	if row.TimeOnPage < 0 {
		return row, fmt.Errorf("time_on_page %d is negative", row.TimeOnPage)
	}
	if row.IsBounce, err = strconv.ParseBool(get("is_bounce")); err != nil {
		return row, fmt.Errorf("is_bounce: %w", err)
	}
	if row.Converted, err = strconv.ParseBool(get("converted")); err != nil {
		return row, fmt.Errorf("converted: %w", err)
	}
	row.UserID = get("user_id")
	row.SessionID = get("session_id")
	if row.SessionID == "" {
		return row, errors.New("session_id is empty")
	}
	row.Page = get("page")
	row.Source = get("source")
	row.Device = get("device")
	row.Country = get("country")
	row.DayOfWeek = get(dayOfWeekColumn)
	return row, nil
}

var timestampLayouts = []string{TimestampLayout, "2006-01-02 15:04:05.999999", time.RFC3339Nano}

func parseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported timestamp %q", value)
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, value); err == nil {
		return t, nil
	}
	t, err := parseTimestamp(value)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()), nil
}
