package report

// ChartKind selects how a series is drawn.
type ChartKind string

const (
	KindBar  ChartKind = "bar"
	KindLine ChartKind = "line"
)

// Point is one category or date on the x axis and its value.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Series is what the chart renderer consumes: named points plus chart metadata.
type Series struct {
	Name   string    `json:"name"`
	Title  string    `json:"title"`
	XLabel string    `json:"x_label"`
	YLabel string    `json:"y_label"`
	Kind   ChartKind `json:"kind"`
	Points []Point   `json:"points"`
}

// Labels returns the x-axis labels in order.
func (s *Series) Labels() []string {
	out := make([]string, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Label
	}
	return out
}

// Values returns the y values in order.
func (s *Series) Values() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Value
	}
	return out
}

// Top returns a copy of the series truncated to its first n points.
func (s *Series) Top(n int) *Series {
	c := *s
	if n >= 0 && n < len(c.Points) {
		c.Points = append([]Point(nil), c.Points[:n]...)
	}
	return &c
}
