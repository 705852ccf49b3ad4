// Package generator simulates website traffic: hourly visit volumes, sessions and
// the page views inside them, drawn from fixed probability tables.
//
// All randomness comes from one ChaCha8 stream seeded from Options.Seed, so a
// generator run is fully determined by (Seed, End, days).
package generator

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/gyaneshwarpardhi/trafficlab/internal/metrics"
	"github.com/gyaneshwarpardhi/trafficlab/internal/traffic"
)

// ErrInvalidDays is returned when Generate is asked for a non-positive day count.
var ErrInvalidDays = errors.New("days must be positive")

const (
	DefaultSeed       = 42
	DefaultBaseVisits = 20.0
	DefaultUserPool   = 1000
)

// Options configures a Generator. Zero BaseVisits and UserPool fall back to the
// defaults above, and a zero End means time.Now(). Seed is used as given.
type Options struct {
	Seed       int64
	End        time.Time
	BaseVisits float64
	UserPool   int
	// NormalizeConversions back-fills the converted flag over every row of a
	// converting session. When false, rows before the converting page keep false.
	NormalizeConversions bool
	Logger               *slog.Logger
}

// Generator produces synthetic traffic tables.
type Generator struct {
	opts   Options
	logger *slog.Logger
}

// New creates a Generator, applying defaults to opts.
func New(opts Options) *Generator {
	if opts.BaseVisits <= 0 {
		opts.BaseVisits = DefaultBaseVisits
	}
	if opts.UserPool <= 0 {
		opts.UserPool = DefaultUserPool
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{opts: opts, logger: logger}
}

// Generate simulates days calendar days ending at Options.End.
// Every call restarts the random stream, so repeated calls return equal tables.
func (g *Generator) Generate(days int) (*traffic.Table, error) {
	if days <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDays, days)
	}
	started := time.Now()

	end := g.opts.End
	if end.IsZero() {
		end = time.Now()
	}

	r := newRun(g.opts.Seed)
	var (
		rows     []traffic.PageView
		sessions int
	)
	for i := 0; i < days; i++ {
		d := end.AddDate(0, 0, i-days)
		weekend := d.Weekday() == time.Saturday || d.Weekday() == time.Sunday
		for hour := 0; hour < 24; hour++ {
			lambda := g.opts.BaseVisits * hourFactor(hour, weekend)
			visits := int(distuv.Poisson{Lambda: lambda, Src: r.src}.Rand())
			for v := 0; v < visits; v++ {
				start := time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, end.Location())
				session, err := r.session(start, g.opts.UserPool)
				if err != nil {
					return nil, fmt.Errorf("generate session: %w", err)
				}
				if g.opts.NormalizeConversions {
					normalizeConversion(session)
				}
				rows = append(rows, session...)
				sessions++
			}
		}
	}

	metrics.PageViewsGenerated.Add(float64(len(rows)))
	metrics.SessionsGenerated.Add(float64(sessions))
	metrics.GenerationDuration.Observe(time.Since(started).Seconds())
	g.logger.Info("generated page views",
		"pageviews", len(rows), "sessions", sessions, "days", days, "seed", g.opts.Seed)

	return traffic.NewTable(rows), nil
}

// run holds the random state of a single Generate call.
type run struct {
	src     *rand.ChaCha8
	rng     *rand.Rand
	source  distuv.Categorical
	device  distuv.Categorical
	country distuv.Categorical
	length  distuv.Categorical
	dwell   distuv.Gamma
}

func newRun(seed int64) *run {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], uint64(seed))
	src := rand.NewChaCha8(key)
	return &run{
		src:     src,
		rng:     rand.New(src),
		source:  distuv.NewCategorical(sources.Weights, src),
		device:  distuv.NewCategorical(devices.Weights, src),
		country: distuv.NewCategorical(countries.Weights, src),
		length:  distuv.NewCategorical(sessionLengths.Weights, src),
		// gonum parameterises Gamma by rate, the inverse of the scale.
		dwell: distuv.Gamma{Alpha: timeOnPageShape, Beta: 1 / timeOnPageScale, Src: src},
	}
}

func pick[T any](table weighted[T], dist distuv.Categorical) T {
	return table.Values[int(dist.Rand())]
}

// session simulates one visit starting in the hour of start.
func (r *run) session(start time.Time, userPool int) ([]traffic.PageView, error) {
	userID := fmt.Sprintf("user_%d", r.rng.IntN(userPool)+1)
	id, err := uuid.NewRandomFromReader(r.src)
	if err != nil {
		return nil, err
	}
	start = start.Add(time.Duration(r.rng.IntN(60)) * time.Minute)

	source := pick(sources, r.source)
	device := pick(devices, r.device)
	country := pick(countries, r.country)
	n := pick(sessionLengths, r.length)
	bounce := n == 1

	var first string
	if source != SourceDirect && r.rng.Float64() < homeLandingProb {
		first = PageHome
	} else {
		first = Pages[r.rng.IntN(len(Pages))]
	}

	rows := make([]traffic.PageView, 0, n)
	viewed := make([]string, 0, n)
	converted := false
	for i := 0; i < n; i++ {
		page := first
		if i > 0 {
			page = r.nextPage(viewed)
		}
		viewed = append(viewed, page)

		dwell := 0
		if i < n-1 {
			dwell = int(r.dwell.Rand())
		}
		if page == PageSignup && r.rng.Float64() < signupConvertProb {
			converted = true
		}

		ts := start.Add(time.Duration(i*pageInterval) * time.Minute)
		rows = append(rows, traffic.PageView{
			Timestamp:  ts,
			Date:       time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location()),
			Hour:       ts.Hour(),
			UserID:     userID,
			SessionID:  id.String(),
			Page:       page,
			TimeOnPage: dwell,
			Source:     source,
			Device:     device,
			Country:    country,
			IsBounce:   bounce,
			Converted:  converted,
		})
	}
	return rows, nil
}

// nextPage picks the page following the last viewed one.
func (r *run) nextPage(viewed []string) string {
	switch prev := viewed[len(viewed)-1]; {
	case prev == PageProducts && r.rng.Float64() < productsToSignup:
		return PageSignup
	case prev == PagePricing && r.rng.Float64() < pricingToSignup:
		return PageSignup
	}
	candidates := nextCandidates(viewed)
	return candidates[r.rng.IntN(len(candidates))]
}

// nextCandidates returns the first maxNextCandidates catalog pages not yet
// viewed, or the whole catalog when every page has been seen.
func nextCandidates(viewed []string) []string {
	seen := make(map[string]bool, len(viewed))
	for _, p := range viewed {
		seen[p] = true
	}
	out := make([]string, 0, maxNextCandidates)
	for _, p := range Pages {
		if len(out) == maxNextCandidates {
			break
		}
		if !seen[p] {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return Pages
	}
	return out
}

func normalizeConversion(rows []traffic.PageView) {
	if len(rows) == 0 || !rows[len(rows)-1].Converted {
		return
	}
	for i := range rows {
		rows[i].Converted = true
	}
}
