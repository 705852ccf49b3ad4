package generator

// weighted is a categorical table: Values[i] is drawn with probability Weights[i].
type weighted[T any] struct {
	Values  []T
	Weights []float64
}

// Pages is the simulated site map.
var Pages = []string{
	"/home", "/products", "/about", "/contact", "/blog",
	"/pricing", "/signup", "/login", "/support", "/faq",
}

const (
	PageHome     = "/home"
	PageProducts = "/products"
	PagePricing  = "/pricing"
	PageSignup   = "/signup"

	SourceDirect = "Direct"
)

var sources = weighted[string]{
	Values: []string{
		"Google", "Direct", "Facebook", "Twitter", "Email",
		"LinkedIn", "Bing", "Instagram", "Referral", "Other",
	},
	Weights: []float64{0.40, 0.20, 0.15, 0.05, 0.05, 0.05, 0.03, 0.03, 0.02, 0.02},
}

var devices = weighted[string]{
	Values:  []string{"Desktop", "Mobile", "Tablet"},
	Weights: []float64{0.55, 0.35, 0.10},
}

var countries = weighted[string]{
	Values: []string{
		"United States", "United Kingdom", "Canada", "Germany", "France",
		"Australia", "India", "Japan", "Brazil", "Mexico",
	},
	Weights: []float64{0.45, 0.15, 0.10, 0.05, 0.05, 0.05, 0.05, 0.05, 0.03, 0.02},
}

var sessionLengths = weighted[int]{
	Values:  []int{1, 2, 3, 4, 5, 6},
	Weights: []float64{0.30, 0.25, 0.20, 0.15, 0.05, 0.05},
}

const (
	homeLandingProb     = 0.7
	productsToSignup    = 0.4
	pricingToSignup     = 0.3
	signupConvertProb   = 0.2
	maxNextCandidates   = 5
	timeOnPageShape     = 2.0
	timeOnPageScale     = 30.0
	pageInterval        = 2 // minutes between page views in a session
	businessHoursFactor = 1.5
	eveningFactor       = 1.2
	offHoursFactor      = 0.5
	weekendFactor       = 0.7
)

// hourFactor is the expected-visit multiplier for an hour of a day.
func hourFactor(hour int, weekend bool) float64 {
	var f float64
	switch {
	case hour >= 9 && hour <= 17:
		f = businessHoursFactor
	case hour >= 18 && hour <= 22:
		f = eveningFactor
	default:
		f = offHoursFactor
	}
	if weekend {
		f *= weekendFactor
	}
	return f
}
