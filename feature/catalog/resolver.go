package catalog

import "strings"

// Config holds the pipeline and resolver tuning knobs.
type Config struct {
	// StripPrefixes is a comma separated list of identifier prefixes that
	// are insignificant for identity (e.g. "country_").
	StripPrefixes string `mapstructure:"strip_prefixes" default:"country_"`
	// MaxEditDistance allows fuzzy identifier matching up to the given
	// Levenshtein distance. Zero keeps matching exact (after
	// normalization), which is the safe default: a false merge is worse
	// than a missed one.
	MaxEditDistance int `mapstructure:"max_edit_distance" default:"0"`
	// Strict fails the run when any diagnostic was recorded.
	Strict bool `mapstructure:"strict" default:"false"`
}

// Resolver folds the identifier spelling variants of the different sources
// onto one canonical id per vehicle.
//
// The first source to introduce an identifier is authoritative for its
// canonical spelling; later sources normalize towards it. An identifier
// that cannot be matched becomes a new canonical id and the caller decides
// whether that is expected (structural source) or worth a diagnostic
// (secondary sources).
type Resolver struct {
	prefixes []string
	maxDist  int
	// byNorm maps normalized spellings to the canonical id that owns them.
	byNorm map[string]string
}

// NewResolver builds a resolver from the pipeline config.
func NewResolver(cfg Config) *Resolver {
	var prefixes []string
	for _, p := range strings.Split(cfg.StripPrefixes, ",") {
		if p = strings.TrimSpace(p); p != "" {
			prefixes = append(prefixes, p)
		}
	}
	return &Resolver{
		prefixes: prefixes,
		maxDist:  cfg.MaxEditDistance,
		byNorm:   make(map[string]string),
	}
}

// Resolve maps a raw identifier to its canonical id. known reports whether
// the id matched an identifier already introduced by an earlier call; when
// it did not, the normalized spelling is registered as a new canonical id.
func (r *Resolver) Resolve(rawID string) (canonical string, known bool) {
	norm := r.normalize(rawID)
	if c, ok := r.byNorm[norm]; ok {
		return c, true
	}
	if r.maxDist > 0 {
		if c, ok := r.fuzzyMatch(norm); ok {
			// remember the variant so the scan runs once per spelling
			r.byNorm[norm] = c
			return c, true
		}
	}
	r.byNorm[norm] = norm
	return norm, false
}

// Known reports whether the identifier resolves to an already registered
// canonical id without registering anything.
func (r *Resolver) Known(rawID string) (string, bool) {
	c, ok := r.byNorm[r.normalize(rawID)]
	return c, ok
}

func (r *Resolver) normalize(id string) string {
	s := strings.ToLower(strings.TrimSpace(id))
	for _, p := range r.prefixes {
		s = strings.TrimPrefix(s, p)
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, c := range s {
		switch c {
		case '-', '.', ' ':
			b.WriteByte('_')
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

// fuzzyMatch scans known spellings for the closest one within the
// configured edit distance. Ties go to the lexicographically smallest
// candidate so resolution stays deterministic.
func (r *Resolver) fuzzyMatch(norm string) (string, bool) {
	bestDist := r.maxDist + 1
	best := ""
	for existing, canonical := range r.byNorm {
		d := levenshtein(norm, existing)
		if d < bestDist || d == bestDist && best != "" && canonical < best {
			bestDist = d
			best = canonical
		}
	}
	if bestDist <= r.maxDist {
		return best, true
	}
	return "", false
}

// levenshtein computes the edit distance between two strings using the
// classic two row dynamic program.
func levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min3(cur[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
