package scoring

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"github.com/linkscope/linkscope/internal/page"
)

// Intrinsic score bounds. Scores start from a neutral base and move up or
// down with URL structure quality and anchor-text signals.
const (
	intrinsicMin  = 0.0
	intrinsicMax  = 10.0
	intrinsicBase = 5.0
)

// IntrinsicScorer rates a candidate from signals the parent page already
// provides: path cleanliness, token quality, nesting depth, anchor-text
// descriptiveness, and optional keyword hits. No network access is needed.
type IntrinsicScorer struct {
	// Keywords earn a bonus when found in the URL path or anchor text.
	Keywords []string
}

// NewIntrinsicScorer creates an intrinsic scorer with the given keywords.
func NewIntrinsicScorer(keywords []string) *IntrinsicScorer {
	lowered := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			lowered = append(lowered, k)
		}
	}
	return &IntrinsicScorer{Keywords: lowered}
}

// Score implements Scorer. The result is clamped to [0, 10].
func (s *IntrinsicScorer) Score(c *page.Candidate) (float64, error) {
	u, err := url.Parse(c.URL)
	if err != nil {
		return 0, fmt.Errorf("unparseable candidate URL: %w", err)
	}

	score := intrinsicBase

	segments := splitPath(u.Path)

	// Deeply nested paths are usually navigation scaffolding.
	if n := len(segments); n > 3 {
		score -= 0.5 * float64(n-3)
	}

	for _, seg := range segments {
		if looksRandom(seg) {
			score -= 1.0
		}
	}

	// Query-string heavy URLs tend to be session or tracking noise.
	if q := u.Query(); len(q) > 2 {
		score -= 0.5 * float64(len(q)-2)
	}

	score += anchorBonus(c.AnchorText)

	haystack := strings.ToLower(u.Path + " " + c.AnchorText)
	for _, kw := range s.Keywords {
		if strings.Contains(haystack, kw) {
			score += 1.0
		}
	}

	return clamp(score, intrinsicMin, intrinsicMax), nil
}

// anchorBonus rewards descriptive anchor text and penalizes its absence.
func anchorBonus(anchor string) float64 {
	words := strings.Fields(anchor)
	switch {
	case len(words) == 0:
		return -1.0
	case len(words) >= 2 && len(words) <= 8:
		return 1.5
	case len(words) == 1 && len(anchor) > 3:
		return 0.5
	default:
		return 0
	}
}

// looksRandom flags path segments that resemble machine-generated tokens:
// long strings with many digits or no vowels.
func looksRandom(seg string) bool {
	if len(seg) < 16 {
		return false
	}

	var digits, vowels int
	for _, r := range seg {
		if unicode.IsDigit(r) {
			digits++
		}
		if strings.ContainsRune("aeiouAEIOU", r) {
			vowels++
		}
	}

	if digits > len(seg)/2 {
		return true
	}
	return vowels == 0
}

func splitPath(p string) []string {
	var out []string
	for _, seg := range strings.Split(p, "/") {
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
