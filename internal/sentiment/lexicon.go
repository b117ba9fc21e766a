package sentiment

import (
	"context"
	"math"
	"strings"
	"unicode"

	"oslobors-bot/internal/interfaces"
	"oslobors-bot/internal/types"
)

// LexiconScorer is an offline TextScorer over Norwegian financial word
// lists. It needs no network or credentials and backs runs where the
// hosted model is unavailable by choice.
type LexiconScorer struct {
	positive map[string]bool
	negative map[string]bool
}

var _ interfaces.TextScorer = (*LexiconScorer)(nil)

func NewLexiconScorer() *LexiconScorer {
	return &LexiconScorer{
		positive: loadPositiveWords(),
		negative: loadNegativeWords(),
	}
}

// Score counts positive and negative vocabulary and maps the net ratio to
// a judgment. Texts with no sentiment-bearing words are Other.
func (s *LexiconScorer) Score(ctx context.Context, text string) (types.Judgment, error) {
	words := tokenize(strings.ToLower(text))
	if len(words) == 0 {
		return types.Judgment{Polarity: types.PolarityOther}, nil
	}

	var pos, neg int
	for _, w := range words {
		if s.positive[w] {
			pos++
		}
		if s.negative[w] {
			neg++
		}
	}
	if pos == neg {
		return types.Judgment{Polarity: types.PolarityOther}, nil
	}

	// Headlines are short; one loaded word in a ten-word title is a strong
	// signal, so the net ratio is amplified before capping.
	net := float64(pos-neg) / float64(len(words))
	confidence := math.Min(math.Abs(net)*5, 1.0)

	polarity := types.PolarityPositive
	if net < 0 {
		polarity = types.PolarityNegative
	}
	return types.Judgment{Polarity: polarity, Confidence: confidence}, nil
}

// tokenize splits text into letter/digit runs.
func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

func loadPositiveWords() map[string]bool {
	words := []string{
		"oppgang", "opptur", "stiger", "steg", "klatrer", "klatret",
		"rekord", "rekordhøy", "løft", "løfter", "vekst", "gevinst",
		"styrkes", "styrket", "optimisme", "optimistisk", "grønt",
		"rally", "børsrally", "børsoppgang", "kursoppgang", "oppsving",
		"bedring", "lysere", "medvind", "hopper", "hoppet",
	}
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

func loadNegativeWords() map[string]bool {
	words := []string{
		"fall", "faller", "falt", "ras", "raser", "rast", "stuper",
		"stupte", "krakk", "børskrasj", "børskollaps", "kollaps",
		"nedgang", "nedtur", "svekkes", "svekket", "tap", "taper",
		"frykt", "frykter", "uro", "børsuro", "krise", "rødt",
		"kursfall", "kursras", "børsfall", "advarer", "varsku",
		"konkurs", "nedbemanner", "kutter",
	}
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}
