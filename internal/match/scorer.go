package match

import (
	ahocorasick "github.com/cloudflare/ahocorasick"

	"github.com/keyword-mapper/internal/normalize"
)

// KeywordMatcher counts how many words of one keyword occur inside field text.
// Containment is a raw substring test, so "art" is found in "start".
// A KeywordMatcher is not safe for concurrent use.
type KeywordMatcher struct {
	keyword  string
	words    []string
	distinct []string
	counts   []int // occurrences of distinct[i] in words
	matcher  *ahocorasick.Matcher
}

// NewKeywordMatcher normalizes a keyword and builds its matcher.
func NewKeywordMatcher(keyword string) *KeywordMatcher {
	m := newWordMatcher(normalize.Words(keyword))
	m.keyword = keyword
	return m
}

func newWordMatcher(words []string) *KeywordMatcher {
	m := &KeywordMatcher{words: words}

	index := make(map[string]int, len(words))
	for _, w := range words {
		if i, ok := index[w]; ok {
			m.counts[i]++
			continue
		}
		index[w] = len(m.distinct)
		m.distinct = append(m.distinct, w)
		m.counts = append(m.counts, 1)
	}

	if len(m.distinct) > 0 {
		m.matcher = ahocorasick.NewStringMatcher(m.distinct)
	}
	return m
}

// Keyword returns the keyword as given.
func (m *KeywordMatcher) Keyword() string {
	return m.keyword
}

// Words returns the normalized keyword words.
func (m *KeywordMatcher) Words() []string {
	return m.words
}

// MatchCount returns the number of keyword words, counted with multiplicity,
// that appear in text.
func (m *KeywordMatcher) MatchCount(text string) int {
	if m.matcher == nil || text == "" {
		return 0
	}

	count := 0
	for _, hit := range m.matcher.Match([]byte(text)) {
		if hit < len(m.counts) {
			count += m.counts[hit]
		}
	}
	return count
}

// ScoreField returns (matched words / keyword words) * 10 * weight for one field.
func (m *KeywordMatcher) ScoreField(text string, weight float64) float64 {
	if len(m.words) == 0 || text == "" {
		return 0
	}
	matches := m.MatchCount(text)
	if matches == 0 {
		return 0
	}
	fieldScore := float64(matches) / float64(len(m.words)) * 10.0
	return fieldScore * weight
}

// ScoreField scores already-normalized field text against keyword words.
func ScoreField(keywordWords []string, fieldText string, weight float64) float64 {
	return newWordMatcher(keywordWords).ScoreField(fieldText, weight)
}

// FieldScore explains the contribution of one field to a record score.
type FieldScore struct {
	Field   Field
	Matches int
	Words   int
	Score   float64
}

// Scorer sums weighted field scores and applies the acceptance threshold.
type Scorer struct {
	weights *FieldWeights
	tiers   *MatchTiers
}

// NewScorer creates a scorer with the default weights and tiers
func NewScorer() *Scorer {
	return &Scorer{
		weights: DefaultWeights(),
		tiers:   DefaultTiers(),
	}
}

// NewScorerWithConfig creates a scorer with custom weights and tiers
func NewScorerWithConfig(weights *FieldWeights, tiers *MatchTiers) *Scorer {
	if weights == nil {
		weights = DefaultWeights()
	}
	if tiers == nil {
		tiers = DefaultTiers()
	}
	return &Scorer{
		weights: weights,
		tiers:   tiers,
	}
}

// Tiers returns the thresholds used by the scorer.
func (s *Scorer) Tiers() *MatchTiers {
	return s.tiers
}

// ScoreRecord computes the total score of one record for a keyword. Fields
// are summed in ScoredFields order; empty fields are skipped. A record that
// failed extraction scores 0.
func (s *Scorer) ScoreRecord(m *KeywordMatcher, p *Prepared) float64 {
	total, _ := s.scoreRecord(m, p, false)
	return total
}

// ExplainRecord is ScoreRecord with per-field details for fields that matched.
func (s *Scorer) ExplainRecord(m *KeywordMatcher, p *Prepared) (float64, []FieldScore) {
	return s.scoreRecord(m, p, true)
}

func (s *Scorer) scoreRecord(m *KeywordMatcher, p *Prepared, explain bool) (float64, []FieldScore) {
	if p.Err != nil || len(m.words) == 0 {
		return 0, nil
	}

	var total float64
	var details []FieldScore
	for _, f := range ScoredFields {
		text := p.Text(f)
		if text == "" {
			continue
		}
		matches := m.MatchCount(text)
		if matches == 0 {
			continue
		}
		weighted := float64(matches) / float64(len(m.words)) * 10.0 * s.weights.Weight(f)
		total += weighted
		if explain {
			details = append(details, FieldScore{Field: f, Matches: matches, Words: len(m.words), Score: weighted})
		}
	}
	return total, details
}
