package match

// Field identifies one scored content field of a crawled page.
type Field int

const (
	FieldTitle Field = iota
	FieldH1
	FieldURL
	FieldMetaDescription
	FieldH2
	FieldMetaKeywords

	fieldCount
)

// ScoredFields lists the fields in the order their scores are summed.
var ScoredFields = [fieldCount]Field{
	FieldTitle,
	FieldH1,
	FieldURL,
	FieldMetaDescription,
	FieldH2,
	FieldMetaKeywords,
}

func (f Field) String() string {
	switch f {
	case FieldTitle:
		return "title"
	case FieldH1:
		return "h1"
	case FieldURL:
		return "url"
	case FieldMetaDescription:
		return "meta_description"
	case FieldH2:
		return "h2"
	case FieldMetaKeywords:
		return "meta_keywords"
	}
	return "unknown"
}

// FieldWeights defines the importance multiplier of each field
type FieldWeights struct {
	Title           float64 // 5.0
	H1              float64 // 4.0
	URL             float64 // 3.0
	MetaDescription float64 // 2.0
	H2              float64 // 1.5
	MetaKeywords    float64 // 2.5
}

// DefaultWeights returns the fixed field weight table
func DefaultWeights() *FieldWeights {
	return &FieldWeights{
		Title:           5.0,
		H1:              4.0,
		URL:             3.0,
		MetaDescription: 2.0,
		H2:              1.5,
		MetaKeywords:    2.5,
	}
}

// Weight returns the multiplier for a field
func (w *FieldWeights) Weight(f Field) float64 {
	switch f {
	case FieldTitle:
		return w.Title
	case FieldH1:
		return w.H1
	case FieldURL:
		return w.URL
	case FieldMetaDescription:
		return w.MetaDescription
	case FieldH2:
		return w.H2
	case FieldMetaKeywords:
		return w.MetaKeywords
	}
	return 0
}

// AcceptThreshold is the minimum total score for a keyword to be mapped.
const AcceptThreshold = 5.0

// Quality is the banded label of a match score.
type Quality string

const (
	QualityExcellent Quality = "Excellent"
	QualityGood      Quality = "Good"
	QualityFair      Quality = "Fair"
	QualityWeak      Quality = "Weak"
	QualityNone      Quality = "None"
)

// MatchTiers defines the acceptance threshold and quality bands
type MatchTiers struct {
	Accept    float64 // >= 5.0
	Fair      float64 // >= 15
	Good      float64 // >= 25
	Excellent float64 // >= 40
}

// DefaultTiers returns the standard acceptance threshold and quality bands
func DefaultTiers() *MatchTiers {
	return &MatchTiers{
		Accept:    AcceptThreshold,
		Fair:      15,
		Good:      25,
		Excellent: 40,
	}
}

// Accepts reports whether a best score is high enough to map the keyword.
func (t *MatchTiers) Accepts(score float64) bool {
	return score >= t.Accept
}

// Quality bands an accepted score. Use QualityNone for unmatched keywords.
func (t *MatchTiers) Quality(score float64) Quality {
	switch {
	case score >= t.Excellent:
		return QualityExcellent
	case score >= t.Good:
		return QualityGood
	case score >= t.Fair:
		return QualityFair
	}
	return QualityWeak
}
