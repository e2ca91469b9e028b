package match

// Candidate is the best-scoring record for a keyword.
type Candidate struct {
	URL             string
	Score           float64
	Title           string
	H1              string
	MetaDescription string
	Record          Record
}

// Selection is the outcome of scanning every record for one keyword.
type Selection struct {
	Keyword string
	// Best is the leading record, nil when no record scored above 0.
	Best *Candidate
	// Accepted is true when Best clears the acceptance threshold.
	Accepted bool
}

// Entry converts a selection into its Mapping Store entry.
func (s Selection) Entry() Entry {
	if !s.Accepted {
		return Unmatched()
	}
	return Matched(s.Best)
}

// BestScore returns the leading score, 0 when nothing matched.
func (s Selection) BestScore() float64 {
	if s.Best == nil {
		return 0
	}
	return s.Best.Score
}

// VisitFunc observes every (record, score) pair during a scan.
type VisitFunc func(p *Prepared, score float64, details []FieldScore)

// SelectBest scans records in order and keeps the first record reaching the
// highest score. Later records with an equal score never replace the leader.
func (s *Scorer) SelectBest(keyword string, records []Prepared) Selection {
	return s.SelectBestFunc(keyword, records, nil)
}

// SelectBestFunc is SelectBest with a visitor called for each record.
func (s *Scorer) SelectBestFunc(keyword string, records []Prepared, visit VisitFunc) Selection {
	m := NewKeywordMatcher(keyword)
	sel := Selection{Keyword: keyword}

	var bestScore float64
	for i := range records {
		p := &records[i]

		var score float64
		var details []FieldScore
		if visit != nil {
			score, details = s.ExplainRecord(m, p)
			visit(p, score, details)
		} else {
			score = s.ScoreRecord(m, p)
		}

		if score > bestScore {
			bestScore = score
			sel.Best = newCandidate(p, score)
		}
	}

	sel.Accepted = sel.Best != nil && s.tiers.Accepts(bestScore)
	return sel
}

// SelectBest picks the best record for a keyword with the default scorer.
func SelectBest(keyword string, records []Prepared) Selection {
	return NewScorer().SelectBest(keyword, records)
}

func newCandidate(p *Prepared, score float64) *Candidate {
	return &Candidate{
		URL:             p.URL,
		Score:           score,
		Title:           p.Record.Get(ColumnTitle),
		H1:              p.Record.Get(ColumnH1),
		MetaDescription: p.Record.Get(ColumnMetaDescription),
		Record:          p.Record,
	}
}
