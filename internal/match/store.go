package match

// Entry is the final state of a keyword: a matched Candidate or unmatched.
type Entry struct {
	Candidate *Candidate
}

// Matched returns an accepted entry.
func Matched(c *Candidate) Entry {
	return Entry{Candidate: c}
}

// Unmatched returns the entry of a keyword without an accepted match.
func Unmatched() Entry {
	return Entry{}
}

// IsMatched reports whether the keyword was accepted.
func (e Entry) IsMatched() bool {
	return e.Candidate != nil
}

// KeywordEntry pairs a keyword with its entry.
type KeywordEntry struct {
	Keyword string
	Entry   Entry
}

// URLGroup lists the keywords whose accepted match points at one URL.
type URLGroup struct {
	URL      string
	Keywords []string
}

// Store is the Mapping Store: one entry per keyword, iterable in input order.
// Writing a keyword again replaces its entry but keeps its first position.
type Store struct {
	lines   []string
	order   []string
	entries map[string]Entry
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{entries: make(map[string]Entry)}
}

// Set records the entry for one keyword line.
func (s *Store) Set(keyword string, e Entry) {
	if _, ok := s.entries[keyword]; !ok {
		s.order = append(s.order, keyword)
	}
	s.lines = append(s.lines, keyword)
	s.entries[keyword] = e
}

// Get looks up the current entry of a keyword.
func (s *Store) Get(keyword string) (Entry, bool) {
	e, ok := s.entries[keyword]
	return e, ok
}

// Keywords returns every keyword line in input order, duplicates included.
func (s *Store) Keywords() []string {
	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out
}

// Lines is the number of keyword lines written.
func (s *Store) Lines() int {
	return len(s.lines)
}

// Entries returns each distinct keyword once, in first-seen order.
func (s *Store) Entries() []KeywordEntry {
	out := make([]KeywordEntry, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, KeywordEntry{Keyword: k, Entry: s.entries[k]})
	}
	return out
}

// AcceptedCount counts distinct keywords with an accepted match.
func (s *Store) AcceptedCount() int {
	n := 0
	for _, k := range s.order {
		if s.entries[k].IsMatched() {
			n++
		}
	}
	return n
}

// URLGroups groups accepted keywords by URL, URLs in first-seen order.
func (s *Store) URLGroups() []URLGroup {
	index := make(map[string]int)
	var groups []URLGroup
	for _, k := range s.order {
		e := s.entries[k]
		if !e.IsMatched() {
			continue
		}
		url := e.Candidate.URL
		i, ok := index[url]
		if !ok {
			i = len(groups)
			index[url] = i
			groups = append(groups, URLGroup{URL: url})
		}
		groups[i].Keywords = append(groups[i].Keywords, k)
	}
	return groups
}

// URLKeywords maps each matched URL to the keywords that chose it.
func (s *Store) URLKeywords() map[string][]string {
	out := make(map[string][]string)
	for _, g := range s.URLGroups() {
		out[g.URL] = g.Keywords
	}
	return out
}

// Scores returns the scores of accepted entries in first-seen order.
func (s *Store) Scores() []float64 {
	var scores []float64
	for _, k := range s.order {
		if e := s.entries[k]; e.IsMatched() {
			scores = append(scores, e.Candidate.Score)
		}
	}
	return scores
}
