package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/keyword-mapper/internal/match"
)

const (
	topMatchLimit      = 10
	sharedURLLimit     = 5
	sharedKeywordLimit = 3
)

// TopMatch is one of the highest scoring accepted keywords.
type TopMatch struct {
	Rank    int     `json:"rank"`
	Keyword string  `json:"keyword"`
	URL     string  `json:"url"`
	URLName string  `json:"url_name"`
	Score   float64 `json:"score"`
}

// SharedURL is a URL chosen by more than one keyword.
type SharedURL struct {
	URL          string   `json:"url"`
	URLName      string   `json:"url_name"`
	KeywordCount int      `json:"keyword_count"`
	Keywords     []string `json:"keywords"`
	More         int      `json:"more"`
}

// Summary holds the statistics of a mapping run.
type Summary struct {
	TotalKeywords     int         `json:"total_keywords"`
	MatchedKeywords   int         `json:"matched_keywords"`
	UnmatchedKeywords int         `json:"unmatched_keywords"`
	MatchRate         float64     `json:"match_rate"`
	UniqueURLs        int         `json:"unique_urls"`
	AverageScore      float64     `json:"average_score"`
	MinScore          float64     `json:"min_score"`
	MaxScore          float64     `json:"max_score"`
	HasScores         bool        `json:"has_scores"`
	TopMatches        []TopMatch  `json:"top_matches"`
	MultiKeywordURLs  int         `json:"multi_keyword_urls"`
	SharedURLs        []SharedURL `json:"shared_urls"`
}

// Summarize computes the summary of a store. Totals count keyword lines;
// matched counts distinct keywords with an accepted match.
func Summarize(store *match.Store) Summary {
	s := Summary{
		TotalKeywords:   store.Lines(),
		MatchedKeywords: store.AcceptedCount(),
		TopMatches:      []TopMatch{},
		SharedURLs:      []SharedURL{},
	}
	s.UnmatchedKeywords = s.TotalKeywords - s.MatchedKeywords
	if s.TotalKeywords > 0 {
		s.MatchRate = float64(s.MatchedKeywords) / float64(s.TotalKeywords) * 100
	}

	groups := store.URLGroups()
	s.UniqueURLs = len(groups)

	scores := store.Scores()
	if len(scores) > 0 {
		s.HasScores = true
		s.MinScore, s.MaxScore = scores[0], scores[0]
		var sum float64
		for _, score := range scores {
			sum += score
			s.MinScore = min(s.MinScore, score)
			s.MaxScore = max(s.MaxScore, score)
		}
		s.AverageScore = sum / float64(len(scores))
	}

	var matched []match.KeywordEntry
	for _, ke := range store.Entries() {
		if ke.Entry.IsMatched() {
			matched = append(matched, ke)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Entry.Candidate.Score > matched[j].Entry.Candidate.Score
	})
	for i, ke := range matched {
		if i == topMatchLimit {
			break
		}
		s.TopMatches = append(s.TopMatches, TopMatch{
			Rank:    i + 1,
			Keyword: ke.Keyword,
			URL:     ke.Entry.Candidate.URL,
			URLName: URLName(ke.Entry.Candidate.URL),
			Score:   ke.Entry.Candidate.Score,
		})
	}

	var shared []match.URLGroup
	for _, g := range groups {
		if len(g.Keywords) > 1 {
			shared = append(shared, g)
		}
	}
	s.MultiKeywordURLs = len(shared)
	sort.SliceStable(shared, func(i, j int) bool {
		return len(shared[i].Keywords) > len(shared[j].Keywords)
	})
	for i, g := range shared {
		if i == sharedURLLimit {
			break
		}
		su := SharedURL{
			URL:          g.URL,
			URLName:      URLName(g.URL),
			KeywordCount: len(g.Keywords),
			Keywords:     g.Keywords,
		}
		if len(g.Keywords) > sharedKeywordLimit {
			su.Keywords = g.Keywords[:sharedKeywordLimit]
			su.More = len(g.Keywords) - sharedKeywordLimit
		}
		s.SharedURLs = append(s.SharedURLs, su)
	}

	return s
}

// URLName is the short display name of a URL: its last path segment, the one
// before it for a trailing slash, or the URL itself.
func URLName(url string) string {
	if url == "" {
		return "unknown"
	}
	if !strings.Contains(url, "/") {
		return url
	}
	parts := strings.Split(url, "/")
	if last := parts[len(parts)-1]; last != "" {
		return last
	}
	if prev := parts[len(parts)-2]; prev != "" {
		return prev
	}
	return url
}

// RenderSummary prints the summary banner and its tables to w.
func RenderSummary(w io.Writer, s Summary) {
	rule := strings.Repeat("=", 70)

	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "KEYWORD MAPPING RESULTS")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Total Keywords: %d\n", s.TotalKeywords)
	fmt.Fprintf(w, "Matched Keywords: %d\n", s.MatchedKeywords)
	fmt.Fprintf(w, "Unmatched Keywords: %d\n", s.UnmatchedKeywords)
	fmt.Fprintf(w, "Match Rate: %.1f%%\n", s.MatchRate)
	fmt.Fprintf(w, "Unique URLs Matched: %d\n", s.UniqueURLs)
	fmt.Fprintf(w, "Average Match Score: %.2f\n", s.AverageScore)
	if s.HasScores {
		fmt.Fprintf(w, "Score Range: %.2f - %.2f\n", s.MinScore, s.MaxScore)
	}

	if len(s.TopMatches) > 0 {
		fmt.Fprintf(w, "\nTOP %d MATCHES:\n", topMatchLimit)
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"#", "Keyword", "Page", "Score"})
		for _, m := range s.TopMatches {
			t.AppendRow(table.Row{m.Rank, m.Keyword, m.URLName, fmt.Sprintf("%.1f", m.Score)})
		}
		t.Render()
	}

	if len(s.SharedURLs) > 0 {
		fmt.Fprintf(w, "\nURLs WITH MULTIPLE KEYWORDS (%d):\n", s.MultiKeywordURLs)
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Page", "Keywords", "Examples"})
		for _, su := range s.SharedURLs {
			examples := strings.Join(su.Keywords, "\n")
			if su.More > 0 {
				examples += fmt.Sprintf("\n... and %d more", su.More)
			}
			t.AppendRow(table.Row{su.URLName, su.KeywordCount, examples})
		}
		t.Render()
	}

	fmt.Fprintln(w, rule)
}
