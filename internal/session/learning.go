package session

import "fmt"

// Learning types.
const (
	LearningTool       = "tool"
	LearningInnovation = "innovation"
	LearningPaper      = "paper"
	LearningResource   = "resource"
)

// Learning is a derived fact extracted from a scratchpad at archive time.
// Learnings are never stored back into the scratchpad; they only ever land
// in the global memory document.
type Learning struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	URL     string `json:"url,omitempty"`
	Insight string `json:"insight"`
}

// DeriveLearnings walks the scratchpad in fixed priority order: viral
// candidates (tool), groundbreaker candidates (innovation), arxiv papers
// (paper), then urls_visited entries with relevance >= 3 (resource).
// Resources are deduplicated by URL against every earlier learning; the
// first occurrence wins.
func DeriveLearnings(sp *Scratchpad) []Learning {
	var learnings []Learning
	seen := make(map[string]bool)

	add := func(l Learning) {
		learnings = append(learnings, l)
		seen[l.URL] = true
	}

	for _, item := range sp.ViralCandidates {
		add(Learning{
			Type:    LearningTool,
			Name:    candidateString(item, "Unknown", "name"),
			URL:     candidateString(item, "", "url"),
			Insight: fmt.Sprintf("High-adoption: %s", candidateString(item, "well-maintained", "why", "notes")),
		})
	}

	for _, item := range sp.GroundbreakerCandidates {
		add(Learning{
			Type:    LearningInnovation,
			Name:    candidateString(item, "Unknown", "name"),
			URL:     candidateString(item, "", "url"),
			Insight: fmt.Sprintf("Novel: %s", candidateString(item, "emerging", "novel", "why", "notes")),
		})
	}

	for _, item := range sp.ArxivPapers {
		add(Learning{
			Type:    LearningPaper,
			Name:    candidateString(item, "Unknown", "title", "name"),
			URL:     candidateString(item, "", "url"),
			Insight: candidateString(item, "Research finding", "insight", "notes"),
		})
	}

	for _, entry := range sp.URLsVisited {
		if entry.Relevance < 3 || seen[entry.URL] {
			continue
		}
		name := entry.Name
		if name == "" {
			name = entry.URL
		}
		if name == "" {
			name = "Unknown"
		}
		insight := entry.Notes
		if insight == "" {
			insight = "High relevance resource"
		}
		add(Learning{
			Type:    LearningResource,
			Name:    name,
			URL:     entry.URL,
			Insight: insight,
		})
	}

	return learnings
}

// candidateString pulls the first present non-empty string value for the
// given keys out of an opaque candidate record, falling back to fallback.
func candidateString(item map[string]any, fallback string, keys ...string) string {
	for _, key := range keys {
		if value, ok := item[key]; ok {
			if s, ok := value.(string); ok && s != "" {
				return s
			}
		}
	}
	return fallback
}
