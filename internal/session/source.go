package session

import (
	"net/url"
	"regexp"
	"strings"
)

// Sources lists the recognized source category tags.
var Sources = []string{
	"github", "arxiv", "huggingface", "blog", "docs",
	"reddit", "hackernews", "twitter", "youtube", "web",
}

var arxivIDPattern = regexp.MustCompile(`(\d{4}\.\d{4,5})`)

// DetectSource auto-detects the source category tag for a URL.
// Unrecognized domains fall through to "web".
func DetectSource(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "web"
	}
	domain := strings.ToLower(parsed.Host)

	switch {
	case strings.Contains(domain, "github.com"):
		return "github"
	case strings.Contains(domain, "arxiv.org"):
		return "arxiv"
	case strings.Contains(domain, "huggingface.co"):
		return "huggingface"
	case strings.Contains(domain, "medium.com"), strings.Contains(domain, "blog"):
		return "blog"
	case strings.Contains(domain, "docs."), strings.Contains(strings.ToLower(rawURL), "documentation"):
		return "docs"
	case strings.Contains(domain, "reddit.com"):
		return "reddit"
	case strings.Contains(domain, "news.ycombinator.com"):
		return "hackernews"
	case strings.Contains(domain, "twitter.com"), strings.Contains(domain, "x.com"):
		return "twitter"
	case strings.Contains(domain, "youtube.com"):
		return "youtube"
	default:
		return "web"
	}
}

// ExtractName derives a display label from a URL: owner/repo for GitHub,
// arxiv:<id> for arXiv, otherwise the last path segment (or the host when
// the path is empty).
func ExtractName(rawURL, source string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	path := strings.Trim(parsed.Path, "/")

	switch source {
	case "github":
		parts := strings.Split(path, "/")
		if len(parts) >= 2 {
			return parts[0] + "/" + parts[1]
		}
	case "arxiv":
		if match := arxivIDPattern.FindString(rawURL); match != "" {
			return "arxiv:" + match
		}
	}

	if path != "" {
		segments := strings.Split(path, "/")
		name := segments[len(segments)-1]
		if len(name) > 50 {
			name = name[:50]
		}
		return name
	}
	return parsed.Host
}

// RelevanceStars renders a 0-3 relevance score as a three-star string.
func RelevanceStars(relevance int) string {
	switch {
	case relevance >= 3:
		return "★★★"
	case relevance == 2:
		return "★★☆"
	case relevance == 1:
		return "★☆☆"
	default:
		return "☆☆☆"
	}
}
