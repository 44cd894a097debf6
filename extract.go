package context7

import (
	"regexp"
	"strings"

	"github.com/mitchellh/mapstructure"
)

var (
	libraryIDRe = regexp.MustCompile(`Context7-compatible library ID\s*:\s*(\S+)`)
	headlineRe  = regexp.MustCompile(`^#+\s`)
)

// candidatesPayload is the structured shape of a resolve-library-id response.
// Elements are decoded one by one so a malformed candidate or field does not
// hide the others.
type candidatesPayload struct {
	Candidates []any `json:"candidates"`
}

// libraryIDExtractor is a single strategy for finding a library ID in a
// call result.
type libraryIDExtractor func(result CallResult) (string, bool)

// libraryIDExtractors are tried in order; structured data wins over prose.
var libraryIDExtractors = []libraryIDExtractor{
	libraryIDFromCandidates,
	libraryIDFromText,
}

// ExtractLibraryID returns the first Context7-compatible library ID found in
// a resolve-library-id result. It reports false when none is found.
func ExtractLibraryID(result CallResult) (string, bool) {
	for _, extract := range libraryIDExtractors {
		if id, ok := extract(result); ok {
			return id, true
		}
	}
	return "", false
}

// ExtractCandidates returns the structured candidates of a resolve result in
// order. It returns an empty slice when the result has none. Elements that
// are not objects are skipped; fields with unexpected types are left at
// their zero value.
func ExtractCandidates(result CallResult) []LibraryCandidate {
	var payload candidatesPayload
	if !result.JSON(&payload) {
		return []LibraryCandidate{}
	}

	candidates := make([]LibraryCandidate, 0, len(payload.Candidates))
	for _, item := range payload.Candidates {
		fields, ok := item.(map[string]any)
		if !ok {
			continue
		}
		candidates = append(candidates, candidateFromFields(fields))
	}
	return candidates
}

func candidateFromFields(fields map[string]any) LibraryCandidate {
	var c LibraryCandidate
	decodeField(fields, "context7CompatibleLibraryID", &c.ID)
	decodeField(fields, "title", &c.Title)
	decodeField(fields, "description", &c.Description)
	decodeField(fields, "totalSnippets", &c.TotalSnippets)
	decodeField(fields, "trustScore", &c.TrustScore)
	decodeField(fields, "versions", &c.Versions)
	return c
}

// decodeField weakly decodes fields[key] into dst. dst is left unchanged
// when the key is missing or the value cannot be converted.
func decodeField[T any](fields map[string]any, key string, dst *T) {
	v, ok := fields[key]
	if !ok || v == nil {
		return
	}
	var out T
	if err := mapstructure.WeakDecode(v, &out); err != nil {
		return
	}
	*dst = out
}

func libraryIDFromCandidates(result CallResult) (string, bool) {
	for _, c := range ExtractCandidates(result) {
		if c.ID != "" {
			return c.ID, true
		}
	}
	return "", false
}

func libraryIDFromText(result CallResult) (string, bool) {
	text, ok := result.Text()
	if !ok {
		return "", false
	}
	m := libraryIDRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ExtractHeadlines returns the markdown heading lines of a document, in
// order, joined by newlines. Lines must start with one or more '#'
// followed by whitespace.
func ExtractHeadlines(markdown string) string {
	var headlines []string
	for _, line := range strings.Split(markdown, "\n") {
		if headlineRe.MatchString(line) {
			headlines = append(headlines, line)
		}
	}
	return strings.Join(headlines, "\n")
}
