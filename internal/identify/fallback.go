package identify

import "strings"

// Filler words dropped when shortening a cleaned title for a retry search.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "of": {}, "and": {},
	"o": {}, "os": {}, "as": {}, "um": {}, "uma": {},
	"de": {}, "do": {}, "da": {}, "dos": {}, "das": {}, "e": {},
}

// AlternativeTitle derives a shorter search query from a cleaned title for
// a second search attempt when the first returned nothing usable. It drops
// a subtitle after ":" or " - ", or failing that strips filler words from
// titles longer than two words. Returns false when no meaningfully
// different query can be derived.
func AlternativeTitle(title string) (string, bool) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", false
	}

	for _, sep := range []string{":", " - "} {
		if idx := strings.Index(trimmed, sep); idx > 0 {
			alt := strings.TrimSpace(trimmed[:idx])
			if alt != "" && !strings.EqualFold(alt, trimmed) {
				return alt, true
			}
		}
	}

	words := strings.Fields(trimmed)
	if len(words) <= 2 {
		return "", false
	}
	kept := make([]string, 0, len(words))
	for _, word := range words {
		if _, filler := stopWords[strings.ToLower(word)]; filler {
			continue
		}
		kept = append(kept, word)
	}
	if len(kept) == 0 || len(kept) == len(words) {
		return "", false
	}
	return strings.Join(kept, " "), true
}
