// Package identify matches cleaned file titles against TMDB search
// results: fuzzy scoring with a release-year bonus, a fallback query for
// stubborn titles, and a rate-limited, cached search wrapper.
package identify
