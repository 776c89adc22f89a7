// Package tmdb implements a minimal client for The Movie Database API:
// movie search, detail fetches with appended credits/videos/images, person
// lookups, and image CDN URL construction.
package tmdb
