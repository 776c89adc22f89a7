package identify

import (
	"log/slog"
	"strings"

	"pipoca/internal/logging"
	"pipoca/internal/textutil"
	"pipoca/internal/tmdb"
)

// Matcher scores search candidates against a cleaned title and picks the
// best one above a configurable threshold.
type Matcher struct {
	minScore  float64
	yearBonus float64
	logger    *slog.Logger
}

// NewMatcher builds a matcher. minScore is the floor a candidate must
// reach to be accepted; yearBonus is added when the candidate's release
// year appears in the raw file name.
func NewMatcher(logger *slog.Logger, minScore, yearBonus float64) *Matcher {
	return &Matcher{
		minScore:  minScore,
		yearBonus: yearBonus,
		logger:    logging.NewComponentLogger(logger, "identify"),
	}
}

// Best returns the highest-scoring candidate for the cleaned title, or
// false when no candidate clears the threshold. rawName is the original
// file name before cleaning; a candidate whose release year occurs in it
// earns the year bonus. Ties keep the earlier candidate, preserving the
// provider's relevance order.
func (m *Matcher) Best(rawName, title string, candidates []tmdb.Result) (tmdb.Result, bool) {
	var (
		best      tmdb.Result
		bestScore float64
		found     bool
	)
	for _, candidate := range candidates {
		score := m.score(rawName, title, candidate)
		m.logger.Debug("scored candidate",
			logging.String("candidate", candidate.Title),
			logging.String("year", candidate.Year()),
			logging.Float64("score", score))
		if score < m.minScore {
			continue
		}
		if !found || score > bestScore {
			best = candidate
			bestScore = score
			found = true
		}
	}
	if found {
		m.logger.Debug("best match",
			logging.String("title", title),
			logging.String("match", best.Title),
			logging.Float64("score", bestScore))
	}
	return best, found
}

func (m *Matcher) score(rawName, title string, candidate tmdb.Result) float64 {
	score := textutil.Similarity(title, candidate.Title)
	if alt := textutil.Similarity(title, candidate.OriginalTitle); alt > score {
		score = alt
	}
	if year := candidate.Year(); year != "" && strings.Contains(rawName, year) {
		score += m.yearBonus
	}
	return score
}
