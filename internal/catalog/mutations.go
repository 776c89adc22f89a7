package catalog

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"pipoca/internal/fileutil"
	"pipoca/internal/logging"
)

// AddOrUpdate commits an enriched record. Records are deduplicated by
// remote ID: an existing record keeps its local ID and date added and has
// every other field overwritten; otherwise a new record is appended under
// the next local ID. The commit is atomic: on a persistence failure the
// in-memory document is restored and nothing is recorded.
func (s *Store) AddOrUpdate(meta Metadata, filePath string) (Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()

	for i, existing := range s.doc.Movies {
		if existing.RemoteID != meta.RemoteID {
			continue
		}
		updated := movieFromMetadata(meta, filePath)
		updated.LocalID = existing.LocalID
		updated.DateAdded = existing.DateAdded
		updated.LastUpdated = now

		s.doc.Movies[i] = updated
		if err := s.save(); err != nil {
			s.doc.Movies[i] = existing
			return Movie{}, err
		}
		s.logger.Debug("updated catalog record",
			logging.Int64("local_id", updated.LocalID),
			logging.Int64("remote_id", updated.RemoteID),
			logging.String("title", updated.Title))
		return updated, nil
	}

	added := movieFromMetadata(meta, filePath)
	added.LocalID = s.doc.NextLocalID
	added.DateAdded = now
	added.LastUpdated = now

	s.doc.Movies = append(s.doc.Movies, added)
	s.doc.NextLocalID++
	if err := s.save(); err != nil {
		s.doc.Movies = s.doc.Movies[:len(s.doc.Movies)-1]
		s.doc.NextLocalID--
		return Movie{}, err
	}
	s.logger.Debug("added catalog record",
		logging.Int64("local_id", added.LocalID),
		logging.Int64("remote_id", added.RemoteID),
		logging.String("title", added.Title))
	return added, nil
}

// UpdateFields merges the given partial fields into a record and persists.
// The second return is false when no record has the local ID.
func (s *Store) UpdateFields(localID int64, fields Fields) (Movie, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.doc.Movies {
		if existing.LocalID != localID {
			continue
		}
		updated := existing
		if fields.Title != nil {
			updated.Title = *fields.Title
		}
		if fields.Overview != nil {
			updated.Overview = *fields.Overview
		}
		if fields.ReleaseDate != nil {
			updated.ReleaseDate = *fields.ReleaseDate
		}
		if fields.Genres != nil {
			updated.Genres = append([]string(nil), (*fields.Genres)...)
		}
		if fields.Runtime != nil {
			updated.Runtime = *fields.Runtime
		}
		if fields.VoteAverage != nil {
			updated.VoteAverage = *fields.VoteAverage
		}
		if fields.TrailerKey != nil {
			updated.TrailerKey = *fields.TrailerKey
		}
		updated.LastUpdated = time.Now()

		s.doc.Movies[i] = updated
		if err := s.save(); err != nil {
			s.doc.Movies[i] = existing
			return Movie{}, true, err
		}
		return updated, true, nil
	}
	return Movie{}, false, nil
}

// Delete removes a record and best-effort deletes its cached poster.
// Returns false when no record has the local ID; the document is untouched
// in that case.
func (s *Store) Delete(localID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, movie := range s.doc.Movies {
		if movie.LocalID != localID {
			continue
		}
		previous := s.doc.Movies
		s.doc.Movies = append(append([]Movie{}, previous[:i]...), previous[i+1:]...)
		if err := s.save(); err != nil {
			s.doc.Movies = previous
			return false, err
		}
		if err := fileutil.RemoveIfExists(movie.LocalPosterPath); err != nil {
			s.logger.Debug("remove poster failed",
				logging.String("path", movie.LocalPosterPath),
				logging.Error(err))
		}
		s.logger.Debug("deleted catalog record",
			logging.Int64("local_id", localID),
			logging.String("title", movie.Title))
		return true, nil
	}
	return false, nil
}

// DeleteAll empties the catalog. Cached posters are removed best-effort.
// The local ID counter is not reset.
func (s *Store) DeleteAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.doc.Movies
	s.doc.Movies = []Movie{}
	if err := s.save(); err != nil {
		s.doc.Movies = previous
		return err
	}
	for _, movie := range previous {
		_ = fileutil.RemoveIfExists(movie.LocalPosterPath)
	}
	return nil
}

// Sort reorders the catalog by the given key and persists the new order as
// the new insertion order.
func (s *Store) Sort(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	movies := s.doc.Movies
	switch key {
	case SortByTitle:
		sort.SliceStable(movies, func(i, j int) bool {
			return strings.ToLower(movies[i].Title) < strings.ToLower(movies[j].Title)
		})
	case SortByDateAdded:
		sort.SliceStable(movies, func(i, j int) bool {
			return movies[i].DateAdded.After(movies[j].DateAdded)
		})
	case SortByVoteAverage:
		sort.SliceStable(movies, func(i, j int) bool {
			return movies[i].VoteAverage > movies[j].VoteAverage
		})
	case SortByReleaseDate:
		sort.SliceStable(movies, func(i, j int) bool {
			return movies[i].ReleaseDate > movies[j].ReleaseDate
		})
	default:
		return fmt.Errorf("unknown sort key %q", key)
	}

	return s.save()
}

func movieFromMetadata(meta Metadata, filePath string) Movie {
	return Movie{
		RemoteID:          meta.RemoteID,
		Title:             meta.Title,
		OriginalTitle:     meta.OriginalTitle,
		ReleaseDate:       meta.ReleaseDate,
		Overview:          meta.Overview,
		LocalPosterPath:   meta.LocalPosterPath,
		BackdropLocalPath: meta.BackdropLocalPath,
		Genres:            append([]string(nil), meta.Genres...),
		Runtime:           meta.Runtime,
		VoteAverage:       meta.VoteAverage,
		Directors:         append([]Person(nil), meta.Directors...),
		Cast:              append([]Person(nil), meta.Cast...),
		TrailerKey:        meta.TrailerKey,
		FilePath:          filePath,
	}
}
