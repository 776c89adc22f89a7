package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"
	"time"

	"pipoca/internal/fileutil"
	"pipoca/internal/logging"
)

// Store is the single source of truth for the movie catalog. It loads the
// JSON document once at construction (pruning records whose files
// vanished), guards every read-modify-write with a mutex, and persists the
// whole document atomically after each mutation.
type Store struct {
	path   string
	logger *slog.Logger

	mu  sync.RWMutex
	doc Document

	openReport Report
}

// Open loads the catalog at path, recovering from a corrupt file by moving
// it aside, then validates and prunes stale records.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if path == "" {
		return nil, errors.New("catalog path required")
	}

	s := &Store{
		path:   path,
		logger: logging.NewComponentLogger(logger, "catalog"),
	}

	if err := s.load(); err != nil {
		return nil, err
	}

	report, err := s.ValidateAndPrune()
	if err != nil {
		return nil, fmt.Errorf("validate catalog: %w", err)
	}
	s.openReport = report
	if report.RemovedCount > 0 {
		s.logger.Info("pruned stale catalog entries",
			logging.Int("removed", report.RemovedCount),
			logging.Int("valid", report.ValidCount))
	}

	return s, nil
}

// Path returns the catalog file location.
func (s *Store) Path() string {
	return s.path
}

// OpenReport returns the validate-and-prune report produced when the
// store was opened.
func (s *Store) OpenReport() Report {
	return s.openReport
}

// All returns every movie in insertion order.
func (s *Store) All() []Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	movies := make([]Movie, len(s.doc.Movies))
	copy(movies, s.doc.Movies)
	return movies
}

// Count returns the number of records in the catalog.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.doc.Movies)
}

// ByLocalID returns the record with the given local ID.
func (s *Store) ByLocalID(localID int64) (Movie, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, movie := range s.doc.Movies {
		if movie.LocalID == localID {
			return movie, true
		}
	}
	return Movie{}, false
}

// ByFilePath returns the record bound to the given file path.
func (s *Store) ByFilePath(path string) (Movie, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, movie := range s.doc.Movies {
		if movie.FilePath == path {
			return movie, true
		}
	}
	return Movie{}, false
}

// FilePaths returns the set of file paths currently bound to records. Used
// by batch enrichment to snapshot duplicates at batch start.
func (s *Store) FilePaths() map[string]struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	paths := make(map[string]struct{}, len(s.doc.Movies))
	for _, movie := range s.doc.Movies {
		paths[movie.FilePath] = struct{}{}
	}
	return paths
}

// ValidateAndPrune removes every record whose file path no longer resolves
// to an existing video file, deleting cached posters best-effort, and
// persists the pruned document when anything was removed.
func (s *Store) ValidateAndPrune() (Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	valid := make([]Movie, 0, len(s.doc.Movies))
	var removed []Movie
	for _, movie := range s.doc.Movies {
		if fileutil.IsVideoFile(movie.FilePath) {
			valid = append(valid, movie)
			continue
		}
		removed = append(removed, movie)
		if err := fileutil.RemoveIfExists(movie.LocalPosterPath); err != nil {
			s.logger.Debug("remove pruned poster failed",
				logging.String("path", movie.LocalPosterPath),
				logging.Error(err))
		}
	}

	report := Report{ValidCount: len(valid), RemovedCount: len(removed)}
	for _, movie := range removed {
		report.RemovedTitles = append(report.RemovedTitles, movie.Title)
	}

	if len(removed) == 0 {
		return report, nil
	}

	previous := s.doc.Movies
	s.doc.Movies = valid
	if err := s.save(); err != nil {
		s.doc.Movies = previous
		return Report{}, err
	}
	return report, nil
}

// load reads the catalog document from disk. A missing file yields an empty
// catalog; a corrupt file is moved aside to a timestamped .bak sidecar so
// the damage is visible rather than silently discarded.
func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.doc = Document{Movies: []Movie{}, NextLocalID: 1}
			return nil
		}
		return fmt.Errorf("read catalog: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		backupPath := fmt.Sprintf("%s.%s.bak", s.path, time.Now().Format("20060102-150405"))
		if renameErr := os.Rename(s.path, backupPath); renameErr != nil {
			s.logger.Warn("could not move corrupt catalog aside",
				logging.String(logging.FieldEventType, "catalog_backup_failed"),
				logging.Error(renameErr))
		}
		s.logger.Warn("catalog file is corrupt; starting empty",
			logging.String(logging.FieldEventType, "catalog_corrupt"),
			logging.String("backup", backupPath),
			logging.String(logging.FieldErrorHint, "inspect the .bak file to recover records"),
			logging.Error(err))
		s.doc = Document{Movies: []Movie{}, NextLocalID: 1}
		return nil
	}

	if doc.Movies == nil {
		doc.Movies = []Movie{}
	}
	// Older catalogs predate the persisted counter; derive it from the
	// highest local ID seen.
	if doc.NextLocalID == 0 {
		for _, movie := range doc.Movies {
			if movie.LocalID >= doc.NextLocalID {
				doc.NextLocalID = movie.LocalID + 1
			}
		}
		if doc.NextLocalID == 0 {
			doc.NextLocalID = 1
		}
	}
	s.doc = doc

	s.logger.Debug("loaded catalog",
		logging.Int("movie_count", len(doc.Movies)),
		logging.String("path", s.path))
	return nil
}

// save persists the whole document: pretty-printed UTF-8 JSON with
// non-ASCII characters preserved, written atomically via temp file +
// rename. Callers hold the write lock.
func (s *Store) save() error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(s.doc); err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}

	if err := fileutil.WriteFileAtomic(s.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("persist catalog: %w", err)
	}
	return nil
}
