package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pipoca/internal/ffprobe"
	"pipoca/internal/fileutil"
	"pipoca/internal/logging"
	"pipoca/internal/textutil"
)

// Candidate is a video file discovered in a library folder, paired with
// the cleaned title derived from its file name.
type Candidate struct {
	Path    string
	RawName string
	Title   string
}

// Progress is invoked once per discovered file during a scan.
type Progress func(done, total int, path string)

// ProbeFunc reports the playback duration of a media file. Implementations
// return an error when the duration cannot be determined.
type ProbeFunc func(ctx context.Context, path string) (time.Duration, error)

// FFprobe returns a ProbeFunc backed by the given ffprobe binary.
func FFprobe(binary string) ProbeFunc {
	return func(ctx context.Context, path string) (time.Duration, error) {
		result, err := ffprobe.Inspect(ctx, binary, path)
		if err != nil {
			return 0, err
		}
		return result.Duration(), nil
	}
}

// Scanner walks a library folder for video files and turns each into a
// search candidate. Files shorter than the configured minimum duration are
// filtered out; when the duration cannot be probed the file is kept unless
// the scanner is configured to require one.
type Scanner struct {
	normalizer      *textutil.Normalizer
	probe           ProbeFunc
	minDuration     time.Duration
	requireDuration bool
	logger          *slog.Logger
}

// Options configures a Scanner.
type Options struct {
	// MinDuration filters out files shorter than this. Zero disables the
	// duration gate entirely and no probing happens.
	MinDuration time.Duration
	// RequireDuration drops files whose duration cannot be probed instead
	// of keeping them.
	RequireDuration bool
	// Probe overrides the duration prober. Defaults to the system ffprobe.
	Probe ProbeFunc
}

// New builds a Scanner using the given title normalizer.
func New(logger *slog.Logger, normalizer *textutil.Normalizer, opts Options) *Scanner {
	probe := opts.Probe
	if probe == nil {
		probe = FFprobe("")
	}
	return &Scanner{
		normalizer:      normalizer,
		probe:           probe,
		minDuration:     opts.MinDuration,
		requireDuration: opts.RequireDuration,
		logger:          logging.NewComponentLogger(logger, "scanner"),
	}
}

// Scan walks root recursively and returns a candidate per video file, in
// lexical path order. Hidden directories are skipped. progress (optional)
// is called once per discovered video file, including the ones the
// duration gate later rejects.
func (s *Scanner) Scan(ctx context.Context, root string, progress Progress) ([]Candidate, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scan folder: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan folder: %s is not a directory", root)
	}

	paths, err := s.collect(ctx, root)
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(paths))
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if progress != nil {
			progress(i+1, len(paths), path)
		}
		if !s.admit(ctx, path) {
			continue
		}
		rawName := filepath.Base(path)
		candidates = append(candidates, Candidate{
			Path:    path,
			RawName: rawName,
			Title:   s.normalizer.Normalize(rawName),
		})
	}

	s.logger.Info("scan complete",
		logging.String("folder", root),
		logging.Int("discovered", len(paths)),
		logging.Int("candidates", len(candidates)))
	return candidates, nil
}

// collect gathers every video file under root in lexical order.
func (s *Scanner) collect(ctx context.Context, root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if entry.IsDir() {
			if path != root && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !entry.Type().IsRegular() || !fileutil.HasVideoExtension(path) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return paths, nil
}

// admit applies the duration gate to a single file.
func (s *Scanner) admit(ctx context.Context, path string) bool {
	if s.minDuration <= 0 {
		return true
	}
	duration, err := s.probe(ctx, path)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return false
		}
		s.logger.Debug("duration probe failed",
			logging.String("path", path),
			logging.Error(err))
		return !s.requireDuration
	}
	if duration < s.minDuration {
		s.logger.Debug("skipping short file",
			logging.String("path", path),
			logging.Duration("duration", duration))
		return false
	}
	return true
}
