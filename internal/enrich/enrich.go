package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"pipoca/internal/assets"
	"pipoca/internal/catalog"
	"pipoca/internal/history"
	"pipoca/internal/identify"
	"pipoca/internal/logging"
	"pipoca/internal/notifications"
	"pipoca/internal/scanner"
	"pipoca/internal/tmdb"
)

// castLimit caps how many cast members are stored per movie.
const castLimit = 5

// Provider is the metadata provider surface the enricher consumes.
type Provider interface {
	SearchMovie(ctx context.Context, query string) ([]tmdb.Result, error)
	GetMovieDetails(ctx context.Context, movieID int64) (*tmdb.Details, error)
	GetPersonDetails(ctx context.Context, personID int64) (*tmdb.PersonDetails, error)
	PosterURL(path string) string
	BackdropURLs(path string) []string
	ProfileURL(path string) string
}

// Assets is the local image cache surface the enricher consumes.
type Assets interface {
	DownloadPoster(ctx context.Context, imageURL string, remoteID int64) (string, bool)
	DownloadBackdrop(ctx context.Context, imageURLs []string, remoteID int64) (string, bool)
	DownloadPersonPhoto(ctx context.Context, imageURL string, personID int64, role string) (string, bool)
}

// Outcomes for a single batch item.
const (
	OutcomeAdded   = "added"
	OutcomeSkipped = "skipped"
	OutcomeFailed  = "failed"
)

// Failure details surfaced in batch logs and summaries.
const (
	DetailAlreadyExists      = "already exists"
	DetailNoResults          = "no results found"
	DetailNoCompatibleResult = "no compatible result"
	DetailFetchFailed        = "could not fetch details"
	DetailCommitFailed       = "could not add to catalog"
)

// ItemResult is the resolved outcome for one scanned file.
type ItemResult struct {
	Candidate scanner.Candidate
	Outcome   string
	Detail    string
	Movie     catalog.Movie
}

// Progress is invoked after each item resolves.
type Progress func(done, total int, result ItemResult)

// Summary totals one batch pass.
type Summary struct {
	RunID    string
	Folder   string
	Duration time.Duration
	Added    int
	Skipped  int
	Failed   int
	Results  []ItemResult
}

// Enricher runs the per-file identification pipeline over a scanned
// candidate list: duplicate check, search with fallback, fuzzy match,
// detail fetch, asset downloads, and an atomic catalog commit. Items are
// processed strictly sequentially and one item's failure never aborts the
// batch.
type Enricher struct {
	store          *catalog.Store
	provider       Provider
	search         *identify.Search
	matcher        *identify.Matcher
	assets         Assets
	history        *history.Store
	notifier       notifications.Service
	skipDuplicates bool
	logger         *slog.Logger
}

// Options configures an Enricher. Store, Provider, Matcher, and Assets are
// required; History and Notifier are optional.
type Options struct {
	Store          *catalog.Store
	Provider       Provider
	Matcher        *identify.Matcher
	Assets         Assets
	History        *history.Store
	Notifier       notifications.Service
	SkipDuplicates bool
	Logger         *slog.Logger
}

// New builds an Enricher.
func New(opts Options) (*Enricher, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("enrich: catalog store required")
	}
	if opts.Provider == nil {
		return nil, fmt.Errorf("enrich: metadata provider required")
	}
	if opts.Matcher == nil {
		return nil, fmt.Errorf("enrich: matcher required")
	}
	if opts.Assets == nil {
		return nil, fmt.Errorf("enrich: asset cache required")
	}
	return &Enricher{
		store:          opts.Store,
		provider:       opts.Provider,
		search:         identify.NewSearch(opts.Provider),
		matcher:        opts.Matcher,
		assets:         opts.Assets,
		history:        opts.History,
		notifier:       opts.Notifier,
		skipDuplicates: opts.SkipDuplicates,
		logger:         logging.NewComponentLogger(opts.Logger, "enrich"),
	}, nil
}

// EnrichBatch processes candidates sequentially and returns the batch
// summary. Cancellation is cooperative: the context is checked between
// items and between pipeline steps, so an in-flight commit is never torn —
// already committed items stay committed and the remainder is abandoned.
func (e *Enricher) EnrichBatch(ctx context.Context, folder string, candidates []scanner.Candidate, progress Progress) (*Summary, error) {
	started := time.Now()
	summary := &Summary{Folder: folder}

	// Snapshot existing bindings once; files added mid-batch by this very
	// run are also tracked so one batch never double-commits a path.
	known := e.store.FilePaths()

	if e.history != nil {
		runID, err := e.history.BeginRun(ctx, folder, len(candidates))
		if err != nil {
			e.logger.Warn("history unavailable for this run", logging.Error(err))
		} else {
			summary.RunID = runID
		}
	}
	if e.notifier != nil {
		if err := e.notifier.NotifyBatchStarted(ctx, len(candidates)); err != nil {
			e.logger.Debug("batch start notification failed", logging.Error(err))
		}
	}

	for i, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			e.finish(ctx, summary, started)
			return summary, err
		}

		result := e.processItem(ctx, candidate, known)
		if result.Outcome == OutcomeAdded {
			known[candidate.Path] = struct{}{}
		}
		summary.Results = append(summary.Results, result)
		switch result.Outcome {
		case OutcomeAdded:
			summary.Added++
		case OutcomeSkipped:
			summary.Skipped++
		default:
			summary.Failed++
		}

		e.record(ctx, summary.RunID, result)
		if progress != nil {
			progress(i+1, len(candidates), result)
		}
	}

	e.finish(ctx, summary, started)
	if e.notifier != nil {
		if err := e.notifier.NotifyBatchCompleted(ctx, summary.Added, summary.Skipped, summary.Failed, summary.Duration); err != nil {
			e.logger.Debug("batch completion notification failed", logging.Error(err))
		}
	}
	return summary, nil
}

func (e *Enricher) finish(ctx context.Context, summary *Summary, started time.Time) {
	summary.Duration = time.Since(started)
	if e.history == nil || summary.RunID == "" {
		return
	}
	// Use a detached context so a cancelled batch still closes its run.
	finishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := e.history.FinishRun(finishCtx, summary.RunID, summary.Added, summary.Skipped, summary.Failed); err != nil {
		e.logger.Warn("could not close history run", logging.Error(err))
	}
}

func (e *Enricher) record(ctx context.Context, runID string, result ItemResult) {
	if e.history == nil || runID == "" {
		return
	}
	item := history.Item{
		RunID:    runID,
		FilePath: result.Candidate.Path,
		Title:    result.Candidate.Title,
		Outcome:  result.Outcome,
		Detail:   result.Detail,
	}
	if result.Outcome == OutcomeAdded {
		item.Title = result.Movie.Title
		item.RemoteID = result.Movie.RemoteID
	}
	if err := e.history.RecordItem(ctx, item); err != nil {
		e.logger.Debug("could not record history item", logging.Error(err))
	}
}

// processItem resolves a single candidate. Panics are converted into
// failed outcomes at the item boundary.
func (e *Enricher) processItem(ctx context.Context, candidate scanner.Candidate, known map[string]struct{}) (result ItemResult) {
	result = ItemResult{Candidate: candidate}
	defer func() {
		if r := recover(); r != nil {
			result.Outcome = OutcomeFailed
			result.Detail = fmt.Sprintf("panic: %v", r)
			e.logger.Error("item processing panicked",
				logging.String("path", candidate.Path),
				logging.Any("panic", r))
		}
	}()

	if e.skipDuplicates {
		if _, exists := known[candidate.Path]; exists {
			result.Outcome = OutcomeSkipped
			result.Detail = DetailAlreadyExists
			e.logger.Debug("skipping known file", logging.String("path", candidate.Path))
			return result
		}
	}

	results := e.searchWithFallback(ctx, candidate.Title)
	if err := ctx.Err(); err != nil {
		result.Outcome = OutcomeFailed
		result.Detail = err.Error()
		return result
	}
	if len(results) == 0 {
		result.Outcome = OutcomeFailed
		result.Detail = DetailNoResults
		e.logger.Info("no search results",
			logging.String("title", candidate.Title),
			logging.String("path", candidate.Path))
		return result
	}

	match, ok := e.matcher.Best(candidate.RawName, candidate.Title, results)
	if !ok {
		result.Outcome = OutcomeFailed
		result.Detail = DetailNoCompatibleResult
		e.logger.Info("no compatible result",
			logging.String("title", candidate.Title),
			logging.Int("candidates", len(results)))
		return result
	}

	details, err := e.provider.GetMovieDetails(ctx, match.ID)
	if err != nil || details == nil {
		result.Outcome = OutcomeFailed
		result.Detail = DetailFetchFailed
		e.logger.Warn("detail fetch failed",
			logging.Int64("remote_id", match.ID),
			logging.Error(err))
		return result
	}
	if err := ctx.Err(); err != nil {
		result.Outcome = OutcomeFailed
		result.Detail = err.Error()
		return result
	}

	meta := e.extractMetadata(ctx, details)

	movie, err := e.store.AddOrUpdate(meta, candidate.Path)
	if err != nil {
		result.Outcome = OutcomeFailed
		result.Detail = DetailCommitFailed
		e.logger.Error("catalog commit failed",
			logging.String("path", candidate.Path),
			logging.Error(err))
		return result
	}

	result.Outcome = OutcomeAdded
	result.Movie = movie
	e.logger.Info("enriched",
		logging.String("title", movie.Title),
		logging.Int64("remote_id", movie.RemoteID),
		logging.String("path", candidate.Path))
	return result
}

// searchWithFallback searches for title and retries with a shortened
// alternative when the first lookup comes back empty. Transport failures
// are treated the same as no results.
func (e *Enricher) searchWithFallback(ctx context.Context, title string) []tmdb.Result {
	results, err := e.search.Search(ctx, title)
	if err != nil {
		e.logger.Debug("search failed", logging.String("title", title), logging.Error(err))
	}
	if len(results) > 0 {
		return results
	}
	alt, ok := identify.AlternativeTitle(title)
	if !ok {
		return nil
	}
	e.logger.Debug("retrying with alternative title",
		logging.String("title", title),
		logging.String("alternative", alt))
	results, err = e.search.Search(ctx, alt)
	if err != nil {
		e.logger.Debug("fallback search failed", logging.String("title", alt), logging.Error(err))
	}
	return results
}

// extractMetadata flattens provider details into a catalog metadata record
// and downloads the movie's images. Asset downloads are best-effort: a
// missing poster never fails the item.
func (e *Enricher) extractMetadata(ctx context.Context, details *tmdb.Details) catalog.Metadata {
	meta := catalog.Metadata{
		RemoteID:      details.ID,
		Title:         details.Title,
		OriginalTitle: details.OriginalTitle,
		ReleaseDate:   details.ReleaseDate,
		Overview:      details.Overview,
		Runtime:       details.Runtime,
		VoteAverage:   details.VoteAverage,
		TrailerKey:    details.TrailerKey(),
	}
	for _, genre := range details.Genres {
		meta.Genres = append(meta.Genres, genre.Name)
	}

	if details.PosterPath != "" {
		if path, ok := e.assets.DownloadPoster(ctx, e.provider.PosterURL(details.PosterPath), details.ID); ok {
			meta.LocalPosterPath = path
		}
	}
	if details.BackdropPath != "" {
		if path, ok := e.assets.DownloadBackdrop(ctx, e.provider.BackdropURLs(details.BackdropPath), details.ID); ok {
			meta.BackdropLocalPath = path
		}
	}

	for _, member := range details.Directors() {
		meta.Directors = append(meta.Directors, e.person(ctx, member.ID, member.Name, member.ProfilePath, "", assets.RoleDirector))
	}
	for _, member := range details.TopCast(castLimit) {
		meta.Cast = append(meta.Cast, e.person(ctx, member.ID, member.Name, member.ProfilePath, member.Character, assets.RoleCast))
	}
	return meta
}

// person builds a structured person record, resolving a profile image from
// the credits entry or, failing that, the person's own detail payload.
func (e *Enricher) person(ctx context.Context, personID int64, name, profilePath, character, role string) catalog.Person {
	p := catalog.Person{
		RemotePersonID: personID,
		Name:           name,
		ProfilePath:    profilePath,
		Character:      character,
	}
	if p.ProfilePath == "" {
		if person, err := e.provider.GetPersonDetails(ctx, personID); err == nil && person != nil {
			p.ProfilePath = person.ProfilePath
		}
	}
	if p.ProfilePath != "" {
		if path, ok := e.assets.DownloadPersonPhoto(ctx, e.provider.ProfileURL(p.ProfilePath), personID, role); ok {
			p.LocalPhotoPath = path
		}
	}
	return p
}
