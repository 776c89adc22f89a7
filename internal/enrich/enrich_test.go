package enrich

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pipoca/internal/catalog"
	"pipoca/internal/history"
	"pipoca/internal/identify"
	"pipoca/internal/logging"
	"pipoca/internal/scanner"
	"pipoca/internal/tmdb"
)

type fakeProvider struct {
	results        map[string][]tmdb.Result
	details        map[int64]*tmdb.Details
	persons        map[int64]*tmdb.PersonDetails
	searchErr      error
	detailsErr     error
	panicOnDetails bool
}

func (f *fakeProvider) SearchMovie(ctx context.Context, query string) ([]tmdb.Result, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.results[query], nil
}

func (f *fakeProvider) GetMovieDetails(ctx context.Context, movieID int64) (*tmdb.Details, error) {
	if f.panicOnDetails {
		panic("provider exploded")
	}
	if f.detailsErr != nil {
		return nil, f.detailsErr
	}
	details, ok := f.details[movieID]
	if !ok {
		return nil, errors.New("not found")
	}
	return details, nil
}

func (f *fakeProvider) GetPersonDetails(ctx context.Context, personID int64) (*tmdb.PersonDetails, error) {
	person, ok := f.persons[personID]
	if !ok {
		return nil, errors.New("not found")
	}
	return person, nil
}

func (f *fakeProvider) PosterURL(path string) string   { return "https://img.test/w500" + path }
func (f *fakeProvider) BackdropURLs(path string) []string {
	return []string{"https://img.test/w1280" + path}
}
func (f *fakeProvider) ProfileURL(path string) string { return "https://img.test/w185" + path }

type fakeAssets struct {
	posters int
	persons int
	fail    bool
}

func (f *fakeAssets) DownloadPoster(ctx context.Context, imageURL string, remoteID int64) (string, bool) {
	if f.fail {
		return "", false
	}
	f.posters++
	return fmt.Sprintf("/assets/poster_images/%d.jpg", remoteID), true
}

func (f *fakeAssets) DownloadBackdrop(ctx context.Context, imageURLs []string, remoteID int64) (string, bool) {
	if f.fail {
		return "", false
	}
	return fmt.Sprintf("/assets/backdrop_images/%d_backdrop.jpg", remoteID), true
}

func (f *fakeAssets) DownloadPersonPhoto(ctx context.Context, imageURL string, personID int64, role string) (string, bool) {
	if f.fail {
		return "", false
	}
	f.persons++
	return fmt.Sprintf("/assets/profile_images/%s_%d.jpg", role, personID), true
}

func newTestStore(t *testing.T, dir string) *catalog.Store {
	t.Helper()
	store, err := catalog.Open(filepath.Join(dir, "catalog.json"), logging.NewNop())
	if err != nil {
		t.Fatalf("open catalog: %v", err)
	}
	return store
}

func newCandidate(t *testing.T, dir, rawName, title string) scanner.Candidate {
	t.Helper()
	path := filepath.Join(dir, rawName)
	if err := os.WriteFile(path, []byte("payload"), 0o644); err != nil {
		t.Fatalf("write video file: %v", err)
	}
	return scanner.Candidate{Path: path, RawName: rawName, Title: title}
}

func newEnricher(t *testing.T, store *catalog.Store, provider Provider, opts ...func(*Options)) *Enricher {
	t.Helper()
	options := Options{
		Store:          store,
		Provider:       provider,
		Matcher:        identify.NewMatcher(logging.NewNop(), 0.5, 0.2),
		Assets:         &fakeAssets{},
		SkipDuplicates: true,
		Logger:         logging.NewNop(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	enricher, err := New(options)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return enricher
}

func duneDetails() *tmdb.Details {
	return &tmdb.Details{
		ID:            438631,
		Title:         "Dune",
		OriginalTitle: "Dune",
		ReleaseDate:   "2021-10-21",
		Overview:      "Paul Atreides leads nomadic tribes.",
		PosterPath:    "/dune.jpg",
		BackdropPath:  "/dune_backdrop.jpg",
		Genres:        []tmdb.Genre{{ID: 878, Name: "Science Fiction"}},
		Runtime:       155,
		VoteAverage:   7.9,
		Credits: tmdb.Credits{
			Crew: []tmdb.CrewMember{
				{ID: 137427, Name: "Denis Villeneuve", Job: "Director", ProfilePath: "/denis.jpg"},
			},
			Cast: []tmdb.CastMember{
				{ID: 1190668, Name: "Timothée Chalamet", Character: "Paul", ProfilePath: "/tim.jpg"},
			},
		},
	}
}

func TestEnrichBatchHappyPath(t *testing.T) {
	dir := t.TempDir()
	store := newTestStore(t, dir)
	provider := &fakeProvider{
		results: map[string][]tmdb.Result{
			"Some Movie": {{ID: 438631, Title: "Dune", ReleaseDate: "2021-10-21"}},
		},
		details: map[int64]*tmdb.Details{438631: duneDetails()},
	}
	// Make the search result match the cleaned title.
	provider.results["Some Movie"][0].Title = "Some Movie"
	details := duneDetails()
	details.Title = "Some Movie"
	details.ReleaseDate = "2020-05-01"
	provider.details[438631] = details

	enricher := newEnricher(t, store, provider)
	candidate := newCandidate(t, dir, "Some.Movie.2020.1080p.BluRay.x264.mkv", "Some Movie")

	summary, err := enricher.EnrichBatch(context.Background(), dir, []scanner.Candidate{candidate}, nil)
	if err != nil {
		t.Fatalf("EnrichBatch: %v", err)
	}
	if summary.Added != 1 || summary.Failed != 0 || summary.Skipped != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	movie, ok := store.ByFilePath(candidate.Path)
	if !ok {
		t.Fatal("expected committed record")
	}
	if !strings.HasPrefix(movie.ReleaseDate, "2020") {
		t.Fatalf("unexpected release date %q", movie.ReleaseDate)
	}
	if movie.LocalPosterPath == "" || movie.BackdropLocalPath == "" {
		t.Fatalf("expected cached images: %+v", movie)
	}
	if len(movie.Directors) != 1 || movie.Directors[0].Name != "Denis Villeneuve" {
		t.Fatalf("unexpected directors: %+v", movie.Directors)
	}
	if len(movie.Cast) != 1 || movie.Cast[0].Character != "Paul" {
		t.Fatalf("unexpected cast: %+v", movie.Cast)
	}
	if movie.Cast[0].LocalPhotoPath == "" {
		t.Fatal("expected cached cast photo")
	}
}

func TestEnrichBatchSkipsDuplicatesOnSecondRun(t *testing.T) {
	dir := t.TempDir()
	store := newTestStore(t, dir)
	provider := &fakeProvider{
		results: map[string][]tmdb.Result{
			"Dune": {{ID: 438631, Title: "Dune", ReleaseDate: "2021-10-21"}},
		},
		details: map[int64]*tmdb.Details{438631: duneDetails()},
	}

	enricher := newEnricher(t, store, provider)
	candidates := []scanner.Candidate{newCandidate(t, dir, "Dune.2021.mkv", "Dune")}

	first, err := enricher.EnrichBatch(context.Background(), dir, candidates, nil)
	if err != nil {
		t.Fatalf("first batch: %v", err)
	}
	if first.Added != 1 {
		t.Fatalf("unexpected first summary: %+v", first)
	}

	second, err := enricher.EnrichBatch(context.Background(), dir, candidates, nil)
	if err != nil {
		t.Fatalf("second batch: %v", err)
	}
	if second.Skipped != 1 || second.Added != 0 {
		t.Fatalf("unexpected second summary: %+v", second)
	}
	if second.Results[0].Detail != DetailAlreadyExists {
		t.Fatalf("unexpected detail %q", second.Results[0].Detail)
	}
	if store.Count() != 1 {
		t.Fatalf("catalog size changed: %d", store.Count())
	}
}

func TestEnrichBatchIsolatesFailures(t *testing.T) {
	dir := t.TempDir()
	store := newTestStore(t, dir)
	provider := &fakeProvider{
		results: map[string][]tmdb.Result{
			"Dune":    {{ID: 438631, Title: "Dune", ReleaseDate: "2021-10-21"}},
			"Missing": nil,
			"Broken":  {{ID: 999, Title: "Broken"}},
			"Noise":   {{ID: 1, Title: "Completely Different Thing"}},
		},
		details: map[int64]*tmdb.Details{438631: duneDetails()},
	}

	enricher := newEnricher(t, store, provider)
	candidates := []scanner.Candidate{
		newCandidate(t, dir, "Missing.mkv", "Missing"),
		newCandidate(t, dir, "Broken.mkv", "Broken"),
		newCandidate(t, dir, "Noise.mkv", "Noise"),
		newCandidate(t, dir, "Dune.2021.mkv", "Dune"),
	}

	summary, err := enricher.EnrichBatch(context.Background(), dir, candidates, nil)
	if err != nil {
		t.Fatalf("EnrichBatch: %v", err)
	}
	if summary.Added != 1 || summary.Failed != 3 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	details := map[string]string{}
	for _, result := range summary.Results {
		details[result.Candidate.Title] = result.Detail
	}
	if details["Missing"] != DetailNoResults {
		t.Fatalf("Missing: %q", details["Missing"])
	}
	if details["Broken"] != DetailFetchFailed {
		t.Fatalf("Broken: %q", details["Broken"])
	}
	if details["Noise"] != DetailNoCompatibleResult {
		t.Fatalf("Noise: %q", details["Noise"])
	}
	if details["Dune"] != "" {
		t.Fatalf("Dune: %q", details["Dune"])
	}
}

func TestEnrichBatchFallbackSearch(t *testing.T) {
	dir := t.TempDir()
	store := newTestStore(t, dir)
	provider := &fakeProvider{
		results: map[string][]tmdb.Result{
			// Only the shortened query has results.
			"Blade Runner": {{ID: 78, Title: "Blade Runner", ReleaseDate: "1982-06-25"}},
		},
		details: map[int64]*tmdb.Details{78: {
			ID:          78,
			Title:       "Blade Runner",
			ReleaseDate: "1982-06-25",
		}},
	}

	enricher := newEnricher(t, store, provider)
	candidate := newCandidate(t, dir, "Blade.Runner.Final.Cut.mkv", "Blade Runner: The Final Cut")

	summary, err := enricher.EnrichBatch(context.Background(), dir, []scanner.Candidate{candidate}, nil)
	if err != nil {
		t.Fatalf("EnrichBatch: %v", err)
	}
	if summary.Added != 1 {
		t.Fatalf("expected fallback search to succeed: %+v", summary.Results)
	}
}

func TestEnrichBatchRecoversFromPanic(t *testing.T) {
	dir := t.TempDir()
	store := newTestStore(t, dir)
	provider := &fakeProvider{
		results: map[string][]tmdb.Result{
			"Dune": {{ID: 438631, Title: "Dune"}},
		},
		panicOnDetails: true,
	}

	enricher := newEnricher(t, store, provider)
	candidate := newCandidate(t, dir, "Dune.mkv", "Dune")

	summary, err := enricher.EnrichBatch(context.Background(), dir, []scanner.Candidate{candidate}, nil)
	if err != nil {
		t.Fatalf("EnrichBatch: %v", err)
	}
	if summary.Failed != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if !strings.Contains(summary.Results[0].Detail, "panic") {
		t.Fatalf("expected panic detail, got %q", summary.Results[0].Detail)
	}
}

func TestEnrichBatchCancellation(t *testing.T) {
	dir := t.TempDir()
	store := newTestStore(t, dir)
	provider := &fakeProvider{}

	enricher := newEnricher(t, store, provider)
	candidates := []scanner.Candidate{newCandidate(t, dir, "Dune.mkv", "Dune")}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	summary, err := enricher.EnrichBatch(ctx, dir, candidates, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(summary.Results) != 0 {
		t.Fatalf("expected no items processed, got %d", len(summary.Results))
	}
}

func TestEnrichBatchRecordsHistory(t *testing.T) {
	dir := t.TempDir()
	store := newTestStore(t, dir)
	historyStore, err := history.Open(filepath.Join(dir, "history.db"))
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	defer historyStore.Close()

	provider := &fakeProvider{
		results: map[string][]tmdb.Result{
			"Dune": {{ID: 438631, Title: "Dune", ReleaseDate: "2021-10-21"}},
		},
		details: map[int64]*tmdb.Details{438631: duneDetails()},
	}

	enricher := newEnricher(t, store, provider, func(o *Options) {
		o.History = historyStore
	})
	candidates := []scanner.Candidate{
		newCandidate(t, dir, "Dune.2021.mkv", "Dune"),
		newCandidate(t, dir, "Unknown.mkv", "Unknown"),
	}

	summary, err := enricher.EnrichBatch(context.Background(), dir, candidates, nil)
	if err != nil {
		t.Fatalf("EnrichBatch: %v", err)
	}
	if summary.RunID == "" {
		t.Fatal("expected a run ID")
	}

	runs, err := historyStore.RecentRuns(context.Background(), 1)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 1 || !runs[0].Finished() {
		t.Fatalf("expected a finished run, got %+v", runs)
	}
	if runs[0].Added != 1 || runs[0].Failed != 1 {
		t.Fatalf("unexpected counters: %+v", runs[0])
	}

	items, err := historyStore.RunItems(context.Background(), summary.RunID)
	if err != nil {
		t.Fatalf("RunItems: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Outcome != history.OutcomeAdded || items[0].RemoteID != 438631 {
		t.Fatalf("unexpected first item: %+v", items[0])
	}
}
