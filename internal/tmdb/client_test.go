package tmdb_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"pipoca/internal/tmdb"
)

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := tmdb.New("", "https://example.com", "", "pt-BR"); err == nil {
		t.Fatal("expected error when api key missing")
	}
}

func TestSearchMovieSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/movie" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("api_key") != "key" {
			t.Fatalf("expected api_key query parameter, got %q", r.URL.RawQuery)
		}
		if r.URL.Query().Get("language") != "pt-BR" {
			t.Fatalf("expected language parameter, got %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"page":1,"results":[{"id":27205,"title":"A Origem","original_title":"Inception","release_date":"2010-07-16"}]}`))
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("key", server.URL, "", "pt-BR")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	results, err := client.SearchMovie(context.Background(), "Inception")
	if err != nil {
		t.Fatalf("SearchMovie returned error: %v", err)
	}
	if len(results) != 1 || results[0].ID != 27205 {
		t.Fatalf("unexpected results: %#v", results)
	}
	if results[0].Year() != "2010" {
		t.Fatalf("Year() = %q, want 2010", results[0].Year())
	}
}

func TestSearchMovieTruncatesToFive(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		body := `{"results":[`
		for i := 0; i < 8; i++ {
			if i > 0 {
				body += ","
			}
			body += fmt.Sprintf(`{"id":%d,"title":"Movie %d"}`, i+1, i+1)
		}
		body += `]}`
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("key", server.URL, "", "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	results, err := client.SearchMovie(context.Background(), "Movie")
	if err != nil {
		t.Fatalf("SearchMovie returned error: %v", err)
	}
	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(results))
	}
}

func TestSearchMovieHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("key", server.URL, "", "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.SearchMovie(context.Background(), "fail"); err == nil {
		t.Fatal("expected error when TMDB returns non-200")
	}
}

func TestSearchMovieEmptyQuery(t *testing.T) {
	client, err := tmdb.New("key", "https://example.com", "", "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.SearchMovie(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty query")
	}
}

func TestGetMovieDetails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/27205" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("append_to_response") != "credits,videos,images" {
			t.Fatalf("expected append_to_response, got %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": 27205,
			"title": "A Origem",
			"original_title": "Inception",
			"release_date": "2010-07-16",
			"runtime": 148,
			"vote_average": 8.4,
			"genres": [{"id":28,"name":"Ação"},{"id":878,"name":"Ficção científica"}],
			"backdrop_path": "/back.jpg",
			"credits": {
				"cast": [
					{"id": 6193, "name": "Leonardo DiCaprio", "character": "Cobb", "profile_path": "/leo.jpg"},
					{"id": 24045, "name": "Joseph Gordon-Levitt", "character": "Arthur"}
				],
				"crew": [
					{"id": 525, "name": "Christopher Nolan", "job": "Director", "profile_path": "/nolan.jpg"},
					{"id": 525, "name": "Christopher Nolan", "job": "Writer"}
				]
			},
			"videos": {"results": [
				{"key": "clip1", "site": "YouTube", "type": "Clip"},
				{"key": "trailer1", "site": "YouTube", "type": "Trailer"}
			]}
		}`))
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("key", server.URL, "", "pt-BR")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	details, err := client.GetMovieDetails(context.Background(), 27205)
	if err != nil {
		t.Fatalf("GetMovieDetails returned error: %v", err)
	}
	if details.Runtime != 148 {
		t.Fatalf("runtime = %d", details.Runtime)
	}
	if got := details.TrailerKey(); got != "trailer1" {
		t.Fatalf("TrailerKey() = %q, want trailer1", got)
	}
	directors := details.Directors()
	if len(directors) != 1 || directors[0].Name != "Christopher Nolan" {
		t.Fatalf("Directors() = %#v", directors)
	}
	if cast := details.TopCast(1); len(cast) != 1 || cast[0].Character != "Cobb" {
		t.Fatalf("TopCast(1) = %#v", cast)
	}
}

func TestGetMovieDetailsRejectsBadID(t *testing.T) {
	client, err := tmdb.New("key", "https://example.com", "", "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.GetMovieDetails(context.Background(), 0); err == nil {
		t.Fatal("expected error for non-positive movie id")
	}
}

func TestImageURLs(t *testing.T) {
	client, err := tmdb.New("key", "https://example.com", "https://img.example.com/t/p", "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if got := client.PosterURL("/poster.jpg"); got != "https://img.example.com/t/p/w500/poster.jpg" {
		t.Fatalf("PosterURL = %q", got)
	}
	if got := client.PosterURL(""); got != "" {
		t.Fatalf("PosterURL(empty) = %q", got)
	}
	urls := client.BackdropURLs("/back.jpg")
	if len(urls) != 2 || urls[0] != "https://img.example.com/t/p/w1280/back.jpg" || urls[1] != "https://img.example.com/t/p/w780/back.jpg" {
		t.Fatalf("BackdropURLs = %v", urls)
	}
	if got := client.ProfileURL("face.jpg"); got != "https://img.example.com/t/p/w185/face.jpg" {
		t.Fatalf("ProfileURL = %q", got)
	}
}
