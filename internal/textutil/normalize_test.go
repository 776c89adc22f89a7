package textutil

import "testing"

func TestNormalize(t *testing.T) {
	n := NewNormalizer(nil)

	cases := []struct {
		raw  string
		want string
	}{
		{"Some.Movie.2020.1080p.BluRay.x264.mkv", "Some Movie"},
		{"Another_Movie_720p_WEBRip_x265.mp4", "Another Movie"},
		{"O.Auto.da.Compadecida.2000.NACIONAL.DVDRip.avi", "O Auto da Compadecida"},
		{"Movie.Name.2019.DUBLADO.PT-BR.1080p.mkv", "Movie Name"},
		{"Film [YTS.MX] (2021) {extras}.mp4", "Film"},
		{"Some.Movie.EXTENDED.REMASTERED.2160p.UHD.HDR.mkv", "Some Movie"},
		{"Movie.DUAL.AAC.5.1.www.example.com.mkv", "Movie"},
		{"Plain Movie Title", "Plain Movie Title"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		if got := n.Normalize(tc.raw); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestNormalizeIdempotentOnCleanInput(t *testing.T) {
	n := NewNormalizer(nil)
	titles := []string{
		"Some Movie",
		"O Auto da Compadecida",
		"Amores Brutos",
		"A Viagem de Chihiro",
	}
	for _, title := range titles {
		once := n.Normalize(title)
		if once != title {
			t.Errorf("Normalize(%q) changed clean title to %q", title, once)
		}
		if twice := n.Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent: %q -> %q -> %q", title, once, twice)
		}
	}
}

func TestNormalizeExtraTokens(t *testing.T) {
	n := NewNormalizer(nil, "MYGRP", "PROPER2")
	if got := n.Normalize("Some.Movie.MYGRP.PROPER2.mkv"); got != "Some Movie" {
		t.Fatalf("Normalize with extra tokens = %q, want %q", got, "Some Movie")
	}

	// Extra tokens are matched literally, not as regex.
	n = NewNormalizer(nil, "a+b")
	if got := n.Normalize("Title a+b.mkv"); got != "Title" {
		t.Fatalf("literal extra token: got %q", got)
	}
}

func TestExtractYear(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"Dune 2021", "2021"},
		{"Some.Movie.1984.mkv", "1984"},
		{"No Year Here", ""},
		{"12345", ""},
	}
	for _, tc := range cases {
		if got := ExtractYear(tc.raw); got != tc.want {
			t.Errorf("ExtractYear(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}
