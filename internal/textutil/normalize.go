package textutil

import (
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"

	"pipoca/internal/logging"
)

// noiseTokenGroups are the technical tokens stripped from file names, grouped
// the way release names are usually assembled. The list is heuristic by
// nature: a legitimate title word can collide with a token, which is an
// accepted limitation. Extra tokens can be appended via configuration.
var noiseTokenGroups = [][]string{
	// resolution / quality
	{"2160p", "1440p", "1080p", "1080i", "720p", "576p", "480p", "4k", "8k", "uhd", "fhd", "hd", "sd", "hdr10\\+?", "hdr", "sdr", "dolby.?vision", "10bit", "8bit", "hq"},
	// release source; separators may already have been turned into spaces,
	// so compound tokens use .? rather than literal dots or dashes
	{"blu.?ray", "bdrip", "brrip", "bdremux", "remux", "dvdrip", "dvdscr", "dvd", "webrip", "web.?dl", "web", "hdtv", "pdtv", "sdtv", "hdrip", "camrip", "cam", "telesync", "telecine", "r5", "vhsrip"},
	// video codecs
	{"x264", "x265", "h.?264", "h.?265", "hevc", "avc", "xvid", "divx", "av1", "vp9"},
	// audio codecs and channel layouts
	{"aac(?:2.?0)?", "ac3", "eac3", "dts.?hd", "dts", "truehd", "atmos", "mp3", "flac", "opus", "ddp?.?5.?1", "5.?1", "7.?1", "2.?0"},
	// language and dub markers
	{"dual.?audio", "dual", "dublado", "dubbed", "legendado", "nacional", "pt.?br", "multi", "vostfr", "latino", "subbed", "subtitulado"},
	// cut / edition markers
	{"extended", "remastered", "unrated", "uncut", "theatrical", "director'?s.?cut", "final.?cut", "imax", "proper", "repack", "limited", "internal", "special.?edition", "anniversary.?edition"},
}

var (
	separatorReplacer = strings.NewReplacer(".", " ", "_", " ", "-", " ")
	yearPattern       = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	urlPattern        = regexp.MustCompile(`(?i)\b(?:https?://|www\.)\S+`)
	bracketPatterns   = []*regexp.Regexp{
		regexp.MustCompile(`\[[^\]]*\]`),
		regexp.MustCompile(`\([^)]*\)`),
		regexp.MustCompile(`\{[^}]*\}`),
	}
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Normalizer strips technical tokens from raw movie file names to produce a
// plausible human title for searching.
type Normalizer struct {
	logger   *slog.Logger
	patterns []*regexp.Regexp
}

// NewNormalizer builds a Normalizer from the built-in token groups plus any
// extra tokens supplied by configuration. Extra tokens are matched literally
// on word boundaries, case-insensitively.
func NewNormalizer(logger *slog.Logger, extraTokens ...string) *Normalizer {
	logger = logging.NewComponentLogger(logger, "normalizer")

	patterns := make([]*regexp.Regexp, 0, len(noiseTokenGroups)+2)
	for _, group := range noiseTokenGroups {
		patterns = append(patterns, regexp.MustCompile(`(?i)\b(?:`+strings.Join(group, "|")+`)\b`))
	}
	if len(extraTokens) > 0 {
		quoted := make([]string, 0, len(extraTokens))
		for _, token := range extraTokens {
			token = strings.TrimSpace(token)
			if token != "" {
				quoted = append(quoted, regexp.QuoteMeta(token))
			}
		}
		if len(quoted) > 0 {
			patterns = append(patterns, regexp.MustCompile(`(?i)\b(?:`+strings.Join(quoted, "|")+`)\b`))
		}
	}

	return &Normalizer{logger: logger, patterns: patterns}
}

// Normalize turns a raw file name into a candidate movie title: the
// extension is dropped, separators become spaces, technical tokens and
// bracketed annotations are removed, and whitespace is collapsed.
// Idempotent on input already free of technical tokens.
func (n *Normalizer) Normalize(raw string) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return ""
	}

	if ext := filepath.Ext(name); ext != "" && knownExtension(ext) {
		name = strings.TrimSuffix(name, ext)
	}

	// URLs first, while their dots are still intact.
	cleaned := urlPattern.ReplaceAllString(name, " ")
	cleaned = separatorReplacer.Replace(cleaned)
	for _, pattern := range n.patterns {
		cleaned = pattern.ReplaceAllString(cleaned, " ")
	}
	cleaned = yearPattern.ReplaceAllString(cleaned, " ")
	// Brackets last: token stripping may have hollowed them out already.
	for _, pattern := range bracketPatterns {
		cleaned = pattern.ReplaceAllString(cleaned, " ")
	}
	cleaned = strings.TrimSpace(whitespacePattern.ReplaceAllString(cleaned, " "))

	if cleaned != raw {
		n.logger.Debug("normalized title",
			logging.String("raw", raw),
			logging.String("title", cleaned))
	}
	return cleaned
}

// ExtractYear returns the first plausible release year (19xx/20xx) in the
// raw name, or "" when none is present.
func ExtractYear(raw string) string {
	return yearPattern.FindString(raw)
}

func knownExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".mp4", ".mkv", ".avi", ".mov", ".wmv", ".flv", ".webm", ".m4v", ".mpg", ".mpeg", ".srt":
		return true
	}
	return false
}
