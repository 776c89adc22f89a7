package catalog

import "time"

// Person is a credited director or cast member, always in structured form.
type Person struct {
	RemotePersonID int64  `json:"remote_person_id"`
	Name           string `json:"name"`
	ProfilePath    string `json:"profile_path,omitempty"`
	LocalPhotoPath string `json:"local_photo_path,omitempty"`
	Character      string `json:"character,omitempty"`
}

// Movie is a single catalog record binding remote metadata to a local
// video file.
type Movie struct {
	LocalID           int64     `json:"local_id"`
	RemoteID          int64     `json:"remote_id"`
	Title             string    `json:"title"`
	OriginalTitle     string    `json:"original_title"`
	ReleaseDate       string    `json:"release_date"`
	Overview          string    `json:"overview"`
	LocalPosterPath   string    `json:"local_poster_path,omitempty"`
	BackdropLocalPath string    `json:"backdrop_local_path,omitempty"`
	Genres            []string  `json:"genres"`
	Runtime           int       `json:"runtime,omitempty"`
	VoteAverage       float64   `json:"vote_average,omitempty"`
	Directors         []Person  `json:"directors"`
	Cast              []Person  `json:"cast"`
	TrailerKey        string    `json:"trailer_key,omitempty"`
	FilePath          string    `json:"file_path"`
	DateAdded         time.Time `json:"date_added"`
	LastUpdated       time.Time `json:"last_updated"`
}

// ReleaseYear returns the first four digits of the release date, or "".
func (m Movie) ReleaseYear() string {
	if len(m.ReleaseDate) < 4 {
		return ""
	}
	return m.ReleaseDate[:4]
}

// Metadata carries the enriched fields used to create or refresh a record.
// The store owns local IDs, file binding, and timestamps.
type Metadata struct {
	RemoteID          int64
	Title             string
	OriginalTitle     string
	ReleaseDate       string
	Overview          string
	LocalPosterPath   string
	BackdropLocalPath string
	Genres            []string
	Runtime           int
	VoteAverage       float64
	Directors         []Person
	Cast              []Person
	TrailerKey        string
}

// Fields is a partial update applied by UpdateFields. Nil members are left
// untouched.
type Fields struct {
	Title       *string
	Overview    *string
	ReleaseDate *string
	Genres      *[]string
	Runtime     *int
	VoteAverage *float64
	TrailerKey  *string
}

// Document is the persisted catalog: the full movie list plus the
// monotonically increasing local ID counter. The counter never moves
// backwards, so local IDs are not reused after deletions.
type Document struct {
	Movies      []Movie `json:"movies"`
	NextLocalID int64   `json:"next_local_id,omitempty"`
}

// Report summarizes a validate-and-prune pass.
type Report struct {
	ValidCount    int
	RemovedCount  int
	RemovedTitles []string
}

// Sort keys accepted by Store.Sort.
const (
	SortByTitle       = "title"
	SortByDateAdded   = "date_added"
	SortByVoteAverage = "vote_average"
	SortByReleaseDate = "release_date"
)
