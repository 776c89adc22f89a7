package tmdb

// Result represents a single TMDB movie search match.
type Result struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title"`
	Overview      string  `json:"overview"`
	ReleaseDate   string  `json:"release_date"`
	PosterPath    string  `json:"poster_path"`
	Popularity    float64 `json:"popularity"`
	VoteAverage   float64 `json:"vote_average"`
	VoteCount     int64   `json:"vote_count"`
}

// Year returns the release year (first four digits of the release date),
// or "" when the date is absent or malformed.
func (r Result) Year() string {
	if len(r.ReleaseDate) < 4 {
		return ""
	}
	return r.ReleaseDate[:4]
}

type searchResponse struct {
	Page         int      `json:"page"`
	Results      []Result `json:"results"`
	TotalPages   int      `json:"total_pages"`
	TotalResults int      `json:"total_results"`
}

// Genre is a TMDB genre entry.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CastMember is a credited actor on a movie.
type CastMember struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
	Order       int    `json:"order"`
}

// CrewMember is a credited crew entry on a movie.
type CrewMember struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Job         string `json:"job"`
	Department  string `json:"department"`
	ProfilePath string `json:"profile_path"`
}

// Credits bundles the cast and crew of a movie.
type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// Video is a promotional video entry (trailers, teasers, clips).
type Video struct {
	Key  string `json:"key"`
	Site string `json:"site"`
	Type string `json:"type"`
}

type videoList struct {
	Results []Video `json:"results"`
}

// Image is a single image entry from the images append.
type Image struct {
	FilePath    string  `json:"file_path"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	VoteAverage float64 `json:"vote_average"`
}

type imageList struct {
	Backdrops []Image `json:"backdrops"`
	Posters   []Image `json:"posters"`
	Profiles  []Image `json:"profiles"`
}

// Details is the full movie payload with credits, videos, and images
// appended.
type Details struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	OriginalTitle string    `json:"original_title"`
	Overview      string    `json:"overview"`
	ReleaseDate   string    `json:"release_date"`
	PosterPath    string    `json:"poster_path"`
	BackdropPath  string    `json:"backdrop_path"`
	Genres        []Genre   `json:"genres"`
	Runtime       int       `json:"runtime"`
	VoteAverage   float64   `json:"vote_average"`
	Credits       Credits   `json:"credits"`
	Videos        videoList `json:"videos"`
	Images        imageList `json:"images"`
}

// TrailerKey returns the key of the first YouTube trailer, or "" when the
// movie has none.
func (d *Details) TrailerKey() string {
	for _, video := range d.Videos.Results {
		if video.Site == "YouTube" && video.Type == "Trailer" {
			return video.Key
		}
	}
	return ""
}

// Directors returns the crew members credited with the Director job, in
// provider order.
func (d *Details) Directors() []CrewMember {
	var directors []CrewMember
	for _, member := range d.Credits.Crew {
		if member.Job == "Director" {
			directors = append(directors, member)
		}
	}
	return directors
}

// TopCast returns at most limit cast members in billing order.
func (d *Details) TopCast(limit int) []CastMember {
	if limit <= 0 || limit > len(d.Credits.Cast) {
		limit = len(d.Credits.Cast)
	}
	return d.Credits.Cast[:limit]
}

// PersonDetails is the person payload with images appended.
type PersonDetails struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	ProfilePath string    `json:"profile_path"`
	Images      imageList `json:"images"`
}
