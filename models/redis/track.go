package redis

// Track is one catalog song as consumed by the pool builder and game payloads.
type Track struct {
	TrackID     int64  `json:"track_id"`
	ArtistName  string `json:"artist_name"`
	TrackName   string `json:"track_name"`
	ReleaseYear int    `json:"release_year"`
	PreviewURL  string `json:"preview_url"`
	ArtworkURL  string `json:"artwork_url"`
}

// TriviaQuestion is one multiple-choice question: the correct track plus
// three distractors, already shuffled into Options.
type TriviaQuestion struct {
	Correct Track   `json:"correct"`
	Options []Track `json:"options"`
}
