package model

// Channel is the show-level metadata of a feed. Title is the identity
// of the show and names its archive directory.
type Channel struct {
	Title    string `json:"title"`
	Link     string `json:"link"`
	Summary  string `json:"summary"`
	ImageURL string `json:"image_url"`
}
