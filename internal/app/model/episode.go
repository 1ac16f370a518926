package model

import "time"

// Episode is one item of a feed. The JSON form is the .data metadata
// file written next to the archived media. GUID is the identity
// recorded in the ledger.
type Episode struct {
	Title    string `json:"title"`
	Number   string `json:"num"`
	Link     string `json:"link"`
	MediaURL string `json:"file"`
	GUID     string `json:"guid"`
	// Date is the publish date as YYYYMMDD.
	Date     string `json:"date"`
	ImageURL string `json:"image"`
	Duration string `json:"duration"`
	Summary  string `json:"summary"`

	Published time.Time `json:"-"`
}

// EpisodeState is where an episode is in a single archive run. Nothing
// but Recorded (the ledger entry) survives the process.
type EpisodeState int

const (
	Pending EpisodeState = iota
	Skipped
	Downloading
	MetadataWritten
	Recorded
	Failed
)

func (s EpisodeState) String() string {
	switch s {
	case Pending:
		return "pending"
	case Skipped:
		return "skipped"
	case Downloading:
		return "downloading"
	case MetadataWritten:
		return "metadata-written"
	case Recorded:
		return "recorded"
	case Failed:
		return "failed"
	}
	return "unknown"
}
