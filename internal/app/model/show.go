package model

import "time"

// ShowSummary describes one show directory of the archive.
type ShowSummary struct {
	Title    string
	Episodes int
	Bytes    int64
	Duration time.Duration
}
