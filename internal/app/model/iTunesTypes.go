package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sa6mwa/mp3duration"
)

// DateFormat is how publish dates are stored in metadata and file
// names.
const DateFormat = "20060102"

// RFC 2822 as used by pubDate. Feeds in the wild often drop the
// leading zero of the day, write UTC as Z or put a colon in the
// offset.
var pubDateLayouts = []string{
	time.RFC1123Z,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, _2 Jan 2006 15:04:05 Z0700",
	"Mon, _2 Jan 2006 15:04:05 Z07:00",
}

// ParsePubDate parses an RSS pubDate with a numeric timezone offset
// or Z.
// The error wraps ErrInvalidDate.
func ParsePubDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range pubDateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// NormalizeDate returns the YYYYMMDD form of an RSS pubDate in the
// pubDate's own timezone.
func NormalizeDate(pubDate string) (string, error) {
	t, err := ParsePubDate(pubDate)
	if err != nil {
		return "", err
	}
	return t.Format(DateFormat), nil
}

// ParseItunesDuration parses itunes:duration which is either seconds,
// MM:SS or HH:MM:SS.
func ParseItunesDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}
	values := strings.Split(s, ":")
	if len(values) > 3 {
		return 0, fmt.Errorf("duration must be seconds, MM:SS or HH:MM:SS, not %s", s)
	}
	var d time.Duration
	for _, v := range values {
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("duration %s: %w", s, err)
		}
		if n < 0 {
			return 0, fmt.Errorf("negative duration %s", s)
		}
		d = d*60 + time.Duration(n)
	}
	return d * time.Second, nil
}

// FormatDuration returns d in the itunes HH:MM:SS format.
func FormatDuration(d time.Duration) string {
	return mp3duration.FormatDuration(d)
}
