package model

import (
	"errors"
	"iter"
	"testing"
	"time"
)

func TestNormalizeDate(t *testing.T) {
	tables := []struct {
		pubDate string
		date    string
	}{
		{"Wed, 15 Jan 2020 08:00:00 +0000", "20200115"},
		{"Wed, 1 Jan 2020 23:59:59 -0500", "20200101"},
		{"Tue, 31 Dec 2019 23:30:00 -0100", "20191231"},
		{"  Fri, 06 Mar 2020 10:00:00 +0200 ", "20200306"},
		{"Wed, 15 Jan 2020 08:00:00 Z", "20200115"},
		{"Wed, 15 Jan 2020 23:00:00 +00:00", "20200115"},
		{"Thu, 16 Jan 2020 00:30:00 +01:00", "20200116"},
		{"Wed, 1 Jan 2020 08:00:00 Z", "20200101"},
	}
	for _, table := range tables {
		date, err := NormalizeDate(table.pubDate)
		if err != nil {
			t.Errorf("NormalizeDate(%q) returned error: %v", table.pubDate, err)
			continue
		}
		if date != table.date {
			t.Errorf("NormalizeDate(%q) was incorrect, got: %s, want: %s", table.pubDate, date, table.date)
		}
	}
}

func TestNormalizeDateInvalid(t *testing.T) {
	for _, pubDate := range []string{"", "yesterday", "2020-01-15T08:00:00Z", "Wed, 15 Jan 2020 08:00:00"} {
		_, err := NormalizeDate(pubDate)
		if !errors.Is(err, ErrInvalidDate) {
			t.Errorf("NormalizeDate(%q) got error %v, want ErrInvalidDate", pubDate, err)
		}
	}
}

func TestParseItunesDuration(t *testing.T) {
	tables := []struct {
		s string
		d time.Duration
	}{
		{"3600", time.Hour},
		{"45:12", 45*time.Minute + 12*time.Second},
		{"01:02:03", time.Hour + 2*time.Minute + 3*time.Second},
		{" 00:00:59 ", 59 * time.Second},
	}
	for _, table := range tables {
		d, err := ParseItunesDuration(table.s)
		if err != nil {
			t.Errorf("ParseItunesDuration(%q) returned error: %v", table.s, err)
			continue
		}
		if d != table.d {
			t.Errorf("ParseItunesDuration(%q) was incorrect, got: %s, want: %s", table.s, d, table.d)
		}
	}
	for _, s := range []string{"", "1:2:3:4", "ten minutes", "-5"} {
		if _, err := ParseItunesDuration(s); err == nil {
			t.Errorf("ParseItunesDuration(%q) expected error", s)
		}
	}
}

func TestFeedEpisodesRestartable(t *testing.T) {
	items := []Episode{{GUID: "a"}, {GUID: "b"}}
	feed := NewFeed(Channel{Title: "Show"}, len(items), func() iter.Seq2[Episode, error] {
		return func(yield func(Episode, error) bool) {
			for _, e := range items {
				if !yield(e, nil) {
					return
				}
			}
		}
	})
	for run := 0; run < 2; run++ {
		var guids []string
		for e, err := range feed.Episodes() {
			if err != nil {
				t.Fatal(err)
			}
			guids = append(guids, e.GUID)
		}
		if len(guids) != 2 || guids[0] != "a" || guids[1] != "b" {
			t.Errorf("run %d got %v, want [a b]", run, guids)
		}
	}
	if feed.Len() != 2 {
		t.Errorf("Len() was incorrect, got: %d, want: 2", feed.Len())
	}
}
