package model

import "iter"

// Feed is a parsed podcast feed. Episodes are produced lazily in
// document order; each call to Episodes starts over from the first
// item.
type Feed struct {
	Channel  Channel
	count    int
	episodes func() iter.Seq2[Episode, error]
}

// NewFeed returns a Feed with count items where episodes returns a
// fresh sequence every time it is called.
func NewFeed(channel Channel, count int, episodes func() iter.Seq2[Episode, error]) *Feed {
	return &Feed{
		Channel:  channel,
		count:    count,
		episodes: episodes,
	}
}

// Len returns the number of items in the feed, including items that
// fail to parse.
func (f *Feed) Len() int {
	return f.count
}

// Episodes yields one (Episode, nil) per valid item and one
// (Episode{}, err) per item missing a required field.
func (f *Feed) Episodes() iter.Seq2[Episode, error] {
	if f.episodes == nil {
		return func(yield func(Episode, error) bool) {}
	}
	return f.episodes()
}
