// parser implements ports.ForParsing on top of the RSS parser and
// iTunes extension of github.com/mmcdole/gofeed.
package parser

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"

	ext "github.com/mmcdole/gofeed/extensions"
	"github.com/mmcdole/gofeed/rss"
	"github.com/sa6mwa/podarchiver/internal/app/model"
	"github.com/sa6mwa/podarchiver/internal/app/ports"
	"github.com/sa6mwa/podarchiver/internal/infra/adapters/logger"
)

var (
	ErrEmptyDocument error = errors.New("empty feed document")
)

// forParsing implements the ports.ForParsing port (interface).
type forParsing struct{}

func New() ports.ForParsing {
	return &forParsing{}
}

func (p *forParsing) Parse(ctx context.Context, raw []byte) (*model.Feed, error) {
	l := logger.FromContext(ctx)
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, ErrEmptyDocument
	}
	fp := &rss.Parser{}
	feed, err := fp.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("unable to parse feed: %w", err)
	}
	channel, err := channelOf(feed)
	if err != nil {
		return nil, err
	}
	items := feed.Items
	l.Debug("Parsed feed", "title", channel.Title, "items", len(items))
	return model.NewFeed(channel, len(items), func() iter.Seq2[model.Episode, error] {
		return func(yield func(model.Episode, error) bool) {
			for i, item := range items {
				episode, err := episodeOf(item)
				if err != nil {
					err = fmt.Errorf("item %d of %s: %w", i+1, channel.Title, err)
				}
				if !yield(episode, err) {
					return
				}
			}
		}
	}), nil
}

func channelOf(feed *rss.Feed) (model.Channel, error) {
	c := model.Channel{
		Title: strings.TrimSpace(feed.Title),
		Link:  strings.TrimSpace(feed.Link),
	}
	if c.Title == "" {
		return model.Channel{}, fmt.Errorf("channel: %w", model.MissingField("title"))
	}
	if it := feed.ITunesExt; it != nil {
		c.Summary = FirstLine(it.Summary)
		c.ImageURL = strings.TrimSpace(it.Image)
	}
	return c, nil
}

// episodeOf maps item onto an Episode. On error the fields read so
// far are returned with it, the title for a status line.
func episodeOf(item *rss.Item) (model.Episode, error) {
	if item == nil {
		return model.Episode{}, model.MissingField("item")
	}
	var it ext.ITunesItemExtension
	if item.ITunesExt != nil {
		it = *item.ITunesExt
	}
	e := model.Episode{
		Title:  strings.TrimSpace(item.Title),
		Number: episodeNumber(it.Episode),
		Link:   strings.TrimSpace(item.Link),
	}
	if e.Title == "" {
		return e, model.MissingField("title")
	}
	if item.Enclosure != nil {
		e.MediaURL = strings.TrimSpace(item.Enclosure.URL)
	}
	if e.MediaURL == "" {
		return e, model.MissingField("enclosure url")
	}
	if item.GUID != nil {
		e.GUID = strings.TrimSpace(item.GUID.Value)
	}
	if e.GUID == "" {
		return e, model.MissingField("guid")
	}
	if strings.TrimSpace(item.PubDate) == "" {
		return e, model.MissingField("pubDate")
	}
	published, err := model.ParsePubDate(item.PubDate)
	if err != nil {
		return e, err
	}
	e.Published = published
	e.Date = published.Format(model.DateFormat)
	if e.ImageURL = strings.TrimSpace(it.Image); e.ImageURL == "" {
		return e, model.MissingField("itunes:image")
	}
	if e.Duration = strings.TrimSpace(it.Duration); e.Duration == "" {
		return e, model.MissingField("itunes:duration")
	}
	if e.Summary = strings.TrimSpace(it.Summary); e.Summary == "" {
		return e, model.MissingField("itunes:summary")
	}
	return e, nil
}

// episodeNumber returns the itunes:episode value if it is a
// non-negative integer, otherwise the empty string.
func episodeNumber(s string) string {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err != nil || n < 0 {
		return ""
	}
	return s
}

// FirstLine returns the text of s before the first line break. Show
// summaries sometimes carry several paragraphs of HTML, only the first
// line is kept.
func FirstLine(s string) string {
	s = strings.TrimSpace(s)
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSpace(line)
}
