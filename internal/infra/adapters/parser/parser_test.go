package parser

import (
	"context"
	"errors"
	"testing"

	"github.com/sa6mwa/podarchiver/internal/app/model"
	"github.com/sa6mwa/podarchiver/internal/infra/adapters/logger"
)

const testFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd">
  <channel>
    <title>Radio Waves</title>
    <link>https://radiowaves.example.com</link>
    <description>Plain description</description>
    <itunes:summary>A show about radio.
&lt;p&gt;Second paragraph with HTML.&lt;/p&gt;</itunes:summary>
    <itunes:image href="https://radiowaves.example.com/cover.jpg"/>
    <item>
      <title>Pilot</title>
      <itunes:episode>1</itunes:episode>
      <link>https://radiowaves.example.com/1</link>
      <enclosure url="https://cdn.example.com/1.mp3" length="1000" type="audio/mpeg"/>
      <guid isPermaLink="false">rw-0001</guid>
      <pubDate>Wed, 15 Jan 2020 08:00:00 +0000</pubDate>
      <itunes:image href="https://cdn.example.com/1.jpg"/>
      <itunes:duration>00:42:00</itunes:duration>
      <itunes:summary>The first one.</itunes:summary>
    </item>
    <item>
      <title>No number</title>
      <enclosure url="https://cdn.example.com/2.mp3" length="1000" type="audio/mpeg"/>
      <guid>rw-0002</guid>
      <pubDate>Sat, 1 Feb 2020 20:30:00 -0800</pubDate>
      <itunes:image href="https://cdn.example.com/2.jpg"/>
      <itunes:duration>2520</itunes:duration>
      <itunes:summary>The second one.</itunes:summary>
    </item>
    <item>
      <title>Missing enclosure</title>
      <guid>rw-0003</guid>
      <pubDate>Sat, 08 Feb 2020 20:30:00 +0000</pubDate>
      <itunes:image href="https://cdn.example.com/3.jpg"/>
      <itunes:duration>2520</itunes:duration>
      <itunes:summary>Broken.</itunes:summary>
    </item>
    <item>
      <title>Bad date</title>
      <itunes:episode>four</itunes:episode>
      <enclosure url="https://cdn.example.com/4.mp3" length="1000" type="audio/mpeg"/>
      <guid>rw-0004</guid>
      <pubDate>2020-02-15</pubDate>
      <itunes:image href="https://cdn.example.com/4.jpg"/>
      <itunes:duration>2520</itunes:duration>
      <itunes:summary>Broken date.</itunes:summary>
    </item>
  </channel>
</rss>`

func testContext() context.Context {
	return logger.WithLogger(context.Background(), logger.Discard())
}

func parse(t *testing.T, doc string) *model.Feed {
	t.Helper()
	feed, err := New().Parse(testContext(), []byte(doc))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	return feed
}

func TestParseChannel(t *testing.T) {
	feed := parse(t, testFeed)
	want := model.Channel{
		Title:    "Radio Waves",
		Link:     "https://radiowaves.example.com",
		Summary:  "A show about radio.",
		ImageURL: "https://radiowaves.example.com/cover.jpg",
	}
	if feed.Channel != want {
		t.Errorf("channel was incorrect, got: %+v, want: %+v", feed.Channel, want)
	}
	if feed.Len() != 4 {
		t.Errorf("Len() was incorrect, got: %d, want: 4", feed.Len())
	}
}

func TestParseEpisodes(t *testing.T) {
	feed := parse(t, testFeed)
	var episodes []model.Episode
	var errs []error
	for e, err := range feed.Episodes() {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		episodes = append(episodes, e)
	}
	if len(episodes) != 2 {
		t.Fatalf("expected 2 valid episodes, got %d", len(episodes))
	}
	first := episodes[0]
	tables := []struct {
		name string
		got  string
		want string
	}{
		{"title", first.Title, "Pilot"},
		{"num", first.Number, "1"},
		{"link", first.Link, "https://radiowaves.example.com/1"},
		{"file", first.MediaURL, "https://cdn.example.com/1.mp3"},
		{"guid", first.GUID, "rw-0001"},
		{"date", first.Date, "20200115"},
		{"image", first.ImageURL, "https://cdn.example.com/1.jpg"},
		{"duration", first.Duration, "00:42:00"},
		{"summary", first.Summary, "The first one."},
		{"second num", episodes[1].Number, ""},
		{"second link", episodes[1].Link, ""},
		{"second date", episodes[1].Date, "20200201"},
	}
	for _, table := range tables {
		if table.got != table.want {
			t.Errorf("%s was incorrect, got: %q, want: %q", table.name, table.got, table.want)
		}
	}
	if len(errs) != 2 {
		t.Fatalf("expected 2 episode errors, got %d: %v", len(errs), errs)
	}
	if !errors.Is(errs[0], model.ErrMissingField) {
		t.Errorf("expected ErrMissingField for missing enclosure, got %v", errs[0])
	}
	if !errors.Is(errs[1], model.ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate for bad date, got %v", errs[1])
	}
}

func TestParseRequiredFields(t *testing.T) {
	item := func(body string) string {
		return `<rss version="2.0" xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd"><channel><title>Show</title><item>` + body + `</item></channel></rss>`
	}
	const (
		title     = `<title>T</title>`
		enclosure = `<enclosure url="https://cdn.example.com/a.mp3"/>`
		guid      = `<guid>g</guid>`
		pubDate   = `<pubDate>Wed, 15 Jan 2020 08:00:00 +0000</pubDate>`
		image     = `<itunes:image href="https://cdn.example.com/a.jpg"/>`
		duration  = `<itunes:duration>60</itunes:duration>`
		summary   = `<itunes:summary>S</itunes:summary>`
	)
	tables := []struct {
		missing string
		body    string
	}{
		{"title", enclosure + guid + pubDate + image + duration + summary},
		{"enclosure url", title + guid + pubDate + image + duration + summary},
		{"guid", title + enclosure + pubDate + image + duration + summary},
		{"pubDate", title + enclosure + guid + image + duration + summary},
		{"itunes:image", title + enclosure + guid + pubDate + duration + summary},
		{"itunes:duration", title + enclosure + guid + pubDate + image + summary},
		{"itunes:summary", title + enclosure + guid + pubDate + image + duration},
	}
	for _, table := range tables {
		feed := parse(t, item(table.body))
		for e, err := range feed.Episodes() {
			if !errors.Is(err, model.ErrMissingField) {
				t.Errorf("missing %s: expected ErrMissingField, got %v", table.missing, err)
			}
			if table.missing != "title" && e.Title != "T" {
				t.Errorf("missing %s: title was incorrect, got: %q, want: %q", table.missing, e.Title, "T")
			}
		}
	}
	feed := parse(t, item(title+enclosure+guid+pubDate+image+duration+summary))
	for e, err := range feed.Episodes() {
		if err != nil {
			t.Errorf("complete item returned error: %v", err)
		}
		if e.GUID != "g" {
			t.Errorf("guid was incorrect, got: %q, want: %q", e.GUID, "g")
		}
	}
}

func TestParsePubDateForms(t *testing.T) {
	tables := []struct {
		pubDate string
		date    string
	}{
		{"Wed, 15 Jan 2020 08:00:00 +0000", "20200115"},
		{"Wed, 15 Jan 2020 08:00:00 Z", "20200115"},
		{"Wed, 15 Jan 2020 08:00:00 +00:00", "20200115"},
		{"Wed, 5 Feb 2020 23:00:00 -05:00", "20200205"},
	}
	for _, table := range tables {
		doc := `<rss version="2.0" xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd"><channel><title>Show</title><item>` +
			`<title>T</title><enclosure url="https://cdn.example.com/a.mp3"/><guid>g</guid>` +
			`<pubDate>` + table.pubDate + `</pubDate><itunes:image href="https://cdn.example.com/a.jpg"/>` +
			`<itunes:duration>60</itunes:duration><itunes:summary>S</itunes:summary></item></channel></rss>`
		for e, err := range parse(t, doc).Episodes() {
			if err != nil {
				t.Errorf("pubDate %q returned error: %v", table.pubDate, err)
				continue
			}
			if e.Date != table.date {
				t.Errorf("date of %q was incorrect, got: %s, want: %s", table.pubDate, e.Date, table.date)
			}
		}
	}
}

func TestParseFeedErrors(t *testing.T) {
	tables := []struct {
		name string
		doc  string
	}{
		{"empty", "  \n"},
		{"not xml", "this is not a feed"},
		{"no channel title", `<rss version="2.0"><channel><link>https://example.com</link></channel></rss>`},
	}
	for _, table := range tables {
		if _, err := New().Parse(testContext(), []byte(table.doc)); err == nil {
			t.Errorf("%s: expected error", table.name)
		}
	}
}

func TestFirstLine(t *testing.T) {
	tables := []struct {
		s    string
		line string
	}{
		{"One line", "One line"},
		{"First\nSecond", "First"},
		{"\n  Padded first\r\nSecond", "Padded first"},
		{"", ""},
	}
	for _, table := range tables {
		if got := FirstLine(table.s); got != table.line {
			t.Errorf("FirstLine(%q) was incorrect, got: %q, want: %q", table.s, got, table.line)
		}
	}
}
