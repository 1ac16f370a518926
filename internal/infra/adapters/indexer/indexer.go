// indexer renders a browsable index.html for each archived show from
// the channel and episode metadata files. Implements the
// ports.ForIndexing interface.
package indexer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sa6mwa/podarchiver/internal/app/model"
	"github.com/sa6mwa/podarchiver/internal/app/ports"
	"github.com/sa6mwa/podarchiver/internal/infra/adapters/logger"
	"github.com/sa6mwa/podarchiver/internal/infra/adapters/store"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
)

const IndexFile = "index.html"

type forIndexing struct {
	store    ports.ForStoring
	minifier *minify.M
}

func New(s ports.ForStoring) ports.ForIndexing {
	m := minify.New()
	m.AddFunc("text/html", html.Minify)
	return &forIndexing{
		store:    s,
		minifier: m,
	}
}

func (x *forIndexing) WriteIndex(ctx context.Context, showTitle string) error {
	l := logger.FromContext(ctx)
	dir := x.store.ShowDir(showTitle)
	channel := model.Channel{Title: showTitle}
	name := filepath.Base(dir)
	if b, err := os.ReadFile(filepath.Join(dir, name+ports.ChannelExtension)); err == nil {
		if err := json.Unmarshal(b, &channel); err != nil {
			return fmt.Errorf("unable to read channel metadata: %w", err)
		}
	}
	files, err := filepath.Glob(filepath.Join(dir, "*"+ports.MetadataExtension))
	if err != nil {
		return err
	}
	type entry struct {
		episode model.Episode
		root    string
	}
	var entries []entry
	for _, f := range files {
		e, err := store.ReadEpisodeMetadata(f)
		if err != nil {
			l.Warn("Skipping unreadable episode metadata", "file", f, "error", err)
			continue
		}
		entries = append(entries, entry{episode: e, root: strings.TrimSuffix(filepath.Base(f), ports.MetadataExtension)})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].episode.Date != entries[j].episode.Date {
			return entries[i].episode.Date > entries[j].episode.Date
		}
		return entries[i].episode.Title < entries[j].episode.Title
	})

	md := &strings.Builder{}
	fmt.Fprintf(md, "# %s\n\n", escape(channel.Title))
	if channel.ImageURL != "" {
		fmt.Fprintf(md, "![cover](%s)\n\n", channel.ImageURL)
	}
	if channel.Summary != "" {
		fmt.Fprintf(md, "%s\n\n", channel.Summary)
	}
	if channel.Link != "" {
		fmt.Fprintf(md, "<%s>\n\n", channel.Link)
	}
	for _, e := range entries {
		ep := e.episode
		heading := escape(ep.Title)
		if ep.Number != "" {
			heading = ep.Number + ". " + heading
		}
		fmt.Fprintf(md, "## %s\n\n", heading)
		fmt.Fprintf(md, "%s | %s | [mp3](%s) | [cover](%s)", displayDate(ep.Date), ep.Duration,
			linkPath(e.root+ports.MediaExtension), linkPath(e.root+ports.ImageExtension))
		if ep.Link != "" {
			fmt.Fprintf(md, " | [web](%s)", ep.Link)
		}
		fmt.Fprintf(md, "\n\n%s\n\n", ep.Summary)
	}

	page := "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>" +
		htmlEscaper.Replace(channel.Title) + "</title>\n</head>\n<body>\n" +
		MarkdownToHTML(md.String()) + "</body>\n</html>\n"
	minified, err := x.minifier.String("text/html", page)
	if err != nil {
		l.Warn("Unable to minify index, writing as is", "show", showTitle, "error", err)
		minified = page
	}
	target := filepath.Join(dir, IndexFile)
	if err := os.WriteFile(target, []byte(minified), 0644); err != nil {
		return err
	}
	l.Info("Wrote index", "file", target, "episodes", len(entries))
	return nil
}

var (
	markdownEscaper = strings.NewReplacer(`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`, "[", `\[`, "]", `\]`, "#", `\#`)
	htmlEscaper     = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)

func escape(s string) string {
	return markdownEscaper.Replace(s)
}

// linkPath percent-encodes a file name for use as a relative link.
func linkPath(name string) string {
	return url.PathEscape(name)
}

func displayDate(date string) string {
	if len(date) != 8 {
		return date
	}
	return date[:4] + "-" + date[4:6] + "-" + date[6:]
}
