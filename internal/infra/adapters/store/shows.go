package store

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sa6mwa/podarchiver/internal/app/model"
	"github.com/sa6mwa/podarchiver/internal/app/ports"
	"github.com/sa6mwa/podarchiver/internal/infra/adapters/logger"
)

// Shows summarizes every show directory under the archive root. A
// missing root is an empty archive.
func (s *forStoring) Shows(ctx context.Context) ([]model.ShowSummary, error) {
	l := logger.FromContext(ctx)
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var shows []model.ShowSummary
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		show, err := s.summarize(ctx, entry.Name())
		if err != nil {
			return nil, err
		}
		shows = append(shows, show)
	}
	sort.Slice(shows, func(i, j int) bool {
		return strings.ToLower(shows[i].Title) < strings.ToLower(shows[j].Title)
	})
	l.Debug("Summarized archive", "root", s.root, "shows", len(shows))
	return shows, nil
}

func (s *forStoring) summarize(ctx context.Context, dirName string) (model.ShowSummary, error) {
	l := logger.FromContext(ctx)
	dir := filepath.Join(s.root, dirName)
	show := model.ShowSummary{Title: dirName}
	if b, err := os.ReadFile(filepath.Join(dir, dirName+ports.ChannelExtension)); err == nil {
		var channel model.Channel
		if err := json.Unmarshal(b, &channel); err == nil && channel.Title != "" {
			show.Title = channel.Title
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return show, err
	}
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return show, err
		}
		show.Bytes += info.Size()
		if filepath.Ext(entry.Name()) != ports.MetadataExtension {
			continue
		}
		show.Episodes++
		episode, err := ReadEpisodeMetadata(filepath.Join(dir, entry.Name()))
		if err != nil {
			l.Warn("Unreadable episode metadata", "file", entry.Name(), "error", err)
			continue
		}
		if d, err := model.ParseItunesDuration(episode.Duration); err == nil {
			show.Duration += d
		}
	}
	return show, nil
}

// ReadEpisodeMetadata decodes a .data file.
func ReadEpisodeMetadata(file string) (model.Episode, error) {
	var episode model.Episode
	b, err := os.ReadFile(file)
	if err != nil {
		return episode, err
	}
	err = json.Unmarshal(b, &episode)
	return episode, err
}
