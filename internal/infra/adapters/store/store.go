// store implements ports.ForStoring, the directory-per-show archive
// layout on local disk.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
	"github.com/sa6mwa/podarchiver/internal/app/model"
	"github.com/sa6mwa/podarchiver/internal/app/ports"
	"github.com/sa6mwa/podarchiver/internal/infra/adapters/logger"
	"golang.org/x/text/unicode/norm"
)

type forStoring struct {
	root string
}

// New returns a store rooted at root (usually "Podcasts").
func New(root string) ports.ForStoring {
	return &forStoring{root: root}
}

func (s *forStoring) Root() string {
	return s.root
}

func (s *forStoring) ShowDir(showTitle string) string {
	return filepath.Join(s.root, Component(showTitle))
}

func (s *forStoring) EnsureShowDirectory(showTitle string) error {
	return os.MkdirAll(s.ShowDir(showTitle), 0755)
}

func (s *forStoring) ChannelFile(showTitle string) string {
	name := Component(showTitle)
	return filepath.Join(s.root, name, name+ports.ChannelExtension)
}

func (s *forStoring) WriteChannelMetadata(ctx context.Context, channel model.Channel) (bool, error) {
	l := logger.FromContext(ctx)
	file := s.ChannelFile(channel.Title)
	b, err := marshal(channel)
	if err != nil {
		return false, err
	}
	existing, err := os.ReadFile(file)
	switch {
	case err == nil:
		if !bytes.Equal(existing, b) {
			edits := myers.ComputeEdits(span.URIFromPath(file), string(existing), string(b))
			diff := fmt.Sprint(gotextdiff.ToUnified(file, "upstream", string(existing), edits))
			l.Info("Channel metadata changed upstream, keeping first-seen copy", "file", file, "diff", diff)
		}
		return false, nil
	case errors.Is(err, fs.ErrNotExist):
	default:
		return false, err
	}
	if err := writeNew(file, b); err != nil {
		return false, err
	}
	l.Debug("Wrote channel metadata", "file", file)
	return true, nil
}

// RootName builds <root>/<show>/<show>_<date>_<title>.
func (s *forStoring) RootName(showTitle string, episode model.Episode) string {
	show := Component(showTitle)
	return filepath.Join(s.root, show, show+"_"+episode.Date+"_"+Component(episode.Title))
}

func (s *forStoring) WriteEpisodeMetadata(ctx context.Context, episode model.Episode, rootName string) (bool, error) {
	file := rootName + ports.MetadataExtension
	if _, err := os.Stat(file); err == nil {
		logger.FromContext(ctx).Debug("Episode metadata exists, not overwriting", "file", file)
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}
	b, err := marshal(episode)
	if err != nil {
		return false, err
	}
	if err := writeNew(file, b); err != nil {
		return false, err
	}
	return true, nil
}

// marshal encodes v as indented JSON without escaping HTML, summaries
// are usually HTML.
func marshal(v any) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("unable to marshal json: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// writeNew creates file exclusively and writes b to it.
func writeNew(file string, b []byte) error {
	f, err := os.OpenFile(file, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}
	if _, err := f.Write(b); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

var componentReplacer = strings.NewReplacer("/", "-", "\\", "-", "\x00", "")

// Component returns s usable as a single path element: NFC normalized
// with path separators replaced. Titles are otherwise kept verbatim.
func Component(s string) string {
	s = componentReplacer.Replace(norm.NFC.String(strings.TrimSpace(s)))
	switch s {
	case "", ".", "..":
		return "_" + s
	}
	return s
}
