// ledger is the file-backed archive ledger implementing
// ports.ForLedgering. The ledger file holds one GUID per line and is
// only ever appended to. An advisory lock on <file>.lock keeps two
// runs from appending to the same ledger at the same time.
package ledger

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gofrs/flock"
	"github.com/sa6mwa/podarchiver/internal/app/ports"
	"github.com/sa6mwa/podarchiver/internal/infra/adapters/logger"
)

var (
	ErrLocked error = errors.New("ledger is locked by another run")
	ErrClosed error = errors.New("ledger is closed")
)

type forLedgering struct {
	path  string
	file  *os.File
	lock  *flock.Flock
	guids map[string]struct{}
}

// Open opens or creates the ledger at path and loads its GUIDs into
// memory. The returned ledger must be closed to release the lock.
func Open(ctx context.Context, path string) (ports.ForLedgering, error) {
	l := logger.FromContext(ctx)
	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrLocked)
	}
	guids, err := load(path)
	if err != nil {
		_ = lock.Unlock()
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		_ = lock.Unlock()
		return nil, err
	}
	l.Debug("Opened ledger", "file", path, "entries", len(guids))
	return &forLedgering{
		path:  path,
		file:  f,
		lock:  lock,
		guids: guids,
	}, nil
}

func load(path string) (map[string]struct{}, error) {
	guids := make(map[string]struct{})
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return guids, nil
		}
		return nil, err
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		guid := strings.TrimRight(scanner.Text(), "\r")
		if guid == "" {
			continue
		}
		guids[guid] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("unable to read ledger %s: %w", path, err)
	}
	return guids, nil
}

func (g *forLedgering) Contains(guid string) bool {
	_, ok := g.guids[guid]
	return ok
}

func (g *forLedgering) Record(guid string) error {
	if g.file == nil {
		return ErrClosed
	}
	if strings.ContainsAny(guid, "\r\n") {
		return fmt.Errorf("guid %q contains a line break", guid)
	}
	if _, err := g.file.WriteString(guid + "\n"); err != nil {
		return fmt.Errorf("unable to append to ledger %s: %w", g.path, err)
	}
	g.guids[guid] = struct{}{}
	return nil
}

func (g *forLedgering) Len() int {
	return len(g.guids)
}

func (g *forLedgering) Close() error {
	if g.file == nil {
		return nil
	}
	err := g.file.Close()
	g.file = nil
	if uerr := g.lock.Unlock(); err == nil {
		err = uerr
	}
	return err
}
