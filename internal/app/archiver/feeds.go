package archiver

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ReadFeeds returns the feed URLs of a feeds file, one URL per line.
// Surrounding whitespace is trimmed, blank lines and lines starting
// with # are ignored.
func ReadFeeds(file string) ([]string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var feeds []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		feeds = append(feeds, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", file, err)
	}
	return feeds, nil
}
