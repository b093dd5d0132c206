//go:build linux

package host

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

type procMapsImages struct{}

func newImageTable() ImageTable { return procMapsImages{} }

func (procMapsImages) Snapshot() ([]string, error) {
	f, err := os.Open("/proc/self/maps")
	if err != nil {
		return nil, fmt.Errorf("open /proc/self/maps: %w", ErrInconclusive)
	}
	defer f.Close()
	return parseMappedImages(f), nil
}

// parseMappedImages collects the distinct file-backed mapping paths from
// /proc/<pid>/maps content, preserving first-seen order. Pseudo-paths such
// as [heap] and [stack] are not images and are dropped.
func parseMappedImages(r io.Reader) []string {
	seen := make(map[string]struct{})
	var images []string

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 6 {
			continue
		}
		path := fields[5]
		if !strings.HasPrefix(path, "/") {
			continue
		}
		if _, ok := seen[path]; ok {
			continue
		}
		seen[path] = struct{}{}
		images = append(images, path)
	}
	return images
}
