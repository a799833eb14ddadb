package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ieee0824/lpcvowel"
)

// readManifest parses path<TAB>label lines. Blank lines and lines starting
// with # are ignored. Relative paths are resolved against baseDir. The label
// column may be omitted for unlabeled recordings.
func readManifest(r io.Reader, baseDir string) ([]lpcvowel.Utterance, error) {
	var utts []lpcvowel.Utterance
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		path, label, _ := strings.Cut(line, "\t")
		path = strings.TrimSpace(path)
		label = strings.TrimSpace(label)
		if path == "" {
			return nil, fmt.Errorf("manifest line %d: empty path", lineNo)
		}
		if strings.ContainsAny(label, " \t") {
			return nil, fmt.Errorf("manifest line %d: label %q contains whitespace", lineNo, label)
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		utts = append(utts, lpcvowel.Utterance{Path: path, Label: label})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return utts, nil
}

func loadManifest(path string) ([]lpcvowel.Utterance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()
	utts, err := readManifest(f, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(utts) == 0 {
		return nil, fmt.Errorf("%s: no utterances", path)
	}
	return utts, nil
}
