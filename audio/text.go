package audio

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultHeaderLines is the size of the header written by Cool Edit text
// exports (SAMPLES, BITSPERSAMPLE, CHANNELS, SAMPLERATE, NORMALIZED).
const DefaultHeaderLines = 5

// ReadText reads whitespace-delimited amplitude values.
// The first headerLines lines are discarded without interpretation.
func ReadText(r io.Reader, headerLines int) ([]float64, error) {
	br := bufio.NewReader(r)
	for i := 0; i < headerLines; i++ {
		if _, err := br.ReadString('\n'); err != nil {
			if err == io.EOF {
				return nil, fmt.Errorf("header line %d: %w", i+1, ErrInsufficientData)
			}
			return nil, fmt.Errorf("read header: %w", err)
		}
	}

	sc := bufio.NewScanner(br)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)

	var samples []float64
	for sc.Scan() {
		tok := sc.Text()
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("sample %d: parse %q: %w", len(samples), tok, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("sample %d: %q is not a finite amplitude", len(samples), tok)
		}
		samples = append(samples, v)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read samples: %w", err)
	}
	if len(samples) == 0 {
		return nil, ErrInsufficientData
	}
	return samples, nil
}

// ReadTextFile is a convenience wrapper that opens a file path.
func ReadTextFile(path string, headerLines int) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadText(f, headerLines)
}

// ReadFile loads an utterance from path. Files ending in .wav are decoded as
// PCM WAV; everything else is read as a text sample dump.
func ReadFile(path string, headerLines int) ([]float64, error) {
	if strings.EqualFold(filepath.Ext(path), ".wav") {
		samples, _, err := ReadWAVFile(path)
		return samples, err
	}
	return ReadTextFile(path, headerLines)
}
