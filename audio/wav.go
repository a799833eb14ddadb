package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// WAVHeader holds the parsed RIFF/WAV format fields.
type WAVHeader struct {
	SampleRate    uint32
	BitsPerSample uint16
	NumChannels   uint16
	NumSamples    int // per channel
}

type chunkHeader struct {
	ID   [4]byte
	Size uint32
}

type fmtChunk struct {
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
}

// ReadWAV reads a 16-bit PCM WAV stream and returns the first channel as raw
// integer amplitudes (no rescaling; normalization happens in Preprocess).
func ReadWAV(r io.Reader) ([]float64, WAVHeader, error) {
	var header WAVHeader

	var riff struct {
		ID   [4]byte
		Size uint32
		Wave [4]byte
	}
	if err := binary.Read(r, binary.LittleEndian, &riff); err != nil {
		return nil, header, fmt.Errorf("read RIFF header: %w", err)
	}
	if string(riff.ID[:]) != "RIFF" || string(riff.Wave[:]) != "WAVE" {
		return nil, header, errors.New("not a RIFF/WAVE file")
	}

	var format *fmtChunk
	for {
		var ch chunkHeader
		if err := binary.Read(r, binary.LittleEndian, &ch); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, header, fmt.Errorf("read chunk header: %w", err)
		}
		// chunks are word aligned
		size := int64(ch.Size) + int64(ch.Size%2)

		switch string(ch.ID[:]) {
		case "fmt ":
			var fc fmtChunk
			if err := binary.Read(r, binary.LittleEndian, &fc); err != nil {
				return nil, header, fmt.Errorf("read fmt chunk: %w", err)
			}
			if err := skip(r, size-16); err != nil {
				return nil, header, fmt.Errorf("skip fmt extension: %w", err)
			}
			if fc.AudioFormat != 1 {
				return nil, header, fmt.Errorf("unsupported audio format %d (only PCM=1 supported)", fc.AudioFormat)
			}
			if fc.BitsPerSample != 16 {
				return nil, header, fmt.Errorf("unsupported bits per sample %d (only 16 supported)", fc.BitsPerSample)
			}
			if fc.NumChannels == 0 {
				return nil, header, errors.New("fmt chunk declares zero channels")
			}
			header.SampleRate = fc.SampleRate
			header.BitsPerSample = fc.BitsPerSample
			header.NumChannels = fc.NumChannels
			format = &fc

		case "data":
			if format == nil {
				return nil, header, errors.New("data chunk before fmt chunk")
			}
			samples, err := readPCM(r, int64(ch.Size), int(format.NumChannels))
			if err != nil {
				return nil, header, fmt.Errorf("read PCM data: %w", err)
			}
			n := len(samples)
			header.NumSamples = n
			if n == 0 {
				return nil, header, ErrInsufficientData
			}
			return samples, header, nil

		default:
			if err := skip(r, size); err != nil {
				return nil, header, fmt.Errorf("skip chunk %q: %w", ch.ID, err)
			}
		}
	}

	if format == nil {
		return nil, header, errors.New("missing fmt chunk")
	}
	return nil, header, errors.New("missing data chunk")
}

// ReadWAVFile is a convenience wrapper that opens a file path.
func ReadWAVFile(path string) ([]float64, WAVHeader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, WAVHeader{}, err
	}
	defer f.Close()
	return ReadWAV(f)
}

// pcmBlockFrames caps each read; the declared chunk size never drives an
// allocation on its own.
const pcmBlockFrames = 4096

// readPCM reads size bytes of interleaved 16-bit frames and keeps channel 0.
func readPCM(r io.Reader, size int64, channels int) ([]float64, error) {
	frames := size / int64(2*channels)
	buf := make([]int16, pcmBlockFrames*channels)
	var samples []float64
	for frames > 0 {
		n := min(frames, pcmBlockFrames)
		block := buf[:int(n)*channels]
		if err := binary.Read(r, binary.LittleEndian, block); err != nil {
			return nil, err
		}
		for i := 0; i < int(n); i++ {
			samples = append(samples, float64(block[i*channels]))
		}
		frames -= n
	}
	return samples, nil
}

func skip(r io.Reader, n int64) error {
	if n <= 0 {
		return nil
	}
	_, err := io.CopyN(io.Discard, r, n)
	return err
}
