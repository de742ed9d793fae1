package main

import (
	"fmt"
	"log"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Sample format constants.
const (
	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0

	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	wavPCMFormat = 1
)

// wavInputInfo holds validated input file information.
type wavInputInfo struct {
	file     *os.File
	decoder  *wav.Decoder
	rate     int
	channels int
	bitDepth int
	format   *audio.Format
}

// openWAVInput opens and validates a WAV file, returning format information.
func openWAVInput(path string, verbose bool) (*wavInputInfo, error) {
	inputFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	decoder := wav.NewDecoder(inputFile)
	if !decoder.IsValidFile() {
		_ = inputFile.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	format := decoder.Format()
	if verbose {
		log.Printf("Input format: %d Hz, %d channels, %d-bit",
			format.SampleRate, format.NumChannels, decoder.BitDepth)
	}

	return &wavInputInfo{
		file:     inputFile,
		decoder:  decoder,
		rate:     format.SampleRate,
		channels: format.NumChannels,
		bitDepth: int(decoder.BitDepth),
		format:   format,
	}, nil
}

// Close closes the input file.
func (w *wavInputInfo) Close() error {
	return w.file.Close()
}

// ReadChannels decodes the full file and returns one normalized float64
// slice per channel, samples in [-1, 1].
func (w *wavInputInfo) ReadChannels() ([][]float64, error) {
	buf, err := w.decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to decode PCM data: %w", err)
	}
	return deinterleave(buf.Data, w.channels, w.bitDepth), nil
}

// writeWAVOutput encodes the channels back to a WAV file with the input's
// format.
func writeWAVOutput(path string, in *wavInputInfo, channels [][]float64) error {
	outputFile, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = outputFile.Close() }()

	encoder := wav.NewEncoder(outputFile, in.rate, in.bitDepth, in.channels, wavPCMFormat)
	buf := &audio.IntBuffer{
		Data:           interleave(channels, in.bitDepth),
		Format:         in.format,
		SourceBitDepth: in.bitDepth,
	}
	if err := encoder.Write(buf); err != nil {
		return fmt.Errorf("failed to write samples: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV file: %w", err)
	}
	return nil
}

// getMaxValue returns the full-scale value for a bit depth.
func getMaxValue(bitDepth int) float64 {
	switch bitDepth {
	case bitsPerSample24:
		return maxInt24
	case bitsPerSample32:
		return maxInt32
	default:
		return maxInt16
	}
}

// deinterleave splits interleaved PCM ints into normalized per-channel
// float64 slices.
func deinterleave(data []int, channels, bitDepth int) [][]float64 {
	if channels < 1 {
		return nil
	}
	frames := len(data) / channels
	invMax := 1.0 / getMaxValue(bitDepth)

	out := make([][]float64, channels)
	for ch := range out {
		out[ch] = make([]float64, frames)
	}
	for i := range frames {
		base := i * channels
		for ch := range out {
			out[ch][i] = float64(data[base+ch]) * invMax
		}
	}
	return out
}

// interleave merges per-channel float64 slices into clamped interleaved PCM
// ints.
func interleave(channels [][]float64, bitDepth int) []int {
	if len(channels) == 0 {
		return nil
	}
	frames := len(channels[0])
	maxVal := getMaxValue(bitDepth)

	out := make([]int, frames*len(channels))
	for i := range frames {
		base := i * len(channels)
		for ch := range channels {
			out[base+ch] = clampSample(channels[ch][i]*maxVal, maxVal)
		}
	}
	return out
}

// clampSample rounds and limits a scaled sample to the PCM range.
func clampSample(v, maxVal float64) int {
	if v > maxVal {
		return int(maxVal)
	}
	if v < -maxVal-1 {
		return int(-maxVal - 1)
	}
	if v >= 0 {
		return int(v + 0.5)
	}
	return int(v - 0.5)
}
