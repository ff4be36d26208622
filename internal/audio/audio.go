// Package audio records the tone of the CHIP-8 sound timer into a WAV file.
package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Output format of the recording.
const (
	SampleRate = 44100
	BitDepth   = 16
	Channels   = 1

	// pcmFormat is the WAV audio format tag for uncompressed PCM.
	pcmFormat = 1

	// ToneFrequency is the frequency in Hz of the square wave tone.
	ToneFrequency = 440

	amplitude = 8000
)

var errInvalidFrameRate = errors.New("invalid frame rate")

// Recorder writes one frame of samples per Tone call: a square wave
// while the tone is active, silence otherwise.
type Recorder struct {
	encoder *wav.Encoder
	buf     *audio.IntBuffer
	phase   int // sample position within one second
}

// NewRecorder returns a recorder writing to w. The frame rate is the rate
// at which Tone is called.
func NewRecorder(w io.WriteSeeker, frameRate int) (*Recorder, error) {
	if frameRate <= 0 || frameRate > SampleRate {
		return nil, fmt.Errorf("%w: %d", errInvalidFrameRate, frameRate)
	}

	return &Recorder{
		encoder: wav.NewEncoder(w, SampleRate, BitDepth, Channels, pcmFormat),
		buf: &audio.IntBuffer{
			Format: &audio.Format{
				NumChannels: Channels,
				SampleRate:  SampleRate,
			},
			Data:           make([]int, SampleRate/frameRate),
			SourceBitDepth: BitDepth,
		},
	}, nil
}

// Tone writes the samples of one frame.
func (r *Recorder) Tone(active bool) error {
	for i := range r.buf.Data {
		r.buf.Data[i] = 0
		if active {
			r.buf.Data[i] = squareWave(r.phase)
		}
		r.phase = (r.phase + 1) % SampleRate
	}

	if err := r.encoder.Write(r.buf); err != nil {
		return fmt.Errorf("writing samples: %w", err)
	}
	return nil
}

// Close finishes the WAV headers. It does not close the underlying writer.
func (r *Recorder) Close() error {
	if err := r.encoder.Close(); err != nil {
		return fmt.Errorf("closing wav encoder: %w", err)
	}
	return nil
}

// squareWave returns the sample of the tone at the given position.
func squareWave(phase int) int {
	halfPeriods := phase * ToneFrequency * 2 / SampleRate
	if halfPeriods%2 == 0 {
		return amplitude
	}
	return -amplitude
}
