// Package wavio streams PCM WAV files as normalized float64 samples.
package wavio

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/cwbudde/algo-stft/dsp/dither"
	"github.com/cwbudde/algo-stft/dsp/stream"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Errors returned by ReadChannel and Write.
var (
	ErrInvalidFile = errors.New("wavio: not a valid wav file")
	ErrFormat      = errors.New("wavio: unsupported sample format")
	ErrChannel     = errors.New("wavio: channel out of range")
)

const (
	pcmFormat = 1
	blockSize = 4096
)

// Reader yields one channel of a WAV file as samples in [-1, 1).
type Reader struct {
	dec      *wav.Decoder
	buf      *audio.IntBuffer
	channel  int
	channels int
	scale    float64
	offset   float64

	block []float64
	pos   int
	index int
	done  bool
	err   error
}

// ReadChannel decodes the header of r and returns a Reader over the given
// zero-based channel. Integer PCM at 8, 16, 24 or 32 bits is supported.
func ReadChannel(r io.ReadSeeker, channel int) (*Reader, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrInvalidFile
	}
	if dec.WavAudioFormat != pcmFormat {
		return nil, fmt.Errorf("%w: audio format %d", ErrFormat, dec.WavAudioFormat)
	}

	channels := int(dec.NumChans)
	if channel < 0 || channel >= channels {
		return nil, fmt.Errorf("%w: %d of %d", ErrChannel, channel, channels)
	}

	scale, offset, err := pcmScale(int(dec.BitDepth))
	if err != nil {
		return nil, err
	}

	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}

	return &Reader{
		dec: dec,
		buf: &audio.IntBuffer{
			Data:   make([]int, blockSize*channels),
			Format: dec.Format(),
		},
		channel:  channel,
		channels: channels,
		scale:    scale,
		offset:   offset,
	}, nil
}

// pcmScale returns the full-scale value and zero offset of an integer PCM
// sample of the given width. 8-bit WAV is unsigned.
func pcmScale(bitDepth int) (scale, offset float64, err error) {
	switch bitDepth {
	case 8:
		return 128, 128, nil
	case 16, 24, 32:
		return math.Ldexp(1, bitDepth-1), 0, nil
	default:
		return 0, 0, fmt.Errorf("%w: %d bits", ErrFormat, bitDepth)
	}
}

// SampleRate returns the sample rate from the file header.
func (r *Reader) SampleRate() int { return int(r.dec.SampleRate) }

// BitDepth returns the sample width from the file header.
func (r *Reader) BitDepth() int { return int(r.dec.BitDepth) }

// Channels returns the number of interleaved channels in the file.
func (r *Reader) Channels() int { return r.channels }

// Len returns the number of samples per channel in the data chunk.
func (r *Reader) Len() int {
	frame := int64(r.dec.BitDepth/8) * int64(r.channels)
	return int(r.dec.PCMLen() / frame)
}

// Next returns the next sample of the selected channel.
func (r *Reader) Next() (float64, bool) {
	for r.pos >= len(r.block) {
		if r.done {
			return 0, false
		}
		r.fill()
	}

	x := r.block[r.pos]
	r.pos++
	return x, true
}

// Err returns the decode error that ended the stream, if any.
func (r *Reader) Err() error { return r.err }

func (r *Reader) fill() {
	r.block = r.block[:0]
	r.pos = 0

	n, err := r.dec.PCMBuffer(r.buf)
	if err != nil {
		r.err = fmt.Errorf("wavio: decode: %w", err)
		r.done = true
		return
	}
	if n <= 0 {
		r.done = true
		return
	}

	for _, v := range r.buf.Data[:n] {
		if r.index%r.channels == r.channel {
			r.block = append(r.block, (float64(v)-r.offset)/r.scale)
		}
		r.index++
	}
}

// Write encodes samples as mono integer PCM of the given bit depth and
// returns the number of samples written. Samples outside [-1, 1] are
// clipped. Dither options are passed to the quantizer; without them
// samples are rounded to the nearest code. w must stay open until Write
// returns; it is not closed.
func Write(w io.WriteSeeker, sampleRate, bitDepth int, samples stream.Source[float64], opts ...dither.Option) (int, error) {
	_, offset, err := pcmScale(bitDepth)
	if err != nil {
		return 0, err
	}
	q, err := dither.NewQuantizer(bitDepth, opts...)
	if err != nil {
		return 0, err
	}
	code := int(offset)

	enc := wav.NewEncoder(w, sampleRate, bitDepth, 1, pcmFormat)
	buf := &audio.IntBuffer{
		Data:           make([]int, 0, blockSize),
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		SourceBitDepth: bitDepth,
	}

	total := 0
	flush := func() error {
		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("wavio: encode: %w", err)
		}
		total += len(buf.Data)
		buf.Data = buf.Data[:0]
		return nil
	}

	for x := range stream.All(samples) {
		buf.Data = append(buf.Data, q.Quantize(x)+code)
		if len(buf.Data) == blockSize {
			if err := flush(); err != nil {
				return total, err
			}
		}
	}
	// An empty stream still needs the header and data chunk.
	if len(buf.Data) > 0 || total == 0 {
		if err := flush(); err != nil {
			return total, err
		}
	}

	if err := enc.Close(); err != nil {
		return total, fmt.Errorf("wavio: close: %w", err)
	}
	return total, stream.Err(samples)
}
