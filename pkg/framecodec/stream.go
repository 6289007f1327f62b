package framecodec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// frameHeaderSize is width, height and payload length, each a little-endian uint32
const frameHeaderSize = 12

// StreamWriter appends raw frames to a single zstd stream, one header per frame.
// It is used to dump every frame of an interactive session for later playback.
type StreamWriter struct {
	mu      sync.Mutex
	encoder *zstd.Encoder
	frames  int
}

// NewStreamWriter wraps w in a zstd encoder. Close flushes the stream but does not close w.
func NewStreamWriter(w io.Writer) (*StreamWriter, error) {
	encoder, err := zstd.NewWriter(w)
	if err != nil {
		return nil, fmt.Errorf("create zstd stream: %w", err)
	}
	return &StreamWriter{encoder: encoder}, nil
}

// WriteFrame appends one frame
func (s *StreamWriter) WriteFrame(img *image.RGBA) error {
	pixels := packPixels(img)
	bounds := img.Bounds()

	var header [frameHeaderSize]byte
	binary.LittleEndian.PutUint32(header[0:4], uint32(bounds.Dx()))
	binary.LittleEndian.PutUint32(header[4:8], uint32(bounds.Dy()))
	binary.LittleEndian.PutUint32(header[8:12], uint32(len(pixels)))

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.encoder.Write(header[:]); err != nil {
		return fmt.Errorf("write frame header: %w", err)
	}
	if _, err := s.encoder.Write(pixels); err != nil {
		return fmt.Errorf("write frame pixels: %w", err)
	}
	s.frames++
	return nil
}

// Frames returns how many frames have been written
func (s *StreamWriter) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// Close flushes and finalizes the zstd stream
func (s *StreamWriter) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.encoder.Close()
}

// StreamReader reads frames written by StreamWriter
type StreamReader struct {
	decoder *zstd.Decoder
}

// NewStreamReader opens a frame stream
func NewStreamReader(r io.Reader) (*StreamReader, error) {
	decoder, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("open zstd stream: %w", err)
	}
	return &StreamReader{decoder: decoder}, nil
}

// ReadFrame returns the next frame, or io.EOF once the stream is exhausted
func (s *StreamReader) ReadFrame() (*image.RGBA, error) {
	var header [frameHeaderSize]byte
	if _, err := io.ReadFull(s.decoder, header[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("truncated frame header: %w", err)
		}
		return nil, err
	}
	width := int(binary.LittleEndian.Uint32(header[0:4]))
	height := int(binary.LittleEndian.Uint32(header[4:8]))
	length := int(binary.LittleEndian.Uint32(header[8:12]))

	if length != width*height*4 {
		return nil, fmt.Errorf("corrupt frame header: %d bytes for %dx%d", length, width, height)
	}

	pixels := make([]byte, length)
	if _, err := io.ReadFull(s.decoder, pixels); err != nil {
		return nil, fmt.Errorf("read frame pixels: %w", err)
	}
	return unpackPixels(pixels, width, height)
}

// Close releases the decoder
func (s *StreamReader) Close() {
	s.decoder.Close()
}
