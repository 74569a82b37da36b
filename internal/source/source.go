// Package source provides line-addressable text for the scanners, either from
// an in-memory buffer or from a streaming file reader.
package source

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	DefaultChunkSize       = 4096
	DefaultStreamThreshold = 1 << 20
)

// Source iterates lines with stable 0-indexed line numbers.
// fn returns false to stop early.
type Source interface {
	Name() string
	Each(fn func(lineNo int, line string) bool) error
}

// Buffer is an already materialized document
type Buffer struct {
	name  string
	lines []string
}

// NewBuffer splits text into lines. A trailing \r is dropped from each line.
func NewBuffer(name, text string) *Buffer {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return &Buffer{name: name, lines: lines}
}

func (b *Buffer) Name() string { return b.name }

// Lines returns the buffer's lines
func (b *Buffer) Lines() []string { return b.lines }

// Line returns line n, or "" when out of range
func (b *Buffer) Line(n int) string {
	if n < 0 || n >= len(b.lines) {
		return ""
	}
	return b.lines[n]
}

// Len returns the number of lines
func (b *Buffer) Len() int { return len(b.lines) }

func (b *Buffer) Each(fn func(lineNo int, line string) bool) error {
	for i, l := range b.lines {
		if !fn(i, l) {
			return nil
		}
	}
	return nil
}

// FileReader streams a file in fixed-size chunks, yielding one line at a time.
// It opens the file per Each call and is not safe for concurrent use.
type FileReader struct {
	path      string
	chunkSize int
}

// NewFileReader creates a streaming reader for path
func NewFileReader(path string, chunkSize int) *FileReader {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &FileReader{path: path, chunkSize: chunkSize}
}

func (r *FileReader) Name() string { return r.path }

func (r *FileReader) Each(fn func(lineNo int, line string) bool) error {
	f, err := os.Open(r.path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", r.path, err)
	}
	defer f.Close()

	br := bufio.NewReaderSize(f, r.chunkSize)
	chunk := make([]byte, r.chunkSize)
	var pending []byte
	lineNo := 0

	emit := func(raw []byte) bool {
		line := string(bytes.TrimSuffix(raw, []byte{'\r'}))
		ok := fn(lineNo, line)
		lineNo++
		return ok
	}

	for {
		n, readErr := br.Read(chunk)
		data := chunk[:n]
		for {
			idx := bytes.IndexByte(data, '\n')
			if idx < 0 {
				break
			}
			if len(pending) > 0 {
				pending = append(pending, data[:idx]...)
				if !emit(pending) {
					return nil
				}
				pending = pending[:0]
			} else if !emit(data[:idx]) {
				return nil
			}
			data = data[idx+1:]
		}
		pending = append(pending, data...)

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			return fmt.Errorf("failed to read %s: %w", r.path, readErr)
		}
	}

	// last line without a terminator
	emit(pending)
	return nil
}

// Open picks a Buffer for files at or below threshold bytes and a streaming
// FileReader for anything larger.
func Open(path string, threshold int64, chunkSize int) (Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if threshold <= 0 {
		threshold = DefaultStreamThreshold
	}
	if info.Size() > threshold {
		return NewFileReader(path, chunkSize), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return NewBuffer(path, string(content)), nil
}
