// Package safebuffer is a bytes.Buffer that can be written from one
// goroutine while another reads it, as when a test watches a search's
// output.
package safebuffer

import (
	"bytes"
	"strings"
	"sync"
)

type Buffer struct {
	mu  sync.RWMutex
	buf bytes.Buffer
}

func New() *Buffer {
	return &Buffer{}
}

func (b *Buffer) Write(bs []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(bs)
}

func (b *Buffer) String() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.buf.String()
}

// Lines returns the complete lines written so far, without their
// newlines. A trailing partial line is left out.
func (b *Buffer) Lines() []string {
	s := b.String()
	end := strings.LastIndexByte(s, '\n')
	if end < 0 {
		return nil
	}
	return strings.Split(s[:end], "\n")
}

// Contains reports whether any complete line contains substr.
func (b *Buffer) Contains(substr string) bool {
	for _, line := range b.Lines() {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}
