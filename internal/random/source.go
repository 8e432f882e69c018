package random

import (
	"errors"
	"fmt"
)

// ErrUnavailable возвращается когда все источники случайных данных исчерпаны
var ErrUnavailable = errors.New("no random source available")

// Source supplies cryptographically strong random bytes. Fill either
// fills the whole buffer or returns an error; a partial fill is never
// reported as success.
type Source interface {
	Name() string
	Fill(buf []byte) error
}

// Chain tries an ordered list of sources until one fills the buffer.
type Chain struct {
	sources []Source
}

// NewChain создаёт цепочку источников, опрашиваемых по порядку
func NewChain(sources ...Source) *Chain {
	return &Chain{sources: sources}
}

func (c *Chain) Name() string { return "chain" }

// Fill заполняет буфер из первого работающего источника
func (c *Chain) Fill(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}

	var lastErr error
	for _, s := range c.sources {
		if err := s.Fill(buf); err != nil {
			lastErr = fmt.Errorf("%s: %w", s.Name(), err)
			continue
		}
		return nil
	}

	if lastErr != nil {
		return fmt.Errorf("%w: %s", ErrUnavailable, lastErr)
	}
	return ErrUnavailable
}

// System returns the default source chain for the current platform:
// the getrandom syscall where available, then the blocking random
// device as a fallback.
func System() Source {
	return NewChain(platformSources()...)
}
