// Package txid issues short, human-scannable transaction codes such as
// "TXN-7F3A9C01B2". Codes come from random UUIDs and are unique for the
// lifetime of a Generator.
package txid

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
)

const (
	DefaultPrefix = "TXN"
	DefaultLength = 10

	maxAttempts = 16
)

var ErrExhausted = errors.New("txid: could not generate a unique id")

type Generator struct {
	prefix string
	length int
	source func() uuid.UUID

	mu     sync.Mutex
	issued map[string]struct{}
}

type Option func(*Generator)

// WithPrefix sets the code prefix. An empty prefix yields bare codes.
func WithPrefix(prefix string) Option {
	return func(g *Generator) { g.prefix = strings.ToUpper(strings.TrimSpace(prefix)) }
}

// WithLength sets the number of hex characters taken from each UUID (4..31).
func WithLength(n int) Option {
	return func(g *Generator) {
		if n >= 4 && n <= 31 {
			g.length = n
		}
	}
}

// WithSource replaces the UUID source, mainly for tests.
func WithSource(fn func() uuid.UUID) Option {
	return func(g *Generator) { g.source = fn }
}

func New(opts ...Option) *Generator {
	g := &Generator{
		prefix: DefaultPrefix,
		length: DefaultLength,
		source: uuid.New,
		issued: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Next returns a code never returned before by this generator.
func (g *Generator) Next() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for i := 0; i < maxAttempts; i++ {
		id := g.format(g.source())
		if _, dup := g.issued[id]; dup {
			continue
		}
		g.issued[id] = struct{}{}
		return id, nil
	}
	return "", ErrExhausted
}

// Issued reports how many codes have been handed out.
func (g *Generator) Issued() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.issued)
}

func (g *Generator) format(u uuid.UUID) string {
	hex := strings.ToUpper(strings.ReplaceAll(u.String(), "-", ""))
	// Skip the version nibble at index 12 so every character is random.
	hex = hex[:12] + hex[13:]
	code := hex[:g.length]
	if g.prefix == "" {
		return code
	}
	return g.prefix + "-" + code
}
