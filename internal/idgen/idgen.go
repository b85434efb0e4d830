// Package idgen provides pluggable id generation for tree nodes and drag contexts.
package idgen

import (
	"crypto/rand"
	"strings"

	"github.com/google/uuid"
)

// Generator produces identifiers.
type Generator func() string

// UUIDv7 returns a Generator of RFC 9562 v7 UUID strings (time-sortable).
func UUIDv7() Generator {
	return func() string {
		return uuid.Must(uuid.NewV7()).String()
	}
}

// Short returns a Generator of lowercase base-36 ids of the given length.
// Node ids are shown in the editor, so they are kept short.
func Short(length int) Generator {
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	return func() string {
		buf := make([]byte, length)
		if _, err := rand.Read(buf); err != nil {
			panic("idgen: crypto/rand failed: " + err.Error())
		}
		for i := range buf {
			buf[i] = alphabet[int(buf[i])%len(alphabet)]
		}
		return string(buf)
	}
}

// Prefixed prepends prefix to every id from gen.
func Prefixed(prefix string, gen Generator) Generator {
	return func() string {
		return prefix + gen()
	}
}

// Unique draws from gen until exists reports the id as unused.
// Gives up after a bounded number of attempts and falls back to a UUID.
func Unique(gen Generator, exists func(string) bool) string {
	for i := 0; i < 16; i++ {
		id := strings.TrimSpace(gen())
		if id != "" && !exists(id) {
			return id
		}
	}
	return uuid.Must(uuid.NewV7()).String()
}

// Nodes is the default generator for nodes created in the editor.
var Nodes Generator = Prefixed("n-", Short(6))

// NewContextID returns an opaque id scoping a single tree instance's drag sessions.
func NewContextID() string {
	return uuid.NewString()
}
