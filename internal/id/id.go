// Package id generates identifiers for generation runs.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// runAlphabet avoids look-alike characters so run ids survive being read off a terminal.
const runAlphabet = "23456789abcdefghjkmnpqrstuvwxyz"

// runIDLength gives roughly 59 bits of entropy, plenty for telling runs apart in logs.
const runIDLength = 12

// Generate creates a prefixed unique ID using NanoID
// Format: prefix-nanoid (e.g., "run-7kq2m9xv4hzp").
//
// Returns an error if the system has insufficient entropy for secure random generation.
func Generate(prefix string) (string, error) {
	id, err := gonanoid.Generate(runAlphabet, runIDLength)
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// NewRunID returns an identifier for one generation run.
func NewRunID() (string, error) {
	return Generate("run")
}
