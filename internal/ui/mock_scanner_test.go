package ui

import (
	"context"

	"github.com/kaval-sh/kaval/internal/model"
)

// mockScanner is a test double for scanner.Scanner.
type mockScanner struct {
	entries []model.PortEntry
	err     error
}

func (m *mockScanner) Scan(ctx context.Context, includeTCP, includeUDP bool) ([]model.PortEntry, error) {
	return m.entries, m.err
}

// newMockScanner creates a mockScanner returning the given entries.
func newMockScanner(entries []model.PortEntry) *mockScanner {
	return &mockScanner{entries: entries}
}

// newMockScannerWithError creates a mockScanner that returns an error.
func newMockScannerWithError(err error) *mockScanner {
	return &mockScanner{err: err}
}
