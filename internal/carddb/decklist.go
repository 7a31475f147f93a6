package carddb

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/lox/deckodds/internal/deck"
)

// Line is one parsed deck-list entry before resolution.
type Line struct {
	Ref   string // card name, code, or name prefix
	Count int
}

// ParseDeckList reads a plain-text deck list: one entry per line in
// the form "2x Machete" or just "Machete" (count defaults to 1).
// Blank lines and lines starting with # are ignored.
func ParseDeckList(r io.Reader) ([]Line, error) {
	var lines []Line

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		count := 1
		ref := text
		if fields := strings.SplitN(text, " ", 2); len(fields) == 2 {
			if n, ok := parseCount(fields[0]); ok {
				count = n
				ref = strings.TrimSpace(fields[1])
			}
		}
		if count < 1 {
			return nil, fmt.Errorf("line %d: copy count must be positive: %q", lineNo, text)
		}
		if ref == "" {
			return nil, fmt.Errorf("line %d: missing card reference: %q", lineNo, text)
		}

		lines = append(lines, Line{Ref: ref, Count: count})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading deck list: %w", err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("deck list is empty")
	}
	return lines, nil
}

// parseCount accepts "2x", "2X" or a bare "2" as a copy count.
func parseCount(field string) (int, bool) {
	field = strings.TrimSuffix(strings.TrimSuffix(field, "x"), "X")
	n, err := strconv.Atoi(field)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ResolveDeckList resolves parsed lines into deck entries.
func (db *DB) ResolveDeckList(lines []Line) ([]deck.Entry, error) {
	entries := make([]deck.Entry, 0, len(lines))
	for _, line := range lines {
		card, err := db.Resolve(line.Ref)
		if err != nil {
			return nil, err
		}
		entries = append(entries, deck.Entry{Card: card, Count: line.Count})
	}
	return entries, nil
}

// LoadDeck is the full pipeline: parse a deck-list file, resolve every
// entry against the database, and expand into a flat deck.
func (db *DB) LoadDeck(path string) (*deck.Deck, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening deck list: %w", err)
	}
	defer f.Close()

	lines, err := ParseDeckList(f)
	if err != nil {
		return nil, fmt.Errorf("parsing deck list %s: %w", path, err)
	}
	entries, err := db.ResolveDeckList(lines)
	if err != nil {
		return nil, fmt.Errorf("resolving deck list %s: %w", path, err)
	}
	return deck.Expand(entries)
}
