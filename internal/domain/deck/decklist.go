package deck

import (
	"bufio"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var decklistLineRegex = regexp.MustCompile(`^(\d+)x?\s+(.+)$`)

// ParseText reads the plain-text download format: "N Card Name" per line,
// with the sideboard introduced by a "Sideboard" line or a blank line after
// maindeck cards.
func ParseText(raw string) (Decklist, error) {
	out := Decklist{Maindeck: map[string]int{}, Sideboard: map[string]int{}}
	board := out.Maindeck

	scanner := bufio.NewScanner(strings.NewReader(raw))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			if len(out.Maindeck) > 0 {
				board = out.Sideboard
			}
			continue
		}
		if strings.EqualFold(strings.TrimSuffix(line, ":"), "sideboard") {
			board = out.Sideboard
			continue
		}

		parts := decklistLineRegex.FindStringSubmatch(line)
		if parts == nil {
			return Decklist{}, fmt.Errorf("line %d: unrecognized decklist entry %q", lineNo, line)
		}
		count, err := strconv.Atoi(parts[1])
		if err != nil || count <= 0 {
			return Decklist{}, fmt.Errorf("line %d: invalid card count %q", lineNo, parts[1])
		}
		board[strings.TrimSpace(parts[2])] += count
	}
	if err := scanner.Err(); err != nil {
		return Decklist{}, fmt.Errorf("scan decklist: %w", err)
	}

	return out, nil
}
