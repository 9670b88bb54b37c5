package schemaparser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidLineRange = errors.New("invalid schema line range")

// LineRange is a 1-based, inclusive range of lines.
type LineRange struct {
	Start int
	End   int
}

// ParseLineRanges parses a range list such as "1-10,15-20,25".
// Ranges are kept in the order they are written.
func ParseLineRanges(list string) ([]LineRange, error) {
	if strings.TrimSpace(list) == "" {
		return nil, fmt.Errorf("%w: empty range list", ErrInvalidLineRange)
	}

	items := strings.Split(list, ",")
	ranges := make([]LineRange, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		r, err := parseLineRange(item)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, r)
	}

	return ranges, nil
}

func parseLineRange(item string) (LineRange, error) {
	startText, endText, isRange := strings.Cut(item, "-")
	start, err := strconv.Atoi(strings.TrimSpace(startText))
	if err != nil {
		return LineRange{}, fmt.Errorf("%w: %q", ErrInvalidLineRange, item)
	}
	end := start
	if isRange {
		end, err = strconv.Atoi(strings.TrimSpace(endText))
		if err != nil {
			return LineRange{}, fmt.Errorf("%w: %q", ErrInvalidLineRange, item)
		}
	}
	if start < 1 || end < start {
		return LineRange{}, fmt.Errorf("%w: %q", ErrInvalidLineRange, item)
	}

	return LineRange{Start: start, End: end}, nil
}

// ExtractLines concatenates the selected lines of text, keeping their exact
// content and line terminators.
func ExtractLines(text, list string) (string, error) {
	ranges, err := ParseLineRanges(list)
	if err != nil {
		return "", err
	}

	lines := strings.SplitAfter(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	var buf strings.Builder
	for _, r := range ranges {
		if r.End > len(lines) {
			return "", fmt.Errorf("%w: %d-%d is beyond the last line %d", ErrInvalidLineRange, r.Start, r.End, len(lines))
		}
		for _, line := range lines[r.Start-1 : r.End] {
			buf.WriteString(line)
		}
	}

	return buf.String(), nil
}
