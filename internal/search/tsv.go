package search

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	apperrors "github.com/FocuswithJustin/versefinder/core/errors"
)

// LoadTSV reads "USFM.C.V<TAB>text" lines. Blank lines and lines starting
// with '#' are skipped.
func LoadTSV(r io.Reader) ([]Entry, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var entries []Entry
	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(raw) == "" || strings.HasPrefix(raw, "#") {
			continue
		}

		token, text, ok := strings.Cut(raw, "\t")
		if !ok {
			return nil, apperrors.NewParse("TSV", fmt.Sprintf("line %d", line), "missing tab")
		}
		e, err := parseToken(token)
		if err != nil {
			return nil, apperrors.NewParse("TSV", fmt.Sprintf("line %d", line), err.Error())
		}
		e.Text = strings.TrimSpace(text)
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, apperrors.NewIO("read", "", err)
	}
	return entries, nil
}

func parseToken(token string) (Entry, error) {
	parts := strings.Split(strings.TrimSpace(token), ".")
	if len(parts) != 3 {
		return Entry{}, fmt.Errorf("bad location token %q", token)
	}
	chapter, err := strconv.Atoi(parts[1])
	if err != nil || chapter < 1 {
		return Entry{}, fmt.Errorf("bad chapter in %q", token)
	}
	verse, err := strconv.Atoi(parts[2])
	if err != nil || verse < 1 {
		return Entry{}, fmt.Errorf("bad verse in %q", token)
	}
	return Entry{Book: strings.ToUpper(parts[0]), Chapter: chapter, Verse: verse}, nil
}
