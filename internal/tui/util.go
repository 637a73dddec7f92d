package tui

import (
	"strings"
	"unicode/utf8"
)

func wrapWithPrefix(s string, prefix string, width int) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		wrapped := wrapLine(line, width-utf8.RuneCountInString(prefix))
		for j, wline := range wrapped {
			wrapped[j] = prefix + wline
		}
		lines[i] = strings.Join(wrapped, "\n")
	}
	return strings.Join(lines, "\n")
}

func wrapLine(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}
	var result []string
	var current strings.Builder
	curlen := 0
	flush := func() {
		result = append(result, current.String())
		current.Reset()
		curlen = 0
	}
	for i, word := range strings.Split(s, " ") {
		wlen := utf8.RuneCountInString(word)
		if i > 0 {
			if curlen+1+wlen <= width {
				current.WriteByte(' ')
				curlen++
			} else {
				flush()
			}
		}
		// split words longer than a full line at rune boundaries
		for wlen > width {
			if curlen > 0 {
				flush()
			}
			runes := []rune(word)
			current.WriteString(string(runes[:width]))
			flush()
			word = string(runes[width:])
			wlen = utf8.RuneCountInString(word)
		}
		current.WriteString(word)
		curlen += wlen
	}
	if current.Len() > 0 || len(result) == 0 {
		result = append(result, current.String())
	}
	return result
}
