package job

import (
	"errors"
	"strings"
	"unicode"
)

var (
	errUnterminatedSingle = errors.New("unterminated single quote")
	errUnterminatedDouble = errors.New("unterminated double quote")
	errTrailingBackslash  = errors.New("trailing backslash")
)

// SplitArgs splits s into words the way a POSIX shell would, without any expansion.
//
//	--foo bar          -> ["--foo", "bar"]
//	--msg "hello world" -> ["--msg", "hello world"]
//	'it''s'             -> ["its"]
//
// Single quotes preserve everything literally. Inside double quotes a backslash
// only escapes ", \, $, ` and newline. Outside quotes a backslash escapes any rune.
// An empty or blank string yields no words.
func SplitArgs(s string) ([]string, error) {
	var (
		words   []string
		current strings.Builder
		inWord  bool
	)

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '\'':
			inWord = true
			end := indexRune(runes, i+1, '\'')
			if end < 0 {
				return nil, errUnterminatedSingle
			}
			current.WriteString(string(runes[i+1 : end]))
			i = end

		case r == '"':
			inWord = true
			closed := false
			for i++; i < len(runes); i++ {
				c := runes[i]
				if c == '"' {
					closed = true
					break
				}
				if c == '\\' && i+1 < len(runes) && strings.ContainsRune("\"\\$`\n", runes[i+1]) {
					i++
					if runes[i] != '\n' {
						current.WriteRune(runes[i])
					}
					continue
				}
				current.WriteRune(c)
			}
			if !closed {
				return nil, errUnterminatedDouble
			}

		case r == '\\':
			if i+1 >= len(runes) {
				return nil, errTrailingBackslash
			}
			i++
			// Escaped newline is a line continuation.
			if runes[i] == '\n' {
				continue
			}
			inWord = true
			current.WriteRune(runes[i])

		case unicode.IsSpace(r):
			if inWord {
				words = append(words, current.String())
				current.Reset()
				inWord = false
			}

		default:
			inWord = true
			current.WriteRune(r)
		}
	}

	if inWord {
		words = append(words, current.String())
	}
	return words, nil
}

func indexRune(runes []rune, from int, target rune) int {
	for i := from; i < len(runes); i++ {
		if runes[i] == target {
			return i
		}
	}
	return -1
}
