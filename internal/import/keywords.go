package import_pkg

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"
)

const maxLineBytes = 1024 * 1024

// LoadKeywords reads one keyword per line. "\n", "\r\n" and a lone "\r" all end
// a line. Lines are trimmed and blank lines dropped; a leading byte-order mark
// is ignored.
// Duplicates are kept in file order.
func LoadKeywords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open keywords file %s: %w", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	scanner.Split(scanLines)

	var keywords []string
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		keywords = append(keywords, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read keywords file %s: %w", path, err)
	}
	if len(keywords) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoKeywords)
	}

	return keywords, nil
}

// scanLines is bufio.ScanLines with a lone carriage return also ending a line.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		// "\r" at the end of the buffer may be the first half of "\r\n".
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
