package normalize

import "strings"

var (
	hostReplacer = strings.NewReplacer(".", " ")
	pathReplacer = strings.NewReplacer("/", " ", "-", " ", "_", " ")
	unsafeURL    = strings.NewReplacer("\t", "", "\r", "", "\n", "")
)

// URLWords extracts the searchable words of a page URL: the authority without
// "www." and ".com" literals, followed by the path segments as written.
// Percent escapes are not decoded. An authority with an unbalanced IPv6
// bracket yields "".
func URLWords(rawURL string) string {
	if rawURL == "" {
		return ""
	}

	host, path, ok := splitURL(rawURL)
	if !ok {
		return ""
	}

	host = strings.ReplaceAll(host, "www.", "")
	host = strings.ReplaceAll(host, ".com", "")
	host = hostReplacer.Replace(host)

	return Text(host + " " + pathReplacer.Replace(path))
}

// splitURL returns the authority and path of a URL without decoding either.
// The path stops at the query, the fragment or the parameters of its last
// segment.
func splitURL(raw string) (host, path string, ok bool) {
	rest := unsafeURL.Replace(strings.TrimLeftFunc(raw, func(r rune) bool { return r <= ' ' }))

	if i := strings.IndexByte(rest, ':'); i > 0 && isSchemeStart(rest[0]) && isScheme(rest[:i]) {
		rest = rest[i+1:]
	}

	if strings.HasPrefix(rest, "//") {
		rest = rest[2:]
		end := strings.IndexAny(rest, "/?#")
		if end < 0 {
			end = len(rest)
		}
		host, rest = rest[:end], rest[end:]
		if strings.Contains(host, "[") != strings.Contains(host, "]") {
			return "", "", false
		}
	}

	if i := strings.IndexByte(rest, '#'); i >= 0 {
		rest = rest[:i]
	}
	if i := strings.IndexByte(rest, '?'); i >= 0 {
		rest = rest[:i]
	}

	path = rest
	last := strings.LastIndexByte(path, '/') + 1
	if i := strings.IndexByte(path[last:], ';'); i >= 0 {
		path = path[:last+i]
	}

	return host, path, true
}

func isSchemeStart(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isScheme(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case isSchemeStart(c), '0' <= c && c <= '9', c == '+', c == '-', c == '.':
		default:
			return false
		}
	}
	return true
}
