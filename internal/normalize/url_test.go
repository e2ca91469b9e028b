package normalize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestURLWords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "www and com stripped", input: "https://www.example.com/shop/red-shoes", want: "example shop red shoes"},
		{name: "no www", input: "https://site.com/red-shoes", want: "site red shoes"},
		{name: "other tld kept", input: "https://shop.example.co.uk/men_boots/", want: "shop example co uk men boots"},
		{name: "com literal inside host", input: "https://www.comics.com.au/", want: "comics au"},
		{name: "query ignored", input: "https://site.com/blog?page=2", want: "site blog"},
		{name: "port kept", input: "http://localhost:8080/a-b", want: "localhost 8080 a b"},
		{name: "no scheme", input: "site.com/red-shoes", want: "site com red shoes"},
		{name: "malformed", input: "http://[::1", want: ""},
		{name: "unbalanced bracket after host", input: "http://site.com]/x", want: ""},
		{name: "bad escape kept as text", input: "https://site.com/%zz", want: "site zz"},
		{name: "non ascii path", input: "https://site.com/café-crème", want: "site café crème"},
		{name: "raw space in path", input: "https://site.com/red shoes", want: "site red shoes"},
		{name: "stray percent", input: "https://site.com/100%-cotton", want: "site 100 cotton"},
		{name: "escape not decoded", input: "https://site.com/red%20shoes", want: "site red 20shoes"},
		{name: "last segment params cut", input: "https://site.com/shoes;jsessionid=42", want: "site shoes"},
		{name: "fragment ignored", input: "https://site.com/boots#sizes", want: "site boots"},
		{name: "tab and newline removed", input: "https://site.com/red-\tsho\nes", want: "site red shoes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, URLWords(tt.input))
		})
	}
}

func TestURLWordsExampleShop(t *testing.T) {
	words := strings.Fields(URLWords("https://www.example.com/shop/red-shoes"))

	for _, w := range []string{"example", "shop", "red", "shoes"} {
		assert.Contains(t, words, w)
	}
	assert.NotContains(t, words, "www")
	assert.NotContains(t, words, "com")
}
