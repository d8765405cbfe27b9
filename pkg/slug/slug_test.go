package slug_test

import (
	"testing"

	"pena/pkg/slug"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Hello, World!  2025", "hello-world-2025"},
		{"Simple Title", "simple-title"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"under_score___and---dashes", "under-score-and-dashes"},
		{"Café au lait", "caf-au-lait"}, // non-ASCII letters are stripped
		{"!!!", ""},
		{"Already-Slugged-Title", "already-slugged-title"},
		{"Numbers 123 stay", "numbers-123-stay"},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, slug.Make(c.title), "title %q", c.title)
	}
}
