package onepager

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBullets(t *testing.T) {
	ul := listOpen
	li := itemOpen

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "whitespace only", in: "  \n\t\n", want: ""},
		{name: "plain line", in: "Led the team", want: "<div>Led the team</div>"},
		{
			name: "dash bullets group",
			in:   "- Built X\n- Shipped Y",
			want: ul + li + "Built X</li>" + li + "Shipped Y</li></ul>",
		},
		{
			name: "mixed glyphs",
			in:   "• one\n* two\n‣ three\n◦ four\n⁃ five\n∙ six",
			want: ul + li + "one</li>" + li + "two</li>" + li + "three</li>" + li + "four</li>" + li + "five</li>" + li + "six</li></ul>",
		},
		{
			name: "numbered",
			in:   "1. first\n2.second\n10. tenth",
			want: ul + li + "first</li>" + li + "second</li>" + li + "tenth</li></ul>",
		},
		{
			name: "paragraph breaks the list",
			in:   "- a\nIntro\n- b",
			want: ul + li + "a</li></ul><div>Intro</div>" + ul + li + "b</li></ul>",
		},
		{
			name: "blank lines do not break the list",
			in:   "- a\n\n   \n- b",
			want: ul + li + "a</li>" + li + "b</li></ul>",
		},
		{
			name: "crlf and indentation",
			in:   "  - a\r\n  - b\r\n",
			want: ul + li + "a</li>" + li + "b</li></ul>",
		},
		{
			name: "bare marker is skipped",
			in:   "-\n- real",
			want: ul + li + "real</li></ul>",
		},
		{
			name: "content is escaped",
			in:   "<b>bold</b>\n- a & b",
			want: "<div>&lt;b&gt;bold&lt;/b&gt;</div>" + ul + li + "a &amp; b</li></ul>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(FormatBullets(tt.in)))
		})
	}
}

func TestFormatBullets_ContiguousRunsShareOneList(t *testing.T) {
	out := string(FormatBullets("- a\n- b\n- c\nbreak\n- d\n- e"))

	assert.Equal(t, 2, strings.Count(out, "<ul"))
	assert.Equal(t, 5, strings.Count(out, "<li"))
	assert.Equal(t, 1, strings.Count(out, "<div>"))
}
