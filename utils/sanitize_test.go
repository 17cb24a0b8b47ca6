package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	cases := map[string]string{
		"plain text":                               "plain text",
		"<b>bold</b> text":                         "bold text",
		"don't & won't":                            "don't & won't",
		`say "hi"`:                                 `say "hi"`,
		"<script>alert(1)</script>":                "",
		`<a href="javascript:x()">link</a>`:        "link",
		"&lt;script&gt;alert(1)&lt;/script&gt; hi": " hi",
		"&lt;b&gt;bold&lt;/b&gt;":                  "bold",
		"1 &lt; 2":                                 "1 &lt; 2",
	}
	for in, want := range cases {
		got := Sanitize(in)
		assert.Equal(t, want, got, in)
		assert.NotContains(t, got, "<", in)
	}
}
