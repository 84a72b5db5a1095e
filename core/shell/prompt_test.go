package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandPrompt(t *testing.T) {
	cases := []struct {
		prompt   string
		expected string
	}{
		{"bangsh> ", "bangsh> "},
		{`line\n> `, "line\n> "},
		{`\\n`, `\n`},
		// Octal
		{`\033[01;32m$\033[00m `, "\x1b[01;32m$\x1b[00m "},
		{`\07`, "\a"},
		{`\0101`, "A"},
		// Hex
		{`\x1b[0m`, "\x1b[0m"},
		{`\x4A`, "J"},
		{`\e[1m`, "\x1b[1m"},
	}

	for _, tc := range cases {
		t.Run(tc.prompt, func(t *testing.T) {
			assert.Equal(t, tc.expected, ExpandPrompt(tc.prompt))
		})
	}
}
