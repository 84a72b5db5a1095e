package shell

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	promptOctal   = regexp.MustCompile(`\\0?[0-7]{1,3}`)
	promptHex     = regexp.MustCompile(`\\x[0-9a-fA-F]{1,2}`)
	promptReplace = strings.NewReplacer(
		`\n`, "\n",
		`\t`, "\t",
		`\\`, `\`,
		`\e`, "\x1b",
		`\a`, "\a",
	)
)

// ExpandPrompt interprets the backslash escapes allowed in a configured
// prompt so colors like `\033[01;32m` can be written in YAML.
func ExpandPrompt(prompt string) string {
	prompt = promptReplace.Replace(prompt)
	prompt = promptOctal.ReplaceAllStringFunc(prompt, func(arg string) string {
		out, err := strconv.ParseUint(arg[1:], 8, 8)
		if err != nil {
			return arg
		}
		return string([]byte{byte(out)})
	})
	return promptHex.ReplaceAllStringFunc(prompt, func(arg string) string {
		out, err := strconv.ParseUint(arg[2:], 16, 8)
		if err != nil {
			return arg
		}
		return string([]byte{byte(out)})
	})
}
