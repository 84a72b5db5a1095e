package shell

// Lines are split on whitespace only. There is no quoting, expansion or
// redirection: every maximal run of non-whitespace characters is one token,
// and a trailing & puts the command in the background.

const backgroundMarker = "&"

// isSpace matches the C locale whitespace set.
func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// CountTokens returns the number of whitespace separated tokens in line.
func CountTokens(line string) int {
	if len(line) == 0 {
		return 0
	}

	count := 0
	if !isSpace(line[0]) {
		count = 1
	}
	for i := 1; i < len(line); i++ {
		if !isSpace(line[i]) && isSpace(line[i-1]) {
			count++
		}
	}
	return count
}

// nextToken returns the bounds of the first token at or after start, or
// ok=false if only whitespace remains.
func nextToken(line string, start int) (begin, end int, ok bool) {
	i := start
	for i < len(line) && isSpace(line[i]) {
		i++
	}
	if i == len(line) {
		return 0, 0, false
	}
	begin = i
	for i < len(line) && !isSpace(line[i]) {
		i++
	}
	return begin, i, true
}

// Tokenize splits line into tokens and reports whether the command should run
// in the background.
//
// A final token of exactly "&" is dropped; otherwise a final token ending in
// "&" loses that one character. Only one of the two rules ever applies.
func Tokenize(line string) (tokens []string, background bool) {
	tokens = make([]string, 0, CountTokens(line))

	pos := 0
	for {
		begin, end, ok := nextToken(line, pos)
		if !ok {
			break
		}
		tokens = append(tokens, line[begin:end])
		pos = end
	}

	if len(tokens) == 0 {
		return tokens, false
	}

	last := len(tokens) - 1
	switch final := tokens[last]; {
	case final == backgroundMarker:
		tokens = tokens[:last]
		background = true
	case final[len(final)-1] == backgroundMarker[0]:
		tokens[last] = final[:len(final)-1]
		background = true
	}

	return tokens, background
}
