package osc

import "strings"

// Match reports whether the OSC address pattern matches the (literal)
// target address in full. pattern may contain the glob metacharacters
// '?', '*', '[...]' and '{...}'; address must not.
func Match(pattern, address string) bool {
	return matchLiteral(pattern, address, false)
}

// MatchPartial reports whether pattern could match some address that
// begins with prefix — used to filter by a shared root such as "/inputs"
// before matching the full address.
func MatchPartial(pattern, prefix string) bool {
	return matchLiteral(pattern, prefix, true)
}

// IsLiteral reports whether pattern contains none of the glob
// metacharacters '?', '*', '[' or '{'.
func IsLiteral(pattern string) bool {
	return strings.IndexAny(pattern, "?*[{") == -1
}

// PartCount returns the number of '/'-delimited parts in s (the number of
// '/' characters it contains).
func PartCount(s string) int {
	return strings.Count(s, "/")
}

// PartAt returns the (0-indexed) slash-delimited segment of s, excluding
// the slash itself. It returns a *Error with KindNotEnoughPartsInAddressPattern
// if s does not have that many parts.
func PartAt(s string, index int) (string, error) {
	pos := 0
	for part := 0; part < index+1; part++ {
		found := false
		for pos < len(s) {
			if s[pos] == '/' {
				pos++
				found = true
				break
			}
			pos++
		}
		if !found {
			return "", newErr("PartAt", KindNotEnoughPartsInAddressPattern)
		}
	}
	start := pos
	for pos < len(s) && s[pos] != '/' {
		pos++
	}
	return s[start:pos], nil
}

// matchLiteral is the entry point for both Match and MatchPartial, ported
// from OscAddress.c's MatchLiteral: it walks pattern and address in
// lock-step comparing literal characters directly, and hands off to the
// expression matcher as soon as a metacharacter (or the end of address, in
// non-partial mode) is seen.
func matchLiteral(pattern, address string, partial bool) bool {
	pi, ai := 0, 0
	for pi < len(pattern) {
		if ai >= len(address) {
			if partial {
				return true
			}
			c := &matchCursor{pat: pattern, pi: pi, addr: address, ai: ai, partial: partial}
			return c.matchExpression()
		}
		switch pattern[pi] {
		case '?', '*', '[', '{':
			c := &matchCursor{pat: pattern, pi: pi, addr: address, ai: ai, partial: partial}
			return c.matchExpression()
		default:
			if pattern[pi] != address[ai] {
				return false
			}
		}
		pi++
		ai++
	}
	return ai == len(address)
}

// matchCursor holds the mutable (pattern index, address index) pair
// threaded through the recursive-descent matcher, mirroring the pointer
// pair OscAddress.c passes by address through its Match* functions.
type matchCursor struct {
	pat     string
	pi      int
	addr    string
	ai      int
	partial bool
}

func (c *matchCursor) patAt(i int) byte {
	if i < 0 || i >= len(c.pat) {
		return 0
	}
	return c.pat[i]
}

func (c *matchCursor) addrAt(i int) byte {
	if i < 0 || i >= len(c.addr) {
		return 0
	}
	return c.addr[i]
}

func (c *matchCursor) regionEquals(patStart, n int) bool {
	for i := 0; i < n; i++ {
		if c.patAt(patStart+i) != c.addrAt(c.ai+i) {
			return false
		}
	}
	return true
}

// matchExpression matches an expression that may contain any combination
// of '?', '*', '[...]' and '{...}'.
func (c *matchCursor) matchExpression() bool {
	for c.pi < len(c.pat) {
		if c.ai >= len(c.addr) && c.partial {
			return true
		}
		if c.pat[c.pi] == '*' {
			if !c.matchStar() {
				return false
			}
		} else {
			if !c.matchCharacter() {
				return false
			}
		}
	}
	return c.ai == len(c.addr)
}

// matchStar matches a run of one or more '*' with the following
// characters in address, up to the next '/' or the end of address. It is
// a greedy match with backtracking: it repeatedly finds the next position
// where the pattern immediately following the star(s) matches, then tries
// to match the remainder of the expression from there, backtracking to
// search further along address if that fails.
func (c *matchCursor) matchStar() bool {
	for c.pi < len(c.pat) && c.pat[c.pi] == '*' {
		c.pi++
	}

	// Star is the last thing in this address part: consume to the next
	// '/' or end.
	if pc := c.patAt(c.pi); pc == '/' || pc == 0 {
		for {
			ac := c.addrAt(c.ai)
			if ac == '/' || ac == 0 {
				return true
			}
			c.ai++
		}
	}

	for {
		patCache := c.pi
		for !c.matchCharacter() {
			c.ai++
			ac := c.addrAt(c.ai)
			if ac == '/' || ac == 0 {
				if c.partial && ac == 0 {
					return true
				}
				return false
			}
		}
		addrCache := c.ai
		if c.matchExpression() {
			return true
		}
		c.pi = patCache
		c.ai = addrCache
	}
}

// matchCharacter matches a single literal character, '?', a bracketed
// list, or a curly-braced alternation against the next position in
// address. On failure it restores both cursors to their entry values.
func (c *matchCursor) matchCharacter() bool {
	piCache, aiCache := c.pi, c.ai
	switch c.patAt(c.pi) {
	case '[':
		if c.matchBrackets() {
			return true
		}
	case ']':
		// unbalanced brackets: fail
	case '{':
		if c.matchCurlyBraces() {
			return true
		}
	case '}':
		// unbalanced curly braces: fail
	default:
		pc := c.patAt(c.pi)
		if pc == c.addrAt(c.ai) || pc == '?' {
			c.pi++
			c.ai++
			return true
		}
	}
	c.pi, c.ai = piCache, aiCache
	return false
}

// matchBrackets matches a bracketed character class, e.g. "[abc]",
// "[!d-h]" or "[a-zA-Z]". Ranges may be given in either order and the
// class may be negated with a leading '!'.
func (c *matchCursor) matchBrackets() bool {
	c.pi++ // past '['

	negated := false
	if c.patAt(c.pi) == '!' {
		negated = true
		c.pi++
	}

	match := negated
	for c.patAt(c.pi) != ']' {
		pc := c.patAt(c.pi)
		if pc == '/' || pc == 0 {
			return false // unbalanced brackets
		}

		if c.patAt(c.pi+1) == '-' && c.patAt(c.pi+2) != ']' {
			upperOrEnd := c.patAt(c.pi + 2)
			if upperOrEnd == '/' || upperOrEnd == 0 {
				return false // unbalanced brackets
			}
			lower, upper := pc, upperOrEnd
			if lower > upper {
				lower, upper = upper, lower
			}
			if ac := c.addrAt(c.ai); ac >= lower && ac <= upper {
				match = !negated
			}
			c.pi += 3
		} else {
			if pc == c.addrAt(c.ai) {
				match = !negated
			}
			c.pi++
		}
	}
	c.pi++ // past ']'
	c.ai++ // past matched character
	return match
}

// matchCurlyBraces matches a curly-braced list of alternative substrings,
// e.g. "{in,out,,}". Alternatives may be empty. If multiple alternatives
// match, the longest one determines how far the address cursor advances.
func (c *matchCursor) matchCurlyBraces() bool {
	end := c.pi
	matchedLen := 0
	matched := false

	for c.patAt(c.pi) != '}' {
		if pc := c.patAt(c.pi); pc == '/' || pc == 0 {
			return false // unbalanced curly braces
		}

		for c.patAt(end) != ',' && c.patAt(end) != '}' {
			if ec := c.patAt(end); ec == '/' || ec == 0 {
				return false // unbalanced curly braces
			}
			end++
		}

		c.pi++ // past '{' or ','
		subLen := end - c.pi
		if c.partial {
			remaining := len(c.addr) - c.ai
			if remaining < 0 {
				remaining = 0
			}
			if subLen > remaining {
				subLen = remaining
			}
		}

		if c.regionEquals(c.pi, subLen) {
			matched = true
			if subLen > matchedLen {
				matchedLen = subLen
			}
		}
		c.pi = end
		end++
	}
	c.pi++ // past '}'
	c.ai += matchedLen
	return matched
}
