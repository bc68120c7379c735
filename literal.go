package exprjson

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// litFromToken decodes a literal token's raw lexeme into its LitValue.
// Numbers keep their source digit text; quoted forms have their escapes
// processed.
func litFromToken(tok Token, lit string) LitValue {
	switch tok.Kind {
	case TRUE:
		return LitBool{Value: true}
	case FALSE:
		return LitBool{Value: false}
	case INT, FLOAT:
		digits, suffix, isFloat := splitNumber(lit)
		if tok.Kind == FLOAT || suffix == "f32" || suffix == "f64" {
			isFloat = true
		}
		if isFloat {
			return LitFloat{Digits: digits, Suffix: suffix}
		}
		return LitInt{Digits: digits, Suffix: suffix}
	case STRING:
		body, raw, suffix := splitQuoted(lit)
		if raw {
			return LitStr{Value: body, Suffix: suffix}
		}
		return LitStr{Value: string(decodeEscapes(body)), Suffix: suffix}
	case BYTESTRING:
		body, raw, suffix := splitQuoted(lit)
		if raw {
			return LitByteStr{Value: []byte(body), Suffix: suffix}
		}
		return LitByteStr{Value: decodeEscapes(body), Suffix: suffix}
	case CSTRING:
		body, raw, suffix := splitQuoted(lit)
		if raw {
			return LitCStr{Value: body, Suffix: suffix}
		}
		return LitCStr{Value: string(decodeEscapes(body)), Suffix: suffix}
	case CHAR:
		body, _, suffix := splitQuoted(lit)
		r, _ := utf8.DecodeRune(decodeEscapes(body))
		return LitChar{Value: r, Suffix: suffix}
	case BYTE:
		body, _, suffix := splitQuoted(lit)
		decoded := decodeEscapes(body)
		var b byte
		if len(decoded) > 0 {
			b = decoded[0]
		}
		return LitByte{Value: b, Suffix: suffix}
	}
	return LitVerbatim{Toks: Tokens{lit}}
}

// splitNumber separates a numeric lexeme into its digit text and suffix.
// The digit text is returned exactly as written.
func splitNumber(lit string) (digits, suffix string, isFloat bool) {
	i := 0
	if strings.HasPrefix(lit, "0x") || strings.HasPrefix(lit, "0X") ||
		strings.HasPrefix(lit, "0o") || strings.HasPrefix(lit, "0O") ||
		strings.HasPrefix(lit, "0b") || strings.HasPrefix(lit, "0B") {
		i = 2
		for i < len(lit) && (hexByte(lit[i]) || lit[i] == '_') {
			i++
		}
		return lit[:i], lit[i:], false
	}

	digitRun := func() {
		for i < len(lit) && (digitByte(lit[i]) || lit[i] == '_') {
			i++
		}
	}
	digitRun()
	if i < len(lit) && lit[i] == '.' {
		i++
		isFloat = true
		digitRun()
	}
	if i < len(lit) && (lit[i] == 'e' || lit[i] == 'E') {
		j := i + 1
		if j < len(lit) && (lit[j] == '+' || lit[j] == '-') {
			j++
		}
		if j < len(lit) && digitByte(lit[j]) {
			i = j
			isFloat = true
			digitRun()
		}
	}
	return lit[:i], lit[i:], isFloat
}

// splitQuoted strips the prefix, quotes and pounds off a quoted lexeme,
// returning the undecoded body, whether it was a raw literal, and the
// trailing suffix.
func splitQuoted(lit string) (body string, raw bool, suffix string) {
	i := 0
	for i < len(lit) && lit[i] != '"' && lit[i] != '\'' && lit[i] != '#' {
		i++
	}
	raw = strings.ContainsRune(lit[:i], 'r')
	pounds := 0
	for i+pounds < len(lit) && lit[i+pounds] == '#' {
		pounds++
	}
	open := i + pounds
	if open >= len(lit) {
		return "", raw, ""
	}
	quote := lit[open]

	end := len(lit)
	for end > open+1 && identByte(lit[end-1]) {
		end--
	}
	end -= pounds
	if end-1 <= open || lit[end-1] != quote {
		// no closing quote found where expected; lexer guarantees one,
		// so only malformed hand-built input lands here
		return lit[open+1:], raw, ""
	}
	return lit[open+1 : end-1], raw, lit[end+pounds:]
}

// decodeEscapes processes backslash escapes in a literal body.
func decodeEscapes(s string) []byte {
	var out []byte
	for i := 0; i < len(s); {
		c := s[i]
		if c != '\\' {
			out = append(out, c)
			i++
			continue
		}
		i++
		if i >= len(s) {
			panic(InvalidEscape{Escape: `\`})
		}
		switch s[i] {
		case 'n':
			out = append(out, '\n')
			i++
		case 'r':
			out = append(out, '\r')
			i++
		case 't':
			out = append(out, '\t')
			i++
		case '\\':
			out = append(out, '\\')
			i++
		case '\'':
			out = append(out, '\'')
			i++
		case '"':
			out = append(out, '"')
			i++
		case '0':
			out = append(out, 0)
			i++
		case 'x':
			if i+2 >= len(s) {
				panic(InvalidEscape{Escape: s[i-1:]})
			}
			n, err := strconv.ParseUint(s[i+1:i+3], 16, 8)
			if err != nil {
				panic(InvalidEscape{Escape: s[i-1 : i+3]})
			}
			out = append(out, byte(n))
			i += 3
		case 'u':
			j := strings.IndexByte(s[i:], '}')
			if j < 0 || i+1 >= len(s) || s[i+1] != '{' {
				panic(InvalidEscape{Escape: s[i-1:]})
			}
			n, err := strconv.ParseUint(strings.ReplaceAll(s[i+2:i+j], "_", ""), 16, 32)
			if err != nil {
				panic(InvalidEscape{Escape: s[i-1 : i+j+1]})
			}
			var buf [4]byte
			out = append(out, buf[:utf8.EncodeRune(buf[:], rune(n))]...)
			i += j + 1
		case '\n':
			// line continuation: swallow the newline and leading spaces
			i++
			for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\r' || s[i] == '\n') {
				i++
			}
		default:
			panic(InvalidEscape{Escape: s[i-1 : i+1]})
		}
	}
	return out
}
