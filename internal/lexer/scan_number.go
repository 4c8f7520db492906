package lexer

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"wgslfront/internal/token"
)

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isHex(b byte) bool {
	return isDec(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// scanNumber reads the longest numeric lexeme, suffix included, and converts it.
// Shapes: 12, 0x1F, 1.5, .5, 1., 1e-3, 0x1.8p3, with suffixes i u li lu f lf h.
func (lx *Lexer) scanNumber() token.Token {
	c := &lx.cursor
	start := c.Off

	hex := c.Peek() == '0' && (c.PeekAt(1) == 'x' || c.PeekAt(1) == 'X')
	digit := isDec
	if hex {
		c.Advance(2)
		digit = isHex
	}
	for digit(c.Peek()) {
		c.Bump()
	}
	float := false
	if c.Peek() == '.' {
		float = true
		c.Bump()
		for digit(c.Peek()) {
			c.Bump()
		}
	}
	expCh := byte('e')
	if hex {
		expCh = 'p'
	}
	if p := c.Peek() | 0x20; p == expCh {
		n := uint32(1)
		if s := c.PeekAt(1); s == '+' || s == '-' {
			n = 2
		}
		if isDec(c.PeekAt(n)) {
			float = true
			c.Advance(int(n))
			for isDec(c.Peek()) {
				c.Bump()
			}
		}
	}
	body := string(lx.file.Content[start:c.Off])
	for isIdentContinueByte(c.Peek()) {
		c.Bump()
	}
	suffix := string(lx.file.Content[start+uint32(len(body)) : c.Off])

	num, err := parseNumber(body, suffix, hex, float)
	if err != nil {
		return token.Token{Kind: token.Number, NumErr: err}
	}
	return token.Token{Kind: token.Number, Num: num}
}

func parseNumber(body, suffix string, hex, float bool) (token.NumberValue, *token.NumberError) {
	invalid := func(reason string) (token.NumberValue, *token.NumberError) {
		return token.NumberValue{}, &token.NumberError{Kind: token.NumInvalid, Reason: reason}
	}
	if hex && len(body) == 2 {
		return invalid("missing hexadecimal digits")
	}

	switch suffix {
	case "h":
		if hex && !float {
			return invalid("'h' suffix on hexadecimal integer")
		}
		return token.NumberValue{}, &token.NumberError{Kind: token.NumUnimplementedF16}
	case "f", "lf":
		if hex && !float {
			return invalid("float suffix on hexadecimal integer")
		}
		if !hex && !float && hasLeadingZero(body) {
			return invalid("leading zeros")
		}
		return parseFloat(body, suffix, hex)
	case "", "i", "u", "li", "lu":
		if float {
			if suffix != "" {
				return invalid("integer suffix on float literal")
			}
			return parseFloat(body, suffix, hex)
		}
		if !hex && hasLeadingZero(body) {
			return invalid("leading zeros")
		}
		return parseInt(body, suffix, hex)
	}
	return invalid("unknown suffix '" + suffix + "'")
}

func hasLeadingZero(body string) bool {
	return len(body) > 1 && body[0] == '0'
}

func parseInt(body, suffix string, hex bool) (token.NumberValue, *token.NumberError) {
	digits, base := body, 10
	if hex {
		digits, base = body[2:], 16
	}
	v, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return token.NumberValue{}, notRepresentable(body + suffix)
	}

	var limit uint64
	out := token.NumberValue{}
	switch suffix {
	case "":
		out.Kind, limit = token.AbstractInt, math.MaxInt64
	case "i":
		out.Kind, limit = token.I32, math.MaxInt32
	case "u":
		out.Kind, limit = token.U32, math.MaxUint32
	case "li":
		out.Kind, limit = token.I64, math.MaxInt64
	case "lu":
		out.Kind, limit = token.U64, math.MaxUint64
	}
	if v > limit {
		return token.NumberValue{}, notRepresentable(body + suffix)
	}
	if out.Kind == token.U32 || out.Kind == token.U64 {
		out.Uint = v
	} else {
		out.Int = int64(v)
	}
	return out, nil
}

func parseFloat(body, suffix string, hex bool) (token.NumberValue, *token.NumberError) {
	text := body
	if hex && !strings.ContainsAny(text, "pP") {
		text += "p0"
	}
	out := token.NumberValue{Kind: token.AbstractFloat}
	bits := 64
	switch suffix {
	case "f":
		out.Kind, bits = token.F32, 32
	case "lf":
		out.Kind = token.F64
	}
	v, err := strconv.ParseFloat(text, bits)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return token.NumberValue{}, notRepresentable(body + suffix)
		}
		return token.NumberValue{}, &token.NumberError{Kind: token.NumInvalid, Reason: err.Error()}
	}
	out.Float = v
	return out, nil
}

func notRepresentable(text string) *token.NumberError {
	return &token.NumberError{Kind: token.NumNotRepresentable, Reason: text}
}
