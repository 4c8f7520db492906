package lexer

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"wgslfront/internal/diag"
	"wgslfront/internal/token"
)

const utf8RuneSelf = utf8.RuneSelf

func isIdentStartByte(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentContinueByte(b byte) bool {
	return b == '_' || isIdentStartByte(b) || isDec(b)
}

func isIdentStartRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.Is(unicode.Nl, r)
}

func isIdentContinueRune(r rune) bool {
	return r == '_' || isIdentStartRune(r) || unicode.IsDigit(r) ||
		unicode.In(r, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc)
}

// scanWord reads an identifier-like word; '_' alone is a word too.
// A non-ASCII byte that cannot start an identifier becomes an Invalid token.
func (lx *Lexer) scanWord() token.Token {
	start := lx.cursor.Mark()
	ascii := true
	first := true
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			first = false
			continue
		}
		r, sz := utf8.DecodeRune(lx.cursor.Rest())
		ok := isIdentContinueRune(r)
		if first {
			ok = isIdentStartRune(r)
		}
		if !ok || r == utf8.RuneError {
			break
		}
		ascii = false
		first = false
		lx.cursor.Advance(sz)
	}

	if lx.cursor.Mark() == start {
		// одиночный не-идентификаторный символ
		_, sz := utf8.DecodeRune(lx.cursor.Rest())
		lx.cursor.Advance(sz)
		return token.Token{Kind: token.Invalid}
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	if !ascii && !norm.NFC.IsNormalString(text) {
		lx.warn(diag.LexNonNormalizedIdent, sp, "identifier '"+text+"' is not in Unicode normalization form C")
	}
	return token.Token{Kind: token.Word, Text: text}
}
