package lexer

import "unicode/utf8"

// skipTrivia пропускает пробелы и комментарии (блочные — с вложенностью).
// Возвращает true, если впереди незакрытый блочный комментарий; курсор
// тогда стоит на его "/*".
func (lx *Lexer) skipTrivia() bool {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '/' && lx.cursor.PeekAt(1) == '/':
			for !lx.cursor.EOF() && !isLineBreak(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
		case b == '/' && lx.cursor.PeekAt(1) == '*':
			if !lx.skipBlockComment() {
				return true
			}
		case b < utf8.RuneSelf:
			if !isBlankByte(b) {
				return false
			}
			lx.cursor.Bump()
		default:
			r, sz := utf8.DecodeRune(lx.cursor.Rest())
			if !isBlankRune(r) {
				return false
			}
			lx.cursor.Advance(sz)
		}
	}
	return false
}

func (lx *Lexer) skipBlockComment() bool {
	start := lx.cursor.Mark()
	lx.cursor.Advance(2)
	depth := 1
	for depth > 0 {
		if lx.cursor.EOF() {
			lx.cursor.Reset(start)
			return false
		}
		switch {
		case lx.cursor.Peek() == '/' && lx.cursor.PeekAt(1) == '*':
			depth++
			lx.cursor.Advance(2)
		case lx.cursor.Peek() == '*' && lx.cursor.PeekAt(1) == '/':
			depth--
			lx.cursor.Advance(2)
		default:
			lx.cursor.Bump()
		}
	}
	return true
}

func isLineBreak(b byte) bool {
	return b == '\n' || b == '\r' || b == '\v' || b == '\f'
}

func isBlankByte(b byte) bool {
	return b == ' ' || b == '\t' || isLineBreak(b)
}

// Unicode blank code points allowed between tokens.
func isBlankRune(r rune) bool {
	switch r {
	case 0x0085, 0x200E, 0x200F, 0x2028, 0x2029:
		return true
	}
	return false
}
