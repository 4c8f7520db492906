// Package fuzztests houses Go fuzz harnesses for the WGSL front end
// (source -> lexer -> parser). They guard against panics, hangs and broken
// span invariants on arbitrary input.
//
// Назначение: запускать fuzz-обработчики, которые загружают байты в FileSet и
// прогоняют их через лексер/парсер.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
