package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"wgslfront/internal/ast"
	"wgslfront/internal/source"
)

// CheckSpanInvariants runs span sanity checks over a parsed unit:
// 1) every declaration span is non-empty, inside the file and after the previous one
// 2) every expression span is non-empty and inside the file
// 3) operator, member, index and reference expressions cover their operands
// 4) non-synthesized statement spans lie inside their function declaration
func CheckSpanInvariants(unit *ast.TranslationUnit, sf *source.File) error {
	if unit == nil || sf == nil {
		return fmt.Errorf("nil unit or file")
	}
	size, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	inFile := func(what string, sp source.Span) error {
		if sp.File != sf.ID {
			return fmt.Errorf("%s span file mismatch: got=%d want=%d", what, sp.File, sf.ID)
		}
		if sp.End <= sp.Start {
			return fmt.Errorf("empty %s span: %v", what, sp)
		}
		if sp.End > size {
			return fmt.Errorf("%s span end beyond content: %d > %d", what, sp.End, size)
		}
		return nil
	}

	// 1) объявления идут по порядку и не пересекаются
	var prevEnd uint32
	for _, id := range unit.DeclIDs() {
		d := unit.Decl(id)
		if err := inFile("decl "+d.Kind.String(), d.Span); err != nil {
			return err
		}
		if d.Span.Start < prevEnd {
			return fmt.Errorf("decl %s span %v overlaps the previous declaration", d.Name().Name, d.Span)
		}
		prevEnd = d.Span.End
	}

	// 2) + 3)
	exprs := unit.Exprs
	for i := uint32(1); i <= exprs.Len(); i++ {
		id := ast.ExprID(i)
		e := exprs.Get(id)
		what := "expr " + e.Kind.String()
		if err := inFile(what, e.Span); err != nil {
			return err
		}
		for _, child := range operands(exprs, id) {
			if !child.IsValid() {
				continue
			}
			if cs := exprs.Get(child).Span; !e.Span.Contains(cs) {
				return fmt.Errorf("%s span %v does not cover operand %v", what, e.Span, cs)
			}
		}
	}

	// 4)
	for _, id := range unit.DeclIDs() {
		d := unit.Decl(id)
		if d.Kind != ast.DeclFn {
			continue
		}
		if err := checkBlock(&d.Fn.Body, d.Span); err != nil {
			return fmt.Errorf("fn %s: %w", d.Fn.Name.Name, err)
		}
	}
	return nil
}

func operands(exprs *ast.Exprs, id ast.ExprID) []ast.ExprID {
	if d, ok := exprs.Unary(id); ok {
		return []ast.ExprID{d.Operand}
	}
	if d, ok := exprs.Binary(id); ok {
		return []ast.ExprID{d.Left, d.Right}
	}
	if d, ok := exprs.Member(id); ok {
		return []ast.ExprID{d.Base}
	}
	if d, ok := exprs.Index(id); ok {
		return []ast.ExprID{d.Base, d.Index}
	}
	if d, ok := exprs.Ref(id); ok {
		return []ast.ExprID{d.Operand}
	}
	return nil
}

// checkBlock skips empty spans: desugared loops synthesize statements
// without a source range.
func checkBlock(b *ast.Block, outer source.Span) error {
	for i := range b.Stmts {
		st := &b.Stmts[i]
		if !st.Span.Empty() && !outer.Contains(st.Span) {
			return fmt.Errorf("stmt %s span %v outside %v", st.Kind, st.Span, outer)
		}
		for _, child := range childBlocks(st) {
			if err := checkBlock(child, outer); err != nil {
				return err
			}
		}
	}
	return nil
}

func childBlocks(st *ast.Stmt) []*ast.Block {
	switch st.Kind {
	case ast.StmtBlock:
		return []*ast.Block{st.Block}
	case ast.StmtIf:
		return []*ast.Block{&st.If.Accept, &st.If.Reject}
	case ast.StmtLoop:
		return []*ast.Block{&st.Loop.Body, &st.Loop.Continuing}
	case ast.StmtSwitch:
		out := make([]*ast.Block, 0, len(st.Switch.Cases))
		for i := range st.Switch.Cases {
			out = append(out, &st.Switch.Cases[i].Body)
		}
		return out
	}
	return nil
}
