package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"wgslfront/internal/ast"
	"wgslfront/internal/source"
	"wgslfront/internal/token"
)

// ASTNodeOutput is one node of the JSON AST dump.
type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Kind     string          `json:"kind,omitempty"`
	Span     *source.Span    `json:"span,omitempty"`
	Text     string          `json:"text,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

type treeNode struct {
	typ      string
	kind     string
	text     string
	span     source.Span
	hasSpan  bool
	children []*treeNode
}

func (n *treeNode) add(children ...*treeNode) *treeNode {
	for _, c := range children {
		if c != nil {
			n.children = append(n.children, c)
		}
	}
	return n
}

func leaf(typ, text string) *treeNode { return &treeNode{typ: typ, text: text} }

func spanned(typ, kind string, sp source.Span) *treeNode {
	return &treeNode{typ: typ, kind: kind, span: sp, hasSpan: true}
}

func (n *treeNode) label(fs *source.FileSet) string {
	var sb strings.Builder
	sb.WriteString(n.typ)
	if n.kind != "" {
		sb.WriteString(" ")
		sb.WriteString(n.kind)
	}
	if n.text != "" {
		sb.WriteString(": ")
		sb.WriteString(n.text)
	}
	if n.hasSpan {
		fmt.Fprintf(&sb, " (span: %s)", formatSpan(n.span, fs))
	}
	return sb.String()
}

func (n *treeNode) output() ASTNodeOutput {
	out := ASTNodeOutput{Type: n.typ, Kind: n.kind, Text: n.text}
	if n.hasSpan {
		sp := n.span
		out.Span = &sp
	}
	for _, c := range n.children {
		out.Children = append(out.Children, c.output())
	}
	return out
}

func writeTree(w io.Writer, n *treeNode, fs *source.FileSet, prefix string) {
	for i, c := range n.children {
		branch, next := "├─ ", "│  "
		if i == len(n.children)-1 {
			branch, next = "└─ ", "   "
		}
		fmt.Fprintf(w, "%s%s%s\n", prefix, branch, c.label(fs))
		writeTree(w, c, fs, prefix+next)
	}
}

// formatSpan renders "line:col-line:col" when fs is set, raw offsets otherwise.
func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs != nil {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}

// FormatASTPretty prints the translation unit as an indented tree.
func FormatASTPretty(w io.Writer, unit *ast.TranslationUnit, fileID source.FileID, fs *source.FileSet) error {
	if unit == nil {
		return fmt.Errorf("no translation unit")
	}
	root := buildUnitTree(unit)
	header := "TranslationUnit"
	if fs != nil {
		header = fs.Get(fileID).FormatPath("auto", fs.BaseDir())
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}
	writeTree(w, root, fs, "")
	return nil
}

// FormatASTJSON writes the translation unit as a JSON node tree.
func FormatASTJSON(w io.Writer, unit *ast.TranslationUnit) error {
	if unit == nil {
		return fmt.Errorf("no translation unit")
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildUnitTree(unit).output())
}

func buildUnitTree(u *ast.TranslationUnit) *treeNode {
	root := &treeNode{typ: "TranslationUnit"}
	if exts := u.EnableExtensions.List(); len(exts) > 0 {
		names := make([]string, len(exts))
		for i, e := range exts {
			names[i] = e.String()
		}
		root.add(leaf("Enable", strings.Join(names, ", ")))
	}
	if exts := u.LanguageExtensions.List(); len(exts) > 0 {
		names := make([]string, len(exts))
		for i, e := range exts {
			names[i] = e.String()
		}
		root.add(leaf("Requires", strings.Join(names, ", ")))
	}
	if u.DiagnosticFilters.Len() > 0 {
		filters := &treeNode{typ: "DiagnosticFilters"}
		for i, n := range u.DiagnosticFilters.Nodes() {
			text := fmt.Sprintf("#%d %s(%s)", i+1, n.Filter.Severity, n.Filter.Rule)
			if n.Parent != 0 {
				text += fmt.Sprintf(" -> #%d", n.Parent)
			}
			filters.add(&treeNode{typ: "Filter", text: text, span: n.Span, hasSpan: true})
		}
		root.add(filters)
	}
	for _, id := range u.DeclIDs() {
		root.add(declNode(u, u.Decl(id)))
	}
	return root
}

func declNode(u *ast.TranslationUnit, d *ast.GlobalDecl) *treeNode {
	n := spanned("Decl", d.Kind.String(), d.Span)
	if name := d.Name(); name.Name != "" {
		n.text = name.Name
	}
	switch d.Kind {
	case ast.DeclFn:
		fnNode(u, n, d.Fn)
	case ast.DeclVar:
		v := d.Var
		n.add(leaf("Space", v.Space.String()))
		if v.Binding != nil {
			n.add(leaf("Group", exprInline(u, v.Binding.Group)), leaf("Binding", exprInline(u, v.Binding.Binding)))
		}
		n.add(typeLeaf(u, v.Type), exprNode(u, "Init", v.Init))
	case ast.DeclConst:
		n.add(typeLeaf(u, d.Const.Type), exprNode(u, "Init", d.Const.Init))
	case ast.DeclOverride:
		o := d.Override
		if o.ID.IsValid() {
			n.add(leaf("ID", exprInline(u, o.ID)))
		}
		n.add(typeLeaf(u, o.Type), exprNode(u, "Init", o.Init))
	case ast.DeclStruct:
		for _, m := range d.Struct.Members {
			mn := spanned("Member", "", m.Name.Span)
			mn.text = m.Name.Name + ": " + typeString(u, m.Type)
			mn.add(bindingLeaf(u, m.Binding))
			if m.Align.IsValid() {
				mn.add(leaf("Align", exprInline(u, m.Align)))
			}
			if m.Size.IsValid() {
				mn.add(leaf("Size", exprInline(u, m.Size)))
			}
			n.add(mn)
		}
	case ast.DeclAlias:
		n.add(typeLeaf(u, d.Alias.Type))
	case ast.DeclConstAssert:
		n.add(exprNode(u, "Condition", d.ConstAssert))
	}
	if deps := d.Dependencies.List(); len(deps) > 0 {
		names := make([]string, len(deps))
		for i, dep := range deps {
			names[i] = dep.Name
		}
		n.add(leaf("Dependencies", strings.Join(names, ", ")))
	}
	return n
}

func fnNode(u *ast.TranslationUnit, n *treeNode, fn *ast.Function) {
	if ep := fn.EntryPoint; ep != nil {
		text := ep.Stage.String()
		if ep.HasWorkgroupSize {
			sizes := make([]string, 0, 3)
			for _, s := range ep.WorkgroupSize {
				if s.IsValid() {
					sizes = append(sizes, exprInline(u, s))
				}
			}
			text += " workgroup_size(" + strings.Join(sizes, ", ") + ")"
		}
		if ep.EarlyDepthTest != nil {
			text += " early_depth_test(" + ep.EarlyDepthTest.Conservative.String() + ")"
		}
		n.add(leaf("EntryPoint", text))
	}
	if len(fn.Arguments) > 0 {
		args := &treeNode{typ: "Arguments"}
		for _, a := range fn.Arguments {
			an := spanned("Argument", "", a.Name.Span)
			an.text = a.Name.Name + ": " + typeString(u, a.Type)
			an.add(bindingLeaf(u, a.Binding))
			args.add(an)
		}
		n.add(args)
	}
	if r := fn.Result; r != nil {
		n.add(leaf("Result", typeString(u, r.Type)).add(bindingLeaf(u, r.Binding)))
	}
	n.add(blockNode(u, "Body", fn.Body))
}

func bindingLeaf(u *ast.TranslationUnit, b *ast.Binding) *treeNode {
	if b == nil {
		return nil
	}
	switch b.Kind {
	case ast.BindingBuiltIn:
		text := "builtin(" + b.BuiltIn.String() + ")"
		if b.Invariant {
			text += " invariant"
		}
		return leaf("Binding", text)
	default:
		text := "location(" + exprInline(u, b.Location) + ")"
		if b.SecondBlendSource {
			text += " blend_src(1)"
		}
		if b.Interpolation != ast.InterpolationNone {
			text += " interpolate(" + b.Interpolation.String()
			if b.Sampling != ast.SamplingNone {
				text += ", " + b.Sampling.String()
			}
			text += ")"
		}
		return leaf("Binding", text)
	}
}

func typeLeaf(u *ast.TranslationUnit, id ast.TypeID) *treeNode {
	if !id.IsValid() {
		return nil
	}
	return leaf("Type", typeString(u, id))
}

func blockNode(u *ast.TranslationUnit, typ string, b ast.Block) *treeNode {
	n := &treeNode{typ: typ, span: b.Span, hasSpan: !b.Span.Empty()}
	for _, s := range b.Stmts {
		n.add(stmtNode(u, s))
	}
	return n
}

func stmtNode(u *ast.TranslationUnit, s ast.Stmt) *treeNode {
	n := spanned("Stmt", s.Kind.String(), s.Span)
	switch s.Kind {
	case ast.StmtLocalDecl:
		l := s.Local
		n.text = l.Kind.String() + " " + l.Name.Name
		n.add(typeLeaf(u, l.Type), exprNode(u, "Init", l.Init))
	case ast.StmtBlock:
		n.children = blockNode(u, "Block", *s.Block).children
	case ast.StmtIf:
		n.add(exprNode(u, "Condition", s.If.Condition), blockNode(u, "Accept", s.If.Accept))
		if len(s.If.Reject.Stmts) > 0 {
			n.add(blockNode(u, "Reject", s.If.Reject))
		}
	case ast.StmtSwitch:
		n.add(exprNode(u, "Selector", s.Switch.Selector))
		for _, c := range s.Switch.Cases {
			cn := &treeNode{typ: "Case", text: "default"}
			if !c.Value.Default {
				cn.text = exprInline(u, c.Value.Expr)
			}
			if c.FallThrough {
				cn.kind = "fallthrough"
			} else {
				cn.children = blockNode(u, "Body", c.Body).children
			}
			n.add(cn)
		}
	case ast.StmtLoop:
		n.add(blockNode(u, "Body", s.Loop.Body))
		if len(s.Loop.Continuing.Stmts) > 0 {
			n.add(blockNode(u, "Continuing", s.Loop.Continuing))
		}
		n.add(exprNode(u, "BreakIf", s.Loop.BreakIf))
	case ast.StmtCall:
		n.text = s.Call.Function.Name
		for _, a := range s.Call.Args {
			n.add(exprNode(u, "Arg", a))
		}
	case ast.StmtAssign:
		if s.Assign.Op != nil {
			n.text = s.Assign.Op.String() + "="
		}
		n.add(exprNode(u, "Target", s.Assign.Target), exprNode(u, "Value", s.Assign.Value))
	case ast.StmtReturn, ast.StmtIncrement, ast.StmtDecrement, ast.StmtPhony, ast.StmtConstAssert:
		n.add(exprNode(u, "Value", s.Expr))
	}
	return n
}

// exprNode renders the expression as one line; the tree stays readable for
// long initializers and the JSON form keeps the span.
func exprNode(u *ast.TranslationUnit, typ string, id ast.ExprID) *treeNode {
	e := u.Expr(id)
	if e == nil {
		return nil
	}
	return &treeNode{typ: typ, kind: e.Kind.String(), text: exprInline(u, id), span: e.Span, hasSpan: true}
}

func exprInline(u *ast.TranslationUnit, id ast.ExprID) string {
	e := u.Expr(id)
	if e == nil {
		return "<none>"
	}
	switch e.Kind {
	case ast.ExprLiteral:
		lit, _ := u.Exprs.Literal(id)
		if lit.Kind == ast.LitBool {
			return strconv.FormatBool(lit.Bool)
		}
		return numberString(lit.Number)
	case ast.ExprIdent:
		d, _ := u.Exprs.Ident(id)
		return d.Name
	case ast.ExprUnary:
		d, _ := u.Exprs.Unary(id)
		return d.Op.String() + exprInline(u, d.Operand)
	case ast.ExprBinary:
		d, _ := u.Exprs.Binary(id)
		return "(" + exprInline(u, d.Left) + " " + d.Op.String() + " " + exprInline(u, d.Right) + ")"
	case ast.ExprCall:
		d, _ := u.Exprs.Call(id)
		return d.Function.Name + "(" + exprsInline(u, d.Args) + ")"
	case ast.ExprBitcast:
		d, _ := u.Exprs.Bitcast(id)
		return "bitcast<" + typeString(u, d.To) + ">(" + exprInline(u, d.Value) + ")"
	case ast.ExprMember:
		d, _ := u.Exprs.Member(id)
		return exprInline(u, d.Base) + "." + d.Field.Name
	case ast.ExprIndex:
		d, _ := u.Exprs.Index(id)
		return exprInline(u, d.Base) + "[" + exprInline(u, d.Index) + "]"
	case ast.ExprConstruct:
		d, _ := u.Exprs.Construct(id)
		return ctorString(u, d.Type) + "(" + exprsInline(u, d.Components) + ")"
	case ast.ExprAddrOf:
		d, _ := u.Exprs.Ref(id)
		return "&" + exprInline(u, d.Operand)
	case ast.ExprDeref:
		d, _ := u.Exprs.Ref(id)
		return "*" + exprInline(u, d.Operand)
	}
	return "?"
}

func exprsInline(u *ast.TranslationUnit, ids []ast.ExprID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = exprInline(u, id)
	}
	return strings.Join(parts, ", ")
}

func numberString(n token.NumberValue) string {
	var s string
	switch n.Kind {
	case token.U32, token.U64:
		s = strconv.FormatUint(n.Uint, 10)
	case token.AbstractFloat, token.F32, token.F64:
		s = strconv.FormatFloat(n.Float, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEn") {
			s += ".0"
		}
	default:
		s = strconv.FormatInt(n.Int, 10)
	}
	switch n.Kind {
	case token.I32:
		s += "i"
	case token.U32:
		s += "u"
	case token.I64:
		s += "li"
	case token.U64:
		s += "lu"
	case token.F32:
		s += "f"
	case token.F64:
		s += "lf"
	}
	return s
}

func ctorString(u *ast.TranslationUnit, c ast.ConstructorType) string {
	switch c.Kind {
	case ast.CtorScalar:
		return c.Scalar.String()
	case ast.CtorPartialVector:
		return fmt.Sprintf("vec%d", c.Size)
	case ast.CtorVector:
		return fmt.Sprintf("vec%d<%s>", c.Size, typeString(u, c.Elem))
	case ast.CtorPartialMatrix:
		return fmt.Sprintf("mat%dx%d", c.Columns, c.Rows)
	case ast.CtorMatrix:
		return fmt.Sprintf("mat%dx%d<%s>", c.Columns, c.Rows, typeString(u, c.Elem))
	case ast.CtorPartialArray:
		return "array"
	case ast.CtorArray:
		return arrayString(u, "array", c.Base, c.ArraySize)
	}
	return typeString(u, c.Type)
}

func arrayString(u *ast.TranslationUnit, name string, base ast.TypeID, size ast.ArraySize) string {
	if size.IsDynamic() {
		return name + "<" + typeString(u, base) + ">"
	}
	return name + "<" + typeString(u, base) + ", " + exprInline(u, size.Constant) + ">"
}

func typeString(u *ast.TranslationUnit, id ast.TypeID) string {
	t := u.Type(id)
	if t == nil {
		return "<inferred>"
	}
	switch t.Kind {
	case ast.TypeScalar:
		return t.Scalar.String()
	case ast.TypeVector:
		return fmt.Sprintf("vec%d<%s>", t.Size, typeString(u, t.Elem))
	case ast.TypeMatrix:
		return fmt.Sprintf("mat%dx%d<%s>", t.Columns, t.Rows, typeString(u, t.Elem))
	case ast.TypeAtomic:
		return "atomic<" + t.Scalar.String() + ">"
	case ast.TypePointer:
		return "ptr<" + t.Space.String() + ", " + typeString(u, t.Base) + ">"
	case ast.TypeArray:
		return arrayString(u, "array", t.Base, t.ArraySize)
	case ast.TypeBindingArray:
		return arrayString(u, "binding_array", t.Base, t.ArraySize)
	case ast.TypeSampler:
		if t.Comparison {
			return "sampler_comparison"
		}
		return "sampler"
	case ast.TypeImage:
		return imageString(t.Image)
	case ast.TypeAccelerationStructure:
		return "acceleration_structure"
	case ast.TypeRayQuery:
		return "ray_query"
	case ast.TypeRayDesc:
		return "RayDesc"
	case ast.TypeRayIntersection:
		return "RayIntersection"
	case ast.TypeUser:
		return t.Name.Name
	}
	return t.Kind.String()
}

func imageString(img ast.ImageType) string {
	var sb strings.Builder
	sb.WriteString("texture_")
	switch img.Class {
	case ast.ImageDepth:
		sb.WriteString("depth_")
	case ast.ImageStorage:
		sb.WriteString("storage_")
	}
	if img.Multi {
		sb.WriteString("multisampled_")
	}
	sb.WriteString(img.Dim.String())
	if img.Arrayed {
		sb.WriteString("_array")
	}
	switch img.Class {
	case ast.ImageSampled:
		sb.WriteString("<" + img.Sample.String() + ">")
	case ast.ImageStorage:
		sb.WriteString("<" + img.Format.String() + ", " + img.Access.String() + ">")
	}
	return sb.String()
}
