package diagfmt

import (
	"fmt"
	"io"

	"github.com/JakobDegen/captures/internal/ast"
	"github.com/JakobDegen/captures/internal/source"
)

// FormatASTPretty writes the expression tree rooted at id as an indented
// outline with box-drawing connectors, one node per line.
func FormatASTPretty(w io.Writer, builder *ast.Builder, id ast.ExprID, fs *source.FileSet) error {
	if builder == nil {
		return fmt.Errorf("nil builder")
	}
	node := buildExprNode(builder, id, fs)
	writeNode(w, node, "", "", "")
	return nil
}

type astNode struct {
	label    string
	children []*astNode
}

func writeNode(w io.Writer, node *astNode, lead, childLead, connector string) {
	fmt.Fprintf(w, "%s%s%s\n", lead, connector, node.label)
	for i, child := range node.children {
		if i == len(node.children)-1 {
			writeNode(w, child, childLead, childLead+"   ", "└─ ")
		} else {
			writeNode(w, child, childLead, childLead+"│  ", "├─ ")
		}
	}
}

func named(name string, node *astNode) *astNode {
	return &astNode{label: name, children: []*astNode{node}}
}

func buildExprNode(builder *ast.Builder, id ast.ExprID, fs *source.FileSet) *astNode {
	if !id.IsValid() {
		return &astNode{label: "<none>"}
	}
	expr := builder.Exprs.Get(id)
	if expr == nil {
		return &astNode{label: "<missing>"}
	}

	node := &astNode{
		label: fmt.Sprintf("%s (span: %s)", formatExprKind(expr.Kind), formatSpan(expr.Span, fs)),
	}

	switch expr.Kind {
	case ast.ExprIdent:
		if data, ok := builder.Exprs.Ident(id); ok {
			name := builder.Strings.MustLookup(data.Name)
			if !data.Hygiene.IsCallSite() {
				node.label = fmt.Sprintf("Ident %q #%d (span: %s)", name, data.Hygiene, formatSpan(expr.Span, fs))
			} else {
				node.label = fmt.Sprintf("Ident %q (span: %s)", name, formatSpan(expr.Span, fs))
			}
		}
	case ast.ExprPath:
		if data, ok := builder.Exprs.Path(id); ok {
			node.label = fmt.Sprintf("Path %s (span: %s)", formatPath(builder, data.Segments), formatSpan(expr.Span, fs))
		}
	case ast.ExprLit:
		if data, ok := builder.Exprs.Literal(id); ok {
			node.label = fmt.Sprintf("Lit %s (span: %s)", builder.Strings.MustLookup(data.Value), formatSpan(expr.Span, fs))
		}
	case ast.ExprUnary:
		if data, ok := builder.Exprs.Unary(id); ok {
			node.label = fmt.Sprintf("Unary %q (span: %s)", data.Op.String(), formatSpan(expr.Span, fs))
			node.children = append(node.children, buildExprNode(builder, data.Operand, fs))
		}
	case ast.ExprBinary:
		if data, ok := builder.Exprs.Binary(id); ok {
			node.label = fmt.Sprintf("Binary %q (span: %s)", data.Op.String(), formatSpan(expr.Span, fs))
			node.children = append(node.children,
				buildExprNode(builder, data.Left, fs),
				buildExprNode(builder, data.Right, fs))
		}
	case ast.ExprCall:
		if data, ok := builder.Exprs.Call(id); ok {
			node.children = append(node.children, named("Target", buildExprNode(builder, data.Target, fs)))
			for i, arg := range data.Args {
				node.children = append(node.children, named(fmt.Sprintf("Arg[%d]", i), buildExprNode(builder, arg, fs)))
			}
		}
	case ast.ExprField:
		if data, ok := builder.Exprs.Field(id); ok {
			node.label = fmt.Sprintf("Field .%s (span: %s)", builder.Strings.MustLookup(data.Field), formatSpan(expr.Span, fs))
			node.children = append(node.children, buildExprNode(builder, data.Target, fs))
		}
	case ast.ExprIndex:
		if data, ok := builder.Exprs.Index(id); ok {
			node.children = append(node.children,
				named("Target", buildExprNode(builder, data.Target, fs)),
				named("Index", buildExprNode(builder, data.Index, fs)))
		}
	case ast.ExprGroup:
		if data, ok := builder.Exprs.Group(id); ok {
			node.children = append(node.children, buildExprNode(builder, data.Inner, fs))
		}
	case ast.ExprTuple:
		if data, ok := builder.Exprs.Tuple(id); ok {
			for i, el := range data.Elements {
				node.children = append(node.children, named(fmt.Sprintf("[%d]", i), buildExprNode(builder, el, fs)))
			}
		}
	case ast.ExprArray:
		if data, ok := builder.Exprs.Array(id); ok {
			for i, el := range data.Elements {
				node.children = append(node.children, named(fmt.Sprintf("[%d]", i), buildExprNode(builder, el, fs)))
			}
		}
	case ast.ExprRange:
		if data, ok := builder.Exprs.Range(id); ok {
			if data.Inclusive {
				node.label = fmt.Sprintf("Range ..= (span: %s)", formatSpan(expr.Span, fs))
			}
			if data.Start.IsValid() {
				node.children = append(node.children, named("Start", buildExprNode(builder, data.Start, fs)))
			}
			if data.End.IsValid() {
				node.children = append(node.children, named("End", buildExprNode(builder, data.End, fs)))
			}
		}
	case ast.ExprBlock:
		if data, ok := builder.Exprs.Block(id); ok {
			for i, stmt := range data.Stmts {
				node.children = append(node.children, named(fmt.Sprintf("Stmt[%d]", i), buildStmtNode(builder, stmt, fs)))
			}
		}
	case ast.ExprIf:
		if data, ok := builder.Exprs.If(id); ok {
			if data.Pat.IsValid() {
				node.children = append(node.children, named("Pat", buildPatNode(builder, data.Pat, fs)))
			}
			node.children = append(node.children,
				named("Cond", buildExprNode(builder, data.Cond, fs)),
				named("Then", buildExprNode(builder, data.Then, fs)))
			if data.Else.IsValid() {
				node.children = append(node.children, named("Else", buildExprNode(builder, data.Else, fs)))
			}
		}
	case ast.ExprWhile:
		if data, ok := builder.Exprs.While(id); ok {
			if data.Pat.IsValid() {
				node.children = append(node.children, named("Pat", buildPatNode(builder, data.Pat, fs)))
			}
			node.children = append(node.children,
				named("Cond", buildExprNode(builder, data.Cond, fs)),
				named("Body", buildExprNode(builder, data.Body, fs)))
		}
	case ast.ExprFor:
		if data, ok := builder.Exprs.For(id); ok {
			node.children = append(node.children,
				named("Pat", buildPatNode(builder, data.Pat, fs)),
				named("Iter", buildExprNode(builder, data.Iter, fs)),
				named("Body", buildExprNode(builder, data.Body, fs)))
		}
	case ast.ExprLoop:
		if data, ok := builder.Exprs.Loop(id); ok {
			node.children = append(node.children, buildExprNode(builder, data.Body, fs))
		}
	case ast.ExprMatch:
		if data, ok := builder.Exprs.Match(id); ok {
			node.children = append(node.children, named("Scrutinee", buildExprNode(builder, data.Scrutinee, fs)))
			for i, arm := range data.Arms {
				armNode := &astNode{label: fmt.Sprintf("Arm[%d]", i)}
				armNode.children = append(armNode.children, named("Pat", buildPatNode(builder, arm.Pat, fs)))
				if arm.Guard.IsValid() {
					armNode.children = append(armNode.children, named("Guard", buildExprNode(builder, arm.Guard, fs)))
				}
				armNode.children = append(armNode.children, named("Body", buildExprNode(builder, arm.Body, fs)))
				node.children = append(node.children, armNode)
			}
		}
	case ast.ExprClosure:
		if data, ok := builder.Exprs.Closure(id); ok {
			node.label = fmt.Sprintf("%s (span: %s)", closureLabel(data), formatSpan(expr.Span, fs))
			for i := range data.Params {
				node.children = append(node.children, named(fmt.Sprintf("Param[%d]", i), buildPatNode(builder, data.Params[i].Pat, fs)))
			}
			node.children = append(node.children, named("Body", buildExprNode(builder, data.Body, fs)))
		}
	case ast.ExprMacroCall:
		if data, ok := builder.Exprs.MacroCall(id); ok {
			node.label = fmt.Sprintf("MacroCall %s! (span: %s)", formatPath(builder, data.Segments), formatSpan(expr.Span, fs))
		}
	case ast.ExprReturn:
		if data, ok := builder.Exprs.Return(id); ok && data.Value.IsValid() {
			node.children = append(node.children, buildExprNode(builder, data.Value, fs))
		}
	case ast.ExprBreak:
		if data, ok := builder.Exprs.Break(id); ok && data.Value.IsValid() {
			node.children = append(node.children, buildExprNode(builder, data.Value, fs))
		}
	}

	return node
}

func buildStmtNode(builder *ast.Builder, id ast.StmtID, fs *source.FileSet) *astNode {
	if !id.IsValid() {
		return &astNode{label: "<none>"}
	}
	stmt := builder.Stmts.Get(id)
	if stmt == nil {
		return &astNode{label: "<missing>"}
	}

	switch stmt.Kind {
	case ast.StmtLet:
		node := &astNode{label: fmt.Sprintf("Let (span: %s)", formatSpan(stmt.Span, fs))}
		if data, ok := builder.Stmts.Let(id); ok {
			node.children = append(node.children, named("Pat", buildPatNode(builder, data.Pat, fs)))
			if data.Init.IsValid() {
				node.children = append(node.children, named("Init", buildExprNode(builder, data.Init, fs)))
			}
		}
		return node
	case ast.StmtExpr:
		if data, ok := builder.Stmts.Expr(id); ok {
			label := "ExprStmt"
			if data.HasSemi {
				label = "ExprStmt ;"
			}
			return named(label, buildExprNode(builder, data.Expr, fs))
		}
	case ast.StmtEmpty:
		return &astNode{label: "Empty ;"}
	}
	return &astNode{label: "<unknown stmt>"}
}

func buildPatNode(builder *ast.Builder, id ast.PatID, fs *source.FileSet) *astNode {
	if !id.IsValid() {
		return &astNode{label: "<none>"}
	}
	pat := builder.Pats.Get(id)
	if pat == nil {
		return &astNode{label: "<missing>"}
	}

	switch pat.Kind {
	case ast.PatIdent:
		if data, ok := builder.Pats.Ident(id); ok {
			mods := ""
			if data.Ref {
				mods += "ref "
			}
			if data.Mut {
				mods += "mut "
			}
			name := builder.Strings.MustLookup(data.Name)
			if !data.Hygiene.IsCallSite() {
				return &astNode{label: fmt.Sprintf("PatIdent %s%q #%d", mods, name, data.Hygiene)}
			}
			return &astNode{label: fmt.Sprintf("PatIdent %s%q", mods, name)}
		}
	case ast.PatWildcard:
		return &astNode{label: "PatWildcard"}
	case ast.PatLit:
		if data, ok := builder.Pats.Lit(id); ok {
			return named("PatLit", buildExprNode(builder, data.Value, fs))
		}
	case ast.PatTuple:
		if data, ok := builder.Pats.Tuple(id); ok {
			node := &astNode{label: "PatTuple"}
			for i, el := range data.Elements {
				node.children = append(node.children, named(fmt.Sprintf("[%d]", i), buildPatNode(builder, el, fs)))
			}
			return node
		}
	case ast.PatRef:
		if data, ok := builder.Pats.Ref(id); ok {
			label := "PatRef &"
			if data.Mut {
				label = "PatRef &mut"
			}
			return named(label, buildPatNode(builder, data.Inner, fs))
		}
	case ast.PatPath:
		if data, ok := builder.Pats.Path(id); ok {
			return &astNode{label: "PatPath " + formatPath(builder, data.Segments)}
		}
	case ast.PatTupleStruct:
		if data, ok := builder.Pats.TupleStruct(id); ok {
			node := &astNode{label: "PatTupleStruct " + formatPath(builder, data.Segments)}
			for i, el := range data.Elements {
				node.children = append(node.children, named(fmt.Sprintf("[%d]", i), buildPatNode(builder, el, fs)))
			}
			return node
		}
	}
	return &astNode{label: "<unknown pat>"}
}

func closureLabel(data *ast.ExprClosureData) string {
	label := "Closure"
	if data.Async {
		label += " async"
	}
	if data.Static {
		label += " static"
	}
	if data.Move {
		label += " move"
	}
	return label
}

func formatPath(builder *ast.Builder, segments []ast.PathSeg) string {
	out := ""
	for i, seg := range segments {
		if i > 0 {
			out += "::"
		}
		out += builder.Strings.MustLookup(seg.Name)
	}
	return out
}

func formatExprKind(kind ast.ExprKind) string {
	switch kind {
	case ast.ExprIdent:
		return "Ident"
	case ast.ExprPath:
		return "Path"
	case ast.ExprLit:
		return "Lit"
	case ast.ExprUnary:
		return "Unary"
	case ast.ExprBinary:
		return "Binary"
	case ast.ExprCall:
		return "Call"
	case ast.ExprField:
		return "Field"
	case ast.ExprIndex:
		return "Index"
	case ast.ExprGroup:
		return "Group"
	case ast.ExprTuple:
		return "Tuple"
	case ast.ExprArray:
		return "Array"
	case ast.ExprRange:
		return "Range"
	case ast.ExprBlock:
		return "Block"
	case ast.ExprIf:
		return "If"
	case ast.ExprWhile:
		return "While"
	case ast.ExprFor:
		return "For"
	case ast.ExprLoop:
		return "Loop"
	case ast.ExprMatch:
		return "Match"
	case ast.ExprClosure:
		return "Closure"
	case ast.ExprMacroCall:
		return "MacroCall"
	case ast.ExprReturn:
		return "Return"
	case ast.ExprBreak:
		return "Break"
	case ast.ExprContinue:
		return "Continue"
	default:
		return "Expr(?)"
	}
}

func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs == nil {
		return fmt.Sprintf("%d..%d", span.Start, span.End)
	}
	start, end := fs.Resolve(span)
	return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
}
