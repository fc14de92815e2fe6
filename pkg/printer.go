package lox

import "strings"

// FormatExpr renders expr in parenthesised prefix form, e.g. "(* (- 1) (group 2))".
func FormatExpr(expr Expr) string {
	switch e := expr.(type) {
	case *AssignExpr:
		return parenthesize("= "+e.Name.Lexeme, e.Value)
	case *BinaryExpr:
		return parenthesize(e.Operator.Lexeme, e.Left, e.Right)
	case *GroupingExpr:
		return parenthesize("group", e.Expression)
	case *LiteralExpr:
		return literalValue(e.Value).String()
	case *UnaryExpr:
		return parenthesize(e.Operator.Lexeme, e.Right)
	case *VariableExpr:
		return e.Name.Lexeme
	default:
		return "<nil>"
	}
}

func FormatStmt(stmt Stmt) string {
	switch s := stmt.(type) {
	case *ExpressionStmt:
		return parenthesize(";", s.Expression)
	case *PrintStmt:
		return parenthesize("print", s.Expression)
	case *VarStmt:
		if s.Initializer == nil {
			return "(var " + s.Name.Lexeme + ")"
		}

		return parenthesize("var "+s.Name.Lexeme, s.Initializer)
	default:
		return "<nil>"
	}
}

func parenthesize(name string, exprs ...Expr) string {
	var str strings.Builder
	str.WriteString("(")
	str.WriteString(name)

	for _, expr := range exprs {
		str.WriteString(" ")
		str.WriteString(FormatExpr(expr))
	}
	str.WriteString(")")

	return str.String()
}
