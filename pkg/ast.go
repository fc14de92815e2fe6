package lox

// Expr is one of the expression nodes below. The set is closed: code walking
// the tree switches over the concrete types.
type Expr interface {
	expr()
}

type AssignExpr struct {
	Name  Token
	Value Expr
}

type BinaryExpr struct {
	Left     Expr
	Operator Token
	Right    Expr
}

type GroupingExpr struct {
	Expression Expr
}

type LiteralExpr struct {
	Value Token
}

type UnaryExpr struct {
	Operator Token
	Right    Expr
}

type VariableExpr struct {
	Name Token
}

func (*AssignExpr) expr()   {}
func (*BinaryExpr) expr()   {}
func (*GroupingExpr) expr() {}
func (*LiteralExpr) expr()  {}
func (*UnaryExpr) expr()    {}
func (*VariableExpr) expr() {}

// Stmt is one of the statement nodes below.
type Stmt interface {
	stmt()
}

type ExpressionStmt struct {
	Expression Expr
}

type PrintStmt struct {
	Expression Expr
}

// VarStmt declares Name. Initializer is nil when the declaration has none.
type VarStmt struct {
	Name        Token
	Initializer Expr
}

func (*ExpressionStmt) stmt() {}
func (*PrintStmt) stmt()      {}
func (*VarStmt) stmt()        {}
