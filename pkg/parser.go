package lox

// Parser builds statement trees from a token slice by recursive descent.
//
// Grammar, lowest precedence first:
//
//	declaration := varDecl | statement
//	varDecl     := "var" IDENTIFIER ( "=" expression )? ";"
//	statement   := printStmt | exprStmt
//	printStmt   := "print" expression ";"
//	exprStmt    := expression ";"
//	expression  := assignment
//	assignment  := IDENTIFIER "=" assignment | equality
//	equality    := comparison ( ( "!=" | "==" ) comparison )*
//	comparison  := term ( ( ">" | ">=" | "<" | "<=" ) term )*
//	term        := factor ( ( "-" | "+" ) factor )*
//	factor      := unary ( ( "/" | "*" ) unary )*
//	unary       := ( "!" | "-" ) unary | primary
//	primary     := NUMBER | STRING | "true" | "false" | "nil" | IDENTIFIER | "(" expression ")"
type Parser struct {
	tokens  []Token
	current int
	diag    *Diagnostics
}

func NewParser(tokens []Token, diag *Diagnostics) *Parser {
	if diag == nil {
		diag = NewDiagnostics(nil)
	}

	if len(tokens) == 0 || tokens[len(tokens)-1].Typ != TokenEOF {
		line := 1
		if len(tokens) > 0 {
			line = tokens[len(tokens)-1].Line
		}

		tokens = append(tokens[:len(tokens):len(tokens)], Token{Typ: TokenEOF, Line: line})
	}

	return &Parser{
		tokens: tokens,
		diag:   diag,
	}
}

// Parse parses declarations until the end of input. A declaration that fails
// to parse is reported, skipped up to the next statement boundary and left out
// of the result.
func (p *Parser) Parse() []Stmt {
	var stmts []Stmt
	for !p.atEnd() {
		stmt, err := p.declaration()
		if err != nil {
			p.synchronize()
			continue
		}

		stmts = append(stmts, stmt)
	}

	return stmts
}

func (p *Parser) peek() Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() Token {
	if p.current == 0 {
		return p.tokens[0]
	}

	return p.tokens[p.current-1]
}

func (p *Parser) next() Token {
	tok := p.peek()
	if !p.atEnd() {
		p.current++
	}

	return tok
}

func (p *Parser) atEnd() bool {
	return p.peek().Typ == TokenEOF
}

func (p *Parser) check(typ TokenType) bool {
	return p.peek().Typ == typ
}

// match consumes the next token if it has one of the given types.
func (p *Parser) match(types ...TokenType) bool {
	for _, typ := range types {
		if p.check(typ) {
			p.next()
			return true
		}
	}

	return false
}

func (p *Parser) expect(typ TokenType, message string) (Token, error) {
	if p.check(typ) {
		return p.next(), nil
	}

	return Token{}, p.errorf(p.peek(), message)
}

func (p *Parser) errorf(tok Token, message string) *ParseError {
	p.diag.TokenError(tok, message)

	return &ParseError{Token: tok, Message: message}
}

// synchronize discards tokens until a statement boundary: right after a
// semicolon or right before a keyword that starts a statement.
func (p *Parser) synchronize() {
	p.next()

	for !p.atEnd() {
		if p.previous().Typ == TokenSemicolon {
			return
		}

		switch p.peek().Typ {
		case TokenClass, TokenFun, TokenVar, TokenFor, TokenIf, TokenWhile, TokenPrint, TokenReturn:
			return
		}

		p.next()
	}
}

func (p *Parser) declaration() (Stmt, error) {
	if p.match(TokenVar) {
		return p.varDecl()
	}

	return p.statement()
}

func (p *Parser) varDecl() (Stmt, error) {
	name, err := p.expect(TokenIdentifier, "Expect variable name.")
	if err != nil {
		return nil, err
	}

	var initializer Expr
	if p.match(TokenEqual) {
		if initializer, err = p.expression(); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(TokenSemicolon, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}

	return &VarStmt{
		Name:        name,
		Initializer: initializer,
	}, nil
}

func (p *Parser) statement() (Stmt, error) {
	if p.match(TokenPrint) {
		return p.printStmt()
	}

	return p.exprStmt()
}

func (p *Parser) printStmt() (Stmt, error) {
	value, err := p.expression()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenSemicolon, "Expect ';' after value."); err != nil {
		return nil, err
	}

	return &PrintStmt{Expression: value}, nil
}

func (p *Parser) exprStmt() (Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenSemicolon, "Expect ';' after expression."); err != nil {
		return nil, err
	}

	return &ExpressionStmt{Expression: expr}, nil
}

func (p *Parser) expression() (Expr, error) {
	return p.assignment()
}

func (p *Parser) assignment() (Expr, error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}

	if !p.check(TokenEqual) {
		return expr, nil
	}

	equals := p.next()

	// Right associative: a = b = c assigns c to b first
	value, err := p.assignment()
	if err != nil {
		return nil, err
	}

	if v, ok := expr.(*VariableExpr); ok {
		return &AssignExpr{
			Name:  v.Name,
			Value: value,
		}, nil
	}

	return nil, p.errorf(equals, "Invalid assignment type.")
}

func (p *Parser) equality() (Expr, error) {
	return p.binary(p.comparison, TokenBangEqual, TokenEqualEqual)
}

func (p *Parser) comparison() (Expr, error) {
	return p.binary(p.term, TokenGreater, TokenGreaterEqual, TokenLess, TokenLessEqual)
}

func (p *Parser) term() (Expr, error) {
	return p.binary(p.factor, TokenMinus, TokenPlus)
}

func (p *Parser) factor() (Expr, error) {
	return p.binary(p.unary, TokenSlash, TokenStar)
}

// binary parses one left associative precedence level. Chained operators
// (1 - 2 + 3) fold the expression built so far into the left operand.
func (p *Parser) binary(operand func() (Expr, error), operators ...TokenType) (Expr, error) {
	lhs, err := operand()
	if err != nil {
		return nil, err
	}

	for p.match(operators...) {
		op := p.previous()

		rhs, err := operand()
		if err != nil {
			return nil, err
		}

		lhs = &BinaryExpr{
			Left:     lhs,
			Operator: op,
			Right:    rhs,
		}
	}

	return lhs, nil
}

func (p *Parser) unary() (Expr, error) {
	if p.match(TokenBang, TokenMinus) {
		op := p.previous()

		right, err := p.unary()
		if err != nil {
			return nil, err
		}

		return &UnaryExpr{
			Operator: op,
			Right:    right,
		}, nil
	}

	return p.primary()
}

func (p *Parser) primary() (Expr, error) {
	switch tok := p.peek(); tok.Typ {
	case TokenFalse, TokenTrue, TokenNil, TokenNumber, TokenString:
		return &LiteralExpr{Value: p.next()}, nil
	case TokenIdentifier:
		return &VariableExpr{Name: p.next()}, nil
	case TokenLeftParen:
		return p.parenthesisedExpression()
	default:
		return nil, p.errorf(tok, "Expect expression.")
	}
}

func (p *Parser) parenthesisedExpression() (Expr, error) {
	p.next() // Skip the opening parenthesis

	expr, err := p.expression()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenRightParen, "Expect ')' after expression."); err != nil {
		return nil, err
	}

	return &GroupingExpr{Expression: expr}, nil
}
