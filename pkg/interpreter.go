package lox

import (
	"errors"
	"fmt"
	"io"
)

// Interpreter evaluates statement trees against an Environment. Print output
// goes to out; runtime errors are reported to the diagnostics sink one
// statement at a time.
type Interpreter struct {
	out  io.Writer
	diag *Diagnostics
}

func NewInterpreter(out io.Writer, diag *Diagnostics) *Interpreter {
	if diag == nil {
		diag = NewDiagnostics(nil)
	}

	return &Interpreter{
		out:  out,
		diag: diag,
	}
}

// Interpret executes stmts in order. A statement that fails is reported and
// the remaining statements still run.
func (i *Interpreter) Interpret(stmts []Stmt, env *Environment) {
	for _, stmt := range stmts {
		err := i.Execute(stmt, env)
		if err == nil {
			continue
		}

		var rtErr *RuntimeError
		if !errors.As(err, &rtErr) {
			rtErr = &RuntimeError{Message: err.Error(), Err: err}
		}

		i.diag.RuntimeError(rtErr)
	}
}

func (i *Interpreter) Execute(stmt Stmt, env *Environment) error {
	switch s := stmt.(type) {
	case *ExpressionStmt:
		_, err := i.Evaluate(s.Expression, env)
		return err
	case *PrintStmt:
		v, err := i.Evaluate(s.Expression, env)
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintln(i.out, v.String())
		return nil
	case *VarStmt:
		var v Value = NilValue{}
		if s.Initializer != nil {
			init, err := i.Evaluate(s.Initializer, env)
			if err != nil {
				return err
			}

			v = init
		}

		env.Define(s.Name.Lexeme, v)
		return nil
	default:
		return fmt.Errorf("unexpected statement %T", stmt)
	}
}

func (i *Interpreter) Evaluate(expr Expr, env *Environment) (Value, error) {
	switch e := expr.(type) {
	case *LiteralExpr:
		return literalValue(e.Value), nil
	case *GroupingExpr:
		return i.Evaluate(e.Expression, env)
	case *VariableExpr:
		return env.Get(e.Name)
	case *AssignExpr:
		v, err := i.Evaluate(e.Value, env)
		if err != nil {
			return nil, err
		}

		if err := env.Assign(e.Name, v); err != nil {
			return nil, err
		}

		return v, nil
	case *UnaryExpr:
		return i.unary(e, env)
	case *BinaryExpr:
		return i.binary(e, env)
	default:
		return nil, fmt.Errorf("unexpected expression %T", expr)
	}
}

func (i *Interpreter) unary(e *UnaryExpr, env *Environment) (Value, error) {
	right, err := i.Evaluate(e.Right, env)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Typ {
	case TokenMinus:
		n, ok := right.(NumberValue)
		if !ok {
			return nil, newRuntimeError(e.Operator, ErrOperandType, "Operand must be a number.")
		}

		return -n, nil
	case TokenBang:
		return BoolValue(!Truthy(right)), nil
	default:
		return nil, newRuntimeError(e.Operator, nil, "Unknown unary operator '%s'.", e.Operator.Lexeme)
	}
}

func (i *Interpreter) binary(e *BinaryExpr, env *Environment) (Value, error) {
	// Left operand is evaluated fully before the right one
	left, err := i.Evaluate(e.Left, env)
	if err != nil {
		return nil, err
	}

	right, err := i.Evaluate(e.Right, env)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Typ {
	case TokenEqualEqual:
		return BoolValue(Equal(left, right)), nil
	case TokenBangEqual:
		return BoolValue(!Equal(left, right)), nil
	case TokenPlus:
		switch l := left.(type) {
		case NumberValue:
			if r, ok := right.(NumberValue); ok {
				return l + r, nil
			}
		case StringValue:
			if r, ok := right.(StringValue); ok {
				return l + r, nil
			}
		}

		return nil, newRuntimeError(e.Operator, ErrOperandType, "Operands must be two numbers or two strings.")
	}

	l, lok := left.(NumberValue)
	r, rok := right.(NumberValue)
	if !lok || !rok {
		return nil, newRuntimeError(e.Operator, ErrOperandType, "Operands must be numbers.")
	}

	switch e.Operator.Typ {
	case TokenMinus:
		return l - r, nil
	case TokenStar:
		return l * r, nil
	case TokenSlash:
		return l / r, nil
	case TokenGreater:
		return BoolValue(l > r), nil
	case TokenGreaterEqual:
		return BoolValue(l >= r), nil
	case TokenLess:
		return BoolValue(l < r), nil
	case TokenLessEqual:
		return BoolValue(l <= r), nil
	default:
		return nil, newRuntimeError(e.Operator, nil, "Unknown binary operator '%s'.", e.Operator.Lexeme)
	}
}
