package filter

import (
	"fmt"
	"strings"

	"github.com/gyaneshwarpardhi/trafficlab/internal/traffic"
)

// EvalContext resolves column names to values. *traffic.PageView implements it.
type EvalContext interface {
	Resolve(path []string) (interface{}, bool)
}

// Evaluate walks the AST and returns true/false or an error.
func Evaluate(expr Expr, ctx EvalContext) (bool, error) {
	switch e := expr.(type) {
	case *BinaryExpr:
		return evalBinary(e, ctx)
	case *NotExpr:
		v, err := Evaluate(e.Expr, ctx)
		if err != nil {
			return false, err
		}
		return !v, nil
	case *ComparisonExpr:
		left, err := resolveOperand(e.Left, ctx)
		if err != nil {
			return false, err
		}
		right, err := resolveOperand(e.Right, ctx)
		if err != nil {
			return false, err
		}
		return compare(e.Op, left, right, e.re)
	default:
		return false, fmt.Errorf("unknown expr type %T", expr)
	}
}

func evalBinary(e *BinaryExpr, ctx EvalContext) (bool, error) {
	left, err := Evaluate(e.Left, ctx)
	if err != nil {
		return false, err
	}
	switch e.Op {
	case "AND":
		if !left {
			return false, nil
		}
		return Evaluate(e.Right, ctx)
	case "OR":
		if left {
			return true, nil
		}
		return Evaluate(e.Right, ctx)
	default:
		return false, fmt.Errorf("unknown binary op %q", e.Op)
	}
}

func resolveOperand(op Operand, ctx EvalContext) (interface{}, error) {
	switch o := op.(type) {
	case *LiteralOperand:
		return o.Value, nil
	case *FieldOperand:
		val, ok := ctx.Resolve(o.Path)
		if !ok {
			return nil, fmt.Errorf("unknown column %q", strings.Join(o.Path, "."))
		}
		return val, nil
	default:
		return nil, fmt.Errorf("unknown operand type %T", op)
	}
}

// Apply returns a new table holding only the rows matching expr.
// A blank expression returns t unchanged.
func Apply(t *traffic.Table, expr string) (*traffic.Table, error) {
	if strings.TrimSpace(expr) == "" {
		return t, nil
	}
	ast, err := Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("parse filter %q: %w", expr, err)
	}
	rows := t.Rows()
	kept := make([]traffic.PageView, 0, len(rows))
	for i := range rows {
		ok, err := Evaluate(ast, &rows[i])
		if err != nil {
			return nil, fmt.Errorf("filter %q: %w", expr, err)
		}
		if ok {
			kept = append(kept, rows[i])
		}
	}
	return traffic.NewTable(kept), nil
}
