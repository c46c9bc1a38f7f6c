package lispp

import (
	"fmt"
	"strings"

	"github.com/lispforge/lispp/internal/data"
)

func init() {
	registerMacro(&Macro{Names: []string{"if!"}, Arity: RangeArity(2, 3), Expand: expandIf})
	registerMacro(&Macro{Names: []string{"unless!"}, Arity: RangeArity(2, 3), Expand: expandUnless})
	registerMacro(&Macro{Names: []string{"while!"}, Arity: MinArity(2), Expand: expandWhile})
	registerMacro(&Macro{Names: []string{"loop!"}, Arity: MinArity(1), Expand: expandLoop})
	registerMacro(&Macro{Names: []string{"for!"}, Arity: MinArity(2), Expand: expandFor})
	registerMacro(&Macro{Names: []string{"where!"}, Arity: MinArity(3), Expand: expandWhere})
	registerMacro(&Macro{Names: []string{"switch"}, Arity: MinArity(1), Expand: expandSwitch})
	registerMacro(&Macro{Names: []string{"=>", "def!"}, Arity: RangeArity(2, 3), Expand: expandNamedLambda})
	registerMacro(&Macro{Names: []string{"λ", "lambda!", "->"}, Arity: RangeArity(1, 2), Expand: expandLambda})
	registerMacro(&Macro{Names: []string{"include!"}, Arity: ExactArity(1), Expand: expandInclude})
	registerMacro(&Macro{Names: []string{"use!"}, Arity: ExactArity(1), Expand: expandUse})
	registerMacro(&Macro{Names: []string{"putl!"}, Arity: MinArity(0), Expand: expandPutl})
	registerMacro(&Macro{Names: []string{"head!"}, Arity: ExactArity(1), Expand: expandHead})
	registerMacro(&Macro{Names: []string{"tail!"}, Arity: ExactArity(1), Expand: expandTail})
	registerMacro(&Macro{Names: []string{"&&"}, Arity: MinArity(0), Expand: boolFold("&")})
	registerMacro(&Macro{Names: []string{"||"}, Arity: MinArity(0), Expand: boolFold("|")})
	registerMacro(&Macro{Names: []string{"pipe!"}, Arity: MinArity(2), Expand: expandPipe})
	registerMacro(&Macro{Names: []string{"push!"}, Arity: ExactArity(2), Expand: expandPush})
	registerMacro(&Macro{Names: []string{"pop!"}, Arity: ExactArity(1), Expand: expandPop})
	registerMacro(&Macro{Names: []string{"rev!"}, Arity: ExactArity(1), Expand: expandRev})
	registerMacro(&Macro{Names: []string{"++"}, Arity: ExactArity(1), Expand: incDec("+")})
	registerMacro(&Macro{Names: []string{"--"}, Arity: ExactArity(1), Expand: incDec("-")})

	for _, entry := range data.InPlaceOperators {
		registerMacro(inPlaceMacro(entry))
	}
}

func expandIf(_ *Preprocessor, _ *Token, args []string) (string, error) {
	elseBranch := "Nil"
	if len(args) == 3 {
		elseBranch = args[2]
	}
	return fmt.Sprintf("eval_expr (? %s (expression %s) (expression %s))", args[0], args[1], elseBranch), nil
}

// expandUnless swaps if!'s then/else branches: "unless C, do Y" runs Y
// when C is false and falls through to Z (or Nil) when C is true.
func expandUnless(_ *Preprocessor, _ *Token, args []string) (string, error) {
	fallback := "Nil"
	if len(args) == 3 {
		fallback = args[2]
	}
	return fmt.Sprintf("eval_expr (? %s (expression %s) (expression %s))", args[0], fallback, args[1]), nil
}

func expandWhile(_ *Preprocessor, _ *Token, args []string) (string, error) {
	body := strings.Join(args[1:], " ")
	return fmt.Sprintf("while (expression %s) (expression (do %s))", args[0], body), nil
}

func expandLoop(_ *Preprocessor, _ *Token, args []string) (string, error) {
	return "while! Yes " + strings.Join(args, " "), nil
}

// forHead splits a "(vector V I? L?)" head into the vector, index and
// length symbols, defaulting the index/length names per §4.4.
func forHead(head string) (vec, index, length string, err error) {
	name, rest, ok := headAndRest(head)
	if !ok || name != "vector" || len(rest) == 0 {
		return "", "", "", fmt.Errorf("for!/where! expects a (vector V I? L?) head, got %q", head)
	}
	index, length = "__index__", "__length__"
	vec = rest[0]
	if len(rest) > 1 {
		index = rest[1]
	}
	if len(rest) > 2 {
		length = rest[2]
	}
	return vec, index, length, nil
}

func expandFor(_ *Preprocessor, _ *Token, args []string) (string, error) {
	vec, index, length, err := forHead(args[0])
	if err != nil {
		return "", err
	}
	body := strings.Join(args[1:], " ")
	return fmt.Sprintf(
		"do (let %s (count %s)) (let %s 0) (while (< %s %s) (expression (let item (@ %s %s)) %s (++ %s)))",
		length, vec, index, index, length, index, vec, body, index,
	), nil
}

func expandWhere(pp *Preprocessor, call *Token, args []string) (string, error) {
	predicate := args[1]
	body := "(do " + strings.Join(args[2:], " ") + ")"
	guarded := fmt.Sprintf("(if! %s %s)", predicate, body)
	return expandFor(pp, call, []string{args[0], guarded})
}

func expandSwitch(_ *Preprocessor, _ *Token, args []string) (string, error) {
	subject := args[0]
	fallback := "Nil"

	type kv struct{ key, val string }
	var cases []kv

	for _, clause := range args[1:] {
		head, rest, ok := headAndRest(clause)
		if !ok {
			return "", fmt.Errorf("switch clause %q must be a (case K V) or (otherwise V) form", clause)
		}
		switch head {
		case "otherwise":
			if len(rest) != 1 {
				return "", fmt.Errorf("(otherwise V) takes exactly one value, got %q", clause)
			}
			fallback = rest[0]
		case "case":
			if len(rest) != 2 {
				return "", fmt.Errorf("(case K V) takes exactly two values, got %q", clause)
			}
			cases = append(cases, kv{rest[0], rest[1]})
		default:
			return "", fmt.Errorf("unexpected switch clause head %q", head)
		}
	}

	result := fallback
	for i := len(cases) - 1; i >= 0; i-- {
		result = fmt.Sprintf("(if! (== %s %s) %s %s)", cases[i].key, subject, cases[i].val, result)
	}
	return strings.TrimPrefix(strings.TrimSuffix(result, ")"), "("), nil
}

func expandNamedLambda(_ *Preprocessor, _ *Token, args []string) (string, error) {
	name := args[0]
	arglist, body := "{_}", args[1]
	if len(args) == 3 {
		arglist, body = args[1], args[2]
	}
	return fmt.Sprintf("let %s (closure (expression %s %s))", name, arglist, body), nil
}

func expandLambda(_ *Preprocessor, _ *Token, args []string) (string, error) {
	arglist, body := "{_}", args[0]
	if len(args) == 2 {
		arglist, body = args[0], args[1]
	}
	return fmt.Sprintf("closure (expression %s %s)", arglist, body), nil
}

func expandPutl(_ *Preprocessor, _ *Token, args []string) (string, error) {
	parts := append(append([]string{}, args...), `"\n"`)
	return "put " + strings.Join(parts, " "), nil
}

func expandHead(_ *Preprocessor, _ *Token, args []string) (string, error) {
	return "@ 0 " + args[0], nil
}

func expandTail(_ *Preprocessor, _ *Token, args []string) (string, error) {
	return "@ -1 " + args[0], nil
}

// boolFold builds the &&/|| expander: each operand is coerced through
// `bool`, then folded with the given binary operator.
func boolFold(op string) MacroExpander {
	return func(_ *Preprocessor, _ *Token, args []string) (string, error) {
		coerced := make([]string, len(args))
		for i, a := range args {
			coerced[i] = fmt.Sprintf("(bool %s)", a)
		}
		return fmt.Sprintf("bool (%s %s)", op, strings.Join(coerced, " ")), nil
	}
}

func expandPipe(_ *Preprocessor, _ *Token, args []string) (string, error) {
	expr := args[0]
	for _, fn := range args[1:] {
		expr = fmt.Sprintf("(%s %s)", fn, expr)
	}
	inner, _ := stripOuterParens(expr)
	return inner, nil
}

func expandPush(_ *Preprocessor, _ *Token, args []string) (string, error) {
	return fmt.Sprintf("insert %s -1 %s", args[0], args[1]), nil
}

func expandPop(_ *Preprocessor, _ *Token, args []string) (string, error) {
	return fmt.Sprintf("slice %s 0 -2", args[0]), nil
}

func expandRev(_ *Preprocessor, _ *Token, args []string) (string, error) {
	return fmt.Sprintf("slice %s -1 0 -1", args[0]), nil
}

func incDec(op string) MacroExpander {
	return func(_ *Preprocessor, _ *Token, args []string) (string, error) {
		return fmt.Sprintf("let %s (%s %s 1)", args[0], op, args[0]), nil
	}
}

// inPlaceMacro builds the macro for a single `prefix_equals` data entry:
// `(name x …args)` becomes `(let x (op x …args))`, or with Rev set,
// `(let x (op …args x))`.
func inPlaceMacro(entry data.InPlaceEntry) *Macro {
	return &Macro{
		Names: []string{entry.Name},
		Arity: MinArity(1),
		Expand: func(_ *Preprocessor, _ *Token, args []string) (string, error) {
			x := args[0]
			rest := args[1:]
			var operands []string
			if entry.Rev {
				operands = append(append([]string{}, rest...), x)
			} else {
				operands = append([]string{x}, rest...)
			}
			return fmt.Sprintf("let %s (%s %s)", x, entry.Op, strings.Join(operands, " ")), nil
		},
	}
}
