package shell

import (
	"strings"
	"unicode"

	"src.insp.sh/pkg/expr"
	"src.insp.sh/pkg/op"
	"src.insp.sh/pkg/parse"
	"src.insp.sh/pkg/session"
	"src.insp.sh/pkg/vals"
)

// Completes the member name after the last "." of line. The operations
// before it are applied to current to find the value whose members are
// offered. Nothing is offered when they include a call, either as an
// operation or inside an index key, since calls can have side effects.
func completeMembers(current any, scope expr.Scope, line string) []string {
	i := strings.LastIndexByte(line, '.')
	if i < 0 {
		return nil
	}
	prefix := line[i+1:]
	if !isIdentifierPrefix(prefix) {
		return nil
	}
	v := current
	if head := line[:i]; strings.TrimSpace(head) != "" {
		src := parse.Source{Name: "[completion]", Code: head}
		if !callFree(src) {
			return nil
		}
		ops, err := op.Parse(src, scope)
		if err != nil {
			return nil
		}
		v, _, err = session.Fold(ops, v)
		if err != nil {
			return nil
		}
	}
	var candidates []string
	for _, name := range vals.Members(v).All() {
		if strings.HasPrefix(name, prefix) {
			candidates = append(candidates, line[:i+1]+name)
		}
	}
	return candidates
}

// Reports whether src parses to operations that call nothing, neither as a
// Call operation nor while evaluating index keys.
func callFree(src parse.Source) bool {
	nodes, err := parse.Parse(src)
	if err != nil {
		return false
	}
	for _, n := range nodes {
		switch n.Kind {
		case parse.Call:
			return false
		case parse.Index:
			key, err := expr.ParseIndex(expr.NewSource(src.Name, n.Text))
			if err != nil || expr.HasCall(key) {
				return false
			}
		}
	}
	return true
}

func isIdentifierPrefix(s string) bool {
	for i, r := range s {
		if !(r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r))) {
			return false
		}
	}
	return true
}
