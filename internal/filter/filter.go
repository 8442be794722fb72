package filter

import (
	"sync"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"
	"github.com/pkg/errors"

	"gridpick/internal/domain"
	"gridpick/internal/logger"
	"gridpick/internal/selection"
)

// Compile builds a row filter from an expr-lang boolean expression. The
// expression sees every resource field plus "index", the row position. An
// empty expression returns a nil filter, meaning every row is eligible.
func Compile(expression string, log *logger.Logger) (selection.Filter[domain.Resource], error) {
	if expression == "" {
		return nil, nil
	}

	program, err := exprlang.Compile(expression,
		exprlang.AllowUndefinedVariables(),
		exprlang.AsBool(),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "compile filter %q", expression)
	}

	p := &predicate{
		program:    program,
		expression: expression,
		log:        log,
	}
	return p.eval, nil
}

type predicate struct {
	program    *exprvm.Program
	expression string
	log        *logger.Logger
	warnOnce   sync.Once
}

func (p *predicate) eval(resource domain.Resource, index int) bool {
	env := make(map[string]any, len(resource)+1)
	for k, v := range resource {
		env[k] = v
	}
	env["index"] = index

	out, err := exprlang.Run(p.program, env)
	if err != nil {
		p.warnOnce.Do(func() {
			p.log.Warn("filter evaluation failed; row treated as ineligible", map[string]any{
				"expression": p.expression,
				"index":      index,
				"error":      err.Error(),
			})
		})
		return false
	}
	ok, _ := out.(bool)
	return ok
}
