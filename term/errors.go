package term

import (
	"strings"

	webkit "github.com/yamp-project/WebKit"
	err "github.com/yamp-project/WebKit/errors"
)

const (
	FlaggedAlternativesError = webkit.TermErrors + iota
	BadDefaultError
	DefaultNotApplicableError
	RuleDefinedError
	RuleCycleError
	NoValuesError
	ValueMismatchError
)

func flaggedAlternativesError(flag string) *err.Error {
	return err.Format(FlaggedAlternativesError, "cannot flatten alternatives gated by settings flag %q; hoist the flag or bracket the alternatives explicitly", flag)
}

func badDefaultError(value string) *err.Error {
	return err.Format(BadDefaultError, "unrecognized default fill policy %q, only \"previous\" is supported", value)
}

func defaultNotApplicableError() *err.Error {
	return err.Format(DefaultNotApplicableError, "a default fill policy requires a bounded repetition count")
}

func ruleDefinedError(name string) *err.Error {
	return err.Format(RuleDefinedError, "shared grammar rule %q already defined", name)
}

func ruleCycleError(names []string) *err.Error {
	return err.Format(RuleCycleError, "shared grammar rules form a reference cycle: "+strings.Join(names, " -> "))
}

func noValuesError() *err.Error {
	return err.Format(NoValuesError, "grammar uses the <<values>> placeholder but the entry declares no values")
}

func valueMismatchError(missing, extra []string) *err.Error {
	parts := make([]string, 0, 2)
	if len(missing) > 0 {
		parts = append(parts, "not declared as values: "+strings.Join(missing, ", "))
	}
	if len(extra) > 0 {
		parts = append(parts, "declared but unreachable in the grammar: "+strings.Join(extra, ", "))
	}
	return err.Format(ValueMismatchError, "grammar and value list diverge: "+strings.Join(parts, "; "))
}
