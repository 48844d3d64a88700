package bnf

import (
	webkit "github.com/yamp-project/WebKit"
	err "github.com/yamp-project/WebKit/errors"
	"github.com/yamp-project/WebKit/lexer"
)

const (
	UnexpectedTokenError = webkit.GrammarErrors + iota
	IllegalCharError
	UnexpectedEoiError
	MixedCombinatorError
	TrailingCombinatorError
	StackedMultiplierError
	EmptyGroupingError
	UnbalancedCloseError
	BadCountError
	BadRangeBoundError
	ReversedRangeError
	UnknownDirectiveError
	InapplicableDirectiveError
	DuplicateAnnotationError
)

func unexpectedTokenError(src string, st state, tok lexer.Token) *err.Error {
	return err.FormatSource(src, UnexpectedTokenError, "unexpected %s token %q in state %s", tok.Type, tok.Text, st)
}

func illegalCharError(src string, tok lexer.Token) *err.Error {
	return err.FormatSource(src, IllegalCharError, "illegal character %q", tok.Text)
}

func unexpectedEoiError(src string, st state) *err.Error {
	return err.FormatSource(src, UnexpectedEoiError, "unexpected end of grammar in state %s", st)
}

func mixedCombinatorError(src, have, got string) *err.Error {
	return err.FormatSource(src, MixedCombinatorError, "cannot mix %q with %q at the same nesting level; did you mean %q instead?", got, have, have)
}

func trailingCombinatorError(src, comb string) *err.Error {
	return err.FormatSource(src, TrailingCombinatorError, "grouping must not end with a trailing %q", comb)
}

func stackedMultiplierError(src string, have *Multiplier, tok lexer.Token) *err.Error {
	return err.FormatSource(src, StackedMultiplierError, "cannot stack %q onto multiplier %q", tok.Text, have.String())
}

func emptyGroupingError(src string) *err.Error {
	return err.FormatSource(src, EmptyGroupingError, "empty grouping")
}

func unbalancedCloseError(src string, tok lexer.Token, expected string) *err.Error {
	if expected == "" {
		return err.FormatSource(src, UnbalancedCloseError, "unbalanced %q at top level", tok.Text)
	}
	return err.FormatSource(src, UnbalancedCloseError, "unbalanced %q, expected %q", tok.Text, expected)
}

func badCountError(src string, min, max int) *err.Error {
	return err.FormatSource(src, BadCountError, "bad repetition count {%d,%d}", min, max)
}

func badRangeBoundError(src, bound string) *err.Error {
	return err.FormatSource(src, BadRangeBoundError, "bad range bound %q", bound)
}

func reversedRangeError(src string, r *NumericRange) *err.Error {
	return err.FormatSource(src, ReversedRangeError, "reversed numeric range %s", r.String())
}

func unknownDirectiveError(src, name string) *err.Error {
	return err.FormatSource(src, UnknownDirectiveError, "unknown annotation directive %q", name)
}

func inapplicableDirectiveError(src, name, construct string) *err.Error {
	return err.FormatSource(src, InapplicableDirectiveError, "annotation directive %q cannot apply to a %s", name, construct)
}

func duplicateAnnotationError(src string) *err.Error {
	return err.FormatSource(src, DuplicateAnnotationError, "construct already carries an annotation")
}
