package codegen

import (
	webkit "github.com/yamp-project/WebKit"
	err "github.com/yamp-project/WebKit/errors"
)

const (
	UnsupportedTermError = webkit.CodegenErrors + iota
	UnresolvedReferenceError
	OutputError
)

func unsupportedTermError(name, what string) *err.Error {
	return err.FormatPath("properties."+name, UnsupportedTermError, "cannot generate a consumer for %s", what)
}

func unresolvedReferenceError(name, ref string) *err.Error {
	return err.FormatPath("properties."+name, UnresolvedReferenceError, "grammar references %s, which is neither a builtin nor a shared rule", ref)
}

func outputError(cause error) *err.Error {
	return err.Format(OutputError, "cannot write generated file: "+cause.Error())
}
