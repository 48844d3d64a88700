package registry

import (
	"strings"

	webkit "github.com/yamp-project/WebKit"
	err "github.com/yamp-project/WebKit/errors"
)

const (
	BadDocumentError = webkit.RegistryErrors + iota
	UnknownKeyError
	WrongTypeError
	MissingKeyError
	ConflictError
	DuplicateNameError
	UnknownNameError
	DuplicateResolverError
	UnknownResolverError
	MixedResolverKindError
	GroupMembershipError
	NoParserError
)

func badDocumentError(cause error) *err.Error {
	return err.Format(BadDocumentError, "cannot read schema document: "+cause.Error())
}

func unknownKeyError(path, key string) *err.Error {
	return err.FormatPath(path, UnknownKeyError, "unknown key %q", key)
}

func wrongTypeError(path, want string) *err.Error {
	return err.FormatPath(path, WrongTypeError, "expected %s", want)
}

func missingKeyError(path, key string) *err.Error {
	return err.FormatPath(path, MissingKeyError, "missing required key %q", key)
}

func conflictError(path string, keys ...string) *err.Error {
	return err.FormatPath(path, ConflictError, "conflicting options: %s", strings.Join(keys, " vs. "))
}

func duplicateNameError(path, name string) *err.Error {
	return err.FormatPath(path, DuplicateNameError, "%q is already defined", name)
}

func unknownNameError(path, name string) *err.Error {
	return err.FormatPath(path, UnknownNameError, "%q does not name a known property", name)
}

func duplicateResolverError(path, group, resolver string) *err.Error {
	return err.FormatPath(path, DuplicateResolverError, "logical property group %q already has a property for resolver %q", group, resolver)
}

func unknownResolverError(path, resolver string) *err.Error {
	return err.FormatPath(path, UnknownResolverError, "unknown logical property group resolver %q", resolver)
}

func mixedResolverKindError(path, group, resolver string) *err.Error {
	return err.FormatPath(path, MixedResolverKindError, "resolver %q does not match the kind of logical property group %q", resolver, group)
}

func groupMembershipError(path, name, group string) *err.Error {
	return err.FormatPath(path, GroupMembershipError, "property %q is registered in logical property group %q more than once", name, group)
}

func noParserError(path string) *err.Error {
	return err.FormatPath(path, NoParserError, "entry declares no parser-grammar, parser-function, skip-parser, longhands, or values")
}
