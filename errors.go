package cfnschema

import "fmt"

// Kind discriminates the fatal error categories the engine can raise. All
// are fatal at the point raised; the engine has no retry logic.
type Kind string

const (
	KindMissingConfiguration Kind = "missing_configuration"
	KindShapeNotFound        Kind = "shape_not_found"
	KindShapeTypeMismatch    Kind = "shape_type_mismatch"
	KindEmptyProperties      Kind = "empty_properties"
	KindMissingDescription   Kind = "missing_description"
	KindInvalidJSONPointer   Kind = "invalid_json_pointer"
)

// Error is the single error category surfaced by the engine. Path carries
// whatever location information applies to Kind: a shape id for
// KindShapeNotFound/KindShapeTypeMismatch/KindMissingDescription, a
// JSON pointer for KindInvalidJSONPointer, a config field name for
// KindMissingConfiguration, and a type name for KindEmptyProperties.
type Error struct {
	Kind    Kind
	Path    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Path)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func newError(kind Kind, path, message string) *Error {
	return &Error{Kind: kind, Path: path, Message: message}
}

func missingConfiguration(field string) *Error {
	return newError(KindMissingConfiguration, field,
		fmt.Sprintf("cloudformation config is missing required property `%s`", field))
}

func shapeNotFound(id fmt.Stringer) *Error {
	return newError(KindShapeNotFound, id.String(), fmt.Sprintf("shape `%s` not found in model", id))
}

func shapeTypeMismatch(id fmt.Stringer, wantKind string) *Error {
	return newError(KindShapeTypeMismatch, id.String(),
		fmt.Sprintf("shape `%s` is not a %s shape", id, wantKind))
}

func emptyProperties(typeName string) *Error {
	return newError(KindEmptyProperties, typeName,
		fmt.Sprintf("expected CloudFormation resource %s to have properties, found none", typeName))
}

func missingDescription(id fmt.Stringer) *Error {
	return newError(KindMissingDescription, id.String(),
		fmt.Sprintf("resource `%s` is missing a documentation trait", id))
}

func invalidJSONPointer(pointer, reason string) *Error {
	return newError(KindInvalidJSONPointer, pointer, reason)
}
