package app

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindValidation    ErrorKind = "ValidationError"
	KindNotFound      ErrorKind = "NotFoundError"
	KindAuthorization ErrorKind = "AuthorizationError"
	KindConflict      ErrorKind = "ConflictError"
)

type ErrorCode string

const (
	CodeValidation         ErrorCode = "Validation"
	CodeAlreadyVoted       ErrorCode = "AlreadyVoted"
	CodeNotVoted           ErrorCode = "NotVoted"
	CodeCreatorCannotLeave ErrorCode = "CreatorCannotLeave"
	CodePostNotFound       ErrorCode = "PostNotFound"
	CodeParentNotFound     ErrorCode = "ParentNotFound"
	CodeCommentNotFound    ErrorCode = "CommentNotFound"
	CodeCommunityNotFound  ErrorCode = "CommunityNotFound"
	CodeUserNotFound       ErrorCode = "UserNotFound"
	CodeUnauthorized       ErrorCode = "Unauthorized"
	CodeNotMember          ErrorCode = "NotMember"
)

// Error is a failure the caller can act on. Anything else is an internal error.
type Error struct {
	Kind    ErrorKind
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %v", e.Code, e.Message)
}

func newError(kind ErrorKind, code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

func ValidationErr(format string, args ...interface{}) *Error {
	return newError(KindValidation, CodeValidation, format, args...)
}

func NotFoundErr(code ErrorCode, format string, args ...interface{}) *Error {
	return newError(KindNotFound, code, format, args...)
}

func AuthorizationErr(code ErrorCode, format string, args ...interface{}) *Error {
	return newError(KindAuthorization, code, format, args...)
}

func ConflictErr(code ErrorCode, format string, args ...interface{}) *Error {
	return newError(KindConflict, code, format, args...)
}

// AsError unwraps err into an *Error if there is one in its chain
func AsError(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// CodeOf returns the code of err or "" if err is not an *Error
func CodeOf(err error) ErrorCode {
	if appErr, ok := AsError(err); ok {
		return appErr.Code
	}
	return ""
}

// KindOf returns the kind of err or "" if err is not an *Error
func KindOf(err error) ErrorKind {
	if appErr, ok := AsError(err); ok {
		return appErr.Kind
	}
	return ""
}
