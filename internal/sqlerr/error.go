package sqlerr

import "fmt"

// Code is the coarse category of a PostgreSQL error.
type Code string

const (
	Other                 Code = "other"
	NotNullViolation      Code = "not_null_violation"
	ForeignKeyViolation   Code = "foreign_key_violation"
	UniqueViolation       Code = "unique_violation"
	CheckViolation        Code = "check_violation"
	InvalidTextRepr       Code = "invalid_text_representation"
	StringDataTruncation  Code = "string_data_right_truncation"
	UndefinedTable        Code = "undefined_table"
	ConnectionException   Code = "connection_exception"
	InsufficientResources Code = "insufficient_resources"
	QueryCanceled         Code = "query_canceled"
)

// Severity mirrors the severity field PostgreSQL attaches to errors.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

// Error is a normalized PostgreSQL error.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string
	driverErr      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Severity, e.DatabaseCode, e.Message)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// MapCode maps a SQLSTATE onto a Code. Whole classes are matched where
// only the class matters (08 connection exception, 53 resources).
func MapCode(sqlState string) Code {
	switch sqlState {
	case "23502":
		return NotNullViolation
	case "23503":
		return ForeignKeyViolation
	case "23505":
		return UniqueViolation
	case "23514":
		return CheckViolation
	case "22P02":
		return InvalidTextRepr
	case "22001":
		return StringDataTruncation
	case "42P01":
		return UndefinedTable
	case "57014":
		return QueryCanceled
	}

	if len(sqlState) == 5 {
		switch sqlState[:2] {
		case "08":
			return ConnectionException
		case "53":
			return InsufficientResources
		}
	}

	return Other
}

// MapSeverity maps the PostgreSQL severity string onto a Severity.
func MapSeverity(severity string) Severity {
	switch Severity(severity) {
	case SeverityError, SeverityFatal, SeverityPanic, SeverityWarning,
		SeverityNotice, SeverityDebug, SeverityInfo, SeverityLog:
		return Severity(severity)
	default:
		return SeverityError
	}
}

// IsTransient reports whether retrying the same statement later may succeed.
func (c Code) IsTransient() bool {
	switch c {
	case ConnectionException, InsufficientResources, QueryCanceled:
		return true
	default:
		return false
	}
}
