// Package errors provides structured error handling with i18n support.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Index and range errors
	CodeInvalidIndex  Code = "INVALID_INDEX"
	CodeInvalidWeight Code = "INVALID_WEIGHT"
	CodeInvalidGrade  Code = "INVALID_GRADE"

	// Enrollment errors
	CodeCourseLimitReached           Code = "COURSE_LIMIT_REACHED"
	CodeCourseAlreadyEnrolled        Code = "COURSE_ALREADY_ENROLLED"
	CodeExtracurricularLimitReached  Code = "EXTRACURRICULAR_LIMIT_REACHED"
	CodeExtracurricularAlreadyJoined Code = "EXTRACURRICULAR_ALREADY_JOINED"

	// Narrative errors
	CodeMajorPlotAlreadyChosen Code = "MAJOR_PLOT_ALREADY_CHOSEN"
	CodeInvalidMilestoneIndex  Code = "INVALID_MILESTONE_INDEX"
	CodeUnknownArc             Code = "UNKNOWN_ARC"

	// Persistence errors
	CodeSaveNotFound    Code = "SAVE_NOT_FOUND"
	CodeSaveMalformed   Code = "SAVE_MALFORMED"
	CodeSaveWriteFailed Code = "SAVE_WRITE_FAILED"

	// Input errors
	CodeInputClosed Code = "INPUT_CLOSED"
)

// Fatal reports whether an error with this code ends the session. Every other
// code is reported to the player and play continues.
func (c Code) Fatal() bool {
	switch c {
	case CodeInputClosed:
		return true
	default:
		return false
	}
}
