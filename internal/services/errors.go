package services

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an abort-class failure of the career pipeline.
type ErrorKind string

const (
	KindDownload ErrorKind = "download_error"
	KindParse    ErrorKind = "parse_error"
	KindAnalysis ErrorKind = "analysis_error"
	KindJobFetch ErrorKind = "job_fetch_error"
)

// StageError is returned by the pipeline stages that abort a request.
type StageError struct {
	Kind  ErrorKind
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageErr(kind ErrorKind, stage string, err error) error {
	return &StageError{Kind: kind, Stage: stage, Err: err}
}

// KindOf returns the pipeline error kind carried by err, or "" when err did
// not come from a pipeline stage.
func KindOf(err error) ErrorKind {
	var se *StageError
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}

var (
	ErrStudentNotFound     = errors.New("student not found")
	ErrEmailTaken          = errors.New("email already registered")
	ErrSkillNotFound       = errors.New("skill not found")
	ErrDuplicateSkill      = errors.New("skill already in profile")
	ErrEmptySkillName      = errors.New("skill name must not be blank")
	ErrInvalidSkillLevel   = errors.New("skill level must be Beginner, Intermediate or Expert")
	ErrInvalidSemester     = errors.New("semester must be one of Semester 1 to Semester 8")
	ErrInvalidGrade        = errors.New("grade must be between 0 and 10")
	ErrProjectNotFound     = errors.New("project not found")
	ErrAppliedJobNotFound  = errors.New("saved job not found")
	ErrJobAlreadySaved     = errors.New("job already saved")
	ErrInvalidSearchOption = errors.New("invalid job search option")
)
