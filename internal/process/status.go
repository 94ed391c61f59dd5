package process

// Status is what a step reports about the process after it runs.
//
//go:generate go run golang.org/x/tools/cmd/stringer -type Status -trimprefix Status
type Status int

const (
	statusInvalid Status = iota

	// StatusContinue means the step did its work and the next one can run
	// right away.
	StatusContinue

	// StatusSuspend means the step produced something the caller must see
	// before the process goes on. A bulk process treats it like
	// StatusContinue.
	StatusSuspend

	// StatusDone means there's nothing left to do.
	StatusDone
)
