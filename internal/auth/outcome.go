package auth

// Status is the terminal state of one authentication attempt.
type Status int

const (
	// StatusNoResult means this gate has no opinion: no credential was
	// presented, or neither path could resolve one. The hosting pipeline
	// must be free to try other handlers or anonymous access.
	StatusNoResult Status = iota

	// StatusSuccess means a principal was resolved.
	StatusSuccess

	// StatusFailure means a resolution path hit a transport or protocol
	// error. The framework boundary collapses this to NoResult; it exists
	// so callers can log and count failures separately.
	StatusFailure
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	default:
		return "no_result"
	}
}

// Outcome is the single result of one authentication attempt.
type Outcome struct {
	Status    Status
	Principal *Principal
	Err       error
}

// Authenticated reports whether the attempt produced a principal.
func (o Outcome) Authenticated() bool {
	return o.Status == StatusSuccess && o.Principal != nil
}

// Success builds an outcome carrying the resolved principal.
func Success(p *Principal) Outcome {
	return Outcome{Status: StatusSuccess, Principal: p}
}

// NoResult builds the no-opinion outcome.
func NoResult() Outcome {
	return Outcome{Status: StatusNoResult}
}

// Failure builds an outcome for an upstream error. It never reaches the
// hosting pipeline as an explicit denial.
func Failure(err error) Outcome {
	return Outcome{Status: StatusFailure, Err: err}
}
