package pipeline

import "fmt"

// ValidationError reports rejected input: bad file type or size, empty
// required fields.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AuthenticationError reports a missing or invalid session
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// UpstreamServiceError reports a failed storage, database, or AI gateway
// call.
type UpstreamServiceError struct {
	Service string
	Message string
	Err     error
}

func (e *UpstreamServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *UpstreamServiceError) Unwrap() error {
	return e.Err
}

// ContractViolationError reports an AI response that is missing the
// expected structured payload or violates its schema. Distinct from an
// upstream failure: it signals a prompt/schema mismatch, not a transient
// fault.
type ContractViolationError struct {
	Message string
}

func (e *ContractViolationError) Error() string {
	return e.Message
}

// NoSkillsError reports a roadmap generation attempt without any stored
// skills. It is navigable, not fatal: the caller should send the user to
// the upload flow.
type NoSkillsError struct {
	Title    string
	Message  string
	Redirect string
}

func (e *NoSkillsError) Error() string {
	return e.Message
}

// ErrNoSkills is returned whenever generation is requested with zero skills
var ErrNoSkills = &NoSkillsError{
	Title:    "No Skills Found",
	Message:  "Please upload a resume first to extract your skills.",
	Redirect: "/upload",
}
