package application

import (
	"errors"
	"fmt"
)

// Status is the lifecycle state of one seeker's application to one job.
// Every application starts in StatusHold; accepted and rejected are terminal.
type Status string

const (
	StatusHold      Status = "hold"
	StatusNextStep  Status = "next_step"
	StatusFinalStep Status = "final_step"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
)

// Action is a provider-initiated transition, carried as the parameter of the
// single status-change operation.
type Action string

const (
	ActionNext   Action = "next"
	ActionFinal  Action = "final"
	ActionAccept Action = "accept"
	ActionReject Action = "reject"
)

var (
	ErrInvalidStatus     = errors.New("invalid application status")
	ErrInvalidAction     = errors.New("invalid application action")
	ErrIllegalTransition = errors.New("illegal status transition")
)

var allowedActions = map[Status][]Action{
	StatusHold:      {ActionNext, ActionFinal, ActionAccept, ActionReject},
	StatusNextStep:  {ActionFinal, ActionAccept, ActionReject},
	StatusFinalStep: {ActionAccept, ActionReject},
	StatusAccepted:  {},
	StatusRejected:  {},
}

var actionTarget = map[Action]Status{
	ActionNext:   StatusNextStep,
	ActionFinal:  StatusFinalStep,
	ActionAccept: StatusAccepted,
	ActionReject: StatusRejected,
}

func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if _, ok := allowedActions[s]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return s, nil
}

func ParseAction(raw string) (Action, error) {
	a := Action(raw)
	if _, ok := actionTarget[a]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidAction, raw)
	}
	return a, nil
}

// AllowedActions returns the actions legal for the given status, in the fixed
// order next, final, accept, reject. Terminal statuses return an empty slice.
// An unknown status also returns an empty slice so callers never render an
// action for a status they do not understand.
func AllowedActions(s Status) []Action {
	acts, ok := allowedActions[s]
	if !ok {
		return []Action{}
	}
	out := make([]Action, len(acts))
	copy(out, acts)
	return out
}

// Terminal reports whether no further actions may be taken from s.
func Terminal(s Status) bool {
	return len(allowedActions[s]) == 0 && (s == StatusAccepted || s == StatusRejected)
}

// Transition returns the status reached by applying a to s, or
// ErrIllegalTransition when the action is not offered from s.
func Transition(s Status, a Action) (Status, error) {
	target, ok := actionTarget[a]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidAction, string(a))
	}
	for _, allowed := range allowedActions[s] {
		if allowed == a {
			return target, nil
		}
	}
	return "", fmt.Errorf("%w: %s --%s-->", ErrIllegalTransition, s, a)
}
