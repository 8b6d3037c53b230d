package login

import "fmt"

type State uint8

const (
	StateUnauthenticated State = iota
	StateChallengeIssued
	StateAuthenticated
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateChallengeIssued:
		return "challenge issued"
	case StateAuthenticated:
		return "authenticated"
	case StateFailed:
		return "failed"
	default:
		panic(fmt.Sprintf("state %d is not implemented", s))
	}
}
