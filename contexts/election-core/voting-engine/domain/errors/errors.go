package errors

import "errors"

var (
	ErrInvalidVoteInput     = errors.New("invalid vote input")
	ErrNoActiveElection     = errors.New("no active election")
	ErrVoterNotFound        = errors.New("voter not found")
	ErrAlreadyVoted         = errors.New("voter already cast a ballot in this election")
	ErrMesaClosed           = errors.New("mesa is closed for this circuit")
	ErrBallotOptionNotFound = errors.New("ballot option not found in the active election")
)
