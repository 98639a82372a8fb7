package riot

import "errors"

var (
	// ErrMissingInfo is returned when a payload lacks its info section.
	ErrMissingInfo = errors.New("riot: payload missing info section")

	// ErrMissingMetadata is returned when a payload lacks its metadata section.
	ErrMissingMetadata = errors.New("riot: payload missing metadata section")

	// ErrUnknownTeam is returned when a participant references a team
	// identifier absent from the match's team list. This indicates
	// malformed upstream data and is fatal for that match.
	ErrUnknownTeam = errors.New("riot: participant references unknown team")
)
