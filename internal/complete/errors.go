package complete

import "errors"

// Sentinel errors returned by the control surface (spec.md §7). Worker-
// internal failure kinds (ParseFailed, ReparseFailed, NoCandidates) never
// cross this boundary: the worker degrades them into an empty encoded
// reply instead.
var (
	// ErrBadLocation is returned when a location fails to parse or has
	// a zero line/column; the request is rejected without enqueuing.
	ErrBadLocation = errors.New("complete: bad location")

	// ErrShutdown is returned by CompleteAt/Prepare once Stop has been
	// called.
	ErrShutdown = errors.New("complete: engine is shut down")

	// ErrDumpBusy is returned when a second Dump call overlaps an
	// outstanding one.
	ErrDumpBusy = errors.New("complete: dump already in progress")
)
