package models

// Train represents a single entry from the live train-position feed.
// It carries no timestamp of its own; a snapshot is implicitly dated by
// the polling tick that retrieved it.
type Train struct {
	ID       string     // ID is the opaque train identifier from the feed.
	Location Coordinate // Location is the last reported position of the train.
}
