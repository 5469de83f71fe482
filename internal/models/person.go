package models

// PersonSample is one result from the location-and-status feed.
// Name and Status are nil when the feed did not provide them; the
// coordinates are mandatory and validated by the provider.
type PersonSample struct {
	Name     *string    // Name is the person's display name, if known.
	Status   *string    // Status is the raw status text reported by the feed.
	Location Coordinate // Location is the person's last reported position.
}
