package tracker

import (
	"time"

	"github.com/emberpixel/hermes/internal/stations"
)

// Geofence radii for the presence state machine, in meters.
const (
	stationEnterRadiusMeters = 200.0
	stationLeaveRadiusMeters = 200.0
	trainEnterRadiusMeters   = 400.0
	trainRemainRadiusMeters  = 400.0
)

// Hysteresis windows for the presence state machine.
const (
	// noStatusToAtStation is how long the person must stay within a
	// station's enter radius before the station becomes eligible.
	noStatusToAtStation = 30 * time.Second

	// atStationToNoStatus is how long the person must stay outside the
	// station's radius before they are considered to have left.
	atStationToNoStatus = 60 * time.Second

	// onTrainToNoStatus bounds the age of the last train contact.
	onTrainToNoStatus = 300 * time.Second
)

// Stable variant labels used in logs, metrics and the journal.
const (
	StateNoStatus  = "no_status"
	StateAtStation = "at_station"
	StateOnTrain   = "on_train"
)

// State is the presence state of the tracked person. Exactly one variant is
// live at a time. Advance replaces the value wholesale every tick, so the
// auxiliary maps inside a variant never outlive it.
type State interface {
	// Name returns the variant label.
	Name() string

	// detail returns the variant's distinguishing value, empty when none.
	detail() string
}

// NoStatus means the person is not known to be travelling.
type NoStatus struct {
	// FirstSeen maps a station to the time the person first entered its
	// enter radius. The entry is dropped the moment the person leaves.
	FirstSeen map[stations.Station]time.Time
}

func (NoStatus) Name() string   { return StateNoStatus }
func (NoStatus) detail() string { return "" }

// TrainEncounter records the first time a nearby train was sampled inside
// and outside the station classification radius. Each field is written once.
type TrainEncounter struct {
	InsideAt  *time.Time
	OutsideAt *time.Time
}

// AtStation means the person is waiting at a station.
type AtStation struct {
	Station stations.Station

	// Encounters maps a train id to its classification timestamps while the
	// person remains at the station.
	Encounters map[string]TrainEncounter

	// LeftAt is the time the person was first sampled outside the station's
	// radius, nil while they remain inside.
	LeftAt *time.Time
}

func (s AtStation) Name() string   { return StateAtStation }
func (s AtStation) detail() string { return string(s.Station) }

// OnTrain means the person is riding the identified train.
type OnTrain struct {
	TrainID  string
	LastSeen time.Time
}

func (s OnTrain) Name() string   { return StateOnTrain }
func (s OnTrain) detail() string { return s.TrainID }

func freshNoStatus() NoStatus {
	return NoStatus{FirstSeen: make(map[stations.Station]time.Time)}
}

func enterStation(station stations.Station) AtStation {
	return AtStation{Station: station, Encounters: make(map[string]TrainEncounter)}
}
