package tracker

import (
	"fmt"
	"time"

	"github.com/emberpixel/hermes/internal/geomath"
	"github.com/emberpixel/hermes/internal/models"
	"github.com/emberpixel/hermes/internal/stations"
)

// Advance computes the next presence state from the current one, the person's
// position and the live train snapshot. It is total and pure: the input state
// is never mutated and every call builds a brand-new value, so evaluating the
// same inputs twice yields the same result. Any geofence or station
// resolution failure aborts the whole evaluation and commits nothing.
//
// A nil state stands for "before the first tick" and evaluates as an empty
// NoStatus.
func Advance(state State, now time.Time, person models.Coordinate, trains []models.Train) (State, error) {
	if state == nil {
		state = freshNoStatus()
	}

	switch s := state.(type) {
	case NoStatus:
		return advanceNoStatus(s, now, person)
	case AtStation:
		return advanceAtStation(s, now, person, trains)
	case OnTrain:
		return advanceOnTrain(s, now, person, trains)
	default:
		return nil, fmt.Errorf("unknown presence state %T", state)
	}
}

func advanceNoStatus(s NoStatus, now time.Time, person models.Coordinate) (State, error) {
	firstSeen := make(map[stations.Station]time.Time, len(s.FirstSeen))
	var eligible []stations.Station

	for _, station := range stations.All() {
		loc, err := station.Location()
		if err != nil {
			return nil, err
		}

		inside, err := geomath.InCircle(loc, person, stationEnterRadiusMeters)
		if err != nil {
			return nil, err
		}
		if !inside {
			// Leaving the radius resets the candidacy clock: the entry is
			// simply not carried into the next state.
			continue
		}

		seen, ok := s.FirstSeen[station]
		if !ok {
			firstSeen[station] = now
			continue
		}

		firstSeen[station] = seen
		if now.Sub(seen) >= noStatusToAtStation {
			eligible = append(eligible, station)
		}
	}

	switch len(eligible) {
	case 0:
		return NoStatus{FirstSeen: firstSeen}, nil
	case 1:
		return enterStation(eligible[0]), nil
	default:
		// Several stations became eligible on the same tick; the closest
		// wins, ties resolve to catalog order.
		closest := eligible[0]
		closestDist, err := distanceToStation(closest, person)
		if err != nil {
			return nil, err
		}

		for _, station := range eligible[1:] {
			dist, err := distanceToStation(station, person)
			if err != nil {
				return nil, err
			}
			if dist < closestDist {
				closest = station
				closestDist = dist
			}
		}

		return enterStation(closest), nil
	}
}

func advanceAtStation(s AtStation, now time.Time, person models.Coordinate, trains []models.Train) (State, error) {
	stationLoc, err := s.Station.Location()
	if err != nil {
		return nil, err
	}

	inside, err := geomath.InCircle(stationLoc, person, stationLeaveRadiusMeters)
	if err != nil {
		return nil, err
	}

	var leftAt *time.Time
	if !inside {
		switch {
		case s.LeftAt == nil:
			t := now
			leftAt = &t
		case now.Sub(*s.LeftAt) > atStationToNoStatus:
			// Outside for longer than the grace window: the person has left.
			return freshNoStatus(), nil
		default:
			t := *s.LeftAt
			leftAt = &t
		}
	}

	encounters := make(map[string]TrainEncounter, len(s.Encounters))
	for id, enc := range s.Encounters {
		encounters[id] = enc
	}

	for _, train := range trains {
		near, err := geomath.InCircle(train.Location, person, trainEnterRadiusMeters)
		if err != nil {
			return nil, err
		}
		if !near {
			delete(encounters, train.ID)
			continue
		}

		// Classify the sample by whether the train is within the station
		// radius of the person. The first timestamp per classification wins
		// and is never overwritten.
		atStation, err := geomath.InCircle(train.Location, person, stationLeaveRadiusMeters)
		if err != nil {
			return nil, err
		}

		enc := encounters[train.ID]
		if atStation {
			if enc.InsideAt == nil {
				t := now
				enc.InsideAt = &t
			}
		} else {
			if enc.OutsideAt == nil {
				t := now
				enc.OutsideAt = &t
			}
		}
		encounters[train.ID] = enc

		// One sample of each classification matches the train. The first
		// qualifying train in feed order wins.
		if enc.InsideAt != nil && enc.OutsideAt != nil {
			return OnTrain{TrainID: train.ID, LastSeen: now}, nil
		}
	}

	return AtStation{Station: s.Station, Encounters: encounters, LeftAt: leftAt}, nil
}

func advanceOnTrain(s OnTrain, now time.Time, person models.Coordinate, trains []models.Train) (State, error) {
	var current *models.Train
	for i := range trains {
		if trains[i].ID == s.TrainID {
			current = &trains[i]
			break
		}
	}
	if current == nil {
		// The tracked train vanished from the feed; no grace period.
		return freshNoStatus(), nil
	}

	near, err := geomath.InCircle(current.Location, person, trainRemainRadiusMeters)
	if err != nil {
		return nil, err
	}
	if near {
		return OnTrain{TrainID: s.TrainID, LastSeen: now}, nil
	}

	// Contact age on the signed interval LastSeen-now.
	if s.LastSeen.Sub(now) > onTrainToNoStatus {
		for _, station := range stations.All() {
			loc, err := station.Location()
			if err != nil {
				return nil, err
			}

			inside, err := geomath.InCircle(loc, person, stationEnterRadiusMeters)
			if err != nil {
				return nil, err
			}
			if inside {
				// First catalog match wins; no distance tie-break here.
				return enterStation(station), nil
			}
		}

		return freshNoStatus(), nil
	}

	return OnTrain{TrainID: s.TrainID, LastSeen: s.LastSeen}, nil
}

func distanceToStation(station stations.Station, person models.Coordinate) (float64, error) {
	loc, err := station.Location()
	if err != nil {
		return 0, err
	}

	return geomath.DistanceMeters(loc, person)
}
