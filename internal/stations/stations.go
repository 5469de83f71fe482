package stations

import (
	"fmt"

	"github.com/emberpixel/hermes/internal/models"
)

// Station identifies a regional rail stop from the closed, process-wide catalog.
type Station string

// StationUnknown is the sentinel for stops that cannot be mapped to a
// catalog entry. It is excluded from every geofence scan.
const StationUnknown Station = "unknown"

type stop struct {
	id    Station
	label string
	loc   models.Coordinate
}

// catalog is the closed set of known stops. Order is significant: geofence
// scans iterate it in this order and ties resolve to the earlier entry.
var catalog = []stop{
	{"30th-street", "30th Street Station", models.Coordinate{Latitude: 39.9566, Longitude: -75.1819}},
	{"suburban", "Suburban Station", models.Coordinate{Latitude: 39.9539, Longitude: -75.1677}},
	{"jefferson", "Jefferson Station", models.Coordinate{Latitude: 39.9525, Longitude: -75.1581}},
	{"temple-university", "Temple University", models.Coordinate{Latitude: 39.9814, Longitude: -75.1496}},
	{"north-broad", "North Broad", models.Coordinate{Latitude: 39.9766, Longitude: -75.1541}},
	{"wayne-junction", "Wayne Junction", models.Coordinate{Latitude: 40.0223, Longitude: -75.1600}},
	{"fern-rock", "Fern Rock Transportation Center", models.Coordinate{Latitude: 40.0406, Longitude: -75.1344}},
	{"melrose-park", "Melrose Park", models.Coordinate{Latitude: 40.0594, Longitude: -75.1280}},
	{"elkins-park", "Elkins Park", models.Coordinate{Latitude: 40.0716, Longitude: -75.1279}},
	{"jenkintown-wyncote", "Jenkintown-Wyncote", models.Coordinate{Latitude: 40.0926, Longitude: -75.1375}},
	{"glenside", "Glenside", models.Coordinate{Latitude: 40.1012, Longitude: -75.1529}},
	{"ardmore", "Ardmore", models.Coordinate{Latitude: 40.0086, Longitude: -75.2894}},
	{"bryn-mawr", "Bryn Mawr", models.Coordinate{Latitude: 40.0219, Longitude: -75.3158}},
	{"villanova", "Villanova", models.Coordinate{Latitude: 40.0374, Longitude: -75.3427}},
	{"radnor", "Radnor", models.Coordinate{Latitude: 40.0464, Longitude: -75.3600}},
	{"wayne", "Wayne", models.Coordinate{Latitude: 40.0443, Longitude: -75.3877}},
	{"devon", "Devon", models.Coordinate{Latitude: 40.0455, Longitude: -75.4278}},
	{"berwyn", "Berwyn", models.Coordinate{Latitude: 40.0450, Longitude: -75.4439}},
	{"paoli", "Paoli", models.Coordinate{Latitude: 40.0428, Longitude: -75.4816}},
	{"malvern", "Malvern", models.Coordinate{Latitude: 40.0363, Longitude: -75.5133}},
	{"exton", "Exton", models.Coordinate{Latitude: 40.0192, Longitude: -75.6229}},
	{"downingtown", "Downingtown", models.Coordinate{Latitude: 40.0006, Longitude: -75.7031}},
	{"thorndale", "Thorndale", models.Coordinate{Latitude: 39.9929, Longitude: -75.7619}},
	{"airport-terminal-a", "Airport Terminal A", models.Coordinate{Latitude: 39.8760, Longitude: -75.2454}},
	{"airport-terminal-b", "Airport Terminal B", models.Coordinate{Latitude: 39.8772, Longitude: -75.2425}},
	{"eastwick", "Eastwick", models.Coordinate{Latitude: 39.8930, Longitude: -75.2430}},
	{"darby", "Darby", models.Coordinate{Latitude: 39.9205, Longitude: -75.2589}},
	{"chester", "Chester Transportation Center", models.Coordinate{Latitude: 39.8496, Longitude: -75.3580}},
	{"swarthmore", "Swarthmore", models.Coordinate{Latitude: 39.9023, Longitude: -75.3519}},
	{"media", "Media", models.Coordinate{Latitude: 39.9171, Longitude: -75.3930}},
	{"wawa", "Wawa", models.Coordinate{Latitude: 39.9021, Longitude: -75.4436}},
	{"wilmington", "Wilmington", models.Coordinate{Latitude: 39.7372, Longitude: -75.5511}},
	{"newark", "Newark", models.Coordinate{Latitude: 39.6707, Longitude: -75.7529}},
	{"manayunk", "Manayunk", models.Coordinate{Latitude: 40.0269, Longitude: -75.2246}},
	{"conshohocken", "Conshohocken", models.Coordinate{Latitude: 40.0724, Longitude: -75.3040}},
	{"norristown", "Norristown Transportation Center", models.Coordinate{Latitude: 40.1116, Longitude: -75.3424}},
	{"ambler", "Ambler", models.Coordinate{Latitude: 40.1543, Longitude: -75.2240}},
	{"fort-washington", "Fort Washington", models.Coordinate{Latitude: 40.1359, Longitude: -75.2104}},
	{"lansdale", "Lansdale", models.Coordinate{Latitude: 40.2418, Longitude: -75.2853}},
	{"doylestown", "Doylestown", models.Coordinate{Latitude: 40.3065, Longitude: -75.1303}},
	{"chestnut-hill-east", "Chestnut Hill East", models.Coordinate{Latitude: 40.0811, Longitude: -75.2072}},
	{"chestnut-hill-west", "Chestnut Hill West", models.Coordinate{Latitude: 40.0764, Longitude: -75.2087}},
	{"warminster", "Warminster", models.Coordinate{Latitude: 40.1926, Longitude: -75.0889}},
	{"west-trenton", "West Trenton", models.Coordinate{Latitude: 40.2583, Longitude: -74.8152}},
	{"trenton", "Trenton", models.Coordinate{Latitude: 40.2180, Longitude: -74.7549}},
}

var (
	catalogOrder []Station
	catalogByID  map[Station]stop
)

func init() {
	catalogOrder = make([]Station, 0, len(catalog))
	catalogByID = make(map[Station]stop, len(catalog))
	for _, s := range catalog {
		catalogOrder = append(catalogOrder, s.id)
		catalogByID[s.id] = s
	}
}

// All returns every catalogued station in fixed iteration order. The unknown
// sentinel is never part of the result.
func All() []Station {
	return catalogOrder
}

// Label returns the human-readable name of the station. Ids outside the
// catalog fall back to the raw identifier so display code always has text.
func (s Station) Label() string {
	if entry, ok := catalogByID[s]; ok {
		return entry.label
	}

	return string(s)
}

// Location returns the station's coordinate. An id outside the catalog
// cannot be resolved and fails; callers treat this as fatal to the current
// evaluation.
func (s Station) Location() (models.Coordinate, error) {
	entry, ok := catalogByID[s]
	if !ok {
		return models.Coordinate{}, fmt.Errorf("station %q has no catalogued location", string(s))
	}

	return entry.loc, nil
}
