package domain

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
	geojson "github.com/paulmach/go.geojson"
)

// recordNamespace scopes marker UUIDs to this application.
var recordNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/couchcryptid/meteorite-map"))

// Record is one validated meteorite landing.
type Record struct {
	ID       string  `json:"id"`
	SourceID string  `json:"source_id,omitempty"`
	Name     string  `json:"name"`
	Mass     float64 `json:"mass"`      // grams
	MassText string  `json:"mass_text"` // as published, used for display
	Year     string  `json:"year,omitempty"`
	Fall     string  `json:"fall,omitempty"`     // "Fell" or "Found"
	NameType string  `json:"nametype,omitempty"` // "Valid" or "Relict"
	RecClass string  `json:"recclass,omitempty"`
	RecLat   string  `json:"reclat,omitempty"`
	RecLong  string  `json:"reclong,omitempty"`
	Lon      float64 `json:"lon"`
	Lat      float64 `json:"lat"`
}

// Rejection names why a feature was not turned into a Record.
type Rejection string

const (
	Accepted        Rejection = ""
	NoGeometry      Rejection = "no_geometry"
	NoMass          Rejection = "no_mass"
	BadMass         Rejection = "bad_mass"
	NonPositiveMass Rejection = "non_positive_mass"
)

// ParseRecord validates a strike feature. It returns Accepted and the record
// when the feature is plottable, or the reason it was dropped.
func ParseRecord(f *geojson.Feature) (Record, Rejection) {
	if f == nil || f.Geometry == nil || !f.Geometry.IsPoint() || len(f.Geometry.Point) < 2 {
		return Record{}, NoGeometry
	}
	lon, lat := f.Geometry.Point[0], f.Geometry.Point[1]
	if !finite(lon) || !finite(lat) {
		return Record{}, NoGeometry
	}

	massText := strings.TrimSpace(propString(f.Properties, "mass"))
	if massText == "" {
		return Record{}, NoMass
	}
	mass, err := strconv.ParseFloat(massText, 64)
	if err != nil || !finite(mass) {
		return Record{}, BadMass
	}
	if mass <= 0 {
		return Record{}, NonPositiveMass
	}

	rec := Record{
		SourceID: propString(f.Properties, "id"),
		Name:     propString(f.Properties, "name"),
		Mass:     mass,
		MassText: massText,
		Year:     propString(f.Properties, "year"),
		Fall:     propString(f.Properties, "fall"),
		NameType: propString(f.Properties, "nametype"),
		RecClass: propString(f.Properties, "recclass"),
		RecLat:   propString(f.Properties, "reclat"),
		RecLong:  propString(f.Properties, "reclong"),
		Lon:      lon,
		Lat:      lat,
	}
	rec.ID = recordID(rec.SourceID, rec.Name, lon, lat)
	return rec, Accepted
}

// ParseRecords validates every feature in the collection, keeping input order.
// The returned map counts dropped features by reason.
func ParseRecords(fc *geojson.FeatureCollection) ([]Record, map[Rejection]int) {
	rejected := make(map[Rejection]int)
	if fc == nil {
		return nil, rejected
	}

	records := make([]Record, 0, len(fc.Features))
	for _, f := range fc.Features {
		rec, why := ParseRecord(f)
		if why != Accepted {
			rejected[why]++
			continue
		}
		records = append(records, rec)
	}
	return records, rejected
}

// SortByMassDesc orders records heaviest first. Equal masses keep their input order.
func SortByMassDesc(records []Record) {
	slices.SortStableFunc(records, func(a, b Record) int {
		return cmp.Compare(b.Mass, a.Mass)
	})
}

// MassDomain returns the smallest and largest mass. ok is false for an empty slice.
func MassDomain(records []Record) (lo, hi float64, ok bool) {
	if len(records) == 0 {
		return 0, 0, false
	}
	lo, hi = records[0].Mass, records[0].Mass
	for _, r := range records[1:] {
		lo = math.Min(lo, r.Mass)
		hi = math.Max(hi, r.Mass)
	}
	return lo, hi, true
}

// propString reads a property as a string. Numbers are formatted without
// exponent so numeric and string encodings of the same mass agree.
func propString(props map[string]interface{}, key string) string {
	switch v := props[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// recordID derives a stable UUID from the fields that identify a landing.
func recordID(sourceID, name string, lon, lat float64) string {
	input := fmt.Sprintf("%s|%s|%.5f|%.5f", sourceID, name, lon, lat)
	return uuid.NewSHA1(recordNamespace, []byte(input)).String()
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
