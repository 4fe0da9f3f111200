// Package domain models meteorite-strike records and the pure transformations
// that turn them into map markers.
//
// # Data Source
//
// Strike data is the Meteoritical Society landings list republished as a
// GeoJSON FeatureCollection (freeCodeCamp ProjectReferenceData). Every feature
// carries string-typed properties:
//
//	{"fall":"Fell","id":"1","mass":"21","name":"Aachen","nametype":"Valid",
//	 "recclass":"L5","reclat":"50.775000","reclong":"6.083330",
//	 "year":"1880-01-01T00:00:00.000"}
//
// and a Point geometry in [lon, lat] order. Some features have a null
// geometry, and some have no mass at all.
//
// # Validation
//
// A feature becomes a [Record] only if it has Point coordinates and a mass
// that parses to a finite number greater than zero. Everything else is
// dropped with a [Rejection] reason and counted, never reported as an error.
//
// # Scales
//
// Marker area, not radius, is linear in mass. The mass domain [min, max] maps
// linearly onto [1, 1000]; the radius is sqrt(scaled * 4/π), the radius of a
// circle with that area over π/4. Colors come from ten equal-width bands over
// the radius domain, painted with the category10 palette.
//
// # Projection
//
// [Projection] reproduces d3 v3's Mercator with center [0°, 25°], scale 150,
// rotation [-10°, 0°] and translation [480, 250] on a 960×500 viewBox.
//
// # ID Generation
//
// Marker IDs are SHA-1 UUIDs of source-id|name|lon|lat so repeated renders of
// the same dataset produce the same DOM ids and Kafka keys. See [recordID].
package domain
