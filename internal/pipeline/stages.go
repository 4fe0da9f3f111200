package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/couchcryptid/meteorite-map/internal/adapter/fetch"
	"github.com/couchcryptid/meteorite-map/internal/render"
	"github.com/couchcryptid/meteorite-map/internal/topology"
	geojson "github.com/paulmach/go.geojson"
)

const (
	datasetTopology = "topology"
	datasetStrikes  = "strikes"
)

// drawMap fetches the topology and appends one path per country.
func (p *Pipeline) drawMap(ctx context.Context, s *render.Surface) (int, error) {
	raw, err := fetch.Get(ctx, p.client, datasetTopology, p.sources.TopologyURL, fetch.Bytes).Await(ctx)
	if err != nil {
		return 0, fmt.Errorf("load topology: %w", err)
	}

	topo, err := topology.Parse(raw)
	if err != nil {
		return 0, err
	}
	features, err := topo.Features(p.sources.TopologyObject)
	if err != nil {
		return 0, err
	}
	return render.DrawMap(s, features, p.proj)
}

// drawImpacts fetches the strike collection and plots it above the map.
func (p *Pipeline) drawImpacts(ctx context.Context, s *render.Surface) (render.ImpactReport, error) {
	fc, err := fetch.Get(ctx, p.client, datasetStrikes, p.sources.StrikesURL, decodeStrikes).Await(ctx)
	if err != nil {
		return render.ImpactReport{}, fmt.Errorf("load strikes: %w", err)
	}
	return p.plotter.DrawImpacts(s, fc)
}

func decodeStrikes(r io.Reader) (*geojson.FeatureCollection, error) {
	b, err := fetch.Bytes(r)
	if err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(b)
	if err != nil {
		return nil, fmt.Errorf("decode strikes: %w", err)
	}
	return fc, nil
}
