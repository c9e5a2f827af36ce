package renderer

import (
	"context"
	"fmt"

	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

var sceneKey = tag.MustNewKey("scene")

var (
	samplesTraced  = stats.Int64("pathtracer/samples", "Camera samples traced", stats.UnitDimensionless)
	tilesCompleted = stats.Int64("pathtracer/tiles", "Tiles completed", stats.UnitDimensionless)
	renderLatency  = stats.Float64("pathtracer/render_latency", "Wall-clock time of a full render", stats.UnitMilliseconds)
)

// Views exposes the renderer's measures. Register them with RegisterViews
// before exporting.
var Views = []*view.View{
	{
		Name:        "pathtracer/samples",
		Description: "Total camera samples traced",
		TagKeys:     []tag.Key{sceneKey},
		Measure:     samplesTraced,
		Aggregation: view.Sum(),
	},
	{
		Name:        "pathtracer/tiles",
		Description: "Counter of tiles that have been rendered",
		TagKeys:     []tag.Key{sceneKey},
		Measure:     tilesCompleted,
		Aggregation: view.Count(),
	},
	{
		Name:        "pathtracer/render_latency",
		Description: "Distribution of render wall-clock times",
		TagKeys:     []tag.Key{sceneKey},
		Measure:     renderLatency,
		Aggregation: view.Distribution(100, 500, 1000, 5000, 15000, 60000, 300000, 900000),
	},
}

// RegisterViews registers the renderer views with opencensus
func RegisterViews() error {
	if err := view.Register(Views...); err != nil {
		return fmt.Errorf("while registering renderer views: %w", err)
	}
	return nil
}

// UnregisterViews undoes RegisterViews
func UnregisterViews() {
	view.Unregister(Views...)
}

func withSceneTag(ctx context.Context, sceneName string) context.Context {
	tagged, err := tag.New(ctx, tag.Upsert(sceneKey, sceneName))
	if err != nil {
		// Only invalid tag values fail, and then the render is simply untagged
		return ctx
	}
	return tagged
}

func recordTile(ctx context.Context, tile RenderStats) {
	stats.Record(ctx, samplesTraced.M(int64(tile.TotalSamples)), tilesCompleted.M(1))
}

func recordRender(ctx context.Context, total RenderStats) {
	stats.Record(ctx, renderLatency.M(float64(total.Duration.Milliseconds())))
}
