// Command galaxy-stats generates a galaxy headlessly and prints what the
// particle distribution looks like.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"spiral-gen/internal/app"
	"spiral-gen/internal/galaxy"
	"spiral-gen/internal/lifecycle"
	"spiral-gen/pkg/core"

	"github.com/dustin/go-humanize"
)

// discard is the renderer for headless runs; buffers are only measured.
type discard struct{}

func (discard) Activate(*galaxy.ParticleBuffer, float64) {}
func (discard) Release(*galaxy.ParticleBuffer)           {}

func main() {
	cfg := app.NewConfig()
	cfg.BindParameters(flag.CommandLine)
	bins := flag.Int("bins", 10, "radius histogram buckets")
	unclamped := flag.Bool("unclamped", false, "use the unclamped jitter attenuation")
	flag.Parse()

	logger := cfg.NewLogger(os.Stderr)

	params, err := cfg.Parameters()
	if err != nil {
		slog.Error("invalid parameters", "error", err)
		os.Exit(2)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	opts := []galaxy.Option{}
	if *unclamped {
		opts = append(opts, galaxy.WithAttenuation(galaxy.AttenuationUnclamped))
	}

	mgr := lifecycle.New(galaxy.NewGenerator(core.NewRNG(seed), opts...), discard{}, logger)
	defer mgr.Close()

	start := time.Now()
	handle, err := mgr.Regenerate(params)
	if err != nil {
		slog.Error("generation failed", "kind", galaxy.Kind(err), "error", err)
		os.Exit(1)
	}
	elapsed := time.Since(start)

	survey, err := galaxy.NewGenerator(core.NewRNG(seed), opts...).Survey(params, *bins)
	if err != nil {
		slog.Error("survey failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Generated %s particles (%s) in %s, seed %d\n",
		humanize.Comma(int64(handle.Buffer.Count)), humanize.Bytes(uint64(handle.Buffer.Bytes())), elapsed.Round(time.Microsecond), seed)
	fmt.Printf("Radius %.3g, %d branches, spin %.3g, randomness %.3g, branch density %.3g, density falloff %.3g\n",
		params.Radius, params.Branches, params.Spin, params.Randomness, params.BranchDensity, params.DensityFalloff)
	fmt.Printf("Colors %s -> %s, fraction range [%.3f, %.3f]\n",
		params.InsideColor.Hex(), params.OutsideColor.Hex(), survey.MinFraction, survey.MaxFraction)
	fmt.Printf("Mean radius %.3f, max extent %.3f\n", survey.MeanRadius, survey.Extent)
	fmt.Printf("Attenuation above 1 for %s particles (max raw %.3f)\n",
		humanize.Comma(int64(survey.ClampedAttenuation)), survey.MaxRawAttenuation)

	fmt.Println("\nBranch populations:")
	for b, n := range survey.BranchPopulation {
		fmt.Printf("  %2d  %s\n", b, humanize.Comma(int64(n)))
	}

	fmt.Println("\nRadius histogram:")
	peak := 0
	for _, n := range survey.RadiusHistogram {
		peak = max(peak, n)
	}
	width := params.Radius / float64(len(survey.RadiusHistogram))
	for i, n := range survey.RadiusHistogram {
		bar := 0
		if peak > 0 {
			bar = n * 40 / peak
		}
		fmt.Printf("  [%6.2f, %6.2f)  %-40s %s\n", float64(i)*width, float64(i+1)*width, strings.Repeat("#", bar), humanize.Comma(int64(n)))
	}
}
