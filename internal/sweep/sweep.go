// Package sweep runs a simulation headless across a grid of parameter
// values and summarizes each point's probe trace. Points run concurrently;
// every point owns a fresh simulation instance, so runs never share state.
package sweep

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/san-kum/physlab/internal/canvas"
	"github.com/san-kum/physlab/internal/config"
	"github.com/san-kum/physlab/internal/engine"
	"github.com/san-kum/physlab/internal/metrics"
)

// Axis is one swept parameter: Steps evenly spaced values across [Min, Max].
type Axis struct {
	Key   string
	Min   float64
	Max   float64
	Steps int
}

// Values enumerates the axis. A single-step axis pins the parameter at Min.
func (a Axis) Values() []float64 {
	if a.Steps <= 1 {
		return []float64{a.Min}
	}
	out := make([]float64, a.Steps)
	for i := range out {
		out[i] = a.Min + (a.Max-a.Min)*float64(i)/float64(a.Steps-1)
	}
	return out
}

// Point is one finished grid point.
type Point struct {
	Params  map[string]float64
	Summary map[string]float64 // keyed <probe>_mean, <probe>_min, <probe>_max, <probe>_final
}

type Config struct {
	Base    map[string]float64 // fixed parameters under the swept ones
	Axes    []Axis
	Dt      float64
	Steps   int
	Workers int // <= 0 means GOMAXPROCS
}

type Sweep struct {
	entry engine.Entry
	cfg   Config
}

func New(entry engine.Entry, cfg Config) (*Sweep, error) {
	if len(cfg.Axes) == 0 {
		return nil, fmt.Errorf("sweep %s: no axes", entry.Config.Slug)
	}
	for _, a := range cfg.Axes {
		if _, ok := entry.Config.Spec(a.Key); !ok {
			return nil, fmt.Errorf("sweep %s: unknown parameter %q", entry.Config.Slug, a.Key)
		}
	}
	if cfg.Dt <= 0 {
		cfg.Dt = 1.0 / 60
	}
	if cfg.Steps <= 0 {
		cfg.Steps = 600
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	return &Sweep{entry: entry, cfg: cfg}, nil
}

// Run evaluates every grid point and returns them in grid order, the last
// axis varying fastest.
func (s *Sweep) Run(ctx context.Context) ([]Point, error) {
	grid := s.enumerate()
	points := make([]Point, len(grid))
	errs := make([]error, len(grid))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < s.cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				points[idx], errs[idx] = s.evaluate(ctx, grid[idx])
			}
		}()
	}

	for i := range grid {
		select {
		case jobs <- i:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return nil, ctx.Err()
		}
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return points, nil
}

// enumerate builds the cartesian product of the axes on top of the base bag.
func (s *Sweep) enumerate() []map[string]float64 {
	grid := []map[string]float64{copyBag(s.cfg.Base)}
	for _, axis := range s.cfg.Axes {
		next := make([]map[string]float64, 0, len(grid)*axis.Steps)
		for _, bag := range grid {
			for _, v := range axis.Values() {
				p := copyBag(bag)
				p[axis.Key] = v
				next = append(next, p)
			}
		}
		grid = next
	}
	return grid
}

func (s *Sweep) evaluate(ctx context.Context, params map[string]float64) (Point, error) {
	if err := ctx.Err(); err != nil {
		return Point{}, err
	}
	params = config.Normalize(params, s.entry.Config.ParamSpecs)

	sim := s.entry.New()
	if err := sim.Init(canvas.New(40, 16)); err != nil {
		return Point{}, fmt.Errorf("sweep %s: %w", s.entry.Config.Slug, err)
	}
	defer sim.Destroy()

	probe, _ := sim.(engine.Probe)
	var (
		mm    *metrics.MinMax
		mean  float64
		final float64
		n     int
	)
	if probe != nil {
		mm = metrics.NewMinMax(probe.ProbeName())
	}

	for i := 0; i < s.cfg.Steps; i++ {
		sim.Update(s.cfg.Dt, engine.Params(params))
		if probe != nil {
			v := probe.ProbeValue()
			mm.Observe(v)
			mean += v
			final = v
			n++
		}
	}

	point := Point{Params: params, Summary: map[string]float64{}}
	if probe != nil && n > 0 {
		name := probe.ProbeName()
		point.Summary[name+"_mean"] = mean / float64(n)
		point.Summary[name+"_min"] = mm.Min()
		point.Summary[name+"_max"] = mm.Max()
		point.Summary[name+"_final"] = final
	}
	return point, nil
}

// Best returns the point with the smallest (or largest) value of the named
// summary, or an error when no point carries it.
func Best(points []Point, summary string, largest bool) (Point, error) {
	bestIdx := -1
	bestVal := math.Inf(1)
	if largest {
		bestVal = math.Inf(-1)
	}
	for i, p := range points {
		v, ok := p.Summary[summary]
		if !ok {
			continue
		}
		if (largest && v > bestVal) || (!largest && v < bestVal) {
			bestIdx, bestVal = i, v
		}
	}
	if bestIdx < 0 {
		return Point{}, fmt.Errorf("no point carries summary %q", summary)
	}
	return points[bestIdx], nil
}

func copyBag(src map[string]float64) map[string]float64 {
	dst := make(map[string]float64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
