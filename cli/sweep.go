package cli

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/golang/geo/r3"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/rigging/constraint/armik"
	"go.viam.com/rigging/logging"
)

var defaultLinks = [7]float64{0.1, 0.5, 1.0, 0.4, 0.4, 0.2, 0.1}

// margin keeps sampled angles away from the reach limit and the wrist singularity.
const margin = 0.05

// SweepResult summarises a solver sweep. Errors are measured only over solutions with every angle
// defined.
type SweepResult struct {
	Samples   int
	Undefined int
	Position  []float64
	Rotation  []float64
}

// SampleReachable draws elbow-up joint angles the solver should recover exactly.
func SampleReachable(rng *rand.Rand) armik.JointAngles {
	between := func(lo, hi float64) float64 { return lo + rng.Float64()*(hi-lo) }
	var theta armik.JointAngles
	theta[0] = between(-math.Pi+margin, math.Pi-margin)
	theta[1] = between(margin, math.Pi/2-margin)
	theta[2] = between(margin, math.Pi-margin-theta[1])
	theta[3] = between(-math.Pi+margin, math.Pi-margin)
	theta[4] = between(margin, math.Pi-margin)
	theta[5] = between(-math.Pi+margin, math.Pi-margin)
	return theta
}

// Sweep samples joint angles, runs them through forward kinematics and back through the solver, and
// records how far the re-solved tool lands from the sampled one. Samples are drawn up front so the
// result does not depend on the number of workers.
func Sweep(ctx context.Context, g armik.Geometry, samples int, seed int64, workers int, logger logging.Logger) (*SweepResult, error) {
	if samples <= 0 {
		return nil, errors.New("need at least one sample")
	}
	if workers <= 0 {
		workers = 1
	}
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec
	thetas := make([]armik.JointAngles, samples)
	for i := range thetas {
		thetas[i] = SampleReachable(rng)
	}

	posErr := make([]float64, samples)
	rotErr := make([]float64, samples)
	defined := make([]bool, samples)

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	chunk := (samples + workers - 1) / workers
	for start := 0; start < samples; start += chunk {
		start, end := start, start+chunk
		if end > samples {
			end = samples
		}
		group.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				want := armik.Forward(g, thetas[i])
				solved := armik.SolvePose(g, want)
				if !solved.Defined() {
					continue
				}
				got := armik.Forward(g, solved)
				defined[i] = true
				posErr[i] = floats.Distance(vecSlice(got.Position), vecSlice(want.Position), 2)
				rotErr[i] = rotationAngle(got.Rotation, want.Rotation)
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	res := &SweepResult{Samples: samples}
	for i, ok := range defined {
		if !ok {
			res.Undefined++
			continue
		}
		res.Position = append(res.Position, posErr[i])
		res.Rotation = append(res.Rotation, rotErr[i])
	}
	logger.Debugw("sweep done", "samples", samples, "undefined", res.Undefined, "workers", workers)
	return res, nil
}

// SweepAction runs Sweep with the command's flags and prints a summary table.
func SweepAction(c *cli.Context) error {
	logger, err := newLogger(c)
	if err != nil {
		return err
	}
	links := c.Float64Slice(linksFlag)
	if len(links) != len(defaultLinks) {
		return errors.Errorf("--%s needs %d lengths, got %d", linksFlag, len(defaultLinks), len(links))
	}
	var g armik.Geometry
	copy(g.L[:], links)
	if err := g.Validate(); err != nil {
		return err
	}

	res, err := Sweep(c.Context, g, c.Int(samplesFlag), c.Int64(seedFlag), c.Int(workersFlag), logger)
	if err != nil {
		return err
	}
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Error", "Mean", "Max", "P99"})
	for _, row := range []struct {
		name string
		data []float64
	}{
		{"position", res.Position},
		{"rotation (rad)", res.Rotation},
	} {
		summary, err := summarize(row.data)
		if err != nil {
			return errors.Wrapf(err, "cannot summarize %s errors", row.name)
		}
		t.AppendRow(append(table.Row{row.name}, summary...))
	}
	printf(c.App.Writer, "%d samples, %d with undefined joints", res.Samples, res.Undefined)
	printf(c.App.Writer, "%s", t.Render())
	return nil
}

func summarize(data []float64) (table.Row, error) {
	mean, err := stats.Mean(data)
	if err != nil {
		return nil, err
	}
	maxErr, err := stats.Max(data)
	if err != nil {
		return nil, err
	}
	p99, err := stats.Percentile(data, 99)
	if err != nil {
		return nil, err
	}
	return table.Row{fmt.Sprintf("%.3g", mean), fmt.Sprintf("%.3g", maxErr), fmt.Sprintf("%.3g", p99)}, nil
}

func vecSlice(v r3.Vector) []float64 {
	return []float64{v.X, v.Y, v.Z}
}

// rotationAngle is the angle of the rotation taking a to b.
func rotationAngle(a, b quat.Number) float64 {
	dot := math.Abs(a.Real*b.Real + a.Imag*b.Imag + a.Jmag*b.Jmag + a.Kmag*b.Kmag)
	return 2 * math.Acos(math.Min(dot, 1))
}
