package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"go.viam.com/test"

	"go.viam.com/rigging/constraint/armik"
	"go.viam.com/rigging/logging"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := NewApp(&out, &errOut).Run(append([]string{"rigeval"}, args...))
	return out.String(), err
}

func TestEvalAction(t *testing.T) {
	out, err := runApp(t, "eval", "--config", "../config/testdata/arm_rig.json", "--frames", "3")
	test.That(t, err, test.ShouldBeNil)
	for _, name := range []string{"NAME", "PARENT", "j1", "tip", "finger", "target"} {
		test.That(t, out, test.ShouldContainSubstring, name)
	}

	_, err = runApp(t, "eval", "--config", "../config/testdata/missing.json")
	test.That(t, err, test.ShouldNotBeNil)

	_, err = runApp(t, "eval", "--config", "../config/testdata/arm_rig.json", "--frames", "-1")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "must not be negative")

	_, err = runApp(t, "--log-level", "loud", "eval", "--config", "../config/testdata/arm_rig.json")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "unknown log level")
}

func TestSchemaAction(t *testing.T) {
	out, err := runApp(t, "schema")
	test.That(t, err, test.ShouldBeNil)
	var all map[string]interface{}
	test.That(t, json.Unmarshal([]byte(out), &all), test.ShouldBeNil)
	test.That(t, all, test.ShouldContainKey, "arm_ik")
	test.That(t, all, test.ShouldContainKey, "axis_remap")

	out, err = runApp(t, "schema", "axis_remap")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "from_x_range")
	test.That(t, out, test.ShouldContainSubstring, "destination_channel")

	_, err = runApp(t, "schema", "wiggle")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "known types")
}

func TestSweep(t *testing.T) {
	logger := logging.NewTestLogger(t)
	g := armik.Geometry{L: defaultLinks}

	res, err := Sweep(context.Background(), g, 500, 3, 4, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, res.Samples, test.ShouldEqual, 500)
	test.That(t, res.Undefined, test.ShouldEqual, 0)
	test.That(t, res.Position, test.ShouldHaveLength, 500)
	for i := range res.Position {
		test.That(t, res.Position[i], test.ShouldBeLessThan, 1e-6)
		test.That(t, res.Rotation[i], test.ShouldBeLessThan, 1e-5)
	}

	// the worker count does not change the samples drawn
	single, err := Sweep(context.Background(), g, 500, 3, 1, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, single.Position, test.ShouldResemble, res.Position)

	_, err = Sweep(context.Background(), g, 0, 3, 1, logger)
	test.That(t, err, test.ShouldNotBeNil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Sweep(ctx, g, 10, 3, 2, logger)
	test.That(t, err, test.ShouldBeError, context.Canceled)
}

func TestSweepAction(t *testing.T) {
	out, err := runApp(t, "sweep", "--samples", "200", "--workers", "3")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "200 samples, 0 with undefined joints")
	test.That(t, out, test.ShouldContainSubstring, "position")

	_, err = runApp(t, "sweep", "--links", "1,2,3")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "needs 7 lengths")

	_, err = runApp(t, "sweep", "--links", "0.1,0.5,0,0.4,0.4,0.2,0.1")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "upper arm")
}
