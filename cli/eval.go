package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/rigging/config"
	"go.viam.com/rigging/referenceframe"
	"go.viam.com/rigging/rig"
)

// EvalAction binds the rig named by --config, steps it and prints the resulting local poses.
func EvalAction(c *cli.Context) error {
	logger, err := newLogger(c)
	if err != nil {
		return err
	}
	frames := c.Int(framesFlag)
	if frames < 0 {
		return errors.Errorf("--%s must not be negative", framesFlag)
	}
	conf, err := config.Read(c.Context, c.Path(configFlag), logger)
	if err != nil {
		return err
	}
	r, err := rig.New(conf, logger)
	if err != nil {
		return err
	}
	for i := 0; i < frames; i++ {
		r.Step(c.Float64(weightFlag))
	}
	printf(c.App.Writer, "%s", skeletonTable(r.Skeleton()))
	return nil
}

// skeletonTable renders each transform's local pose, parents first.
func skeletonTable(skel *referenceframe.Skeleton) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Name", "Parent", "Position", "Rotation", "Scale"})
	for i, name := range skel.Names() {
		h, err := skel.Resolve(name)
		if err != nil {
			continue
		}
		parent, err := skel.Parent(name)
		if err != nil {
			continue
		}
		p := skel.ReadPose(h, referenceframe.Local)
		ea := p.EulerAngles()
		t.AppendRow(table.Row{
			i,
			name,
			parent,
			fmt.Sprintf("X:%.3f, Y:%.3f, Z:%.3f", p.Position.X, p.Position.Y, p.Position.Z),
			fmt.Sprintf("X:%.2f, Y:%.2f, Z:%.2f", ea.X, ea.Y, ea.Z),
			fmt.Sprintf("X:%.2f, Y:%.2f, Z:%.2f", p.Scale.X, p.Scale.Y, p.Scale.Z),
		})
	}
	return t.Render()
}
