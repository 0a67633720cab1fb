// Package axisremap implements a constraint that drives one channel of a destination transform from
// a channel of a source transform, remapping each axis through its own range.
package axisremap

import (
	"github.com/golang/geo/r3"

	"go.viam.com/rigging/constraint"
	"go.viam.com/rigging/logging"
	"go.viam.com/rigging/referenceframe"
)

// Type is the registered constraint type.
const Type = "axis_remap"

func init() {
	constraint.Register(Type, constraint.Registration[*Config]{Constructor: newAxisRemap})
}

// AxisRemap is a bound axis remap constraint.
type AxisRemap struct {
	name   string
	logger logging.Logger

	source, destination        referenceframe.Handle
	sourceChannel, destChannel Channel
	sourceSpace, destSpace     referenceframe.Space

	remap  Remapper
	offset r3.Vector
	revs   RevolutionState
}

func newAxisRemap(name string, conf *Config, binder constraint.Binder, logger logging.Logger) (constraint.Constraint, error) {
	return New(name, conf, binder, logger)
}

// New binds conf against binder. The destination channel's value at bind time becomes the offset added
// to every Position or Rotation write.
func New(name string, conf *Config, binder constraint.Binder, logger logging.Logger) (*AxisRemap, error) {
	if err := conf.Validate(name); err != nil {
		return nil, err
	}
	src, err := binder.Resolve(conf.Source)
	if err != nil {
		return nil, err
	}
	dst, err := binder.Resolve(conf.Destination)
	if err != nil {
		return nil, err
	}
	ar := &AxisRemap{
		name:          name,
		logger:        logger,
		source:        src,
		destination:   dst,
		sourceChannel: conf.SourceChannel,
		destChannel:   conf.DestinationChannel,
		sourceSpace:   conf.SourceSpace,
		destSpace:     conf.DestinationSpace,
		remap:         conf.Remapper(),
	}
	if ar.destChannel != Scale {
		ar.offset = ar.destChannel.Read(binder.ReadPose(dst, ar.destSpace))
	}
	logger.Debugw("bound axis remap",
		"source", conf.Source, "source_channel", ar.sourceChannel,
		"destination", conf.Destination, "destination_channel", ar.destChannel,
		"offset", ar.offset)
	return ar, nil
}

// Name returns the configured name.
func (ar *AxisRemap) Name() string {
	return ar.name
}

// Revolutions returns the accumulated whole turns per source axis.
func (ar *AxisRemap) Revolutions() [3]int {
	return ar.revs.Revolutions
}

// Evaluate remaps the source channel onto the destination channel. The weight gates the write; any
// positive weight writes the full remapped value.
func (ar *AxisRemap) Evaluate(weight float64, r constraint.PoseReader, w constraint.PoseWriter) {
	if weight <= 0 {
		return
	}
	v := ar.sourceChannel.Read(r.ReadPose(ar.source, ar.sourceSpace))
	if ar.sourceChannel == Rotation {
		v = ar.revs.Unwrap(v)
	}
	out := ar.remap.Apply(v).Add(ar.offset)
	pose := r.ReadPose(ar.destination, ar.destSpace)
	w.WritePose(ar.destination, ar.destSpace, ar.destChannel.Write(pose, out))
}
