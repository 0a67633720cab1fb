package referenceframe

import (
	"sync"

	"github.com/samber/lo"

	"go.viam.com/rigging/spatialmath"
)

// A Handle is a bound reference to one transform of a Skeleton. Handles are resolved from names once,
// at bind time; per-frame access goes through the handle only.
type Handle int

// InvalidHandle is never returned by a successful Resolve.
const InvalidHandle Handle = -1

type transform struct {
	name   string
	parent Handle
	local  spatialmath.Pose
}

// Skeleton is an in-memory transform hierarchy. Each transform stores its local pose; world poses are
// computed by composing up the parent chain. Parents are always added before their children, so the
// hierarchy is acyclic by construction.
type Skeleton struct {
	mu         sync.RWMutex
	transforms []transform
	byName     map[string]Handle
}

// NewSkeleton returns an empty skeleton.
func NewSkeleton() *Skeleton {
	return &Skeleton{byName: map[string]Handle{}}
}

// Add appends a transform with the given local pose. An empty parent makes it a root.
func (s *Skeleton) Add(name, parent string, local spatialmath.Pose) (Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byName[name]; ok {
		return InvalidHandle, NewDuplicateTransformError(name)
	}
	parentHandle := InvalidHandle
	if parent != "" {
		h, ok := s.byName[parent]
		if !ok {
			return InvalidHandle, NewParentTransformMissingError(name, parent)
		}
		parentHandle = h
	}
	h := Handle(len(s.transforms))
	s.transforms = append(s.transforms, transform{name: name, parent: parentHandle, local: local})
	s.byName[name] = h
	return h, nil
}

// Resolve returns the handle of the named transform.
func (s *Skeleton) Resolve(name string) (Handle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.byName[name]
	if !ok {
		return InvalidHandle, NewTransformMissingError(name)
	}
	return h, nil
}

// Name returns the name of the transform behind h, or "" for an unknown handle.
func (s *Skeleton) Name(h Handle) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.valid(h) {
		return ""
	}
	return s.transforms[h].name
}

// Parent returns the name of the parent of the named transform; roots have no parent.
func (s *Skeleton) Parent(name string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.byName[name]
	if !ok {
		return "", NewTransformMissingError(name)
	}
	if p := s.transforms[h].parent; p != InvalidHandle {
		return s.transforms[p].name, nil
	}
	return "", nil
}

// Names returns the transform names in insertion order, parents before children.
func (s *Skeleton) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lo.Map(s.transforms, func(t transform, _ int) string { return t.name })
}

// ReadPose returns the pose of h in the requested space. Unknown handles read as the zero pose.
func (s *Skeleton) ReadPose(h Handle, space Space) spatialmath.Pose {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.valid(h) {
		return spatialmath.NewZeroPose()
	}
	if space == World {
		return s.world(h)
	}
	return s.transforms[h].local
}

// WritePose sets the pose of h, interpreting p in the given space. Writes to unknown handles are dropped.
func (s *Skeleton) WritePose(h Handle, space Space, p spatialmath.Pose) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.valid(h) {
		return
	}
	if space == World {
		if parent := s.transforms[h].parent; parent != InvalidHandle {
			p = spatialmath.Decompose(s.world(parent), p)
		}
	}
	s.transforms[h].local = p
}

// Clone returns a deep copy of the skeleton.
func (s *Skeleton) Clone() *Skeleton {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &Skeleton{
		transforms: append([]transform(nil), s.transforms...),
		byName:     lo.Assign(s.byName),
	}
}

// LocalPoses returns every transform's local pose keyed by name.
func (s *Skeleton) LocalPoses() map[string]spatialmath.Pose {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lo.SliceToMap(s.transforms, func(t transform) (string, spatialmath.Pose) {
		return t.name, t.local
	})
}

func (s *Skeleton) valid(h Handle) bool {
	return h >= 0 && int(h) < len(s.transforms)
}

// world must be called with the lock held.
func (s *Skeleton) world(h Handle) spatialmath.Pose {
	t := s.transforms[h]
	if t.parent == InvalidHandle {
		return t.local
	}
	return spatialmath.Compose(s.world(t.parent), t.local)
}
