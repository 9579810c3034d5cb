package primitives

import (
	"go.uber.org/zap"

	"sdf-engine/internal/id"
	"sdf-engine/internal/vmath"
)

// Handle is a strong reference to a registry-owned primitive. Every handle
// returned by the registry (or by Retain) counts as one strong holder and
// must be Released exactly once; the registry only keeps weak back-references
// and reclaims an entry during the next sweep after the last strong holder is
// gone.
//
// Handles are not safe for concurrent use; the registry and all handles live
// on the engine thread.
type Handle[T Primitive] struct {
	id       id.UniqueId
	value    *T
	strong   *int
	released bool
}

// Id returns the registry id the primitive is stored under.
func (h Handle[T]) Id() id.UniqueId {
	return h.id
}

// Get returns the shared primitive. The pointer stays valid for the lifetime
// of any strong handle.
func (h Handle[T]) Get() *T {
	return h.value
}

// Retain returns a new strong handle to the same primitive.
func (h Handle[T]) Retain() Handle[T] {
	*h.strong++
	return Handle[T]{id: h.id, value: h.value, strong: h.strong}
}

// Release drops this handle's strong reference. Releasing the same handle
// variable twice is a no-op. The entry is reclaimed by the next
// CleanUnusedReferences call, not here.
func (h *Handle[T]) Release() {
	if h.released || h.strong == nil {
		return
	}
	h.released = true
	*h.strong--
}

// entry is the registry's weak back-reference: it does not count toward the
// strong count, and it resolves only while at least one strong handle exists.
type entry[T Primitive] struct {
	value  *T
	strong *int
}

// Registry hands out shared primitives behind reference-counted handles so
// several objects (and the GUI) can refer to one primitive by id without
// keeping it alive forever. Reclamation is an explicit deferred sweep:
// callers run CleanUnusedReferences after any removal that could have
// dropped the last strong holder.
type Registry struct {
	gen     *id.Generator
	spheres map[id.UniqueId]entry[Sphere]
	cubes   map[id.UniqueId]entry[Cube]
	log     *zap.Logger
}

// NewRegistry returns an empty registry. Ids are scoped to this registry.
func NewRegistry(log *zap.Logger) *Registry {
	return &Registry{
		gen:     id.NewGenerator(),
		spheres: make(map[id.UniqueId]entry[Sphere]),
		cubes:   make(map[id.UniqueId]entry[Cube]),
		log:     log,
	}
}

// NewSphere stores a sphere and returns the first strong handle to it.
func (r *Registry) NewSphere(center vmath.Vec3, radius float32) (Handle[Sphere], error) {
	return newShared(r, r.spheres, NewSphere(center, radius))
}

// NewCube stores a cube and returns the first strong handle to it.
func (r *Registry) NewCube(center, dimensions vmath.Vec3) (Handle[Cube], error) {
	return newShared(r, r.cubes, NewCube(center, dimensions))
}

// GetSphere resolves id to a new strong handle, or reports false if no strong
// holder remains (or the id was never a sphere).
func (r *Registry) GetSphere(primitiveId id.UniqueId) (Handle[Sphere], bool) {
	return getShared(r.spheres, primitiveId)
}

// GetCube resolves id to a new strong handle, or reports false if no strong
// holder remains (or the id was never a cube).
func (r *Registry) GetCube(primitiveId id.UniqueId) (Handle[Cube], bool) {
	return getShared(r.cubes, primitiveId)
}

// CleanUnusedReferences removes every entry whose weak reference no longer
// resolves and recycles its id. Call after any removal that may have dropped
// a last strong handle, e.g. object deletion.
func (r *Registry) CleanUnusedReferences() {
	swept := sweep(r, r.spheres) + sweep(r, r.cubes)
	if swept > 0 {
		r.log.Debug("swept orphaned shared primitives", zap.Int("count", swept))
	}
}

func newShared[T Primitive](r *Registry, m map[id.UniqueId]entry[T], value T) (Handle[T], error) {
	primitiveId, err := r.gen.NewId()
	if err != nil {
		return Handle[T]{}, err
	}
	strong := 1
	e := entry[T]{value: &value, strong: &strong}
	m[primitiveId] = e
	return Handle[T]{id: primitiveId, value: e.value, strong: e.strong}, nil
}

func getShared[T Primitive](m map[id.UniqueId]entry[T], primitiveId id.UniqueId) (Handle[T], bool) {
	e, ok := m[primitiveId]
	if !ok || *e.strong <= 0 {
		return Handle[T]{}, false
	}
	*e.strong++
	return Handle[T]{id: primitiveId, value: e.value, strong: e.strong}, true
}

func sweep[T Primitive](r *Registry, m map[id.UniqueId]entry[T]) int {
	swept := 0
	for primitiveId, e := range m {
		if *e.strong > 0 {
			continue
		}
		delete(m, primitiveId)
		if err := r.gen.RecycleId(primitiveId); err != nil {
			// Double recycle here means the maps and the generator disagree;
			// log it rather than corrupt the pool.
			r.log.Error("recycling swept primitive id failed",
				zap.Uint32("id", uint32(primitiveId)), zap.Error(err))
		}
		swept++
	}
	return swept
}
