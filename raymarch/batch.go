package raymarch

import (
	"errors"

	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/shaderart/gleval"
)

// MarchBatch marches every ray (ro[i], rd[i]) through sdf in lockstep and
// stores the outcome in results[i]. Each iteration evaluates the SDF once
// for all rays still marching. userData is passed through to the SDF and
// must provide a [gleval.VecPool].
func (m Marcher) MarchBatch(sdf gleval.SDF3, ro, rd []ms3.Vec, results []Result, userData any) error {
	if len(ro) != len(rd) || len(ro) != len(results) {
		return errors.New("length of ray origins, directions and results must match")
	} else if sdf == nil {
		return errors.New("nil SDF3")
	} else if len(ro) == 0 {
		return nil
	}
	vp, err := gleval.GetVecPool(userData)
	if err != nil {
		return err
	}
	m = m.withDefaults()
	for i := range results {
		results[i] = start(ro[i])
	}
	pos := vp.V3.Acquire(len(ro))
	dist := vp.Float.Acquire(len(ro))
	// active holds indices of rays still marching, compacted each iteration.
	active := make([]int, len(ro))
	for i := range active {
		active[i] = i
	}
	defer vp.V3.Release(pos)
	defer vp.Float.Release(dist)
	for len(active) > 0 {
		for j, i := range active {
			pos[j] = results[i].Pos
		}
		n := len(active)
		err = sdf.Evaluate(pos[:n], dist[:n], userData)
		if err != nil {
			return err
		}
		k := 0
		for j, i := range active {
			m.step(&results[i], dist[j], ro[i], rd[i])
			if results[i].State == Marching {
				active[k] = i
				k++
			}
		}
		active = active[:k]
	}
	return nil
}

// NormalsBatch computes unit surface normals at the hit positions of
// results using [gleval.NormalsCentralDiff]. Normals of rays that did not
// hit are left as the zero vector.
func NormalsBatch(sdf gleval.SDF3, results []Result, normals []ms3.Vec, eps float32, userData any) error {
	if len(results) != len(normals) {
		return errors.New("length of results must match length of normals")
	} else if len(results) == 0 {
		return nil
	}
	vp, err := gleval.GetVecPool(userData)
	if err != nil {
		return err
	}
	if eps <= 0 {
		eps = NormalEpsilon
	}
	pos := vp.V3.Acquire(len(results))
	defer vp.V3.Release(pos)
	hits := pos[:0]
	for _, r := range results {
		if r.State == Hit {
			hits = append(hits, r.Pos)
		}
	}
	if len(hits) == 0 {
		clear(normals)
		return nil
	}
	hitNormals := vp.V3.Acquire(len(hits))
	defer vp.V3.Release(hitNormals)
	err = gleval.NormalsCentralDiff(sdf, hits, hitNormals[:len(hits)], 2*eps, true, userData)
	if err != nil {
		return err
	}
	j := 0
	for i, r := range results {
		if r.State == Hit {
			normals[i] = hitNormals[j]
			j++
		} else {
			normals[i] = ms3.Vec{}
		}
	}
	return nil
}
