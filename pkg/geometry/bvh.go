package geometry

import (
	"sort"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// bvhChild references either a primitive or another node by index
type bvhChild struct {
	index int
	leaf  bool
}

// bvhNode is an interior node of the hierarchy
type bvhNode struct {
	bbox        core.AABB
	left, right bvhChild
}

// BVH represents a Bounding Volume Hierarchy for fast ray-object intersection.
// Nodes live in a flat slice and reference primitives by index; the
// hierarchy is built once and read concurrently afterwards.
type BVH struct {
	shapes []Shape
	nodes  []bvhNode
	root   int
}

// BVHStats describes the shape of a built hierarchy
type BVHStats struct {
	Primitives int
	Nodes      int
	MaxDepth   int
}

// NewBVH constructs a BVH from a slice of shapes. The input slice is not modified.
func NewBVH(shapes []Shape) *BVH {
	bvh := &BVH{
		shapes: make([]Shape, len(shapes)),
		root:   -1,
	}
	copy(bvh.shapes, shapes)

	if len(shapes) == 0 {
		return bvh
	}

	bvh.nodes = make([]bvhNode, 0, len(shapes))
	bvh.root = bvh.build(0, len(shapes))
	return bvh
}

// build creates the node covering shapes[start:end] and returns its index
func (bvh *BVH) build(start, end int) int {
	bbox := core.EmptyAABB
	for _, s := range bvh.shapes[start:end] {
		bbox = bbox.Merge(s.BoundingBox())
	}

	var node bvhNode
	node.bbox = bbox

	switch span := end - start; span {
	case 1:
		// Both children alias the single primitive
		node.left = bvhChild{index: start, leaf: true}
		node.right = node.left
	case 2:
		node.left = bvhChild{index: start, leaf: true}
		node.right = bvhChild{index: start + 1, leaf: true}
	default:
		axis := bbox.LongestAxis()
		objects := bvh.shapes[start:end]
		sort.SliceStable(objects, func(i, j int) bool {
			return objects[i].BoundingBox().Axis(axis).Min < objects[j].BoundingBox().Axis(axis).Min
		})

		mid := start + span/2
		node.left = bvhChild{index: bvh.build(start, mid)}
		node.right = bvhChild{index: bvh.build(mid, end)}
	}

	bvh.nodes = append(bvh.nodes, node)
	return len(bvh.nodes) - 1
}

// Hit tests if a ray intersects any shape in the BVH
func (bvh *BVH) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler, rec *material.HitRecord) bool {
	if bvh.root < 0 {
		return false
	}
	return bvh.hitNode(bvh.root, ray, rayT, sampler, rec)
}

func (bvh *BVH) hitChild(child bvhChild, ray core.Ray, rayT core.Interval, sampler core.Sampler, rec *material.HitRecord) bool {
	if child.leaf {
		return bvh.shapes[child.index].Hit(ray, rayT, sampler, rec)
	}
	return bvh.hitNode(child.index, ray, rayT, sampler, rec)
}

func (bvh *BVH) hitNode(index int, ray core.Ray, rayT core.Interval, sampler core.Sampler, rec *material.HitRecord) bool {
	node := &bvh.nodes[index]
	if !node.bbox.Hit(ray, rayT) {
		return false
	}

	hitLeft := bvh.hitChild(node.left, ray, rayT, sampler, rec)
	if node.right == node.left {
		// Probing an aliased primitive twice would redraw stochastic hits
		return hitLeft
	}

	// A right hit is strictly closer than the left one, so it may overwrite rec
	rightT := rayT
	if hitLeft {
		rightT = core.NewInterval(rayT.Min, rec.T)
	}
	hitRight := bvh.hitChild(node.right, ray, rightT, sampler, rec)

	return hitLeft || hitRight
}

// BoundingBox returns the overall bounding box of the BVH
func (bvh *BVH) BoundingBox() core.AABB {
	if bvh.root < 0 {
		return core.EmptyAABB
	}
	return bvh.nodes[bvh.root].bbox
}

// Stats walks the hierarchy and reports its size
func (bvh *BVH) Stats() BVHStats {
	stats := BVHStats{Primitives: len(bvh.shapes), Nodes: len(bvh.nodes)}
	if bvh.root >= 0 {
		stats.MaxDepth = bvh.depth(bvhChild{index: bvh.root})
	}
	return stats
}

func (bvh *BVH) depth(child bvhChild) int {
	if child.leaf {
		return 0
	}
	node := bvh.nodes[child.index]
	left, right := bvh.depth(node.left), bvh.depth(node.right)
	if left > right {
		return left + 1
	}
	return right + 1
}
