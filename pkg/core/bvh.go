package core

import "sort"

// BVHNode is one node of a flat-array Surface-Area-Heuristic BVH. Leaf
// status is encoded as Left == 0: node 0 is always the root, and no
// internal node is ever permitted to reference the root as a child, so
// Left == 0 unambiguously means "no children." [First, Last) is a
// contiguous range into the BVH's primitive slice; leaf ranges partition
// that slice.
type BVHNode struct {
	AABB        AABB
	Left, Right int
	First, Last int
}

// BVH is a flat-array binary tree over a mutable primitive slice. Build
// may reorder Primitives; traversal never does.
type BVH struct {
	Nodes      []BVHNode
	Primitives []*Primitive
}

// BuildBVH constructs a BVH over primitives, reordering the slice in
// place. Callers depend on this: the scene partitions its primitive
// array once at load time (BVH-eligible primitives first, planes last)
// and the BVH is built directly over that sub-slice, so the reordering
// here stays within the eligible range and the partition invariant
// survives.
func BuildBVH(primitives []*Primitive) *BVH {
	bvh := &BVH{Primitives: primitives}
	if len(primitives) == 0 {
		return bvh
	}
	bvh.Nodes = append(bvh.Nodes, BVHNode{}) // reserve the root at index 0
	bvh.build(0, 0, len(primitives))
	return bvh
}

// build fills in the node at nodeIdx for range [first,last), splitting
// and recursing into freshly appended child nodes when the SAH says a
// split pays for itself.
func (bvh *BVH) build(nodeIdx, first, last int) {
	box := bvh.boundsOf(first, last)
	bvh.Nodes[nodeIdx] = BVHNode{AABB: box, First: first, Last: last}

	if last-first <= 1 {
		return
	}

	parentCost := box.SurfaceArea() * float64(last-first)
	bestK, ok := bvh.findBestSplit(first, last, parentCost)
	if !ok {
		return
	}

	leftIdx := len(bvh.Nodes)
	bvh.Nodes = append(bvh.Nodes, BVHNode{})
	rightIdx := len(bvh.Nodes)
	bvh.Nodes = append(bvh.Nodes, BVHNode{})

	bvh.Nodes[nodeIdx].Left = leftIdx
	bvh.Nodes[nodeIdx].Right = rightIdx

	bvh.build(leftIdx, first, bestK)
	bvh.build(rightIdx, bestK, last)
}

func (bvh *BVH) boundsOf(first, last int) AABB {
	box := AABBFromPrimitive(bvh.Primitives[first])
	for i := first + 1; i < last; i++ {
		box = box.Union(AABBFromPrimitive(bvh.Primitives[i]))
	}
	return box
}

// findBestSplit tries each coordinate axis in order x, y, z and commits to
// the first axis whose own best split beats parentCost, matching the
// original per-axis early-exit split search: an axis that doesn't pay for
// itself is abandoned in favor of the next axis, rather than compared
// against the other axes' costs. For the committed axis, [first,last) is
// sorted by primitive centroid and every internal split point is scanned
// in O(n) using prefix/suffix AABB area sums, evaluating the SAH cost
// area(left)*count(left) + area(right)*count(right). On return with
// ok == true, Primitives[first:last) is left sorted along the winning
// axis. On ok == false, no axis beat parentCost and the slice is left
// sorted along z, the last axis tried.
func (bvh *BVH) findBestSplit(first, last int, parentCost float64) (bestK int, ok bool) {
	n := last - first

	for axis := 0; axis < 3; axis++ {
		sortByCentroidAxis(bvh.Primitives[first:last], axis)

		prefixArea := make([]float64, n+1)
		suffixArea := make([]float64, n+1)

		var running AABB
		for i := 0; i < n; i++ {
			box := AABBFromPrimitive(bvh.Primitives[first+i])
			if i == 0 {
				running = box
			} else {
				running = running.Union(box)
			}
			prefixArea[i+1] = running.SurfaceArea()
		}
		for i := n - 1; i >= 0; i-- {
			box := AABBFromPrimitive(bvh.Primitives[first+i])
			if i == n-1 {
				running = box
			} else {
				running = running.Union(box)
			}
			suffixArea[i] = running.SurfaceArea()
		}

		axisBestCost := prefixArea[1]*1 + suffixArea[1]*float64(n-1)
		axisBestK := first + 1
		for k := 2; k < n; k++ {
			cost := prefixArea[k]*float64(k) + suffixArea[k]*float64(n-k)
			if cost < axisBestCost {
				axisBestCost = cost
				axisBestK = first + k
			}
		}

		if axisBestCost < parentCost {
			return axisBestK, true
		}
	}

	return 0, false
}

func sortByCentroidAxis(primitives []*Primitive, axis int) {
	sort.Slice(primitives, func(i, j int) bool {
		ci := AABBFromPrimitive(primitives[i]).Center().Component(axis)
		cj := AABBFromPrimitive(primitives[j]).Center().Component(axis)
		return ci < cj
	})
}

// Intersect traverses the BVH, returning the closest hit with t < bestSoFar.
func (bvh *BVH) Intersect(ray Ray, bestSoFar float64) (Intersection, *Primitive, bool) {
	if len(bvh.Nodes) == 0 {
		return Intersection{}, nil, false
	}
	return bvh.intersectNode(0, ray, bestSoFar)
}

func (bvh *BVH) intersectNode(nodeIdx int, ray Ray, bestSoFar float64) (Intersection, *Primitive, bool) {
	node := &bvh.Nodes[nodeIdx]

	tEntry, hitBox := node.AABB.Intersect(ray)
	if !hitBox {
		return Intersection{}, nil, false
	}
	if tEntry > bestSoFar && !node.AABB.IsInside(ray.Origin) {
		return Intersection{}, nil, false
	}

	if node.Left == 0 {
		return bvh.intersectLeaf(node, ray, bestSoFar)
	}

	var (
		best     Intersection
		bestPrim *Primitive
		found    bool
	)
	remaining := bestSoFar

	if hit, prim, ok := bvh.intersectNode(node.Left, ray, remaining); ok {
		best, bestPrim, found = hit, prim, true
		remaining = hit.T
	}
	if hit, prim, ok := bvh.intersectNode(node.Right, ray, remaining); ok {
		best, bestPrim, found = hit, prim, true
	}
	return best, bestPrim, found
}

// ForEachHit visits every primitive whose leaf-node AABB the ray
// intersects, without regard to ordering or nearest-hit pruning. This is
// used by the emitter mixture distribution to gather every light whose
// bounds a direction could plausibly hit, deferring the precise
// ray/primitive test to the caller.
func (bvh *BVH) ForEachHit(ray Ray, visit func(*Primitive)) {
	if len(bvh.Nodes) == 0 {
		return
	}
	bvh.forEachHitNode(0, ray, visit)
}

func (bvh *BVH) forEachHitNode(nodeIdx int, ray Ray, visit func(*Primitive)) {
	node := &bvh.Nodes[nodeIdx]
	if _, hit := node.AABB.Intersect(ray); !hit {
		return
	}
	if node.Left == 0 {
		for i := node.First; i < node.Last; i++ {
			visit(bvh.Primitives[i])
		}
		return
	}
	bvh.forEachHitNode(node.Left, ray, visit)
	bvh.forEachHitNode(node.Right, ray, visit)
}

func (bvh *BVH) intersectLeaf(node *BVHNode, ray Ray, bestSoFar float64) (Intersection, *Primitive, bool) {
	var (
		best     Intersection
		bestPrim *Primitive
		found    bool
	)
	closest := bestSoFar
	for i := node.First; i < node.Last; i++ {
		prim := bvh.Primitives[i]
		if hit, ok := prim.Intersect(ray); ok && hit.T < closest {
			best, bestPrim, found = hit, prim, true
			closest = hit.T
		}
	}
	return best, bestPrim, found
}
