package clip

import (
	"sort"

	"github.com/tdewolff/canvas"

	"navmesh2d/geometry"
	"navmesh2d/mesherr"
)

// flattenTolerance bounds the chord error introduced when canvas
// flattens the (already polygonal, so purely linear) paths back into
// vertex lists. Kept tight since our paths never contain curves.
const flattenTolerance = 1e-3

// CanvasEngine implements Engine using github.com/tdewolff/canvas's
// sweep-line path Boolean algebra (And2/Or2/Xor2/Not2 over
// *canvas.Path — the "2" suffix distinguishes this Bentley-Ottmann
// implementation from the package's older, non-sweep And/Or/Xor/Not).
// The flat contour set canvas returns carries no parent/hole structure
// of its own, so this engine derives the outer-contour/hole tree from
// ring containment once the raw Boolean result is in hand.
type CanvasEngine struct{}

// Union implements Engine.
func (CanvasEngine) Union(subjects [][]geometry.IntPoint, fill FillRule) (*ShapeNode, error) {
	if len(subjects) == 0 {
		return nil, mesherr.New(mesherr.EngineFailure, "union requires at least one subject ring")
	}
	result, err := unionAll(subjects)
	if err != nil {
		return nil, err
	}
	rings := splitToRings(result)
	if len(rings) == 0 {
		return nil, mesherr.New(mesherr.EngineFailure, "union produced no usable contour")
	}
	return buildTree(rings), nil
}

// Difference implements Engine.
func (CanvasEngine) Difference(subjects, clips [][]geometry.IntPoint, fill FillRule) (*ShapeNode, error) {
	if len(subjects) == 0 {
		return nil, mesherr.New(mesherr.EngineFailure, "difference requires at least one subject ring")
	}
	subjectPath, err := unionAll(subjects)
	if err != nil {
		return nil, err
	}
	if len(clips) == 0 {
		rings := splitToRings(subjectPath)
		return buildTree(rings), nil
	}
	clipPath, err := unionAll(clips)
	if err != nil {
		return nil, err
	}
	result := subjectPath.Not2(clipPath)
	rings := splitToRings(result)
	if len(rings) == 0 {
		return nil, mesherr.New(mesherr.EngineFailure, "difference produced no usable contour")
	}
	return buildTree(rings), nil
}

func unionAll(rings [][]geometry.IntPoint) (*canvas.Path, error) {
	var acc *canvas.Path
	for _, ring := range rings {
		p := ringToPath(ring)
		if p == nil {
			continue
		}
		if acc == nil {
			acc = p
			continue
		}
		acc = acc.Or2(p)
	}
	if acc == nil {
		return nil, mesherr.New(mesherr.EngineFailure, "no ring produced a usable path")
	}
	return acc, nil
}

func ringToPath(ring []geometry.IntPoint) *canvas.Path {
	if len(ring) < 3 {
		return nil
	}
	p := &canvas.Path{}
	p.MoveTo(float64(ring[0].X), float64(ring[0].Y))
	for _, pt := range ring[1:] {
		p.LineTo(float64(pt.X), float64(pt.Y))
	}
	p.Close()
	return p
}

func splitToRings(p *canvas.Path) [][]geometry.IntPoint {
	if p == nil {
		return nil
	}
	var rings [][]geometry.IntPoint
	for _, sub := range p.Split() {
		flat := sub.Flatten(flattenTolerance)
		coords := flat.Coords()
		if len(coords) < 3 {
			continue
		}
		ring := make([]geometry.IntPoint, len(coords))
		for i, c := range coords {
			ring[i] = geometry.IntPoint{X: int64(c.X), Y: int64(c.Y)}
		}
		rings = append(rings, ring)
	}
	return rings
}

// buildTree derives the parent/hole alternation from ring containment:
// a ring's immediate parent is the smallest-area other ring that
// contains its first vertex. Depth below the synthetic root (1 for a
// top-level ring) then determines the hole flag (odd depth = contour,
// even depth = hole),
// matching the alternation the clip engine's own tree guarantees.
func buildTree(rings [][]geometry.IntPoint) *ShapeNode {
	type candidate struct {
		points []geometry.IntPoint
		float  []geometry.Vector2
		area   float64
		parent int // index into candidates, -1 for root-level
	}

	cands := make([]candidate, len(rings))
	for i, r := range rings {
		fl := make([]geometry.Vector2, len(r))
		for j, p := range r {
			fl[j] = geometry.Vector2{X: float64(p.X), Y: float64(p.Y)}
		}
		area := geometry.SignedArea(fl)
		if area < 0 {
			area = -area
		}
		cands[i] = candidate{points: r, float: fl, area: area, parent: -1}
	}

	for i := range cands {
		bestParent := -1
		bestArea := 0.0
		for j := range cands {
			if i == j || len(cands[j].float) == 0 {
				continue
			}
			if !geometry.PointInPolygon(cands[i].float[0], cands[j].float) {
				continue
			}
			if bestParent == -1 || cands[j].area < bestArea {
				bestParent = j
				bestArea = cands[j].area
			}
		}
		cands[i].parent = bestParent
	}

	nodes := make([]*ShapeNode, len(cands))
	for i, c := range cands {
		nodes[i] = &ShapeNode{Points: c.points}
	}

	root := &ShapeNode{}
	depth := make([]int, len(cands))
	order := make([]int, len(cands))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return cands[order[a]].area > cands[order[b]].area
	})

	resolved := make(map[int]bool)
	var resolveDepth func(i int) int
	resolveDepth = func(i int) int {
		if resolved[i] {
			return depth[i]
		}
		p := cands[i].parent
		if p == -1 {
			depth[i] = 1
		} else {
			depth[i] = resolveDepth(p) + 1
		}
		resolved[i] = true
		return depth[i]
	}

	for i := range cands {
		d := resolveDepth(i)
		nodes[i].Hole = d%2 == 0
		p := cands[i].parent
		if p == -1 {
			root.Children = append(root.Children, nodes[i])
		} else {
			nodes[p].Children = append(nodes[p].Children, nodes[i])
		}
	}

	return root
}
