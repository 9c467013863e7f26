// Grouping coordinator: union-find-style regrouping of NavElements
// driven purely by AABB overlap, plus the settlement order that
// Update() runs every phase in. It uses the same side-table/
// queue-draining shape the quadtree (package quadtree) already
// establishes for its own O(1) removal.
package navmesh2d

import (
	"navmesh2d/element"
	"navmesh2d/graph"
	"navmesh2d/group"
	"navmesh2d/logging"
)

// Update settles the mesh to quiescence: refresh dirty elements,
// regroup affected elements, rebuild dirty groups, then rebuild the
// navigation graph. A no-op Update (nothing dirty, nothing queued)
// leaves every observable unchanged.
func (n *Nav2D) Update() error {
	if !n.hasPendingWork() {
		return nil
	}

	if err := n.refreshDirtyElements(); err != nil {
		return err
	}

	n.drainRegroupQueue()

	if err := n.rebuildDirtyGroups(); err != nil {
		return err
	}

	n.rebuildGraph()

	return nil
}

func (n *Nav2D) hasPendingWork() bool {
	if len(n.regroupQueue) > 0 || len(n.rebuildSet) > 0 {
		return true
	}
	for _, e := range n.elements {
		if e.Dirty() {
			return true
		}
	}
	return false
}

// refreshDirtyElements runs NavElement.Refresh on every dirty element,
// applying its RefreshResult to quadtree membership and group
// dismantling.
func (n *Nav2D) refreshDirtyElements() error {
	for _, e := range n.elements {
		if !e.Dirty() {
			continue
		}
		result, err := e.Refresh(n.agentRadius, n.accuracy, n.offsetEngine)
		if err != nil {
			return err
		}
		if !result.Refreshed {
			continue
		}

		if e.InQuadtree() {
			if err := n.tree.Move(e, e.Bounds()); err != nil {
				return err
			}
		} else {
			if err := n.tree.Insert(e, e.Bounds()); err != nil {
				return err
			}
			e.MarkQuadtreeInserted()
		}

		if result.HadGroup {
			n.dismantleGroup(result.OldGroupID)
		}
		n.enqueueRegroup(e)

		n.publish(logging.ElementRefreshed, logging.EntityRef{ID: e.ID, Kind: logging.EntityKindElement}, logging.SeverityInfo, nil)
	}
	return nil
}

// dismantleGroup clears a group's membership so every former member is
// requeued for regrouping. A no-op if the group no longer exists.
func (n *Nav2D) dismantleGroup(groupID uint64) {
	g, ok := n.groups[groupID]
	if !ok {
		return
	}
	for _, member := range g.Members() {
		g.Remove(member)
		n.enqueueRegroup(member)
	}
	delete(n.groups, groupID)
	delete(n.rebuildSet, groupID)
	n.publish(logging.GroupSplit, logging.EntityRef{ID: groupID, Kind: logging.EntityKindGroup}, logging.SeverityDebug, nil)
}

func (n *Nav2D) enqueueRegroup(e *element.NavElement) {
	for _, queued := range n.regroupQueue {
		if queued == e {
			return
		}
	}
	n.regroupQueue = append(n.regroupQueue, e)
}

// drainRegroupQueue processes every queued element exactly once,
// tracking a "seen" set so an element pushed back on by a peer's
// adoption during this same drain is not reprocessed.
func (n *Nav2D) drainRegroupQueue() {
	seen := make(map[*element.NavElement]struct{}, len(n.regroupQueue))
	for len(n.regroupQueue) > 0 {
		e := n.regroupQueue[0]
		n.regroupQueue = n.regroupQueue[1:]
		if _, done := seen[e]; done {
			continue
		}
		seen[e] = struct{}{}
		if _, exists := n.elements[e.ID]; !exists {
			continue
		}
		n.regroupElement(e)
	}
}

// regroupElement queries the quadtree neighbourhood of e, then adopts,
// merges, or mints a group id for that neighbourhood depending on how
// many distinct incumbent group ids it touches.
func (n *Nav2D) regroupElement(e *element.NavElement) {
	neighbours := n.tree.QueryIntersecting(e.Bounds(), nil)
	if len(neighbours) == 0 {
		neighbours = []*element.NavElement{e}
	}

	incumbents := make(map[uint64]struct{})
	for _, nb := range neighbours {
		if nb.GroupID != 0 {
			incumbents[nb.GroupID] = struct{}{}
		}
	}

	switch len(incumbents) {
	case 0:
		n.assignFreshGroup(neighbours)
	case 1:
		var only uint64
		for id := range incumbents {
			only = id
		}
		n.adoptGroup(only, neighbours)
	default:
		members := neighbours
		for id := range incumbents {
			if g, ok := n.groups[id]; ok {
				members = append(members, g.Members()...)
			}
		}
		for id := range incumbents {
			n.emptyGroup(id)
		}
		n.assignFreshGroup(members)
	}
}

func (n *Nav2D) assignFreshGroup(members []*element.NavElement) {
	n.nextGroupID++
	g := group.New(n.nextGroupID)
	for _, m := range members {
		if m.GroupID != 0 && m.GroupID != g.ID {
			n.emptyGroup(m.GroupID)
		}
		g.Add(m)
		n.enqueueRegroup(m)
	}
	n.groups[g.ID] = g
	n.rebuildSet[g.ID] = struct{}{}
}

func (n *Nav2D) adoptGroup(groupID uint64, members []*element.NavElement) {
	g, ok := n.groups[groupID]
	if !ok {
		n.assignFreshGroup(members)
		return
	}
	changed := false
	for _, m := range members {
		if m.GroupID == g.ID {
			continue
		}
		if m.GroupID != 0 {
			n.emptyGroup(m.GroupID)
		}
		g.Add(m)
		n.enqueueRegroup(m)
		changed = true
	}
	if changed {
		n.rebuildSet[g.ID] = struct{}{}
	}
}

// emptyGroup moves every member of a soon-to-be-replaced incumbent
// group out from under it without requeueing them for regroup (the
// caller is about to assign them a new id directly).
func (n *Nav2D) emptyGroup(groupID uint64) {
	g, ok := n.groups[groupID]
	if !ok {
		return
	}
	for _, member := range g.Members() {
		g.Remove(member)
	}
	delete(n.groups, groupID)
	delete(n.rebuildSet, groupID)
}

// rebuildDirtyGroups invokes ElementGroup.Rebuild on every group
// marked for rebuild that still exists.
func (n *Nav2D) rebuildDirtyGroups() error {
	for id := range n.rebuildSet {
		g, ok := n.groups[id]
		delete(n.rebuildSet, id)
		if !ok || g.Empty() {
			delete(n.groups, id)
			continue
		}
		if err := g.Rebuild(n.clipEngine, n.accuracy); err != nil {
			return err
		}
		n.publish(logging.GroupRebuilt, logging.EntityRef{ID: id, Kind: logging.EntityKindGroup}, logging.SeverityInfo, nil)
	}
	return nil
}

// rebuildGraph reconstructs the navigation graph from every current
// group's NavShape trees.
func (n *Nav2D) rebuildGraph() {
	builder := graph.NewBuilder()
	for _, g := range n.groups {
		builder.AddGroup(g)
	}
	n.graph = builder.Build()
	n.publish(logging.GraphRebuilt, logging.EntityRef{Kind: logging.EntityKindMesh}, logging.SeverityInfo, nil)
}
