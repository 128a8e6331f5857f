package canvas

import "sort"

// Node box and gaps used by the layered layout. The canvas renders nodes at
// roughly this size; exact pixel fit does not matter, non-overlap does.
const (
	layoutNodeWidth  = 260.0
	layoutNodeHeight = 90.0
	layoutGapX       = 120.0
	layoutGapY       = 40.0
)

// Layout assigns left-to-right layered positions to the whole graph. Roots
// (nodes with no incoming edge) sit in layer 0, every other node one layer
// right of its deepest parent. Each layer is vertically centered around y=0.
//
// The function is idempotent: positions depend only on graph shape, so
// laying out twice yields the same coordinates.
func Layout(nodes []Node, edges []Edge) []Node {
	if len(nodes) == 0 {
		return nil
	}

	layer := assignLayers(nodes, edges)

	byLayer := make(map[int][]int)
	maxLayer := 0
	for i, n := range nodes {
		l := layer[n.ID]
		byLayer[l] = append(byLayer[l], i)
		if l > maxLayer {
			maxLayer = l
		}
	}

	out := make([]Node, len(nodes))
	copy(out, nodes)

	for l := 0; l <= maxLayer; l++ {
		idxs := byLayer[l]
		// Keep ordering stable across calls regardless of map iteration.
		sort.Ints(idxs)

		total := float64(len(idxs))*layoutNodeHeight + float64(len(idxs)-1)*layoutGapY
		y := -total / 2
		x := float64(l) * (layoutNodeWidth + layoutGapX)
		for _, i := range idxs {
			out[i].Position = Position{X: x, Y: y}
			y += layoutNodeHeight + layoutGapY
		}
	}
	return out
}

// assignLayers walks the DAG breadth-first from the roots, pushing each node
// to one past its deepest parent. A visited-count guard stops runaway loops
// if the edge list happens to contain a cycle.
func assignLayers(nodes []Node, edges []Edge) map[string]int {
	known := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		known[n.ID] = true
	}

	incoming := make(map[string]int)
	children := ChildMap(edges)
	for _, e := range edges {
		if known[e.Source] && known[e.Target] {
			incoming[e.Target]++
		}
	}

	layer := make(map[string]int, len(nodes))
	var queue []string
	for _, n := range nodes {
		if incoming[n.ID] == 0 {
			layer[n.ID] = 0
			queue = append(queue, n.ID)
		}
	}

	steps := 0
	limit := len(nodes) * len(nodes)
	for len(queue) > 0 && steps <= limit {
		id := queue[0]
		queue = queue[1:]
		steps++
		for _, child := range children[id] {
			if !known[child] {
				continue
			}
			next := layer[id] + 1
			if cur, seen := layer[child]; !seen || next > cur {
				layer[child] = next
				queue = append(queue, child)
			}
		}
	}
	return layer
}
