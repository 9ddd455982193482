package trellis

import "fmt"

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode; in release mode callers
// skip this entirely.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("trellis debug: %s on disposed node %q", op, n.Name))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		logger.Warn("tree depth exceeds threshold", "depth", depth, "threshold", debugMaxTreeDepth, "node", n.Name)
	}
}

// debugCheckChildCount warns if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		logger.Warn("child count exceeds threshold", "node", n.Name, "children", len(n.children),
			"threshold", debugMaxChildCount)
	}
}

// DumpTree returns an indented description of n's subtree, one node per line,
// with each node's document rectangle and scroll offset.
func DumpTree(n *Node) string {
	var b []byte
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		r := n.DocumentRect()
		for i := 0; i < depth; i++ {
			b = append(b, "  "...)
		}
		b = fmt.Appendf(b, "%s #%d (%.0f,%.0f %.0fx%.0f) scroll=(%.0f,%.0f) z=%s\n",
			n.Name, n.ID, r.X, r.Y, r.Width, r.Height, n.ScrollX, n.ScrollY, n.ZIndex)
		for _, c := range n.children {
			walk(c, depth+1)
		}
	}
	walk(n, 0)
	return string(b)
}
