package boost

import (
	"math"
	"sort"
	"sync"

	"github.com/hikaru-sato/gridfit/core/parallel"
)

// NodeKind distinguishes split nodes from leaves.
type NodeKind int

const (
	// SplitNode routes rows to a child by comparing one feature against a
	// threshold.
	SplitNode NodeKind = iota
	// LeafNode holds a leaf weight.
	LeafNode
)

// Node is one node of a flattened tree. Children are indices into the
// tree's node slice.
type Node struct {
	Kind      NodeKind
	Feature   int
	Threshold float64
	Left      int
	Right     int
	Value     float64
}

// Tree is a regression tree over gradients and hessians, stored as a flat
// node slice with the root at index 0.
type Tree struct {
	Nodes []Node
}

// Predict walks the tree for one row of features.
func (t *Tree) Predict(row []float64) float64 {
	if len(t.Nodes) == 0 {
		return 0
	}

	idx := 0
	for {
		node := t.Nodes[idx]
		if node.Kind == LeafNode {
			return node.Value
		}
		if row[node.Feature] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
	}
}

// splitInfo describes the best split found for a node.
type splitInfo struct {
	feature   int
	threshold float64
	gain      float64
}

// treeBuilder grows one tree depth-wise with exact greedy splits on the
// gradient statistics.
type treeBuilder struct {
	x              [][]float64 // row-major features
	gradients      []float64
	hessians       []float64
	lambda         float64
	maxDepth       int
	minSamplesLeaf int
}

// build grows a tree over the given sample indices.
func (b *treeBuilder) build(samples []int) Tree {
	tree := Tree{}
	b.growNode(&tree, samples, 0)
	return tree
}

// growNode appends the subtree for samples and returns its node index.
func (b *treeBuilder) growNode(tree *Tree, samples []int, depth int) int {
	var sumGrad, sumHess float64
	for _, i := range samples {
		sumGrad += b.gradients[i]
		sumHess += b.hessians[i]
	}

	leaf := func() int {
		idx := len(tree.Nodes)
		tree.Nodes = append(tree.Nodes, Node{
			Kind:  LeafNode,
			Value: -sumGrad / (sumHess + b.lambda),
		})
		return idx
	}

	if depth >= b.maxDepth || len(samples) < 2*b.minSamplesLeaf {
		return leaf()
	}

	best := b.findBestSplit(samples, sumGrad, sumHess)
	if best.gain <= 1e-12 {
		return leaf()
	}

	left := make([]int, 0, len(samples))
	right := make([]int, 0, len(samples))
	for _, i := range samples {
		if b.x[i][best.feature] <= best.threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	// A degenerate partition can only happen with pathological thresholds.
	if len(left) == 0 || len(right) == 0 {
		return leaf()
	}

	idx := len(tree.Nodes)
	tree.Nodes = append(tree.Nodes, Node{
		Kind:      SplitNode,
		Feature:   best.feature,
		Threshold: best.threshold,
	})

	leftIdx := b.growNode(tree, left, depth+1)
	rightIdx := b.growNode(tree, right, depth+1)
	tree.Nodes[idx].Left = leftIdx
	tree.Nodes[idx].Right = rightIdx
	return idx
}

// findBestSplit scans every feature for the split with the highest gain.
// Features are scanned in parallel, each worker keeping a local best.
func (b *treeBuilder) findBestSplit(samples []int, sumGrad, sumHess float64) splitInfo {
	nFeatures := len(b.x[0])
	parentScore := sumGrad * sumGrad / (sumHess + b.lambda)

	var mu sync.Mutex
	best := splitInfo{feature: -1, gain: 0}

	parallel.ParallelizeWithThreshold(nFeatures, 4, func(start, end int) {
		local := splitInfo{feature: -1, gain: 0}
		ordered := make([]int, len(samples))

		for feature := start; feature < end; feature++ {
			copy(ordered, samples)
			sort.Slice(ordered, func(a, c int) bool {
				return b.x[ordered[a]][feature] < b.x[ordered[c]][feature]
			})

			var leftGrad, leftHess float64
			for pos := 0; pos < len(ordered)-1; pos++ {
				i := ordered[pos]
				leftGrad += b.gradients[i]
				leftHess += b.hessians[i]

				leftCount := pos + 1
				rightCount := len(ordered) - leftCount
				if leftCount < b.minSamplesLeaf || rightCount < b.minSamplesLeaf {
					continue
				}

				cur := b.x[i][feature]
				next := b.x[ordered[pos+1]][feature]
				if cur == next {
					continue
				}

				rightGrad := sumGrad - leftGrad
				rightHess := sumHess - leftHess
				gain := leftGrad*leftGrad/(leftHess+b.lambda) +
					rightGrad*rightGrad/(rightHess+b.lambda) -
					parentScore

				if gain > local.gain {
					local = splitInfo{
						feature:   feature,
						threshold: (cur + next) / 2,
						gain:      gain,
					}
				}
			}
		}

		if local.feature >= 0 {
			mu.Lock()
			// Tie-break on feature index so the result does not depend on
			// worker scheduling.
			if local.gain > best.gain ||
				(local.gain == best.gain && best.feature >= 0 && local.feature < best.feature) {
				best = local
			}
			mu.Unlock()
		}
	})

	if best.feature < 0 {
		return splitInfo{feature: -1, gain: math.Inf(-1)}
	}
	return best
}
