package boost

import "testing"

func TestTreeBuilderFindsStepSplit(t *testing.T) {
	// Gradients form a step at x = 3.5; a single split captures it.
	x := [][]float64{{1}, {2}, {3}, {4}, {5}, {6}}
	gradients := []float64{-1, -1, -1, 1, 1, 1}
	hessians := []float64{1, 1, 1, 1, 1, 1}

	builder := &treeBuilder{
		x:              x,
		gradients:      gradients,
		hessians:       hessians,
		lambda:         0,
		maxDepth:       1,
		minSamplesLeaf: 1,
	}

	tree := builder.build([]int{0, 1, 2, 3, 4, 5})

	root := tree.Nodes[0]
	if root.Kind != SplitNode {
		t.Fatal("root should be a split node")
	}
	if root.Threshold != 3.5 {
		t.Errorf("threshold = %v, want 3.5", root.Threshold)
	}

	// Leaf weights are -G/H per side.
	if got := tree.Predict([]float64{0}); got != 1 {
		t.Errorf("left leaf = %v, want 1", got)
	}
	if got := tree.Predict([]float64{10}); got != -1 {
		t.Errorf("right leaf = %v, want -1", got)
	}
}

func TestTreeBuilderRespectsMinSamplesLeaf(t *testing.T) {
	x := [][]float64{{1}, {2}, {3}, {4}}
	gradients := []float64{-1, 1, -1, 1}
	hessians := []float64{1, 1, 1, 1}

	builder := &treeBuilder{
		x:              x,
		gradients:      gradients,
		hessians:       hessians,
		maxDepth:       3,
		minSamplesLeaf: 3,
	}

	// 4 rows cannot give two leaves of 3; the tree must stay a single leaf.
	tree := builder.build([]int{0, 1, 2, 3})
	if len(tree.Nodes) != 1 || tree.Nodes[0].Kind != LeafNode {
		t.Errorf("tree = %+v, want single leaf", tree.Nodes)
	}
}
