package ml

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// DecisionTree is a flattened binary tree. Children always follow their parent
// in nodes, so walking from index 0 terminates.
type DecisionTree struct {
	nodes []TreeNode
}

type TreeNode struct {
	FeatureIdx int     `json:"feature_idx"`
	Threshold  float64 `json:"threshold"`
	LeftChild  int     `json:"left_child"`
	RightChild int     `json:"right_child"`
	ClassLabel int     `json:"class_label"`
	IsLeaf     bool    `json:"is_leaf"`
	Confidence float64 `json:"confidence,omitempty"`
	// Values is the leaf's class distribution indexed by class id (sample
	// counts or fractions). When set it overrides ClassLabel and Confidence.
	Values []float64 `json:"values,omitempty"`
}

// NewDecisionTree validates nodes and returns a ready tree.
func NewDecisionTree(nodes []TreeNode) (*DecisionTree, error) {
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: tree has no nodes", ErrInvalidArtifact)
	}
	for idx, node := range nodes {
		if node.IsLeaf {
			if len(node.Values) > 0 {
				if err := checkDistribution(node.Values); err != nil {
					return nil, fmt.Errorf("%w: leaf %d %v", ErrInvalidArtifact, idx, err)
				}
			}
			continue
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= FeatureCount {
			return nil, fmt.Errorf("%w: node %d feature index %d out of range", ErrInvalidArtifact, idx, node.FeatureIdx)
		}
		for _, child := range []int{node.LeftChild, node.RightChild} {
			if child <= idx || child >= len(nodes) {
				return nil, fmt.Errorf("%w: node %d child %d out of order", ErrInvalidArtifact, idx, child)
			}
		}
	}
	return &DecisionTree{nodes: nodes}, nil
}

func (dt *DecisionTree) Predict(_ context.Context, features []float64) (int, float64, error) {
	if dt == nil || len(dt.nodes) == 0 {
		return 0, 0, ErrModelNotLoaded
	}
	if err := checkWidth(features); err != nil {
		return 0, 0, err
	}
	leaf := dt.walk(features)
	if len(leaf.Values) > 0 {
		return argmax(normalize(leaf.Values))
	}
	return leaf.ClassLabel, leafConfidence(leaf), nil
}

func (dt *DecisionTree) walk(features []float64) TreeNode {
	idx := 0
	for {
		node := dt.nodes[idx]
		if node.IsLeaf {
			return node
		}
		if features[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
	}
}

func leafConfidence(node TreeNode) float64 {
	if node.Confidence <= 0 || node.Confidence > 1 {
		return 1
	}
	return node.Confidence
}

func checkDistribution(values []float64) error {
	var total float64
	for class, v := range values {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("class %d has weight %v", class, v)
		}
		total += v
	}
	if total <= 0 {
		return errors.New("class distribution sums to zero")
	}
	return nil
}

// normalize returns values scaled to sum to 1, as predict_proba reports a leaf.
func normalize(values []float64) []float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v / total
	}
	return out
}

// argmax picks the most probable class; ties go to the lowest class id.
func argmax(proba []float64) (int, float64, error) {
	best := 0
	for class, p := range proba {
		if p > proba[best] {
			best = class
		}
	}
	return best, proba[best], nil
}

func decisionTreeFromArtifact(artifact Artifact) (*DecisionTree, error) {
	if err := artifact.check(); err != nil {
		return nil, err
	}
	return NewDecisionTree(artifact.Nodes)
}
