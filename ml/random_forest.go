package ml

import (
	"context"
	"fmt"
)

// RandomForest averages the leaf class distributions of its trees and picks
// the most probable class, the way RandomForestClassifier.predict does. When
// any reached leaf has no distribution it falls back to a majority vote over
// leaf labels. Ties go to the lowest class id in both modes.
type RandomForest struct {
	trees []*DecisionTree
}

func NewRandomForest(trees []*DecisionTree) (*RandomForest, error) {
	if len(trees) == 0 {
		return nil, fmt.Errorf("%w: forest has no trees", ErrInvalidArtifact)
	}
	return &RandomForest{trees: trees}, nil
}

func (rf *RandomForest) Predict(_ context.Context, features []float64) (int, float64, error) {
	if rf == nil || len(rf.trees) == 0 {
		return 0, 0, ErrModelNotLoaded
	}
	if err := checkWidth(features); err != nil {
		return 0, 0, err
	}

	leaves := make([]TreeNode, len(rf.trees))
	soft := true
	for i, tree := range rf.trees {
		leaves[i] = tree.walk(features)
		if len(leaves[i].Values) == 0 {
			soft = false
		}
	}
	if soft {
		return averageVote(leaves)
	}
	return majorityVote(leaves)
}

func averageVote(leaves []TreeNode) (int, float64, error) {
	var proba []float64
	for _, leaf := range leaves {
		for class, p := range normalize(leaf.Values) {
			for len(proba) <= class {
				proba = append(proba, 0)
			}
			proba[class] += p
		}
	}
	for class := range proba {
		proba[class] /= float64(len(leaves))
	}
	return argmax(proba)
}

func majorityVote(leaves []TreeNode) (int, float64, error) {
	votes := make(map[int]int)
	for _, leaf := range leaves {
		votes[leaf.ClassLabel]++
	}
	bestLabel, bestCount := 0, -1
	for label, count := range votes {
		if count > bestCount || (count == bestCount && label < bestLabel) {
			bestLabel, bestCount = label, count
		}
	}
	return bestLabel, float64(bestCount) / float64(len(leaves)), nil
}

func randomForestFromArtifact(artifact Artifact) (*RandomForest, error) {
	if err := artifact.check(); err != nil {
		return nil, err
	}
	trees := make([]*DecisionTree, 0, len(artifact.Trees))
	for i, raw := range artifact.Trees {
		tree, err := NewDecisionTree(raw.Nodes)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		trees = append(trees, tree)
	}
	return NewRandomForest(trees)
}
