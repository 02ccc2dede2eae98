package ml

import "fmt"

// sklearnLeaf marks a leaf in children_left and children_right.
const sklearnLeaf = -1

// SklearnTree holds the arrays of a fitted estimator's tree_ attribute. Value
// is tree_.value[:, 0, :], one class distribution per node in classes_ order.
type SklearnTree struct {
	ChildrenLeft  []int       `json:"children_left"`
	ChildrenRight []int       `json:"children_right"`
	Feature       []int       `json:"feature"`
	Threshold     []float64   `json:"threshold"`
	Value         [][]float64 `json:"value"`
}

// SklearnDump is a fitted classifier exported from Python:
//
//	trees = [model] if model_type == "decision_tree" else model.estimators_
//	dump = {
//	    "model_type": model_type,
//	    "feature_names": list(model.feature_names_in_),
//	    "classes": model.classes_.tolist(),
//	    "trees": [{
//	        "children_left": t.tree_.children_left.tolist(),
//	        "children_right": t.tree_.children_right.tolist(),
//	        "feature": t.tree_.feature.tolist(),
//	        "threshold": t.tree_.threshold.tolist(),
//	        "value": t.tree_.value[:, 0, :].tolist(),
//	    } for t in trees],
//	}
type SklearnDump struct {
	ModelType    string        `json:"model_type"`
	FeatureNames []string      `json:"feature_names,omitempty"`
	Classes      []int         `json:"classes,omitempty"`
	Trees        []SklearnTree `json:"trees"`
}

// FromSklearn converts a dump into a loadable artifact. Classes maps the
// column of each value row to a class id; without it columns are class ids.
func FromSklearn(dump SklearnDump) (Artifact, error) {
	artifact := Artifact{
		ModelType:    dump.ModelType,
		FeatureNames: dump.FeatureNames,
		NClasses:     LabelCount,
	}
	if len(dump.FeatureNames) == 0 {
		artifact.NFeatures = FeatureCount
	}
	if err := artifact.check(); err != nil {
		return Artifact{}, err
	}
	for _, class := range dump.Classes {
		if class < 0 {
			return Artifact{}, fmt.Errorf("%w: negative class id %d", ErrInvalidArtifact, class)
		}
	}

	switch dump.ModelType {
	case TypeDecisionTree:
		if len(dump.Trees) != 1 {
			return Artifact{}, fmt.Errorf("%w: decision_tree needs exactly one tree, got %d", ErrInvalidArtifact, len(dump.Trees))
		}
		nodes, err := dump.Trees[0].nodes(dump.Classes)
		if err != nil {
			return Artifact{}, err
		}
		artifact.Nodes = nodes
	case TypeRandomForest:
		if len(dump.Trees) == 0 {
			return Artifact{}, fmt.Errorf("%w: forest has no trees", ErrInvalidArtifact)
		}
		for i, tree := range dump.Trees {
			nodes, err := tree.nodes(dump.Classes)
			if err != nil {
				return Artifact{}, fmt.Errorf("tree %d: %w", i, err)
			}
			artifact.Trees = append(artifact.Trees, ArtifactTree{Nodes: nodes})
		}
	default:
		return Artifact{}, fmt.Errorf("%w: %q", ErrUnsupportedModel, dump.ModelType)
	}
	return artifact, nil
}

func (t SklearnTree) nodes(classes []int) ([]TreeNode, error) {
	n := len(t.ChildrenLeft)
	if n == 0 {
		return nil, fmt.Errorf("%w: tree has no nodes", ErrInvalidArtifact)
	}
	if len(t.ChildrenRight) != n || len(t.Feature) != n || len(t.Threshold) != n || len(t.Value) != n {
		return nil, fmt.Errorf("%w: tree_ arrays differ in length", ErrInvalidArtifact)
	}

	nodes := make([]TreeNode, n)
	for i := 0; i < n; i++ {
		if t.ChildrenLeft[i] == sklearnLeaf {
			values, err := classDistribution(t.Value[i], classes)
			if err != nil {
				return nil, fmt.Errorf("node %d: %w", i, err)
			}
			label, confidence, _ := argmax(normalize(values))
			nodes[i] = TreeNode{
				FeatureIdx: -1,
				LeftChild:  -1,
				RightChild: -1,
				ClassLabel: label,
				IsLeaf:     true,
				Confidence: confidence,
				Values:     values,
			}
			continue
		}
		nodes[i] = TreeNode{
			FeatureIdx: t.Feature[i],
			Threshold:  t.Threshold[i],
			LeftChild:  t.ChildrenLeft[i],
			RightChild: t.ChildrenRight[i],
		}
	}
	if _, err := NewDecisionTree(nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

func classDistribution(row []float64, classes []int) ([]float64, error) {
	if err := checkDistribution(row); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}
	if len(classes) == 0 {
		return append([]float64(nil), row...), nil
	}
	if len(classes) != len(row) {
		return nil, fmt.Errorf("%w: %d classes but %d values", ErrInvalidArtifact, len(classes), len(row))
	}
	size := 0
	for _, class := range classes {
		if class+1 > size {
			size = class + 1
		}
	}
	values := make([]float64, size)
	for col, class := range classes {
		values[class] = row[col]
	}
	return values, nil
}
