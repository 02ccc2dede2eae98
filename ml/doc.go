// Package ml encodes symptom answers into feature vectors, runs them through a
// trained classifier and decodes the class id into a disease name.
//
// Local classifiers are loaded from a JSON artifact:
//
//	{
//	  "model_type":    "decision_tree" | "random_forest",
//	  "feature_names": [31 symptom names in schema order],  // or "n_features": 31
//	  "n_classes":     41,
//	  "nodes":         [TreeNode, ...],                      // decision_tree
//	  "trees":         [{"nodes": [TreeNode, ...]}, ...]     // random_forest
//	}
//
// A TreeNode is either a split, which sends a vector to left_child when
// features[feature_idx] <= threshold and to right_child otherwise, or a leaf
// with is_leaf set. A leaf answers with class_label and an optional
// confidence, or with values, its class distribution indexed by class id.
// Children always have a larger index than their parent.
//
// FromSklearn builds an artifact from the tree_ arrays of a fitted
// DecisionTreeClassifier or RandomForestClassifier; cmd/export_model wraps it.
package ml
