// SPDX-License-Identifier: MIT

// Package lvltrace evaluates traceability techniques over multi-level
// software artifact datasets.
//
// What is lvltrace?
//
//	A dataset is an ordered list of artifact levels (requirements, design,
//	code, ...) plus some known trace matrices between level pairs. A
//	technique is a small s-expression describing how to estimate the
//	similarity between two levels:
//
//		(. (VSM NT) (0 2))                                        direct textual similarity
//		(x (MAX GLOBAL) ((. (VSM NT) (0 1)) (. (VSM NT) (1 2))))  chained through level 1
//		(~ (SUM INDEPENDENT 0.5) (...))                           chain over sampled artifacts
//		($ (MAX GLOBAL 0.25) (...))                               chain with sampled oracle links
//		(o (MAX) (TECHNIQUE TECHNIQUE ...))                       cell-wise combination
//
// Packages:
//
//	matrix/    dense float64 matrices, eigen solver, min-max scaling, binary codec
//	core/      thread-safe undirected graph used for the level graph
//	dfs/       depth-first traversal and simple-path enumeration
//	dataset/   levels, trace ids, trace matrix map, YAML loading
//	aggregate/ MAX/SUM/PCA chaining and combination of matrices
//	technique/ s-expression reader, typed declarations, canonical names
//	synth/     synthesis and refinement of missing trace matrices
//	vsm/       TF-IDF and LSI vectorizer
//	pipeline/  stage-based evaluator with caching and sampling
//	cache/     file and BadgerDB similarity stores
//	config/    viper configuration
//	logger/    zap logger construction and field names
//
// Command line:
//
//	go run ./cmd/lvltrace eval --dataset mock.yaml --technique "(. (VSM NT) (0 2))"
package lvltrace
