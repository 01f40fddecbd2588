// SPDX-License-Identifier: MIT

// Package dataset is the artifact and trace store consumed by the evaluator.
//
// A Dataset is an ordered list of artifact levels (requirements, design,
// code, ...) plus a MatrixMap of known trace matrices between pairs of levels.
// The MatrixMap keeps exactly one orientation per unordered pair: a matrix for
// "j-i" is served as the transpose of the stored "i-j" matrix.
//
// Ground-truth (oracle) matrices are snapshotted at construction, so they
// survive the in-place refinement performed by trace synthesis.
//
// Datasets are loaded from a YAML structure file (see Parse) whose trace
// section lists links as [sourceID, targetID] pairs.
package dataset
