// SPDX-License-Identifier: MIT

// Package pipeline evaluates technique declarations against a dataset.
//
// Each declaration kind maps to an ordered list of stages sharing one State:
//
//	direct:            direct
//	transitive:        links → scale → chain
//	sampled-artifacts: links → sample-artifacts → scale → chain
//	sampled-traces:    links → sample-traces → scale → chain
//	combined:          combine
//
// Every Evaluate call, including the recursive ones for chain links and
// combined parts, goes through the Evaluator's cache, so deterministic
// sub-techniques are computed once per dataset. Matrices returned by the store
// or the cache are never modified in place.
package pipeline
