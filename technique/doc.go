// SPDX-License-Identifier: MIT

// Package technique parses and models traceability technique declarations.
//
// A technique is written as an s-expression:
//
//	(SYMBOL (PARAM ...) (COMPONENT ...))
//
// with five variants:
//
//	.  Direct            (. (VSM NT) (0 2))
//	x  Transitive        (x (SUM GLOBAL) ((. (VSM NT) (0 1)) (. (VSM NT) (1 2))))
//	~  SampledArtifacts  (~ (SUM GLOBAL 0.500000) (...direct links...))
//	$  SampledTraces     ($ (MAX INDEPENDENT 0.250000) (...direct links...))
//	o  Combined          (o (PCA) (...any techniques with equal endpoints...))
//
// Parse turns text into a typed Declaration tree; Declaration.Name renders the
// canonical form, so Parse(d.Name()).Name() == d.Name() for every valid d.
// Canonical names are cache keys.
package technique
