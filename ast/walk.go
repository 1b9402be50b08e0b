// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ast

// Inspect traverses the tree rooted at n in depth-first pre-order, calling
// fn for each node. When fn returns false the children of that node are
// skipped.
func Inspect(n Node, fn func(Node) bool) {
	if isNil(n) || !fn(n) {
		return
	}
	n.children(func(c Node) {
		Inspect(c, fn)
	})
}

// InspectProgram calls Inspect on every declaration of p.
func InspectProgram(p *Program, fn func(Node) bool) {
	for _, d := range p.Decls() {
		Inspect(d, fn)
	}
}

// Contains reports whether any node reachable from the declarations of p
// has one of the given kinds.
func Contains(p *Program, kinds ...NodeKind) bool {
	found := false
	InspectProgram(p, func(n Node) bool {
		if found {
			return false
		}
		for _, k := range kinds {
			if n.Kind() == k {
				found = true
				return false
			}
		}
		return true
	})
	return found
}
