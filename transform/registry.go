// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package transform

import (
	"fmt"
	"maps"
	"slices"
)

var astTransforms = map[string]ASTTransform{
	WhileToLoop{}.Name(): WhileToLoop{},
	ForToLoop{}.Name():   ForToLoop{},
	Renamer{}.Name():     Renamer{},
}

var irTransforms = map[string]IRTransform{
	HandleMatrixArithmetic{}.Name(): HandleMatrixArithmetic{},
	SwizzleToAccess{}.Name():        SwizzleToAccess{},
}

// LookupAST returns the AST transform called name.
func LookupAST(name string) (ASTTransform, error) {
	if t, ok := astTransforms[name]; ok {
		return t, nil
	}
	if _, ok := irTransforms[name]; ok {
		return nil, fmt.Errorf("transform %q runs on IR, not AST", name)
	}
	return nil, fmt.Errorf("unknown transform %q", name)
}

// LookupIR returns the IR transform called name.
func LookupIR(name string) (IRTransform, error) {
	if t, ok := irTransforms[name]; ok {
		return t, nil
	}
	if _, ok := astTransforms[name]; ok {
		return nil, fmt.Errorf("transform %q runs on AST, not IR", name)
	}
	return nil, fmt.Errorf("unknown transform %q", name)
}

// Names returns the names of all transforms, sorted.
func Names() []string {
	names := slices.Collect(maps.Keys(astTransforms))
	names = slices.AppendSeq(names, maps.Keys(irTransforms))
	slices.Sort(names)
	return names
}
