// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ast

import (
	"reflect"
	"strconv"

	"github.com/gogpu/tint/arena"
)

// ProgramID identifies the program that owns a node or symbol.
type ProgramID = arena.Generation

// NodeID is the index of a node in its program's node arena.
type NodeID uint32

// Position is a line/column location in source text.
type Position struct {
	Line   int
	Column int
}

// Source is the span of source text a node was parsed from.
type Source struct {
	File  string
	Begin Position
	End   Position
}

// String formats the source as file:line:column.
func (s Source) String() string {
	out := s.File
	if s.Begin.Line > 0 {
		if out != "" {
			out += ":"
		}
		out += strconv.Itoa(s.Begin.Line) + ":" + strconv.Itoa(s.Begin.Column)
	}
	return out
}

// NodeKind is the closed set of AST node kinds.
type NodeKind uint8

const (
	KindInvalid NodeKind = iota

	// Expressions.
	KindIdent
	KindBoolLiteral
	KindIntLiteral
	KindFloatLiteral
	KindUnaryExpr
	KindBinaryExpr
	KindCallExpr
	KindIndexExpr
	KindMemberExpr
	KindConstructExpr

	// Statements.
	KindBlockStmt
	KindVarStmt
	KindAssignStmt
	KindIfStmt
	KindWhileStmt
	KindForStmt
	KindLoopStmt
	KindBreakIfStmt
	KindBreakStmt
	KindContinueStmt
	KindReturnStmt
	KindDiscardStmt
	KindCallStmt
	KindSwitchStmt
	KindCaseClause

	// Declarations.
	KindFunction
	KindParam
	KindGlobalVar
)

var nodeKindNames = [...]string{
	KindInvalid:       "Invalid",
	KindIdent:         "Ident",
	KindBoolLiteral:   "BoolLiteral",
	KindIntLiteral:    "IntLiteral",
	KindFloatLiteral:  "FloatLiteral",
	KindUnaryExpr:     "UnaryExpr",
	KindBinaryExpr:    "BinaryExpr",
	KindCallExpr:      "CallExpr",
	KindIndexExpr:     "IndexExpr",
	KindMemberExpr:    "MemberExpr",
	KindConstructExpr: "ConstructExpr",
	KindBlockStmt:     "BlockStmt",
	KindVarStmt:       "VarStmt",
	KindAssignStmt:    "AssignStmt",
	KindIfStmt:        "IfStmt",
	KindWhileStmt:     "WhileStmt",
	KindForStmt:       "ForStmt",
	KindLoopStmt:      "LoopStmt",
	KindBreakIfStmt:   "BreakIfStmt",
	KindBreakStmt:     "BreakStmt",
	KindContinueStmt:  "ContinueStmt",
	KindReturnStmt:    "ReturnStmt",
	KindDiscardStmt:   "DiscardStmt",
	KindCallStmt:      "CallStmt",
	KindSwitchStmt:    "SwitchStmt",
	KindCaseClause:    "CaseClause",
	KindFunction:      "Function",
	KindParam:         "Param",
	KindGlobalVar:     "GlobalVar",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "NodeKind(" + strconv.Itoa(int(k)) + ")"
}

// Node is the base interface for all AST nodes.
//
// Every node is created by a Builder and tagged with the owning program and
// a node ID unique within that program. Nodes must not be mutated once the
// program is built, and must never be attached to a different program
// except by cloning them through a CloneContext.
type Node interface {
	Kind() NodeKind
	ProgramID() ProgramID
	ID() NodeID
	Source() Source

	// Handle returns the generation-tagged arena handle of the node.
	Handle() arena.Handle

	clone(ctx *CloneContext) Node
	children(fn func(Node))
	header() *nodeHeader
}

// Expr is the interface for expressions.
type Expr interface {
	Node
	exprNode()
}

// Stmt is the interface for statements.
type Stmt interface {
	Node
	stmtNode()
}

// Decl is the interface for module-scope declarations.
type Decl interface {
	Node
	declNode()
}

type nodeHeader struct {
	program ProgramID
	id      NodeID
	src     Source
}

func (h *nodeHeader) ProgramID() ProgramID { return h.program }
func (h *nodeHeader) ID() NodeID { return h.id }
func (h *nodeHeader) Source() Source { return h.src }
func (h *nodeHeader) header() *nodeHeader { return h }

func (h *nodeHeader) Handle() arena.Handle {
	return arena.Handle{Gen: h.program, Index: uint32(h.id)}
}

// As returns n as a T when n is of that concrete type.
func As[T Node](n Node) (T, bool) {
	t, ok := n.(T)
	return t, ok
}

// Is reports whether n is of the concrete type T.
func Is[T Node](n Node) bool {
	_, ok := n.(T)
	return ok
}

func isNil(n any) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
