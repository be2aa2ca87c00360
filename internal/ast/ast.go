// Package ast defines the Syntax tree produced by the parser (spec.md §3.2):
// a discriminated sum of literal, identifier/access, arithmetic, declaration,
// control, loop, callable and grouping nodes. Every named declaration and
// every node with a distinguishable source origin carries a Position.
package ast

import "leoscript/internal/token"

// Node is implemented by every Syntax tree node.
type Node interface {
	Pos() token.Position
}

// Expr is a Node that produces a value when evaluated.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a Node executed for effect.
type Stmt interface {
	Node
	stmtNode()
}

// Decl is a top-level or nested declaration (function, class, module, enum,
// import, variable/attribute/constant).
type Decl interface {
	Stmt
	declNode()
}

type Base struct {
	Position token.Position
}

func (b Base) Pos() token.Position { return b.Position }

// At builds a Base from a source position, for embedding in node literals:
// ast.ImportDecl{Base: ast.At(pos), Path: path}.
func At(pos token.Position) Base { return Base{Position: pos} }

// ---- Literals ----

type Null struct{ Base }

type IntegerLit struct {
	Base
	Value int64
}

type FloatLit struct {
	Base
	Value float64
}

type BoolLit struct {
	Base
	Value bool
}

type StringLit struct {
	Base
	Value string
}

type ArrayLit struct {
	Base
	Elements []Expr
}

type DictEntry struct {
	Key   string
	Value Expr
}

type DictLit struct {
	Base
	Entries []DictEntry
}

func (Null) exprNode()       {}
func (IntegerLit) exprNode() {}
func (FloatLit) exprNode()   {}
func (BoolLit) exprNode()    {}
func (StringLit) exprNode()  {}
func (ArrayLit) exprNode()   {}
func (DictLit) exprNode()    {}

// ---- Identifier & access ----

type Identifier struct {
	Base
	Name string
}

type MemberAccess struct {
	Base
	Target Expr
	Name   string
}

type StaticAccess struct {
	Base
	Target Expr
	Name   string
}

type ArrayAccess struct {
	Base
	Target Expr
	Index  Expr
}

func (Identifier) exprNode()   {}
func (MemberAccess) exprNode() {}
func (StaticAccess) exprNode() {}
func (ArrayAccess) exprNode()  {}

// ---- Arithmetic / logic ----

type BinOp string

const (
	OpAdd BinOp = "+"
	OpSub BinOp = "-"
	OpMul BinOp = "*"
	OpDiv BinOp = "/"
	OpPow BinOp = "^"
	OpEq  BinOp = "=="
	OpNe  BinOp = "!="
	OpLt  BinOp = "<"
	OpLe  BinOp = "<="
	OpGt  BinOp = ">"
	OpGe  BinOp = ">="
	OpAnd BinOp = "and"
	OpOr  BinOp = "or"
)

type Binary struct {
	Base
	Op    BinOp
	Left  Expr
	Right Expr
}

type Not struct {
	Base
	Operand Expr
}

func (Binary) exprNode() {}
func (Not) exprNode()    {}

// ---- Callable ----

type Call struct {
	Base
	Target Expr
	Args   []Expr
}

type NewObject struct {
	Base
	Target Expr
	Args   []Expr
}

type AnonFunction struct {
	Base
	Name   string // synthetic name assigned by the parser
	Params []string
	Body   []Stmt
}

func (Call) exprNode()         {}
func (NewObject) exprNode()    {}
func (AnonFunction) exprNode() {}
