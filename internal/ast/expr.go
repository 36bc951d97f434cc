package ast

import "github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/diag"

// ExprKind tags the variant held by an Expr.
type ExprKind int

const (
	ExprNumber ExprKind = iota
	ExprPercentage
	ExprCurrency
	ExprString
	ExprBoolean
	ExprDate
	ExprDuration
	ExprIdent
	ExprQualifiedIdent
	ExprBinary
	ExprUnary
	ExprCall
	ExprDistribution
	ExprModel
	ExprRecord
	ExprArray
)

// BinaryOp enumerates the arithmetic/comparison/logical binary operators.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpPow
	OpMod
	OpGt
	OpLt
	OpGte
	OpLte
	OpEq
	OpNeq
	OpAnd
	OpOr
)

// UnaryOp enumerates the unary operators.
type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpNot
)

// DistFamily enumerates the distribution families SDL recognizes.
type DistFamily int

const (
	DistNormal DistFamily = iota
	DistUniform
	DistBeta
	DistTriangular
	DistLognormal
	DistCustom
)

// ModelFamily enumerates the growth-model families SDL recognizes.
type ModelFamily int

const (
	ModelLinear ModelFamily = iota
	ModelLogistic
	ModelExponential
	ModelSigmoid
	ModelPolynomial
)

// NamedArg is a single `name=expr` argument to a distribution or model
// constructor.
type NamedArg struct {
	Name  string
	Value Expr
}

// RecordField is a single `field: expr` entry in a record expression.
type RecordField struct {
	Name  string
	Value Expr
}

// Expr is a tagged union over every expression kind in spec.md §3.2.
type Expr struct {
	Kind ExprKind
	Span diag.Span

	// Literals
	NumberValue  float64
	StringValue  string
	BooleanValue bool
	DateValue    Date
	DurationValue Duration

	// Identifier / QualifiedIdentifier
	Name     string       // base identifier
	Segments []string     // additional dotted segments for QualifiedIdentifier

	// Binary / Unary
	BinOp BinaryOp
	UnOp  UnaryOp
	Left  *Expr
	Right *Expr // binary right operand, or unary operand

	// Call
	Callee string
	Args   []Expr

	// Distribution
	DistFamily    DistFamily
	DistCustomTag string // verbatim family name when DistFamily == DistCustom
	PosArgs       []Expr
	NamedArgs     []NamedArg

	// Model
	ModelFamily ModelFamily
	ModelArgs   []NamedArg

	// Record
	Fields []RecordField

	// Array
	Elements []Expr
}
