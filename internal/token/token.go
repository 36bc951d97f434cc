// Package token defines the lexical tokens of SDL, the scenario description
// language: its closed token-kind enumeration, the Token value itself, and
// the fixed keyword table.
package token

import "github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/diag"

// Kind enumerates every lexical token kind SDL can produce.
type Kind int

const (
	ILLEGAL Kind = iota
	EOF

	// Literals
	NUMBER     // 42, 3.14
	PERCENTAGE // 12.5%
	CURRENCY   // 5M EUR, 100 USD
	STRING     // "..."
	BOOLEAN    // true, false
	DATE       // 2025-06-01, 2025-06
	DURATION   // 5y, 20s
	IDENT      // identifier

	// Punctuation
	LBRACE    // {
	RBRACE    // }
	LPAREN    // (
	RPAREN    // )
	LBRACKET  // [
	RBRACKET  // ]
	COMMA     // ,
	COLON     // :
	DOT       // .
	ARROW     // ->
	ASSIGN    // =
	PLUSMINUS // ± or +/-

	// Arithmetic operators
	PLUS    // +
	MINUS   // -
	STAR    // *
	SLASH   // /
	CARET   // ^
	PERCENT // %

	// Comparison operators
	GT  // >
	LT  // <
	GTE // >=
	LTE // <=
	EQ  // ==
	NEQ // !=

	keywordBeg

	// Structural keywords
	SCENARIO
	VARIABLE
	ASSUMPTION
	PARAMETER
	BRANCH
	IMPACT
	SIMULATE
	WATCH
	CALIBRATE
	BIND
	IMPORT
	AS
	WHEN
	ON

	// Logical keywords
	AND
	OR
	NOT

	// Metadata field keywords
	TIMEFRAME
	RESOLUTION
	CONFIDENCE
	AUTHOR
	VERSION
	DESCRIPTION
	TAGS
	SUBTITLE
	CATEGORY
	ICON
	COLOR
	DIFFICULTY

	// Property keywords (some re-usable as identifiers, see IdentLexeme)
	VALUE
	SOURCE
	FIELD
	OUTPUT
	METHOD
	SEED
	LABEL
	STEP
	FORMAT
	CONTROL
	UNIT
	DEPENDS_ON
	GROWTH
	UNCERTAINTY
	INTERPOLATION
	BY
	PROBABILITY
	FORK
	DERIVES_FROM
	FORMULA
	RUNS
	PERCENTILES
	CONVERGENCE
	TIMEOUT
	TARGET
	RULES
	SEVERITY
	CONDITION
	ACTIONS
	RECALCULATE
	NOTIFY
	SUGGEST
	RANGE
	MIN
	MAX

	// Distribution family keywords
	NORMAL
	UNIFORM
	BETA
	TRIANGULAR
	LOGNORMAL
	CUSTOM

	// Growth model family keywords
	LINEAR
	LOGISTIC
	EXPONENTIAL
	SIGMOID
	POLYNOMIAL

	// Resolution keywords
	YEARLY
	MONTHLY
	WEEKLY
	DAILY

	// Interpolation method keywords
	LINEAR_INTERP
	SPLINE
	STEP_INTERP

	// Simulation method keywords
	MONTE_CARLO
	LATIN_HYPERCUBE
	SOBOL

	keywordEnd
)

var names = map[Kind]string{
	ILLEGAL: "ILLEGAL", EOF: "EOF",
	NUMBER: "NUMBER", PERCENTAGE: "PERCENTAGE", CURRENCY: "CURRENCY",
	STRING: "STRING", BOOLEAN: "BOOLEAN", DATE: "DATE", DURATION: "DURATION",
	IDENT: "IDENT",
	LBRACE: "{", RBRACE: "}", LPAREN: "(", RPAREN: ")",
	LBRACKET: "[", RBRACKET: "]", COMMA: ",", COLON: ":", DOT: ".",
	ARROW: "->", ASSIGN: "=", PLUSMINUS: "±",
	PLUS: "+", MINUS: "-", STAR: "*", SLASH: "/", CARET: "^", PERCENT: "%",
	GT: ">", LT: "<", GTE: ">=", LTE: "<=", EQ: "==", NEQ: "!=",
	SCENARIO: "scenario", VARIABLE: "variable", ASSUMPTION: "assumption",
	PARAMETER: "parameter", BRANCH: "branch", IMPACT: "impact",
	SIMULATE: "simulate", WATCH: "watch", CALIBRATE: "calibrate",
	BIND: "bind", IMPORT: "import", AS: "as", WHEN: "when", ON: "on",
	AND: "and", OR: "or", NOT: "not",
	TIMEFRAME: "timeframe", RESOLUTION: "resolution", CONFIDENCE: "confidence",
	AUTHOR: "author", VERSION: "version", DESCRIPTION: "description",
	TAGS: "tags", SUBTITLE: "subtitle", CATEGORY: "category", ICON: "icon",
	COLOR: "color", DIFFICULTY: "difficulty",
	VALUE: "value", SOURCE: "source", FIELD: "field", OUTPUT: "output",
	METHOD: "method", SEED: "seed", LABEL: "label", STEP: "step",
	FORMAT: "format", CONTROL: "control", UNIT: "unit",
	DEPENDS_ON: "depends_on", GROWTH: "growth", UNCERTAINTY: "uncertainty",
	INTERPOLATION: "interpolation", BY: "by", PROBABILITY: "probability",
	FORK: "fork", DERIVES_FROM: "derives_from", FORMULA: "formula",
	RUNS: "runs", PERCENTILES: "percentiles", CONVERGENCE: "convergence",
	TIMEOUT: "timeout", TARGET: "target", RULES: "rules",
	SEVERITY: "severity", CONDITION: "condition", ACTIONS: "actions",
	RECALCULATE: "recalculate", NOTIFY: "notify", SUGGEST: "suggest",
	RANGE: "range", MIN: "min", MAX: "max",
	NORMAL: "normal", UNIFORM: "uniform", BETA: "beta",
	TRIANGULAR: "triangular", LOGNORMAL: "lognormal", CUSTOM: "custom",
	LINEAR: "linear", LOGISTIC: "logistic", EXPONENTIAL: "exponential",
	SIGMOID: "sigmoid", POLYNOMIAL: "polynomial",
	YEARLY: "yearly", MONTHLY: "monthly", WEEKLY: "weekly", DAILY: "daily",
	LINEAR_INTERP: "linear", SPLINE: "spline", STEP_INTERP: "step",
	MONTE_CARLO: "monte_carlo", LATIN_HYPERCUBE: "latin_hypercube", SOBOL: "sobol",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return "UNKNOWN"
}

// Token is a single lexical token: its kind, the exact source lexeme, and
// the span it occupies.
type Token struct {
	Kind   Kind
	Lexeme string
	Span   diag.Span
}

// keywords maps the exact (case-sensitive) spelling of a reserved word to
// its Kind. Populated once at init from the fixed ~90-entry table implied
// by spec.md §3.1/§4.2. Some entries double as parser-accepted free
// identifiers (see internal/parser) — their lexeme is preserved on the
// Token regardless of Kind for that purpose.
var keywords map[string]Kind

func init() {
	keywords = make(map[string]Kind, int(keywordEnd-keywordBeg))
	for k := keywordBeg + 1; k < keywordEnd; k++ {
		if name, ok := names[k]; ok {
			// Avoid keyword collisions for aliased kinds (LINEAR_INTERP vs LINEAR,
			// STEP_INTERP vs STEP): keep the first registrant, which by
			// declaration order is the semantically primary one.
			if _, exists := keywords[name]; !exists {
				keywords[name] = k
			}
		}
	}
	// Disambiguate the interpolation-method spellings that collide with
	// other keyword spellings (they share lexemes with growth-model /
	// property keywords). The lexer emits the first-registered kind for
	// these spellings (LINEAR, STEP, SPLINE), and the parser accepts those
	// kinds inside an interpolation-method position, so the *_INTERP
	// aliases are never returned by Lookup.
}

// Lookup returns the Kind for word if it is a reserved keyword, plus
// whether it was found. Matching is case-sensitive per spec.md §4.1.
func Lookup(word string) (Kind, bool) {
	k, ok := keywords[word]
	return k, ok
}

// IdentLexeme reports whether a Kind's lexeme may also be accepted as a
// free identifier by the parser (spec.md §4.2 "Identifier flexibility").
func IdentLexeme(k Kind) bool {
	switch k {
	case VALUE, SOURCE, FIELD, OUTPUT, METHOD, SEED, LABEL, STEP, FORMAT,
		CONTROL, ICON, COLOR, CATEGORY, SUBTITLE, DIFFICULTY:
		return true
	default:
		return false
	}
}
