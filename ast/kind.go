package ast

import "fmt"

// Kind names the grammar production an internal node realizes.
type Kind uint8

const (
	Invalid Kind = iota

	Program
	Statements
	Statement
	CompoundStmt
	FunctionDef
	IfStmt
	ElifStmt
	ElseBlock
	ForStmt
	WhileStmt
	Block

	SimpleStmt
	IdentifierStmt
	IdentifierOpt
	ExpressionStmt
	ReturnStmt
	ImportStmt
	DottedAsNames
	DottedAsNamesRest
	DottedAsName
	DottedAsNameRest
	DottedName
	DottedNameRest
	GlobalStmt
	NameList
	NameListRest

	Expression
	Disjunction
	DisjunctionRest
	Conjunction
	ConjunctionRest
	Inversion
	Comparison
	ComparisonRest
	Sum
	SumRest
	Term
	TermRest
	Factor
	Power
	PowerRest
	Primary
	PrimaryRest
	Trailer
	Slices
	SlicesRest
	Slice
	Atom
	Tuple
	List
	Expressions
	ExpressionsRest
	Arguments
	ArgumentsRest
	Argument
)

var kindNames = map[Kind]string{
	Program:           "program",
	Statements:        "statements",
	Statement:         "statement",
	CompoundStmt:      "compound_stmt",
	FunctionDef:       "function_def",
	IfStmt:            "if_stmt",
	ElifStmt:          "elif_stmt",
	ElseBlock:         "else_block",
	ForStmt:           "for_stmt",
	WhileStmt:         "while_stmt",
	Block:             "block",
	SimpleStmt:        "simple_stmt",
	IdentifierStmt:    "identifier_stmt",
	IdentifierOpt:     "identifier_opt",
	ExpressionStmt:    "expression_stmt",
	ReturnStmt:        "return_stmt",
	ImportStmt:        "import_stmt",
	DottedAsNames:     "dotted_as_names",
	DottedAsNamesRest: "dotted_as_names_rest",
	DottedAsName:      "dotted_as_name",
	DottedAsNameRest:  "dotted_as_name_rest",
	DottedName:        "dotted_name",
	DottedNameRest:    "dotted_name_rest",
	GlobalStmt:        "global_stmt",
	NameList:          "name_list",
	NameListRest:      "name_list_rest",
	Expression:        "expression",
	Disjunction:       "disjunction",
	DisjunctionRest:   "disjunction_rest",
	Conjunction:       "conjunction",
	ConjunctionRest:   "conjunction_rest",
	Inversion:         "inversion",
	Comparison:        "comparison",
	ComparisonRest:    "comparison_rest",
	Sum:               "sum",
	SumRest:           "sum_rest",
	Term:              "term",
	TermRest:          "term_rest",
	Factor:            "factor",
	Power:             "power",
	PowerRest:         "power_rest",
	Primary:           "primary",
	PrimaryRest:       "primary_rest",
	Trailer:           "trailer",
	Slices:            "slices",
	SlicesRest:        "slices_rest",
	Slice:             "slice",
	Atom:              "atom",
	Tuple:             "tuple",
	List:              "list",
	Expressions:       "expressions",
	ExpressionsRest:   "expressions_rest",
	Arguments:         "arguments",
	ArgumentsRest:     "arguments_rest",
	Argument:          "argument",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", k)
}
