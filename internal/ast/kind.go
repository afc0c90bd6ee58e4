package ast

// Kind enumerates the closed set of syntax node variants.
type Kind uint8

const (
	KindNumeral Kind = iota
	KindIdentifier
	KindArithmeticIdentifier
	KindIdentifierList
	KindArraySelect
	KindRangeExpression
	KindSign
	KindExpression
	KindSystemFunction
	KindInputDeclaration
	KindOutputDeclaration
	KindWireDeclaration
	KindModuleInstantiation
	KindParameterDeclaration
	KindAssignment
	KindModule
)

var kindNames = [...]string{
	KindNumeral:              "numeral",
	KindIdentifier:           "identifier",
	KindArithmeticIdentifier: "arith_identifier",
	KindIdentifierList:       "identifier_list",
	KindArraySelect:          "array_select",
	KindRangeExpression:      "range_expression",
	KindSign:                 "sign",
	KindExpression:           "expression",
	KindSystemFunction:       "system_function",
	KindInputDeclaration:     "input_declaration",
	KindOutputDeclaration:    "output_declaration",
	KindWireDeclaration:      "wire_declaration",
	KindModuleInstantiation:  "module_instantiation",
	KindParameterDeclaration: "parameter_declaration",
	KindAssignment:           "assignment",
	KindModule:               "module",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(?)"
}

// ExprOp enumerates expression operators.
type ExprOp uint8

const (
	OpAdd ExprOp = iota
	OpMul
	OpNot
	OpAnd
	OpOr
	OpXor
)

// Unary reports whether the operator takes exactly one operand.
func (op ExprOp) Unary() bool { return op == OpNot }

func (op ExprOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpMul:
		return "*"
	case OpNot:
		return "~"
	case OpAnd:
		return "&"
	case OpOr:
		return "|"
	case OpXor:
		return "^"
	}
	return "op(?)"
}

// SignKind enumerates sign markers. Minus is currently the only one.
type SignKind uint8

const (
	SignMinus SignKind = iota
)

func (s SignKind) String() string {
	if s == SignMinus {
		return "-"
	}
	return "sign(?)"
}
