package ast

// Node is the arena representation shared by every kind: a tag, the ordered
// child ids, and an index into the kind's payload arena for whatever the
// children cannot express. Nodes are immutable once constructed.
//
// What counts as a child per kind:
//
//	numeral / identifier / arith_identifier  none (leaves)
//	identifier_list                          the listed identifiers
//	array_select                             [array, index]
//	range_expression                         [hi, lo]
//	sign                                     [expr]
//	expression                               [left] or [left, right]
//	system_function                          [fun, args...]
//	input/output/wire declaration            the declared identifiers
//	module_instantiation                     [module name, instance name,
//	                                          port name/signal pairs..., params...]
//	parameter_declaration                    [identifier, expr]
//	assignment                               [signal, expr]
//	module                                   [port args..., body decls...]
//
// Declaration range bounds (hi/lo) are typed payload fields rather than
// children, mirroring the shape of the grammar rule that produces them.
type Node struct {
	Kind     Kind
	Children []NodeID
	Payload  PayloadID
}

// DeclData is the payload of input/output/wire declarations. Word-level
// declarations carry both bounds; bit-level declarations carry neither.
type DeclData struct {
	WordLevel bool
	Hi        NodeID
	Lo        NodeID
}

// InstData is the payload of a module instantiation. The port pair count
// locates the parameter ids inside the node's child list.
type InstData struct {
	PortCount uint32
}

// ModuleData is the payload of a module. ArgCount splits the child list
// into port arguments and body declarations.
type ModuleData struct {
	Name     string
	ArgCount uint32
}

// PortBinding connects a port name to the signal expression bound to it.
type PortBinding struct {
	Port   NodeID
	Signal NodeID
}
