package ast

// NodeID identifies one node inside a Graph. The id doubles as the node's
// index in the graph's arena: ids are handed out in creation order starting
// at 0 and stay valid for the lifetime of the graph. A node may only refer
// to children with smaller ids, so the structure is acyclic by construction
// (a DAG rather than a tree: interning lets several parents share a child).
type NodeID uint32

// PayloadID indexes a per-kind payload arena. Only meaningful together with
// the node's kind.
type PayloadID uint32
