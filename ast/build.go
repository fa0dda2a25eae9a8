package ast

// Constructors below build nodes directly; they stand in for the
// external parser when this module's own tests need a tree to feed to
// resolve.Resolve / codegen.Generate.

func NewNumber(value string) *Node {
	return &Node{Kind: Number, Value: value}
}

func NewStringLiteral(value string) *Node {
	return &Node{Kind: StringLiteral, Value: value}
}

func NewAccessVariable(name string) *Node {
	return &Node{Kind: AccessVariable, Name: name}
}

func NewDeclareVariable(name string, initializer *Node) *Node {
	return &Node{Kind: DeclareVariable, Name: name, Initializer: initializer}
}

func NewDeclareConstant(name string, initializer *Node) *Node {
	return &Node{Kind: DeclareConstant, Name: name, Initializer: initializer}
}

func NewOperation(opcode string, operands ...*Node) *Node {
	return &Node{Kind: Operation, Opcode: opcode, Children: operands}
}

func NewBlock(stmts ...*Node) *Node {
	return &Node{Kind: Block, Children: stmts}
}

func NewExprStatement(expr *Node) *Node {
	return &Node{Kind: ExprStatement, Children: []*Node{expr}}
}

func NewReturn(expr *Node) *Node {
	n := &Node{Kind: ReturnStatement}
	if expr != nil {
		n.Children = []*Node{expr}
	}
	return n
}

func NewIf(cond, ifBlock, elseBlock *Node) *Node {
	return &Node{Kind: IfStatement, Children: []*Node{cond}, IfBlock: ifBlock, ElseBlock: elseBlock}
}

func NewWhile(cond, body *Node) *Node {
	return &Node{Kind: WhileStatement, Children: []*Node{cond}, Body: body}
}

func NewAssignment(assignee *Node, value *Node) *Node {
	return &Node{Kind: AssignmentStatement, Assignee: assignee, Children: []*Node{value}}
}

func NewFunctionDeclaration(name string, params []string, body *Node) *Node {
	return &Node{Kind: FunctionDeclaration, Name: name, Params: params, Body: body}
}

func NewFunctionCall(name string, args ...*Node) *Node {
	return &Node{Kind: FunctionCall, Name: name, FunctionArgs: args}
}
