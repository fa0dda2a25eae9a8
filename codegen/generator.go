// Package codegen implements CodeEmitter and CodeGenerator: the
// second half of the pipeline, turning a resolved AST into the
// target stack machine's textual assembly.
package codegen

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/optio-labs/aqua-compiler/ast"
	"github.com/optio-labs/aqua-compiler/symtab"
)

// DefaultMaxScratch is used when Options.MaxScratch is left zero: a
// generous scratch array size for any fixture this module's own
// tests exercise.
const DefaultMaxScratch = 256

// DefaultPragmaVersion is the version pragma emitted when
// Options.PragmaVersion is left zero.
const DefaultPragmaVersion = 3

// Options configures a single Generate call.
type Options struct {
	// MaxScratch is the target's scratch array size, pushed as the
	// initial stack pointer when the program declares functions.
	MaxScratch int
	// PragmaVersion is prefixed as "#pragma version <N>" by the
	// driver, not by Generate itself — kept here so callers can pass
	// one Options value through the whole pipeline.
	PragmaVersion int
}

func (o Options) withDefaults() Options {
	if o.MaxScratch == 0 {
		o.MaxScratch = DefaultMaxScratch
	}
	if o.PragmaVersion == 0 {
		o.PragmaVersion = DefaultPragmaVersion
	}
	return o
}

// Generator is a single compilation's code generation state: its
// emitter, its collected function list, the function currently being
// lowered (for return-statement's branch target), and its control-id
// counter. None of this is shared across calls to Generate.
type Generator struct {
	emitter     *CodeEmitter
	opts        Options
	functions   []*ast.Node
	curFunction *ast.Node
	nextID      int
	builtins    map[string]Builtin
}

// Generate lowers root (already annotated by resolve.Resolve) into
// target assembly and returns the emitter that produced it.
func Generate(root *ast.Node, opts Options) (*CodeEmitter, error) {
	g := &Generator{
		emitter:  NewCodeEmitter(),
		opts:     opts.withDefaults(),
		nextID:   1,
		builtins: Builtins,
	}

	g.collect(root)

	if len(g.functions) > 0 {
		if err := g.emitter.Add(fmt.Sprintf("int %d", g.opts.MaxScratch), 1, 0); err != nil {
			return nil, err
		}
		if err := g.emitter.Add("store 0", 0, 1); err != nil {
			return nil, err
		}
	}

	if err := g.genNode(root); err != nil {
		log.Error().Err(err).Msg("codegen: aborting on first error")
		return nil, err
	}

	if len(g.functions) > 0 {
		if err := g.emitter.Add("b program_end", 0, 0); err != nil {
			return nil, err
		}
		for _, fn := range g.functions {
			if err := g.genFunction(fn); err != nil {
				log.Error().Err(err).Msg("codegen: aborting on first error")
				return nil, err
			}
		}
		g.emitter.Label("program_end")
	}

	log.Debug().Int("functions", len(g.functions)).Msg("codegen: complete")
	return g.emitter, nil
}

// collect appends every function-declaration node to g.functions, in
// source order. Structured like resolve.resolveNode's switch: each
// kind descends into whichever of Children/named-attributes actually
// holds its substructure.
func (g *Generator) collect(n *ast.Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case ast.FunctionDeclaration:
		g.functions = append(g.functions, n)
		g.collect(n.Body)
	case ast.IfStatement:
		for _, c := range n.Children {
			g.collect(c)
		}
		g.collect(n.IfBlock)
		g.collect(n.ElseBlock)
	case ast.WhileStatement:
		for _, c := range n.Children {
			g.collect(c)
		}
		g.collect(n.Body)
	case ast.DeclareVariable, ast.DeclareConstant:
		g.collect(n.Initializer)
	case ast.FunctionCall:
		for _, a := range n.FunctionArgs {
			g.collect(a)
		}
	default:
		for _, c := range n.Children {
			g.collect(c)
		}
	}
}

func (g *Generator) nextControlID() int {
	id := g.nextID
	g.nextID++
	return id
}

// genNode is the visitor table of spec.md §4.4: a pre-hook, the
// default children walk, and a post-hook, collapsed into one switch
// per node kind since which of those three steps actually apply
// differs per kind.
func (g *Generator) genNode(n *ast.Node) error {
	switch n.Kind {

	case ast.Number:
		return g.emitter.Add(fmt.Sprintf("int %s", n.Value), 1, 0)

	case ast.StringLiteral:
		return g.emitter.Add(fmt.Sprintf("byte %q", n.Value), 1, 0)

	case ast.Operation:
		for _, c := range n.Children {
			if err := g.genNode(c); err != nil {
				return err
			}
		}
		pushed, popped := 1, 2
		if n.NumItemsAdded != nil {
			pushed = *n.NumItemsAdded
		}
		if n.NumItemsRemoved != nil {
			popped = *n.NumItemsRemoved
		}
		text := n.Opcode
		for _, a := range n.Args {
			text += " " + a
		}
		return g.emitter.Add(text, pushed, popped)

	case ast.ExprStatement:
		g.emitter.ResetStack()
		for _, c := range n.Children {
			if err := g.genNode(c); err != nil {
				return err
			}
		}
		return g.emitter.PopAll()

	case ast.ReturnStatement:
		g.emitter.ResetStack()
		for _, c := range n.Children {
			if err := g.genNode(c); err != nil {
				return err
			}
		}
		if g.curFunction != nil {
			return g.emitter.Add(fmt.Sprintf("b %s-cleanup", g.curFunction.Name), 0, 0)
		}
		return g.emitter.Add("return", 0, 0)

	case ast.DeclareVariable, ast.DeclareConstant:
		g.emitter.ResetStack()
		if n.Initializer != nil {
			if err := g.genNode(n.Initializer); err != nil {
				return err
			}
			if err := g.emitter.PopAll(); err != nil {
				return err
			}
		}
		return nil

	case ast.AccessVariable:
		return g.genAccessVariable(n)

	case ast.AssignmentStatement:
		for _, c := range n.Children {
			if err := g.genNode(c); err != nil {
				return err
			}
		}
		return g.genAssignment(n)

	case ast.IfStatement:
		for _, c := range n.Children {
			if err := g.genNode(c); err != nil {
				return err
			}
		}
		return g.genIf(n)

	case ast.WhileStatement:
		return g.genWhile(n)

	case ast.FunctionCall:
		return g.genFunctionCall(n)

	case ast.FunctionDeclaration:
		// Lowered separately, after the globals pass; ignored here.
		return nil

	case ast.Block, ast.Statement:
		for _, c := range n.Children {
			if err := g.genNode(c); err != nil {
				return err
			}
		}
		return nil

	default:
		return &UnknownNodeTypeError{Kind: n.Kind}
	}
}

func (g *Generator) genAccessVariable(n *ast.Node) error {
	sym := n.Symbol
	if sym == nil {
		return fmt.Errorf("codegen: access-variable %q has no resolved symbol", n.Name)
	}
	if sym.IsGlobal {
		return g.emitter.Add(fmt.Sprintf("load %d", sym.Position), 1, 0)
	}
	if err := g.emitter.Add("load 0", 1, 0); err != nil {
		return err
	}
	if err := g.emitter.Add(fmt.Sprintf("int %d", sym.Position), 1, 0); err != nil {
		return err
	}
	if err := g.emitter.Add("+", 1, 2); err != nil {
		return err
	}
	return g.emitter.Add("loads", 1, 1)
}

func (g *Generator) genAssignment(n *ast.Node) error {
	syms := n.Symbols
	if len(syms) == 0 {
		if n.Symbol == nil {
			return &NoAssignmentTargetError{}
		}
		syms = []*symtab.Symbol{n.Symbol}
	}
	// Reverse without mutating n.Symbols: spec.md notes the reference
	// behaviour reverses the slice in place, which is destructive on a
	// shared AST (see DESIGN.md).
	for i := len(syms) - 1; i >= 0; i-- {
		if err := g.genStore(syms[i]); err != nil {
			return err
		}
	}
	return nil
}

// genStore emits the instructions that pop the value currently on
// top of the compute stack into sym's slot, leaving a copy of that
// value behind so the assignment can serve as an expression.
func (g *Generator) genStore(sym *symtab.Symbol) error {
	if sym.IsGlobal {
		if err := g.emitter.Add("dup", 1, 0); err != nil {
			return err
		}
		return g.emitter.Add(fmt.Sprintf("store %d", sym.Position), 0, 1)
	}
	if err := g.emitter.Add(fmt.Sprintf("int %d", sym.Position), 1, 0); err != nil {
		return err
	}
	if err := g.emitter.Add("load 0", 1, 0); err != nil {
		return err
	}
	if err := g.emitter.Add("+", 1, 2); err != nil {
		return err
	}
	if err := g.emitter.Add("dig 1", 1, 0); err != nil {
		return err
	}
	return g.emitter.Add("stores", 0, 2)
}

func (g *Generator) genIf(n *ast.Node) error {
	k := g.nextControlID()
	n.ControlStatementID = k
	elseLabel := fmt.Sprintf("else_%d", k)
	endLabel := fmt.Sprintf("end_%d", k)

	if err := g.emitter.Add(fmt.Sprintf("bz %s", elseLabel), 0, 1); err != nil {
		return err
	}
	if n.IfBlock != nil {
		if err := g.genNode(n.IfBlock); err != nil {
			return err
		}
	}
	if err := g.emitter.Add(fmt.Sprintf("b %s", endLabel), 0, 0); err != nil {
		return err
	}
	g.emitter.Label(elseLabel)
	if n.ElseBlock != nil {
		if err := g.genNode(n.ElseBlock); err != nil {
			return err
		}
	}
	g.emitter.Label(endLabel)
	return nil
}

func (g *Generator) genWhile(n *ast.Node) error {
	k := g.nextControlID()
	n.ControlStatementID = k
	startLabel := fmt.Sprintf("loop_start_%d", k)
	endLabel := fmt.Sprintf("loop_end_%d", k)

	g.emitter.Label(startLabel)
	for _, c := range n.Children {
		if err := g.genNode(c); err != nil {
			return err
		}
	}
	if err := g.emitter.Add(fmt.Sprintf("bz %s", endLabel), 0, 1); err != nil {
		return err
	}
	if n.Body != nil {
		if err := g.genNode(n.Body); err != nil {
			return err
		}
	}
	if err := g.emitter.Add(fmt.Sprintf("b %s", startLabel), 0, 0); err != nil {
		return err
	}
	g.emitter.Label(endLabel)
	return nil
}

func (g *Generator) genFunctionCall(n *ast.Node) error {
	if builtin, ok := g.builtins[n.Name]; ok {
		return builtin(g, n)
	}
	for _, arg := range n.FunctionArgs {
		if err := g.genNode(arg); err != nil {
			return err
		}
	}
	return g.emitter.Add(fmt.Sprintf("callsub %s", n.Name), 1, len(n.FunctionArgs))
}

// genFunction lowers one collected function-declaration's prologue,
// body, and epilogue. Called only from the dedicated functions pass,
// after the unconditional branch to program_end.
func (g *Generator) genFunction(fn *ast.Node) error {
	prev := g.curFunction
	g.curFunction = fn
	defer func() { g.curFunction = prev }()

	scope := fn.Scope
	if scope == nil {
		return fmt.Errorf("codegen: function %q has no resolved scope", fn.Name)
	}
	n := scope.NumSymbols()

	g.emitter.Section(fn.Name)
	g.emitter.Label(fn.Name)

	// callsub leaves the caller's arguments on the compute stack, so
	// the function's logical depth starts at its parameter count; the
	// parameter stores below pop them.
	g.emitter.ResetStack()
	g.emitter.depth = len(fn.Params)

	if err := g.emitter.Add("load 0", 1, 0); err != nil { // A: saved for the epilogue's restore
		return err
	}
	if err := g.emitter.Add("load 0", 1, 0); err != nil { // B: operand for the subtraction below
		return err
	}
	if err := g.emitter.Add(fmt.Sprintf("int %d", n+1), 1, 0); err != nil {
		return err
	}
	if err := g.emitter.Add("-", 1, 2); err != nil {
		return err
	}
	if err := g.emitter.Add("store 0", 0, 1); err != nil {
		return err
	}
	if err := g.emitter.Add("load 0", 1, 0); err != nil { // C: the new frame's address
		return err
	}
	if err := g.emitter.Add("swap", 0, 0); err != nil {
		return err
	}
	if err := g.emitter.Add("stores", 0, 2); err != nil {
		return err
	}

	for i := len(fn.Params) - 1; i >= 0; i-- {
		param := fn.Params[i]
		sym, ok := scope.Get(param)
		if !ok {
			return fmt.Errorf("codegen: parameter %q of %q has no slot in scope (missing declare-variable in body)", param, fn.Name)
		}
		if err := g.emitter.Add(fmt.Sprintf("int %d", sym.Position), 1, 0, param); err != nil {
			return err
		}
		if err := g.emitter.Add("load 0", 1, 0); err != nil {
			return err
		}
		if err := g.emitter.Add("+", 1, 2); err != nil {
			return err
		}
		// The address computation above always leaves the argument's
		// address on top with its value one below; swap so stores
		// sees (value, address) in the same order every other store
		// sequence in this generator relies on.
		if err := g.emitter.Add("swap", 0, 0); err != nil {
			return err
		}
		if err := g.emitter.Add("stores", 0, 2); err != nil {
			return err
		}
	}

	if fn.Body != nil {
		if err := g.genNode(fn.Body); err != nil {
			return err
		}
	}

	g.emitter.Label(fn.Name + "-cleanup")
	if err := g.emitter.Add("load 0", 1, 0); err != nil {
		return err
	}
	if err := g.emitter.Add("loads", 1, 1); err != nil {
		return err
	}
	if err := g.emitter.Add("store 0", 0, 1); err != nil {
		return err
	}
	return g.emitter.Add("retsub", 0, 0)
}
