package token

import "github.com/atplang/atp/pkg/atperr"

// ExecutionContext is the per-run scope holding named instruction blocks and
// named variables. A fresh context is created for every top-level execution
// call and discarded at its end; it is never shared across calls or threads.
type ExecutionContext struct {
	blocks map[string][]Instruction
	vars   map[string]ParamValue
}

// NewExecutionContext returns an empty context.
func NewExecutionContext() *ExecutionContext {
	return &ExecutionContext{
		blocks: make(map[string][]Instruction),
		vars:   make(map[string]ParamValue),
	}
}

// DefineBlock appends an instruction to the named block, creating the block
// on first use. Repeated defines accumulate a multi-step subroutine in
// append order.
func (c *ExecutionContext) DefineBlock(name string, in Instruction) {
	c.blocks[name] = append(c.blocks[name], in)
}

// Block returns the named block's instruction list. Fails with
// BlockNotFound if the name was never defined earlier in the same run.
func (c *ExecutionContext) Block(name string) ([]Instruction, error) {
	tokens, ok := c.blocks[name]
	if !ok {
		return nil, atperr.New(atperr.CodeBlockNotFound, "context.Block", name)
	}
	return tokens, nil
}

// SetVar stores a typed value under name, replacing any previous value.
func (c *ExecutionContext) SetVar(name string, v ParamValue) {
	c.vars[name] = v
}

// Var looks up a variable. Fails with VariableNotFound if absent.
func (c *ExecutionContext) Var(name string) (ParamValue, error) {
	v, ok := c.vars[name]
	if !ok {
		return ParamValue{}, atperr.New(atperr.CodeVariableNotFound, "context.Var", name)
	}
	return v, nil
}
