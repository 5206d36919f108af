package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmitterGroupsRawCode(t *testing.T) {
	e := NewEmitter(4)
	e.EmitPython("a = 1")
	e.EmitPython("b = 2")
	e.EmitStatement("pause")
	e.EmitPython("c = 3")

	assert.Equal(t, []string{
		"python:",
		"    a = 1",
		"    b = 2",
		"pause",
		"python:",
		"    c = 3",
	}, e.Lines())
}

func TestEmitterReopensBlockOnIndentChange(t *testing.T) {
	e := NewEmitter(4)
	e.EmitPython("a = 1")
	e.IncreaseTemporary()
	e.EmitPython("b = 2")

	assert.Equal(t, []string{
		"python:",
		"    a = 1",
		"    python:",
		"        b = 2",
	}, e.Lines())
}

func TestEmitterFillsEmptyBlocks(t *testing.T) {
	e := NewEmitter(4)
	e.EmitStatement("if x:")
	e.EmitStatement("pause")
	e.EmitStatement("while y:")

	assert.Equal(t, []string{
		"if x:",
		"    pass",
		"pause",
		"while y:",
		"    pass",
	}, e.Lines())
}

func TestEmitterCommentIsNotABody(t *testing.T) {
	e := NewEmitter(4)
	e.EmitStatement("if x:")
	e.IncreaseTemporary()
	e.AppendComment("note")
	e.ResetTemporary()

	assert.Equal(t, []string{
		"if x:",
		"    # note",
		"    pass",
	}, e.Lines())
}

func TestEmitterCommentInsidePythonBlock(t *testing.T) {
	e := NewEmitter(2)
	e.EmitPython("a = 1")
	e.AppendComment("note")
	e.EmitPython("b = 2")

	assert.Equal(t, []string{
		"python:",
		"  a = 1",
		"  # note",
		"  b = 2",
	}, e.Lines())
}

func TestEmitterLabels(t *testing.T) {
	e := NewEmitter(4)
	assert.True(t, e.EmitLabel("l_a", false))
	assert.False(t, e.EmitLabel("l_a", false))
	assert.True(t, e.EmitLabel("tilde_0", true))
	assert.True(t, e.EmitLabel("tilde_0", true))

	e.IncreasePermanent()
	e.IncreaseTemporary()
	e.EmitLabel("l_inner", false)

	lines := e.Lines()
	assert.Equal(t, "    label l_inner:", lines[len(lines)-1])
}

func TestEmitterIndentCounters(t *testing.T) {
	e := NewEmitter(0)
	assert.False(t, e.DecreasePermanent())

	e.IncreasePermanent()
	e.IncreaseTemporary()
	e.IncreaseTemporary()
	assert.Equal(t, 3, e.Indent())

	e.DecreaseTemporary()
	assert.Equal(t, 2, e.Indent())
	e.ResetTemporary()
	e.DecreaseTemporary()
	assert.Equal(t, 1, e.Indent())
	assert.True(t, e.DecreasePermanent())
	assert.Equal(t, 0, e.Indent())
}

func TestEmitterString(t *testing.T) {
	e := NewEmitter(4)
	assert.Equal(t, "", e.String())

	e.EmitStatement("return")
	assert.Equal(t, "return\n", e.String())
}
