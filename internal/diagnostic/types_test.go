package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics_Collect(t *testing.T) {
	t.Parallel()

	var d Diagnostics

	assert.True(t, d.IsValid())
	require.NoError(t, d.Error())

	d.AddWarning("unused_pattern", "pattern is never used", "pattern p", "")
	d.AddInfo("entry", "entry point is lin", "", "")
	assert.True(t, d.IsValid(), "warnings do not invalidate")

	d.AddError("unknown_kind", "unknown kernel kind \"linaer\"", "kernel lin", "kind")
	d.AddErrorWithSuggestion("unknown_pattern", "unknown pattern \"A\"", "kernel lin", "pattern", "a")

	assert.True(t, d.HasErrors())
	assert.Equal(t, []string{"unknown_kind", "unknown_pattern"}, d.Codes())
	assert.Len(t, d.All(), 4)
	assert.Equal(t, DiagnosticError, d.All()[0].Severity)

	err := d.Error()
	require.Error(t, err)
	assert.Equal(t,
		`[kernel lin] kind: [unknown_kind] unknown kernel kind "linaer"; `+
			`[kernel lin] pattern: [unknown_pattern] unknown pattern "A" (did you mean "a"?)`,
		err.Error())
}

func TestDiagnostics_Merge(t *testing.T) {
	t.Parallel()

	var a, b Diagnostics

	a.AddError("x", "first", "", "")
	b.AddError("y", "second", "", "")
	b.AddWarning("z", "third", "", "")

	a.Merge(b)

	assert.Equal(t, []string{"x", "y"}, a.Codes())
	assert.Len(t, a.Warnings, 1)
}

func TestSeverity_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "info", DiagnosticInfo.String())
	assert.Equal(t, "warning", DiagnosticWarning.String())
	assert.Equal(t, "error", DiagnosticError.String())
	assert.Equal(t, "unknown", DiagnosticSeverity(7).String())
}

func TestDiagnostic_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "plain", Diagnostic{Message: "plain"}.String())
	assert.Equal(t, "[c] coded", Diagnostic{Code: "c", Message: "coded"}.String())
	assert.Equal(t, "f: m", Diagnostic{Field: "f", Message: "m"}.String())
}
