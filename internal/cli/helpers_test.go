package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureIO(t *testing.T, input string) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	SetIO(strings.NewReader(input), out, errOut)
	t.Cleanup(func() {
		SetIO(strings.NewReader(""), new(bytes.Buffer), new(bytes.Buffer))
		SetGlobalFlags(false, false, false)
	})
	return out, errOut
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		defaultYes bool
		want       bool
	}{
		{"yes", "y\n", false, true},
		{"full yes", "YES\n", false, true},
		{"no", "n\n", true, false},
		{"empty takes default no", "\n", false, false},
		{"empty takes default yes", "\n", true, true},
		{"eof takes default", "", true, true},
		{"answer without newline", "y", false, true},
		{"anything else is no", "maybe\n", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _ := captureIO(t, tt.input)
			got, err := Confirm("Delete credential?", tt.defaultYes)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Delete credential?")
		})
	}
}

func TestConfirmSkippedWithYes(t *testing.T) {
	out, _ := captureIO(t, "n\n")
	SetGlobalFlags(false, false, true)

	got, err := Confirm("Delete credential?", false)
	require.NoError(t, err)
	assert.True(t, got)
	assert.Empty(t, out.String(), "no prompt is printed")
}

func TestPrintHelpers(t *testing.T) {
	out, errOut := captureIO(t, "")

	PrintSuccess("Deleted %s", "github")
	PrintInfo("Nothing to do")
	PrintWarning("careful")
	PrintError("failed: %d", 500)

	assert.Equal(t, "✓ Deleted github\nℹ Nothing to do\n", out.String())
	assert.Equal(t, "⚠ careful\n✗ failed: 500\n", errOut.String())
}

func TestPrintHelpersNoColor(t *testing.T) {
	out, errOut := captureIO(t, "")
	SetGlobalFlags(false, true, false)

	PrintSuccess("done")
	PrintError("broken")

	assert.Equal(t, "OK: done\n", out.String())
	assert.Equal(t, "ERROR: broken\n", errOut.String())
	assert.True(t, NoColor())
}

func TestQuietSuppressesSuccessAndInfo(t *testing.T) {
	out, errOut := captureIO(t, "")
	SetGlobalFlags(true, true, false)

	PrintSuccess("done")
	PrintInfo("info")
	PrintWarning("still shown")

	assert.Empty(t, out.String())
	assert.Equal(t, "WARNING: still shown\n", errOut.String())
}
