package toolchain

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_ProbeOnly(t *testing.T) {
	present := allPresent()
	delete(present, "pnpm")
	f := &fakeRunner{present: present}

	dir := t.TempDir()
	compiler := filepath.Join(dir, "Ahk2Exe.exe")
	require.NoError(t, os.WriteFile(compiler, []byte{0}, 0o755))

	first := status(f, []string{dir})
	second := status(f, []string{dir})

	assert.Empty(t, f.runs, "status must not install anything")
	assert.Empty(t, f.starts)
	assert.Equal(t, first, second, "probing is idempotent")

	byTool := map[string]ToolStatus{}
	for _, st := range first {
		byTool[st.Tool] = st
	}
	assert.True(t, byTool["choco"].Present)
	assert.False(t, byTool["pnpm"].Present)
	assert.True(t, byTool["Ahk2Exe"].Present)
	assert.Equal(t, compiler, byTool["Ahk2Exe"].Path)
}

func TestStatus_CompilerAbsent(t *testing.T) {
	f := &fakeRunner{present: allPresent()}

	for _, st := range status(f, []string{filepath.Join(t.TempDir(), "missing")}) {
		if st.Tool == "Ahk2Exe" {
			assert.False(t, st.Present)
			assert.Empty(t, st.Path)
		}
	}
}
