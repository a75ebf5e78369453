package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxscope/pkg/session"
)

func TestVersionOverride(t *testing.T) {
	assert.Equal(t, "v1.2.3", Version("v1.2.3"))
	assert.NotEmpty(t, Version(""))
}

func TestRunScriptFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "boxscope.cli")
	defer teardown()
	//
	dir := t.TempDir()
	path := filepath.Join(dir, "grow.js")
	src := `root().children[2].remove(); console.log(root().children.length)`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	ctl := session.NewController(session.New())
	var out bytes.Buffer
	require.NoError(t, RunScriptFile(ctl, path, &out))
	assert.Equal(t, "2\n", out.String())
	assert.Equal(t, 5, ctl.Session.Tree().Len())

	require.NoError(t, os.WriteFile(path, []byte(`root().remove()`), 0o644))
	err := RunScriptFile(ctl, path, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "grow.js")

	assert.Error(t, RunScriptFile(ctl, filepath.Join(dir, "missing.js"), &out))
}
