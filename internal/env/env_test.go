package env

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	vars, err := Parse(strings.NewReader(`
# physics
RIGID2D_PHYSICS_GRAVITY=250
export RIGID2D_LOGGER_LEVEL="debug"
RIGID2D_SANDBOX_SCENE='scenes/demo.yaml'
`))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"RIGID2D_PHYSICS_GRAVITY": "250",
		"RIGID2D_LOGGER_LEVEL":    "debug",
		"RIGID2D_SANDBOX_SCENE":   "scenes/demo.yaml",
	}, vars)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("RIGID2D_TEST_A=1\nRIGID2D_TEST_B=2\nOTHER_TEST_C=3\n"), 0644))

	t.Setenv("RIGID2D_TEST_B", "from-env")
	// t.Setenv registers the restore; the variable itself must start unset.
	t.Setenv("RIGID2D_TEST_A", "")
	require.NoError(t, os.Unsetenv("RIGID2D_TEST_A"))

	set, err := Load(path, "RIGID2D_")
	require.NoError(t, err)
	assert.Equal(t, []string{"RIGID2D_TEST_A"}, set)
	assert.Equal(t, "1", os.Getenv("RIGID2D_TEST_A"))
	assert.Equal(t, "from-env", os.Getenv("RIGID2D_TEST_B"))
	_, ok := os.LookupEnv("OTHER_TEST_C")
	assert.False(t, ok)

	set, err = Load(filepath.Join(t.TempDir(), "missing"), "RIGID2D_")
	assert.NoError(t, err)
	assert.Empty(t, set)
}
