package diagnostics

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	d := UnknownPattern("lava", []string{"rainbow"})
	assert.Equal(t, Warn, d.Severity)
	assert.Equal(t, "PATTERN.UNKNOWN", d.Code)
	assert.Equal(t, "[warning] PATTERN.UNKNOWN: Unknown pattern, rendering solid white", d.String())

	d = ConfigReloadFailed("studio.yaml", errors.New("line 3: bad indent"))
	assert.Equal(t, Err, d.Severity)
	assert.Equal(t, "line 3: bad indent", d.Detail)
	assert.Equal(t, "studio.yaml", d.Evidence["path"])

	assert.Equal(t, Info, ConfigReloaded("x.toml").Severity)
	assert.Equal(t, "nrz", SinkWriteFailed("nrz", errors.New("short write")).Evidence["sink"])
}

func TestJSONOmitsEmpty(t *testing.T) {
	b, err := json.Marshal(Diagnostic{Severity: Info, Code: "X", Summary: "y"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"severity":"info","code":"X","summary":"y"}`, string(b))
}
