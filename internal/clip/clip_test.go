package clip

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubWriters(t *testing.T, native, osc error) {
	t.Helper()
	origNative, origOSC := nativeWriteAll, osc52WriteAll
	nativeWriteAll = func(string) error { return native }
	osc52WriteAll = func(string) error { return osc }
	t.Cleanup(func() {
		nativeWriteAll, osc52WriteAll = origNative, origOSC
	})
}

func TestWriteAll_PrefersNative(t *testing.T) {
	stubWriters(t, nil, errors.New("no terminal"))

	res, err := WriteAll("stack trace")
	require.NoError(t, err)
	assert.Equal(t, MethodNative, res.Method)
	assert.Empty(t, res.FilePath)
}

func TestWriteAll_FallsBackToOSC52(t *testing.T) {
	stubWriters(t, errors.New("no display"), nil)

	res, err := WriteAll("stack trace")
	require.NoError(t, err)
	assert.Equal(t, MethodOSC52, res.Method)
}

func TestWriteAll_FallsBackToTempFile(t *testing.T) {
	stubWriters(t, errors.New("no display"), errors.New("no terminal"))

	res, err := WriteAll("stack trace")
	require.NoError(t, err)
	assert.Equal(t, MethodFile, res.Method)
	require.NotEmpty(t, res.FilePath)
	t.Cleanup(func() { _ = os.Remove(res.FilePath) })

	content, err := os.ReadFile(res.FilePath)
	require.NoError(t, err)
	assert.Equal(t, "stack trace", string(content))
}

func TestWriteAllOSC52_RejectsOversizedPayload(t *testing.T) {
	big := make([]byte, osc52LimitBytes+1)
	for i := range big {
		big[i] = 'x'
	}

	err := writeAllOSC52(string(big))
	assert.Error(t, err)
}

func TestWriteAllOSC52_RejectsEmpty(t *testing.T) {
	assert.Error(t, writeAllOSC52(""))
}
