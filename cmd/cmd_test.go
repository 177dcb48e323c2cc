package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sahib/stencil"
)

func TestParseCuts(t *testing.T) {
	cuts, err := parseCuts([]string{"0:10", "1024:512"})
	require.Nil(t, err)
	require.Equal(t, []stencil.Cut{{Off: 0, Size: 10}, {Off: 1024, Size: 512}}, cuts)

	for _, bad := range []string{"10", "a:b", "1:", ":1", "1:2:3"} {
		_, err := parseCuts([]string{bad})
		require.NotNil(t, err, "input %q", bad)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg, err := openConfig("")
	require.Nil(t, err)
	require.Equal(t, int64(64*1024), cfg.Int("io.buffer_size"))
	require.Equal(t, "guess", cfg.String("compress.algo"))
	require.True(t, cfg.Bool("log.color"))
}
