package assets_test

import (
	"bytes"
	"context"
	"io/fs"
	"log"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/nightshift"
	"github.com/xy-planning-network/nightshift/assets"
	"github.com/xy-planning-network/nightshift/logger"
)

func TestLibraryChunk(t *testing.T) {
	user := fstest.MapFS{
		"js/about.4f2a9c.js":    {Data: []byte("about")},
		"js/objects-af8s7f9.js": {Data: []byte("objects")},
		"js/triggers.js":        {Data: []byte("triggers")},
	}

	for _, tc := range []struct {
		name     string
		view     string
		chunk    string
		content  string
		expected error
	}{
		{"Webpack-Hash", "about", "js/about.4f2a9c.js", "about", nil},
		{"Vite-Hash", "objects", "js/objects-af8s7f9.js", "objects", nil},
		{"Plain", "triggers", "js/triggers.js", "triggers", nil},
		{"Fallback-Build", "scanners", "js/scanners.js", "", nil},
		{"Missing", "settings", "", "", assets.ErrNoChunk},
		{"Traversal", "../about", "", "", assets.ErrNoChunk},
		{"Zero-Value", "", "", "", assets.ErrNoChunk},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			lib := assets.New(user, nil)

			// Act
			m, err := lib.Chunk(tc.view)

			// Assert
			if tc.expected != nil {
				require.ErrorIs(t, err, tc.expected)
				require.ErrorIs(t, err, nightshift.ErrNotExist)
				return
			}

			require.Nil(t, err)
			require.Equal(t, tc.view, m.Name)
			require.Equal(t, tc.chunk, m.Chunk)
			require.Len(t, m.Hash, 64)
			require.Contains(t, m.ContentType, "javascript")
			if tc.content != "" {
				require.Equal(t, tc.content, string(m.Content))
			}
		})
	}
}

func TestLibraryLoader(t *testing.T) {
	// Arrange
	lib := assets.New(nil, nil)
	ctx, cancel := context.WithCancel(context.Background())

	// Act
	m, err := lib.Loader("about")(ctx)

	// Assert
	require.Nil(t, err)
	require.Equal(t, "js/about.js", m.Chunk)

	// Arrange
	cancel()

	// Act
	_, err = lib.Loader("about")(ctx)

	// Assert
	require.ErrorIs(t, err, context.Canceled)
}

func TestLibraryLoaderLogs(t *testing.T) {
	// Arrange
	t.Setenv("SENTRY_DSN", "")
	b := new(bytes.Buffer)
	l := logger.New(logger.WithLogger(log.New(b, "", 0)), logger.WithLevel(logger.LogLevelDebug))
	lib := assets.New(nil, l)

	// Act
	_, err := lib.Loader("about")(context.Background())

	// Assert
	require.Nil(t, err)
	require.Contains(t, b.String(), "'fetched view module about'")
	require.Contains(t, b.String(), `"nav":{"load_mode":"lazy","view":"about"}`)
	require.Contains(t, b.String(), `"chunk":"js/about.js"`)
}

func TestLibraryFS(t *testing.T) {
	// Arrange
	user := fstest.MapFS{"index.html": {Data: []byte("client build")}}
	lib := assets.New(user, nil)

	// Act
	b, err := fs.ReadFile(lib.FS(), "index.html")

	// Assert
	require.Nil(t, err)
	require.Equal(t, "client build", string(b))

	// Act
	b, err = fs.ReadFile(lib.FS(), "js/objects.js")

	// Assert
	require.Nil(t, err)
	require.Contains(t, string(b), "fallback objects view")

	// Act
	_, err = fs.ReadFile(lib.FS(), "js/settings.js")

	// Assert
	require.ErrorIs(t, err, fs.ErrNotExist)
}
