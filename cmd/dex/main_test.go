package main

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/dex/internal/domain"
)

type result struct {
	code   int
	stdout string
	stderr string
}

// execute runs the CLI with an isolated config directory. Tests using it
// must not run in parallel because they set environment variables.
func execute(t *testing.T, args ...string) result {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("DEX_LOGGING_LEVEL", "ERROR")

	a := newApp()
	a.stdoutIsTerminal = func() bool { return false }

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), a, args, &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func TestList_firstPage(t *testing.T) {
	res := execute(t, "--fixture", "list")
	require.Equal(t, ExitSuccess, res.code, res.stderr)

	out := lines(res.stdout)
	require.Len(t, out, 20)
	assert.Equal(t, "#001  pokemon-1", out[0])
	assert.Equal(t, "#020  pokemon-20", out[19])
	assert.Contains(t, res.stderr, "showing 20 of 30")
}

func TestList_pages(t *testing.T) {
	res := execute(t, "--fixture", "list", "--pages", "2")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Len(t, lines(res.stdout), 30)
	assert.NotContains(t, res.stderr, "showing")

	res = execute(t, "--fixture", "list", "--all")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Len(t, lines(res.stdout), 30)

	res = execute(t, "--fixture", "list", "--pages", "0")
	assert.Equal(t, ExitGeneralError, res.code)
}

func TestList_search(t *testing.T) {
	res := execute(t, "--fixture", "list", "--search", "POKEMON-25")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, []string{"#025  pokemon-25"}, lines(res.stdout))

	res = execute(t, "--fixture", "list", "-s", "pokemon-99")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, `No entries match "pokemon-99".`)
	assert.Contains(t, res.stdout, "Did you mean: pokemon-9")
}

func TestList_canceled(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("DEX_LOGGING_LEVEL", "ERROR")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, args := range [][]string{{"--fixture", "list"}, {"--fixture", "show", "1"}} {
		a := newApp()
		a.stdoutIsTerminal = func() bool { return false }

		var stdout, stderr bytes.Buffer
		code := run(ctx, a, args, &stdout, &stderr)
		assert.Equal(t, ExitGeneralError, code, args)
		assert.Empty(t, stdout.String(), args)
		assert.Equal(t, "Error: context canceled\n", stderr.String(), args)
	}
}

func TestDefault_notATerminalLists(t *testing.T) {
	res := execute(t, "--fixture")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Len(t, lines(res.stdout), 20)
}

func TestShow(t *testing.T) {
	res := execute(t, "--fixture", "show", "#025")
	require.Equal(t, ExitSuccess, res.code, res.stderr)

	for _, want := range []string{
		"Pokemon-25 #025",
		"grass",
		"0.7 m",
		"overgrow",
		"total",
		"viridian-forest",
		"walk lv 3-5, 25%",
	} {
		assert.Contains(t, res.stdout, want)
	}
}

func TestShow_invalidID(t *testing.T) {
	for _, arg := range []string{"abc", "0", "-3"} {
		res := execute(t, "--fixture", "show", "--", arg)
		assert.Equal(t, ExitGeneralError, res.code, arg)
		assert.Contains(t, res.stderr, "invalid id", arg)
	}
}

func TestSprite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seven.png")
	res := execute(t, "--fixture", "sprite", "7", "-o", path)
	require.Equal(t, ExitSuccess, res.code, res.stderr)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	_, format, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Contains(t, res.stderr, "wrote "+path)
}

func TestSprite_unknownFixture(t *testing.T) {
	res := execute(t, "--fixture", "sprite", "999", "--print")
	assert.Equal(t, ExitNetworkError, res.code)
	assert.Empty(t, res.stdout)
}

func TestSprite_print(t *testing.T) {
	res := execute(t, "--fixture", "sprite", "7", "--print", "--width", "8")
	require.Equal(t, ExitSuccess, res.code, res.stderr)

	out := lines(res.stdout)
	assert.Len(t, out, 4)
	assert.Equal(t, 8, strings.Count(out[0], "▀"))
	assert.Empty(t, res.stderr)
}

func TestPrefetch_fixture(t *testing.T) {
	res := execute(t, "--fixture", "prefetch", "--workers", "4")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, "prefetched 30 of 30 sprites (0 failed)\n", res.stdout)

	res = execute(t, "--fixture", "prefetch", "--workers", "0")
	assert.Equal(t, ExitGeneralError, res.code)
}

func TestVersion(t *testing.T) {
	res := execute(t, "version")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.True(t, strings.HasPrefix(res.stdout, "dex dev"))
}

func TestInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  timeout: -1s\n"), 0600))

	res := execute(t, "--config", path, "list")
	assert.Equal(t, ExitGeneralError, res.code)
	assert.Contains(t, res.stderr, "failed to load config")
}

func spritePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// liveServer serves a two-entry catalog and a sprite for entry 1 only
func liveServer(t *testing.T) string {
	t.Helper()
	sprite := spritePNG(t)

	mux := http.NewServeMux()
	var srv *httptest.Server
	mux.HandleFunc("/api/v2/pokemon", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "151", r.URL.Query().Get("limit"))
		fmt.Fprintf(w, `{"results": [
			{"name": "ivysaur", "url": "%[1]s/api/v2/pokemon/2/"},
			{"name": "bulbasaur", "url": "%[1]s/api/v2/pokemon/1/"}
		]}`, srv.URL)
	})
	mux.HandleFunc("/sprites/1.png", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(sprite)
	})
	mux.HandleFunc("/broken/api/v2/pokemon", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"results": [{"name": "bulbasaur"}]}`)
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := fmt.Sprintf("api:\n  base_url: %[1]s/api/v2\n  sprite_base_url: %[1]s/sprites\n  timeout: 5s\n", srv.URL)
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0600))
	return path
}

func TestLive_listAndPrefetch(t *testing.T) {
	config := liveServer(t)

	res := execute(t, "--config", config, "list")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, []string{"#001  bulbasaur", "#002  ivysaur"}, lines(res.stdout))

	res = execute(t, "--config", config, "prefetch")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, "prefetched 1 of 2 sprites (1 failed)\n", res.stdout)

	res = execute(t, "--config", config, "sprite", "2", "--print")
	assert.Equal(t, ExitNetworkError, res.code)
	assert.Contains(t, res.stderr, "Network error.")
}

func TestLive_decodingFailure(t *testing.T) {
	config := liveServer(t)
	data, err := os.ReadFile(config)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(config, bytes.Replace(data, []byte("/api/v2"), []byte("/broken/api/v2"), 1), 0600))

	res := execute(t, "--config", config, "list")
	assert.Equal(t, ExitDecodingError, res.code)
	assert.Contains(t, res.stderr, "Decoding error.")
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"invalid url", fmt.Errorf("%w: bad", domain.ErrInvalidURL), ExitInvalidURL},
		{"network", fmt.Errorf("%w: down", domain.ErrNetwork), ExitNetworkError},
		{"decoding", fmt.Errorf("%w: junk", domain.ErrDecoding), ExitDecodingError},
		{"other", fmt.Errorf("boom"), ExitGeneralError},
		{"canceled", context.Canceled, ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestErrorLine(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Error: boom", errorLine(fmt.Errorf("boom")))
	assert.Equal(t, "Error: context canceled", errorLine(context.Canceled))
	assert.Equal(t, "Network error. (network error: down)",
		errorLine(fmt.Errorf("%w: down", domain.ErrNetwork)))
}
