package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/fsdefs/config"
	"github.com/teranos/fsdefs/errors"
)

const protocolYAML = `module: Game.Protocol
types:
  - name: FrontendMessage
    variants:
      - name: Idle
      - name: Render
        fields: [{type: String}]
`

const pointsYAML = `module: Geometry
types:
  - name: Point
    fields:
      - {name: x, type: i32}
      - {name: y, type: i32}
`

const brokenYAML = `types:
  - name: Broken
    fields:
      - {name: a, type: i32, attrs: ['fs(fs_type = "123-not-a-type")']}
      - {name: b, type: i32, attrs: ['fs(bogus)']}
`

func writeSchema(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func baseOptions(schemas ...string) runOptions {
	c := config.Default()
	return runOptions{
		Schemas:           schemas,
		Languages:         []string{"fsharp"},
		Namespace:         c.Output.Namespace,
		VersionConstraint: c.Schema.VersionConstraint,
		Stdout:            &bytes.Buffer{},
		Stderr:            &bytes.Buffer{},
	}
}

func dirNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func TestParseLanguages(t *testing.T) {
	langs, err := parseLanguages([]string{"all"})
	require.NoError(t, err)
	assert.Equal(t, []string{"fsharp", "typescript", "jsonschema"}, langs)

	langs, err = parseLanguages([]string{"ts,fs", "typescript"})
	require.NoError(t, err)
	assert.Equal(t, []string{"typescript", "fsharp"}, langs)

	_, err = parseLanguages([]string{"cobol"})
	require.Error(t, err)
	assert.NotEmpty(t, errors.GetAllHints(err))

	_, err = parseLanguages(nil)
	assert.Error(t, err)
}

func TestRunGenerateWritesEveryLanguage(t *testing.T) {
	src := t.TempDir()
	out := filepath.Join(t.TempDir(), "generated")

	opts := baseOptions(writeSchema(t, src, "protocol.yaml", protocolYAML), writeSchema(t, src, "points.yaml", pointsYAML))
	opts.Languages = allLanguages
	opts.OutputDir = out

	files, err := runGenerate(opts)
	require.NoError(t, err)
	assert.Len(t, files, 7)

	assert.Equal(t, []string{
		"GameProtocol.fs",
		"Geometry.fs",
		"game_protocol.schema.json",
		"game_protocol.ts",
		"geometry.schema.json",
		"geometry.ts",
		"index.ts",
	}, dirNames(t, out))

	fs, err := os.ReadFile(filepath.Join(out, "GameProtocol.fs"))
	require.NoError(t, err)
	assert.Contains(t, string(fs), "namespace Game.Protocol")
	assert.Contains(t, string(fs), "    | Render of string")

	index, err := os.ReadFile(filepath.Join(out, "index.ts"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "} from './geometry';")
}

func TestRunGenerateToStdout(t *testing.T) {
	opts := baseOptions(writeSchema(t, t.TempDir(), "points.yaml", pointsYAML))
	var out bytes.Buffer
	opts.Stdout = &out

	_, err := runGenerate(opts)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "type Point =")
}

func TestRunGenerateDefaultsNamespace(t *testing.T) {
	opts := baseOptions(writeSchema(t, t.TempDir(), "broken.yaml", "types:\n  - name: Plain\n"))
	opts.OutputDir = t.TempDir()

	files, err := runGenerate(opts)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "Generated.fs", files[0].Name)
	assert.Contains(t, files[0].Content, "namespace Generated")
}

func TestDiagnosticsAbortWithoutKeepGoing(t *testing.T) {
	out := t.TempDir()
	var stderr bytes.Buffer
	opts := baseOptions(writeSchema(t, t.TempDir(), "broken.yaml", brokenYAML))
	opts.OutputDir = out
	opts.Stderr = &stderr

	_, err := runGenerate(opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 diagnostics")
	assert.Contains(t, stderr.String(), "123-not-a-type")
	assert.Contains(t, stderr.String(), "unsupported option: bogus")
	assert.Empty(t, dirNames(t, out))

	opts.KeepGoing = true
	files, err := runGenerate(opts)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Contains(t, files[0].Content, "        a: int\n")
}

func TestFailFastReportsOneDiagnostic(t *testing.T) {
	var stderr bytes.Buffer
	opts := baseOptions(writeSchema(t, t.TempDir(), "broken.yaml", brokenYAML))
	opts.FailFast = true
	opts.Stderr = &stderr

	_, err := runGenerate(opts)
	require.Error(t, err)
	assert.Contains(t, stderr.String(), "1 diagnostic(s)")
}

func TestRunGenerateRejectsCollidingModules(t *testing.T) {
	dir := t.TempDir()
	opts := baseOptions(writeSchema(t, dir, "a.yaml", pointsYAML), writeSchema(t, dir, "b.yaml", pointsYAML))
	opts.OutputDir = t.TempDir()

	_, err := runGenerate(opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "both generate Geometry.fs")
}

func TestRunGenerateRejectsSchemaVersion(t *testing.T) {
	opts := baseOptions(writeSchema(t, t.TempDir(), "v2.yaml", "version: 2.0.0\ntypes: []\n"))
	_, err := runGenerate(opts)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrSchemaVersion))
}

func TestCheckGenerated(t *testing.T) {
	schemaPath := writeSchema(t, t.TempDir(), "points.yaml", pointsYAML)
	out := t.TempDir()

	opts := baseOptions(schemaPath)
	opts.Languages = []string{"fsharp", "typescript"}
	opts.OutputDir = out

	result, err := checkGenerated(opts)
	require.NoError(t, err)
	assert.False(t, result.UpToDate)
	assert.Equal(t, []string{"Geometry.fs", "geometry.ts"}, result.Missing)

	_, err = runGenerate(opts)
	require.NoError(t, err)

	result, err = checkGenerated(opts)
	require.NoError(t, err)
	assert.True(t, result.UpToDate)

	require.NoError(t, os.WriteFile(filepath.Join(out, "geometry.ts"), []byte("stale"), 0644))
	result, err = checkGenerated(opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"geometry.ts"}, result.Differences)
	assert.True(t, errors.Is(result.Err(), errors.ErrOutOfDate))
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeSchema(t, dir, "protocol.yaml", protocolYAML)
	good := writeSchema(t, dir, "good.json", `{"Render": "<p>"}`)
	bad := writeSchema(t, dir, "bad.json", `{"Render": 1}`)

	run := func(args ...string) (string, error) {
		var stderr bytes.Buffer
		ValidateCmd.SetArgs(args)
		ValidateCmd.SetOut(&bytes.Buffer{})
		ValidateCmd.SetErr(&stderr)
		ValidateCmd.SetIn(strings.NewReader(`"Idle"`))
		err := ValidateCmd.Execute()
		return stderr.String(), err
	}

	out, err := run(schemaPath, "--type", "FrontendMessage", good, "-")
	require.NoError(t, err)
	assert.Contains(t, out, good)

	out, err = run(schemaPath, "--type", "FrontendMessage", good, bad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidPayload))
	assert.Contains(t, out, bad)
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fsdefs.toml")

	require.NoError(t, runConfigInit(ConfigCmd, []string{path}))
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default().Output, cfg.Output)

	err = runConfigInit(ConfigCmd, []string{path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestWatchOptionsRereadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fsdefs.toml")
	require.NoError(t, os.WriteFile(path, []byte("[output]\nnamespace = \"First\"\n"), 0644))

	saved, savedCfg := ConfigPath, cfg
	ConfigPath = path
	t.Cleanup(func() { ConfigPath, cfg = saved, savedCfg })

	opts, err := watchOptions(WatchCmd, []string{"protocol.yaml"})
	require.NoError(t, err)
	assert.Equal(t, "First", opts.Namespace)

	require.NoError(t, os.WriteFile(path, []byte("[output]\nnamespace = \"Second\"\n"), 0644))
	opts, err = watchOptions(WatchCmd, []string{"protocol.yaml"})
	require.NoError(t, err)
	assert.Equal(t, "Second", opts.Namespace)
	assert.Equal(t, []string{"protocol.yaml"}, opts.Schemas)
}
