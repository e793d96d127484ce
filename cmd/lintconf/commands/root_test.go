package commands

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonemaro/lintconf/cmd/lintconf/app"
)

func execute(t *testing.T, fs afero.Fs, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand(fs, false)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), err
}

func testFs(t *testing.T) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/a.yml", []byte(`
config:
  warningsAsErrors: true
style:
  MagicNumber:
    active: false
`), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/b.yml", []byte(`
stlye:
  active: true
`), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/project/src/App.kt", []byte("class App"), 0o644))
	return fs
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		args    []string
		want    []string
		wantErr bool
	}{
		{
			name: "version",
			args: []string{"version"},
			want: []string{"lintconf "},
		},
		{
			name: "full version",
			args: []string{"version", "--full"},
			want: []string{"Configuration Formats"},
		},
		{
			name: "get from user file",
			args: []string{"get", "style.MagicNumber.active", "--config", "/a.yml", "--no-color"},
			want: []string{"style > MagicNumber > active = false (bool)"},
		},
		{
			name: "all rules flag",
			args: []string{"get", "style.MagicNumber.active", "--config", "/a.yml", "--all-rules"},
			want: []string{"style > MagicNumber > active = true (bool)"},
		},
		{
			name: "typed get",
			args: []string{"get", "complexity.LongMethod.threshold", "--type", "int"},
			want: []string{"complexity > LongMethod > threshold = 60 (int)"},
		},
		{
			name: "unset key",
			args: []string{"get", "style.MagicNumber.nothing", "--type", "long"},
			want: []string{"style > MagicNumber > nothing = <not set> (long)"},
		},
		{
			name: "config from environment",
			env:  map[string]string{"LINTCONF_CONFIG": "/a.yml"},
			args: []string{"get", "style.MagicNumber.active"},
			want: []string{"= false (bool)"},
		},
		{
			name: "flag overrides environment",
			env:  map[string]string{"LINTCONF_OUTPUT": "yaml"},
			args: []string{"rules", "-o", "json"},
			want: []string{`"kind": "rules"`},
		},
		{
			name: "output from environment",
			env:  map[string]string{"LINTCONF_OUTPUT": "yaml"},
			args: []string{"rules"},
			want: []string{"kind: rules"},
		},
		{
			name: "rules filtered",
			args: []string{"rules", "--only", "MagicNumber"},
			want: []string{"MagicNumber", "Rules: 1"},
		},
		{
			name: "rules by prefix with skip",
			args: []string{"rules", "--only", "Long*", "--skip", "LongMethod"},
			want: []string{"LongParameterList", "Rules: 1"},
		},
		{
			name: "defaults",
			args: []string{"defaults", "-o", "json"},
			want: []string{"MagicNumber:", "warningsAsErrors:"},
		},
		{
			name: "valid configuration",
			args: []string{"validate", "--config", "/a.yml"},
			want: []string{"Configuration is valid"},
		},
		{
			name:    "warnings as errors",
			args:    []string{"validate", "--config", "/a.yml,/b.yml"},
			want:    []string{"stlye"},
			wantErr: true,
		},
		{
			name: "plan",
			args: []string{"plan", "/project", "-w", "1"},
			want: []string{"App.kt"},
		},
		{
			name:    "plan requires a path",
			args:    []string{"plan"},
			wantErr: true,
		},
		{
			name:    "invalid output format",
			args:    []string{"rules", "-o", "xml"},
			wantErr: true,
		},
		{
			name:    "invalid workers",
			args:    []string{"rules", "-w", "-1"},
			wantErr: true,
		},
		{
			name:    "missing config file",
			args:    []string{"rules", "--config", "/nope.yml"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			out, err := execute(t, testFs(t), tt.args...)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestValidateCommandError(t *testing.T) {
	_, err := execute(t, testFs(t), "validate", "--config", "/a.yml,/b.yml", "-o", "json")
	assert.ErrorIs(t, err, app.ErrValidationFailed)
}

func TestOutputFileFlag(t *testing.T) {
	fs := testFs(t)

	out, err := execute(t, fs, "rules", "-o", "json", "-f", "/rules.json")
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := afero.ReadFile(fs, "/rules.json")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "rules", doc["kind"])
}
