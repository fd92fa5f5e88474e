package ui

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aki/twp/internal/core/git"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    OutputFormat
		wantErr bool
	}{
		{input: "", want: FormatPretty},
		{input: "pretty", want: FormatPretty},
		{input: "json", want: FormatJSON},
		{input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJSONFormatter_OutputIdentity(t *testing.T) {
	out := captureOutput(t)

	err := NewJSONFormatter().Output(git.Identity{
		Endpoint:   git.Endpoint{Host: "github.com", Owner: "eeue56", Repo: "twp-example"},
		Branch:     "main",
		RemoteName: "origin",
	})
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "github.com", got["host"])
	assert.Equal(t, "eeue56", got["owner"])
	assert.Equal(t, "twp-example", got["repo"])
	assert.Equal(t, "main", got["branch"])
	assert.Equal(t, "origin", got["remote"])
}

func TestFormatter_OutputErrorUsesStderr(t *testing.T) {
	tests := []struct {
		name      string
		formatter Formatter
		want      string
	}{
		{name: "json", formatter: NewJSONFormatter(), want: "Error: boom\n"},
		{name: "pretty", formatter: NewPrettyFormatter(), want: ErrorIcon + " boom\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := captureOutput(t)
			errOut := captureErrors(t)

			require.NoError(t, tt.formatter.OutputError(errors.New("boom")))
			assert.Empty(t, out.String())
			assert.Equal(t, tt.want, errOut.String())
		})
	}
}

func TestPrettyFormatter_OutputStringVerbatim(t *testing.T) {
	out := captureOutput(t)

	require.NoError(t, NewPrettyFormatter().Output("remote: origin\n"))
	assert.Equal(t, "remote: origin\n", out.String())
}

func TestSetGlobalFormatter(t *testing.T) {
	original := GlobalFormatter
	t.Cleanup(func() { GlobalFormatter = original })

	require.NoError(t, SetGlobalFormatter(FormatJSON))
	assert.True(t, GlobalFormatter.IsJSON())

	require.NoError(t, SetGlobalFormatter(FormatPretty))
	assert.False(t, GlobalFormatter.IsJSON())

	assert.Error(t, SetGlobalFormatter(OutputFormat("xml")))
}
