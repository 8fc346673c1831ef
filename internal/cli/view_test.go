package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// Point --config at a nonexistent file so the host's real config never
	// leaks into tests.
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	cmd := NewRootCmd("test")
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(append(args, "--config", configPath))

	err := cmd.Execute()
	return buf.String(), err
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

const peopleCSV = "name,age\nJohn,30\nAmy,10\nJoanna,20\n"

func TestViewCommand_PlainOutput(t *testing.T) {
	path := writeCSV(t, peopleCSV)

	out, err := execute(t, "view", path, "--no-interactive")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 5)
	assert.Equal(t, "name\tage", lines[0])
	assert.Equal(t, "John\t30", lines[1])
	assert.Contains(t, lines[len(lines)-1], "3 of 3 rows")
}

func TestViewCommand_FilterAndSort(t *testing.T) {
	path := writeCSV(t, peopleCSV)

	out, err := execute(t, "view", path, "--no-interactive", "--filter", "name=jo", "--sort", "age:desc")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 4)
	assert.Equal(t, "John\t30", lines[1], "descending age puts John first")
	assert.Equal(t, "Joanna\t20", lines[2])
	assert.NotContains(t, out, "Amy")
}

func TestViewCommand_Pagination(t *testing.T) {
	var b strings.Builder
	b.WriteString("id\n")
	for i := 1; i <= 25; i++ {
		b.WriteString(strconv.Itoa(i))
		b.WriteString("\n")
	}
	path := writeCSV(t, b.String())

	out, err := execute(t, "view", path, "--no-interactive", "--page", "2", "--page-size", "10")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	// Header + 10 rows + meta line.
	require.Len(t, lines, 12)
	assert.Equal(t, "11", lines[1])
	assert.Equal(t, "20", lines[10])
	assert.Contains(t, lines[11], "page 2/3")
}

func TestViewCommand_Errors(t *testing.T) {
	path := writeCSV(t, peopleCSV)

	tests := []struct {
		name string
		args []string
	}{
		{"bad filter", []string{"view", path, "--no-interactive", "--filter", "noequals"}},
		{"bad sort", []string{"view", path, "--no-interactive", "--sort", "age:sideways"}},
		{"mixed pagination", []string{"view", path, "--no-interactive", "--offset", "5", "--page", "2", "--page-size", "5"}},
		{"missing file", []string{"view", filepath.Join(t.TempDir(), "nope.csv"), "--no-interactive"}},
		{"unsupported format", []string{"view", path + ".xml", "--no-interactive"}},
		{"no args", []string{"view"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}
