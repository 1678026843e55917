package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/elmallah-hr/attendance-backend-go/internal/domain/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cliTestLog = "1001\t2024-03-10 08:00:00\n" +
	"1001\t2024-03-10 17:30:00\n" +
	"1001\t2024-03-12 09:00:00\n" +
	"0042\t2024-04-02 08:00:00\n"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAnalyzeCmd_MultipleFiles(t *testing.T) {
	dir := t.TempDir()
	march := writeFile(t, dir, "march.dat", cliTestLog)
	april := writeFile(t, dir, "april.dat", "0042\t2024-04-02 08:00:00\n0042\t2024-04-02 16:00:00\n")
	names := writeFile(t, dir, "employees.yaml", "employees:\n  - id: \"1001\"\n    name: Mona Hassan\n")

	out, err := execute(t, "analyze", march, april, "--directory", names)

	require.NoError(t, err)
	assert.Less(t, strings.Index(out, march), strings.Index(out, april), "output must follow argument order")
	assert.Contains(t, out, "Mona Hassan")
	assert.Contains(t, out, "Employee 0042")
}

func TestAnalyzeCmd_Errors(t *testing.T) {
	dir := t.TempDir()
	log := writeFile(t, dir, "attlog.dat", cliTestLog)

	_, err := execute(t, "analyze", filepath.Join(dir, "missing.dat"))
	assert.Error(t, err)

	_, err = execute(t, "analyze", log, "--rest-day", "someday")
	assert.ErrorContains(t, err, "--rest-day")

	_, err = execute(t, "analyze", log, "--month", "2024-13")
	assert.ErrorContains(t, err, "month")
}

func TestExportCmd(t *testing.T) {
	dir := t.TempDir()
	log := writeFile(t, dir, "attlog.dat", cliTestLog)
	csvPath := filepath.Join(dir, "out.csv")

	_, err := execute(t, "export", log, "-o", csvPath, "--employee", "1001")
	require.NoError(t, err)

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(strings.TrimPrefix(string(data), "\ufeff"), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID,Name,Date,DayName,CheckIn,CheckOut,Hours", lines[0])
	assert.Equal(t, "1001,Employee 1001,2024-03-10,Sunday,08:00:00,17:30:00,9.50", lines[2])

	_, err = execute(t, "export", log, "-o", filepath.Join(dir, "out.json"))
	assert.Error(t, err)
}

func TestReportCmd_JSON(t *testing.T) {
	dir := t.TempDir()
	log := writeFile(t, dir, "attlog.dat", cliTestLog)

	out, err := execute(t, "report", log, "--employee", "1001", "--json", "--rest-day", "sunday")

	require.NoError(t, err)
	var resp report.EmployeeReportResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "1001", resp.EmployeeID)
	require.Len(t, resp.Rows, 3)
	assert.Equal(t, report.RowRestDay, resp.Rows[0].Kind)
	assert.Equal(t, report.RowAbsent, resp.Rows[1].Kind)
	assert.Equal(t, report.RowSingleSwipe, resp.Rows[2].Kind)
}

func TestReportCmd_TargetWorkday(t *testing.T) {
	dir := t.TempDir()
	log := writeFile(t, dir, "attlog.dat", cliTestLog)

	out, err := execute(t, "report", log, "--employee", "1001", "--json", "--target", "10h")

	require.NoError(t, err)
	var resp report.EmployeeReportResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Rows, 3)
	require.NotNil(t, resp.Rows[0].DeviationHours)
	assert.InDelta(t, -0.5, *resp.Rows[0].DeviationHours, 1e-9)
	require.NotNil(t, resp.Rows[0].DeviationText)
	assert.Equal(t, "-30m", *resp.Rows[0].DeviationText)
	assert.Nil(t, resp.Rows[2].DeviationHours)
}

func TestDirectoryCmd(t *testing.T) {
	dir := t.TempDir()
	names := writeFile(t, dir, "employees.toml", "[[employees]]\nid = \"0042\"\nname = \"Ahmed Ali\"\n\n[[employees]]\nid = \"7\"\nname = \"Sara\"\n")

	out, err := execute(t, "directory", "--directory", names)

	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "Sara"), strings.Index(out, "Ahmed Ali"))
	assert.Contains(t, out, "2 employees")

	_, err = execute(t, "directory")
	assert.Error(t, err)
}

func TestTokenCmd(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "cli-secret")
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	out, err := execute(t, "token", "--subject", "ops")

	require.NoError(t, err)
	assert.Equal(t, 3, len(strings.Split(strings.TrimSpace(out), ".")))
}
