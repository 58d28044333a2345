package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/limaJavier/tournament/internal/store"
	"github.com/limaJavier/tournament/pkg/model"
	"github.com/limaJavier/tournament/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sixTeams = model.Schedule{
	{{1, 6}, {1, 5}, {5, 3}, {4, 2}, {3, 6}},
	{{2, 5}, {6, 4}, {6, 2}, {1, 3}, {4, 5}},
	{{3, 4}, {2, 3}, {1, 4}, {5, 6}, {1, 2}},
}

func pointer(value uint64) *uint64 {
	return &value
}

func TestCheckRecord(t *testing.T) {
	valid := map[string]search.Record{
		"decision":   {Time: 1, Optimal: true, Sol: sixTeams},
		"unsat":      {Time: 0, Optimal: true, Sol: model.Schedule{}},
		"timeout":    {Time: 300, Sol: model.Schedule{}},
		"optimum":    {Time: 2, Optimal: true, Obj: pointer(5), Sol: sixTeams},
		"incumbent":  {Time: 300, Obj: pointer(5), Sol: sixTeams},
		"legacy nil": {Time: 300},
	}
	for name, record := range valid {
		assert.NoError(t, checkRecord(6, record), name)
	}

	broken := model.Schedule{sixTeams[0], sixTeams[1], sixTeams[1]}
	invalid := map[string]search.Record{
		"objective without schedule": {Optimal: true, Obj: pointer(1), Sol: model.Schedule{}},
		"timeout with schedule":      {Time: 300, Sol: sixTeams},
		"wrong objective":            {Optimal: true, Obj: pointer(1), Sol: sixTeams},
		"invalid schedule":           {Optimal: true, Sol: broken},
	}
	for name, record := range invalid {
		assert.Error(t, checkRecord(6, record), name)
	}
	assert.Error(t, checkRecord(5, search.Record{Optimal: true, Sol: sixTeams}))
}

func TestReportCell(t *testing.T) {
	assert.Equal(t, "UNSAT", reportCell(search.Record{Optimal: true, Sol: model.Schedule{}}, false))
	assert.Equal(t, "N/A", reportCell(search.Record{Time: 300}, false))
	assert.Equal(t, "12", reportCell(search.Record{Time: 12, Optimal: true, Sol: sixTeams}, false))
	assert.Equal(t, "3 (1*)", reportCell(search.Record{Time: 3, Optimal: true, Obj: pointer(1), Sol: sixTeams}, true))
	assert.Equal(t, "300 (5)", reportCell(search.Record{Time: 300, Obj: pointer(5), Sol: sixTeams}, true))
}

func TestWriteReport(t *testing.T) {
	//** Arrange
	all := map[uint64]store.Records{
		4: {"gini_noobj_nosb_pairing": {Optimal: true, Sol: model.Schedule{}}},
		6: {
			"gini_noobj_nosb_pairing": {Time: 1, Optimal: true, Sol: sixTeams},
			"gini_obj_sb_pairing":     {Time: 2, Optimal: true, Obj: pointer(5), Sol: sixTeams},
		},
	}
	var out bytes.Buffer

	//** Act
	require.NoError(t, writeReport(&out, all))

	//** Assert
	lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"n", "gini_noobj_nosb_pairing", "gini_obj_sb_pairing"}, fields(lines[0]))
	assert.Equal(t, []string{"4", "UNSAT", "-"}, fields(lines[1]))
	assert.Equal(t, []string{"6", "1", "2", "(5*)"}, fields(lines[2]))
}

func fields(line []byte) []string {
	var result []string
	for _, field := range bytes.Fields(line) {
		result = append(result, string(field))
	}
	return result
}

func TestSolveCheckReport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "res")
	var out, errOut bytes.Buffer

	code := execute([]string{
		"solve", "--teams", "4,6", "--objective", "--label-fixing",
		"--budget", "2m", "--save", "--output-dir", dir, "--log-level", "error",
	}, &out, &errOut)
	require.Equal(t, exitUnsatisfiable, code, errOut.String())
	assert.Contains(t, out.String(), `"gini_obj_sb_pairing"`)

	records, err := store.New(dir).Load(6)
	require.NoError(t, err)
	require.Contains(t, records, "gini_obj_sb_pairing")
	assert.Equal(t, pointer(1), records["gini_obj_sb_pairing"].Obj)

	out.Reset()
	assert.Equal(t, 0, execute([]string{"check", dir}, &out, &errOut))
	assert.Contains(t, out.String(), "6\tgini_obj_sb_pairing\tVALID")

	out.Reset()
	assert.Equal(t, 0, execute([]string{"report", dir}, &out, &errOut))
	assert.Contains(t, out.String(), "UNSAT")
	assert.Contains(t, out.String(), "(1*)")
}

func TestExitCode(t *testing.T) {
	solved := store.Records{"gini_noobj_nosb_pairing": {Time: 1, Optimal: true, Sol: sixTeams}}
	unsat := store.Records{"gini_noobj_nosb_pairing": {Optimal: true, Sol: model.Schedule{}}}
	timeout := store.Records{"gini_noobj_nosb_pairing": {Time: 300, Sol: model.Schedule{}}}

	assert.Equal(t, exitSatisfiable, exitCode(map[uint64]store.Records{6: solved, 8: solved}))
	assert.Equal(t, exitUnsatisfiable, exitCode(map[uint64]store.Records{4: unsat, 6: solved}))
	assert.Equal(t, 0, exitCode(map[uint64]store.Records{6: solved, 8: timeout}))
	assert.Equal(t, exitUnsatisfiable, exitCode(map[uint64]store.Records{4: unsat, 8: timeout}))
	assert.Equal(t, exitUnsatisfiable, exitCode(map[uint64]store.Records{4: timeout, 8: unsat}))
	assert.Equal(t, exitSatisfiable, exitCode(map[uint64]store.Records{}))
}

func TestSolveKeepsOtherInstancesOnFailure(t *testing.T) {
	//** Arrange
	dir := filepath.Join(t.TempDir(), "res")
	var out, errOut bytes.Buffer

	//** Act
	code := execute([]string{
		"solve", "--teams", "5,6", "--label-fixing", "--save",
		"--output-dir", dir, "--log-level", "error",
	}, &out, &errOut)

	//** Assert
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut.String(), "solving 5 teams")
	assert.Contains(t, out.String(), `"6"`)
	assert.NotContains(t, out.String(), `"5"`)

	records, err := store.New(dir).Load(6)
	require.NoError(t, err)
	assert.Contains(t, records, "gini_noobj_sb_pairing")
}

func TestSolveRejectsInvalidOptions(t *testing.T) {
	var out, errOut bytes.Buffer

	assert.Equal(t, 1, execute([]string{"solve", "--teams", "5"}, &out, &errOut))
	assert.Equal(t, 1, execute([]string{"solve", "--teams", "6", "--home-away-order"}, &out, &errOut))
	assert.Equal(t, 1, execute([]string{"solve", "--teams", "6", "--solver", "z3"}, &out, &errOut))
	assert.Equal(t, 1, execute([]string{"solve"}, &out, &errOut))
	assert.Equal(t, 1, execute([]string{"check", filepath.Join(t.TempDir(), "missing")}, &out, &errOut))
}
