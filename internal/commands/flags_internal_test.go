package commands

import (
	"testing"

	"github.com/lunagic/quill/querybuilder"
	"github.com/lunagic/quill/quilltest"
	"github.com/spf13/cobra"
	"gotest.tools/v3/assert"
)

func TestWhereFlagsKeepTypedOrder(t *testing.T) {
	where := &whereFlags{}
	cmd := &cobra.Command{Use: "read"}
	where.register(cmd)

	assert.NilError(t, cmd.ParseFlags([]string{
		"--where-op", "age,>=,18",
		"-w", "name=test",
		"--where-op", "id,<>,3",
	}))
	assert.Assert(t, where.any())

	builder := querybuilder.New(&quilltest.Handle{}).Table("foo").Read()
	assert.NilError(t, where.apply(builder))

	query, bindings, err := builder.SQL()
	assert.NilError(t, err)
	assert.Equal(t, query, "SELECT * FROM foo WHERE age>=? AND name=? AND id<>?")
	assert.DeepEqual(t, bindings, []any{int64(18), "test", int64(3)})
}

func TestWhereFlagsRejectMalformedConditions(t *testing.T) {
	{ // Missing equals sign
		cmd := &cobra.Command{Use: "read"}
		(&whereFlags{}).register(cmd)
		assert.ErrorContains(t, cmd.ParseFlags([]string{"-w", "name"}), "expected column=value")
	}

	{ // Missing operator part
		cmd := &cobra.Command{Use: "read"}
		(&whereFlags{}).register(cmd)
		assert.ErrorContains(t, cmd.ParseFlags([]string{"--where-op", "id,1"}), "expected column,operator,value")
	}
}

func TestParseValue(t *testing.T) {
	testCases := map[string]any{
		"7":       int64(7),
		"-12":     int64(-12),
		"007":     int64(7),
		"'007'":   "007",
		`"42"`:    "42",
		"'":       "'",
		`"mixed'`: `"mixed'`,
		"''":      "",
		"1.5":     "1.5",
		"test":    "test",
	}

	for raw, expected := range testCases {
		t.Run(raw, func(t *testing.T) {
			assert.DeepEqual(t, parseValue(raw), expected)
		})
	}
}

func TestHelpListsDrivers(t *testing.T) {
	help := driverHelp()
	assert.Assert(t, help != "")
	assert.Equal(t, help, "  mysql: driver, database_name, host, username, password\n"+
		"  postgres: driver, database_name, host, username, password\n"+
		"  sqlite3: driver, database_name")
}
