package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/lunagic/quill/config"
	"github.com/lunagic/quill/database"
	"github.com/lunagic/quill/querybuilder"
	"github.com/lunagic/quill/quilltools"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var errMissingTable = errors.New("--table is required")

type app struct {
	fileSystem afero.Fs
	dir        string
	verbose    bool
	table      string
}

func Execute() {
	if err := NewRootCommand(afero.NewOsFs()).Execute(); err != nil {
		os.Exit(1)
	}
}

func NewRootCommand(fileSystem afero.Fs) *cobra.Command {
	a := &app{fileSystem: fileSystem}

	root := &cobra.Command{
		Use:   "quill",
		Short: "Run parameterized CRUD statements against a database",
		Long: `Run parameterized CRUD statements against a database.

Connection settings come from quill.yaml, .env, .env.local and QUILL_*
environment variables, in increasing order of priority.

Drivers and the settings they require:
` + driverHelp(),
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&a.dir, "dir", ".", "directory holding quill.yaml and .env files")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log every statement")
	root.PersistentFlags().StringVarP(&a.table, "table", "t", "", "table to run against")

	root.AddCommand(
		a.createCommand(),
		a.readCommand(),
		a.updateCommand(),
		a.deleteCommand(),
		a.findCommand(),
		a.findByCommand(),
	)

	return root
}

// command opens a builder on the configured table for the length of one
// command.
func (a *app) command(callback func(ctx context.Context, cmd *cobra.Command, args []string, builder *querybuilder.Builder) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if a.table == "" {
			return errMissingTable
		}

		loaded, err := config.Load(a.fileSystem, a.dir)
		if err != nil {
			return err
		}

		if a.verbose {
			loaded.LogLevel = "debug"
		}

		logger := loaded.Logger()

		configFuncs := []database.ConnectionConfigFunc{}
		if a.verbose {
			configFuncs = append(configFuncs, database.WithLogger(logger))
		}

		connection, err := loaded.Connection(configFuncs...)
		if err != nil {
			return err
		}

		builder, err := querybuilder.Open(cmd.Context(), connection, querybuilder.WithLogger(logger))
		if err != nil {
			return err
		}
		defer func() {
			_ = connection.Close()
		}()

		return callback(cmd.Context(), cmd, args, builder.Table(a.table))
	}
}

func driverHelp() string {
	lines := quilltools.Map(database.Drivers(), func(name string) string {
		keys, err := database.RequiredKeys(name)
		if err != nil {
			return "  " + name
		}

		return fmt.Sprintf("  %s: %s", name, strings.Join(keys, ", "))
	})

	return strings.Join(lines, "\n")
}

func printRows(cmd *cobra.Command, rows []database.Row) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")

	return encoder.Encode(rows)
}

func printAffected(cmd *cobra.Command, builder *querybuilder.Builder) error {
	count, err := builder.Count()
	if err != nil {
		return err
	}

	_, err = color.New(color.FgGreen).Fprintf(cmd.ErrOrStderr(), "%d row(s) affected\n", count)

	return err
}

// parseValue binds whole numbers as integers and everything else as text.
// Quoting a value with ' or " keeps it as text, so '007' stays "007".
func parseValue(raw string) any {
	if len(raw) >= 2 && (raw[0] == '\'' || raw[0] == '"') && raw[len(raw)-1] == raw[0] {
		return raw[1 : len(raw)-1]
	}

	if number, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return number
	}

	return raw
}

func parseAssignments(assignments []string) (querybuilder.Data, error) {
	data := querybuilder.Data{}
	for _, assignment := range assignments {
		key, value, found := strings.Cut(assignment, "=")
		if !found {
			return nil, fmt.Errorf("expected column=value, got %q", assignment)
		}

		data[key] = parseValue(value)
	}

	return data, nil
}
