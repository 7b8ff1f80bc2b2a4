package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/lunagic/quill/database"
	"github.com/lunagic/quill/querybuilder"
	"github.com/lunagic/quill/quilltools"
	"github.com/spf13/cobra"
)

var errUnfilteredDelete = errors.New("refusing to delete every row without --all")

type condition struct {
	field    string
	operator string
	value    any
}

// whereFlags collects --where and --where-op into one list so conditions
// keep the order they were typed in.
type whereFlags struct {
	conditions []condition
}

// conditionFlag is one flag spelling feeding whereFlags.
type conditionFlag struct {
	flags    *whereFlags
	typeName string
	parse    func(raw string) (condition, error)
}

func (flag *conditionFlag) String() string {
	return ""
}

func (flag *conditionFlag) Set(raw string) error {
	parsed, err := flag.parse(raw)
	if err != nil {
		return err
	}

	flag.flags.conditions = append(flag.flags.conditions, parsed)

	return nil
}

func (flag *conditionFlag) Type() string {
	return flag.typeName
}

func parseEquals(raw string) (condition, error) {
	field, value, found := strings.Cut(raw, "=")
	if !found {
		return condition{}, fmt.Errorf("expected column=value, got %q", raw)
	}

	return condition{field: field, operator: "=", value: parseValue(value)}, nil
}

func parseOperator(raw string) (condition, error) {
	parts := strings.SplitN(raw, ",", 3)
	if len(parts) != 3 {
		return condition{}, fmt.Errorf("expected column,operator,value, got %q", raw)
	}

	return condition{field: parts[0], operator: parts[1], value: parseValue(parts[2])}, nil
}

func (flags *whereFlags) register(cmd *cobra.Command) {
	cmd.Flags().VarP(
		&conditionFlag{flags: flags, typeName: "column=value", parse: parseEquals},
		"where", "w", "condition as column=value, repeatable",
	)
	cmd.Flags().Var(
		&conditionFlag{flags: flags, typeName: "column,op,value", parse: parseOperator},
		"where-op", "condition as column,operator,value, repeatable",
	)
}

func (flags *whereFlags) any() bool {
	return len(flags.conditions) > 0
}

func (flags *whereFlags) apply(builder *querybuilder.Builder) error {
	for _, condition := range flags.conditions {
		builder.WhereOp(condition.field, condition.operator, condition.value)
	}

	return builder.Err()
}

func (a *app) createCommand() *cobra.Command {
	assignments := []string{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Insert one row",
		Args:  cobra.NoArgs,
		RunE: a.command(func(ctx context.Context, cmd *cobra.Command, args []string, builder *querybuilder.Builder) error {
			data, err := parseAssignments(assignments)
			if err != nil {
				return err
			}

			if err := builder.Create(ctx, data); err != nil {
				return err
			}

			id, err := builder.LastInsertedID(ctx)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), id)

			return err
		}),
	}

	cmd.Flags().StringArrayVarP(&assignments, "set", "s", nil, "column=value to insert, repeatable")

	return cmd
}

func (a *app) readCommand() *cobra.Command {
	fields := ""
	where := &whereFlags{}

	cmd := &cobra.Command{
		Use:   "read",
		Short: "Select rows",
		Args:  cobra.NoArgs,
		RunE: a.command(func(ctx context.Context, cmd *cobra.Command, args []string, builder *querybuilder.Builder) error {
			columns := quilltools.Filter(
				quilltools.Map(strings.Split(fields, ","), strings.TrimSpace),
				func(column string) bool {
					return column != ""
				},
			)

			builder.Read(columns...)
			if err := where.apply(builder); err != nil {
				return err
			}

			if err := builder.Do(ctx); err != nil {
				return err
			}

			rows, err := builder.Get()
			if err != nil {
				return err
			}

			return printRows(cmd, rows)
		}),
	}

	cmd.Flags().StringVarP(&fields, "fields", "f", "*", "comma separated columns to select")
	where.register(cmd)

	return cmd
}

func (a *app) updateCommand() *cobra.Command {
	assignments := []string{}
	where := &whereFlags{}

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update rows",
		Args:  cobra.NoArgs,
		RunE: a.command(func(ctx context.Context, cmd *cobra.Command, args []string, builder *querybuilder.Builder) error {
			data, err := parseAssignments(assignments)
			if err != nil {
				return err
			}

			builder.Update(data)
			if err := where.apply(builder); err != nil {
				return err
			}

			if err := builder.Do(ctx); err != nil {
				return err
			}

			return printAffected(cmd, builder)
		}),
	}

	cmd.Flags().StringArrayVarP(&assignments, "set", "s", nil, "column=value to assign, repeatable")
	where.register(cmd)

	return cmd
}

func (a *app) deleteCommand() *cobra.Command {
	all := false
	where := &whereFlags{}

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete rows",
		Args:  cobra.NoArgs,
		RunE: a.command(func(ctx context.Context, cmd *cobra.Command, args []string, builder *querybuilder.Builder) error {
			if !where.any() && !all {
				return errUnfilteredDelete
			}

			builder.Delete()
			if err := where.apply(builder); err != nil {
				return err
			}

			if err := builder.Do(ctx); err != nil {
				return err
			}

			return printAffected(cmd, builder)
		}),
	}

	cmd.Flags().BoolVar(&all, "all", false, "allow deleting without conditions")
	where.register(cmd)

	return cmd
}

func (a *app) findCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "find ID",
		Short: "Select the row with the given id",
		Args:  cobra.ExactArgs(1),
		RunE: a.command(func(ctx context.Context, cmd *cobra.Command, args []string, builder *querybuilder.Builder) error {
			if err := builder.Find(ctx, parseValue(args[0])); err != nil {
				return err
			}

			return printFirst(cmd, builder)
		}),
	}
}

func (a *app) findByCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "find-by COLUMN VALUE",
		Short: "Select the rows where a column equals a value",
		Args:  cobra.ExactArgs(2),
		RunE: a.command(func(ctx context.Context, cmd *cobra.Command, args []string, builder *querybuilder.Builder) error {
			if err := builder.FindBy(ctx, args[0], parseValue(args[1])); err != nil {
				return err
			}

			rows, err := builder.Get()
			if err != nil {
				return err
			}

			return printRows(cmd, rows)
		}),
	}
}

func printFirst(cmd *cobra.Command, builder *querybuilder.Builder) error {
	first, err := builder.First()
	if err != nil {
		return err
	}

	if first == nil {
		_, err := color.New(color.FgYellow).Fprintln(cmd.ErrOrStderr(), "no rows")
		return err
	}

	return printRows(cmd, []database.Row{first})
}
