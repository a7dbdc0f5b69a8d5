package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"lumincoin/internal/cli"
	"lumincoin/internal/core"
)

func NewCategoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories <income|expense>",
		Short: "Manage income and expense categories",
		Long: `Manage the categories of one ledger.

Examples:
  lumincoin categories income list
  lumincoin categories expense create "Еда"
  lumincoin categories expense rename 4 "Продукты"
  lumincoin categories income delete 2`,
	}

	for _, kind := range []core.Kind{core.Income, core.Expense} {
		cmd.AddCommand(newCategoryKindCmd(kind))
	}
	return cmd
}

func newCategoryKindCmd(kind core.Kind) *cobra.Command {
	cmd := &cobra.Command{
		Use:   string(kind),
		Short: fmt.Sprintf("Manage %s categories", kind),
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, cmd *cobra.Command, rt *cli.Runtime, _ []string) error {
			res := rt.Deps.Categories(kind).List(ctx)
			if err := resultErr(res); err != nil {
				return err
			}
			rows := make([][]string, 0, len(res.Value))
			for _, c := range res.Value {
				rows = append(rows, []string{strconv.Itoa(c.ID), c.Title})
			}
			return writeTable(cmd.OutOrStdout(), []string{"ID", "Title"}, rows)
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "create <title>",
		Short: "Create a category",
		Args:  cobra.MinimumNArgs(1),
		RunE: run(func(ctx context.Context, cmd *cobra.Command, rt *cli.Runtime, args []string) error {
			title := strings.Join(args, " ")
			if strings.TrimSpace(title) == "" {
				return core.ErrEmptyTitle
			}
			res := rt.Deps.Categories(kind).Create(ctx, title)
			if err := resultErr(res); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %d %s\n", res.Value.ID, res.Value.Title)
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rename <id> <title>",
		Short: "Rename a category",
		Args:  cobra.MinimumNArgs(2),
		RunE: run(func(ctx context.Context, cmd *cobra.Command, rt *cli.Runtime, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			title := strings.Join(args[1:], " ")
			if strings.TrimSpace(title) == "" {
				return core.ErrEmptyTitle
			}
			res := rt.Deps.Categories(kind).Update(ctx, id, title)
			if err := resultErr(res); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "renamed %d to %s\n", res.Value.ID, res.Value.Title)
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, cmd *cobra.Command, rt *cli.Runtime, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := resultErr(rt.Deps.Categories(kind).Delete(ctx, id)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d\n", id)
			return nil
		}),
	})
	return cmd
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
