package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"lumincoin/internal/cli"
	"lumincoin/internal/core"
	"lumincoin/internal/i18n"
	"lumincoin/internal/services"
)

func NewOperationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "operations",
		Aliases: []string{"ops"},
		Short:   "List and edit income and expense operations",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List operations of a period",
		Args:  cobra.NoArgs,
		RunE:  run(runOperationsList),
	}
	addFilterFlags(list)

	create := &cobra.Command{
		Use:   "create",
		Short: "Add an operation",
		Args:  cobra.NoArgs,
		RunE:  run(runOperationsCreate),
	}
	addOperationFlags(create)
	_ = create.MarkFlagRequired("type")
	_ = create.MarkFlagRequired("category")
	_ = create.MarkFlagRequired("amount")

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change an operation; omitted flags keep their value",
		Args:  cobra.ExactArgs(1),
		RunE:  run(runOperationsUpdate),
	}
	addOperationFlags(update)

	cmd.AddCommand(list, create, update, &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an operation",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, cmd *cobra.Command, rt *cli.Runtime, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := resultErr(rt.Deps.Operations.Delete(ctx, id)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d\n", id)
			return nil
		}),
	})
	return cmd
}

func addOperationFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("type", "t", "", "income or expense")
	cmd.Flags().String("category", "", "Category title")
	cmd.Flags().StringP("amount", "a", "", "Amount, e.g. 1500 or 12.50")
	cmd.Flags().StringP("date", "d", "", "Date (YYYY-MM-DD or DD.MM.YYYY, default today)")
	cmd.Flags().String("comment", "", "Comment")
}

func runOperationsList(ctx context.Context, cmd *cobra.Command, rt *cli.Runtime, _ []string) error {
	f, err := readFilter(cmd, rt)
	if err != nil {
		return err
	}
	res := rt.Deps.Operations.List(ctx, f)
	if err := resultErr(res); err != nil {
		return err
	}

	rows := make([][]string, 0, len(res.Value))
	for i, op := range res.Value {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(op.ID),
			rt.Messages.T(i18n.KindMsg(string(op.Type))),
			op.Category,
			op.Amount.String() + "$",
			core.ISOToDisplay(op.Date),
			op.Comment,
		})
	}
	return writeTable(cmd.OutOrStdout(), []string{"№", "ID", "Type", "Category", "Amount", "Date", "Comment"}, rows)
}

func runOperationsCreate(ctx context.Context, cmd *cobra.Command, rt *cli.Runtime, _ []string) error {
	in, err := operationInput(ctx, cmd, rt, core.Operation{})
	if err != nil {
		return err
	}
	if err := resultErr(rt.Deps.Operations.Create(ctx, in)); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "created")
	return nil
}

func runOperationsUpdate(ctx context.Context, cmd *cobra.Command, rt *cli.Runtime, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	current := rt.Deps.Operations.Get(ctx, id)
	if err := resultErr(current); err != nil {
		return err
	}
	in, err := operationInput(ctx, cmd, rt, current.Value)
	if err != nil {
		return err
	}
	if err := resultErr(rt.Deps.Operations.Update(ctx, id, in)); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "updated %d\n", id)
	return nil
}

// operationInput merges the changed flags into base and resolves the
// category title to its id.
func operationInput(ctx context.Context, cmd *cobra.Command, rt *cli.Runtime, base core.Operation) (core.OperationInput, error) {
	flags := cmd.Flags()
	if flags.Changed("type") {
		s, _ := flags.GetString("type")
		kind, err := core.ParseKind(s)
		if err != nil {
			return core.OperationInput{}, err
		}
		base.Type = kind
	}
	if flags.Changed("category") {
		base.Category, _ = flags.GetString("category")
	}
	if flags.Changed("amount") {
		s, _ := flags.GetString("amount")
		cents, err := core.ParseDecimalToCents(s)
		if err != nil {
			return core.OperationInput{}, err
		}
		base.Amount = core.Money{Cents: cents}
	}
	if flags.Changed("date") || base.Date == "" {
		s, _ := flags.GetString("date")
		date, err := isoDate(s, time.Now())
		if err != nil {
			return core.OperationInput{}, err
		}
		base.Date = date
	}
	if flags.Changed("comment") {
		base.Comment, _ = flags.GetString("comment")
	}
	if base.Comment == "" {
		base.Comment = " "
	}

	if !base.Type.Valid() {
		return core.OperationInput{}, core.ErrInvalidKind
	}
	cats := rt.Deps.Categories(base.Type).List(ctx)
	if err := resultErr(cats); err != nil {
		return core.OperationInput{}, err
	}
	catID, ok := services.FindByTitle(cats.Value, base.Category)
	if !ok {
		return core.OperationInput{}, fmt.Errorf("%w: %q", core.ErrNoCategory, base.Category)
	}

	in := core.OperationInput{
		Type:       base.Type,
		Amount:     base.Amount,
		Date:       base.Date,
		Comment:    base.Comment,
		CategoryID: catID,
	}
	return in, in.Validate()
}
