package main

import (
	"fmt"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/model"
)

const (
	typeFlag    = "type"
	idFlag      = "id"
	oldNameFlag = "old-name"
	newNameFlag = "new-name"
)

func errRequired(flag string) error {
	return fmt.Errorf("--%s is required", flag)
}

var compareFlags = map[string]cobraflags.Flag{
	sellingPointFlag: &cobraflags.StringFlag{
		Name:  sellingPointFlag,
		Value: "",
		Usage: "Selling point id of the price list to compare (required)",
	},
}

func newCompareCommand() *cobra.Command {
	var summaryOnly bool
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Show how a price list differs from the goods catalog without changing it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sellingPoint := compareFlags[sellingPointFlag].GetString()
			if sellingPoint == "" {
				return errRequired(sellingPointFlag)
			}
			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			res, err := e.services.PriceLists.Compare(cmd.Context(), sellingPoint)
			if err != nil {
				return err
			}
			if summaryOnly {
				return printJSON(cmd.OutOrStdout(), res.Summary)
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	cobraflags.RegisterMap(cmd, compareFlags)
	cmd.Flags().BoolVar(&summaryOnly, "summary", false, "Print only the counts")
	return cmd
}

var syncNamesFlags = map[string]cobraflags.Flag{
	typeFlag: &cobraflags.StringFlag{
		Name:  typeFlag,
		Value: "",
		Usage: "Renamed entity type: stock, color, belt, glove or remainingProduct (required)",
	},
	idFlag: &cobraflags.StringFlag{
		Name:  idFlag,
		Value: "",
		Usage: "Id of the renamed master entity",
	},
	oldNameFlag: &cobraflags.StringFlag{
		Name:  oldNameFlag,
		Value: "",
		Usage: "Name before the rename (required)",
	},
	newNameFlag: &cobraflags.StringFlag{
		Name:  newNameFlag,
		Value: "",
		Usage: "Name after the rename (required)",
	},
}

func newSyncNamesCommand() *cobra.Command {
	var updatePrices bool
	cmd := &cobra.Command{
		Use:   "sync-names",
		Short: "Rewrite goods names after a master entity rename and reconcile price lists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range []string{typeFlag, oldNameFlag, newNameFlag} {
				if syncNamesFlags[name].GetString() == "" {
					return errRequired(name)
				}
			}
			renameType := model.RenameType(syncNamesFlags[typeFlag].GetString())
			id := syncNamesFlags[idFlag].GetString()
			ev := &model.RenameEvent{
				Type:         renameType,
				FieldType:    renameType.FieldType(),
				OldValue:     &model.RenameValue{ID: id, Name: syncNamesFlags[oldNameFlag].GetString()},
				NewValue:     &model.RenameValue{ID: id, Name: syncNamesFlags[newNameFlag].GetString()},
				UpdatePrices: updatePrices,
			}

			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			res, err := e.services.Goods.SyncProductNames(cmd.Context(), ev)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	cobraflags.RegisterMap(cmd, syncNamesFlags)
	cmd.Flags().BoolVar(&updatePrices, "update-prices", false, "Also propagate goods prices in the follow-up reconciliation")
	return cmd
}

func newJobsCommand() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "jobs [id]",
		Short: "List recent sync jobs, or show one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			if len(args) == 1 {
				job, err := e.services.Executor.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), job)
			}
			jobs, err := e.services.Executor.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), jobs)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Number of jobs to list")
	return cmd
}
