package main

import (
	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/model"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/syncjob"
)

const (
	sellingPointFlag = "selling-point"
	triggerFlag      = "trigger"
)

type syncOptionFlags struct {
	skipOutdated  bool
	skipNew       bool
	removeDeleted bool
	updatePrices  bool
	goodIDs       []string
}

func (f *syncOptionFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.skipOutdated, "skip-outdated", false, "Do not refresh metadata of outdated items")
	cmd.Flags().BoolVar(&f.skipNew, "skip-new", false, "Do not append goods missing from the price list")
	cmd.Flags().BoolVar(&f.removeDeleted, "remove-deleted", false, "Drop items whose good no longer exists")
	cmd.Flags().BoolVar(&f.updatePrices, "update-prices", false, "Overwrite selling point prices with the goods' prices")
	cmd.Flags().StringSliceVar(&f.goodIDs, "good", nil, "Limit the pass to these good ids (repeatable)")
}

func (f *syncOptionFlags) options() model.SyncOptions {
	return model.SyncOptions{
		UpdateOutdated: !f.skipOutdated,
		AddNew:         !f.skipNew,
		RemoveDeleted:  f.removeDeleted,
		UpdatePrices:   f.updatePrices,
		GoodIDs:        f.goodIDs,
	}
}

var syncFlags = map[string]cobraflags.Flag{
	sellingPointFlag: &cobraflags.StringFlag{
		Name:  sellingPointFlag,
		Value: "",
		Usage: "Selling point id of the price list to reconcile (required)",
	},
	triggerFlag: &cobraflags.StringFlag{
		Name:  triggerFlag,
		Value: "cli",
		Usage: "Trigger recorded on the sync job",
	},
}

var syncAllFlags = map[string]cobraflags.Flag{
	triggerFlag: &cobraflags.StringFlag{
		Name:  triggerFlag,
		Value: "cli",
		Usage: "Trigger recorded on the sync job",
	},
}

func newSyncAllCommand() *cobra.Command {
	opts := &syncOptionFlags{}
	cmd := &cobra.Command{
		Use:   "sync-all",
		Short: "Reconcile every price list with the goods catalog",
		Long: `Reconcile every price list with the goods catalog.

By default outdated items take the goods' metadata and new goods are appended
unpriced. Selling point prices are kept unless --update-prices is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runJob(cmd, syncjob.Request{
				Trigger: syncAllFlags[triggerFlag].GetString(),
				Options: opts.options(),
			})
		},
	}
	cobraflags.RegisterMap(cmd, syncAllFlags)
	opts.register(cmd)
	return cmd
}

func newSyncCommand() *cobra.Command {
	opts := &syncOptionFlags{}
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Reconcile one selling point's price list with the goods catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sellingPoint := syncFlags[sellingPointFlag].GetString()
			if sellingPoint == "" {
				return errRequired(sellingPointFlag)
			}
			return runJob(cmd, syncjob.Request{
				Trigger:        syncFlags[triggerFlag].GetString(),
				SellingPointID: sellingPoint,
				Options:        opts.options(),
			})
		},
	}
	cobraflags.RegisterMap(cmd, syncFlags)
	opts.register(cmd)
	return cmd
}

// runJob records the request as a sync job and executes it in the foreground.
func runJob(cmd *cobra.Command, req syncjob.Request) error {
	ctx := cmd.Context()
	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	job, err := e.services.Executor.Enqueue(ctx, req)
	if err != nil {
		return err
	}
	runErr := e.services.Executor.Execute(ctx, job)
	if err := printJSON(cmd.OutOrStdout(), job); err != nil {
		return err
	}
	return runErr
}
