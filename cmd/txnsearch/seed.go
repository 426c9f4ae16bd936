package main

import (
	"fmt"
	"strings"

	"txn-search/internal/seed"

	"github.com/spf13/cobra"
)

var (
	seedCount     int
	seedBatchSize int
	seedAccounts  int
	seedValue     uint64
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load generated transactions into the index",
	Long: `Generates transactions over a pool of 12-digit accounts with dates in the last
95 days and bulk-indexes them in batches.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(cmd.ErrOrStderr())
		client, cfg, err := newEngineClient(logger)
		if err != nil {
			return err
		}

		generator := seed.NewGenerator(seedValue, seed.WithAccountPool(seedAccounts))
		summary, err := seed.NewSeeder(client, generator, seedBatchSize, logger).Run(cmd.Context(), seedCount)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "indexed %d, failed %d, in %d batches into %s\n",
			summary.Indexed, summary.Failed, summary.Batches, cfg.Search.Index)
		if err != nil {
			return err
		}

		accounts := generator.Accounts()
		fmt.Fprintf(out, "sample accounts: %s\n", strings.Join(accounts[:min(5, len(accounts))], ", "))
		return nil
	},
}

func init() {
	seedCmd.Flags().IntVarP(&seedCount, "count", "n", 10000, "number of transactions to generate")
	seedCmd.Flags().IntVar(&seedBatchSize, "batch-size", seed.DefaultBatchSize, "documents per bulk request")
	seedCmd.Flags().IntVar(&seedAccounts, "accounts", 50, "number of distinct accounts")
	seedCmd.Flags().Uint64Var(&seedValue, "seed", 0, "random seed, 0 for a random one")
}
