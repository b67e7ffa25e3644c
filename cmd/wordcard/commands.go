package main

import (
	"fmt"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/wordcard-backend/internal/adapter/sqlite/wordstore"
	"github.com/heartmarshall/wordcard-backend/internal/app"
	"github.com/heartmarshall/wordcard-backend/internal/app/archive"
	"github.com/heartmarshall/wordcard-backend/internal/domain"
)

func init() {
	rootCmd.AddCommand(
		serveCmd(),
		createCmd(),
		purgeCmd(),
		dumpCmd(),
		migrateCmd(),
		statsCmd(),
		queueCmd(),
		versionCmd(),
	)
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			return app.Run(cmd.Context(), cfg, logger)
		},
	}
}

func createCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create or upgrade the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withComponents(cmd.Context(), func(c *app.Components, _ *slog.Logger) error {
				if err := c.Store.EnsureSchema(cmd.Context()); err != nil {
					return err
				}
				v, err := c.Store.SchemaVersion(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", v)
				return nil
			})
		},
	}
}

func purgeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "purge [TABLE...]",
		Short: "Delete all rows, or only rows of the named tables",
		Long:  "Delete all rows, or only rows of the named tables (" + strings.Join(wordstore.Tables, ", ") + ").",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withComponents(cmd.Context(), func(c *app.Components, _ *slog.Logger) error {
				n, err := c.Store.Purge(cmd.Context(), args...)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "purged %d words\n", n)
				return nil
			})
		},
	}
}

func dumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump DIR",
		Short: "Write one JSON record file per word into DIR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withComponents(cmd.Context(), func(c *app.Components, logger *slog.Logger) error {
				report, err := archive.DumpDir(cmd.Context(), args[0], c.Vocab, logger)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "dumped %s records\n", report)
				return nil
			})
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate DIR",
		Short: "Import every *.json record file in DIR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withComponents(cmd.Context(), func(c *app.Components, logger *slog.Logger) error {
				report, err := archive.LoadDir(cmd.Context(), args[0], c.Vocab, logger)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "migrated %s records\n", report)
				return nil
			})
		},
	}
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print row counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withComponents(cmd.Context(), func(c *app.Components, _ *slog.Logger) error {
				st, err := c.Vocab.Stats(cmd.Context())
				if err != nil {
					return err
				}
				qs, err := c.Lookup.GetStats(cmd.Context())
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintf(tw, "words\t%d\n", st.Words)
				fmt.Fprintf(tw, "contexts\t%d\n", st.Contexts)
				fmt.Fprintf(tw, "definitions\t%d\n", st.Definitions)
				fmt.Fprintf(tw, "mastered\t%d\n", st.Mastered)
				fmt.Fprintf(tw, "queue pending\t%d\n", qs.Pending)
				fmt.Fprintf(tw, "queue failed\t%d\n", qs.Failed)
				return tw.Flush()
			})
		},
	}
}

func queueCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "queue", Short: "Inspect and repair the lookup queue"}

	var status string
	var limit, offset int
	list := &cobra.Command{
		Use:   "list",
		Short: "List queued lookups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withComponents(cmd.Context(), func(c *app.Components, _ *slog.Logger) error {
				items, err := c.Lookup.List(cmd.Context(), domain.LookupStatus(status), limit, offset)
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tWORD\tSTATUS\tATTEMPTS\tERROR")
				for _, it := range items {
					errMsg := ""
					if it.ErrorMessage != nil {
						errMsg = *it.ErrorMessage
					}
					fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", it.ID, it.Word, it.Status, it.Attempts, errMsg)
				}
				return tw.Flush()
			})
		},
	}
	list.Flags().StringVarP(&status, "status", "s", "", "Filter by status (pending, processing, done, failed)")
	list.Flags().IntVarP(&limit, "limit", "n", 50, "Maximum items to show")
	list.Flags().IntVar(&offset, "offset", 0, "Items to skip")

	retry := &cobra.Command{
		Use:   "retry",
		Short: "Move every failed lookup back to pending",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withComponents(cmd.Context(), func(c *app.Components, _ *slog.Logger) error {
				n, err := c.Lookup.RetryAllFailed(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "requeued %d items\n", n)
				return nil
			})
		},
	}

	cmd.AddCommand(list, retry)
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), app.BuildVersion())
		},
	}
}
