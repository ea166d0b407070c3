package cfg

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"vidgrab/internal/console"
	"vidgrab/internal/dispatch"
	"vidgrab/internal/domain/keys"
	"vidgrab/internal/logging"
	"vidgrab/internal/models"
	"vidgrab/internal/queue"

	"github.com/spf13/cobra"
)

// initQueueCmds is the entrypoint for initializing queue commands.
func initQueueCmds() *cobra.Command {
	queueCmd := &cobra.Command{
		Use:   "queue",
		Short: "Queue commands",
		Long:  "Add, list, remove and run queued downloads.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return errors.New("please specify a subcommand. Use --help to see available subcommands")
		},
	}

	queueCmd.AddCommand(
		addQueueCmd(),
		listQueueCmd(),
		removeQueueCmd(),
		clearQueueCmd(),
		runQueueCmd(),
	)
	return queueCmd
}

// addQueueCmd analyzes a URL and appends it to the queue.
func addQueueCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "add <url>",
		Short: "Add a URL to the queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := openStore()
			if format == "" {
				format = e.store.LoadSettings().DefaultFormat
			}
			item, err := e.controller(dispatch.Discard{}, nil).Enqueue(cmd.Context(), args[0], format)
			if err != nil {
				return err
			}
			logging.S("Queued %s", describeItem(item))
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, keys.Format, "f", "", "Format key. Defaults to the default_format setting")
	return cmd
}

// listQueueCmd prints the queue in order.
func listQueueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List queued items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items := openStore().store.LoadQueue()
			if len(items) == 0 {
				logging.P("%s", queue.MsgEmpty)
				return nil
			}
			for i, item := range items {
				logging.P("%3d. %s", i+1, describeItem(item))
			}
			return nil
		},
	}
}

// removeQueueCmd deletes one item by its list position.
func removeQueueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <index>",
		Short: "Remove a queued item by its position in 'queue list'",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid index %q: %w", args[0], err)
			}
			removed, err := openStore().store.RemoveFromQueue(n - 1)
			if err != nil {
				return err
			}
			logging.S("Removed %s", describeItem(removed))
			return nil
		},
	}
}

// clearQueueCmd empties the queue after confirmation.
func clearQueueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every queued item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := confirm(cmd.Context(), "Clear the whole queue?")
			if err != nil || !ok {
				return err
			}
			if err := openStore().store.ClearQueue(); err != nil {
				return err
			}
			logging.S("Queue cleared")
			return nil
		},
	}
}

// runQueueCmd drains the queue one item at a time.
func runQueueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Download every queued item in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e := openLedger(cmd.Context())
			defer e.close()

			return runWithUI(cmd.Context(), func(ctx context.Context, sink dispatch.Sink, r *console.Renderer) error {
				return queue.NewDriver(e.store, e.controller(sink, r), sink).Drain(ctx)
			})
		},
	}
}

// describeItem renders one queue item for listings.
func describeItem(item models.QueueItem) string {
	s := fmt.Sprintf("[%s] %s (%s)", item.Kind, item.Title, item.FormatKey)
	if item.Kind == models.KindPlaylist {
		s += fmt.Sprintf(" %d items", item.Count)
	}
	return s + " - " + item.URL
}
