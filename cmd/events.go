package cmd

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"tickethub-cli/catalog"
)

func newBookCmd(rt *runtime) *cobra.Command {
	var eventID int
	bookCmd := &cobra.Command{
		Use:   "book",
		Short: "Open the seat map for one event",
		Long:  `Open the interface straight on the seat map of the given event.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if eventID <= 0 {
				return errors.New("--event must be a positive event id")
			}
			return rt.runTUI(eventID)
		},
	}
	bookCmd.Flags().IntVar(&eventID, "event", 0, "id of the event to book")
	_ = bookCmd.MarkFlagRequired("event")
	return bookCmd
}

func newEventsCmd(rt *runtime) *cobra.Command {
	var search, category string
	eventsCmd := &cobra.Command{
		Use:   "events",
		Short: "List events in the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.open(); err != nil {
				return err
			}
			events, err := rt.source.Load(context.Background())
			if err != nil {
				rt.log.WithError(err).Error("catalog load failed")
				return errors.WithHint(errors.Wrap(err, "load events"), "Error loading events. Please try again later.")
			}
			events = catalog.Search(events, search)
			events = catalog.ByCategory(events, category)
			if len(events) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No events match.")
				return nil
			}
			renderEvents(cmd.OutOrStdout(), events)
			return nil
		},
	}
	eventsCmd.Flags().StringVar(&search, "search", "", "match title or description")
	eventsCmd.Flags().StringVar(&category, "category", "", "only events of this category")
	return eventsCmd
}

func newBookingsCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "bookings",
		Short: "List your bookings, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.open(); err != nil {
				return err
			}
			recent, err := rt.ledger.Recent()
			if err != nil {
				return err
			}
			if len(recent) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No Bookings Found. You haven't made any bookings yet.")
				return nil
			}
			renderBookings(cmd.OutOrStdout(), recent)
			return nil
		},
	}
}
