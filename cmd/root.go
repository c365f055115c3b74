package cmd

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"tickethub-cli/booking"
	"tickethub-cli/catalog"
	"tickethub-cli/config"
	"tickethub-cli/contact"
	"tickethub-cli/logging"
	"tickethub-cli/model"
	"tickethub-cli/store"
	"tickethub-cli/tui"
)

const appName = "tickethub"

// runtime is built once per invocation from config and flags.
type runtime struct {
	catalogFlag string
	dataDirFlag string

	cfg      *config.Config
	log      *logrus.Logger
	closer   io.Closer
	source   catalog.Source
	ledger   *booking.Ledger
	contacts *contact.Book
	handoff  store.Handoff
	consent  store.Consent
}

func (r *runtime) open() error {
	if r.cfg != nil {
		return nil
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if r.catalogFlag != "" {
		cfg.Catalog = r.catalogFlag
	}
	if r.dataDirFlag != "" {
		cfg.DataDir = r.dataDirFlag
	}

	log, closer, err := logging.New(cfg.LogPath(), cfg.LogLevel)
	if err != nil {
		return err
	}
	r.cfg = cfg
	r.log = log
	r.closer = closer
	r.source = catalog.New(cfg.Catalog, nil)
	r.ledger = booking.NewLedger(
		store.NewFile[model.Booking](cfg.DataDir, store.BookingsKey, log),
		booking.WithLogger(log),
	)
	r.contacts = contact.NewBook(store.NewFile[model.ContactSubmission](cfg.DataDir, store.ContactsKey, log), log)
	r.handoff = store.NewHandoff(cfg.DataDir)
	r.consent = store.NewConsent(cfg.DataDir)

	log.WithFields(logrus.Fields{
		"data_dir": cfg.DataDir,
		"catalog":  cfg.Catalog,
	}).Debug("runtime ready")
	return nil
}

func (r *runtime) close() {
	if r.closer != nil {
		_ = r.closer.Close()
	}
}

func (r *runtime) runTUI(startEventID int) error {
	if err := r.open(); err != nil {
		return err
	}
	app := tui.New(tui.Options{
		Catalog:      r.source,
		Ledger:       r.ledger,
		Contacts:     r.contacts,
		Handoff:      r.handoff,
		Log:          r.log,
		StartEventID: startEventID,
	})
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		return errors.Wrap(err, "run interface")
	}
	return nil
}

func versionString(version, commit string) string {
	out := fmt.Sprintf("%s %s", appName, version)
	if commit != "none" && commit != "" {
		out += fmt.Sprintf(" (%s)", commit)
	}
	return out
}

// NewRootCmd wires every subcommand around one shared runtime.
func NewRootCmd(version, commit string) *cobra.Command {
	rt := &runtime{}

	rootCmd := &cobra.Command{
		Use:           appName,
		Short:         "Book event tickets from the terminal",
		Long:          `Browse events, pick seats on the seat map and keep your bookings, all from the terminal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.runTUI(0)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			rt.close()
		},
	}
	rootCmd.PersistentFlags().StringVar(&rt.catalogFlag, "catalog", "", "catalog file path or http(s) URL (default: built-in events)")
	rootCmd.PersistentFlags().StringVar(&rt.dataDirFlag, "data-dir", "", "directory holding bookings and contact submissions")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number of TicketHub",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), versionString(version, commit))
		},
	}

	rootCmd.AddCommand(
		newBookCmd(rt),
		newEventsCmd(rt),
		newBookingsCmd(rt),
		newContactCmd(rt),
		newTermsCmd(rt),
		versionCmd,
	)
	return rootCmd
}

func Execute(version, commit string) error {
	return NewRootCmd(version, commit).Execute()
}
