package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"mechanicbook/client"
	"mechanicbook/render"
	"mechanicbook/services/wizard"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var rootFlags struct {
	apiURL   string
	debounce time.Duration
}

var rootCmd = &cobra.Command{
	Use:   "booking",
	Short: "Book a mobile mechanic from the terminal",
	Long: `booking walks through the four booking steps: your car, the work you need,
your availability and contact details, and a final review before the request is sent.`,
	SilenceUsage: true,
	RunE:         runBooking,
}

func init() {
	defaultURL := os.Getenv("MECHANICBOOK_API_URL")
	if defaultURL == "" {
		defaultURL = client.DefaultBaseURL
	}
	rootCmd.Flags().StringVar(&rootFlags.apiURL, "api", defaultURL, "Base URL of the mechanicbook API")
	rootCmd.Flags().DurationVar(&rootFlags.debounce, "debounce", wizard.DefaultDebounce, "Idle time before a lookup fires")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func runBooking(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	api := client.New(rootFlags.apiURL)

	lookups := wizard.NewLookups(api, api, wizard.WithDebounce(rootFlags.debounce))
	defer lookups.Close()

	w := wizard.New(
		wizard.WithSubmitter(api),
		wizard.WithSequencer(lookups),
		wizard.WithScheduler(lookups),
	)

	cat, err := api.Catalog(ctx)
	if err != nil {
		w.CatalogFailed(err)
	} else {
		w.SetCatalog(cat)
	}
	if resp, err := api.Clarify(ctx, emptyClarify); err == nil && len(resp.Questions) > 0 {
		w.SetClarifierQuestions(resp.Questions)
	}

	f := &flow{w: w, lookups: lookups, out: cmd.OutOrStdout()}
	err = f.run(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		fmt.Fprintln(cmd.OutOrStdout(), render.Muted("Booking cancelled."))
		return nil
	}
	return err
}
