package cmd

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vzahanych/weather-widget/internal/config"
	"github.com/vzahanych/weather-widget/internal/render"
	"github.com/vzahanych/weather-widget/internal/search"
	"github.com/vzahanych/weather-widget/internal/view"
)

var searchCmd = &cobra.Command{
	Use:   "search <city>",
	Short: "Look up the weather for a city once",
	Example: `  weather search Hanoi
  weather search "Ho Chi Minh"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx, end := tele.StartSpan(cmd.Context(), "cli.search")
	defer end()

	geocoder, forecaster := newClients(config.GetConfig())

	v := view.NewTerminalView(cmd.OutOrStdout())
	orch := search.NewOrchestrator(v, render.NewRenderer(v, nil), geocoder, forecaster, log, tele)

	err := orch.Submit(ctx, strings.Join(args, " "))
	if errors.Is(err, search.ErrEmptyQuery) {
		return errors.New("city name must not be blank")
	}
	if err != nil {
		// the terminal view already printed the message
		cmd.SilenceErrors = true
	}
	return err
}
