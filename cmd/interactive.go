package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"github.com/vzahanych/weather-widget/internal/config"
	"github.com/vzahanych/weather-widget/internal/render"
	"github.com/vzahanych/weather-widget/internal/search"
	"github.com/vzahanych/weather-widget/internal/view"
	"go.uber.org/zap"
)

const (
	retryCommand = ":retry"
	quitCommand  = ":quit"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Run the widget in the terminal",
	Long: `Each line typed is a city search. Searches run in the background, so a new line
replaces a search that is still loading. Type :retry after an error and :quit to exit.`,
	Args: cobra.NoArgs,
	RunE: runInteractive,
}

func runInteractive(cmd *cobra.Command, args []string) error {
	geocoder, forecaster := newClients(config.GetConfig())

	v := view.NewTerminalView(cmd.OutOrStdout())
	orch := search.NewOrchestrator(v, render.NewRenderer(v, nil), geocoder, forecaster, log, tele)

	return interact(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), v, orch)
}

func interact(ctx context.Context, in io.Reader, out io.Writer, v *view.TerminalView, orch *search.Orchestrator) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	defer wg.Wait()

	v.Show(view.StateEmpty)
	v.ResetInput()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}

			switch strings.TrimSpace(line) {
			case quitCommand:
				return nil
			case retryCommand:
				if !orch.Retry() {
					fmt.Fprintln(out, "Không có lỗi nào để thử lại.")
				}
				continue
			}

			v.SetInput(line)

			wg.Add(1)
			go func(query string) {
				defer wg.Done()
				err := orch.Submit(ctx, query)
				switch {
				case err == nil, errors.Is(err, search.ErrSuperseded):
				case errors.Is(err, search.ErrEmptyQuery):
					v.ResetInput()
				default:
					log.Debug("Interactive search failed", zap.String("query", query), zap.Error(err))
				}
			}(line)
		}
	}
}
