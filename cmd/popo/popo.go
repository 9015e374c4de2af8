// Command popo prints the CENAPRED Popocatépetl bulletin.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/abelzeko/popo-bot/internal/config"
	"github.com/abelzeko/popo-bot/internal/entities"
	"github.com/abelzeko/popo-bot/internal/integration"
	"github.com/abelzeko/popo-bot/internal/observability"
	"github.com/abelzeko/popo-bot/internal/render"
	"github.com/abelzeko/popo-bot/internal/usecases"
)

const usage = `Usage: popo [command]

Commands:
  latest                  Show the latest bulletin as a report
  json                    Print the latest bulletin as JSON (default)
  alert                   Show the alert status and summary
  get <YYYY-MM-DD> [--json]
                          Show the bulletin for a date
  schema                  Print the JSON Schema of the report
`

// reportService is the part of the use case the CLI needs.
type reportService interface {
	Latest(ctx context.Context) (entities.VolcanoReport, error)
	ByDate(ctx context.Context, raw string) (entities.VolcanoReport, error)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	observability.SetupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	useCase := usecases.NewVolcanoUseCase(integration.NewFromConfig(cfg, nil))
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, useCase)
	stop()
	os.Exit(code)
}

// run executes one CLI command and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, svc reportService) int {
	command := "json"
	if len(args) > 0 {
		command, args = args[0], args[1:]
	}

	var err error
	switch command {
	case "latest":
		err = printLatest(ctx, stdout, svc, usecases.FormatReport)
	case "json":
		err = printLatestJSON(ctx, stdout, svc)
	case "alert":
		err = printLatest(ctx, stdout, svc, usecases.FormatAlert)
	case "get":
		err = printDate(ctx, args, stdout, stderr, svc)
	case "schema":
		err = printSchema(stdout)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n%s", command, usage)
		return 2
	}

	if err != nil {
		log.Debug().Err(err).Str("command", command).Msg("Command failed")
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func printLatest(ctx context.Context, w io.Writer, svc reportService, format func(entities.VolcanoReport) string) error {
	report, err := svc.Latest(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, format(report))
	return err
}

func printLatestJSON(ctx context.Context, w io.Writer, svc reportService) error {
	report, err := svc.Latest(ctx)
	if err != nil {
		return err
	}
	return render.JSON(w, report)
}

func printDate(ctx context.Context, args []string, stdout, stderr io.Writer, svc reportService) error {
	fs := flag.NewFlagSet("get", flag.ContinueOnError)
	fs.SetOutput(stderr)
	asJSON := fs.Bool("json", false, "print JSON instead of the report")

	if err := fs.Parse(args); err != nil {
		return err
	}
	positional := fs.Args()
	if len(positional) == 0 {
		return fmt.Errorf("missing date. Usage: popo get <YYYY-MM-DD> [--json]")
	}
	date := positional[0]
	// Flags may follow the date.
	if err := fs.Parse(positional[1:]); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	report, err := svc.ByDate(ctx, date)
	if err != nil {
		return err
	}
	if *asJSON {
		return render.JSON(stdout, report)
	}
	_, err = fmt.Fprint(stdout, usecases.FormatReport(report))
	return err
}

func printSchema(w io.Writer) error {
	body, err := render.SchemaJSON()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(body))
	return err
}
