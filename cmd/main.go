// cmd/main.go

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/invoice-generator/pkg/config"
	"github.com/invoice-generator/pkg/counter"
	"github.com/invoice-generator/pkg/form"
	"github.com/invoice-generator/pkg/generator"
	"github.com/invoice-generator/pkg/invoice"
	"github.com/invoice-generator/pkg/layout"
	"github.com/invoice-generator/pkg/logging"
	"github.com/invoice-generator/pkg/render"
)

func main() {
	app := newApp(os.Stdin, os.Stdout)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps the failure classes of a generation attempt to distinct codes.
func exitCode(err error) int {
	switch {
	case errors.Is(err, invoice.ErrValidation):
		return 2
	case errors.Is(err, counter.ErrCorruptCounter), errors.Is(err, generator.ErrNumberBurned):
		return 3
	case errors.Is(err, layout.ErrItemTooLarge), errors.Is(err, layout.ErrNoItems):
		return 4
	case errors.Is(err, render.ErrIO):
		return 5
	default:
		return 1
	}
}

type env struct {
	settings config.Settings
	logger   *zap.Logger
}

func newApp(in io.Reader, out io.Writer) *cli.App {
	e := &env{logger: zap.NewNop()}

	return &cli.App{
		Name:   "invoicegen",
		Usage:  "generate numbered A4 PDF invoices",
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: "config.txt", Usage: "key=value defaults file", EnvVars: []string{"INVOICEGEN_CONFIG"}},
			&cli.StringFlag{Name: "log-level", Value: "info", Usage: "debug, info, warn or error"},
			&cli.BoolFlag{Name: "dev", Usage: "human readable logs"},
		},
		Before: func(c *cli.Context) error {
			logger, err := logging.New(c.String("log-level"), c.Bool("dev"))
			if err != nil {
				return fmt.Errorf("log level: %w", err)
			}
			e.logger = logger

			settings, err := config.Load(c.String("config"))
			if errors.Is(err, config.ErrConfigNotFound) {
				logger.Warn("using built-in defaults", zap.Error(err))
			} else if err != nil {
				return err
			}
			e.settings = settings
			return nil
		},
		After: func(*cli.Context) error {
			_ = e.logger.Sync()
			return nil
		},
		// exit codes are decided in main
		ExitErrHandler: func(*cli.Context, error) {},
		Commands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "generate the next invoice",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Usage: "YAML invoice document"},
					&cli.BoolFlag{Name: "interactive", Usage: "prompt for customer and line items"},
					&cli.StringFlag{Name: "date", Usage: "invoice date when not given otherwise (" + form.DateLayout + ")"},
				},
				Action: func(c *cli.Context) error {
					return e.generate(c, in, out)
				},
			},
			{
				Name:  "counter",
				Usage: "inspect the invoice number counter",
				Subcommands: []*cli.Command{
					{
						Name:  "show",
						Usage: "print the last issued invoice number",
						Action: func(c *cli.Context) error {
							n, err := e.store().ReadCurrent()
							if err != nil {
								return err
							}
							fmt.Fprintln(out, n)
							return nil
						},
					},
				},
			},
		},
	}
}

func (e *env) store() *counter.FileStore {
	return counter.NewFileStore(e.settings.CounterPath, e.settings.CounterSeed)
}

func (e *env) generate(c *cli.Context, in io.Reader, out io.Writer) error {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if d := c.String("date"); d != "" {
		t, err := time.Parse(form.DateLayout, d)
		if err != nil {
			return fmt.Errorf("--date: %w", err)
		}
		today = t
	}

	var rec invoice.Record
	var err error
	switch {
	case c.Bool("interactive"):
		rec, err = form.Prompt(in, out, e.settings.Template, today)
	case c.String("input") != "":
		f, openErr := os.Open(c.String("input"))
		if openErr != nil {
			return openErr
		}
		defer f.Close()
		rec, err = form.Decode(f, e.settings.Template, today)
	default:
		return errors.New("generate needs --input <file> or --interactive")
	}
	if err != nil {
		return err
	}

	emitter := render.NewEmitter(nil, e.logger)
	emitter.CreationDate = now
	gen := generator.New(e.store(), emitter, e.settings.OutDir, e.logger)
	res, err := gen.Generate(rec)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Invoice generated successfully and saved as %s.\n", res.Path)
	return nil
}
