package main

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

// Commands understood by the CLI.
const (
	CommandRender   = "render"
	CommandValidate = "validate"
	CommandFill     = "fill"
	CommandList     = "list"
)

// ExitError carries the process exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements error.
func (e *ExitError) Error() string {
	return e.Message
}

// Config holds the parsed command line.
type Config struct {
	Command     string
	FormsDir    string
	Form        string
	Source      string
	Operation   string
	ValuesPath  string
	Locale      string
	Messages    string
	Output      string
	MaxAttempts int
	LogLevel    string
	LogFormat   string
}

const usage = `
formwidgets-cli renders, validates and fills forms.

Usage:
  formwidgets-cli <command> [options]

Commands:
  render     Print the HTML of a form, optionally with submitted values.
  validate   Validate a JSON values file and print the result as JSON.
  fill       Ask for every field on the terminal and print the values.
  list       List the forms or OpenAPI operations that can be used.

A form comes either from a definitions directory (-forms and -form) or
from an OpenAPI document (-source and -operation).

Options:
`

// Parse processes command line arguments. It reports whether the program
// should exit without running a command.
func Parse(args []string, output io.Writer) (*Config, bool, error) {
	if len(args) == 0 {
		fmt.Fprint(output, usage)
		return nil, true, nil
	}
	command := args[0]
	switch command {
	case "-h", "-help", "--help", "help":
		fmt.Fprint(output, usage)
		return nil, true, nil
	case CommandRender, CommandValidate, CommandFill, CommandList:
	default:
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unknown command %q", command)}
	}

	flagSet := flag.NewFlagSet("formwidgets-cli "+command, flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(output, usage)
		flagSet.PrintDefaults()
	}

	cfg := &Config{Command: command}
	flagSet.StringVar(&cfg.FormsDir, "forms", "", "Directory with .json, .yaml or .hcl form definitions.")
	flagSet.StringVar(&cfg.Form, "form", "", "Name of the form definition to use.")
	flagSet.StringVar(&cfg.Source, "source", "", "OpenAPI document path or URL.")
	flagSet.StringVar(&cfg.Operation, "operation", "", "OpenAPI operation ID to build the form from.")
	flagSet.StringVar(&cfg.ValuesPath, "values", "", "JSON file with submitted values.")
	flagSet.StringVar(&cfg.Locale, "locale", "", "Locale used for validation messages.")
	flagSet.StringVar(&cfg.Messages, "messages", "", "YAML file with translated validation messages (locale: key: message).")
	flagSet.StringVar(&cfg.Output, "output", "", "Output file (stdout if empty).")
	flagSet.IntVar(&cfg.MaxAttempts, "attempts", 3, "Validation rounds before fill gives up.")
	flagSet.StringVar(&cfg.LogLevel, "log-level", "info", "Logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flagSet.StringVar(&cfg.LogFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")

	if err := flagSet.Parse(args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	if err := cfg.validate(); err != nil {
		return nil, false, err
	}
	return cfg, false, nil
}

func (c *Config) validate() error {
	fromSpec := c.FormsDir != ""
	fromOpenAPI := c.Source != ""
	switch {
	case fromSpec && fromOpenAPI:
		return &ExitError{Code: 2, Message: "use either -forms or -source, not both"}
	case !fromSpec && !fromOpenAPI:
		return &ExitError{Code: 2, Message: "one of -forms or -source is required"}
	}
	if c.Command == CommandList {
		return nil
	}
	if fromSpec && c.Form == "" {
		return &ExitError{Code: 2, Message: "-form is required with -forms"}
	}
	if fromOpenAPI && c.Operation == "" {
		return &ExitError{Code: 2, Message: "-operation is required with -source"}
	}
	if c.Command == CommandValidate && c.ValuesPath == "" {
		return &ExitError{Code: 2, Message: "-values is required for validate"}
	}
	return nil
}
