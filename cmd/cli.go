package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/sahib/config"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/sahib/stencil"
	colorlog "github.com/sahib/stencil/util/log"
)

func init() {
	log.SetOutput(os.Stderr)
	log.SetLevel(log.InfoLevel)
	log.SetFormatter(&colorlog.FancyLogFormatter{
		UseColors: true,
	})
}

// ExitCode is an error that maps the error interface to a specific error
// message and a unix exit code
type ExitCode struct {
	Code    int
	Message string
}

func (err ExitCode) Error() string {
	return err.Message
}

func formatGroup(category string) string {
	return strings.ToUpper(category) + " COMMANDS"
}

func setLogPath(path string) error {
	switch path {
	case "stdout":
		log.SetOutput(os.Stdout)
	case "stderr":
		log.SetOutput(os.Stderr)
	default:
		fd, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}

		log.SetOutput(fd)
	}

	return nil
}

type checkFunc func(ctx *cli.Context) int

type cmdHandlerWithConfig func(ctx *cli.Context, cfg *config.Config) int

func withConfig(handler cmdHandlerWithConfig) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		cfg, err := openConfig(ctx.GlobalString("config"))
		if err != nil {
			return ExitCode{
				BadConfig,
				fmt.Sprintf("failed to load config: %v", err),
			}
		}

		if code := handler(ctx, cfg); code != Success {
			return ExitCode{code, ""}
		}

		return nil
	}
}

func withArgCheck(checker checkFunc, handler cli.ActionFunc) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		if code := checker(ctx); code != Success {
			return ExitCode{code, ""}
		}

		return handler(ctx)
	}
}

func needAtLeast(min int) checkFunc {
	return func(ctx *cli.Context) int {
		if ctx.NArg() < min {
			if min == 1 {
				log.Warningf("Need at least %d argument.", min)
			} else {
				log.Warningf("Need at least %d arguments.", min)
			}

			if err := cli.ShowCommandHelp(ctx, ctx.Command.Name); err != nil {
				log.Warningf("Failed to display --help: %v", err)
			}

			return BadArgs
		}

		return Success
	}
}

// RunCmdline starts the stencil commandline tool.
func RunCmdline(args []string) int {
	app := cli.NewApp()
	app.Name = "stencil"
	app.Usage = "Cut, join and compress byte ranges of files"
	app.EnableBashCompletion = true
	app.Version = stencil.VersionString()

	// Groups:
	viewGroup := formatGroup("view")
	zipGroup := formatGroup("compression")

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "log-path,l",
			Usage:  "Where to output the log. May be 'stderr' (default) or 'stdout'",
			Value:  "stderr",
			EnvVar: "STENCIL_LOG",
		},
		cli.StringFlag{
			Name:   "config,c",
			Usage:  "Path to a YAML config file",
			Value:  "",
			EnvVar: "STENCIL_CONFIG",
		},
		cli.BoolFlag{
			Name:  "debug,d",
			Usage: "Enable debug log output",
		},
		cli.BoolFlag{
			Name:  "no-color",
			Usage: "Disable colored output",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:        "cut",
			Category:    viewGroup,
			Usage:       "Output selected byte ranges of a file",
			ArgsUsage:   "<file>",
			Description: "Reads the ranges given via --range from <file>\n   and streams their concatenation to the output.",
			Action:      withArgCheck(needAtLeast(1), withConfig(handleCut)),
			Flags: []cli.Flag{
				cli.StringSliceFlag{
					Name:  "range,r",
					Usage: "A byte range in the form OFF:LEN; may be given several times",
				},
				cli.StringFlag{
					Name:  "output,o",
					Usage: "Where to write the result ('-' means stdout)",
					Value: "-",
				},
				cli.BoolFlag{
					Name:  "zip,z",
					Usage: "Treat <file> as a compressed stream and address uncompressed offsets",
				},
			},
		},
		{
			Name:        "join",
			Category:    viewGroup,
			Usage:       "Concatenate several files into one stream",
			ArgsUsage:   "<file>...",
			Description: "Opens all given files lazily and streams them back to back.",
			Action:      withArgCheck(needAtLeast(1), withConfig(handleJoin)),
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "output,o",
					Usage: "Where to write the result ('-' means stdout)",
					Value: "-",
				},
			},
		},
		{
			Name:        "zip",
			Category:    zipGroup,
			Usage:       "Compress a file into a seekable stream",
			ArgsUsage:   "<file>",
			Description: "Compresses <file> chunk-wise, so the result stays seekable.",
			Action:      withArgCheck(needAtLeast(1), withConfig(handleZip)),
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "algo,a",
					Usage: "Algorithm to use (guess|none|snappy|lz4)",
					Value: "",
				},
				cli.StringFlag{
					Name:  "output,o",
					Usage: "Where to write the result ('-' means stdout)",
					Value: "-",
				},
			},
		},
		{
			Name:        "unzip",
			Category:    zipGroup,
			Usage:       "Decompress a seekable stream again",
			ArgsUsage:   "<file>",
			Action:      withArgCheck(needAtLeast(1), withConfig(handleUnzip)),
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "output,o",
					Usage: "Where to write the result ('-' means stdout)",
					Value: "-",
				},
			},
		},
		{
			Name:     "version",
			Category: formatGroup("misc"),
			Usage:    "Show the version of stencil",
			Action:   handleVersion,
		},
	}

	app.Before = func(ctx *cli.Context) error {
		if ctx.Bool("debug") {
			log.SetLevel(log.DebugLevel)
		}

		if ctx.Bool("no-color") {
			color.NoColor = true
			log.SetFormatter(&colorlog.FancyLogFormatter{
				UseColors: false,
			})
		}

		return setLogPath(ctx.String("log-path"))
	}

	if err := app.Run(args); err != nil {
		if exitErr, ok := err.(ExitCode); ok {
			if exitErr.Message != "" {
				log.Error(exitErr.Message)
			}

			return exitErr.Code
		}

		log.Errorf("%v", err)
		return UnknownError
	}

	return Success
}
