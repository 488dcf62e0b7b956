// Package cmd implements the chartkit CLI commands.
//
// The root command dispatches to subcommands (render, config, version).
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-drift/chartkit/pkg/errors"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name        string
	Short       string
	Long        string
	Usage       string
	Run         func(args []string) error
	SubCommands []*Command
}

var rootCmd = &Command{
	Name:  "chartkit",
	Short: "chartkit - offscreen chart rendering",
	Long: `chartkit animates a chart against a display clock, renders every frame
into an offscreen surface and exports the final image.

Use "chartkit <command> --help" for more information about a command.`,
	Usage: "chartkit <command> [flags]",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	rootCmd.SubCommands = append(rootCmd.SubCommands, cmd)
}

// Execute runs the CLI with the given arguments.
func Execute(args []string) error {
	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	// Handle global flags
	level := slog.LevelWarn
	var filteredArgs []string
	for _, arg := range args {
		switch arg {
		case "-h", "--help", "help":
			if len(filteredArgs) == 0 {
				printHelp(rootCmd)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "-v", "--version":
			if len(filteredArgs) == 0 {
				printVersion()
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "--verbose":
			level = slog.LevelDebug
		default:
			filteredArgs = append(filteredArgs, arg)
		}
	}
	args = filteredArgs
	setupLogging(level)

	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	// Find and execute the command
	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", cmdName)
		printHelp(rootCmd)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	// Check for help flag on subcommand
	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(cmd)
			return nil
		}
	}

	return cmd.Run(cmdArgs)
}

func setupLogging(level slog.Level) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	errors.SetLogger(logger)
	errors.SetHandler(&errors.LogHandler{Verbose: level <= slog.LevelDebug})
}

func printVersion() {
	fmt.Printf("chartkit version %s (built %s)\n", Version, BuildTime)
}

func printHelp(cmd *Command) {
	fmt.Println(cmd.Long)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  %s\n", cmd.Usage)
	fmt.Println()
	fmt.Println("Commands:")
	for _, sub := range cmd.SubCommands {
		fmt.Printf("  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -h, --help           Show help for a command")
	fmt.Println("  -v, --version        Show version information")
	fmt.Println("  --verbose            Log clock and surface activity")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  chartkit render                    Render chart.png using chartkit.yaml")
	fmt.Println("  chartkit render --out bars.jpg     Render a JPEG")
	fmt.Println("  chartkit config                    Show the resolved configuration")
}

func printCommandHelp(cmd *Command) {
	fmt.Println(cmd.Long)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  %s\n", cmd.Usage)
}

// flagValue extracts "--name value" or "--name=value" from args.
func flagValue(args []string, i int, name string) (value string, next int, ok bool, err error) {
	arg := args[i]
	if arg == name {
		if i+1 >= len(args) {
			return "", i, true, fmt.Errorf("%s requires a value", name)
		}
		return args[i+1], i + 1, true, nil
	}
	if v, found := strings.CutPrefix(arg, name+"="); found {
		return v, i, true, nil
	}
	return "", i, false, nil
}
