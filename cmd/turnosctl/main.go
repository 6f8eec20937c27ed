package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/turnos-app/turnos/config"
	"github.com/turnos-app/turnos/internal/bootstrap"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Now    func() time.Time
}

// errUsage marks errors that should exit with status 2.
var errUsage = errors.New("usage error")

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		if err := printUsage(os.Stdout); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmdCtx := &commandContext{
		Ctx:    ctx,
		Logger: logger,
		Config: cfg,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Now:    time.Now,
	}
	if runErr := execute(cmdCtx, os.Args[1:]); runErr != nil {
		if errors.Is(runErr, flag.ErrHelp) {
			return
		}
		if writeErr := writef(os.Stderr, "turnosctl: %v\n", runErr); writeErr != nil {
			logger.Error("print command error failed", "error", writeErr)
		}
		stop()
		if errors.Is(runErr, errUsage) {
			os.Exit(2) //nolint:forbidigo // CLI must exit with failure status on usage errors
		}
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

// execute runs the command named by args[0].
func execute(cmdCtx *commandContext, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: a command is required", errUsage)
	}
	cmd, ok := commands()[args[0]]
	if !ok {
		if err := printUsage(cmdCtx.Stderr); err != nil {
			return err
		}
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
	return cmd.run(cmdCtx, args[1:])
}

func commands() map[string]command {
	return map[string]command{
		"login": {
			name:        "login",
			description: "Log in and store the session locally",
			run:         runLogin,
		},
		"logout": {
			name:        "logout",
			description: "Remove the stored session",
			run:         runLogout,
		},
		"whoami": {
			name:        "whoami",
			description: "Show the logged-in user and token expiry",
			run:         runWhoami,
		},
		"route": {
			name:        "route",
			description: "Print the dashboard the session belongs to",
			run:         runRoute,
		},
		"professionals": {
			name:        "professionals",
			description: "List professionals, optionally by specialty",
			run:         runProfessionals,
		},
		"agendas": {
			name:        "agendas",
			description: "List a professional's monthly agendas",
			run:         runAgendas,
		},
		"appointments": {
			name:        "appointments",
			description: "List available slots, an agenda's slots or your own appointments",
			run:         runAppointments,
		},
		"reserve": {
			name:        "reserve",
			description: "Reserve an available slot",
			run:         runReserve,
		},
		"cancel": {
			name:        "cancel",
			description: "Cancel one of your reservations",
			run:         runCancel,
		},
		"absences": {
			name:        "absences",
			description: "List absences and their justification status",
			run:         runAbsences,
		},
		"justify": {
			name:        "justify",
			description: "Submit a justification for an absence",
			run:         runJustify,
		},
		"evaluate": {
			name:        "evaluate",
			description: "Approve or reject a pending justification",
			run:         runEvaluate,
		},
		"report": {
			name:        "report",
			description: "Show an attendance report",
			run:         runReport,
		},
	}
}

func printUsage(w io.Writer) error {
	if err := writef(w, "Usage: turnosctl <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(w, "Available commands:\n"); err != nil {
		return err
	}
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := writef(w, "  %-16s %s\n", name, cmds[name].description); err != nil {
			return err
		}
	}
	return nil
}
