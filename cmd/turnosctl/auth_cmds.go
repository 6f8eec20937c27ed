package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	domainauth "github.com/turnos-app/turnos/internal/domain/auth"
	"github.com/turnos-app/turnos/internal/router"
	"github.com/turnos-app/turnos/internal/service"
)

type loginOutput struct {
	User       domainauth.Identity `json:"user"`
	RedirectTo string              `json:"redirect_to"`
}

func runLogin(cmdCtx *commandContext, args []string) error {
	var common commonFlags
	fs := newFlagSet(cmdCtx, "login", &common)
	username := fs.String("username", "", "DNI or username")
	password := fs.String("password", "", "Password; read from stdin when empty")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if strings.TrimSpace(*username) == "" {
		return fmt.Errorf("%w: -username is required", errUsage)
	}

	pw := *password
	if pw == "" {
		if err := writef(cmdCtx.Stderr, "Password: "); err != nil {
			return err
		}
		line, err := bufio.NewReader(cmdCtx.Stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read password: %w", err)
		}
		pw = strings.TrimRight(line, "\r\n")
	}

	sess, err := openSession(cmdCtx, common.sessionFile)
	if err != nil {
		return err
	}
	identity, err := sess.auth.Login(cmdCtx.Ctx, sess.store, strings.TrimSpace(*username), pw)
	if err != nil {
		return err
	}
	return emit(cmdCtx.Stdout, common.query, loginOutput{
		User:       identity,
		RedirectTo: sess.dest.Resolve(sess.store.Session()),
	})
}

func runLogout(cmdCtx *commandContext, args []string) error {
	var common commonFlags
	fs := newFlagSet(cmdCtx, "logout", &common)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	sess, err := openSession(cmdCtx, common.sessionFile)
	if err != nil {
		return err
	}
	if err := sess.auth.Logout(cmdCtx.Ctx, sess.store); err != nil {
		return err
	}
	return emit(cmdCtx.Stdout, common.query, map[string]string{"status": "logged_out"})
}

type whoamiOutput struct {
	User      domainauth.Identity `json:"user"`
	Dashboard string              `json:"dashboard"`
	ExpiresAt *time.Time          `json:"expires_at,omitempty"`
	Expired   bool                `json:"expired"`
}

func runWhoami(cmdCtx *commandContext, args []string) error {
	var common commonFlags
	fs := newFlagSet(cmdCtx, "whoami", &common)
	asJSON := fs.Bool("json", false, "Print JSON instead of a table")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	sess, err := openSession(cmdCtx, common.sessionFile)
	if err != nil {
		return err
	}
	current, err := sess.requireLogin()
	if err != nil {
		return err
	}

	out := whoamiOutput{User: *current.Identity, Dashboard: sess.dest.Resolve(current)}
	if exp, expErr := service.AccessTokenExpiry(current.Credentials.Access); expErr == nil {
		exp = exp.UTC()
		out.ExpiresAt = &exp
		out.Expired = !cmdCtx.Now().Before(exp)
	}
	if *asJSON || common.query != "" {
		return emit(cmdCtx.Stdout, common.query, out)
	}
	return printWhoami(cmdCtx.Stdout, out)
}

func printWhoami(w io.Writer, out whoamiOutput) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	expires := "unknown"
	if out.ExpiresAt != nil {
		expires = out.ExpiresAt.Format(time.RFC3339)
		if out.Expired {
			expires += " (expired)"
		}
	}
	professional := "-"
	if out.User.ProfessionalID != nil {
		professional = fmt.Sprintf("%d", *out.User.ProfessionalID)
	}
	rows := [][2]string{
		{"USER", out.User.Username},
		{"ID", fmt.Sprintf("%d", out.User.ID)},
		{"ROLE", string(out.User.Role)},
		{"PROFESSIONAL", professional},
		{"DASHBOARD", out.Dashboard},
		{"ACCESS EXPIRES", expires},
	}
	for _, row := range rows {
		if err := writef(tw, "%s\t%s\n", row[0], row[1]); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func runRoute(cmdCtx *commandContext, args []string) error {
	var common commonFlags
	fs := newFlagSet(cmdCtx, "route", &common)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	sess, err := openSession(cmdCtx, common.sessionFile)
	if err != nil {
		return err
	}
	dest := router.New(sess.dest, sess.nav).Route(cmdCtx.Ctx, sess.store.Session())
	return emit(cmdCtx.Stdout, common.query, map[string]string{"redirect_to": dest})
}
