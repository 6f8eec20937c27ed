package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sync"

	"github.com/turnos-app/turnos/internal/adapters/filestore"
	"github.com/turnos-app/turnos/internal/bootstrap"
	domainauth "github.com/turnos-app/turnos/internal/domain/auth"
	"github.com/turnos-app/turnos/internal/ports"
	"github.com/turnos-app/turnos/internal/router"
	"github.com/turnos-app/turnos/internal/service"
)

var errNotLoggedIn = errors.New("not logged in; run 'turnosctl login'")

// commonFlags are accepted by every command.
type commonFlags struct {
	sessionFile string
	query       string
}

func newFlagSet(cmdCtx *commandContext, name string, common *commonFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cmdCtx.Stderr)
	fs.StringVar(&common.sessionFile, "session-file", cmdCtx.Config.Session.File, "Path of the stored session")
	fs.StringVar(&common.query, "query", "", "JMESPath expression applied to the JSON output")
	return fs
}

// parseFlags parses args and maps flag errors to errUsage.
func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	return nil
}

// printNavigator reports navigation on the terminal. The last destination is
// kept so commands can tell a forced logout apart from other failures.
type printNavigator struct {
	w     io.Writer
	login string

	mu   sync.Mutex
	last string
}

func (n *printNavigator) Navigate(_ context.Context, destination string) {
	n.mu.Lock()
	n.last = destination
	n.mu.Unlock()
	if destination == n.login {
		_ = writef(n.w, "login required; run 'turnosctl login'\n")
		return
	}
	_ = writef(n.w, "-> %s\n", destination)
}

func (n *printNavigator) Last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.last
}

// cliSession is the stored session plus the clients bound to it.
type cliSession struct {
	store  *service.SessionStore
	auth   *service.AuthService
	clinic ports.ClinicAPI
	nav    *printNavigator
	dest   router.Destinations
}

func openSession(cmdCtx *commandContext, path string) (*cliSession, error) {
	kv, err := filestore.New(path)
	if err != nil {
		return nil, err
	}
	logger := cmdCtx.Logger.With("component", "turnosctl")
	store, err := service.NewSessionStore(cmdCtx.Ctx, service.SessionStoreOptions{KV: kv, Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("open session %s: %w", path, err)
	}

	clients, err := bootstrap.BuildAPIClients(bootstrap.APIClientsConfig{
		API:    cmdCtx.Config.API,
		Auth:   cmdCtx.Config.Auth,
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}

	dest := router.DefaultDestinations()
	if cmdCtx.Config.Auth.LoginPath != "" {
		dest.Login = cmdCtx.Config.Auth.LoginPath
	}
	nav := &printNavigator{w: cmdCtx.Stderr, login: dest.Login}
	return &cliSession{
		store:  store,
		auth:   service.NewAuthService(service.AuthServiceOptions{API: clients.Auth, Logger: logger}),
		clinic: clients.Clinic(store, nav),
		nav:    nav,
		dest:   dest,
	}, nil
}

// requireLogin returns the current session, or errNotLoggedIn when it is empty.
func (s *cliSession) requireLogin() (domainauth.Session, error) {
	sess := s.store.Session()
	if sess.IsEmpty() {
		return sess, errNotLoggedIn
	}
	return sess, nil
}

// apiErr rewrites a failure that ended the session into errNotLoggedIn.
func (s *cliSession) apiErr(err error) error {
	if err == nil {
		return nil
	}
	if s.nav.Last() == s.dest.Login && s.store.Session().IsEmpty() {
		return fmt.Errorf("%w: %w", errNotLoggedIn, err)
	}
	return err
}
