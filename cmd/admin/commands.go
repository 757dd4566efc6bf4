package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/MKhiriev/go-crm-auth/internal/service"
	"github.com/MKhiriev/go-crm-auth/models"
)

var (
	errNoCommand      = errors.New("no command given, expected create-admin, revoke-sessions or sweep-sessions")
	errUnknownCommand = errors.New("unknown command")
	errMissingValue   = errors.New("value is required")
)

func run(ctx context.Context, services *service.Services, args []string, p *prompter) error {
	if len(args) == 0 {
		return errNoCommand
	}

	switch cmd, cmdArgs := args[0], args[1:]; cmd {
	case "create-admin":
		return createAdmin(ctx, services.AuthService, cmdArgs, p)
	case "revoke-sessions":
		return revokeSessions(ctx, services.AuthService, cmdArgs, p)
	case "sweep-sessions":
		return sweepSessions(ctx, services.SessionService, p)
	default:
		return fmt.Errorf("%w: %q", errUnknownCommand, cmd)
	}
}

// createAdmin creates an ADMIN account. The same username and password
// rules as self-registration apply. The password is always read from
// stdin, never from the command line.
func createAdmin(ctx context.Context, auth service.AuthService, args []string, p *prompter) error {
	var username, email, name string

	fs := flag.NewFlagSet("create-admin", flag.ContinueOnError)
	fs.SetOutput(p.out)
	fs.StringVar(&username, "username", "", "admin username")
	fs.StringVar(&email, "email", "", "admin email (optional)")
	fs.StringVar(&name, "name", "", "admin display name (optional)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// optional fields are only prompted for when the command runs interactively
	interactive := username == ""

	var err error
	if username == "" {
		if username, err = p.ask("Username", true); err != nil {
			return err
		}
	}
	password, err := p.secret("Password")
	if err != nil {
		return err
	}
	if email == "" && interactive {
		if email, err = p.ask("Email (optional)", false); err != nil {
			return err
		}
	}
	if name == "" && interactive {
		if name, err = p.ask("Name (optional)", false); err != nil {
			return err
		}
	}

	req := models.RegisterRequest{Username: username, Password: password}
	if email != "" {
		req.Email = &email
	}
	if name != "" {
		req.Name = &name
	}

	user, err := auth.CreateUser(ctx, req, models.RoleAdmin)
	if err != nil {
		return fmt.Errorf("create admin %q: %w", username, err)
	}

	fmt.Fprintf(p.out, "admin user %q created with id %s\n", user.Username, user.ID)
	return nil
}

func revokeSessions(ctx context.Context, auth service.AuthService, args []string, p *prompter) error {
	var username string

	fs := flag.NewFlagSet("revoke-sessions", flag.ContinueOnError)
	fs.SetOutput(p.out)
	fs.StringVar(&username, "username", "", "user whose sessions are revoked")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if username == "" {
		return fmt.Errorf("-username: %w", errMissingValue)
	}

	revoked, err := auth.RevokeUserSessions(ctx, username)
	if err != nil {
		return fmt.Errorf("revoke sessions of %q: %w", username, err)
	}

	fmt.Fprintf(p.out, "revoked %d session(s) of %q\n", revoked, username)
	return nil
}

func sweepSessions(ctx context.Context, sessions service.SessionService, p *prompter) error {
	deleted, err := sessions.CleanupExpiredSessions(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(p.out, "deleted %d expired session(s)\n", deleted)
	return nil
}

type prompter struct {
	in  *bufio.Reader
	out io.Writer

	// readSecret reads a secret without echo; nil when in is not a terminal.
	readSecret func() ([]byte, error)
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	p := &prompter{in: bufio.NewReader(in), out: out}

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		p.readSecret = func() ([]byte, error) {
			defer fmt.Fprintln(out)
			return term.ReadPassword(fd)
		}
	}

	return p
}

// ask prints label and reads one line. A required value is asked for again
// until it is non-blank; EOF ends the prompt.
func (p *prompter) ask(label string, required bool) (string, error) {
	for {
		fmt.Fprintf(p.out, "%s: ", label)

		line, err := p.in.ReadString('\n')
		value := strings.TrimSpace(line)

		if value != "" || !required {
			if err != nil && !errors.Is(err, io.EOF) {
				return "", err
			}
			return value, nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", fmt.Errorf("%s: %w", strings.ToLower(label), errMissingValue)
			}
			return "", err
		}
	}
}

// secret reads a required value that may contain any characters. On a
// terminal the input is not echoed; otherwise one line is read and only
// its line terminator is removed.
func (p *prompter) secret(label string) (string, error) {
	for {
		fmt.Fprintf(p.out, "%s: ", label)

		if p.readSecret != nil {
			b, err := p.readSecret()
			if err != nil {
				return "", err
			}
			if len(b) > 0 {
				return string(b), nil
			}
			continue
		}

		line, err := p.in.ReadString('\n')
		value := strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")

		if value != "" {
			if err != nil && !errors.Is(err, io.EOF) {
				return "", err
			}
			return value, nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", fmt.Errorf("%s: %w", strings.ToLower(label), errMissingValue)
			}
			return "", err
		}
	}
}
