// Package shell drives the client from a terminal: it renders pages as text
// and maps typed commands to navigation and controller intents.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"lumincoin/internal/log"
	"lumincoin/internal/router"
)

const prompt = "> "

// Navigator is the part of the app the shell drives.
type Navigator interface {
	Start(ctx context.Context) error
	Navigate(ctx context.Context, target string) error
	Back(ctx context.Context) (bool, error)
	HandleClick(ctx context.Context, target *router.Element) (bool, error)
	Path() string
	Active() any
	Layout() any
}

// Shell is a line-oriented command loop.
type Shell struct {
	nav    Navigator
	term   *Terminal
	out    io.Writer
	logger *log.Logger
}

func New(nav Navigator, term *Terminal, out io.Writer) *Shell {
	return &Shell{nav: nav, term: term, out: out, logger: log.Default(log.ComponentShell)}
}

var errQuit = errors.New("quit")

// Run starts the router and executes commands from in until EOF or quit.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	if err := s.nav.Start(ctx); err != nil {
		s.logger.ErrorContext(ctx, "Failed to render start page", log.FieldError, err)
		fmt.Fprintf(s.out, "error: %v\n", err)
	}

	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, prompt)
		if !sc.Scan() {
			fmt.Fprintln(s.out)
			return sc.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		err := s.Exec(ctx, sc.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}
}

// Exec runs one command line.
func (s *Shell) Exec(ctx context.Context, line string) error {
	args := strings.Fields(line)
	if len(args) == 0 {
		return nil
	}
	cmd, args := args[0], args[1:]

	switch cmd {
	case "help", "?":
		s.help()
		return nil
	case "quit", "exit":
		return errQuit
	case "open":
		if len(args) != 1 {
			return errors.New("usage: open <path>")
		}
		return s.nav.Navigate(ctx, args[0])
	case "back":
		ok, err := s.nav.Back(ctx)
		if !ok && err == nil {
			fmt.Fprintln(s.out, "no history")
		}
		return err
	case "click":
		if len(args) != 1 {
			return errors.New("usage: click <href>")
		}
		handled, err := s.nav.HandleClick(ctx, &router.Element{Tag: "a", Href: args[0]})
		if !handled && err == nil {
			fmt.Fprintln(s.out, "ignored")
		}
		return err
	case "page":
		return s.page()
	case "show":
		s.show()
		return nil
	case "set":
		if len(args) < 1 {
			return errors.New("usage: set [layout.]<field> <value>")
		}
		view, path := s.target(args[0])
		return Set(view, path, strings.Join(args[1:], " "))
	case "do":
		if len(args) < 1 {
			return errors.New("usage: do [layout.]<intent> [args...]")
		}
		view, name := s.target(args[0])
		return Invoke(ctx, view, name, args[1:])
	}
	return fmt.Errorf("unknown command %q, try help", cmd)
}

// target resolves a "layout." prefix to the layout controller.
func (s *Shell) target(name string) (any, string) {
	if rest, ok := strings.CutPrefix(name, "layout."); ok {
		return s.nav.Layout(), rest
	}
	return s.nav.Active(), name
}

func (s *Shell) page() error {
	p, err := ParsePage(strings.NewReader(s.term.Page()))
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s  [%s]\n", s.term.Title, s.nav.Path())
	if name := s.term.ProfileName; name != "" {
		fmt.Fprintf(s.out, "user: %s\n", name)
	}
	for _, line := range p.Text {
		fmt.Fprintln(s.out, line)
	}
	if len(p.Links) > 0 {
		fmt.Fprintf(s.out, "links: %s\n", strings.Join(p.Links, " "))
	}
	if len(p.Inputs) > 0 {
		fmt.Fprintf(s.out, "inputs: %s\n", strings.Join(p.Inputs, " "))
	}
	return nil
}

func (s *Shell) show() {
	if layout := s.nav.Layout(); layout != nil {
		for _, e := range Entries(layout) {
			fmt.Fprintf(s.out, "layout.%s = %s\n", e.Path, e.Value)
		}
	}
	view := s.nav.Active()
	if view == nil {
		fmt.Fprintln(s.out, "no active view")
		return
	}
	for _, e := range Entries(view) {
		fmt.Fprintf(s.out, "%s = %s\n", e.Path, e.Value)
	}
}

func (s *Shell) help() {
	fmt.Fprint(s.out, `commands:
  open <path>                 navigate to a route
  back                        go back in history
  click <href>                follow a link
  page                        print the current page
  show                        print the controller state
  set [layout.]<field> <v>    set a form field
  do [layout.]<intent> [args] call a controller intent (Submit, Save, SetPeriod month...)
  quit                        leave the shell
`)
}
