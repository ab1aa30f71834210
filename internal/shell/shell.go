// Package shell is a line-oriented host for the coordinator: a REPL that
// edits the project with short commands and answers dialogs inline.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/octronic/dreamtool/internal/alerts"
	"github.com/octronic/dreamtool/internal/cli/output"
	"github.com/octronic/dreamtool/internal/coordinator"
	"github.com/octronic/dreamtool/internal/modal"
	"github.com/octronic/dreamtool/internal/project"
	"github.com/octronic/dreamtool/internal/tree"
)

// Prompt is shown while waiting for a command.
const Prompt = "dreamtool> "

// ErrInterrupt is returned by a LineReader when the user presses ctrl+c.
var ErrInterrupt = errors.New("interrupt")

// LineReader supplies input lines. io.EOF ends the session.
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}

// Shell runs commands against one project.
type Shell struct {
	in      LineReader
	r       *output.Renderer
	project *project.Project
	coord   *coordinator.Coordinator
	trail   *coordinator.Trail
	logger  *slog.Logger
}

// New wires a coordinator to the shell. Dialogs are answered on in.
func New(p *project.Project, in LineReader, r *output.Renderer, logger *slog.Logger, opts ...coordinator.Option) (*Shell, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Shell{
		in:      in,
		r:       r,
		project: p,
		trail:   coordinator.NewTrail(),
		logger:  logger,
	}

	all := append(append([]coordinator.Option{coordinator.WithLogger(logger)}, opts...),
		coordinator.WithTrail(s.trail),
		coordinator.WithPresenter(modal.PresenterFunc(s.present)),
		coordinator.WithModalAnimations(false),
	)
	coord, err := coordinator.New(p, s.handlers(), all...)
	if err != nil {
		return nil, err
	}
	s.coord = coord
	return s, nil
}

// Coordinator returns the coordinator driven by the shell.
func (s *Shell) Coordinator() *coordinator.Coordinator {
	return s.coord
}

// Close stops alert timers.
func (s *Shell) Close() {
	s.coord.Close()
}

func (s *Shell) handlers() tree.Handlers {
	set := func(labels ...string) { s.trail.Set(labels) }
	return tree.HandlerFuncs{
		Project:       func(*tree.Node) { set(s.project.Name()) },
		SceneGroup:    func(*tree.Node) { set(s.project.Name(), tree.ScenesLabel) },
		Scene:         func(n *tree.Node) { set(s.project.Name(), tree.ScenesLabel, n.Label) },
		ResourceGroup: func(*tree.Node) { set(s.project.Name(), tree.ResourcesLabel) },
		Resource:      func(n *tree.Node) { set(s.project.Name(), tree.ResourcesLabel, n.Label) },
	}
}

// Run reads commands until quit, EOF or ctx ends.
func (s *Shell) Run(ctx context.Context) error {
	s.r.Printf("Editing %s (%s)\n", s.project.Name(), s.project.Path())
	s.r.Println(s.r.Muted("Type help for commands, quit to exit"))
	s.in.SetPrompt(Prompt)

	for ctx.Err() == nil {
		line, err := s.in.Readline()
		if errors.Is(err, ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read command: %w", err)
		}

		done, err := s.Exec(ctx, line)
		if err != nil {
			s.r.Error(err.Error())
		}
		if done {
			return nil
		}
	}
	return nil
}

// Exec runs one command line. done reports that the session should end.
func (s *Shell) Exec(ctx context.Context, line string) (done bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	s.logger.Debug("shell command", "command", cmd, "args", args)

	switch cmd {
	case "help", "?":
		s.printHelp()
	case "tree", "ls":
		return false, s.r.Tree(s.coord.Tree(), true)
	case "select", "cd":
		return false, s.selectNode(args)
	case "add":
		return false, s.add(args)
	case "rm", "remove":
		return false, s.remove(ctx, args)
	case "alerts":
		s.listAlerts()
	case "close":
		return false, s.closeAlert(args)
	case "save":
		s.save()
	case "open":
		return false, s.open(ctx)
	case "quit", "exit":
		return s.quit(ctx), nil
	default:
		return false, fmt.Errorf("unknown command %q (type help for commands)", cmd)
	}
	return false, nil
}

func (s *Shell) printHelp() {
	s.r.Println(`Commands:
  tree                        Show the project tree with identifiers
  select <kind> [id]          Select project, scenes, resources, scene <id> or resource <id>
  add scene|resource <name>   Add an item
  rm scene|resource <id>      Remove an item (asks first)
  alerts                      List alerts
  close <n>                   Close alert n
  save                        Write the project file
  open                        Open another project file
  quit                        Exit (offers to save changes)`)
}

func (s *Shell) selectNode(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: select <kind> [id]")
	}
	kind, err := tree.ParseNodeKind(args[0])
	if err != nil {
		return err
	}
	id := ""
	if len(args) > 1 {
		id = args[1]
	}
	if err := s.coord.Select(kind, id); err != nil {
		return err
	}
	s.r.Println(strings.Join(s.coord.Breadcrumbs(), " > "))
	return nil
}

func (s *Shell) add(args []string) error {
	if len(args) < 2 {
		return errors.New("usage: add scene|resource <name>")
	}
	name := strings.Join(args[1:], " ")

	switch args[0] {
	case "scene":
		item, err := s.project.AddScene(name)
		if err != nil {
			return err
		}
		s.coord.AddScene(item)
		s.alert(fmt.Sprintf("Added scene %s", item.Name), alerts.Success)
	case "resource":
		item, err := s.project.AddResource(name)
		if err != nil {
			return err
		}
		s.coord.AddResource(item)
		s.alert(fmt.Sprintf("Added resource %s", item.Name), alerts.Success)
	default:
		return fmt.Errorf("cannot add %q, expected scene or resource", args[0])
	}
	return nil
}

func (s *Shell) remove(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: rm scene|resource <id>")
	}

	var (
		n     tree.Node
		found bool
	)
	switch args[0] {
	case "scene":
		n, found = s.coord.FindScene(args[1])
	case "resource":
		n, found = s.coord.FindResource(args[1])
	default:
		return fmt.Errorf("cannot remove %q, expected scene or resource", args[0])
	}
	if !found {
		return fmt.Errorf("%w: %s %s", coordinator.ErrNodeNotFound, args[0], args[1])
	}

	req := s.coord.NewRequest(coordinator.TemplateConfirmRemove, coordinator.ControllerYesNo, map[string]string{
		"kind": n.Kind.String(),
		"name": n.Label,
		"id":   n.Identifier,
	})
	outcome, err := s.coord.Modals().RequestConfirmation(ctx, req)
	if err != nil {
		return err
	}
	if outcome != modal.OutcomeConfirmed {
		s.r.Println(s.r.Muted("Cancelled"))
		return nil
	}

	if n.Kind == tree.KindScene {
		err = s.project.RemoveScene(n.Identifier)
		s.coord.RemoveSceneByIdentifier(n.Identifier)
	} else {
		err = s.project.RemoveResource(n.Identifier)
		s.coord.RemoveResourceByIdentifier(n.Identifier)
	}
	if err != nil {
		s.logger.Warn("remove confirmed for missing item", "id", n.Identifier, "error", err)
	}
	s.alert(fmt.Sprintf("Removed %s %s", n.Kind, n.Label), alerts.Success)
	return nil
}

func (s *Shell) listAlerts() {
	list := s.coord.Alerts().List()
	if len(list) == 0 {
		s.r.Println(s.r.Muted("No alerts"))
		return
	}
	for i, a := range list {
		s.r.Printf("%d. [%s] %s\n", i, a.Kind.Title(), a.Text)
	}
}

func (s *Shell) closeAlert(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: close <n>")
	}
	i, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid alert index %q", args[0])
	}
	return s.coord.CloseAlert(i)
}

func (s *Shell) save() bool {
	if err := s.project.Save(); err != nil {
		s.alert("Save failed: "+err.Error(), alerts.Error)
		return false
	}
	s.alert("Project saved", alerts.Success)
	return true
}

func (s *Shell) open(ctx context.Context) error {
	if s.project.IsModified() {
		outcome, err := s.coord.ConfirmSaveModified(ctx)
		if err != nil {
			return err
		}
		if outcome == modal.OutcomeConfirmed && !s.save() {
			return nil
		}
	}

	path, ok, err := s.coord.OpenProject(ctx)
	if err != nil || !ok {
		return err
	}
	if err := s.project.Open(path); err != nil {
		return err
	}
	if err := s.coord.Refresh(); err != nil {
		return err
	}
	s.coord.SetBreadcrumbs([]string{s.project.Name()})
	s.alert(fmt.Sprintf("Opened %s", s.project.Name()), alerts.Info)
	return nil
}

func (s *Shell) quit(ctx context.Context) bool {
	if !s.project.IsModified() {
		return true
	}
	outcome, err := s.coord.ConfirmSaveModified(ctx)
	if err != nil {
		s.r.Error(err.Error())
		return false
	}
	if outcome == modal.OutcomeConfirmed {
		return s.save()
	}
	return true
}

// alert queues an alert and echoes it.
func (s *Shell) alert(text string, kind alerts.Kind) {
	s.coord.AddAlert(text, kind)
	switch kind {
	case alerts.Success:
		s.r.Success(text)
	case alerts.Warning:
		s.r.Warning(text)
	case alerts.Error:
		s.r.Error(text)
	default:
		s.r.Println(text)
	}
}
