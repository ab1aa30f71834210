package shell

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/octronic/dreamtool/internal/coordinator"
	"github.com/octronic/dreamtool/internal/modal"
)

// present asks the dialog's question on the input stream and resolves it
// before returning. Interrupt, EOF and blank answers dismiss it.
func (s *Shell) present(_ context.Context, d modal.Dialog) error {
	defer s.in.SetPrompt(Prompt)

	var (
		action  modal.Action
		payload string
	)
	switch d.Kind {
	case modal.KindFileOpen:
		s.in.SetPrompt("Project file: ")
		line, err := s.in.Readline()
		payload = strings.TrimSpace(line)
		action = modal.ActionSelect
		if err != nil || payload == "" {
			action = modal.ActionDismiss
		}
	default:
		s.r.Println(dialogText(d.Request))
		s.in.SetPrompt("[y/n] ")
		line, err := s.in.Readline()
		switch {
		case err != nil:
			action = modal.ActionDismiss
		case isYes(line):
			action = modal.ActionConfirm
		case strings.TrimSpace(line) == "":
			action = modal.ActionDismiss
		default:
			action = modal.ActionDecline
		}
	}

	if err := s.coord.Modals().Resolve(d.ID, action, payload); err != nil && !errors.Is(err, modal.ErrNotPending) {
		return err
	}
	return nil
}

func isYes(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true
	}
	return false
}

func dialogText(r modal.Request) string {
	switch r.Template {
	case coordinator.TemplateSaveModified:
		return "The project has unsaved changes. Save first?"
	case coordinator.TemplateConfirmRemove:
		return fmt.Sprintf("Remove %s %q?", r.Params["kind"], r.Params["name"])
	default:
		return "Are you sure?"
	}
}
