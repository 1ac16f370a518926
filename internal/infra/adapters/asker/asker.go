// asker answers the yes/no questions of a run, such as whether to
// continue with the next feed after one failed. Implements the
// ports.ForAsking interface.
package asker

import (
	"context"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/sa6mwa/podarchiver/internal/app/ports"
	"github.com/sa6mwa/podarchiver/internal/infra/adapters/logger"
	"golang.org/x/term"
)

type forAsking struct {
	dryrun      bool
	force       bool
	interactive func() bool
	prompt      func(question string) (bool, error)
}

// New returns an asker. In dry-run mode every question is answered no,
// with force every question is answered yes. Otherwise the question is
// asked on the terminal, or answered no when there is no terminal.
func New(dryrun, force bool) ports.ForAsking {
	return &forAsking{
		dryrun:      dryrun,
		force:       force,
		interactive: interactive,
		prompt:      confirm,
	}
}

func (p *forAsking) Ask(ctx context.Context, format string, a ...any) bool {
	l := logger.FromContext(ctx)
	question := fmt.Sprintf(format, a...)
	yes, by := p.answer(question)
	if by == "terminal" {
		l.Debug("Answered", "question", question, "yes", yes)
		return yes
	}
	l.Info(fmt.Sprintf("%s %s", question, yesNo(yes)), "by", by)
	return yes
}

// answer returns the answer and who gave it.
func (p *forAsking) answer(question string) (bool, string) {
	switch {
	case p.dryrun:
		return false, "dry-run"
	case p.force:
		return true, "force"
	case !p.interactive():
		return false, "no terminal"
	}
	yes, err := p.prompt(question)
	if err != nil {
		// Ctrl-C at the prompt ends up here.
		return false, fmt.Sprintf("prompt error: %v", err)
	}
	return yes, "terminal"
}

func yesNo(yes bool) string {
	if yes {
		return "Yes"
	}
	return "No"
}

func interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func confirm(question string) (bool, error) {
	yes := false
	err := survey.AskOne(&survey.Confirm{
		Message: question,
		Default: false,
	}, &yes)
	return yes, err
}
