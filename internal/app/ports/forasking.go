package ports

import "context"

type ForAsking interface {
	// Ask poses a yes/no question, usually on the terminal. Should
	// return true for "yes". Implementations answer without asking
	// when forced, in dry-run mode or when there is no terminal. ctx
	// should hold an slog.Logger set with logger.WithLogger.
	Ask(ctx context.Context, format string, a ...any) bool
}
