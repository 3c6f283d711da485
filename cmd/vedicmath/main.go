package main

import (
	"context"
	"os"

	"github.com/agbru/vedicmath/internal/app"
	"github.com/agbru/vedicmath/internal/config"
	apperrors "github.com/agbru/vedicmath/internal/errors"
)

func main() {
	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if config.IsHelp(err) {
			os.Exit(apperrors.ExitSuccess)
		}
		os.Exit(apperrors.HandleRunError(err, 0, os.Stderr, plainColors{}))
	}

	exitCode := application.Run(context.Background(), os.Stdout)
	os.Exit(exitCode)
}

// plainColors renders startup errors before the theme is known.
type plainColors struct{}

func (plainColors) Yellow() string { return "" }
func (plainColors) Red() string    { return "" }
func (plainColors) Reset() string  { return "" }
