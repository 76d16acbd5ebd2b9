//go:build headless

package gui

import (
	"context"
	"errors"

	"apc-panel/internal/config"
)

func Available() bool {
	return false
}

func Run(context.Context, string, config.Options) error {
	return errors.New("desktop window is not available in headless builds")
}
