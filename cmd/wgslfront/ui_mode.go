package main

import (
	"fmt"
	"strings"
)

// uiMode selects the progress view for directory runs.
type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	mode := uiMode(strings.ToLower(strings.TrimSpace(value)))
	switch mode {
	case "":
		return uiModeAuto, nil
	case uiModeAuto, uiModeOn, uiModeOff:
		return mode, nil
	}
	return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
}

// useTUI: the view draws on stderr, so auto follows stderr rather than stdout.
func (a *app) useTUI() bool {
	if a.ui == uiModeAuto {
		return !a.quiet && isTerminal(a.stderr)
	}
	return a.ui == uiModeOn
}
