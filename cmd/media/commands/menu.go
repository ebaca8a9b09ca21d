// Copyright 2026 The Framewright Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/framewright/media/cmd/media/cli"
	"github.com/framewright/media/lib/config"
	"github.com/framewright/media/lib/schema/media"
	"github.com/framewright/media/lib/tui"
)

type menuParams struct {
	configParams
	RunDir string `json:"-" flag:"run-dir" desc:"run directory for resolve and verify (default $RUN_DIR)"`
	Strict bool   `json:"-" flag:"strict" desc:"fail resolve and verify on placeholders"`
}

type menuAction string

const (
	actionResolve menuAction = "resolve"
	actionVerify  menuAction = "verify"
	actionCheck   menuAction = "check"
	actionConfig  menuAction = "config"
	actionQuit    menuAction = "quit"
)

type menuItem struct {
	action      menuAction
	title       string
	description string
}

func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.description }
func (i menuItem) FilterValue() string { return i.title }

func menuItems() []list.Item {
	return []list.Item{
		menuItem{actionResolve, "Resolve run directory", "AssetManifest.json → AssetManifest.media.json"},
		menuItem{actionVerify, "Verify run directory", "resolve twice and compare bytes"},
		menuItem{actionCheck, "Check library layout", "audit directories and license records"},
		menuItem{actionConfig, "Show configuration", "roots, timestamp policy, strict mode"},
		menuItem{actionQuit, "Quit", ""},
	}
}

type menuKeys struct {
	Choose key.Binding
	Quit   key.Binding
}

var defaultMenuKeys = menuKeys{
	Choose: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// menuModel picks one action and exits; the action runs after the
// program has released the terminal.
type menuModel struct {
	list   list.Model
	keys   menuKeys
	chosen menuAction
}

func newMenuModel() menuModel {
	theme := tui.DefaultTheme
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(theme.SelectedForeground).
		BorderForeground(theme.SourceLibrary)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(theme.FaintText).
		BorderForeground(theme.SourceLibrary)

	menu := list.New(menuItems(), delegate, 60, 20)
	menu.Title = "media"
	menu.SetShowStatusBar(false)
	menu.SetFilteringEnabled(false)
	menu.Styles.Title = menu.Styles.Title.Background(theme.SourceFallback).Foreground(theme.HeaderForeground)
	menu.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{defaultMenuKeys.Choose}
	}

	return menuModel{list: menu, keys: defaultMenuKeys}
}

func (m menuModel) Init() tea.Cmd {
	return nil
}

func (m menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.chosen = actionQuit
			return m, tea.Quit
		case key.Matches(msg, m.keys.Choose):
			if item, ok := m.list.SelectedItem().(menuItem); ok {
				m.chosen = item.action
			}
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m menuModel) View() string {
	return m.list.View()
}

func menuCommand() *cli.Command {
	var params menuParams

	command := &cli.Command{
		Name:    "menu",
		Summary: "Interactive menu for the common tasks",
		Description: `Pick resolve, verify, library check, or show configuration from a
list. The chosen task runs with the same configuration the direct
commands use.`,
		Usage: "media menu [--run-dir <dir>] [--strict]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("menu", &params)
		},
	}
	command.Run = func(args []string) error {
		if len(args) > 0 {
			return cli.Usagef("menu takes no positional arguments, got %q", args[0])
		}
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return cli.Usagef("menu needs an interactive terminal; run the commands directly instead")
		}

		final, err := tea.NewProgram(newMenuModel(), tea.WithAltScreen()).Run()
		if err != nil {
			return fmt.Errorf("menu: %w", err)
		}
		return runMenuAction(final.(menuModel).chosen, params, command.Output())
	}
	return command
}

func runMenuAction(action menuAction, params menuParams, stdout io.Writer) error {
	switch action {
	case actionResolve:
		env, err := params.load("menu", config.Overrides{RunDir: params.RunDir})
		if err != nil {
			return err
		}
		runDir, err := env.config.RequireRunDir()
		if err != nil {
			return &cli.UsageError{Err: err}
		}
		return runResolve(resolveParams{
			configParams: params.configParams,
			Input:        filepath.Join(runDir, media.InputFileName),
			Output:       filepath.Join(runDir, media.OutputFileName),
			Strict:       params.Strict,
		}, stdout)

	case actionVerify:
		return runVerify(verifyParams{configParams: params.configParams, RunDir: params.RunDir, Strict: params.Strict}, stdout)

	case actionCheck:
		return runLibraryCheck(libraryCheckParams{configParams: params.configParams}, stdout)

	case actionConfig:
		env, err := params.load("menu", config.Overrides{RunDir: params.RunDir, Strict: params.Strict})
		if err != nil {
			return err
		}
		return printConfig(env, stdout)

	default:
		return nil
	}
}

func printConfig(env *environment, stdout io.Writer) error {
	source := env.config.Source
	if source == "" {
		source = "(none)"
	}
	runDir := env.config.RunDir
	if runDir == "" {
		runDir = "(unset)"
	}
	_, err := fmt.Fprintf(stdout, "config file:   %s\nlibrary root:  %s\nfallback root: %s\nrun dir:       %s\ntimestamp:     %s\nstrict:        %t\n",
		source, env.roots.Library, env.roots.Fallback, runDir, env.policy, env.config.Strict)
	return err
}
