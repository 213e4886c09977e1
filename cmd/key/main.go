// key shows the live key state while keys are typed. Press Esc twice to exit.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	rl "github.com/dennisbusch-de/refugee-lib"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "key:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := rl.Load()
	if err != nil {
		return err
	}
	level := slog.LevelWarn
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	table, err := cfg.Table()
	if err != nil {
		return err
	}
	reg := rl.NewRegistry(table, logger)

	tty, err := rl.NewTTY(cfg.TTY)
	if err != nil {
		return err
	}
	defer tty.Close()
	if err := rl.EnableInput(tty); err != nil {
		return err
	}
	defer rl.DisableInput(tty)

	escCount := 0
	esc := rl.ID(rl.KeyEsc)
	in := rl.NewInput(table, reg, rl.TermViewport(), func(prev, curr *rl.Snapshot) {
		if rl.KeyPressed(prev, curr, esc) {
			escCount++
		} else if curr.Kind.IsKey() && curr.Key != esc {
			escCount = 0
		}
	}, logger)

	sigChan := make(chan os.Signal, 1)
	rl.NotifyResize(sigChan)
	defer signal.Stop(sigChan)

	ids := rl.WellKnownIDs(table)
	rl.ClearScreen(tty)
	for escCount < 2 {
		select {
		case <-sigChan:
			in.SetViewport(rl.TermViewport())
			rl.ClearScreen(tty)
		default:
		}
		events, err := tty.Events()
		if err != nil {
			return err
		}
		if len(events) == 0 {
			continue
		}
		for _, ev := range events {
			in.HandleTerm(ev)
		}
		view := render(in, ids, escCount)
		if err := rl.Redraw(tty, view); err != nil {
			return err
		}
	}
	rl.ClearScreen(tty)
	return nil
}

func render(in *rl.Input, ids []rl.KeyID, escCount int) string {
	s := in.State()
	var sb strings.Builder
	sb.WriteString(rl.FormatDebug(in.Resolver().Debug(), true))
	fmt.Fprintf(&sb, "\nevent: %s tick: %d", s.Kind, s.Tick)
	if held := rl.HeldKeys(in.Keys(), ids...); len(held) > 0 {
		fmt.Fprintf(&sb, "\nheld: %s", strings.Join(held, " "))
	}
	p := s.Pointer
	fmt.Fprintf(&sb, "\npointer: %d,%d inside: %v buttons: %+v", p.CX, p.CY, p.Inside, s.Buttons)
	if escCount == 1 {
		sb.WriteString("\nPress Esc again to exit")
	}
	return strings.ReplaceAll(sb.String(), "\n", "\r\n")
}
