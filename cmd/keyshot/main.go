// keyshot reads terminal input from stdin, replays it through the input
// pipeline and writes the resulting debug view as a PNG image.
//
//	printf 'abc\033[A' | keyshot -hold -o keys.png
package main

import (
	"flag"
	"fmt"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"os"

	rl "github.com/dennisbusch-de/refugee-lib"
)

func main() {
	output := flag.String("o", "keys.png", "output PNG file")
	hold := flag.Bool("hold", false, "ignore key releases, so every key that went down is shown as held")
	distinct := flag.Bool("distinct", false, "give punctuation keys their own identifiers")
	flag.Parse()

	if err := run(*output, *hold, *distinct); err != nil {
		fmt.Fprintln(os.Stderr, "keyshot:", err)
		os.Exit(1)
	}
}

func run(output string, hold, distinct bool) error {
	cfg, err := rl.Load()
	if err != nil {
		return err
	}
	if distinct {
		cfg.Punctuation = rl.PunctuationDistinct.String()
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
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	in := rl.NewInput(table, rl.NewRegistry(table, logger), rl.Viewport{Width: 80, Height: 25}, nil, logger)
	for i, ev := range rl.ParseSequence(data) {
		if hold && !ev.IsMouse && ev.Key.Kind == rl.KeyUp {
			continue
		}
		in.SetTick(uint64(i))
		in.HandleTerm(ev)
	}

	img := rl.RenderDebug(in.Resolver().Debug(), color.White, color.Black)
	f, err := os.Create(output)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", output, err)
	}
	return f.Close()
}
