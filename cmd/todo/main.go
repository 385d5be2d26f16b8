// Command todo is a small TODO-list program built on the scroll store. Each
// task is one row of the document.
//
//	todo -file todo.txt add "buy milk"
//	todo -file todo.txt list
//	todo -file todo.txt done 0
//	todo -file todo.txt clear
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"

	"github.com/jpl-au/scroll"
)

func main() {
	file := flag.String("file", "todo.txt", "path to the todo file")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}))

	if err := run(*file, logger, flag.Args()); err != nil {
		logger.Error("todo failed", "error", err)
		os.Exit(1)
	}
}

func run(file string, logger *slog.Logger, args []string) error {
	store, err := scroll.Open(file, scroll.Config{Logger: logger})
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil && err != scroll.ErrClosed {
			logger.Error("close failed", "error", err)
		}
	}()

	if len(args) == 0 {
		args = []string{"list"}
	}

	switch args[0] {
	case "add":
		if len(args) < 2 {
			return fmt.Errorf("add: missing task text")
		}
		if err := store.Append(args[1]); err != nil {
			return err
		}
		return store.Save()

	case "done":
		if len(args) < 2 {
			return fmt.Errorf("done: missing task number")
		}
		index, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("done: %q is not a task number", args[1])
		}
		if err := store.Erase(index); err != nil {
			return err
		}
		return store.Save()

	case "clear":
		if err := store.Clear(); err != nil {
			return err
		}
		return store.Save()

	case "list":
		tasks, err := store.All()
		if err != nil {
			return err
		}
		if len(tasks) == 0 {
			fmt.Println("nothing to do")
			return nil
		}
		for i, task := range tasks {
			fmt.Printf("%3d  %s\n", i, task)
		}
		return nil

	default:
		return fmt.Errorf("unknown command %q (want add, done, clear or list)", args[0])
	}
}
