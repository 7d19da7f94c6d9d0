package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"cv_rag/internal/chunker"

	"github.com/manifoldco/promptui"
	"go.uber.org/zap"
)

const (
	CommandExit   = "/exit"
	CommandReload = "/reload"
	CommandChunks = "/chunks"
	CommandHelp   = "/help"
)

// Console - интерактивный режим вопросов по загруженным CV
type Console struct {
	app     *App
	paths   []string
	session *Session
	out     io.Writer
}

func NewConsole(a *App, paths []string, out io.Writer) *Console {
	return &Console{app: a, paths: paths, out: out}
}

// Session возвращает текущую сессию
func (c *Console) Session() *Session {
	return c.session
}

// Load перечитывает файлы; индекс перестраивается только если изменилось содержимое
func (c *Console) Load(ctx context.Context) (rebuilt bool, err error) {
	files, err := LoadFiles(c.paths)
	if err != nil {
		return false, err
	}

	sess, err := c.app.Prepare(ctx, c.session, files)
	if err != nil {
		return false, err
	}

	rebuilt = sess != c.session
	c.session = sess
	return rebuilt, nil
}

// Run читает вопросы до /exit, Ctrl+C или Ctrl+D
func (c *Console) Run(ctx context.Context) error {
	if c.session == nil {
		if _, err := c.Load(ctx); err != nil {
			return err
		}
	}

	fmt.Fprintf(c.out, "Loaded %d CVs, %d chunks. Commands: %s, %s, %s, %s\n",
		len(c.session.CVs), len(c.session.Chunks), CommandReload, CommandChunks, CommandHelp, CommandExit)

	for {
		if ctx.Err() != nil {
			return nil
		}

		prompt := promptui.Prompt{Label: "Question"}
		line, err := prompt.Run()
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("prompt: %w", err)
		}

		quit, err := c.Handle(ctx, line)
		if err != nil {
			c.app.logger.Error("request failed", zap.Error(err))
			fmt.Fprintf(c.out, "Error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

// Handle выполняет одну команду или вопрос
func (c *Console) Handle(ctx context.Context, line string) (quit bool, err error) {
	line = strings.TrimSpace(line)

	switch line {
	case "":
		return false, nil
	case CommandExit:
		return true, nil
	case CommandHelp:
		fmt.Fprintf(c.out, "%s - re-read the CV files\n%s - list all chunks\n%s - quit\n", CommandReload, CommandChunks, CommandExit)
		return false, nil
	case CommandReload:
		rebuilt, err := c.Load(ctx)
		if err != nil {
			return false, err
		}
		if rebuilt {
			fmt.Fprintf(c.out, "Files changed, index rebuilt: %d chunks\n", len(c.session.Chunks))
		} else {
			fmt.Fprintf(c.out, "Files unchanged, index reused (built %s ago)\n", c.session.Age())
		}
		return false, nil
	case CommandChunks:
		if c.session == nil {
			return false, ErrNoSession
		}
		PrintChunks(c.out, c.session.Chunks)
		return false, nil
	}

	answer, err := c.app.Ask(ctx, c.session, line)
	if err != nil {
		return false, err
	}

	fmt.Fprintf(c.out, "\n%s\n", answer.Text)
	if len(answer.Sources) > 0 {
		fmt.Fprintln(c.out, "\nSources:")
		for i, s := range answer.Sources {
			fmt.Fprintf(c.out, "  %d. %s / %s (%s, score %.4f)\n", i+1, s.Chunk.ApplicantName, s.Chunk.Section, s.Chunk.FileName, s.Score)
		}
	}
	fmt.Fprintln(c.out)

	return false, nil
}

// PrintChunks печатает все чанки с метаданными
func PrintChunks(w io.Writer, chunks []chunker.Chunk) {
	if len(chunks) == 0 {
		fmt.Fprintln(w, "No chunks")
		return
	}
	for i, ch := range chunks {
		fmt.Fprintf(w, "--- Chunk %d ---\n", i+1)
		fmt.Fprintf(w, "applicant: %s\nsection: %s\nfile: %s\nsource: %s\n", ch.ApplicantName, ch.Section, ch.FileName, ch.Source)
		fmt.Fprintf(w, "%s\n\n", ch.Content)
	}
}
