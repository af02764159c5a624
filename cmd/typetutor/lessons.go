package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/typetutor/internal/lessons"
	"github.com/verte-zerg/typetutor/internal/model"
	"github.com/verte-zerg/typetutor/internal/stats"
)

var (
	lessonTitle      string
	lessonContent    string
	lessonDifficulty string
	lessonCategory   string
	lessonFile       string

	exportFormat string
)

func newLessonsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lessons",
		Short: "Manage practice lessons",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List lessons",
		Args:  cobra.NoArgs,
		RunE:  runLessonsListCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show a lesson",
		Args:  cobra.ExactArgs(1),
		RunE:  runLessonsShowCmd,
	})

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Create a lesson",
		Args:  cobra.NoArgs,
		RunE:  runLessonsAddCmd,
	}
	bindLessonFlags(addCmd)
	cmd.AddCommand(addCmd)

	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a lesson",
		Args:  cobra.ExactArgs(1),
		RunE:  runLessonsEditCmd,
	}
	bindLessonFlags(editCmd)
	cmd.AddCommand(editCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a lesson",
		Args:  cobra.ExactArgs(1),
		RunE:  runLessonsDeleteCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "import <file>",
		Short: "Import a .txt/.md lesson or a .toml/.yaml/.json bundle",
		Args:  cobra.ExactArgs(1),
		RunE:  runLessonsImportCmd,
	})

	exportCmd := &cobra.Command{
		Use:   "export <file|->",
		Short: "Export all lessons as a bundle",
		Args:  cobra.ExactArgs(1),
		RunE:  runLessonsExportCmd,
	}
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "bundle format when writing to stdout (toml, yaml, json)")
	cmd.AddCommand(exportCmd)
	return cmd
}

func bindLessonFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&lessonTitle, "title", "", "lesson title")
	cmd.Flags().StringVar(&lessonContent, "content", "", "text to type")
	cmd.Flags().StringVar(&lessonDifficulty, "difficulty", "", "beginner, intermediate or advanced")
	cmd.Flags().StringVar(&lessonCategory, "category", "", "free-form category")
	cmd.Flags().StringVar(&lessonFile, "file", "", "read the content from a .txt or .md file")
}

func runLessonsListCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	all, err := a.lessons.List(commandContext(cmd))
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(all))
	for _, l := range all {
		rows = append(rows, []string{l.ID, l.Title, string(l.Difficulty), l.Category, strconv.Itoa(len([]rune(l.Content)))})
	}
	lines := stats.FormatTable([]string{"ID", "Title", "Difficulty", "Category", "Chars"}, rows, map[int]bool{4: true})
	return writeLines(cmd.OutOrStdout(), lines...)
}

func runLessonsShowCmd(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	l, err := a.lessons.Get(commandContext(cmd), args[0])
	if err != nil {
		return err
	}
	return writeLines(cmd.OutOrStdout(),
		"ID:         "+l.ID,
		"Title:      "+l.Title,
		"Difficulty: "+string(l.Difficulty),
		"Category:   "+l.Category,
		"Created:    "+l.CreatedAt.Local().Format("2006-01-02 15:04"),
		"",
		l.Content,
	)
}

func runLessonsAddCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	ctx := commandContext(cmd)
	d := lessons.Draft{
		Title:      lessonTitle,
		Content:    lessonContent,
		Difficulty: lessonDifficulty,
		Category:   lessonCategory,
	}
	var l model.Lesson
	if lessonFile != "" {
		if cmd.Flags().Changed("content") {
			return errors.New("--content and --file are mutually exclusive")
		}
		l, err = a.lessons.ImportText(ctx, lessonFile, d)
	} else {
		l, err = a.lessons.Create(ctx, d)
	}
	if err != nil {
		return err
	}
	return writeLines(cmd.OutOrStdout(), "Created "+lessonRef{id: l.ID, title: l.Title}.String())
}

func runLessonsEditCmd(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	var p lessons.Patch
	if cmd.Flags().Changed("title") {
		p.Title = &lessonTitle
	}
	if cmd.Flags().Changed("content") {
		p.Content = &lessonContent
	}
	if cmd.Flags().Changed("difficulty") {
		p.Difficulty = &lessonDifficulty
	}
	if cmd.Flags().Changed("category") {
		p.Category = &lessonCategory
	}
	if lessonFile != "" {
		if p.Content != nil {
			return errors.New("--content and --file are mutually exclusive")
		}
		content, err := lessons.LoadText(lessonFile)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", lessonFile, err)
		}
		p.Content = &content
	}
	l, err := a.lessons.Update(commandContext(cmd), args[0], p)
	if err != nil {
		return err
	}
	return writeLines(cmd.OutOrStdout(), "Updated "+lessonRef{id: l.ID, title: l.Title}.String())
}

func runLessonsDeleteCmd(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.lessons.Delete(commandContext(cmd), args[0]); err != nil {
		return err
	}
	return writeLines(cmd.OutOrStdout(), "Deleted "+args[0])
}

func runLessonsImportCmd(cmd *cobra.Command, args []string) error {
	path := args[0]
	format, err := lessons.FormatFromPath(path)
	if err != nil {
		return err
	}
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	ctx := commandContext(cmd)
	if format == lessons.FormatText {
		l, err := a.lessons.ImportText(ctx, path, lessons.Draft{})
		if err != nil {
			return err
		}
		return writeLines(cmd.OutOrStdout(), "Imported "+lessonRef{id: l.ID, title: l.Title}.String())
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		// Best-effort close for read-only file.
		_ = f.Close()
	}()
	created, err := a.lessons.ImportBundle(ctx, bufio.NewReader(f), format)
	if len(created) > 0 {
		logErrf("Imported %d lesson(s) from %s\n", len(created), filepath.Base(path))
	}
	return err
}

func runLessonsExportCmd(cmd *cobra.Command, args []string) error {
	path := args[0]
	var format lessons.Format
	if path == "-" {
		format = lessons.Format(exportFormat)
		if format == "" {
			format = lessons.FormatJSON
		}
	} else {
		var err error
		if format, err = lessons.FormatFromPath(path); err != nil {
			return err
		}
	}
	if format == lessons.FormatText {
		return errors.New("export needs a bundle format: .toml, .yaml, .yml or .json")
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	ctx := commandContext(cmd)
	if path == "-" {
		_, err := a.lessons.Export(ctx, cmd.OutOrStdout(), format)
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	n, err := a.lessons.Export(ctx, w, format)
	if err == nil {
		err = w.Flush()
	}
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to close %s: %w", path, cerr)
	}
	if err != nil {
		return err
	}
	logErrf("Exported %d lesson(s) to %s\n", n, path)
	return nil
}

type lessonRef struct {
	id    string
	title string
}

func (r lessonRef) String() string {
	return fmt.Sprintf("%q (%s)", r.title, r.id)
}

func writeLines(w io.Writer, lines ...string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}
