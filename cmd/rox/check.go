package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mgomes/rox/rox"
)

// sourceExt is the extension check looks for when walking directories.
const sourceExt = ".lox"

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <path>...",
		Short: "Report lexical and syntax errors in files or directories",
		Long: `Scan and parse every named file and every .lox file below the named
directories. Each file must hold a single expression. Problems are printed as
"<file>: [line N] Error...", and the exit status is 65 if any file failed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("check: at least one path required")
			}
			files, err := collectSourceFiles(args)
			if err != nil {
				return err
			}
			return a.check(files)
		},
	}
}

func (a *app) check(files []string) error {
	failed := 0
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		_, err = rox.ParseString(string(data))
		if err == nil {
			a.logger.Debug("ok", "file", path)
			continue
		}
		failed++
		for _, line := range rox.Diagnostics(err) {
			a.reportErrors([]string{path + ": " + line})
		}
	}

	a.logger.Info("checked", "files", len(files), "failed", failed)
	if failed > 0 {
		return &exitError{code: exitDataError, msg: fmt.Sprintf("%d of %d file(s) have errors", failed, len(files))}
	}
	return nil
}

// collectSourceFiles expands targets into a sorted, de-duplicated list of
// absolute paths. Files named directly are kept whatever their extension;
// directories contribute their .lox files.
func collectSourceFiles(targets []string) ([]string, error) {
	seen := make(map[string]struct{})
	files := make([]string, 0)
	addFile := func(path string) error {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", path, err)
		}
		if _, ok := seen[abs]; ok {
			return nil
		}
		seen[abs] = struct{}{}
		files = append(files, abs)
		return nil
	}

	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", target, err)
		}
		if !info.IsDir() {
			if err := addFile(target); err != nil {
				return nil, err
			}
			continue
		}
		err = filepath.WalkDir(target, func(path string, entry fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if entry.IsDir() || filepath.Ext(path) != sourceExt {
				return nil
			}
			return addFile(path)
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", target, err)
		}
	}

	sort.Strings(files)
	return files, nil
}
