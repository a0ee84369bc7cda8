//go:build tools

// cover-merger joins the per-package profiles written by `make cover` into a
// single profile that `go tool cover` can read.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func main() {
	out := flag.String("o", "coverage.out", "merged profile")
	pattern := flag.String("glob", "*.cover", "profiles to merge")
	flag.Parse()

	if err := merge(*out, *pattern); err != nil {
		fmt.Fprintf(os.Stderr, "cover-merger: %v\n", err)
		os.Exit(1)
	}
}

func merge(out, pattern string) error {
	files, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("bad pattern %q: %w", pattern, err)
	}

	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "warning: nothing matches %s\n", pattern)
		return nil
	}

	var (
		mode  string
		lines []string
		seen  = make(map[string]struct{})
	)

	for _, file := range files {
		fileMode, body, err := readProfile(file)
		if err != nil {
			return err
		}

		if mode == "" {
			mode = fileMode
		} else if fileMode != mode {
			return fmt.Errorf("%s uses mode %q, expected %q", file, fileMode, mode)
		}

		// blocks of packages tested from several places show up more than once
		for _, line := range body {
			if _, dup := seen[line]; dup {
				continue
			}
			seen[line] = struct{}{}
			lines = append(lines, line)
		}
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "mode: %s\n", mode)

	for _, line := range lines {
		w.WriteString(line)
		w.WriteByte('\n')
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	return nil
}

func readProfile(path string) (mode string, body []string, err error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("read %s: %w", path, err)
	}

	for i, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if i == 0 {
			var ok bool
			if mode, ok = strings.CutPrefix(line, "mode: "); !ok {
				return "", nil, fmt.Errorf("%s: missing mode header", path)
			}

			continue
		}

		body = append(body, line)
	}

	if mode == "" {
		return "", nil, fmt.Errorf("%s: empty profile", path)
	}

	return mode, body, nil
}
