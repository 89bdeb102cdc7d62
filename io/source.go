package io

import (
	"bufio"
	"io/fs"
	"strings"
)

// Source loads program text from a file system.
type Source struct {
	FS fs.FS
}

// Text returns the contents of a program file.
func (src *Source) Text(name string) (text string, err error) {
	if len(name) == 0 {
		err = ErrSourceName
		return
	}

	info, err := fs.Stat(src.FS, name)
	if err != nil {
		return
	}

	if info.IsDir() {
		err = ErrSourceDirectory(name)
		return
	}

	data, err := fs.ReadFile(src.FS, name)
	if err != nil {
		return
	}

	text = string(data)
	return
}

// Lines returns the non-blank lines of a program file, one instruction
// per line.
func (src *Source) Lines(name string) (lines []string, err error) {
	text, err := src.Text(name)
	if err != nil {
		return
	}

	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 {
			continue
		}
		lines = append(lines, line)
	}

	err = scanner.Err()
	return
}
