package rules

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// File is a candidate file under classification. Content is read lazily and
// only as far as the longest content template evaluated so far requires.
// A File belongs to a single classification call and is not shared.
type File struct {
	Path string
	Dir  string
	Name string

	lines []string
	eof   bool
}

// NewFile prepares path for rule evaluation. path should be absolute.
func NewFile(path string) *File {
	return &File{
		Path: path,
		Dir:  filepath.Dir(path),
		Name: filepath.Base(path),
	}
}

// Lines returns up to n leading lines with line terminators removed.
// Fewer lines are returned when the file is shorter.
func (f *File) Lines(n int) ([]string, error) {
	if len(f.lines) >= n || f.eof {
		return f.lines[:min(n, len(f.lines))], nil
	}

	fh, err := os.Open(f.Path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	lines, err := ReadStrippedLines(fh, n)
	if err != nil {
		return nil, err
	}
	f.lines = lines
	f.eof = len(lines) < n
	return f.lines, nil
}

// ReadStrippedLines reads up to n lines from r, removing the "\n", "\r\n"
// or "\r" terminator but no other whitespace. A negative n reads all lines.
func ReadStrippedLines(r io.Reader, n int) ([]string, error) {
	var lines []string
	var line strings.Builder
	br := bufio.NewReader(r)
	for n < 0 || len(lines) < n {
		b, err := br.ReadByte()
		if err == io.EOF {
			if line.Len() > 0 {
				lines = append(lines, line.String())
			}
			break
		}
		if err != nil {
			return nil, err
		}

		switch b {
		case '\r':
			if next, err := br.Peek(1); err == nil && next[0] == '\n' {
				_, _ = br.ReadByte()
			}
			fallthrough
		case '\n':
			lines = append(lines, line.String())
			line.Reset()
		default:
			line.WriteByte(b)
		}
	}
	return lines, nil
}
