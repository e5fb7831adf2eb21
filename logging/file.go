package logging

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// FileWriter appends log lines to a file and rotates it by size. Rotated
// files are gzipped and only the newest maxFiles are kept.
type FileWriter struct {
	mu          sync.Mutex
	dir         string
	filename    string
	maxSize     int64
	maxFiles    int
	now         func() time.Time
	onError     func(error)
	currentFile *os.File
	currentSize int64
}

// NewFileWriter opens dir/filename for appending.
func NewFileWriter(dir, filename string, maxSizeMB, maxFiles int) (*FileWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	if maxFiles <= 0 {
		maxFiles = 5
	}
	fw := &FileWriter{
		dir:      dir,
		filename: filename,
		maxSize:  int64(maxSizeMB) * 1024 * 1024,
		maxFiles: maxFiles,
		now:      time.Now,
	}
	if err := fw.open(); err != nil {
		return nil, err
	}
	return fw, nil
}

func (fw *FileWriter) open() error {
	f, err := os.OpenFile(filepath.Join(fw.dir, fw.filename), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("stat log file: %w", err)
	}
	fw.currentFile = f
	fw.currentSize = info.Size()
	return nil
}

func (fw *FileWriter) Write(p []byte) (int, error) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.currentFile == nil {
		if err := fw.open(); err != nil {
			return 0, err
		}
	}
	if fw.currentSize > 0 && fw.currentSize+int64(len(p)) > fw.maxSize {
		if err := fw.rotate(); err != nil {
			return 0, err
		}
	}
	n, err := fw.currentFile.Write(p)
	fw.currentSize += int64(n)
	return n, err
}

// rotate always leaves an open active file when it returns nil. Rename and
// compression failures go to report and do not stop the writer.
func (fw *FileWriter) rotate() error {
	err := fw.currentFile.Close()
	fw.currentFile = nil
	if err != nil {
		return fmt.Errorf("close current file: %w", err)
	}

	oldPath := filepath.Join(fw.dir, fw.filename)
	rotated := filepath.Join(fw.dir, fmt.Sprintf("%s.%s", fw.filename, fw.now().Format("20060102-150405.000000000")))
	renameErr := os.Rename(oldPath, rotated)
	if err := fw.open(); err != nil {
		return err
	}
	if renameErr != nil {
		if !os.IsNotExist(renameErr) {
			fw.report(fmt.Errorf("rename log file: %w", renameErr))
		}
		return nil
	}
	if err := compress(rotated); err != nil {
		fw.report(err)
	}
	fw.prune()
	return nil
}

// report hands a non-fatal rotation error to onError, or stderr when unset.
func (fw *FileWriter) report(err error) {
	if fw.onError != nil {
		fw.onError(err)
		return
	}
	fmt.Fprintf(os.Stderr, "log rotation: %v\n", err)
}

func compress(path string) error {
	in, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open rotated log: %w", err)
	}
	defer in.Close()

	out, err := os.Create(path + ".gz")
	if err != nil {
		return fmt.Errorf("create compressed log: %w", err)
	}
	gz := gzip.NewWriter(out)
	if _, err := io.Copy(gz, in); err != nil {
		gz.Close()
		out.Close()
		os.Remove(path + ".gz")
		return fmt.Errorf("compress log: %w", err)
	}
	if err := gz.Close(); err != nil {
		out.Close()
		return fmt.Errorf("compress log: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("compress log: %w", err)
	}
	return os.Remove(path)
}

// prune removes the oldest rotated files beyond maxFiles. Rotated names
// embed a sortable timestamp.
func (fw *FileWriter) prune() {
	matches, err := filepath.Glob(filepath.Join(fw.dir, fw.filename+".*.gz"))
	if err != nil || len(matches) <= fw.maxFiles {
		return
	}
	sort.Strings(matches)
	for _, path := range matches[:len(matches)-fw.maxFiles] {
		os.Remove(path)
	}
}

// Close closes the current file.
func (fw *FileWriter) Close() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.currentFile == nil {
		return nil
	}
	err := fw.currentFile.Close()
	fw.currentFile = nil
	return err
}
