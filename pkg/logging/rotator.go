package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// SequentialRotator is an io.Writer that rolls "name.log" over to "name.N.log"
// once it grows past maxSize, keeping at most maxBackups rolled files no older than maxAge days.
type SequentialRotator struct {
	mu         sync.Mutex
	filename   string
	maxSize    int64
	maxAge     int
	maxBackups int
	file       *os.File
	size       int64
}

func NewSequentialRotator(filename string, maxSizeMB, maxAge, maxBackups int) *SequentialRotator {
	return &SequentialRotator{
		filename:   filename,
		maxSize:    int64(maxSizeMB) * 1024 * 1024,
		maxAge:     maxAge,
		maxBackups: maxBackups,
	}
}

func (r *SequentialRotator) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		if err := r.open(); err != nil {
			return 0, err
		}
	}

	if r.maxSize > 0 && r.size > 0 && r.size+int64(len(p)) > r.maxSize {
		if err := r.rotate(); err != nil {
			return 0, err
		}
	}

	n, err := r.file.Write(p)
	r.size += int64(n)
	return n, err
}

// Sync lets zap flush through the rotator
func (r *SequentialRotator) Sync() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file == nil {
		return nil
	}
	return r.file.Sync()
}

func (r *SequentialRotator) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

func (r *SequentialRotator) open() error {
	if err := os.MkdirAll(filepath.Dir(r.filename), 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(r.filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return err
	}

	r.file = f
	r.size = info.Size()
	return nil
}

func (r *SequentialRotator) rotate() error {
	if err := r.file.Close(); err != nil {
		return err
	}
	r.file = nil

	rolled := fmt.Sprintf("%s.%d.log", strings.TrimSuffix(r.filename, ".log"), r.nextSequence())
	if err := os.Rename(r.filename, rolled); err != nil {
		return err
	}

	r.prune()
	r.size = 0
	return r.open()
}

type rolledFile struct {
	path    string
	seq     int
	modTime time.Time
}

func (r *SequentialRotator) rolledFiles() []rolledFile {
	base := strings.TrimSuffix(r.filename, ".log")
	matches, err := filepath.Glob(base + ".*.log")
	if err != nil {
		return nil
	}

	files := make([]rolledFile, 0, len(matches))
	for _, path := range matches {
		seqPart := strings.TrimSuffix(strings.TrimPrefix(path, base+"."), ".log")
		seq, err := strconv.Atoi(seqPart)
		if err != nil {
			continue
		}
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		files = append(files, rolledFile{path: path, seq: seq, modTime: info.ModTime()})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].seq > files[j].seq })
	return files
}

func (r *SequentialRotator) nextSequence() int {
	files := r.rolledFiles()
	if len(files) == 0 {
		return 1
	}
	return files[0].seq + 1
}

// prune drops rolled files beyond maxBackups (oldest sequence first) and past maxAge
func (r *SequentialRotator) prune() {
	files := r.rolledFiles()
	cutoff := time.Now().AddDate(0, 0, -r.maxAge)

	for i, f := range files {
		tooMany := r.maxBackups > 0 && i >= r.maxBackups
		tooOld := r.maxAge > 0 && f.modTime.Before(cutoff)
		if tooMany || tooOld {
			_ = os.Remove(f.path)
		}
	}
}
