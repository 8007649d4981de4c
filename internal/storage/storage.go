package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/pfrederiksen/sharif-course-watch/internal/course"
)

const (
	currentName = "courses_output.json"
	oldName     = "courses_output - old.json"

	archiveTimestampLayout = "2006-01-02_15-04-05"
)

// Store persists snapshots on disk. Each Save rotates the previous current
// file to the "- old" name so the last two snapshots are always available
// for diffing, and drops a timestamped copy into the archive directory.
type Store struct {
	dataDir    string
	archiveDir string
}

// New creates a Store rooted at dataDir with archives under archiveDir.
func New(dataDir, archiveDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &Store{dataDir: dataDir, archiveDir: archiveDir}, nil
}

// CurrentPath returns the path of the latest saved snapshot.
func (s *Store) CurrentPath() string {
	return filepath.Join(s.dataDir, currentName)
}

// OldPath returns the path of the previously saved snapshot.
func (s *Store) OldPath() string {
	return filepath.Join(s.dataDir, oldName)
}

// Save rotates the current snapshot file to the old name, writes snap as
// the new current file, and archives a timestamped copy. A failed archive
// write is logged but does not fail the save.
func (s *Store) Save(snap course.Snapshot) error {
	current := s.CurrentPath()
	if _, err := os.Stat(current); err == nil {
		old := s.OldPath()
		if err := os.Remove(old); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing old snapshot: %w", err)
		}
		if err := os.Rename(current, old); err != nil {
			return fmt.Errorf("rotating snapshot: %w", err)
		}
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	s.archive(data)

	if err := os.WriteFile(current, data, 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

func (s *Store) archive(data []byte) {
	if err := os.MkdirAll(s.archiveDir, 0755); err != nil {
		log.WithError(err).Error("cannot create archive directory")
		return
	}
	name := time.Now().Format(archiveTimestampLayout) + ".json"
	path := filepath.Join(s.archiveDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		log.WithError(err).Error("cannot write archive snapshot")
		return
	}
	log.WithField("path", path).Info("archived snapshot")
}

// Restore installs the snapshot at path as the current snapshot so the
// next pass diffs against it instead of starting fresh. The file is parsed
// first so a corrupt restore source fails before anything is overwritten.
func (s *Store) Restore(path string) error {
	snap, err := s.Load(path)
	if err != nil {
		return fmt.Errorf("restoring snapshot: %w", err)
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := os.WriteFile(s.CurrentPath(), data, 0644); err != nil {
		return fmt.Errorf("writing restored snapshot: %w", err)
	}
	log.WithField("source", path).Info("restored snapshot")
	return nil
}

// Load reads a snapshot from an arbitrary path. Missing files surface as
// os.ErrNotExist so callers can distinguish a first run from corruption.
func (s *Store) Load(path string) (course.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	snap := course.NewSnapshot()
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}
	return snap, nil
}

// LoadCurrent reads the latest saved snapshot.
func (s *Store) LoadCurrent() (course.Snapshot, error) {
	return s.Load(s.CurrentPath())
}

// LoadPrevious reads the snapshot saved before the latest one.
func (s *Store) LoadPrevious() (course.Snapshot, error) {
	return s.Load(s.OldPath())
}

// ModTime returns a path's modification time formatted for the report
// header, or a placeholder when the file does not exist.
func ModTime(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return "N/A (file not found)"
	}
	return info.ModTime().Format("2006-01-02 15:04:05")
}
