package datastore

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// Fixture file names inside a snapshot directory.
const (
	ItemsFile    = "inventory.jsonl"
	EventsFile   = "events.jsonl"
	ActiveFile   = "active_events.jsonl"
	ArchiveFile  = "archive.jsonl"
	PaymentsFile = "payments.jsonl"
)

// readJSONL decodes one record per line. A missing file yields no records; invalid lines are
// skipped with a warning.
func readJSONL[T any](path string) ([]T, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", filepath.Base(path), err)
	}
	defer file.Close()

	var records []T
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var r T
		if err := json.Unmarshal(scanner.Bytes(), &r); err != nil {
			log.Warn().Err(err).Str("file", filepath.Base(path)).Int("line", line).Msg("Skipping invalid JSON line")
			continue
		}
		records = append(records, r)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", filepath.Base(path), err)
	}
	return records, nil
}

// writeJSONL writes records to a private temp file in the target directory and renames it
// into place.
func writeJSONL[T any](path string, records []T) error {
	file, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := file.Name()

	writer := bufio.NewWriter(file)
	encoder := json.NewEncoder(writer)

	for _, r := range records {
		if err := encoder.Encode(r); err != nil {
			file.Close()
			os.Remove(tmpPath)
			return fmt.Errorf("failed to encode record: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to flush writer: %w", err)
	}

	if err := file.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename %s: %w", filepath.Base(path), err)
	}
	return nil
}

// Save persists the store's dataset as JSONL fixtures under dir. Saves are serialized from
// the snapshot through the last rename, so the files on disk always come from the latest save.
func (s *Store) Save(dir string) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	snap := s.Snapshot()
	if err := writeJSONL(filepath.Join(dir, ItemsFile), snap.Items); err != nil {
		return err
	}
	if err := writeJSONL(filepath.Join(dir, EventsFile), snap.Events); err != nil {
		return err
	}
	if err := writeJSONL(filepath.Join(dir, ActiveFile), snap.ActiveEvents); err != nil {
		return err
	}
	if err := writeJSONL(filepath.Join(dir, ArchiveFile), snap.ArchivedEvents); err != nil {
		return err
	}
	if err := writeJSONL(filepath.Join(dir, PaymentsFile), snap.Payments); err != nil {
		return err
	}

	log.Info().Str("dir", dir).Interface("counts", s.Count()).Msg("Snapshot saved")
	return nil
}
