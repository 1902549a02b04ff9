package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/rowestoli/QuackLog/internal"
)

// FileStorage keeps all submissions in memory with a per-user index in
// created_at-descending order, flushing to a JSON file through a debounced
// background worker.
type FileStorage struct {
	submissions map[string]*internal.LogSubmission   // id -> submission
	userIndex   map[string][]*internal.LogSubmission // userID -> submissions, created_at descending
	mu          sync.RWMutex
	saveMu      sync.Mutex // serializes flushes sharing the same temp file
	logsFile    string
	saveChan    chan struct{}
	shutdown    chan struct{}
	saveDelay   time.Duration
	logger      internal.Logger
}

func NewFileStorage(logsFile string, logger internal.Logger) (*FileStorage, error) {
	s := &FileStorage{
		submissions: make(map[string]*internal.LogSubmission),
		userIndex:   make(map[string][]*internal.LogSubmission),
		logsFile:    logsFile,
		saveChan:    make(chan struct{}, 1),
		shutdown:    make(chan struct{}),
		saveDelay:   500 * time.Millisecond,
		logger:      logger,
	}

	if err := s.load(); err != nil {
		logger.Errorf("storage: failed to load submissions: %v", err)
		return nil, err
	}

	go s.saveWorker()

	return s, nil
}

func (s *FileStorage) load() error {
	file, err := os.Open(s.logsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	var subs []*internal.LogSubmission
	if err := json.NewDecoder(file).Decode(&subs); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sub := range subs {
		s.submissions[sub.ID] = sub
		s.userIndex[sub.UserID] = append(s.userIndex[sub.UserID], sub)
	}
	for userID := range s.userIndex {
		sort.Slice(s.userIndex[userID], func(i, j int) bool {
			return s.userIndex[userID][i].CreatedAt.After(s.userIndex[userID][j].CreatedAt)
		})
	}
	return nil
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

func (s *FileStorage) save() error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.RLock()
	subs := make([]*internal.LogSubmission, 0, len(s.submissions))
	for _, sub := range s.submissions {
		subs = append(subs, sub)
	}
	s.mu.RUnlock()

	return atomicWriteFileJSON(s.logsFile, subs)
}

// saveWorker batches save operations to avoid frequent disk writes.
func (s *FileStorage) saveWorker() {
	timer := time.NewTimer(s.saveDelay)
	defer timer.Stop()

	for {
		select {
		case <-s.saveChan:
			timer.Reset(s.saveDelay)
		case <-timer.C:
			if err := s.save(); err != nil {
				s.logger.Errorf("storage: error saving submissions: %v", err)
			}
		case <-s.shutdown:
			return
		}
	}
}

func (s *FileStorage) signalSave() {
	select {
	case s.saveChan <- struct{}{}:
	default:
	}
}

// Close stops the background worker and flushes pending data synchronously.
func (s *FileStorage) Close() error {
	close(s.shutdown)
	return s.save()
}

func (s *FileStorage) SaveSubmission(ctx context.Context, sub *internal.LogSubmission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.submissions[sub.ID] = sub

	// Insert maintaining created_at-descending order.
	subs := s.userIndex[sub.UserID]
	inserted := false
	for i, existing := range subs {
		if existing.CreatedAt.Before(sub.CreatedAt) {
			subs = append(subs[:i], append([]*internal.LogSubmission{sub}, subs[i:]...)...)
			inserted = true
			break
		}
	}
	if !inserted {
		subs = append(subs, sub)
	}
	s.userIndex[sub.UserID] = subs

	s.signalSave()
	return nil
}

func (s *FileStorage) ListSubmissions(ctx context.Context, userID string) ([]internal.LogSubmission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySubmissions(s.userIndex[userID]), nil
}

func (s *FileStorage) ListSubmissionsByDate(ctx context.Context, userID, date string) ([]internal.LogSubmission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var subs []internal.LogSubmission
	for _, sub := range s.userIndex[userID] {
		if sub.Date == date {
			subs = append(subs, *sub)
		}
	}
	if subs == nil {
		subs = []internal.LogSubmission{}
	}
	return subs, nil
}

func (s *FileStorage) ListRecentSubmissions(ctx context.Context, userID string, limit int) ([]internal.LogSubmission, error) {
	if limit <= 0 {
		return []internal.LogSubmission{}, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	subs := s.userIndex[userID]
	if limit < len(subs) {
		subs = subs[:limit]
	}
	return copySubmissions(subs), nil
}

func (s *FileStorage) DeleteSubmission(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.submissions[id]
	if !ok || sub.UserID != userID {
		return ErrNotFound
	}
	delete(s.submissions, id)

	subs := s.userIndex[userID]
	for i, existing := range subs {
		if existing.ID == id {
			s.userIndex[userID] = append(subs[:i], subs[i+1:]...)
			break
		}
	}

	s.signalSave()
	return nil
}

func copySubmissions(subs []*internal.LogSubmission) []internal.LogSubmission {
	out := make([]internal.LogSubmission, len(subs))
	for i, sub := range subs {
		out[i] = *sub
	}
	return out
}

var _ SubmissionRepository = (*FileStorage)(nil)
