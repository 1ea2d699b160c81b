package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/teamtrack/internal/domain/media"
	"github.com/riskibarqy/teamtrack/internal/domain/notification"
	"github.com/riskibarqy/teamtrack/internal/domain/profile"
	"github.com/riskibarqy/teamtrack/internal/domain/realtime"
	"github.com/riskibarqy/teamtrack/internal/infrastructure/repository/memory"
)

var testNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func newTestClock() *clockwork.FakeClock {
	return clockwork.NewFakeClockAt(testNow)
}

type sentNotification struct {
	ExceptUserID string
	Kind         notification.Type
	Title        string
	Message      string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
}

func (n *recordingNotifier) NotifyAllExcept(_ context.Context, exceptUserID string, kind notification.Type, title, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentNotification{ExceptUserID: exceptUserID, Kind: kind, Title: title, Message: message})
	return nil
}

func (n *recordingNotifier) Sent() []sentNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sentNotification(nil), n.sent...)
}

type recordingPublisher struct {
	mu      sync.Mutex
	changes []realtime.Change
}

func (p *recordingPublisher) Publish(_ context.Context, change realtime.Change) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.changes = append(p.changes, change)
	return nil
}

func (p *recordingPublisher) Changes() []realtime.Change {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]realtime.Change(nil), p.changes...)
}

func seededProfiles(items ...profile.Profile) *memory.ProfileRepository {
	return memory.NewProfileRepository(items)
}

func managerProfile(id string) profile.Profile {
	return profile.Profile{ID: id, Email: id + "@example.com", FullName: "Manager " + id, Role: profile.RoleManager, CreatedAt: testNow, UpdatedAt: testNow}
}

func playerProfile(id string) profile.Profile {
	return profile.Profile{ID: id, Email: id + "@example.com", FullName: "Player " + id, Role: profile.RolePlayer, CreatedAt: testNow, UpdatedAt: testNow}
}

func parentProfile(id string, children ...string) profile.Profile {
	return profile.Profile{ID: id, Email: id + "@example.com", FullName: "Parent " + id, Role: profile.RoleParent, ParentOf: children, CreatedAt: testNow, UpdatedAt: testNow}
}

// memStorage keeps objects in a map keyed by bucket/path.
type memStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func newMemStorage() *memStorage {
	return &memStorage{objects: make(map[string][]byte), types: make(map[string]string)}
}

func (s *memStorage) Put(_ context.Context, bucket, objectPath, contentType string, body io.Reader) (int64, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[bucket+"/"+objectPath] = data
	s.types[bucket+"/"+objectPath] = contentType
	return int64(len(data)), nil
}

func (s *memStorage) Open(_ context.Context, bucket, objectPath string) (media.Object, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[bucket+"/"+objectPath]
	if !ok {
		return media.Object{}, fmt.Errorf("%w: %s/%s", media.ErrObjectNotFound, bucket, objectPath)
	}
	return media.Object{Body: io.NopCloser(bytes.NewReader(data)), Size: int64(len(data)), ContentType: s.types[bucket+"/"+objectPath]}, nil
}

func (s *memStorage) Remove(_ context.Context, bucket, objectPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, bucket+"/"+objectPath)
	delete(s.types, bucket+"/"+objectPath)
	return nil
}

func (s *memStorage) PublicURL(bucket, objectPath string) string {
	return "http://files.test/" + bucket + "/" + objectPath
}

func (s *memStorage) Has(bucket, objectPath string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[bucket+"/"+objectPath]
	return ok
}

func (s *memStorage) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}
