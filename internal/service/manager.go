package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/ericogr/technonomicon/internal/config"
	"github.com/ericogr/technonomicon/internal/constants"
	"github.com/ericogr/technonomicon/internal/dedupe"
	"github.com/ericogr/technonomicon/internal/game"
	"github.com/ericogr/technonomicon/internal/logging"
	"github.com/ericogr/technonomicon/internal/storage"
)

// Manager owns the live sessions. Calls for one session are serialized by
// a per-session mutex; different sessions proceed in parallel.
type Manager struct {
	catalog *config.LoadedCatalog
	repo    storage.Repository
	options func() Options

	mu       sync.Mutex
	sessions map[string]*slot
}

type slot struct {
	mu      sync.Mutex
	session *Session
}

// NewManager returns a manager over the catalog. repo may be nil, in which
// case sessions live only in memory. options is called once per new session;
// nil means production defaults.
func NewManager(lc *config.LoadedCatalog, repo storage.Repository, options func() Options) *Manager {
	if options == nil {
		options = func() Options { return Options{} }
	}
	return &Manager{
		catalog:  lc,
		repo:     repo,
		options:  options,
		sessions: make(map[string]*slot),
	}
}

// Create starts a new session and returns its id.
func (m *Manager) Create(name string) (string, error) {
	id := uuid.NewString()
	s, err := NewSession(id, strings.TrimSpace(name), m.catalog, m.options())
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	m.sessions[id] = &slot{session: s}
	m.mu.Unlock()
	logging.Info("session created", logging.Fields{constants.LogFieldSession: id, constants.LogFieldName: s.Name})
	return id, nil
}

// Do runs fn with exclusive access to the session, loading it from storage
// when it is not in memory.
func (m *Manager) Do(id string, fn func(*Session) error) error {
	sl, err := m.slot(id)
	if err != nil {
		return err
	}
	sl.mu.Lock()
	defer sl.mu.Unlock()
	return fn(sl.session)
}

func (m *Manager) slot(id string) (*slot, error) {
	m.mu.Lock()
	sl, ok := m.sessions[id]
	m.mu.Unlock()
	if ok {
		return sl, nil
	}
	if m.repo == nil {
		return nil, ErrSessionNotFound
	}
	v, err, shared := dedupe.SessionGroup.Do(dedupe.SessionKey(id), func() (interface{}, error) {
		return m.load(id)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logging.Debug("session load shared", logging.Fields{constants.LogFieldSession: id})
	}
	return v.(*slot), nil
}

func (m *Manager) load(id string) (*slot, error) {
	m.mu.Lock()
	if sl, ok := m.sessions[id]; ok {
		m.mu.Unlock()
		return sl, nil
	}
	m.mu.Unlock()

	saved, err := m.repo.LoadSnapshot(id)
	if err != nil {
		if errors.Is(err, storage.ErrSnapshotNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	var st State
	if err := json.Unmarshal(saved.Snapshot, &st); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	s, err := NewSession(id, st.Name, m.catalog, m.options())
	if err != nil {
		return nil, err
	}
	if err := s.Import(st); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if sl, ok := m.sessions[id]; ok {
		return sl, nil
	}
	sl := &slot{session: s}
	m.sessions[id] = sl
	logging.Info("session loaded", logging.Fields{constants.LogFieldSession: id})
	return sl, nil
}

// Save persists the session snapshot and its promoted entries.
func (m *Manager) Save(id string) error {
	if m.repo == nil {
		return ErrStorageDisabled
	}
	return m.Do(id, func(s *Session) error {
		st := s.Export()
		data, err := json.Marshal(st)
		if err != nil {
			return fmt.Errorf("encode session %s: %w", id, err)
		}
		saved := &storage.SaveSlot{
			SessionID:      id,
			Name:           s.Name,
			LibraryVersion: st.Discovery.LibraryVersion,
			TotalCrafts:    st.Discovery.TotalCrafts,
			Balance:        st.Ledger.TotalData,
			Snapshot:       data,
		}
		var promoted []storage.PromotedEntry
		for _, e := range append(st.Promoted.Spells, st.Promoted.Rituals...) {
			promoted = append(promoted, promotedRow(e))
		}
		if err := m.repo.SaveSnapshot(saved, promoted); err != nil {
			return err
		}
		logging.Info("session saved", logging.Fields{
			constants.LogFieldSession: id,
			constants.LogFieldVersion: st.Discovery.LibraryVersion,
			constants.LogFieldBalance: st.Ledger.TotalData,
		})
		return nil
	})
}

func promotedRow(e game.Entry) storage.PromotedEntry {
	return storage.PromotedEntry{
		Kind:     string(e.Kind),
		Key:      e.Key,
		Name:     e.Name,
		Tier:     e.Tier,
		Elements: strings.Join(e.Elements, ","),
		CodeBits: strings.Join(e.CodeBits, ","),
	}
}

// Delete drops the session from memory and storage.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	_, live := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if m.repo == nil {
		if !live {
			return ErrSessionNotFound
		}
		return nil
	}
	err := m.repo.DeleteSnapshot(id)
	if errors.Is(err, storage.ErrSnapshotNotFound) {
		if live {
			return nil
		}
		return ErrSessionNotFound
	}
	return err
}

// Summary is one row of the session listing.
type Summary struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	LibraryVersion int    `json:"library_version"`
	TotalCrafts    int    `json:"total_crafts"`
	Balance        int    `json:"balance"`
	Live           bool   `json:"live"`
	Saved          bool   `json:"saved"`
}

// List merges live sessions with saved snapshots, ordered by id.
func (m *Manager) List() ([]Summary, error) {
	byID := map[string]*Summary{}
	if m.repo != nil {
		saved, err := m.repo.ListSnapshots()
		if err != nil {
			return nil, err
		}
		for _, s := range saved {
			byID[s.SessionID] = &Summary{
				ID:             s.SessionID,
				Name:           s.Name,
				LibraryVersion: s.LibraryVersion,
				TotalCrafts:    s.TotalCrafts,
				Balance:        s.Balance,
				Saved:          true,
			}
		}
	}

	m.mu.Lock()
	live := make([]*slot, 0, len(m.sessions))
	for _, sl := range m.sessions {
		live = append(live, sl)
	}
	m.mu.Unlock()
	for _, sl := range live {
		sl.mu.Lock()
		st := sl.session.Status()
		sl.mu.Unlock()
		sum, ok := byID[st.ID]
		if !ok {
			sum = &Summary{ID: st.ID}
			byID[st.ID] = sum
		}
		sum.Name = st.Name
		sum.LibraryVersion = st.LibraryVersion
		sum.TotalCrafts = st.TotalCrafts
		sum.Balance = st.Balance
		sum.Live = true
	}

	out := make([]Summary, 0, len(byID))
	for _, s := range byID {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
