// Package aoistore is an embedded store for areas of improvement. AOIs are
// tracked locally by the dashboard rather than by the API, so the store keeps
// its rows in a standalone sqlite database and notifies subscribers after
// every mutation.
package aoistore

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"

	"gcghub/apperrors"

	_ "modernc.org/sqlite"
)

const (
	PriorityLow      = "LOW"
	PriorityMedium   = "MEDIUM"
	PriorityHigh     = "HIGH"
	PriorityCritical = "CRITICAL"

	StatusPending    = "PENDING"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusCancelled  = "CANCELLED"
)

func ValidPriority(priority string) bool {
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ValidActionItemStatus excludes CANCELLED, which only applies to the AOI
// itself.
func ValidActionItemStatus(status string) bool {
	switch status {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type ActionItem struct {
	ID          string     `json:"id"`
	Description string     `json:"description"`
	AssignedTo  string     `json:"assigned_to"`
	DueDate     *time.Time `json:"due_date"`
	Status      string     `json:"status"`
	CompletedAt *time.Time `json:"completed_at"`
}

type AOI struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Aspect      string       `json:"aspect"`
	Priority    string       `json:"priority"`
	Status      string       `json:"status"`
	AssignedTo  string       `json:"assigned_to"`
	DueDate     *time.Time   `json:"due_date"`
	Progress    int          `json:"progress"`
	ActionItems []ActionItem `json:"action_items"`
	Year        int          `json:"year"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

type Filter struct {
	Year     *int
	Aspect   *string
	Status   *string
	Priority *string
}

type Stats struct {
	Total      int            `json:"total"`
	ByStatus   map[string]int `json:"by_status"`
	ByPriority map[string]int `json:"by_priority"`
}

// Event describes one completed mutation. Deleted events carry only the ID.
type Event struct {
	Op  string `json:"op"` // "created", "updated", "deleted"
	ID  string `json:"id"`
	AOI *AOI   `json:"aoi,omitempty"`
}

// Store owns the sqlite database. All writes go through one mutex, so two
// goroutines can never interleave a read-modify-write on the same row.
type Store struct {
	mu          sync.RWMutex
	db          *sql.DB
	subscribers []func(Event)
}

// Open opens or creates the store at path. Use "file::memory:" for a
// throwaway in-memory store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "Failed to open AOI store", err)
	}
	// One connection: writes are serialized anyway, and an in-memory store
	// must not be split across pooled connections.
	db.SetMaxOpenConns(1)

	schema := `CREATE TABLE IF NOT EXISTS aois (
		id TEXT PRIMARY KEY,
		year INTEGER NOT NULL,
		aspect TEXT NOT NULL,
		status TEXT NOT NULL,
		priority TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		doc TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "Failed to migrate AOI store", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Subscribe registers fn to run after every mutation. Callbacks run
// synchronously on the mutating goroutine, outside the store lock.
func (s *Store) Subscribe(fn func(Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *Store) notify(event Event) {
	s.mu.RLock()
	subs := make([]func(Event), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.RUnlock()

	for _, fn := range subs {
		fn(event)
	}
}

func newID() string {
	buf := make([]byte, 12)
	rand.Read(buf)
	return hex.EncodeToString(buf)
}

func clampProgress(progress int) int {
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}

func (s *Store) validate(aoi *AOI) error {
	if aoi.Title == "" {
		return apperrors.New(apperrors.Validation, "Title is required")
	}
	if !ValidPriority(aoi.Priority) {
		return apperrors.Newf(apperrors.Validation, "Invalid priority: %s", aoi.Priority)
	}
	if !ValidStatus(aoi.Status) {
		return apperrors.Newf(apperrors.Validation, "Invalid status: %s", aoi.Status)
	}
	return nil
}

func (s *Store) Create(aoi AOI) (*AOI, error) {
	now := time.Now()
	aoi.ID = newID()
	if aoi.Priority == "" {
		aoi.Priority = PriorityMedium
	}
	if aoi.Status == "" {
		aoi.Status = StatusPending
	}
	aoi.Progress = clampProgress(aoi.Progress)
	if aoi.Progress >= 100 {
		aoi.Status = StatusCompleted
	}
	if aoi.ActionItems == nil {
		aoi.ActionItems = []ActionItem{}
	}
	for i := range aoi.ActionItems {
		aoi.ActionItems[i].ID = newID()
		if aoi.ActionItems[i].Status == "" {
			aoi.ActionItems[i].Status = StatusPending
		}
	}
	aoi.CreatedAt = now
	aoi.UpdatedAt = now

	if err := s.validate(&aoi); err != nil {
		return nil, err
	}

	s.mu.Lock()
	err := s.insert(&aoi)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	s.notify(Event{Op: "created", ID: aoi.ID, AOI: &aoi})
	return &aoi, nil
}

func (s *Store) insert(aoi *AOI) error {
	doc, err := json.Marshal(aoi)
	if err != nil {
		return apperrors.Wrap(apperrors.StoreUnavailable, "Failed to encode AOI", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO aois (id, year, aspect, status, priority, created_at, doc) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		aoi.ID, aoi.Year, aoi.Aspect, aoi.Status, aoi.Priority, aoi.CreatedAt, string(doc),
	)
	if err != nil {
		return apperrors.Wrap(apperrors.StoreUnavailable, "Failed to store AOI", err)
	}
	return nil
}

func (s *Store) Get(id string) (*AOI, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.get(id)
}

func (s *Store) get(id string) (*AOI, error) {
	var doc string
	err := s.db.QueryRow(`SELECT doc FROM aois WHERE id = ?`, id).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, apperrors.New(apperrors.NotFound, "AOI not found")
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "Failed to load AOI", err)
	}
	var aoi AOI
	if err := json.Unmarshal([]byte(doc), &aoi); err != nil {
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "Failed to decode AOI", err)
	}
	return &aoi, nil
}

func (s *Store) List(filter Filter) ([]AOI, error) {
	query := `SELECT doc FROM aois WHERE 1=1`
	var args []any
	if filter.Year != nil {
		query += ` AND year = ?`
		args = append(args, *filter.Year)
	}
	if filter.Aspect != nil {
		query += ` AND aspect = ?`
		args = append(args, *filter.Aspect)
	}
	if filter.Status != nil {
		query += ` AND status = ?`
		args = append(args, *filter.Status)
	}
	if filter.Priority != nil {
		query += ` AND priority = ?`
		args = append(args, *filter.Priority)
	}
	query += ` ORDER BY created_at DESC, id ASC`

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "Failed to list AOIs", err)
	}
	defer rows.Close()

	aois := []AOI{}
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, apperrors.Wrap(apperrors.StoreUnavailable, "Failed to scan AOI", err)
		}
		var aoi AOI
		if err := json.Unmarshal([]byte(doc), &aoi); err != nil {
			return nil, apperrors.Wrap(apperrors.StoreUnavailable, "Failed to decode AOI", err)
		}
		aois = append(aois, aoi)
	}
	return aois, rows.Err()
}

// UpdateRequest carries the mutable AOI fields. Nil pointers leave the field
// unchanged.
type UpdateRequest struct {
	Title       *string
	Description *string
	Aspect      *string
	Priority    *string
	Status      *string
	AssignedTo  *string
	DueDate     *time.Time
	Progress    *int
	Year        *int
}

func (s *Store) Update(id string, req UpdateRequest) (*AOI, error) {
	s.mu.Lock()
	aoi, err := s.update(id, req)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	s.notify(Event{Op: "updated", ID: aoi.ID, AOI: aoi})
	return aoi, nil
}

func (s *Store) update(id string, req UpdateRequest) (*AOI, error) {
	aoi, err := s.get(id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		aoi.Title = *req.Title
	}
	if req.Description != nil {
		aoi.Description = *req.Description
	}
	if req.Aspect != nil {
		aoi.Aspect = *req.Aspect
	}
	if req.Priority != nil {
		aoi.Priority = *req.Priority
	}
	if req.Status != nil {
		aoi.Status = *req.Status
	}
	if req.AssignedTo != nil {
		aoi.AssignedTo = *req.AssignedTo
	}
	if req.DueDate != nil {
		aoi.DueDate = req.DueDate
	}
	if req.Year != nil {
		aoi.Year = *req.Year
	}
	if req.Progress != nil {
		aoi.Progress = clampProgress(*req.Progress)
		if aoi.Progress >= 100 {
			aoi.Status = StatusCompleted
		}
	}
	aoi.UpdatedAt = time.Now()

	if err := s.validate(aoi); err != nil {
		return nil, err
	}
	if err := s.save(aoi); err != nil {
		return nil, err
	}
	return aoi, nil
}

// UpdateProgress sets the progress percentage, clamped to [0, 100]. Reaching
// 100 marks the AOI completed.
func (s *Store) UpdateProgress(id string, progress int) (*AOI, error) {
	return s.Update(id, UpdateRequest{Progress: &progress})
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	result, err := s.db.Exec(`DELETE FROM aois WHERE id = ?`, id)
	s.mu.Unlock()
	if err != nil {
		return apperrors.Wrap(apperrors.StoreUnavailable, "Failed to delete AOI", err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return apperrors.New(apperrors.NotFound, "AOI not found")
	}

	s.notify(Event{Op: "deleted", ID: id})
	return nil
}

func (s *Store) save(aoi *AOI) error {
	doc, err := json.Marshal(aoi)
	if err != nil {
		return apperrors.Wrap(apperrors.StoreUnavailable, "Failed to encode AOI", err)
	}
	_, err = s.db.Exec(
		`UPDATE aois SET year = ?, aspect = ?, status = ?, priority = ?, doc = ? WHERE id = ?`,
		aoi.Year, aoi.Aspect, aoi.Status, aoi.Priority, string(doc), aoi.ID,
	)
	if err != nil {
		return apperrors.Wrap(apperrors.StoreUnavailable, "Failed to update AOI", err)
	}
	return nil
}

func (s *Store) Stats(year int) (*Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{
		ByStatus:   map[string]int{},
		ByPriority: map[string]int{},
	}

	rows, err := s.db.Query(`SELECT status, priority FROM aois WHERE year = ?`, year)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "Failed to load AOI statistics", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status, priority string
		if err := rows.Scan(&status, &priority); err != nil {
			return nil, apperrors.Wrap(apperrors.StoreUnavailable, "Failed to scan AOI statistics", err)
		}
		stats.Total++
		stats.ByStatus[status]++
		stats.ByPriority[priority]++
	}
	return &stats, rows.Err()
}
