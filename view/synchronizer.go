// Package view держит отображаемый список студентов в согласии с хранилищем
// и помнит, какая запись сейчас редактируется.
//
// Снимок заменяется целиком только при обновлении. После каждого успешного
// изменения через Synchronizer выполняется обновление, поэтому снимок всегда
// равен последнему ответу хранилища.
package view

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"student-registry/models"
	"student-registry/store"
)

type Mode string

const (
	Idle    Mode = "idle"
	Editing Mode = "editing"
)

// Session - состояние формы. В режиме Idle EditingID равен нулю
type Session struct {
	Mode      Mode         `json:"mode"`
	EditingID int64        `json:"editing_id,omitempty"`
	Draft     models.Draft `json:"draft"`
}

// ErrRefresh - запись уже сохранена, но перечитать список не удалось
var ErrRefresh = errors.New("refresh after write failed")

type Synchronizer struct {
	store store.RecordStore

	mu        sync.Mutex
	snapshot  []models.Student
	session   Session
	observers []func([]models.Student)
}

func NewSynchronizer(s store.RecordStore) *Synchronizer {
	return &Synchronizer{
		store:    s,
		snapshot: []models.Student{},
		session:  Session{Mode: Idle},
	}
}

// Observe подписывает fn на каждый новый снимок.
// Наблюдатели вызываются без удержания блокировки и могут читать Synchronizer.
func (s *Synchronizer) Observe(fn func([]models.Student)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

func (s *Synchronizer) Refresh(ctx context.Context) error {
	s.mu.Lock()
	notify, err := s.refreshLocked(ctx)
	s.mu.Unlock()

	notify()
	return err
}

// refreshLocked заменяет снимок и возвращает оповещение наблюдателей,
// которое вызывающий выполняет после снятия блокировки
func (s *Synchronizer) refreshLocked(ctx context.Context) (func(), error) {
	students, err := s.store.GetAll(ctx)
	if err != nil {
		return func() {}, err
	}
	s.snapshot = students

	observers := append([]func([]models.Student){}, s.observers...)
	return func() {
		for _, fn := range observers {
			fn(cloneStudents(students))
		}
	}, nil
}

// Snapshot возвращает копию записей на момент последнего обновления
func (s *Synchronizer) Snapshot() []models.Student {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneStudents(s.snapshot)
}

func (s *Synchronizer) Session() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// BeginEdit загружает запись из снимка в черновик.
// Если записи в снимке нет, возвращается store.ErrNotFound и сессия не меняется.
func (s *Synchronizer) BeginEdit(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, st := range s.snapshot {
		if st.ID == id {
			s.session = Session{Mode: Editing, EditingID: id, Draft: models.DraftOf(st)}
			return nil
		}
	}
	return fmt.Errorf("%w: id %d", store.ErrNotFound, id)
}

func (s *Synchronizer) CancelEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = Session{Mode: Idle}
}

// Commit в режиме Idle добавляет запись, в режиме Editing - обновляет.
// Возвращает id записи и режим, в котором выполнялась запись.
// Если хранилище отказало, режим сохраняется, а черновик запоминается.
func (s *Synchronizer) Commit(ctx context.Context, draft models.Draft) (int64, Mode, error) {
	s.mu.Lock()

	mode := s.session.Mode
	id := s.session.EditingID
	var err error
	if mode == Editing {
		err = s.store.Update(ctx, id, draft.Name, draft.Email, draft.Course)
	} else {
		id, err = s.store.Add(ctx, draft.Name, draft.Email, draft.Course)
	}
	if err != nil {
		s.session.Draft = draft
		s.mu.Unlock()
		return 0, mode, err
	}

	s.session = Session{Mode: Idle}
	notify, err := s.refreshLocked(ctx)
	s.mu.Unlock()

	if err != nil {
		log.Printf("⚠️ Student %d saved but refresh failed: %v", id, err)
		return id, mode, fmt.Errorf("%w: %w", ErrRefresh, err)
	}
	notify()
	return id, mode, nil
}

// Remove удаляет запись; если она редактировалась, сессия возвращается в Idle
func (s *Synchronizer) Remove(ctx context.Context, id int64) error {
	s.mu.Lock()

	if err := s.store.Delete(ctx, id); err != nil {
		s.mu.Unlock()
		return err
	}

	if s.session.Mode == Editing && s.session.EditingID == id {
		s.session = Session{Mode: Idle}
	}
	notify, err := s.refreshLocked(ctx)
	s.mu.Unlock()

	if err != nil {
		log.Printf("⚠️ Student %d deleted but refresh failed: %v", id, err)
		return fmt.Errorf("%w: %w", ErrRefresh, err)
	}
	notify()
	return nil
}

func cloneStudents(in []models.Student) []models.Student {
	out := make([]models.Student, len(in))
	copy(out, in)
	return out
}
