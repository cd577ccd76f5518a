package entry

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/carbon-tracker/backend/internal/domain/entity"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
)

var errBoom = errors.New("connection refused")

type fakeCatalog struct {
	types []*entity.ActivityType
	err   error
}

func (f *fakeCatalog) FindAll(context.Context) ([]*entity.ActivityType, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.types, nil
}

func (f *fakeCatalog) FindByID(_ context.Context, id string) (*entity.ActivityType, error) {
	for _, t := range f.types {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, domainerror.ErrUnknownActivityType
}

func (f *fakeCatalog) Upsert(context.Context, []*entity.ActivityType) error { return nil }

// fakeEntryRepo keeps rows per owner and copies what it stores, like a database.
type fakeEntryRepo struct {
	mu        sync.Mutex
	rows      []*entity.Entry
	failWrite bool
	failRead  bool
	deletes   []string
}

func (f *fakeEntryRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failRead {
		return nil, errBoom
	}
	out := make([]*entity.Entry, 0)
	for _, r := range f.rows {
		if r.UserID == userID.String() {
			out = append(out, r.Clone())
		}
	}
	return out, nil
}

func (f *fakeEntryRepo) Create(_ context.Context, e *entity.Entry) (*entity.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrite {
		return nil, errBoom
	}
	f.rows = append([]*entity.Entry{e.Clone()}, f.rows...)
	return e.Clone(), nil
}

func (f *fakeEntryRepo) Delete(_ context.Context, id string, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrite {
		return errBoom
	}
	f.deletes = append(f.deletes, id)
	kept := f.rows[:0]
	for _, r := range f.rows {
		if r.ID == id && r.UserID == userID.String() {
			continue
		}
		kept = append(kept, r)
	}
	f.rows = kept
	return nil
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []entity.Notification
}

func (r *recordingNotifier) Notify(n entity.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
}

func (r *recordingNotifier) last() entity.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.sent) == 0 {
		return entity.Notification{}
	}
	return r.sent[len(r.sent)-1]
}
