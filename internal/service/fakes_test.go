package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/noah-isme/bagspec-api/internal/models"
	appErrors "github.com/noah-isme/bagspec-api/pkg/errors"
	"github.com/noah-isme/bagspec-api/pkg/mailer"
)

type fakeSubmissionRepo struct {
	mu        sync.Mutex
	rows      []models.Submission
	seq       int
	createErr error
	listErr   error
}

func (r *fakeSubmissionRepo) Create(ctx context.Context, s *models.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.seq++
	s.ID = fmt.Sprintf("sub-%d", r.seq)
	s.CreatedAt = time.Unix(int64(r.seq), 0).UTC()
	r.rows = append(r.rows, *s)
	return nil
}

func (r *fakeSubmissionRepo) find(token string, pendingOnly bool) (int, bool) {
	for i, row := range r.rows {
		if row.Token != token || row.BagType != nil {
			continue
		}
		if pendingOnly && row.Submitted {
			continue
		}
		return i, true
	}
	return 0, false
}

func (r *fakeSubmissionRepo) FindByToken(ctx context.Context, token string) (*models.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.find(token, false)
	if !ok {
		return nil, sql.ErrNoRows
	}
	row := r.rows[i]
	return &row, nil
}

func (r *fakeSubmissionRepo) FindPendingByToken(ctx context.Context, token string) (*models.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.find(token, true)
	if !ok {
		return nil, sql.ErrNoRows
	}
	row := r.rows[i]
	return &row, nil
}

func (r *fakeSubmissionRepo) Finalize(ctx context.Context, token string, build func(*models.Submission) *models.Submission) (*models.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.find(token, true)
	if !ok {
		return nil, sql.ErrNoRows
	}
	pending := r.rows[i]
	finalized := build(&pending)
	r.seq++
	now := time.Unix(int64(r.seq), 0).UTC()
	finalized.ID = fmt.Sprintf("sub-%d", r.seq)
	finalized.Submitted = true
	finalized.CreatedAt = now
	finalized.SubmittedAt = &now
	r.rows[i].Submitted = true
	r.rows[i].SubmittedAt = &now
	r.rows = append(r.rows, *finalized)
	return finalized, nil
}

func (r *fakeSubmissionRepo) List(ctx context.Context, filter models.SubmissionFilter) ([]models.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []models.Submission
	for _, row := range r.rows {
		if filter.Status == models.SubmissionStatusPending && row.Submitted {
			continue
		}
		if filter.Status == models.SubmissionStatusSubmitted && !row.Submitted {
			continue
		}
		if filter.PONumber != "" && !strings.Contains(strings.ToLower(models.StringValue(row.PONumber)), strings.ToLower(filter.PONumber)) {
			continue
		}
		out = append(out, row)
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	return out, nil
}

func (r *fakeSubmissionRepo) pending(token string) models.Submission {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, _ := r.find(token, false)
	return r.rows[i]
}

type seqIssuer struct {
	n   int
	err error
}

func (i *seqIssuer) Issue() (string, error) {
	if i.err != nil {
		return "", i.err
	}
	i.n++
	return fmt.Sprintf("token-%02d", i.n), nil
}

type staticLinks struct{}

func (staticLinks) FormURL(token string) string { return "http://forms.test/form/" + token }

type recordingSender struct {
	mu   sync.Mutex
	sent []mailer.Message
	err  error
}

func (s *recordingSender) Send(ctx context.Context, msg mailer.Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

func (s *recordingSender) messages() []mailer.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]mailer.Message(nil), s.sent...)
}

type fakeBagSizeRepo struct {
	sizes     []models.BagSize
	listCalls int
	seq       int
}

func (r *fakeBagSizeRepo) ListByType(ctx context.Context, bagType string) ([]models.BagSize, error) {
	r.listCalls++
	out := []models.BagSize{}
	for i := len(r.sizes) - 1; i >= 0; i-- {
		if r.sizes[i].BagType == bagType {
			out = append(out, r.sizes[i])
		}
	}
	return out, nil
}

func (r *fakeBagSizeRepo) Exists(ctx context.Context, sizeName, bagType string) (bool, error) {
	for _, s := range r.sizes {
		if s.SizeName == sizeName && s.BagType == bagType {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBagSizeRepo) Create(ctx context.Context, size *models.BagSize) error {
	r.seq++
	size.ID = fmt.Sprintf("00000000-0000-0000-0000-%012d", r.seq)
	size.CreatedAt = time.Unix(int64(r.seq), 0).UTC()
	r.sizes = append(r.sizes, *size)
	return nil
}

func (r *fakeBagSizeRepo) Delete(ctx context.Context, id string) (*models.BagSize, error) {
	for i, s := range r.sizes {
		if s.ID == id {
			r.sizes = append(r.sizes[:i], r.sizes[i+1:]...)
			return &s, nil
		}
	}
	return nil, sql.ErrNoRows
}

// memoryCache stores values as-is, keyed by string.
type memoryCache struct {
	values  map[string][]models.BagSize
	deleted []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string][]models.BagSize{}}
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	v, ok := c.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	out, ok := dest.(*[]models.BagSize)
	if !ok {
		return errors.New("unexpected destination")
	}
	*out = append([]models.BagSize(nil), v...)
	return nil
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	v, ok := value.([]models.BagSize)
	if !ok {
		return errors.New("unexpected value")
	}
	c.values[key] = v
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.values, k)
		c.deleted = append(c.deleted, k)
	}
	return nil
}
