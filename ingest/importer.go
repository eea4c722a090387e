package ingest

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/rolodex/book"
	"github.com/poiesic/rolodex/core"
	"github.com/poiesic/rolodex/storage"
)

// Importer bulk-loads contacts into a book and persists them through a
// worker pool. Contacts whose content fingerprint already exists — in
// storage or earlier in the same batch — are skipped.
type Importer struct {
	book     *book.Book
	contacts storage.ContactRepository
	pool     *ants.Pool
	logger   *slog.Logger
}

// Option configures an Importer.
type Option func(*Importer) error

// WithPoolSize sets the worker pool size for concurrent persistence.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(imp *Importer) error {
		if size < 1 {
			size = 1
		}
		if imp.pool != nil {
			imp.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		imp.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(imp *Importer) error {
		if logger == nil {
			logger = slog.Default()
		}
		imp.logger = logger
		return nil
	}
}

// NewImporter creates a new importer over the given book and repository.
func NewImporter(b *book.Book, contacts storage.ContactRepository, opts ...Option) (*Importer, error) {
	if b == nil {
		return nil, ErrBookRequired
	}
	if contacts == nil {
		return nil, ErrRepositoryRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	imp := &Importer{
		book:     b,
		contacts: contacts,
		pool:     pool,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(imp); optErr != nil {
			imp.Release()
			return nil, optErr
		}
	}

	return imp, nil
}

// Import adds contacts to the book and persists them concurrently.
// Invalid contacts and duplicates are skipped with a log line; any other
// failure stops the batch. Returns the number of contacts added to the
// book. Persistence errors inside the pool are logged, not returned —
// the book remains the source of truth for the running process.
func (imp *Importer) Import(ctx context.Context, contacts []*core.Contact) (int, error) {
	seen := make(map[core.ID]struct{}, len(contacts))
	var added int
	var wg sync.WaitGroup
	defer wg.Wait()

	for _, contact := range contacts {
		if err := core.ValidateContact(contact); err != nil {
			imp.logger.Warn("skipping invalid contact", "err", err)
			continue
		}

		fingerprint := contact.Fingerprint()
		if _, dup := seen[fingerprint]; dup {
			imp.logger.Debug("skipping duplicate contact in batch", "name", contact.Name)
			continue
		}
		if _, err := imp.contacts.FindByFingerprint(ctx, fingerprint); err == nil {
			imp.logger.Debug("skipping already stored contact", "name", contact.Name)
			continue
		} else if !errors.Is(err, storage.ErrNotFound) {
			return added, err
		}
		seen[fingerprint] = struct{}{}

		if _, err := imp.book.Add(contact); err != nil {
			return added, err
		}
		added++

		wg.Add(1)
		c := contact
		if err := imp.pool.Submit(func() {
			defer wg.Done()
			if err := imp.contacts.PutContacts(ctx, c); err != nil {
				imp.logger.Error("failed to persist imported contact", "id", c.Id, "err", err)
			}
		}); err != nil {
			wg.Done()
			return added, err
		}
	}

	return added, nil
}

// Release shuts down the worker pool.
func (imp *Importer) Release() {
	if imp.pool != nil {
		imp.pool.Release()
	}
}
