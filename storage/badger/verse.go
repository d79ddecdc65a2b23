package badger

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/dgraph-io/badger/v4"
	"github.com/kuralverse/kuralsearch/core"
	"github.com/kuralverse/kuralsearch/storage"
)

const placeholderWriteRetries = 3

// VerseRepository implements storage.VerseRepository for BadgerDB.
type VerseRepository struct {
	backend *Backend
	numSeq  *badger.Sequence
	logger  *slog.Logger

	// Cached result of Count; -1 means unknown. Invalidated by Add.
	cachedCount atomic.Int64
}

var _ storage.VerseRepository = (*VerseRepository)(nil)

// NewVerseRepository creates a new VerseRepository.
func NewVerseRepository(backend *Backend) (*VerseRepository, error) {
	numSeq, err := backend.GetSequence(verseNumberSeq)
	if err != nil {
		return nil, err
	}

	r := &VerseRepository{
		backend: backend,
		numSeq:  numSeq,
		logger:  slog.Default().With("component", "verse-repository"),
	}
	r.cachedCount.Store(-1)
	return r, nil
}

// Close releases the number sequence.
func (r *VerseRepository) Close() error {
	return r.numSeq.Release()
}

// Get retrieves a verse by number. Unknown numbers are answered with a
// synthesized placeholder which is cached so repeated lookups are stable.
func (r *VerseRepository) Get(ctx context.Context, number int) (*core.Verse, error) {
	verse, err := r.read(number)
	if err != nil {
		return nil, err
	}
	if verse != nil {
		return verse, nil
	}
	return r.cachePlaceholder(number)
}

// cachePlaceholder stores a placeholder for the given number unless another
// writer got there first, in which case the cached record wins.
func (r *VerseRepository) cachePlaceholder(number int) (*core.Verse, error) {
	r.logger.Debug("caching placeholder verse", "number", number)
	placeholder := core.NewPlaceholderVerse(number)

	var cached *core.Verse
	for attempt := 0; attempt < placeholderWriteRetries; attempt++ {
		cached = nil
		err := r.backend.Update(func(tx *badger.Txn) error {
			existing, err := r.readTx(tx, number)
			if err != nil {
				return err
			}
			if existing != nil {
				cached = existing
				return nil
			}
			return tx.Set(makeVerseKey(number), storage.MarshalVerse(placeholder))
		})
		if errors.Is(err, badger.ErrConflict) {
			// A concurrent lookup cached the placeholder first; re-read it.
			continue
		}
		if err != nil {
			return nil, err
		}
		if cached != nil {
			return cached, nil
		}
		return placeholder, nil
	}

	// Retries exhausted: the record must exist by now.
	verse, err := r.read(number)
	if err != nil {
		return nil, err
	}
	if verse == nil {
		return placeholder, nil
	}
	return verse, nil
}

// Lookup retrieves a verse for public lookups. Placeholders cached by Get
// are reported as not found.
func (r *VerseRepository) Lookup(ctx context.Context, number int) (*core.Verse, error) {
	verse, err := r.read(number)
	if err != nil {
		return nil, err
	}
	if verse == nil || verse.Placeholder {
		return nil, storage.ErrNotFound
	}
	return verse, nil
}

// List returns up to limit verses starting at offset, ascending by number.
func (r *VerseRepository) List(ctx context.Context, limit, offset int) ([]*core.Verse, error) {
	if limit <= 0 {
		return []*core.Verse{}, nil
	}
	if offset < 0 {
		offset = 0
	}

	verses := make([]*core.Verse, 0, limit)
	err := r.backend.View(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(versePrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		skipped := 0
		for iter.Rewind(); iter.Valid(); iter.Next() {
			var verse *core.Verse
			err := iter.Item().Value(func(val []byte) error {
				var err error
				verse, err = storage.UnmarshalVerse(val)
				return err
			})
			if err != nil {
				return err
			}
			if verse.Placeholder {
				continue
			}
			if skipped < offset {
				skipped++
				continue
			}
			verses = append(verses, verse)
			if len(verses) >= limit {
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return verses, nil
}

// Add upserts verses by number. Non-positive numbers are assigned the next
// unused sequential number. Optional fields get explicit defaults.
func (r *VerseRepository) Add(ctx context.Context, verses ...*core.Verse) ([]*core.Verse, error) {
	err := r.backend.Update(func(tx *badger.Txn) error {
		for _, verse := range verses {
			normalizeVerse(verse)

			if verse.Number <= 0 {
				number, err := r.nextUnusedNumber(tx)
				if err != nil {
					return err
				}
				verse.Number = number
			}

			if err := tx.Set(makeVerseKey(verse.Number), storage.MarshalVerse(verse)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.cachedCount.Store(-1)
	return verses, nil
}

// nextUnusedNumber draws from the sequence until it finds a number that is
// not already taken by an explicitly numbered verse.
func (r *VerseRepository) nextUnusedNumber(tx *badger.Txn) (int, error) {
	for {
		next, err := r.numSeq.Next()
		if err != nil {
			return 0, err
		}
		// BadgerDB sequences can return 0 on first call, so we skip it
		if next == 0 {
			continue
		}
		_, err = tx.Get(makeVerseKey(int(next)))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return int(next), nil
		}
		if err != nil {
			return 0, err
		}
	}
}

// Count returns the number of ingested verses, excluding placeholders.
// The corpus is read-mostly, so the scan result is cached until the next Add.
func (r *VerseRepository) Count(ctx context.Context) (int, error) {
	if cached := r.cachedCount.Load(); cached >= 0 {
		return int(cached), nil
	}

	count := 0
	err := r.forEachReal(func(verse *core.Verse) {
		count++
	})
	if err != nil {
		return 0, err
	}

	r.cachedCount.Store(int64(count))
	return count, nil
}

// Numbers returns the numbers of all ingested verses in ascending order.
func (r *VerseRepository) Numbers(ctx context.Context) ([]int, error) {
	numbers := make([]int, 0, 1330)
	err := r.forEachReal(func(verse *core.Verse) {
		numbers = append(numbers, verse.Number)
	})
	if err != nil {
		return nil, err
	}
	return numbers, nil
}

// forEachReal iterates all non-placeholder verses in ascending number order.
func (r *VerseRepository) forEachReal(fn func(verse *core.Verse)) error {
	return r.backend.View(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(versePrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var verse *core.Verse
			err := iter.Item().Value(func(val []byte) error {
				var err error
				verse, err = storage.UnmarshalVerse(val)
				return err
			})
			if err != nil {
				return err
			}
			if verse.Placeholder {
				continue
			}
			fn(verse)
		}
		return nil
	})
}

// read returns the stored verse or nil when the key is absent.
func (r *VerseRepository) read(number int) (*core.Verse, error) {
	var verse *core.Verse
	err := r.backend.View(func(tx *badger.Txn) error {
		var err error
		verse, err = r.readTx(tx, number)
		return err
	})
	if err != nil {
		return nil, err
	}
	return verse, nil
}

func (r *VerseRepository) readTx(tx *badger.Txn, number int) (*core.Verse, error) {
	item, err := tx.Get(makeVerseKey(number))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var verse *core.Verse
	err = item.Value(func(val []byte) error {
		verse, err = storage.UnmarshalVerse(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return verse, nil
}

// normalizeVerse fills optional fields with explicit defaults so consumers
// always see a fixed record shape.
func normalizeVerse(verse *core.Verse) {
	if verse.Chapter < 0 {
		verse.Chapter = 0
	}
	if verse.ChapterName == "" {
		verse.ChapterName = "Unknown"
	}
	if verse.SectionName == "" {
		verse.SectionName = "Unknown"
	}
	verse.Placeholder = false
}
