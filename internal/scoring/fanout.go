package scoring

import (
	"context"
	"duel-service/domain"
	"errors"
	"fmt"
	"sync"
)

type Store interface {
	SubmitScore(ctx context.Context, record domain.ScoreRecord) error
}

// Fanout, bir skoru tüm depolara paralel olarak gönderir. Bir deponun hatası
// diğerlerini durdurmaz; hatalar birleştirilip domain.ErrPersistence ile sarılır.
type Fanout struct {
	stores []Store
}

func NewFanout(stores ...Store) *Fanout {
	kept := make([]Store, 0, len(stores))
	for _, s := range stores {
		if s != nil {
			kept = append(kept, s)
		}
	}
	return &Fanout{stores: kept}
}

func (f *Fanout) SubmitScore(ctx context.Context, record domain.ScoreRecord) error {
	errs := make([]error, len(f.stores))
	var wg sync.WaitGroup
	for i, store := range f.stores {
		wg.Add(1)
		go func(i int, store Store) {
			defer wg.Done()
			errs[i] = store.SubmitScore(ctx, record)
		}(i, store)
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	return nil
}

func (f *Fanout) Len() int {
	return len(f.stores)
}
