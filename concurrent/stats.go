// Package concurrent runs independent store queries in parallel.
package concurrent

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gamerental/repository"
)

// InventoryStats summarizes the catalog and how much of it is rented out.
type InventoryStats struct {
	Categories      int64         `json:"categories"`
	Games           int64         `json:"games"`
	Customers       int64         `json:"customers"`
	CopiesTotal     int64         `json:"copiesTotal"`
	OpenRentals     int64         `json:"openRentals"`
	CopiesAvailable int64         `json:"copiesAvailable"`
	QueryTime       time.Duration `json:"-"`
}

// CollectInventoryStats runs every count in its own goroutine. The first
// failing query fails the whole call; so does running past timeout.
func CollectInventoryStats(ctx context.Context, repo repository.StatsRepository, timeout time.Duration) (*InventoryStats, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	stats := &InventoryStats{}

	queries := []struct {
		name  string
		run   func(context.Context) (int64, error)
		store *int64
	}{
		{"categories", repo.CountCategories, &stats.Categories},
		{"games", repo.CountGames, &stats.Games},
		{"customers", repo.CountCustomers, &stats.Customers},
		{"stock", repo.SumStock, &stats.CopiesTotal},
		{"open rentals", repo.CountAllOpenRentals, &stats.OpenRentals},
	}

	var wg sync.WaitGroup
	errChan := make(chan error, len(queries))

	for _, q := range queries {
		q := q
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := q.run(ctx)
			if err != nil {
				errChan <- fmt.Errorf("%s: %w", q.name, err)
				return
			}
			// Each goroutine owns a distinct field.
			*q.store = n
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
		close(errChan)
	}()

	if err := waitFor(ctx, done); err != nil {
		return nil, err
	}
	if err := <-errChan; err != nil {
		return nil, err
	}

	stats.CopiesAvailable = stats.CopiesTotal - stats.OpenRentals
	stats.QueryTime = time.Since(start)
	return stats, nil
}

// waitFor blocks until done is closed or ctx ends. A closed done wins even
// when ctx has ended too.
func waitFor(ctx context.Context, done <-chan struct{}) error {
	select {
	case <-done:
		return nil
	case <-ctx.Done():
	}
	select {
	case <-done:
		return nil
	default:
		return fmt.Errorf("collecting inventory stats: %w", ctx.Err())
	}
}
