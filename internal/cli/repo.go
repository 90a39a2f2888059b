package cli

import (
	"fmt"
	"strconv"

	"github.com/dukerupert/smartcart/internal/database"
	"github.com/dukerupert/smartcart/internal/feed"
	"github.com/dukerupert/smartcart/internal/repository"
)

// openRepo opens the configured database. The returned feed is not started;
// one-shot commands have no subscribers.
func openRepo(opts *RootOptions) (*repository.Repository, func(), error) {
	db, err := database.Open(opts.cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open database %s: %w", opts.cfg.DBPath, err)
	}

	f := feed.New(opts.logger.With("component", "feed"))
	repo := repository.New(db, f,
		repository.WithLogger(opts.logger.With("component", "repository")),
		repository.WithAutoCategorize(opts.cfg.AutoCategorize),
	)
	return repo, func() { db.Close() }, nil
}

func parseID(s, name string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, s)
	}
	return id, nil
}
