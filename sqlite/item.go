package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/itemfeed"
	"github.com/fwojciec/itemfeed/bloom"
	"github.com/google/uuid"
)

// filterHeadroom is added to the recorded link count when sizing the
// link filter.
const filterHeadroom = 1024

// Compile-time interface verification.
var _ itemfeed.ItemHistory = (*ItemService)(nil)

// ItemService implements itemfeed.ItemHistory using SQLite.
//
// Links are checked against a Bloom filter of recorded links first, so a
// link never seen before costs no lookup. The filter is loaded from the
// database on first use.
type ItemService struct {
	db *DB

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	mu    sync.Mutex
	known *bloom.LinkFilter
}

// NewItemService creates a new ItemService.
func NewItemService(db *DB) *ItemService {
	return &ItemService{db: db, Now: time.Now}
}

// Observe records the item. A new link gets first_seen = updated_at = now;
// a known link moves updated_at only when its title or description hash
// changed.
func (s *ItemService) Observe(ctx context.Context, item *itemfeed.FeedItem) (*itemfeed.ItemRecord, error) {
	if item == nil || item.Link == "" {
		return nil, itemfeed.Errorf(itemfeed.EINVALID, "item link required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	known, err := s.knownLinks(ctx)
	if err != nil {
		return nil, err
	}

	hash := hashContent(item.Title, item.Description)
	now := s.Now().UTC().Truncate(time.Second)

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var rec *itemfeed.ItemRecord
	if known.MayContain(item.Link) {
		rec, err = findItemByLink(ctx, tx, item.Link)
		if err != nil && itemfeed.ErrorCode(err) != itemfeed.ENOTFOUND {
			return nil, err
		}
	}

	if rec == nil {
		rec = &itemfeed.ItemRecord{
			ID:          uuid.New().String(),
			Link:        item.Link,
			ContentHash: hash,
			FirstSeen:   now,
			UpdatedAt:   now,
		}
		res, err := tx.ExecContext(ctx, `
			INSERT INTO items (id, link, content_hash, first_seen, updated_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(link) DO NOTHING
		`, rec.ID, rec.Link, rec.ContentHash, formatTime(rec.FirstSeen), formatTime(rec.UpdatedAt))
		if err != nil {
			return nil, err
		}
		if n, err := res.RowsAffected(); err != nil {
			return nil, err
		} else if n == 0 {
			// Recorded by another writer after the filter was loaded.
			if rec, err = findItemByLink(ctx, tx, item.Link); err != nil {
				return nil, err
			}
		}
	}

	if rec.ContentHash != hash {
		rec.ContentHash = hash
		rec.UpdatedAt = now
		if _, err := tx.ExecContext(ctx, `
			UPDATE items SET content_hash = ?, updated_at = ? WHERE id = ?
		`, rec.ContentHash, formatTime(rec.UpdatedAt), rec.ID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	known.Add(item.Link)
	return rec, nil
}

// FindItemByLink retrieves the record of a link. Links recorded by another
// ItemService after this one loaded its filter are reported as not found.
func (s *ItemService) FindItemByLink(ctx context.Context, link string) (*itemfeed.ItemRecord, error) {
	s.mu.Lock()
	known, err := s.knownLinks(ctx)
	maybe := err == nil && known.MayContain(link)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if !maybe {
		return nil, itemfeed.Errorf(itemfeed.ENOTFOUND, "item not found")
	}
	return findItemByLink(ctx, s.db.db, link)
}

// knownLinks returns the filter of recorded links, loading it on first
// use. The caller must hold s.mu.
func (s *ItemService) knownLinks(ctx context.Context) (*bloom.LinkFilter, error) {
	if s.known != nil {
		return s.known, nil
	}

	var n uint
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&n); err != nil {
		return nil, fmt.Errorf("counting items: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT link FROM items`)
	if err != nil {
		return nil, fmt.Errorf("loading links: %w", err)
	}
	defer rows.Close()

	// Headroom for the links a run adds.
	known := bloom.NewLinkFilter(2*n + filterHeadroom)
	for rows.Next() {
		var link string
		if err := rows.Scan(&link); err != nil {
			return nil, err
		}
		known.Add(link)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	s.known = known
	return known, nil
}

// FindItems retrieves records matching the filter, most recently updated
// first.
func (s *ItemService) FindItems(ctx context.Context, filter itemfeed.ItemFilter) ([]*itemfeed.ItemRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, link, content_hash, first_seen, updated_at FROM items WHERE 1=1")
	if filter.Since != nil {
		query.WriteString(" AND updated_at >= ?")
		args = append(args, formatTime(*filter.Since))
	}
	query.WriteString(" ORDER BY updated_at DESC, first_seen DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*itemfeed.ItemRecord
	for rows.Next() {
		rec, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

func findItemByLink(ctx context.Context, q queryer, link string) (*itemfeed.ItemRecord, error) {
	row := q.QueryRowContext(ctx, `
		SELECT id, link, content_hash, first_seen, updated_at
		FROM items
		WHERE link = ?
	`, link)

	rec, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, itemfeed.Errorf(itemfeed.ENOTFOUND, "item not found")
	}
	return rec, err
}

func scanItem(s scanner) (*itemfeed.ItemRecord, error) {
	var rec itemfeed.ItemRecord
	var firstSeen, updatedAt string
	if err := s.Scan(&rec.ID, &rec.Link, &rec.ContentHash, &firstSeen, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if rec.FirstSeen, err = parseRFC3339(firstSeen, "first_seen"); err != nil {
		return nil, err
	}
	if rec.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &rec, nil
}
