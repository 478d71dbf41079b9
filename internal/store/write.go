package store

import (
	"database/sql"
	"fmt"

	"github.com/kmellea/moneylens/internal/model"
)

// InsertTransactions writes a batch of transactions in one database
// transaction, creating category and asset rows on first sight. Either the
// whole batch lands or none of it does.
func (s *Store) InsertTransactions(txns []model.Transaction) (int, error) {
	if len(txns) == 0 {
		return 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	// Name -> uid caches so repeated categories cost one lookup per batch.
	catIDs := make(map[string]int64)
	assetIDs := make(map[string]int64)

	inserted := 0
	for _, t := range txns {
		var ctgUid, assetUid sql.NullInt64

		if t.Category != "" {
			var parentID sql.NullInt64
			if t.MainCategory != "" && t.MainCategory != t.Category {
				pid, err := categoryID(tx, catIDs, t.MainCategory, sql.NullInt64{})
				if err != nil {
					return 0, err
				}
				parentID = sql.NullInt64{Int64: pid, Valid: true}
			}
			cid, err := categoryID(tx, catIDs, t.Category, parentID)
			if err != nil {
				return 0, err
			}
			ctgUid = sql.NullInt64{Int64: cid, Valid: true}
		}

		if t.Asset != "" {
			aid, err := assetID(tx, assetIDs, t.Asset)
			if err != nil {
				return 0, err
			}
			assetUid = sql.NullInt64{Int64: aid, Valid: true}
		}

		_, err = tx.Exec(`INSERT INTO INOUTCOME (WDATE, ZMONEY, DO_TYPE, ctgUid, assetUid, ZCONTENT)
			VALUES (?, ?, ?, ?, ?, ?)`,
			t.Date.Format("2006-01-02 15:04:05"),
			t.Amount.InexactFloat64(),
			int(t.Kind),
			ctgUid, assetUid, t.Note,
		)
		if err != nil {
			return 0, fmt.Errorf("inserting transaction: %w", err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

// categoryID finds or creates a category by name under the given parent.
// The cache key includes the parent so a name can exist at both levels.
func categoryID(tx *sql.Tx, cache map[string]int64, name string, parent sql.NullInt64) (int64, error) {
	key := name
	if parent.Valid {
		key = fmt.Sprintf("%d/%s", parent.Int64, name)
	}
	if id, ok := cache[key]; ok {
		return id, nil
	}

	var id int64
	var err error
	if parent.Valid {
		err = tx.QueryRow("SELECT uid FROM ZCATEGORY WHERE NAME = ? AND pUid = ?", name, parent.Int64).Scan(&id)
	} else {
		err = tx.QueryRow("SELECT uid FROM ZCATEGORY WHERE NAME = ? AND pUid IS NULL", name).Scan(&id)
	}
	switch {
	case err == sql.ErrNoRows:
		res, err := tx.Exec("INSERT INTO ZCATEGORY (NAME, pUid) VALUES (?, ?)", name, parent)
		if err != nil {
			return 0, fmt.Errorf("creating category %q: %w", name, err)
		}
		if id, err = res.LastInsertId(); err != nil {
			return 0, err
		}
	case err != nil:
		return 0, fmt.Errorf("looking up category %q: %w", name, err)
	}

	cache[key] = id
	return id, nil
}

// assetID finds or creates a payment method by name.
func assetID(tx *sql.Tx, cache map[string]int64, name string) (int64, error) {
	if id, ok := cache[name]; ok {
		return id, nil
	}

	var id int64
	err := tx.QueryRow("SELECT uid FROM ASSETS WHERE NIC_NAME = ?", name).Scan(&id)
	switch {
	case err == sql.ErrNoRows:
		res, err := tx.Exec("INSERT INTO ASSETS (NIC_NAME) VALUES (?)", name)
		if err != nil {
			return 0, fmt.Errorf("creating asset %q: %w", name, err)
		}
		if id, err = res.LastInsertId(); err != nil {
			return 0, err
		}
	case err != nil:
		return 0, fmt.Errorf("looking up asset %q: %w", name, err)
	}

	cache[name] = id
	return id, nil
}
