package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"
)

// BadgerRepository implements Repository on BadgerDB.
type BadgerRepository struct {
	db  *badger.DB
	log logrus.FieldLogger
}

// NewBadgerRepository opens (or creates) the database at dbPath.
func NewBadgerRepository(dbPath string, logger logrus.FieldLogger) (*BadgerRepository, error) {
	opts := badger.DefaultOptions(dbPath)
	opts.Logger = &badgerLogger{logger.WithField("component", "badgerdb")}

	db, err := badger.Open(opts)
	if err != nil {
		logger.WithError(err).Error("Failed to open BadgerDB")
		return nil, fmt.Errorf("failed to open badger db at %s: %w", dbPath, err)
	}
	logger.WithField("path", dbPath).Info("BadgerDB opened")
	return newRepository(db, logger), nil
}

// NewInMemoryRepository opens a throwaway in-memory database.
func NewInMemoryRepository(logger logrus.FieldLogger) (*BadgerRepository, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = &badgerLogger{logger.WithField("component", "badgerdb")}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory badger db: %w", err)
	}
	return newRepository(db, logger), nil
}

func newRepository(db *badger.DB, logger logrus.FieldLogger) *BadgerRepository {
	return &BadgerRepository{
		db:  db,
		log: logger.WithField("component", "repository"),
	}
}

// Close closes the database.
func (r *BadgerRepository) Close() error {
	r.log.Debug("Closing BadgerDB")
	if err := r.db.Close(); err != nil {
		r.log.WithError(err).Error("Error closing BadgerDB")
		return err
	}
	return nil
}

// Format: ns:{namespace}:{key}
func entryKey(ns, key string) []byte {
	return []byte(fmt.Sprintf("ns:%s:%s", ns, key))
}

func namespacePrefix(ns string) []byte {
	return []byte(fmt.Sprintf("ns:%s:", ns))
}

// Load reads one value.
func (r *BadgerRepository) Load(ctx context.Context, ns, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var val []byte
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(entryKey(ns, key))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		r.log.WithError(err).WithFields(logrus.Fields{"ns": ns, "key": key}).Error("Failed to load value")
		return nil, fmt.Errorf("failed to load %s/%s: %w", ns, key, err)
	}
	return val, nil
}

// Save writes one value, optionally with a TTL.
func (r *BadgerRepository) Save(ctx context.Context, ns, key string, val []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := r.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry(entryKey(ns, key), val)
		if ttl > 0 {
			e = e.WithTTL(ttl)
		}
		return txn.SetEntry(e)
	})
	if err != nil {
		r.log.WithError(err).WithFields(logrus.Fields{"ns": ns, "key": key}).Error("Failed to save value")
		return fmt.Errorf("failed to save %s/%s: %w", ns, key, err)
	}
	r.log.WithFields(logrus.Fields{"ns": ns, "key": key, "bytes": len(val)}).Debug("Value saved")
	return nil
}

// Delete removes one value. Badger deletes are idempotent.
func (r *BadgerRepository) Delete(ctx context.Context, ns, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(entryKey(ns, key))
	})
	if err != nil {
		r.log.WithError(err).WithFields(logrus.Fields{"ns": ns, "key": key}).Error("Failed to delete value")
		return fmt.Errorf("failed to delete %s/%s: %w", ns, key, err)
	}
	return nil
}

// Keys scans the namespace prefix. Badger iterates in key order, so the
// result is sorted.
func (r *BadgerRepository) Keys(ctx context.Context, ns string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	prefix := namespacePrefix(ns)
	keys := []string{}
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, strings.TrimPrefix(string(it.Item().Key()), string(prefix)))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list keys for %s: %w", ns, err)
	}
	return keys, nil
}

// RunGC reclaims value log space every interval until ctx is cancelled.
func (r *BadgerRepository) RunGC(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			err := r.db.RunValueLogGC(0.7)
			switch {
			case err == nil:
				r.log.Debug("BadgerDB GC completed")
			case errors.Is(err, badger.ErrNoRewrite), errors.Is(err, badger.ErrRejected):
				r.log.Debug("BadgerDB GC: nothing to rewrite")
			default:
				r.log.WithError(err).Warn("BadgerDB GC failed")
			}
		case <-ctx.Done():
			r.log.Debug("Stopping BadgerDB GC")
			return
		}
	}
}

// badgerLogger routes Badger's messages into logrus. Badger terminates its
// lines with a newline, which is trimmed. Its chatty info output is logged at
// debug level.
type badgerLogger struct {
	logger logrus.FieldLogger
}

func badgerLine(f string, v []any) string {
	return strings.TrimRight(fmt.Sprintf(f, v...), "\n")
}

func (l *badgerLogger) Errorf(f string, v ...any)   { l.logger.Error(badgerLine(f, v)) }
func (l *badgerLogger) Warningf(f string, v ...any) { l.logger.Warn(badgerLine(f, v)) }
func (l *badgerLogger) Infof(f string, v ...any)    { l.logger.Debug(badgerLine(f, v)) }
func (l *badgerLogger) Debugf(f string, v ...any)   { l.logger.Debug(badgerLine(f, v)) }
