package store

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"nextstep/internal/domain"
	"nextstep/internal/storage"
)

// BumpVisits increments the durable visitor counter and returns the new
// count. An unreadable counter restarts from zero.
func (s *Store) BumpVisits(ctx context.Context) (int, error) {
	n := 0
	data, err := s.repo.Load(ctx, s.ns, KeyVisits)
	if err == nil {
		if v, perr := strconv.Atoi(strings.TrimSpace(string(data))); perr == nil && v > 0 {
			n = v
		}
	}
	n++
	if err := s.repo.Save(ctx, s.ns, KeyVisits, []byte(strconv.Itoa(n)), 0); err != nil {
		return n, err
	}
	return n, nil
}

// SaveProfile keeps the name and user type for the configured session TTL.
// Empty fields clear their key.
func (s *Store) SaveProfile(ctx context.Context, p domain.Profile) error {
	p.Name = strings.TrimSpace(p.Name)
	p.UserType = strings.ToLower(strings.TrimSpace(p.UserType))
	if err := s.saveSessionValue(ctx, KeyName, p.Name); err != nil {
		return err
	}
	if err := s.saveSessionValue(ctx, KeyType, p.UserType); err != nil {
		return err
	}
	s.notify(KeyType)
	return nil
}

func (s *Store) saveSessionValue(ctx context.Context, key, val string) error {
	if val == "" {
		return s.repo.Delete(ctx, s.ns, key)
	}
	return s.repo.Save(ctx, s.ns, key, []byte(val), s.opts.ProfileTTL)
}

// Profile returns the current per-visit profile; absent values are empty.
func (s *Store) Profile(ctx context.Context) domain.Profile {
	return domain.Profile{
		Name:     s.sessionValue(ctx, KeyName),
		UserType: s.sessionValue(ctx, KeyType),
	}
}

func (s *Store) sessionValue(ctx context.Context, key string) string {
	data, err := s.repo.Load(ctx, s.ns, key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.WithError(err).WithField("key", key).Warn("Failed to read session value")
		}
		return ""
	}
	return string(data)
}
