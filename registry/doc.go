// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package registry keeps live voting sessions in memory.

	reg := registry.New(logger)
	id, err := reg.Create(admin)

	err = reg.Do(id, func(s *voting.Session) error {
		_, err := s.AddVoter(admin, voter)
		return err
	})

Do holds the session's lock for the duration of the callback, so everything
done inside it (including journaling the returned events) is ordered per
session. Every session logs its events through the registry's logger.

Sessions are never evicted and do not survive a restart.
*/
package registry
