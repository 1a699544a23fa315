package service

import "time"

// SetNow overrides the share clock in tests.
func (s *ShareService) SetNow(now func() time.Time) {
	s.now = now
}
