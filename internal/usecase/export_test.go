package usecase

import "time"

func SetMatchClock(s *MatchService, now func() time.Time) {
	s.now = now
}

func SetGameDayClock(s *GameDayService, now func() time.Time) {
	s.now = now
}
