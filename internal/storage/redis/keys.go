package redis

import (
	"fmt"

	"github.com/mcoot/competeinator/internal/model"
)

// Key generation functions for each entity type

// playerKey returns the Redis key for a Player
func (s *Storage) playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", s.cfg.KeyPrefix, id)
}

// matchKey returns the Redis key for a Match
func (s *Storage) matchKey(id model.MatchID) string {
	return fmt.Sprintf("%s:match:%s", s.cfg.KeyPrefix, id)
}

// playersIndexKey returns the Redis key for the SET of live player IDs
func (s *Storage) playersIndexKey() string {
	return fmt.Sprintf("%s:idx:players", s.cfg.KeyPrefix)
}

// matchesIndexKey returns the Redis key for the SET of match IDs
func (s *Storage) matchesIndexKey() string {
	return fmt.Sprintf("%s:idx:matches", s.cfg.KeyPrefix)
}

// playerSeqKey returns the Redis key holding the next unused player ID
func (s *Storage) playerSeqKey() string {
	return fmt.Sprintf("%s:seq:player", s.cfg.KeyPrefix)
}

// matchSeqKey returns the Redis key holding the next unused match ID
func (s *Storage) matchSeqKey() string {
	return fmt.Sprintf("%s:seq:match", s.cfg.KeyPrefix)
}
