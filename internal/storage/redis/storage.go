package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/competeinator/internal/ident"
	"github.com/mcoot/competeinator/internal/model"
	"github.com/mcoot/competeinator/internal/storage"
)

// raiseSeq stores ARGV[1] in KEYS[1] unless the current value is already
// at least that large.
var raiseSeq = redis.NewScript(`
local current = tonumber(redis.call('GET', KEYS[1]) or '0')
local candidate = tonumber(ARGV[1])
if candidate > current then
	redis.call('SET', KEYS[1], ARGV[1])
	return candidate
end
return current
`)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interfaces
var (
	_ storage.Storage  = (*Storage)(nil)
	_ storage.IDSource = (*Storage)(nil)
)

// Player operations

func (s *Storage) InsertPlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	key := s.playerKey(player.ID)
	err = s.client.SetArgs(ctx, key, data, redis.SetArgs{Mode: "NX", TTL: s.cfg.SessionTTL}).Err()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.ErrDuplicateID
		}
		return err
	}

	pipe := s.client.Pipeline()
	pipe.SAdd(ctx, s.playersIndexKey(), player.ID.String())
	raiseSeq.Eval(ctx, pipe, []string{s.playerSeqKey()}, player.ID.Value()+1)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, s.playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.playerKey(id))
	pipe.SRem(ctx, s.playersIndexKey(), id.String())
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	ids, err := indexMembers[model.PlayerKind](ctx, s.client, s.playersIndexKey())
	if err != nil {
		return nil, err
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.playerKey(id)
	}

	values, err := fetchAll(ctx, s.client, keys)
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(values))
	for _, data := range values {
		var player model.Player
		if err := json.Unmarshal(data, &player); err != nil {
			return nil, err
		}
		players = append(players, &player)
	}
	model.SortPlayers(players)
	return players, nil
}

// Match operations

func (s *Storage) InsertMatch(ctx context.Context, match *model.Match) error {
	data, err := json.Marshal(match)
	if err != nil {
		return err
	}

	key := s.matchKey(match.ID)
	err = s.client.SetArgs(ctx, key, data, redis.SetArgs{Mode: "NX", TTL: s.cfg.SessionTTL}).Err()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.ErrDuplicateID
		}
		return err
	}

	pipe := s.client.Pipeline()
	pipe.SAdd(ctx, s.matchesIndexKey(), match.ID.String())
	raiseSeq.Eval(ctx, pipe, []string{s.matchSeqKey()}, match.ID.Value()+1)
	_, err = pipe.Exec(ctx)
	return err
}

// SaveMatch replaces a stored match. The write is a compare-and-set against
// the stored copy: it never replaces a declared winner and never drops a
// participant, so a stale copy from another process fails with
// ErrAlreadyDecided or ErrMatchChanged instead of clobbering newer state.
func (s *Storage) SaveMatch(ctx context.Context, match *model.Match) error {
	data, err := json.Marshal(match)
	if err != nil {
		return err
	}

	key := s.matchKey(match.ID)
	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return model.ErrMatchNotFound
			}
			return err
		}

		stored, err := decodeMatch(current)
		if err != nil {
			return err
		}
		if err := checkSuccessor(stored, match); err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.SetArgs(ctx, key, data, redis.SetArgs{Mode: "XX", TTL: s.cfg.SessionTTL})
			return nil
		})
		return err
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		return model.ErrMatchChanged
	}
	return err
}

// checkSuccessor reports whether next may replace stored: a winner, once
// set, stays, and components are only ever appended.
func checkSuccessor(stored, next *model.Match) error {
	if stored.Winner != nil && (next.Winner == nil || *next.Winner != *stored.Winner) {
		return model.ErrAlreadyDecided
	}
	if len(next.Components) < len(stored.Components) {
		return model.ErrMatchChanged
	}
	for i, comp := range stored.Components {
		if next.Components[i] != comp {
			return model.ErrMatchChanged
		}
	}
	return nil
}

func (s *Storage) GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	data, err := s.client.Get(ctx, s.matchKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrMatchNotFound
		}
		return nil, err
	}

	return decodeMatch(data)
}

func (s *Storage) ListMatches(ctx context.Context) ([]*model.Match, error) {
	ids, err := indexMembers[model.MatchKind](ctx, s.client, s.matchesIndexKey())
	if err != nil {
		return nil, err
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.matchKey(id)
	}

	values, err := fetchAll(ctx, s.client, keys)
	if err != nil {
		return nil, err
	}

	matches := make([]*model.Match, 0, len(values))
	for _, data := range values {
		match, err := decodeMatch(data)
		if err != nil {
			return nil, err
		}
		matches = append(matches, match)
	}
	model.SortMatches(matches)
	return matches, nil
}

func (s *Storage) NextIDs(ctx context.Context) (storage.NextIDs, error) {
	values, err := s.client.MGet(ctx, s.playerSeqKey(), s.matchSeqKey()).Result()
	if err != nil {
		return storage.NextIDs{}, err
	}

	player, err := parseSeq(values[0])
	if err != nil {
		return storage.NextIDs{}, err
	}
	match, err := parseSeq(values[1])
	if err != nil {
		return storage.NextIDs{}, err
	}
	return storage.NextIDs{Player: player, Match: match}, nil
}

// NextPlayerID allocates from the shared player sequence, so processes
// sharing this store never issue the same ID
func (s *Storage) NextPlayerID(ctx context.Context) (model.PlayerID, error) {
	v, err := s.allocate(ctx, s.playerSeqKey())
	return ident.FromValue[model.PlayerKind](v), err
}

// NextMatchID allocates from the shared match sequence
func (s *Storage) NextMatchID(ctx context.Context) (model.MatchID, error) {
	v, err := s.allocate(ctx, s.matchSeqKey())
	return ident.FromValue[model.MatchKind](v), err
}

// allocate increments a sequence key. The key holds the next unused value,
// so the value handed out is the one before the increment.
func (s *Storage) allocate(ctx context.Context, key string) (uint32, error) {
	n, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n < 1 || n > math.MaxUint32+1 {
		return 0, fmt.Errorf("sequence %s out of range: %d", key, n)
	}
	return uint32(n - 1), nil
}

func decodeMatch(data []byte) (*model.Match, error) {
	var match model.Match
	if err := json.Unmarshal(data, &match); err != nil {
		return nil, err
	}
	if match.Components == nil {
		match.Components = []model.MatchComponent{}
	}
	return &match, nil
}

// indexMembers reads an index SET and parses its members as IDs
func indexMembers[K any](ctx context.Context, client *redis.Client, key string) ([]ident.ID[K], error) {
	members, err := client.SMembers(ctx, key).Result()
	if err != nil {
		return nil, err
	}

	ids := make([]ident.ID[K], 0, len(members))
	for _, m := range members {
		id, err := ident.Parse[K](m)
		if err != nil {
			return nil, fmt.Errorf("corrupt index %s: %w", key, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// fetchAll reads every key in one round trip, skipping keys that expired
// after the index was read.
func fetchAll(ctx context.Context, client *redis.Client, keys []string) ([][]byte, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	values, err := client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	result := make([][]byte, 0, len(values))
	for _, v := range values {
		str, ok := v.(string)
		if !ok {
			continue
		}
		result = append(result, []byte(str))
	}
	return result, nil
}

func parseSeq(v any) (uint32, error) {
	str, ok := v.(string)
	if !ok {
		return 0, nil
	}
	n, err := strconv.ParseUint(str, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("corrupt sequence value %q: %w", str, err)
	}
	return uint32(n), nil
}
