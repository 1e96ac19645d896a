package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/competeinator/internal/ident"
	"github.com/mcoot/competeinator/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func playerID(v uint32) model.PlayerID { return ident.FromValue[model.PlayerKind](v) }
func matchID(v uint32) model.MatchID   { return ident.FromValue[model.MatchKind](v) }

// Player tests

func (s *StorageSuite) TestInsertAndGetPlayer() {
	player := &model.Player{ID: playerID(0), Name: "Alice", CreatedAt: time.Now()}

	err := s.storage.InsertPlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, playerID(0))
	s.Require().NoError(err)
	s.Equal(player.ID, retrieved.ID)
	s.Equal(player.Name, retrieved.Name)
}

func (s *StorageSuite) TestInsertPlayerRejectsDuplicateID() {
	_ = s.storage.InsertPlayer(s.ctx, &model.Player{ID: playerID(0), Name: "Alice"})

	err := s.storage.InsertPlayer(s.ctx, &model.Player{ID: playerID(0), Name: "Mallory"})
	s.ErrorIs(err, model.ErrDuplicateID)

	retrieved, _ := s.storage.GetPlayer(s.ctx, playerID(0))
	s.Equal("Alice", retrieved.Name)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, playerID(99))
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestDeletePlayer() {
	_ = s.storage.InsertPlayer(s.ctx, &model.Player{ID: playerID(0), Name: "Alice"})

	err := s.storage.DeletePlayer(s.ctx, playerID(0))
	s.Require().NoError(err)

	_, err = s.storage.GetPlayer(s.ctx, playerID(0))
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestDeleteMissingPlayerIsNoop() {
	s.NoError(s.storage.DeletePlayer(s.ctx, playerID(5)))
}

func (s *StorageSuite) TestReturnedPlayerIsACopy() {
	_ = s.storage.InsertPlayer(s.ctx, &model.Player{ID: playerID(0), Name: "Alice"})

	retrieved, _ := s.storage.GetPlayer(s.ctx, playerID(0))
	retrieved.Name = "Changed"

	again, _ := s.storage.GetPlayer(s.ctx, playerID(0))
	s.Equal("Alice", again.Name)
}

func (s *StorageSuite) TestListPlayersOrderedByID() {
	_ = s.storage.InsertPlayer(s.ctx, &model.Player{ID: playerID(2), Name: "C"})
	_ = s.storage.InsertPlayer(s.ctx, &model.Player{ID: playerID(0), Name: "A"})
	_ = s.storage.InsertPlayer(s.ctx, &model.Player{ID: playerID(1), Name: "B"})

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 3)
	s.Equal("A", players[0].Name)
	s.Equal("B", players[1].Name)
	s.Equal("C", players[2].Name)
}

// Match tests

func (s *StorageSuite) TestInsertAndGetMatch() {
	match := model.NewMatch(matchID(0), time.Now())
	match.Components = append(match.Components, model.MatchComponent{Player: playerID(1)})

	err := s.storage.InsertMatch(s.ctx, match)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetMatch(s.ctx, matchID(0))
	s.Require().NoError(err)
	s.Equal(match.ID, retrieved.ID)
	s.Equal(match.Components, retrieved.Components)
	s.Nil(retrieved.Winner)
}

func (s *StorageSuite) TestInsertMatchRejectsDuplicateID() {
	_ = s.storage.InsertMatch(s.ctx, model.NewMatch(matchID(0), time.Now()))

	err := s.storage.InsertMatch(s.ctx, model.NewMatch(matchID(0), time.Now()))
	s.ErrorIs(err, model.ErrDuplicateID)
}

func (s *StorageSuite) TestGetMatchNotFound() {
	_, err := s.storage.GetMatch(s.ctx, matchID(3))
	s.ErrorIs(err, model.ErrMatchNotFound)
}

func (s *StorageSuite) TestSaveMatch() {
	match := model.NewMatch(matchID(0), time.Now())
	_ = s.storage.InsertMatch(s.ctx, match)

	winner := playerID(1)
	match.Components = append(match.Components, model.MatchComponent{Player: winner})
	match.Winner = &winner

	err := s.storage.SaveMatch(s.ctx, match)
	s.Require().NoError(err)

	retrieved, _ := s.storage.GetMatch(s.ctx, matchID(0))
	s.Require().NotNil(retrieved.Winner)
	s.Equal(winner, *retrieved.Winner)
}

func (s *StorageSuite) TestSaveMatchNotFound() {
	err := s.storage.SaveMatch(s.ctx, model.NewMatch(matchID(4), time.Now()))
	s.ErrorIs(err, model.ErrMatchNotFound)
}

func (s *StorageSuite) TestMutatingInsertedMatchDoesNotLeak() {
	match := model.NewMatch(matchID(0), time.Now())
	_ = s.storage.InsertMatch(s.ctx, match)

	match.Components = append(match.Components, model.MatchComponent{Player: playerID(1)})

	retrieved, _ := s.storage.GetMatch(s.ctx, matchID(0))
	s.Empty(retrieved.Components)
}

func (s *StorageSuite) TestListMatchesOrderedByID() {
	_ = s.storage.InsertMatch(s.ctx, model.NewMatch(matchID(1), time.Now()))
	_ = s.storage.InsertMatch(s.ctx, model.NewMatch(matchID(0), time.Now()))

	matches, err := s.storage.ListMatches(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(matches, 2)
	s.Equal(matchID(0), matches[0].ID)
	s.Equal(matchID(1), matches[1].ID)
}

// NextIDs tests

func (s *StorageSuite) TestNextIDsEmpty() {
	next, err := s.storage.NextIDs(s.ctx)
	s.Require().NoError(err)
	s.Equal(uint32(0), next.Player)
	s.Equal(uint32(0), next.Match)
}

func (s *StorageSuite) TestNextIDsSurviveDeletion() {
	_ = s.storage.InsertPlayer(s.ctx, &model.Player{ID: playerID(0), Name: "A"})
	_ = s.storage.InsertPlayer(s.ctx, &model.Player{ID: playerID(4), Name: "B"})
	_ = s.storage.InsertMatch(s.ctx, model.NewMatch(matchID(2), time.Now()))
	_ = s.storage.DeletePlayer(s.ctx, playerID(4))

	next, err := s.storage.NextIDs(s.ctx)
	s.Require().NoError(err)
	s.Equal(uint32(5), next.Player)
	s.Equal(uint32(3), next.Match)
}
