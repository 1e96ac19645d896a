package tournament

import (
	"github.com/mcoot/competeinator/internal/ident"
	"github.com/mcoot/competeinator/internal/model"
)

// Summary tests

func (s *ControllerSuite) TestSummarizeDecidedMatch() {
	a := s.createPlayer("A")
	b := s.createPlayer("B")
	c := s.createPlayer("C")
	match := s.createMatch(a, b, c)
	s.Require().NoError(s.controller.DeclareWinner(s.ctx, match.ID, b.ID))

	summary, err := s.controller.Summarize(s.ctx, match.ID)
	s.Require().NoError(err)

	s.Equal(model.MatchStateDecided, summary.State)
	s.Equal("A vs B vs C", summary.Versus)
	s.Equal("B", summary.Winner)
	s.Equal("B won!", summary.WinnerLine)
}

func (s *ControllerSuite) TestSummarizeAfterParticipantDeleted() {
	a := s.createPlayer("A")
	b := s.createPlayer("B")
	c := s.createPlayer("C")
	match := s.createMatch(a, b, c)
	s.Require().NoError(s.controller.DeclareWinner(s.ctx, match.ID, b.ID))

	s.Require().NoError(s.controller.DeletePlayer(s.ctx, c.ID))

	summary, err := s.controller.Summarize(s.ctx, match.ID)
	s.Require().NoError(err)

	s.Equal("A vs B vs <DELETED>", summary.Versus)
	s.Equal("B won!", summary.WinnerLine)
}

func (s *ControllerSuite) TestSummarizeOpenMatch() {
	a := s.createPlayer("A")
	match := s.createMatch(a)

	summary, err := s.controller.Summarize(s.ctx, match.ID)
	s.Require().NoError(err)

	s.Equal(model.MatchStateOpen, summary.State)
	s.Equal([]string{"A"}, summary.Participants)
	s.Empty(summary.Winner)
	s.Empty(summary.WinnerLine)
}

func (s *ControllerSuite) TestSummarizeReflectsCurrentNames() {
	a := s.createPlayer("Same")
	b := s.createPlayer("Same")
	match := s.createMatch(a, b)

	summary, err := s.controller.Summarize(s.ctx, match.ID)
	s.Require().NoError(err)
	s.Equal("Same vs Same", summary.Versus)
}

func (s *ControllerSuite) TestSummarizeUnknownMatch() {
	_, err := s.controller.Summarize(s.ctx, ident.FromValue[model.MatchKind](1))
	s.ErrorIs(err, model.ErrMatchNotFound)
}

func (s *ControllerSuite) TestSummaries() {
	a := s.createPlayer("A")
	b := s.createPlayer("B")
	s.createMatch(a, b)
	s.createMatch(b)

	summaries, err := s.controller.Summaries(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(summaries, 2)
	s.Equal("A vs B", summaries[0].Versus)
	s.Equal("B", summaries[1].Versus)
}

func (s *ControllerSuite) TestSummaryCarriesRenderedMatch() {
	a := s.createPlayer("A")
	b := s.createPlayer("B")
	first := s.createMatch(a, b)
	second := s.createMatch(b)
	s.Require().NoError(s.controller.DeclareWinner(s.ctx, first.ID, b.ID))

	summaries, err := s.controller.Summaries(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(summaries, 2)
	for i, want := range []*model.Match{first, second} {
		s.Require().NotNil(summaries[i].Match)
		s.Equal(want.ID, summaries[i].Match.ID)
		s.Equal(summaries[i].MatchID, summaries[i].Match.ID)
		s.Len(summaries[i].Match.Components, len(summaries[i].Participants))
	}
	s.Equal(b.ID, *summaries[0].Match.Winner)
}

// Standings tests

func (s *ControllerSuite) TestStandings() {
	ann := s.createPlayer("Ann")
	bo := s.createPlayer("Bo")
	cy := s.createPlayer("Cy")

	first := s.createMatch(ann, bo)
	s.Require().NoError(s.controller.DeclareWinner(s.ctx, first.ID, bo.ID))
	second := s.createMatch(bo, cy)
	s.Require().NoError(s.controller.DeclareWinner(s.ctx, second.ID, bo.ID))
	s.createMatch(ann, cy)

	standings, err := s.controller.Standings(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(standings, 3)

	s.Equal(Standing{PlayerID: bo.ID, Name: "Bo", Played: 2, Wins: 2}, standings[0])
	s.Equal(Standing{PlayerID: ann.ID, Name: "Ann", Played: 2, Wins: 0}, standings[1])
	s.Equal(Standing{PlayerID: cy.ID, Name: "Cy", Played: 2, Wins: 0}, standings[2])
}

func (s *ControllerSuite) TestStandingsSkipDeletedPlayers() {
	ann := s.createPlayer("Ann")
	bo := s.createPlayer("Bo")
	match := s.createMatch(ann, bo)
	s.Require().NoError(s.controller.DeclareWinner(s.ctx, match.ID, ann.ID))
	_ = s.controller.DeletePlayer(s.ctx, ann.ID)

	standings, err := s.controller.Standings(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(standings, 1)
	s.Equal("Bo", standings[0].Name)
	s.Equal(1, standings[0].Played)
}
