package roster

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/KirkDiggler/puppybowl/internal/clients/puppybowl"
	clientMocks "github.com/KirkDiggler/puppybowl/internal/clients/puppybowl/mocks"
	"github.com/KirkDiggler/puppybowl/internal/models"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// fakeClock is the part of clockwork's fake clock the tests drive
type fakeClock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
	Advance(d time.Duration)
}

type RosterServiceTestSuite struct {
	suite.Suite
	mockCtrl   *gomock.Controller
	mockClient *clientMocks.MockClient
	fakeClock  fakeClock
	logBuffer  *bytes.Buffer
	svc        Service
	ctx        context.Context

	// Test data
	testTime      time.Time
	rex           *models.Player
	fido          *models.Player
	fidoDraft     models.DraftPlayer
	serverFailure error
}

func (s *RosterServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockClient = clientMocks.NewMockClient(s.mockCtrl)
	s.testTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s.fakeClock = clockwork.NewFakeClockAt(s.testTime)
	s.logBuffer = &bytes.Buffer{}
	s.ctx = context.Background()

	s.rex = &models.Player{
		ID:       "1",
		Name:     "Rex",
		Breed:    "Lab",
		Status:   models.PlayerStatusBench,
		ImageURL: "http://x/1.png",
	}
	s.fido = &models.Player{
		ID:       "2",
		Name:     "Fido",
		Breed:    "Pug",
		Status:   models.PlayerStatusField,
		ImageURL: "http://x/2.png",
	}
	s.fidoDraft = models.DraftPlayer{
		Name:     "Fido",
		Breed:    "Pug",
		Status:   models.PlayerStatusField,
		ImageURL: "http://x/2.png",
	}
	s.serverFailure = &puppybowl.NetworkError{
		Kind:       puppybowl.ErrorKindStatus,
		Method:     http.MethodPost,
		URL:        "http://api/players",
		StatusCode: http.StatusInternalServerError,
		Body:       "boom",
	}

	logger := zerolog.New(s.logBuffer)
	svc, err := New(&Config{
		Client: s.mockClient,
		Clock:  s.fakeClock,
		Logger: &logger,
	})
	s.Require().NoError(err)
	s.svc = svc
}

func (s *RosterServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestRosterServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RosterServiceTestSuite))
}

func (s *RosterServiceTestSuite) expectList(players ...*models.Player) *gomock.Call {
	return s.mockClient.EXPECT().
		ListPlayers(gomock.Any(), &puppybowl.ListPlayersInput{}).
		Return(&puppybowl.ListPlayersOutput{Players: players, RequestID: "req"}, nil)
}

func (s *RosterServiceTestSuite) fillDraft(draft models.DraftPlayer) {
	for _, field := range models.DraftFields {
		_, err := s.svc.UpdateDraftField(s.ctx, &UpdateDraftFieldInput{
			Field: field,
			Value: draft.Get(field),
		})
		s.Require().NoError(err)
	}
}

func (s *RosterServiceTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.Equal(ErrNilConfig, err)

	_, err = New(&Config{})
	s.Equal(ErrNilClient, err)
}

func (s *RosterServiceTestSuite) TestInitialState() {
	state := s.svc.GetState(s.ctx)

	s.Empty(state.Players)
	s.Equal(models.NewDraftPlayer(), state.Draft)
	s.False(state.Loaded)
	s.Equal(PhaseIdle, state.Phase)
}

func (s *RosterServiceTestSuite) TestStartLoadsRosterOnce() {
	s.expectList(s.rex).Times(1)

	s.Require().NoError(s.svc.Start(s.ctx))
	s.Require().NoError(s.svc.Start(s.ctx))

	state := s.svc.GetState(s.ctx)
	s.Equal([]*models.Player{s.rex}, state.Players)
	s.True(state.Loaded)
	s.Equal(s.testTime, state.LoadedAt)
}

func (s *RosterServiceTestSuite) TestLoadRosterKeepsServerOrder() {
	s.expectList(s.fido, s.rex)

	output, err := s.svc.LoadRoster(s.ctx)
	s.Require().NoError(err)
	s.Equal([]*models.Player{s.fido, s.rex}, output.Players)
	s.Equal([]*models.Player{s.fido, s.rex}, s.svc.GetState(s.ctx).Players)
}

func (s *RosterServiceTestSuite) TestLoadRosterReplacesWholeList() {
	gomock.InOrder(
		s.expectList(s.rex, s.fido),
		s.expectList(s.fido),
	)

	_, err := s.svc.LoadRoster(s.ctx)
	s.Require().NoError(err)

	s.fakeClock.Advance(time.Minute)
	_, err = s.svc.LoadRoster(s.ctx)
	s.Require().NoError(err)

	state := s.svc.GetState(s.ctx)
	s.Equal([]*models.Player{s.fido}, state.Players)
	s.Equal(s.testTime.Add(time.Minute), state.LoadedAt)
}

func (s *RosterServiceTestSuite) TestLoadRosterFailureKeepsPreviousRoster() {
	loadErr := &puppybowl.NetworkError{
		Kind:   puppybowl.ErrorKindTransport,
		Method: http.MethodGet,
		URL:    "http://api/players?sort=position&order=asc",
		Err:    errors.New("connection refused"),
	}
	gomock.InOrder(
		s.expectList(s.rex),
		s.mockClient.EXPECT().ListPlayers(gomock.Any(), gomock.Any()).Return(nil, loadErr),
	)

	_, err := s.svc.LoadRoster(s.ctx)
	s.Require().NoError(err)

	output, err := s.svc.LoadRoster(s.ctx)
	s.Nil(output)
	s.True(errors.Is(err, puppybowl.ErrNetwork))

	s.Equal([]*models.Player{s.rex}, s.svc.GetState(s.ctx).Players)
	s.Contains(s.logBuffer.String(), `"kind":"transport"`)
	s.Contains(s.logBuffer.String(), "error fetching roster")
}

func (s *RosterServiceTestSuite) TestStartFailureLeavesRosterEmpty() {
	s.mockClient.EXPECT().ListPlayers(gomock.Any(), gomock.Any()).Return(nil, s.serverFailure)

	err := s.svc.Start(s.ctx)
	s.True(errors.Is(err, puppybowl.ErrNetwork))

	state := s.svc.GetState(s.ctx)
	s.Empty(state.Players)
	s.False(state.Loaded)
}

func (s *RosterServiceTestSuite) TestGetStateReturnsCopies() {
	s.expectList(s.rex)
	_, err := s.svc.LoadRoster(s.ctx)
	s.Require().NoError(err)

	state := s.svc.GetState(s.ctx)
	state.Players[0].Name = "Changed"

	s.Equal("Rex", s.svc.GetState(s.ctx).Players[0].Name)
}

func (s *RosterServiceTestSuite) TestUpdateDraftFieldChangesOnlyNamedField() {
	s.fillDraft(s.fidoDraft)

	output, err := s.svc.UpdateDraftField(s.ctx, &UpdateDraftFieldInput{
		Field: models.DraftFieldBreed,
		Value: "Beagle",
	})
	s.Require().NoError(err)

	expected := s.fidoDraft
	expected.Breed = "Beagle"
	s.Equal(expected, output.Draft)
	s.Equal(expected, s.svc.GetState(s.ctx).Draft)
}

func (s *RosterServiceTestSuite) TestUpdateDraftFieldAcceptsAnyValue() {
	_, err := s.svc.UpdateDraftField(s.ctx, &UpdateDraftFieldInput{
		Field: models.DraftFieldStatus,
		Value: "",
	})
	s.Require().NoError(err)
	s.Equal(models.PlayerStatus(""), s.svc.GetState(s.ctx).Draft.Status)
}

func (s *RosterServiceTestSuite) TestUpdateDraftFieldUnknownField() {
	s.fillDraft(s.fidoDraft)

	output, err := s.svc.UpdateDraftField(s.ctx, &UpdateDraftFieldInput{
		Field: models.DraftField("id"),
		Value: "99",
	})
	s.Nil(output)
	s.Equal(ErrUnknownDraftField, err)
	s.Equal(s.fidoDraft, s.svc.GetState(s.ctx).Draft)
}

func (s *RosterServiceTestSuite) TestUpdateDraftFieldNilInput() {
	_, err := s.svc.UpdateDraftField(s.ctx, nil)
	s.Equal(ErrNilInput, err)
}

func (s *RosterServiceTestSuite) TestSubmitDraftSuccessResetsAndReloads() {
	s.fillDraft(s.fidoDraft)

	gomock.InOrder(
		s.mockClient.EXPECT().
			CreatePlayer(gomock.Any(), &puppybowl.CreatePlayerInput{Draft: s.fidoDraft}).
			Return(&puppybowl.CreatePlayerOutput{
				StatusCode: http.StatusCreated,
				Player:     s.fido,
			}, nil).
			Times(1),
		s.expectList(s.rex, s.fido).Times(1),
	)

	output, err := s.svc.SubmitDraft(s.ctx)
	s.Require().NoError(err)
	s.Equal(s.fidoDraft, output.Submitted)
	s.Equal(s.fido, output.Created)
	s.True(output.Reloaded)
	s.Equal([]*models.Player{s.rex, s.fido}, output.Players)

	state := s.svc.GetState(s.ctx)
	s.Equal(models.DraftPlayer{Name: "", Breed: "", Status: models.PlayerStatusBench, ImageURL: ""}, state.Draft)
	s.Equal([]*models.Player{s.rex, s.fido}, state.Players)
}

func (s *RosterServiceTestSuite) TestSubmitDraftFailureKeepsDraftAndSkipsReload() {
	s.fillDraft(s.fidoDraft)

	s.mockClient.EXPECT().
		CreatePlayer(gomock.Any(), gomock.Any()).
		Return(nil, s.serverFailure).
		Times(1)
	s.mockClient.EXPECT().ListPlayers(gomock.Any(), gomock.Any()).Times(0)

	output, err := s.svc.SubmitDraft(s.ctx)
	s.Nil(output)
	s.True(errors.Is(err, puppybowl.ErrNetwork))

	s.Equal(s.fidoDraft, s.svc.GetState(s.ctx).Draft)

	logged := s.logBuffer.String()
	s.Contains(logged, "error creating a new player")
	s.Contains(logged, `"status":500`)
	s.Contains(logged, `"body":"boom"`)
}

func (s *RosterServiceTestSuite) TestSubmitDraftReloadFailureStillResetsDraft() {
	s.fillDraft(s.fidoDraft)

	gomock.InOrder(
		s.mockClient.EXPECT().
			CreatePlayer(gomock.Any(), gomock.Any()).
			Return(&puppybowl.CreatePlayerOutput{StatusCode: http.StatusCreated}, nil),
		s.mockClient.EXPECT().
			ListPlayers(gomock.Any(), gomock.Any()).
			Return(nil, s.serverFailure),
	)

	output, err := s.svc.SubmitDraft(s.ctx)
	s.Require().NoError(err)
	s.False(output.Reloaded)
	s.Empty(output.Players)
	s.Equal(models.NewDraftPlayer(), s.svc.GetState(s.ctx).Draft)
}

func (s *RosterServiceTestSuite) TestSubmitDraftRejectsConcurrentSubmit() {
	s.fillDraft(s.fidoDraft)

	entered := make(chan struct{})
	release := make(chan struct{})
	s.mockClient.EXPECT().
		CreatePlayer(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, input *puppybowl.CreatePlayerInput) (*puppybowl.CreatePlayerOutput, error) {
			close(entered)
			<-release
			return &puppybowl.CreatePlayerOutput{StatusCode: http.StatusCreated}, nil
		}).
		Times(1)
	s.expectList(s.fido).Times(1)

	done := make(chan error, 1)
	go func() {
		_, err := s.svc.SubmitDraft(s.ctx)
		done <- err
	}()

	<-entered
	s.Equal(PhaseSubmitting, s.svc.GetState(s.ctx).Phase)

	_, err := s.svc.SubmitDraft(s.ctx)
	s.Equal(ErrSubmitInFlight, err)

	close(release)
	s.Require().NoError(<-done)
	s.Equal(PhaseIdle, s.svc.GetState(s.ctx).Phase)
}

func (s *RosterServiceTestSuite) TestLoadPhaseWhileInFlight() {
	entered := make(chan struct{})
	release := make(chan struct{})
	s.mockClient.EXPECT().
		ListPlayers(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, input *puppybowl.ListPlayersInput) (*puppybowl.ListPlayersOutput, error) {
			close(entered)
			<-release
			return &puppybowl.ListPlayersOutput{Players: []*models.Player{s.rex}}, nil
		})

	done := make(chan error, 1)
	go func() {
		done <- s.svc.Start(s.ctx)
	}()

	<-entered
	s.Equal(PhaseLoading, s.svc.GetState(s.ctx).Phase)

	close(release)
	s.Require().NoError(<-done)
	s.Equal(PhaseIdle, s.svc.GetState(s.ctx).Phase)
}

func (s *RosterServiceTestSuite) TestStaleLoadDoesNotOverwriteNewerSnapshot() {
	firstEntered := make(chan struct{})
	releaseFirst := make(chan struct{})

	gomock.InOrder(
		s.mockClient.EXPECT().
			ListPlayers(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, input *puppybowl.ListPlayersInput) (*puppybowl.ListPlayersOutput, error) {
				close(firstEntered)
				<-releaseFirst
				return &puppybowl.ListPlayersOutput{Players: []*models.Player{s.rex}}, nil
			}),
		s.expectList(s.rex, s.fido),
	)

	done := make(chan error, 1)
	go func() {
		_, err := s.svc.LoadRoster(s.ctx)
		done <- err
	}()
	<-firstEntered

	_, err := s.svc.LoadRoster(s.ctx)
	s.Require().NoError(err)

	close(releaseFirst)
	s.Require().NoError(<-done)

	s.Equal([]*models.Player{s.rex, s.fido}, s.svc.GetState(s.ctx).Players)
}
