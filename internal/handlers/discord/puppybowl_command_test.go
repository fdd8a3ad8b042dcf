package discord

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/KirkDiggler/puppybowl/internal/models"
	"github.com/KirkDiggler/puppybowl/internal/services/messaging"
	"github.com/KirkDiggler/puppybowl/internal/services/roster"
	rosterMocks "github.com/KirkDiggler/puppybowl/internal/services/roster/mocks"
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// fakeResponder records interaction responses instead of calling Discord
type fakeResponder struct {
	mu        sync.Mutex
	responses []*discordgo.InteractionResponse
	edits     []*discordgo.WebhookEdit
}

func (f *fakeResponder) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = append(f.responses, resp)
	return nil
}

func (f *fakeResponder) InteractionResponseEdit(_ *discordgo.Interaction, edit *discordgo.WebhookEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edits = append(f.edits, edit)
	return &discordgo.Message{}, nil
}

type PuppyBowlCommandTestSuite struct {
	suite.Suite
	mockCtrl   *gomock.Controller
	mockRoster *rosterMocks.MockService
	responder  *fakeResponder
	bot        *Bot

	// startGate, when set, holds every initial roster load until closed
	startGate chan struct{}
}

func (s *PuppyBowlCommandTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRoster = rosterMocks.NewMockService(s.mockCtrl)
	s.startGate = nil
	s.mockRoster.EXPECT().Start(gomock.Any()).DoAndReturn(func(ctx context.Context) error {
		if s.startGate != nil {
			<-s.startGate
		}
		return nil
	}).AnyTimes()
	s.responder = &fakeResponder{}

	msg, err := messaging.NewService(&messaging.ServiceConfig{Rand: rand.New(rand.NewSource(1))})
	s.Require().NoError(err)

	bot, err := New(&Config{
		Token:            "test-token",
		ApplicationID:    "app",
		NewRoster:        func(string) (roster.Service, error) { return s.mockRoster, nil },
		MessagingService: msg,
	})
	s.Require().NoError(err)
	bot.addHandlers(NewPuppyBowlCommand(bot.rosters, msg, zerolog.Nop()))
	s.bot = bot
}

func (s *PuppyBowlCommandTestSuite) TearDownTest() {
	s.bot.rosters.Wait()
	s.mockCtrl.Finish()
}

func TestPuppyBowlCommandTestSuite(t *testing.T) {
	suite.Run(t, new(PuppyBowlCommandTestSuite))
}

func member(userID string) *discordgo.Member {
	return &discordgo.Member{User: &discordgo.User{ID: userID}}
}

func (s *PuppyBowlCommandTestSuite) slash(sub string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type:   discordgo.InteractionApplicationCommand,
		Member: member("u1"),
		Data: discordgo.ApplicationCommandInteractionData{
			Name: "puppybowl",
			Options: []*discordgo.ApplicationCommandInteractionDataOption{
				{Name: sub, Type: discordgo.ApplicationCommandOptionSubCommand},
			},
		},
	}}
}

func (s *PuppyBowlCommandTestSuite) component(customID string, values ...string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type:   discordgo.InteractionMessageComponent,
		Member: member("u1"),
		Data: discordgo.MessageComponentInteractionData{
			CustomID: customID,
			Values:   values,
		},
	}}
}

func (s *PuppyBowlCommandTestSuite) lastResponse() *discordgo.InteractionResponse {
	s.Require().NotEmpty(s.responder.responses)
	return s.responder.responses[len(s.responder.responses)-1]
}

func (s *PuppyBowlCommandTestSuite) lastEdit() *discordgo.WebhookEdit {
	s.Require().NotEmpty(s.responder.edits)
	return s.responder.edits[len(s.responder.edits)-1]
}

func (s *PuppyBowlCommandTestSuite) TestRosterShowsLoadingWhenEmpty() {
	s.mockRoster.EXPECT().GetState(gomock.Any()).Return(&roster.State{Players: []*models.Player{}})

	s.bot.handleInteraction(s.responder, s.slash("roster"))

	resp := s.lastResponse()
	s.Equal(discordgo.InteractionResponseChannelMessageWithSource, resp.Type)
	s.Equal(discordgo.MessageFlagsEphemeral, resp.Data.Flags)
	s.Equal(messaging.LoadingMessage, resp.Data.Embeds[0].Description)
}

func (s *PuppyBowlCommandTestSuite) TestAddOpensPrefilledModal() {
	s.mockRoster.EXPECT().GetState(gomock.Any()).Return(&roster.State{
		Draft: models.DraftPlayer{Name: "Fido", Status: models.PlayerStatusBench},
	})

	s.bot.handleInteraction(s.responder, s.slash("add"))

	resp := s.lastResponse()
	s.Equal(discordgo.InteractionResponseModal, resp.Type)
	s.Equal(ModalDraft, resp.Data.CustomID)
	name := resp.Data.Components[0].(discordgo.ActionsRow).Components[0].(discordgo.TextInput)
	s.Equal("Fido", name.Value)
}

func (s *PuppyBowlCommandTestSuite) TestModalSubmitCopiesFieldsIntoDraft() {
	draft := models.DraftPlayer{Name: "Fido", Breed: "Pug", Status: models.PlayerStatusBench, ImageURL: "http://x/2.png"}
	gomock.InOrder(
		s.mockRoster.EXPECT().UpdateDraftField(gomock.Any(), &roster.UpdateDraftFieldInput{Field: models.DraftFieldName, Value: "Fido"}).Return(&roster.UpdateDraftFieldOutput{}, nil),
		s.mockRoster.EXPECT().UpdateDraftField(gomock.Any(), &roster.UpdateDraftFieldInput{Field: models.DraftFieldBreed, Value: "Pug"}).Return(&roster.UpdateDraftFieldOutput{}, nil),
		s.mockRoster.EXPECT().UpdateDraftField(gomock.Any(), &roster.UpdateDraftFieldInput{Field: models.DraftFieldImageURL, Value: "http://x/2.png"}).Return(&roster.UpdateDraftFieldOutput{}, nil),
		s.mockRoster.EXPECT().GetState(gomock.Any()).Return(&roster.State{Draft: draft}),
	)

	s.bot.handleInteraction(s.responder, &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type:   discordgo.InteractionModalSubmit,
		Member: member("u1"),
		Data: discordgo.ModalSubmitInteractionData{
			CustomID: ModalDraft,
			Components: []discordgo.MessageComponent{
				&discordgo.ActionsRow{Components: []discordgo.MessageComponent{&discordgo.TextInput{CustomID: "name", Value: "Fido"}}},
				&discordgo.ActionsRow{Components: []discordgo.MessageComponent{&discordgo.TextInput{CustomID: "breed", Value: "Pug"}}},
				&discordgo.ActionsRow{Components: []discordgo.MessageComponent{&discordgo.TextInput{CustomID: "imageUrl", Value: "http://x/2.png"}}},
			},
		},
	}})

	resp := s.lastResponse()
	s.Equal("Fido", resp.Data.Embeds[0].Fields[0].Value)
	submit := resp.Data.Components[1].(discordgo.ActionsRow).Components[1].(discordgo.Button)
	s.False(submit.Disabled)
}

func (s *PuppyBowlCommandTestSuite) TestStatusSelectUpdatesDraft() {
	gomock.InOrder(
		s.mockRoster.EXPECT().UpdateDraftField(gomock.Any(), &roster.UpdateDraftFieldInput{Field: models.DraftFieldStatus, Value: "field"}).Return(&roster.UpdateDraftFieldOutput{}, nil),
		s.mockRoster.EXPECT().GetState(gomock.Any()).Return(&roster.State{Draft: models.DraftPlayer{Status: models.PlayerStatusField}}),
	)

	s.bot.handleInteraction(s.responder, s.component(SelectStatus, "field"))

	s.Equal(discordgo.InteractionResponseUpdateMessage, s.lastResponse().Type)
}

func (s *PuppyBowlCommandTestSuite) TestStatusSelectIgnoresUnknownValue() {
	s.mockRoster.EXPECT().GetState(gomock.Any()).Return(&roster.State{Draft: models.NewDraftPlayer()})

	s.bot.handleInteraction(s.responder, s.component(SelectStatus, "goalie"))

	s.Equal(discordgo.InteractionResponseUpdateMessage, s.lastResponse().Type)
}

func (s *PuppyBowlCommandTestSuite) TestSubmitWithMissingFieldsDoesNotSend() {
	s.mockRoster.EXPECT().GetState(gomock.Any()).Return(&roster.State{Draft: models.DraftPlayer{Name: "Fido", Status: models.PlayerStatusBench}})

	s.bot.handleInteraction(s.responder, s.component(ButtonSubmit))

	resp := s.lastResponse()
	s.Equal(discordgo.InteractionResponseUpdateMessage, resp.Type)
	s.Equal("Still needed: Breed, Image URL.", resp.Data.Embeds[0].Description)
}

func (s *PuppyBowlCommandTestSuite) TestSubmitSuccessShowsRefreshedRoster() {
	draft := models.DraftPlayer{Name: "Fido", Breed: "Pug", Status: models.PlayerStatusField, ImageURL: "http://x/2.png"}
	gomock.InOrder(
		s.mockRoster.EXPECT().GetState(gomock.Any()).Return(&roster.State{Draft: draft}),
		s.mockRoster.EXPECT().SubmitDraft(gomock.Any()).Return(&roster.SubmitDraftOutput{
			Submitted: draft,
			Reloaded:  true,
			Players:   []*models.Player{{ID: "1", Name: "Fido", Breed: "Pug", Status: models.PlayerStatusField}},
		}, nil),
	)

	s.bot.handleInteraction(s.responder, s.component(ButtonSubmit))

	s.Equal(discordgo.InteractionResponseDeferredMessageUpdate, s.lastResponse().Type)
	edit := s.lastEdit()
	s.Equal("Fido / Pug / field", (*edit.Embeds)[0].Description)
	s.Contains(*edit.Content, "Fido")
}

func (s *PuppyBowlCommandTestSuite) TestSubmitFailureShowsDraftAgain() {
	draft := models.DraftPlayer{Name: "Fido", Breed: "Pug", Status: models.PlayerStatusField, ImageURL: "http://x/2.png"}
	gomock.InOrder(
		s.mockRoster.EXPECT().GetState(gomock.Any()).Return(&roster.State{Draft: draft}),
		s.mockRoster.EXPECT().SubmitDraft(gomock.Any()).Return(nil, errors.New("server returned status 500")),
		s.mockRoster.EXPECT().GetState(gomock.Any()).Return(&roster.State{Draft: draft}),
	)

	s.bot.handleInteraction(s.responder, s.component(ButtonSubmit))

	edit := s.lastEdit()
	s.Equal("Fido", (*edit.Embeds)[0].Fields[0].Value)
	s.Empty(*edit.Content)
}

func (s *PuppyBowlCommandTestSuite) TestSubmitInFlightIsIgnored() {
	draft := models.DraftPlayer{Name: "Fido", Breed: "Pug", Status: models.PlayerStatusField, ImageURL: "http://x/2.png"}
	gomock.InOrder(
		s.mockRoster.EXPECT().GetState(gomock.Any()).Return(&roster.State{Draft: draft}),
		s.mockRoster.EXPECT().SubmitDraft(gomock.Any()).Return(nil, roster.ErrSubmitInFlight),
	)

	s.bot.handleInteraction(s.responder, s.component(ButtonSubmit))

	s.Empty(s.responder.edits)
}

func (s *PuppyBowlCommandTestSuite) TestRefreshReloads() {
	gomock.InOrder(
		s.mockRoster.EXPECT().LoadRoster(gomock.Any()).Return(nil, errors.New("offline")),
		s.mockRoster.EXPECT().GetState(gomock.Any()).Return(&roster.State{
			Players: []*models.Player{{ID: "1", Name: "Rex", Breed: "Lab", Status: models.PlayerStatusBench}},
		}),
	)

	s.bot.handleInteraction(s.responder, s.component(ButtonRefresh))

	s.Equal("Rex / Lab / bench", (*s.lastEdit().Embeds)[0].Description)
}

func (s *PuppyBowlCommandTestSuite) TestUnknownComponent() {
	s.bot.handleInteraction(s.responder, s.component("roll_dice"))

	resp := s.lastResponse()
	s.Equal(discordgo.MessageFlagsEphemeral, resp.Data.Flags)
	s.Contains(resp.Data.Content, "roll_dice")
}

func (s *PuppyBowlCommandTestSuite) TestDMUserIsUsed() {
	s.mockRoster.EXPECT().GetState(gomock.Any()).Return(&roster.State{})

	i := s.slash("roster")
	i.Member = nil
	i.User = &discordgo.User{ID: "dm-user"}
	s.bot.handleInteraction(s.responder, i)

	s.Equal(1, s.bot.rosters.Len())
}

func TestNewValidatesConfig(t *testing.T) {
	msg, _ := messaging.NewService(&messaging.ServiceConfig{})
	factory := func(string) (roster.Service, error) { return nil, nil }

	for _, cfg := range []*Config{
		nil,
		{MessagingService: msg, NewRoster: factory},
		{Token: "t", NewRoster: factory},
		{Token: "t", MessagingService: msg},
	} {
		if _, err := New(cfg); err == nil {
			t.Errorf("expected error for %+v", cfg)
		}
	}
}

func (s *PuppyBowlCommandTestSuite) TestFirstAddOpensModalWhileRosterStillLoading() {
	s.startGate = make(chan struct{})
	defer close(s.startGate)
	s.mockRoster.EXPECT().GetState(gomock.Any()).Return(&roster.State{Draft: models.NewDraftPlayer()})

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.bot.handleInteraction(s.responder, s.slash("add"))
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		s.FailNow("modal was not sent while the initial load was pending")
	}

	s.Equal(discordgo.InteractionResponseModal, s.lastResponse().Type)
}

func (s *PuppyBowlCommandTestSuite) TestFirstRosterRespondsWhileRosterStillLoading() {
	s.startGate = make(chan struct{})
	defer close(s.startGate)
	s.mockRoster.EXPECT().GetState(gomock.Any()).Return(&roster.State{Players: []*models.Player{}})

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.bot.handleInteraction(s.responder, s.slash("roster"))
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		s.FailNow("roster was not sent while the initial load was pending")
	}

	s.Equal(messaging.LoadingMessage, s.lastResponse().Data.Embeds[0].Description)
}

func (s *PuppyBowlCommandTestSuite) TestHandlersCanBeAddedWhileInteractionsArrive() {
	s.mockRoster.EXPECT().GetState(gomock.Any()).Return(&roster.State{}).AnyTimes()
	msg, err := messaging.NewService(&messaging.ServiceConfig{})
	s.Require().NoError(err)

	var wg sync.WaitGroup
	for n := 0; n < 20; n++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.bot.addHandlers(NewPuppyBowlCommand(s.bot.rosters, msg, zerolog.Nop()))
		}()
		go func() {
			defer wg.Done()
			s.bot.handleInteraction(s.responder, s.slash("roster"))
		}()
	}
	wg.Wait()

	s.Len(s.responder.responses, 20)
}
