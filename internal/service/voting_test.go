package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddubrovin/lunchboard/internal/domain"
)

func closeEvent(t *testing.T, events *EventService, id string) {
	t.Helper()
	_, err := events.ToggleOpenState(context.Background(), creatorID, id)
	require.NoError(t, err)
}

func TestVotingService_AddOption_AnyUser(t *testing.T) {
	events, _, voting, _ := newServices(t)
	event := mustCreateVotingEvent(t, events, "Sushi")

	option, err := voting.AddOption(context.Background(), otherID, event.ID, domain.AddOptionInput{
		Name: "Burgers",
		Link: "https://burgers.example",
	})

	require.NoError(t, err)
	assert.Equal(t, otherID, option.AddedByID)

	got, err := events.GetByID(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Len(t, got.VotingOptions, 2)
}

func TestVotingService_AddOption_EmptyName(t *testing.T) {
	events, _, voting, _ := newServices(t)
	event := mustCreateVotingEvent(t, events, "Sushi")

	_, err := voting.AddOption(context.Background(), otherID, event.ID, domain.AddOptionInput{Name: " "})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestVotingService_AddOption_EventClosed(t *testing.T) {
	events, _, voting, _ := newServices(t)
	event := mustCreateVotingEvent(t, events, "Sushi")
	closeEvent(t, events, event.ID)

	_, err := voting.AddOption(context.Background(), otherID, event.ID, domain.AddOptionInput{Name: "Burgers"})

	assert.ErrorIs(t, err, domain.ErrEventClosed)
}

func TestVotingService_ToggleVote_Involutive(t *testing.T) {
	events, _, voting, _ := newServices(t)
	event := mustCreateVotingEvent(t, events, "Sushi")
	optionID := event.VotingOptions[0].ID

	voted, err := voting.ToggleVote(context.Background(), otherID, event.ID, optionID)
	require.NoError(t, err)
	assert.True(t, voted)

	voted, err = voting.ToggleVote(context.Background(), otherID, event.ID, optionID)
	require.NoError(t, err)
	assert.False(t, voted)

	got, err := events.GetByID(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Empty(t, got.VotingOptions[0].Votes)
}

// Pins the permissive multi-option behavior: one user may hold votes on
// several options of the same event. A switch to exclusive voting must be a
// deliberate product change.
func TestVotingService_ToggleVote_MultipleOptionsAllowed(t *testing.T) {
	events, _, voting, _ := newServices(t)
	event := mustCreateVotingEvent(t, events, "Sushi", "Burgers")
	sushiID := event.VotingOptions[0].ID
	burgersID := event.VotingOptions[1].ID

	_, err := voting.ToggleVote(context.Background(), creatorID, event.ID, sushiID)
	require.NoError(t, err)
	_, err = voting.ToggleVote(context.Background(), otherID, event.ID, sushiID)
	require.NoError(t, err)
	_, err = voting.ToggleVote(context.Background(), creatorID, event.ID, burgersID)
	require.NoError(t, err)

	tally, err := voting.Tally(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, tally.Options[0].Votes)
	assert.Equal(t, 1, tally.Options[1].Votes)
	assert.Equal(t, 3, tally.TotalVotes)
}

func TestVotingService_ToggleVote_EventClosed(t *testing.T) {
	events, _, voting, _ := newServices(t)
	event := mustCreateVotingEvent(t, events, "Sushi")
	closeEvent(t, events, event.ID)

	_, err := voting.ToggleVote(context.Background(), otherID, event.ID, event.VotingOptions[0].ID)

	assert.ErrorIs(t, err, domain.ErrEventClosed)
}

func TestVotingService_ToggleVote_OptionNotFound(t *testing.T) {
	events, _, voting, _ := newServices(t)
	event := mustCreateVotingEvent(t, events, "Sushi")

	_, err := voting.ToggleVote(context.Background(), otherID, event.ID, "missing")

	assert.ErrorIs(t, err, domain.ErrOptionNotFound)
}

func TestVotingService_Winners_StillOpen(t *testing.T) {
	events, _, voting, _ := newServices(t)
	event := mustCreateVotingEvent(t, events, "Sushi")

	_, err := voting.Winners(context.Background(), event.ID)

	assert.ErrorIs(t, err, domain.ErrEventStillOpen)
}

func TestVotingService_Winners_Tie(t *testing.T) {
	events, _, voting, repo := newServices(t)
	event := mustCreateVotingEvent(t, events, "A", "B", "C")

	event.VotingOptions[0].Votes = []string{"u1", "u2", "u3"}
	event.VotingOptions[1].Votes = []string{"u4", "u5", "u6"}
	event.VotingOptions[2].Votes = []string{"u1"}
	event.IsOpen = false
	require.NoError(t, repo.Update(context.Background(), event))

	winners, err := voting.Winners(context.Background(), event.ID)

	require.NoError(t, err)
	require.Len(t, winners, 2)
	assert.Equal(t, "A", winners[0].Name)
	assert.Equal(t, "B", winners[1].Name)
}

func TestVotingService_Winners_AllZero(t *testing.T) {
	events, _, voting, _ := newServices(t)
	event := mustCreateVotingEvent(t, events, "Sushi", "Burgers")
	closeEvent(t, events, event.ID)

	winners, err := voting.Winners(context.Background(), event.ID)

	require.NoError(t, err)
	assert.Empty(t, winners)
}

func TestVotingService_Winners_DeadlinePassedCountsAsClosed(t *testing.T) {
	events, _, voting, repo := newServices(t)
	event := mustCreateVotingEvent(t, events, "Sushi")

	past := time.Now().Add(-time.Minute)
	event.Deadline = &past
	event.VotingOptions[0].Votes = []string{"u1"}
	require.NoError(t, repo.Update(context.Background(), event))

	winners, err := voting.Winners(context.Background(), event.ID)

	require.NoError(t, err)
	require.Len(t, winners, 1)
	assert.Equal(t, "Sushi", winners[0].Name)
}

func TestVotingService_CreateOrderFromVote(t *testing.T) {
	events, _, voting, repo := newServices(t)
	event := mustCreateVotingEvent(t, events, "Sushi", "Burgers")

	event.VotingOptions[0].Link = "https://sushi.example"
	event.VotingOptions[0].Votes = []string{creatorID, otherID}
	event.VotingOptions[1].Votes = []string{guestID}
	event.IsOpen = false
	require.NoError(t, repo.Update(context.Background(), event))

	// Any user may convert a winner into an order, not just creator/admin.
	order, err := voting.CreateOrderFromVote(context.Background(), guestID, event.ID, event.VotingOptions[0].ID)

	require.NoError(t, err)
	assert.Equal(t, domain.EventTypeOrder, order.Type)
	assert.Equal(t, "Sushi", order.CompanyName)
	assert.Equal(t, "https://sushi.example", order.Link)
	assert.Equal(t, guestID, order.CreatorID)
	assert.True(t, order.IsOpen)

	// The voting event stays around as history.
	original, err := events.GetByID(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EventTypeVoting, original.Type)
	assert.False(t, original.IsOpen)
}

func TestVotingService_CreateOrderFromVote_NotAWinner(t *testing.T) {
	events, _, voting, repo := newServices(t)
	event := mustCreateVotingEvent(t, events, "Sushi", "Burgers")

	event.VotingOptions[0].Votes = []string{creatorID}
	event.IsOpen = false
	require.NoError(t, repo.Update(context.Background(), event))

	_, err := voting.CreateOrderFromVote(context.Background(), otherID, event.ID, event.VotingOptions[1].ID)

	assert.ErrorIs(t, err, domain.ErrNotAWinner)
}

func TestVotingService_CreateOrderFromVote_StillOpen(t *testing.T) {
	events, _, voting, _ := newServices(t)
	event := mustCreateVotingEvent(t, events, "Sushi")

	_, err := voting.CreateOrderFromVote(context.Background(), otherID, event.ID, event.VotingOptions[0].ID)

	assert.ErrorIs(t, err, domain.ErrEventStillOpen)
}
