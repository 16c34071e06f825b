package bot

import (
	"context"
	"testing"

	tgmodels "github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/require"

	"gitlab.com/nepalfinance/claims-bot/internal/bot/mocks"
	"gitlab.com/nepalfinance/claims-bot/internal/models"
)

func TestHandleStart(t *testing.T) {
	t.Parallel()

	t.Run("sends the welcome with the main menu", func(t *testing.T) {
		t.Parallel()
		b, _, _ := setupTestBot(t)
		mockBot := mocks.NewMockBot()

		b.handleStartCore(context.Background(), mockBot, mocks.MessageUpdate(testChatID, testUserID, "/start"))

		reply := mockBot.LastSentMessage()
		require.Equal(t, msgWelcome, reply.Text)
		require.Equal(t, tgmodels.ParseModeMarkdown, reply.ParseMode)

		markup, ok := reply.ReplyMarkup.(*tgmodels.ReplyKeyboardMarkup)
		require.True(t, ok)
		var buttons []string
		for _, row := range markup.Keyboard {
			for _, btn := range row {
				buttons = append(buttons, btn.Text)
			}
		}
		require.ElementsMatch(t, []string{optionSubmitClaim, optionCheckStatus, optionSubmitPayment}, buttons)
	})

	t.Run("ignores updates without a message", func(t *testing.T) {
		t.Parallel()
		b, _, _ := setupTestBot(t)
		mockBot := mocks.NewMockBot()

		b.handleStartCore(context.Background(), mockBot, &tgmodels.Update{})

		require.Zero(t, mockBot.SentMessageCount())
	})
}

func TestHandleEnd(t *testing.T) {
	t.Parallel()

	t.Run("resets a conversation mid-form", func(t *testing.T) {
		t.Parallel()
		b, _, _ := setupTestBot(t)
		mockBot := mocks.NewMockBot()
		ctx := context.Background()

		sendText(ctx, b, mockBot, optionSubmitClaim)
		sendText(ctx, b, mockBot, "Finance")
		require.Equal(t, models.StepAwaitingName, b.sessions.Get(testUserID).ActiveStep)

		b.handleEndCore(ctx, mockBot, mocks.MessageUpdate(testChatID, testUserID, "/end"))

		require.Equal(t, msgGoodbye, mockBot.LastSentMessage().Text)
		sess := b.sessions.Get(testUserID)
		require.Equal(t, models.StepIdle, sess.ActiveStep)
		require.Empty(t, sess.Draft)
	})

	t.Run("is idempotent from idle", func(t *testing.T) {
		t.Parallel()
		b, _, _ := setupTestBot(t)
		mockBot := mocks.NewMockBot()
		ctx := context.Background()

		b.handleEndCore(ctx, mockBot, mocks.MessageUpdate(testChatID, testUserID, "/end"))
		b.handleEndCore(ctx, mockBot, mocks.MessageUpdate(testChatID, testUserID, "/end"))

		require.Equal(t, 2, mockBot.SentMessageCount())
		require.Equal(t, models.StepIdle, b.sessions.Get(testUserID).ActiveStep)
	})
}

func TestUnknownCommand(t *testing.T) {
	t.Parallel()

	b, _, _ := setupTestBot(t)
	mockBot := mocks.NewMockBot()

	b.defaultHandlerCore(context.Background(), mockBot, mocks.MessageUpdate(testChatID, testUserID, "/ping"))

	require.Equal(t, msgUnknownCommand, mockBot.LastSentMessage().Text)
	require.Equal(t, models.StepIdle, b.sessions.Get(testUserID).ActiveStep)
}

func TestDefaultHandlerGuards(t *testing.T) {
	t.Parallel()

	b, _, _ := setupTestBot(t)
	mockBot := mocks.NewMockBot()
	ctx := context.Background()

	b.defaultHandlerCore(ctx, mockBot, &tgmodels.Update{})
	b.defaultHandlerCore(ctx, mockBot, &tgmodels.Update{Message: &tgmodels.Message{Text: "hello"}})

	require.Zero(t, mockBot.SentMessageCount())
}

func TestSessionsAreIsolatedPerUser(t *testing.T) {
	t.Parallel()

	b, _, _ := setupTestBot(t)
	mockBot := mocks.NewMockBot()
	ctx := context.Background()

	const otherUserID int64 = 201

	sendText(ctx, b, mockBot, optionSubmitClaim)
	b.defaultHandlerCore(ctx, mockBot, mocks.MessageUpdate(testChatID, otherUserID, optionCheckStatus))

	require.Equal(t, models.StepAwaitingDepartment, b.sessions.Get(testUserID).ActiveStep)
	require.Equal(t, models.StepAwaitingClaimIDLookup, b.sessions.Get(otherUserID).ActiveStep)
}
