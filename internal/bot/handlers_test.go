package bot

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/tablestar/internal/drill"
	"github.com/abhisek/tablestar/internal/session"
)

type MockMessageSender struct {
	mock.Mock
}

func (m *MockMessageSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	args := m.Called(c)
	if msg, ok := args.Get(0).(tgbotapi.Message); ok {
		return msg, args.Error(1)
	}
	return tgbotapi.Message{}, args.Error(1)
}

func (m *MockMessageSender) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	args := m.Called(c)
	return nil, args.Error(1)
}

type failingRecorder struct {
	session.MemoryRecorder
}

func (f *failingRecorder) Append(context.Context, session.HistoryItem) error {
	return errors.New("disk full")
}

const chatID = int64(42)

func textContains(sub string) any {
	return mock.MatchedBy(func(c tgbotapi.MessageConfig) bool {
		return c.ChatID == chatID && strings.Contains(c.Text, sub)
	})
}

func newTestHandler(t *testing.T, rec session.Recorder, kinds ...drill.Kind) (*Handler, *MockMessageSender) {
	t.Helper()
	if len(kinds) == 0 {
		kinds = []drill.Kind{drill.KindCalculation}
	}
	cfg := drill.Config{
		StartTable:    3,
		EndTable:      3,
		Difficulty:    drill.DifficultyEasy,
		QuestionCount: 10,
		Operations:    []drill.Operation{drill.Multiply},
		Kinds:         kinds,
	}
	sender := new(MockMessageSender)
	h := NewHandler(sender, rec, cfg,
		session.WithGenerator(drill.NewGenerator(rand.NewPCG(1, 2))),
		session.WithClock(func() time.Time { return time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC) }),
	)
	return h, sender
}

func commandUpdate(text string) tgbotapi.Update {
	cmd := strings.Fields(text)[0]
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Text:     text,
		Chat:     &tgbotapi.Chat{ID: chatID},
		From:     &tgbotapi.User{ID: 7, FirstName: "Lan"},
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd)}},
	}}
}

func textUpdate(text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Text: text,
		Chat: &tgbotapi.Chat{ID: chatID},
		From: &tgbotapi.User{ID: 7, FirstName: "Lan"},
	}}
}

func TestHandleStartAndHelp(t *testing.T) {
	h, sender := newTestHandler(t, session.NewMemoryRecorder())
	sender.On("Send", textContains("Hi Lan!")).Return(tgbotapi.Message{}, nil).Once()
	sender.On("Send", textContains("/practice [count]")).Return(tgbotapi.Message{}, nil).Once()

	h.HandleUpdate(context.Background(), commandUpdate("/start"))
	h.HandleUpdate(context.Background(), commandUpdate("/help"))

	sender.AssertExpectations(t)
}

func TestPracticeRound(t *testing.T) {
	ctx := context.Background()
	rec := session.NewMemoryRecorder()
	h, sender := newTestHandler(t, rec)

	sender.On("Send", textContains("Let's go, Lan! 3 questions.")).Return(tgbotapi.Message{}, nil).Once()
	sender.On("Send", textContains("Question 1/3")).Return(tgbotapi.Message{}, nil).Once()
	h.HandleUpdate(ctx, commandUpdate("/practice 3"))

	s := h.session(chatID)
	require.NotNil(t, s)

	// correct, wrong, correct
	sender.On("Send", textContains("✅ Correct!")).Return(tgbotapi.Message{}, nil).Twice()
	sender.On("Send", textContains("❌ Not quite. The answer is")).Return(tgbotapi.Message{}, nil).Once()
	sender.On("Send", textContains("Question 2/3")).Return(tgbotapi.Message{}, nil).Once()
	sender.On("Send", textContains("Question 3/3")).Return(tgbotapi.Message{}, nil).Once()
	sender.On("Send", textContains("Score: 20 (2/3 correct)")).Return(tgbotapi.Message{}, nil).Once()

	h.HandleUpdate(ctx, textUpdate(s.Current().CorrectAnswer()))
	h.HandleUpdate(ctx, textUpdate("0"))
	h.HandleUpdate(ctx, textUpdate(" "+s.Current().CorrectAnswer()+" "))

	sender.AssertExpectations(t)
	assert.Nil(t, h.session(chatID), "finished rounds are dropped")

	items, err := rec.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 20, items[0].Score)
	assert.Equal(t, 3, items[0].Questions)
	assert.Equal(t, "Lan", items[0].UserName)
}

func TestPracticeRejectsBadCount(t *testing.T) {
	h, sender := newTestHandler(t, session.NewMemoryRecorder())
	sender.On("Send", textContains("between 1 and 50")).Return(tgbotapi.Message{}, nil).Twice()

	h.HandleUpdate(context.Background(), commandUpdate("/practice lots"))
	h.HandleUpdate(context.Background(), commandUpdate("/practice 51"))

	sender.AssertExpectations(t)
	assert.Nil(t, h.session(chatID))
}

func TestAnswerWithoutRound(t *testing.T) {
	h, sender := newTestHandler(t, session.NewMemoryRecorder())
	sender.On("Send", textContains("No round running. Send /practice")).Return(tgbotapi.Message{}, nil).Once()
	sender.On("Send", textContains("No round running.")).Return(tgbotapi.Message{}, nil).Once()

	h.HandleUpdate(context.Background(), textUpdate("12"))
	h.HandleUpdate(context.Background(), commandUpdate("/stop"))

	sender.AssertExpectations(t)
}

func TestChoiceQuestionsUseKeyboardAndCallbacks(t *testing.T) {
	ctx := context.Background()
	h, sender := newTestHandler(t, session.NewMemoryRecorder(), drill.KindTrueFalse)

	var question tgbotapi.MessageConfig
	sender.On("Send", textContains("Let's go")).Return(tgbotapi.Message{}, nil).Once()
	sender.On("Send", textContains("Question 1/2")).Run(func(args mock.Arguments) {
		question = args.Get(0).(tgbotapi.MessageConfig)
	}).Return(tgbotapi.Message{}, nil).Once()
	h.HandlePractice(ctx, chatID, "Lan", "2")
	s := h.session(chatID)
	require.NotNil(t, s)

	keyboard, ok := question.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok, "true/false questions carry buttons")
	require.Len(t, keyboard.InlineKeyboard, 1)
	row := keyboard.InlineKeyboard[0]
	require.Len(t, row, 2)
	assert.Equal(t, "True", row[0].Text)
	assert.Equal(t, "ans:"+s.ID()+":0:true", *row[0].CallbackData)

	answer := s.Current().CorrectAnswer()
	sender.On("Request", mock.Anything).Return(nil, nil).Once()
	sender.On("Send", textContains("✅ Correct!")).Return(tgbotapi.Message{}, nil).Once()
	sender.On("Send", textContains("Question 2/2")).Return(tgbotapi.Message{}, nil).Once()

	h.HandleUpdate(ctx, tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb1",
		Data:    answerData(s, answer),
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: chatID}},
	}})

	sender.AssertExpectations(t)
	assert.Equal(t, 1, h.session(chatID).Count())
}

func TestStopRecordsAndReportsSaveFailure(t *testing.T) {
	ctx := context.Background()
	h, sender := newTestHandler(t, &failingRecorder{})

	sender.On("Send", mock.Anything).Return(tgbotapi.Message{}, nil).Times(2)
	h.HandlePractice(ctx, chatID, "", "")
	assert.Equal(t, session.DefaultUserName, h.session(chatID).UserName())

	sender.On("Send", textContains("couldn't save this round")).Return(tgbotapi.Message{}, nil).Once()
	h.HandleStop(ctx, chatID)

	sender.AssertExpectations(t)
	assert.Nil(t, h.session(chatID))
}

func TestHistory(t *testing.T) {
	ctx := context.Background()
	rec := session.NewMemoryRecorder()
	h, sender := newTestHandler(t, rec)

	sender.On("Send", textContains("No rounds yet")).Return(tgbotapi.Message{}, nil).Once()
	h.HandleHistory(ctx, chatID, "Lan")

	require.NoError(t, rec.Append(ctx, session.HistoryItem{ID: "1", UserName: "Lan", Score: 50, Questions: 5}))
	require.NoError(t, rec.Append(ctx, session.HistoryItem{ID: "2", UserName: "Minh", Score: 10, Questions: 5}))

	sender.On("Send", mock.MatchedBy(func(c tgbotapi.MessageConfig) bool {
		return strings.Contains(c.Text, "Recent rounds for Lan") &&
			strings.Contains(c.Text, "50 points") &&
			strings.Contains(c.Text, "Prodigy") &&
			!strings.Contains(c.Text, "10 points")
	})).Return(tgbotapi.Message{}, nil).Once()
	h.HandleUpdate(ctx, commandUpdate("/history"))

	sender.AssertExpectations(t)
}

func TestUnknownCommand(t *testing.T) {
	h, sender := newTestHandler(t, session.NewMemoryRecorder())
	sender.On("Send", textContains("don't know that command")).Return(tgbotapi.Message{}, nil).Once()
	h.HandleUpdate(context.Background(), commandUpdate("/dance"))
	sender.AssertExpectations(t)
}

func callbackUpdate(data string) tgbotapi.Update {
	return tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb",
		Data:    data,
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: chatID}},
	}}
}

func callbackText(text string) any {
	return mock.MatchedBy(func(c tgbotapi.CallbackConfig) bool {
		return c.Text == text
	})
}

func TestMessagesWithoutTextAreIgnored(t *testing.T) {
	ctx := context.Background()
	h, sender := newTestHandler(t, session.NewMemoryRecorder())
	sender.On("Send", mock.Anything).Return(tgbotapi.Message{}, nil).Times(2)
	h.HandlePractice(ctx, chatID, "Lan", "")

	h.HandleUpdate(ctx, tgbotapi.Update{Message: &tgbotapi.Message{
		Chat:    &tgbotapi.Chat{ID: chatID},
		From:    &tgbotapi.User{ID: 7, FirstName: "Lan"},
		Sticker: &tgbotapi.Sticker{FileID: "star"},
	}})
	h.HandleUpdate(ctx, textUpdate("   "))

	sender.AssertExpectations(t)
	s := h.session(chatID)
	require.NotNil(t, s)
	assert.Equal(t, 0, s.Count(), "no question is used up")
	assert.Empty(t, s.Results())
}

func TestStaleButtonsAreDropped(t *testing.T) {
	ctx := context.Background()
	h, sender := newTestHandler(t, session.NewMemoryRecorder(), drill.KindTrueFalse)
	sender.On("Send", mock.Anything).Return(tgbotapi.Message{}, nil)
	h.HandlePractice(ctx, chatID, "Lan", "3")

	s := h.session(chatID)
	first := answerData(s, s.Current().CorrectAnswer())

	sender.On("Request", callbackText("")).Return(nil, nil).Once()
	h.HandleUpdate(ctx, callbackUpdate(first))
	require.Equal(t, 1, s.Count())

	// The first keyboard is still in the chat; tapping it again must not
	// answer the second question.
	sender.On("Request", callbackText("That question is already over.")).Return(nil, nil).Twice()
	h.HandleUpdate(ctx, callbackUpdate(first))
	assert.Equal(t, 1, s.Count())

	// A button from another round is dropped too.
	h.HandleUpdate(ctx, callbackUpdate(answerPrefix+"old-round:1:true"))
	assert.Equal(t, 1, s.Count())
	assert.Len(t, s.Results(), 1)
	sender.AssertExpectations(t)
}

func TestTypedShortcutsAnswerChoiceQuestions(t *testing.T) {
	ctx := context.Background()
	h, sender := newTestHandler(t, session.NewMemoryRecorder(), drill.KindSign)
	sender.On("Send", mock.Anything).Return(tgbotapi.Message{}, nil).Times(2)
	h.HandlePractice(ctx, chatID, "Lan", "2")

	s := h.session(chatID)
	require.Equal(t, drill.Multiply.Symbol(), s.Current().CorrectAnswer())

	sender.On("Send", textContains("✅ Correct!")).Return(tgbotapi.Message{}, nil).Once()
	sender.On("Send", textContains("Question 2/2")).Return(tgbotapi.Message{}, nil).Once()
	h.HandleUpdate(ctx, textUpdate("x"))

	sender.AssertExpectations(t)
	require.Len(t, s.Results(), 1)
	assert.True(t, s.Results()[0].Correct)
}

func TestTypedAnswer(t *testing.T) {
	tf := drill.TrueFalse{Fact: drill.NewFact(drill.Multiply, 3, 4), Shown: 12, Answer: true}
	assert.Equal(t, "true", typedAnswer(tf, "Yes"))
	assert.Equal(t, "false", typedAnswer(tf, "n"))
	assert.Equal(t, "12", typedAnswer(nil, "12"))
}

func TestPracticeFinishesRunningRound(t *testing.T) {
	ctx := context.Background()
	rec := session.NewMemoryRecorder()
	h, sender := newTestHandler(t, rec)
	sender.On("Send", mock.Anything).Return(tgbotapi.Message{}, nil).Times(2)
	h.HandlePractice(ctx, chatID, "Lan", "3")

	old := h.session(chatID)
	sender.On("Send", textContains("✅ Correct!")).Return(tgbotapi.Message{}, nil).Once()
	sender.On("Send", textContains("Question 2/3")).Return(tgbotapi.Message{}, nil).Once()
	h.HandleUpdate(ctx, textUpdate(old.Current().CorrectAnswer()))

	sender.On("Send", textContains("Round over")).Return(tgbotapi.Message{}, nil).Once()
	sender.On("Send", textContains("Let's go")).Return(tgbotapi.Message{}, nil).Once()
	sender.On("Send", textContains("Question 1/3")).Return(tgbotapi.Message{}, nil).Once()
	h.HandleUpdate(ctx, commandUpdate("/practice 3"))

	sender.AssertExpectations(t)
	items, err := rec.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1, "the interrupted round is kept")
	assert.Equal(t, 1, items[0].Questions)
	assert.Equal(t, 0, h.session(chatID).Count())
}
