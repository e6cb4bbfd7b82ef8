// Package bot serves practice sessions over Telegram.
package bot

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/abhisek/tablestar/internal/drill"
	"github.com/abhisek/tablestar/internal/session"
)

// MaxQuestions caps /practice counts.
const MaxQuestions = 50

// answerPrefix marks callback data carrying an answer. The full form is
// "ans:<session id>:<question number>:<choice>".
const answerPrefix = "ans:"

// MessageSender is the part of the Telegram API the handlers use.
type MessageSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Handler runs one practice session per chat.
type Handler struct {
	sender   MessageSender
	recorder session.Recorder
	cfg      drill.Config
	opts     []session.Option

	mu    sync.Mutex
	chats map[int64]*session.Session
}

// NewHandler creates a Handler. cfg is the template for every session;
// opts are passed to each new session after the recorder.
func NewHandler(sender MessageSender, recorder session.Recorder, cfg drill.Config, opts ...session.Option) *Handler {
	return &Handler{
		sender:   sender,
		recorder: recorder,
		cfg:      cfg,
		opts:     opts,
		chats:    make(map[int64]*session.Session),
	}
}

// HandleUpdate routes one update from Telegram.
func (h *Handler) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.Message != nil:
		h.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		h.handleCallback(ctx, update.CallbackQuery)
	}
}

func (h *Handler) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	switch msg.Command() {
	case "start":
		h.HandleStart(chatID, firstName(msg.From))
	case "help":
		h.HandleHelp(chatID)
	case "practice":
		h.HandlePractice(ctx, chatID, firstName(msg.From), msg.CommandArguments())
	case "stop":
		h.HandleStop(ctx, chatID)
	case "history":
		h.HandleHistory(ctx, chatID, firstName(msg.From))
	case "":
		h.HandleAnswer(ctx, chatID, msg.Text)
	default:
		h.send(tgbotapi.NewMessage(chatID, "I don't know that command. Try /help."))
	}
}

// handleCallback scores a button tap. Taps on keyboards of earlier
// questions or rounds are acknowledged and dropped.
func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	id, num, choice, ok := parseAnswerData(cb.Data)
	if !ok || cb.Message == nil {
		h.ackCallback(cb.ID, "")
		return
	}
	chatID := cb.Message.Chat.ID
	s := h.session(chatID)
	if s == nil || s.ID() != id || s.Count() != num {
		h.ackCallback(cb.ID, "That question is already over.")
		return
	}
	h.ackCallback(cb.ID, "")
	h.submit(ctx, chatID, s, choice)
}

func (h *Handler) ackCallback(id, text string) {
	if _, err := h.sender.Request(tgbotapi.NewCallback(id, text)); err != nil {
		log.Printf("answer callback: %v", err)
	}
}

func answerData(s *session.Session, choice string) string {
	return fmt.Sprintf("%s%s:%d:%s", answerPrefix, s.ID(), s.Count(), choice)
}

func parseAnswerData(data string) (id string, num int, choice string, ok bool) {
	rest, found := strings.CutPrefix(data, answerPrefix)
	if !found {
		return "", 0, "", false
	}
	parts := strings.SplitN(rest, ":", 3)
	if len(parts) != 3 {
		return "", 0, "", false
	}
	num, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", 0, "", false
	}
	return parts[0], num, parts[2], true
}

// HandleStart greets a new user.
func (h *Handler) HandleStart(chatID int64, name string) {
	text := fmt.Sprintf("Hi %s! 👋 Let's practise times tables together.\n\n%s", displayName(name), helpText)
	h.send(tgbotapi.NewMessage(chatID, text))
}

// HandleHelp lists the commands.
func (h *Handler) HandleHelp(chatID int64) {
	h.send(tgbotapi.NewMessage(chatID, helpText))
}

const helpText = `Commands:
/practice [count] - start a practice round (default 10 questions)
/stop - finish the current round early
/history - your last results
/help - show this message

Type numbers to answer, or tap a button when one is shown.`

// HandlePractice starts a new session. A running round with answers is
// finished and recorded first; an untouched one is dropped.
func (h *Handler) HandlePractice(ctx context.Context, chatID int64, name, args string) {
	cfg := h.cfg
	if args = strings.TrimSpace(args); args != "" {
		n, err := strconv.Atoi(args)
		if err != nil || n < 1 || n > MaxQuestions {
			h.send(tgbotapi.NewMessage(chatID, fmt.Sprintf("Please pick a number of questions between 1 and %d.", MaxQuestions)))
			return
		}
		cfg.QuestionCount = n
	}

	opts := append([]session.Option{session.WithRecorder(h.recorder)}, h.opts...)
	s := session.New(cfg, opts...)
	q, err := s.Start(name)
	if err != nil {
		log.Printf("chat %d: start session: %v", chatID, err)
		h.send(tgbotapi.NewMessage(chatID, "Sorry, I couldn't start a round. Please try again."))
		return
	}

	if old := h.session(chatID); old != nil && old.Count() > 0 {
		h.finish(ctx, chatID, old)
	}
	h.mu.Lock()
	h.chats[chatID] = s
	h.mu.Unlock()

	h.send(tgbotapi.NewMessage(chatID, fmt.Sprintf("Let's go, %s! %d questions. 🚀", s.UserName(), s.Target())))
	h.sendQuestion(chatID, s, q)
}

// HandleAnswer scores typed text against the chat's current question.
// Messages without text, such as stickers or photos, are ignored.
func (h *Handler) HandleAnswer(ctx context.Context, chatID int64, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	s := h.session(chatID)
	if s == nil {
		h.send(tgbotapi.NewMessage(chatID, "No round running. Send /practice to start one."))
		return
	}
	h.submit(ctx, chatID, s, typedAnswer(s.Current(), text))
}

// typedAnswer maps typed shortcuts to choice values: "x" or "/" for
// operator questions and "yes" or "no" for true/false.
func typedAnswer(q drill.Question, text string) string {
	if q == nil {
		return text
	}
	switch q.Kind() {
	case drill.KindSign:
		if op, err := drill.ParseOperation(text); err == nil {
			return op.Symbol()
		}
	case drill.KindTrueFalse:
		switch strings.ToLower(strings.TrimSpace(text)) {
		case "y", "yes":
			return "true"
		case "n", "no":
			return "false"
		}
	}
	return text
}

func (h *Handler) submit(ctx context.Context, chatID int64, s *session.Session, answer string) {
	q := s.Current()
	res, ok := s.Submit(answer)
	if !ok {
		return
	}

	if res.Correct {
		h.send(tgbotapi.NewMessage(chatID, "✅ Correct! +10"))
	} else {
		h.send(tgbotapi.NewMessage(chatID, fmt.Sprintf("❌ Not quite. The answer is %s.", displayAnswer(q, q.CorrectAnswer()))))
	}

	if s.Phase() == session.PhaseCompleted {
		h.finish(ctx, chatID, s)
		return
	}
	h.sendQuestion(chatID, s, s.Next())
}

// HandleStop finishes the chat's round early.
func (h *Handler) HandleStop(ctx context.Context, chatID int64) {
	s := h.session(chatID)
	if s == nil {
		h.send(tgbotapi.NewMessage(chatID, "No round running."))
		return
	}
	h.finish(ctx, chatID, s)
}

// HandleHistory shows the five most recent rounds played under name.
func (h *Handler) HandleHistory(ctx context.Context, chatID int64, name string) {
	items, err := h.recorder.LoadAll(ctx)
	if err != nil {
		log.Printf("chat %d: load history: %v", chatID, err)
		h.send(tgbotapi.NewMessage(chatID, "Sorry, I couldn't load your history."))
		return
	}

	player := displayName(name)
	var b strings.Builder
	shown := 0
	for _, item := range items {
		if item.UserName != player {
			continue
		}
		if shown == 0 {
			fmt.Fprintf(&b, "Recent rounds for %s:\n", player)
		}
		fmt.Fprintf(&b, "%s  %d/%d correct, %d points  %s\n",
			item.Date.Format("Jan 2 15:04"), item.Correct(), item.Questions, item.Score, item.Rank())
		shown++
		if shown == 5 {
			break
		}
	}
	if shown == 0 {
		h.send(tgbotapi.NewMessage(chatID, "No rounds yet. Send /practice to play!"))
		return
	}
	h.send(tgbotapi.NewMessage(chatID, strings.TrimRight(b.String(), "\n")))
}

func (h *Handler) finish(ctx context.Context, chatID int64, s *session.Session) {
	h.mu.Lock()
	delete(h.chats, chatID)
	h.mu.Unlock()

	item, err := s.Finish(ctx)
	if item == nil {
		return
	}
	text := fmt.Sprintf("🎉 Round over, %s!\nScore: %d (%d/%d correct)\nRank: %s",
		item.UserName, item.Score, item.Correct(), item.Questions, item.Rank())
	if err != nil {
		log.Printf("chat %d: %v", chatID, err)
		text += "\n\n⚠️ I couldn't save this round."
	}
	h.send(tgbotapi.NewMessage(chatID, text))
}

func (h *Handler) session(chatID int64) *session.Session {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.chats[chatID]
}

func (h *Handler) sendQuestion(chatID int64, s *session.Session, q drill.Question) {
	if q == nil {
		return
	}
	text := fmt.Sprintf("Question %d/%d\n%s", s.Count()+1, s.Target(), q.Prompt())
	msg := tgbotapi.NewMessage(chatID, text)
	if choices := q.Choices(); len(choices) > 0 {
		msg.ReplyMarkup = choiceKeyboard(s, q, choices)
	}
	h.send(msg)
}

func choiceKeyboard(s *session.Session, q drill.Question, choices []string) tgbotapi.InlineKeyboardMarkup {
	buttons := make([]tgbotapi.InlineKeyboardButton, len(choices))
	for i, c := range choices {
		buttons[i] = tgbotapi.NewInlineKeyboardButtonData(displayAnswer(q, c), answerData(s, c))
	}
	return tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(buttons...))
}

// displayAnswer renders true/false choices as words.
func displayAnswer(q drill.Question, answer string) string {
	if q.Kind() != drill.KindTrueFalse {
		return answer
	}
	if answer == "true" {
		return "True"
	}
	return "False"
}

func (h *Handler) send(msg tgbotapi.Chattable) {
	if _, err := h.sender.Send(msg); err != nil {
		log.Printf("send message: %v", err)
	}
}

func firstName(u *tgbotapi.User) string {
	if u == nil {
		return ""
	}
	return u.FirstName
}

func displayName(name string) string {
	if name = strings.TrimSpace(name); name == "" {
		return session.DefaultUserName
	}
	return name
}
