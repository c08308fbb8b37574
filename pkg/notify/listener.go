package notify

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/dealscope/pkg/domain"
)

//go:generate moq -out mocks/commands.go -pkg mocks -skip-ensure -fmt goimports . Commands

// Commands is what the listener drives, implemented by the scheduler
type Commands interface {
	ForceScan() bool
	ToggleMode(ctx context.Context) (domain.ModeState, error)
	SetMode(ctx context.Context, autonomous bool) (domain.ModeState, error)
	AddBlacklistTerm(ctx context.Context, term string) (bool, error)
	AddManualURL(ctx context.Context, rawURL string) (bool, error)
	Approve(ctx context.Context, ref string) (bool, error)
	Reject(ctx context.Context, ref string) (bool, error)
	Status(ctx context.Context) (domain.Stats, error)
}

type update struct {
	UpdateID      int64          `json:"update_id"`
	Message       *message       `json:"message"`
	CallbackQuery *callbackQuery `json:"callback_query"`
}

type message struct {
	MessageID int64  `json:"message_id"`
	From      *user  `json:"from"`
	Chat      chat   `json:"chat"`
	Text      string `json:"text"`
}

type user struct {
	ID int64 `json:"id"`
}

type chat struct {
	ID int64 `json:"id"`
}

type callbackQuery struct {
	ID      string   `json:"id"`
	From    user     `json:"from"`
	Message *message `json:"message"`
	Data    string   `json:"data"`
}

const helpText = `<b>Comandos</b>
/scan - buscar ofertas agora
/mode - alternar modo autônomo
/auto on|off - definir modo autônomo
/status - relatório de atividade
/blacklist termo - bloquear termo
/add link - enviar produto para análise`

// Listener long-polls bot updates and maps admin commands and review buttons to Commands
type Listener struct {
	bot         *Telegram
	commands    Commands
	adminID     int64
	pollTimeout time.Duration
	retryDelay  time.Duration
	offset      int64
	pollClient  *http.Client
}

// NewListener makes a listener accepting only adminID
func NewListener(bot *Telegram, commands Commands, adminID int64, pollTimeout time.Duration) *Listener {
	if pollTimeout <= 0 {
		pollTimeout = 30 * time.Second
	}
	return &Listener{bot: bot, commands: commands, adminID: adminID, pollTimeout: pollTimeout,
		retryDelay: 5 * time.Second, pollClient: &http.Client{Timeout: pollTimeout + 10*time.Second}}
}

// Run polls until ctx is canceled
func (l *Listener) Run(ctx context.Context) error {
	lgr.Printf("[INFO] telegram listener started for admin %d", l.adminID)
	for {
		updates, err := l.poll(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lgr.Printf("[WARN] telegram poll failed: %v", err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(l.retryDelay):
			}
			continue
		}
		for _, u := range updates {
			if u.UpdateID >= l.offset {
				l.offset = u.UpdateID + 1
			}
			l.handle(ctx, u)
		}
	}
}

func (l *Listener) poll(ctx context.Context) ([]update, error) {
	var updates []update
	bot := *l.bot
	bot.client = l.pollClient
	err := bot.call(ctx, "getUpdates", map[string]any{
		"offset":          l.offset,
		"timeout":         int(l.pollTimeout.Seconds()),
		"allowed_updates": []string{"message", "callback_query"},
	}, &updates)
	return updates, err
}

func (l *Listener) handle(ctx context.Context, u update) {
	switch {
	case u.CallbackQuery != nil:
		if u.CallbackQuery.From.ID != l.adminID {
			lgr.Printf("[DEBUG] ignored callback from %d", u.CallbackQuery.From.ID)
			return
		}
		l.handleCallback(ctx, u.CallbackQuery)
	case u.Message != nil && u.Message.From != nil:
		if u.Message.From.ID != l.adminID {
			lgr.Printf("[DEBUG] ignored message from %d", u.Message.From.ID)
			return
		}
		reply := l.Execute(ctx, u.Message.Text)
		if reply == "" {
			return
		}
		if err := l.bot.Reply(ctx, u.Message.Chat.ID, reply); err != nil {
			lgr.Printf("[WARN] can't reply to %d: %v", u.Message.Chat.ID, err)
		}
	}
}

func (l *Listener) handleCallback(ctx context.Context, cb *callbackQuery) {
	action, ref, _ := strings.Cut(cb.Data, ":")
	var changed bool
	var err error
	var toast string
	switch action {
	case "approve":
		changed, err = l.commands.Approve(ctx, ref)
		toast = "✅ Publicado no canal"
	case "reject":
		changed, err = l.commands.Reject(ctx, ref)
		toast = "❌ Rejeitado"
	default:
		lgr.Printf("[DEBUG] unknown callback %q", cb.Data)
		return
	}

	switch {
	case err != nil:
		lgr.Printf("[WARN] %s %s failed: %v", action, ref, err)
		toast = "Erro: " + err.Error()
	case !changed:
		toast = "Oferta já resolvida"
	}
	if aerr := l.bot.AnswerCallback(ctx, cb.ID, truncate(toast, 200)); aerr != nil {
		lgr.Printf("[DEBUG] can't answer callback: %v", aerr)
	}
	// failed actions keep the message, the admin can press again
	if err == nil && cb.Message != nil {
		if derr := l.bot.DeleteMessage(ctx, cb.Message.Chat.ID, cb.Message.MessageID); derr != nil {
			lgr.Printf("[DEBUG] can't delete review message: %v", derr)
		}
	}
}

// Execute runs a text command and returns the html reply, plain links are added as manual urls
func (l *Listener) Execute(ctx context.Context, text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	if strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://") {
		text = "/add " + text
	}
	if !strings.HasPrefix(text, "/") {
		return ""
	}

	cmd, arg, _ := strings.Cut(text, " ")
	cmd, _, _ = strings.Cut(cmd, "@") // /scan@botname in groups
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "/scan":
		if l.commands.ForceScan() {
			return "🔎 Busca agendada"
		}
		return "🔎 Busca já agendada"
	case "/mode":
		state, err := l.commands.ToggleMode(ctx)
		if err != nil {
			return "Erro: " + clean(err.Error())
		}
		return modeText(state)
	case "/auto":
		var on bool
		switch strings.ToLower(arg) {
		case "on", "sim", "1":
			on = true
		case "off", "nao", "não", "0":
			on = false
		default:
			return "Uso: /auto on|off"
		}
		state, err := l.commands.SetMode(ctx, on)
		if err != nil {
			return "Erro: " + clean(err.Error())
		}
		return modeText(state)
	case "/status":
		stats, err := l.commands.Status(ctx)
		if err != nil {
			return "Erro: " + clean(err.Error())
		}
		return RenderStatus(stats)
	case "/blacklist":
		if arg == "" {
			return "Uso: /blacklist termo"
		}
		added, err := l.commands.AddBlacklistTerm(ctx, arg)
		if err != nil {
			return "Erro: " + clean(err.Error())
		}
		if !added {
			return fmt.Sprintf("🚫 Termo já bloqueado: %s", clean(arg))
		}
		return fmt.Sprintf("🚫 Termo bloqueado: %s", clean(arg))
	case "/add":
		if arg == "" {
			return "Uso: /add link"
		}
		added, err := l.commands.AddManualURL(ctx, arg)
		if err != nil {
			return "Erro: " + clean(err.Error())
		}
		if !added {
			return "➕ Link já está na fila"
		}
		return "➕ Link adicionado, será analisado na próxima busca"
	default:
		return helpText
	}
}

func modeText(state domain.ModeState) string {
	if state.Autonomous {
		return "🤖 Modo autônomo: <b>ATIVADO</b>"
	}
	return "🤖 Modo autônomo: <b>DESATIVADO</b>"
}
