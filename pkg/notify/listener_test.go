package notify

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/dealscope/pkg/domain"
	"github.com/umputun/dealscope/pkg/notify/mocks"
)

func TestListener_Execute(t *testing.T) {
	cmds := &mocks.CommandsMock{
		ForceScanFunc: func() bool { return true },
		ToggleModeFunc: func(context.Context) (domain.ModeState, error) {
			return domain.ModeState{Autonomous: true}, nil
		},
		SetModeFunc: func(_ context.Context, on bool) (domain.ModeState, error) {
			return domain.ModeState{Autonomous: on}, nil
		},
		StatusFunc: func(context.Context) (domain.Stats, error) {
			return domain.Stats{Cycles: 7}, nil
		},
		AddBlacklistTermFunc: func(_ context.Context, term string) (bool, error) {
			return term != "vape", nil
		},
		AddManualURLFunc: func(_ context.Context, rawURL string) (bool, error) {
			if rawURL == "https://bad" {
				return false, errors.New("invalid url & path")
			}
			return true, nil
		},
	}
	l := NewListener(NewTelegram(TelegramParams{Token: "t"}), cmds, 42, time.Second)
	ctx := context.Background()

	tests := []struct {
		in   string
		want string
	}{
		{"/scan", "🔎 Busca agendada"},
		{"/scan@dealbot", "🔎 Busca agendada"},
		{"/mode", "🤖 Modo autônomo: <b>ATIVADO</b>"},
		{"/auto off", "🤖 Modo autônomo: <b>DESATIVADO</b>"},
		{"/auto talvez", "Uso: /auto on|off"},
		{"/blacklist cigarro", "🚫 Termo bloqueado: cigarro"},
		{"/blacklist vape", "🚫 Termo já bloqueado: vape"},
		{"/blacklist", "Uso: /blacklist termo"},
		{"/add https://shopee.com.br/x-i.1.2", "➕ Link adicionado, será analisado na próxima busca"},
		{"https://www.amazon.com.br/dp/B09B8V1LZ3", "➕ Link adicionado, será analisado na próxima busca"},
		{"/add https://bad", "Erro: invalid url &amp; path"},
		{"/help", helpText},
		{"oi", ""},
		{"  ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, l.Execute(ctx, tt.in))
		})
	}

	assert.Contains(t, l.Execute(ctx, "/status"), "🔄 <b>Ciclos:</b> 7")
	require.Len(t, cmds.SetModeCalls(), 1)
	assert.False(t, cmds.SetModeCalls()[0].Autonomous)
	assert.Len(t, cmds.ForceScanCalls(), 2)
}

func TestListener_Run(t *testing.T) {
	api, server := newBotAPI(t)
	defer server.Close()

	var polls int32
	api.handler = func(method string, body map[string]any) (int, string) {
		if method != "getUpdates" {
			return http.StatusOK, `{"ok":true,"result":true}`
		}
		if atomic.AddInt32(&polls, 1) == 1 {
			return http.StatusOK, `{"ok":true,"result":[
				{"update_id":10,"message":{"message_id":1,"from":{"id":42},"chat":{"id":42},"text":"/scan"}},
				{"update_id":11,"message":{"message_id":2,"from":{"id":7},"chat":{"id":7},"text":"/scan"}},
				{"update_id":12,"callback_query":{"id":"cb1","from":{"id":42},"data":"approve:r1",
					"message":{"message_id":99,"chat":{"id":42}}}},
				{"update_id":13,"callback_query":{"id":"cb2","from":{"id":42},"data":"reject:r2",
					"message":{"message_id":100,"chat":{"id":42}}}},
				{"update_id":14,"callback_query":{"id":"cb3","from":{"id":9},"data":"reject:r3"}}
			]}`
		}
		assert.InDelta(t, 15, body["offset"], 0.1, "offset moves past handled updates")
		return http.StatusOK, `{"ok":true,"result":[]}`
	}

	cmds := &mocks.CommandsMock{
		ForceScanFunc: func() bool { return true },
		ApproveFunc:   func(context.Context, string) (bool, error) { return true, nil },
		RejectFunc:    func(context.Context, string) (bool, error) { return false, errors.New("storage down") },
	}
	tg := NewTelegram(TelegramParams{APIURL: server.URL, Token: "token"})
	l := NewListener(tg, cmds, 42, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&polls) >= 2 }, 5*time.Second, 10*time.Millisecond)
	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("listener didn't stop")
	}

	assert.Len(t, cmds.ForceScanCalls(), 1, "stranger ignored")
	require.Len(t, cmds.ApproveCalls(), 1)
	assert.Equal(t, "r1", cmds.ApproveCalls()[0].Ref)
	require.Len(t, cmds.RejectCalls(), 1)
	assert.Equal(t, "r2", cmds.RejectCalls()[0].Ref)

	replies := api.get("sendMessage")
	require.Len(t, replies, 1)
	assert.Equal(t, "42", replies[0]["chat_id"])

	answers := api.get("answerCallbackQuery")
	require.Len(t, answers, 2)
	assert.Equal(t, "✅ Publicado no canal", answers[0]["text"])
	assert.Equal(t, "Erro: storage down", answers[1]["text"])

	deleted := api.get("deleteMessage")
	require.Len(t, deleted, 1, "failed reject keeps the message")
	assert.InDelta(t, 99, deleted[0]["message_id"], 0.1)
}
