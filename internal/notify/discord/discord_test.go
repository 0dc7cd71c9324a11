package discord

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/contentflowhq/contentflow/internal/notify"
)

type mockClient struct {
	calls   int
	channel string
	embed   *discordgo.MessageEmbed
	err     error
}

func (m *mockClient) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	m.calls++
	m.channel = channelID
	m.embed = embed
	return &discordgo.Message{}, m.err
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(Opts{ChannelID: "123"}); err == nil {
		t.Error("expected error for missing token")
	}
	if _, err := New(Opts{BotToken: "tok"}); err == nil {
		t.Error("expected error for missing channel")
	}
}

func TestNotify_SendsEmbed(t *testing.T) {
	mc := &mockClient{}
	n, err := New(Opts{Client: mc, ChannelID: "123"})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	err = n.Notify(context.Background(), notify.Event{
		Title:    "Publishing failed",
		Body:     "WordPress API returned 503",
		Severity: notify.SeverityError,
	})
	if err != nil {
		t.Fatalf("Notify() error: %v", err)
	}
	if mc.calls != 1 || mc.channel != "123" {
		t.Errorf("calls = %d channel = %q", mc.calls, mc.channel)
	}
	if mc.embed.Title != "Publishing failed" {
		t.Errorf("embed title = %q", mc.embed.Title)
	}
	if mc.embed.Color != severityColors[notify.SeverityError] {
		t.Errorf("embed color = %#x", mc.embed.Color)
	}
}

func TestNotify_Error(t *testing.T) {
	mc := &mockClient{err: errors.New("forbidden")}
	n, _ := New(Opts{Client: mc, ChannelID: "123"})

	if err := n.Notify(context.Background(), notify.Event{Title: "t"}); err == nil {
		t.Fatal("expected error from client")
	}
}
