// Package discord implements the notify.Notifier for Discord.
package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/contentflowhq/contentflow/internal/notify"
)

// Severity embed colors (Discord uses integer RGB).
var severityColors = map[string]int{
	notify.SeveritySuccess: 0x36a64f,
	notify.SeverityError:   0xe01e5a,
	notify.SeverityInfo:    0x439fe0,
}

// discordClient abstracts the discordgo methods we use, enabling test mocks.
type discordClient interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Notifier posts pipeline events to a Discord channel.
type Notifier struct {
	client    discordClient
	channelID string
}

// Opts holds parameters for creating a Discord Notifier.
type Opts struct {
	BotToken  string
	ChannelID string
	// For testing: inject a mock client instead of a real session.
	Client discordClient
}

// New creates a Discord Notifier.
func New(opts Opts) (*Notifier, error) {
	if opts.Client == nil && opts.BotToken == "" {
		return nil, fmt.Errorf("discord: bot token is required")
	}
	if opts.ChannelID == "" {
		return nil, fmt.Errorf("discord: channel ID is required")
	}
	n := &Notifier{channelID: opts.ChannelID, client: opts.Client}
	if n.client == nil {
		session, err := discordgo.New("Bot " + opts.BotToken)
		if err != nil {
			return nil, fmt.Errorf("discord: create session: %w", err)
		}
		n.client = session
	}
	return n, nil
}

// Notify posts the event as an embed.
func (n *Notifier) Notify(ctx context.Context, ev notify.Event) error {
	embed := &discordgo.MessageEmbed{
		Title:       ev.Title,
		Description: ev.Body,
		Color:       severityColors[ev.Severity],
	}
	if _, err := n.client.ChannelMessageSendEmbed(n.channelID, embed, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("discord: send embed: %w", err)
	}
	return nil
}
