// Package discord implements the builtin Discord skills on top of the Discord
// REST API, acting as the bot installed in the tenant's server.
package discord

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/clients"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/params"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/registry"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/types"
)

var (
	ErrIntegrationRequired = errors.New("Integration ID is required for Discord operations")
	ErrUnknownGuild        = errors.New("Could not determine Discord server ID")
)

var channelTypes = map[string]discordgo.ChannelType{
	"text":     discordgo.ChannelTypeGuildText,
	"voice":    discordgo.ChannelTypeGuildVoice,
	"category": discordgo.ChannelTypeGuildCategory,
	"news":     discordgo.ChannelTypeGuildNews,
	"stage":    discordgo.ChannelTypeGuildStageVoice,
}

type Skills struct {
	clients clients.Factory
}

func New(clients clients.Factory) *Skills {
	return &Skills{clients: clients}
}

func (s *Skills) Entries() []registry.Entry {
	return []registry.Entry{
		{Name: SkillSendMessage, Handler: s.wrap(s.sendMessage)},
		{Name: SkillListChannels, Handler: s.wrap(s.listChannels)},
		{Name: SkillGetMessages, Handler: s.wrap(s.getMessages)},
		{Name: SkillListMembers, Handler: s.wrap(s.listMembers)},
		{Name: SkillGetUserInfo, Handler: s.wrap(s.getUserInfo)},
		{Name: SkillManageRoles, Handler: s.wrap(s.manageRoles)},
		{Name: SkillListRoles, Handler: s.wrap(s.listRoles)},
		{Name: SkillCreateChannel, Handler: s.wrap(s.createChannel)},
		{Name: SkillSendEmbed, Handler: s.wrap(s.sendEmbed)},
		{Name: SkillAddReaction, Handler: s.wrap(s.addReaction)},
		{Name: SkillTestConnection, Handler: s.wrap(s.testConnection)},
		{Name: SkillEditMessage, Handler: s.wrap(s.editMessage)},
		{Name: SkillDeleteMessage, Handler: s.wrap(s.deleteMessage)},
	}
}

type handlerFunc func(ctx context.Context, bot *clients.DiscordBot, p params.Params) (any, error)

func (s *Skills) wrap(fn handlerFunc) registry.Handler {
	return func(ctx context.Context, in map[string]any, sctx types.SkillExecutionContext) (any, error) {
		if sctx.IntegrationID == "" {
			return nil, ErrIntegrationRequired
		}

		bot, err := s.clients.Discord(ctx, sctx.IntegrationID)
		if err != nil {
			return nil, err
		}

		out, err := fn(ctx, bot, params.Params(in))
		if err != nil {
			return nil, rewriteError(err)
		}
		return out, nil
	}
}

func rewriteError(err error) error {
	var rateLimited *discordgo.RateLimitError
	if errors.As(err, &rateLimited) {
		return errors.New("Discord API rate limit exceeded. Please try again in a few moments.")
	}

	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) || restErr.Response == nil {
		return err
	}

	switch restErr.Response.StatusCode {
	case http.StatusUnauthorized:
		return errors.New("Discord bot authentication failed. The bot token may be invalid or the bot may have been removed from the server. Please reconnect your Discord integration.")
	case http.StatusForbidden:
		return errors.New("Discord bot lacks permissions for this operation. Please check the bot's permissions in your Discord server.")
	case http.StatusNotFound:
		return errors.New("Discord resource not found. The channel, user, or server may not exist or the bot may not have access to it.")
	case http.StatusTooManyRequests:
		return errors.New("Discord API rate limit exceeded. Please try again in a few moments.")
	}

	msg := string(restErr.ResponseBody)
	if restErr.Message != nil && restErr.Message.Message != "" {
		msg = restErr.Message.Message
	}
	return fmt.Errorf("Discord API request failed: %d %s", restErr.Response.StatusCode, msg)
}

// guild prefers the guild_id parameter over the server the bot was installed in
func guild(bot *clients.DiscordBot, p params.Params) (string, error) {
	if id := p.String("guild_id"); id != "" {
		return id, nil
	}
	if bot.GuildID != "" {
		return bot.GuildID, nil
	}
	return "", ErrUnknownGuild
}

func formatUser(u *discordgo.User) map[string]any {
	if u == nil {
		return nil
	}
	return map[string]any{
		"id":            u.ID,
		"username":      u.Username,
		"global_name":   u.GlobalName,
		"discriminator": u.Discriminator,
		"avatar":        u.Avatar,
	}
}

func formatMember(m *discordgo.Member) map[string]any {
	return map[string]any{
		"user":          formatUser(m.User),
		"nick":          m.Nick,
		"roles":         m.Roles,
		"joined_at":     m.JoinedAt,
		"premium_since": m.PremiumSince,
	}
}

func formatChannel(ch *discordgo.Channel) map[string]any {
	return map[string]any{
		"id":        ch.ID,
		"name":      ch.Name,
		"type":      int(ch.Type),
		"topic":     ch.Topic,
		"position":  ch.Position,
		"parent_id": ch.ParentID,
		"nsfw":      ch.NSFW,
	}
}

func (s *Skills) sendMessage(ctx context.Context, bot *clients.DiscordBot, p params.Params) (any, error) {
	message, err := p.RequireString("message")
	if err != nil {
		return nil, err
	}

	channelID, userID := p.String("channel_id"), p.String("user_id")
	if channelID == "" && userID == "" {
		return nil, errors.New("Either channel_id or user_id must be provided")
	}

	if channelID == "" {
		dm, err := bot.UserChannelCreate(userID, discordgo.WithContext(ctx))
		if err != nil {
			return nil, err
		}
		channelID = dm.ID
	}

	send := &discordgo.MessageSend{Content: message}
	if embed := p.Map("embed"); embed != nil {
		e := params.Params(embed)
		send.Embeds = []*discordgo.MessageEmbed{{
			Title:       e.String("title"),
			Description: e.String("description"),
			Color:       e.Int("color", 0),
			URL:         e.String("url"),
		}}
	}

	msg, err := bot.ChannelMessageSendComplex(channelID, send, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"success":    true,
		"message_id": msg.ID,
		"channel_id": msg.ChannelID,
		"content":    msg.Content,
		"timestamp":  msg.Timestamp,
	}, nil
}

func (s *Skills) listChannels(ctx context.Context, bot *clients.DiscordBot, p params.Params) (any, error) {
	guildID, err := guild(bot, p)
	if err != nil {
		return nil, err
	}

	channels, err := bot.GuildChannels(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	filter, filtered := channelTypes[p.String("channel_type")]
	formatted := make([]map[string]any, 0, len(channels))
	for _, ch := range channels {
		if filtered && ch.Type != filter {
			continue
		}
		formatted = append(formatted, formatChannel(ch))
	}

	return map[string]any{
		"success":     true,
		"channels":    formatted,
		"guild_id":    guildID,
		"total_count": len(formatted),
	}, nil
}

func (s *Skills) getMessages(ctx context.Context, bot *clients.DiscordBot, p params.Params) (any, error) {
	channelID, err := p.RequireString("channel_id")
	if err != nil {
		return nil, err
	}

	messages, err := bot.ChannelMessages(channelID, p.Limit("limit", 50, 100), p.String("before"), p.String("after"), "",
		discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	formatted := make([]map[string]any, 0, len(messages))
	for _, m := range messages {
		formatted = append(formatted, map[string]any{
			"id":               m.ID,
			"content":          m.Content,
			"author":           formatUser(m.Author),
			"timestamp":        m.Timestamp,
			"edited_timestamp": m.EditedTimestamp,
			"embeds":           m.Embeds,
			"attachments":      m.Attachments,
			"reactions":        m.Reactions,
		})
	}

	return map[string]any{
		"success":     true,
		"messages":    formatted,
		"channel_id":  channelID,
		"total_count": len(formatted),
	}, nil
}

func (s *Skills) listMembers(ctx context.Context, bot *clients.DiscordBot, p params.Params) (any, error) {
	guildID, err := guild(bot, p)
	if err != nil {
		return nil, err
	}

	members, err := bot.GuildMembers(guildID, p.String("after"), p.Limit("limit", 100, 1000), discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	formatted := make([]map[string]any, 0, len(members))
	for _, m := range members {
		formatted = append(formatted, formatMember(m))
	}

	return map[string]any{
		"success":     true,
		"members":     formatted,
		"guild_id":    guildID,
		"total_count": len(formatted),
	}, nil
}

func (s *Skills) getUserInfo(ctx context.Context, bot *clients.DiscordBot, p params.Params) (any, error) {
	userID, err := p.RequireString("user_id")
	if err != nil {
		return nil, err
	}

	user, err := bot.User(userID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	info := formatUser(user)
	info["bot"] = user.Bot
	info["system"] = user.System
	info["public_flags"] = int(user.PublicFlags)

	out := map[string]any{
		"success": true,
		"user":    info,
		"member":  nil,
	}

	// membership is best effort, the user may not be in the guild
	if p.String("guild_id") != "" {
		member, err := bot.GuildMember(p.String("guild_id"), userID, discordgo.WithContext(ctx))
		if err != nil {
			log.Ctx(ctx).Debug().Err(err).Str("user_id", userID).Msg("failed to get discord guild member")
		} else {
			out["member"] = formatMember(member)
		}
	}

	return out, nil
}

func (s *Skills) manageRoles(ctx context.Context, bot *clients.DiscordBot, p params.Params) (any, error) {
	userID, err := p.RequireString("user_id")
	if err != nil {
		return nil, err
	}
	roleID, err := p.RequireString("role_id")
	if err != nil {
		return nil, err
	}
	action, err := p.RequireString("action")
	if err != nil {
		return nil, err
	}
	guildID, err := guild(bot, p)
	if err != nil {
		return nil, err
	}

	opts := []discordgo.RequestOption{discordgo.WithContext(ctx)}
	reason := p.String("reason")
	if reason != "" {
		opts = append(opts, discordgo.WithAuditLogReason(reason))
	}

	switch action {
	case "add":
		err = bot.GuildMemberRoleAdd(guildID, userID, roleID, opts...)
	case "remove":
		err = bot.GuildMemberRoleRemove(guildID, userID, roleID, opts...)
	default:
		return nil, fmt.Errorf("action must be add or remove, got %q", action)
	}
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"success":  true,
		"action":   action,
		"user_id":  userID,
		"role_id":  roleID,
		"guild_id": guildID,
		"reason":   reason,
	}, nil
}

func (s *Skills) listRoles(ctx context.Context, bot *clients.DiscordBot, p params.Params) (any, error) {
	guildID, err := guild(bot, p)
	if err != nil {
		return nil, err
	}

	roles, err := bot.GuildRoles(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	formatted := make([]map[string]any, 0, len(roles))
	for _, r := range roles {
		formatted = append(formatted, map[string]any{
			"id":          r.ID,
			"name":        r.Name,
			"color":       r.Color,
			"hoist":       r.Hoist,
			"position":    r.Position,
			"permissions": r.Permissions,
			"managed":     r.Managed,
			"mentionable": r.Mentionable,
		})
	}

	return map[string]any{
		"success":     true,
		"roles":       formatted,
		"guild_id":    guildID,
		"total_count": len(formatted),
	}, nil
}

func (s *Skills) createChannel(ctx context.Context, bot *clients.DiscordBot, p params.Params) (any, error) {
	name, err := p.RequireString("name")
	if err != nil {
		return nil, err
	}
	if !p.Has("type") {
		return nil, errors.New("type is required")
	}
	guildID, err := guild(bot, p)
	if err != nil {
		return nil, err
	}

	channel, err := bot.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name:     name,
		Type:     discordgo.ChannelType(p.Int("type", 0)),
		Topic:    p.String("topic"),
		ParentID: p.String("parent_id"),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"success":  true,
		"channel":  formatChannel(channel),
		"guild_id": guildID,
	}, nil
}

func (s *Skills) sendEmbed(ctx context.Context, bot *clients.DiscordBot, p params.Params) (any, error) {
	channelID, err := p.RequireString("channel_id")
	if err != nil {
		return nil, err
	}
	title, err := p.RequireString("title")
	if err != nil {
		return nil, err
	}

	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: p.String("description"),
		Color:       p.Int("color", 0),
		URL:         p.String("url"),
	}
	if u := p.String("thumbnail_url"); u != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: u}
	}
	if u := p.String("image_url"); u != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: u}
	}
	if text := p.String("footer_text"); text != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: text}
	}

	msg, err := bot.ChannelMessageSendEmbed(channelID, embed, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"success":    true,
		"message_id": msg.ID,
		"channel_id": msg.ChannelID,
		"embeds":     msg.Embeds,
		"timestamp":  msg.Timestamp,
	}, nil
}

func (s *Skills) addReaction(ctx context.Context, bot *clients.DiscordBot, p params.Params) (any, error) {
	channelID, err := p.RequireString("channel_id")
	if err != nil {
		return nil, err
	}
	messageID, err := p.RequireString("message_id")
	if err != nil {
		return nil, err
	}
	emoji, err := p.RequireString("emoji")
	if err != nil {
		return nil, err
	}

	if err := bot.MessageReactionAdd(channelID, messageID, emoji, discordgo.WithContext(ctx)); err != nil {
		return nil, err
	}

	return map[string]any{
		"success":    true,
		"channel_id": channelID,
		"message_id": messageID,
		"emoji":      emoji,
	}, nil
}

// testConnection reports failures in the result instead of failing the
// execution so the chatbot can show what is wrong
func (s *Skills) testConnection(ctx context.Context, bot *clients.DiscordBot, p params.Params) (any, error) {
	failed := func(err error) map[string]any {
		return map[string]any{
			"success": false,
			"error":   rewriteError(err).Error(),
			"message": "Discord bot connection failed. Please check your integration settings.",
		}
	}

	me, err := bot.User("@me", discordgo.WithContext(ctx))
	if err != nil {
		return failed(err), nil
	}
	guildID, err := guild(bot, p)
	if err != nil {
		return failed(err), nil
	}
	g, err := bot.Guild(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return failed(err), nil
	}
	channels, err := bot.GuildChannels(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return failed(err), nil
	}

	return map[string]any{
		"success":  true,
		"bot_user": formatUser(me),
		"guild": map[string]any{
			"id":           g.ID,
			"name":         g.Name,
			"member_count": g.MemberCount,
		},
		"channels_count": len(channels),
		"message":        "Discord bot connection successful!",
	}, nil
}

func (s *Skills) editMessage(ctx context.Context, bot *clients.DiscordBot, p params.Params) (any, error) {
	channelID, err := p.RequireString("channel_id")
	if err != nil {
		return nil, err
	}
	messageID, err := p.RequireString("message_id")
	if err != nil {
		return nil, err
	}
	content, err := p.RequireString("new_content")
	if err != nil {
		return nil, err
	}

	msg, err := bot.ChannelMessageEdit(channelID, messageID, content, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"success":          true,
		"message_id":       msg.ID,
		"channel_id":       msg.ChannelID,
		"content":          msg.Content,
		"edited_timestamp": msg.EditedTimestamp,
	}, nil
}

func (s *Skills) deleteMessage(ctx context.Context, bot *clients.DiscordBot, p params.Params) (any, error) {
	channelID, err := p.RequireString("channel_id")
	if err != nil {
		return nil, err
	}
	messageID, err := p.RequireString("message_id")
	if err != nil {
		return nil, err
	}

	if err := bot.ChannelMessageDelete(channelID, messageID, discordgo.WithContext(ctx)); err != nil {
		return nil, err
	}

	return map[string]any{
		"success":    true,
		"channel_id": channelID,
		"message_id": messageID,
		"deleted_at": time.Now().UTC().Format(time.RFC3339),
	}, nil
}
