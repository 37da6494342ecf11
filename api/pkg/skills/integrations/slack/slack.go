// Package slack implements the builtin Slack skills on top of the Slack Web API.
package slack

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	goslack "github.com/slack-go/slack"

	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/clients"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/params"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/registry"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/types"
)

var ErrIntegrationRequired = errors.New("Integration ID is required for Slack operations")

const defaultChannelTypes = "public_channel,private_channel"

type Skills struct {
	clients clients.Factory
}

func New(clients clients.Factory) *Skills {
	return &Skills{clients: clients}
}

// Entries lists every Slack handler, keyed by skill name
func (s *Skills) Entries() []registry.Entry {
	return []registry.Entry{
		{Name: SkillSendMessage, Handler: s.wrap(false, s.sendMessage)},
		{Name: SkillListUsers, Handler: s.wrap(false, s.listUsers)},
		{Name: SkillGetUserInfo, Handler: s.wrap(false, s.getUserInfo)},
		{Name: SkillGetUsersInfo, Handler: s.wrap(false, s.getUsersInfo)},
		{Name: SkillListChannels, Handler: s.wrap(false, s.listChannels)},
		{Name: SkillGetMessages, Handler: s.wrap(false, s.getMessages)},
		{Name: SkillGetUsersInConversation, Handler: s.wrap(false, s.getUsersInConversation)},
		{Name: SkillGetConversationMetadata, Handler: s.wrap(false, s.getConversationMetadata)},
		{Name: SkillSearchMessages, Handler: s.wrap(true, s.searchMessages)},
		{Name: SkillSetStatus, Handler: s.wrap(true, s.setStatus)},
		{Name: SkillCreateReminder, Handler: s.wrap(true, s.createReminder)},
		{Name: SkillGetReminders, Handler: s.wrap(true, s.getReminders)},
	}
}

type handlerFunc func(ctx context.Context, client *goslack.Client, p params.Params) (any, error)

// wrap resolves the client for the integration and rewrites Slack API errors
// into messages the chatbot can relay to the user
func (s *Skills) wrap(asUser bool, fn handlerFunc) registry.Handler {
	return func(ctx context.Context, in map[string]any, sctx types.SkillExecutionContext) (any, error) {
		if sctx.IntegrationID == "" {
			return nil, ErrIntegrationRequired
		}

		var (
			client *goslack.Client
			err    error
		)
		if asUser {
			client, err = s.clients.SlackUser(ctx, sctx.IntegrationID)
		} else {
			client, err = s.clients.Slack(ctx, sctx.IntegrationID)
		}
		if err != nil {
			return nil, err
		}

		out, err := fn(ctx, client, params.Params(in))
		if err != nil {
			return nil, rewriteError(err)
		}
		return out, nil
	}
}

func rewriteError(err error) error {
	var rateLimited *goslack.RateLimitedError
	if errors.As(err, &rateLimited) {
		return errors.New("Rate limited by Slack. Please try again in a moment.")
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "channel_not_found"):
		return errors.New("Channel not found. Please check the channel name or ID.")
	case strings.Contains(msg, "not_in_channel"):
		return errors.New("Bot is not a member of this channel. Please invite the bot to the channel first.")
	case strings.Contains(msg, "invalid_auth"), strings.Contains(msg, "token_revoked"):
		return errors.New("Invalid Slack authentication. Please reconnect your Slack integration.")
	case strings.Contains(msg, "rate_limited"):
		return errors.New("Rate limited by Slack. Please try again in a moment.")
	case strings.Contains(msg, "user_not_found"), strings.Contains(msg, "users_not_found"):
		return errors.New("User not found. Please check the user ID.")
	case strings.Contains(msg, "paid_only"):
		return errors.New("Search functionality requires a paid Slack plan.")
	}
	return fmt.Errorf("Slack API error: %w", err)
}

func (s *Skills) sendMessage(ctx context.Context, client *goslack.Client, p params.Params) (any, error) {
	message, err := p.RequireString("message")
	if err != nil {
		return nil, err
	}

	channel := p.String("conversation_id")
	if channel == "" {
		channel = p.String("channel_name")
	}
	if channel == "" {
		channel, err = openConversation(ctx, client, p)
		if err != nil {
			return nil, err
		}
	}
	if channel == "" {
		return nil, errors.New("Must provide conversation_id, channel_name, user_ids or emails")
	}

	opts := []goslack.MsgOption{
		goslack.MsgOptionText(message, false),
		goslack.MsgOptionEnableLinkUnfurl(),
	}
	if ts := p.String("thread_ts"); ts != "" {
		opts = append(opts, goslack.MsgOptionTS(ts))
	}

	channelID, ts, err := client.PostMessageContext(ctx, channel, opts...)
	if err != nil {
		return nil, err
	}

	out := map[string]any{
		"success":    true,
		"message_ts": ts,
		"channel":    channelID,
		"text":       message,
	}
	if permalink, err := client.GetPermalinkContext(ctx, &goslack.PermalinkParameters{Channel: channelID, Ts: ts}); err == nil {
		out["permalink"] = permalink
	}
	return out, nil
}

// openConversation opens a DM or group DM with the users named by user_ids
// or emails, returning an empty ID when neither is given
func openConversation(ctx context.Context, client *goslack.Client, p params.Params) (string, error) {
	users := p.Strings("user_ids")
	for _, email := range p.Strings("emails") {
		user, err := client.GetUserByEmailContext(ctx, email)
		if err != nil {
			return "", fmt.Errorf("failed to find Slack user %s: %w", email, err)
		}
		users = append(users, user.ID)
	}
	if len(users) == 0 {
		return "", nil
	}

	channel, _, _, err := client.OpenConversationContext(ctx, &goslack.OpenConversationParameters{Users: users})
	if err != nil {
		return "", fmt.Errorf("failed to open conversation: %w", err)
	}
	return channel.ID, nil
}

// findChannel resolves "#name" or "name" to a conversation ID
func findChannel(ctx context.Context, client *goslack.Client, name, channelTypes string) (string, error) {
	name = strings.TrimPrefix(name, "#")
	cursor := ""
	for {
		channels, next, err := client.GetConversationsContext(ctx, &goslack.GetConversationsParameters{
			Cursor:          cursor,
			ExcludeArchived: true,
			Limit:           1000,
			Types:           strings.Split(channelTypes, ","),
		})
		if err != nil {
			return "", err
		}
		for _, ch := range channels {
			if ch.Name == name {
				return ch.ID, nil
			}
		}
		if next == "" {
			return "", fmt.Errorf("Channel #%s not found", name)
		}
		cursor = next
	}
}

// resolveConversation accepts conversation_id, channel_name, user_ids or emails
func resolveConversation(ctx context.Context, client *goslack.Client, p params.Params) (string, error) {
	if id := p.String("conversation_id"); id != "" {
		return id, nil
	}
	if name := p.String("channel_name"); name != "" {
		return findChannel(ctx, client, name, "public_channel,private_channel,mpim,im")
	}
	id, err := openConversation(ctx, client, p)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", errors.New("Could not resolve conversation - provide conversation_id, channel_name, or user_ids")
	}
	return id, nil
}

func formatUser(u *goslack.User) map[string]any {
	return map[string]any{
		"id":              u.ID,
		"name":            u.Name,
		"real_name":       u.RealName,
		"display_name":    u.Profile.DisplayName,
		"email":           u.Profile.Email,
		"phone":           u.Profile.Phone,
		"title":           u.Profile.Title,
		"status_text":     u.Profile.StatusText,
		"status_emoji":    u.Profile.StatusEmoji,
		"is_admin":        u.IsAdmin,
		"is_owner":        u.IsOwner,
		"is_bot":          u.IsBot,
		"timezone":        u.TZLabel,
		"timezone_offset": u.TZOffset,
	}
}

func formatChannel(ch *goslack.Channel) map[string]any {
	return map[string]any{
		"id":          ch.ID,
		"name":        ch.Name,
		"is_channel":  ch.IsChannel,
		"is_group":    ch.IsGroup,
		"is_im":       ch.IsIM,
		"is_mpim":     ch.IsMpIM,
		"is_private":  ch.IsPrivate,
		"is_archived": ch.IsArchived,
		"is_general":  ch.IsGeneral,
		"num_members": ch.NumMembers,
		"topic":       ch.Topic.Value,
		"purpose":     ch.Purpose.Value,
		"created":     int64(ch.Created),
	}
}

func (s *Skills) listUsers(ctx context.Context, client *goslack.Client, p params.Params) (any, error) {
	limit := p.Limit("limit", 200, 500)
	excludeBots := p.Bool("exclude_bots", true)

	users, err := client.GetUsersContext(ctx, goslack.GetUsersOptionLimit(limit))
	if err != nil {
		return nil, err
	}

	formatted := make([]map[string]any, 0, len(users))
	for i := range users {
		u := &users[i]
		if excludeBots && (u.IsBot || u.Deleted || u.ID == "USLACKBOT") {
			continue
		}
		formatted = append(formatted, formatUser(u))
		if len(formatted) == limit {
			break
		}
	}

	return map[string]any{
		"success":     true,
		"users":       formatted,
		"total_count": len(formatted),
	}, nil
}

func (s *Skills) getUserInfo(ctx context.Context, client *goslack.Client, p params.Params) (any, error) {
	userID, err := p.RequireString("user_id")
	if err != nil {
		return nil, err
	}

	user, err := client.GetUserInfoContext(ctx, userID)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"success": true,
		"user":    formatUser(user),
	}, nil
}

func (s *Skills) getUsersInfo(ctx context.Context, client *goslack.Client, p params.Params) (any, error) {
	ids, emails, usernames := p.Strings("user_ids"), p.Strings("emails"), p.Strings("usernames")
	if len(ids) == 0 && len(emails) == 0 && len(usernames) == 0 {
		return nil, errors.New("Must provide at least one of: user_ids, emails, or usernames")
	}

	var found []map[string]any

	if len(ids) > 0 {
		users, err := client.GetUsersInfoContext(ctx, ids...)
		if err != nil {
			return nil, err
		}
		for i := range *users {
			found = append(found, formatUser(&(*users)[i]))
		}
	}

	for _, email := range emails {
		user, err := client.GetUserByEmailContext(ctx, email)
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("email", email).Msg("failed to look up slack user by email")
			continue
		}
		found = append(found, formatUser(user))
	}

	if len(usernames) > 0 {
		all, err := client.GetUsersContext(ctx)
		if err != nil {
			return nil, err
		}
		byName := make(map[string]*goslack.User, len(all))
		for i := range all {
			byName[all[i].Name] = &all[i]
		}
		for _, name := range usernames {
			if u, ok := byName[strings.TrimPrefix(name, "@")]; ok {
				found = append(found, formatUser(u))
			}
		}
	}

	return map[string]any{
		"success":     true,
		"users":       found,
		"total_count": len(found),
	}, nil
}

func (s *Skills) listChannels(ctx context.Context, client *goslack.Client, p params.Params) (any, error) {
	channelTypes := p.String("types")
	if channelTypes == "" {
		channelTypes = defaultChannelTypes
	}

	channels, next, err := client.GetConversationsContext(ctx, &goslack.GetConversationsParameters{
		Cursor:          p.String("cursor"),
		ExcludeArchived: p.Bool("exclude_archived", true),
		Limit:           p.Limit("limit", 200, 1000),
		Types:           strings.Split(channelTypes, ","),
	})
	if err != nil {
		return nil, err
	}

	formatted := make([]map[string]any, 0, len(channels))
	for i := range channels {
		formatted = append(formatted, formatChannel(&channels[i]))
	}

	return map[string]any{
		"success":     true,
		"channels":    formatted,
		"total_count": len(formatted),
		"next_cursor": next,
	}, nil
}

func (s *Skills) getMessages(ctx context.Context, client *goslack.Client, p params.Params) (any, error) {
	channelID, err := resolveConversation(ctx, client, p)
	if err != nil {
		return nil, err
	}

	oldest, err := slackTimestamp(p.String("oldest_datetime"))
	if err != nil {
		return nil, fmt.Errorf("oldest_datetime: %w", err)
	}
	latest, err := slackTimestamp(p.String("latest_datetime"))
	if err != nil {
		return nil, fmt.Errorf("latest_datetime: %w", err)
	}

	resp, err := client.GetConversationHistoryContext(ctx, &goslack.GetConversationHistoryParameters{
		ChannelID: channelID,
		Cursor:    p.String("cursor"),
		Limit:     p.Limit("limit", 20, 1000),
		Oldest:    oldest,
		Latest:    latest,
	})
	if err != nil {
		return nil, err
	}

	messages := make([]map[string]any, 0, len(resp.Messages))
	for _, m := range resp.Messages {
		files := make([]map[string]any, 0, len(m.Files))
		for _, f := range m.Files {
			files = append(files, map[string]any{
				"id":       f.ID,
				"name":     f.Name,
				"mimetype": f.Mimetype,
				"size":     f.Size,
				"url":      f.URLPrivate,
			})
		}
		messages = append(messages, map[string]any{
			"ts":          m.Timestamp,
			"user":        m.User,
			"text":        m.Text,
			"type":        m.Type,
			"subtype":     m.SubType,
			"thread_ts":   m.ThreadTimestamp,
			"reply_count": m.ReplyCount,
			"reactions":   m.Reactions,
			"files":       files,
			"timestamp":   isoTime(m.Timestamp),
		})
	}

	return map[string]any{
		"success":     true,
		"channel":     channelID,
		"messages":    messages,
		"total_count": len(messages),
		"has_more":    resp.HasMore,
		"next_cursor": resp.ResponseMetaData.NextCursor,
	}, nil
}

func (s *Skills) getUsersInConversation(ctx context.Context, client *goslack.Client, p params.Params) (any, error) {
	channelID := p.String("conversation_id")
	if channelID == "" {
		name := p.String("channel_name")
		if name == "" {
			return nil, errors.New("Must provide either conversation_id or channel_name")
		}
		var err error
		if channelID, err = findChannel(ctx, client, name, defaultChannelTypes); err != nil {
			return nil, err
		}
	}

	memberIDs, next, err := client.GetUsersInConversationContext(ctx, &goslack.GetUsersInConversationParameters{
		ChannelID: channelID,
		Cursor:    p.String("cursor"),
		Limit:     p.Limit("limit", 200, 500),
	})
	if err != nil {
		return nil, err
	}

	users := make([]map[string]any, 0, len(memberIDs))
	if len(memberIDs) > 0 {
		details, err := client.GetUsersInfoContext(ctx, memberIDs...)
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("channel", channelID).Msg("failed to fetch slack member details")
			for _, id := range memberIDs {
				users = append(users, map[string]any{"id": id})
			}
		} else {
			for i := range *details {
				users = append(users, formatUser(&(*details)[i]))
			}
		}
	}

	return map[string]any{
		"success":     true,
		"channel":     channelID,
		"users":       users,
		"total_count": len(users),
		"next_cursor": next,
	}, nil
}

func (s *Skills) getConversationMetadata(ctx context.Context, client *goslack.Client, p params.Params) (any, error) {
	channelID, err := resolveConversation(ctx, client, p)
	if err != nil {
		return nil, err
	}

	ch, err := client.GetConversationInfoContext(ctx, &goslack.GetConversationInfoInput{
		ChannelID:         channelID,
		IncludeNumMembers: true,
	})
	if err != nil {
		return nil, err
	}

	conversation := formatChannel(ch)
	conversation["topic"] = map[string]any{
		"value":    ch.Topic.Value,
		"creator":  ch.Topic.Creator,
		"last_set": int64(ch.Topic.LastSet),
	}
	conversation["purpose"] = map[string]any{
		"value":    ch.Purpose.Value,
		"creator":  ch.Purpose.Creator,
		"last_set": int64(ch.Purpose.LastSet),
	}
	conversation["creator"] = ch.Creator

	return map[string]any{
		"success":      true,
		"conversation": conversation,
	}, nil
}

func (s *Skills) searchMessages(ctx context.Context, client *goslack.Client, p params.Params) (any, error) {
	query, err := p.RequireString("query")
	if err != nil {
		return nil, err
	}

	sp := goslack.NewSearchParameters()
	sp.Sort = "score"
	if sort := p.String("sort"); sort != "" {
		sp.Sort = sort
	}
	sp.SortDirection = "desc"
	if dir := p.String("sort_dir"); dir != "" {
		sp.SortDirection = dir
	}
	sp.Count = p.Limit("limit", 20, 100)

	results, err := client.SearchMessagesContext(ctx, query, sp)
	if err != nil {
		return nil, err
	}

	messages := make([]map[string]any, 0, len(results.Matches))
	for _, m := range results.Matches {
		messages = append(messages, map[string]any{
			"ts":       m.Timestamp,
			"user":     m.User,
			"username": m.Username,
			"text":     m.Text,
			"type":     m.Type,
			"channel": map[string]any{
				"id":         m.Channel.ID,
				"name":       m.Channel.Name,
				"is_private": m.Channel.IsPrivate,
			},
			"permalink": m.Permalink,
			"timestamp": isoTime(m.Timestamp),
		})
	}

	return map[string]any{
		"success":     true,
		"messages":    messages,
		"total_count": results.Total,
		"query":       query,
	}, nil
}

func (s *Skills) setStatus(ctx context.Context, client *goslack.Client, p params.Params) (any, error) {
	text := p.String("status_text")
	emoji := p.String("status_emoji")
	expiration := int64(p.Int("status_expiration", 0))

	if err := client.SetUserCustomStatusContext(ctx, text, emoji, expiration); err != nil {
		return nil, err
	}

	return map[string]any{
		"success": true,
		"status": map[string]any{
			"text":       text,
			"emoji":      emoji,
			"expiration": expiration,
		},
	}, nil
}

func (s *Skills) createReminder(ctx context.Context, client *goslack.Client, p params.Params) (any, error) {
	text, err := p.RequireString("text")
	if err != nil {
		return nil, err
	}
	when, err := p.RequireString("time")
	if err != nil {
		return nil, err
	}

	var reminder *goslack.Reminder
	if channel := p.String("channel"); channel != "" {
		reminder, err = client.AddChannelReminderContext(ctx, channel, text, when)
	} else {
		reminder, err = client.AddUserReminderContext(ctx, p.String("user"), text, when)
	}
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"success":  true,
		"reminder": formatReminder(reminder),
	}, nil
}

func (s *Skills) getReminders(ctx context.Context, client *goslack.Client, _ params.Params) (any, error) {
	reminders, err := client.ListRemindersContext(ctx)
	if err != nil {
		return nil, err
	}

	pending := make([]map[string]any, 0, len(reminders))
	for _, r := range reminders {
		if r.CompleteTS != 0 {
			continue
		}
		pending = append(pending, formatReminder(r))
	}

	return map[string]any{
		"success":     true,
		"reminders":   pending,
		"total_count": len(pending),
	}, nil
}

func formatReminder(r *goslack.Reminder) map[string]any {
	out := map[string]any{
		"id":        r.ID,
		"text":      r.Text,
		"user":      r.User,
		"creator":   r.Creator,
		"recurring": r.Recurring,
	}
	if r.Time > 0 {
		out["time"] = time.Unix(int64(r.Time), 0).UTC().Format(time.RFC3339)
	}
	return out
}

var datetimeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// slackTimestamp converts a datetime into the unix seconds string Slack
// expects for oldest/latest
func slackTimestamp(value string) (string, error) {
	if value == "" {
		return "", nil
	}
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return strconv.FormatInt(t.Unix(), 10), nil
		}
	}
	return "", fmt.Errorf("unrecognised datetime %q, use YYYY-MM-DD HH:MM:SS", value)
}

func isoTime(ts string) string {
	f, err := strconv.ParseFloat(ts, 64)
	if err != nil {
		return ""
	}
	sec := int64(f)
	return time.Unix(sec, int64((f-float64(sec))*1e9)).UTC().Format(time.RFC3339)
}
