package slack

import (
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/schema"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/types"
)

const Category = "slack"

const (
	SkillSendMessage             = "slack_send_message"
	SkillListUsers               = "slack_list_users"
	SkillGetUserInfo             = "slack_get_user_info"
	SkillGetUsersInfo            = "slack_get_users_info"
	SkillListChannels            = "slack_list_channels"
	SkillGetMessages             = "slack_get_messages"
	SkillGetUsersInConversation  = "slack_get_users_in_conversation"
	SkillGetConversationMetadata = "slack_get_conversation_metadata"
	SkillSearchMessages          = "slack_search_messages"
	SkillSetStatus               = "slack_set_status"
	SkillCreateReminder          = "slack_create_reminder"
	SkillGetReminders            = "slack_get_reminders"
)

func definition(name, displayName, description string, parameters *types.ParameterSchema) types.SkillDefinition {
	return types.SkillDefinition{
		Name:            name,
		DisplayName:     displayName,
		Description:     description,
		Category:        Category,
		IntegrationType: types.IntegrationTypeSlack,
		Parameters:      parameters,
	}
}

func conversationTarget() map[string]*types.ParameterSchema {
	return map[string]*types.ParameterSchema{
		"channel_name": schema.String("Channel name (e.g., #general)").WithExample("#general"),
		"conversation_id": schema.String("Conversation ID (preferred over channel_name)").
			WithExample("C1234567890"),
		"user_ids": schema.Strings("Slack user IDs of a direct or group conversation").
			WithExample([]string{"U1234567890"}),
		"emails": schema.Strings("Email addresses of a direct or group conversation").
			WithExample([]string{"user@example.com"}),
	}
}

func with(props map[string]*types.ParameterSchema, extra map[string]*types.ParameterSchema) map[string]*types.ParameterSchema {
	for k, v := range extra {
		props[k] = v
	}
	return props
}

func Definitions() []types.SkillDefinition {
	return []types.SkillDefinition{
		definition(SkillSendMessage, "Send Slack Message",
			"Send a message to a channel, user, or group of users",
			schema.Object(with(conversationTarget(), map[string]*types.ParameterSchema{
				"message":   schema.String("The content of the message to send").WithExample("Hello from Syllabi!"),
				"thread_ts": schema.String("Timestamp of the parent message to reply in a thread").WithExample("1234567890.123456"),
			}), "message"),
		),
		definition(SkillListUsers, "List Slack Users",
			"List all users in the Slack workspace",
			schema.Object(map[string]*types.ParameterSchema{
				"exclude_bots": schema.Boolean("Whether to exclude bots from the results").WithExample(true),
				"limit":        schema.Integer("Maximum number of users to return (max 500)").WithRange(1, 500).WithExample(50),
			}),
		),
		definition(SkillGetUserInfo, "Get Slack User Info",
			"Get information about a specific Slack user",
			schema.Object(map[string]*types.ParameterSchema{
				"user_id": schema.String("The Slack user ID to get information for").WithExample("U1234567890"),
			}, "user_id"),
		),
		definition(SkillGetUsersInfo, "Get Multiple Users Info",
			"Get information about multiple Slack users by ID, username, or email",
			schema.Object(map[string]*types.ParameterSchema{
				"user_ids":  schema.Strings("The Slack user IDs to get information for").WithExample([]string{"U1234567890"}),
				"emails":    schema.Strings("Email addresses to look up users by").WithExample([]string{"user@example.com"}),
				"usernames": schema.Strings("Usernames to look up (prefer user_ids or emails)").WithExample([]string{"john.doe"}),
			}),
		),
		definition(SkillListChannels, "List Slack Channels",
			"List channels in the Slack workspace",
			schema.Object(map[string]*types.ParameterSchema{
				"types": schema.String("Comma-separated list of channel types to include").
					WithExample("public_channel,private_channel"),
				"exclude_archived": schema.Boolean("Whether to exclude archived channels").WithExample(true),
				"limit":            schema.Integer("Maximum number of channels to return (max 1000)").WithRange(1, 1000).WithExample(100),
				"cursor":           schema.String("Cursor for pagination"),
			}),
		),
		definition(SkillGetMessages, "Get Slack Messages",
			"Get messages from a Slack channel or conversation",
			schema.Object(with(conversationTarget(), map[string]*types.ParameterSchema{
				"limit":           schema.Integer("Maximum number of messages to return (max 1000)").WithRange(1, 1000).WithExample(20),
				"oldest_datetime": schema.String("Oldest message datetime in YYYY-MM-DD HH:MM:SS format").WithExample("2024-01-01 10:00:00"),
				"latest_datetime": schema.String("Latest message datetime in YYYY-MM-DD HH:MM:SS format").WithExample("2024-01-02 18:00:00"),
				"cursor":          schema.String("Cursor for pagination"),
			})),
		),
		definition(SkillGetUsersInConversation, "Get Users in Conversation",
			"Get the users in a Slack conversation by channel ID or name",
			schema.Object(map[string]*types.ParameterSchema{
				"conversation_id": schema.String("The conversation ID to get users from").WithExample("C1234567890"),
				"channel_name":    schema.String("The channel name to get users from (prefer conversation_id)").WithExample("#general"),
				"limit":           schema.Integer("Maximum number of users to return (max 500)").WithRange(1, 500).WithExample(200),
				"cursor":          schema.String("Cursor for pagination"),
			}),
		),
		definition(SkillGetConversationMetadata, "Get Conversation Metadata",
			"Get metadata of a Slack channel, DM, or group conversation",
			schema.Object(conversationTarget()),
		),
		definition(SkillSearchMessages, "Search Slack Messages",
			"Search for messages across the Slack workspace",
			schema.Object(map[string]*types.ParameterSchema{
				"query":    schema.String("Search query (keywords, phrases, or search operators)").WithExample("budget Q4 from:@john in:#marketing"),
				"sort":     schema.String("Sort results by relevance or timestamp").WithEnum("score", "timestamp"),
				"sort_dir": schema.String("Sort direction").WithEnum("asc", "desc"),
				"limit":    schema.Integer("Maximum number of results to return (max 100)").WithRange(1, 100).WithExample(20),
			}, "query"),
		),
		definition(SkillSetStatus, "Set Slack Status",
			"Set the status message and emoji for the authenticated user",
			schema.Object(map[string]*types.ParameterSchema{
				"status_text":       schema.String("Status text to display").WithExample("In a meeting"),
				"status_emoji":      schema.String("Status emoji (with colons)").WithExample(":calendar:"),
				"status_expiration": schema.Integer("Unix timestamp when status expires (0 for no expiration)").WithExample(1640995200),
			}),
		),
		definition(SkillCreateReminder, "Create Slack Reminder",
			"Create a reminder for yourself or another user",
			schema.Object(map[string]*types.ParameterSchema{
				"text":    schema.String("The reminder message").WithExample("Review the quarterly report"),
				"time":    schema.String("When to be reminded (natural language or timestamp)").WithExample("tomorrow at 2pm"),
				"user":    schema.String("User ID to remind (defaults to authenticated user)").WithExample("U1234567890"),
				"channel": schema.String("Channel ID to post the reminder in instead of a user"),
			}, "text", "time"),
		),
		definition(SkillGetReminders, "Get Slack Reminders",
			"List pending reminders for the authenticated user",
			schema.Object(nil),
		),
	}
}
