package discord

import (
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/schema"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/types"
)

const Category = "discord"

const (
	SkillSendMessage    = "discord_send_message"
	SkillListChannels   = "discord_list_channels"
	SkillGetMessages    = "discord_get_messages"
	SkillListMembers    = "discord_list_members"
	SkillGetUserInfo    = "discord_get_user_info"
	SkillManageRoles    = "discord_manage_roles"
	SkillListRoles      = "discord_list_roles"
	SkillCreateChannel  = "discord_create_channel"
	SkillSendEmbed      = "discord_send_embed"
	SkillAddReaction    = "discord_add_reaction"
	SkillTestConnection = "discord_test_connection"
	SkillEditMessage    = "discord_edit_message"
	SkillDeleteMessage  = "discord_delete_message"
)

const snowflake = "1234567890123456789"

func definition(name, displayName, description string, parameters *types.ParameterSchema) types.SkillDefinition {
	return types.SkillDefinition{
		Name:            name,
		DisplayName:     displayName,
		Description:     description,
		Category:        Category,
		IntegrationType: types.IntegrationTypeDiscord,
		Parameters:      parameters,
	}
}

func guildID() *types.ParameterSchema {
	return schema.String("Discord server (guild) ID (optional, uses current server if not provided)").WithExample(snowflake)
}

func channelID(description string) *types.ParameterSchema {
	return schema.String(description).WithExample(snowflake)
}

func Definitions() []types.SkillDefinition {
	return []types.SkillDefinition{
		definition(SkillSendMessage, "Send Discord Message",
			"Send a message to a Discord channel or user",
			schema.Object(map[string]*types.ParameterSchema{
				"message":    schema.String("The message content to send").WithExample("Hello from Syllabi!"),
				"channel_id": channelID("Discord channel ID to send message to"),
				"user_id":    schema.String("Discord user ID to send DM to (alternative to channel_id)").WithExample(snowflake),
				"embed": schema.Object(map[string]*types.ParameterSchema{
					"title":       schema.String("Embed title"),
					"description": schema.String("Embed description"),
					"color":       schema.Integer("Embed color (decimal)"),
					"url":         schema.String("Embed URL").WithFormat(schema.FormatURL),
				}),
			}, "message"),
		),
		definition(SkillListChannels, "List Discord Channels",
			"List all channels in a Discord server",
			schema.Object(map[string]*types.ParameterSchema{
				"guild_id": guildID(),
				"channel_type": schema.String("Filter by channel type").
					WithEnum("text", "voice", "category", "news", "stage").WithExample("text"),
			}),
		),
		definition(SkillGetMessages, "Get Discord Messages",
			"Retrieve messages from a Discord channel",
			schema.Object(map[string]*types.ParameterSchema{
				"channel_id": channelID("Discord channel ID to get messages from"),
				"limit":      schema.Integer("Number of messages to retrieve (1-100)").WithRange(1, 100).WithExample(50),
				"before":     schema.String("Get messages before this message ID"),
				"after":      schema.String("Get messages after this message ID"),
			}, "channel_id"),
		),
		definition(SkillListMembers, "List Discord Members",
			"List members in a Discord server",
			schema.Object(map[string]*types.ParameterSchema{
				"guild_id": guildID(),
				"limit":    schema.Integer("Number of members to retrieve (1-1000)").WithRange(1, 1000).WithExample(100),
				"after":    schema.String("Get members after this user ID"),
			}),
		),
		definition(SkillGetUserInfo, "Get Discord User Info",
			"Get information about a Discord user",
			schema.Object(map[string]*types.ParameterSchema{
				"user_id":  schema.String("Discord user ID to get info for").WithExample(snowflake),
				"guild_id": schema.String("Discord server (guild) ID for guild-specific info (optional)"),
			}, "user_id"),
		),
		definition(SkillManageRoles, "Manage Discord Roles",
			"Add or remove roles from a Discord user",
			schema.Object(map[string]*types.ParameterSchema{
				"user_id":  schema.String("Discord user ID to modify roles for").WithExample(snowflake),
				"guild_id": guildID(),
				"action":   schema.String("Action to perform").WithEnum("add", "remove").WithExample("add"),
				"role_id":  schema.String("Role ID to add or remove").WithExample(snowflake),
				"reason":   schema.String("Reason for the role change (optional)").WithExample("Promoted to moderator"),
			}, "user_id", "action", "role_id"),
		),
		definition(SkillListRoles, "List Discord Roles",
			"List all roles in a Discord server",
			schema.Object(map[string]*types.ParameterSchema{
				"guild_id": guildID(),
			}),
		),
		definition(SkillCreateChannel, "Create Discord Channel",
			"Create a new channel in a Discord server",
			schema.Object(map[string]*types.ParameterSchema{
				"name":      schema.String("Channel name").WithExample("general-chat"),
				"type":      schema.Integer("Channel type (0=text, 2=voice, 4=category, 5=news, 13=stage)").WithExample(0),
				"guild_id":  guildID(),
				"topic":     schema.String("Channel topic (for text channels)").WithExample("General discussion channel"),
				"parent_id": schema.String("Parent category ID (optional)"),
			}, "name", "type"),
		),
		definition(SkillSendEmbed, "Send Discord Embed",
			"Send a rich embed message to a Discord channel",
			schema.Object(map[string]*types.ParameterSchema{
				"channel_id":    channelID("Discord channel ID to send embed to"),
				"title":         schema.String("Embed title").WithExample("Important Announcement"),
				"description":   schema.String("Embed description").WithExample("This is an important message from the team."),
				"color":         schema.Integer("Embed color (decimal format)").WithExample(3447003),
				"url":           schema.String("Embed URL").WithFormat(schema.FormatURL).WithExample("https://example.com"),
				"thumbnail_url": schema.String("Thumbnail image URL").WithFormat(schema.FormatURL),
				"image_url":     schema.String("Main image URL").WithFormat(schema.FormatURL),
				"footer_text":   schema.String("Footer text").WithExample("Powered by Syllabi"),
			}, "channel_id", "title"),
		),
		definition(SkillAddReaction, "Add Discord Reaction",
			"Add a reaction emoji to a Discord message",
			schema.Object(map[string]*types.ParameterSchema{
				"channel_id": channelID("Discord channel ID where the message is located"),
				"message_id": schema.String("Discord message ID to add reaction to").WithExample(snowflake),
				"emoji":      schema.String("Emoji to add as reaction (Unicode emoji or custom emoji name)").WithExample("👍"),
			}, "channel_id", "message_id", "emoji"),
		),
		definition(SkillTestConnection, "Test Discord Connection",
			"Test Discord bot connection and permissions",
			schema.Object(map[string]*types.ParameterSchema{}),
		),
		definition(SkillEditMessage, "Edit Discord Message",
			"Edit an existing Discord message",
			schema.Object(map[string]*types.ParameterSchema{
				"channel_id":  channelID("Discord channel ID where the message is located"),
				"message_id":  schema.String("Discord message ID to edit").WithExample(snowflake),
				"new_content": schema.String("New message content").WithExample("Updated message"),
			}, "channel_id", "message_id", "new_content"),
		),
		definition(SkillDeleteMessage, "Delete Discord Message",
			"Delete a Discord message",
			schema.Object(map[string]*types.ParameterSchema{
				"channel_id": channelID("Discord channel ID where the message is located"),
				"message_id": schema.String("Discord message ID to delete").WithExample(snowflake),
			}, "channel_id", "message_id"),
		),
	}
}
