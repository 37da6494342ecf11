package google

import (
	"context"
	"encoding/base64"
	"errors"
	"mime"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/iter"
	"google.golang.org/api/gmail/v1"

	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/params"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/registry"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/schema"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/types"
)

const (
	CategoryGmail = "gmail"

	SkillGmailListMessages   = "gmail_list_messages"
	SkillGmailSearchMessages = "gmail_search_messages"
	SkillGmailReadMessages   = "gmail_read_messages"
	SkillGmailSendMessage    = "gmail_send_message"
	SkillGmailReplyMessage   = "gmail_reply_message"
	SkillGmailListLabels     = "gmail_list_labels"
	SkillGmailMarkAsRead     = "gmail_mark_as_read"
	SkillGmailMarkAsUnread   = "gmail_mark_as_unread"
	SkillGmailDeleteMessage  = "gmail_delete_message"
	SkillGmailStarMessage    = "gmail_star_message"
)

const me = "me"

func (s *Skills) gmailEntries() []registry.Entry {
	handler := func(fn handlerFunc[*gmail.Service]) registry.Handler {
		return wrap(s, productGmail, gmail.NewService, fn)
	}
	return []registry.Entry{
		{Name: SkillGmailListMessages, Handler: handler(gmailListMessages)},
		{Name: SkillGmailSearchMessages, Handler: handler(gmailSearchMessages)},
		{Name: SkillGmailReadMessages, Handler: handler(gmailReadMessages)},
		{Name: SkillGmailSendMessage, Handler: handler(gmailSendMessage)},
		{Name: SkillGmailReplyMessage, Handler: handler(gmailReplyMessage)},
		{Name: SkillGmailListLabels, Handler: handler(gmailListLabels)},
		{Name: SkillGmailMarkAsRead, Handler: handler(gmailModify(nil, []string{"UNREAD"}))},
		{Name: SkillGmailMarkAsUnread, Handler: handler(gmailModify([]string{"UNREAD"}, nil))},
		{Name: SkillGmailDeleteMessage, Handler: handler(gmailDeleteMessage)},
		{Name: SkillGmailStarMessage, Handler: handler(gmailStarMessage)},
	}
}

func gmailDefinition(name, displayName, description string, parameters *types.ParameterSchema) types.SkillDefinition {
	return types.SkillDefinition{
		Name:            name,
		DisplayName:     displayName,
		Description:     description,
		Category:        CategoryGmail,
		IntegrationType: types.IntegrationTypeGoogle,
		Parameters:      parameters,
	}
}

func messageID(description string) *types.ParameterSchema {
	return schema.String(description).WithExample("17c7b8e5e6e8a1a2")
}

func maxResults() *types.ParameterSchema {
	return schema.Integer("Maximum number of messages to return (max 100)").WithRange(1, 100).WithExample(20)
}

func gmailDefinitions() []types.SkillDefinition {
	recipients := func(kind string) *types.ParameterSchema {
		return schema.String(kind + " email addresses (comma-separated)").WithExample(strings.ToLower(kind) + "@example.com")
	}

	return []types.SkillDefinition{
		gmailDefinition(SkillGmailListMessages, "List Gmail Messages",
			"List messages in a label/folder (e.g., Inbox, Sent, custom labels).",
			schema.Object(map[string]*types.ParameterSchema{
				"label_id":    schema.String("Label/folder ID (e.g., INBOX, SENT, custom)").WithExample("INBOX"),
				"max_results": maxResults(),
				"page_token":  schema.String("Page token for pagination"),
			}, "label_id"),
		),
		gmailDefinition(SkillGmailSearchMessages, "Search Gmail Messages",
			"Search for messages by query (subject, sender, content, etc.).",
			schema.Object(map[string]*types.ParameterSchema{
				"query":       schema.String("Gmail search query (e.g., from:alice subject:report)").WithExample("from:alice subject:report"),
				"max_results": maxResults(),
				"page_token":  schema.String("Page token for pagination"),
			}, "query"),
		),
		gmailDefinition(SkillGmailReadMessages, "Read Gmail Messages",
			"Read one or more Gmail messages by ID, with options to return only text or include images/attachments.",
			schema.Object(map[string]*types.ParameterSchema{
				"message_ids": schema.Strings("Array of Gmail message IDs to fetch").WithExample([]string{"17c7b8e5e6e8a1a2"}),
				"text_only": schema.Boolean("If true, only return the plain text or HTML content (no images/attachments). Default: true").
					WithExample(true),
			}, "message_ids"),
		),
		gmailDefinition(SkillGmailSendMessage, "Send Gmail Message",
			"Send a new email (to, subject, body).",
			schema.Object(map[string]*types.ParameterSchema{
				"to":      schema.String("Recipient email address").WithFormat(schema.FormatEmail).WithExample("user@example.com"),
				"subject": schema.String("Email subject").WithExample("Hello"),
				"body":    schema.String("Email body (plain text or HTML)").WithExample("This is a test email."),
				"cc":      recipients("CC"),
				"bcc":     recipients("BCC"),
			}, "to", "subject", "body"),
		),
		gmailDefinition(SkillGmailReplyMessage, "Reply to Gmail Message",
			"Reply to an existing email thread.",
			schema.Object(map[string]*types.ParameterSchema{
				"message_id": messageID("ID of the message to reply to"),
				"body":       schema.String("Reply body (plain text or HTML)").WithExample("Thanks for your email."),
				"cc":         recipients("CC"),
				"bcc":        recipients("BCC"),
			}, "message_id", "body"),
		),
		gmailDefinition(SkillGmailListLabels, "List Gmail Labels",
			"List all labels/folders in the user's Gmail.",
			schema.Object(map[string]*types.ParameterSchema{}),
		),
		gmailDefinition(SkillGmailMarkAsRead, "Mark Gmail Message as Read",
			"Mark a message as read.",
			schema.Object(map[string]*types.ParameterSchema{
				"message_id": messageID("ID of the message to mark as read"),
			}, "message_id"),
		),
		gmailDefinition(SkillGmailMarkAsUnread, "Mark Gmail Message as Unread",
			"Mark a message as unread.",
			schema.Object(map[string]*types.ParameterSchema{
				"message_id": messageID("ID of the message to mark as unread"),
			}, "message_id"),
		),
		gmailDefinition(SkillGmailDeleteMessage, "Delete Gmail Message",
			"Move a message to trash.",
			schema.Object(map[string]*types.ParameterSchema{
				"message_id": messageID("ID of the message to delete"),
			}, "message_id"),
		),
		gmailDefinition(SkillGmailStarMessage, "Star Gmail Message",
			"Star or unstar a message.",
			schema.Object(map[string]*types.ParameterSchema{
				"message_id": messageID("ID of the message to star/unstar"),
				"starred":    schema.Boolean("Whether to star (true) or unstar (false)").WithExample(true),
			}, "message_id", "starred"),
		),
	}
}

func gmailListMessages(ctx context.Context, svc *gmail.Service, p params.Params) (any, error) {
	labelID, err := p.RequireString("label_id")
	if err != nil {
		return nil, err
	}

	call := svc.Users.Messages.List(me).LabelIds(labelID)
	return gmailList(ctx, call, p)
}

func gmailSearchMessages(ctx context.Context, svc *gmail.Service, p params.Params) (any, error) {
	query, err := p.RequireString("query")
	if err != nil {
		return nil, err
	}

	call := svc.Users.Messages.List(me).Q(query)
	return gmailList(ctx, call, p)
}

func gmailList(ctx context.Context, call *gmail.UsersMessagesListCall, p params.Params) (any, error) {
	call = call.MaxResults(int64(p.Limit("max_results", 20, 100)))
	if token := p.String("page_token"); token != "" {
		call = call.PageToken(token)
	}

	res, err := call.Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	messages := make([]map[string]any, 0, len(res.Messages))
	for _, m := range res.Messages {
		messages = append(messages, map[string]any{"id": m.Id, "threadId": m.ThreadId})
	}

	return map[string]any{
		"success":       true,
		"messages":      messages,
		"nextPageToken": res.NextPageToken,
	}, nil
}

func gmailReadMessages(ctx context.Context, svc *gmail.Service, p params.Params) (any, error) {
	ids := p.Strings("message_ids")
	if len(ids) == 0 {
		return nil, errors.New("message_ids must be a non-empty array")
	}
	textOnly := p.Bool("text_only", true)

	// one failed message does not fail the batch
	results := iter.Map(ids, func(id *string) map[string]any {
		msg, err := svc.Users.Messages.Get(me, *id).Format("full").Context(ctx).Do()
		if err != nil {
			return map[string]any{"id": *id, "success": false, "error": rewriteError(productGmail, err).Error()}
		}
		if !textOnly {
			return map[string]any{"id": *id, "success": true, "message": msg}
		}
		return map[string]any{
			"id":      *id,
			"success": true,
			"text":    extractText(ctx, msg.Payload),
			"snippet": msg.Snippet,
			"subject": header(msg.Payload, "Subject"),
			"from":    header(msg.Payload, "From"),
			"date":    header(msg.Payload, "Date"),
		}
	})

	return map[string]any{
		"success": true,
		"results": results,
	}, nil
}

// extractText returns the first text/plain part. HTML-only messages are
// converted to markdown.
func extractText(ctx context.Context, part *gmail.MessagePart) string {
	if text := findPart(part, "text/plain"); text != "" {
		return text
	}

	html := findPart(part, "text/html")
	if html == "" {
		return ""
	}
	markdown, err := md.NewConverter("", true, nil).ConvertString(html)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("failed to convert html message body, returning raw html")
		return html
	}
	return markdown
}

func findPart(part *gmail.MessagePart, mimeType string) string {
	if part == nil {
		return ""
	}
	if part.MimeType == mimeType && part.Body != nil && part.Body.Data != "" {
		return decodeBody(part.Body.Data)
	}
	for _, child := range part.Parts {
		if text := findPart(child, mimeType); text != "" {
			return text
		}
	}
	return ""
}

func decodeBody(data string) string {
	bts, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(data, "="))
	if err != nil {
		return ""
	}
	return string(bts)
}

func header(part *gmail.MessagePart, name string) string {
	if part == nil {
		return ""
	}
	for _, h := range part.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

type email struct {
	to, cc, bcc, subject, body string
	inReplyTo, references      string
}

// raw renders the RFC 2822 message Gmail expects, base64url encoded
func (e email) raw() string {
	var b strings.Builder
	write := func(name, value string) {
		if value != "" {
			b.WriteString(name + ": " + value + "\r\n")
		}
	}
	write("To", e.to)
	write("Cc", e.cc)
	write("Bcc", e.bcc)
	write("Subject", mime.QEncoding.Encode("utf-8", e.subject))
	write("In-Reply-To", e.inReplyTo)
	write("References", e.references)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	b.WriteString(e.body)

	return base64.RawURLEncoding.EncodeToString([]byte(b.String()))
}

func gmailSendMessage(ctx context.Context, svc *gmail.Service, p params.Params) (any, error) {
	to, err := p.RequireString("to")
	if err != nil {
		return nil, err
	}
	subject, err := p.RequireString("subject")
	if err != nil {
		return nil, err
	}
	body, err := p.RequireString("body")
	if err != nil {
		return nil, err
	}

	msg := email{to: to, cc: p.String("cc"), bcc: p.String("bcc"), subject: subject, body: body}
	sent, err := svc.Users.Messages.Send(me, &gmail.Message{Raw: msg.raw()}).Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"success":  true,
		"sent":     true,
		"id":       sent.Id,
		"threadId": sent.ThreadId,
	}, nil
}

func gmailReplyMessage(ctx context.Context, svc *gmail.Service, p params.Params) (any, error) {
	id, err := p.RequireString("message_id")
	if err != nil {
		return nil, err
	}
	body, err := p.RequireString("body")
	if err != nil {
		return nil, err
	}

	orig, err := svc.Users.Messages.Get(me, id).
		Format("metadata").
		MetadataHeaders("Message-ID", "References", "Subject", "From").
		Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	subject := header(orig.Payload, "Subject")
	if !strings.HasPrefix(strings.ToLower(subject), "re:") {
		subject = "Re: " + subject
	}
	origID := header(orig.Payload, "Message-ID")
	references := strings.TrimSpace(header(orig.Payload, "References") + " " + origID)

	msg := email{
		to:         header(orig.Payload, "From"),
		cc:         p.String("cc"),
		bcc:        p.String("bcc"),
		subject:    subject,
		body:       body,
		inReplyTo:  origID,
		references: references,
	}

	sent, err := svc.Users.Messages.Send(me, &gmail.Message{Raw: msg.raw(), ThreadId: orig.ThreadId}).Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"success":  true,
		"sent":     true,
		"id":       sent.Id,
		"threadId": sent.ThreadId,
	}, nil
}

func gmailListLabels(ctx context.Context, svc *gmail.Service, _ params.Params) (any, error) {
	res, err := svc.Users.Labels.List(me).Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	labels := make([]map[string]any, 0, len(res.Labels))
	for _, l := range res.Labels {
		labels = append(labels, map[string]any{"id": l.Id, "name": l.Name, "type": l.Type})
	}

	return map[string]any{
		"success": true,
		"labels":  labels,
	}, nil
}

func gmailModify(add, remove []string) handlerFunc[*gmail.Service] {
	return func(ctx context.Context, svc *gmail.Service, p params.Params) (any, error) {
		id, err := p.RequireString("message_id")
		if err != nil {
			return nil, err
		}

		_, err = svc.Users.Messages.Modify(me, id, &gmail.ModifyMessageRequest{
			AddLabelIds:    add,
			RemoveLabelIds: remove,
		}).Context(ctx).Do()
		if err != nil {
			return nil, err
		}
		return map[string]any{"success": true, "message_id": id}, nil
	}
}

func gmailStarMessage(ctx context.Context, svc *gmail.Service, p params.Params) (any, error) {
	starred := []string{"STARRED"}
	if p.Bool("starred", true) {
		return gmailModify(starred, nil)(ctx, svc, p)
	}
	return gmailModify(nil, starred)(ctx, svc, p)
}

func gmailDeleteMessage(ctx context.Context, svc *gmail.Service, p params.Params) (any, error) {
	id, err := p.RequireString("message_id")
	if err != nil {
		return nil, err
	}

	if _, err := svc.Users.Messages.Trash(me, id).Context(ctx).Do(); err != nil {
		return nil, err
	}
	return map[string]any{"success": true, "message_id": id}, nil
}
