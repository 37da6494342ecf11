// Package notion implements the builtin Notion skills against the Notion REST
// API.
package notion

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/clients"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/params"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/registry"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/types"
)

var ErrIntegrationRequired = errors.New("Integration ID is required for Notion operations")

const (
	// blocks.children.append accepts at most this many blocks per call
	appendChunkSize = 100
	// nested blocks below this depth are not expanded
	maxBlockDepth = 5
)

// Error is the body Notion returns for any non 2xx response
type Error struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("notion %s (%d): %s", e.Code, e.Status, e.Message)
}

type Skills struct {
	clients clients.Factory
}

func New(clients clients.Factory) *Skills {
	return &Skills{clients: clients}
}

func (s *Skills) Entries() []registry.Entry {
	return []registry.Entry{
		{Name: SkillSearchPages, Handler: s.wrap(searchPages)},
		{Name: SkillGetPage, Handler: s.wrap(getPage)},
		{Name: SkillCreatePage, Handler: s.wrap(createPage)},
		{Name: SkillUpdatePage, Handler: s.wrap(updatePage)},
		{Name: SkillAppendToPage, Handler: s.wrap(appendToPage)},
		{Name: SkillListDatabases, Handler: s.wrap(listDatabases)},
		{Name: SkillQueryDatabase, Handler: s.wrap(queryDatabase)},
		{Name: SkillCreateDatabaseEntry, Handler: s.wrap(createDatabaseEntry)},
		{Name: SkillUpdateDatabaseEntry, Handler: s.wrap(updatePage)},
		{Name: SkillGetDatabaseEntry, Handler: s.wrap(getDatabaseEntry)},
		{Name: SkillListUsers, Handler: s.wrap(listUsers)},
		{Name: SkillGetPageComments, Handler: s.wrap(getPageComments)},
		{Name: SkillListPages, Handler: s.wrap(listPages)},
	}
}

type handlerFunc func(ctx context.Context, api *api, p params.Params) (any, error)

func (s *Skills) wrap(fn handlerFunc) registry.Handler {
	return func(ctx context.Context, in map[string]any, sctx types.SkillExecutionContext) (any, error) {
		if sctx.IntegrationID == "" {
			return nil, ErrIntegrationRequired
		}

		client, err := s.clients.Notion(ctx, sctx.IntegrationID)
		if err != nil {
			return nil, err
		}

		out, err := fn(ctx, &api{client: client}, params.Params(in))
		if err != nil {
			return nil, rewriteError(err)
		}
		return out, nil
	}
}

func rewriteError(err error) error {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return err
	}

	switch {
	case apiErr.Code == "object_not_found" || apiErr.Status == http.StatusNotFound:
		return errors.New("Notion page or database not found. Make sure it exists and is shared with the Syllabi integration.")
	case apiErr.Code == "unauthorized" || apiErr.Status == http.StatusUnauthorized:
		return errors.New("Notion authentication failed. Please reconnect your Notion integration.")
	case apiErr.Code == "restricted_resource" || apiErr.Status == http.StatusForbidden:
		return errors.New("The Notion integration does not have access to this resource. Please share it with the integration.")
	case apiErr.Code == "rate_limited" || apiErr.Status == http.StatusTooManyRequests:
		return errors.New("Notion rate limit exceeded. Please try again in a moment.")
	case apiErr.Code == "validation_error":
		return fmt.Errorf("Invalid Notion request: %s", apiErr.Message)
	}
	return fmt.Errorf("Notion API error: %s", apiErr.Message)
}

type api struct {
	client *resty.Client
}

func (a *api) do(ctx context.Context, method, path string, query map[string]string, body, out any) error {
	apiErr := &Error{}
	req := a.client.R().SetContext(ctx).SetError(apiErr)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	if body != nil {
		req.SetBody(body)
	}
	if out != nil {
		req.SetResult(out)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("Notion request failed: %w", err)
	}
	if resp.IsError() {
		if apiErr.Status == 0 {
			apiErr.Status = resp.StatusCode()
		}
		if apiErr.Message == "" {
			apiErr.Message = resp.Status()
		}
		return apiErr
	}
	return nil
}

type object = map[string]any

type list struct {
	Results    []object `json:"results"`
	HasMore    bool     `json:"has_more"`
	NextCursor string   `json:"next_cursor"`
}

func (a *api) search(ctx context.Context, query, objectType string, pageSize int) ([]object, error) {
	body := map[string]any{}
	if query != "" {
		body["query"] = query
	}
	if objectType != "" {
		body["filter"] = map[string]any{"property": "object", "value": objectType}
	}
	if pageSize > 0 {
		body["page_size"] = pageSize
	}

	var res list
	if err := a.do(ctx, http.MethodPost, "/search", nil, body, &res); err != nil {
		return nil, err
	}
	return res.Results, nil
}

// children pages through every direct child of a block
func (a *api) children(ctx context.Context, blockID string) ([]object, error) {
	var (
		all    []object
		cursor string
	)
	for {
		query := map[string]string{"page_size": "100"}
		if cursor != "" {
			query["start_cursor"] = cursor
		}

		var res list
		if err := a.do(ctx, http.MethodGet, "/blocks/"+blockID+"/children", query, nil, &res); err != nil {
			return nil, err
		}
		all = append(all, res.Results...)

		if !res.HasMore || res.NextCursor == "" {
			return all, nil
		}
		cursor = res.NextCursor
	}
}

func str(o object, key string) string {
	s, _ := o[key].(string)
	return s
}

func richTextToPlain(v any) string {
	items, _ := v.([]any)
	var b strings.Builder
	for _, item := range items {
		rt, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if plain, ok := rt["plain_text"].(string); ok {
			b.WriteString(plain)
			continue
		}
		if text, ok := rt["text"].(map[string]any); ok {
			b.WriteString(str(text, "content"))
		}
	}
	return b.String()
}

// title finds the title property of a page, or the title of a database
func title(o object) string {
	if t := richTextToPlain(o["title"]); t != "" {
		return t
	}
	props, _ := o["properties"].(map[string]any)
	for _, v := range props {
		prop, ok := v.(map[string]any)
		if ok && str(prop, "type") == "title" {
			return richTextToPlain(prop["title"])
		}
	}
	return ""
}

// blocksToText flattens a block tree into markdown-ish lines
func (a *api) blocksToText(ctx context.Context, blocks []object, depth int) ([]string, error) {
	var (
		lines     []string
		listIndex = 1
	)
	for _, block := range blocks {
		blockType := str(block, "type")
		if blockType == "" {
			continue
		}
		data, _ := block[blockType].(map[string]any)
		text := richTextToPlain(data["rich_text"])

		if blockType != "numbered_list_item" {
			listIndex = 1
		}

		var line string
		switch blockType {
		case "paragraph", "callout":
			line = text
		case "heading_1":
			line = "# " + text
		case "heading_2":
			line = "## " + text
		case "heading_3":
			line = "### " + text
		case "bulleted_list_item":
			line = "- " + text
		case "numbered_list_item":
			line = fmt.Sprintf("%d. %s", listIndex, text)
			listIndex++
		case "to_do":
			check := "☐"
			if checked, _ := data["checked"].(bool); checked {
				check = "☑"
			}
			line = check + " " + text
		case "quote":
			line = "> " + text
		case "code":
			line = "```\n" + text + "\n```"
		case "table_row":
			cells, _ := data["cells"].([]any)
			parts := make([]string, 0, len(cells))
			for _, cell := range cells {
				parts = append(parts, richTextToPlain(cell))
			}
			line = strings.Join(parts, " | ")
		case "child_page":
			name := str(data, "title")
			if name == "" {
				name = "Untitled"
			}
			line = "[[Sub-page]]: " + name
		default:
			line = text
		}
		if line != "" {
			lines = append(lines, line)
		}

		if hasChildren, _ := block["has_children"].(bool); hasChildren && depth < maxBlockDepth {
			children, err := a.children(ctx, str(block, "id"))
			if err != nil {
				return nil, err
			}
			nested, err := a.blocksToText(ctx, children, depth+1)
			if err != nil {
				return nil, err
			}
			lines = append(lines, nested...)
		}
	}
	return lines, nil
}

func toRichText(text string) []any {
	return []any{map[string]any{"type": "text", "text": map[string]any{"content": text}}}
}

// toBlock passes full block objects through and expands {type, text}
// shorthands
func toBlock(item any) (object, error) {
	block, ok := item.(map[string]any)
	if !ok {
		return nil, errors.New(`Each child must either be a full Notion block object or have "type" and "text" fields.`)
	}
	if str(block, "object") == "block" && str(block, "type") != "" {
		return block, nil
	}

	blockType, text := str(block, "type"), str(block, "text")
	if blockType == "" || text == "" {
		return nil, errors.New(`Each child must either be a full Notion block object or have "type" and "text" fields.`)
	}
	for _, t := range simpleBlockTypes {
		if t == blockType {
			return object{"object": "block", "type": blockType, blockType: map[string]any{"rich_text": toRichText(text)}}, nil
		}
	}
	return nil, fmt.Errorf("Unsupported block type: %s", blockType)
}

func hasTitle(props map[string]any) bool {
	for _, v := range props {
		if prop, ok := v.(map[string]any); ok && prop["title"] != nil {
			return true
		}
	}
	return false
}

func pageSummary(o object) map[string]any {
	return map[string]any{
		"id":         o["id"],
		"title":      title(o),
		"url":        o["url"],
		"properties": o["properties"],
	}
}

func searchPages(ctx context.Context, api *api, p params.Params) (any, error) {
	query, err := p.RequireString("query")
	if err != nil {
		return nil, err
	}

	results, err := api.search(ctx, query, "", p.Limit("page_size", 10, 100))
	if err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(results))
	for _, item := range results {
		out = append(out, map[string]any{
			"id":     item["id"],
			"object": item["object"],
			"title":  title(item),
			"url":    item["url"],
		})
	}
	return out, nil
}

func getPage(ctx context.Context, api *api, p params.Params) (any, error) {
	id, err := p.RequireString("page_id")
	if err != nil {
		return nil, err
	}

	var page object
	if err := api.do(ctx, http.MethodGet, "/pages/"+id, nil, nil, &page); err != nil {
		return nil, err
	}

	blocks, err := api.children(ctx, id)
	if err != nil {
		return nil, err
	}
	lines, err := api.blocksToText(ctx, blocks, 0)
	if err != nil {
		return nil, err
	}

	log.Ctx(ctx).Debug().
		Str("page_id", id).
		Int("blocks", len(blocks)).
		Msg("fetched notion page")

	return map[string]any{
		"id":    page["id"],
		"title": title(page),
		"url":   page["url"],
		"text":  strings.Join(lines, "\n"),
	}, nil
}

func createPage(ctx context.Context, api *api, p params.Params) (any, error) {
	parentID, err := p.RequireString("parent_id")
	if err != nil {
		return nil, err
	}
	pageTitle, err := p.RequireString("title")
	if err != nil {
		return nil, err
	}

	props := map[string]any{}
	for k, v := range p.Map("properties") {
		props[k] = v
	}
	titleValue := map[string]any{"title": toRichText(pageTitle)}

	parent := map[string]any{}
	switch p.String("parent_type") {
	case "database":
		parent["database_id"] = parentID
		// rows keep their own title column, usually Name
		if !hasTitle(props) {
			props["Name"] = titleValue
		}
	case "", "page":
		parent["page_id"] = parentID
		props["title"] = titleValue
	default:
		return nil, fmt.Errorf("parent_type must be page or database, got %q", p.String("parent_type"))
	}

	body := map[string]any{"parent": parent, "properties": props}
	if children, ok := p["children"].([]any); ok && len(children) > 0 {
		body["children"] = children
	}

	var created object
	if err := api.do(ctx, http.MethodPost, "/pages", nil, body, &created); err != nil {
		return nil, err
	}
	return map[string]any{"id": created["id"], "url": created["url"]}, nil
}

func updatePage(ctx context.Context, api *api, p params.Params) (any, error) {
	id, err := p.RequireString("page_id")
	if err != nil {
		return nil, err
	}
	props := p.Map("properties")
	if props == nil {
		return nil, errors.New("properties object is required")
	}

	var updated object
	if err := api.do(ctx, http.MethodPatch, "/pages/"+id, nil, map[string]any{"properties": props}, &updated); err != nil {
		return nil, err
	}
	return map[string]any{"id": updated["id"], "url": updated["url"], "properties": updated["properties"]}, nil
}

func appendToPage(ctx context.Context, api *api, p params.Params) (any, error) {
	id, err := p.RequireString("page_id")
	if err != nil {
		return nil, err
	}
	children, _ := p["children"].([]any)
	if len(children) == 0 {
		return nil, errors.New(`Invalid input: "children" must be a non-empty array of Notion block objects.`)
	}

	blocks := make([]object, 0, len(children))
	for _, child := range children {
		block, err := toBlock(child)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}

	appended := 0
	for start := 0; start < len(blocks); start += appendChunkSize {
		end := min(start+appendChunkSize, len(blocks))

		var res list
		err := api.do(ctx, http.MethodPatch, "/blocks/"+id+"/children", nil,
			map[string]any{"children": blocks[start:end]}, &res)
		if err != nil {
			return nil, err
		}
		appended += len(res.Results)
	}

	return map[string]any{"block_id": id, "appended_count": appended}, nil
}

func listDatabases(ctx context.Context, api *api, p params.Params) (any, error) {
	results, err := api.search(ctx, p.String("query"), "database", 0)
	if err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(results))
	for _, db := range results {
		out = append(out, pageSummary(db))
	}
	return out, nil
}

func listPages(ctx context.Context, api *api, p params.Params) (any, error) {
	results, err := api.search(ctx, p.String("query"), "page", p.Limit("page_size", 10, 100))
	if err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(results))
	for _, page := range results {
		out = append(out, pageSummary(page))
	}
	return out, nil
}

func queryDatabase(ctx context.Context, api *api, p params.Params) (any, error) {
	id, err := p.RequireString("database_id")
	if err != nil {
		return nil, err
	}

	body := map[string]any{"page_size": p.Limit("page_size", 10, 100)}
	if filter := p.Map("filter"); len(filter) > 0 {
		body["filter"] = filter
	}
	if sorts, ok := p["sorts"].([]any); ok && len(sorts) > 0 {
		body["sorts"] = sorts
	}

	var res list
	if err := api.do(ctx, http.MethodPost, "/databases/"+id+"/query", nil, body, &res); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(res.Results))
	for _, row := range res.Results {
		out = append(out, map[string]any{"id": row["id"], "properties": row["properties"], "url": row["url"]})
	}
	return out, nil
}

func createDatabaseEntry(ctx context.Context, api *api, p params.Params) (any, error) {
	id, err := p.RequireString("database_id")
	if err != nil {
		return nil, err
	}
	props := p.Map("properties")
	if props == nil {
		return nil, errors.New("properties object is required")
	}

	body := map[string]any{
		"parent":     map[string]any{"database_id": id},
		"properties": props,
	}
	var created object
	if err := api.do(ctx, http.MethodPost, "/pages", nil, body, &created); err != nil {
		return nil, err
	}
	return map[string]any{"id": created["id"], "url": created["url"]}, nil
}

func getDatabaseEntry(ctx context.Context, api *api, p params.Params) (any, error) {
	id, err := p.RequireString("page_id")
	if err != nil {
		return nil, err
	}

	var page object
	if err := api.do(ctx, http.MethodGet, "/pages/"+id, nil, nil, &page); err != nil {
		return nil, err
	}
	return map[string]any{"id": page["id"], "properties": page["properties"], "url": page["url"]}, nil
}

func listUsers(ctx context.Context, api *api, _ params.Params) (any, error) {
	var res list
	if err := api.do(ctx, http.MethodGet, "/users", nil, nil, &res); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(res.Results))
	for _, user := range res.Results {
		out = append(out, map[string]any{
			"id":         user["id"],
			"name":       user["name"],
			"type":       user["type"],
			"avatar_url": user["avatar_url"],
			"person":     user["person"],
			"bot":        user["bot"],
		})
	}
	return out, nil
}

func getPageComments(ctx context.Context, api *api, p params.Params) (any, error) {
	id, err := p.RequireString("page_id")
	if err != nil {
		return nil, err
	}

	var res list
	if err := api.do(ctx, http.MethodGet, "/comments", map[string]string{"block_id": id}, nil, &res); err != nil {
		return nil, err
	}

	comments := make([]map[string]any, 0, len(res.Results))
	for _, c := range res.Results {
		comments = append(comments, map[string]any{
			"id":            c["id"],
			"text":          richTextToPlain(c["rich_text"]),
			"created_by":    c["created_by"],
			"created_time":  c["created_time"],
			"discussion_id": c["discussion_id"],
		})
	}
	return map[string]any{"page_id": id, "comments": comments}, nil
}
