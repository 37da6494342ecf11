package notion

import (
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/schema"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/types"
)

const Category = "notion"

const (
	SkillSearchPages         = "notion_search_pages"
	SkillGetPage             = "notion_get_page"
	SkillCreatePage          = "notion_create_page"
	SkillUpdatePage          = "notion_update_page"
	SkillAppendToPage        = "notion_append_to_page"
	SkillListDatabases       = "notion_list_databases"
	SkillQueryDatabase       = "notion_query_database"
	SkillCreateDatabaseEntry = "notion_create_database_entry"
	SkillUpdateDatabaseEntry = "notion_update_database_entry"
	SkillGetDatabaseEntry    = "notion_get_database_entry"
	SkillListUsers           = "notion_list_users"
	SkillGetPageComments     = "notion_get_page_comments"
	SkillListPages           = "notion_list_pages"
)

var simpleBlockTypes = []string{"paragraph", "heading_1", "heading_2", "heading_3", "bulleted_list_item", "numbered_list_item"}

func definition(name, displayName, description string, parameters *types.ParameterSchema) types.SkillDefinition {
	return types.SkillDefinition{
		Name:            name,
		DisplayName:     displayName,
		Description:     description,
		Category:        Category,
		IntegrationType: types.IntegrationTypeNotion,
		Parameters:      parameters,
	}
}

func pageID(description string) *types.ParameterSchema {
	return schema.String(description).WithExample("abc123")
}

func pageSize() *types.ParameterSchema {
	return schema.Integer("Max results to return").WithRange(1, 100).WithExample(10)
}

func properties(description string, example any) *types.ParameterSchema {
	obj := schema.Object(nil)
	obj.Description = description
	return obj.WithExample(example)
}

func Definitions() []types.SkillDefinition {
	status := func(name string) map[string]any {
		return map[string]any{"Status": map[string]any{"select": map[string]any{"name": name}}}
	}

	return []types.SkillDefinition{
		definition(SkillSearchPages, "Search Notion Pages",
			"Search for pages in your Notion workspace by keyword.",
			schema.Object(map[string]*types.ParameterSchema{
				"query":     schema.String("Search query").WithExample("project plan"),
				"page_size": pageSize(),
			}, "query"),
		),
		definition(SkillGetPage, "Get Notion Page",
			"Get the content of a Notion page by ID.",
			schema.Object(map[string]*types.ParameterSchema{
				"page_id": pageID("The Notion page ID"),
			}, "page_id"),
		),
		definition(SkillCreatePage, "Create Notion Page",
			"Create a new page in Notion.",
			schema.Object(map[string]*types.ParameterSchema{
				"parent_id":   pageID("Parent page or database ID"),
				"parent_type": schema.String("Whether the parent is a page or a database").WithEnum("page", "database").WithDefault("page"),
				"title":       schema.String("Title of the new page").WithExample("New Project"),
				"properties":  properties("Properties for the new page", status("In Progress")),
				"children":    schema.Array(
					"Content blocks for the new page, following Notion's block object structure. See Notion API documentation for details.",
					schema.Object(nil),
				).WithExample([]any{map[string]any{
					"object": "block",
					"type":   "paragraph",
					"paragraph": map[string]any{"rich_text": []any{
						map[string]any{"type": "text", "text": map[string]any{"content": "This is the first paragraph."}},
					}},
				}}),
			}, "parent_id", "title"),
		),
		definition(SkillUpdatePage, "Update Notion Page",
			"Update properties of an existing Notion page.",
			schema.Object(map[string]*types.ParameterSchema{
				"page_id":    pageID("The Notion page ID"),
				"properties": properties("Properties to update", status("Done")),
			}, "page_id", "properties"),
		),
		definition(SkillAppendToPage, "Append to Notion Page",
			"Append content blocks to an existing Notion page.",
			schema.Object(map[string]*types.ParameterSchema{
				"page_id":  pageID("The Notion page ID"),
				"children": schema.Array(
					"Content blocks to append. You can pass full Notion block objects OR simple objects of the form { type, text } where type is one of paragraph, heading_1, heading_2, heading_3, bulleted_list_item, numbered_list_item.",
					schema.Object(map[string]*types.ParameterSchema{
						"type": schema.String("The block type").WithEnum(simpleBlockTypes...),
						"text": schema.String("Plain text content for the block"),
					}),
				).WithExample([]any{
					map[string]any{"type": "heading_2", "text": "Chest Exercises"},
					map[string]any{"type": "bulleted_list_item", "text": "Barbell Bench Press"},
					map[string]any{"type": "bulleted_list_item", "text": "Push-Ups"},
				}),
			}, "page_id", "children"),
		),
		definition(SkillListDatabases, "List Notion Databases",
			"List all accessible Notion databases.",
			schema.Object(map[string]*types.ParameterSchema{
				"query": schema.String("Optional search query").WithExample("Tasks"),
			}),
		),
		definition(SkillQueryDatabase, "Query Notion Database",
			"Query a Notion database with filters and sorts.",
			schema.Object(map[string]*types.ParameterSchema{
				"database_id": pageID("The Notion database ID"),
				"filter":      properties("Filter object", map[string]any{}),
				"sorts":       schema.Array("Sorts array", schema.Object(nil)).WithExample([]any{}),
				"page_size":   pageSize(),
			}, "database_id"),
		),
		definition(SkillCreateDatabaseEntry, "Create Notion Database Entry",
			"Create a new entry (row) in a Notion database.",
			schema.Object(map[string]*types.ParameterSchema{
				"database_id": pageID("The Notion database ID"),
				"properties":  properties("Properties for the new entry", map[string]any{
					"Name": map[string]any{"title": []any{map[string]any{"text": map[string]any{"content": "Task 1"}}}},
				}),
			}, "database_id", "properties"),
		),
		definition(SkillUpdateDatabaseEntry, "Update Notion Database Entry",
			"Update an entry (row) in a Notion database.",
			schema.Object(map[string]*types.ParameterSchema{
				"page_id":    pageID("The Notion page ID (row)"),
				"properties": properties("Properties to update", status("Done")),
			}, "page_id", "properties"),
		),
		definition(SkillGetDatabaseEntry, "Get Notion Database Entry",
			"Get a specific entry (row) from a Notion database.",
			schema.Object(map[string]*types.ParameterSchema{
				"page_id": pageID("The Notion page ID (row)"),
			}, "page_id"),
		),
		definition(SkillListUsers, "List Notion Users",
			"List all users in the Notion workspace.",
			schema.Object(nil),
		),
		definition(SkillGetPageComments, "Get Notion Page Comments",
			"Get comments for a Notion page.",
			schema.Object(map[string]*types.ParameterSchema{
				"page_id": pageID("The Notion page ID"),
			}, "page_id"),
		),
		definition(SkillListPages, "List Notion Pages",
			"List all accessible Notion pages.",
			schema.Object(map[string]*types.ParameterSchema{
				"query":     schema.String("Optional search query").WithExample("Meeting Notes"),
				"page_size": pageSize(),
			}),
		),
	}
}
