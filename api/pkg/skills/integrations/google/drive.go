package google

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"

	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/params"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/registry"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/schema"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/types"
)

const (
	CategoryDrive = "google_drive"

	SkillDriveListFiles        = "google_drive_list_files"
	SkillDriveSearchFiles      = "google_drive_search_files"
	SkillDriveGetFileMetadata  = "google_drive_get_file_metadata"
	SkillDriveDownloadFile     = "google_drive_download_file"
	SkillDriveListFolders      = "google_drive_list_folders"
	SkillDriveShareFile        = "google_drive_share_file"
	SkillDriveGetShareableLink = "google_drive_get_shareable_link"
	SkillDriveListPermissions  = "google_drive_list_permissions"
	SkillDriveCreateFolder     = "google_drive_create_folder"
	SkillDriveMoveFile         = "google_drive_move_file"
	SkillDriveRenameFile       = "google_drive_rename_file"
	SkillDriveDeleteFile       = "google_drive_delete_file"
	SkillDriveListRecentFiles  = "google_drive_list_recent_files"
	SkillDriveListStarredFiles = "google_drive_list_starred_files"
	SkillDriveListFilesByType  = "google_drive_list_files_by_type"
)

const (
	folderMimeType = "application/vnd.google-apps.folder"
	// content larger than this is truncated before it reaches the LLM
	maxDownloadBytes = 1 << 20

	fileListFields googleapi.Field = "nextPageToken, files(id, name, mimeType, modifiedTime, size, parents, webViewLink, iconLink)"
	metadataFields googleapi.Field = "id, name, mimeType, modifiedTime, size, parents, webViewLink, iconLink, owners, permissions, description"
)

// Google Workspace documents have no binary content and must be exported
var exportMimeTypes = map[string]string{
	"application/vnd.google-apps.document":     "text/plain",
	"application/vnd.google-apps.spreadsheet":  "text/csv",
	"application/vnd.google-apps.presentation": "text/plain",
	"application/vnd.google-apps.drawing":      "image/svg+xml",
}

func (s *Skills) driveEntries() []registry.Entry {
	handler := func(fn handlerFunc[*drive.Service]) registry.Handler {
		return wrap(s, productDrive, drive.NewService, fn)
	}
	return []registry.Entry{
		{Name: SkillDriveListFiles, Handler: handler(driveListFiles)},
		{Name: SkillDriveSearchFiles, Handler: handler(driveSearchFiles)},
		{Name: SkillDriveGetFileMetadata, Handler: handler(driveGetFileMetadata)},
		{Name: SkillDriveDownloadFile, Handler: handler(driveDownloadFile)},
		{Name: SkillDriveListFolders, Handler: handler(driveListFolders)},
		{Name: SkillDriveShareFile, Handler: handler(driveShareFile)},
		{Name: SkillDriveGetShareableLink, Handler: handler(driveGetShareableLink)},
		{Name: SkillDriveListPermissions, Handler: handler(driveListPermissions)},
		{Name: SkillDriveCreateFolder, Handler: handler(driveCreateFolder)},
		{Name: SkillDriveMoveFile, Handler: handler(driveMoveFile)},
		{Name: SkillDriveRenameFile, Handler: handler(driveRenameFile)},
		{Name: SkillDriveDeleteFile, Handler: handler(driveDeleteFile)},
		{Name: SkillDriveListRecentFiles, Handler: handler(driveListQuery("trashed = false", "modifiedTime desc"))},
		{Name: SkillDriveListStarredFiles, Handler: handler(driveListQuery("starred = true and trashed = false", ""))},
		{Name: SkillDriveListFilesByType, Handler: handler(driveListFilesByType)},
	}
}

func driveDefinition(name, displayName, description string, parameters *types.ParameterSchema) types.SkillDefinition {
	return types.SkillDefinition{
		Name:            name,
		DisplayName:     displayName,
		Description:     description,
		Category:        CategoryDrive,
		IntegrationType: types.IntegrationTypeGoogle,
		Parameters:      parameters,
	}
}

func driveDefinitions() []types.SkillDefinition {
	pageSize := func(what string) *types.ParameterSchema {
		return schema.Integer(fmt.Sprintf("Maximum number of %s to return (max 1000)", what)).WithRange(1, 1000).WithExample(20)
	}
	fileID := func(description string) *types.ParameterSchema {
		return schema.String(description).WithExample("1A2B3C4D5E6F")
	}

	return []types.SkillDefinition{
		driveDefinition(SkillDriveListFiles, "List Google Drive Files",
			"List files and folders in the user's Google Drive.",
			schema.Object(map[string]*types.ParameterSchema{
				"page_size": pageSize("files"),
				"folder_id": schema.String("Optional folder ID to list files from (defaults to root)").WithExample("root"),
			}),
		),
		driveDefinition(SkillDriveSearchFiles, "Search Google Drive Files",
			"Search for files or folders in Google Drive by name or type.",
			schema.Object(map[string]*types.ParameterSchema{
				"query":     schema.String("Search query (e.g., name contains 'report')").WithExample("name contains 'report'"),
				"page_size": pageSize("files"),
				"folder_id": schema.String("Optional folder ID to search within").WithExample("root"),
			}, "query"),
		),
		driveDefinition(SkillDriveGetFileMetadata, "Get Google Drive File Metadata",
			"Get metadata for a specific file in Google Drive.",
			schema.Object(map[string]*types.ParameterSchema{
				"file_id": fileID("The ID of the file to get metadata for"),
			}, "file_id"),
		),
		driveDefinition(SkillDriveDownloadFile, "Download Google Drive File",
			"Download the content of a file from Google Drive.",
			schema.Object(map[string]*types.ParameterSchema{
				"file_id": fileID("The ID of the file to download"),
			}, "file_id"),
		),
		driveDefinition(SkillDriveListFolders, "List Google Drive Folders",
			"List all folders in the user's Google Drive.",
			schema.Object(map[string]*types.ParameterSchema{
				"page_size":        pageSize("folders"),
				"parent_folder_id": schema.String("Optional parent folder ID to list folders from (defaults to root)").WithExample("root"),
			}),
		),
		driveDefinition(SkillDriveShareFile, "Share Google Drive File",
			"Share a file or folder with a user (viewer, commenter, editor).",
			schema.Object(map[string]*types.ParameterSchema{
				"file_id":                 fileID("ID of the file/folder to share"),
				"email":                   schema.String("Email address to share with").WithFormat(schema.FormatEmail).WithExample("user@example.com"),
				"role":                    schema.String("Role to grant").WithEnum("reader", "commenter", "writer").WithExample("reader"),
				"send_notification_email": schema.Boolean("Send notification email?").WithExample(true),
			}, "file_id", "email", "role"),
		),
		driveDefinition(SkillDriveGetShareableLink, "Get Google Drive Shareable Link",
			"Get a shareable link for a file or folder.",
			schema.Object(map[string]*types.ParameterSchema{
				"file_id":         fileID("ID of the file/folder"),
				"anyone_can_view": schema.Boolean("Make link viewable by anyone?").WithExample(false),
			}, "file_id"),
		),
		driveDefinition(SkillDriveListPermissions, "List Google Drive Permissions",
			"List who has access to a file or folder and their roles.",
			schema.Object(map[string]*types.ParameterSchema{
				"file_id": fileID("ID of the file/folder"),
			}, "file_id"),
		),
		driveDefinition(SkillDriveCreateFolder, "Create Google Drive Folder",
			"Create a new folder in Google Drive.",
			schema.Object(map[string]*types.ParameterSchema{
				"name":      schema.String("Name of the new folder").WithExample("Project Files"),
				"parent_id": schema.String("Parent folder ID (optional, defaults to root)").WithExample("root"),
			}, "name"),
		),
		driveDefinition(SkillDriveMoveFile, "Move Google Drive File",
			"Move a file or folder to a different parent folder.",
			schema.Object(map[string]*types.ParameterSchema{
				"file_id":       fileID("ID of the file/folder to move"),
				"new_parent_id": schema.String("ID of the new parent folder").WithExample("0BwwA4oUTeiV1TGRPeTVjaWRDY1E"),
			}, "file_id", "new_parent_id"),
		),
		driveDefinition(SkillDriveRenameFile, "Rename Google Drive File",
			"Rename a file or folder in Google Drive.",
			schema.Object(map[string]*types.ParameterSchema{
				"file_id":  fileID("ID of the file/folder to rename"),
				"new_name": schema.String("New name for the file/folder").WithExample("Renamed File"),
			}, "file_id", "new_name"),
		),
		driveDefinition(SkillDriveDeleteFile, "Delete Google Drive File",
			"Move a file or folder to trash.",
			schema.Object(map[string]*types.ParameterSchema{
				"file_id": fileID("ID of the file/folder to delete"),
			}, "file_id"),
		),
		driveDefinition(SkillDriveListRecentFiles, "List Recent Google Drive Files",
			"List files recently modified or accessed.",
			schema.Object(map[string]*types.ParameterSchema{
				"page_size": pageSize("files"),
			}),
		),
		driveDefinition(SkillDriveListStarredFiles, "List Starred Google Drive Files",
			"List files/folders marked as starred.",
			schema.Object(map[string]*types.ParameterSchema{
				"page_size": pageSize("files"),
			}),
		),
		driveDefinition(SkillDriveListFilesByType, "List Google Drive Files by Type",
			"List all files of a specific type (Docs, Sheets, PDFs, etc.).",
			schema.Object(map[string]*types.ParameterSchema{
				"mime_type": schema.String("MIME type to filter by (e.g., application/pdf, application/vnd.google-apps.document)").
					WithExample("application/pdf"),
				"page_size": pageSize("files"),
			}, "mime_type"),
		),
	}
}

// quote escapes a value for use inside a Drive query string literal
func quote(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	return "'" + strings.ReplaceAll(value, "'", `\'`) + "'"
}

func listFiles(ctx context.Context, svc *drive.Service, p params.Params, query, orderBy string) (*drive.FileList, error) {
	call := svc.Files.List().
		Q(query).
		PageSize(int64(p.Limit("page_size", 20, 1000))).
		Fields(fileListFields)
	if orderBy != "" {
		call = call.OrderBy(orderBy)
	}
	return call.Context(ctx).Do()
}

func fileList(key string, res *drive.FileList) map[string]any {
	files := res.Files
	if files == nil {
		files = []*drive.File{}
	}
	return map[string]any{
		"success":       true,
		key:             files,
		"nextPageToken": res.NextPageToken,
	}
}

func driveListFiles(ctx context.Context, svc *drive.Service, p params.Params) (any, error) {
	folder := p.String("folder_id")
	if folder == "" {
		folder = "root"
	}

	res, err := listFiles(ctx, svc, p, quote(folder)+" in parents and trashed = false", "")
	if err != nil {
		return nil, err
	}
	return fileList("files", res), nil
}

func driveSearchFiles(ctx context.Context, svc *drive.Service, p params.Params) (any, error) {
	query, err := p.RequireString("query")
	if err != nil {
		return nil, err
	}

	q := query + " and trashed = false"
	if folder := p.String("folder_id"); folder != "" {
		q = quote(folder) + " in parents and " + q
	}

	res, err := listFiles(ctx, svc, p, q, "")
	if err != nil {
		return nil, err
	}
	return fileList("files", res), nil
}

func driveListFolders(ctx context.Context, svc *drive.Service, p params.Params) (any, error) {
	parent := p.String("parent_folder_id")
	if parent == "" {
		parent = "root"
	}

	q := fmt.Sprintf("%s in parents and mimeType = %s and trashed = false", quote(parent), quote(folderMimeType))
	res, err := listFiles(ctx, svc, p, q, "")
	if err != nil {
		return nil, err
	}
	return fileList("folders", res), nil
}

func driveListQuery(query, orderBy string) handlerFunc[*drive.Service] {
	return func(ctx context.Context, svc *drive.Service, p params.Params) (any, error) {
		res, err := listFiles(ctx, svc, p, query, orderBy)
		if err != nil {
			return nil, err
		}
		return fileList("files", res), nil
	}
}

func driveListFilesByType(ctx context.Context, svc *drive.Service, p params.Params) (any, error) {
	mimeType, err := p.RequireString("mime_type")
	if err != nil {
		return nil, err
	}
	return driveListQuery("mimeType = "+quote(mimeType)+" and trashed = false", "")(ctx, svc, p)
}

func driveGetFileMetadata(ctx context.Context, svc *drive.Service, p params.Params) (any, error) {
	fileID, err := p.RequireString("file_id")
	if err != nil {
		return nil, err
	}

	file, err := svc.Files.Get(fileID).Fields(metadataFields).Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	out := map[string]any{"success": true, "metadata": file}
	// google docs have no stored size
	if file.Size > 0 {
		out["size"] = humanize.Bytes(uint64(file.Size))
	}
	return out, nil
}

// driveDownloadFile returns text content as is and anything else base64
// encoded, capped at maxDownloadBytes
func driveDownloadFile(ctx context.Context, svc *drive.Service, p params.Params) (any, error) {
	fileID, err := p.RequireString("file_id")
	if err != nil {
		return nil, err
	}

	file, err := svc.Files.Get(fileID).Fields("id, name, mimeType, size").Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	var resp *http.Response
	mimeType := file.MimeType
	if export, ok := exportMimeTypes[file.MimeType]; ok {
		mimeType = export
		resp, err = svc.Files.Export(fileID, export).Context(ctx).Download()
	} else {
		resp, err = svc.Files.Get(fileID).Context(ctx).Download()
	}
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file.Name, err)
	}
	truncated := len(content) > maxDownloadBytes
	if truncated {
		content = content[:maxDownloadBytes]
	}

	out := map[string]any{
		"success":   true,
		"id":        file.Id,
		"name":      file.Name,
		"mimeType":  mimeType,
		"size":      humanize.Bytes(uint64(len(content))),
		"truncated": truncated,
	}
	if isText(mimeType) && utf8.Valid(content) {
		out["encoding"] = "text"
		out["content"] = string(content)
	} else {
		out["encoding"] = "base64"
		out["content"] = base64.StdEncoding.EncodeToString(content)
	}
	return out, nil
}

func isText(mimeType string) bool {
	switch {
	case strings.HasPrefix(mimeType, "text/"):
		return true
	case strings.HasSuffix(mimeType, "json"), strings.HasSuffix(mimeType, "xml"):
		return true
	}
	return false
}

func driveShareFile(ctx context.Context, svc *drive.Service, p params.Params) (any, error) {
	fileID, err := p.RequireString("file_id")
	if err != nil {
		return nil, err
	}
	email, err := p.RequireString("email")
	if err != nil {
		return nil, err
	}
	role, err := p.RequireString("role")
	if err != nil {
		return nil, err
	}

	permission, err := svc.Permissions.Create(fileID, &drive.Permission{
		Type:         "user",
		Role:         role,
		EmailAddress: email,
	}).
		SendNotificationEmail(p.Bool("send_notification_email", true)).
		Fields("id, role, emailAddress").
		Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return map[string]any{"success": true, "permission": permission}, nil
}

func driveGetShareableLink(ctx context.Context, svc *drive.Service, p params.Params) (any, error) {
	fileID, err := p.RequireString("file_id")
	if err != nil {
		return nil, err
	}

	if p.Bool("anyone_can_view", false) {
		_, err := svc.Permissions.Create(fileID, &drive.Permission{Type: "anyone", Role: "reader"}).
			Fields("id").Context(ctx).Do()
		if err != nil {
			return nil, err
		}
	}

	file, err := svc.Files.Get(fileID).Fields("webViewLink, webContentLink").Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"success":        true,
		"webViewLink":    file.WebViewLink,
		"webContentLink": file.WebContentLink,
	}, nil
}

func driveListPermissions(ctx context.Context, svc *drive.Service, p params.Params) (any, error) {
	fileID, err := p.RequireString("file_id")
	if err != nil {
		return nil, err
	}

	res, err := svc.Permissions.List(fileID).
		Fields("permissions(id, type, role, emailAddress, domain)").
		Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return map[string]any{"success": true, "permissions": res.Permissions}, nil
}

func driveCreateFolder(ctx context.Context, svc *drive.Service, p params.Params) (any, error) {
	name, err := p.RequireString("name")
	if err != nil {
		return nil, err
	}

	folder := &drive.File{Name: name, MimeType: folderMimeType}
	if parent := p.String("parent_id"); parent != "" {
		folder.Parents = []string{parent}
	}

	created, err := svc.Files.Create(folder).Fields("id, name, mimeType, parents").Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return map[string]any{"success": true, "folder": created}, nil
}

func driveMoveFile(ctx context.Context, svc *drive.Service, p params.Params) (any, error) {
	fileID, err := p.RequireString("file_id")
	if err != nil {
		return nil, err
	}
	parent, err := p.RequireString("new_parent_id")
	if err != nil {
		return nil, err
	}

	current, err := svc.Files.Get(fileID).Fields("parents").Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	moved, err := svc.Files.Update(fileID, &drive.File{}).
		AddParents(parent).
		RemoveParents(strings.Join(current.Parents, ",")).
		Fields("id, name, parents").
		Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return map[string]any{"success": true, "file": moved}, nil
}

func driveRenameFile(ctx context.Context, svc *drive.Service, p params.Params) (any, error) {
	fileID, err := p.RequireString("file_id")
	if err != nil {
		return nil, err
	}
	name, err := p.RequireString("new_name")
	if err != nil {
		return nil, err
	}

	renamed, err := svc.Files.Update(fileID, &drive.File{Name: name}).Fields("id, name").Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return map[string]any{"success": true, "file": renamed}, nil
}

func driveDeleteFile(ctx context.Context, svc *drive.Service, p params.Params) (any, error) {
	fileID, err := p.RequireString("file_id")
	if err != nil {
		return nil, err
	}

	if _, err := svc.Files.Update(fileID, &drive.File{Trashed: true}).Fields("id, trashed").Context(ctx).Do(); err != nil {
		return nil, err
	}
	return map[string]any{"success": true, "file_id": fileID}, nil
}
