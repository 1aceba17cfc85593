package dto

type FileUploadRequest struct {
	NoteID int64 `json:"noteId" form:"noteId" binding:"required,gte=1"`
	// voice, file or image
	Kind string `json:"kind" form:"kind" binding:"required,oneof=voice file image"`
	// IncludeInContext resolves per kind when absent: voice and image
	// attachments default to included, plain files must opt in.
	IncludeInContext *bool `json:"includeInContext" form:"includeInContext"`
}

type FileUploadResponse struct {
	Path string `json:"path"`
	Name string `json:"name"`
	Size int64  `json:"size"`
}

type FileGetRequest struct {
	Path  string `json:"path" form:"path" binding:"required"`
	Token string `json:"token" form:"token" binding:"required"`
}

type NotificationListRequest struct {
	Page     int `json:"page" form:"page"`
	PageSize int `json:"pageSize" form:"pageSize"`
}

type NotificationReadRequest struct {
	ID int64 `json:"id" form:"id" binding:"required,gte=1"`
}
