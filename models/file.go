package models

import "time"

// StoredFile is one saved export as listed to clients.
type StoredFile struct {
	Filename   string    `json:"filename"`
	URL        string    `json:"url"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploadedAt"`
}
