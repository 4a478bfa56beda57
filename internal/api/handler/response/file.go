package response

type CreateFile struct {
	FileId   string `json:"fileId"`
	Filename string `json:"filename"`
	Size     int    `json:"size"`
}
