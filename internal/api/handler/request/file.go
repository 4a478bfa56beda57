package request

type CreateFile struct {
	Filename string `json:"filename"`
	Content  string `json:"content" validate:"required"`
}
