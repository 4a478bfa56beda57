package request

type ExecutePython struct {
	Code string `json:"code" validate:"required"`
}
