package transport

// Envelope is the uniform response body: a status discriminator plus
// either data (success) or a machine-readable code with a message (error).
type Envelope struct {
	Status string      `json:"status"`
	Code   string      `json:"code,omitempty"`
	Data   interface{} `json:"data,omitempty"`
	Error  interface{} `json:"error,omitempty"`
	Meta   interface{} `json:"meta,omitempty"`
}

func NewSuccess(data interface{}, meta interface{}) Envelope {
	return Envelope{Status: "success", Data: data, Meta: meta}
}

func NewError(code string, err interface{}, meta interface{}) Envelope {
	return Envelope{Status: "error", Code: code, Error: err, Meta: meta}
}
