package utils

// ResponseData is the envelope every REST endpoint returns.
type ResponseData struct {
	Status  int         `json:"status"`
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Results interface{} `json:"results,omitempty"`
}

// PanicIfNeeded panics with the error itself so the recovery middleware
// can inspect its type and map it to the right HTTP status.
func PanicIfNeeded(err error) {
	if err != nil {
		panic(err)
	}
}
