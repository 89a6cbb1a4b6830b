package serverutils

type SuccessResponseBody[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type ErrorResponseBody struct {
	Success  bool          `json:"success"`
	Code     int           `json:"code"`
	Message  string        `json:"message"`
	Redirect string        `json:"redirect,omitempty"`
	Errors   []ErrorDetail `json:"errors,omitempty"`
}

type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func SuccessResponse[T any](message string, data T) SuccessResponseBody[T] {
	return SuccessResponseBody[T]{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(code int, message string) ErrorResponseBody {
	return ErrorResponseBody{
		Success: false,
		Code:    code,
		Message: message,
	}
}

func RedirectErrorResponse(code int, message, redirect string) ErrorResponseBody {
	res := ErrorResponse(code, message)
	res.Redirect = redirect
	return res
}

func ValidationErrorResponse(details []ErrorDetail) ErrorResponseBody {
	return ErrorResponseBody{
		Success: false,
		Code:    400,
		Message: "validation failed",
		Errors:  details,
	}
}
