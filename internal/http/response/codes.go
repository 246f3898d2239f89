package response

// 业务状态码，除 CodeOK 外与 HTTP 状态码取值保持一致
const (
	CodeOK              = 0
	CodeBadRequest      = 400
	CodeNotFound        = 404
	CodeTooManyRequests = 429
	CodeInternal        = 500
)
