package api

import (
	"errors"

	"github.com/blogpostapp/backend/internal/http/handlers/shared"
	"github.com/blogpostapp/backend/internal/http/response"
	"github.com/blogpostapp/backend/internal/service"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, msg string, err error) {
	shared.RespondError(c, code, msg, err)
}

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

var postErrorRules = []mappedHandlerError{
	{target: service.ErrPostNotFound, code: response.CodeNotFound, msg: "Blog post not found"},
	{target: service.ErrInvalidStatus, code: response.CodeBadRequest, msg: "Invalid post status"},
}

var commentErrorRules = []mappedHandlerError{
	{target: service.ErrCommentNotFound, code: response.CodeNotFound, msg: "Comment not found"},
	{target: service.ErrPostNotFound, code: response.CodeNotFound, msg: "Blog post not found"},
}

// respondWithMappedError 先匹配校验错误，再按映射表匹配业务错误，兜底按服务端错误处理。
func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackMsg string) {
	if ve, ok := service.AsValidationError(err); ok {
		respondValidationError(c, ve)
		return
	}
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, response.CodeInternal, fallbackMsg, err)
}

func respondValidationError(c *gin.Context, ve *service.ValidationError) {
	response.ErrorWithData(c, response.CodeBadRequest, ve.Error(), gin.H{
		"violations": ve.Violations,
	})
}
