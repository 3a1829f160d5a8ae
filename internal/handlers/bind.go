package handlers

import (
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/Manohar-jami/Job-Portal-Api/internal/apperrors"
	"github.com/Manohar-jami/Job-Portal-Api/internal/auth"
	"github.com/Manohar-jami/Job-Portal-Api/internal/dtos"
	"github.com/Manohar-jami/Job-Portal-Api/internal/middleware"
)

// bindJSON decodes and validates the body. An empty body is validated as an
// empty object so missing fields are reported per field.
func bindJSON(c *gin.Context, req interface{}) error {
	err := c.ShouldBindJSON(req)
	if errors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(req)
	}
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation("validation failed", dtos.FieldErrors(verrs))
	}
	return apperrors.Validation("Invalid JSON format: "+err.Error(), nil)
}

// pathID parses a numeric path parameter. Anything else never matched a
// resource, so it is reported as notFound.
func pathID(c *gin.Context, name, notFound string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NotFound(notFound)
	}
	return uint(id), nil
}

func principal(c *gin.Context) (auth.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return auth.Principal{}, apperrors.Unauthorized("Authentication credentials were not provided.")
	}
	return p, nil
}
