package adaptor

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"movie-feedback/internal/usecase"
	"movie-feedback/pkg/utils"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// handleServiceError maps usecase errors onto the response envelope.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var (
		validationErr *usecase.ValidationError
		notFoundErr   *usecase.NotFoundError
		integrityErr  *usecase.IntegrityError
	)

	switch {
	case errors.As(err, &validationErr):
		log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, "Validation failed", validationErr.Fields)

	case errors.As(err, &notFoundErr):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, notFoundErr.Error())

	case errors.As(err, &integrityErr):
		log.Error(operation+" failed - integrity violation",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, "Request conflicted with a concurrent change, please retry")

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// decodeJSON reads a bounded JSON body into dst, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// bodyErrors names the offending field of a decode error, or returns nil.
func bodyErrors(err error) any {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return map[string]string{
			typeErr.Field: fmt.Sprintf("Must be of type %s, got %s", typeErr.Type, typeErr.Value),
		}
	}

	if field, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
		return map[string]string{strings.Trim(field, `"`): "Unknown field"}
	}
	return nil
}
