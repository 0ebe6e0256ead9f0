package http

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/pos-restaurante/internal/domain/entity"
	"github.com/jhoicas/pos-restaurante/internal/domain/repository"
)

// Campos que nunca se guardan en la auditoría.
var sensitiveFields = map[string]struct{}{
	"password":   {},
	"credential": {},
	"token":      {},
}

const redacted = "[REDACTED]"

// ActivityMiddleware registra cada petición mutante (POST/PUT/PATCH/DELETE) después de responder.
// Un fallo al guardar solo se loguea; nunca cambia la respuesta.
func ActivityMiddleware(repo repository.ActivityLogRepository, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if !isMutating(c.Method()) {
			return err
		}

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		entry := &entity.ActivityLog{
			UserID:      GetUserID(c),
			Role:        GetRole(c),
			Action:      c.Method() + " " + c.Route().Path,
			Description: c.Method() + " " + c.OriginalURL(),
			IPAddress:   c.IP(),
			UserAgent:   c.Get(fiber.HeaderUserAgent),
			Status:      status,
			Metadata:    sanitizeBody(c.Body()),
		}
		if logErr := repo.Create(context.WithoutCancel(c.UserContext()), entry); logErr != nil {
			log.Warn().Err(logErr).Str("action", entry.Action).Msg("no se pudo registrar la actividad")
		}
		return err
	}
}

func isMutating(method string) bool {
	switch method {
	case fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete:
		return true
	}
	return false
}

// sanitizeBody devuelve el cuerpo JSON con los campos sensibles ocultos, o nil si no es JSON.
func sanitizeBody(body []byte) json.RawMessage {
	if len(body) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil
	}
	out, err := json.Marshal(redact(v))
	if err != nil {
		return nil
	}
	return out
}

func redact(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			if _, ok := sensitiveFields[strings.ToLower(k)]; ok {
				t[k] = redacted
				continue
			}
			t[k] = redact(val)
		}
		return t
	case []any:
		for i := range t {
			t[i] = redact(t[i])
		}
		return t
	default:
		return v
	}
}
