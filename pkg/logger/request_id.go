package logger

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HeaderRequestID - HTTP-заголовок с идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

// MaxRequestIDLength ограничивает длину входящего идентификатора.
const MaxRequestIDLength = 128

type requestIDKey struct{}

// ResolveRequestID возвращает входящий идентификатор, если его можно писать в логи
// и в заголовок ответа, иначе новый UUID. Допустимы только видимые ASCII-символы.
func ResolveRequestID(incoming string) string {
	if isValidRequestID(incoming) {
		return incoming
	}
	return GenerateRequestID()
}

func isValidRequestID(id string) bool {
	if id == "" || len(id) > MaxRequestIDLength {
		return false
	}
	for i := range len(id) {
		if id[i] < '!' || id[i] > '~' {
			return false
		}
	}
	return true
}

// NewRequestIDContext кладет в контекст идентификатор запроса после ResolveRequestID.
func NewRequestIDContext(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, ResolveRequestID(requestID))
}

// NewRequestContext готовит контекст запроса: логгер base и идентификатор.
// Возвращает также итоговый идентификатор для заголовка ответа.
func NewRequestContext(ctx context.Context, base *Logger, incoming string) (context.Context, string) {
	ctx = NewRequestIDContext(NewContext(ctx, base), incoming)
	id, _ := GetRequestID(ctx)
	return ctx, id
}

// GetRequestID извлекает идентификатор запроса из контекста.
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok
}

// GenerateRequestID генерирует новый идентификатор запроса.
func GenerateRequestID() string {
	return uuid.NewString()
}

// WithRequestID добавляет к логгеру поле request_id, если оно есть в контексте.
func (l *Logger) WithRequestID(ctx context.Context) *Logger {
	id, ok := GetRequestID(ctx)
	if !ok {
		return l
	}
	return l.With(zap.String(RequestID, id))
}
