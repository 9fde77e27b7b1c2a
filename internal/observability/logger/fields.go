package logger

import (
	"time"

	"go.uber.org/zap"
)

// =================================================================================
// CAMPOS ESTÁNDAR - HTTP
// =================================================================================

// RequestID crea un campo para el ID del request.
func RequestID(v string) zap.Field {
	return zap.String("request_id", v)
}

// Method crea un campo para el método HTTP.
func Method(v string) zap.Field {
	return zap.String("method", v)
}

// Path crea un campo para el path del request.
func Path(v string) zap.Field {
	return zap.String("path", v)
}

// Status crea un campo para el status code HTTP.
func Status(v int) zap.Field {
	return zap.Int("status", v)
}

// Bytes crea un campo para los bytes de respuesta.
func Bytes(v int) zap.Field {
	return zap.Int("bytes", v)
}

// DurationMs crea un campo para la duración en milisegundos.
func DurationMs(v int64) zap.Field {
	return zap.Int64("duration_ms", v)
}

// Duration crea un campo para la duración del request.
func Duration(v time.Duration) zap.Field {
	return zap.Duration("duration", v)
}

// =================================================================================
// CAMPOS ESTÁNDAR - NEGOCIO (workspace / instalación)
// =================================================================================

// TeamID crea un campo para el team de Slack.
func TeamID(v string) zap.Field {
	return zap.String("team_id", v)
}

// EnterpriseID crea un campo para la organización enterprise de Slack.
func EnterpriseID(v string) zap.Field {
	return zap.String("enterprise_id", v)
}

// UserID crea un campo para el usuario de Slack.
func UserID(v string) zap.Field {
	return zap.String("user_id", v)
}

// BotUserID crea un campo para el bot user de la instalación.
func BotUserID(v string) zap.Field {
	return zap.String("bot_user_id", v)
}

// EventType crea un campo para el tipo de evento de Slack.
func EventType(v string) zap.Field {
	return zap.String("event_type", v)
}

// Flow crea un campo para el flow del asistente.
func Flow(v string) zap.Field {
	return zap.String("flow", v)
}

// =================================================================================
// CAMPOS ESTÁNDAR - ARQUITECTURA
// =================================================================================

// Layer identifica la capa (controller, service, store).
func Layer(v string) zap.Field {
	return zap.String("layer", v)
}

// Component identifica el componente dentro de la capa.
func Component(v string) zap.Field {
	return zap.String("component", v)
}

// Op identifica la operación.
func Op(v string) zap.Field {
	return zap.String("op", v)
}

// Err crea un campo para un error.
func Err(err error) zap.Field {
	return zap.Error(err)
}

// String re-exporta zap.String para no importar zap en los call sites simples.
func String(k, v string) zap.Field {
	return zap.String(k, v)
}

// Int re-exporta zap.Int.
func Int(k string, v int) zap.Field {
	return zap.Int(k, v)
}

// Any re-exporta zap.Any.
func Any(k string, v any) zap.Field {
	return zap.Any(k, v)
}
