package wshandler

import (
	ws "github.com/Temutjin2k/batoda/pkg/wsHub"
)

func errorResponse(conn *ws.Conn, message any) error {
	return conn.Send(map[string]any{
		"type":  "error",
		"error": message,
	})
}

func failedValidationResponse(conn *ws.Conn, errors map[string]string) error {
	return errorResponse(conn, errors)
}
