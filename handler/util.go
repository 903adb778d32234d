package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// maxBodyBytes bounds request bodies; every payload here is a single field.
const maxBodyBytes = 1 << 20

func decode(r *http.Request, into interface{}) error {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, into)
}

// respond writes data as the JSON body. A nil payload writes the status alone.
func respond(ctx context.Context, rw http.ResponseWriter, status int, data interface{}) {
	_, span := otel.Tracer("leadgate/handler").Start(ctx, "handler.respond",
		trace.WithAttributes(attribute.Int("http.status_code", status)))
	defer span.End()

	if data == nil {
		rw.WriteHeader(status)
		return
	}

	body, err := json.Marshal(data)
	if err != nil {
		span.RecordError(err)
		http.Error(rw, internalErrMsg, http.StatusInternalServerError)
		return
	}

	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	rw.Write(body)
}

func respondErr(ctx context.Context, rw http.ResponseWriter, status int, err error) {
	respondMsg(ctx, rw, status, err.Error())
}

// errorResponse is the body of every non-2xx answer.
type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func respondMsg(ctx context.Context, rw http.ResponseWriter, status int, msg string) {
	respond(ctx, rw, status, errorResponse{
		Code:  http.StatusText(status),
		Error: msg,
	})
}
