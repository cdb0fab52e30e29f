package adaptor

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"movie-feedback/internal/usecase"

	"go.uber.org/zap/zaptest"
)

func TestHandleServiceError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &usecase.ValidationError{Field: "star", Message: "bad", Fields: map[string]string{"star": "bad"}}, http.StatusBadRequest},
		{"not_found", &usecase.NotFoundError{Resource: "movie", ID: "x"}, http.StatusNotFound},
		{"wrapped_not_found", fmt.Errorf("outer: %w", &usecase.NotFoundError{Resource: "review", ID: "y"}), http.StatusNotFound},
		{"integrity", &usecase.IntegrityError{Op: "submit rating", Err: errors.New("conflict")}, http.StatusConflict},
		{"other", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleServiceError(rec, zaptest.NewLogger(t), tc.err, "test")

			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}

			var body struct {
				Status bool              `json:"status"`
				Errors map[string]string `json:"errors"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Status {
				t.Fatal("error responses must carry status=false")
			}
			if tc.name == "validation" && body.Errors["star"] != "bad" {
				t.Fatalf("expected field errors, got %v", body.Errors)
			}
		})
	}
}

func TestDecodeJSON_NamesField(t *testing.T) {
	type body struct {
		MovieID string `json:"movie_id"`
		Star    int    `json:"star"`
	}

	cases := map[string]struct {
		payload string
		field   string
	}{
		"string_star":    {`{"movie_id":"x","star":"5"}`, "star"},
		"fractional":     {`{"movie_id":"x","star":3.5}`, "star"},
		"unknown_field":  {`{"movie_id":"x","star":4,"extra":true}`, "extra"},
		"numeric_string": {`{"movie_id":7,"star":4}`, "movie_id"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.payload))
			var dst body
			err := decodeJSON(httptest.NewRecorder(), req, &dst)
			if err == nil {
				t.Fatal("expected decode error")
			}

			fields, ok := bodyErrors(err).(map[string]string)
			if !ok || fields[tc.field] == "" {
				t.Fatalf("expected error on %q, got %v", tc.field, bodyErrors(err))
			}
		})
	}

	if got := bodyErrors(errors.New("unexpected EOF")); got != nil {
		t.Fatalf("expected nil for unrelated errors, got %v", got)
	}
}
