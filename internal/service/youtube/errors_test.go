package youtube

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/googleapi"
)

func TestClassifyError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		err           error
		wantNotFound  bool
		wantTransient bool
	}{
		{
			name:         "404 maps to not found",
			err:          &googleapi.Error{Code: http.StatusNotFound},
			wantNotFound: true,
		},
		{
			name: "403 comments disabled maps to not found",
			err: &googleapi.Error{
				Code: http.StatusForbidden,
				Errors: []googleapi.ErrorItem{
					{Reason: "commentsDisabled"},
				},
			},
			wantNotFound: true,
		},
		{
			name: "403 quota exceeded maps to transient",
			err: &googleapi.Error{
				Code: http.StatusForbidden,
				Errors: []googleapi.ErrorItem{
					{Reason: "quotaExceeded"},
				},
			},
			wantTransient: true,
		},
		{
			name:          "429 maps to transient",
			err:           &googleapi.Error{Code: http.StatusTooManyRequests},
			wantTransient: true,
		},
		{
			name:          "500 maps to transient",
			err:           &googleapi.Error{Code: http.StatusInternalServerError},
			wantTransient: true,
		},
		{
			name:          "503 maps to transient",
			err:           &googleapi.Error{Code: http.StatusServiceUnavailable},
			wantTransient: true,
		},
		{
			name:          "plain network error maps to transient",
			err:           errors.New("dial tcp: connection refused"),
			wantTransient: true,
		},
		{
			name: "400 stays unclassified",
			err:  &googleapi.Error{Code: http.StatusBadRequest},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := classifyError("fetch test", tt.err)
			assert.Equal(t, tt.wantNotFound, IsNotFound(got))
			assert.Equal(t, tt.wantTransient, IsTransient(got))
		})
	}
}
