package placesapi

import (
	"net/http"
	"testing"
)

func TestAPIError(t *testing.T) {
	tests := []struct {
		name        string
		err         *APIError
		expectedMsg string
		isRetryable bool
		isNotFound  bool
		isBadReq    bool
	}{
		{
			name: "bad request",
			err: &APIError{
				StatusCode: http.StatusBadRequest,
				Message:    "Please provide city, category, and query.",
			},
			expectedMsg: "places API error 400: Please provide city, category, and query.",
			isBadReq:    true,
		},
		{
			name: "unknown city",
			err: &APIError{
				StatusCode: http.StatusNotFound,
				Message:    "No data available for Ipoh hotels.",
			},
			expectedMsg: "places API error 404: No data available for Ipoh hotels.",
			isNotFound:  true,
		},
		{
			name: "server error",
			err: &APIError{
				StatusCode: http.StatusInternalServerError,
				Message:    "Server error: boom",
			},
			expectedMsg: "places API error 500: Server error: boom",
			isRetryable: true,
		},
		{
			name: "rate limited",
			err: &APIError{
				StatusCode: http.StatusTooManyRequests,
				Message:    "slow down",
			},
			expectedMsg: "places API error 429: slow down",
			isRetryable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expectedMsg {
				t.Errorf("Error() = %q, want %q", got, tt.expectedMsg)
			}
			if got := tt.err.IsRetryable(); got != tt.isRetryable {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.isRetryable)
			}
			if got := tt.err.IsNotFound(); got != tt.isNotFound {
				t.Errorf("IsNotFound() = %v, want %v", got, tt.isNotFound)
			}
			if got := tt.err.IsBadRequest(); got != tt.isBadReq {
				t.Errorf("IsBadRequest() = %v, want %v", got, tt.isBadReq)
			}
		})
	}
}
