package errors

import (
	"net/http"
	"testing"
)

func TestTaxonomyIsClosed(t *testing.T) {
	protocol := []error{
		ErrInvalidRequest,
		ErrInvalidClient,
		ErrInvalidGrant,
		ErrUnauthorizedClient,
		ErrUnsupportedGrantType,
		ErrInvalidScope,
		ErrAccessDenied,
		ErrUnsupportedResponseType,
		ErrServerError,
	}

	for _, err := range protocol {
		if _, ok := Descriptions[err]; !ok {
			t.Errorf("%v has no description", err)
		}
		if _, ok := StatusCodes[err]; !ok {
			t.Errorf("%v has no status code", err)
		}
	}
	if len(Descriptions) != len(protocol) {
		t.Errorf("Descriptions has %d entries, want %d", len(Descriptions), len(protocol))
	}
}

func TestStatusCodes(t *testing.T) {
	if StatusCodes[ErrInvalidClient] != http.StatusUnauthorized {
		t.Error("invalid_client must answer 401")
	}
	if StatusCodes[ErrAccessDenied] != http.StatusUnauthorized {
		t.Error("access_denied must answer 401")
	}
	if StatusCodes[ErrServerError] != http.StatusInternalServerError {
		t.Error("server_error must answer 500")
	}
	for err, code := range StatusCodes {
		switch err {
		case ErrInvalidClient, ErrAccessDenied, ErrServerError:
		default:
			if code != http.StatusBadRequest {
				t.Errorf("%v answers %d, want 400", err, code)
			}
		}
	}
}

func TestResponseSetHeader(t *testing.T) {
	re := NewResponse(ErrInvalidClient, StatusCodes[ErrInvalidClient])
	re.SetHeader("WWW-Authenticate", `Basic realm="bookmarkd"`)
	if got := re.Header.Get("WWW-Authenticate"); got != `Basic realm="bookmarkd"` {
		t.Errorf("header = %q", got)
	}
}
