package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/global-remit/teller-desk/src/internal/domain"
)

type tokenParserStub struct {
	parseFn func(token string) (domain.Teller, error)
}

func (s tokenParserStub) ParseToken(token string) (domain.Teller, error) {
	return s.parseFn(token)
}

func TestTellerAuth_PutsTellerOnContext(t *testing.T) {
	parser := tokenParserStub{parseFn: func(token string) (domain.Teller, error) {
		if token != "good-token" {
			return domain.Teller{}, errors.New("bad token")
		}
		return domain.Teller{ID: "TELLER001", Role: domain.TellerRoleTeller}, nil
	}}

	var seen domain.Teller
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		teller, ok := TellerFromContext(r.Context())
		if !ok {
			t.Fatal("expected teller on context")
		}
		seen = teller
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/till", nil)
	req.Header.Set("Authorization", "bearer good-token")

	rr := httptest.NewRecorder()
	TellerAuth(parser)(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if seen.ID != "TELLER001" {
		t.Fatalf("expected teller TELLER001, got %q", seen.ID)
	}
}

func TestTellerAuth_RejectsMissingOrInvalidToken(t *testing.T) {
	parser := tokenParserStub{parseFn: func(string) (domain.Teller, error) {
		return domain.Teller{}, errors.New("bad token")
	}}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run")
	})

	for name, header := range map[string]string{
		"missing": "",
		"basic":   "Basic VGVsbGVyRGVzazprZXk=",
		"empty":   "Bearer ",
		"invalid": "Bearer forged",
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/till", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}

			rr := httptest.NewRecorder()
			TellerAuth(parser)(next).ServeHTTP(rr, req)

			if rr.Code != http.StatusUnauthorized {
				t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
			}
		})
	}
}
