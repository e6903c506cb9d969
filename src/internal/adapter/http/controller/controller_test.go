package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/global-remit/teller-desk/src/internal/adapter/http/middleware"
	"github.com/global-remit/teller-desk/src/internal/adapter/http/models"
	"github.com/global-remit/teller-desk/src/internal/commons"
	"github.com/global-remit/teller-desk/src/internal/domain"
	"github.com/global-remit/teller-desk/src/internal/usecase/services"
)

type sendMoneyStub struct {
	SendMoneyService
	navigateFn func(ctx context.Context, tellerID string, req models.NavigateRequest) (commons.Response[models.SessionResponse], error)
}

func (s sendMoneyStub) Navigate(ctx context.Context, tellerID string, req models.NavigateRequest) (commons.Response[models.SessionResponse], error) {
	return s.navigateFn(ctx, tellerID, req)
}

type transferStub struct {
	TransferService
	receiptFn func(ctx context.Context, reference string) (commons.Response[models.ReceiptResponse], error)
}

func (s transferStub) GetReceipt(ctx context.Context, reference string) (commons.Response[models.ReceiptResponse], error) {
	return s.receiptFn(ctx, reference)
}

type tillStub struct {
	TillService
	getTillFn func(ctx context.Context, tellerID string) (commons.Response[models.TillResponse], error)
}

func (s tillStub) GetTill(ctx context.Context, tellerID string) (commons.Response[models.TillResponse], error) {
	return s.getTillFn(ctx, tellerID)
}

type clientStub struct {
	ClientService
	createKYCFn func(ctx context.Context, tellerID string, req models.KYCVerificationRequest) (commons.Response[models.KYCVerificationResponse], error)
}

func (s clientStub) CreateKYCVerification(ctx context.Context, tellerID string, req models.KYCVerificationRequest) (commons.Response[models.KYCVerificationResponse], error) {
	return s.createKYCFn(ctx, tellerID, req)
}

func asTeller(req *http.Request, id string) *http.Request {
	return req.WithContext(middleware.WithTeller(req.Context(), domain.Teller{ID: id, Role: domain.TellerRoleTeller}))
}

func TestStatusFor(t *testing.T) {
	cases := map[string]int{
		"validation failed":           http.StatusBadRequest,
		"Client not found":            http.StatusNotFound,
		services.MsgSessionNotFound:   http.StatusNotFound,
		"Register already open":       http.StatusConflict,
		"Insufficient balance":        http.StatusUnprocessableEntity,
		services.MsgStepIncomplete:    http.StatusUnprocessableEntity,
		services.MsgTwoFactorRequired: http.StatusUnprocessableEntity,
		services.MsgTransferFailed:    http.StatusBadGateway,
		services.MsgUnexpectedError:   http.StatusInternalServerError,
	}
	for message, want := range cases {
		if got := statusFor(message); got != want {
			t.Fatalf("statusFor(%q) = %d, want %d", message, got, want)
		}
	}
}

func TestSendMoneyNavigateUsesTellerFromContext(t *testing.T) {
	var gotTeller string
	stub := sendMoneyStub{navigateFn: func(_ context.Context, tellerID string, req models.NavigateRequest) (commons.Response[models.SessionResponse], error) {
		gotTeller = tellerID
		if req.Direction != "next" {
			t.Fatalf("expected direction next, got %q", req.Direction)
		}
		return commons.ErrorResponseWithData(services.MsgStepIncomplete, models.SessionResponse{SessionID: req.SessionID, ActiveStep: 1}, "Please select a sender"), errors.New("step incomplete")
	}}

	mux := http.NewServeMux()
	NewSendMoneyController(stub).RegisterRoutes(mux, nil)

	req := httptest.NewRequest(http.MethodPost, "/send-money/navigate", strings.NewReader(`{"sessionId":"s-1","direction":"next"}`))
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, asTeller(req, "TELLER001"))

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status %d, got %d", http.StatusUnprocessableEntity, rr.Code)
	}
	if gotTeller != "TELLER001" {
		t.Fatalf("expected teller TELLER001, got %q", gotTeller)
	}

	var body commons.Response[models.SessionResponse]
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Data == nil || body.Data.SessionID != "s-1" {
		t.Fatalf("expected session data in error response, got %+v", body.Data)
	}
}

func TestSendMoneyRequiresTeller(t *testing.T) {
	stub := sendMoneyStub{navigateFn: func(context.Context, string, models.NavigateRequest) (commons.Response[models.SessionResponse], error) {
		t.Fatal("service must not be called")
		return commons.Response[models.SessionResponse]{}, nil
	}}

	mux := http.NewServeMux()
	NewSendMoneyController(stub).RegisterRoutes(mux, nil)

	req := httptest.NewRequest(http.MethodPost, "/send-money/navigate", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
}

func TestSendMoneyRejectsBadBodyAndMethod(t *testing.T) {
	mux := http.NewServeMux()
	NewSendMoneyController(sendMoneyStub{}).RegisterRoutes(mux, nil)

	req := httptest.NewRequest(http.MethodPost, "/send-money/navigate", strings.NewReader(`{`))
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, asTeller(req, "TELLER001"))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/send-money/navigate", nil)
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, asTeller(req, "TELLER001"))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status %d, got %d", http.StatusMethodNotAllowed, rr.Code)
	}
}

func TestTransferReceiptStreamsPDF(t *testing.T) {
	stub := transferStub{receiptFn: func(_ context.Context, reference string) (commons.Response[models.ReceiptResponse], error) {
		if reference == "missing" {
			return commons.ErrorResponse[models.ReceiptResponse]("Transfer not found"), commons.ErrRecordNotFound
		}
		return commons.SuccessResponse("receipt generated successfully", models.ReceiptResponse{
			Reference:   reference,
			FileName:    "receipt-" + reference + ".pdf",
			ContentType: "application/pdf",
			Content:     []byte("%PDF-1.3"),
		}), nil
	}}

	mux := http.NewServeMux()
	NewTransferController(stub).RegisterRoutes(mux, nil)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/transfers/receipt?reference=REF1", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("expected application/pdf, got %q", ct)
	}
	if !strings.Contains(rr.Header().Get("Content-Disposition"), "receipt-REF1.pdf") {
		t.Fatalf("unexpected disposition %q", rr.Header().Get("Content-Disposition"))
	}
	if rr.Body.String() != "%PDF-1.3" {
		t.Fatalf("unexpected body %q", rr.Body.String())
	}

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/transfers/receipt?reference=missing", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rr.Code)
	}
}

func TestGetTillForAnotherTellerNeedsAdmin(t *testing.T) {
	var gotTeller string
	stub := tillStub{getTillFn: func(_ context.Context, tellerID string) (commons.Response[models.TillResponse], error) {
		gotTeller = tellerID
		return commons.SuccessResponse("till retrieved successfully", models.TillResponse{TellerID: tellerID}), nil
	}}

	mux := http.NewServeMux()
	NewTillController(stub).RegisterRoutes(mux, nil)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, asTeller(httptest.NewRequest(http.MethodGet, "/till?tellerId=TELLER002", nil), "TELLER001"))
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected status %d, got %d", http.StatusForbidden, rr.Code)
	}
	if gotTeller != "" {
		t.Fatalf("service must not be called, got teller %q", gotTeller)
	}

	req := httptest.NewRequest(http.MethodGet, "/till?tellerId=TELLER002", nil)
	req = req.WithContext(middleware.WithTeller(req.Context(), domain.Teller{ID: "ADMIN01", Role: domain.TellerRoleAdmin}))
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if gotTeller != "TELLER002" {
		t.Fatalf("expected till of TELLER002, got %q", gotTeller)
	}
}

func TestCreateKYCVerificationRecordsTeller(t *testing.T) {
	var gotTeller string
	stub := clientStub{createKYCFn: func(_ context.Context, tellerID string, req models.KYCVerificationRequest) (commons.Response[models.KYCVerificationResponse], error) {
		gotTeller = tellerID
		return commons.SuccessResponse("kyc verification created successfully", models.KYCVerificationResponse{ClientID: req.ClientID, Status: "pending"}), nil
	}}

	mux := http.NewServeMux()
	NewClientController(stub).RegisterRoutes(mux, nil)

	req := httptest.NewRequest(http.MethodPost, "/clients/kyc", strings.NewReader(`{"clientId":"CUST1001","documentType":"passport"}`))
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, asTeller(req, "TELLER001"))

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, rr.Code)
	}
	if gotTeller != "TELLER001" {
		t.Fatalf("expected teller TELLER001, got %q", gotTeller)
	}

	req = httptest.NewRequest(http.MethodPost, "/clients/kyc", strings.NewReader(`{}`))
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d without a teller, got %d", http.StatusUnauthorized, rr.Code)
	}
}
