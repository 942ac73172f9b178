package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	ledgerhttp "tribunal/contexts/finance-core/settlement-ledger/transport/http"
)

func TestLedgerCreditAndBalance(t *testing.T) {
	server := newTestServer()

	rr := doJSON(server, http.MethodPost, "/api/ledger/v1/accounts/account-a/credit", "", `{"amount":500}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("credit: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var credited ledgerhttp.CreditResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &credited); err != nil {
		t.Fatalf("decode credit: %v", err)
	}
	if credited.Account.AccountID != "account-a" || credited.Account.Balance != 500 {
		t.Fatalf("unexpected credit result %+v", credited)
	}

	rr = doJSON(server, http.MethodGet, "/api/ledger/v1/accounts/account-a/balance", "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("balance: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var account ledgerhttp.AccountDTO
	if err := json.Unmarshal(rr.Body.Bytes(), &account); err != nil {
		t.Fatalf("decode balance: %v", err)
	}
	if account.Balance != 500 {
		t.Fatalf("expected balance 500, got %d", account.Balance)
	}
}

func TestLedgerBalanceUnknownAccount(t *testing.T) {
	server := newTestServer()
	rr := doJSON(server, http.MethodGet, "/api/ledger/v1/accounts/ghost/balance", "", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestLedgerTransferInsufficientFunds(t *testing.T) {
	server := newTestServer()
	rr := doJSON(server, http.MethodPost, "/api/ledger/v1/accounts/account-a/credit", "", `{"amount":50}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("credit: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doJSON(server, http.MethodPost, "/api/ledger/v1/transfers", "", `{"from_account":"account-a","to_account":"account-b","amount":60,"reason":"settlement"}`)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d body=%s", rr.Code, rr.Body.String())
	}
	var errResp ledgerhttp.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if errResp.Code != "insufficient_funds" {
		t.Fatalf("unexpected error code %q", errResp.Code)
	}
}

func TestLedgerTransferReplaysOnIdempotencyKey(t *testing.T) {
	server := newTestServer()
	rr := doJSON(server, http.MethodPost, "/api/ledger/v1/accounts/account-a/credit", "", `{"amount":500}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("credit: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	body := `{"from_account":"account-a","to_account":"account-b","amount":100,"reason":"settlement"}`
	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/ledger/v1/transfers", bytes.NewReader([]byte(body)))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Idempotency-Key", "transfer-key-1")
		rec := httptest.NewRecorder()
		server.mux.ServeHTTP(rec, req)
		return rec
	}

	first := send()
	if first.Code != http.StatusOK {
		t.Fatalf("first transfer: expected 200, got %d body=%s", first.Code, first.Body.String())
	}
	var firstResp ledgerhttp.TransferResponse
	if err := json.Unmarshal(first.Body.Bytes(), &firstResp); err != nil {
		t.Fatalf("decode first transfer: %v", err)
	}

	second := send()
	if second.Code != http.StatusOK {
		t.Fatalf("retried transfer: expected 200, got %d body=%s", second.Code, second.Body.String())
	}
	var secondResp ledgerhttp.TransferResponse
	if err := json.Unmarshal(second.Body.Bytes(), &secondResp); err != nil {
		t.Fatalf("decode retried transfer: %v", err)
	}
	if !secondResp.Replayed || secondResp.Transfer.TransferID != firstResp.Transfer.TransferID {
		t.Fatalf("expected replay of %s, got %+v", firstResp.Transfer.TransferID, secondResp)
	}

	rr = doJSON(server, http.MethodGet, "/api/ledger/v1/accounts/account-a/balance", "", "")
	var account ledgerhttp.AccountDTO
	if err := json.Unmarshal(rr.Body.Bytes(), &account); err != nil {
		t.Fatalf("decode balance: %v", err)
	}
	if account.Balance != 400 {
		t.Fatalf("retry must not double-spend, got balance %d", account.Balance)
	}
}

func TestLedgerTransferRejectsMalformedJSON(t *testing.T) {
	server := newTestServer()
	rr := doJSON(server, http.MethodPost, "/api/ledger/v1/transfers", "", `{"from_account":`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestLedgerHistoryAndSettlementsEndpoints(t *testing.T) {
	server := newTestServer()
	rr := doJSON(server, http.MethodPost, "/api/ledger/v1/accounts/account-a/credit", "", `{"amount":500}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("credit: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	rr = doJSON(server, http.MethodPost, "/api/ledger/v1/transfers", "", `{"from_account":"account-a","to_account":"account-b","amount":100,"reason":"first"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("transfer: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	rr = doJSON(server, http.MethodPost, "/api/ledger/v1/transfers", "", `{"from_account":"account-a","to_account":"account-b","amount":50,"reason":"second"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("transfer: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doJSON(server, http.MethodGet, "/api/ledger/v1/accounts/account-a/transfers?limit=10", "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("history: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var history ledgerhttp.HistoryResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &history); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(history.Items) != 2 || history.Items[0].Reason != "second" {
		t.Fatalf("expected newest-first history, got %+v", history.Items)
	}

	rr = doJSON(server, http.MethodGet, "/api/ledger/v1/settlements", "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("settlements: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var settlements ledgerhttp.SettlementsResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &settlements); err != nil {
		t.Fatalf("decode settlements: %v", err)
	}
	if len(settlements.Items) != 0 {
		t.Fatalf("expected no settlements without resolutions, got %+v", settlements.Items)
	}
}
