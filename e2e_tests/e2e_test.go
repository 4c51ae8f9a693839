//go:build e2e

package e2etests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

const (
	defaultBaseURL = "http://localhost:8080"
	timeout        = 5 * time.Second
	waitReady      = 20 * time.Second
)

var httpClient = &http.Client{Timeout: timeout}

func baseURL() string {
	if u := os.Getenv("E2E_BASE_URL"); u != "" {
		return u
	}

	return defaultBaseURL
}

func TestE2E_JoinDepositWithdrawFlow(t *testing.T) {
	waitUntilReady(t)

	player := uuid.NewString()

	t.Run("join_creates_account_with_initial_cash", func(t *testing.T) {
		code, acc := postJSON(t, "/players/"+player+"/join", map[string]any{"name": "e2e-player"})
		if code != http.StatusOK {
			t.Fatalf("join: want 200, got %d (%v)", code, acc)
		}
		if acc["cash"] != "1000.00" || acc["bank"] != "0.00" {
			t.Fatalf("join: want cash 1000.00 bank 0.00, got %v", acc)
		}
	})

	t.Run("deposit_moves_cash_to_bank", func(t *testing.T) {
		code, acc := postJSON(t, "/players/"+player+"/bank/deposit", map[string]any{"amount": "300"})
		if code != http.StatusOK {
			t.Fatalf("deposit: want 200, got %d (%v)", code, acc)
		}
		if acc["cash"] != "700.00" || acc["bank"] != "300.00" {
			t.Fatalf("after deposit: want 700.00/300.00, got %v", acc)
		}
	})

	t.Run("withdraw_more_than_bank_is_rejected", func(t *testing.T) {
		code, body := postJSON(t, "/players/"+player+"/bank/withdraw", map[string]any{"amount": "1000"})
		if code != http.StatusConflict {
			t.Fatalf("withdraw: want 409, got %d (%v)", code, body)
		}

		acc := getAccount(t, player)
		if acc["cash"] != "700.00" || acc["bank"] != "300.00" {
			t.Fatalf("after rejected withdraw: want 700.00/300.00, got %v", acc)
		}
	})
}

func TestE2E_TransferConservesMoney(t *testing.T) {
	waitUntilReady(t)

	alice := uuid.NewString()
	bob := uuid.NewString()

	for _, id := range []string{alice, bob} {
		code, body := postJSON(t, "/players/"+id+"/join", map[string]any{"name": "e2e-" + id[:8]})
		if code != http.StatusOK {
			t.Fatalf("join %s: want 200, got %d (%v)", id, code, body)
		}
	}

	code, body := postJSON(t, "/transfers", map[string]any{"from": alice, "to": bob, "amount": "123.45"})
	if code != http.StatusOK {
		t.Fatalf("transfer: want 200, got %d (%v)", code, body)
	}

	if got := getAccount(t, alice)["cash"]; got != "876.55" {
		t.Fatalf("alice cash: want 876.55, got %v", got)
	}
	if got := getAccount(t, bob)["cash"]; got != "1123.45" {
		t.Fatalf("bob cash: want 1123.45, got %v", got)
	}

	code, _ = postJSON(t, "/transfers", map[string]any{"from": alice, "to": bob, "amount": "5000"})
	if code != http.StatusConflict {
		t.Fatalf("overdraft transfer: want 409, got %d", code)
	}

	code, _ = postJSON(t, "/transfers", map[string]any{"from": alice, "to": alice, "amount": "1"})
	if code != http.StatusBadRequest {
		t.Fatalf("self transfer: want 400, got %d", code)
	}
}

func TestE2E_Validation(t *testing.T) {
	waitUntilReady(t)

	player := uuid.NewString()
	postJSON(t, "/players/"+player+"/join", map[string]any{"name": "e2e-validation"})

	cases := []struct {
		name string
		path string
		body map[string]any
		want int
	}{
		{name: "zero_add", path: "/players/" + player + "/cash/add", body: map[string]any{"amount": "0"}, want: http.StatusBadRequest},
		{name: "precision", path: "/players/" + player + "/cash/add", body: map[string]any{"amount": "1.234"}, want: http.StatusBadRequest},
		{name: "bad_player_id", path: "/players/42/cash/add", body: map[string]any{"amount": "1"}, want: http.StatusBadRequest},
		{name: "unknown_op", path: "/players/" + player + "/cash/steal", body: map[string]any{"amount": "1"}, want: http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, body := postJSON(t, tc.path, tc.body)
			if code != tc.want {
				t.Fatalf("want %d, got %d (%v)", tc.want, code, body)
			}
		})
	}
}

/* -------------------- helpers -------------------- */

func getAccount(t *testing.T, playerID string) map[string]any {
	t.Helper()

	u := baseURL() + "/players/" + playerID

	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("GET %s: want 200, got %d (%s)", u, resp.StatusCode, string(b))
	}

	var payload map[string]any

	err = json.NewDecoder(resp.Body).Decode(&payload)
	if err != nil {
		t.Fatalf("decode json: %v", err)
	}

	return payload
}

func postJSON(t *testing.T, path string, body map[string]any) (int, map[string]any) {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, baseURL()+path, bytes.NewReader(data))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	var payload map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&payload)

	return resp.StatusCode, payload
}

// waitUntilReady waits until GET /healthz responds 200 or times out.
func waitUntilReady(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), waitReady)
	defer cancel()

	u := fmt.Sprintf("%s/healthz", baseURL())

	tick := time.NewTicker(200 * time.Millisecond)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			t.Fatalf("service not ready at %s within %s", u, waitReady)
		case <-tick.C:
			req, _ := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)

			resp, err := httpClient.Do(req)
			if err != nil {
				// server still starting
				continue
			}

			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
	}
}
