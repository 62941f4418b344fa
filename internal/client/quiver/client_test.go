package quiver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSenateTrading_FiltersByTicker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/beta/live/senatetrading" {
			t.Errorf("path=%s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`[
			{"Senator":"A. Person","Ticker":"ABC","Transaction":"Purchase","Range":"$1,001 - $15,000","Amount":1001,"Party":"I"},
			{"Senator":"B. Person","Ticker":"XYZ","Transaction":"Sale","Amount":null},
			{"Senator":"C. Person","Ticker":"ABC","Transaction":"Sale","Amount":"15001"}
		]`))
	}))
	defer srv.Close()

	c := New(srv.URL, "secret", time.Second)
	got, err := c.SenateTrading(context.Background(), "ABC")
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if len(got) != 2 || got[0].Senator != "A. Person" || got[1].Senator != "C. Person" {
		t.Fatalf("got=%+v", got)
	}
	if got[0].Amount.IntPart() != 1001 {
		t.Fatalf("amount=%s", got[0].Amount)
	}
}

func TestSenateTrading_NoToken(t *testing.T) {
	c := New("http://127.0.0.1:0", "", time.Second)
	if _, err := c.SenateTrading(context.Background(), "ABC"); !errors.Is(err, ErrNoToken) {
		t.Fatalf("err=%v want ErrNoToken", err)
	}
}
