package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"FinRisk/internal/domain/models"
)

func chartBody(timestamps []int64, closes []string) string {
	ts := ""
	for i, t := range timestamps {
		if i > 0 {
			ts += ","
		}
		ts += fmt.Sprintf("%d", t)
	}
	cs := ""
	for i, c := range closes {
		if i > 0 {
			cs += ","
		}
		cs += c
	}
	return fmt.Sprintf(`{"chart":{"result":[{"timestamp":[%s],"indicators":{"quote":[{"close":[%s]}]}}],"error":null}}`, ts, cs)
}

func TestFetchDailyCloses(t *testing.T) {
	day := int64(86400)
	base := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC).Unix()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v8/finance/chart/AAPL" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("range"); got != "5d" {
			t.Errorf("unexpected range %s", got)
		}
		if got := r.URL.Query().Get("interval"); got != "1d" {
			t.Errorf("unexpected interval %s", got)
		}
		fmt.Fprint(w, chartBody(
			[]int64{base, base + day, base + 2*day, base + 3*day, base + 4*day},
			[]string{"101.5", "102.25", "100.75", "103.0", "104.5"},
		))
	}))
	defer srv.Close()

	src := New(srv.URL, 5*time.Second)
	series, err := src.FetchDailyCloses(context.Background(), "AAPL", 5)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(series) != 5 {
		t.Fatalf("expected 5 points, got %d", len(series))
	}
	for i := 1; i < len(series); i++ {
		if !series[i-1].Date.Before(series[i].Date) {
			t.Fatalf("dates not ascending at %d", i)
		}
	}
	if series.Last().Close != 104.5 {
		t.Fatalf("unexpected last close %v", series.Last().Close)
	}
}

func TestFetchSkipsNullBars(t *testing.T) {
	day := int64(86400)
	base := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC).Unix()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chartBody(
			[]int64{base, base + day, base + 2*day},
			[]string{"100", "null", "102"},
		))
	}))
	defer srv.Close()

	src := New(srv.URL, 5*time.Second)
	series, err := src.FetchDailyCloses(context.Background(), "AAPL", 3)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(series) != 2 {
		t.Fatalf("expected null bar to be skipped, got %d points", len(series))
	}
}

func TestFetchEmptyResultIsNoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":[],"error":null}}`)
	}))
	defer srv.Close()

	src := New(srv.URL, 5*time.Second)
	_, err := src.FetchDailyCloses(context.Background(), "NOPE", 30)
	if !models.IsNoData(err) {
		t.Fatalf("expected NoDataError, got %v", err)
	}
}

func TestFetchAPIErrorIsNoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`)
	}))
	defer srv.Close()

	src := New(srv.URL, 5*time.Second)
	_, err := src.FetchDailyCloses(context.Background(), "DELISTED", 90)
	if !models.IsNoData(err) {
		t.Fatalf("expected NoDataError, got %v", err)
	}
}

func TestFetchServerErrorIsNotNoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broken", http.StatusBadGateway)
	}))
	defer srv.Close()

	src := New(srv.URL, 5*time.Second)
	_, err := src.FetchDailyCloses(context.Background(), "AAPL", 30)
	if err == nil {
		t.Fatalf("expected error")
	}
	if models.IsNoData(err) {
		t.Fatalf("provider outage must not masquerade as no-data: %v", err)
	}
}
