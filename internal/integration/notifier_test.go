package integration

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/adsync-labs/campaigns-backend/pkg/config"
	"github.com/adsync-labs/campaigns-backend/pkg/db/models"
	"github.com/adsync-labs/campaigns-backend/pkg/logger"
	"github.com/adsync-labs/campaigns-backend/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type capturedRequest struct {
	path string
	body map[string]json.RawMessage
}

type captureServer struct {
	mu       sync.Mutex
	requests []capturedRequest
	status   int
	srv      *httptest.Server
}

func newCaptureServer(status int) *captureServer {
	c := &captureServer{status: status}
	c.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var body map[string]json.RawMessage
		_ = json.Unmarshal(raw, &body)
		c.mu.Lock()
		c.requests = append(c.requests, capturedRequest{path: r.URL.Path, body: body})
		c.mu.Unlock()
		w.WriteHeader(c.status)
	}))
	return c
}

func (c *captureServer) captured() []capturedRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]capturedRequest(nil), c.requests...)
}

func newTestNotifier(t *testing.T, baseURL string, reg prometheus.Registerer) *Notifier {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard})
	var m *metrics.NotifierMetrics
	if reg != nil {
		m = metrics.NewNotifierMetrics(reg)
	}
	n, err := NewNotifier(config.IntegrationConfig{APIURL: baseURL, Timeout: 2 * time.Second}, logg, m)
	if err != nil {
		t.Fatalf("new notifier: %v", err)
	}
	return n
}

func TestCampaignStartedPostsToSyncCampaign(t *testing.T) {
	server := newCaptureServer(http.StatusOK)
	defer server.srv.Close()

	n := newTestNotifier(t, server.srv.URL, nil)
	campaign := &models.Campaign{ID: 5, Title: "Summer Sale", LandingPageURL: "https://example.com", IsRunning: true}
	n.CampaignStarted(context.Background(), campaign)
	n.Wait()

	reqs := server.captured()
	if len(reqs) != 1 {
		t.Fatalf("expected 1 request, got %d", len(reqs))
	}
	if reqs[0].path != "/sync/campaign" {
		t.Fatalf("unexpected path %q", reqs[0].path)
	}
	if string(reqs[0].body["action"]) != `"start"` {
		t.Fatalf("unexpected action %s", reqs[0].body["action"])
	}

	var sent models.Campaign
	if err := json.Unmarshal(reqs[0].body["campaign"], &sent); err != nil {
		t.Fatalf("decode campaign: %v", err)
	}
	if sent.ID != 5 || sent.Title != "Summer Sale" || !sent.IsRunning {
		t.Fatalf("unexpected campaign payload: %+v", sent)
	}
}

func TestPayoutCreatedPostsToSyncPayout(t *testing.T) {
	server := newCaptureServer(http.StatusOK)
	defer server.srv.Close()

	n := newTestNotifier(t, server.srv.URL, nil)
	payout := &models.Payout{ID: 3, CampaignID: 5, CountryID: 2, Amount: decimal.RequireFromString("1.50")}
	n.PayoutCreated(context.Background(), payout)
	n.Wait()

	reqs := server.captured()
	if len(reqs) != 1 {
		t.Fatalf("expected 1 request, got %d", len(reqs))
	}
	if reqs[0].path != "/sync/payout" {
		t.Fatalf("unexpected path %q", reqs[0].path)
	}
	if string(reqs[0].body["action"]) != `"create"` {
		t.Fatalf("unexpected action %s", reqs[0].body["action"])
	}
	if _, ok := reqs[0].body["payout"]; !ok {
		t.Fatal("payload missing payout entity")
	}
}

func TestNon2xxCountsAsFailure(t *testing.T) {
	server := newCaptureServer(http.StatusInternalServerError)
	defer server.srv.Close()

	reg := prometheus.NewRegistry()
	n := newTestNotifier(t, server.srv.URL, reg)
	n.CampaignDeleted(context.Background(), &models.Campaign{ID: 1})
	n.Wait()

	if got := counterValue(t, reg, "integration_notifications_failed_total"); got != 1 {
		t.Fatalf("expected 1 failed notification, got %v", got)
	}
	if got := counterValue(t, reg, "integration_notifications_delivered_total"); got != 0 {
		t.Fatalf("expected 0 delivered notifications, got %v", got)
	}
}

func TestUnreachableTargetDoesNotPanic(t *testing.T) {
	server := newCaptureServer(http.StatusOK)
	server.srv.Close()

	reg := prometheus.NewRegistry()
	n := newTestNotifier(t, server.srv.URL, reg)
	n.CampaignUpdated(context.Background(), &models.Campaign{ID: 1})
	n.Wait()

	if got := counterValue(t, reg, "integration_notifications_failed_total"); got != 1 {
		t.Fatalf("expected 1 failed notification, got %v", got)
	}
}

func TestDeliverySurvivesCancelledRequestContext(t *testing.T) {
	server := newCaptureServer(http.StatusOK)
	defer server.srv.Close()

	n := newTestNotifier(t, server.srv.URL, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n.CampaignCreated(ctx, &models.Campaign{ID: 9, IsRunning: true})
	n.Wait()

	if len(server.captured()) != 1 {
		t.Fatal("notification should be delivered after the request context is cancelled")
	}
}

func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, fam := range families {
		if fam.GetName() != name {
			continue
		}
		var total float64
		for _, m := range fam.GetMetric() {
			total += m.GetCounter().GetValue()
		}
		return total
	}
	return 0
}
