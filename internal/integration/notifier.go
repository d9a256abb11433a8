package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/adsync-labs/campaigns-backend/pkg/config"
	"github.com/adsync-labs/campaigns-backend/pkg/db/models"
	"github.com/adsync-labs/campaigns-backend/pkg/logger"
	"github.com/adsync-labs/campaigns-backend/pkg/metrics"
)

const (
	targetCampaign = "campaign"
	targetPayout   = "payout"

	ActionCreate = "create"
	ActionUpdate = "update"
	ActionStart  = "start"
	ActionStop   = "stop"
	ActionDelete = "delete"
)

// Notifier pushes campaign and payout lifecycle events to the integration
// API. Delivery is best effort: every call returns immediately, failures are
// logged and counted but never surface to the caller.
type Notifier struct {
	baseURL string
	client  *http.Client
	logg    *logger.Logger
	metrics *metrics.NotifierMetrics
	wg      sync.WaitGroup
}

// NewNotifier builds a notifier for the configured integration API.
func NewNotifier(cfg config.IntegrationConfig, logg *logger.Logger, m *metrics.NotifierMetrics) (*Notifier, error) {
	if logg == nil {
		return nil, fmt.Errorf("integration: logger is required")
	}
	return &Notifier{
		baseURL: cfg.APIURL,
		client:  &http.Client{Timeout: cfg.Timeout},
		logg:    logg,
		metrics: m,
	}, nil
}

func (n *Notifier) CampaignCreated(ctx context.Context, campaign *models.Campaign) {
	n.dispatch(ctx, targetCampaign, ActionCreate, campaign)
}

func (n *Notifier) CampaignUpdated(ctx context.Context, campaign *models.Campaign) {
	n.dispatch(ctx, targetCampaign, ActionUpdate, campaign)
}

func (n *Notifier) CampaignStarted(ctx context.Context, campaign *models.Campaign) {
	n.dispatch(ctx, targetCampaign, ActionStart, campaign)
}

func (n *Notifier) CampaignStopped(ctx context.Context, campaign *models.Campaign) {
	n.dispatch(ctx, targetCampaign, ActionStop, campaign)
}

func (n *Notifier) CampaignDeleted(ctx context.Context, campaign *models.Campaign) {
	n.dispatch(ctx, targetCampaign, ActionDelete, campaign)
}

func (n *Notifier) PayoutCreated(ctx context.Context, payout *models.Payout) {
	n.dispatch(ctx, targetPayout, ActionCreate, payout)
}

func (n *Notifier) PayoutUpdated(ctx context.Context, payout *models.Payout) {
	n.dispatch(ctx, targetPayout, ActionUpdate, payout)
}

func (n *Notifier) PayoutDeleted(ctx context.Context, payout *models.Payout) {
	n.dispatch(ctx, targetPayout, ActionDelete, payout)
}

// Wait blocks until all in-flight notifications have finished. Called during
// shutdown so accepted requests drain their notifications first.
func (n *Notifier) Wait() {
	n.wg.Wait()
}

// dispatch posts {action, <target>: entity} to /sync/<target> in the
// background. The request context is detached so a completed HTTP request
// does not cancel its own notification.
func (n *Notifier) dispatch(ctx context.Context, target, action string, entity any) {
	ctx = context.WithoutCancel(ctx)
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		if err := n.post(ctx, target, action, entity); err != nil {
			n.metrics.IncFailed(target, action)
			n.logg.Warn(ctx, fmt.Sprintf("integration notify failed: %s %s: %v", target, action, err))
			return
		}
		n.metrics.IncDelivered(target, action)
		n.logg.Debug(ctx, fmt.Sprintf("integration notified: %s %s", target, action))
	}()
}

func (n *Notifier) post(ctx context.Context, target, action string, entity any) error {
	body, err := json.Marshal(map[string]any{
		"action": action,
		target:   entity,
	})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s/sync/%s", n.baseURL, target)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
