package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/bagspec-api/internal/dto"
)

func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
	metrics:
		for _, metric := range family.GetMetric() {
			for _, pair := range metric.GetLabel() {
				if want, ok := labels[pair.GetName()]; ok && want != pair.GetValue() {
					continue metrics
				}
			}
			return metric.GetCounter().GetValue()
		}
	}
	return 0
}

func TestMetricsServiceCounters(t *testing.T) {
	m := NewMetricsService()
	m.RecordEmail(EmailKindInvite, nil)
	m.RecordEmail(EmailKindInvite, errors.New("down"))
	m.RecordEmail(EmailKindInvite, nil)
	m.RecordLinkIssued("direct")
	m.RecordSubmission("accepted")
	m.RecordCacheLookup(true, time.Millisecond)
	m.RecordCacheLookup(false, time.Millisecond)
	m.ObserveHTTPRequest(http.MethodGet, "/form/:token", http.StatusOK, 5*time.Millisecond)

	reg := m.Registry()
	assert.Equal(t, 2.0, counterValue(t, reg, "emails_total", map[string]string{"kind": "invite", "result": "sent"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "emails_total", map[string]string{"kind": "invite", "result": "failed"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "form_links_issued_total", map[string]string{"channel": "direct"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "form_submissions_total", map[string]string{"outcome": "accepted"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "size_cache_lookups_total", map[string]string{"result": "hit"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "http_requests_total", map[string]string{"path": "/form/:token", "status": "200"}))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "form_links_issued_total")
}

func TestMetricsServiceNilSafe(t *testing.T) {
	var m *MetricsService
	assert.NotPanics(t, func() {
		m.RecordEmail(EmailKindInvite, nil)
		m.RecordLinkIssued("email")
		m.RecordSubmission("invalid")
		m.RecordCacheLookup(false, 0)
		m.ObserveHTTPRequest(http.MethodGet, "/", http.StatusOK, 0)
	})
	assert.Nil(t, m.Registry())

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSubmitOutcomesAreCounted(t *testing.T) {
	f := newFormFixture(t)
	link, err := f.svc.IssueRawLink(context.Background(), dto.GenerateLinkRequest{})
	require.NoError(t, err)

	_, err = f.svc.Submit(context.Background(), link.Token, collarSubmission(t, `{"bags":[]}`))
	require.Error(t, err)
	_, err = f.svc.Submit(context.Background(), "missing", collarSubmission(t, `{"bags":[]}`))
	require.Error(t, err)

	reg := f.metrics.Registry()
	assert.Equal(t, 1.0, counterValue(t, reg, "form_submissions_total", map[string]string{"outcome": "invalid"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "form_submissions_total", map[string]string{"outcome": "invalid_link"}))
}
