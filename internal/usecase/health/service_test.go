package health

import (
	"context"
	"errors"
	"testing"
)

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

type fakeChecker struct{ err error }

func (f fakeChecker) HealthCheck(context.Context) error { return f.err }

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(fakePinger{}, fakeChecker{})
	report := svc.Check(context.Background())

	if report.Status != Healthy {
		t.Errorf("status = %q, want %q", report.Status, Healthy)
	}
	if report.Checks["index"] != CheckOK || report.Checks["embedding"] != CheckOK {
		t.Errorf("checks = %v", report.Checks)
	}
}

func TestCheck_IndexDownIsUnhealthy(t *testing.T) {
	svc := New(fakePinger{err: errors.New("refused")}, fakeChecker{})
	report := svc.Check(context.Background())

	if report.Status != Unhealthy {
		t.Errorf("status = %q, want %q", report.Status, Unhealthy)
	}
	if report.Checks["index"] != CheckError {
		t.Errorf("checks = %v", report.Checks)
	}
}

func TestCheck_EmbeddingDownIsDegraded(t *testing.T) {
	svc := New(fakePinger{}, fakeChecker{err: errors.New("provider down")})
	report := svc.Check(context.Background())

	if report.Status != Degraded {
		t.Errorf("status = %q, want %q", report.Status, Degraded)
	}
}

func TestCheck_NoEmbedder(t *testing.T) {
	svc := New(fakePinger{}, nil)
	report := svc.Check(context.Background())

	if report.Status != Healthy {
		t.Errorf("status = %q, want %q", report.Status, Healthy)
	}
	if _, ok := report.Checks["embedding"]; ok {
		t.Error("embedding check present without an embedder")
	}
}
