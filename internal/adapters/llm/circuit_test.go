package llm

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
)

var errDown = errors.New("down")

func fail() (string, error) { return "", errDown }
func succeed() (string, error) { return "ok", nil }

func TestCircuitBreaker_Transitions(t *testing.T) {
	cb := NewCircuitBreaker(BreakerConfig{Name: "groq", FailThreshold: 2, HalfOpenRequests: 2, OpenTimeout: 20 * time.Millisecond})

	if cb.State() != gobreaker.StateClosed {
		t.Fatalf("initial state = %s", cb.State())
	}
	cb.Execute(fail)
	if cb.State() != gobreaker.StateClosed {
		t.Fatalf("after 1 failure = %s, want closed", cb.State())
	}
	cb.Execute(fail)
	if cb.State() != gobreaker.StateOpen {
		t.Fatalf("after 2 failures = %s, want open", cb.State())
	}
	if _, err := cb.Execute(succeed); !Refused(err) {
		t.Errorf("open circuit should refuse, err = %v", err)
	}

	time.Sleep(40 * time.Millisecond)
	if cb.State() != gobreaker.StateHalfOpen {
		t.Fatalf("state = %s, want half-open", cb.State())
	}
	if out, err := cb.Execute(succeed); err != nil || out != "ok" {
		t.Fatalf("trial request: %q, %v", out, err)
	}
	if cb.State() != gobreaker.StateHalfOpen {
		t.Fatalf("one success of two: state = %s", cb.State())
	}
	cb.Execute(succeed)
	if cb.State() != gobreaker.StateClosed {
		t.Fatalf("state = %s, want closed", cb.State())
	}
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	cb := NewCircuitBreaker(BreakerConfig{FailThreshold: 1, OpenTimeout: 20 * time.Millisecond})

	cb.Execute(fail)
	time.Sleep(40 * time.Millisecond)
	cb.Execute(fail)
	if cb.State() != gobreaker.StateOpen {
		t.Fatalf("state = %s, want open", cb.State())
	}
	if _, err := cb.Execute(succeed); !Refused(err) {
		t.Errorf("reopened circuit should refuse until the timeout passes again, err = %v", err)
	}
}

func TestCircuitBreaker_HalfOpenAdmitsBoundedTrials(t *testing.T) {
	cb := NewCircuitBreaker(BreakerConfig{FailThreshold: 1, HalfOpenRequests: 1, OpenTimeout: 20 * time.Millisecond})
	cb.Execute(fail)
	time.Sleep(40 * time.Millisecond)

	release := make(chan struct{})
	started := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		cb.Execute(func() (string, error) {
			close(started)
			<-release
			return "ok", nil
		})
	}()
	<-started

	for i := 0; i < 3; i++ {
		if _, err := cb.Execute(succeed); !Refused(err) {
			t.Errorf("concurrent trial %d: err = %v, want refused", i, err)
		}
	}
	close(release)
	wg.Wait()
	if cb.State() != gobreaker.StateClosed {
		t.Errorf("state = %s, want closed after the trial succeeded", cb.State())
	}
}

func TestCircuitBreaker_SuccessResetsFailures(t *testing.T) {
	cb := NewCircuitBreaker(BreakerConfig{FailThreshold: 2})
	cb.Execute(fail)
	cb.Execute(succeed)
	cb.Execute(fail)
	if cb.State() != gobreaker.StateClosed {
		t.Errorf("state = %s, want closed", cb.State())
	}
}

func TestCircuitBreaker_CancellationIsNotAFailure(t *testing.T) {
	cb := NewCircuitBreaker(BreakerConfig{FailThreshold: 1})
	_, err := cb.Execute(func() (string, error) { return "", context.Canceled })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
	if cb.State() != gobreaker.StateClosed {
		t.Errorf("state = %s, want closed", cb.State())
	}
}
