package completionsvc

import (
	"context"
	"sync"

	"github.com/lakouedu/lakou/core/assistant"
)

// DummyService is a scripted assistant.Completer for tests: it returns
// Reply unless Err is set, and counts calls.
type DummyService struct {
	mu    sync.Mutex
	calls int

	Reply string
	Err   error
}

var _ assistant.Completer = (*DummyService)(nil)

func (svc *DummyService) Complete(_ context.Context, _, _ string) (string, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.calls++
	if svc.Err != nil {
		return "", svc.Err
	}
	return svc.Reply, nil
}

func (svc *DummyService) Calls() int {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.calls
}
