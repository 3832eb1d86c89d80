package answercache

import (
	"testing"
	"time"

	"github.com/haukened/rr-query/internal/dns/domain"
)

func TestNopStore(t *testing.T) {
	var s NopStore

	if err := s.Put("k", domain.NewCachedResponse([]byte{1}, 60, time.Now())); err != nil {
		t.Errorf("Put() = %v, want nil", err)
	}
	if _, ok, err := s.Get("k"); ok || err != nil {
		t.Errorf("Get() = ok=%v err=%v, want miss", ok, err)
	}
	if err := s.Delete("k"); err != nil {
		t.Errorf("Delete() = %v, want nil", err)
	}
	called := false
	if err := s.VisitKeys(func([]byte) bool { called = true; return true }); err != nil || called {
		t.Errorf("VisitKeys() visited=%v err=%v", called, err)
	}
	if st := s.Stats(); st.Keys != 0 {
		t.Errorf("Stats() = %+v", st)
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
}
