package bolt

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	bbolt "go.etcd.io/bbolt"
	bberrors "go.etcd.io/bbolt/errors"

	"github.com/haukened/rr-query/internal/dns/domain"
)

func tempDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "answers.db")
}

func fixture(wire ...byte) domain.CachedResponse {
	now := time.Unix(1_700_000_000, 123)
	return domain.NewCachedResponse(wire, 300, now)
}

func TestBoltStore_PutGetDelete(t *testing.T) {
	st, err := New(tempDB(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	key := "example.com|www.example.com|A|IN"
	if _, ok, err := st.Get(key); err != nil || ok {
		t.Fatalf("expected empty miss, got ok=%v err=%v", ok, err)
	}

	want := fixture(0xAB, 0xCD, 0xEF)
	if err := st.Put(key, want); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := st.Get(key)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if !got.StoredAt.Equal(want.StoredAt) || !got.ExpiresAt.Equal(want.ExpiresAt) {
		t.Fatalf("timestamps: got %v/%v want %v/%v", got.StoredAt, got.ExpiresAt, want.StoredAt, want.ExpiresAt)
	}
	if string(got.Wire) != string(want.Wire) {
		t.Fatalf("wire: got %x want %x", got.Wire, want.Wire)
	}

	if err := st.Delete(key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := st.Get(key); ok {
		t.Fatalf("expected miss after delete")
	}
	// deleting a missing key is not an error
	if err := st.Delete(key); err != nil {
		t.Fatalf("Delete missing: %v", err)
	}
}

func TestBoltStore_VisitKeysOrderedAndStoppable(t *testing.T) {
	st, err := New(tempDB(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	for _, k := range []string{"b.org|b.org|A|IN", "a.com|x.a.com|A|IN", "a.com|a.com|MX|IN"} {
		if err := st.Put(k, fixture(1)); err != nil {
			t.Fatalf("Put %s: %v", k, err)
		}
	}

	var keys []string
	if err := st.VisitKeys(func(k []byte) bool {
		keys = append(keys, string(k))
		return true
	}); err != nil {
		t.Fatalf("VisitKeys: %v", err)
	}
	want := []string{"a.com|a.com|MX|IN", "a.com|x.a.com|A|IN", "b.org|b.org|A|IN"}
	if len(keys) != len(want) {
		t.Fatalf("keys=%v want=%v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys[%d]=%q want %q", i, keys[i], want[i])
		}
	}

	n := 0
	_ = st.VisitKeys(func([]byte) bool { n++; return false })
	if n != 1 {
		t.Fatalf("visit did not stop: n=%d", n)
	}

	if got := st.Stats().Keys; got != 3 {
		t.Fatalf("Stats().Keys=%d want 3", got)
	}
}

func TestBoltStore_PersistsAcrossReopen(t *testing.T) {
	path := tempDB(t)
	st, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := st.Put("k", fixture(9)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	st2, err := New(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { _ = st2.Close() })
	got, ok, err := st2.Get("k")
	if err != nil || !ok || len(got.Wire) != 1 || got.Wire[0] != 9 {
		t.Fatalf("after reopen: got=%+v ok=%v err=%v", got, ok, err)
	}
}

func TestBoltStore_CorruptValue(t *testing.T) {
	path := tempDB(t)
	st, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	bs := st.(*boltStore)
	t.Cleanup(func() { _ = st.Close() })

	if err := bs.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketAnswers).Put([]byte("bad"), []byte{1, 2, 3})
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, ok, err := st.Get("bad"); !errors.Is(err, ErrCorruptValue) || ok {
		t.Fatalf("expected ErrCorruptValue, got ok=%v err=%v", ok, err)
	}
}

func TestBoltStore_LockedDatabase(t *testing.T) {
	path := tempDB(t)
	st, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	// a second writer times out on the file lock
	if _, err := New(path); !errors.Is(err, bberrors.ErrTimeout) {
		t.Fatalf("expected timeout on locked db, got %v", err)
	}
}

func TestEncodeDecodeValue(t *testing.T) {
	in := fixture()
	out, err := decodeValue(encodeValue(in))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Wire) != 0 || !out.StoredAt.Equal(in.StoredAt) || !out.ExpiresAt.Equal(in.ExpiresAt) {
		t.Fatalf("round trip mismatch: %+v vs %+v", out, in)
	}
}
