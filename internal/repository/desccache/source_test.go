package desccache

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/NathanielBerney/boiledegg/internal/db"
	"github.com/NathanielBerney/boiledegg/internal/domain"
)

// --- Mocks ---

type fakeStore struct {
	data    map[string][]byte
	getErr  error
	setErr  error
	setTTLs []time.Duration
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string][]byte{}}
}

func (f *fakeStore) Get(_ context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	v, ok := f.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (f *fakeStore) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = value
	f.setTTLs = append(f.setTTLs, ttl)
	return nil
}

type countingSource struct {
	desc  domain.Descriptors
	err   error
	calls int
}

func (s *countingSource) Descriptors(context.Context, string) (domain.Descriptors, error) {
	s.calls++
	if s.err != nil {
		return domain.Descriptors{}, s.err
	}
	return s.desc, nil
}

func newCached(inner domain.DescriptorSource, s store) *CachedSource {
	return New(inner, s, time.Hour, nil, zap.NewNop())
}

func TestDescriptors_MissThenHit(t *testing.T) {
	inner := &countingSource{desc: domain.Descriptors{TPSA: 58.44, WLogP: -1.0293}}
	store := newFakeStore()
	cached := newCached(inner, store)

	first, err := cached.Descriptors(context.Background(), "CCO")
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := cached.Descriptors(context.Background(), "CCO")
	if err != nil {
		t.Fatalf("second call: %v", err)
	}

	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1 (second call should hit the cache)", inner.calls)
	}
	if first != second {
		t.Errorf("cached value differs: %+v vs %+v", first, second)
	}
	if second.TPSA != 58.44 || second.WLogP != -1.0293 {
		t.Errorf("descriptors = %+v", second)
	}
	if len(store.setTTLs) != 1 || store.setTTLs[0] != time.Hour {
		t.Errorf("setTTLs = %v, want one entry of 1h", store.setTTLs)
	}
}

func TestDescriptors_DistinctKeysPerSMILES(t *testing.T) {
	inner := &countingSource{desc: domain.Descriptors{TPSA: 1, WLogP: 2}}
	cached := newCached(inner, newFakeStore())

	_, _ = cached.Descriptors(context.Background(), "CCO")
	_, _ = cached.Descriptors(context.Background(), "CCN")

	if inner.calls != 2 {
		t.Errorf("inner calls = %d, want 2 (different SMILES must not share a key)", inner.calls)
	}
}

func TestDescriptors_StoreGetFailureFallsThrough(t *testing.T) {
	inner := &countingSource{desc: domain.Descriptors{TPSA: 20.23}}
	store := newFakeStore()
	store.getErr = errors.New("connection reset")
	cached := newCached(inner, store)

	desc, err := cached.Descriptors(context.Background(), "CCO")
	if err != nil {
		t.Fatalf("Descriptors: %v", err)
	}
	if desc.TPSA != 20.23 {
		t.Errorf("descriptors = %+v", desc)
	}
}

func TestDescriptors_StoreSetFailureIsNonFatal(t *testing.T) {
	inner := &countingSource{desc: domain.Descriptors{TPSA: 20.23}}
	store := newFakeStore()
	store.setErr = errors.New("readonly replica")
	cached := newCached(inner, store)

	if _, err := cached.Descriptors(context.Background(), "CCO"); err != nil {
		t.Fatalf("Descriptors: %v", err)
	}
}

func TestDescriptors_ErrorsNotCached(t *testing.T) {
	inner := &countingSource{err: domain.ErrMoleculeParse}
	store := newFakeStore()
	cached := newCached(inner, store)

	if _, err := cached.Descriptors(context.Background(), "bad"); !errors.Is(err, domain.ErrMoleculeParse) {
		t.Fatalf("err = %v, want ErrMoleculeParse", err)
	}
	if len(store.data) != 0 {
		t.Error("failed lookup was written to the cache")
	}

	_, _ = cached.Descriptors(context.Background(), "bad")
	if inner.calls != 2 {
		t.Errorf("inner calls = %d, want 2 (errors must not be served from cache)", inner.calls)
	}
}

func TestDescriptors_CorruptCacheEntryIgnored(t *testing.T) {
	inner := &countingSource{desc: domain.Descriptors{TPSA: 5, WLogP: 6}}
	store := newFakeStore()
	cached := newCached(inner, store)

	store.data[cached.cacheKey("CCO")] = []byte("garbage")

	desc, err := cached.Descriptors(context.Background(), "CCO")
	if err != nil {
		t.Fatalf("Descriptors: %v", err)
	}
	if desc.TPSA != 5 || desc.WLogP != 6 {
		t.Errorf("descriptors = %+v, want inner values", desc)
	}
	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1", inner.calls)
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	want := domain.Descriptors{TPSA: 71.051, WLogP: -2.3}
	got, err := decode(encode(want))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}
