package store

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

// fakeFinder records call order and serves fixed rows.
type fakeFinder struct {
	byDomain  map[string]*Record
	bySlug    map[string]*Record
	domainErr error
	calls     []string
}

func (f *fakeFinder) ByCustomDomain(_ context.Context, domain string) (*Record, error) {
	f.calls = append(f.calls, "custom_domain:"+domain)
	if f.domainErr != nil {
		return nil, f.domainErr
	}
	if r, ok := f.byDomain[domain]; ok {
		return r, nil
	}
	return nil, ErrNotFound
}

func (f *fakeFinder) BySlug(_ context.Context, slug string) (*Record, error) {
	f.calls = append(f.calls, "slug:"+slug)
	if r, ok := f.bySlug[slug]; ok {
		return r, nil
	}
	return nil, ErrNotFound
}

func strptr(s string) *string { return &s }

func TestFindByHost_CustomDomainShortCircuits(t *testing.T) {
	want := &Record{ID: "s1", Slug: "mystore", CustomDomain: strptr("mystore.com")}
	f := &fakeFinder{
		byDomain: map[string]*Record{"mystore.com": want},
		bySlug:   map[string]*Record{"mystore.com": {ID: "other"}},
	}

	got, err := NewResolver(f).FindByHost(context.Background(), "mystore.com")
	if err != nil {
		t.Fatalf("FindByHost error: %v", err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	if !reflect.DeepEqual(f.calls, []string{"custom_domain:mystore.com"}) {
		t.Fatalf("slug query must not run after a domain hit; calls = %v", f.calls)
	}
}

func TestFindByHost_FallsBackToSlug(t *testing.T) {
	want := &Record{ID: "s2", Slug: "my-shop"}
	f := &fakeFinder{bySlug: map[string]*Record{"my-shop": want}}

	got, err := NewResolver(f).FindByHost(context.Background(), "my-shop")
	if err != nil {
		t.Fatalf("FindByHost error: %v", err)
	}
	if got.ID != "s2" {
		t.Fatalf("got %+v, want s2", got)
	}
	wantCalls := []string{"custom_domain:my-shop", "slug:my-shop"}
	if !reflect.DeepEqual(f.calls, wantCalls) {
		t.Fatalf("calls = %v, want %v", f.calls, wantCalls)
	}
}

func TestFindByHost_NoMatch(t *testing.T) {
	f := &fakeFinder{}
	_, err := NewResolver(f).FindByHost(context.Background(), "nobody.example")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if len(f.calls) != 2 {
		t.Fatalf("expected both lookups, calls = %v", f.calls)
	}
}

func TestFindByHost_ErrorStopsChain(t *testing.T) {
	boom := errors.New("connection reset")
	f := &fakeFinder{domainErr: boom}
	_, err := NewResolver(f).FindByHost(context.Background(), "x.com")
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	if len(f.calls) != 1 {
		t.Fatalf("slug lookup ran after an error; calls = %v", f.calls)
	}
}

func TestFindByHost_NoNormalisation(t *testing.T) {
	f := &fakeFinder{byDomain: map[string]*Record{"mystore.com": {ID: "s1"}}}
	_, err := NewResolver(f).FindByHost(context.Background(), "MyStore.com:443")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound for an unnormalised key", err)
	}
}
