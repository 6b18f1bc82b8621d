package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRedis_UnavailableIsNoop(t *testing.T) {
	r := NewRedisWithClient(nil, time.Minute, nil)
	ctx := context.Background()

	if err := r.SetJSON(ctx, "jobs:public:list", []string{"a"}, 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	var out []string
	hit, err := r.GetJSON(ctx, "jobs:public:list", &out)
	if err != nil || hit {
		t.Fatalf("expected miss without error, got %v %v", hit, err)
	}
	if err := r.DeleteByPattern(ctx, "jobs:public:*"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := r.Ping(ctx); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
