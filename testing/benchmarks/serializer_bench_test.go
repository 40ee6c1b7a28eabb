package benchmarks

import (
	"context"
	"testing"

	"github.com/zoobzio/multijson"
	_ "github.com/zoobzio/multijson/all"
	"github.com/zoobzio/multijson/gojson"
	"github.com/zoobzio/multijson/jsoniter"
	"github.com/zoobzio/multijson/sonic"
)

type order struct {
	ID       string            `json:"id"`
	Customer string            `json:"customer"`
	Total    float64           `json:"total"`
	Paid     bool              `json:"paid"`
	Items    []item            `json:"items"`
	Tags     map[string]string `json:"tags"`
}

type item struct {
	SKU      string  `json:"sku"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

var sample = order{
	ID:       "ord-123",
	Customer: "alice@example.com",
	Total:    59.97,
	Paid:     true,
	Items: []item{
		{SKU: "A-1", Quantity: 1, Price: 19.99},
		{SKU: "B-2", Quantity: 2, Price: 19.99},
	},
	Tags: map[string]string{"channel": "web", "region": "eu"},
}

func adapters() []multijson.ID {
	ids := []multijson.ID{multijson.StdID}
	for _, id := range []multijson.ID{sonic.ID, gojson.ID, jsoniter.ID} {
		if multijson.DefaultRegistry().Probe(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

func BenchmarkDump(b *testing.B) {
	ctx := context.Background()
	for _, id := range adapters() {
		opts := multijson.Options{multijson.OptAdapter: id}
		b.Run(string(id), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_, _ = multijson.Dump(ctx, sample, opts)
			}
		})
	}
}

func BenchmarkLoad(b *testing.B) {
	ctx := context.Background()
	data, err := multijson.Dump(ctx, sample, multijson.Options{multijson.OptAdapter: multijson.StdID})
	if err != nil {
		b.Fatalf("Dump() error: %v", err)
	}

	for _, id := range adapters() {
		opts := multijson.Options{multijson.OptAdapter: id}
		b.Run(string(id), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_, _ = multijson.Load(ctx, data, opts)
			}
		})
	}
}

func BenchmarkUnmarshalStruct(b *testing.B) {
	ctx := context.Background()
	data, _ := multijson.Dump(ctx, sample, multijson.Options{multijson.OptAdapter: multijson.StdID})

	for _, id := range adapters() {
		opts := multijson.Options{multijson.OptAdapter: id}
		b.Run(string(id), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				var o order
				_ = multijson.Unmarshal(ctx, data, &o, opts)
			}
		})
	}
}

func BenchmarkCurrent(b *testing.B) {
	ctx := context.Background()
	_ = multijson.Current(ctx)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = multijson.Current(ctx)
	}
}

func BenchmarkWithAdapter(b *testing.B) {
	ctx := context.Background()
	fn := func(ctx context.Context) error {
		_ = multijson.Current(ctx)
		return nil
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = multijson.WithAdapter(ctx, multijson.StdID, fn)
	}
}
