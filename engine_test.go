package multijson_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/zoobzio/multijson"
	jsontest "github.com/zoobzio/multijson/testing"
)

func TestEngine_LoadDump(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	data, err := e.Dump(ctx, map[string]any{"abc": "def"}, nil)
	if err != nil {
		t.Fatalf("Dump() error: %v", err)
	}
	if string(data) != `{"abc":"def"}` {
		t.Errorf("Dump() = %s, want %s", data, `{"abc":"def"}`)
	}

	v, err := e.Load(ctx, data, nil)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !reflect.DeepEqual(v, map[string]any{"abc": "def"}) {
		t.Errorf("Load() = %v", v)
	}
}

func TestEngine_LoadBlank(t *testing.T) {
	e := newEngine(t)
	for _, input := range []string{"", " ", "\n\t "} {
		v, err := e.Load(context.Background(), []byte(input), nil)
		if err != nil || v != nil {
			t.Errorf("Load(%q) = %v, %v, want nil, nil", input, v, err)
		}
	}
}

func TestEngine_LoadBlankUnknownAdapter(t *testing.T) {
	e := newEngine(t)
	for _, input := range []string{"", "  "} {
		v, err := e.Load(context.Background(), []byte(input), multijson.Options{multijson.OptAdapter: "bogus"})
		if !errors.Is(err, multijson.ErrUnknownAdapter) {
			t.Errorf("Load(%q, adapter=bogus) = %v, %v, want ErrUnknownAdapter", input, v, err)
		}
		var adapterErr *multijson.AdapterError
		if !errors.As(err, &adapterErr) {
			t.Errorf("Load(%q) error type = %T, want *AdapterError", input, err)
		}
	}
}

func TestEngine_LoadReader(t *testing.T) {
	e := newEngine(t)
	v, err := e.LoadReader(context.Background(), strings.NewReader(`[1,2]`), nil)
	if err != nil {
		t.Fatalf("LoadReader() error: %v", err)
	}
	if !reflect.DeepEqual(v, []any{1.0, 2.0}) {
		t.Errorf("LoadReader() = %v", v)
	}
}

func TestEngine_Unmarshal(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	e := newEngine(t)
	var p payload
	if err := e.Unmarshal(context.Background(), []byte(`{"name":"x"}`), &p, nil); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if p.Name != "x" {
		t.Errorf("Name = %q, want %q", p.Name, "x")
	}
}

func TestEngine_ParseErrorIsNormalized(t *testing.T) {
	native := errors.New("oj: unexpected character")
	failing := jsontest.NewMock("failing")
	failing.DecodeErr = native

	refs := []any{multijson.StdID, "oj", failing}
	for _, ref := range refs {
		e := newEngine(t)
		ctx := context.Background()

		_, err := e.Load(ctx, []byte("{not json"), multijson.Options{multijson.OptAdapter: ref})
		if !errors.Is(err, multijson.ErrParse) {
			t.Fatalf("Load(%v) error = %v, want ErrParse", ref, err)
		}
		var parseErr *multijson.ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("Load(%v) error type = %T, want *ParseError", ref, err)
		}
		if string(parseErr.Data) != "{not json" {
			t.Errorf("ParseError.Data = %q", parseErr.Data)
		}
		if parseErr.Cause == nil {
			t.Error("ParseError.Cause should carry the backend error")
		}
	}
}

func TestEngine_ParseErrorKeepsMessage(t *testing.T) {
	native := errors.New("oj: unexpected character")
	failing := jsontest.NewMock("failing")
	failing.DecodeErr = native

	e := newEngine(t)
	_, err := e.Load(context.Background(), []byte("{"), multijson.Options{multijson.OptAdapter: failing})

	var parseErr *multijson.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error type = %T, want *ParseError", err)
	}
	if parseErr.Cause != native || parseErr.Adapter != "failing" {
		t.Errorf("ParseError = %+v", parseErr)
	}
	if !strings.Contains(err.Error(), native.Error()) {
		t.Errorf("Error() = %q, want it to contain %q", err.Error(), native.Error())
	}
}

func TestEngine_EncodeError(t *testing.T) {
	e := newEngine(t)
	_, err := e.Dump(context.Background(), make(chan int), multijson.Options{multijson.OptAdapter: multijson.StdID})
	if !errors.Is(err, multijson.ErrEncode) {
		t.Fatalf("Dump(chan) error = %v, want ErrEncode", err)
	}
	var encErr *multijson.EncodeError
	if !errors.As(err, &encErr) || encErr.Adapter != multijson.StdID {
		t.Errorf("Dump(chan) error = %#v, want *EncodeError from std", err)
	}
}

func TestEngine_PerCallAdapter(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	pure := jsontest.NewMock("json_pure")
	pure.Output = []byte(`"dump_something"`)

	if _, err := e.Use(ctx, "json_gem"); err != nil {
		t.Fatalf("Use() error: %v", err)
	}

	err := e.WithAdapter(ctx, "ok_json", func(ctx context.Context) error {
		data, err := e.Dump(ctx, "", multijson.Options{multijson.OptAdapter: pure})
		if err != nil {
			return err
		}
		if string(data) != `"dump_something"` {
			t.Errorf("Dump() = %s, want canned output", data)
		}
		if _, err := e.Load(ctx, []byte(`1`), multijson.Options{multijson.OptAdapter: pure}); err != nil {
			return err
		}

		if got := e.Current(ctx).Name(); got != "ok_json" {
			t.Errorf("override after per-call = %q, want %q", got, "ok_json")
		}
		if got := e.OverrideDepth(ctx); got != 1 {
			t.Errorf("OverrideDepth() = %d, want 1", got)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithAdapter() error: %v", err)
	}

	if len(pure.Encodes()) != 1 || len(pure.Decodes()) != 1 {
		t.Errorf("per-call adapter calls = %d encodes, %d decodes, want 1 each",
			len(pure.Encodes()), len(pure.Decodes()))
	}
	if got := e.Current(ctx).Name(); got != "json_gem" {
		t.Errorf("default after per-call = %q, want %q", got, "json_gem")
	}
}

func TestEngine_PerCallAdapterNotForwarded(t *testing.T) {
	e := newEngine(t)
	mock := jsontest.NewMock("mock")

	_, err := e.Dump(context.Background(), 1, multijson.Options{multijson.OptAdapter: mock, "foo": "bar"})
	if err != nil {
		t.Fatalf("Dump() error: %v", err)
	}

	call, _ := mock.LastEncode()
	if _, ok := call.Options[multijson.OptAdapter]; ok {
		t.Error("adapter option should not be forwarded to the backend")
	}
	if call.Options["foo"] != "bar" {
		t.Errorf("options = %v, want foo=bar forwarded", call.Options)
	}
}

func TestEngine_PerCallUnknownAdapter(t *testing.T) {
	e := newEngine(t)
	_, err := e.Load(context.Background(), []byte(`{}`), multijson.Options{multijson.OptAdapter: "nope"})
	if !errors.Is(err, multijson.ErrUnknownAdapter) {
		t.Errorf("Load() error = %v, want ErrUnknownAdapter", err)
	}
}

func TestEngine_Adapter(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	a, err := e.Adapter(ctx, nil)
	if err != nil || a.Name() != "oj" {
		t.Errorf("Adapter(nil) = %v, %v, want oj", a, err)
	}

	a, err = e.Adapter(ctx, multijson.Options{multijson.OptAdapter: "json_pure"})
	if err != nil || a.Name() != "json_pure" {
		t.Errorf("Adapter(json_pure) = %v, %v, want json_pure", a, err)
	}
}

func TestEngine_UseThenCurrent(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	for _, id := range []multijson.ID{"json_gem", "json_pure", multijson.StdID} {
		if _, err := e.Use(ctx, id); err != nil {
			t.Fatalf("Use(%q) error: %v", id, err)
		}
		if got := e.Current(ctx).Name(); got != id {
			t.Errorf("Current() after Use(%q) = %q", id, got)
		}
	}

	e.Reset()
	if got := e.Current(ctx).Name(); got != "oj" {
		t.Errorf("Current() after Reset() = %q, want %q", got, "oj")
	}
}

func TestEngine_FallbackWarning(t *testing.T) {
	var rec jsontest.WarningRecorder
	e := multijson.New(
		multijson.WithRegistry(multijson.NewRegistry()),
		multijson.WithWarningHandler(rec.Handler()),
	)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := e.Dump(ctx, i, nil); err != nil {
			t.Fatalf("Dump() error: %v", err)
		}
	}
	if got := rec.Count(multijson.WarningFallback); got != 1 {
		t.Errorf("fallback warnings = %d, want 1", got)
	}
}
